package reporting

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/servex/backend/internal/domain/billing"
	"github.com/servex/backend/internal/domain/freight"
	"github.com/servex/backend/internal/domain/partner"
	"github.com/servex/backend/internal/domain/shared"
	"github.com/servex/backend/internal/domain/trip"
)

// statementTripColumns bounds how many recent trips appear as statement
// columns
const statementTripColumns = 8

// FinanceReportService builds the debtor-book views: client statements, the
// overdue list and the financial summary.
type FinanceReportService struct {
	invoiceRepo  billing.InvoiceRepository
	paymentRepo  billing.PaymentRepository
	clientRepo   partner.ClientRepository
	tripRepo     trip.Repository
	shipmentRepo freight.ShipmentRepository
}

// NewFinanceReportService creates a new FinanceReportService
func NewFinanceReportService(
	invoiceRepo billing.InvoiceRepository,
	paymentRepo billing.PaymentRepository,
	clientRepo partner.ClientRepository,
	tripRepo trip.Repository,
	shipmentRepo freight.ShipmentRepository,
) *FinanceReportService {
	return &FinanceReportService{
		invoiceRepo:  invoiceRepo,
		paymentRepo:  paymentRepo,
		clientRepo:   clientRepo,
		tripRepo:     tripRepo,
		shipmentRepo: shipmentRepo,
	}
}

// ClientStatements builds the statement summary: every client carrying debt,
// their outstanding grouped by recent trip, sorted largest debtor first.
func (s *FinanceReportService) ClientStatements(ctx context.Context, tenantID uuid.UUID) (*StatementsResponse, error) {
	open, err := s.invoiceRepo.FindOpenForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	tripFilter := shared.DefaultFilter()
	tripFilter.PageSize = 10
	tripFilter.OrderBy = "created_at"
	tripFilter.OrderDir = "desc"
	trips, err := s.tripRepo.FindAllForTenant(ctx, tenantID, tripFilter)
	if err != nil {
		return nil, err
	}
	tripNumbers := make([]string, 0, len(trips))
	numberByTripID := map[uuid.UUID]string{}
	for i := range trips {
		tripNumbers = append(tripNumbers, trips[i].TripNumber)
		numberByTripID[trips[i].ID] = trips[i].TripNumber
	}
	if len(tripNumbers) > statementTripColumns {
		tripNumbers = tripNumbers[:statementTripColumns]
	}

	invoiceIDs := make([]uuid.UUID, len(open))
	for i := range open {
		invoiceIDs[i] = open[i].ID
	}
	paymentsByInvoice, err := s.paymentRepo.FindByInvoices(ctx, tenantID, invoiceIDs)
	if err != nil {
		return nil, err
	}

	byClient := map[uuid.UUID][]billing.Invoice{}
	for _, inv := range open {
		byClient[inv.ClientID] = append(byClient[inv.ClientID], inv)
	}
	clientIDs := make([]uuid.UUID, 0, len(byClient))
	for clientID := range byClient {
		clientIDs = append(clientIDs, clientID)
	}
	clients, err := s.clientRepo.FindByIDs(ctx, tenantID, clientIDs)
	if err != nil {
		return nil, err
	}

	today := shared.Today()
	summary := StatementsSummary{
		TotalOutstanding: decimal.Zero,
		OverdueAmount:    decimal.Zero,
	}
	statements := make([]StatementRow, 0, len(clients))
	for i := range clients {
		client := &clients[i]
		invoices := byClient[client.ID]

		row := StatementRow{
			ClientID:     client.ID,
			ClientName:   client.Name,
			ClientEmail:  client.Email,
			ClientPhone:  client.Phone,
			TripAmounts:  map[string]decimal.Decimal{},
			InvoiceCount: len(invoices),
		}
		total := decimal.Zero
		for j := range invoices {
			inv := &invoices[j]
			outstanding := inv.Outstanding(billing.SumPayments(paymentsByInvoice[inv.ID]))
			total = total.Add(outstanding)
			if !outstanding.IsPositive() {
				continue
			}

			column := "Other"
			if inv.TripID != nil {
				if number, ok := numberByTripID[*inv.TripID]; ok {
					column = number
				}
			}
			row.TripAmounts[column] = row.TripAmounts[column].Add(outstanding)

			if effectiveStatus(inv, today) == string(billing.InvoiceStatusOverdue) {
				row.HasOverdue = true
				summary.OverdueAmount = summary.OverdueAmount.Add(outstanding)
			}
		}
		if !total.IsPositive() {
			continue
		}
		row.TotalOutstanding = total.Round(2)
		summary.TotalOutstanding = summary.TotalOutstanding.Add(total)
		statements = append(statements, row)
	}

	sort.Slice(statements, func(i, j int) bool {
		return statements[i].TotalOutstanding.GreaterThan(statements[j].TotalOutstanding)
	})
	summary.TotalOutstanding = summary.TotalOutstanding.Round(2)
	summary.OverdueAmount = summary.OverdueAmount.Round(2)
	summary.ClientsWithDebt = len(statements)

	return &StatementsResponse{
		Statements:  statements,
		TripColumns: tripNumbers,
		Summary:     summary,
	}, nil
}

// StatementInvoices returns a client's open invoices newest first
func (s *FinanceReportService) StatementInvoices(ctx context.Context, tenantID, clientID uuid.UUID) ([]StatementInvoiceRow, error) {
	if _, err := s.clientRepo.FindByIDForTenant(ctx, tenantID, clientID); err != nil {
		return nil, err
	}
	invoices, err := s.invoiceRepo.FindByClient(ctx, tenantID, clientID)
	if err != nil {
		return nil, err
	}

	open := invoices[:0]
	for _, inv := range invoices {
		if inv.Status.IsOpen() {
			open = append(open, inv)
		}
	}

	invoiceIDs := make([]uuid.UUID, len(open))
	for i := range open {
		invoiceIDs[i] = open[i].ID
	}
	paymentsByInvoice, err := s.paymentRepo.FindByInvoices(ctx, tenantID, invoiceIDs)
	if err != nil {
		return nil, err
	}

	rows := make([]StatementInvoiceRow, len(open))
	for i := range open {
		inv := &open[i]
		paid := billing.SumPayments(paymentsByInvoice[inv.ID])
		rows[i] = StatementInvoiceRow{
			InvoiceID:     inv.ID,
			InvoiceNumber: inv.InvoiceNumber,
			TripNumber:    s.tripNumberFor(ctx, tenantID, inv.TripID),
			Total:         inv.Total,
			PaidAmount:    paid,
			Outstanding:   inv.Outstanding(paid),
			DueDate:       inv.DueDate,
			Status:        string(inv.Status),
			CreatedAt:     inv.CreatedAt,
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CreatedAt.After(rows[j].CreatedAt) })
	return rows, nil
}

// OverdueInvoices lists open invoices past their due date, most overdue
// first. Rows fully covered by the ledger are dropped.
func (s *FinanceReportService) OverdueInvoices(ctx context.Context, tenantID uuid.UUID) (*OverdueResponse, error) {
	open, err := s.invoiceRepo.FindOpenForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	today := shared.Today()
	pastDue := open[:0]
	for _, inv := range open {
		if inv.DueDate != "" && shared.DateBefore(inv.DueDate, today) {
			pastDue = append(pastDue, inv)
		}
	}

	invoiceIDs := make([]uuid.UUID, len(pastDue))
	clientIDs := make([]uuid.UUID, 0, len(pastDue))
	for i := range pastDue {
		invoiceIDs[i] = pastDue[i].ID
		clientIDs = append(clientIDs, pastDue[i].ClientID)
	}
	paymentsByInvoice, err := s.paymentRepo.FindByInvoices(ctx, tenantID, invoiceIDs)
	if err != nil {
		return nil, err
	}
	clients, err := s.clientRepo.FindByIDs(ctx, tenantID, clientIDs)
	if err != nil {
		return nil, err
	}
	clientByID := make(map[uuid.UUID]*partner.Client, len(clients))
	for i := range clients {
		clientByID[clients[i].ID] = &clients[i]
	}

	response := &OverdueResponse{
		Invoices:     []OverdueRow{},
		TotalOverdue: decimal.Zero,
	}
	for i := range pastDue {
		inv := &pastDue[i]
		paid := billing.SumPayments(paymentsByInvoice[inv.ID])
		outstanding := inv.Outstanding(paid)
		if !outstanding.IsPositive() {
			continue
		}

		row := OverdueRow{
			InvoiceID:     inv.ID,
			InvoiceNumber: inv.InvoiceNumber,
			ClientID:      inv.ClientID,
			ClientName:    "Unknown",
			TripNumber:    s.tripNumberFor(ctx, tenantID, inv.TripID),
			DueDate:       inv.DueDate,
			DaysOverdue:   shared.DaysBetween(inv.DueDate, today),
			Total:         inv.Total,
			PaidAmount:    paid,
			Outstanding:   outstanding,
		}
		if client := clientByID[inv.ClientID]; client != nil {
			row.ClientName = client.Name
			row.ClientEmail = client.Email
			row.ClientWhatsApp = client.Whatsapp
			if row.ClientWhatsApp == "" {
				row.ClientWhatsApp = client.Phone
			}
		}
		response.Invoices = append(response.Invoices, row)
		response.TotalOverdue = response.TotalOverdue.Add(outstanding)
	}

	sort.Slice(response.Invoices, func(i, j int) bool {
		return response.Invoices[i].DaysOverdue > response.Invoices[j].DaysOverdue
	})
	response.Count = len(response.Invoices)
	return response, nil
}

// FinancialSummary aggregates the invoice book by lazily-corrected status
// with the ledger total received and the most recent invoices.
func (s *FinanceReportService) FinancialSummary(ctx context.Context, tenantID uuid.UUID) (*FinancialSummaryResponse, error) {
	filter := shared.DefaultFilter()
	filter.PageSize = 1000
	filter.OrderBy = "created_at"
	filter.OrderDir = "desc"
	invoices, err := s.invoiceRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	invoiceIDs := make([]uuid.UUID, len(invoices))
	for i := range invoices {
		invoiceIDs[i] = invoices[i].ID
	}
	paymentsByInvoice, err := s.paymentRepo.FindByInvoices(ctx, tenantID, invoiceIDs)
	if err != nil {
		return nil, err
	}

	today := shared.Today()
	response := &FinancialSummaryResponse{
		TotalsByStatus:   map[string]decimal.Decimal{},
		CountsByStatus:   map[string]int{},
		TotalOutstanding: decimal.Zero,
		TotalReceived:    decimal.Zero,
		RecentInvoices:   []ClientInvoiceSummary{},
	}
	for i := range invoices {
		inv := &invoices[i]
		status := effectiveStatus(inv, today)
		response.TotalsByStatus[status] = response.TotalsByStatus[status].Add(inv.Total)
		response.CountsByStatus[status]++
		if status == string(billing.InvoiceStatusSent) || status == string(billing.InvoiceStatusOverdue) {
			response.TotalOutstanding = response.TotalOutstanding.
				Add(inv.Outstanding(billing.SumPayments(paymentsByInvoice[inv.ID])))
		}
		response.TotalReceived = response.TotalReceived.Add(billing.SumPayments(paymentsByInvoice[inv.ID]))

		if len(response.RecentInvoices) < 5 {
			response.RecentInvoices = append(response.RecentInvoices, ClientInvoiceSummary{
				InvoiceID:     inv.ID,
				InvoiceNumber: inv.InvoiceNumber,
				Total:         inv.Total,
				PaidAmount:    billing.SumPayments(paymentsByInvoice[inv.ID]),
				Status:        status,
			})
		}
	}
	return response, nil
}

// DashboardStats assembles the landing-page counters and recent shipments
func (s *FinanceReportService) DashboardStats(ctx context.Context, tenantID uuid.UUID) (*DashboardStatsResponse, error) {
	activeClients := shared.DefaultFilter()
	activeClients.Filters = map[string]interface{}{"status": string(partner.ClientStatusActive)}
	totalClients, err := s.clientRepo.CountForTenant(ctx, tenantID, activeClients)
	if err != nil {
		return nil, err
	}
	totalShipments, err := s.shipmentRepo.CountForTenant(ctx, tenantID, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	totalTrips, err := s.tripRepo.CountForTenant(ctx, tenantID, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}

	statusCounts := map[string]int64{}
	for _, status := range []freight.ShipmentStatus{
		freight.ShipmentStatusWarehouse,
		freight.ShipmentStatusInTransit,
		freight.ShipmentStatusDelivered,
	} {
		byStatus := shared.DefaultFilter()
		byStatus.Filters = map[string]interface{}{"status": string(status)}
		n, err := s.shipmentRepo.CountForTenant(ctx, tenantID, byStatus)
		if err != nil {
			return nil, err
		}
		statusCounts[string(status)] = n
	}

	recentFilter := shared.DefaultFilter()
	recentFilter.PageSize = 5
	recentFilter.OrderBy = "created_at"
	recentFilter.OrderDir = "desc"
	shipments, err := s.shipmentRepo.FindAllForTenant(ctx, tenantID, recentFilter)
	if err != nil {
		return nil, err
	}

	clientIDs := make([]uuid.UUID, 0, len(shipments))
	for i := range shipments {
		if shipments[i].ClientID != uuid.Nil {
			clientIDs = append(clientIDs, shipments[i].ClientID)
		}
	}
	names := map[uuid.UUID]string{}
	if len(clientIDs) > 0 {
		clients, err := s.clientRepo.FindByIDs(ctx, tenantID, clientIDs)
		if err != nil {
			return nil, err
		}
		for i := range clients {
			names[clients[i].ID] = clients[i].Name
		}
	}

	recent := make([]RecentShipment, len(shipments))
	for i := range shipments {
		name := names[shipments[i].ClientID]
		if name == "" {
			name = "Unknown"
		}
		recent[i] = RecentShipment{
			ShipmentID:  shipments[i].ID,
			ClientName:  name,
			Description: shipments[i].Description,
			Destination: shipments[i].Destination,
			Status:      string(shipments[i].Status),
			TotalWeight: shipments[i].TotalWeight,
			CreatedAt:   shipments[i].CreatedAt,
		}
	}

	return &DashboardStatsResponse{
		TotalClients:    totalClients,
		TotalShipments:  totalShipments,
		TotalTrips:      totalTrips,
		ShipmentStatus:  statusCounts,
		RecentShipments: recent,
	}, nil
}

func (s *FinanceReportService) tripNumberFor(ctx context.Context, tenantID uuid.UUID, tripID *uuid.UUID) string {
	if tripID == nil {
		return "-"
	}
	t, err := s.tripRepo.FindByIDForTenant(ctx, tenantID, *tripID)
	if err != nil {
		return "-"
	}
	return t.TripNumber
}

// effectiveStatus renders an open invoice past its due date as overdue
// without persisting the flip; the write path owns that.
func effectiveStatus(inv *billing.Invoice, today string) string {
	if inv.Status.IsOpen() && inv.DueDate != "" && shared.DateBefore(inv.DueDate, today) {
		return string(billing.InvoiceStatusOverdue)
	}
	return string(inv.Status)
}

func isNotFound(err error) bool {
	return errors.Is(err, shared.ErrNotFound)
}
