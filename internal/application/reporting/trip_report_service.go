package reporting

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/servex/backend/internal/domain/billing"
	"github.com/servex/backend/internal/domain/fleet"
	"github.com/servex/backend/internal/domain/freight"
	"github.com/servex/backend/internal/domain/partner"
	"github.com/servex/backend/internal/domain/shared"
	"github.com/servex/backend/internal/domain/trip"
)

// TripReportService builds the read-only trip views by joining shipments,
// pieces, invoices and the payment ledger.
type TripReportService struct {
	tripRepo     trip.Repository
	shipmentRepo freight.ShipmentRepository
	pieceRepo    freight.PieceRepository
	invoiceRepo  billing.InvoiceRepository
	paymentRepo  billing.PaymentRepository
	clientRepo   partner.ClientRepository
	vehicleRepo  fleet.VehicleRepository
	driverRepo   fleet.DriverRepository
}

// NewTripReportService creates a new TripReportService
func NewTripReportService(
	tripRepo trip.Repository,
	shipmentRepo freight.ShipmentRepository,
	pieceRepo freight.PieceRepository,
	invoiceRepo billing.InvoiceRepository,
	paymentRepo billing.PaymentRepository,
	clientRepo partner.ClientRepository,
	vehicleRepo fleet.VehicleRepository,
	driverRepo fleet.DriverRepository,
) *TripReportService {
	return &TripReportService{
		tripRepo:     tripRepo,
		shipmentRepo: shipmentRepo,
		pieceRepo:    pieceRepo,
		invoiceRepo:  invoiceRepo,
		paymentRepo:  paymentRepo,
		clientRepo:   clientRepo,
		vehicleRepo:  vehicleRepo,
		driverRepo:   driverRepo,
	}
}

// Summary builds the single-trip summary with piece counts and the
// dual-linkage invoiced value.
func (s *TripReportService) Summary(ctx context.Context, tenantID, tripID uuid.UUID) (*TripSummaryResponse, error) {
	t, err := s.tripRepo.FindByIDForTenant(ctx, tenantID, tripID)
	if err != nil {
		return nil, err
	}
	shipments, err := s.shipmentRepo.FindByTrip(ctx, tenantID, tripID)
	if err != nil {
		return nil, err
	}

	stats, err := s.tripStats(ctx, tenantID, tripID, shipments)
	if err != nil {
		return nil, err
	}

	shipmentIDs := make([]uuid.UUID, len(shipments))
	for i := range shipments {
		shipmentIDs[i] = shipments[i].ID
	}
	piecesByShipment, err := s.pieceRepo.FindByShipments(ctx, shipmentIDs)
	if err != nil {
		return nil, err
	}
	for _, pieces := range piecesByShipment {
		stats.TotalPieces += len(pieces)
	}

	vehicle, driver, err := s.enrich(ctx, tenantID, t)
	if err != nil {
		return nil, err
	}

	return &TripSummaryResponse{
		TripID:        t.ID,
		TripNumber:    t.TripNumber,
		Status:        string(t.Status),
		Route:         t.Route,
		DepartureDate: t.DepartureDate,
		Vehicle:       vehicle,
		Driver:        driver,
		Stats:         stats,
		CreatedAt:     t.CreatedAt,
	}, nil
}

// ListWithStats returns trips newest first, each with its derived stats
func (s *TripReportService) ListWithStats(ctx context.Context, tenantID uuid.UUID, status string) ([]TripWithStats, error) {
	filter := shared.DefaultFilter()
	filter.PageSize = 100
	filter.OrderBy = "created_at"
	filter.OrderDir = "desc"
	if status != "" && status != "all" {
		filter.Filters = map[string]interface{}{"status": status}
	}

	trips, err := s.tripRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	result := make([]TripWithStats, 0, len(trips))
	for i := range trips {
		t := &trips[i]
		shipments, err := s.shipmentRepo.FindByTrip(ctx, tenantID, t.ID)
		if err != nil {
			return nil, err
		}
		stats, err := s.tripStats(ctx, tenantID, t.ID, shipments)
		if err != nil {
			return nil, err
		}
		vehicle, driver, err := s.enrich(ctx, tenantID, t)
		if err != nil {
			return nil, err
		}
		result = append(result, TripWithStats{
			TripID:        t.ID,
			TripNumber:    t.TripNumber,
			Status:        string(t.Status),
			Route:         t.Route,
			DepartureDate: t.DepartureDate,
			Vehicle:       vehicle,
			Driver:        driver,
			Stats:         stats,
			CreatedAt:     t.CreatedAt,
		})
	}
	return result, nil
}

// Parcels returns the shipments on a trip with client names, pieces and an
// optional load-state filter (not_loaded, loaded, delivered).
func (s *TripReportService) Parcels(ctx context.Context, tenantID, tripID uuid.UUID, loadFilter string) ([]TripParcelRow, error) {
	if _, err := s.tripRepo.FindByIDForTenant(ctx, tenantID, tripID); err != nil {
		return nil, err
	}
	shipments, err := s.shipmentRepo.FindByTrip(ctx, tenantID, tripID)
	if err != nil {
		return nil, err
	}

	filtered := shipments[:0]
	for _, sh := range shipments {
		switch loadFilter {
		case "not_loaded":
			if sh.Status != freight.ShipmentStatusWarehouse && sh.Status != freight.ShipmentStatusStaged {
				continue
			}
		case "loaded":
			if sh.Status != freight.ShipmentStatusLoaded {
				continue
			}
		case "delivered":
			if sh.Status != freight.ShipmentStatusDelivered {
				continue
			}
		}
		filtered = append(filtered, sh)
	}

	shipmentIDs := make([]uuid.UUID, len(filtered))
	clientIDs := make([]uuid.UUID, 0, len(filtered))
	for i := range filtered {
		shipmentIDs[i] = filtered[i].ID
		if filtered[i].ClientID != uuid.Nil {
			clientIDs = append(clientIDs, filtered[i].ClientID)
		}
	}
	piecesByShipment, err := s.pieceRepo.FindByShipments(ctx, shipmentIDs)
	if err != nil {
		return nil, err
	}
	names, err := s.clientNames(ctx, tenantID, clientIDs)
	if err != nil {
		return nil, err
	}

	rows := make([]TripParcelRow, len(filtered))
	for i := range filtered {
		sh := &filtered[i]
		pieces := piecesByShipment[sh.ID]
		barcodes := make([]string, len(pieces))
		for j := range pieces {
			barcodes[j] = pieces[j].Barcode
		}
		rows[i] = TripParcelRow{
			ShipmentID:  sh.ID,
			ClientID:    sh.ClientID,
			ClientName:  names[sh.ClientID],
			Description: sh.Description,
			Destination: sh.Destination,
			Status:      string(sh.Status),
			TotalWeight: sh.TotalWeight,
			PieceCount:  len(pieces),
			Barcodes:    barcodes,
			CreatedAt:   sh.CreatedAt,
		}
	}
	return rows, nil
}

// ClientsSummary groups a trip's shipments by client together with each
// client's invoices and ledger-derived paid amounts. Clients that only appear
// through an invoice, with no parcels on the trip, are included too.
func (s *TripReportService) ClientsSummary(ctx context.Context, tenantID, tripID uuid.UUID) (*TripClientsSummaryResponse, error) {
	if _, err := s.tripRepo.FindByIDForTenant(ctx, tenantID, tripID); err != nil {
		return nil, err
	}
	shipments, err := s.shipmentRepo.FindByTrip(ctx, tenantID, tripID)
	if err != nil {
		return nil, err
	}
	invoices, err := s.invoicesForTrip(ctx, tenantID, tripID, shipments)
	if err != nil {
		return nil, err
	}

	type group struct {
		parcels  int
		weight   decimal.Decimal
		invoices []billing.Invoice
	}
	groups := map[uuid.UUID]*group{}
	for i := range shipments {
		clientID := shipments[i].ClientID
		if clientID == uuid.Nil {
			continue
		}
		g := groups[clientID]
		if g == nil {
			g = &group{weight: decimal.Zero}
			groups[clientID] = g
		}
		g.parcels++
		g.weight = g.weight.Add(shipments[i].TotalWeight)
	}
	for i := range invoices {
		clientID := invoices[i].ClientID
		g := groups[clientID]
		if g == nil {
			g = &group{weight: decimal.Zero}
			groups[clientID] = g
		}
		g.invoices = append(g.invoices, invoices[i])
	}

	invoiceIDs := make([]uuid.UUID, len(invoices))
	for i := range invoices {
		invoiceIDs[i] = invoices[i].ID
	}
	paymentsByInvoice, err := s.paymentRepo.FindByInvoices(ctx, tenantID, invoiceIDs)
	if err != nil {
		return nil, err
	}

	clientIDs := make([]uuid.UUID, 0, len(groups))
	for clientID := range groups {
		clientIDs = append(clientIDs, clientID)
	}
	clients, err := s.clientRepo.FindByIDs(ctx, tenantID, clientIDs)
	if err != nil {
		return nil, err
	}
	clientByID := make(map[uuid.UUID]*partner.Client, len(clients))
	for i := range clients {
		clientByID[clients[i].ID] = &clients[i]
	}

	totals := TripClientsTotals{
		TotalWeight:   decimal.Zero,
		TotalInvoiced: decimal.Zero,
		TotalPaid:     decimal.Zero,
	}
	summaries := make([]TripClientSummary, 0, len(groups))
	for _, clientID := range clientIDs {
		g := groups[clientID]
		summary := TripClientSummary{
			ClientID:    clientID,
			ClientName:  "Unknown",
			ParcelCount: g.parcels,
			TotalWeight: g.weight,
			Invoices:    []ClientInvoiceSummary{},
		}
		if client := clientByID[clientID]; client != nil {
			summary.ClientName = client.Name
			summary.ClientPhone = client.Phone
		}
		for i := range g.invoices {
			inv := &g.invoices[i]
			paid := billing.SumPayments(paymentsByInvoice[inv.ID])
			summary.Invoices = append(summary.Invoices, ClientInvoiceSummary{
				InvoiceID:     inv.ID,
				InvoiceNumber: inv.InvoiceNumber,
				Total:         inv.Total,
				PaidAmount:    paid,
				Status:        string(inv.Status),
			})
			totals.TotalInvoiced = totals.TotalInvoiced.Add(inv.Total)
			totals.TotalPaid = totals.TotalPaid.Add(paid)
		}
		totals.TotalParcels += g.parcels
		totals.TotalWeight = totals.TotalWeight.Add(g.weight)
		summaries = append(summaries, summary)
	}
	totals.TotalClients = len(summaries)

	sort.Slice(summaries, func(i, j int) bool {
		return strings.ToLower(summaries[i].ClientName) < strings.ToLower(summaries[j].ClientName)
	})
	return &TripClientsSummaryResponse{Clients: summaries, Totals: totals}, nil
}

// Worksheet builds the per-trip collection sheet: one row per invoice with
// the client's shipped weight, sorted by lowercased client name.
func (s *TripReportService) Worksheet(ctx context.Context, tenantID, tripID uuid.UUID) (*WorksheetResponse, error) {
	t, err := s.tripRepo.FindByIDForTenant(ctx, tenantID, tripID)
	if err != nil {
		return nil, err
	}
	invoices, err := s.invoiceRepo.FindByTrip(ctx, tenantID, tripID)
	if err != nil {
		return nil, err
	}
	shipments, err := s.shipmentRepo.FindByTrip(ctx, tenantID, tripID)
	if err != nil {
		return nil, err
	}

	clientWeights := map[uuid.UUID]decimal.Decimal{}
	for i := range shipments {
		clientID := shipments[i].ClientID
		clientWeights[clientID] = clientWeights[clientID].Add(shipments[i].TotalWeight)
	}

	invoiceIDs := make([]uuid.UUID, len(invoices))
	clientIDs := make([]uuid.UUID, 0, len(invoices))
	for i := range invoices {
		invoiceIDs[i] = invoices[i].ID
		clientIDs = append(clientIDs, invoices[i].ClientID)
	}
	paymentsByInvoice, err := s.paymentRepo.FindByInvoices(ctx, tenantID, invoiceIDs)
	if err != nil {
		return nil, err
	}
	names, err := s.clientNames(ctx, tenantID, clientIDs)
	if err != nil {
		return nil, err
	}

	today := shared.Today()
	summary := WorksheetSummary{
		TotalRevenue:      decimal.Zero,
		TotalCollected:    decimal.Zero,
		TotalOutstanding:  decimal.Zero,
		CollectionPercent: decimal.Zero,
		InvoicesTotal:     len(invoices),
	}
	rows := make([]WorksheetRow, len(invoices))
	for i := range invoices {
		inv := &invoices[i]
		paid := billing.SumPayments(paymentsByInvoice[inv.ID])
		outstanding := inv.Outstanding(paid)

		summary.TotalRevenue = summary.TotalRevenue.Add(inv.Total)
		summary.TotalCollected = summary.TotalCollected.Add(paid)
		summary.TotalOutstanding = summary.TotalOutstanding.Add(outstanding)
		if inv.IsPaid() {
			summary.InvoicesPaid++
		}

		rows[i] = WorksheetRow{
			InvoiceID:     inv.ID,
			InvoiceNumber: inv.InvoiceNumber,
			ClientID:      inv.ClientID,
			ClientName:    names[inv.ClientID],
			WeightKg:      clientWeights[inv.ClientID].Round(2),
			Total:         inv.Total,
			Paid:          paid,
			Outstanding:   outstanding,
			Status:        effectiveStatus(inv, today),
			DueDate:       inv.DueDate,
		}
	}
	if summary.TotalRevenue.IsPositive() {
		summary.CollectionPercent = summary.TotalCollected.
			Div(summary.TotalRevenue).
			Mul(decimal.NewFromInt(100)).
			Round(1)
	}

	sort.Slice(rows, func(i, j int) bool {
		return strings.ToLower(rows[i].ClientName) < strings.ToLower(rows[j].ClientName)
	})
	return &WorksheetResponse{
		TripID:        t.ID,
		TripNumber:    t.TripNumber,
		Status:        string(t.Status),
		Route:         t.Route,
		DepartureDate: t.DepartureDate,
		Summary:       summary,
		Invoices:      rows,
	}, nil
}

// tripStats derives the counters shown on trip summaries and lists
func (s *TripReportService) tripStats(ctx context.Context, tenantID, tripID uuid.UUID, shipments []freight.Shipment) (TripStats, error) {
	stats := TripStats{
		TotalParcels:  len(shipments),
		TotalWeight:   decimal.Zero,
		InvoicedValue: decimal.Zero,
	}

	clients := map[uuid.UUID]struct{}{}
	for i := range shipments {
		stats.TotalWeight = stats.TotalWeight.Add(shipments[i].TotalWeight)
		if shipments[i].ClientID != uuid.Nil {
			clients[shipments[i].ClientID] = struct{}{}
		}
		if shipments[i].Status.CountsAsLoaded() {
			stats.LoadedParcels++
		}
	}
	stats.TotalClients = len(clients)
	stats.TotalWeight = stats.TotalWeight.Round(2)
	if stats.TotalParcels > 0 {
		stats.LoadingPercentage = int(math.Round(float64(stats.LoadedParcels) / float64(stats.TotalParcels) * 100))
	}

	invoices, err := s.invoicesForTrip(ctx, tenantID, tripID, shipments)
	if err != nil {
		return stats, err
	}
	for i := range invoices {
		stats.InvoicedValue = stats.InvoicedValue.Add(invoices[i].Total)
	}
	return stats, nil
}

// invoicesForTrip unions invoices linked by trip_id with invoices linked
// through shipment IDs and deduplicates by invoice ID. The shipment linkage
// covers invoices created before trips carried a direct reference.
func (s *TripReportService) invoicesForTrip(ctx context.Context, tenantID, tripID uuid.UUID, shipments []freight.Shipment) ([]billing.Invoice, error) {
	byTrip, err := s.invoiceRepo.FindByTrip(ctx, tenantID, tripID)
	if err != nil {
		return nil, err
	}

	var byShipments []billing.Invoice
	if len(shipments) > 0 {
		shipmentIDs := make([]uuid.UUID, len(shipments))
		for i := range shipments {
			shipmentIDs[i] = shipments[i].ID
		}
		byShipments, err = s.invoiceRepo.FindByShipmentIDs(ctx, tenantID, shipmentIDs)
		if err != nil {
			return nil, err
		}
	}

	seen := map[uuid.UUID]struct{}{}
	union := make([]billing.Invoice, 0, len(byTrip)+len(byShipments))
	for _, inv := range append(byTrip, byShipments...) {
		if _, ok := seen[inv.ID]; ok {
			continue
		}
		seen[inv.ID] = struct{}{}
		union = append(union, inv)
	}
	return union, nil
}

func (s *TripReportService) enrich(ctx context.Context, tenantID uuid.UUID, t *trip.Trip) (*TripVehicleInfo, *TripDriverInfo, error) {
	var vehicle *TripVehicleInfo
	if t.VehicleID != nil {
		v, err := s.vehicleRepo.FindByIDForTenant(ctx, tenantID, *t.VehicleID)
		if err != nil && !isNotFound(err) {
			return nil, nil, err
		}
		if v != nil {
			vehicle = &TripVehicleInfo{ID: v.ID, Name: v.Name, RegistrationNumber: v.RegistrationNumber}
		}
	}
	var driver *TripDriverInfo
	if t.DriverID != nil {
		d, err := s.driverRepo.FindByIDForTenant(ctx, tenantID, *t.DriverID)
		if err != nil && !isNotFound(err) {
			return nil, nil, err
		}
		if d != nil {
			driver = &TripDriverInfo{ID: d.ID, Name: d.Name, Phone: d.Phone}
		}
	}
	return vehicle, driver, nil
}

func (s *TripReportService) clientNames(ctx context.Context, tenantID uuid.UUID, clientIDs []uuid.UUID) (map[uuid.UUID]string, error) {
	names := map[uuid.UUID]string{}
	if len(clientIDs) == 0 {
		return names, nil
	}
	clients, err := s.clientRepo.FindByIDs(ctx, tenantID, clientIDs)
	if err != nil {
		return nil, err
	}
	for i := range clients {
		names[clients[i].ID] = clients[i].Name
	}
	return names, nil
}
