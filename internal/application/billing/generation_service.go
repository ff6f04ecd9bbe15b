package billing

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/servex/backend/internal/domain/billing"
	"github.com/servex/backend/internal/domain/freight"
	"github.com/servex/backend/internal/domain/partner"
	"github.com/servex/backend/internal/domain/shared"
	"github.com/servex/backend/internal/domain/trip"
	"github.com/servex/backend/internal/infrastructure/telemetry"
)

// GenerationService turns a trip's shipments into per-client draft invoices
type GenerationService struct {
	tripRepo     trip.Repository
	shipmentRepo freight.ShipmentRepository
	clientRepo   partner.ClientRepository
	rateRepo     partner.ClientRateRepository
	invoiceRepo  billing.InvoiceRepository
	logger       *zap.Logger
}

// NewGenerationService creates a new GenerationService
func NewGenerationService(tripRepo trip.Repository, shipmentRepo freight.ShipmentRepository, clientRepo partner.ClientRepository, rateRepo partner.ClientRateRepository, invoiceRepo billing.InvoiceRepository, logger *zap.Logger) *GenerationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GenerationService{
		tripRepo:     tripRepo,
		shipmentRepo: shipmentRepo,
		clientRepo:   clientRepo,
		rateRepo:     rateRepo,
		invoiceRepo:  invoiceRepo,
		logger:       logger,
	}
}

// GenerateForTrip creates one draft invoice per client with shipments on the
// trip. A client whose shipment set is already invoiced is skipped, so the
// operation is idempotent. One client's failure never blocks the others.
func (s *GenerationService) GenerateForTrip(ctx context.Context, tenantID, tripID uuid.UUID) (*GenerationResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "invoice", "generate_for_trip",
		telemetry.WithAttribute(telemetry.SpanAttrTenantID, tenantID),
		telemetry.WithAttribute(telemetry.SpanAttrTripID, tripID),
	)
	defer span.End()

	t, err := s.tripRepo.FindByIDForTenant(ctx, tenantID, tripID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	shipments, err := s.shipmentRepo.FindByTrip(ctx, tenantID, tripID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	existing, err := s.invoiceRepo.FindByTrip(ctx, tenantID, tripID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	groups := groupByClient(shipments)
	clientIDs := make([]uuid.UUID, 0, len(groups))
	for clientID := range groups {
		clientIDs = append(clientIDs, clientID)
	}
	// Deterministic order keeps retries and logs stable
	sort.Slice(clientIDs, func(i, j int) bool { return clientIDs[i].String() < clientIDs[j].String() })

	ratesByClient, err := s.rateRepo.FindByClients(ctx, tenantID, clientIDs)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	result := &GenerationResult{Failed: map[string]string{}}
	today := shared.Today()

	for _, clientID := range clientIDs {
		group := groups[clientID]

		if alreadyInvoiced(existing, group) {
			result.Skipped = append(result.Skipped, clientID)
			continue
		}

		inv, err := s.generateForClient(ctx, tenantID, t, clientID, group, ratesByClient[clientID], today)
		if err != nil {
			s.logger.Warn("invoice generation failed for client",
				zap.String("trip_number", t.TripNumber),
				zap.String("client_id", clientID.String()),
				zap.Error(err))
			telemetry.AddEvent(span, "client_generation_failed",
				telemetry.SpanAttrClientID, clientID)
			result.Failed[clientID.String()] = err.Error()
			continue
		}
		result.Created = append(result.Created, ToInvoiceResponse(inv, nil))
	}

	if len(result.Failed) == 0 {
		result.Failed = nil
	}
	telemetry.SetAttributes(span,
		"invoices_created", len(result.Created),
		"clients_skipped", len(result.Skipped),
		"clients_failed", len(result.Failed),
	)
	telemetry.SetOK(span)
	return result, nil
}

func (s *GenerationService) generateForClient(ctx context.Context, tenantID uuid.UUID, t *trip.Trip, clientID uuid.UUID, group []freight.Shipment, rates []partner.ClientRate, today string) (*billing.Invoice, error) {
	client, err := s.clientRepo.FindByIDForTenant(ctx, tenantID, clientID)
	if err != nil {
		return nil, err
	}

	rate := billing.DefaultRatePerKg
	if current := partner.CurrentRate(rates, today); current != nil {
		rate = current.RateValue
	} else if client.DefaultRateValue != nil {
		rate = *client.DefaultRateValue
	}

	weight := decimal.Zero
	shipmentIDs := make([]uuid.UUID, len(group))
	for i := range group {
		weight = weight.Add(group[i].TotalWeight)
		shipmentIDs[i] = group[i].ID
	}

	inv, err := s.newNumberedInvoice(ctx, tenantID, client, t, shipmentIDs, weight, rate)
	if err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Save(ctx, inv); err != nil {
		// A concurrent generator may have taken the number; recompute and
		// retry once before giving up.
		if errors.Is(err, shared.ErrConflict) {
			inv, retryErr := s.newNumberedInvoice(ctx, tenantID, client, t, shipmentIDs, weight, rate)
			if retryErr != nil {
				return nil, retryErr
			}
			if retryErr := s.invoiceRepo.Save(ctx, inv); retryErr != nil {
				return nil, retryErr
			}
			return inv, nil
		}
		return nil, err
	}
	return inv, nil
}

func (s *GenerationService) newNumberedInvoice(ctx context.Context, tenantID uuid.UUID, client *partner.Client, t *trip.Trip, shipmentIDs []uuid.UUID, weight, rate decimal.Decimal) (*billing.Invoice, error) {
	numbers, err := s.invoiceRepo.ListNumbers(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	number := billing.NextInvoiceNumber(numbers, time.Now().UTC().Year())
	return billing.NewTripInvoice(tenantID, client.ID, t.ID, number, client.DefaultCurrency, shipmentIDs, weight, rate)
}

func groupByClient(shipments []freight.Shipment) map[uuid.UUID][]freight.Shipment {
	groups := make(map[uuid.UUID][]freight.Shipment)
	for _, sh := range shipments {
		if sh.ClientID == uuid.Nil {
			continue
		}
		groups[sh.ClientID] = append(groups[sh.ClientID], sh)
	}
	return groups
}

// alreadyInvoiced reports whether an existing invoice covers exactly this
// group's shipment set
func alreadyInvoiced(existing []billing.Invoice, group []freight.Shipment) bool {
	ids := make([]uuid.UUID, len(group))
	for i := range group {
		ids[i] = group[i].ID
	}
	for i := range existing {
		if existing[i].ShipmentIDs.EqualSet(ids) {
			return true
		}
	}
	return false
}
