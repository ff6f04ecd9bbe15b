package freight

import (
	"context"

	"github.com/google/uuid"

	auditapp "github.com/servex/backend/internal/application/audit"
	"github.com/servex/backend/internal/domain/audit"
	"github.com/servex/backend/internal/domain/freight"
	"github.com/servex/backend/internal/domain/shared"
	"github.com/servex/backend/internal/domain/trip"
)

// AssignmentService moves shipments on and off trips, keeping piece barcodes
// consistent with the shipment's position on the trip.
type AssignmentService struct {
	shipmentRepo freight.ShipmentRepository
	pieceRepo    freight.PieceRepository
	tripRepo     trip.Repository
	auditSvc     *auditapp.Service
}

// NewAssignmentService creates a new AssignmentService
func NewAssignmentService(shipmentRepo freight.ShipmentRepository, pieceRepo freight.PieceRepository, tripRepo trip.Repository, auditSvc *auditapp.Service) *AssignmentService {
	return &AssignmentService{
		shipmentRepo: shipmentRepo,
		pieceRepo:    pieceRepo,
		tripRepo:     tripRepo,
		auditSvc:     auditSvc,
	}
}

// Assign stages a shipment on a trip. The shipment's sequence on the trip is
// its position after the update (the post-update count of the trip's
// shipments) and every piece barcode is regenerated for that position.
// Locked trips admit only the owner.
func (s *AssignmentService) Assign(ctx context.Context, tenantID uuid.UUID, actor shared.Actor, tripID, shipmentID uuid.UUID) (*ShipmentResponse, error) {
	t, err := s.tripRepo.FindByIDForTenant(ctx, tenantID, tripID)
	if err != nil {
		return nil, err
	}
	if t.IsLocked() && !actor.IsOwner() {
		return nil, shared.ErrTripLocked
	}

	shipment, err := s.shipmentRepo.FindByIDForTenant(ctx, tenantID, shipmentID)
	if err != nil {
		return nil, err
	}
	if err := shipment.AssignToTrip(tripID); err != nil {
		return nil, err
	}
	if err := s.shipmentRepo.Save(ctx, shipment); err != nil {
		return nil, err
	}

	seq, err := s.shipmentRepo.CountByTrip(ctx, tenantID, tripID)
	if err != nil {
		return nil, err
	}

	pieces, err := s.pieceRepo.FindByShipment(ctx, shipmentID)
	if err != nil {
		return nil, err
	}
	shipment.Pieces = pieces
	shipment.RegeneratePieceBarcodes(t.TripNumber, int(seq))
	if len(shipment.Pieces) > 0 {
		if err := s.shipmentRepo.SavePieces(ctx, shipment.Pieces); err != nil {
			return nil, err
		}
	}

	s.record(ctx, tenantID, actor, shipmentID, audit.ValueMap{"trip_id": nil}, audit.ValueMap{
		"trip_id": tripID.String(),
		"status":  string(freight.ShipmentStatusStaged),
	})

	response := ToShipmentResponse(shipment)
	return &response, nil
}

// Unassign returns a shipment from a trip to the warehouse and resets its
// piece barcodes to temporary ones. Locked trips admit only the owner.
func (s *AssignmentService) Unassign(ctx context.Context, tenantID uuid.UUID, actor shared.Actor, tripID, shipmentID uuid.UUID) (*ShipmentResponse, error) {
	t, err := s.tripRepo.FindByIDForTenant(ctx, tenantID, tripID)
	if err != nil {
		return nil, err
	}
	if t.IsLocked() && !actor.IsOwner() {
		return nil, shared.ErrTripLocked
	}

	shipment, err := s.shipmentRepo.FindByIDForTenant(ctx, tenantID, shipmentID)
	if err != nil {
		return nil, err
	}
	if shipment.TripID == nil || *shipment.TripID != tripID {
		return nil, shared.NewDomainError("INVALID_STATE", "Shipment is not on this trip")
	}

	shipment.ReturnToWarehouse()
	if err := s.shipmentRepo.Save(ctx, shipment); err != nil {
		return nil, err
	}

	pieces, err := s.pieceRepo.FindByShipment(ctx, shipmentID)
	if err != nil {
		return nil, err
	}
	shipment.Pieces = pieces
	shipment.RegeneratePieceBarcodes("", 0)
	if len(shipment.Pieces) > 0 {
		if err := s.shipmentRepo.SavePieces(ctx, shipment.Pieces); err != nil {
			return nil, err
		}
	}

	s.record(ctx, tenantID, actor, shipmentID, audit.ValueMap{"trip_id": tripID.String()}, audit.ValueMap{
		"trip_id": nil,
		"status":  string(freight.ShipmentStatusWarehouse),
	})

	response := ToShipmentResponse(shipment)
	return &response, nil
}

// UnassignAllForTrip detaches every shipment from a trip, used by the trip
// delete cascade. Piece barcodes revert to temporary ones.
func (s *AssignmentService) UnassignAllForTrip(ctx context.Context, tenantID uuid.UUID, actor shared.Actor, tripID uuid.UUID) error {
	shipments, err := s.shipmentRepo.FindByTrip(ctx, tenantID, tripID)
	if err != nil {
		return err
	}
	for i := range shipments {
		shipment := &shipments[i]
		shipment.ReturnToWarehouse()
		if err := s.shipmentRepo.Save(ctx, shipment); err != nil {
			return err
		}
		pieces, err := s.pieceRepo.FindByShipment(ctx, shipment.ID)
		if err != nil {
			return err
		}
		shipment.Pieces = pieces
		shipment.RegeneratePieceBarcodes("", 0)
		if len(shipment.Pieces) > 0 {
			if err := s.shipmentRepo.SavePieces(ctx, shipment.Pieces); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *AssignmentService) record(ctx context.Context, tenantID uuid.UUID, actor shared.Actor, shipmentID uuid.UUID, oldValues, newValues audit.ValueMap) {
	if s.auditSvc == nil {
		return
	}
	s.auditSvc.Record(ctx, tenantID, actor, audit.ActionUpdate, "shipments", shipmentID, oldValues, newValues, "")
}
