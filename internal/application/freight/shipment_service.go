package freight

import (
	"context"
	"time"

	"github.com/google/uuid"

	auditapp "github.com/servex/backend/internal/application/audit"
	"github.com/servex/backend/internal/domain/audit"
	"github.com/servex/backend/internal/domain/freight"
	"github.com/servex/backend/internal/domain/partner"
	"github.com/servex/backend/internal/domain/shared"
)

// ShipmentService handles shipment and piece business operations
type ShipmentService struct {
	shipmentRepo freight.ShipmentRepository
	pieceRepo    freight.PieceRepository
	clientRepo   partner.ClientRepository
	auditSvc     *auditapp.Service
}

// NewShipmentService creates a new ShipmentService
func NewShipmentService(shipmentRepo freight.ShipmentRepository, pieceRepo freight.PieceRepository, clientRepo partner.ClientRepository, auditSvc *auditapp.Service) *ShipmentService {
	return &ShipmentService{
		shipmentRepo: shipmentRepo,
		pieceRepo:    pieceRepo,
		clientRepo:   clientRepo,
		auditSvc:     auditSvc,
	}
}

// Create creates a shipment and its pieces, each with a temporary barcode
func (s *ShipmentService) Create(ctx context.Context, tenantID uuid.UUID, actor shared.Actor, req CreateShipmentRequest) (*ShipmentResponse, error) {
	if _, err := s.clientRepo.FindByIDForTenant(ctx, tenantID, req.ClientID); err != nil {
		return nil, err
	}

	shipment, err := freight.NewShipment(tenantID, req.ClientID, req.Description, req.Destination, req.TotalWeight)
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		shipment.SetCreatedBy(*req.CreatedBy)
	}
	if req.TotalCbm != nil {
		shipment.TotalCbm = *req.TotalCbm
	}

	for i, pr := range req.Pieces {
		piece, err := freight.NewShipmentPiece(shipment.ID, i+1, pr.Weight)
		if err != nil {
			return nil, err
		}
		if pr.LengthCm != nil && pr.WidthCm != nil && pr.HeightCm != nil {
			piece.SetDimensions(*pr.LengthCm, *pr.WidthCm, *pr.HeightCm)
		}
		piece.PhotoURL = pr.PhotoURL
		shipment.Pieces = append(shipment.Pieces, *piece)
	}
	shipment.TotalPieces = shipment.PieceCount()

	if err := s.shipmentRepo.Save(ctx, shipment); err != nil {
		return nil, err
	}
	if len(shipment.Pieces) > 0 {
		if err := s.shipmentRepo.SavePieces(ctx, shipment.Pieces); err != nil {
			return nil, err
		}
	}

	s.record(ctx, tenantID, actor, audit.ActionCreate, shipment.ID, nil, audit.ValueMap{
		"client_id":   shipment.ClientID.String(),
		"description": shipment.Description,
		"pieces":      shipment.TotalPieces,
	})

	response := ToShipmentResponse(shipment)
	return &response, nil
}

// GetByID retrieves a shipment with its pieces
func (s *ShipmentService) GetByID(ctx context.Context, tenantID, shipmentID uuid.UUID) (*ShipmentResponse, error) {
	shipment, err := s.loadWithPieces(ctx, tenantID, shipmentID)
	if err != nil {
		return nil, err
	}
	response := ToShipmentResponse(shipment)
	return &response, nil
}

// List retrieves shipments with filtering and pagination
func (s *ShipmentService) List(ctx context.Context, tenantID uuid.UUID, filter ShipmentListFilter) ([]ShipmentResponse, int64, error) {
	domainFilter := toDomainFilter(filter)

	shipments, err := s.shipmentRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.shipmentRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ShipmentResponse, len(shipments))
	for i := range shipments {
		responses[i] = ToShipmentResponse(&shipments[i])
	}
	return responses, total, nil
}

// Update applies a partial update to a shipment
func (s *ShipmentService) Update(ctx context.Context, tenantID, shipmentID uuid.UUID, actor shared.Actor, req UpdateShipmentRequest) (*ShipmentResponse, error) {
	shipment, err := s.shipmentRepo.FindByIDForTenant(ctx, tenantID, shipmentID)
	if err != nil {
		return nil, err
	}

	old := audit.ValueMap{"status": string(shipment.Status)}

	if req.Description != nil {
		shipment.Description = *req.Description
	}
	if req.Destination != nil {
		shipment.Destination = *req.Destination
	}
	if req.TotalWeight != nil {
		if req.TotalWeight.IsNegative() {
			return nil, shared.NewDomainError("INVALID_WEIGHT", "Total weight cannot be negative")
		}
		shipment.TotalWeight = *req.TotalWeight
	}
	if req.TotalCbm != nil {
		shipment.TotalCbm = *req.TotalCbm
	}
	action := audit.ActionUpdate
	if req.Status != nil {
		if err := shipment.SetStatus(freight.ShipmentStatus(*req.Status)); err != nil {
			return nil, err
		}
		action = audit.ActionStatusChange
	}

	if err := s.shipmentRepo.Save(ctx, shipment); err != nil {
		return nil, err
	}
	s.record(ctx, tenantID, actor, action, shipment.ID, old, audit.ValueMap{"status": string(shipment.Status)})

	response := ToShipmentResponse(shipment)
	return &response, nil
}

// Delete removes a shipment and its pieces
func (s *ShipmentService) Delete(ctx context.Context, tenantID, shipmentID uuid.UUID, actor shared.Actor) error {
	shipment, err := s.shipmentRepo.FindByIDForTenant(ctx, tenantID, shipmentID)
	if err != nil {
		return err
	}
	if err := s.pieceRepo.DeleteByShipment(ctx, shipmentID); err != nil {
		return err
	}
	if err := s.shipmentRepo.DeleteForTenant(ctx, tenantID, shipmentID); err != nil {
		return err
	}
	s.record(ctx, tenantID, actor, audit.ActionDelete, shipmentID, audit.ValueMap{
		"description": shipment.Description,
	}, nil)
	return nil
}

// ScanBarcode resolves a piece barcode to the piece, its shipment and the
// owning client. Pieces outside the tenant stay invisible.
func (s *ShipmentService) ScanBarcode(ctx context.Context, tenantID uuid.UUID, barcode string) (*ScanResponse, error) {
	piece, err := s.pieceRepo.FindByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	shipment, err := s.shipmentRepo.FindByIDForTenant(ctx, tenantID, piece.ShipmentID)
	if err != nil {
		return nil, err
	}
	client, err := s.clientRepo.FindByIDForTenant(ctx, tenantID, shipment.ClientID)
	if err != nil {
		return nil, err
	}

	return &ScanResponse{
		Piece:      ToPieceResponse(piece),
		Shipment:   ToShipmentResponse(shipment),
		ClientName: client.Name,
	}, nil
}

// MarkPieceLoaded stamps a piece as scanned onto the vehicle. The tenant
// check goes through the owning shipment.
func (s *ShipmentService) MarkPieceLoaded(ctx context.Context, tenantID uuid.UUID, barcode string) (*PieceResponse, error) {
	piece, err := s.pieceRepo.FindByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	if _, err := s.shipmentRepo.FindByIDForTenant(ctx, tenantID, piece.ShipmentID); err != nil {
		return nil, err
	}

	piece.MarkLoaded(time.Now())
	if err := s.pieceRepo.Save(ctx, piece); err != nil {
		return nil, err
	}

	response := ToPieceResponse(piece)
	return &response, nil
}

func (s *ShipmentService) loadWithPieces(ctx context.Context, tenantID, shipmentID uuid.UUID) (*freight.Shipment, error) {
	shipment, err := s.shipmentRepo.FindByIDForTenant(ctx, tenantID, shipmentID)
	if err != nil {
		return nil, err
	}
	pieces, err := s.pieceRepo.FindByShipment(ctx, shipmentID)
	if err != nil {
		return nil, err
	}
	shipment.Pieces = pieces
	return shipment, nil
}

func (s *ShipmentService) record(ctx context.Context, tenantID uuid.UUID, actor shared.Actor, action audit.Action, recordID uuid.UUID, oldValues, newValues audit.ValueMap) {
	if s.auditSvc == nil {
		return
	}
	s.auditSvc.Record(ctx, tenantID, actor, action, "shipments", recordID, oldValues, newValues, "")
}

func toDomainFilter(filter ShipmentListFilter) shared.Filter {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		f.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		f.OrderDir = filter.OrderDir
	}
	f.Search = filter.Search
	filters := map[string]interface{}{}
	if filter.Status != "" {
		filters["status"] = filter.Status
	}
	if filter.ClientID != nil {
		filters["client_id"] = *filter.ClientID
	}
	if filter.TripID != nil {
		filters["trip_id"] = *filter.TripID
	}
	if len(filters) > 0 {
		f.Filters = filters
	}
	return f
}
