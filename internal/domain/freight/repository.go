package freight

import (
	"context"

	"github.com/google/uuid"

	"github.com/servex/backend/internal/domain/shared"
)

// ShipmentRepository defines persistence operations for shipments
type ShipmentRepository interface {
	shared.TenantReader[Shipment]
	FindByTrip(ctx context.Context, tenantID, tripID uuid.UUID) ([]Shipment, error)
	CountByTrip(ctx context.Context, tenantID, tripID uuid.UUID) (int64, error)
	Save(ctx context.Context, shipment *Shipment) error
	SavePieces(ctx context.Context, pieces []ShipmentPiece) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// PieceRepository defines persistence operations for shipment pieces
type PieceRepository interface {
	FindByShipment(ctx context.Context, shipmentID uuid.UUID) ([]ShipmentPiece, error)
	FindByShipments(ctx context.Context, shipmentIDs []uuid.UUID) (map[uuid.UUID][]ShipmentPiece, error)
	FindByBarcode(ctx context.Context, barcode string) (*ShipmentPiece, error)
	Save(ctx context.Context, piece *ShipmentPiece) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByShipment(ctx context.Context, shipmentID uuid.UUID) error
}
