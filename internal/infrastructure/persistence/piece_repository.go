package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/servex/backend/internal/domain/freight"
	"github.com/servex/backend/internal/domain/shared"
	"github.com/servex/backend/internal/infrastructure/persistence/models"
)

// GormPieceRepository implements PieceRepository using GORM.
// Pieces are scoped through their parent shipment rather than by tenant_id.
type GormPieceRepository struct {
	db *gorm.DB
}

// NewGormPieceRepository creates a new GormPieceRepository
func NewGormPieceRepository(db *gorm.DB) *GormPieceRepository {
	return &GormPieceRepository{db: db}
}

// FindByShipment finds all pieces of a shipment ordered by piece number
func (r *GormPieceRepository) FindByShipment(ctx context.Context, shipmentID uuid.UUID) ([]freight.ShipmentPiece, error) {
	var pieceModels []models.ShipmentPieceModel
	if err := r.db.WithContext(ctx).
		Where("shipment_id = ?", shipmentID).
		Order("piece_number ASC").
		Find(&pieceModels).Error; err != nil {
		return nil, err
	}

	pieces := make([]freight.ShipmentPiece, len(pieceModels))
	for i, model := range pieceModels {
		pieces[i] = *model.ToDomain()
	}
	return pieces, nil
}

// FindByShipments finds pieces for multiple shipments keyed by shipment ID
func (r *GormPieceRepository) FindByShipments(ctx context.Context, shipmentIDs []uuid.UUID) (map[uuid.UUID][]freight.ShipmentPiece, error) {
	result := make(map[uuid.UUID][]freight.ShipmentPiece)
	if len(shipmentIDs) == 0 {
		return result, nil
	}

	var pieceModels []models.ShipmentPieceModel
	if err := r.db.WithContext(ctx).
		Where("shipment_id IN ?", shipmentIDs).
		Order("piece_number ASC").
		Find(&pieceModels).Error; err != nil {
		return nil, err
	}

	for _, model := range pieceModels {
		result[model.ShipmentID] = append(result[model.ShipmentID], *model.ToDomain())
	}
	return result, nil
}

// FindByBarcode finds a piece by its barcode
func (r *GormPieceRepository) FindByBarcode(ctx context.Context, barcode string) (*freight.ShipmentPiece, error) {
	if barcode == "" {
		return nil, shared.NewDomainError("INVALID_BARCODE", "Barcode cannot be empty")
	}
	var model models.ShipmentPieceModel
	if err := r.db.WithContext(ctx).
		Where("barcode = ?", barcode).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a piece
func (r *GormPieceRepository) Save(ctx context.Context, piece *freight.ShipmentPiece) error {
	model := models.ShipmentPieceModelFromDomain(piece)
	return translateSaveError(r.db.WithContext(ctx).Save(model).Error)
}

// Delete deletes a piece
func (r *GormPieceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ShipmentPieceModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteByShipment deletes all pieces of a shipment
func (r *GormPieceRepository) DeleteByShipment(ctx context.Context, shipmentID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.ShipmentPieceModel{}, "shipment_id = ?", shipmentID).Error
}

// Ensure GormPieceRepository implements PieceRepository
var _ freight.PieceRepository = (*GormPieceRepository)(nil)
