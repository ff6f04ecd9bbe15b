package freight

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/servex/backend/internal/domain/freight"
)

// CreatePieceRequest describes one piece on shipment creation
type CreatePieceRequest struct {
	Weight   decimal.Decimal  `json:"weight" binding:"required"`
	LengthCm *decimal.Decimal `json:"length_cm"`
	WidthCm  *decimal.Decimal `json:"width_cm"`
	HeightCm *decimal.Decimal `json:"height_cm"`
	PhotoURL string           `json:"photo_url" binding:"max=500"`
}

// CreateShipmentRequest represents a request to create a new shipment
type CreateShipmentRequest struct {
	ClientID    uuid.UUID            `json:"client_id" binding:"required"`
	Description string               `json:"description" binding:"required,min=1,max=500"`
	Destination string               `json:"destination" binding:"max=200"`
	TotalWeight decimal.Decimal      `json:"total_weight"`
	TotalCbm    *decimal.Decimal     `json:"total_cbm"`
	Pieces      []CreatePieceRequest `json:"pieces" binding:"dive"`
	CreatedBy   *uuid.UUID           `json:"-"`
}

// UpdateShipmentRequest represents a partial update to a shipment
type UpdateShipmentRequest struct {
	Description *string          `json:"description" binding:"omitempty,min=1,max=500"`
	Destination *string          `json:"destination" binding:"omitempty,max=200"`
	TotalWeight *decimal.Decimal `json:"total_weight"`
	TotalCbm    *decimal.Decimal `json:"total_cbm"`
	Status      *string          `json:"status" binding:"omitempty,oneof=warehouse staged loaded in_transit delivered"`
}

// PieceResponse represents a piece in API responses
type PieceResponse struct {
	ID          uuid.UUID        `json:"id"`
	ShipmentID  uuid.UUID        `json:"shipment_id"`
	PieceNumber int              `json:"piece_number"`
	Weight      decimal.Decimal  `json:"weight"`
	LengthCm    *decimal.Decimal `json:"length_cm"`
	WidthCm     *decimal.Decimal `json:"width_cm"`
	HeightCm    *decimal.Decimal `json:"height_cm"`
	PhotoURL    string           `json:"photo_url"`
	Barcode     string           `json:"barcode"`
	LoadedAt    *time.Time       `json:"loaded_at"`
}

// ShipmentResponse represents a shipment in API responses
type ShipmentResponse struct {
	ID          uuid.UUID       `json:"id"`
	TenantID    uuid.UUID       `json:"tenant_id"`
	ClientID    uuid.UUID       `json:"client_id"`
	TripID      *uuid.UUID      `json:"trip_id"`
	Description string          `json:"description"`
	Destination string          `json:"destination"`
	TotalPieces int             `json:"total_pieces"`
	TotalWeight decimal.Decimal `json:"total_weight"`
	TotalCbm    decimal.Decimal `json:"total_cbm"`
	Status      string          `json:"status"`
	Pieces      []PieceResponse `json:"pieces,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Version     int             `json:"version"`
}

// ScanResponse is the result of scanning a piece barcode: the piece plus
// the shipment and client it belongs to.
type ScanResponse struct {
	Piece      PieceResponse    `json:"piece"`
	Shipment   ShipmentResponse `json:"shipment"`
	ClientName string           `json:"client_name"`
}

// ShipmentListFilter represents filter options for the shipment list
type ShipmentListFilter struct {
	Search   string     `form:"search"`
	Status   string     `form:"status" binding:"omitempty,oneof=warehouse staged loaded in_transit delivered"`
	ClientID *uuid.UUID `form:"client_id"`
	TripID   *uuid.UUID `form:"trip_id"`
	Page     int        `form:"page" binding:"omitempty,min=1"`
	PageSize int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string     `form:"order_by"`
	OrderDir string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToPieceResponse converts a domain piece to a response DTO
func ToPieceResponse(p *freight.ShipmentPiece) PieceResponse {
	return PieceResponse{
		ID:          p.ID,
		ShipmentID:  p.ShipmentID,
		PieceNumber: p.PieceNumber,
		Weight:      p.Weight,
		LengthCm:    p.LengthCm,
		WidthCm:     p.WidthCm,
		HeightCm:    p.HeightCm,
		PhotoURL:    p.PhotoURL,
		Barcode:     p.Barcode,
		LoadedAt:    p.LoadedAt,
	}
}

// ToShipmentResponse converts a domain shipment to a response DTO
func ToShipmentResponse(s *freight.Shipment) ShipmentResponse {
	resp := ShipmentResponse{
		ID:          s.ID,
		TenantID:    s.TenantID,
		ClientID:    s.ClientID,
		TripID:      s.TripID,
		Description: s.Description,
		Destination: s.Destination,
		TotalPieces: s.TotalPieces,
		TotalWeight: s.TotalWeight,
		TotalCbm:    s.TotalCbm,
		Status:      string(s.Status),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
		Version:     s.Version,
	}
	for i := range s.Pieces {
		resp.Pieces = append(resp.Pieces, ToPieceResponse(&s.Pieces[i]))
	}
	return resp
}
