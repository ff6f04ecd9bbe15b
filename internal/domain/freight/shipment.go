package freight

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/servex/backend/internal/domain/shared"
)

// ShipmentStatus represents where a shipment is in the freight lifecycle
type ShipmentStatus string

const (
	ShipmentStatusWarehouse ShipmentStatus = "warehouse"
	ShipmentStatusStaged    ShipmentStatus = "staged"
	ShipmentStatusLoaded    ShipmentStatus = "loaded"
	ShipmentStatusInTransit ShipmentStatus = "in_transit"
	ShipmentStatusDelivered ShipmentStatus = "delivered"
)

// IsValid checks if the status is a valid ShipmentStatus
func (s ShipmentStatus) IsValid() bool {
	switch s {
	case ShipmentStatusWarehouse, ShipmentStatusStaged, ShipmentStatusLoaded,
		ShipmentStatusInTransit, ShipmentStatusDelivered:
		return true
	}
	return false
}

// String returns the string representation of ShipmentStatus
func (s ShipmentStatus) String() string {
	return string(s)
}

// CountsAsLoaded reports whether the status counts toward a trip's loading
// progress. Anything staged or beyond is on (or through) the vehicle.
func (s ShipmentStatus) CountsAsLoaded() bool {
	switch s {
	case ShipmentStatusStaged, ShipmentStatusLoaded, ShipmentStatusInTransit, ShipmentStatusDelivered:
		return true
	}
	return false
}

// ShipmentPiece is a physically barcoded unit within a shipment
type ShipmentPiece struct {
	shared.BaseEntity
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

// NewShipmentPiece creates a piece with a temporary barcode
func NewShipmentPiece(shipmentID uuid.UUID, pieceNumber int, weight decimal.Decimal) (*ShipmentPiece, error) {
	if shipmentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SHIPMENT", "Shipment ID cannot be empty")
	}
	if pieceNumber <= 0 {
		return nil, shared.NewDomainError("INVALID_PIECE_NUMBER", "Piece number must be positive")
	}
	if weight.IsNegative() {
		return nil, shared.NewDomainError("INVALID_WEIGHT", "Piece weight cannot be negative")
	}
	return &ShipmentPiece{
		BaseEntity:  shared.NewBaseEntity(),
		ShipmentID:  shipmentID,
		PieceNumber: pieceNumber,
		Weight:      weight,
		Barcode:     TempBarcode(),
	}, nil
}

// SetDimensions sets the measured dimensions in centimetres
func (p *ShipmentPiece) SetDimensions(length, width, height decimal.Decimal) {
	p.LengthCm = &length
	p.WidthCm = &width
	p.HeightCm = &height
	p.Touch()
}

// MarkLoaded stamps the piece as scanned onto the vehicle.
// The stamp is written once; rescans keep the first time.
func (p *ShipmentPiece) MarkLoaded(at time.Time) {
	if p.LoadedAt == nil {
		p.LoadedAt = &at
	}
	p.Touch()
}

// IsLoaded reports whether the piece has been scanned onto a vehicle
func (p *ShipmentPiece) IsLoaded() bool {
	return p.LoadedAt != nil
}

// Shipment represents a client's consignment aggregate root.
// A shipment is either in the warehouse (TripID nil) or assigned to exactly
// one trip.
type Shipment struct {
	shared.TenantAggregateRoot
	ClientID    uuid.UUID       `json:"client_id"`
	TripID      *uuid.UUID      `json:"trip_id"`
	Description string          `json:"description"`
	Destination string          `json:"destination"`
	TotalPieces int             `json:"total_pieces"`
	TotalWeight decimal.Decimal `json:"total_weight"`
	TotalCbm    decimal.Decimal `json:"total_cbm"`
	Status      ShipmentStatus  `json:"status"`
	Pieces      []ShipmentPiece `json:"pieces" gorm:"-"`
}

// NewShipment creates a new shipment in the warehouse
func NewShipment(tenantID, clientID uuid.UUID, description, destination string, totalWeight decimal.Decimal) (*Shipment, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Shipment description cannot be empty")
	}
	if totalWeight.IsNegative() {
		return nil, shared.NewDomainError("INVALID_WEIGHT", "Total weight cannot be negative")
	}

	return &Shipment{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ClientID:            clientID,
		Description:         description,
		Destination:         destination,
		TotalWeight:         totalWeight,
		TotalCbm:            decimal.Zero,
		Status:              ShipmentStatusWarehouse,
	}, nil
}

// AssignToTrip stages the shipment on a trip. Piece barcodes must be
// regenerated by the caller once the shipment's sequence on the trip is known.
func (s *Shipment) AssignToTrip(tripID uuid.UUID) error {
	if tripID == uuid.Nil {
		return shared.NewDomainError("INVALID_TRIP", "Trip ID cannot be empty")
	}
	s.TripID = &tripID
	s.Status = ShipmentStatusStaged
	s.touch()
	return nil
}

// ReturnToWarehouse detaches the shipment from its trip
func (s *Shipment) ReturnToWarehouse() {
	s.TripID = nil
	s.Status = ShipmentStatusWarehouse
	s.touch()
}

// SetStatus applies a status update
func (s *Shipment) SetStatus(status ShipmentStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Shipment status is not valid")
	}
	s.Status = status
	s.touch()
	return nil
}

// IsOnTrip reports whether the shipment is assigned to a trip
func (s *Shipment) IsOnTrip() bool {
	return s.TripID != nil
}

// RegeneratePieceBarcodes rewrites every piece barcode for the trip position
// the shipment currently holds. A zero shipmentSeq (shipment off any trip)
// produces temporary barcodes instead.
func (s *Shipment) RegeneratePieceBarcodes(tripNumber string, shipmentSeq int) {
	for i := range s.Pieces {
		if s.TripID != nil && shipmentSeq > 0 {
			s.Pieces[i].Barcode = AllocateBarcode(tripNumber, shipmentSeq, s.Pieces[i].PieceNumber)
		} else {
			s.Pieces[i].Barcode = TempBarcode()
		}
		s.Pieces[i].Touch()
	}
}

// PieceCount returns the number of recorded pieces
func (s *Shipment) PieceCount() int {
	return len(s.Pieces)
}

// LoadedPieceCount returns the number of pieces scanned onto a vehicle
func (s *Shipment) LoadedPieceCount() int {
	n := 0
	for i := range s.Pieces {
		if s.Pieces[i].IsLoaded() {
			n++
		}
	}
	return n
}

func (s *Shipment) touch() {
	s.Touch()
	s.IncrementVersion()
}
