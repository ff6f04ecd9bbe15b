package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/servex/backend/internal/domain/freight"
)

// ShipmentModel is the persistence model for the Shipment domain entity.
// Pieces live in their own table; the domain slice is loaded separately.
type ShipmentModel struct {
	TenantAggregateModel
	ClientID    uuid.UUID              `gorm:"type:uuid;not null;index"`
	TripID      *uuid.UUID             `gorm:"type:uuid;index"`
	Description string                 `gorm:"type:text;not null"`
	Destination string                 `gorm:"type:varchar(200)"`
	TotalPieces int                    `gorm:"not null;default:0"`
	TotalWeight decimal.Decimal        `gorm:"type:decimal(12,2);not null;default:0"`
	TotalCbm    decimal.Decimal        `gorm:"type:decimal(12,3);not null;default:0"`
	Status      freight.ShipmentStatus `gorm:"type:varchar(20);not null;default:'warehouse';index"`
}

// TableName returns the table name for GORM
func (ShipmentModel) TableName() string {
	return "shipments"
}

// ToDomain converts the persistence model to a domain Shipment entity.
func (m *ShipmentModel) ToDomain() *freight.Shipment {
	return &freight.Shipment{
		TenantAggregateRoot: m.TenantRoot(),
		ClientID:            m.ClientID,
		TripID:              m.TripID,
		Description:         m.Description,
		Destination:         m.Destination,
		TotalPieces:         m.TotalPieces,
		TotalWeight:         m.TotalWeight,
		TotalCbm:            m.TotalCbm,
		Status:              m.Status,
	}
}

// FromDomain populates the persistence model from a domain Shipment entity.
func (m *ShipmentModel) FromDomain(s *freight.Shipment) {
	m.FromDomainTenantAggregateRoot(s.TenantAggregateRoot)
	m.ClientID = s.ClientID
	m.TripID = s.TripID
	m.Description = s.Description
	m.Destination = s.Destination
	m.TotalPieces = s.TotalPieces
	m.TotalWeight = s.TotalWeight
	m.TotalCbm = s.TotalCbm
	m.Status = s.Status
}

// ShipmentModelFromDomain creates a new persistence model from a domain Shipment entity.
func ShipmentModelFromDomain(s *freight.Shipment) *ShipmentModel {
	m := &ShipmentModel{}
	m.FromDomain(s)
	return m
}

// ShipmentPieceModel is the persistence model for the ShipmentPiece domain entity.
type ShipmentPieceModel struct {
	BaseModel
	ShipmentID  uuid.UUID        `gorm:"type:uuid;not null;index"`
	PieceNumber int              `gorm:"not null"`
	Weight      decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0"`
	LengthCm    *decimal.Decimal `gorm:"type:decimal(10,2)"`
	WidthCm     *decimal.Decimal `gorm:"type:decimal(10,2)"`
	HeightCm    *decimal.Decimal `gorm:"type:decimal(10,2)"`
	PhotoURL    string           `gorm:"type:text"`
	Barcode     string           `gorm:"type:varchar(50);index"`
	LoadedAt    *time.Time
}

// TableName returns the table name for GORM
func (ShipmentPieceModel) TableName() string {
	return "shipment_pieces"
}

// ToDomain converts the persistence model to a domain ShipmentPiece entity.
func (m *ShipmentPieceModel) ToDomain() *freight.ShipmentPiece {
	return &freight.ShipmentPiece{
		BaseEntity:  m.BaseModel.ToDomain(),
		ShipmentID:  m.ShipmentID,
		PieceNumber: m.PieceNumber,
		Weight:      m.Weight,
		LengthCm:    m.LengthCm,
		WidthCm:     m.WidthCm,
		HeightCm:    m.HeightCm,
		PhotoURL:    m.PhotoURL,
		Barcode:     m.Barcode,
		LoadedAt:    m.LoadedAt,
	}
}

// FromDomain populates the persistence model from a domain ShipmentPiece entity.
func (m *ShipmentPieceModel) FromDomain(p *freight.ShipmentPiece) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.ShipmentID = p.ShipmentID
	m.PieceNumber = p.PieceNumber
	m.Weight = p.Weight
	m.LengthCm = p.LengthCm
	m.WidthCm = p.WidthCm
	m.HeightCm = p.HeightCm
	m.PhotoURL = p.PhotoURL
	m.Barcode = p.Barcode
	m.LoadedAt = p.LoadedAt
}

// ShipmentPieceModelFromDomain creates a new persistence model from a domain ShipmentPiece entity.
func ShipmentPieceModelFromDomain(p *freight.ShipmentPiece) *ShipmentPieceModel {
	m := &ShipmentPieceModel{}
	m.FromDomain(p)
	return m
}
