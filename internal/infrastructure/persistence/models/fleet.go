package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/servex/backend/internal/domain/fleet"
)

// VehicleModel is the persistence model for the Vehicle domain entity.
type VehicleModel struct {
	TenantAggregateModel
	Name               string              `gorm:"type:varchar(100);not null"`
	RegistrationNumber string              `gorm:"type:varchar(50);not null;index"`
	VIN                string              `gorm:"type:varchar(50)"`
	Make               string              `gorm:"type:varchar(50)"`
	Model              string              `gorm:"type:varchar(50)"`
	Year               int                 `gorm:"default:0"`
	MaxWeightKg        *decimal.Decimal    `gorm:"type:decimal(12,2)"`
	MaxVolumeCbm       *decimal.Decimal    `gorm:"type:decimal(12,3)"`
	Status             fleet.VehicleStatus `gorm:"type:varchar(20);not null;default:'active';index"`
}

// TableName returns the table name for GORM
func (VehicleModel) TableName() string {
	return "vehicles"
}

// ToDomain converts the persistence model to a domain Vehicle entity.
func (m *VehicleModel) ToDomain() *fleet.Vehicle {
	return &fleet.Vehicle{
		TenantAggregateRoot: m.TenantRoot(),
		Name:                m.Name,
		RegistrationNumber:  m.RegistrationNumber,
		VIN:                 m.VIN,
		Make:                m.Make,
		Model:               m.Model,
		Year:                m.Year,
		MaxWeightKg:         m.MaxWeightKg,
		MaxVolumeCbm:        m.MaxVolumeCbm,
		Status:              m.Status,
	}
}

// FromDomain populates the persistence model from a domain Vehicle entity.
func (m *VehicleModel) FromDomain(v *fleet.Vehicle) {
	m.FromDomainTenantAggregateRoot(v.TenantAggregateRoot)
	m.Name = v.Name
	m.RegistrationNumber = v.RegistrationNumber
	m.VIN = v.VIN
	m.Make = v.Make
	m.Model = v.Model
	m.Year = v.Year
	m.MaxWeightKg = v.MaxWeightKg
	m.MaxVolumeCbm = v.MaxVolumeCbm
	m.Status = v.Status
}

// VehicleModelFromDomain creates a new persistence model from a domain Vehicle entity.
func VehicleModelFromDomain(v *fleet.Vehicle) *VehicleModel {
	m := &VehicleModel{}
	m.FromDomain(v)
	return m
}

// DriverModel is the persistence model for the Driver domain entity.
type DriverModel struct {
	TenantAggregateModel
	Name             string             `gorm:"type:varchar(200);not null;index"`
	Phone            string             `gorm:"type:varchar(50)"`
	Email            string             `gorm:"type:varchar(200)"`
	IDPassportNumber string             `gorm:"type:varchar(50)"`
	Nationality      string             `gorm:"type:varchar(50)"`
	Status           fleet.DriverStatus `gorm:"type:varchar(20);not null;default:'active';index"`
}

// TableName returns the table name for GORM
func (DriverModel) TableName() string {
	return "drivers"
}

// ToDomain converts the persistence model to a domain Driver entity.
func (m *DriverModel) ToDomain() *fleet.Driver {
	return &fleet.Driver{
		TenantAggregateRoot: m.TenantRoot(),
		Name:                m.Name,
		Phone:               m.Phone,
		Email:               m.Email,
		IDPassportNumber:    m.IDPassportNumber,
		Nationality:         m.Nationality,
		Status:              m.Status,
	}
}

// FromDomain populates the persistence model from a domain Driver entity.
func (m *DriverModel) FromDomain(d *fleet.Driver) {
	m.FromDomainTenantAggregateRoot(d.TenantAggregateRoot)
	m.Name = d.Name
	m.Phone = d.Phone
	m.Email = d.Email
	m.IDPassportNumber = d.IDPassportNumber
	m.Nationality = d.Nationality
	m.Status = d.Status
}

// DriverModelFromDomain creates a new persistence model from a domain Driver entity.
func DriverModelFromDomain(d *fleet.Driver) *DriverModel {
	m := &DriverModel{}
	m.FromDomain(d)
	return m
}

// ComplianceItemModel is the persistence model for the ComplianceItem domain entity.
type ComplianceItemModel struct {
	TenantAggregateModel
	SubjectType        fleet.ComplianceSubject `gorm:"type:varchar(20);not null;index:idx_compliance_subject,priority:1"`
	SubjectID          uuid.UUID               `gorm:"type:uuid;not null;index:idx_compliance_subject,priority:2"`
	ItemType           string                  `gorm:"type:varchar(50);not null"`
	ItemLabel          string                  `gorm:"type:varchar(100)"`
	ExpiryDate         string                  `gorm:"type:varchar(30);not null;index"`
	ReminderDaysBefore int                     `gorm:"not null;default:30"`
	NotifyChannels     StringList              `gorm:"type:jsonb"`
	Provider           string                  `gorm:"type:varchar(100)"`
	PolicyNumber       string                  `gorm:"type:varchar(100)"`
	LicenseNumber      string                  `gorm:"type:varchar(100)"`
	IssuingCountry     string                  `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (ComplianceItemModel) TableName() string {
	return "compliance_items"
}

// ToDomain converts the persistence model to a domain ComplianceItem entity.
func (m *ComplianceItemModel) ToDomain() *fleet.ComplianceItem {
	return &fleet.ComplianceItem{
		TenantAggregateRoot: m.TenantRoot(),
		SubjectType:         m.SubjectType,
		SubjectID:           m.SubjectID,
		ItemType:            m.ItemType,
		ItemLabel:           m.ItemLabel,
		ExpiryDate:          m.ExpiryDate,
		ReminderDaysBefore:  m.ReminderDaysBefore,
		NotifyChannels:      m.NotifyChannels,
		Provider:            m.Provider,
		PolicyNumber:        m.PolicyNumber,
		LicenseNumber:       m.LicenseNumber,
		IssuingCountry:      m.IssuingCountry,
	}
}

// FromDomain populates the persistence model from a domain ComplianceItem entity.
func (m *ComplianceItemModel) FromDomain(item *fleet.ComplianceItem) {
	m.FromDomainTenantAggregateRoot(item.TenantAggregateRoot)
	m.SubjectType = item.SubjectType
	m.SubjectID = item.SubjectID
	m.ItemType = item.ItemType
	m.ItemLabel = item.ItemLabel
	m.ExpiryDate = item.ExpiryDate
	m.ReminderDaysBefore = item.ReminderDaysBefore
	m.NotifyChannels = item.NotifyChannels
	m.Provider = item.Provider
	m.PolicyNumber = item.PolicyNumber
	m.LicenseNumber = item.LicenseNumber
	m.IssuingCountry = item.IssuingCountry
}

// ComplianceItemModelFromDomain creates a new persistence model from a domain ComplianceItem entity.
func ComplianceItemModelFromDomain(item *fleet.ComplianceItem) *ComplianceItemModel {
	m := &ComplianceItemModel{}
	m.FromDomain(item)
	return m
}
