package fleet

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/servex/backend/internal/domain/fleet"
)

// CreateVehicleRequest represents a request to register a vehicle
type CreateVehicleRequest struct {
	Name               string           `json:"name" binding:"required,min=1,max=255"`
	RegistrationNumber string           `json:"registration_number" binding:"required,min=1,max=50"`
	VIN                string           `json:"vin" binding:"max=50"`
	Make               string           `json:"make" binding:"max=100"`
	Model              string           `json:"model" binding:"max=100"`
	Year               int              `json:"year" binding:"omitempty,min=1900,max=2100"`
	MaxWeightKg        *decimal.Decimal `json:"max_weight_kg"`
	MaxVolumeCbm       *decimal.Decimal `json:"max_volume_cbm"`
}

// UpdateVehicleRequest represents a partial update to a vehicle
type UpdateVehicleRequest struct {
	Name               *string          `json:"name" binding:"omitempty,min=1,max=255"`
	RegistrationNumber *string          `json:"registration_number" binding:"omitempty,min=1,max=50"`
	VIN                *string          `json:"vin"`
	Make               *string          `json:"make"`
	Model              *string          `json:"model"`
	Year               *int             `json:"year"`
	MaxWeightKg        *decimal.Decimal `json:"max_weight_kg"`
	MaxVolumeCbm       *decimal.Decimal `json:"max_volume_cbm"`
	Status             *string          `json:"status" binding:"omitempty,oneof=available on_trip maintenance retired"`
}

// CreateDriverRequest represents a request to register a driver
type CreateDriverRequest struct {
	Name             string `json:"name" binding:"required,min=1,max=255"`
	Phone            string `json:"phone" binding:"max=20"`
	Email            string `json:"email" binding:"omitempty,email"`
	IDPassportNumber string `json:"id_passport_number" binding:"max=50"`
	Nationality      string `json:"nationality" binding:"max=100"`
}

// UpdateDriverRequest represents a partial update to a driver
type UpdateDriverRequest struct {
	Name             *string `json:"name" binding:"omitempty,min=1,max=255"`
	Phone            *string `json:"phone"`
	Email            *string `json:"email" binding:"omitempty,email"`
	IDPassportNumber *string `json:"id_passport_number"`
	Nationality      *string `json:"nationality"`
	Status           *string `json:"status" binding:"omitempty,oneof=available on_trip on_leave inactive"`
}

// CreateComplianceItemRequest represents a request to track a document
type CreateComplianceItemRequest struct {
	SubjectType        string    `json:"subject_type" binding:"required,oneof=vehicle driver"`
	SubjectID          uuid.UUID `json:"subject_id" binding:"required"`
	ItemType           string    `json:"item_type" binding:"required,min=1,max=100"`
	ItemLabel          string    `json:"item_label" binding:"max=255"`
	ExpiryDate         string    `json:"expiry_date" binding:"required,datestr"`
	ReminderDaysBefore int       `json:"reminder_days_before" binding:"omitempty,min=1,max=365"`
	Provider           string    `json:"provider" binding:"max=255"`
	PolicyNumber       string    `json:"policy_number" binding:"max=100"`
	LicenseNumber      string    `json:"license_number" binding:"max=100"`
	IssuingCountry     string    `json:"issuing_country" binding:"max=100"`
}

// UpdateComplianceItemRequest represents a partial update to a tracked document
type UpdateComplianceItemRequest struct {
	ItemType           *string `json:"item_type" binding:"omitempty,min=1,max=100"`
	ItemLabel          *string `json:"item_label"`
	ExpiryDate         *string `json:"expiry_date" binding:"omitempty,datestr"`
	ReminderDaysBefore *int    `json:"reminder_days_before" binding:"omitempty,min=1,max=365"`
	Provider           *string `json:"provider"`
	PolicyNumber       *string `json:"policy_number"`
	LicenseNumber      *string `json:"license_number"`
	IssuingCountry     *string `json:"issuing_country"`
}

// VehicleResponse represents a vehicle in API responses.
// ComplianceIssues counts its already-expired compliance items.
type VehicleResponse struct {
	ID                 uuid.UUID        `json:"id"`
	TenantID           uuid.UUID        `json:"tenant_id"`
	Name               string           `json:"name"`
	RegistrationNumber string           `json:"registration_number"`
	VIN                string           `json:"vin"`
	Make               string           `json:"make"`
	Model              string           `json:"model"`
	Year               int              `json:"year"`
	MaxWeightKg        *decimal.Decimal `json:"max_weight_kg"`
	MaxVolumeCbm       *decimal.Decimal `json:"max_volume_cbm"`
	Status             string           `json:"status"`
	ComplianceIssues   int              `json:"compliance_issues"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
	Version            int              `json:"version"`
}

// DriverResponse represents a driver in API responses
type DriverResponse struct {
	ID               uuid.UUID `json:"id"`
	TenantID         uuid.UUID `json:"tenant_id"`
	Name             string    `json:"name"`
	Phone            string    `json:"phone"`
	Email            string    `json:"email"`
	IDPassportNumber string    `json:"id_passport_number"`
	Nationality      string    `json:"nationality"`
	Status           string    `json:"status"`
	ComplianceIssues int       `json:"compliance_issues"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
	Version          int       `json:"version"`
}

// ComplianceItemResponse represents a compliance item in API responses
type ComplianceItemResponse struct {
	ID                 uuid.UUID `json:"id"`
	TenantID           uuid.UUID `json:"tenant_id"`
	SubjectType        string    `json:"subject_type"`
	SubjectID          uuid.UUID `json:"subject_id"`
	SubjectName        string    `json:"subject_name,omitempty"`
	ItemType           string    `json:"item_type"`
	ItemLabel          string    `json:"item_label"`
	ExpiryDate         string    `json:"expiry_date"`
	ReminderDaysBefore int       `json:"reminder_days_before"`
	Provider           string    `json:"provider,omitempty"`
	PolicyNumber       string    `json:"policy_number,omitempty"`
	LicenseNumber      string    `json:"license_number,omitempty"`
	IssuingCountry     string    `json:"issuing_country,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ReminderItem is a compliance item inside the reminders view
type ReminderItem struct {
	ComplianceItemResponse
	Urgency string `json:"urgency"`
}

// ReminderSummary carries the bucket counts for the reminders view
type ReminderSummary struct {
	Overdue      int `json:"overdue"`
	DueThisWeek  int `json:"due_this_week"`
	DueThisMonth int `json:"due_this_month"`
	Upcoming     int `json:"upcoming"`
	Total        int `json:"total"`
}

// RemindersResponse is the reminders view: only items inside their reminder
// window, bucketed by urgency and sorted soonest expiry first.
type RemindersResponse struct {
	Overdue      []ReminderItem  `json:"overdue"`
	DueThisWeek  []ReminderItem  `json:"due_this_week"`
	DueThisMonth []ReminderItem  `json:"due_this_month"`
	Upcoming     []ReminderItem  `json:"upcoming"`
	Summary      ReminderSummary `json:"summary"`
}

// BoardItem is a compliance item on the full board with its traffic-light
// rating
type BoardItem struct {
	ComplianceItemResponse
	Color string `json:"color"`
}

// FleetListFilter represents filter options for vehicle and driver lists
type FleetListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToVehicleResponse converts a domain vehicle to a response DTO
func ToVehicleResponse(v *fleet.Vehicle, complianceIssues int) VehicleResponse {
	return VehicleResponse{
		ID:                 v.ID,
		TenantID:           v.TenantID,
		Name:               v.Name,
		RegistrationNumber: v.RegistrationNumber,
		VIN:                v.VIN,
		Make:               v.Make,
		Model:              v.Model,
		Year:               v.Year,
		MaxWeightKg:        v.MaxWeightKg,
		MaxVolumeCbm:       v.MaxVolumeCbm,
		Status:             string(v.Status),
		ComplianceIssues:   complianceIssues,
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
		Version:            v.Version,
	}
}

// ToDriverResponse converts a domain driver to a response DTO
func ToDriverResponse(d *fleet.Driver, complianceIssues int) DriverResponse {
	return DriverResponse{
		ID:               d.ID,
		TenantID:         d.TenantID,
		Name:             d.Name,
		Phone:            d.Phone,
		Email:            d.Email,
		IDPassportNumber: d.IDPassportNumber,
		Nationality:      d.Nationality,
		Status:           string(d.Status),
		ComplianceIssues: complianceIssues,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
		Version:          d.Version,
	}
}

// ToComplianceItemResponse converts a domain compliance item to a response DTO
func ToComplianceItemResponse(item *fleet.ComplianceItem, subjectName string) ComplianceItemResponse {
	return ComplianceItemResponse{
		ID:                 item.ID,
		TenantID:           item.TenantID,
		SubjectType:        string(item.SubjectType),
		SubjectID:          item.SubjectID,
		SubjectName:        subjectName,
		ItemType:           item.ItemType,
		ItemLabel:          item.ItemLabel,
		ExpiryDate:         item.ExpiryDate,
		ReminderDaysBefore: item.ReminderDaysBefore,
		Provider:           item.Provider,
		PolicyNumber:       item.PolicyNumber,
		LicenseNumber:      item.LicenseNumber,
		IssuingCountry:     item.IssuingCountry,
		CreatedAt:          item.CreatedAt,
		UpdatedAt:          item.UpdatedAt,
	}
}
