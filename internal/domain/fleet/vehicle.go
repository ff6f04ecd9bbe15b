package fleet

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/servex/backend/internal/domain/shared"
)

// VehicleStatus represents the operational state of a vehicle
type VehicleStatus string

const (
	VehicleAvailable   VehicleStatus = "available"
	VehicleOnTrip      VehicleStatus = "on_trip"
	VehicleMaintenance VehicleStatus = "maintenance"
	VehicleRetired     VehicleStatus = "retired"
)

// IsValid checks if the status is a valid VehicleStatus
func (s VehicleStatus) IsValid() bool {
	switch s {
	case VehicleAvailable, VehicleOnTrip, VehicleMaintenance, VehicleRetired:
		return true
	}
	return false
}

// Vehicle represents a truck or trailer in the fleet
type Vehicle struct {
	shared.TenantAggregateRoot
	Name               string           `json:"name"`
	RegistrationNumber string           `json:"registration_number"`
	VIN                string           `json:"vin"`
	Make               string           `json:"make"`
	Model              string           `json:"model"`
	Year               int              `json:"year"`
	MaxWeightKg        *decimal.Decimal `json:"max_weight_kg"`
	MaxVolumeCbm       *decimal.Decimal `json:"max_volume_cbm"`
	Status             VehicleStatus    `json:"status"`
}

// NewVehicle registers a vehicle in the fleet
func NewVehicle(tenantID uuid.UUID, name, registrationNumber string) (*Vehicle, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Vehicle name cannot be empty")
	}
	if registrationNumber == "" {
		return nil, shared.NewDomainError("INVALID_REGISTRATION", "Registration number cannot be empty")
	}

	return &Vehicle{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		RegistrationNumber:  registrationNumber,
		Status:              VehicleAvailable,
	}, nil
}

// UpdateDetails applies identity and capacity changes
func (v *Vehicle) UpdateDetails(name, registrationNumber, vin, make, model string, year int, maxWeightKg, maxVolumeCbm *decimal.Decimal) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Vehicle name cannot be empty")
	}
	if registrationNumber == "" {
		return shared.NewDomainError("INVALID_REGISTRATION", "Registration number cannot be empty")
	}
	v.Name = name
	v.RegistrationNumber = registrationNumber
	v.VIN = vin
	v.Make = make
	v.Model = model
	v.Year = year
	v.MaxWeightKg = maxWeightKg
	v.MaxVolumeCbm = maxVolumeCbm
	v.touch()
	return nil
}

// SetStatus moves the vehicle between operational states
func (v *Vehicle) SetStatus(status VehicleStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Vehicle status is not valid")
	}
	v.Status = status
	v.touch()
	return nil
}

func (v *Vehicle) touch() {
	v.Touch()
	v.IncrementVersion()
}
