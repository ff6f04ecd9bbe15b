package fleet

import (
	"strings"

	"github.com/google/uuid"

	"github.com/servex/backend/internal/domain/shared"
)

// DriverStatus represents the availability state of a driver
type DriverStatus string

const (
	DriverAvailable DriverStatus = "available"
	DriverOnTrip    DriverStatus = "on_trip"
	DriverOnLeave   DriverStatus = "on_leave"
	DriverInactive  DriverStatus = "inactive"
)

// IsValid checks if the status is a valid DriverStatus
func (s DriverStatus) IsValid() bool {
	switch s {
	case DriverAvailable, DriverOnTrip, DriverOnLeave, DriverInactive:
		return true
	}
	return false
}

// Driver represents a driver employed by the tenant
type Driver struct {
	shared.TenantAggregateRoot
	Name             string       `json:"name"`
	Phone            string       `json:"phone"`
	Email            string       `json:"email"`
	IDPassportNumber string       `json:"id_passport_number"`
	Nationality      string       `json:"nationality"`
	Status           DriverStatus `json:"status"`
}

// NewDriver registers a driver
func NewDriver(tenantID uuid.UUID, name, phone string) (*Driver, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Driver name cannot be empty")
	}

	return &Driver{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Phone:               phone,
		Status:              DriverAvailable,
	}, nil
}

// UpdateDetails applies identity and contact changes
func (d *Driver) UpdateDetails(name, phone, email, idPassportNumber, nationality string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Driver name cannot be empty")
	}
	d.Name = name
	d.Phone = phone
	d.Email = strings.ToLower(strings.TrimSpace(email))
	d.IDPassportNumber = idPassportNumber
	d.Nationality = nationality
	d.touch()
	return nil
}

// SetStatus moves the driver between availability states
func (d *Driver) SetStatus(status DriverStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Driver status is not valid")
	}
	d.Status = status
	d.touch()
	return nil
}

func (d *Driver) touch() {
	d.Touch()
	d.IncrementVersion()
}
