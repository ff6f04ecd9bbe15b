package trip

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/servex/backend/internal/domain/shared"
)

// Status represents the trip lifecycle state
type Status string

const (
	StatusPlanning  Status = "planning"
	StatusLoading   Status = "loading"
	StatusInTransit Status = "in_transit"
	StatusDelivered Status = "delivered"
	StatusClosed    Status = "closed"
)

// IsValid checks if the status is a valid trip Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPlanning, StatusLoading, StatusInTransit, StatusDelivered, StatusClosed:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal returns true once a trip can no longer change state
func (s Status) IsTerminal() bool {
	return s == StatusClosed
}

// tripNumberPattern matches manifest numbers like S1, S105, S1024
var tripNumberPattern = regexp.MustCompile(`^S\d+$`)

// numberedTripPattern bounds the digits considered for sequence derivation
var numberedTripPattern = regexp.MustCompile(`^S(\d{1,4})$`)

// ValidTripNumber reports whether s is a well-formed trip number
func ValidTripNumber(s string) bool {
	return tripNumberPattern.MatchString(s)
}

// NextTripNumber derives the next manifest number from the existing ones:
// one past the highest numeric suffix. Numbers that do not match the
// S<digits> form are ignored. An empty fleet starts at S1.
func NextTripNumber(existing []string) string {
	max := 0
	for _, n := range existing {
		m := numberedTripPattern.FindStringSubmatch(n)
		if m == nil {
			continue
		}
		v, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if v > max {
			max = v
		}
	}
	return fmt.Sprintf("S%d", max+1)
}

// Trip represents a vehicle run aggregate root. Shipments are staged onto a
// trip, driven to their destinations and the trip is closed once reconciled.
// A closed trip is locked: only an owner may mutate it or anything on it.
type Trip struct {
	shared.TenantAggregateRoot
	TripNumber      string     `json:"trip_number"`
	Route           []string   `json:"route"`
	DepartureDate   string     `json:"departure_date"`
	VehicleID       *uuid.UUID `json:"vehicle_id"`
	DriverID        *uuid.UUID `json:"driver_id"`
	Notes           string     `json:"notes"`
	Status          Status     `json:"status"`
	LockedAt        *time.Time `json:"locked_at"`
	ActualDeparture *time.Time `json:"actual_departure"`
	ActualArrival   *time.Time `json:"actual_arrival"`
}

// NewTrip creates a new trip in planning
func NewTrip(tenantID uuid.UUID, tripNumber string, route []string, departureDate string) (*Trip, error) {
	tripNumber = strings.TrimSpace(tripNumber)
	if !ValidTripNumber(tripNumber) {
		return nil, shared.NewDomainError("INVALID_TRIP_NUMBER", "Trip number must match S<digits>")
	}
	if departureDate != "" && !shared.ValidDate(shared.DateOnly(departureDate)) {
		return nil, shared.NewDomainError("INVALID_DATE", "Departure date must be a valid YYYY-MM-DD date")
	}

	return &Trip{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		TripNumber:          tripNumber,
		Route:               route,
		DepartureDate:       departureDate,
		Status:              StatusPlanning,
	}, nil
}

// IsLocked reports whether the trip has been closed and locked
func (t *Trip) IsLocked() bool {
	return t.LockedAt != nil
}

// ChangeStatus moves the trip to a new lifecycle state and applies the
// timestamps that state implies. Departure and arrival stamps are written
// once; re-entering a state keeps the original stamp.
func (t *Trip) ChangeStatus(status Status) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Trip status is not valid")
	}
	if t.Status == StatusClosed {
		if status == StatusClosed {
			return shared.ErrTripAlreadyClosed
		}
		return shared.NewDomainError("INVALID_STATE", "Closed trips cannot change status")
	}

	now := time.Now()
	switch status {
	case StatusInTransit:
		if t.ActualDeparture == nil {
			t.ActualDeparture = &now
		}
	case StatusDelivered:
		if t.ActualArrival == nil {
			t.ActualArrival = &now
		}
	case StatusClosed:
		t.LockedAt = &now
	}

	t.Status = status
	t.touch()
	return nil
}

// Close closes and locks the trip. Closing twice is an error.
func (t *Trip) Close() error {
	return t.ChangeStatus(StatusClosed)
}

// SetRoute replaces the ordered list of route stops
func (t *Trip) SetRoute(route []string) {
	t.Route = route
	t.touch()
}

// SetDepartureDate updates the planned departure date
func (t *Trip) SetDepartureDate(date string) error {
	if date != "" && !shared.ValidDate(shared.DateOnly(date)) {
		return shared.NewDomainError("INVALID_DATE", "Departure date must be a valid YYYY-MM-DD date")
	}
	t.DepartureDate = date
	t.touch()
	return nil
}

// AssignVehicle sets or clears the vehicle on the trip
func (t *Trip) AssignVehicle(vehicleID *uuid.UUID) {
	t.VehicleID = vehicleID
	t.touch()
}

// AssignDriver sets or clears the driver on the trip
func (t *Trip) AssignDriver(driverID *uuid.UUID) {
	t.DriverID = driverID
	t.touch()
}

// SetNotes updates the free-form notes
func (t *Trip) SetNotes(notes string) {
	t.Notes = notes
	t.touch()
}

// Renumber changes the manifest number. Uniqueness within the tenant is
// enforced by the caller against the store.
func (t *Trip) Renumber(tripNumber string) error {
	tripNumber = strings.TrimSpace(tripNumber)
	if !ValidTripNumber(tripNumber) {
		return shared.NewDomainError("INVALID_TRIP_NUMBER", "Trip number must match S<digits>")
	}
	t.TripNumber = tripNumber
	t.touch()
	return nil
}

// Duplicate creates a fresh planning trip carrying over the route, vehicle
// and driver under a new manifest number.
func (t *Trip) Duplicate(newNumber string) (*Trip, error) {
	dup, err := NewTrip(t.TenantID, newNumber, append([]string(nil), t.Route...), t.DepartureDate)
	if err != nil {
		return nil, err
	}
	dup.VehicleID = t.VehicleID
	dup.DriverID = t.DriverID
	dup.Notes = fmt.Sprintf("Duplicated from %s", t.TripNumber)
	return dup, nil
}

func (t *Trip) touch() {
	t.Touch()
	t.IncrementVersion()
}
