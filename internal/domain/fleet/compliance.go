package fleet

import (
	"sort"

	"github.com/google/uuid"

	"github.com/servex/backend/internal/domain/shared"
)

// DefaultReminderDays is how far ahead of expiry an item enters the
// reminder window when no override is set
const DefaultReminderDays = 30

// ComplianceSubject tells whether an item belongs to a vehicle or a driver
type ComplianceSubject string

const (
	SubjectVehicle ComplianceSubject = "vehicle"
	SubjectDriver  ComplianceSubject = "driver"
)

// Urgency buckets a compliance item by how close its expiry is
type Urgency string

const (
	UrgencyOverdue      Urgency = "overdue"
	UrgencyDueThisWeek  Urgency = "due_this_week"
	UrgencyDueThisMonth Urgency = "due_this_month"
	UrgencyUpcoming     Urgency = "upcoming"
)

// StatusColor is the traffic-light rating shown on the full compliance board
type StatusColor string

const (
	ColorRed    StatusColor = "red"
	ColorYellow StatusColor = "yellow"
	ColorGreen  StatusColor = "green"
)

// ComplianceItem tracks a dated document that must stay current: vehicle
// licenses, insurance, permits, driver licenses, passports, work permits.
// Provider and PolicyNumber apply to vehicle items, LicenseNumber and
// IssuingCountry to driver items.
type ComplianceItem struct {
	shared.TenantAggregateRoot
	SubjectType        ComplianceSubject `json:"subject_type"`
	SubjectID          uuid.UUID         `json:"subject_id"`
	ItemType           string            `json:"item_type"`
	ItemLabel          string            `json:"item_label"`
	ExpiryDate         string            `json:"expiry_date"`
	ReminderDaysBefore int               `json:"reminder_days_before"`
	NotifyChannels     []string          `json:"notify_channels" gorm:"-"`
	Provider           string            `json:"provider,omitempty"`
	PolicyNumber       string            `json:"policy_number,omitempty"`
	LicenseNumber      string            `json:"license_number,omitempty"`
	IssuingCountry     string            `json:"issuing_country,omitempty"`
}

// NewComplianceItem tracks a new document against a vehicle or driver
func NewComplianceItem(tenantID uuid.UUID, subjectType ComplianceSubject, subjectID uuid.UUID, itemType, itemLabel, expiryDate string, reminderDays int) (*ComplianceItem, error) {
	if subjectType != SubjectVehicle && subjectType != SubjectDriver {
		return nil, shared.NewDomainError("INVALID_SUBJECT", "Compliance subject must be a vehicle or a driver")
	}
	if subjectID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUBJECT", "Compliance subject ID cannot be empty")
	}
	if itemType == "" {
		return nil, shared.NewDomainError("INVALID_ITEM_TYPE", "Compliance item type cannot be empty")
	}
	if !shared.ValidDate(shared.DateOnly(expiryDate)) {
		return nil, shared.NewDomainError("INVALID_DATE", "Expiry date must be a valid YYYY-MM-DD date")
	}
	if reminderDays <= 0 {
		reminderDays = DefaultReminderDays
	}

	return &ComplianceItem{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		SubjectType:         subjectType,
		SubjectID:           subjectID,
		ItemType:            itemType,
		ItemLabel:           itemLabel,
		ExpiryDate:          shared.DateOnly(expiryDate),
		ReminderDaysBefore:  reminderDays,
	}, nil
}

// Update applies changes to the tracked document
func (c *ComplianceItem) Update(itemType, itemLabel, expiryDate string, reminderDays int) error {
	if itemType == "" {
		return shared.NewDomainError("INVALID_ITEM_TYPE", "Compliance item type cannot be empty")
	}
	if !shared.ValidDate(shared.DateOnly(expiryDate)) {
		return shared.NewDomainError("INVALID_DATE", "Expiry date must be a valid YYYY-MM-DD date")
	}
	if reminderDays <= 0 {
		reminderDays = DefaultReminderDays
	}
	c.ItemType = itemType
	c.ItemLabel = itemLabel
	c.ExpiryDate = shared.DateOnly(expiryDate)
	c.ReminderDaysBefore = reminderDays
	c.Touch()
	c.IncrementVersion()
	return nil
}

// IsExpired reports whether the item's expiry date has passed
func (c *ComplianceItem) IsExpired(today string) bool {
	return shared.DateBefore(c.ExpiryDate, today)
}

// UrgencyOn buckets the item against the given day
func (c *ComplianceItem) UrgencyOn(today string) Urgency {
	switch {
	case c.IsExpired(today):
		return UrgencyOverdue
	case !shared.DateBefore(shared.AddDays(today, 7), c.ExpiryDate):
		return UrgencyDueThisWeek
	case !shared.DateBefore(shared.AddDays(today, 30), c.ExpiryDate):
		return UrgencyDueThisMonth
	default:
		return UrgencyUpcoming
	}
}

// InReminderWindow reports whether the item should appear on the reminders
// view: already overdue, or within reminder_days_before of expiry.
func (c *ComplianceItem) InReminderWindow(today string) bool {
	if c.IsExpired(today) {
		return true
	}
	threshold := shared.AddDays(c.ExpiryDate, -c.ReminderDaysBefore)
	return !shared.DateBefore(today, threshold)
}

// ColorOn rates the item for the full compliance board: red when overdue or
// expiring within 30 days, yellow within 60, green otherwise.
func (c *ComplianceItem) ColorOn(today string) StatusColor {
	switch {
	case c.IsExpired(today), !shared.DateBefore(shared.AddDays(today, 30), c.ExpiryDate):
		return ColorRed
	case !shared.DateBefore(shared.AddDays(today, 60), c.ExpiryDate):
		return ColorYellow
	default:
		return ColorGreen
	}
}

// SortByExpiry orders items soonest expiry first
func SortByExpiry(items []ComplianceItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return shared.DateBefore(items[i].ExpiryDate, items[j].ExpiryDate)
	})
}

// CountExpired returns how many items have already expired
func CountExpired(items []ComplianceItem, today string) int {
	n := 0
	for i := range items {
		if items[i].IsExpired(today) {
			n++
		}
	}
	return n
}
