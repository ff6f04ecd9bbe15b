package billing

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/servex/backend/internal/domain/shared"
	"github.com/servex/backend/internal/domain/shared/valueobject"
)

// InvoiceStatus represents the collection state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "draft"
	InvoiceStatusSent    InvoiceStatus = "sent"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusOverdue:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// IsOpen reports whether the invoice still awaits money
func (s InvoiceStatus) IsOpen() bool {
	return s == InvoiceStatusSent || s == InvoiceStatusOverdue
}

// VATRate is the statutory VAT applied when invoices are generated from trips
var VATRate = decimal.NewFromFloat(0.15)

// DefaultRatePerKg is the billing fallback when a client has no rate entry
var DefaultRatePerKg = decimal.NewFromInt(50)

var invoiceNumberPattern = regexp.MustCompile(`^INV-(\d{4})-(\d+)$`)

// NextInvoiceNumber derives the next invoice number for a year from the
// numbers already issued: INV-<year>-<seq> with the sequence one past the
// highest existing for that year, zero-padded to four digits.
func NextInvoiceNumber(existing []string, year int) string {
	max := 0
	for _, n := range existing {
		m := invoiceNumberPattern.FindStringSubmatch(n)
		if m == nil {
			continue
		}
		y, _ := strconv.Atoi(m[1])
		if y != year {
			continue
		}
		seq, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		if seq > max {
			max = seq
		}
	}
	return fmt.Sprintf("INV-%d-%04d", year, max+1)
}

// UUIDSlice stores a list of UUIDs as a JSONB column
type UUIDSlice []uuid.UUID

// Value implements driver.Valuer for JSONB storage
func (s UUIDSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner for JSONB retrieval
func (s *UUIDSlice) Scan(value interface{}) error {
	if value == nil {
		*s = UUIDSlice{}
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan UUIDSlice: unsupported type")
	}
	if len(bytes) == 0 {
		*s = UUIDSlice{}
		return nil
	}
	return json.Unmarshal(bytes, s)
}

// ContainsAll reports whether every id in other is present in s
func (s UUIDSlice) ContainsAll(other []uuid.UUID) bool {
	set := make(map[uuid.UUID]struct{}, len(s))
	for _, id := range s {
		set[id] = struct{}{}
	}
	for _, id := range other {
		if _, ok := set[id]; !ok {
			return false
		}
	}
	return true
}

// EqualSet reports whether s and other hold the same ids regardless of order
func (s UUIDSlice) EqualSet(other []uuid.UUID) bool {
	if len(s) != len(other) {
		return false
	}
	return s.ContainsAll(other)
}

// LineItem is a billable line within an invoice
type LineItem struct {
	shared.BaseEntity
	InvoiceID   uuid.UUID        `json:"invoice_id"`
	ShipmentID  *uuid.UUID       `json:"shipment_id"`
	Description string           `json:"description"`
	Quantity    decimal.Decimal  `json:"quantity"`
	Weight      *decimal.Decimal `json:"weight"`
	Rate        decimal.Decimal  `json:"rate"`
	Amount      decimal.Decimal  `json:"amount"`
}

// NewLineItem creates a line item. The amount is weight x rate when a weight
// is given, quantity x rate otherwise. Quantity defaults to 1.
func NewLineItem(invoiceID uuid.UUID, shipmentID *uuid.UUID, description string, quantity decimal.Decimal, weight *decimal.Decimal, rate decimal.Decimal) (*LineItem, error) {
	if invoiceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INVOICE", "Invoice ID cannot be empty")
	}
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Line item description cannot be empty")
	}
	if quantity.IsZero() {
		quantity = decimal.NewFromInt(1)
	}

	item := &LineItem{
		BaseEntity:  shared.NewBaseEntity(),
		InvoiceID:   invoiceID,
		ShipmentID:  shipmentID,
		Description: description,
		Quantity:    quantity,
		Weight:      weight,
		Rate:        rate,
	}
	item.Amount = item.computeAmount()
	return item, nil
}

func (i *LineItem) computeAmount() decimal.Decimal {
	if i.Weight != nil && !i.Weight.IsZero() {
		return i.Weight.Mul(i.Rate)
	}
	return i.Quantity.Mul(i.Rate)
}

// Invoice represents a billing document aggregate root. Totals follow one
// rule everywhere: total = subtotal + vat + adjustments. Trip-generated
// invoices carry VAT; manual invoices start with zero VAT.
type Invoice struct {
	shared.TenantAggregateRoot
	ClientID      uuid.UUID            `json:"client_id"`
	TripID        *uuid.UUID           `json:"trip_id"`
	ShipmentIDs   UUIDSlice            `json:"shipment_ids"`
	InvoiceNumber string               `json:"invoice_number"`
	Currency      valueobject.Currency `json:"currency"`
	Subtotal      decimal.Decimal      `json:"subtotal"`
	VAT           decimal.Decimal      `json:"vat"`
	Adjustments   decimal.Decimal      `json:"adjustments"`
	Total         decimal.Decimal      `json:"total"`
	Status        InvoiceStatus        `json:"status"`
	IssueDate     string               `json:"issue_date"`
	DueDate       string               `json:"due_date"`
	SentAt        *time.Time           `json:"sent_at"`
	SentBy        *uuid.UUID           `json:"sent_by"`
	PaidAt        *time.Time           `json:"paid_at"`
	EmailSentAt   *time.Time           `json:"email_sent_at"`
	EmailSentTo   string               `json:"email_sent_to"`
}

// NewInvoice creates a draft invoice. An empty dueDate defaults to thirty
// days after issue.
func NewInvoice(tenantID, clientID uuid.UUID, invoiceNumber string, currency valueobject.Currency, subtotal, adjustments decimal.Decimal, dueDate string) (*Invoice, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}

	issueDate := shared.Today()
	if dueDate == "" {
		dueDate = shared.AddDays(issueDate, 30)
	} else if !shared.ValidDate(shared.DateOnly(dueDate)) {
		return nil, shared.NewDomainError("INVALID_DATE", "Due date must be a valid YYYY-MM-DD date")
	}

	inv := &Invoice{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ClientID:            clientID,
		ShipmentIDs:         UUIDSlice{},
		InvoiceNumber:       invoiceNumber,
		Currency:            currency,
		Subtotal:            subtotal,
		VAT:                 decimal.Zero,
		Adjustments:         adjustments,
		Status:              InvoiceStatusDraft,
		IssueDate:           issueDate,
		DueDate:             dueDate,
	}
	inv.recalculate()
	return inv, nil
}

// NewTripInvoice creates a draft invoice generated from a trip's shipments.
// VAT is applied at the statutory rate and the due date is thirty days out.
func NewTripInvoice(tenantID, clientID, tripID uuid.UUID, invoiceNumber string, currency valueobject.Currency, shipmentIDs []uuid.UUID, totalWeight, ratePerKg decimal.Decimal) (*Invoice, error) {
	inv, err := NewInvoice(tenantID, clientID, invoiceNumber, currency, totalWeight.Mul(ratePerKg).Round(2), decimal.Zero, "")
	if err != nil {
		return nil, err
	}
	inv.TripID = &tripID
	inv.ShipmentIDs = append(UUIDSlice{}, shipmentIDs...)
	inv.VAT = inv.Subtotal.Mul(VATRate).Round(2)
	inv.recalculate()
	return inv, nil
}

func (inv *Invoice) recalculate() {
	inv.Total = inv.Subtotal.Add(inv.VAT).Add(inv.Adjustments)
}

// IsDraft reports whether the invoice is still a draft
func (inv *Invoice) IsDraft() bool {
	return inv.Status == InvoiceStatusDraft
}

// IsPaid reports whether the invoice has been settled
func (inv *Invoice) IsPaid() bool {
	return inv.Status == InvoiceStatusPaid
}

// SetAmounts updates subtotal and adjustments and re-derives the total
func (inv *Invoice) SetAmounts(subtotal, adjustments decimal.Decimal) {
	inv.Subtotal = subtotal
	inv.Adjustments = adjustments
	inv.recalculate()
	inv.touch()
}

// ApplyLineItems re-derives the subtotal from the current line items.
// Line items can only be changed while the invoice is a draft.
func (inv *Invoice) ApplyLineItems(items []LineItem) error {
	if !inv.IsDraft() {
		return shared.NewDomainError("INVALID_STATE", "Line items can only be modified on draft invoices")
	}
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.Amount)
	}
	inv.Subtotal = sum
	inv.recalculate()
	inv.touch()
	return nil
}

// SetDueDate updates the due date
func (inv *Invoice) SetDueDate(dueDate string) error {
	if !shared.ValidDate(shared.DateOnly(dueDate)) {
		return shared.NewDomainError("INVALID_DATE", "Due date must be a valid YYYY-MM-DD date")
	}
	inv.DueDate = dueDate
	inv.touch()
	return nil
}

// MarkSent marks the invoice sent, stamping who sent it and when.
// The stamps are written once.
func (inv *Invoice) MarkSent(by uuid.UUID) {
	if inv.SentAt == nil {
		now := time.Now()
		inv.SentAt = &now
		inv.SentBy = &by
	}
	inv.Status = InvoiceStatusSent
	inv.touch()
}

// MarkPaid settles the invoice
func (inv *Invoice) MarkPaid(at time.Time) {
	inv.Status = InvoiceStatusPaid
	inv.PaidAt = &at
	inv.touch()
}

// RevertPayment reopens a previously paid invoice after a payment was
// removed: overdue when the due date has passed, otherwise sent.
func (inv *Invoice) RevertPayment(today string) {
	if shared.DateBefore(inv.DueDate, today) {
		inv.Status = InvoiceStatusOverdue
	} else {
		inv.Status = InvoiceStatusSent
	}
	inv.PaidAt = nil
	inv.touch()
}

// RefreshOverdue flips an unpaid invoice past its due date to overdue.
// Returns true when the status changed; the caller persists the flip so
// every read path reports the same status.
func (inv *Invoice) RefreshOverdue(today string) bool {
	if inv.Status == InvoiceStatusPaid || inv.Status == InvoiceStatusOverdue {
		return false
	}
	if inv.DueDate == "" || !shared.DateBefore(inv.DueDate, today) {
		return false
	}
	inv.Status = InvoiceStatusOverdue
	inv.touch()
	return true
}

// Outstanding returns the unpaid balance given the amount collected so far.
// It is always derived, never stored.
func (inv *Invoice) Outstanding(paid decimal.Decimal) decimal.Decimal {
	return inv.Total.Sub(paid)
}

// SettleAgainst re-derives the paid state from the full payment ledger:
// collected at or above total settles the invoice, anything less holds the
// current open status. Returns true when the invoice flipped to paid.
func (inv *Invoice) SettleAgainst(paymentsTotal decimal.Decimal, at time.Time) bool {
	if inv.IsPaid() {
		return false
	}
	if paymentsTotal.GreaterThanOrEqual(inv.Total) {
		inv.MarkPaid(at)
		return true
	}
	return false
}

// MarkEmailSent records that the invoice document was emailed out
func (inv *Invoice) MarkEmailSent(to string, at time.Time) {
	inv.EmailSentAt = &at
	inv.EmailSentTo = to
	inv.touch()
}

func (inv *Invoice) touch() {
	inv.Touch()
	inv.IncrementVersion()
}
