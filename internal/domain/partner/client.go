package partner

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/servex/backend/internal/domain/shared"
	"github.com/servex/backend/internal/domain/shared/valueobject"
)

// ClientStatus represents the lifecycle status of a client
type ClientStatus string

const (
	ClientStatusActive   ClientStatus = "active"
	ClientStatusInactive ClientStatus = "inactive"
)

// IsValid checks if the status is a valid ClientStatus
func (s ClientStatus) IsValid() bool {
	return s == ClientStatusActive || s == ClientStatusInactive
}

// String returns the string representation of ClientStatus
func (s ClientStatus) String() string {
	return string(s)
}

// DefaultPaymentTermsDays is the default invoice payment window for new clients
const DefaultPaymentTermsDays = 30

// Client represents a freight customer aggregate root.
// Shipments, invoices and payments all hang off a client.
type Client struct {
	shared.TenantAggregateRoot
	Name             string                 `json:"name"`
	Phone            string                 `json:"phone"`
	Email            string                 `json:"email"`
	Whatsapp         string                 `json:"whatsapp"`
	CreditLimit      decimal.Decimal        `json:"credit_limit"`
	PaymentTermsDays int                    `json:"payment_terms_days"`
	DefaultCurrency  valueobject.Currency   `json:"default_currency"`
	DefaultRateValue *decimal.Decimal       `json:"default_rate_value"`
	DefaultRateType  RateType               `json:"default_rate_type"`
	Status           ClientStatus           `json:"status"`
}

// NewClient creates a new client
func NewClient(tenantID uuid.UUID, name string) (*Client, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Client name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Client name cannot exceed 200 characters")
	}

	return &Client{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		CreditLimit:         decimal.Zero,
		PaymentTermsDays:    DefaultPaymentTermsDays,
		DefaultCurrency:     valueobject.DefaultCurrency,
		DefaultRateType:     RateTypePerKg,
		Status:              ClientStatusActive,
	}, nil
}

// Rename changes the client name
func (c *Client) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Client name cannot be empty")
	}
	c.Name = name
	c.touch()
	return nil
}

// SetContact updates the contact channels
func (c *Client) SetContact(phone, email, whatsapp string) {
	c.Phone = phone
	c.Email = strings.ToLower(strings.TrimSpace(email))
	c.Whatsapp = whatsapp
	c.touch()
}

// SetCreditLimit updates the credit limit
func (c *Client) SetCreditLimit(limit decimal.Decimal) error {
	if limit.IsNegative() {
		return shared.NewDomainError("INVALID_CREDIT_LIMIT", "Credit limit cannot be negative")
	}
	c.CreditLimit = limit
	c.touch()
	return nil
}

// SetPaymentTerms updates the payment window used to derive invoice due dates
func (c *Client) SetPaymentTerms(days int) error {
	if days < 0 {
		return shared.NewDomainError("INVALID_PAYMENT_TERMS", "Payment terms cannot be negative")
	}
	c.PaymentTermsDays = days
	c.touch()
	return nil
}

// SetDefaultCurrency updates the billing currency
func (c *Client) SetDefaultCurrency(currency valueobject.Currency) error {
	if currency == "" {
		return shared.NewDomainError("INVALID_CURRENCY", "Currency cannot be empty")
	}
	c.DefaultCurrency = currency
	c.touch()
	return nil
}

// SetDefaultRate sets the fallback rate used when no rate history entry applies
func (c *Client) SetDefaultRate(value decimal.Decimal, rateType RateType) error {
	if !rateType.IsValid() {
		return shared.NewDomainError("INVALID_RATE_TYPE", "Rate type is not valid")
	}
	if value.IsNegative() {
		return shared.NewDomainError("INVALID_RATE", "Rate value cannot be negative")
	}
	c.DefaultRateValue = &value
	c.DefaultRateType = rateType
	c.touch()
	return nil
}

// Activate marks the client active
func (c *Client) Activate() {
	c.Status = ClientStatusActive
	c.touch()
}

// Deactivate marks the client inactive. Inactive clients keep their history.
func (c *Client) Deactivate() {
	c.Status = ClientStatusInactive
	c.touch()
}

// IsActive returns true if the client is active
func (c *Client) IsActive() bool {
	return c.Status == ClientStatusActive
}

// DueDateFromIssue derives the invoice due date from this client's payment terms
func (c *Client) DueDateFromIssue(issueDate string) string {
	days := c.PaymentTermsDays
	if days <= 0 {
		days = DefaultPaymentTermsDays
	}
	return shared.AddDays(issueDate, days)
}

func (c *Client) touch() {
	c.Touch()
	c.IncrementVersion()
}
