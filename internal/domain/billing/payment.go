package billing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/servex/backend/internal/domain/shared"
	"github.com/servex/backend/internal/domain/shared/valueobject"
)

// PaymentMethod classifies how a payment was received
type PaymentMethod string

const (
	PaymentEFT         PaymentMethod = "eft"
	PaymentCash        PaymentMethod = "cash"
	PaymentCard        PaymentMethod = "card"
	PaymentMobileMoney PaymentMethod = "mobile_money"
	PaymentOther       PaymentMethod = "other"
)

// IsValid checks if the method is a valid PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentEFT, PaymentCash, PaymentCard, PaymentMobileMoney, PaymentOther:
		return true
	}
	return false
}

// Payment records money received from a client, optionally allocated to an
// invoice. The ledger is append-only; removal re-derives invoice status.
type Payment struct {
	shared.TenantAggregateRoot
	ClientID    uuid.UUID            `json:"client_id"`
	InvoiceID   *uuid.UUID           `json:"invoice_id"`
	Amount      decimal.Decimal      `json:"amount"`
	Currency    valueobject.Currency `json:"currency"`
	Method      PaymentMethod        `json:"method"`
	PaymentDate string               `json:"payment_date"`
	Reference   string               `json:"reference"`
	Notes       string               `json:"notes"`
	RecordedBy  *uuid.UUID           `json:"recorded_by"`
}

// NewPayment records a payment from a client. An empty paymentDate defaults
// to today, an empty method to EFT.
func NewPayment(tenantID, clientID uuid.UUID, invoiceID *uuid.UUID, amount decimal.Decimal, currency valueobject.Currency, method PaymentMethod, paymentDate, reference string) (*Payment, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}
	if method == "" {
		method = PaymentEFT
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_METHOD", "Payment method is not valid")
	}
	if paymentDate == "" {
		paymentDate = shared.Today()
	} else if !shared.ValidDate(shared.DateOnly(paymentDate)) {
		return nil, shared.NewDomainError("INVALID_DATE", "Payment date must be a valid YYYY-MM-DD date")
	}

	return &Payment{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ClientID:            clientID,
		InvoiceID:           invoiceID,
		Amount:              amount,
		Currency:            currency,
		Method:              method,
		PaymentDate:         paymentDate,
		Reference:           reference,
	}, nil
}

// SetRecordedBy stamps the user who captured the payment
func (p *Payment) SetRecordedBy(userID uuid.UUID) {
	p.RecordedBy = &userID
	p.Touch()
}

// Money returns the payment amount tagged with its currency
func (p *Payment) Money() valueobject.Money {
	m, err := valueobject.NewMoney(p.Amount, p.Currency)
	if err != nil {
		return valueobject.Zero(valueobject.DefaultCurrency)
	}
	return m
}

// SumPayments totals the amounts in a payment ledger. A ledger belongs to
// one invoice and so shares one currency; an entry in a foreign currency
// is a data error and is left out of the total rather than mixed in.
func SumPayments(payments []Payment) decimal.Decimal {
	if len(payments) == 0 {
		return decimal.Zero
	}
	total := valueobject.Zero(payments[0].Currency)
	for i := range payments {
		if sum, err := total.Add(payments[i].Money()); err == nil {
			total = sum
		}
	}
	return total.Amount()
}
