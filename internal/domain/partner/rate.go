package partner

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/servex/backend/internal/domain/shared"
)

// RateType represents how a client rate is applied
type RateType string

const (
	RateTypePerKg  RateType = "per_kg"
	RateTypePerCbm RateType = "per_cbm"
	RateTypeFlat   RateType = "flat_rate"
	RateTypeCustom RateType = "custom"
)

// IsValid checks if the rate type is valid
func (t RateType) IsValid() bool {
	switch t {
	case RateTypePerKg, RateTypePerCbm, RateTypeFlat, RateTypeCustom:
		return true
	}
	return false
}

// ClientRate represents one entry in a client's append-only rate history.
// Entries are never edited; a correction is a new entry with a later
// effective_from.
type ClientRate struct {
	shared.TenantAggregateRoot
	ClientID      uuid.UUID       `json:"client_id"`
	RateType      RateType        `json:"rate_type"`
	RateValue     decimal.Decimal `json:"rate_value"`
	EffectiveFrom string          `json:"effective_from"`
	Notes         string          `json:"notes"`
}

// NewClientRate creates a new rate history entry.
// An empty effectiveFrom defaults to today.
func NewClientRate(tenantID, clientID, createdBy uuid.UUID, rateType RateType, value decimal.Decimal, effectiveFrom, notes string) (*ClientRate, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	if !rateType.IsValid() {
		return nil, shared.NewDomainError("INVALID_RATE_TYPE", "Rate type is not valid")
	}
	if value.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RATE", "Rate value cannot be negative")
	}
	if effectiveFrom == "" {
		effectiveFrom = shared.Today()
	} else if !shared.ValidDate(shared.DateOnly(effectiveFrom)) {
		return nil, shared.NewDomainError("INVALID_DATE", "Effective date must be a valid YYYY-MM-DD date")
	}

	return &ClientRate{
		TenantAggregateRoot: shared.NewTenantAggregateRootWithCreator(tenantID, createdBy),
		ClientID:            clientID,
		RateType:            rateType,
		RateValue:           value,
		EffectiveFrom:       effectiveFrom,
		Notes:               notes,
	}, nil
}

// IsEffectiveOn reports whether this rate entry applies on the given date.
// Timestamps in EffectiveFrom compare on their date part only.
func (r *ClientRate) IsEffectiveOn(date string) bool {
	if r.EffectiveFrom == "" {
		return false
	}
	return shared.DateOnly(r.EffectiveFrom) <= shared.DateOnly(date)
}

// CurrentRate selects the rate in effect on the given date from a rate
// history: the entry with the latest effective_from not after the date.
// Entries sharing an effective_from tie-break on created_at, newest first.
// Returns nil when no entry is effective yet.
func CurrentRate(rates []ClientRate, date string) *ClientRate {
	effective := make([]ClientRate, 0, len(rates))
	for _, r := range rates {
		if r.IsEffectiveOn(date) {
			effective = append(effective, r)
		}
	}
	if len(effective) == 0 {
		return nil
	}
	sort.SliceStable(effective, func(i, j int) bool {
		di, dj := shared.DateOnly(effective[i].EffectiveFrom), shared.DateOnly(effective[j].EffectiveFrom)
		if di != dj {
			return di > dj
		}
		return effective[i].CreatedAt.After(effective[j].CreatedAt)
	})
	return &effective[0]
}
