package domain

import (
	"strings"
	"time"
)

// DiscountType says how a promotion's value is applied to a total.
type DiscountType string

const (
	DiscountPercent DiscountType = "percent"
	DiscountFixed   DiscountType = "fixed"
)

// Promotion is a redeemable discount code. Codes are stored normalized
// (trimmed, uppercased) and compared case-insensitively.
type Promotion struct {
	Code        string
	Type        DiscountType
	Value       float64
	Active      bool
	CurrentUses int
	MaxUses     int
	ExpiresAt   *time.Time
	CreatedAt   time.Time
}

// NormalizeCode canonicalizes user input for lookup and storage.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// RedeemableAt reports whether the promotion can still be redeemed at the
// given instant.
func (p Promotion) RedeemableAt(now time.Time) bool {
	if !p.Active {
		return false
	}
	if p.CurrentUses >= p.MaxUses {
		return false
	}
	if p.ExpiresAt != nil && now.After(*p.ExpiresAt) {
		return false
	}
	return true
}

// Discount returns the amount to subtract from the given total. The
// result never exceeds the total.
func (p Promotion) Discount(total float64) float64 {
	var d float64
	switch p.Type {
	case DiscountPercent:
		d = total * p.Value / 100
	case DiscountFixed:
		d = p.Value
	}
	if d > total {
		return total
	}
	if d < 0 {
		return 0
	}
	return d
}
