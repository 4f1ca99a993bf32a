// Package promo validates and redeems promotion codes. Validation and
// redemption are deliberately separate: the wizard validates while the
// user types, and only a successful booking redeems.
package promo

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/tidybook/tidybook/internal/domain"
)

// User-facing rejection reasons, one per validation rule.
const (
	ReasonEmpty     = "enter a promo code"
	ReasonInvalid   = "invalid code"
	ReasonInactive  = "no longer active"
	ReasonExhausted = "usage limit reached"
	ReasonExpired   = "expired"
)

// RejectionError carries a short, user-facing reason for a rejected
// code. It never wraps storage errors.
type RejectionError struct {
	Reason string
}

func (e *RejectionError) Error() string {
	return e.Reason
}

// Result describes a validated promotion ready to be applied to a quote.
type Result struct {
	Code  string
	Type  domain.DiscountType
	Value float64
}

// giftTTL is the lifetime of generated one-time gift codes.
const giftTTL = 48 * time.Hour

// generateAttempts bounds retries when a random code collides.
const generateAttempts = 5

// Resolver validates and redeems promotion codes against the repository.
type Resolver struct {
	repo domain.PromotionRepository
	now  func() time.Time
}

// NewResolver creates a resolver using wall-clock time.
func NewResolver(repo domain.PromotionRepository) *Resolver {
	return &Resolver{repo: repo, now: time.Now}
}

// NewResolverAt creates a resolver with an injected clock, for tests.
func NewResolverAt(repo domain.PromotionRepository, now func() time.Time) *Resolver {
	return &Resolver{repo: repo, now: now}
}

// Validate checks a code against the redemption rules in order,
// short-circuiting on the first failure: empty, unknown, inactive,
// exhausted, expired. It never mutates state. A rejected code returns a
// *RejectionError with the matching reason.
func (r *Resolver) Validate(ctx context.Context, code string) (Result, error) {
	normalized := domain.NormalizeCode(code)
	if normalized == "" {
		return Result{}, &RejectionError{Reason: ReasonEmpty}
	}

	promo, err := r.repo.FindByCode(ctx, normalized)
	if err != nil {
		if errors.Is(err, domain.ErrPromotionNotFound) {
			return Result{}, &RejectionError{Reason: ReasonInvalid}
		}
		return Result{}, fmt.Errorf("looking up promotion: %w", err)
	}

	if !promo.Active {
		return Result{}, &RejectionError{Reason: ReasonInactive}
	}
	if promo.CurrentUses >= promo.MaxUses {
		return Result{}, &RejectionError{Reason: ReasonExhausted}
	}
	if promo.ExpiresAt != nil && r.now().After(*promo.ExpiresAt) {
		return Result{}, &RejectionError{Reason: ReasonExpired}
	}

	return Result{
		Code:  promo.Code,
		Type:  promo.Type,
		Value: promo.Value,
	}, nil
}

// Redeem consumes one use of the code. The storage layer re-checks the
// cap and expiry atomically with the increment, so concurrent
// redemptions of the last remaining use cannot both succeed.
func (r *Resolver) Redeem(ctx context.Context, code string) error {
	normalized := domain.NormalizeCode(code)
	if normalized == "" {
		return &RejectionError{Reason: ReasonEmpty}
	}

	ok, err := r.repo.IncrementUsage(ctx, normalized, r.now())
	if err != nil {
		return fmt.Errorf("redeeming promotion: %w", err)
	}
	if !ok {
		return &RejectionError{Reason: ReasonExhausted}
	}
	return nil
}

// GenerateOneTime creates a single-use gift code of the form PREFIX-XXXX
// with a 48-hour expiry. Collisions are improbable but the storage
// uniqueness constraint is authoritative; generation retries on conflict.
func (r *Resolver) GenerateOneTime(ctx context.Context, value float64, discountType domain.DiscountType, prefix string) (domain.Promotion, error) {
	now := r.now().UTC()
	expires := now.Add(giftTTL)

	for attempt := 0; attempt < generateAttempts; attempt++ {
		suffix, err := randomBase36(4)
		if err != nil {
			return domain.Promotion{}, fmt.Errorf("generating code suffix: %w", err)
		}

		promo := domain.Promotion{
			Code:      domain.NormalizeCode(prefix) + "-" + suffix,
			Type:      discountType,
			Value:     value,
			Active:    true,
			MaxUses:   1,
			ExpiresAt: &expires,
			CreatedAt: now,
		}

		err = r.repo.Insert(ctx, promo)
		if err == nil {
			return promo, nil
		}

		var conflict *domain.CodeConflictError
		if !errors.As(err, &conflict) {
			return domain.Promotion{}, fmt.Errorf("storing gift code: %w", err)
		}
	}

	return domain.Promotion{}, fmt.Errorf("generating gift code: %d collisions in a row", generateAttempts)
}

// randomBase36 returns n uniformly random characters from the uppercase
// base-36 alphabet. Bytes at or above the largest multiple of 36 are
// rejected, otherwise reducing modulo 36 would skew toward the low
// characters.
func randomBase36(n int) (string, error) {
	const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	const limit = byte(252) // 7 * 36

	out := make([]byte, 0, n)
	buf := make([]byte, n)
	for len(out) < n {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, v := range buf {
			if v >= limit {
				continue
			}
			out = append(out, alphabet[int(v)%len(alphabet)])
			if len(out) == n {
				break
			}
		}
	}
	return string(out), nil
}
