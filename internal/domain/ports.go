package domain

import (
	"context"
	"time"
)

// LeadRepository defines the persistence contract for leads.
type LeadRepository interface {
	Create(ctx context.Context, lead Lead) (int64, error)
	GetByID(ctx context.Context, id int64) (Lead, error)
	List(ctx context.Context, filter LeadFilter) ([]Lead, error)
	Update(ctx context.Context, lead Lead) error
}

// LeadFilter holds optional criteria for listing leads.
type LeadFilter struct {
	Status *LeadStatus
	Limit  int
	Offset int
}

// PromotionRepository defines the persistence contract for promo codes.
// Codes passed in are already normalized.
type PromotionRepository interface {
	FindByCode(ctx context.Context, code string) (Promotion, error)
	Insert(ctx context.Context, promo Promotion) error

	// IncrementUsage bumps current_uses by one, but only while the
	// promotion is active, under its usage cap, and unexpired at now.
	// The check and the increment are a single atomic operation; it
	// returns false when the guarded update matched nothing.
	IncrementUsage(ctx context.Context, code string, now time.Time) (bool, error)
}

// ConfigRepository defines the persistence contract for pricing
// configuration. Reads reflect the latest committed values; callers must
// not cache across requests.
type ConfigRepository interface {
	GetAll(ctx context.Context) (map[string]float64, error)
	Set(ctx context.Context, key string, value float64) error
}

// AreaLookup resolves a zip code to service-area availability.
type AreaLookup interface {
	CheckAvailability(ctx context.Context, zip string) (Availability, error)
}

// EventPublisher defines the contract for emitting lead lifecycle events.
type EventPublisher interface {
	Publish(ctx context.Context, event LeadEvent, lead Lead) error
}

// TransitionValidator checks whether a lifecycle event is allowed from a
// status and resolves the destination status.
type TransitionValidator interface {
	Apply(ctx context.Context, current LeadStatus, event LeadEvent) (LeadStatus, error)
}
