package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tidybook/tidybook/internal/domain"
	"github.com/tidybook/tidybook/internal/pricing"
	"github.com/tidybook/tidybook/internal/promo"
)

// BookingService orchestrates quoting, lead capture, and the admin
// operations behind them.
type BookingService struct {
	leads     domain.LeadRepository
	promos    domain.PromotionRepository
	config    domain.ConfigRepository
	areas     domain.AreaLookup
	resolver  *promo.Resolver
	publisher domain.EventPublisher
	validator domain.TransitionValidator
	sessions  *SessionManager
	logger    *slog.Logger
}

// NewBookingService creates a service with the given adapters.
func NewBookingService(
	leads domain.LeadRepository,
	promos domain.PromotionRepository,
	config domain.ConfigRepository,
	areas domain.AreaLookup,
	resolver *promo.Resolver,
	publisher domain.EventPublisher,
	validator domain.TransitionValidator,
	logger *slog.Logger,
) *BookingService {
	if logger == nil {
		logger = slog.Default()
	}
	return &BookingService{
		leads:     leads,
		promos:    promos,
		config:    config,
		areas:     areas,
		resolver:  resolver,
		publisher: publisher,
		validator: validator,
		sessions:  NewSessionManager(logger),
		logger:    logger,
	}
}

// Quote computes the live price estimate for an answers snapshot. The
// configuration is read fresh on every call so admin changes take effect
// immediately. An unredeemable promo code is ignored rather than failing
// the quote; the reason surfaces through ValidatePromotion instead.
func (s *BookingService) Quote(ctx context.Context, a domain.Answers) (float64, error) {
	cfg, err := s.config.GetAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("reading pricing config: %w", err)
	}

	var applied *domain.Promotion
	if a.PromoCode != "" {
		result, err := s.resolver.Validate(ctx, a.PromoCode)
		switch {
		case err == nil:
			applied = &domain.Promotion{Code: result.Code, Type: result.Type, Value: result.Value}
		case isRejection(err):
			// Keep quoting without the discount.
		default:
			return 0, err
		}
	}

	return pricing.Total(a, pricing.Config(cfg), applied), nil
}

// SubmitLead prices the final answers, persists the lead, redeems the
// promo code, and publishes the captured event. A redemption race after
// a successful booking is logged, not fatal: the lead stands.
func (s *BookingService) SubmitLead(ctx context.Context, a domain.Answers) (domain.Lead, error) {
	total, err := s.Quote(ctx, a)
	if err != nil {
		return domain.Lead{}, err
	}

	lead := domain.NewLead(a, total, domain.SourceWizard)
	id, err := s.leads.Create(ctx, lead)
	if err != nil {
		return domain.Lead{}, fmt.Errorf("creating lead: %w", err)
	}
	lead.ID = id

	if a.PromoCode != "" {
		if err := s.resolver.Redeem(ctx, a.PromoCode); err != nil {
			s.logger.Warn("promo redemption failed after booking",
				"lead_id", id,
				"code", domain.NormalizeCode(a.PromoCode),
				"error", err,
			)
		}
	}

	if err := s.publisher.Publish(ctx, domain.EventCaptured, lead); err != nil {
		return domain.Lead{}, fmt.Errorf("publishing captured event: %w", err)
	}

	return lead, nil
}

// RequestHelp captures a partial wizard session as a lead so a human can
// follow up. Contact details are required; everything else may be blank.
func (s *BookingService) RequestHelp(ctx context.Context, a domain.Answers) (domain.Lead, error) {
	if !a.HasContact() {
		return domain.Lead{}, &domain.ValidationError{Field: "contact", Message: "name and email or phone are required"}
	}

	cfg, err := s.config.GetAll(ctx)
	if err != nil {
		return domain.Lead{}, fmt.Errorf("reading pricing config: %w", err)
	}

	lead := domain.NewLead(a, pricing.Total(a, pricing.Config(cfg), nil), domain.SourceHelp)
	id, err := s.leads.Create(ctx, lead)
	if err != nil {
		return domain.Lead{}, fmt.Errorf("creating help lead: %w", err)
	}
	lead.ID = id

	if err := s.publisher.Publish(ctx, domain.EventCaptured, lead); err != nil {
		return domain.Lead{}, fmt.Errorf("publishing captured event: %w", err)
	}

	return lead, nil
}

// GetLead returns a lead by id.
func (s *BookingService) GetLead(ctx context.Context, id int64) (domain.Lead, error) {
	return s.leads.GetByID(ctx, id)
}

// ListLeads returns leads matching the given filter.
func (s *BookingService) ListLeads(ctx context.Context, filter domain.LeadFilter) ([]domain.Lead, error) {
	return s.leads.List(ctx, filter)
}

// LeadUpdate carries an admin edit of a lead. Nil fields are untouched.
type LeadUpdate struct {
	Name        *string
	Email       *string
	Phone       *string
	ServiceDate *time.Time
}

// UpdateLead applies an admin edit. Past service dates are rejected.
func (s *BookingService) UpdateLead(ctx context.Context, id int64, upd LeadUpdate) (domain.Lead, error) {
	lead, err := s.leads.GetByID(ctx, id)
	if err != nil {
		return domain.Lead{}, err
	}

	if upd.ServiceDate != nil && upd.ServiceDate.Before(time.Now()) {
		return domain.Lead{}, &domain.ValidationError{Field: "service_date", Message: "must not be in the past"}
	}

	if upd.Name != nil {
		lead.Name = *upd.Name
	}
	if upd.Email != nil {
		lead.Email = *upd.Email
	}
	if upd.Phone != nil {
		lead.Phone = *upd.Phone
	}
	if upd.ServiceDate != nil {
		lead.ServiceDate = upd.ServiceDate
	}

	if err := s.leads.Update(ctx, lead); err != nil {
		return domain.Lead{}, fmt.Errorf("updating lead: %w", err)
	}

	return lead, nil
}

// Transition applies a lifecycle event to a lead, changing its status.
func (s *BookingService) Transition(ctx context.Context, id int64, event domain.LeadEvent) (domain.Lead, error) {
	lead, err := s.leads.GetByID(ctx, id)
	if err != nil {
		return domain.Lead{}, err
	}

	newStatus, err := s.validator.Apply(ctx, lead.Status, event)
	if err != nil {
		return domain.Lead{}, err
	}

	lead.Status = newStatus

	if err := s.leads.Update(ctx, lead); err != nil {
		return domain.Lead{}, fmt.Errorf("updating lead: %w", err)
	}

	if err := s.publisher.Publish(ctx, event, lead); err != nil {
		return domain.Lead{}, fmt.Errorf("publishing event %q: %w", event, err)
	}

	return lead, nil
}

// CheckAvailability resolves a zip code against the serviced territory.
func (s *BookingService) CheckAvailability(ctx context.Context, zip string) (domain.Availability, error) {
	return s.areas.CheckAvailability(ctx, zip)
}

// ValidatePromotion checks a code without consuming a use.
func (s *BookingService) ValidatePromotion(ctx context.Context, code string) (promo.Result, error) {
	return s.resolver.Validate(ctx, code)
}

// CreatePromotion stores an admin-defined promotion.
func (s *BookingService) CreatePromotion(ctx context.Context, p domain.Promotion) (domain.Promotion, error) {
	p.Code = domain.NormalizeCode(p.Code)
	if p.Code == "" {
		return domain.Promotion{}, &domain.ValidationError{Field: "code", Message: "must not be empty"}
	}
	if p.MaxUses <= 0 {
		return domain.Promotion{}, &domain.ValidationError{Field: "max_uses", Message: "must be positive"}
	}
	p.CurrentUses = 0
	p.CreatedAt = time.Now().UTC()

	if err := s.promos.Insert(ctx, p); err != nil {
		var conflict *domain.CodeConflictError
		if errors.As(err, &conflict) {
			return domain.Promotion{}, err
		}
		return domain.Promotion{}, fmt.Errorf("storing promotion: %w", err)
	}
	return p, nil
}

// GenerateGiftCode mints a one-time PREFIX-XXXX code with a 48h expiry.
func (s *BookingService) GenerateGiftCode(ctx context.Context, value float64, discountType domain.DiscountType, prefix string) (domain.Promotion, error) {
	return s.resolver.GenerateOneTime(ctx, value, discountType, prefix)
}

// GetConfig returns the live pricing configuration merged over the
// shipped defaults, so newly introduced keys appear before an admin has
// ever saved them.
func (s *BookingService) GetConfig(ctx context.Context) (map[string]float64, error) {
	stored, err := s.config.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading pricing config: %w", err)
	}

	merged := make(map[string]float64, len(pricing.Defaults)+len(stored))
	for k, v := range pricing.Defaults {
		merged[k] = v
	}
	for k, v := range stored {
		merged[k] = v
	}
	return merged, nil
}

// SetConfig updates one pricing value.
func (s *BookingService) SetConfig(ctx context.Context, key string, value float64) error {
	if key == "" {
		return &domain.ValidationError{Field: "key", Message: "must not be empty"}
	}
	if value < 0 {
		return &domain.ValidationError{Field: "value", Message: "must not be negative"}
	}
	if err := s.config.Set(ctx, key, value); err != nil {
		return fmt.Errorf("writing pricing config: %w", err)
	}
	return nil
}

func isRejection(err error) bool {
	var rej *promo.RejectionError
	return errors.As(err, &rej)
}
