package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tidybook/tidybook/internal/app"
	"github.com/tidybook/tidybook/internal/domain"
	"github.com/tidybook/tidybook/internal/promo"
)

// --- Mocks ---

type mockLeadRepo struct {
	nextID int64
	leads  map[int64]domain.Lead
}

func newMockLeadRepo() *mockLeadRepo {
	return &mockLeadRepo{leads: make(map[int64]domain.Lead)}
}

func (m *mockLeadRepo) Create(_ context.Context, lead domain.Lead) (int64, error) {
	m.nextID++
	lead.ID = m.nextID
	m.leads[lead.ID] = lead
	return lead.ID, nil
}

func (m *mockLeadRepo) GetByID(_ context.Context, id int64) (domain.Lead, error) {
	lead, ok := m.leads[id]
	if !ok {
		return domain.Lead{}, domain.ErrLeadNotFound
	}
	return lead, nil
}

func (m *mockLeadRepo) List(_ context.Context, _ domain.LeadFilter) ([]domain.Lead, error) {
	out := make([]domain.Lead, 0, len(m.leads))
	for _, lead := range m.leads {
		out = append(out, lead)
	}
	return out, nil
}

func (m *mockLeadRepo) Update(_ context.Context, lead domain.Lead) error {
	if _, ok := m.leads[lead.ID]; !ok {
		return domain.ErrLeadNotFound
	}
	m.leads[lead.ID] = lead
	return nil
}

type mockPromoRepo struct {
	promos map[string]domain.Promotion
}

func newMockPromoRepo() *mockPromoRepo {
	return &mockPromoRepo{promos: make(map[string]domain.Promotion)}
}

func (m *mockPromoRepo) FindByCode(_ context.Context, code string) (domain.Promotion, error) {
	p, ok := m.promos[code]
	if !ok {
		return domain.Promotion{}, domain.ErrPromotionNotFound
	}
	return p, nil
}

func (m *mockPromoRepo) Insert(_ context.Context, p domain.Promotion) error {
	if _, exists := m.promos[p.Code]; exists {
		return &domain.CodeConflictError{Code: p.Code}
	}
	m.promos[p.Code] = p
	return nil
}

func (m *mockPromoRepo) IncrementUsage(_ context.Context, code string, now time.Time) (bool, error) {
	p, ok := m.promos[code]
	if !ok || !p.RedeemableAt(now) {
		return false, nil
	}
	p.CurrentUses++
	m.promos[code] = p
	return true, nil
}

type mockConfigRepo struct {
	values map[string]float64
}

func (m *mockConfigRepo) GetAll(_ context.Context) (map[string]float64, error) {
	out := make(map[string]float64, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out, nil
}

func (m *mockConfigRepo) Set(_ context.Context, key string, value float64) error {
	if m.values == nil {
		m.values = make(map[string]float64)
	}
	m.values[key] = value
	return nil
}

type mockAreas struct{}

func (mockAreas) CheckAvailability(_ context.Context, zip string) (domain.Availability, error) {
	switch zip {
	case "30301":
		return domain.Availability{Status: domain.AreaActive, City: "Atlanta", State: "GA"}, nil
	case "30400":
		return domain.Availability{Status: domain.AreaComingSoon, City: "Macon", State: "GA"}, nil
	default:
		return domain.Availability{Status: domain.AreaUnavailable}, nil
	}
}

type publishedEvent struct {
	event domain.LeadEvent
	lead  domain.Lead
}

type mockPublisher struct {
	events []publishedEvent
}

func (m *mockPublisher) Publish(_ context.Context, e domain.LeadEvent, lead domain.Lead) error {
	m.events = append(m.events, publishedEvent{event: e, lead: lead})
	return nil
}

// tableValidator resolves transitions straight off the domain table.
type tableValidator struct{}

func (tableValidator) Apply(_ context.Context, current domain.LeadStatus, event domain.LeadEvent) (domain.LeadStatus, error) {
	for _, tr := range domain.Transitions {
		if tr.Event == event && tr.Src == current {
			return tr.Dst, nil
		}
	}
	return "", &domain.TransitionError{Event: event, Current: current}
}

type fixture struct {
	svc    *app.BookingService
	leads  *mockLeadRepo
	promos *mockPromoRepo
	pub    *mockPublisher
}

func newFixture() *fixture {
	leads := newMockLeadRepo()
	promos := newMockPromoRepo()
	pub := &mockPublisher{}
	svc := app.NewBookingService(
		leads,
		promos,
		&mockConfigRepo{},
		mockAreas{},
		promo.NewResolver(promos),
		pub,
		tableValidator{},
		nil,
	)
	return &fixture{svc: svc, leads: leads, promos: promos, pub: pub}
}

func residentialAnswers() domain.Answers {
	return domain.Answers{
		ServiceType: domain.ServiceResidential,
		Bedrooms:    1,
		Bathrooms:   1,
		SquareFeet:  1000,
		Intensity:   domain.IntensityStandard,
		Frequency:   domain.FrequencyOneTime,
		Zip:         "30301",
		City:        "Atlanta",
		AreaStatus:  domain.AreaActive,
		Name:        "Dana Freeman",
		Email:       "dana@example.com",
	}
}

// --- Tests ---

func TestQuote_UsesDefaultsWhenConfigEmpty(t *testing.T) {
	f := newFixture()

	total, err := f.svc.Quote(context.Background(), residentialAnswers())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 165 {
		t.Errorf("Quote = %v, want 165", total)
	}
}

func TestQuote_AppliesValidPromo(t *testing.T) {
	f := newFixture()
	f.promos.promos["TEN"] = domain.Promotion{
		Code: "TEN", Type: domain.DiscountFixed, Value: 10, Active: true, MaxUses: 5,
	}

	a := residentialAnswers()
	a.PromoCode = "ten"

	total, err := f.svc.Quote(context.Background(), a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 155 {
		t.Errorf("Quote = %v, want 155", total)
	}
}

func TestQuote_IgnoresRejectedPromo(t *testing.T) {
	f := newFixture()

	a := residentialAnswers()
	a.PromoCode = "NOSUCH"

	total, err := f.svc.Quote(context.Background(), a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 165 {
		t.Errorf("Quote = %v, want the undiscounted 165", total)
	}
}

func TestSubmitLead_PersistsRedeemsPublishes(t *testing.T) {
	f := newFixture()
	f.promos.promos["TEN"] = domain.Promotion{
		Code: "TEN", Type: domain.DiscountFixed, Value: 10, Active: true, MaxUses: 5,
	}

	a := residentialAnswers()
	a.PromoCode = "TEN"

	lead, err := f.svc.SubmitLead(context.Background(), a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if lead.ID == 0 {
		t.Error("lead was not assigned an id")
	}
	if lead.TotalPrice != 155 {
		t.Errorf("TotalPrice = %v, want 155", lead.TotalPrice)
	}
	if lead.Status != domain.StatusNew {
		t.Errorf("Status = %q, want %q", lead.Status, domain.StatusNew)
	}

	if uses := f.promos.promos["TEN"].CurrentUses; uses != 1 {
		t.Errorf("promo uses = %d, want exactly one redemption", uses)
	}

	if len(f.pub.events) != 1 || f.pub.events[0].event != domain.EventCaptured {
		t.Errorf("published events = %+v, want one captured event", f.pub.events)
	}
}

func TestSubmitLead_RedemptionRaceDoesNotFailBooking(t *testing.T) {
	f := newFixture()
	// Validates fine but the single use is consumed before redemption.
	f.promos.promos["LAST1"] = domain.Promotion{
		Code: "LAST1", Type: domain.DiscountFixed, Value: 10, Active: true, MaxUses: 1,
	}

	a := residentialAnswers()
	a.PromoCode = "LAST1"

	if _, err := f.svc.SubmitLead(context.Background(), a); err != nil {
		t.Fatalf("first submission failed: %v", err)
	}
	// Second submission: quote drops the exhausted promo, booking succeeds.
	lead, err := f.svc.SubmitLead(context.Background(), a)
	if err != nil {
		t.Fatalf("second submission failed: %v", err)
	}
	if lead.TotalPrice != 165 {
		t.Errorf("TotalPrice = %v, want undiscounted 165", lead.TotalPrice)
	}
	if uses := f.promos.promos["LAST1"].CurrentUses; uses != 1 {
		t.Errorf("promo uses = %d, the cap must hold", uses)
	}
}

func TestRequestHelp_RequiresContact(t *testing.T) {
	f := newFixture()

	_, err := f.svc.RequestHelp(context.Background(), domain.Answers{Zip: "30301"})
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("error = %v, want ValidationError", err)
	}

	a := domain.Answers{Name: "Dana", Phone: "404-555-0131", Zip: "30301"}
	lead, err := f.svc.RequestHelp(context.Background(), a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lead.Source != domain.SourceHelp {
		t.Errorf("Source = %q, want %q", lead.Source, domain.SourceHelp)
	}
}

func TestUpdateLead_RejectsPastServiceDate(t *testing.T) {
	f := newFixture()
	lead, err := f.svc.SubmitLead(context.Background(), residentialAnswers())
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	past := time.Now().Add(-24 * time.Hour)
	_, err = f.svc.UpdateLead(context.Background(), lead.ID, app.LeadUpdate{ServiceDate: &past})
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("error = %v, want ValidationError", err)
	}

	future := time.Now().Add(72 * time.Hour)
	updated, err := f.svc.UpdateLead(context.Background(), lead.ID, app.LeadUpdate{ServiceDate: &future})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.ServiceDate == nil || !updated.ServiceDate.Equal(future) {
		t.Errorf("ServiceDate = %v, want %v", updated.ServiceDate, future)
	}
}

func TestTransition_ValidAndInvalid(t *testing.T) {
	f := newFixture()
	lead, err := f.svc.SubmitLead(context.Background(), residentialAnswers())
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	contacted, err := f.svc.Transition(context.Background(), lead.ID, domain.EventContact)
	if err != nil {
		t.Fatalf("contact transition failed: %v", err)
	}
	if contacted.Status != domain.StatusContacted {
		t.Errorf("Status = %q, want %q", contacted.Status, domain.StatusContacted)
	}

	// contact is not valid a second time.
	_, err = f.svc.Transition(context.Background(), lead.ID, domain.EventContact)
	var trErr *domain.TransitionError
	if !errors.As(err, &trErr) {
		t.Fatalf("error = %v, want TransitionError", err)
	}
}

func TestCreatePromotion_Validation(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CreatePromotion(context.Background(), domain.Promotion{Code: "", MaxUses: 5})
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("empty code: error = %v, want ValidationError", err)
	}

	created, err := f.svc.CreatePromotion(context.Background(), domain.Promotion{
		Code: " spring20 ", Type: domain.DiscountPercent, Value: 20, Active: true, MaxUses: 100,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Code != "SPRING20" {
		t.Errorf("Code = %q, want normalized %q", created.Code, "SPRING20")
	}

	_, err = f.svc.CreatePromotion(context.Background(), domain.Promotion{
		Code: "SPRING20", Type: domain.DiscountPercent, Value: 20, Active: true, MaxUses: 100,
	})
	var conflict *domain.CodeConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("duplicate code: error = %v, want CodeConflictError", err)
	}
}

func TestGetConfig_MergesDefaults(t *testing.T) {
	f := newFixture()

	if err := f.svc.SetConfig(context.Background(), "price_per_bedroom", 35); err != nil {
		t.Fatalf("SetConfig failed: %v", err)
	}

	cfg, err := f.svc.GetConfig(context.Background())
	if err != nil {
		t.Fatalf("GetConfig failed: %v", err)
	}
	if cfg["price_per_bedroom"] != 35 {
		t.Errorf("overridden key = %v, want 35", cfg["price_per_bedroom"])
	}
	if cfg["price_per_bathroom"] != 30 {
		t.Errorf("default key = %v, want 30", cfg["price_per_bathroom"])
	}
}

func TestSetConfig_RejectsNegative(t *testing.T) {
	f := newFixture()

	err := f.svc.SetConfig(context.Background(), "price_per_bedroom", -5)
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
}
