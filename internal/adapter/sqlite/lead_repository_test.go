package sqlite_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/tidybook/tidybook/internal/adapter/sqlite"
	"github.com/tidybook/tidybook/internal/domain"
)

func sampleAnswers() domain.Answers {
	return domain.Answers{
		ServiceType: domain.ServiceResidential,
		Intensity:   domain.IntensityStandard,
		Frequency:   domain.FrequencyOneTime,
		Bedrooms:    2,
		Bathrooms:   1,
		Zip:         "30301",
		City:        "Atlanta",
		Name:        "Jordan Wells",
		Email:       "jordan@example.com",
		Phone:       "555-0101",
	}
}

func mustCreateLead(t *testing.T, repo *sqlite.LeadRepository, lead domain.Lead) int64 {
	t.Helper()
	id, err := repo.Create(context.Background(), lead)
	if err != nil {
		t.Fatalf("mustCreateLead failed: %v", err)
	}
	return id
}

func TestLeadCreate_And_GetByID(t *testing.T) {
	repo := sqlite.NewLeadRepository(newTestDB(t))
	ctx := context.Background()

	lead := domain.NewLead(sampleAnswers(), 165, domain.SourceWizard)
	id, err := repo.Create(ctx, lead)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if id == 0 {
		t.Fatal("Create returned zero id")
	}

	got, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}

	if got.ID != id {
		t.Errorf("ID = %d, want %d", got.ID, id)
	}
	if got.Name != "Jordan Wells" {
		t.Errorf("Name = %q, want %q", got.Name, "Jordan Wells")
	}
	if got.ServiceType != domain.ServiceResidential {
		t.Errorf("ServiceType = %q, want %q", got.ServiceType, domain.ServiceResidential)
	}
	if got.TotalPrice != 165 {
		t.Errorf("TotalPrice = %v, want %v", got.TotalPrice, 165.0)
	}
	if got.Status != domain.StatusNew {
		t.Errorf("Status = %q, want %q", got.Status, domain.StatusNew)
	}
	if got.Source != domain.SourceWizard {
		t.Errorf("Source = %q, want %q", got.Source, domain.SourceWizard)
	}
	if got.ServiceDate != nil {
		t.Errorf("ServiceDate = %v, want nil", got.ServiceDate)
	}
	if got.Details == "" || got.Details == "{}" {
		t.Errorf("Details = %q, want answers snapshot", got.Details)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should not be zero")
	}
}

func TestLeadGetByID_NotFound(t *testing.T) {
	repo := sqlite.NewLeadRepository(newTestDB(t))

	_, err := repo.GetByID(context.Background(), 9999)
	if !errors.Is(err, domain.ErrLeadNotFound) {
		t.Errorf("expected ErrLeadNotFound, got %v", err)
	}
}

func TestLeadUpdate(t *testing.T) {
	repo := sqlite.NewLeadRepository(newTestDB(t))
	ctx := context.Background()

	id := mustCreateLead(t, repo, domain.NewLead(sampleAnswers(), 165, domain.SourceWizard))

	lead, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}

	when := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	lead.Status = domain.StatusContacted
	lead.ServiceDate = &when
	if err := repo.Update(ctx, lead); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID after update failed: %v", err)
	}
	if got.Status != domain.StatusContacted {
		t.Errorf("Status = %q, want %q", got.Status, domain.StatusContacted)
	}
	if got.ServiceDate == nil || !got.ServiceDate.Equal(when) {
		t.Errorf("ServiceDate = %v, want %v", got.ServiceDate, when)
	}
}

func TestLeadUpdate_NotFound(t *testing.T) {
	repo := sqlite.NewLeadRepository(newTestDB(t))

	lead := domain.NewLead(sampleAnswers(), 165, domain.SourceWizard)
	lead.ID = 4242

	err := repo.Update(context.Background(), lead)
	if !errors.Is(err, domain.ErrLeadNotFound) {
		t.Errorf("expected ErrLeadNotFound, got %v", err)
	}
}

func TestLeadList_FilterAndPaging(t *testing.T) {
	repo := sqlite.NewLeadRepository(newTestDB(t))
	ctx := context.Background()

	for i := range 5 {
		a := sampleAnswers()
		a.Name = fmt.Sprintf("Lead %d", i)
		lead := domain.NewLead(a, 100, domain.SourceWizard)
		lead.CreatedAt = time.Date(2026, 8, 1+i, 12, 0, 0, 0, time.UTC)
		id := mustCreateLead(t, repo, lead)

		if i >= 3 {
			stored, err := repo.GetByID(ctx, id)
			if err != nil {
				t.Fatalf("GetByID failed: %v", err)
			}
			stored.Status = domain.StatusContacted
			if err := repo.Update(ctx, stored); err != nil {
				t.Fatalf("Update failed: %v", err)
			}
		}
	}

	all, err := repo.List(ctx, domain.LeadFilter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("len(all) = %d, want 5", len(all))
	}
	// Newest first.
	if all[0].Name != "Lead 4" {
		t.Errorf("all[0].Name = %q, want %q", all[0].Name, "Lead 4")
	}

	contacted := domain.StatusContacted
	filtered, err := repo.List(ctx, domain.LeadFilter{Status: &contacted})
	if err != nil {
		t.Fatalf("List with status failed: %v", err)
	}
	if len(filtered) != 2 {
		t.Errorf("len(filtered) = %d, want 2", len(filtered))
	}

	page, err := repo.List(ctx, domain.LeadFilter{Limit: 2, Offset: 1})
	if err != nil {
		t.Fatalf("List with paging failed: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("len(page) = %d, want 2", len(page))
	}
	if page[0].Name != "Lead 3" {
		t.Errorf("page[0].Name = %q, want %q", page[0].Name, "Lead 3")
	}
}
