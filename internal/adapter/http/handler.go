// Package http exposes the booking API over HTTP using Huma.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tidybook/tidybook/internal/app"
	"github.com/tidybook/tidybook/internal/domain"
	"github.com/tidybook/tidybook/internal/promo"
	"github.com/tidybook/tidybook/internal/wizard"
)

const timeFormat = "2006-01-02T15:04:05Z"

// LeadResponse is the API representation of a captured lead.
type LeadResponse struct {
	ID          int64   `json:"id" doc:"Unique identifier"`
	Name        string  `json:"name" doc:"Contact name"`
	Email       string  `json:"email" doc:"Contact email"`
	Phone       string  `json:"phone" doc:"Contact phone"`
	ServiceType string  `json:"service_type" doc:"Requested service"`
	Zip         string  `json:"zip" doc:"Service zip code"`
	City        string  `json:"city" doc:"Service city"`
	ServiceDate string  `json:"service_date,omitempty" doc:"Scheduled service date (ISO 8601)"`
	TotalPrice  float64 `json:"total_price" doc:"Quoted total at capture time"`
	Status      string  `json:"status" doc:"Follow-up state"`
	Source      string  `json:"source" doc:"How the lead entered the system"`
	CreatedAt   string  `json:"created_at" doc:"Creation timestamp (ISO 8601)"`
}

func toLeadResponse(l domain.Lead) LeadResponse {
	resp := LeadResponse{
		ID:          l.ID,
		Name:        l.Name,
		Email:       l.Email,
		Phone:       l.Phone,
		ServiceType: string(l.ServiceType),
		Zip:         l.Zip,
		City:        l.City,
		TotalPrice:  l.TotalPrice,
		Status:      string(l.Status),
		Source:      string(l.Source),
		CreatedAt:   l.CreatedAt.Format(timeFormat),
	}
	if l.ServiceDate != nil {
		resp.ServiceDate = l.ServiceDate.Format(timeFormat)
	}
	return resp
}

// AnswersBody is the API representation of a wizard answers snapshot.
// It is accepted whole on quote and help requests.
type AnswersBody struct {
	ServiceType    string   `json:"service_type,omitempty" doc:"residential, commercial, or property_mgmt"`
	Intensity      string   `json:"intensity,omitempty" doc:"standard, deep, or move"`
	Frequency      string   `json:"frequency,omitempty" doc:"onetime, weekly, biweekly, or monthly"`
	Bedrooms       int      `json:"bedrooms,omitempty" minimum:"0" doc:"Bedroom count"`
	Bathrooms      int      `json:"bathrooms,omitempty" minimum:"0" doc:"Bathroom count"`
	SquareFeet     int      `json:"square_feet,omitempty" minimum:"0" doc:"Residential floor space"`
	CommercialSqFt string   `json:"commercial_sqft,omitempty" doc:"Commercial floor space, as entered"`
	Zip            string   `json:"zip,omitempty" doc:"Service zip code"`
	Name           string   `json:"name,omitempty" doc:"Contact name"`
	Email          string   `json:"email,omitempty" doc:"Contact email"`
	Phone          string   `json:"phone,omitempty" doc:"Contact phone"`
	Extras         []string `json:"extras,omitempty" doc:"Add-on identifiers"`
	PromoCode      string   `json:"promo_code,omitempty" doc:"Promo code to apply"`
}

func toAnswers(b AnswersBody) domain.Answers {
	return domain.Answers{
		ServiceType:    domain.ServiceType(b.ServiceType),
		Intensity:      domain.Intensity(b.Intensity),
		Frequency:      domain.Frequency(b.Frequency),
		Bedrooms:       b.Bedrooms,
		Bathrooms:      b.Bathrooms,
		SquareFeet:     b.SquareFeet,
		CommercialSqFt: b.CommercialSqFt,
		Zip:            b.Zip,
		Name:           b.Name,
		Email:          b.Email,
		Phone:          b.Phone,
		Extras:         b.Extras,
		PromoCode:      b.PromoCode,
	}
}

// --- Quote ---

type QuoteInput struct {
	Body AnswersBody
}

type QuoteOutput struct {
	Body struct {
		Total float64 `json:"total" doc:"Estimated price"`
	}
}

// --- Availability ---

type AvailabilityInput struct {
	Zip string `path:"zip" doc:"Zip code to check"`
}

type AvailabilityOutput struct {
	Body struct {
		Status string `json:"status" doc:"active, coming_soon, or unavailable"`
		City   string `json:"city,omitempty" doc:"City, when the zip is known"`
		State  string `json:"state,omitempty" doc:"State, when the zip is known"`
	}
}

// --- Help request ---

type HelpRequestInput struct {
	Body AnswersBody
}

type HelpRequestOutput struct {
	Body LeadResponse
}

// --- Get Lead ---

type GetLeadInput struct {
	ID int64 `path:"id" doc:"Lead ID"`
}

type GetLeadOutput struct {
	Body LeadResponse
}

// --- List Leads ---

type ListLeadsInput struct {
	Status string `query:"status" required:"false" enum:"new,contacted,booked" doc:"Filter by status"`
	Limit  int    `query:"limit" required:"false" default:"50" doc:"Max results"`
	Offset int    `query:"offset" required:"false" default:"0" doc:"Pagination offset"`
}

type ListLeadsOutput struct {
	Body []LeadResponse
}

// --- Update Lead ---

type UpdateLeadInput struct {
	ID   int64 `path:"id" doc:"Lead ID"`
	Body struct {
		Name        *string `json:"name,omitempty" doc:"Contact name"`
		Email       *string `json:"email,omitempty" doc:"Contact email"`
		Phone       *string `json:"phone,omitempty" doc:"Contact phone"`
		ServiceDate *string `json:"service_date,omitempty" format:"date-time" doc:"Scheduled service date (ISO 8601)"`
	}
}

type UpdateLeadOutput struct {
	Body LeadResponse
}

// --- Transition ---

type TransitionInput struct {
	ID   int64 `path:"id" doc:"Lead ID"`
	Body struct {
		Event string `json:"event" doc:"Lifecycle event to trigger" enum:"contact,book"`
	}
}

type TransitionOutput struct {
	Body LeadResponse
}

// Register adds all booking API routes to the Huma API.
func Register(api huma.API, svc *app.BookingService) {
	registerSessions(api, svc)
	registerPromotions(api, svc)
	registerConfig(api, svc)

	huma.Register(api, huma.Operation{
		OperationID: "quote",
		Method:      http.MethodPost,
		Path:        "/api/v1/quote",
		Summary:     "Price an answers snapshot",
		Tags:        []string{"Quotes"},
	}, func(ctx context.Context, input *QuoteInput) (*QuoteOutput, error) {
		total, err := svc.Quote(ctx, toAnswers(input.Body))
		if err != nil {
			return nil, toHumaError(err)
		}
		out := &QuoteOutput{}
		out.Body.Total = total
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "check-availability",
		Method:      http.MethodGet,
		Path:        "/api/v1/availability/{zip}",
		Summary:     "Check service-area availability for a zip code",
		Tags:        []string{"Quotes"},
	}, func(ctx context.Context, input *AvailabilityInput) (*AvailabilityOutput, error) {
		availability, err := svc.CheckAvailability(ctx, input.Zip)
		if err != nil {
			return nil, toHumaError(err)
		}
		out := &AvailabilityOutput{}
		out.Body.Status = string(availability.Status)
		out.Body.City = availability.City
		out.Body.State = availability.State
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "request-help",
		Method:      http.MethodPost,
		Path:        "/api/v1/help",
		Summary:     "Capture a partial session for human follow-up",
		Tags:        []string{"Leads"},
	}, func(ctx context.Context, input *HelpRequestInput) (*HelpRequestOutput, error) {
		lead, err := svc.RequestHelp(ctx, toAnswers(input.Body))
		if err != nil {
			return nil, toHumaError(err)
		}
		return &HelpRequestOutput{Body: toLeadResponse(lead)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-lead",
		Method:      http.MethodGet,
		Path:        "/api/v1/leads/{id}",
		Summary:     "Get a lead by ID",
		Tags:        []string{"Leads"},
	}, func(ctx context.Context, input *GetLeadInput) (*GetLeadOutput, error) {
		lead, err := svc.GetLead(ctx, input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &GetLeadOutput{Body: toLeadResponse(lead)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-leads",
		Method:      http.MethodGet,
		Path:        "/api/v1/leads",
		Summary:     "List leads",
		Tags:        []string{"Leads"},
	}, func(ctx context.Context, input *ListLeadsInput) (*ListLeadsOutput, error) {
		filter := domain.LeadFilter{
			Limit:  input.Limit,
			Offset: input.Offset,
		}
		if input.Status != "" {
			s := domain.LeadStatus(input.Status)
			filter.Status = &s
		}

		leads, err := svc.ListLeads(ctx, filter)
		if err != nil {
			return nil, toHumaError(err)
		}

		resp := make([]LeadResponse, len(leads))
		for i, l := range leads {
			resp[i] = toLeadResponse(l)
		}
		return &ListLeadsOutput{Body: resp}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-lead",
		Method:      http.MethodPatch,
		Path:        "/api/v1/leads/{id}",
		Summary:     "Edit a lead's contact details or service date",
		Tags:        []string{"Leads"},
	}, func(ctx context.Context, input *UpdateLeadInput) (*UpdateLeadOutput, error) {
		upd := app.LeadUpdate{
			Name:  input.Body.Name,
			Email: input.Body.Email,
			Phone: input.Body.Phone,
		}
		if input.Body.ServiceDate != nil {
			when, err := parseDate(*input.Body.ServiceDate)
			if err != nil {
				return nil, huma.Error422UnprocessableEntity("invalid service_date")
			}
			upd.ServiceDate = &when
		}

		lead, err := svc.UpdateLead(ctx, input.ID, upd)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &UpdateLeadOutput{Body: toLeadResponse(lead)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "transition-lead",
		Method:      http.MethodPost,
		Path:        "/api/v1/leads/{id}/events",
		Summary:     "Trigger a lifecycle event",
		Tags:        []string{"Leads"},
	}, func(ctx context.Context, input *TransitionInput) (*TransitionOutput, error) {
		lead, err := svc.Transition(ctx, input.ID, domain.LeadEvent(input.Body.Event))
		if err != nil {
			return nil, toHumaError(err)
		}
		return &TransitionOutput{Body: toLeadResponse(lead)}, nil
	})
}

// parseDate accepts a full RFC 3339 timestamp or a bare date.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// toHumaError translates domain and application errors to Huma HTTP errors.
func toHumaError(err error) error {
	if errors.Is(err, domain.ErrLeadNotFound) {
		return huma.Error404NotFound("lead not found")
	}
	if errors.Is(err, domain.ErrPromotionNotFound) {
		return huma.Error404NotFound("promotion not found")
	}
	if errors.Is(err, app.ErrSessionNotFound) {
		return huma.Error404NotFound("session not found")
	}

	var codeErr *domain.CodeConflictError
	if errors.As(err, &codeErr) {
		return huma.Error409Conflict(codeErr.Error())
	}

	var trErr *domain.TransitionError
	if errors.As(err, &trErr) {
		return huma.Error422UnprocessableEntity(trErr.Error())
	}

	var valErr *domain.ValidationError
	if errors.As(err, &valErr) {
		return huma.Error422UnprocessableEntity(valErr.Error())
	}

	var rejErr *promo.RejectionError
	if errors.As(err, &rejErr) {
		return huma.Error422UnprocessableEntity(rejErr.Error())
	}

	var stepErr *wizard.UnknownStepError
	if errors.As(err, &stepErr) {
		return huma.Error422UnprocessableEntity(stepErr.Error())
	}

	return huma.Error500InternalServerError("internal server error")
}
