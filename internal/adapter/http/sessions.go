package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tidybook/tidybook/internal/app"
	"github.com/tidybook/tidybook/internal/domain"
	"github.com/tidybook/tidybook/internal/wizard"
)

// SessionResponse is the API representation of a wizard session.
type SessionResponse struct {
	ID        string      `json:"id" doc:"Session identifier"`
	Step      string      `json:"step" doc:"Current wizard step"`
	Direction string      `json:"direction" doc:"Presentation direction of the last transition"`
	Progress  int         `json:"progress" doc:"Completion percentage"`
	Answers   AnswersBody `json:"answers" doc:"Accumulated answers"`
	Total     float64     `json:"total" doc:"Live price preview"`
	LeadID    int64       `json:"lead_id,omitempty" doc:"Lead id once the session is submitted"`
	City      string      `json:"city,omitempty" doc:"Resolved service city"`
	State     string      `json:"state,omitempty" doc:"Resolved service state"`
	Area      string      `json:"area_status,omitempty" doc:"Service-area status of the entered zip"`
}

func toSessionResponse(st app.SessionState) SessionResponse {
	a := st.Answers
	return SessionResponse{
		ID:        st.ID,
		Step:      string(st.Step),
		Direction: string(st.Direction),
		Progress:  st.Progress,
		Answers: AnswersBody{
			ServiceType:    string(a.ServiceType),
			Intensity:      string(a.Intensity),
			Frequency:      string(a.Frequency),
			Bedrooms:       a.Bedrooms,
			Bathrooms:      a.Bathrooms,
			SquareFeet:     a.SquareFeet,
			CommercialSqFt: a.CommercialSqFt,
			Zip:            a.Zip,
			Name:           a.Name,
			Email:          a.Email,
			Phone:          a.Phone,
			Extras:         a.Extras,
			PromoCode:      a.PromoCode,
		},
		Total:  a.Total,
		LeadID: a.LeadID,
		City:   a.City,
		State:  a.State,
		Area:   string(a.AreaStatus),
	}
}

// --- Start / Get ---

type StartSessionOutput struct {
	Body SessionResponse
}

type GetSessionInput struct {
	ID string `path:"id" doc:"Session identifier"`
}

type GetSessionOutput struct {
	Body SessionResponse
}

// --- Update answers ---

type UpdateAnswersInput struct {
	ID   string `path:"id" doc:"Session identifier"`
	Body struct {
		ServiceType    *string  `json:"service_type,omitempty" doc:"residential, commercial, or property_mgmt"`
		Intensity      *string  `json:"intensity,omitempty" doc:"standard, deep, or move"`
		Frequency      *string  `json:"frequency,omitempty" doc:"onetime, weekly, biweekly, or monthly"`
		Bedrooms       *int     `json:"bedrooms,omitempty" minimum:"0" doc:"Bedroom count"`
		Bathrooms      *int     `json:"bathrooms,omitempty" minimum:"0" doc:"Bathroom count"`
		SquareFeet     *int     `json:"square_feet,omitempty" minimum:"0" doc:"Residential floor space"`
		CommercialSqFt *string  `json:"commercial_sqft,omitempty" doc:"Commercial floor space, as entered"`
		Zip            *string  `json:"zip,omitempty" doc:"Service zip code"`
		Name           *string  `json:"name,omitempty" doc:"Contact name"`
		Email          *string  `json:"email,omitempty" doc:"Contact email"`
		Phone          *string  `json:"phone,omitempty" doc:"Contact phone"`
		Extras         []string `json:"extras,omitempty" doc:"Add-on identifiers"`
		PromoCode      *string  `json:"promo_code,omitempty" doc:"Promo code to apply"`
	}
}

type UpdateAnswersOutput struct {
	Body SessionResponse
}

// --- Navigation ---

type NavigateInput struct {
	ID string `path:"id" doc:"Session identifier"`
}

type NavigateOutput struct {
	Body SessionResponse
}

type GoToStepInput struct {
	ID   string `path:"id" doc:"Session identifier"`
	Body struct {
		Step string `json:"step" doc:"Target wizard step"`
	}
}

// --- Submit ---

type SubmitSessionInput struct {
	ID string `path:"id" doc:"Session identifier"`
}

type SubmitSessionOutput struct {
	Body struct {
		Session SessionResponse `json:"session" doc:"Session after submission"`
		Lead    LeadResponse    `json:"lead" doc:"Captured lead"`
	}
}

func registerSessions(api huma.API, svc *app.BookingService) {
	huma.Register(api, huma.Operation{
		OperationID: "start-session",
		Method:      http.MethodPost,
		Path:        "/api/v1/sessions",
		Summary:     "Start a new wizard session",
		Tags:        []string{"Wizard"},
	}, func(ctx context.Context, _ *struct{}) (*StartSessionOutput, error) {
		state, err := svc.StartSession(ctx)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &StartSessionOutput{Body: toSessionResponse(state)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-session",
		Method:      http.MethodGet,
		Path:        "/api/v1/sessions/{id}",
		Summary:     "Get a wizard session",
		Tags:        []string{"Wizard"},
	}, func(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error) {
		state, err := svc.GetSession(ctx, input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &GetSessionOutput{Body: toSessionResponse(state)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-answers",
		Method:      http.MethodPatch,
		Path:        "/api/v1/sessions/{id}/answers",
		Summary:     "Merge answers into a session",
		Tags:        []string{"Wizard"},
	}, func(ctx context.Context, input *UpdateAnswersInput) (*UpdateAnswersOutput, error) {
		b := input.Body
		patch := domain.AnswersPatch{
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
		if b.ServiceType != nil {
			st := domain.ServiceType(*b.ServiceType)
			patch.ServiceType = &st
		}
		if b.Intensity != nil {
			in := domain.Intensity(*b.Intensity)
			patch.Intensity = &in
		}
		if b.Frequency != nil {
			fr := domain.Frequency(*b.Frequency)
			patch.Frequency = &fr
		}

		state, err := svc.UpdateAnswers(ctx, input.ID, patch)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &UpdateAnswersOutput{Body: toSessionResponse(state)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "next-step",
		Method:      http.MethodPost,
		Path:        "/api/v1/sessions/{id}/next",
		Summary:     "Advance the wizard one step",
		Tags:        []string{"Wizard"},
	}, func(ctx context.Context, input *NavigateInput) (*NavigateOutput, error) {
		state, err := svc.NextStep(ctx, input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &NavigateOutput{Body: toSessionResponse(state)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "back-step",
		Method:      http.MethodPost,
		Path:        "/api/v1/sessions/{id}/back",
		Summary:     "Return the wizard to the previous step",
		Tags:        []string{"Wizard"},
	}, func(ctx context.Context, input *NavigateInput) (*NavigateOutput, error) {
		state, err := svc.BackStep(ctx, input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &NavigateOutput{Body: toSessionResponse(state)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "goto-step",
		Method:      http.MethodPost,
		Path:        "/api/v1/sessions/{id}/goto",
		Summary:     "Jump to an arbitrary wizard step",
		Tags:        []string{"Wizard"},
	}, func(ctx context.Context, input *GoToStepInput) (*NavigateOutput, error) {
		state, err := svc.JumpToStep(ctx, input.ID, wizard.Step(input.Body.Step))
		if err != nil {
			return nil, toHumaError(err)
		}
		return &NavigateOutput{Body: toSessionResponse(state)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "submit-session",
		Method:      http.MethodPost,
		Path:        "/api/v1/sessions/{id}/submit",
		Summary:     "Finalize a session and capture the lead",
		Tags:        []string{"Wizard"},
	}, func(ctx context.Context, input *SubmitSessionInput) (*SubmitSessionOutput, error) {
		state, lead, err := svc.SubmitSession(ctx, input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}
		out := &SubmitSessionOutput{}
		out.Body.Session = toSessionResponse(state)
		out.Body.Lead = toLeadResponse(lead)
		return out, nil
	})
}
