package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tidybook/tidybook/internal/app"
	"github.com/tidybook/tidybook/internal/domain"
)

// PromotionResponse is the API representation of a promotion.
type PromotionResponse struct {
	Code        string  `json:"code" doc:"Normalized promo code"`
	Type        string  `json:"type" doc:"percent or fixed"`
	Value       float64 `json:"value" doc:"Discount amount"`
	Active      bool    `json:"active" doc:"Whether the code can be redeemed"`
	CurrentUses int     `json:"current_uses" doc:"Redemptions so far"`
	MaxUses     int     `json:"max_uses" doc:"Usage cap"`
	ExpiresAt   string  `json:"expires_at,omitempty" doc:"Expiry timestamp (ISO 8601)"`
	CreatedAt   string  `json:"created_at" doc:"Creation timestamp (ISO 8601)"`
}

func toPromotionResponse(p domain.Promotion) PromotionResponse {
	resp := PromotionResponse{
		Code:        p.Code,
		Type:        string(p.Type),
		Value:       p.Value,
		Active:      p.Active,
		CurrentUses: p.CurrentUses,
		MaxUses:     p.MaxUses,
		CreatedAt:   p.CreatedAt.Format(timeFormat),
	}
	if p.ExpiresAt != nil {
		resp.ExpiresAt = p.ExpiresAt.Format(timeFormat)
	}
	return resp
}

// --- Validate ---

type ValidatePromoInput struct {
	Body struct {
		Code string `json:"code" doc:"Code to check"`
	}
}

type ValidatePromoOutput struct {
	Body struct {
		Code  string  `json:"code" doc:"Normalized promo code"`
		Type  string  `json:"type" doc:"percent or fixed"`
		Value float64 `json:"value" doc:"Discount amount"`
	}
}

// --- Create ---

type CreatePromoInput struct {
	Body struct {
		Code      string  `json:"code" minLength:"1" maxLength:"64" doc:"Promo code"`
		Type      string  `json:"type" enum:"percent,fixed" doc:"Discount type"`
		Value     float64 `json:"value" minimum:"0" doc:"Discount amount"`
		Active    bool    `json:"active,omitempty" default:"true" doc:"Whether the code is live"`
		MaxUses   int     `json:"max_uses" minimum:"1" doc:"Usage cap"`
		ExpiresAt *string `json:"expires_at,omitempty" format:"date-time" doc:"Optional expiry (ISO 8601)"`
	}
}

type CreatePromoOutput struct {
	Body PromotionResponse
}

// --- Gift code ---

type GenerateGiftInput struct {
	Body struct {
		Value  float64 `json:"value" minimum:"0" doc:"Discount amount"`
		Type   string  `json:"type,omitempty" default:"fixed" enum:"percent,fixed" doc:"Discount type"`
		Prefix string  `json:"prefix,omitempty" default:"GIFT" doc:"Code prefix"`
	}
}

type GenerateGiftOutput struct {
	Body PromotionResponse
}

func registerPromotions(api huma.API, svc *app.BookingService) {
	huma.Register(api, huma.Operation{
		OperationID: "validate-promotion",
		Method:      http.MethodPost,
		Path:        "/api/v1/promotions/validate",
		Summary:     "Check a promo code without redeeming it",
		Tags:        []string{"Promotions"},
	}, func(ctx context.Context, input *ValidatePromoInput) (*ValidatePromoOutput, error) {
		result, err := svc.ValidatePromotion(ctx, input.Body.Code)
		if err != nil {
			return nil, toHumaError(err)
		}
		out := &ValidatePromoOutput{}
		out.Body.Code = result.Code
		out.Body.Type = string(result.Type)
		out.Body.Value = result.Value
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "create-promotion",
		Method:      http.MethodPost,
		Path:        "/api/v1/promotions",
		Summary:     "Create a promotion",
		Tags:        []string{"Promotions"},
	}, func(ctx context.Context, input *CreatePromoInput) (*CreatePromoOutput, error) {
		p := domain.Promotion{
			Code:    input.Body.Code,
			Type:    domain.DiscountType(input.Body.Type),
			Value:   input.Body.Value,
			Active:  input.Body.Active,
			MaxUses: input.Body.MaxUses,
		}
		if input.Body.ExpiresAt != nil {
			when, err := parseDate(*input.Body.ExpiresAt)
			if err != nil {
				return nil, huma.Error422UnprocessableEntity("invalid expires_at")
			}
			p.ExpiresAt = &when
		}

		created, err := svc.CreatePromotion(ctx, p)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &CreatePromoOutput{Body: toPromotionResponse(created)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "generate-gift-code",
		Method:      http.MethodPost,
		Path:        "/api/v1/promotions/gift",
		Summary:     "Mint a one-time gift code",
		Tags:        []string{"Promotions"},
	}, func(ctx context.Context, input *GenerateGiftInput) (*GenerateGiftOutput, error) {
		p, err := svc.GenerateGiftCode(ctx, input.Body.Value, domain.DiscountType(input.Body.Type), input.Body.Prefix)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &GenerateGiftOutput{Body: toPromotionResponse(p)}, nil
	})
}
