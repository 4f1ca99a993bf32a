package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tidybook/tidybook/internal/app"
)

// --- Get config ---

type GetConfigOutput struct {
	Body map[string]float64
}

// --- Set config ---

type SetConfigInput struct {
	Key  string `path:"key" doc:"Pricing configuration key"`
	Body struct {
		Value float64 `json:"value" minimum:"0" doc:"New value"`
	}
}

type SetConfigOutput struct {
	Body struct {
		Key   string  `json:"key" doc:"Pricing configuration key"`
		Value float64 `json:"value" doc:"Stored value"`
	}
}

func registerConfig(api huma.API, svc *app.BookingService) {
	huma.Register(api, huma.Operation{
		OperationID: "get-config",
		Method:      http.MethodGet,
		Path:        "/api/v1/config",
		Summary:     "Get the live pricing configuration",
		Tags:        []string{"Config"},
	}, func(ctx context.Context, _ *struct{}) (*GetConfigOutput, error) {
		values, err := svc.GetConfig(ctx)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &GetConfigOutput{Body: values}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "set-config",
		Method:      http.MethodPut,
		Path:        "/api/v1/config/{key}",
		Summary:     "Update one pricing value",
		Tags:        []string{"Config"},
	}, func(ctx context.Context, input *SetConfigInput) (*SetConfigOutput, error) {
		if err := svc.SetConfig(ctx, input.Key, input.Body.Value); err != nil {
			return nil, toHumaError(err)
		}
		out := &SetConfigOutput{}
		out.Body.Key = input.Key
		out.Body.Value = input.Body.Value
		return out, nil
	})
}
