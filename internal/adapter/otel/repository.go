package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tidybook/tidybook/internal/domain"
)

const tracerName = "github.com/tidybook/tidybook/internal/adapter/otel"

// TracingLeadRepository wraps a domain.LeadRepository with OpenTelemetry
// tracing. Each method creates a span with semantic attributes and
// records errors.
type TracingLeadRepository struct {
	next   domain.LeadRepository
	tracer trace.Tracer
}

// Compile-time check: TracingLeadRepository implements domain.LeadRepository.
var _ domain.LeadRepository = (*TracingLeadRepository)(nil)

// NewTracingLeadRepository creates a tracing decorator around the given repository.
func NewTracingLeadRepository(next domain.LeadRepository) *TracingLeadRepository {
	return &TracingLeadRepository{
		next:   next,
		tracer: otel.Tracer(tracerName),
	}
}

func (r *TracingLeadRepository) Create(ctx context.Context, lead domain.Lead) (int64, error) {
	ctx, span := r.tracer.Start(ctx, "LeadRepository.Create",
		trace.WithAttributes(
			attribute.String("lead.source", string(lead.Source)),
			attribute.String("lead.service_type", string(lead.ServiceType)),
		),
	)
	defer span.End()

	id, err := r.next.Create(ctx, lead)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(attribute.Int64("lead.id", id))
	}
	return id, err
}

func (r *TracingLeadRepository) GetByID(ctx context.Context, id int64) (domain.Lead, error) {
	ctx, span := r.tracer.Start(ctx, "LeadRepository.GetByID",
		trace.WithAttributes(attribute.Int64("lead.id", id)),
	)
	defer span.End()

	lead, err := r.next.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return lead, err
}

func (r *TracingLeadRepository) List(ctx context.Context, filter domain.LeadFilter) ([]domain.Lead, error) {
	ctx, span := r.tracer.Start(ctx, "LeadRepository.List",
		trace.WithAttributes(
			attribute.Int("filter.limit", filter.Limit),
			attribute.Int("filter.offset", filter.Offset),
		),
	)
	defer span.End()

	if filter.Status != nil {
		span.SetAttributes(attribute.String("filter.status", string(*filter.Status)))
	}

	leads, err := r.next.List(ctx, filter)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(attribute.Int("result.count", len(leads)))
	}
	return leads, err
}

func (r *TracingLeadRepository) Update(ctx context.Context, lead domain.Lead) error {
	ctx, span := r.tracer.Start(ctx, "LeadRepository.Update",
		trace.WithAttributes(
			attribute.Int64("lead.id", lead.ID),
			attribute.String("lead.status", string(lead.Status)),
		),
	)
	defer span.End()

	err := r.next.Update(ctx, lead)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
