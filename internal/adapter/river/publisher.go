package river

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/riverqueue/river"

	"github.com/tidybook/tidybook/internal/domain"
)

// Compile-time check: Publisher implements domain.EventPublisher.
var _ domain.EventPublisher = (*Publisher)(nil)

// LeadJobArgs carries the data needed to process a lead lifecycle event
// asynchronously. River serializes this as JSON into its job queue table.
// It includes a snapshot of the lead at the time the event was published,
// so the worker never needs to query the database.
type LeadJobArgs struct {
	Event       string  `json:"event"`
	LeadID      int64   `json:"lead_id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	ServiceType string  `json:"service_type"`
	Zip         string  `json:"zip"`
	TotalPrice  float64 `json:"total_price"`
	Status      string  `json:"status"`
	Source      string  `json:"source"`
}

// Kind returns the unique job type identifier used by River's job routing.
func (LeadJobArgs) Kind() string { return "lead.notify" }

// Client is the River client type parameterized for SQLite (*sql.Tx).
type Client = river.Client[*sql.Tx]

// Publisher implements domain.EventPublisher by enqueuing River jobs.
type Publisher struct {
	client *Client
}

// NewPublisher creates a publisher backed by the given River client.
func NewPublisher(client *Client) *Publisher {
	return &Publisher{client: client}
}

// Publish enqueues a lead lifecycle event as an async job in River.
func (p *Publisher) Publish(ctx context.Context, event domain.LeadEvent, lead domain.Lead) error {
	_, err := p.client.Insert(ctx, LeadJobArgs{
		Event:       string(event),
		LeadID:      lead.ID,
		Name:        lead.Name,
		Email:       lead.Email,
		Phone:       lead.Phone,
		ServiceType: string(lead.ServiceType),
		Zip:         lead.Zip,
		TotalPrice:  lead.TotalPrice,
		Status:      string(lead.Status),
		Source:      string(lead.Source),
	}, nil)
	if err != nil {
		return fmt.Errorf("enqueuing lead job: %w", err)
	}
	return nil
}
