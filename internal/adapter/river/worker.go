package river

import (
	"context"
	"log/slog"

	"github.com/riverqueue/river"
)

// NotifyWorker processes lead event jobs from the River queue.
// For now it logs the event; future versions will dispatch to
// email, CRM sync, or scheduling systems.
type NotifyWorker struct {
	river.WorkerDefaults[LeadJobArgs]
}

// Work processes a single lead event job.
func (w *NotifyWorker) Work(ctx context.Context, job *river.Job[LeadJobArgs]) error {
	slog.InfoContext(ctx, "processing lead event",
		"event", job.Args.Event,
		"lead_id", job.Args.LeadID,
		"source", job.Args.Source,
		"job_id", job.ID,
		"attempt", job.Attempt,
	)
	return nil
}
