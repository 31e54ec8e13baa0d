package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"prepcenter/internal/core/domain/model/activity"
	"prepcenter/internal/core/ports"
	"prepcenter/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// AuditRelayCursor names the relay's position in the audit log.
const AuditRelayCursor = "kafka_status_changed"

const DefaultAuditRelayBatch = 100

// AuditRelayJob publishes status_changed audit entries in append order and
// advances its cursor only after the publisher accepted the batch.
type AuditRelayJob struct {
	feed      ports.AuditFeed
	publisher ports.AuditPublisher
	schedule  string
	batch     int
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewAuditRelayJob(
	feed ports.AuditFeed,
	publisher ports.AuditPublisher,
	schedule string,
	batch int,
	logger *slog.Logger,
) *AuditRelayJob {
	if batch <= 0 {
		batch = DefaultAuditRelayBatch
	}
	return &AuditRelayJob{
		feed:      feed,
		publisher: publisher,
		schedule:  schedule,
		batch:     batch,
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.With("component", "audit_relay_job"),
	}
}

// RunOnce drains everything recorded since the cursor and returns the number of
// entries published. A failed batch leaves the cursor where it was.
func (j *AuditRelayJob) RunOnce(ctx context.Context) (int, error) {
	cursor, err := j.feed.Cursor(ctx, AuditRelayCursor)
	if err != nil {
		return 0, fmt.Errorf("read relay cursor: %w", err)
	}

	published := 0
	for {
		entries, err := j.feed.ReadAfter(ctx, cursor, j.batch, activity.ActionStatusChanged)
		if err != nil {
			return published, fmt.Errorf("read audit log after %d: %w", cursor, err)
		}
		if len(entries) == 0 {
			return published, nil
		}

		if err := j.publisher.Publish(ctx, entries); err != nil {
			return published, err
		}
		last := entries[len(entries)-1].Seq
		if err := j.feed.SaveCursor(ctx, AuditRelayCursor, last); err != nil {
			return published, fmt.Errorf("save relay cursor at %d: %w", last, err)
		}
		cursor = last
		published += len(entries)
		metrics.AuditRelayPublishedTotal.Add(float64(len(entries)))

		if len(entries) < j.batch {
			return published, nil
		}
	}
}

// Start schedules the relay.
func (j *AuditRelayJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		n, err := j.RunOnce(ctx)
		if err != nil {
			j.logger.ErrorContext(ctx, "Audit relay failed", "error", err, "published", n)
			return
		}
		if n > 0 {
			j.logger.DebugContext(ctx, "Audit relay published", "count", n)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Audit relay job started", "schedule", j.schedule)
	return nil
}

// Stop waits for a running relay pass to finish.
func (j *AuditRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Audit relay job stopped")
}
