// Package activityrepo writes the audit log and serves it to the outbound relay.
package activityrepo

import (
	"context"
	"log/slog"
	"math"
	"time"

	"prepcenter/internal/adapters/out/postgres/pgerr"
	"prepcenter/internal/core/domain/model/activity"
	"prepcenter/internal/core/ports"
	"prepcenter/internal/pkg/metrics"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// recordTimeout bounds one append from transaction start to commit. The feed's settle
// window is derived from it.
const recordTimeout = 5 * time.Second

// DefaultSettleWindow is how old the newest entry of a relay batch must be before the
// batch is read. Any append that drew a lower seq has finished by then.
const DefaultSettleWindow = 2 * recordTimeout

// GormActivityRecorder implements ports.ActivityRecorder. Entries are written outside
// the caller's transaction, after it committed.
type GormActivityRecorder struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewGormActivityRecorder(db *gorm.DB, logger *slog.Logger) *GormActivityRecorder {
	return &GormActivityRecorder{db: db, logger: logger.With("component", "activity_recorder")}
}

// Record appends entries in one insert. A failure is logged and counted, never returned.
func (r *GormActivityRecorder) Record(ctx context.Context, entries ...activity.Entry) {
	if len(entries) == 0 {
		return
	}

	dtos := make([]ActivityDTO, 0, len(entries))
	written := make([]activity.Entry, 0, len(entries))
	for _, e := range entries {
		dto, err := fromDomain(e)
		if err != nil {
			r.fail(ctx, e, err)
			continue
		}
		dtos = append(dtos, dto)
		written = append(written, e)
	}
	if len(dtos) == 0 {
		return
	}

	// The originating request may already be cancelled; the entry describes committed work.
	insertCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()
	if err := r.db.WithContext(insertCtx).Create(&dtos).Error; err != nil {
		for _, e := range written {
			r.fail(ctx, e, err)
		}
	}
}

func (r *GormActivityRecorder) fail(ctx context.Context, e activity.Entry, err error) {
	metrics.ActivityWriteFailuresTotal.Inc()
	r.logger.ErrorContext(ctx, "Failed to record activity",
		"action", e.Action(),
		"entity_type", e.EntityType(),
		"entry_id", e.ID().String(),
		"error", err,
	)
}

type FeedOption func(*GormAuditFeed)

// WithSettleWindow sets how long the feed waits before handing out an entry. Seqs are
// drawn before commit, so a fresh entry can become visible after a higher one. The
// window must exceed twice the longest append. Zero reads everything visible.
func WithSettleWindow(d time.Duration) FeedOption {
	return func(f *GormAuditFeed) {
		f.settle = d
	}
}

// GormAuditFeed implements ports.AuditFeed.
type GormAuditFeed struct {
	db     *gorm.DB
	settle time.Duration
}

func NewGormAuditFeed(db *gorm.DB, opts ...FeedOption) *GormAuditFeed {
	f := &GormAuditFeed{db: db, settle: DefaultSettleWindow}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// ReadAfter returns entries past seq in seq order. With a settle window the batch stops
// before the first entry still inside the window, whatever its action, so a reader that
// saves the last returned seq never steps over an append that has not committed yet.
func (f *GormAuditFeed) ReadAfter(
	ctx context.Context,
	seq int64,
	limit int,
	actions ...string,
) ([]ports.RecordedEntry, error) {
	q := f.db.WithContext(ctx).Where("seq > ?", seq)
	if f.settle > 0 {
		horizon := f.db.Model(&ActivityDTO{}).Select("MIN(seq)").
			Where("seq > ? AND recorded_at >= now() - make_interval(secs => ?)", seq, f.settle.Seconds())
		q = q.Where("seq < COALESCE((?), ?)", horizon, int64(math.MaxInt64))
	}
	if len(actions) > 0 {
		q = q.Where("action IN ?", actions)
	}

	var dtos []ActivityDTO
	if err := q.Order("seq").Limit(limit).Find(&dtos).Error; err != nil {
		return nil, pgerr.Translate("read activity", "activity", seq, err)
	}

	out := make([]ports.RecordedEntry, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		out = append(out, ports.RecordedEntry{Seq: dto.Seq, Entry: e})
	}
	return out, nil
}

func (f *GormAuditFeed) Cursor(ctx context.Context, name string) (int64, error) {
	var dtos []RelayCursorDTO
	if err := f.db.WithContext(ctx).Where("name = ?", name).Limit(1).Find(&dtos).Error; err != nil {
		return 0, pgerr.Translate("get relay cursor", "relay cursor", name, err)
	}
	if len(dtos) == 0 {
		return 0, nil
	}
	return dtos[0].LastSeq, nil
}

// SaveCursor upserts the cursor. It never moves a cursor backwards.
func (f *GormAuditFeed) SaveCursor(ctx context.Context, name string, seq int64) error {
	err := f.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "name"}},
		DoUpdates: clause.Set{{
			Column: clause.Column{Name: "last_seq"},
			Value:  gorm.Expr("GREATEST(relay_cursors.last_seq, EXCLUDED.last_seq)"),
		}},
	}).Create(&RelayCursorDTO{Name: name, LastSeq: seq}).Error
	return pgerr.Translate("save relay cursor", "relay cursor", name, err)
}
