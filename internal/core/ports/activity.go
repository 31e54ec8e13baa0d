package ports

import (
	"context"

	"prepcenter/internal/core/domain/model/activity"
	"prepcenter/internal/core/domain/model/kernel"
)

// NotificationRepository persists per-user notifications.
type NotificationRepository interface {
	Add(ctx context.Context, n *activity.Notification) error

	// FindForUser returns the notification when it belongs to userID, else nil.
	FindForUser(ctx context.Context, id, userID kernel.UUID) (*activity.Notification, error)

	// Update persists the read flag.
	Update(ctx context.Context, n *activity.Notification) error
}

// ActivityRecorder appends audit entries after the operation they describe has
// committed. It never reports failure to the caller; failures are logged.
type ActivityRecorder interface {
	Record(ctx context.Context, entries ...activity.Entry)
}

// RecordedEntry is an audit entry with its position in the append-only log.
type RecordedEntry struct {
	Seq   int64
	Entry activity.Entry
}

// AuditFeed reads the audit log in append order for outbound publication.
type AuditFeed interface {
	// ReadAfter returns up to limit entries with a position greater than seq,
	// restricted to actions when any are given.
	ReadAfter(ctx context.Context, seq int64, limit int, actions ...string) ([]RecordedEntry, error)

	// Cursor returns the last published position of the named reader, 0 when new.
	Cursor(ctx context.Context, name string) (int64, error)

	SaveCursor(ctx context.Context, name string, seq int64) error
}

// AuditPublisher delivers audit entries to an outbound channel. Publish either
// delivers every entry or returns an error; a retry may deliver some twice.
type AuditPublisher interface {
	Publish(ctx context.Context, entries []RecordedEntry) error
}
