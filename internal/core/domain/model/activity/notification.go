package activity

import (
	"errors"
	"strings"
	"time"

	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/pkg/errs"
	"prepcenter/internal/pkg/guard"
)

// ErrNotificationIsNotConstructed is returned for notifications not built through a constructor.
var ErrNotificationIsNotConstructed = errors.New("Notification must be created via NewNotification constructor")

// Notification is a message pushed to one user.
type Notification struct {
	id        kernel.UUID
	userID    kernel.UUID
	message   string
	read      bool
	createdAt time.Time
	guard     guard.ConstructorGuard
}

// NewNotification creates an unread notification.
func NewNotification(id, userID kernel.UUID, message string, createdAt time.Time) (*Notification, error) {
	return RestoreNotification(id, userID, message, false, createdAt)
}

// RestoreNotification rebuilds a notification read from the record store.
func RestoreNotification(
	id, userID kernel.UUID,
	message string,
	read bool,
	createdAt time.Time,
) (*Notification, error) {
	message = strings.TrimSpace(message)
	var errList []error
	errList = append(errList, id.Validate())
	if err := userID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("userId", err))
	}
	if message == "" {
		errList = append(errList, errs.NewValueIsRequiredError("message"))
	}
	if createdAt.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("createdAt"))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}
	return &Notification{
		id:        id,
		userID:    userID,
		message:   message,
		read:      read,
		createdAt: createdAt.UTC(),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (n *Notification) Validate() error {
	if n == nil {
		return ErrNotificationIsNotConstructed
	}
	return n.guard.Validate(ErrNotificationIsNotConstructed)
}

func (n *Notification) ID() kernel.UUID      { return n.id }
func (n *Notification) UserID() kernel.UUID  { return n.userID }
func (n *Notification) Message() string      { return n.message }
func (n *Notification) IsRead() bool         { return n.read }
func (n *Notification) CreatedAt() time.Time { return n.createdAt }

// MarkRead sets the read flag. It never reverts and is a no-op when already read.
func (n *Notification) MarkRead() {
	n.read = true
}
