package queries

import (
	"errors"
	"time"

	"prepcenter/internal/core/domain/model/access"
	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/pkg/errs"
	"prepcenter/internal/pkg/guard"
)

// MaxNotifications bounds one page of notifications.
const MaxNotifications = 200

var ErrListNotificationsQueryIsNotConstructed = errors.New(
	"ListNotificationsQuery must be created via NewListNotificationsQuery constructor",
)

// ListNotificationsQuery lists the caller's own notifications.
type ListNotificationsQuery struct {
	userID     kernel.UUID
	unreadOnly bool
	limit      int
	guard      guard.ConstructorGuard
}

// NewListNotificationsQuery accepts any verified principal. A zero limit means MaxNotifications.
func NewListNotificationsQuery(actor access.Principal, unreadOnly bool, limit int) (ListNotificationsQuery, error) {
	if err := access.Require(actor, "list notifications", access.Client, access.Operator, access.Admin); err != nil {
		return ListNotificationsQuery{}, err
	}
	if limit == 0 {
		limit = MaxNotifications
	}
	if limit < 1 || limit > MaxNotifications {
		return ListNotificationsQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxNotifications)
	}
	return ListNotificationsQuery{
		userID:     actor.ID(),
		unreadOnly: unreadOnly,
		limit:      limit,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q ListNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrListNotificationsQueryIsNotConstructed)
}

type NotificationView struct {
	ID        kernel.UUID
	Message   string
	Read      bool
	CreatedAt time.Time
}
