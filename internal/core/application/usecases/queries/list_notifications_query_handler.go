package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListNotificationsQueryHandler struct {
	db *gorm.DB
}

func NewListNotificationsQueryHandler(db *gorm.DB) ListNotificationsQueryHandler {
	return ListNotificationsQueryHandler{db: db}
}

// Handle returns unread notifications first, each group newest first.
func (h ListNotificationsQueryHandler) Handle(
	ctx context.Context,
	query ListNotificationsQuery,
) ([]NotificationView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT id, message, read, created_at
		FROM notifications
		WHERE user_id = ?`
	if query.unreadOnly {
		sql += " AND NOT read"
	}
	sql += " ORDER BY read, created_at DESC, id LIMIT ?"

	rows, err := h.db.WithContext(ctx).Raw(sql, query.userID.Bytes(), query.limit).Rows()
	if err != nil {
		return nil, storeError("list notifications", err)
	}
	defer rows.Close()

	notifications := make([]NotificationView, 0)
	for rows.Next() {
		var (
			view NotificationView
			id   uuid.UUID
		)
		if err = rows.Scan(&id, &view.Message, &view.Read, &view.CreatedAt); err != nil {
			return nil, err
		}
		if view.ID, err = idFrom(id); err != nil {
			return nil, err
		}
		notifications = append(notifications, view)
	}

	if err = rows.Err(); err != nil {
		return nil, storeError("list notifications", err)
	}
	return notifications, nil
}
