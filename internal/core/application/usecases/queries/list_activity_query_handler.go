package queries

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListActivityQueryHandler struct {
	db *gorm.DB
}

func NewListActivityQueryHandler(db *gorm.DB) ListActivityQueryHandler {
	return ListActivityQueryHandler{db: db}
}

// Handle returns the most recent entries first.
func (h ListActivityQueryHandler) Handle(ctx context.Context, query ListActivityQuery) ([]ActivityView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var (
		where []string
		args  []any
	)
	if query.entityType != "" {
		where = append(where, "entity_type = ?")
		args = append(args, query.entityType)
	}
	if query.entityID != nil {
		where = append(where, "entity_id = ?")
		args = append(args, query.entityID.Bytes())
	}

	sql := "SELECT id, user_id, action, entity_type, entity_id, metadata, created_at FROM activity_log"
	if len(where) > 0 {
		sql += " WHERE " + strings.Join(where, " AND ")
	}
	sql += " ORDER BY seq DESC LIMIT ?"
	args = append(args, query.limit)

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, storeError("list activity", err)
	}
	defer rows.Close()

	entries := make([]ActivityView, 0)
	for rows.Next() {
		var (
			view             ActivityView
			id               uuid.UUID
			userID, entityID uuid.NullUUID
			metadata         []byte
		)
		if err = rows.Scan(&id, &userID, &view.Action, &view.EntityType, &entityID,
			&metadata, &view.CreatedAt); err != nil {
			return nil, err
		}
		if view.ID, err = idFrom(id); err != nil {
			return nil, err
		}
		if view.UserID, err = optionalIDFrom(userID); err != nil {
			return nil, err
		}
		if view.EntityID, err = optionalIDFrom(entityID); err != nil {
			return nil, err
		}
		if len(metadata) > 0 {
			if err = json.Unmarshal(metadata, &view.Metadata); err != nil {
				return nil, err
			}
		}
		entries = append(entries, view)
	}

	if err = rows.Err(); err != nil {
		return nil, storeError("list activity", err)
	}
	return entries, nil
}
