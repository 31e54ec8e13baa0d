package queries

import (
	"context"
	"strings"

	"prepcenter/internal/core/domain/model/access"
	"prepcenter/internal/core/domain/model/shipment"
	"prepcenter/internal/core/domain/model/task"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListTasksQueryHandler struct {
	db *gorm.DB
}

func NewListTasksQueryHandler(db *gorm.DB) ListTasksQueryHandler {
	return ListTasksQueryHandler{db: db}
}

// Handle returns tasks by priority (highest first), then newest first, then by id.
// Operators only ever see tasks assigned to them.
func (h ListTasksQueryHandler) Handle(ctx context.Context, query ListTasksQuery) ([]TaskView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var (
		where []string
		args  []any
	)
	if query.actor.Role() != access.Admin {
		where = append(where, "assigned_to_id = ?")
		args = append(args, query.actor.ID().Bytes())
	}
	if query.status != nil {
		where = append(where, "status = ?")
		args = append(args, query.status.String())
	}
	if query.priority != nil {
		where = append(where, "priority = ?")
		args = append(args, int(*query.priority))
	}

	sql := `
		SELECT id, shipment_id, prep_type, stage, station_id, assigned_to_id, status, priority, created_at
		FROM tasks`
	if len(where) > 0 {
		sql += " WHERE " + strings.Join(where, " AND ")
	}
	sql += " ORDER BY priority DESC, created_at DESC, id"

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, storeError("list tasks", err)
	}
	defer rows.Close()

	tasks := make([]TaskView, 0)
	for rows.Next() {
		var (
			view                    TaskView
			id, shipmentID          uuid.UUID
			stationID, assignedToID uuid.NullUUID
			prepType, stage, status string
			priority                int
		)
		if err = rows.Scan(&id, &shipmentID, &prepType, &stage, &stationID, &assignedToID,
			&status, &priority, &view.CreatedAt); err != nil {
			return nil, err
		}

		if view.ID, err = idFrom(id); err != nil {
			return nil, err
		}
		if view.ShipmentID, err = idFrom(shipmentID); err != nil {
			return nil, err
		}
		if view.StationID, err = optionalIDFrom(stationID); err != nil {
			return nil, err
		}
		if view.AssignedToID, err = optionalIDFrom(assignedToID); err != nil {
			return nil, err
		}
		if view.Stage, err = shipment.ParseStatus(stage); err != nil {
			return nil, err
		}
		if view.Status, err = task.ParseStatus(status); err != nil {
			return nil, err
		}
		view.PrepType = shipment.PrepType(prepType)
		view.Priority = task.Priority(priority)
		tasks = append(tasks, view)
	}

	if err = rows.Err(); err != nil {
		return nil, storeError("list tasks", err)
	}
	return tasks, nil
}
