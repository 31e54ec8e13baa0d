package queries

import (
	"context"

	"prepcenter/internal/core/domain/model/shipment"
	"prepcenter/internal/core/domain/model/station"
	"prepcenter/internal/core/domain/model/task"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListStationsQueryHandler struct {
	db *gorm.DB
}

func NewListStationsQueryHandler(db *gorm.DB) ListStationsQueryHandler {
	return ListStationsQueryHandler{db: db}
}

// Handle returns stations sorted by name. The load is a snapshot; admission decisions
// recount it under the station lock.
func (h ListStationsQueryHandler) Handle(ctx context.Context, query ListStationsQuery) ([]StationView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			s.id,
			s.name,
			s.type,
			s.status,
			s.capacity,
			s.assigned_operator_id,
			(SELECT COUNT(*) FROM tasks t WHERE t.station_id = s.id AND t.status = ANY(?)) AS load
		FROM stations s
		ORDER BY s.name, s.id
	`, names(task.OpenStatuses()...)).Rows()
	if err != nil {
		return nil, storeError("list stations", err)
	}
	defer rows.Close()

	stations := make([]StationView, 0)
	for rows.Next() {
		var (
			view             StationView
			id               uuid.UUID
			operatorID       uuid.NullUUID
			stationType, sts string
		)
		if err = rows.Scan(&id, &view.Name, &stationType, &sts, &view.Capacity, &operatorID, &view.Load); err != nil {
			return nil, err
		}
		if view.ID, err = idFrom(id); err != nil {
			return nil, err
		}
		if view.AssignedOperatorID, err = optionalIDFrom(operatorID); err != nil {
			return nil, err
		}
		if view.Status, err = station.ParseStatus(sts); err != nil {
			return nil, err
		}
		view.Type = shipment.PrepType(stationType)
		stations = append(stations, view)
	}

	if err = rows.Err(); err != nil {
		return nil, storeError("list stations", err)
	}
	return stations, nil
}
