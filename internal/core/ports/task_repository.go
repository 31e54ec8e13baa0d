package ports

import (
	"context"

	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/core/domain/model/shipment"
	"prepcenter/internal/core/domain/model/task"
)

// TaskRepository persists tasks.
type TaskRepository interface {
	Add(ctx context.Context, aggregate *task.Task) error
	Update(ctx context.Context, aggregate *task.Task) error
	Get(ctx context.Context, id kernel.UUID) (*task.Task, error)

	// GetForUpdate returns the task holding its row lock.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*task.Task, error)

	// ListOpenByShipmentForUpdate returns the PENDING and IN_PROGRESS tasks of a
	// shipment, locked, in ascending id order.
	ListOpenByShipmentForUpdate(ctx context.Context, shipmentID kernel.UUID) ([]*task.Task, error)

	// CountOpenByStage counts the open tasks of a shipment opened by stage.
	CountOpenByStage(ctx context.Context, shipmentID kernel.UUID, stage shipment.Status) (int, error)
}
