package taskrepo

import (
	"context"
	"errors"

	"prepcenter/internal/adapters/out/postgres/pgerr"
	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/core/domain/model/shipment"
	"prepcenter/internal/core/domain/model/task"
	"prepcenter/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository implements ports.TaskRepository using GORM.
type GormTaskRepository struct {
	db *gorm.DB
}

func NewGormTaskRepository(db *gorm.DB) *GormTaskRepository {
	return &GormTaskRepository{db: db}
}

func openStatuses() []string {
	open := task.OpenStatuses()
	out := make([]string, 0, len(open))
	for _, s := range open {
		out = append(out, s.String())
	}
	return out
}

func (r *GormTaskRepository) Add(ctx context.Context, aggregate *task.Task) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Create(&dto).Error
	return pgerr.Translate("add task", "task", aggregate.ID().String(), err)
}

// Update saves the binding, status and priority of a task.
func (r *GormTaskRepository) Update(ctx context.Context, aggregate *task.Task) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&TaskDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"station_id":     dto.StationID,
		"assigned_to_id": dto.AssignedToID,
		"status":         dto.Status,
		"priority":       dto.Priority,
	})
	if result.Error != nil {
		return pgerr.Translate("update task", "task", aggregate.ID().String(), result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("task", aggregate.ID().String())
	}
	return nil
}

func (r *GormTaskRepository) Get(ctx context.Context, id kernel.UUID) (*task.Task, error) {
	return r.load(r.db.WithContext(ctx), id)
}

func (r *GormTaskRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*task.Task, error) {
	return r.load(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormTaskRepository) load(db *gorm.DB, id kernel.UUID) (*task.Task, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TaskDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("task", id.String())
		}
		return nil, pgerr.Translate("get task", "task", id.String(), err)
	}
	return toDomain(dto)
}

// ListOpenByShipmentForUpdate locks the open tasks of a shipment in ascending id order.
func (r *GormTaskRepository) ListOpenByShipmentForUpdate(
	ctx context.Context,
	shipmentID kernel.UUID,
) ([]*task.Task, error) {
	var dtos []TaskDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("shipment_id = ? AND status IN ?", shipmentID.Bytes(), openStatuses()).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, pgerr.Translate("list open tasks", "task", shipmentID.String(), err)
	}

	tasks := make([]*task.Task, 0, len(dtos))
	for _, dto := range dtos {
		t, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func (r *GormTaskRepository) CountOpenByStage(
	ctx context.Context,
	shipmentID kernel.UUID,
	stage shipment.Status,
) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&TaskDTO{}).
		Where("shipment_id = ? AND stage = ? AND status IN ?", shipmentID.Bytes(), stage.String(), openStatuses()).
		Count(&count).Error
	if err != nil {
		return 0, pgerr.Translate("count open tasks", "task", shipmentID.String(), err)
	}
	return int(count), nil
}
