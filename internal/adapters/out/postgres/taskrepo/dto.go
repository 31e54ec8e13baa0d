// Package taskrepo persists floor tasks.
package taskrepo

import (
	"time"

	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/core/domain/model/shipment"
	"prepcenter/internal/core/domain/model/task"

	"github.com/google/uuid"
)

// TaskDTO is a row of the tasks table. Priority is stored as its ordinal so that
// listings can sort on it directly.
type TaskDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ShipmentID   uuid.UUID  `gorm:"type:uuid;index;not null"`
	PrepType     string     `gorm:"type:varchar(64);not null"`
	Stage        string     `gorm:"type:varchar(32);not null"`
	StationID    *uuid.UUID `gorm:"type:uuid;index"`
	AssignedToID *uuid.UUID `gorm:"type:uuid;index"`
	Status       string     `gorm:"type:varchar(32);index;not null"`
	Priority     int        `gorm:"type:smallint;not null"`
	CreatedAt    time.Time  `gorm:"not null"`
}

func (TaskDTO) TableName() string {
	return "tasks"
}

func optionalBytes(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func fromDomain(t *task.Task) TaskDTO {
	return TaskDTO{
		ID:           t.ID().Bytes(),
		ShipmentID:   t.ShipmentID().Bytes(),
		PrepType:     t.PrepType().String(),
		Stage:        t.Stage().String(),
		StationID:    optionalBytes(t.StationID()),
		AssignedToID: optionalBytes(t.AssignedToID()),
		Status:       t.Status().String(),
		Priority:     int(t.Priority()),
		CreatedAt:    t.CreatedAt(),
	}
}

func toDomain(dto TaskDTO) (*task.Task, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	shipmentID, err := kernel.UUIDFromBytes(dto.ShipmentID[:])
	if err != nil {
		return nil, err
	}
	stationID, err := optionalID(dto.StationID)
	if err != nil {
		return nil, err
	}
	assignedToID, err := optionalID(dto.AssignedToID)
	if err != nil {
		return nil, err
	}
	stage, err := shipment.ParseStatus(dto.Stage)
	if err != nil {
		return nil, err
	}
	status, err := task.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return task.RestoreTask(id, shipmentID, shipment.PrepType(dto.PrepType), stage, stationID, assignedToID,
		status, task.Priority(dto.Priority), dto.CreatedAt)
}
