package activityrepo

import (
	"encoding/json"
	"time"

	"prepcenter/internal/core/domain/model/activity"
	"prepcenter/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ActivityDTO is a row of the append-only activity_log table. Seq orders rows for
// the relay; ID is the entry's identity. RecordedAt is the start of the inserting
// transaction, set by the database; CreatedAt is when the action happened.
type ActivityDTO struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Seq        int64          `gorm:"autoIncrement;uniqueIndex;not null"`
	UserID     *uuid.UUID     `gorm:"type:uuid;index"`
	Action     string         `gorm:"type:varchar(64);index;not null"`
	EntityType string         `gorm:"type:varchar(64);index:idx_activity_entity;not null"`
	EntityID   *uuid.UUID     `gorm:"type:uuid;index:idx_activity_entity"`
	Metadata   datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt  time.Time      `gorm:"not null"`
	RecordedAt time.Time      `gorm:"not null;default:now()"`
}

func (ActivityDTO) TableName() string {
	return "activity_log"
}

// RelayCursorDTO remembers how far a named reader has published.
type RelayCursorDTO struct {
	Name    string `gorm:"primaryKey;type:varchar(64)"`
	LastSeq int64  `gorm:"not null"`
}

func (RelayCursorDTO) TableName() string {
	return "relay_cursors"
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

func fromDomain(e activity.Entry) (ActivityDTO, error) {
	dto := ActivityDTO{
		ID:         e.ID().Bytes(),
		UserID:     optionalBytes(e.UserID()),
		Action:     e.Action(),
		EntityType: e.EntityType(),
		EntityID:   optionalBytes(e.EntityID()),
		CreatedAt:  e.CreatedAt(),
	}
	if md := e.Metadata(); len(md) > 0 {
		raw, err := json.Marshal(md)
		if err != nil {
			return ActivityDTO{}, err
		}
		dto.Metadata = datatypes.JSON(raw)
	}
	return dto, nil
}

func toDomain(dto ActivityDTO) (activity.Entry, error) {
	var md map[string]any
	if len(dto.Metadata) > 0 {
		if err := json.Unmarshal(dto.Metadata, &md); err != nil {
			return activity.Entry{}, err
		}
	}
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return activity.Entry{}, err
	}
	userID, err := optionalID(dto.UserID)
	if err != nil {
		return activity.Entry{}, err
	}
	entityID, err := optionalID(dto.EntityID)
	if err != nil {
		return activity.Entry{}, err
	}
	return activity.NewEntry(id, userID, dto.Action, dto.EntityType, entityID, md, dto.CreatedAt)
}
