// Package stationrepo persists work stations and computes their active load.
package stationrepo

import (
	"time"

	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/core/domain/model/shipment"
	"prepcenter/internal/core/domain/model/station"

	"github.com/google/uuid"
)

// StationDTO is a row of the stations table.
type StationDTO struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name               string     `gorm:"not null"`
	Type               string     `gorm:"type:varchar(64);index;not null"`
	Status             string     `gorm:"type:varchar(32);not null"`
	Capacity           int        `gorm:"not null;check:capacity > 0"`
	AssignedOperatorID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (StationDTO) TableName() string {
	return "stations"
}

func fromDomain(s *station.Station) StationDTO {
	var operatorID *uuid.UUID
	if id := s.AssignedOperatorID(); id != nil {
		raw := id.Bytes()
		operatorID = &raw
	}

	return StationDTO{
		ID:                 s.ID().Bytes(),
		Name:               s.Name(),
		Type:               s.Type().String(),
		Status:             s.Status().String(),
		Capacity:           s.Capacity(),
		AssignedOperatorID: operatorID,
	}
}

func toDomain(dto StationDTO) (*station.Station, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var operatorID *kernel.UUID
	if dto.AssignedOperatorID != nil {
		opID, opErr := kernel.UUIDFromBytes(dto.AssignedOperatorID[:])
		if opErr != nil {
			return nil, opErr
		}
		operatorID = &opID
	}

	status, err := station.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return station.RestoreStation(id, dto.Name, shipment.PrepType(dto.Type), status, dto.Capacity, operatorID)
}
