package ports

import (
	"context"

	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/core/domain/model/shipment"
	"prepcenter/internal/core/domain/model/station"
)

// StationRepository persists stations and computes their active load.
type StationRepository interface {
	Add(ctx context.Context, aggregate *station.Station) error
	Update(ctx context.Context, aggregate *station.Station) error
	Get(ctx context.Context, id kernel.UUID) (*station.Station, error)

	// GetForUpdate returns the station holding its row lock. Admission decisions
	// against the station must be taken while this lock is held.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*station.Station, error)

	// ListEligibleForUpdate locks and returns every ACTIVE station typed for prepType
	// or GENERAL, in ascending id order.
	ListEligibleForUpdate(ctx context.Context, prepType shipment.PrepType) ([]*station.Station, error)

	// ActiveLoad counts the PENDING and IN_PROGRESS tasks bound to the station,
	// leaving out excludeTaskID when it is set.
	ActiveLoad(ctx context.Context, stationID kernel.UUID, excludeTaskID *kernel.UUID) (int, error)
}
