package stationrepo

import (
	"context"
	"errors"

	"prepcenter/internal/adapters/out/postgres/pgerr"
	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/core/domain/model/shipment"
	"prepcenter/internal/core/domain/model/station"
	"prepcenter/internal/core/domain/model/task"
	"prepcenter/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStationRepository implements ports.StationRepository using GORM.
type GormStationRepository struct {
	db *gorm.DB
}

func NewGormStationRepository(db *gorm.DB) *GormStationRepository {
	return &GormStationRepository{db: db}
}

func (r *GormStationRepository) Add(ctx context.Context, aggregate *station.Station) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Create(&dto).Error
	return pgerr.Translate("add station", "station", aggregate.ID().String(), err)
}

// Update saves every mutable field. A nil operator is written as NULL.
func (r *GormStationRepository) Update(ctx context.Context, aggregate *station.Station) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&StationDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"name":                 dto.Name,
		"type":                 dto.Type,
		"status":               dto.Status,
		"capacity":             dto.Capacity,
		"assigned_operator_id": dto.AssignedOperatorID,
		"updated_at":           gorm.Expr("now()"),
	})
	if result.Error != nil {
		return pgerr.Translate("update station", "station", aggregate.ID().String(), result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("station", aggregate.ID().String())
	}
	return nil
}

func (r *GormStationRepository) Get(ctx context.Context, id kernel.UUID) (*station.Station, error) {
	return r.load(r.db.WithContext(ctx), id)
}

func (r *GormStationRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*station.Station, error) {
	return r.load(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormStationRepository) load(db *gorm.DB, id kernel.UUID) (*station.Station, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto StationDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("station", id.String())
		}
		return nil, pgerr.Translate("get station", "station", id.String(), err)
	}
	return toDomain(dto)
}

// ListEligibleForUpdate locks every active station that accepts prepType, in ascending
// id order so that concurrent callers acquire the locks in the same sequence.
func (r *GormStationRepository) ListEligibleForUpdate(
	ctx context.Context,
	prepType shipment.PrepType,
) ([]*station.Station, error) {
	var dtos []StationDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("status = ? AND type IN ?", station.Active.String(), []string{prepType.String(), station.General.String()}).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, pgerr.Translate("list eligible stations", "station", prepType.String(), err)
	}

	stations := make([]*station.Station, 0, len(dtos))
	for _, dto := range dtos {
		s, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		stations = append(stations, s)
	}
	return stations, nil
}

// ActiveLoad counts open tasks bound to the station. Under READ COMMITTED the count
// sees every commit that preceded the caller's station lock.
func (r *GormStationRepository) ActiveLoad(
	ctx context.Context,
	stationID kernel.UUID,
	excludeTaskID *kernel.UUID,
) (int, error) {
	open := make([]string, 0, 2)
	for _, s := range task.OpenStatuses() {
		open = append(open, s.String())
	}

	q := r.db.WithContext(ctx).Table("tasks").Where("station_id = ? AND status IN ?", stationID.Bytes(), open)
	if excludeTaskID != nil {
		q = q.Where("id <> ?", excludeTaskID.Bytes())
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, pgerr.Translate("count station load", "station", stationID.String(), err)
	}
	return int(count), nil
}
