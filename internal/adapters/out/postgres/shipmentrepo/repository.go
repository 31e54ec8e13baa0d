package shipmentrepo

import (
	"context"
	"errors"

	"prepcenter/internal/adapters/out/postgres/pgerr"
	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/core/domain/model/shipment"
	"prepcenter/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormShipmentRepository implements ports.ShipmentRepository using GORM.
type GormShipmentRepository struct {
	db *gorm.DB
}

func NewGormShipmentRepository(db *gorm.DB) *GormShipmentRepository {
	return &GormShipmentRepository{db: db}
}

// Add saves a new shipment together with its items.
func (r *GormShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Create(&dto).Error
	return pgerr.Translate("add shipment", "shipment", aggregate.ID().String(), err)
}

// Update saves the status and the item quantities. Other item fields never change.
func (r *GormShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ShipmentDTO{}).Where("id = ?", dto.ID).
		Updates(map[string]any{"status": dto.Status, "updated_at": gorm.Expr("now()")})
	if result.Error != nil {
		return pgerr.Translate("update shipment", "shipment", aggregate.ID().String(), result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("shipment", aggregate.ID().String())
	}

	for _, item := range dto.Items {
		err := r.db.WithContext(ctx).Model(&ItemDTO{}).
			Where("id = ? AND shipment_id = ?", item.ID, dto.ID).
			Update("quantity", item.Quantity).Error
		if err != nil {
			return pgerr.Translate("update shipment item", "shipment item", item.ID.String(), err)
		}
	}
	return nil
}

// Get retrieves a shipment by ID.
func (r *GormShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	return r.load(ctx, r.db.WithContext(ctx), id)
}

// GetForUpdate retrieves a shipment holding its row lock until the transaction ends.
func (r *GormShipmentRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	return r.load(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormShipmentRepository) load(ctx context.Context, db *gorm.DB, id kernel.UUID) (*shipment.Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ShipmentDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", id.String())
		}
		return nil, pgerr.Translate("get shipment", "shipment", id.String(), err)
	}
	err := r.db.WithContext(ctx).Where("shipment_id = ?", dto.ID).Order("position").Find(&dto.Items).Error
	if err != nil {
		return nil, pgerr.Translate("get shipment items", "shipment", id.String(), err)
	}

	return toDomain(dto)
}
