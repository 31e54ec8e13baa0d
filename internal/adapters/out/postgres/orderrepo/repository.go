package orderrepo

import (
	"context"
	"errors"

	"prepcenter/internal/adapters/out/postgres/pgerr"
	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/core/domain/model/order"
	"prepcenter/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order. A second order for the same shipment is a Conflict.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Create(&dto).Error
	return pgerr.Translate("add order", "order for shipment", aggregate.ShipmentID().String(), err)
}

// Update saves the status and invoice reference of an existing order.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"status":     dto.Status,
		"invoice_id": dto.InvoiceID,
	})
	if result.Error != nil {
		return pgerr.Translate("update order", "order", aggregate.ID().String(), result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.load(r.db.WithContext(ctx), id)
}

// GetForUpdate retrieves an order holding its row lock.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.load(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormOrderRepository) load(db *gorm.DB, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, pgerr.Translate("get order", "order", id.String(), err)
	}

	return toDomain(dto)
}

// FindByShipment returns the order of a shipment, or nil when there is none.
func (r *GormOrderRepository) FindByShipment(ctx context.Context, shipmentID kernel.UUID) (*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).Where("shipment_id = ?", shipmentID.Bytes()).Limit(1).Find(&dtos).Error
	if err != nil {
		return nil, pgerr.Translate("find order", "order", shipmentID.String(), err)
	}
	if len(dtos) == 0 {
		return nil, nil
	}
	return toDomain(dtos[0])
}

// AddInvoice saves an invoice. A second invoice for the same order is a Conflict.
func (r *GormOrderRepository) AddInvoice(ctx context.Context, invoice *order.Invoice) error {
	if err := invoice.Validate(); err != nil {
		return err
	}

	dto := invoiceFromDomain(invoice)
	err := r.db.WithContext(ctx).Create(&dto).Error
	return pgerr.Translate("add invoice", "invoice for order", invoice.OrderID().String(), err)
}
