// Package orderrepo persists billing orders and their invoices.
package orderrepo

import (
	"time"

	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/core/domain/model/order"
	"prepcenter/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// OrderDTO is a row of the orders table. The unique index on shipment_id backs the
// one-order-per-shipment rule.
type OrderDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ShipmentID uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null"`
	Service    string     `gorm:"type:varchar(64);not null"`
	Status     string     `gorm:"type:varchar(32);index;not null"`
	TotalCents int64      `gorm:"not null"`
	Currency   string     `gorm:"type:char(3);not null"`
	InvoiceID  *uuid.UUID `gorm:"type:uuid"`
	CreatedAt  time.Time  `gorm:"not null"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// InvoiceDTO is a row of the invoices table. At most one invoice exists per order.
type InvoiceDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (InvoiceDTO) TableName() string {
	return "invoices"
}

func fromDomain(o *order.Order) OrderDTO {
	var invoiceID *uuid.UUID
	if id := o.InvoiceID(); id != nil {
		raw := id.Bytes()
		invoiceID = &raw
	}

	return OrderDTO{
		ID:         o.ID().Bytes(),
		ShipmentID: o.ShipmentID().Bytes(),
		Service:    o.Service().String(),
		Status:     o.Status().String(),
		TotalCents: o.Total().Cents(),
		Currency:   o.Total().Currency(),
		InvoiceID:  invoiceID,
		CreatedAt:  o.CreatedAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	shipmentID, err := kernel.UUIDFromBytes(dto.ShipmentID[:])
	if err != nil {
		return nil, err
	}

	var invoiceID *kernel.UUID
	if dto.InvoiceID != nil {
		invID, invErr := kernel.UUIDFromBytes(dto.InvoiceID[:])
		if invErr != nil {
			return nil, invErr
		}
		invoiceID = &invID
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	total, err := kernel.NewMoney(dto.TotalCents, dto.Currency)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, shipmentID, shipment.PrepType(dto.Service), status, total, invoiceID, dto.CreatedAt)
}

func invoiceFromDomain(inv *order.Invoice) InvoiceDTO {
	return InvoiceDTO{
		ID:        inv.ID().Bytes(),
		OrderID:   inv.OrderID().Bytes(),
		UserID:    inv.UserID().Bytes(),
		CreatedAt: inv.CreatedAt(),
	}
}
