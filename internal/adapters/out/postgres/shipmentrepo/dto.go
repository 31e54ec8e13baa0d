// Package shipmentrepo persists shipment aggregates and their items.
package shipmentrepo

import (
	"time"

	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// ShipmentDTO is a row of the shipments table.
type ShipmentDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID        uuid.UUID `gorm:"type:uuid;index;not null"`
	Status         string    `gorm:"type:varchar(32);index;not null"`
	Origin         string    `gorm:"not null"`
	Destination    string    `gorm:"not null"`
	TrackingNumber string
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time
	Items          []ItemDTO `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
}

func (ShipmentDTO) TableName() string {
	return "shipments"
}

// ItemDTO is a row of the shipment_items table. Position keeps the order items were
// registered in.
type ItemDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShipmentID  uuid.UUID `gorm:"type:uuid;index;not null"`
	Position    int       `gorm:"not null"`
	ProductName string    `gorm:"not null"`
	SKU         string    `gorm:"column:sku;not null"`
	Quantity    int       `gorm:"not null"`
	PrepType    string    `gorm:"type:varchar(64);not null"`
}

func (ItemDTO) TableName() string {
	return "shipment_items"
}

func fromDomain(s *shipment.Shipment) ShipmentDTO {
	dto := ShipmentDTO{
		ID:             s.ID().Bytes(),
		OwnerID:        s.OwnerID().Bytes(),
		Status:         s.Status().String(),
		Origin:         s.Origin(),
		Destination:    s.Destination(),
		TrackingNumber: s.TrackingNumber(),
		CreatedAt:      s.CreatedAt(),
	}
	for i, it := range s.Items() {
		dto.Items = append(dto.Items, ItemDTO{
			ID:          it.ID().Bytes(),
			ShipmentID:  dto.ID,
			Position:    i,
			ProductName: it.ProductName(),
			SKU:         it.SKU(),
			Quantity:    it.Quantity(),
			PrepType:    it.PrepType().String(),
		})
	}
	return dto
}

func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}
	status, err := shipment.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]*shipment.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		itemID, idErr := kernel.UUIDFromBytes(itemDTO.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		it, itemErr := shipment.NewItem(itemID, itemDTO.ProductName, itemDTO.SKU, itemDTO.Quantity,
			shipment.PrepType(itemDTO.PrepType))
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, it)
	}

	return shipment.RestoreShipment(id, ownerID, status, dto.Origin, dto.Destination, dto.TrackingNumber,
		items, dto.CreatedAt)
}
