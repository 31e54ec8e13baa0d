// Package crossborderrepo persists Ghana-line consignments.
package crossborderrepo

import (
	"context"
	"time"

	"prepcenter/internal/adapters/out/postgres/pgerr"
	"prepcenter/internal/core/domain/model/crossborder"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CrossBorderShipmentDTO is a row of the cross_border_shipments table.
type CrossBorderShipmentDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID        uuid.UUID `gorm:"type:uuid;index;not null"`
	Origin         string    `gorm:"not null"`
	Destination    string    `gorm:"not null"`
	TrackingNumber string    `gorm:"uniqueIndex;not null"`
	WeightGrams    int       `gorm:"not null"`
	Status         string    `gorm:"type:varchar(32);not null"`
	CreatedAt      time.Time `gorm:"not null"`
}

func (CrossBorderShipmentDTO) TableName() string {
	return "cross_border_shipments"
}

// GormCrossBorderRepository implements ports.CrossBorderRepository using GORM.
type GormCrossBorderRepository struct {
	db *gorm.DB
}

func NewGormCrossBorderRepository(db *gorm.DB) *GormCrossBorderRepository {
	return &GormCrossBorderRepository{db: db}
}

// Add saves a consignment. A tracking number already on file is a Conflict.
func (r *GormCrossBorderRepository) Add(ctx context.Context, s *crossborder.Shipment) error {
	if err := s.Validate(); err != nil {
		return err
	}

	dto := CrossBorderShipmentDTO{
		ID:             s.ID().Bytes(),
		OwnerID:        s.OwnerID().Bytes(),
		Origin:         s.Origin(),
		Destination:    s.Destination(),
		TrackingNumber: s.TrackingNumber(),
		WeightGrams:    s.WeightGrams(),
		Status:         s.Status().String(),
		CreatedAt:      s.CreatedAt(),
	}
	err := r.db.WithContext(ctx).Create(&dto).Error
	return pgerr.Translate("add cross-border shipment", "cross-border shipment", s.TrackingNumber(), err)
}
