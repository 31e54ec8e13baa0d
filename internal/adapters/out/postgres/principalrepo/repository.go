// Package principalrepo remembers the principals seen at the transport edge.
package principalrepo

import (
	"context"
	"errors"
	"time"

	"prepcenter/internal/adapters/out/postgres/pgerr"
	"prepcenter/internal/core/domain/model/access"
	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PrincipalDTO is a row of the principals table.
type PrincipalDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role       string    `gorm:"type:varchar(16);index;not null"`
	FirstSeen  time.Time `gorm:"not null"`
	LastSeenAt time.Time `gorm:"not null"`
}

func (PrincipalDTO) TableName() string {
	return "principals"
}

// GormPrincipalDirectory implements ports.PrincipalDirectory using GORM.
type GormPrincipalDirectory struct {
	db *gorm.DB
}

func NewGormPrincipalDirectory(db *gorm.DB) *GormPrincipalDirectory {
	return &GormPrincipalDirectory{db: db}
}

// Touch upserts p, refreshing its role and last-seen time.
func (r *GormPrincipalDirectory) Touch(ctx context.Context, p access.Principal) error {
	if err := p.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	dto := PrincipalDTO{ID: p.ID().Bytes(), Role: p.Role().String(), FirstSeen: now, LastSeenAt: now}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"role", "last_seen_at"}),
	}).Create(&dto).Error
	return pgerr.Translate("touch principal", "principal", p.ID().String(), err)
}

func (r *GormPrincipalDirectory) RoleOf(ctx context.Context, userID kernel.UUID) (access.Role, error) {
	var dto PrincipalDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", userID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return access.Unknown, errs.NewObjectNotFoundError("principal", userID.String())
		}
		return access.Unknown, pgerr.Translate("get principal", "principal", userID.String(), err)
	}
	return access.ParseRole(dto.Role)
}
