// Package postgres provides the GORM-based Unit of Work over the prep-center record store.
//
// Each UnitOfWork wraps at most one database transaction. Repositories obtained after
// Begin run inside that transaction; repositories obtained before Begin use the plain
// connection. Handlers lock rows through the repositories' GetForUpdate methods in the
// fixed order shipment, task, stations by id, so concurrent transactions never wait on
// each other in a cycle.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	s, err := uow.ShipmentRepository().GetForUpdate(ctx, id)
//	...
//	return uow.Commit(ctx)
package postgres

import (
	"context"
	"fmt"
	"time"

	"prepcenter/internal/adapters/out/postgres/crossborderrepo"
	"prepcenter/internal/adapters/out/postgres/notificationrepo"
	"prepcenter/internal/adapters/out/postgres/orderrepo"
	"prepcenter/internal/adapters/out/postgres/pgerr"
	"prepcenter/internal/adapters/out/postgres/principalrepo"
	"prepcenter/internal/adapters/out/postgres/shipmentrepo"
	"prepcenter/internal/adapters/out/postgres/stationrepo"
	"prepcenter/internal/adapters/out/postgres/taskrepo"
	"prepcenter/internal/core/ports"

	"gorm.io/gorm"
)

// Option tunes the transactions a factory opens.
type Option func(*GormUnitOfWorkFactory)

// WithLockTimeout bounds how long a transaction waits for a row lock. A wait past the
// bound surfaces as a TransientStoreError. Zero leaves the server default.
func WithLockTimeout(d time.Duration) Option {
	return func(f *GormUnitOfWorkFactory) {
		f.lockTimeout = d
	}
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db          *gorm.DB
	lockTimeout time.Duration
}

func NewGormUnitOfWorkFactory(db *gorm.DB, opts ...Option) *GormUnitOfWorkFactory {
	f := &GormUnitOfWorkFactory{db: db}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create produces a fresh unit of work. Instances must not be shared between goroutines.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db, lockTimeout: f.lockTimeout}
}

// GormUnitOfWork coordinates one database transaction across the repositories.
type GormUnitOfWork struct {
	db          *gorm.DB
	tx          *gorm.DB
	lockTimeout time.Duration
}

// Begin starts the transaction. Calling Begin twice is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return pgerr.Translate("begin transaction", "transaction", "", tx.Error)
	}
	if uow.lockTimeout > 0 {
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = %d", uow.lockTimeout.Milliseconds())
		if err := tx.Exec(stmt).Error; err != nil {
			tx.Rollback()
			return pgerr.Translate("begin transaction", "transaction", "", err)
		}
	}

	uow.tx = tx
	return nil
}

// Commit finalizes the transaction. A serialization failure or deadlock reported at
// commit time surfaces as a TransientStoreError.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return pgerr.Translate("commit transaction", "transaction", "", err)
}

// Rollback discards the transaction. After Commit it returns gorm.ErrInvalidTransaction,
// which handlers deferring Rollback ignore.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) ShipmentRepository() ports.ShipmentRepository {
	return shipmentrepo.NewGormShipmentRepository(uow.conn())
}

func (uow *GormUnitOfWork) TaskRepository() ports.TaskRepository {
	return taskrepo.NewGormTaskRepository(uow.conn())
}

func (uow *GormUnitOfWork) StationRepository() ports.StationRepository {
	return stationrepo.NewGormStationRepository(uow.conn())
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn())
}

func (uow *GormUnitOfWork) NotificationRepository() ports.NotificationRepository {
	return notificationrepo.NewGormNotificationRepository(uow.conn())
}

func (uow *GormUnitOfWork) CrossBorderRepository() ports.CrossBorderRepository {
	return crossborderrepo.NewGormCrossBorderRepository(uow.conn())
}

func (uow *GormUnitOfWork) PrincipalDirectory() ports.PrincipalDirectory {
	return principalrepo.NewGormPrincipalDirectory(uow.conn())
}
