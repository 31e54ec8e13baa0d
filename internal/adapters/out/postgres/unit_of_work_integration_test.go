package postgres_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	postgres_adapter "prepcenter/internal/adapters/out/postgres"
	"prepcenter/internal/adapters/out/postgres/activityrepo"
	"prepcenter/internal/core/application/usecases/commands"
	"prepcenter/internal/core/domain/model/access"
	"prepcenter/internal/core/domain/model/activity"
	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/core/domain/model/shipment"
	"prepcenter/internal/core/domain/model/station"
	"prepcenter/internal/core/domain/model/task"
	"prepcenter/internal/core/ports"
	"prepcenter/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type uowFactoryFunc func() commands.UoW

func (f uowFactoryFunc) Create() commands.UoW { return f() }

type stationUoWFactoryFunc func() commands.StationUoW

func (f stationUoWFactoryFunc) Create() commands.StationUoW { return f() }

type orderUoWFactoryFunc func() commands.OrderUoW

func (f orderUoWFactoryFunc) Create() commands.OrderUoW { return f() }

type flatPricing struct{}

func (flatPricing) Quote(_ context.Context, _ shipment.PrepType, units int) (kernel.Money, error) {
	return kernel.NewMoney(int64(units)*100, "USD")
}

// UnitOfWorkIntegrationTestSuite runs the unit of work and the command handlers
// against a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
	recorder  *activityrepo.GormActivityRecorder

	admin    access.Principal
	operator access.Principal
	client   access.Principal
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30*time.Second)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{Logger: logger.Discard})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db, postgres_adapter.WithLockTimeout(5*time.Second))
	suite.recorder = activityrepo.NewGormActivityRecorder(db, slog.New(slog.DiscardHandler))
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	for _, table := range postgres_adapter.Tables {
		suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE " + table + " CASCADE").Error)
	}
	suite.admin = suite.principal(access.Admin)
	suite.operator = suite.principal(access.Operator)
	suite.client = suite.principal(access.Client)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) principal(role access.Role) access.Principal {
	p, err := access.NewPrincipal(kernel.NewUUID(), role)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.factory.Create().PrincipalDirectory().Touch(context.Background(), p))
	return p
}

func (suite *UnitOfWorkIntegrationTestSuite) uows() commands.UoWFactory {
	return uowFactoryFunc(func() commands.UoW { return suite.factory.Create() })
}

func (suite *UnitOfWorkIntegrationTestSuite) newShipment(status shipment.Status, prepTypes ...string) *shipment.Shipment {
	if len(prepTypes) == 0 {
		prepTypes = []string{"LABELING"}
	}
	items := make([]*shipment.Item, 0, len(prepTypes))
	for i, name := range prepTypes {
		pt, err := shipment.NewPrepType(name)
		suite.Require().NoError(err)
		it, err := shipment.NewItem(kernel.NewUUID(), "Mug", "MUG-"+name, i+2, pt)
		suite.Require().NoError(err)
		items = append(items, it)
	}
	s, err := shipment.RestoreShipment(kernel.NewUUID(), suite.client.ID(), status,
		"Shenzhen", "ONT8", "", items, time.Now())
	suite.Require().NoError(err)
	return s
}

// openTasks creates a shipment through the command handlers and moves it into
// INSPECTING, which opens one task per prep type.
func (suite *UnitOfWorkIntegrationTestSuite) openTasks(prepTypes ...string) []kernel.UUID {
	ctx := context.Background()
	items := make([]commands.ItemInput, 0, len(prepTypes))
	for _, name := range prepTypes {
		items = append(items, commands.ItemInput{ProductName: "Mug", SKU: "MUG-" + name, Quantity: 2, PrepType: name})
	}
	create, err := commands.NewCreateShipmentCommand(suite.client, nil, "Shenzhen", "ONT8", "", items)
	suite.Require().NoError(err)
	s, err := commands.NewCreateShipmentCommandHandler(suite.uows(), suite.recorder).Handle(ctx, create)
	suite.Require().NoError(err)

	move, err := commands.NewTransitionShipmentCommand(suite.operator, s.ID(), shipment.Inspecting, task.UnknownPriority)
	suite.Require().NoError(err)
	result, err := commands.NewTransitionShipmentCommandHandler(suite.uows(), flatPricing{}, suite.recorder).Handle(ctx, move)
	suite.Require().NoError(err)
	suite.Require().Len(result.OpenedTasks, len(prepTypes))
	return result.OpenedTasks
}

func (suite *UnitOfWorkIntegrationTestSuite) createStation(stationType string, capacity int) *station.Station {
	cmd, err := commands.NewCreateStationCommand(suite.admin, "Station "+kernel.NewUUID().String()[:8], stationType, &capacity, nil)
	suite.Require().NoError(err)
	f := stationUoWFactoryFunc(func() commands.StationUoW { return suite.factory.Create() })
	st, err := commands.NewCreateStationCommandHandler(f, suite.recorder).Handle(context.Background(), cmd)
	suite.Require().NoError(err)
	return st
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction, "Rollback after commit is a no-op error")

	suite.Require().Error(uow.Commit(ctx), "Should error when committing without active transaction")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommitPersistsAcrossRepositories() {
	ctx := context.Background()
	s := suite.newShipment(shipment.Inspecting, "LABELING", "BUNDLING")
	t, err := task.NewTask(kernel.NewUUID(), s.ID(), "LABELING", shipment.Inspecting, task.High, time.Now())
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ShipmentRepository().Add(ctx, s))
	suite.Require().NoError(uow.TaskRepository().Add(ctx, t))
	suite.Require().NoError(uow.Commit(ctx))

	reader := suite.factory.Create()
	got, err := reader.ShipmentRepository().Get(ctx, s.ID())
	suite.Require().NoError(err)
	suite.Equal(shipment.Inspecting, got.Status())
	suite.Require().Len(got.Items(), 2)
	suite.Equal(s.Items()[0].ID(), got.Items()[0].ID(), "items keep their position")

	open, err := reader.TaskRepository().CountOpenByStage(ctx, s.ID(), shipment.Inspecting)
	suite.Require().NoError(err)
	suite.Equal(1, open)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsChanges() {
	ctx := context.Background()
	s := suite.newShipment(shipment.Received)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ShipmentRepository().Add(ctx, s))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err := suite.factory.Create().ShipmentRepository().Get(ctx, s.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestShipmentRepository_UpdatePersistsStatusAndQuantity() {
	ctx := context.Background()
	s := suite.newShipment(shipment.Received)
	suite.Require().NoError(suite.factory.Create().ShipmentRepository().Add(ctx, s))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	locked, err := uow.ShipmentRepository().GetForUpdate(ctx, s.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(locked.CorrectItemQuantity(locked.Items()[0].ID(), 11, suite.client))
	_, err = locked.TransitionTo(shipment.Inspecting, suite.operator)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.ShipmentRepository().Update(ctx, locked))
	suite.Require().NoError(uow.Commit(ctx))

	got, err := suite.factory.Create().ShipmentRepository().Get(ctx, s.ID())
	suite.Require().NoError(err)
	suite.Equal(shipment.Inspecting, got.Status())
	suite.Equal(11, got.ItemCount())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestStationRepository_EligibilityAndLoad() {
	ctx := context.Background()
	labeling := suite.createStation("LABELING", 2)
	general := suite.createStation("GENERAL", 1)
	suite.createStation("BUNDLING", 3)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()

	eligible, err := uow.StationRepository().ListEligibleForUpdate(ctx, "LABELING")
	suite.Require().NoError(err)
	ids := make([]kernel.UUID, 0, len(eligible))
	for _, st := range eligible {
		ids = append(ids, st.ID())
	}
	suite.ElementsMatch([]kernel.UUID{labeling.ID(), general.ID()}, ids)

	load, err := uow.StationRepository().ActiveLoad(ctx, labeling.ID(), nil)
	suite.Require().NoError(err)
	suite.Zero(load)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestPrincipalDirectory_TouchUpdatesRole() {
	ctx := context.Background()
	dir := suite.factory.Create().PrincipalDirectory()

	role, err := dir.RoleOf(ctx, suite.operator.ID())
	suite.Require().NoError(err)
	suite.Equal(access.Operator, role)

	promoted, err := access.NewPrincipal(suite.operator.ID(), access.Admin)
	suite.Require().NoError(err)
	suite.Require().NoError(dir.Touch(ctx, promoted))

	role, err = dir.RoleOf(ctx, suite.operator.ID())
	suite.Require().NoError(err)
	suite.Equal(access.Admin, role)

	_, err = dir.RoleOf(ctx, kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestNotificationRepository_ScopedToOwner() {
	ctx := context.Background()
	n, err := activity.NewNotification(kernel.NewUUID(), suite.client.ID(), "Shipment is now INSPECTING", time.Now())
	suite.Require().NoError(err)
	repo := suite.factory.Create().NotificationRepository()
	suite.Require().NoError(repo.Add(ctx, n))

	foreign, err := repo.FindForUser(ctx, n.ID(), suite.operator.ID())
	suite.Require().NoError(err)
	suite.Nil(foreign)

	own, err := repo.FindForUser(ctx, n.ID(), suite.client.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(own)
	own.MarkRead()
	suite.Require().NoError(repo.Update(ctx, own))

	again, err := repo.FindForUser(ctx, n.ID(), suite.client.ID())
	suite.Require().NoError(err)
	suite.True(again.IsRead())
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
