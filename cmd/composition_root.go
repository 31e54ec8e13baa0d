package cmd

import (
	"log/slog"

	httpin "prepcenter/internal/adapters/in/http"
	kafkaout "prepcenter/internal/adapters/out/kafka"
	"prepcenter/internal/adapters/out/postgres"
	"prepcenter/internal/adapters/out/postgres/activityrepo"
	"prepcenter/internal/adapters/out/postgres/principalrepo"
	"prepcenter/internal/adapters/out/pricing"
	"prepcenter/internal/core/application/usecases/commands"
	"prepcenter/internal/core/application/usecases/queries"
	"prepcenter/internal/core/ports"
	"prepcenter/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	recorder   ports.ActivityRecorder
	pricing    ports.Pricing
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	rateCard, err := pricing.ParseRateCard(config.Currency, config.DefaultRate, config.RateCard)
	if err != nil {
		return CompositionRoot{}, err
	}
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, postgres.WithLockTimeout(config.LockTimeout)),
		recorder:   activityrepo.NewGormActivityRecorder(gormDB, logger),
		pricing:    rateCard,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() commands.CreateShipmentCommandHandler {
	return commands.NewCreateShipmentCommandHandler(c.uow(), c.recorder)
}

func (c *CompositionRoot) CreateTransitionShipmentCommandHandler() commands.TransitionShipmentCommandHandler {
	return commands.NewTransitionShipmentCommandHandler(c.uow(), c.pricing, c.recorder)
}

func (c *CompositionRoot) CreateCorrectItemQuantityCommandHandler() commands.CorrectItemQuantityCommandHandler {
	return commands.NewCorrectItemQuantityCommandHandler(c.uow(), c.recorder)
}

func (c *CompositionRoot) CreateAssignTaskCommandHandler() commands.AssignTaskCommandHandler {
	return commands.NewAssignTaskCommandHandler(c.uow(), c.recorder)
}

func (c *CompositionRoot) CreateCompleteTaskCommandHandler() commands.CompleteTaskCommandHandler {
	return commands.NewCompleteTaskCommandHandler(c.uow(), c.pricing, c.recorder)
}

func (c *CompositionRoot) CreateCreateStationCommandHandler() commands.CreateStationCommandHandler {
	var f commands.StationUoWFactory = FuncStationUoWFactory(func() commands.StationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateStationCommandHandler(f, c.recorder)
}

func (c *CompositionRoot) CreateUpdateStationCommandHandler() commands.UpdateStationCommandHandler {
	var f commands.StationUoWFactory = FuncStationUoWFactory(func() commands.StationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateStationCommandHandler(f, c.recorder)
}

func (c *CompositionRoot) CreateEnsureOrderCommandHandler() commands.EnsureOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewEnsureOrderCommandHandler(f, c.pricing, c.recorder)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderStatusCommandHandler(f, c.recorder)
}

func (c *CompositionRoot) CreateAttachInvoiceCommandHandler() commands.AttachInvoiceCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAttachInvoiceCommandHandler(f, c.recorder)
}

func (c *CompositionRoot) CreateCreateCrossBorderShipmentCommandHandler() commands.CreateCrossBorderShipmentCommandHandler {
	var f commands.CrossBorderUoWFactory = FuncCrossBorderUoWFactory(func() commands.CrossBorderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateCrossBorderShipmentCommandHandler(f, c.recorder)
}

func (c *CompositionRoot) CreateMarkNotificationReadCommandHandler() commands.MarkNotificationReadCommandHandler {
	var f commands.NotificationUoWFactory = FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkNotificationReadCommandHandler(f, c.recorder)
}

func (c *CompositionRoot) CreateListClientsQueryHandler() queries.ListClientsQueryHandler {
	return queries.NewListClientsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListStationsQueryHandler() queries.ListStationsQueryHandler {
	return queries.NewListStationsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListShipmentsQueryHandler() queries.ListShipmentsQueryHandler {
	return queries.NewListShipmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListCrossBorderShipmentsQueryHandler() queries.ListCrossBorderShipmentsQueryHandler {
	return queries.NewListCrossBorderShipmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListActivityQueryHandler() queries.ListActivityQueryHandler {
	return queries.NewListActivityQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListTasksQueryHandler() queries.ListTasksQueryHandler {
	return queries.NewListTasksQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListInventoryQueryHandler() queries.ListInventoryQueryHandler {
	return queries.NewListInventoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListInvoicesQueryHandler() queries.ListInvoicesQueryHandler {
	return queries.NewListInvoicesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetShipmentDetailQueryHandler() queries.GetShipmentDetailQueryHandler {
	return queries.NewGetShipmentDetailQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListNotificationsQueryHandler() queries.ListNotificationsQueryHandler {
	return queries.NewListNotificationsQueryHandler(c.gormDB)
}

// CreatePrincipalDirectory returns the directory the HTTP layer touches on every request.
func (c *CompositionRoot) CreatePrincipalDirectory() ports.PrincipalDirectory {
	return principalrepo.NewGormPrincipalDirectory(c.gormDB)
}

// CreateHTTPServer wires every use case into the HTTP adapter.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateShipment:       c.CreateCreateShipmentCommandHandler(),
		TransitionShipment:   c.CreateTransitionShipmentCommandHandler(),
		CorrectItemQuantity:  c.CreateCorrectItemQuantityCommandHandler(),
		AssignTask:           c.CreateAssignTaskCommandHandler(),
		CompleteTask:         c.CreateCompleteTaskCommandHandler(),
		CreateStation:        c.CreateCreateStationCommandHandler(),
		UpdateStation:        c.CreateUpdateStationCommandHandler(),
		EnsureOrder:          c.CreateEnsureOrderCommandHandler(),
		UpdateOrderStatus:    c.CreateUpdateOrderStatusCommandHandler(),
		AttachInvoice:        c.CreateAttachInvoiceCommandHandler(),
		CreateGhanaShipment:  c.CreateCreateCrossBorderShipmentCommandHandler(),
		MarkNotificationRead: c.CreateMarkNotificationReadCommandHandler(),

		ListClients:        c.CreateListClientsQueryHandler(),
		ListStations:       c.CreateListStationsQueryHandler(),
		ListShipments:      c.CreateListShipmentsQueryHandler(),
		ListOrders:         c.CreateListOrdersQueryHandler(),
		ListGhanaShipments: c.CreateListCrossBorderShipmentsQueryHandler(),
		ListActivity:       c.CreateListActivityQueryHandler(),
		ListTasks:          c.CreateListTasksQueryHandler(),
		ListInventory:      c.CreateListInventoryQueryHandler(),
		ListInvoices:       c.CreateListInvoicesQueryHandler(),
		GetShipmentDetail:  c.CreateGetShipmentDetailQueryHandler(),
		ListNotifications:  c.CreateListNotificationsQueryHandler(),
	})
}

// CreateJobManager returns the background jobs and the publisher they write to.
// The publisher is nil when the relay is disabled; the caller closes it on shutdown.
func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, *kafkaout.AuditPublisher) {
	if !c.config.RelayEnabled() {
		c.logger.Warn("Audit relay disabled", "schedule", c.config.RelaySchedule, "topic", c.config.KafkaAuditTopic)
		return jobs.NewJobManager(), nil
	}
	publisher := kafkaout.NewAuditPublisher(c.config.KafkaBrokers, c.config.KafkaAuditTopic)
	relay := jobs.NewAuditRelayJob(
		activityrepo.NewGormAuditFeed(c.gormDB, activityrepo.WithSettleWindow(c.config.RelaySettle)),
		publisher,
		c.config.RelaySchedule,
		c.config.RelayBatch,
		c.logger,
	)
	return jobs.NewJobManager(relay), publisher
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncStationUoWFactory func() commands.StationUoW

func (f FuncStationUoWFactory) Create() commands.StationUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncNotificationUoWFactory func() commands.NotificationUoW

func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}

type FuncCrossBorderUoWFactory func() commands.CrossBorderUoW

func (f FuncCrossBorderUoWFactory) Create() commands.CrossBorderUoW {
	return f()
}
