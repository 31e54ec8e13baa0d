package postgres_test

import (
	"context"
	"sync"

	"prepcenter/internal/core/application/usecases/commands"
	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/core/domain/model/order"
	"prepcenter/internal/core/domain/model/shipment"
	"prepcenter/internal/pkg/errs"
)

func (suite *UnitOfWorkIntegrationTestSuite) assignAll(taskIDs []kernel.UUID, stationID *kernel.UUID) (int, []error) {
	ctx := context.Background()
	handler := commands.NewAssignTaskCommandHandler(suite.uows(), suite.recorder)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		failures  []error
	)
	for _, id := range taskIDs {
		wg.Add(1)
		go func(id kernel.UUID) {
			defer wg.Done()
			cmd, err := commands.NewAssignTaskCommand(suite.admin, id, stationID, kernel.Absent[*kernel.UUID]())
			if err == nil {
				_, err = handler.Handle(ctx, cmd)
			}
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures = append(failures, err)
				return
			}
			succeeded++
		}(id)
	}
	wg.Wait()
	return succeeded, failures
}

func (suite *UnitOfWorkIntegrationTestSuite) TestAssignTask_ConcurrentAssignmentsNeverExceedCapacity() {
	ctx := context.Background()
	st := suite.createStation("GENERAL", 2)

	var taskIDs []kernel.UUID
	for range 3 {
		taskIDs = append(taskIDs, suite.openTasks("LABELING", "BUNDLING")...)
	}
	stationID := st.ID()

	succeeded, failures := suite.assignAll(taskIDs, &stationID)

	suite.Equal(2, succeeded)
	for _, err := range failures {
		suite.Equal(errs.KindCapacityExceeded, errs.KindOf(err), err.Error())
	}

	load, err := suite.factory.Create().StationRepository().ActiveLoad(ctx, st.ID(), nil)
	suite.Require().NoError(err)
	suite.Equal(2, load)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestAssignTask_ConcurrentAutoPickFillsEveryStationOnce() {
	ctx := context.Background()
	first := suite.createStation("LABELING", 1)
	second := suite.createStation("GENERAL", 1)

	var taskIDs []kernel.UUID
	for range 4 {
		taskIDs = append(taskIDs, suite.openTasks("LABELING")...)
	}

	succeeded, failures := suite.assignAll(taskIDs, nil)

	suite.Equal(2, succeeded)
	suite.Len(failures, 2)
	for _, st := range []kernel.UUID{first.ID(), second.ID()} {
		load, err := suite.factory.Create().StationRepository().ActiveLoad(ctx, st, nil)
		suite.Require().NoError(err)
		suite.Equal(1, load)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestEnsureOrder_ConcurrentCallsCreateOneOrder() {
	ctx := context.Background()
	s := suite.newShipment(shipment.ReadyToShip, "LABELING", "LABELING", "BUNDLING")
	suite.Require().NoError(suite.factory.Create().ShipmentRepository().Add(ctx, s))

	f := orderUoWFactoryFunc(func() commands.OrderUoW { return suite.factory.Create() })
	handler := commands.NewEnsureOrderCommandHandler(f, flatPricing{}, suite.recorder)

	const callers = 8
	orders := make([]*order.Order, callers)
	errList := make([]error, callers)
	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cmd, err := commands.NewEnsureOrderCommand(suite.admin, s.ID())
			if err != nil {
				errList[i] = err
				return
			}
			orders[i], errList[i] = handler.Handle(ctx, cmd)
		}(i)
	}
	wg.Wait()

	for i := range callers {
		suite.Require().NoError(errList[i])
		suite.Equal(orders[0].ID(), orders[i].ID())
	}
	suite.Equal(shipment.PrepType("LABELING"), orders[0].Service())
	suite.Equal(int64((2+3+4)*100), orders[0].Total().Cents())

	var count int64
	suite.Require().NoError(suite.db.Table("orders").Where("shipment_id = ?", s.ID().Bytes()).Count(&count).Error)
	suite.Equal(int64(1), count)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOrderRepository_SecondOrderForShipmentConflicts() {
	ctx := context.Background()
	s := suite.newShipment(shipment.ReadyToShip)
	suite.Require().NoError(suite.factory.Create().ShipmentRepository().Add(ctx, s))

	total, err := kernel.NewMoney(500, "USD")
	suite.Require().NoError(err)
	first, err := order.NewOrder(kernel.NewUUID(), s.ID(), "LABELING", total, s.CreatedAt())
	suite.Require().NoError(err)
	second, err := order.NewOrder(kernel.NewUUID(), s.ID(), "LABELING", total, s.CreatedAt())
	suite.Require().NoError(err)

	repo := suite.factory.Create().OrderRepository()
	suite.Require().NoError(repo.Add(ctx, first))
	err = repo.Add(ctx, second)
	suite.Equal(errs.KindConflict, errs.KindOf(err))
}
