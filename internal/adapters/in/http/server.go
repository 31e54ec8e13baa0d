package http

import (
	"context"
	"net/http"

	"prepcenter/internal/core/application/usecases/commands"
	"prepcenter/internal/core/application/usecases/queries"
	"prepcenter/internal/core/domain/model/crossborder"
	"prepcenter/internal/core/domain/model/order"
	"prepcenter/internal/core/domain/model/shipment"
	"prepcenter/internal/core/domain/model/station"
	"prepcenter/internal/core/domain/model/task"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Handler is the shape shared by the command and query handlers.
type Handler[In, Out any] interface {
	Handle(ctx context.Context, in In) (Out, error)
}

type MarkNotificationReadHandler interface {
	Handle(ctx context.Context, command commands.MarkNotificationReadCommand) error
}

// Handlers lists the use cases the server exposes.
type Handlers struct {
	CreateShipment       Handler[commands.CreateShipmentCommand, *shipment.Shipment]
	TransitionShipment   Handler[commands.TransitionShipmentCommand, commands.TransitionResult]
	CorrectItemQuantity  Handler[commands.CorrectItemQuantityCommand, *shipment.Shipment]
	AssignTask           Handler[commands.AssignTaskCommand, *task.Task]
	CompleteTask         Handler[commands.CompleteTaskCommand, commands.CompleteTaskResult]
	CreateStation        Handler[commands.CreateStationCommand, *station.Station]
	UpdateStation        Handler[commands.UpdateStationCommand, commands.UpdateStationResult]
	EnsureOrder          Handler[commands.EnsureOrderCommand, *order.Order]
	UpdateOrderStatus    Handler[commands.UpdateOrderStatusCommand, *order.Order]
	AttachInvoice        Handler[commands.AttachInvoiceCommand, *order.Invoice]
	CreateGhanaShipment  Handler[commands.CreateCrossBorderShipmentCommand, *crossborder.Shipment]
	MarkNotificationRead MarkNotificationReadHandler

	ListClients        Handler[queries.ListClientsQuery, []queries.ClientSummary]
	ListStations       Handler[queries.ListStationsQuery, []queries.StationView]
	ListShipments      Handler[queries.ListShipmentsQuery, []queries.ShipmentSummary]
	ListOrders         Handler[queries.ListOrdersQuery, []queries.OrderView]
	ListGhanaShipments Handler[queries.ListCrossBorderShipmentsQuery, []queries.CrossBorderShipmentView]
	ListActivity       Handler[queries.ListActivityQuery, []queries.ActivityView]
	ListTasks          Handler[queries.ListTasksQuery, []queries.TaskView]
	ListInventory      Handler[queries.ListInventoryQuery, []queries.InventoryItem]
	ListInvoices       Handler[queries.ListInvoicesQuery, []queries.InvoiceView]
	GetShipmentDetail  Handler[queries.GetShipmentDetailQuery, *queries.ShipmentDetail]
	ListNotifications  Handler[queries.ListNotificationsQuery, []queries.NotificationView]
}

// Server implements ServerInterface on top of the application use cases.
// Handlers return domain errors unchanged; NewErrorHandler maps them to statuses.
type Server struct {
	h Handlers
}

func NewServer(h Handlers) *Server {
	return &Server{h: h}
}

var _ ServerInterface = (*Server)(nil)

func bindBody(ctx echo.Context, dst any) error {
	if err := (&echo.DefaultBinder{}).BindBody(ctx, dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	return nil
}

func (s *Server) ListClients(ctx echo.Context) error {
	query, err := queries.NewListClientsQuery(principalOf(ctx))
	if err != nil {
		return err
	}
	clients, err := s.h.ListClients.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, mapSlice(clients, clientFromView))
}

func (s *Server) ListStations(ctx echo.Context) error {
	query, err := queries.NewListStationsQuery(principalOf(ctx))
	if err != nil {
		return err
	}
	stations, err := s.h.ListStations.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, mapSlice(stations, stationFromView))
}

func (s *Server) CreateStation(ctx echo.Context) error {
	var body NewStationRequest
	if err := bindBody(ctx, &body); err != nil {
		return err
	}
	operatorID, err := optionalKernelID(body.AssignedOperatorID)
	if err != nil {
		return err
	}
	cmd, err := commands.NewCreateStationCommand(principalOf(ctx), body.Name, body.Type, body.Capacity, operatorID)
	if err != nil {
		return err
	}
	created, err := s.h.CreateStation.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, stationFromDomain(created, 0))
}

func (s *Server) UpdateStation(ctx echo.Context, id openapi_types.UUID) error {
	var body StationPatchRequest
	if err := bindBody(ctx, &body); err != nil {
		return err
	}
	stationID, err := kernelID(id)
	if err != nil {
		return err
	}
	patch, err := body.Patch()
	if err != nil {
		return err
	}
	cmd, err := commands.NewUpdateStationCommand(principalOf(ctx), stationID, patch)
	if err != nil {
		return err
	}
	result, err := s.h.UpdateStation.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, stationFromDomain(result.Station, result.ActiveLoad))
}

func (s *Server) ListShipments(ctx echo.Context, params ListShipmentsParams) error {
	var statuses []shipment.Status
	if params.Status != nil {
		for _, raw := range *params.Status {
			status, err := shipment.ParseStatus(raw)
			if err != nil {
				return err
			}
			statuses = append(statuses, status)
		}
	}
	query, err := queries.NewListShipmentsQuery(principalOf(ctx), statuses...)
	if err != nil {
		return err
	}
	shipments, err := s.h.ListShipments.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, mapSlice(shipments, shipmentSummaryFromView))
}

func (s *Server) EnsureOrder(ctx echo.Context, id openapi_types.UUID) error {
	shipmentID, err := kernelID(id)
	if err != nil {
		return err
	}
	cmd, err := commands.NewEnsureOrderCommand(principalOf(ctx), shipmentID)
	if err != nil {
		return err
	}
	o, err := s.h.EnsureOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, orderFromDomain(o))
}

func (s *Server) ListOrders(ctx echo.Context, params ListOrdersParams) error {
	query, err := queries.NewListOrdersQuery(principalOf(ctx), params.Uninvoiced != nil && *params.Uninvoiced)
	if err != nil {
		return err
	}
	orders, err := s.h.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, mapSlice(orders, orderFromView))
}

func (s *Server) UpdateOrderStatus(ctx echo.Context, id openapi_types.UUID) error {
	var body OrderStatusRequest
	if err := bindBody(ctx, &body); err != nil {
		return err
	}
	orderID, err := kernelID(id)
	if err != nil {
		return err
	}
	target, err := order.ParseStatus(body.Status)
	if err != nil {
		return err
	}
	cmd, err := commands.NewUpdateOrderStatusCommand(principalOf(ctx), orderID, target)
	if err != nil {
		return err
	}
	o, err := s.h.UpdateOrderStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, orderFromDomain(o))
}

func (s *Server) AttachInvoice(ctx echo.Context, id openapi_types.UUID) error {
	orderID, err := kernelID(id)
	if err != nil {
		return err
	}
	cmd, err := commands.NewAttachInvoiceCommand(principalOf(ctx), orderID)
	if err != nil {
		return err
	}
	inv, err := s.h.AttachInvoice.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, invoiceFromDomain(inv))
}

func (s *Server) ListGhanaShipments(ctx echo.Context) error {
	query, err := queries.NewListCrossBorderShipmentsQuery(principalOf(ctx))
	if err != nil {
		return err
	}
	shipments, err := s.h.ListGhanaShipments.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, mapSlice(shipments, ghanaShipmentFromView))
}

func (s *Server) CreateGhanaShipment(ctx echo.Context) error {
	var body NewGhanaShipmentRequest
	if err := bindBody(ctx, &body); err != nil {
		return err
	}
	ownerID, err := kernelID(body.OwnerID)
	if err != nil {
		return err
	}
	cmd, err := commands.NewCreateCrossBorderShipmentCommand(
		principalOf(ctx), ownerID, body.Origin, body.Destination, body.TrackingNumber, body.WeightGrams)
	if err != nil {
		return err
	}
	created, err := s.h.CreateGhanaShipment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, ghanaShipmentFromDomain(created))
}

func (s *Server) ListActivity(ctx echo.Context, params ListActivityParams) error {
	entityID, err := optionalKernelID(params.EntityID)
	if err != nil {
		return err
	}
	var entityType string
	if params.EntityType != nil {
		entityType = *params.EntityType
	}
	var limit int
	if params.Limit != nil {
		limit = *params.Limit
	}
	query, err := queries.NewListActivityQuery(principalOf(ctx), entityType, entityID, limit)
	if err != nil {
		return err
	}
	entries, err := s.h.ListActivity.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, mapSlice(entries, activityFromView))
}

func (s *Server) CreateShipment(ctx echo.Context) error {
	var body NewShipmentRequest
	if err := bindBody(ctx, &body); err != nil {
		return err
	}
	ownerID, err := optionalKernelID(body.OwnerID)
	if err != nil {
		return err
	}
	cmd, err := commands.NewCreateShipmentCommand(
		principalOf(ctx), ownerID, body.Origin, body.Destination, body.TrackingNumber, body.itemInputs())
	if err != nil {
		return err
	}
	created, err := s.h.CreateShipment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, shipmentFromDomain(created))
}

func (s *Server) TransitionShipment(ctx echo.Context, id openapi_types.UUID) error {
	var body TransitionRequest
	if err := bindBody(ctx, &body); err != nil {
		return err
	}
	shipmentID, err := kernelID(id)
	if err != nil {
		return err
	}
	target, err := shipment.ParseStatus(body.Status)
	if err != nil {
		return err
	}
	priority := task.UnknownPriority
	if body.Priority != "" {
		if priority, err = task.ParsePriority(body.Priority); err != nil {
			return err
		}
	}
	cmd, err := commands.NewTransitionShipmentCommand(principalOf(ctx), shipmentID, target, priority)
	if err != nil {
		return err
	}
	result, err := s.h.TransitionShipment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, transitionFromResult(result))
}

func (s *Server) CorrectItemQuantity(ctx echo.Context, id openapi_types.UUID, itemID openapi_types.UUID) error {
	var body QuantityRequest
	if err := bindBody(ctx, &body); err != nil {
		return err
	}
	shipmentID, err := kernelID(id)
	if err != nil {
		return err
	}
	item, err := kernelID(itemID)
	if err != nil {
		return err
	}
	cmd, err := commands.NewCorrectItemQuantityCommand(principalOf(ctx), shipmentID, item, body.Quantity)
	if err != nil {
		return err
	}
	updated, err := s.h.CorrectItemQuantity.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, shipmentFromDomain(updated))
}

func (s *Server) ListTasks(ctx echo.Context, params ListTasksParams) error {
	var status *task.Status
	if params.Status != nil {
		parsed, err := task.ParseStatus(*params.Status)
		if err != nil {
			return err
		}
		status = &parsed
	}
	var priority *task.Priority
	if params.Priority != nil {
		parsed, err := task.ParsePriority(*params.Priority)
		if err != nil {
			return err
		}
		priority = &parsed
	}
	query, err := queries.NewListTasksQuery(principalOf(ctx), status, priority)
	if err != nil {
		return err
	}
	tasks, err := s.h.ListTasks.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, mapSlice(tasks, taskFromView))
}

func (s *Server) AssignTask(ctx echo.Context, id openapi_types.UUID) error {
	var body AssignmentRequest
	if err := bindBody(ctx, &body); err != nil {
		return err
	}
	taskID, err := kernelID(id)
	if err != nil {
		return err
	}
	stationID, err := optionalKernelID(body.StationID)
	if err != nil {
		return err
	}
	operator, err := body.Operator()
	if err != nil {
		return err
	}
	cmd, err := commands.NewAssignTaskCommand(principalOf(ctx), taskID, stationID, operator)
	if err != nil {
		return err
	}
	assigned, err := s.h.AssignTask.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, taskFromDomain(assigned))
}

func (s *Server) CompleteTask(ctx echo.Context, id openapi_types.UUID) error {
	taskID, err := kernelID(id)
	if err != nil {
		return err
	}
	cmd, err := commands.NewCompleteTaskCommand(principalOf(ctx), taskID)
	if err != nil {
		return err
	}
	result, err := s.h.CompleteTask.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	out := Completion{Task: taskFromDomain(result.Task)}
	if result.Transition != nil {
		transition := transitionFromResult(*result.Transition)
		out.Transition = &transition
	}
	return ctx.JSON(http.StatusOK, out)
}

func (s *Server) ListInventory(ctx echo.Context) error {
	query, err := queries.NewListInventoryQuery(principalOf(ctx))
	if err != nil {
		return err
	}
	items, err := s.h.ListInventory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, mapSlice(items, inventoryFromView))
}

func (s *Server) ListInvoices(ctx echo.Context) error {
	query, err := queries.NewListInvoicesQuery(principalOf(ctx))
	if err != nil {
		return err
	}
	invoices, err := s.h.ListInvoices.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, mapSlice(invoices, invoiceFromView))
}

func (s *Server) GetShipmentDetail(ctx echo.Context, id openapi_types.UUID) error {
	shipmentID, err := kernelID(id)
	if err != nil {
		return err
	}
	query, err := queries.NewGetShipmentDetailQuery(principalOf(ctx), shipmentID)
	if err != nil {
		return err
	}
	detail, err := s.h.GetShipmentDetail.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, shipmentFromView(detail))
}

func (s *Server) ListNotifications(ctx echo.Context, params ListNotificationsParams) error {
	var limit int
	if params.Limit != nil {
		limit = *params.Limit
	}
	query, err := queries.NewListNotificationsQuery(principalOf(ctx), params.Unread != nil && *params.Unread, limit)
	if err != nil {
		return err
	}
	notifications, err := s.h.ListNotifications.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, mapSlice(notifications, notificationFromView))
}

func (s *Server) MarkNotificationRead(ctx echo.Context, id openapi_types.UUID) error {
	notificationID, err := kernelID(id)
	if err != nil {
		return err
	}
	cmd, err := commands.NewMarkNotificationReadCommand(principalOf(ctx), notificationID)
	if err != nil {
		return err
	}
	if err := s.h.MarkNotificationRead.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
