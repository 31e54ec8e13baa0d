package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface has one method per operation of api/openapi.yaml. Path and query
// parameters arrive already bound.
type ServerInterface interface {
	ListClients(ctx echo.Context) error
	ListStations(ctx echo.Context) error
	CreateStation(ctx echo.Context) error
	UpdateStation(ctx echo.Context, id openapi_types.UUID) error
	ListShipments(ctx echo.Context, params ListShipmentsParams) error
	EnsureOrder(ctx echo.Context, id openapi_types.UUID) error
	ListOrders(ctx echo.Context, params ListOrdersParams) error
	UpdateOrderStatus(ctx echo.Context, id openapi_types.UUID) error
	AttachInvoice(ctx echo.Context, id openapi_types.UUID) error
	ListGhanaShipments(ctx echo.Context) error
	CreateGhanaShipment(ctx echo.Context) error
	ListActivity(ctx echo.Context, params ListActivityParams) error

	CreateShipment(ctx echo.Context) error
	TransitionShipment(ctx echo.Context, id openapi_types.UUID) error
	CorrectItemQuantity(ctx echo.Context, id openapi_types.UUID, itemID openapi_types.UUID) error

	ListTasks(ctx echo.Context, params ListTasksParams) error
	AssignTask(ctx echo.Context, id openapi_types.UUID) error
	CompleteTask(ctx echo.Context, id openapi_types.UUID) error

	ListInventory(ctx echo.Context) error
	ListInvoices(ctx echo.Context) error
	GetShipmentDetail(ctx echo.Context, id openapi_types.UUID) error

	ListNotifications(ctx echo.Context, params ListNotificationsParams) error
	MarkNotificationRead(ctx echo.Context, id openapi_types.UUID) error
}

type ListShipmentsParams struct {
	Status *[]string
}

type ListOrdersParams struct {
	Uninvoiced *bool
}

type ListActivityParams struct {
	EntityType *string
	EntityID   *openapi_types.UUID
	Limit      *int
}

type ListTasksParams struct {
	Status   *string
	Priority *string
}

type ListNotificationsParams struct {
	Unread *bool
	Limit  *int
}

// EchoRouter is satisfied by both *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// ServerInterfaceWrapper binds request parameters and forwards to the ServerInterface.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func bindPathID(ctx echo.Context, name string) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return id, nil
}

func bindQuery(ctx echo.Context, name string, explode bool, dest any) error {
	if err := runtime.BindQueryParameter("form", explode, false, name, ctx.QueryParams(), dest); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return nil
}

func (w *ServerInterfaceWrapper) withID(call func(echo.Context, openapi_types.UUID) error) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		id, err := bindPathID(ctx, "id")
		if err != nil {
			return err
		}
		return call(ctx, id)
	}
}

func (w *ServerInterfaceWrapper) CorrectItemQuantity(ctx echo.Context) error {
	id, err := bindPathID(ctx, "id")
	if err != nil {
		return err
	}
	itemID, err := bindPathID(ctx, "itemId")
	if err != nil {
		return err
	}
	return w.Handler.CorrectItemQuantity(ctx, id, itemID)
}

func (w *ServerInterfaceWrapper) ListShipments(ctx echo.Context) error {
	var params ListShipmentsParams
	if err := bindQuery(ctx, "status", true, &params.Status); err != nil {
		return err
	}
	return w.Handler.ListShipments(ctx, params)
}

func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	var params ListOrdersParams
	if err := bindQuery(ctx, "uninvoiced", true, &params.Uninvoiced); err != nil {
		return err
	}
	return w.Handler.ListOrders(ctx, params)
}

func (w *ServerInterfaceWrapper) ListActivity(ctx echo.Context) error {
	var params ListActivityParams
	if err := bindQuery(ctx, "entityType", true, &params.EntityType); err != nil {
		return err
	}
	if err := bindQuery(ctx, "entityId", true, &params.EntityID); err != nil {
		return err
	}
	if err := bindQuery(ctx, "limit", true, &params.Limit); err != nil {
		return err
	}
	return w.Handler.ListActivity(ctx, params)
}

func (w *ServerInterfaceWrapper) ListTasks(ctx echo.Context) error {
	var params ListTasksParams
	if err := bindQuery(ctx, "status", true, &params.Status); err != nil {
		return err
	}
	if err := bindQuery(ctx, "priority", true, &params.Priority); err != nil {
		return err
	}
	return w.Handler.ListTasks(ctx, params)
}

func (w *ServerInterfaceWrapper) ListNotifications(ctx echo.Context) error {
	var params ListNotificationsParams
	if err := bindQuery(ctx, "unread", true, &params.Unread); err != nil {
		return err
	}
	if err := bindQuery(ctx, "limit", true, &params.Limit); err != nil {
		return err
	}
	return w.Handler.ListNotifications(ctx, params)
}

// RegisterHandlers adds every operation to router. Paths are relative to /api/v1.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	w := &ServerInterfaceWrapper{Handler: si}

	router.GET("/admin/clients", si.ListClients)
	router.GET("/admin/stations", si.ListStations)
	router.POST("/admin/stations", si.CreateStation)
	router.PATCH("/admin/stations/:id", w.withID(si.UpdateStation))
	router.GET("/admin/shipments", w.ListShipments)
	router.POST("/admin/shipments/:id/order", w.withID(si.EnsureOrder))
	router.GET("/admin/orders", w.ListOrders)
	router.PATCH("/admin/orders/:id", w.withID(si.UpdateOrderStatus))
	router.POST("/admin/orders/:id/invoice", w.withID(si.AttachInvoice))
	router.GET("/admin/ghana-shipments", si.ListGhanaShipments)
	router.POST("/admin/ghana-shipments", si.CreateGhanaShipment)
	router.GET("/admin/activity", w.ListActivity)

	router.POST("/shipments", si.CreateShipment)
	router.POST("/shipments/:id/transitions", w.withID(si.TransitionShipment))
	router.PATCH("/shipments/:id/items/:itemId", w.CorrectItemQuantity)

	router.GET("/tasks", w.ListTasks)
	router.POST("/tasks/:id/assignment", w.withID(si.AssignTask))
	router.POST("/tasks/:id/completion", w.withID(si.CompleteTask))

	router.GET("/client/inventory", si.ListInventory)
	router.GET("/client/invoices", si.ListInvoices)
	router.GET("/client/shipments/:id", w.withID(si.GetShipmentDetail))

	router.GET("/notifications", w.ListNotifications)
	router.POST("/notifications/:id/read", w.withID(si.MarkNotificationRead))
}
