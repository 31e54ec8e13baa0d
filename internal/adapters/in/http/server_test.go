package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	httpadapter "prepcenter/internal/adapters/in/http"
	"prepcenter/internal/core/application/usecases/commands"
	"prepcenter/internal/core/application/usecases/queries"
	"prepcenter/internal/core/domain/model/access"
	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/core/domain/model/shipment"
	"prepcenter/internal/core/domain/model/task"
	"prepcenter/internal/pkg/errs"
	"prepcenter/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type handlerFunc[In, Out any] func(ctx context.Context, in In) (Out, error)

func (f handlerFunc[In, Out]) Handle(ctx context.Context, in In) (Out, error) {
	return f(ctx, in)
}

type markReadFunc func(ctx context.Context, command commands.MarkNotificationReadCommand) error

func (f markReadFunc) Handle(ctx context.Context, command commands.MarkNotificationReadCommand) error {
	return f(ctx, command)
}

type directoryStub struct {
	mu      sync.Mutex
	touched []access.Principal
	err     error
}

func (d *directoryStub) Touch(_ context.Context, p access.Principal) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return d.err
	}
	d.touched = append(d.touched, p)
	return nil
}

func (d *directoryStub) RoleOf(context.Context, kernel.UUID) (access.Role, error) {
	return access.Unknown, errs.NewObjectNotFoundError("principal", "")
}

type testAPI struct {
	e         *echo.Echo
	directory *directoryStub
	registry  *prometheus.Registry
}

func newTestAPI(t *testing.T, h httpadapter.Handlers) testAPI {
	t.Helper()
	registry := prometheus.NewRegistry()
	metrics.Register(registry)
	directory := &directoryStub{}
	e, err := httpadapter.NewRouter(httpadapter.RouterConfig{
		Server:    httpadapter.NewServer(h),
		Directory: directory,
		Gatherer:  registry,
		Logger:    slog.New(slog.DiscardHandler),
	})
	require.NoError(t, err)
	return testAPI{e: e, directory: directory, registry: registry}
}

func (a testAPI) do(t *testing.T, method, path, body string, role access.Role, id kernel.UUID) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if role != access.Unknown {
		req.Header.Set(httpadapter.HeaderPrincipalID, id.String())
		req.Header.Set(httpadapter.HeaderPrincipalRole, role.String())
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) httpadapter.Error {
	t.Helper()
	var body httpadapter.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t, httpadapter.Handlers{})

	rec := api.do(t, http.MethodGet, "/health", "", access.Unknown, kernel.UUID{})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestPrincipalHeaders(t *testing.T) {
	api := newTestAPI(t, httpadapter.Handlers{})

	t.Run("missing headers", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/api/v1/tasks", "", access.Unknown, kernel.UUID{})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Unauthenticated", decodeError(t, rec).Kind)
	})

	t.Run("unknown role", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks", nil)
		req.Header.Set(httpadapter.HeaderPrincipalID, kernel.NewUUID().String())
		req.Header.Set(httpadapter.HeaderPrincipalRole, "JANITOR")
		rec := httptest.NewRecorder()
		api.e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks", nil)
		req.Header.Set(httpadapter.HeaderPrincipalID, "42")
		req.Header.Set(httpadapter.HeaderPrincipalRole, "ADMIN")
		rec := httptest.NewRecorder()
		api.e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	assert.Empty(t, api.directory.touched)
}

func TestListTasks(t *testing.T) {
	operatorID := kernel.NewUUID()
	stationID := kernel.NewUUID()
	view := queries.TaskView{
		ID:         kernel.NewUUID(),
		ShipmentID: kernel.NewUUID(),
		PrepType:   "LABELING",
		Stage:      shipment.Inspecting,
		StationID:  &stationID,
		Status:     task.InProgress,
		Priority:   task.Urgent,
		CreatedAt:  time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	var calls int
	api := newTestAPI(t, httpadapter.Handlers{
		ListTasks: handlerFunc[queries.ListTasksQuery, []queries.TaskView](
			func(context.Context, queries.ListTasksQuery) ([]queries.TaskView, error) {
				calls++
				return []queries.TaskView{view}, nil
			}),
	})

	rec := api.do(t, http.MethodGet, "/api/v1/tasks?status=IN_PROGRESS&priority=URGENT", "", access.Operator, operatorID)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var got []httpadapter.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, view.ID.String(), got[0].ID.String())
	assert.Equal(t, "URGENT", got[0].Priority)
	assert.Equal(t, "INSPECTING", got[0].Stage)
	require.NotNil(t, got[0].StationID)
	assert.Equal(t, stationID.String(), got[0].StationID.String())
	assert.Nil(t, got[0].AssignedToID)
	assert.Equal(t, 1, calls)

	require.Len(t, api.directory.touched, 1)
	assert.True(t, api.directory.touched[0].Is(operatorID))
}

func TestListTasks_ClientIsRejectedBeforeTheHandler(t *testing.T) {
	api := newTestAPI(t, httpadapter.Handlers{})

	rec := api.do(t, http.MethodGet, "/api/v1/tasks", "", access.Client, kernel.NewUUID())

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Forbidden", decodeError(t, rec).Kind)
}

func TestRequestValidation(t *testing.T) {
	api := newTestAPI(t, httpadapter.Handlers{})

	cases := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"shipment without items", http.MethodPost, "/api/v1/shipments", `{"origin":"Shenzhen","destination":"ONT8"}`},
		{"non-positive quantity", http.MethodPost, "/api/v1/shipments",
			`{"origin":"A","destination":"B","items":[{"productName":"Mug","quantity":0,"prepType":"LABELING"}]}`},
		{"malformed path id", http.MethodGet, "/api/v1/client/shipments/not-a-uuid", ""},
		{"unknown shipment status filter", http.MethodGet, "/api/v1/admin/shipments?status=LOST", ""},
		{"empty station patch", http.MethodPatch, "/api/v1/admin/stations/" + kernel.NewUUID().String(), `{}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := api.do(t, tc.method, tc.path, tc.body, access.Admin, kernel.NewUUID())
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.Equal(t, "ValidationError", decodeError(t, rec).Kind)
		})
	}
}

func TestErrorKindsMapToStatuses(t *testing.T) {
	cases := []struct {
		err    error
		status int
		kind   string
	}{
		{errs.NewObjectNotFoundError("task", "x"), http.StatusNotFound, "NotFound"},
		{errs.NewForbiddenError("assign task", "not yours"), http.StatusUnauthorized, "Forbidden"},
		{errs.NewValueIsInvalidError("stationId"), http.StatusBadRequest, "ValidationError"},
		{errs.NewInvalidTransitionError("task", "DONE", "IN_PROGRESS"), http.StatusConflict, "InvalidTransition"},
		{errs.NewCapacityExceededError("s1", 1, 1), http.StatusConflict, "CapacityExceeded"},
		{errs.NewConflictError("task", "x"), http.StatusConflict, "Conflict"},
		{errs.NewTransientStoreError("assign task", errors.New("lock timeout")), http.StatusServiceUnavailable, "TransientStoreError"},
		{errors.New("disk on fire"), http.StatusInternalServerError, "Unknown"},
	}
	for _, tc := range cases {
		t.Run(tc.kind, func(t *testing.T) {
			api := newTestAPI(t, httpadapter.Handlers{
				AssignTask: handlerFunc[commands.AssignTaskCommand, *task.Task](
					func(context.Context, commands.AssignTaskCommand) (*task.Task, error) {
						return nil, tc.err
					}),
			})

			path := "/api/v1/tasks/" + kernel.NewUUID().String() + "/assignment"
			rec := api.do(t, http.MethodPost, path, `{}`, access.Operator, kernel.NewUUID())

			assert.Equal(t, tc.status, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, tc.kind, body.Kind)
			assert.Equal(t, tc.status, body.Code)
			if tc.status == http.StatusServiceUnavailable {
				assert.NotEmpty(t, rec.Header().Get(echo.HeaderRetryAfter))
			}
			if tc.status == http.StatusInternalServerError {
				assert.NotContains(t, body.Message, "disk on fire")
			}
		})
	}
}

func TestCreateShipment(t *testing.T) {
	clientID := kernel.NewUUID()
	api := newTestAPI(t, httpadapter.Handlers{
		CreateShipment: handlerFunc[commands.CreateShipmentCommand, *shipment.Shipment](
			func(context.Context, commands.CreateShipmentCommand) (*shipment.Shipment, error) {
				item, err := shipment.NewItem(kernel.NewUUID(), "Mug", "MUG-1", 4, "POLY_BAGGING")
				if err != nil {
					return nil, err
				}
				return shipment.NewShipment(kernel.NewUUID(), clientID, "Shenzhen", "ONT8", "1Z999",
					[]*shipment.Item{item}, time.Now())
			}),
	})

	body := `{"origin":"Shenzhen","destination":"ONT8","trackingNumber":"1Z999",
		"items":[{"productName":"Mug","sku":"MUG-1","quantity":4,"prepType":"poly bagging"}]}`
	rec := api.do(t, http.MethodPost, "/api/v1/shipments", body, access.Client, clientID)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var got httpadapter.ShipmentDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "RECEIVED", got.Status)
	assert.Equal(t, clientID.String(), got.OwnerID.String())
	require.Len(t, got.Items, 1)
	assert.Equal(t, 4, got.Items[0].Quantity)
	assert.Nil(t, got.Order)
}

func TestListInventory_EmptyListEncodesAsArray(t *testing.T) {
	api := newTestAPI(t, httpadapter.Handlers{
		ListInventory: handlerFunc[queries.ListInventoryQuery, []queries.InventoryItem](
			func(context.Context, queries.ListInventoryQuery) ([]queries.InventoryItem, error) {
				return nil, nil
			}),
	})

	rec := api.do(t, http.MethodGet, "/api/v1/client/inventory", "", access.Client, kernel.NewUUID())

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestMarkNotificationRead(t *testing.T) {
	var calls int
	api := newTestAPI(t, httpadapter.Handlers{
		MarkNotificationRead: markReadFunc(func(context.Context, commands.MarkNotificationReadCommand) error {
			calls++
			return nil
		}),
	})

	path := "/api/v1/notifications/" + kernel.NewUUID().String() + "/read"
	rec := api.do(t, http.MethodPost, path, "", access.Client, kernel.NewUUID())

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 1, calls)
}

func TestDirectoryFailureIsRetryable(t *testing.T) {
	api := newTestAPI(t, httpadapter.Handlers{})
	api.directory.err = errs.NewTransientStoreError("touch principal", errors.New("too many connections"))

	rec := api.do(t, http.MethodGet, "/api/v1/notifications", "", access.Client, kernel.NewUUID())

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "1", rec.Header().Get(echo.HeaderRetryAfter))
}

func TestUnknownRouteUnderAPI(t *testing.T) {
	api := newTestAPI(t, httpadapter.Handlers{})

	rec := api.do(t, http.MethodGet, "/api/v1/couriers", "", access.Admin, kernel.NewUUID())

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	api := newTestAPI(t, httpadapter.Handlers{})
	api.do(t, http.MethodGet, "/health", "", access.Unknown, kernel.UUID{})

	rec := api.do(t, http.MethodGet, "/metrics", "", access.Unknown, kernel.UUID{})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `prepcenter_http_requests_total{method="GET",route="/health",status="200"}`)
}

func TestSwaggerDoc(t *testing.T) {
	api := newTestAPI(t, httpadapter.Handlers{})

	rec := api.do(t, http.MethodGet, "/swagger/doc.json", "", access.Unknown, kernel.UUID{})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "TransitionShipment")
}
