package http

import (
	"encoding/json"
	"time"

	"prepcenter/internal/core/application/usecases/commands"
	"prepcenter/internal/core/application/usecases/queries"
	"prepcenter/internal/core/domain/model/crossborder"
	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/core/domain/model/order"
	"prepcenter/internal/core/domain/model/shipment"
	"prepcenter/internal/core/domain/model/station"
	"prepcenter/internal/core/domain/model/task"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Optional tells an absent JSON member apart from an explicit null.
type Optional[T any] struct {
	Set   bool
	Value T
}

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	return json.Unmarshal(b, &o.Value)
}

func toField[T any](o Optional[T]) kernel.Field[T] {
	if !o.Set {
		return kernel.Absent[T]()
	}
	return kernel.Present(o.Value)
}

type Error struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type NewStationRequest struct {
	Name               string              `json:"name"`
	Type               string              `json:"type"`
	Capacity           *int                `json:"capacity"`
	AssignedOperatorID *openapi_types.UUID `json:"assignedOperatorId"`
}

type StationPatchRequest struct {
	Name               Optional[string]              `json:"name"`
	Type               Optional[string]              `json:"type"`
	Status             Optional[string]              `json:"status"`
	Capacity           Optional[int]                 `json:"capacity"`
	AssignedOperatorID Optional[*openapi_types.UUID] `json:"assignedOperatorId"`
}

// Patch converts the request into a station patch. A null assignedOperatorId unbinds
// the operator; an absent one leaves it alone.
func (r StationPatchRequest) Patch() (station.Patch, error) {
	patch := station.Patch{
		Name:     toField(r.Name),
		Type:     toField(r.Type),
		Capacity: toField(r.Capacity),
	}
	if r.Status.Set {
		status, err := station.ParseStatus(r.Status.Value)
		if err != nil {
			return station.Patch{}, err
		}
		patch.Status = kernel.Present(status)
	}
	if r.AssignedOperatorID.Set {
		operatorID, err := optionalKernelID(r.AssignedOperatorID.Value)
		if err != nil {
			return station.Patch{}, err
		}
		patch.AssignedOperatorID = kernel.Present(operatorID)
	}
	return patch, nil
}

type OrderStatusRequest struct {
	Status string `json:"status"`
}

type NewGhanaShipmentRequest struct {
	OwnerID        openapi_types.UUID `json:"ownerId"`
	Origin         string             `json:"origin"`
	Destination    string             `json:"destination"`
	TrackingNumber string             `json:"trackingNumber"`
	WeightGrams    int                `json:"weightGrams"`
}

type NewItemRequest struct {
	ProductName string `json:"productName"`
	SKU         string `json:"sku"`
	Quantity    int    `json:"quantity"`
	PrepType    string `json:"prepType"`
}

type NewShipmentRequest struct {
	OwnerID        *openapi_types.UUID `json:"ownerId"`
	Origin         string              `json:"origin"`
	Destination    string              `json:"destination"`
	TrackingNumber string              `json:"trackingNumber"`
	Items          []NewItemRequest    `json:"items"`
}

func (r NewShipmentRequest) itemInputs() []commands.ItemInput {
	out := make([]commands.ItemInput, len(r.Items))
	for i, item := range r.Items {
		out[i] = commands.ItemInput{
			ProductName: item.ProductName,
			SKU:         item.SKU,
			Quantity:    item.Quantity,
			PrepType:    item.PrepType,
		}
	}
	return out
}

type TransitionRequest struct {
	Status   string `json:"status"`
	Priority string `json:"priority"`
}

type QuantityRequest struct {
	Quantity int `json:"quantity"`
}

type AssignmentRequest struct {
	StationID  *openapi_types.UUID           `json:"stationId"`
	OperatorID Optional[*openapi_types.UUID] `json:"operatorId"`
}

// Operator converts operatorId into a binding: absent keeps the current assignee,
// null unbinds it.
func (r AssignmentRequest) Operator() (kernel.Field[*kernel.UUID], error) {
	if !r.OperatorID.Set {
		return kernel.Absent[*kernel.UUID](), nil
	}
	operatorID, err := optionalKernelID(r.OperatorID.Value)
	if err != nil {
		return kernel.Field[*kernel.UUID]{}, err
	}
	return kernel.Present(operatorID), nil
}

type Client struct {
	ID                  openapi_types.UUID `json:"id"`
	LastSeenAt          time.Time          `json:"lastSeenAt"`
	ShipmentCount       int                `json:"shipmentCount"`
	ActiveShipmentCount int                `json:"activeShipmentCount"`
	OrderCount          int                `json:"orderCount"`
}

type Station struct {
	ID                 openapi_types.UUID  `json:"id"`
	Name               string              `json:"name"`
	Type               string              `json:"type"`
	Status             string              `json:"status"`
	Capacity           int                 `json:"capacity"`
	Load               int                 `json:"load"`
	AssignedOperatorID *openapi_types.UUID `json:"assignedOperatorId"`
}

type Item struct {
	ID          openapi_types.UUID `json:"id"`
	ProductName string             `json:"productName"`
	SKU         string             `json:"sku"`
	Quantity    int                `json:"quantity"`
	PrepType    string             `json:"prepType"`
}

type ShipmentSummary struct {
	ID             openapi_types.UUID `json:"id"`
	OwnerID        openapi_types.UUID `json:"ownerId"`
	Status         string             `json:"status"`
	Origin         string             `json:"origin"`
	Destination    string             `json:"destination"`
	TrackingNumber string             `json:"trackingNumber"`
	ItemCount      int                `json:"itemCount"`
	OpenTasks      int                `json:"openTasks"`
	CreatedAt      time.Time          `json:"createdAt"`
}

type ShipmentDetail struct {
	ID             openapi_types.UUID `json:"id"`
	OwnerID        openapi_types.UUID `json:"ownerId"`
	Status         string             `json:"status"`
	Origin         string             `json:"origin"`
	Destination    string             `json:"destination"`
	TrackingNumber string             `json:"trackingNumber"`
	CreatedAt      time.Time          `json:"createdAt"`
	Items          []Item             `json:"items"`
	Order          *Order             `json:"order"`
}

type Transition struct {
	ShipmentID     openapi_types.UUID   `json:"shipmentId"`
	From           string               `json:"from"`
	To             string               `json:"to"`
	OpenedTasks    []openapi_types.UUID `json:"openedTasks"`
	CancelledTasks []openapi_types.UUID `json:"cancelledTasks"`
	OrderID        *openapi_types.UUID  `json:"orderId"`
}

type Task struct {
	ID           openapi_types.UUID  `json:"id"`
	ShipmentID   openapi_types.UUID  `json:"shipmentId"`
	PrepType     string              `json:"prepType"`
	Stage        string              `json:"stage"`
	StationID    *openapi_types.UUID `json:"stationId"`
	AssignedToID *openapi_types.UUID `json:"assignedToId"`
	Status       string              `json:"status"`
	Priority     string              `json:"priority"`
	CreatedAt    time.Time           `json:"createdAt"`
}

type Completion struct {
	Task       Task        `json:"task"`
	Transition *Transition `json:"transition"`
}

type Order struct {
	ID         openapi_types.UUID  `json:"id"`
	ShipmentID openapi_types.UUID  `json:"shipmentId"`
	OwnerID    *openapi_types.UUID `json:"ownerId,omitempty"`
	Service    string              `json:"service"`
	Status     string              `json:"status"`
	TotalCents int64               `json:"totalCents"`
	Currency   string              `json:"currency"`
	InvoiceID  *openapi_types.UUID `json:"invoiceId"`
	Invoiced   bool                `json:"invoiced"`
	CreatedAt  *time.Time          `json:"createdAt,omitempty"`
}

type Invoice struct {
	ID         openapi_types.UUID  `json:"id"`
	OrderID    openapi_types.UUID  `json:"orderId"`
	ShipmentID *openapi_types.UUID `json:"shipmentId,omitempty"`
	Service    string              `json:"service,omitempty"`
	TotalCents int64               `json:"totalCents,omitempty"`
	Currency   string              `json:"currency,omitempty"`
	CreatedAt  time.Time           `json:"createdAt"`
}

type GhanaShipment struct {
	ID             openapi_types.UUID `json:"id"`
	OwnerID        openapi_types.UUID `json:"ownerId"`
	Origin         string             `json:"origin"`
	Destination    string             `json:"destination"`
	TrackingNumber string             `json:"trackingNumber"`
	WeightGrams    int                `json:"weightGrams"`
	Status         string             `json:"status"`
	CreatedAt      time.Time          `json:"createdAt"`
}

type InventoryItem struct {
	ShipmentID     openapi_types.UUID `json:"shipmentId"`
	ShipmentStatus string             `json:"shipmentStatus"`
	ItemID         openapi_types.UUID `json:"itemId"`
	ProductName    string             `json:"productName"`
	SKU            string             `json:"sku"`
	Quantity       int                `json:"quantity"`
	PrepType       string             `json:"prepType"`
}

type Notification struct {
	ID        openapi_types.UUID `json:"id"`
	Message   string             `json:"message"`
	Read      bool               `json:"read"`
	CreatedAt time.Time          `json:"createdAt"`
}

type Activity struct {
	ID         openapi_types.UUID  `json:"id"`
	UserID     *openapi_types.UUID `json:"userId"`
	Action     string              `json:"action"`
	EntityType string              `json:"entityType"`
	EntityID   *openapi_types.UUID `json:"entityId"`
	Metadata   map[string]any      `json:"metadata"`
	CreatedAt  time.Time           `json:"createdAt"`
}

func kernelID(id openapi_types.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

func optionalKernelID(id *openapi_types.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	out, err := kernelID(*id)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func wireID(id kernel.UUID) openapi_types.UUID {
	return id.Bytes()
}

func optionalWireID(id *kernel.UUID) *openapi_types.UUID {
	if id == nil {
		return nil
	}
	out := id.Bytes()
	return &out
}

func wireIDs(ids []kernel.UUID) []openapi_types.UUID {
	out := make([]openapi_types.UUID, len(ids))
	for i, id := range ids {
		out[i] = id.Bytes()
	}
	return out
}

// mapSlice converts every element; it never returns nil so empty lists encode as [].
func mapSlice[In, Out any](in []In, convert func(In) Out) []Out {
	out := make([]Out, len(in))
	for i, v := range in {
		out[i] = convert(v)
	}
	return out
}

func clientFromView(v queries.ClientSummary) Client {
	return Client{
		ID:                  wireID(v.ID),
		LastSeenAt:          v.LastSeenAt,
		ShipmentCount:       v.ShipmentCount,
		ActiveShipmentCount: v.ActiveShipmentCount,
		OrderCount:          v.OrderCount,
	}
}

func stationFromView(v queries.StationView) Station {
	return Station{
		ID:                 wireID(v.ID),
		Name:               v.Name,
		Type:               string(v.Type),
		Status:             v.Status.String(),
		Capacity:           v.Capacity,
		Load:               v.Load,
		AssignedOperatorID: optionalWireID(v.AssignedOperatorID),
	}
}

func stationFromDomain(s *station.Station, load int) Station {
	return Station{
		ID:                 wireID(s.ID()),
		Name:               s.Name(),
		Type:               string(s.Type()),
		Status:             s.Status().String(),
		Capacity:           s.Capacity(),
		Load:               load,
		AssignedOperatorID: optionalWireID(s.AssignedOperatorID()),
	}
}

func shipmentSummaryFromView(v queries.ShipmentSummary) ShipmentSummary {
	return ShipmentSummary{
		ID:             wireID(v.ID),
		OwnerID:        wireID(v.OwnerID),
		Status:         v.Status.String(),
		Origin:         v.Origin,
		Destination:    v.Destination,
		TrackingNumber: v.TrackingNumber,
		ItemCount:      v.ItemCount,
		OpenTasks:      v.OpenTasks,
		CreatedAt:      v.CreatedAt,
	}
}

func shipmentFromDomain(s *shipment.Shipment) ShipmentDetail {
	return ShipmentDetail{
		ID:             wireID(s.ID()),
		OwnerID:        wireID(s.OwnerID()),
		Status:         s.Status().String(),
		Origin:         s.Origin(),
		Destination:    s.Destination(),
		TrackingNumber: s.TrackingNumber(),
		CreatedAt:      s.CreatedAt(),
		Items: mapSlice(s.Items(), func(it *shipment.Item) Item {
			return Item{
				ID:          wireID(it.ID()),
				ProductName: it.ProductName(),
				SKU:         it.SKU(),
				Quantity:    it.Quantity(),
				PrepType:    string(it.PrepType()),
			}
		}),
	}
}

func shipmentFromView(v *queries.ShipmentDetail) ShipmentDetail {
	out := ShipmentDetail{
		ID:             wireID(v.ID),
		OwnerID:        wireID(v.OwnerID),
		Status:         v.Status.String(),
		Origin:         v.Origin,
		Destination:    v.Destination,
		TrackingNumber: v.TrackingNumber,
		CreatedAt:      v.CreatedAt,
		Items: mapSlice(v.Items, func(it queries.ShipmentItemView) Item {
			return Item{
				ID:          wireID(it.ID),
				ProductName: it.ProductName,
				SKU:         it.SKU,
				Quantity:    it.Quantity,
				PrepType:    string(it.PrepType),
			}
		}),
	}
	if v.Order != nil {
		out.Order = &Order{
			ID:         wireID(v.Order.ID),
			ShipmentID: wireID(v.ID),
			Service:    string(v.Order.Service),
			Status:     v.Order.Status.String(),
			TotalCents: v.Order.TotalCents,
			Currency:   v.Order.Currency,
			Invoiced:   v.Order.Invoiced,
		}
	}
	return out
}

func transitionFromResult(r commands.TransitionResult) Transition {
	return Transition{
		ShipmentID:     wireID(r.ShipmentID),
		From:           r.From.String(),
		To:             r.To.String(),
		OpenedTasks:    wireIDs(r.OpenedTasks),
		CancelledTasks: wireIDs(r.CancelledTasks),
		OrderID:        optionalWireID(r.OrderID),
	}
}

func taskFromDomain(t *task.Task) Task {
	return Task{
		ID:           wireID(t.ID()),
		ShipmentID:   wireID(t.ShipmentID()),
		PrepType:     string(t.PrepType()),
		Stage:        t.Stage().String(),
		StationID:    optionalWireID(t.StationID()),
		AssignedToID: optionalWireID(t.AssignedToID()),
		Status:       t.Status().String(),
		Priority:     t.Priority().String(),
		CreatedAt:    t.CreatedAt(),
	}
}

func taskFromView(v queries.TaskView) Task {
	return Task{
		ID:           wireID(v.ID),
		ShipmentID:   wireID(v.ShipmentID),
		PrepType:     string(v.PrepType),
		Stage:        v.Stage.String(),
		StationID:    optionalWireID(v.StationID),
		AssignedToID: optionalWireID(v.AssignedToID),
		Status:       v.Status.String(),
		Priority:     v.Priority.String(),
		CreatedAt:    v.CreatedAt,
	}
}

func orderFromDomain(o *order.Order) Order {
	createdAt := o.CreatedAt()
	return Order{
		ID:         wireID(o.ID()),
		ShipmentID: wireID(o.ShipmentID()),
		Service:    string(o.Service()),
		Status:     o.Status().String(),
		TotalCents: o.Total().Cents(),
		Currency:   o.Total().Currency(),
		InvoiceID:  optionalWireID(o.InvoiceID()),
		Invoiced:   o.IsInvoiced(),
		CreatedAt:  &createdAt,
	}
}

func orderFromView(v queries.OrderView) Order {
	ownerID := wireID(v.OwnerID)
	createdAt := v.CreatedAt
	return Order{
		ID:         wireID(v.ID),
		ShipmentID: wireID(v.ShipmentID),
		OwnerID:    &ownerID,
		Service:    string(v.Service),
		Status:     v.Status.String(),
		TotalCents: v.TotalCents,
		Currency:   v.Currency,
		InvoiceID:  optionalWireID(v.InvoiceID),
		Invoiced:   v.InvoiceID != nil,
		CreatedAt:  &createdAt,
	}
}

func invoiceFromDomain(inv *order.Invoice) Invoice {
	return Invoice{
		ID:        wireID(inv.ID()),
		OrderID:   wireID(inv.OrderID()),
		CreatedAt: inv.CreatedAt(),
	}
}

func invoiceFromView(v queries.InvoiceView) Invoice {
	return Invoice{
		ID:         wireID(v.ID),
		OrderID:    wireID(v.OrderID),
		ShipmentID: optionalWireID(&v.ShipmentID),
		Service:    string(v.Service),
		TotalCents: v.TotalCents,
		Currency:   v.Currency,
		CreatedAt:  v.CreatedAt,
	}
}

func ghanaShipmentFromDomain(s *crossborder.Shipment) GhanaShipment {
	return GhanaShipment{
		ID:             wireID(s.ID()),
		OwnerID:        wireID(s.OwnerID()),
		Origin:         s.Origin(),
		Destination:    s.Destination(),
		TrackingNumber: s.TrackingNumber(),
		WeightGrams:    s.WeightGrams(),
		Status:         s.Status().String(),
		CreatedAt:      s.CreatedAt(),
	}
}

func ghanaShipmentFromView(v queries.CrossBorderShipmentView) GhanaShipment {
	return GhanaShipment{
		ID:             wireID(v.ID),
		OwnerID:        wireID(v.OwnerID),
		Origin:         v.Origin,
		Destination:    v.Destination,
		TrackingNumber: v.TrackingNumber,
		WeightGrams:    v.WeightGrams,
		Status:         v.Status.String(),
		CreatedAt:      v.CreatedAt,
	}
}

func inventoryFromView(v queries.InventoryItem) InventoryItem {
	return InventoryItem{
		ShipmentID:     wireID(v.ShipmentID),
		ShipmentStatus: v.ShipmentStatus.String(),
		ItemID:         wireID(v.ItemID),
		ProductName:    v.ProductName,
		SKU:            v.SKU,
		Quantity:       v.Quantity,
		PrepType:       string(v.PrepType),
	}
}

func notificationFromView(v queries.NotificationView) Notification {
	return Notification{
		ID:        wireID(v.ID),
		Message:   v.Message,
		Read:      v.Read,
		CreatedAt: v.CreatedAt,
	}
}

func activityFromView(v queries.ActivityView) Activity {
	return Activity{
		ID:         wireID(v.ID),
		UserID:     optionalWireID(v.UserID),
		Action:     v.Action,
		EntityType: v.EntityType,
		EntityID:   optionalWireID(v.EntityID),
		Metadata:   v.Metadata,
		CreatedAt:  v.CreatedAt,
	}
}
