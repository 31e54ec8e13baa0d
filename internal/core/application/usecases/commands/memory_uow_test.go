package commands_test

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"sync"

	"prepcenter/internal/core/application/usecases/commands"
	"prepcenter/internal/core/domain/model/access"
	"prepcenter/internal/core/domain/model/activity"
	"prepcenter/internal/core/domain/model/crossborder"
	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/core/domain/model/order"
	"prepcenter/internal/core/domain/model/shipment"
	"prepcenter/internal/core/domain/model/station"
	"prepcenter/internal/core/domain/model/task"
	"prepcenter/internal/core/ports"
	"prepcenter/internal/pkg/errs"
)

var errNoTransaction = errors.New("no active transaction")

// memState is a snapshot of every table. Aggregates are cloned on the way in and out,
// so a rolled back transaction leaves no trace.
type memState struct {
	shipments     map[kernel.UUID]*shipment.Shipment
	tasks         map[kernel.UUID]*task.Task
	stations      map[kernel.UUID]*station.Station
	orders        map[kernel.UUID]*order.Order
	invoices      map[kernel.UUID]*order.Invoice
	notifications map[kernel.UUID]*activity.Notification
	crossBorder   map[kernel.UUID]*crossborder.Shipment
	principals    map[kernel.UUID]access.Role
}

func newMemState() memState {
	return memState{
		shipments:     map[kernel.UUID]*shipment.Shipment{},
		tasks:         map[kernel.UUID]*task.Task{},
		stations:      map[kernel.UUID]*station.Station{},
		orders:        map[kernel.UUID]*order.Order{},
		invoices:      map[kernel.UUID]*order.Invoice{},
		notifications: map[kernel.UUID]*activity.Notification{},
		crossBorder:   map[kernel.UUID]*crossborder.Shipment{},
		principals:    map[kernel.UUID]access.Role{},
	}
}

func (s memState) clone() memState {
	c := newMemState()
	for k, v := range s.shipments {
		c.shipments[k] = v
	}
	for k, v := range s.tasks {
		c.tasks[k] = v
	}
	for k, v := range s.stations {
		c.stations[k] = v
	}
	for k, v := range s.orders {
		c.orders[k] = v
	}
	for k, v := range s.invoices {
		c.invoices[k] = v
	}
	for k, v := range s.notifications {
		c.notifications[k] = v
	}
	for k, v := range s.crossBorder {
		c.crossBorder[k] = v
	}
	for k, v := range s.principals {
		c.principals[k] = v
	}
	return c
}

// memStore runs one transaction at a time, which stands in for row locks.
type memStore struct {
	mu    sync.Mutex
	state memState

	readMu sync.Mutex
}

func newMemStore() *memStore {
	return &memStore{state: newMemState()}
}

// snapshot returns the committed state for assertions.
func (s *memStore) snapshot() memState {
	s.readMu.Lock()
	defer s.readMu.Unlock()
	return s.state.clone()
}

func (s *memStore) touch(p access.Principal) {
	s.readMu.Lock()
	defer s.readMu.Unlock()
	s.state.principals[p.ID()] = p.Role()
}

func (s *memStore) tasksOf(shipmentID kernel.UUID) []*task.Task {
	var out []*task.Task
	for _, t := range s.snapshot().tasks {
		if t.ShipmentID().IsEqual(shipmentID) {
			out = append(out, t)
		}
	}
	slices.SortFunc(out, func(a, b *task.Task) int {
		if c := cmp.Compare(a.Stage(), b.Stage()); c != 0 {
			return c
		}
		return cmp.Compare(a.PrepType(), b.PrepType())
	})
	return out
}

func (s *memStore) ordersOf(shipmentID kernel.UUID) []*order.Order {
	var out []*order.Order
	for _, o := range s.snapshot().orders {
		if o.ShipmentID().IsEqual(shipmentID) {
			out = append(out, o)
		}
	}
	return out
}

func (s *memStore) notificationsOf(userID kernel.UUID) []*activity.Notification {
	var out []*activity.Notification
	for _, n := range s.snapshot().notifications {
		if n.UserID().IsEqual(userID) {
			out = append(out, n)
		}
	}
	return out
}

type memUoW struct {
	store *memStore
	tx    *memState
}

func (u *memUoW) Begin(_ context.Context) error {
	u.store.mu.Lock()
	u.store.readMu.Lock()
	tx := u.store.state.clone()
	u.store.readMu.Unlock()
	u.tx = &tx
	return nil
}

func (u *memUoW) Commit(_ context.Context) error {
	if u.tx == nil {
		return errNoTransaction
	}
	u.store.readMu.Lock()
	u.store.state = *u.tx
	u.store.readMu.Unlock()
	u.tx = nil
	u.store.mu.Unlock()
	return nil
}

func (u *memUoW) Rollback(_ context.Context) error {
	if u.tx == nil {
		return nil
	}
	u.tx = nil
	u.store.mu.Unlock()
	return nil
}

func (u *memUoW) ShipmentRepository() ports.ShipmentRepository         { return memShipments{u} }
func (u *memUoW) TaskRepository() ports.TaskRepository                 { return memTasks{u} }
func (u *memUoW) StationRepository() ports.StationRepository           { return memStations{u} }
func (u *memUoW) OrderRepository() ports.OrderRepository               { return memOrders{u} }
func (u *memUoW) NotificationRepository() ports.NotificationRepository { return memNotifications{u} }
func (u *memUoW) CrossBorderRepository() ports.CrossBorderRepository   { return memCrossBorder{u} }
func (u *memUoW) PrincipalDirectory() ports.PrincipalDirectory         { return memDirectory{u} }

func (u *memUoW) state() (*memState, error) {
	if u.tx == nil {
		return nil, errNoTransaction
	}
	return u.tx, nil
}

type (
	memUoWFactory             struct{ store *memStore }
	memStationUoWFactory      struct{ store *memStore }
	memOrderUoWFactory        struct{ store *memStore }
	memNotificationUoWFactory struct{ store *memStore }
	memCrossBorderUoWFactory  struct{ store *memStore }
)

func (f memUoWFactory) Create() commands.UoW                         { return &memUoW{store: f.store} }
func (f memStationUoWFactory) Create() commands.StationUoW           { return &memUoW{store: f.store} }
func (f memOrderUoWFactory) Create() commands.OrderUoW               { return &memUoW{store: f.store} }
func (f memNotificationUoWFactory) Create() commands.NotificationUoW { return &memUoW{store: f.store} }
func (f memCrossBorderUoWFactory) Create() commands.CrossBorderUoW   { return &memUoW{store: f.store} }

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func copyID(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}

func cloneShipment(s *shipment.Shipment) *shipment.Shipment {
	items := make([]*shipment.Item, 0, len(s.Items()))
	for _, it := range s.Items() {
		items = append(items, must(shipment.NewItem(it.ID(), it.ProductName(), it.SKU(), it.Quantity(), it.PrepType())))
	}
	return must(shipment.RestoreShipment(s.ID(), s.OwnerID(), s.Status(), s.Origin(), s.Destination(),
		s.TrackingNumber(), items, s.CreatedAt()))
}

func cloneTask(t *task.Task) *task.Task {
	return must(task.RestoreTask(t.ID(), t.ShipmentID(), t.PrepType(), t.Stage(), copyID(t.StationID()),
		copyID(t.AssignedToID()), t.Status(), t.Priority(), t.CreatedAt()))
}

func cloneStation(s *station.Station) *station.Station {
	return must(station.RestoreStation(s.ID(), s.Name(), s.Type(), s.Status(), s.Capacity(),
		copyID(s.AssignedOperatorID())))
}

func cloneOrder(o *order.Order) *order.Order {
	return must(order.RestoreOrder(o.ID(), o.ShipmentID(), o.Service(), o.Status(), o.Total(),
		copyID(o.InvoiceID()), o.CreatedAt()))
}

func cloneNotification(n *activity.Notification) *activity.Notification {
	return must(activity.RestoreNotification(n.ID(), n.UserID(), n.Message(), n.IsRead(), n.CreatedAt()))
}

type memShipments struct{ u *memUoW }

func (r memShipments) Add(_ context.Context, s *shipment.Shipment) error {
	st, err := r.u.state()
	if err != nil {
		return err
	}
	if _, ok := st.shipments[s.ID()]; ok {
		return errs.NewConflictError("shipment", s.ID().String())
	}
	st.shipments[s.ID()] = cloneShipment(s)
	return nil
}

func (r memShipments) Update(_ context.Context, s *shipment.Shipment) error {
	st, err := r.u.state()
	if err != nil {
		return err
	}
	st.shipments[s.ID()] = cloneShipment(s)
	return nil
}

func (r memShipments) Get(_ context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	st, err := r.u.state()
	if err != nil {
		return nil, err
	}
	s, ok := st.shipments[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("shipment", id.String())
	}
	return cloneShipment(s), nil
}

func (r memShipments) GetForUpdate(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	return r.Get(ctx, id)
}

type memTasks struct{ u *memUoW }

func (r memTasks) Add(_ context.Context, t *task.Task) error {
	st, err := r.u.state()
	if err != nil {
		return err
	}
	st.tasks[t.ID()] = cloneTask(t)
	return nil
}

func (r memTasks) Update(_ context.Context, t *task.Task) error {
	st, err := r.u.state()
	if err != nil {
		return err
	}
	st.tasks[t.ID()] = cloneTask(t)
	return nil
}

func (r memTasks) Get(_ context.Context, id kernel.UUID) (*task.Task, error) {
	st, err := r.u.state()
	if err != nil {
		return nil, err
	}
	t, ok := st.tasks[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("task", id.String())
	}
	return cloneTask(t), nil
}

func (r memTasks) GetForUpdate(ctx context.Context, id kernel.UUID) (*task.Task, error) {
	return r.Get(ctx, id)
}

func (r memTasks) ListOpenByShipmentForUpdate(_ context.Context, shipmentID kernel.UUID) ([]*task.Task, error) {
	st, err := r.u.state()
	if err != nil {
		return nil, err
	}
	var out []*task.Task
	for _, t := range st.tasks {
		if t.ShipmentID().IsEqual(shipmentID) && t.IsOpen() {
			out = append(out, cloneTask(t))
		}
	}
	slices.SortFunc(out, func(a, b *task.Task) int {
		if a.ID().Less(b.ID()) {
			return -1
		}
		return 1
	})
	return out, nil
}

func (r memTasks) CountOpenByStage(_ context.Context, shipmentID kernel.UUID, stage shipment.Status) (int, error) {
	st, err := r.u.state()
	if err != nil {
		return 0, err
	}
	n := 0
	for _, t := range st.tasks {
		if t.ShipmentID().IsEqual(shipmentID) && t.Stage() == stage && t.IsOpen() {
			n++
		}
	}
	return n, nil
}

type memStations struct{ u *memUoW }

func (r memStations) Add(_ context.Context, s *station.Station) error {
	st, err := r.u.state()
	if err != nil {
		return err
	}
	st.stations[s.ID()] = cloneStation(s)
	return nil
}

func (r memStations) Update(_ context.Context, s *station.Station) error {
	st, err := r.u.state()
	if err != nil {
		return err
	}
	st.stations[s.ID()] = cloneStation(s)
	return nil
}

func (r memStations) Get(_ context.Context, id kernel.UUID) (*station.Station, error) {
	st, err := r.u.state()
	if err != nil {
		return nil, err
	}
	s, ok := st.stations[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("station", id.String())
	}
	return cloneStation(s), nil
}

func (r memStations) GetForUpdate(ctx context.Context, id kernel.UUID) (*station.Station, error) {
	return r.Get(ctx, id)
}

func (r memStations) ListEligibleForUpdate(_ context.Context, prepType shipment.PrepType) ([]*station.Station, error) {
	st, err := r.u.state()
	if err != nil {
		return nil, err
	}
	var out []*station.Station
	for _, s := range st.stations {
		if s.Status() == station.Active && s.Accepts(prepType) {
			out = append(out, cloneStation(s))
		}
	}
	slices.SortFunc(out, func(a, b *station.Station) int {
		if a.ID().Less(b.ID()) {
			return -1
		}
		return 1
	})
	return out, nil
}

func (r memStations) ActiveLoad(_ context.Context, stationID kernel.UUID, excludeTaskID *kernel.UUID) (int, error) {
	st, err := r.u.state()
	if err != nil {
		return 0, err
	}
	n := 0
	for _, t := range st.tasks {
		if excludeTaskID != nil && t.ID().IsEqual(*excludeTaskID) {
			continue
		}
		if t.IsOpen() && t.IsBoundTo(stationID) {
			n++
		}
	}
	return n, nil
}

type memOrders struct{ u *memUoW }

func (r memOrders) Add(_ context.Context, o *order.Order) error {
	st, err := r.u.state()
	if err != nil {
		return err
	}
	for _, existing := range st.orders {
		if existing.ShipmentID().IsEqual(o.ShipmentID()) {
			return errs.NewConflictError("order for shipment", o.ShipmentID().String())
		}
	}
	st.orders[o.ID()] = cloneOrder(o)
	return nil
}

func (r memOrders) Update(_ context.Context, o *order.Order) error {
	st, err := r.u.state()
	if err != nil {
		return err
	}
	st.orders[o.ID()] = cloneOrder(o)
	return nil
}

func (r memOrders) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	st, err := r.u.state()
	if err != nil {
		return nil, err
	}
	o, ok := st.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return cloneOrder(o), nil
}

func (r memOrders) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.Get(ctx, id)
}

func (r memOrders) FindByShipment(_ context.Context, shipmentID kernel.UUID) (*order.Order, error) {
	st, err := r.u.state()
	if err != nil {
		return nil, err
	}
	for _, o := range st.orders {
		if o.ShipmentID().IsEqual(shipmentID) {
			return cloneOrder(o), nil
		}
	}
	return nil, nil
}

func (r memOrders) AddInvoice(_ context.Context, inv *order.Invoice) error {
	st, err := r.u.state()
	if err != nil {
		return err
	}
	if _, ok := st.invoices[inv.OrderID()]; ok {
		return errs.NewConflictError("invoice for order", inv.OrderID().String())
	}
	st.invoices[inv.OrderID()] = inv
	return nil
}

type memNotifications struct{ u *memUoW }

func (r memNotifications) Add(_ context.Context, n *activity.Notification) error {
	st, err := r.u.state()
	if err != nil {
		return err
	}
	st.notifications[n.ID()] = cloneNotification(n)
	return nil
}

func (r memNotifications) FindForUser(_ context.Context, id, userID kernel.UUID) (*activity.Notification, error) {
	st, err := r.u.state()
	if err != nil {
		return nil, err
	}
	n, ok := st.notifications[id]
	if !ok || !n.UserID().IsEqual(userID) {
		return nil, nil
	}
	return cloneNotification(n), nil
}

func (r memNotifications) Update(_ context.Context, n *activity.Notification) error {
	st, err := r.u.state()
	if err != nil {
		return err
	}
	st.notifications[n.ID()] = cloneNotification(n)
	return nil
}

type memCrossBorder struct{ u *memUoW }

func (r memCrossBorder) Add(_ context.Context, s *crossborder.Shipment) error {
	st, err := r.u.state()
	if err != nil {
		return err
	}
	st.crossBorder[s.ID()] = s
	return nil
}

type memDirectory struct{ u *memUoW }

func (r memDirectory) Touch(_ context.Context, p access.Principal) error {
	st, err := r.u.state()
	if err != nil {
		return err
	}
	st.principals[p.ID()] = p.Role()
	return nil
}

func (r memDirectory) RoleOf(_ context.Context, userID kernel.UUID) (access.Role, error) {
	st, err := r.u.state()
	if err != nil {
		return access.Unknown, err
	}
	role, ok := st.principals[userID]
	if !ok {
		return access.Unknown, errs.NewObjectNotFoundError("principal", userID.String())
	}
	return role, nil
}

// memRecorder keeps recorded audit entries.
type memRecorder struct {
	mu      sync.Mutex
	entries []activity.Entry
}

func (r *memRecorder) Record(_ context.Context, entries ...activity.Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entries...)
}

func (r *memRecorder) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.Action())
	}
	return out
}

func (r *memRecorder) count(action string) int {
	n := 0
	for _, a := range r.actions() {
		if a == action {
			n++
		}
	}
	return n
}

// flatPricing charges a fixed amount per unit.
type flatPricing struct {
	centsPerUnit int64
}

func (p flatPricing) Quote(_ context.Context, _ shipment.PrepType, units int) (kernel.Money, error) {
	return kernel.NewMoney(p.centsPerUnit*int64(units), "USD")
}
