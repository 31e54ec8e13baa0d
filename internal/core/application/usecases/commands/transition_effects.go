package commands

import (
	"context"
	"fmt"
	"time"

	"prepcenter/internal/core/domain/model/activity"
	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/core/domain/model/order"
	"prepcenter/internal/core/domain/model/shipment"
	"prepcenter/internal/core/domain/model/task"
	"prepcenter/internal/core/domain/services"
	"prepcenter/internal/core/ports"
	"prepcenter/internal/pkg/metrics"
)

// TransitionResult describes a committed shipment transition and what it caused.
type TransitionResult struct {
	ShipmentID     kernel.UUID
	From           shipment.Status
	To             shipment.Status
	OpenedTasks    []kernel.UUID
	CancelledTasks []kernel.UUID
	OrderID        *kernel.UUID
}

var ownerNotices = map[shipment.Status]string{
	shipment.Inspecting:  "Your shipment %s has arrived and is being inspected.",
	shipment.ReadyToShip: "Your shipment %s is prepped and ready to ship.",
	shipment.Shipped:     "Your shipment %s has shipped.",
}

// applyTransition persists an accepted transition and carries out its side effects
// inside the caller's unit of work. The caller must hold the shipment row lock.
func applyTransition(
	ctx context.Context,
	uow UoW,
	pricing ports.Pricing,
	s *shipment.Shipment,
	change shipment.Change,
	priority task.Priority,
	trail *auditTrail,
) (TransitionResult, error) {
	result := TransitionResult{ShipmentID: s.ID(), From: change.From, To: change.To}
	if err := uow.ShipmentRepository().Update(ctx, s); err != nil {
		return result, err
	}
	trail.add(activity.ActionStatusChanged, activity.EntityShipment, s.ID(), map[string]any{
		"from": change.From.String(),
		"to":   change.To.String(),
	})

	now := time.Now()
	tasks := uow.TaskRepository()

	if change.To.OpensTasks() {
		planned, err := services.NewTaskPlanner().Plan(s, priority, now)
		if err != nil {
			return result, err
		}
		for _, t := range planned {
			if err = tasks.Add(ctx, t); err != nil {
				return result, err
			}
			result.OpenedTasks = append(result.OpenedTasks, t.ID())
			trail.add(activity.ActionTaskOpened, activity.EntityTask, t.ID(), map[string]any{
				"shipmentId": s.ID().String(),
				"prepType":   t.PrepType().String(),
				"stage":      t.Stage().String(),
			})
		}
	}

	if change.To == shipment.Cancelled {
		open, err := tasks.ListOpenByShipmentForUpdate(ctx, s.ID())
		if err != nil {
			return result, err
		}
		for _, t := range open {
			if err = t.Cancel(); err != nil {
				return result, err
			}
			if err = tasks.Update(ctx, t); err != nil {
				return result, err
			}
			result.CancelledTasks = append(result.CancelledTasks, t.ID())
			trail.add(activity.ActionTaskCancelled, activity.EntityTask, t.ID(), nil)
		}
	}

	if change.To.NotifiesOwner() {
		message := fmt.Sprintf(ownerNotices[change.To], s.TrackingLabel())
		n, err := activity.NewNotification(kernel.NewUUID(), s.OwnerID(), message, now)
		if err != nil {
			return result, err
		}
		if err = uow.NotificationRepository().Add(ctx, n); err != nil {
			return result, err
		}
	}

	if change.To.IsBillable() {
		o, created, err := ensureOrder(ctx, uow.OrderRepository(), pricing, s)
		if err != nil {
			return result, err
		}
		id := o.ID()
		result.OrderID = &id
		if created {
			trail.add(activity.ActionOrderCreated, activity.EntityOrder, o.ID(), orderMetadata(o))
		}
	}

	return result, nil
}

// observeTransition updates the counters of a committed transition.
func observeTransition(result TransitionResult) {
	metrics.ShipmentTransitionsTotal.WithLabelValues(result.From.String(), result.To.String()).Inc()
	if len(result.OpenedTasks) > 0 {
		metrics.TasksOpenedTotal.WithLabelValues(result.To.String()).Add(float64(len(result.OpenedTasks)))
	}
}

// ensureOrder returns the shipment's order, creating it when absent. The caller must
// hold the shipment row lock, which serializes concurrent callers; the unique index on
// orders.shipment_id rejects anything that slips past it.
func ensureOrder(
	ctx context.Context,
	orders ports.OrderRepository,
	pricing ports.Pricing,
	s *shipment.Shipment,
) (*order.Order, bool, error) {
	existing, err := orders.FindByShipment(ctx, s.ID())
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	service := s.DominantPrepType()
	total, err := pricing.Quote(ctx, service, s.ItemCount())
	if err != nil {
		return nil, false, err
	}
	o, err := order.NewOrder(kernel.NewUUID(), s.ID(), service, total, time.Now())
	if err != nil {
		return nil, false, err
	}
	if err = orders.Add(ctx, o); err != nil {
		return nil, false, err
	}
	metrics.OrdersCreatedTotal.Inc()
	return o, true, nil
}

func orderMetadata(o *order.Order) map[string]any {
	return map[string]any{
		"shipmentId":  o.ShipmentID().String(),
		"service":     o.Service().String(),
		"totalCents":  o.Total().Cents(),
		"currency":    o.Total().Currency(),
		"orderStatus": o.Status().String(),
	}
}
