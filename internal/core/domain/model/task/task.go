package task

import (
	"errors"
	"fmt"
	"time"

	"prepcenter/internal/core/domain/model/access"
	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/core/domain/model/shipment"
	"prepcenter/internal/pkg/errs"
	"prepcenter/internal/pkg/guard"
)

// ErrTaskIsNotConstructed is returned for tasks not built through NewTask or RestoreTask.
var ErrTaskIsNotConstructed = errors.New("Task must be created via NewTask constructor")

// Task is one unit of prep work tied to a shipment, routed to a station and operator.
//
// Business rules:
//   - a task is opened by the scheduler only, PENDING and unbound
//   - stage is the shipment status that opened it, INSPECTING or PREPPING
//   - IN_PROGRESS exactly when an operator is bound
//   - DONE and CANCELLED are final
type Task struct {
	id           kernel.UUID
	shipmentID   kernel.UUID
	prepType     shipment.PrepType
	stage        shipment.Status
	stationID    *kernel.UUID
	assignedToID *kernel.UUID
	status       Status
	priority     Priority
	createdAt    time.Time
	guard        guard.ConstructorGuard
}

// NewTask opens a PENDING, unbound task for one prep type of a shipment.
func NewTask(
	id kernel.UUID,
	shipmentID kernel.UUID,
	prepType shipment.PrepType,
	stage shipment.Status,
	priority Priority,
	createdAt time.Time,
) (*Task, error) {
	return RestoreTask(id, shipmentID, prepType, stage, nil, nil, Pending, priority, createdAt)
}

// RestoreTask rebuilds a task read from the record store.
func RestoreTask(
	id kernel.UUID,
	shipmentID kernel.UUID,
	prepType shipment.PrepType,
	stage shipment.Status,
	stationID *kernel.UUID,
	assignedToID *kernel.UUID,
	status Status,
	priority Priority,
	createdAt time.Time,
) (*Task, error) {
	t := &Task{guard: guard.NewConstructorGuard()}
	if err := errors.Join(
		t.setID(id),
		t.setShipmentID(shipmentID),
		t.setPrepType(prepType),
		t.setStage(stage),
		t.setStatus(status),
		t.setPriority(priority),
		t.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}
	t.stationID = stationID
	t.assignedToID = assignedToID
	return t, nil
}

func (t *Task) Validate() error {
	if t == nil {
		return ErrTaskIsNotConstructed
	}
	return t.guard.Validate(ErrTaskIsNotConstructed)
}

func (t *Task) ID() kernel.UUID               { return t.id }
func (t *Task) ShipmentID() kernel.UUID       { return t.shipmentID }
func (t *Task) PrepType() shipment.PrepType   { return t.prepType }
func (t *Task) Stage() shipment.Status        { return t.stage }
func (t *Task) StationID() *kernel.UUID       { return t.stationID }
func (t *Task) AssignedToID() *kernel.UUID    { return t.assignedToID }
func (t *Task) Status() Status                { return t.status }
func (t *Task) Priority() Priority            { return t.priority }
func (t *Task) CreatedAt() time.Time          { return t.createdAt }
func (t *Task) IsOpen() bool                  { return t.status.IsOpen() }
func (t *Task) IsBoundTo(id kernel.UUID) bool { return t.stationID != nil && t.stationID.IsEqual(id) }

// AuthorizeAssign checks that actor may apply the operator binding to the task.
// Admins may bind, keep or clear anyone; operators may only claim unclaimed work for
// themselves, naming themselves explicitly.
func (t *Task) AuthorizeAssign(operator kernel.Field[*kernel.UUID], actor access.Principal) error {
	const action = "assign task"
	if err := access.Require(actor, action, access.Operator, access.Admin); err != nil {
		return err
	}
	if actor.Role() == access.Admin {
		return nil
	}
	operatorID, _ := operator.Value()
	if operatorID == nil || !actor.Is(*operatorID) {
		return errs.NewForbiddenError(action, "operators may only assign tasks to themselves")
	}
	if t.assignedToID != nil && !actor.Is(*t.assignedToID) {
		return errs.NewForbiddenError(action, "task is already claimed by another operator")
	}
	return nil
}

// Assign binds the task to a station. The station's capacity must have been checked
// by the caller. An absent operator keeps the current assignee, a present nil clears
// it, a present id binds it. The task is IN_PROGRESS exactly while an operator is bound.
func (t *Task) Assign(stationID kernel.UUID, operator kernel.Field[*kernel.UUID], actor access.Principal) error {
	if err := t.AuthorizeAssign(operator, actor); err != nil {
		return err
	}
	if !t.IsOpen() {
		return errs.NewInvalidTransitionError("task", t.status.String(), InProgress.String())
	}
	if err := stationID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("stationId", err)
	}
	t.stationID = &stationID
	if operatorID, ok := operator.Value(); ok {
		t.assignedToID = operatorID
	}
	if t.assignedToID != nil {
		t.status = InProgress
	} else {
		t.status = Pending
	}
	return nil
}

// Complete closes the task as DONE. Only the assignee or an admin may complete it.
func (t *Task) Complete(actor access.Principal) error {
	if err := access.RequireSelfOr(actor, "complete task", t.assignedToID, access.Admin); err != nil {
		return err
	}
	if !t.IsOpen() {
		return errs.NewInvalidTransitionError("task", t.status.String(), Done.String())
	}
	t.status = Done
	return nil
}

// Cancel closes an open task as CANCELLED, releasing its station slot.
func (t *Task) Cancel() error {
	if !t.IsOpen() {
		return errs.NewInvalidTransitionError("task", t.status.String(), Cancelled.String())
	}
	t.status = Cancelled
	return nil
}

func (t *Task) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Task) setShipmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("shipmentId", err)
	}
	t.shipmentID = id
	return nil
}

func (t *Task) setPrepType(prepType shipment.PrepType) error {
	if prepType == "" {
		return errs.NewValueIsRequiredError("prepType")
	}
	t.prepType = prepType
	return nil
}

func (t *Task) setStage(stage shipment.Status) error {
	if !stage.OpensTasks() {
		return errs.NewValueIsInvalidErrorWithCause("stage", fmt.Errorf("%s does not open tasks", stage))
	}
	t.stage = stage
	return nil
}

func (t *Task) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	t.status = status
	return nil
}

func (t *Task) setPriority(priority Priority) error {
	if err := priority.Validate(); err != nil {
		return err
	}
	t.priority = priority
	return nil
}

func (t *Task) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	t.createdAt = createdAt.UTC()
	return nil
}
