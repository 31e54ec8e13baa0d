// Package queries contains the read side of the engine. Handlers read the record store
// directly with SQL and return read models; every query carries the calling principal
// and enforces its role scope before touching the store.
package queries

import (
	"errors"
	"time"

	"prepcenter/internal/core/domain/model/access"
	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/core/domain/model/shipment"
	"prepcenter/internal/core/domain/model/task"
	"prepcenter/internal/pkg/guard"
)

var ErrListTasksQueryIsNotConstructed = errors.New(
	"ListTasksQuery must be created via NewListTasksQuery constructor",
)

// ListTasksQuery lists tasks for an operator (only tasks assigned to them) or an
// admin (all tasks), optionally filtered by status and priority.
//
// Example:
//
//	query, err := NewListTasksQuery(principal, &inProgress, nil)
//	if err != nil {
//	    return err
//	}
//	tasks, err := handler.Handle(ctx, query)
type ListTasksQuery struct {
	actor    access.Principal
	status   *task.Status
	priority *task.Priority

	guard guard.ConstructorGuard
}

// NewListTasksQuery rejects clients. Nil filters match every value.
func NewListTasksQuery(actor access.Principal, status *task.Status, priority *task.Priority) (ListTasksQuery, error) {
	if err := access.Require(actor, "list tasks", access.Operator, access.Admin); err != nil {
		return ListTasksQuery{}, err
	}
	if status != nil {
		if err := status.Validate(); err != nil {
			return ListTasksQuery{}, err
		}
	}
	if priority != nil {
		if err := priority.Validate(); err != nil {
			return ListTasksQuery{}, err
		}
	}
	return ListTasksQuery{actor: actor, status: status, priority: priority, guard: guard.NewConstructorGuard()}, nil
}

func (q ListTasksQuery) Validate() error {
	return q.guard.Validate(ErrListTasksQueryIsNotConstructed)
}

// TaskView is a task in the read model.
type TaskView struct {
	ID           kernel.UUID
	ShipmentID   kernel.UUID
	PrepType     shipment.PrepType
	Stage        shipment.Status
	StationID    *kernel.UUID
	AssignedToID *kernel.UUID
	Status       task.Status
	Priority     task.Priority
	CreatedAt    time.Time
}
