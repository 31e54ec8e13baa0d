package commands

import (
	"errors"

	"prepcenter/internal/core/domain/model/access"
	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/pkg/guard"
)

var ErrAssignTaskCommandIsNotConstructed = errors.New(
	"AssignTaskCommand must be created via NewAssignTaskCommand constructor",
)

// AssignTaskCommand binds a task to a station and optionally an operator.
// A nil stationID lets the dispatcher pick the eligible station with the most free
// slots. Calling it on an already bound task reassigns it; an absent operator keeps
// the current assignee and a present nil one unbinds it.
type AssignTaskCommand struct { //nolint:recvcheck //using for validation
	actor     access.Principal
	taskID    kernel.UUID
	stationID *kernel.UUID
	operator  kernel.Field[*kernel.UUID]

	guard guard.ConstructorGuard
}

func NewAssignTaskCommand(
	actor access.Principal,
	taskID kernel.UUID,
	stationID *kernel.UUID,
	operator kernel.Field[*kernel.UUID],
) (AssignTaskCommand, error) {
	if err := access.Require(actor, "assign task", access.Operator, access.Admin); err != nil {
		return AssignTaskCommand{}, err
	}
	if err := taskID.Validate(); err != nil {
		return AssignTaskCommand{}, err
	}
	return AssignTaskCommand{
		actor:     actor,
		taskID:    taskID,
		stationID: stationID,
		operator:  operator,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c AssignTaskCommand) Validate() error {
	return c.guard.Validate(ErrAssignTaskCommandIsNotConstructed)
}
