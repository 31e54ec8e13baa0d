package commands

import (
	"errors"

	"prepcenter/internal/core/domain/model/access"
	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/pkg/guard"
)

var ErrCompleteTaskCommandIsNotConstructed = errors.New(
	"CompleteTaskCommand must be created via NewCompleteTaskCommand constructor",
)

// CompleteTaskCommand closes a task as DONE on behalf of its assignee or an admin.
type CompleteTaskCommand struct { //nolint:recvcheck //using for validation
	actor  access.Principal
	taskID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCompleteTaskCommand(actor access.Principal, taskID kernel.UUID) (CompleteTaskCommand, error) {
	if err := errors.Join(actor.Validate(), taskID.Validate()); err != nil {
		return CompleteTaskCommand{}, err
	}
	return CompleteTaskCommand{actor: actor, taskID: taskID, guard: guard.NewConstructorGuard()}, nil
}

func (c CompleteTaskCommand) Validate() error {
	return c.guard.Validate(ErrCompleteTaskCommandIsNotConstructed)
}
