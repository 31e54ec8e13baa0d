package commands

import (
	"context"

	"prepcenter/internal/core/domain/model/activity"
	"prepcenter/internal/core/ports"
)

type MarkNotificationReadCommandHandler struct {
	uowFactory NotificationUoWFactory
	recorder   ports.ActivityRecorder
}

func NewMarkNotificationReadCommandHandler(
	uowFactory NotificationUoWFactory,
	recorder ports.ActivityRecorder,
) MarkNotificationReadCommandHandler {
	return MarkNotificationReadCommandHandler{uowFactory: uowFactory, recorder: recorder}
}

// Handle marks the caller's notification read. An id that does not exist or belongs
// to someone else touches nothing and still succeeds, as does a repeated call.
func (h MarkNotificationReadCommandHandler) Handle(ctx context.Context, command MarkNotificationReadCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	notifications := uow.NotificationRepository()
	n, err := notifications.FindForUser(ctx, command.notificationID, command.actor.ID())
	if err != nil {
		return err
	}
	if n == nil || n.IsRead() {
		return nil
	}
	n.MarkRead()
	if err = notifications.Update(ctx, n); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	trail := newAuditTrail(command.actor)
	trail.add(activity.ActionNotificationRead, activity.EntityNotification, n.ID(), nil)
	h.recorder.Record(ctx, trail.entries...)
	return nil
}
