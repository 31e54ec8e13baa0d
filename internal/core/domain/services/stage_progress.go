package services

import (
	"prepcenter/internal/core/domain/model/shipment"
	"prepcenter/internal/core/domain/model/task"
)

// StageProgress decides whether completing a task finishes its shipment's stage.
type StageProgress struct{}

func NewStageProgress() StageProgress {
	return StageProgress{}
}

// NextStatus returns the status the shipment should move to after done was closed,
// given the number of tasks of the same stage that are still open. It reports false
// while work remains, or when the shipment has already left the task's stage.
func (StageProgress) NextStatus(s *shipment.Shipment, done *task.Task, stillOpen int) (shipment.Status, bool) {
	if stillOpen > 0 || done.IsOpen() || s.Status() != done.Stage() {
		return shipment.Unknown, false
	}
	return s.Status().Next()
}
