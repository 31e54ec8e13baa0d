package services

import (
	"slices"

	"prepcenter/internal/core/domain/model/task"
)

// CompareTasks orders tasks by priority descending, then newest first, then by id.
// The order is total, so listings are stable under ties.
func CompareTasks(a, b *task.Task) int {
	switch {
	case a.Priority() != b.Priority():
		if a.Priority() > b.Priority() {
			return -1
		}
		return 1
	case !a.CreatedAt().Equal(b.CreatedAt()):
		if a.CreatedAt().After(b.CreatedAt()) {
			return -1
		}
		return 1
	case a.ID().Less(b.ID()):
		return -1
	case b.ID().Less(a.ID()):
		return 1
	}
	return 0
}

// SortTasks sorts tasks in place in listing order.
func SortTasks(tasks []*task.Task) {
	slices.SortFunc(tasks, CompareTasks)
}
