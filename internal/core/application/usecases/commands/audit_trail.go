package commands

import (
	"time"

	"prepcenter/internal/core/domain/model/access"
	"prepcenter/internal/core/domain/model/activity"
	"prepcenter/internal/core/domain/model/kernel"
)

// auditTrail collects the entries of one command. They are handed to the recorder
// only after the unit of work has committed.
type auditTrail struct {
	actor   *kernel.UUID
	entries []activity.Entry
}

func newAuditTrail(actor access.Principal) *auditTrail {
	trail := &auditTrail{}
	if actor.Validate() == nil {
		id := actor.ID()
		trail.actor = &id
	}
	return trail
}

func (a *auditTrail) add(action, entityType string, entityID kernel.UUID, metadata map[string]any) {
	entry, err := activity.NewEntry(kernel.NewUUID(), a.actor, action, entityType, &entityID, metadata, time.Now())
	if err != nil {
		return
	}
	a.entries = append(a.entries, entry)
}
