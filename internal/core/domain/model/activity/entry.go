package activity

import (
	"errors"
	"maps"
	"strings"
	"time"

	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/pkg/errs"
)

// Actions recorded by the engine.
const (
	ActionShipmentCreated    = "shipment_created"
	ActionStatusChanged      = "status_changed"
	ActionItemCorrected      = "item_quantity_corrected"
	ActionTaskOpened         = "task_opened"
	ActionTaskAssigned       = "task_assigned"
	ActionTaskCompleted      = "task_completed"
	ActionTaskCancelled      = "task_cancelled"
	ActionStationCreated     = "station_created"
	ActionStationUpdated     = "station_updated"
	ActionOrderCreated       = "order_created"
	ActionOrderStatusChanged = "order_status_changed"
	ActionInvoiceAttached    = "invoice_attached"
	ActionCrossBorderCreated = "cross_border_shipment_created"
	ActionNotificationRead   = "notification_read"
)

// Entity types recorded by the engine.
const (
	EntityShipment            = "shipment"
	EntityTask                = "task"
	EntityStation             = "station"
	EntityOrder               = "order"
	EntityNotification        = "notification"
	EntityCrossBorderShipment = "cross_border_shipment"
)

// Entry is one append-only audit record.
type Entry struct {
	id         kernel.UUID
	userID     *kernel.UUID
	action     string
	entityType string
	entityID   *kernel.UUID
	metadata   map[string]any
	createdAt  time.Time
}

// NewEntry builds an audit record. userID, entityID and metadata are optional.
func NewEntry(
	id kernel.UUID,
	userID *kernel.UUID,
	action string,
	entityType string,
	entityID *kernel.UUID,
	metadata map[string]any,
	createdAt time.Time,
) (Entry, error) {
	action, entityType = strings.TrimSpace(action), strings.TrimSpace(entityType)
	var errList []error
	errList = append(errList, id.Validate())
	if action == "" {
		errList = append(errList, errs.NewValueIsRequiredError("action"))
	}
	if entityType == "" {
		errList = append(errList, errs.NewValueIsRequiredError("entityType"))
	}
	if createdAt.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("createdAt"))
	}
	if err := errors.Join(errList...); err != nil {
		return Entry{}, err
	}
	return Entry{
		id:         id,
		userID:     userID,
		action:     action,
		entityType: entityType,
		entityID:   entityID,
		metadata:   maps.Clone(metadata),
		createdAt:  createdAt.UTC(),
	}, nil
}

func (e Entry) ID() kernel.UUID        { return e.id }
func (e Entry) UserID() *kernel.UUID   { return e.userID }
func (e Entry) Action() string         { return e.action }
func (e Entry) EntityType() string     { return e.entityType }
func (e Entry) EntityID() *kernel.UUID { return e.entityID }
func (e Entry) CreatedAt() time.Time   { return e.createdAt }

// Metadata returns a copy of the entry's metadata.
func (e Entry) Metadata() map[string]any {
	return maps.Clone(e.metadata)
}
