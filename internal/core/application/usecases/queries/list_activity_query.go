package queries

import (
	"errors"
	"strings"
	"time"

	"prepcenter/internal/core/domain/model/access"
	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/pkg/errs"
	"prepcenter/internal/pkg/guard"
)

// MaxActivity bounds one page of the audit trail.
const MaxActivity = 500

var ErrListActivityQueryIsNotConstructed = errors.New(
	"ListActivityQuery must be created via NewListActivityQuery constructor",
)

// ListActivityQuery reads the audit trail, optionally for one entity type or entity.
type ListActivityQuery struct {
	entityType string
	entityID   *kernel.UUID
	limit      int
	guard      guard.ConstructorGuard
}

func NewListActivityQuery(
	actor access.Principal,
	entityType string,
	entityID *kernel.UUID,
	limit int,
) (ListActivityQuery, error) {
	if err := access.Require(actor, "list activity", access.Admin); err != nil {
		return ListActivityQuery{}, err
	}
	if limit == 0 {
		limit = MaxActivity
	}
	if limit < 1 || limit > MaxActivity {
		return ListActivityQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxActivity)
	}
	return ListActivityQuery{
		entityType: strings.TrimSpace(entityType),
		entityID:   entityID,
		limit:      limit,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q ListActivityQuery) Validate() error {
	return q.guard.Validate(ErrListActivityQueryIsNotConstructed)
}

type ActivityView struct {
	ID         kernel.UUID
	UserID     *kernel.UUID
	Action     string
	EntityType string
	EntityID   *kernel.UUID
	Metadata   map[string]any
	CreatedAt  time.Time
}
