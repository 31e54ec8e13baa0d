package queries

import (
	"errors"
	"time"

	"prepcenter/internal/core/domain/model/access"
	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/pkg/guard"
)

var ErrListClientsQueryIsNotConstructed = errors.New(
	"ListClientsQuery must be created via NewListClientsQuery constructor",
)

// ListClientsQuery lists every known client, including clients with no shipments yet.
type ListClientsQuery struct {
	guard guard.ConstructorGuard
}

func NewListClientsQuery(actor access.Principal) (ListClientsQuery, error) {
	if err := access.Require(actor, "list clients", access.Admin); err != nil {
		return ListClientsQuery{}, err
	}
	return ListClientsQuery{guard: guard.NewConstructorGuard()}, nil
}

func (q ListClientsQuery) Validate() error {
	return q.guard.Validate(ErrListClientsQueryIsNotConstructed)
}

type ClientSummary struct {
	ID                  kernel.UUID
	LastSeenAt          time.Time
	ShipmentCount       int
	ActiveShipmentCount int
	OrderCount          int
}
