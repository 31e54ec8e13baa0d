package queries

import (
	"errors"
	"time"

	"prepcenter/internal/core/domain/model/access"
	"prepcenter/internal/core/domain/model/crossborder"
	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/pkg/guard"
)

var ErrListCrossBorderShipmentsQueryIsNotConstructed = errors.New(
	"ListCrossBorderShipmentsQuery must be created via NewListCrossBorderShipmentsQuery constructor",
)

// ListCrossBorderShipmentsQuery lists Ghana-line consignments. Admin only.
type ListCrossBorderShipmentsQuery struct {
	guard guard.ConstructorGuard
}

func NewListCrossBorderShipmentsQuery(actor access.Principal) (ListCrossBorderShipmentsQuery, error) {
	if err := access.Require(actor, "list cross-border shipments", access.Admin); err != nil {
		return ListCrossBorderShipmentsQuery{}, err
	}
	return ListCrossBorderShipmentsQuery{guard: guard.NewConstructorGuard()}, nil
}

func (q ListCrossBorderShipmentsQuery) Validate() error {
	return q.guard.Validate(ErrListCrossBorderShipmentsQueryIsNotConstructed)
}

type CrossBorderShipmentView struct {
	ID             kernel.UUID
	OwnerID        kernel.UUID
	Origin         string
	Destination    string
	TrackingNumber string
	WeightGrams    int
	Status         crossborder.Status
	CreatedAt      time.Time
}
