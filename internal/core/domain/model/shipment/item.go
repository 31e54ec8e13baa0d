package shipment

import (
	"errors"
	"fmt"
	"strings"

	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/pkg/errs"
	"prepcenter/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned for items not built through NewItem.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is a line of goods inside a shipment.
type Item struct {
	id          kernel.UUID
	productName string
	sku         string
	quantity    int
	prepType    PrepType
	guard       guard.ConstructorGuard
}

// NewItem validates and builds a shipment item.
func NewItem(id kernel.UUID, productName, sku string, quantity int, prepType PrepType) (*Item, error) {
	item := &Item{guard: guard.NewConstructorGuard()}
	if err := errors.Join(
		item.setID(id),
		item.setProductName(productName),
		item.setSKU(sku),
		item.setQuantity(quantity),
		item.setPrepType(prepType),
	); err != nil {
		return nil, err
	}
	return item, nil
}

func (i *Item) Validate() error {
	if i == nil {
		return ErrItemIsNotConstructed
	}
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i *Item) ID() kernel.UUID     { return i.id }
func (i *Item) ProductName() string { return i.productName }
func (i *Item) SKU() string         { return i.sku }
func (i *Item) Quantity() int       { return i.quantity }
func (i *Item) PrepType() PrepType  { return i.prepType }

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("productName")
	}
	i.productName = name
	return nil
}

func (i *Item) setSKU(sku string) error {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return errs.NewValueIsRequiredError("sku")
	}
	i.sku = sku
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setPrepType(prepType PrepType) error {
	if prepType == "" {
		return errs.NewValueIsRequiredError("prepType")
	}
	i.prepType = prepType
	return nil
}
