// Package pricing quotes prep services from a configured per-unit rate card.
package pricing

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/core/domain/model/shipment"
	"prepcenter/internal/pkg/errs"
)

// RateCard implements ports.Pricing. Services without their own rate use the default.
type RateCard struct {
	currency    string
	defaultRate int64
	rates       map[shipment.PrepType]int64
}

func NewRateCard(currency string, defaultRate int64, rates map[shipment.PrepType]int64) (*RateCard, error) {
	if _, err := kernel.NewMoney(0, currency); err != nil {
		return nil, err
	}
	if defaultRate < 0 {
		return nil, errs.NewValueIsOutOfRangeError("defaultRate", defaultRate, 0, "unbounded")
	}
	card := &RateCard{
		currency:    strings.ToUpper(strings.TrimSpace(currency)),
		defaultRate: defaultRate,
		rates:       make(map[shipment.PrepType]int64, len(rates)),
	}
	for service, rate := range rates {
		if rate < 0 {
			return nil, errs.NewValueIsOutOfRangeError(service.String(), rate, 0, "unbounded")
		}
		card.rates[service] = rate
	}
	return card, nil
}

// ParseRateCard reads rates written as "LABELING=120,BUNDLING=200", in cents per unit.
func ParseRateCard(currency string, defaultRate int64, spec string) (*RateCard, error) {
	rates := make(map[shipment.PrepType]int64)
	for _, pair := range strings.Split(spec, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, errs.NewValueIsInvalidErrorWithCause("rateCard", fmt.Errorf("%q is not SERVICE=CENTS", pair))
		}
		service, err := shipment.NewPrepType(name)
		if err != nil {
			return nil, err
		}
		rate, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("rateCard", err)
		}
		rates[service] = rate
	}
	return NewRateCard(currency, defaultRate, rates)
}

func (c *RateCard) Quote(_ context.Context, service shipment.PrepType, units int) (kernel.Money, error) {
	if units < 0 {
		return kernel.Money{}, errs.NewValueIsOutOfRangeError("units", units, 0, "unbounded")
	}
	rate, ok := c.rates[service]
	if !ok {
		rate = c.defaultRate
	}
	return kernel.NewMoney(rate*int64(units), c.currency)
}
