package pricing_test

import (
	"testing"

	"prepcenter/internal/adapters/out/pricing"
	"prepcenter/internal/core/domain/model/shipment"
	"prepcenter/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRateCard(t *testing.T) {
	card, err := pricing.ParseRateCard("usd", 100, "labeling=120, BUNDLING=200,")
	require.NoError(t, err)

	m, err := card.Quote(t.Context(), "LABELING", 3)
	require.NoError(t, err)
	assert.Equal(t, int64(360), m.Cents())
	assert.Equal(t, "USD", m.Currency())

	m, err = card.Quote(t.Context(), shipment.PrepType("KITTING"), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(200), m.Cents(), "unknown services use the default rate")
}

func TestParseRateCard_Rejects(t *testing.T) {
	cases := map[string]string{
		"missing separator": "LABELING:120",
		"not a number":      "LABELING=ten",
		"negative":          "LABELING=-1",
		"bad service":       "9X=1",
	}
	for name, spec := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := pricing.ParseRateCard("USD", 100, spec)
			assert.Equal(t, errs.KindValidation, errs.KindOf(err))
		})
	}

	_, err := pricing.ParseRateCard("", 100, "")
	require.Error(t, err)
}

func TestRateCard_QuoteRejectsNegativeUnits(t *testing.T) {
	card, err := pricing.NewRateCard("USD", 100, nil)
	require.NoError(t, err)
	_, err = card.Quote(t.Context(), "LABELING", -1)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}
