package guard_test

import (
	"errors"
	"testing"

	"prepcenter/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotConstructed := errors.New("station must be created via NewStation")

	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errNotConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(errNotConstructed)

		assert.Equal(t, errNotConstructed, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		assert.Equal(t, guard.ErrDefaultConstructorGuard, g.Validate(nil))
	})
}

func TestConstructorGuard_EmbeddedInValueObject(t *testing.T) {
	type rateCard struct {
		service string
		cents   int64
		guard   guard.ConstructorGuard
	}
	errRateCardNotConstructed := errors.New("rate card must be created via newRateCard")

	newRateCard := func(service string, cents int64) (rateCard, error) {
		if service == "" {
			return rateCard{}, errors.New("service is required")
		}
		return rateCard{service: service, cents: cents, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("built_through_constructor", func(t *testing.T) {
		card, err := newRateCard("LABELING", 45)

		require.NoError(t, err)
		require.NoError(t, card.guard.Validate(errRateCardNotConstructed))
	})

	t.Run("struct_literal_is_rejected", func(t *testing.T) {
		card := rateCard{service: "LABELING", cents: 45}

		require.ErrorIs(t, card.guard.Validate(errRateCardNotConstructed), errRateCardNotConstructed)
	})
}
