package crossborder_test

import (
	"testing"
	"time"

	"prepcenter/internal/core/domain/model/crossborder"
	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShipment(t *testing.T) {
	s, err := crossborder.NewShipment(kernel.NewUUID(), kernel.NewUUID(), "Guangzhou", "Accra", "GH-0001", 12500, time.Now())
	require.NoError(t, err)
	assert.Equal(t, crossborder.Booked, s.Status())
	assert.Equal(t, 12500, s.WeightGrams())

	_, err = crossborder.NewShipment(kernel.NewUUID(), kernel.NewUUID(), "", "Accra", "", 0, time.Now())
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestParseStatus(t *testing.T) {
	st, err := crossborder.ParseStatus("in_transit")
	require.NoError(t, err)
	assert.Equal(t, crossborder.InTransit, st)
	assert.Equal(t, "IN_TRANSIT", st.String())
}
