package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"prepcenter/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("shipment", "123")

		assert.Equal(t, "shipment", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: shipment 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("row missing")
		err := errs.NewObjectNotFoundErrorWithCause("task", 7, cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "object not found: task 7 (cause: row missing)", err.Error())
	})
}

func TestValueErrors(t *testing.T) {
	t.Run("required", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("name")
		assert.Equal(t, "value is required: name", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("invalid with cause", func(t *testing.T) {
		err := errs.NewValueIsInvalidErrorWithCause("capacity", errors.New("0 is not greater than 0"))
		assert.Equal(t, "value is invalid: capacity (cause: 0 is not greater than 0)", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("out of range flattens newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("quantity", "ten\nthousand", 1, 100)
		assert.Contains(t, err.Error(), "ten thousand")
		assert.NotContains(t, err.Error(), "\n")
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestDomainErrors(t *testing.T) {
	t.Run("capacity exceeded", func(t *testing.T) {
		err := errs.NewCapacityExceededError("s1", 2, 2)
		assert.Equal(t, "capacity exceeded: station s1 has 2 active tasks of capacity 2", err.Error())
	})

	t.Run("invalid transition", func(t *testing.T) {
		err := errs.NewInvalidTransitionError("shipment", "RECEIVED", "QUALITY_CHECK")
		assert.Equal(t, "invalid transition: shipment cannot move from RECEIVED to QUALITY_CHECK", err.Error())
	})

	t.Run("transient keeps its cause", func(t *testing.T) {
		cause := errors.New("could not serialize access")
		err := errs.NewTransientStoreError("assign task", cause)
		assert.Contains(t, err.Error(), "could not serialize access")
		assert.True(t, errs.IsRetryable(err))
	})
}

func TestKindOf(t *testing.T) {
	cases := []struct {
		err  error
		kind errs.Kind
	}{
		{nil, errs.KindUnknown},
		{errors.New("boom"), errs.KindUnknown},
		{errs.NewUnauthenticatedError(""), errs.KindUnauthenticated},
		{errs.NewForbiddenError("assign task", "role CLIENT"), errs.KindForbidden},
		{errs.NewObjectNotFoundError("order", "1"), errs.KindNotFound},
		{errs.NewValueIsRequiredError("name"), errs.KindValidation},
		{errs.NewValueIsInvalidError("type"), errs.KindValidation},
		{errs.NewValueIsOutOfRangeError("capacity", 0, 1, 100), errs.KindValidation},
		{errs.NewInvalidTransitionError("task", "DONE", "DONE"), errs.KindInvalidTransition},
		{errs.NewCapacityExceededError("s", 1, 1), errs.KindCapacityExceeded},
		{errs.NewConflictError("invoice", "o1"), errs.KindConflict},
		{errs.NewTransientStoreError("commit", nil), errs.KindTransientStore},
		{fmt.Errorf("wrapped: %w", errs.NewConflictError("order", "x")), errs.KindConflict},
	}

	for _, tc := range cases {
		t.Run(tc.kind.String(), func(t *testing.T) {
			assert.Equal(t, tc.kind, errs.KindOf(tc.err))
		})
	}

	t.Run("authorization wins over validation in joined errors", func(t *testing.T) {
		err := errors.Join(errs.NewValueIsRequiredError("name"), errs.NewForbiddenError("x", "y"))
		assert.Equal(t, errs.KindForbidden, errs.KindOf(err))
	})

	t.Run("only transient errors are retryable", func(t *testing.T) {
		assert.False(t, errs.IsRetryable(errs.NewConflictError("order", "x")))
	})
}
