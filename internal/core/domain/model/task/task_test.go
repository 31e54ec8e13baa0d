package task_test

import (
	"testing"
	"time"

	"prepcenter/internal/core/domain/model/access"
	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/core/domain/model/shipment"
	"prepcenter/internal/core/domain/model/task"
	"prepcenter/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func principal(t *testing.T, role access.Role) access.Principal {
	t.Helper()
	p, err := access.NewPrincipal(kernel.NewUUID(), role)
	require.NoError(t, err)
	return p
}

var keep = kernel.Absent[*kernel.UUID]()

func newTask(t *testing.T) *task.Task {
	t.Helper()
	tk, err := task.NewTask(kernel.NewUUID(), kernel.NewUUID(), "LABELING", shipment.Inspecting, task.Normal, time.Now())
	require.NoError(t, err)
	return tk
}

func TestNewTask(t *testing.T) {
	tk := newTask(t)
	assert.Equal(t, task.Pending, tk.Status())
	assert.Nil(t, tk.StationID())
	assert.Nil(t, tk.AssignedToID())
	assert.True(t, tk.IsOpen())

	_, err := task.NewTask(kernel.NewUUID(), kernel.NewUUID(), "LABELING", shipment.QualityCheck, task.Normal, time.Now())
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = task.NewTask(kernel.NewUUID(), kernel.NewUUID(), "", shipment.Prepping, task.UnknownPriority, time.Now())
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestTask_Assign(t *testing.T) {
	admin := principal(t, access.Admin)
	operator := principal(t, access.Operator)
	station := kernel.NewUUID()

	t.Run("binding an operator starts the task", func(t *testing.T) {
		tk := newTask(t)
		opID := operator.ID()
		require.NoError(t, tk.Assign(station, kernel.Present(&opID), operator))
		assert.Equal(t, task.InProgress, tk.Status())
		assert.True(t, tk.IsBoundTo(station))
	})

	t.Run("admin may bind a station only", func(t *testing.T) {
		tk := newTask(t)
		require.NoError(t, tk.Assign(station, keep, admin))
		assert.Equal(t, task.Pending, tk.Status())
		assert.Nil(t, tk.AssignedToID())
	})

	t.Run("operators cannot assign others", func(t *testing.T) {
		tk := newTask(t)
		other := kernel.NewUUID()
		require.ErrorIs(t, tk.Assign(station, kernel.Present(&other), operator), errs.ErrForbidden)
		require.ErrorIs(t, tk.Assign(station, keep, operator), errs.ErrForbidden)
	})

	t.Run("operators cannot take claimed work", func(t *testing.T) {
		tk := newTask(t)
		other := principal(t, access.Operator)
		otherID := other.ID()
		require.NoError(t, tk.Assign(station, kernel.Present(&otherID), other))

		opID := operator.ID()
		require.ErrorIs(t, tk.Assign(kernel.NewUUID(), kernel.Present(&opID), operator), errs.ErrForbidden)
		require.NoError(t, tk.Assign(kernel.NewUUID(), kernel.Present(&opID), admin))
		assert.True(t, tk.AssignedToID().IsEqual(opID))
	})

	t.Run("moving a started task keeps its operator", func(t *testing.T) {
		tk := newTask(t)
		opID := operator.ID()
		require.NoError(t, tk.Assign(station, kernel.Present(&opID), operator))

		moved := kernel.NewUUID()
		require.NoError(t, tk.Assign(moved, keep, admin))
		assert.Equal(t, task.InProgress, tk.Status())
		assert.True(t, tk.IsBoundTo(moved))
		require.NotNil(t, tk.AssignedToID())
		assert.True(t, tk.AssignedToID().IsEqual(opID))
	})

	t.Run("explicit clear unbinds the operator", func(t *testing.T) {
		tk := newTask(t)
		opID := operator.ID()
		require.NoError(t, tk.Assign(station, kernel.Present(&opID), operator))

		require.NoError(t, tk.Assign(station, kernel.Present[*kernel.UUID](nil), admin))
		assert.Equal(t, task.Pending, tk.Status())
		assert.Nil(t, tk.AssignedToID())
	})

	t.Run("operators cannot clear a binding", func(t *testing.T) {
		tk := newTask(t)
		require.ErrorIs(t, tk.Assign(station, kernel.Present[*kernel.UUID](nil), operator), errs.ErrForbidden)
	})

	t.Run("clients are forbidden", func(t *testing.T) {
		client := principal(t, access.Client)
		clientID := client.ID()
		require.ErrorIs(t, newTask(t).Assign(station, kernel.Present(&clientID), client), errs.ErrForbidden)
	})

	t.Run("closed tasks cannot be assigned", func(t *testing.T) {
		tk := newTask(t)
		require.NoError(t, tk.Cancel())
		require.ErrorIs(t, tk.Assign(station, keep, admin), errs.ErrInvalidTransition)
	})
}

func TestTask_Complete(t *testing.T) {
	admin := principal(t, access.Admin)
	operator := principal(t, access.Operator)
	opID := operator.ID()

	t.Run("assignee completes", func(t *testing.T) {
		tk := newTask(t)
		require.NoError(t, tk.Assign(kernel.NewUUID(), kernel.Present(&opID), operator))
		require.NoError(t, tk.Complete(operator))
		assert.Equal(t, task.Done, tk.Status())
		assert.False(t, tk.IsOpen())
	})

	t.Run("other operators are forbidden", func(t *testing.T) {
		tk := newTask(t)
		require.NoError(t, tk.Assign(kernel.NewUUID(), kernel.Present(&opID), operator))
		require.ErrorIs(t, tk.Complete(principal(t, access.Operator)), errs.ErrForbidden)
	})

	t.Run("admin completes anything open once", func(t *testing.T) {
		tk := newTask(t)
		require.NoError(t, tk.Complete(admin))
		require.ErrorIs(t, tk.Complete(admin), errs.ErrInvalidTransition)
	})
}

func TestParsePriority(t *testing.T) {
	p, err := task.ParsePriority("urgent")
	require.NoError(t, err)
	assert.Equal(t, task.Urgent, p)
	assert.Greater(t, task.Urgent, task.High)
	assert.Greater(t, task.Normal, task.Low)

	_, err = task.ParsePriority("ASAP")
	require.Error(t, err)
}
