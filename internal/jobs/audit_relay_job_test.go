package jobs_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"prepcenter/internal/core/domain/model/activity"
	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/core/ports"
	"prepcenter/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAuditFeed struct{ mock.Mock }

func (m *MockAuditFeed) ReadAfter(ctx context.Context, seq int64, limit int, actions ...string) ([]ports.RecordedEntry, error) {
	args := m.Called(ctx, seq, limit, actions)
	entries, _ := args.Get(0).([]ports.RecordedEntry)
	return entries, args.Error(1)
}

func (m *MockAuditFeed) Cursor(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAuditFeed) SaveCursor(ctx context.Context, name string, seq int64) error {
	return m.Called(ctx, name, seq).Error(0)
}

type MockAuditPublisher struct{ mock.Mock }

func (m *MockAuditPublisher) Publish(ctx context.Context, entries []ports.RecordedEntry) error {
	return m.Called(ctx, entries).Error(0)
}

var statusOnly = []string{activity.ActionStatusChanged}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func recorded(t *testing.T, seqs ...int64) []ports.RecordedEntry {
	t.Helper()
	out := make([]ports.RecordedEntry, 0, len(seqs))
	for _, seq := range seqs {
		shipmentID := kernel.NewUUID()
		entry, err := activity.NewEntry(kernel.NewUUID(), nil, activity.ActionStatusChanged, activity.EntityShipment,
			&shipmentID, nil, time.Now())
		require.NoError(t, err)
		out = append(out, ports.RecordedEntry{Seq: seq, Entry: entry})
	}
	return out
}

func TestAuditRelayJob_RunOnce_AdvancesCursor(t *testing.T) {
	ctx := context.Background()
	feed := &MockAuditFeed{}
	publisher := &MockAuditPublisher{}

	first := recorded(t, 11, 12)
	second := recorded(t, 15)

	feed.On("Cursor", ctx, jobs.AuditRelayCursor).Return(int64(10), nil)
	feed.On("ReadAfter", ctx, int64(10), 2, statusOnly).Return(first, nil)
	feed.On("ReadAfter", ctx, int64(12), 2, statusOnly).Return(second, nil)
	publisher.On("Publish", ctx, first).Return(nil)
	publisher.On("Publish", ctx, second).Return(nil)
	feed.On("SaveCursor", ctx, jobs.AuditRelayCursor, int64(12)).Return(nil)
	feed.On("SaveCursor", ctx, jobs.AuditRelayCursor, int64(15)).Return(nil)

	job := jobs.NewAuditRelayJob(feed, publisher, "@every 1s", 2, discardLogger())
	n, err := job.RunOnce(ctx)

	require.NoError(t, err)
	assert.Equal(t, 3, n)
	feed.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestAuditRelayJob_RunOnce_NothingNew(t *testing.T) {
	ctx := context.Background()
	feed := &MockAuditFeed{}
	publisher := &MockAuditPublisher{}

	feed.On("Cursor", ctx, jobs.AuditRelayCursor).Return(int64(0), nil)
	feed.On("ReadAfter", ctx, int64(0), jobs.DefaultAuditRelayBatch, statusOnly).Return(nil, nil)

	job := jobs.NewAuditRelayJob(feed, publisher, "@every 1s", 0, discardLogger())
	n, err := job.RunOnce(ctx)

	require.NoError(t, err)
	assert.Zero(t, n)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	feed.AssertNotCalled(t, "SaveCursor", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuditRelayJob_RunOnce_PublishFailureKeepsCursor(t *testing.T) {
	ctx := context.Background()
	feed := &MockAuditFeed{}
	publisher := &MockAuditPublisher{}

	batch := recorded(t, 4)
	feed.On("Cursor", ctx, jobs.AuditRelayCursor).Return(int64(3), nil)
	feed.On("ReadAfter", ctx, int64(3), 10, statusOnly).Return(batch, nil)
	publisher.On("Publish", ctx, batch).Return(errors.New("broker down"))

	job := jobs.NewAuditRelayJob(feed, publisher, "@every 1s", 10, discardLogger())
	n, err := job.RunOnce(ctx)

	require.Error(t, err)
	assert.Zero(t, n)
	feed.AssertNotCalled(t, "SaveCursor", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuditRelayJob_RunOnce_CursorReadFailure(t *testing.T) {
	ctx := context.Background()
	feed := &MockAuditFeed{}
	publisher := &MockAuditPublisher{}

	feed.On("Cursor", ctx, jobs.AuditRelayCursor).Return(int64(0), errors.New("connection refused"))

	job := jobs.NewAuditRelayJob(feed, publisher, "@every 1s", 10, discardLogger())
	_, err := job.RunOnce(ctx)

	require.ErrorContains(t, err, "read relay cursor")
	feed.AssertNotCalled(t, "ReadAfter", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAuditRelayJob_StartRejectsBadSchedule(t *testing.T) {
	job := jobs.NewAuditRelayJob(&MockAuditFeed{}, &MockAuditPublisher{}, "not a schedule", 10, discardLogger())

	require.Error(t, job.Start())
}

type jobStub struct {
	name    string
	fail    bool
	started *[]string
	stopped *[]string
}

func (j jobStub) Start() error {
	if j.fail {
		return errors.New("boom")
	}
	*j.started = append(*j.started, j.name)
	return nil
}

func (j jobStub) Stop() { *j.stopped = append(*j.stopped, j.name) }

func TestJobManager(t *testing.T) {
	t.Run("stops in reverse order", func(t *testing.T) {
		var started, stopped []string
		jm := jobs.NewJobManager(
			jobStub{name: "a", started: &started, stopped: &stopped},
			jobStub{name: "b", started: &started, stopped: &stopped},
		)

		require.NoError(t, jm.StartAll())
		jm.StopAll()

		assert.Equal(t, []string{"a", "b"}, started)
		assert.Equal(t, []string{"b", "a"}, stopped)
	})

	t.Run("failed start stops the started ones", func(t *testing.T) {
		var started, stopped []string
		jm := jobs.NewJobManager(
			jobStub{name: "a", started: &started, stopped: &stopped},
			jobStub{name: "b", fail: true, started: &started, stopped: &stopped},
		)

		require.Error(t, jm.StartAll())
		assert.Equal(t, []string{"a"}, stopped)
	})
}
