package postgres_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"time"

	"prepcenter/internal/adapters/out/postgres/activityrepo"
	"prepcenter/internal/core/domain/model/activity"
	"prepcenter/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

func (suite *UnitOfWorkIntegrationTestSuite) entry(action string, metadata map[string]any) activity.Entry {
	userID, entityID := suite.admin.ID(), kernel.NewUUID()
	e, err := activity.NewEntry(kernel.NewUUID(), &userID, action, activity.EntityShipment, &entityID, metadata, time.Now())
	suite.Require().NoError(err)
	return e
}

// row builds an activity_log row directly, bypassing the recorder.
func row(action string) activityrepo.ActivityDTO {
	return activityrepo.ActivityDTO{
		ID:         uuid.New(),
		Action:     action,
		EntityType: activity.EntityShipment,
		CreatedAt:  time.Now(),
	}
}

func entryID(e activity.Entry) uuid.UUID {
	return e.ID().Bytes()
}

func (suite *UnitOfWorkIntegrationTestSuite) TestAuditFeed_ReadsInAppendOrder() {
	ctx := context.Background()
	feed := activityrepo.NewGormAuditFeed(suite.db, activityrepo.WithSettleWindow(0))

	first := suite.entry(activity.ActionStatusChanged, map[string]any{"from": "RECEIVED", "to": "INSPECTING"})
	second := suite.entry(activity.ActionTaskOpened, nil)
	third := suite.entry(activity.ActionStatusChanged, map[string]any{"from": "INSPECTING", "to": "PREPPING"})
	suite.recorder.Record(ctx, first, second)
	suite.recorder.Record(ctx, third)

	all, err := feed.ReadAfter(ctx, 0, 10)
	suite.Require().NoError(err)
	suite.Require().Len(all, 3)
	suite.Less(all[0].Seq, all[1].Seq)
	suite.Less(all[1].Seq, all[2].Seq)

	changes, err := feed.ReadAfter(ctx, 0, 10, activity.ActionStatusChanged)
	suite.Require().NoError(err)
	suite.Require().Len(changes, 2)
	suite.Equal(first.ID(), changes[0].Entry.ID())
	suite.Equal("INSPECTING", changes[0].Entry.Metadata()["to"])
	suite.Equal(third.ID(), changes[1].Entry.ID())

	after, err := feed.ReadAfter(ctx, changes[0].Seq, 10, activity.ActionStatusChanged)
	suite.Require().NoError(err)
	suite.Require().Len(after, 1)
	suite.Equal(third.ID(), after[0].Entry.ID())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestAuditFeed_CursorNeverMovesBackwards() {
	ctx := context.Background()
	feed := activityrepo.NewGormAuditFeed(suite.db, activityrepo.WithSettleWindow(0))

	seq, err := feed.Cursor(ctx, "kafka")
	suite.Require().NoError(err)
	suite.Zero(seq)

	suite.Require().NoError(feed.SaveCursor(ctx, "kafka", 7))
	suite.Require().NoError(feed.SaveCursor(ctx, "kafka", 3))

	seq, err = feed.Cursor(ctx, "kafka")
	suite.Require().NoError(err)
	suite.Equal(int64(7), seq)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestAuditFeed_WaitsForLowerSeqToCommit() {
	ctx := context.Background()
	feed := activityrepo.NewGormAuditFeed(suite.db, activityrepo.WithSettleWindow(200*time.Millisecond))

	// The first append draws its seq and stays open while a second one commits.
	slow := row(activity.ActionStatusChanged)
	tx := suite.db.Begin()
	suite.Require().NoError(tx.Error)
	suite.Require().NoError(tx.Create(&slow).Error)

	fast := suite.entry(activity.ActionStatusChanged, map[string]any{"to": "PREPPING"})
	suite.recorder.Record(ctx, fast)

	batch, err := feed.ReadAfter(ctx, 0, 10)
	suite.Require().NoError(err)
	suite.Empty(batch)

	suite.Require().NoError(tx.Commit().Error)
	time.Sleep(300 * time.Millisecond)

	batch, err = feed.ReadAfter(ctx, 0, 10)
	suite.Require().NoError(err)
	suite.Require().Len(batch, 2)
	suite.Equal(slow.ID, entryID(batch[0].Entry))
	suite.Equal(fast.ID(), batch[1].Entry.ID())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestAuditFeed_StopsAtFirstUnsettledEntry() {
	ctx := context.Background()
	feed := activityrepo.NewGormAuditFeed(suite.db, activityrepo.WithSettleWindow(time.Minute))

	settled := row(activity.ActionStatusChanged)
	settled.RecordedAt = time.Now().Add(-time.Hour)
	fresh := row(activity.ActionTaskOpened)
	old := row(activity.ActionStatusChanged)
	old.RecordedAt = time.Now().Add(-time.Hour)
	for _, dto := range []*activityrepo.ActivityDTO{&settled, &fresh, &old} {
		suite.Require().NoError(suite.db.Create(dto).Error)
	}

	// The fresh entry is filtered out by action but still holds back the one behind it.
	batch, err := feed.ReadAfter(ctx, 0, 10, activity.ActionStatusChanged)
	suite.Require().NoError(err)
	suite.Require().Len(batch, 1)
	suite.Equal(settled.ID, entryID(batch[0].Entry))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestActivityRecorder_CountsEachFailedEntryOnce() {
	ctx := context.Background()
	var logs bytes.Buffer
	recorder := activityrepo.NewGormActivityRecorder(suite.db, slog.New(slog.NewJSONHandler(&logs, nil)))

	stored := suite.entry(activity.ActionTaskOpened, nil)
	recorder.Record(ctx, stored)
	suite.Require().Empty(logs.String())

	unencodable := suite.entry(activity.ActionStatusChanged, map[string]any{"callback": func() {}})
	recorder.Record(ctx, unencodable, stored)

	// One failure for the entry that could not be encoded, one for the rejected insert.
	suite.Equal(2, strings.Count(logs.String(), "Failed to record activity"))
	suite.Contains(logs.String(), unencodable.ID().String())
	suite.Contains(logs.String(), stored.ID().String())
}
