// Package jobs provides scheduled background tasks for the prep center.
//
// Jobs are cron-based (github.com/robfig/cron/v3, six-field expressions with
// seconds) and never take part in the request path.
//
// # Available Jobs
//
// AuditRelayJob reads new status_changed entries from the audit log and
// publishes them to Kafka. Its cursor is persisted after every accepted batch,
// so a restart resumes where the last run stopped and a failed publish is
// retried on the next tick. Overlapping runs are skipped.
//
// # Usage
//
//	relay := jobs.NewAuditRelayJob(feed, publisher, "*/5 * * * * *", 100, logger)
//	jobManager := jobs.NewJobManager(relay)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
package jobs
