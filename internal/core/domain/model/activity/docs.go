// Package activity holds the two records every mutation may leave behind: an
// append-only audit Entry and a per-user Notification.
//
// Entries are immutable. Nothing in the engine updates or deletes them. A
// notification's read flag only ever moves from false to true.
package activity
