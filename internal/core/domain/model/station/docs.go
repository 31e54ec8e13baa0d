// Package station implements the Station aggregate owned by the capacity manager.
//
// A station is a physical work location with a bounded number of concurrently active
// tasks. Its active load is the number of PENDING or IN_PROGRESS tasks bound to it.
// The load is never stored on the station: callers count it under the station's row
// lock and pass it to Admit or Apply, so an admission decision and the write it
// guards always happen in the same transaction.
package station
