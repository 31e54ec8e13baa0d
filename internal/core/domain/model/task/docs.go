// Package task implements the Task aggregate routed by the scheduler.
//
// A task is one unit of prep work on a shipment. It is opened PENDING and unbound
// when its shipment enters a working stage, bound to a station (and optionally an
// operator) by assignment, and closed as DONE or CANCELLED. Open tasks, PENDING or
// IN_PROGRESS, count toward the load of the station they are bound to.
package task
