// Package services provides domain services that coordinate shipments, tasks and
// stations: work that does not belong to a single aggregate root.
//
// The package includes:
//   - TaskPlanner: opens the tasks of a working stage, one per distinct prep type
//   - TaskDispatcher: admits a task onto a station and binds it, picking the eligible
//     station with the most free slots when none is named
//   - StageProgress: decides when finished floor work drives the shipment forward
//   - CompareTasks: the deterministic listing order of tasks
package services
