// Package ports defines the contracts between the prep center core and its adapters:
// per-aggregate repositories bound to a unit of work, the audit recorder, the
// pricing collaborator and the principal directory.
//
// Repositories returned by a UnitOfWork execute inside its transaction. Methods named
// ...ForUpdate take a row lock (SELECT ... FOR UPDATE) that is held until the unit of
// work commits or rolls back. Callers acquire locks in a fixed order to stay clear of
// deadlocks: shipment, then task, then stations in ascending id order.
package ports
