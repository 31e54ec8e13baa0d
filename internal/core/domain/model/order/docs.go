// Package order provides the billing side of the prep center: the Order aggregate
// derived from a shipment that reached its billable milestone, and the Invoice that
// may be attached to it.
//
// The package includes:
//   - Order: the aggregate root linking a shipment to the service rendered and its price
//   - Invoice: the append-only billing document, at most one per order
//   - Status: the order state machine
//
// Key business rules:
//   - at most one order exists per shipment
//   - the order's service is the shipment's dominant prep type
//   - order status follows PENDING -> CONFIRMED -> COMPLETED, with CANCELLED from any non-terminal status
//   - exactly one invoice may be attached; a second attempt is a conflict
package order
