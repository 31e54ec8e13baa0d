// Package shipment implements the Shipment aggregate and its lifecycle state machine.
//
// A shipment is owned by exactly one client and moves strictly along
//
//	RECEIVED -> INSPECTING -> PREPPING -> QUALITY_CHECK -> READY_TO_SHIP -> SHIPPED
//
// with CANCELLED reachable from every non-terminal state. No edge may be skipped and
// no backward move is allowed. Only floor staff (operators and admins) drive
// transitions; clients never do.
//
// Items belong to their shipment and are frozen once it leaves RECEIVED, except for
// quantity corrections made by an admin.
package shipment
