// Package kernel holds the shared value objects every aggregate of the prep center
// engine builds on: identifiers and monetary amounts.
//
// Value objects in this package are immutable. Their zero values are invalid and
// fail Validate, so an uninitialized identifier or amount is caught at the aggregate
// boundary instead of being written to the record store.
package kernel
