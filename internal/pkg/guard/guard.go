// Package guard marks values that were built through their constructors so that zero
// values of aggregates, commands and queries can be told apart from valid ones.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded as a private field. Only NewConstructorGuard produces a
// guard that validates, so a struct literal or zero value of the owner fails Validate.
//
//	type Station struct {
//	    name  string
//	    guard guard.ConstructorGuard
//	}
//
//	func (s *Station) Validate() error {
//	    return s.guard.Validate(ErrStationIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marking its owner as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil) unless
// the guard came from NewConstructorGuard.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
