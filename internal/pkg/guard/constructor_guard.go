// Package guard provides ConstructorGuard, which lets value objects, commands
// and queries detect that they were built through their constructor rather than
// as a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by ConstructorGuard.Validate when the
// guarded object is a zero value and no specific error was supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as properly constructed. Embed it in a struct
// and set it from the constructor with NewConstructorGuard.
//
// Example usage:
//
//	var ErrNoteCommandNotConstructed = errors.New("AddOrderNoteCommand must be created via NewAddOrderNoteCommand")
//
//	type AddOrderNoteCommand struct {
//	    orderID kernel.UUID
//	    text    string
//	    guard   guard.ConstructorGuard
//	}
//
//	func (c AddOrderNoteCommand) Validate() error {
//	    return c.guard.Validate(ErrNoteCommandNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that reports the owner as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
