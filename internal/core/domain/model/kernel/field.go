package kernel

// Field carries one attribute of a partial update. An absent field leaves the stored
// value untouched; a present field replaces it. For pointer types a present nil value
// is an explicit clear.
//
//	kernel.Absent[*kernel.UUID]()   // leave the operator binding as is
//	kernel.Present[*kernel.UUID](nil) // unbind the operator
type Field[T any] struct {
	present bool
	value   T
}

// Absent returns a field that leaves the stored value unchanged.
func Absent[T any]() Field[T] {
	return Field[T]{}
}

// Present returns a field that replaces the stored value with v.
func Present[T any](v T) Field[T] {
	return Field[T]{present: true, value: v}
}

// IsPresent reports whether the caller supplied the field.
func (f Field[T]) IsPresent() bool {
	return f.present
}

// Value returns the supplied value and whether it was supplied.
func (f Field[T]) Value() (T, bool) {
	return f.value, f.present
}
