// Copyright (c) 2026 BGPiesa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package optional provides a tagged "present or absent" value type.

It replaces loosely-typed form strings (where "" means "not set") with an
explicit flag, so that a zero value such as 0 can still be a real filter bound.

Key Functions:
  - Of: Creates a present value.
  - None: Creates an absent value.
*/
package optional

// Value holds either a value of type T or nothing.
//
// The zero Value is absent. Value is comparable whenever T is.
type Value[T comparable] struct {
	value T
	set   bool
}

// Int is the tagged form used for numeric bounds and identifiers.
type Int = Value[int]

// Of returns a present [Value] wrapping v.
func Of[T comparable](v T) Value[T] {
	return Value[T]{value: v, set: true}
}

// None returns an absent [Value].
func None[T comparable]() Value[T] {
	return Value[T]{}
}

// Get returns the wrapped value and whether it is present.
func (v Value[T]) Get() (T, bool) {
	return v.value, v.set
}

// IsSet reports whether a value is present.
func (v Value[T]) IsSet() bool {
	return v.set
}

// OrElse returns the wrapped value or fallback when absent.
func (v Value[T]) OrElse(fallback T) T {
	if !v.set {
		return fallback
	}
	return v.value
}

// Equal reports whether v is present and holds other.
func (v Value[T]) Equal(other T) bool {
	return v.set && v.value == other
}
