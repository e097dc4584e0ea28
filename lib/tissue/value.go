// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

package tissue

import (
	"maps"
	"math"
	"slices"
)

// Value is the tagged representation of an arbitrary TOML value
// carried in a tissue's Extra fields. The concrete variants are
// String, Integer, Float, Boolean, Datetime, Array, and Table; no
// other type implements the interface. Keeping the variants closed is
// what lets the serializer re-emit every unrecognized field without
// losing its type.
type Value interface {
	// Equal reports deep structural equality with another value.
	// Values of different variants are never equal.
	Equal(other Value) bool

	value() // sealed
}

// String is a TOML string value.
type String string

func (String) value() {}

// Equal reports whether other is a String with the same text.
func (v String) Equal(other Value) bool {
	o, ok := other.(String)
	return ok && v == o
}

// Integer is a TOML integer value.
type Integer int64

func (Integer) value() {}

// Equal reports whether other is an Integer with the same value.
func (v Integer) Equal(other Value) bool {
	o, ok := other.(Integer)
	return ok && v == o
}

// Float is a TOML float value.
type Float float64

func (Float) value() {}

// Equal reports whether other is a Float with the same value. NaN
// compares equal to NaN so that round-tripped boxes remain equal.
func (v Float) Equal(other Value) bool {
	o, ok := other.(Float)
	if !ok {
		return false
	}
	if math.IsNaN(float64(v)) && math.IsNaN(float64(o)) {
		return true
	}
	return v == o
}

// Datetime is a TOML date, time, or date-time kept as its canonical
// text form. Holding text rather than time.Time preserves the four
// TOML date-time flavors (offset date-time, local date-time, local
// date, local time) without a lossy conversion, and the text re-emits
// directly as a bare TOML value.
type Datetime string

func (Datetime) value() {}

// Equal reports whether other is a Datetime with the same canonical
// text.
func (v Datetime) Equal(other Value) bool {
	o, ok := other.(Datetime)
	return ok && v == o
}

// Boolean is a TOML boolean value.
type Boolean bool

func (Boolean) value() {}

// Equal reports whether other is a Boolean with the same value.
func (v Boolean) Equal(other Value) bool {
	o, ok := other.(Boolean)
	return ok && v == o
}

// Array is an ordered sequence of values.
type Array []Value

func (Array) value() {}

// Equal reports element-wise deep equality with the same length and
// order.
func (v Array) Equal(other Value) bool {
	o, ok := other.(Array)
	return ok && slices.EqualFunc(v, o, Value.Equal)
}

// Table is a mapping of keys to values. Key order in the source is
// not preserved; serialization sorts keys.
type Table map[string]Value

func (Table) value() {}

// Equal reports key-wise deep equality.
func (v Table) Equal(other Value) bool {
	o, ok := other.(Table)
	return ok && maps.EqualFunc(v, o, Value.Equal)
}

// cloneValue deep-copies a value. Scalars are immutable and return
// themselves; arrays and tables copy their containers recursively.
func cloneValue(v Value) Value {
	switch v := v.(type) {
	case Array:
		clone := make(Array, len(v))
		for i, element := range v {
			clone[i] = cloneValue(element)
		}
		return clone
	case Table:
		clone := make(Table, len(v))
		for key, element := range v {
			clone[key] = cloneValue(element)
		}
		return clone
	default:
		return v
	}
}
