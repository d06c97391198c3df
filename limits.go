package dbc

import "fmt"

// Limits configures the maximum capacities a Dbc may hold. The zero value is
// not usable directly; use DefaultLimits to obtain sane defaults.
//
// Two profiles are supported with an identical API: allocating (Bounded =
// false, the default) and bounded (Bounded = true). The bounded profile
// requires every Max* field to be a power of two, mirroring the
// fixed-capacity hash-map backend the original implementation relies on.
// The profile changes only that check: in both profiles the parser,
// builders and Dbc use ordinary growable slices and maps, and nothing is
// preallocated to the Max* capacities.
type Limits struct {
	MaxNameSize             int
	MaxNodes                int
	MaxMessages             int
	MaxSignalsPerMessage    int
	MaxExtendedMultiplexing int
	MaxAttributeDefinitions int
	MaxAttributeValues      int
	MaxAttributeEnumValues  int
	MaxDescriptionLength    int

	// Bounded selects the bounded profile. When true, Validate requires
	// every Max* to be a power of two; container allocation is unchanged.
	Bounded bool
}

// DefaultLimits returns the allocating-profile defaults from the DBC
// capacity table.
func DefaultLimits() Limits {
	return Limits{
		MaxNameSize:             32,
		MaxNodes:                256,
		MaxMessages:             8192,
		MaxSignalsPerMessage:    256,
		MaxExtendedMultiplexing: 512,
		MaxAttributeDefinitions: 256,
		MaxAttributeValues:      4096,
		MaxAttributeEnumValues:  64,
		MaxDescriptionLength:    1024,
		Bounded:                 false,
	}
}

// Validate checks the capacity table for internal consistency. In the
// bounded profile every Max* field must be a power of two.
func (l Limits) Validate() error {
	if !l.Bounded {
		return nil
	}
	fields := map[string]int{
		"MaxNameSize":             l.MaxNameSize,
		"MaxNodes":                l.MaxNodes,
		"MaxMessages":             l.MaxMessages,
		"MaxSignalsPerMessage":    l.MaxSignalsPerMessage,
		"MaxExtendedMultiplexing": l.MaxExtendedMultiplexing,
		"MaxAttributeDefinitions": l.MaxAttributeDefinitions,
		"MaxAttributeValues":      l.MaxAttributeValues,
		"MaxAttributeEnumValues":  l.MaxAttributeEnumValues,
		"MaxDescriptionLength":    l.MaxDescriptionLength,
	}
	for name, v := range fields {
		if !isPowerOfTwo(v) {
			return &ValidationError{Msg: fmt.Sprintf("bounded profile requires %v to be a power of two, got %v", name, v)}
		}
	}
	return nil
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// newSlice returns an empty slice with capacity capHint in bounded mode,
// otherwise with capacity reserve (8 when reserve is not positive). It does
// not limit later growth.
func newSlice[T any](capHint, reserve int, bounded bool) []T {
	if bounded {
		return make([]T, 0, capHint)
	}
	if reserve <= 0 {
		reserve = 8
	}
	return make([]T, 0, reserve)
}
