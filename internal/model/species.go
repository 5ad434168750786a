package model

import (
	"math"
	"strconv"
)

// SpeciesID is the numeric code of a species.
type SpeciesID int64

// String returns the code formatted as "#<id>".
func (id SpeciesID) String() string {
	return "#" + strconv.FormatInt(int64(id), 10)
}

// CheckedAdd returns a+b and false if the sum does not fit in an int64.
func CheckedAdd(a, b int64) (int64, bool) {
	if b > 0 && a > math.MaxInt64-b {
		return 0, false
	}
	if b < 0 && a < math.MinInt64-b {
		return 0, false
	}
	return a + b, true
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
