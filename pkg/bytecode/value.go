package bytecode

import (
	"math"
	"strconv"
)

// Value is the runtime operand type: a double-precision number.
type Value float64

// String renders the value in plain decimal notation, the shortest form that
// round-trips.
func (v Value) String() string {
	f := float64(v)
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
