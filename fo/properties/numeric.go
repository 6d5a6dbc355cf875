package properties

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"strconv"

	"golang.org/x/image/math/fixed"
)

// Unit tells how the integer of a [Numeric] must be read.
type Unit uint8

const (
	Absolute   Unit = iota // millipoints
	Percentage             // thousandths of a percent, requires a basis
	Em                     // thousandths of an em, requires a font size
)

// ErrIncompatibleQuantity is returned by arithmetic on quantities which
// can't be combined, typically a percentage whose basis is not known yet.
var ErrIncompatibleQuantity = errors.New("incompatible quantity")

// ErrOverflow is returned when the result of an operation
// does not fit in the numeric representation.
var ErrOverflow = errors.New("numeric overflow")

// QuantityError reports the operands of a failed numeric operation.
type QuantityError struct {
	Op       string
	A, B     Numeric
	Overflow bool // else the operands are incompatible
}

func (e *QuantityError) Error() string {
	if e.Overflow {
		return fmt.Sprintf("numeric overflow: %s %s %s", e.A, e.Op, e.B)
	}
	return fmt.Sprintf("incompatible quantity: %s %s %s", e.A, e.Op, e.B)
}

func (e *QuantityError) Is(target error) bool {
	if e.Overflow {
		return target == ErrOverflow
	}
	return target == ErrIncompatibleQuantity
}

// Numeric is an exact fixed-point quantity.
// Absolute lengths are stored in millipoints so that long chains
// of additions through a tree never drift.
type Numeric struct {
	Value int64
	Unit  Unit
}

func (Numeric) isProperty() {}

// Zero returns an absolute zero length.
func Zero() Numeric { return Numeric{} }

// Millipoints returns an absolute length of v thousandths of a point.
func Millipoints(v int64) Numeric { return Numeric{Value: v} }

// Points returns the absolute length closest to pt points.
func Points(pt float64) Numeric { return Numeric{Value: int64(math.Round(pt * 1000))} }

// Percent returns an unresolved percentage.
func Percent(p float64) Numeric {
	return Numeric{Value: int64(math.Round(p * 1000)), Unit: Percentage}
}

// Ems returns a length relative to the font size.
func Ems(e float64) Numeric { return Numeric{Value: int64(math.Round(e * 1000)), Unit: Em} }

func (n Numeric) IsAbsolute() bool { return n.Unit == Absolute }

// Add returns a + b.
func Add(a, b Numeric) (Numeric, error) {
	if !a.IsAbsolute() || !b.IsAbsolute() {
		return Numeric{}, &QuantityError{Op: "+", A: a, B: b}
	}
	s := a.Value + b.Value
	if (b.Value > 0 && s < a.Value) || (b.Value < 0 && s > a.Value) {
		return Numeric{}, &QuantityError{Op: "+", A: a, B: b, Overflow: true}
	}
	return Numeric{Value: s}, nil
}

// Subtract returns a - b.
func Subtract(a, b Numeric) (Numeric, error) {
	if !a.IsAbsolute() || !b.IsAbsolute() {
		return Numeric{}, &QuantityError{Op: "-", A: a, B: b}
	}
	d := a.Value - b.Value
	if (b.Value > 0 && d > a.Value) || (b.Value < 0 && d < a.Value) {
		return Numeric{}, &QuantityError{Op: "-", A: a, B: b, Overflow: true}
	}
	return Numeric{Value: d}, nil
}

// Resolve converts a relative quantity to an absolute length,
// using the absolute [basis] (the font size for em, the reference
// length for percentages). Absolute quantities are returned unchanged.
func (n Numeric) Resolve(basis Numeric) (Numeric, error) {
	var scale int64
	switch n.Unit {
	case Absolute:
		return n, nil
	case Em:
		scale = 1000
	case Percentage:
		scale = 100_000
	}
	if scale == 0 || !basis.IsAbsolute() {
		return Numeric{}, &QuantityError{Op: "of", A: n, B: basis}
	}
	prod, ok := mul(n.Value, basis.Value)
	if !ok {
		return Numeric{}, &QuantityError{Op: "of", A: n, B: basis, Overflow: true}
	}
	return Numeric{Value: roundDiv(prod, scale)}, nil
}

// Fixed converts an absolute length to the 26.6 fixed-point
// representation used by font and rasterization code.
func (n Numeric) Fixed() fixed.Int26_6 {
	return fixed.Int26_6(roundDiv(n.Value*64, 1000))
}

func (n Numeric) String() string {
	s := strconv.FormatFloat(float64(n.Value)/1000, 'f', -1, 64)
	switch n.Unit {
	case Percentage:
		return s + "%"
	case Em:
		return s + "em"
	default:
		return s + "pt"
	}
}

// AsNumeric returns the quantity stored in [p], or an error wrapping
// [ErrIncompatibleQuantity] for non numeric values.
func AsNumeric(p Property) (Numeric, error) {
	if n, ok := p.(Numeric); ok {
		return n, nil
	}
	return Numeric{}, fmt.Errorf("%w: %v is not a length", ErrIncompatibleQuantity, p)
}

// roundDiv returns x / d rounded half away from zero, for d > 0
func roundDiv(x, d int64) int64 {
	q, r := x/d, x%d
	switch {
	case r < 0 && -2*r >= d:
		q--
	case r > 0 && 2*r >= d:
		q++
	}
	return q
}

// mul returns a * b, and false if the product does not fit in an int64
func mul(a, b int64) (int64, bool) {
	neg := (a < 0) != (b < 0)
	hi, lo := bits.Mul64(absU64(a), absU64(b))
	limit := uint64(math.MaxInt64)
	if neg {
		limit++
	}
	if hi != 0 || lo > limit {
		return 0, false
	}
	if neg {
		return -int64(lo), true
	}
	return int64(lo), true
}

func absU64(v int64) uint64 {
	if v < 0 {
		return -uint64(v)
	}
	return uint64(v)
}
