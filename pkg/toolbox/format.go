package toolbox

import (
	"fmt"
	"math"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Integer is any built-in integer type.
type Integer interface {
	constraints.Integer
}

// Float is any built-in floating-point type.
type Float interface {
	constraints.Float
}

// CountDigits returns the number of base-10 digits in n by repeated division.
// The sign is not counted. CountDigits(0) is 0, not 1.
func CountDigits[T Integer](n T) int {
	count := 0
	for n != 0 {
		n /= 10
		count++
	}
	return count
}

// ToString formats any value the way fmt.Print would.
func ToString(v any) string {
	return fmt.Sprint(v)
}

// EqualToNDecimalPlaces reports whether |a-b| < 10^-places.
//
// This is a tolerance check in single precision, not a comparison of the
// first n decimals: for large magnitudes the float32 spacing can exceed the
// tolerance, in which case only exactly equal values compare equal.
func EqualToNDecimalPlaces(a, b float32, places int) bool {
	epsilon := float32(math.Pow(10, -float64(places)))
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < epsilon
}

// NumberAsBinary renders the bit pattern of num, most significant bit first,
// padded to the full width of T. When shorten is set only the low half of
// the bits is rendered.
func NumberAsBinary[T Integer](num T, shorten bool) string {
	size := bitWidth[T]()
	if shorten {
		size /= 2
	}

	u := uint64(num)
	buf := make([]byte, size)
	for i := size - 1; i >= 0; i-- {
		buf[size-1-i] = '0' + byte((u>>uint(i))&1)
	}
	return string(buf)
}

func bitWidth[T Integer]() int {
	var zero T
	return int(unsafe.Sizeof(zero)) * 8
}

// maxOf returns the largest value representable by T.
func maxOf[T Integer]() T {
	var zero T
	if ^zero < zero {
		// signed: clear the sign bit
		return ^(T(1) << (bitWidth[T]() - 1))
	}
	return ^zero
}
