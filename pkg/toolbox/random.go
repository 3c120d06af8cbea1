package toolbox

import (
	cryptorand "crypto/rand"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// enginePool holds entropy-seeded engines for the string and digit
// generators. Each goroutine borrows an engine for the duration of one call,
// so no engine is ever used concurrently and no sequence is reproducible.
var enginePool = sync.Pool{
	New: func() any { return newEntropyRand() },
}

// newEntropyRand returns a ChaCha8 engine seeded from the OS entropy source.
func newEntropyRand() *rand.Rand {
	var seed [32]byte
	if _, err := cryptorand.Read(seed[:]); err != nil {
		panic("toolbox: reading entropy: " + err.Error())
	}
	return rand.New(rand.NewChaCha8(seed))
}

// NewSeededRand returns a deterministic engine for tests that need to
// replay a sequence. The package-level Random* helpers never use it.
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// RandomIntegerFromRange returns a uniformly distributed value in [lo, hi].
// A fresh entropy-seeded engine is built for every call.
func RandomIntegerFromRange[T Integer](lo, hi T) (T, error) {
	return IntegerFromRange(newEntropyRand(), lo, hi)
}

// IntegerFromRange is RandomIntegerFromRange drawing from r.
func IntegerFromRange[T Integer](r *rand.Rand, lo, hi T) (T, error) {
	if lo > hi {
		return 0, fmt.Errorf("%w: lower bound %v exceeds upper bound %v", ErrInvalidRange, lo, hi)
	}

	// Modular arithmetic keeps the span correct for signed types too.
	span := uint64(hi) - uint64(lo)
	var v T
	if span == math.MaxUint64 {
		v = T(r.Uint64())
	} else {
		v = lo + T(r.Uint64N(span+1))
	}
	Logger().Debug("random integer", zap.Any("lo", lo), zap.Any("hi", hi), zap.Any("value", v))
	return v, nil
}

// RandomRealFromRange returns a uniformly distributed value in [lo, hi).
// When lo == hi the result is lo.
func RandomRealFromRange[T Float](lo, hi T) (T, error) {
	return RealFromRange(newEntropyRand(), lo, hi)
}

// RealFromRange is RandomRealFromRange drawing from r.
func RealFromRange[T Float](r *rand.Rand, lo, hi T) (T, error) {
	if !(lo <= hi) {
		return 0, fmt.Errorf("%w: lower bound %v exceeds upper bound %v", ErrInvalidRange, lo, hi)
	}
	if lo == hi {
		return lo, nil
	}

	// interpolate without forming hi-lo, which overflows for wide ranges
	f := r.Float64()
	v := T(float64(lo)*(1-f) + float64(hi)*f)
	if v >= hi {
		// rounding into the narrower type can land on the open bound
		v = lo
	}
	Logger().Debug("random real", zap.Any("lo", lo), zap.Any("hi", hi), zap.Any("value", v))
	return v, nil
}

// RandomNumberOfLengthN returns a random T whose decimal form has exactly
// length digits and never starts with 0. The length must be positive and
// strictly less than the digit count of T's maximum value, so int32 accepts
// 1 through 9 and uint64 accepts 1 through 19.
func RandomNumberOfLengthN[T Integer](length int) (T, error) {
	r := enginePool.Get().(*rand.Rand)
	defer enginePool.Put(r)
	return NumberOfLengthN[T](r, length)
}

// NumberOfLengthN is RandomNumberOfLengthN drawing from r.
func NumberOfLengthN[T Integer](r *rand.Rand, length int) (T, error) {
	maxDigits := CountDigits(maxOf[T]())
	Logger().Debug("digit request", zap.Int("type_digits", maxDigits), zap.Int("requested", length))
	if length <= 0 || length >= maxDigits {
		return 0, fmt.Errorf("%w: %d digits requested, type allows 1 to %d", ErrInvalidLength, length, maxDigits-1)
	}

	// leading digit is drawn from 1-9, the rest from 0-9
	var n T
	for i := 0; i < length; i++ {
		d := r.IntN(10)
		for i == 0 && d == 0 {
			d = r.IntN(10)
		}
		n = n*10 + T(d)
	}
	return n, nil
}

// RandomStringOfLengthN returns length characters drawn uniformly, with
// replacement, from alphabet. The alphabet is split into runes, so multi-byte
// characters are drawn whole.
func RandomStringOfLengthN(length int, alphabet string) (string, error) {
	r := enginePool.Get().(*rand.Rand)
	defer enginePool.Put(r)
	return StringOfLengthN(r, length, alphabet)
}

// StringOfLengthN is RandomStringOfLengthN drawing from r.
func StringOfLengthN(r *rand.Rand, length int, alphabet string) (string, error) {
	if length < 0 {
		return "", fmt.Errorf("%w: negative string length %d", ErrInvalidLength, length)
	}
	if length == 0 {
		return "", nil
	}
	chars := []rune(alphabet)
	if len(chars) == 0 {
		return "", fmt.Errorf("%w: cannot draw %d characters", ErrEmptyAlphabet, length)
	}

	var sb strings.Builder
	sb.Grow(length)
	for i := 0; i < length; i++ {
		sb.WriteRune(chars[r.IntN(len(chars))])
	}
	return sb.String(), nil
}

// RandomUUID returns a random (version 4) UUID string.
func RandomUUID() string {
	return uuid.NewString()
}
