package errors

import (
	"math"
	"slices"
	"strings"
)

// ValidateOneOf checks that value is one of allowed. The parameter name is
// echoed in the message together with the received and expected values.
func ValidateOneOf(param, value string, allowed []string) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	return New(ErrCodeInvalidValue, "%s must be one of {%s}, not %q", param, strings.Join(allowed, ", "), value)
}

// ValidateLength checks that a per-node vector has exactly want entries.
func ValidateLength(param string, got, want int) error {
	if got != want {
		return New(ErrCodeDimensionMismatch, "length of %s (%d) must match number of vertices (%d)", param, got, want)
	}
	return nil
}

// ValidatePositive rejects non-positive and non-finite numbers.
func ValidatePositive(param string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return New(ErrCodeInvalidValue, "%s must be a positive number, not %v", param, v)
	}
	return nil
}

// ValidateFigSize checks both dimensions of a figure size in inches.
func ValidateFigSize(param string, width, height float64) error {
	if err := ValidatePositive(param+" width", width); err != nil {
		return err
	}
	return ValidatePositive(param+" height", height)
}

// ValidateUnit checks that v lies in the closed interval [0, 1].
// Alpha values and desaturation factors use this range.
func ValidateUnit(param string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return New(ErrCodeInvalidValue, "%s must be in [0, 1], not %v", param, v)
	}
	return nil
}

// ValidateNonNegativeInt rejects negative counts.
func ValidateNonNegativeInt(param string, v int) error {
	if v < 0 {
		return New(ErrCodeInvalidValue, "%s must be non-negative, not %d", param, v)
	}
	return nil
}

// ValidateSquare checks that a matrix is square.
func ValidateSquare(param string, rows, cols int) error {
	if rows != cols {
		return New(ErrCodeDimensionMismatch, "%s must be a square matrix, got %dx%d", param, rows, cols)
	}
	return nil
}

// ValidateRange checks that lo < hi for a (min, max) pair.
func ValidateRange(param string, lo, hi float64) error {
	if math.IsNaN(lo) || math.IsNaN(hi) || lo >= hi {
		return New(ErrCodeInvalidValue, "%s must satisfy min < max, got (%v, %v)", param, lo, hi)
	}
	return nil
}
