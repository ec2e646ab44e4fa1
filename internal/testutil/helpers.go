// Package testutil provides test signals and assertion helpers shared by the
// resampler packages.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// AssertSymmetric verifies s[i] == s[n-1-i] within tolerance.
func AssertSymmetric(tb testing.TB, s []float64, tolerance float64) bool {
	tb.Helper()
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		if !assert.InDelta(tb, s[i], s[j], tolerance, "not symmetric: s[%d]=%g, s[%d]=%g", i, s[i], j, s[j]) {
			return false
		}
	}
	return true
}

// AssertNoNaNOrInf verifies every element is finite.
func AssertNoNaNOrInf(tb testing.TB, s []float64) bool {
	tb.Helper()
	for i, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return assert.Fail(tb, "non-finite value", "s[%d] = %v", i, v)
		}
	}
	return true
}

// AssertDCGain verifies the coefficients sum to the expected gain.
func AssertDCGain(tb testing.TB, coeffs []float64, want, tolerance float64) bool {
	tb.Helper()
	sum := 0.0
	for _, c := range coeffs {
		sum += c
	}
	return assert.InDelta(tb, want, sum, tolerance, "DC gain = %g, want %g", sum, want)
}

// AssertCenterIsMax verifies no element exceeds the middle one.
func AssertCenterIsMax(tb testing.TB, s []float64) bool {
	tb.Helper()
	if len(s) == 0 {
		return assert.Fail(tb, "empty slice")
	}
	c := len(s) / 2
	for i, v := range s {
		if v > s[c] {
			return assert.Fail(tb, "center is not max", "s[%d]=%g > s[%d]=%g", i, v, c, s[c])
		}
	}
	return true
}

// AssertRelativeError verifies |actual-expected|/|expected| <= tolerance.
func AssertRelativeError(tb testing.TB, expected, actual, tolerance float64) bool {
	tb.Helper()
	if expected == 0 {
		return assert.InDelta(tb, expected, actual, tolerance)
	}
	rel := math.Abs(actual-expected) / math.Abs(expected)
	return assert.LessOrEqual(tb, rel, tolerance,
		"relative error %e exceeds %e (expected=%g, actual=%g)", rel, tolerance, expected, actual)
}

// AssertOddLength verifies len(s) is odd.
func AssertOddLength(tb testing.TB, s []float64) bool {
	tb.Helper()
	return assert.Equal(tb, 1, len(s)%2, "length %d is not odd", len(s))
}

// AssertAllZero verifies every byte is zero.
func AssertAllZero(tb testing.TB, b []byte) bool {
	tb.Helper()
	for i, v := range b {
		if v != 0 {
			return assert.Fail(tb, "non-zero byte", "b[%d] = %#x", i, v)
		}
	}
	return true
}
