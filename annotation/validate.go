package annotation

import (
	"fmt"
	"math"
)

// ValidationError reports an annotation that breaks a structural invariant.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Msg: fmt.Sprintf(format, args...)}
}

type column struct {
	name string
	n    int
}

// validateLengths fails unless every column has the length of the first.
func validateLengths(cols ...column) error {
	if len(cols) == 0 {
		return nil
	}
	want := cols[0]
	for _, c := range cols[1:] {
		if c.n != want.n {
			return invalid(c.name, "length %d does not match %s length %d", c.n, want.name, want.n)
		}
	}
	return nil
}

// validateTimes requires non-negative, strictly increasing times.
func validateTimes(times []float64) error {
	for i, t := range times {
		if !(t >= 0) || math.IsInf(t, 1) {
			return invalid("times", "time %v at index %d is not a non-negative number", t, i)
		}
		if i > 0 && !(t > times[i-1]) {
			return invalid("times", "time %v at index %d does not increase from %v", t, i, times[i-1])
		}
	}
	return nil
}

func validateIntervals(intervals []Interval) error {
	for i, iv := range intervals {
		if !(iv.Start >= 0) || math.IsInf(iv.Start, 1) {
			return invalid("intervals", "interval %d starts at %v, not a non-negative time", i, iv.Start)
		}
		if !(iv.End > iv.Start) || math.IsInf(iv.End, 1) {
			return invalid("intervals", "interval %d ends at %v, not after its start %v", i, iv.End, iv.Start)
		}
	}
	return nil
}

func validateConfidence(confidence []float64) error {
	for i, c := range confidence {
		if !(c >= 0 && c <= 1) {
			return invalid("confidence", "value %v at index %d is outside [0, 1]", c, i)
		}
	}
	return nil
}
