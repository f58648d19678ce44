package analytics

import (
	"errors"
	"math"

	"transport-stats/domain/transport"
)

// ErrEmptyResult is returned when the filters leave no rows to analyze.
var ErrEmptyResult = errors.New("no matching data")

// ErrUndefinedRatio marks a division by zero or a non-finite quotient. It never
// escapes the package: ratio computations turn it into an unavailable transport.Ratio.
var ErrUndefinedRatio = errors.New("undefined ratio")

func divide(num, den float64) (float64, error) {
	if den == 0 {
		return 0, ErrUndefinedRatio
	}
	v := num / den
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrUndefinedRatio
	}
	return v, nil
}

func ratio(num, den float64) transport.Ratio {
	v, err := divide(num, den)
	if err != nil {
		return transport.Unavailable
	}
	return transport.Known(v)
}
