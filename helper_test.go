package gnc

import (
	"fmt"
	"math"
	"testing"

	"github.com/gonum/floats"
)

const eps = 1e-9

func assertPanic(t *testing.T, f func()) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("code did not panic")
		}
	}()
	f()
}

// vectorsEqual returns whether two vectors are equal within a relative tolerance.
func vectorsEqual(a, b Vector, ε float64) bool {
	return floats.EqualApprox(a.Slice(), b.Slice(), ε)
}

// anglesEqual returns whether two angles in radians are equal.
func anglesEqual(a, b float64) (bool, error) {
	diff := math.Abs(NormalizeAngle(a) - NormalizeAngle(b))
	if diff < eps || math.Abs(diff-2*math.Pi) < eps {
		return true, nil
	}
	return false, fmt.Errorf("difference of %3.10fπ", diff/math.Pi)
}
