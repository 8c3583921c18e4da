package gnc

import (
	"math"

	"github.com/gonum/matrix/mat64"
)

// PQW2ECI converts a vector from the perifocal (PQW) frame to the ECI frame
// for the provided inclination, argument of periapsis and RAAN (in radians).
func PQW2ECI(i, ω, Ω float64, v Vector) Vector {
	return MxV33(R3R1R3(-ω, -i, -Ω), v)
}

// R3R1R3 performs a 3-1-3 Euler parameter rotation, i.e. R3(θ3)*R1(θ2)*R3(θ1).
// From Schaub and Junkins.
func R3R1R3(θ1, θ2, θ3 float64) *mat64.Dense {
	sθ1, cθ1 := math.Sincos(θ1)
	sθ2, cθ2 := math.Sincos(θ2)
	sθ3, cθ3 := math.Sincos(θ3)
	return mat64.NewDense(3, 3, []float64{cθ3*cθ1 - sθ3*cθ2*sθ1, cθ3*sθ1 + sθ3*cθ2*cθ1, sθ3 * sθ2,
		-sθ3*cθ1 - cθ3*cθ2*sθ1, -sθ3*sθ1 + cθ3*cθ2*cθ1, cθ3 * sθ2,
		sθ2 * sθ1, -sθ2 * cθ1, cθ2})
}

// MxV33 multiplies a 3x3 matrix with a vector. Note that there is no dimension check!
func MxV33(m mat64.Matrix, v Vector) Vector {
	var rVec mat64.Vector
	rVec.MulVec(m, mat64.NewVector(3, v.Slice()))
	return Vector{rVec.At(0, 0), rVec.At(1, 0), rVec.At(2, 0)}
}

// VNC2ECI converts a vector expressed in the velocity-normal-conormal frame
// of the provided state into the ECI frame.
func VNC2ECI(R, V, vnc Vector) Vector {
	vHat := V.Unit()
	nHat := R.Cross(V).Unit()
	cHat := vHat.Cross(nHat)
	dcm := mat64.NewDense(3, 3, []float64{
		vHat.X, nHat.X, cHat.X,
		vHat.Y, nHat.Y, cHat.Y,
		vHat.Z, nHat.Z, cHat.Z})
	return MxV33(dcm, vnc)
}
