package gnc

import (
	"fmt"
	"math"

	"github.com/gonum/floats"
	"github.com/pkg/errors"
)

const (
	// Below this, the node vector or the eccentricity is considered null.
	degeneracyε = 1e-10
)

var (
	// ErrInvalidSMA is returned when the semi major axis is not positive.
	ErrInvalidSMA = errors.New("semi major axis must be positive")
	// ErrUnboundOrbit is returned for parabolic and hyperbolic orbits, which are not supported.
	ErrUnboundOrbit = errors.New("eccentricity must be in [0, 1)")
	// ErrNaNElement is returned when any element is NaN.
	ErrNaNElement = errors.New("orbital element is NaN")
)

// OrbitalElements are the Keplerian elements. Angles are stored in radians.
type OrbitalElements struct {
	SMA      float64 // Semi major axis, km
	Ecc      float64 // Eccentricity
	Inc      float64 // Inclination
	RAAN     float64 // Right ascension of the ascending node
	ArgPeri  float64 // Argument of periapsis
	TAnomaly float64 // True anomaly
}

// NewOrbitalElements returns the orbital elements.
// WARNING: Angles must be in degrees not radian.
func NewOrbitalElements(a, e, i, Ω, ω, ν float64) OrbitalElements {
	return OrbitalElements{a, e, Deg2rad(i), Deg2rad(Ω), Deg2rad(ω), Deg2rad(ν)}
}

// SemiParameter returns the semi parameter p.
func (oe OrbitalElements) SemiParameter() float64 {
	return oe.SMA * (1 - oe.Ecc*oe.Ecc)
}

// Apoapsis returns the apoapsis radius.
func (oe OrbitalElements) Apoapsis() float64 {
	return oe.SMA * (1 + oe.Ecc)
}

// Periapsis returns the periapsis radius.
func (oe OrbitalElements) Periapsis() float64 {
	return oe.SMA * (1 - oe.Ecc)
}

// Period returns the period in seconds about a body.
func (oe OrbitalElements) Period(c CelestialObject) float64 {
	return 2 * math.Pi * math.Sqrt(math.Pow(oe.SMA, 3)/c.μ)
}

// Energyξ returns the specific mechanical energy ξ.
func (oe OrbitalElements) Energyξ(c CelestialObject) float64 {
	return -c.μ / (2 * oe.SMA)
}

// Validate returns an error if these elements cannot describe a bound orbit.
// Propagation never calls this: it is meant for callers accepting user input.
func (oe OrbitalElements) Validate() error {
	for _, v := range []float64{oe.SMA, oe.Ecc, oe.Inc, oe.RAAN, oe.ArgPeri, oe.TAnomaly} {
		if math.IsNaN(v) {
			return ErrNaNElement
		}
	}
	if oe.SMA <= 0 {
		return ErrInvalidSMA
	}
	if oe.Ecc < 0 || oe.Ecc >= 1 {
		return ErrUnboundOrbit
	}
	return nil
}

// Equals returns whether both element sets are equal within the tolerance, with angles
// compared modulo 2π. The semi major axis is compared relatively.
func (oe OrbitalElements) Equals(o1 OrbitalElements, ε float64) (bool, error) {
	if !floats.EqualWithinRel(oe.SMA, o1.SMA, ε) {
		return false, errors.New("semi major axis invalid")
	}
	if !floats.EqualWithinAbs(oe.Ecc, o1.Ecc, ε) {
		return false, errors.New("eccentricity invalid")
	}
	if !anglesEqualWithin(oe.Inc, o1.Inc, ε) {
		return false, errors.New("inclination invalid")
	}
	if !anglesEqualWithin(oe.RAAN, o1.RAAN, ε) {
		return false, errors.New("RAAN invalid")
	}
	if !anglesEqualWithin(oe.ArgPeri, o1.ArgPeri, ε) {
		return false, errors.New("argument of periapsis invalid")
	}
	if !anglesEqualWithin(oe.TAnomaly, o1.TAnomaly, ε) {
		return false, errors.New("true anomaly invalid")
	}
	return true, nil
}

// String implements the stringer interface (hence the value receiver)
func (oe OrbitalElements) String() string {
	return fmt.Sprintf("a=%.1f e=%.4f i=%.3f Ω=%.3f ω=%.3f ν=%.3f", oe.SMA, oe.Ecc, Rad2deg(oe.Inc), Rad2deg(oe.RAAN), Rad2deg(oe.ArgPeri), Rad2deg(oe.TAnomaly))
}

func anglesEqualWithin(a, b, ε float64) bool {
	diff := math.Abs(NormalizeAngle(a) - NormalizeAngle(b))
	return diff < ε || math.Abs(diff-2*math.Pi) < ε
}

// ElementsToState returns the ECI position and velocity vectors of the provided elements.
func ElementsToState(oe OrbitalElements, c CelestialObject) (R, V Vector) {
	p := oe.SemiParameter()
	sinν, cosν := math.Sincos(oe.TAnomaly)
	r := p / (1 + oe.Ecc*cosν)
	h := math.Sqrt(c.μ * p)

	R = Vector{r * cosν, r * sinν, 0}
	V = Vector{-c.μ / h * sinν, c.μ / h * (oe.Ecc + cosν), 0}

	dcm := R3R1R3(-oe.ArgPeri, -oe.Inc, -oe.RAAN)
	return MxV33(dcm, R), MxV33(dcm, V)
}

// ElementsFromState returns the orbital elements from the R and V vectors.
// Parabolic and hyperbolic orbits are not supported and may return NaN or Inf.
func ElementsFromState(R, V Vector, c CelestialObject) OrbitalElements {
	hVec := R.Cross(V)
	h := hVec.Norm()
	hHat := hVec.Unit()
	i := math.Acos(Clamp(hVec.Z/h, -1, 1))

	n := Vector{-hVec.Y, hVec.X, 0}
	nNorm := n.Norm()

	r := R.Norm()
	v := V.Norm()
	eVec := V.Cross(hVec).Div(c.μ).Sub(R.Div(r))
	e := eVec.Norm()

	a := 1 / (2/r - v*v/c.μ)

	var Ω float64
	if nNorm > degeneracyε {
		Ω = NormalizeAngle(math.Atan2(n.Y, n.X))
	}

	// NOTE: the fallbacks below are conventions, not physics. A circular orbit has
	// no periapsis so ω is zero, and an eccentric equatorial orbit has no node so ω
	// is measured from the X axis.
	var ω, ν float64
	switch {
	case e > degeneracyε && nNorm > degeneracyε:
		ω = signedAngle(n, eVec, hHat)
		ν = trueAnomaly(eVec, R, V)
	case e > degeneracyε:
		ω = math.Atan2(eVec.Y, eVec.X)
		ν = trueAnomaly(eVec, R, V)
	case nNorm > degeneracyε:
		// Circular inclined: argument of latitude.
		ν = signedAngle(n, R, hHat)
	default:
		// Circular equatorial: true longitude.
		ν = math.Atan2(R.Y, R.X)
	}

	return OrbitalElements{a, e, i, Ω, NormalizeAngle(ω), NormalizeAngle(ν)}
}

// trueAnomaly returns the angle from the eccentricity vector to the position,
// past π when moving towards periapsis.
func trueAnomaly(eVec, R, V Vector) float64 {
	ν := math.Atan2(eVec.Cross(R).Norm(), eVec.Dot(R))
	if R.Dot(V) < 0 {
		ν = 2*math.Pi - ν
	}
	return ν
}

// Radii2ae returns the semi major axis and the eccentricty from the radii.
func Radii2ae(rA, rP float64) (a, e float64) {
	if rA < rP {
		panic("periapsis cannot be greater than apoapsis")
	}
	a = (rP + rA) / 2
	e = (rA - rP) / (rA + rP)
	return
}
