package gnc

import (
	"strings"

	"github.com/pkg/errors"
)

const (
	// G0 is the standard gravity in m/s^2, used for mass flow from Isp.
	G0 = 9.80665
)

// CelestialObject defines the central body of an orbit.
type CelestialObject struct {
	Name   string
	Radius float64 // km
	μ      float64 // km^3/s^2
	J2     float64
}

// NewCelestialObject returns a central body from its gravitational parameter, radius and J2.
func NewCelestialObject(name string, μ, radius, j2 float64) CelestialObject {
	return CelestialObject{Name: name, Radius: radius, μ: μ, J2: j2}
}

// GM returns μ (which is unexported because it's a lowercase letter)
func (c CelestialObject) GM() float64 {
	return c.μ
}

// String implements the Stringer interface.
func (c CelestialObject) String() string {
	return c.Name + " body"
}

// Equals returns whether the provided celestial object is the same.
func (c CelestialObject) Equals(b CelestialObject) bool {
	return c.Name == b.Name && c.Radius == b.Radius && c.μ == b.μ && c.J2 == b.J2
}

// CelestialObjectFromString returns the object from its name.
func CelestialObjectFromString(name string) (CelestialObject, error) {
	switch strings.ToLower(name) {
	case "earth", "":
		return Earth, nil
	default:
		return CelestialObject{}, errors.Errorf("undefined planet '%s'", name)
	}
}

// Earth is home.
var Earth = CelestialObject{"Earth", 6371.0, 398600.4418, 1.08263e-3}
