package gnc

import (
	"fmt"
)

// State is the integrable state of a point mass satellite.
type State struct {
	R Vector  // Position in km
	V Vector  // Velocity in km/s
	M float64 // Mass in kg
}

// Add returns x + h*k, where k is typically a state derivative.
// Position, velocity and mass are always updated together.
func (x State) Add(k State, h float64) State {
	return State{R: x.R.Add(k.R.Scale(h)), V: x.V.Add(k.V.Scale(h)), M: x.M + k.M*h}
}

// String implements the Stringer interface.
func (x State) String() string {
	return fmt.Sprintf("R=%+v V=%+v m=%.3f", x.R, x.V, x.M)
}

// Control is the actuator command, held constant over an integration step.
type Control struct {
	Thrust Vector  // Thrust in N, ECI frame. Must already be clamped to the actuator limit.
	Isp    float64 // Specific impulse in seconds, zero for no propellant accounting.
}

// ForceModel computes the time derivative of a state under a given control.
// Implementations must not mutate their inputs.
type ForceModel interface {
	Derivative(t float64, x State, u Control) State
}

// Dynamics is the two body force model with optional perturbations and thrust.
// The model is autonomous: the time argument is ignored.
type Dynamics struct {
	Body  CelestialObject
	Perts Perturbations
}

// NewDynamics returns a two body model about the given body, with J2 if requested.
func NewDynamics(body CelestialObject, j2 bool) Dynamics {
	return Dynamics{Body: body, Perts: Perturbations{J2: j2}}
}

// Derivative implements the ForceModel interface.
func (d Dynamics) Derivative(_ float64, x State, u Control) State {
	acc := twoBodyAcc(d.Body.μ, x.R)
	acc = acc.Add(d.Perts.Perturb(d.Body, x))
	acc = acc.Add(thrustAcc(u.Thrust, x.M))
	return State{
		R: x.V,
		V: acc,
		M: massFlow(u.Thrust.Norm(), u.Isp),
	}
}

// twoBodyAcc returns -μ*r/|r|^3.
func twoBodyAcc(μ float64, R Vector) Vector {
	r := R.Norm()
	return R.Scale(-μ / (r * r * r))
}

// thrustAcc converts a thrust in N into an acceleration in km/s^2.
// A non positive mass does not accelerate.
func thrustAcc(thrust Vector, mass float64) Vector {
	if mass <= 0 {
		return Vector{}
	}
	return thrust.Div(1000).Div(mass)
}

// massFlow returns the mass flow in kg/s for a thrust (N) and Isp (s).
// No Isp means no propellant accounting.
func massFlow(thrust, isp float64) float64 {
	if isp > 0 {
		return -thrust / (isp * G0)
	}
	return 0
}

