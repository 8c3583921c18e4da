package gnc

import (
	"math"

	kitlog "github.com/go-kit/kit/log"
)

// Satellite is a point mass satellite. It owns its state and is not safe for
// concurrent use, but distinct satellites share nothing.
type Satellite struct {
	Name        string
	elements    OrbitalElements
	state       State
	control     Control
	time        float64 // Elapsed seconds
	thrustLimit float64 // N
	body        CelestialObject
	j2          bool
	model       ForceModel
	integrator  Integrator
	logger      kitlog.Logger
	collided    bool
}

// NewSatellite returns a satellite about Earth from its orbital elements.
// WARNING: Angles must be in degrees not radian.
func NewSatellite(a, e, i, Ω, ω, ν, mass, isp, thrustLimit float64) *Satellite {
	oe := NewOrbitalElements(a, e, i, Ω, ω, ν)
	R, V := ElementsToState(oe, Earth)
	sc := newSatellite(State{R, V, mass}, isp, thrustLimit)
	sc.elements = oe
	return sc
}

// NewSatelliteFromState returns a satellite about Earth from its ECI position (km) and velocity (km/s).
func NewSatelliteFromState(R, V Vector, mass, isp, thrustLimit float64) *Satellite {
	sc := newSatellite(State{R, V, mass}, isp, thrustLimit)
	sc.elements = ElementsFromState(R, V, sc.body)
	return sc
}

// NewSatelliteWithThruster is like NewSatellite with the Isp and thrust limit of the thruster.
func NewSatelliteWithThruster(a, e, i, Ω, ω, ν, mass float64, thruster Thruster) *Satellite {
	limit, isp := thruster.Thrust()
	return NewSatellite(a, e, i, Ω, ω, ν, mass, isp, limit)
}

func newSatellite(x State, isp, thrustLimit float64) *Satellite {
	return &Satellite{
		state:       x,
		control:     Control{Isp: isp},
		thrustLimit: thrustLimit,
		body:        Earth,
		j2:          true,
		model:       NewDynamics(Earth, true),
		integrator:  RK4{},
		logger:      kitlog.NewNopLogger(),
	}
}

// SetLogger sets the logger of this satellite.
func (sc *Satellite) SetLogger(logger kitlog.Logger) {
	sc.logger = kitlog.With(logger, "satellite", sc.Name)
}

// SetJ2 enables or disables the J2 perturbation, and resets the force model to the default dynamics.
func (sc *Satellite) SetJ2(enabled bool) {
	sc.j2 = enabled
	sc.model = NewDynamics(sc.body, enabled)
}

// J2 returns whether J2 is enabled.
func (sc *Satellite) J2() bool {
	return sc.j2
}

// SetForceModel replaces the force model used by Advance.
func (sc *Satellite) SetForceModel(model ForceModel) {
	if model == nil {
		panic("force model may not be nil")
	}
	sc.model = model
}

// SetIntegrator replaces the integrator used by Advance.
func (sc *Satellite) SetIntegrator(integrator Integrator) {
	if integrator == nil {
		panic("integrator may not be nil")
	}
	sc.integrator = integrator
}

// SetThrust commands a thrust in Newtons in the ECI frame. Commands above the
// thrust limit are scaled down to it, keeping their direction. A limit which
// is not positive allows no thrust.
func (sc *Satellite) SetThrust(thrust Vector) {
	limit := math.Max(sc.thrustLimit, 0)
	if mag := thrust.Norm(); mag > limit {
		if limit == 0 {
			thrust = Vector{}
		} else {
			thrust = thrust.Scale(limit / mag)
		}
	}
	sc.control.Thrust = thrust
}

// Advance propagates the satellite by dt seconds, and updates its elements.
func (sc *Satellite) Advance(dt float64) {
	x := sc.integrator.Step(sc.model, sc.time, sc.state, sc.control, dt)
	oe := ElementsFromState(x.R, x.V, sc.body)
	prevMass := sc.state.M

	sc.state = x
	sc.elements = oe
	sc.time += dt

	// Sanity checks and warnings.
	r := x.R.Norm()
	if !sc.collided && r < sc.body.Radius {
		sc.collided = true
		sc.logger.Log("level", "critical", "subsys", "astro", "collided", sc.body.Name, "t", sc.time, "r", r, "radius", sc.body.Radius)
	} else if sc.collided && r > sc.body.Radius*1.1 {
		// Now further from the 10% dead zone
		sc.collided = false
		sc.logger.Log("level", "critical", "subsys", "astro", "revived", sc.body.Name, "t", sc.time)
	}
	if prevMass > 0 && x.M <= 0 {
		sc.logger.Log("level", "critical", "subsys", "prop", "mass(kg)", x.M, "t", sc.time)
	}
}

// Position returns the ECI position in km.
func (sc *Satellite) Position() Vector {
	return sc.state.R
}

// Velocity returns the ECI velocity in km/s.
func (sc *Satellite) Velocity() Vector {
	return sc.state.V
}

// Speed returns the inertial speed in km/s.
func (sc *Satellite) Speed() float64 {
	return sc.state.V.Norm()
}

// Mass returns the current mass in kg.
func (sc *Satellite) Mass() float64 {
	return sc.state.M
}

// State returns the current state.
func (sc *Satellite) State() State {
	return sc.state
}

// Control returns the current control.
func (sc *Satellite) Control() Control {
	return sc.control
}

// Elements returns the orbital elements of the current state. Angles are in radians.
func (sc *Satellite) Elements() OrbitalElements {
	return sc.elements
}

// Time returns the elapsed simulation time in seconds.
func (sc *Satellite) Time() float64 {
	return sc.time
}

// ThrustLimit returns the actuator limit in N.
func (sc *Satellite) ThrustLimit() float64 {
	return sc.thrustLimit
}

// Period returns the orbital period in seconds.
func (sc *Satellite) Period() float64 {
	return sc.elements.Period(sc.body)
}

// ApoapsisAltitude returns the apoapsis altitude in km.
func (sc *Satellite) ApoapsisAltitude() float64 {
	return sc.elements.Apoapsis() - sc.body.Radius
}

// PeriapsisAltitude returns the periapsis altitude in km.
func (sc *Satellite) PeriapsisAltitude() float64 {
	return sc.elements.Periapsis() - sc.body.Radius
}

// Altitude returns the current altitude in km.
func (sc *Satellite) Altitude() float64 {
	return sc.state.R.Norm() - sc.body.Radius
}

// LogStatus logs the status of this satellite.
func (sc *Satellite) LogStatus() {
	sc.logger.Log("level", "info", "subsys", "astro", "t", sc.time, "mass(kg)", sc.state.M, "orbit", sc.elements)
}
