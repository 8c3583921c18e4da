package gnc

// Integrator advances a state by one fixed time step.
type Integrator interface {
	Step(f ForceModel, t float64, x State, u Control, dt float64) State
}

// RK4 is the classical fixed step fourth order Runge-Kutta integrator.
// The control is held for all four stages and the step has no error control.
type RK4 struct{}

// Step implements the Integrator interface.
func (RK4) Step(f ForceModel, t float64, x State, u Control, dt float64) State {
	const (
		half     = 1 / 2.0
		oneSixth = 1 / 6.0
		oneThird = 1 / 3.0
	)
	if f == nil {
		panic("RK4 force model may not be nil")
	}
	halfStep := dt * half

	k1 := f.Derivative(t, x, u)
	k2 := f.Derivative(t+halfStep, x.Add(k1, halfStep), u)
	k3 := f.Derivative(t+halfStep, x.Add(k2, halfStep), u)
	k4 := f.Derivative(t+dt, x.Add(k3, dt), u)

	// Weighted 1:2:2:1 over 6.
	slope := State{
		R: k1.R.Add(k4.R).Scale(oneSixth).Add(k2.R.Add(k3.R).Scale(oneThird)),
		V: k1.V.Add(k4.V).Scale(oneSixth).Add(k2.V.Add(k3.V).Scale(oneThird)),
		M: oneSixth*(k1.M+k4.M) + oneThird*(k2.M+k3.M),
	}
	return x.Add(slope, dt)
}
