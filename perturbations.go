package gnc

// Perturbations defines which perturbations are added to the two body acceleration.
type Perturbations struct {
	J2        bool                 // Oblateness of the central body
	Arbitrary func(x State) Vector // Additional arbitrary acceleration in km/s^2.
}

func (p Perturbations) isEmpty() bool {
	return !p.J2 && p.Arbitrary == nil
}

// Perturb returns the perturbing acceleration in km/s^2 for the provided state.
func (p Perturbations) Perturb(body CelestialObject, x State) Vector {
	var pert Vector
	if p.isEmpty() {
		return pert
	}
	if p.J2 {
		pert = pert.Add(j2Acc(body, x.R))
	}
	if p.Arbitrary != nil {
		pert = pert.Add(p.Arbitrary(x))
	}
	return pert
}

// j2Acc returns the J2 acceleration in ECI.
func j2Acc(body CelestialObject, R Vector) Vector {
	r2 := R.Dot(R)
	r1 := R.Norm()
	k := 1.5 * body.J2 * body.μ * body.Radius * body.Radius / (r2 * r2 * r1)
	factor := 5 * R.Z * R.Z / r2
	return Vector{
		k * R.X * (factor - 1),
		k * R.Y * (factor - 1),
		k * R.Z * (factor - 3),
	}
}
