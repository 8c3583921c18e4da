package gnc

import (
	"strings"

	"github.com/pkg/errors"
)

// Thruster defines an actuator, which sets the thrust limit and the specific impulse of a satellite.
type Thruster interface {
	// Returns the maximum thrust in Newtons and the Isp in seconds.
	Thrust() (thrust, isp float64)
}

/* Available thrusters */

// PPS1350 is the Snecma Hall thruster used on SMART-1.
type PPS1350 struct{}

// Thrust implements the Thruster interface.
func (t PPS1350) Thrust() (thrust, isp float64) {
	return 89e-3, 1650
}

// HERMeS is based on the NASA & Rocketdyne 12.5kW demo
type HERMeS struct{}

// Thrust implements the Thruster interface.
func (t HERMeS) Thrust() (thrust, isp float64) {
	return 0.680, 2960
}

// GenericThruster is a thruster of arbitrary thrust and Isp.
type GenericThruster struct {
	thrust float64
	isp    float64
}

// Thrust implements the Thruster interface.
func (t GenericThruster) Thrust() (thrust, isp float64) {
	return t.thrust, t.isp
}

// NewGenericThruster returns a generic thruster.
func NewGenericThruster(thrust, isp float64) GenericThruster {
	return GenericThruster{thrust, isp}
}

// ThrusterFromString returns one of the known thrusters from its name.
func ThrusterFromString(name string) (Thruster, error) {
	switch strings.ToLower(name) {
	case "pps1350":
		return PPS1350{}, nil
	case "hermes":
		return HERMeS{}, nil
	default:
		return nil, errors.Errorf("unknown thruster `%s`", name)
	}
}
