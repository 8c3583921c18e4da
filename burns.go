package gnc

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Frame is the frame a burn is expressed in.
type Frame uint8

const (
	// ECI burns are inertial.
	ECI Frame = iota + 1
	// VNC burns are along velocity, orbit normal and co-normal of the current state.
	VNC
)

func (f Frame) String() string {
	switch f {
	case ECI:
		return "ECI"
	case VNC:
		return "VNC"
	}
	panic("cannot stringify unknown frame")
}

// FrameFromString returns the frame from its name, ECI when empty.
func FrameFromString(name string) (Frame, error) {
	switch strings.ToUpper(name) {
	case "ECI", "":
		return ECI, nil
	case "VNC":
		return VNC, nil
	default:
		return 0, errors.Errorf("unknown burn frame `%s`", name)
	}
}

// Burn is a constant thrust command over a time window.
type Burn struct {
	Start    float64 // Elapsed seconds
	Duration float64 // Seconds
	Frame    Frame
	Thrust   Vector // N
}

// Active returns whether this burn is on at the elapsed time t.
func (b Burn) Active(t float64) bool {
	return t >= b.Start && t < b.Start+b.Duration
}

func (b Burn) String() string {
	return fmt.Sprintf("burn %s %+v from %.1fs for %.1fs", b.Frame, b.Thrust, b.Start, b.Duration)
}

// Schedule is a list of burns. The first active burn wins.
type Schedule []Burn

// ThrustAt returns the ECI thrust command in N at the elapsed time t for the given state.
func (s Schedule) ThrustAt(t float64, x State) Vector {
	for _, b := range s {
		if !b.Active(t) {
			continue
		}
		if b.Frame == VNC {
			return VNC2ECI(x.R, x.V, b.Thrust)
		}
		return b.Thrust
	}
	return Vector{}
}

// Command sets the thrust of the satellite from this schedule.
func (s Schedule) Command(sc *Satellite) {
	sc.SetThrust(s.ThrustAt(sc.Time(), sc.State()))
}
