package gnc

import (
	"math"
	"strconv"
	"strings"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"
	"github.com/pkg/errors"
)

// NewSatelliteFromTLE returns a satellite at the provided epoch from a two line element set.
// The TLE is propagated with SGP4 to the epoch and its TEME state is used as the ECI state.
func NewSatelliteFromTLE(line1, line2 string, epoch time.Time, mass, isp, thrustLimit float64) (*Satellite, error) {
	R, V, err := TLEState(line1, line2, epoch)
	if err != nil {
		return nil, err
	}
	return NewSatelliteFromState(R, V, mass, isp, thrustLimit), nil
}

// TLEState returns the TEME position (km) and velocity (km/s) of a TLE at epoch.
func TLEState(line1, line2 string, epoch time.Time) (R, V Vector, err error) {
	line1 = strings.TrimSpace(line1)
	line2 = strings.TrimSpace(line2)
	// go-satellite exits the process on malformed TLEs, so check them first.
	if err = validateTLE(line1, line2); err != nil {
		return
	}
	sat := satellite.TLEToSat(line1, line2, satellite.GravityWGS84)
	if sat.Error != 0 {
		err = errors.Errorf("sgp4 init failed: code=%d %s", sat.Error, sat.ErrorStr)
		return
	}
	// go-satellite propagates to whole seconds only: interpolate the fraction.
	epoch = epoch.UTC()
	t0 := epoch.Truncate(time.Second)
	R, V = sgp4At(sat, t0)
	if frac := epoch.Sub(t0).Seconds(); frac > 0 {
		Rn, Vn := sgp4At(sat, t0.Add(time.Second))
		R = R.Add(Rn.Sub(R).Scale(frac))
		V = V.Add(Vn.Sub(V).Scale(frac))
	}
	if R.IsNaN() || V.IsNaN() || math.IsInf(R.Norm(), 0) {
		err = errors.Errorf("sgp4 propagation to %s failed", epoch)
	}
	return
}

func sgp4At(sat satellite.Satellite, t time.Time) (R, V Vector) {
	pos, vel := satellite.Propagate(sat, t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second())
	return Vector{pos.X, pos.Y, pos.Z}, Vector{vel.X, vel.Y, vel.Z}
}

// tleField is a numeric TLE field, with zero-based column bounds.
type tleField struct {
	name       string
	start, end int
	parse      func(string) error
}

var (
	tleLine1Fields = []tleField{
		{"satellite number", 2, 7, parseTLEInt},
		{"epoch year", 18, 20, parseTLEInt},
		{"epoch day", 20, 32, parseTLEFloat},
		{"mean motion first derivative", 33, 43, parseTLEFloat},
		{"mean motion second derivative", 44, 52, parseTLEExp},
		{"BSTAR", 53, 61, parseTLEExp},
	}
	tleLine2Fields = []tleField{
		{"satellite number", 2, 7, parseTLEInt},
		{"inclination", 8, 16, parseTLEFloat},
		{"RAAN", 17, 25, parseTLEFloat},
		{"eccentricity", 26, 33, parseTLEInt},
		{"argument of perigee", 34, 42, parseTLEFloat},
		{"mean anomaly", 43, 51, parseTLEFloat},
		{"mean motion", 52, 63, parseTLEFloat},
	}
)

func parseTLEInt(s string) error {
	_, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	return err
}

func parseTLEFloat(s string) error {
	_, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err
}

// parseTLEExp parses the implied decimal notation, e.g. "-11606-4" for -0.11606e-4.
func parseTLEExp(s string) error {
	n := len(s)
	mantissa, exp := strings.TrimSpace(s[:n-2]), strings.TrimSpace(s[n-2:])
	sign := ""
	if strings.HasPrefix(mantissa, "-") || strings.HasPrefix(mantissa, "+") {
		sign, mantissa = mantissa[:1], mantissa[1:]
	}
	if err := parseTLEInt(mantissa); err != nil {
		return err
	}
	_, err := strconv.ParseFloat(sign+"."+mantissa+"e"+exp, 64)
	return err
}

// tleChecksum returns the modulo 10 checksum of the first 68 columns,
// where each minus sign counts as one.
func tleChecksum(line string) byte {
	var cs int
	for i := 0; i < 68; i++ {
		switch c := line[i]; {
		case '0' <= c && c <= '9':
			cs += int(c - '0')
		case c == '-':
			cs++
		}
	}
	return byte('0' + cs%10)
}

func validateTLELine(num int, line string, fields []tleField) error {
	if cs := tleChecksum(line); line[68] != cs {
		return errors.Errorf("TLE line %d checksum is %c, expected %c", num, line[68], cs)
	}
	for _, f := range fields {
		if err := f.parse(line[f.start:f.end]); err != nil {
			return errors.Wrapf(err, "TLE line %d %s", num, f.name)
		}
	}
	return nil
}

func validateTLE(line1, line2 string) error {
	if len(line1) != 69 {
		return errors.Errorf("TLE line 1 length %d, expected 69", len(line1))
	}
	if len(line2) != 69 {
		return errors.Errorf("TLE line 2 length %d, expected 69", len(line2))
	}
	if line1[0] != '1' {
		return errors.Errorf("TLE line 1 must start with '1', got '%c'", line1[0])
	}
	if line2[0] != '2' {
		return errors.Errorf("TLE line 2 must start with '2', got '%c'", line2[0])
	}
	if err := validateTLELine(1, line1, tleLine1Fields); err != nil {
		return err
	}
	return validateTLELine(2, line2, tleLine2Fields)
}
