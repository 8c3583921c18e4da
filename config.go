package gnc

import (
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/spf13/viper"
)

const (
	secondsPerDay = 86400
	// J2000 is the Julian date of the J2000 epoch, the default scenario epoch.
	J2000 = 2451545.0
)

// Scenario is a propagation scenario, usually read from a TOML file.
type Scenario struct {
	Epoch         time.Time
	Step          time.Duration
	Duration      time.Duration
	Workers       int
	StatusEvery   time.Duration
	MetricsListen string
	Satellites    []SatelliteConfig
}

// SatelliteConfig defines a satellite in a scenario. Either the Keplerian elements, the
// apoapsis and periapsis altitudes, or a TLE must be set.
type SatelliteConfig struct {
	Name        string
	SMA         float64 `mapstructure:"sma"`
	Ecc         float64 `mapstructure:"ecc"`
	Apoapsis    float64 `mapstructure:"apoapsis"`  // Altitude in km, with periapsis instead of sma and ecc.
	Periapsis   float64 `mapstructure:"periapsis"` // Altitude in km
	Inc         float64 `mapstructure:"inc"`
	RAAN        float64 `mapstructure:"raan"`
	ArgPeri     float64 `mapstructure:"argperi"`
	TAnomaly    float64 `mapstructure:"tanomaly"`
	TLE         []string
	Mass        float64
	Isp         float64
	ThrustLimit float64 `mapstructure:"thrustlimit"`
	Thruster    string
	DisableJ2   bool `mapstructure:"disablej2"`
	Burns       []BurnConfig
}

// BurnConfig defines a burn in a scenario.
type BurnConfig struct {
	Start    time.Duration
	Duration time.Duration
	Frame    string
	Thrust   []float64
}

// LoadScenario reads the scenario file at path (TOML, YAML or JSON).
func LoadScenario(path string) (*Scenario, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("mission.epoch", J2000)
	v.SetDefault("mission.step", 10*time.Second)
	v.SetDefault("mission.status", time.Hour)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "reading scenario %s", path)
	}
	return scenarioFromViper(v)
}

func scenarioFromViper(v *viper.Viper) (*Scenario, error) {
	s := &Scenario{
		Epoch:         confReadJDEorTime(v, "mission.epoch"),
		Step:          v.GetDuration("mission.step"),
		Duration:      v.GetDuration("mission.duration"),
		Workers:       v.GetInt("mission.workers"),
		StatusEvery:   v.GetDuration("mission.status"),
		MetricsListen: v.GetString("metrics.listen"),
	}
	if err := v.UnmarshalKey("satellites", &s.Satellites); err != nil {
		return nil, errors.Wrap(err, "reading satellites")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// confReadJDEorTime reads a key which is either a Julian date or a timestamp.
func confReadJDEorTime(v *viper.Viper, key string) (dt time.Time) {
	jde := v.GetFloat64(key)
	if jde == 0 {
		dt = v.GetTime(key)
	} else {
		dt = julian.JDToTime(jde)
	}
	return dt.UTC()
}

// Validate returns an error if the scenario cannot be propagated.
func (s *Scenario) Validate() error {
	if s.Step <= 0 {
		return errors.New("mission.step must be positive")
	}
	if s.Duration < 0 {
		return errors.New("mission.duration may not be negative")
	}
	if len(s.Satellites) == 0 {
		return errors.New("no satellites defined")
	}
	for i, sc := range s.Satellites {
		if sc.Mass <= 0 {
			return errors.Errorf("satellite #%d (%s): mass must be positive", i, sc.Name)
		}
		if sc.ThrustLimit < 0 {
			return errors.Errorf("satellite #%d (%s): thrustlimit may not be negative", i, sc.Name)
		}
		if len(sc.TLE) != 0 && len(sc.TLE) != 2 {
			return errors.Errorf("satellite #%d (%s): a TLE has two lines", i, sc.Name)
		}
		for j, b := range sc.Burns {
			if len(b.Thrust) != 3 {
				return errors.Errorf("satellite #%d (%s): burn #%d thrust must have three components", i, sc.Name, j)
			}
		}
	}
	return nil
}

// Steps returns the number of steps needed to cover the duration.
func (s *Scenario) Steps() int {
	return int(s.Duration / s.Step)
}

// JDE returns the Julian date at the elapsed seconds from the epoch.
func (s *Scenario) JDE(elapsed float64) float64 {
	return julian.TimeToJD(s.Epoch) + elapsed/secondsPerDay
}

// Fleet builds all the satellites of this scenario. Unnamed satellites are
// named after their index, e.g. "#1".
func (s *Scenario) Fleet() (*Fleet, error) {
	f := &Fleet{Workers: s.Workers}
	for i, conf := range s.Satellites {
		sc, schedule, err := conf.Build(s.Epoch)
		if err != nil {
			return nil, errors.Wrapf(err, "satellite #%d (%s)", i, conf.Name)
		}
		if sc.Name == "" {
			sc.Name = "#" + strconv.Itoa(i)
		}
		f.Add(sc, schedule)
	}
	return f, nil
}

// Build returns the satellite and its burn schedule.
func (c SatelliteConfig) Build(epoch time.Time) (*Satellite, Schedule, error) {
	isp, limit := c.Isp, c.ThrustLimit
	if c.Thruster != "" {
		thruster, err := ThrusterFromString(c.Thruster)
		if err != nil {
			return nil, nil, err
		}
		limit, isp = thruster.Thrust()
	}

	var sc *Satellite
	if len(c.TLE) == 2 {
		var err error
		if sc, err = NewSatelliteFromTLE(c.TLE[0], c.TLE[1], epoch, c.Mass, isp, limit); err != nil {
			return nil, nil, err
		}
	} else {
		a, e := c.SMA, c.Ecc
		if c.Apoapsis > 0 || c.Periapsis > 0 {
			if c.Apoapsis < c.Periapsis {
				return nil, nil, errors.New("periapsis cannot be greater than apoapsis")
			}
			a, e = Radii2ae(c.Apoapsis+Earth.Radius, c.Periapsis+Earth.Radius)
		}
		oe := NewOrbitalElements(a, e, c.Inc, c.RAAN, c.ArgPeri, c.TAnomaly)
		if err := oe.Validate(); err != nil {
			return nil, nil, err
		}
		sc = NewSatellite(a, e, c.Inc, c.RAAN, c.ArgPeri, c.TAnomaly, c.Mass, isp, limit)
	}
	sc.Name = c.Name
	sc.SetJ2(!c.DisableJ2)

	schedule := make(Schedule, 0, len(c.Burns))
	for _, b := range c.Burns {
		frame, err := FrameFromString(strings.TrimSpace(b.Frame))
		if err != nil {
			return nil, nil, err
		}
		schedule = append(schedule, Burn{
			Start:    b.Start.Seconds(),
			Duration: b.Duration.Seconds(),
			Frame:    frame,
			Thrust:   VectorFromSlice(b.Thrust),
		})
	}
	return sc, schedule, nil
}
