package gnc

import (
	"bytes"
	"math"
	"strings"
	"testing"

	kitlog "github.com/go-kit/kit/log"
	"github.com/gonum/floats"
)

func TestSatelliteISSPeriod(t *testing.T) {
	sc := NewSatellite(Earth.Radius+408, 0, 51.6, 0, 0, 0, 420000, 0, 0)
	if period := sc.Period(); math.Abs(period-5550) > 100 {
		t.Fatalf("ISS period of %f s is off", period)
	}
	if !floats.EqualWithinAbs(sc.ApoapsisAltitude(), 408, 1e-9) || !floats.EqualWithinAbs(sc.PeriapsisAltitude(), 408, 1e-9) {
		t.Fatalf("altitudes incorrect: %f %f", sc.ApoapsisAltitude(), sc.PeriapsisAltitude())
	}
	if !floats.EqualWithinAbs(sc.Speed(), math.Sqrt(Earth.GM()/(Earth.Radius+408)), 1e-12) {
		t.Fatalf("speed incorrect: %f", sc.Speed())
	}
	if sc.Time() != 0 || sc.Control().Thrust != (Vector{}) || !sc.J2() {
		t.Fatal("new satellite should start at zero time, without thrust and with J2")
	}
}

func TestSatelliteConstructionInDegrees(t *testing.T) {
	sc := NewSatellite(8000, 0.1, 45, 90, 30, 10, 100, 0, 0)
	oe := sc.Elements()
	if oe.Inc != Deg2rad(45) || oe.RAAN != Deg2rad(90) || oe.ArgPeri != Deg2rad(30) || oe.TAnomaly != Deg2rad(10) {
		t.Fatalf("angles should be stored in radians: %+v", oe)
	}
	R, V := ElementsToState(oe, Earth)
	if sc.Position() != R || sc.Velocity() != V || sc.Mass() != 100 {
		t.Fatal("initial state incorrect")
	}
}

func TestSatelliteFromState(t *testing.T) {
	R := Vector{6524.834, 6862.875, 6448.296}
	V := Vector{4.901327, 5.533756, -1.976341}
	sc := NewSatelliteFromState(R, V, 10, 0, 0)
	if sc.Position() != R || sc.Velocity() != V {
		t.Fatal("state not kept")
	}
	if ok, err := sc.Elements().Equals(ElementsFromState(R, V, Earth), 1e-12); !ok {
		t.Fatal(err)
	}
}

func TestSatellitePeriodClosure(t *testing.T) {
	sc := NewSatellite(Earth.Radius+408, 0.001, 51.6, 10, 20, 30, 420000, 0, 0)
	sc.SetJ2(false)
	x0 := sc.State()
	oe0 := sc.Elements()
	dt := sc.Period() / 1000
	for i := 0; i < 1000; i++ {
		sc.Advance(dt)
	}
	x := sc.State()
	if d := x.R.Sub(x0.R).Norm(); d > 1e-3 {
		t.Fatalf("position after one period is %f km away", d)
	}
	if d := x.V.Sub(x0.V).Norm(); d > 1e-6 {
		t.Fatalf("velocity after one period is %f km/s away", d)
	}
	if ok, err := sc.Elements().Equals(oe0, 1e-6); !ok {
		t.Fatalf("elements drifted: %s\n%s\n%s", err, oe0, sc.Elements())
	}
	if !floats.EqualWithinRel(sc.Time(), 1000*dt, 1e-12) {
		t.Fatalf("clock incorrect: %f", sc.Time())
	}
}

func TestSatelliteElementsConsistency(t *testing.T) {
	sc := NewSatellite(7000, 0.05, 28.5, 10, 20, 30, 1000, 1650, 0.1)
	sc.SetThrust(Vector{0.05, 0.05, 0})
	for i := 0; i < 100; i++ {
		sc.Advance(30)
		exp := ElementsFromState(sc.Position(), sc.Velocity(), Earth)
		if sc.Elements() != exp {
			t.Fatalf("elements inconsistent with state at step %d", i)
		}
	}
}

func TestSatelliteMassDepletion(t *testing.T) {
	thrust, isp := 0.089, 1650.
	sc := NewSatellite(7000, 0.01, 28.5, 0, 0, 0, 1000, isp, thrust)
	dt := 10.0
	expΔm := -thrust / (isp * G0) * dt
	for i := 0; i < 100; i++ {
		// Thrust along velocity.
		sc.SetThrust(sc.Velocity().Unit().Scale(thrust))
		prev := sc.Mass()
		sc.Advance(dt)
		if sc.Mass() >= prev {
			t.Fatalf("mass did not decrease at step %d", i)
		}
		if !floats.EqualWithinAbs(sc.Mass()-prev, expΔm, 1e-12) {
			t.Fatalf("mass flow does not match the rocket equation: %e != %e", sc.Mass()-prev, expΔm)
		}
	}
	if !floats.EqualWithinAbs(sc.Mass(), 1000+100*expΔm, 1e-9) {
		t.Fatalf("final mass incorrect: %f", sc.Mass())
	}
}

func TestSatelliteThrustRaisesOrbit(t *testing.T) {
	sc := NewSatellite(7000, 0, 28.5, 0, 0, 0, 100, 3000, 1)
	sc.SetJ2(false)
	a0 := sc.Elements().SMA
	for i := 0; i < 360; i++ {
		sc.SetThrust(sc.Velocity().Unit().Scale(1))
		sc.Advance(10)
	}
	if sc.Elements().SMA <= a0 {
		t.Fatalf("tangential thrust should raise the orbit: %f <= %f", sc.Elements().SMA, a0)
	}
}

func TestSatelliteThrustClamp(t *testing.T) {
	sc := NewSatellite(7000, 0, 28.5, 0, 0, 0, 100, 3000, 1)
	sc.SetThrust(Vector{3, 4, 0})
	got := sc.Control().Thrust
	if !floats.EqualWithinAbs(got.Norm(), 1, 1e-15) {
		t.Fatalf("thrust not clamped: %f", got.Norm())
	}
	if !vectorsEqual(got, Vector{0.6, 0.8, 0}, 1e-15) {
		t.Fatalf("thrust direction changed: %+v", got)
	}
	sc.SetThrust(Vector{0.1, 0, -0.2})
	if sc.Control().Thrust != (Vector{0.1, 0, -0.2}) {
		t.Fatal("thrust under the limit should not change")
	}
	if sc.Control().Isp != 3000 {
		t.Fatal("Isp should be kept")
	}
}

func TestSatelliteThrustNoLimit(t *testing.T) {
	for _, limit := range []float64{0, -1} {
		sc := NewSatellite(7000, 0, 28.5, 0, 0, 0, 100, 3000, limit)
		for _, thrust := range []Vector{{3, 4, 0}, {}} {
			sc.SetThrust(thrust)
			if got := sc.Control().Thrust; got != (Vector{}) {
				t.Fatalf("limit %f: thrust %+v should be suppressed, got %+v", limit, thrust, got)
			}
		}
		sc.Advance(10)
		if sc.Position().IsNaN() || sc.Velocity().IsNaN() || math.IsNaN(sc.Mass()) {
			t.Fatalf("limit %f: NaN state %s", limit, sc.State())
		}
		if sc.Mass() != 100 {
			t.Fatalf("limit %f: mass changed to %f", limit, sc.Mass())
		}
	}
}

func TestSatelliteCircularEquatorial(t *testing.T) {
	sc := NewSatellite(Earth.Radius+35786, 0, 0, 0, 0, 0, 2000, 0, 0)
	for i := 0; i < 500; i++ {
		sc.Advance(60)
		oe := sc.Elements()
		if math.IsNaN(oe.RAAN) || math.IsNaN(oe.ArgPeri) || math.IsNaN(oe.TAnomaly) || math.IsNaN(oe.Inc) {
			t.Fatalf("NaN elements at step %d: %s", i, oe)
		}
	}
}

func TestSatelliteForceModel(t *testing.T) {
	sc := NewSatellite(7000, 0, 28.5, 0, 0, 0, 100, 0, 0)
	f := &constantAcc{}
	sc.SetForceModel(f)
	sc.Advance(1)
	if len(f.times) != 4 {
		t.Fatalf("expected four stage evaluations, got %d", len(f.times))
	}
	assertPanic(t, func() {
		sc.SetForceModel(nil)
	})
	assertPanic(t, func() {
		sc.SetIntegrator(nil)
	})
}

func TestSatelliteLogsCollision(t *testing.T) {
	var buf bytes.Buffer
	sc := NewSatellite(Earth.Radius+50, 0, 10, 0, 0, 0, 1, 100, 1000)
	sc.Name = "lowflyer"
	sc.SetLogger(kitlog.NewLogfmtLogger(&buf))
	// Full retrograde thrust on 1 kg depletes and decelerates.
	for i := 0; i < 200; i++ {
		sc.SetThrust(sc.Velocity().Unit().Scale(-1000))
		sc.Advance(10)
	}
	logs := buf.String()
	if !strings.Contains(logs, "collided=Earth") {
		t.Fatalf("collision not logged:\n%s", logs)
	}
	if !strings.Contains(logs, "satellite=lowflyer") {
		t.Fatalf("satellite name not logged:\n%s", logs)
	}
	if strings.Count(logs, "collided=") != 1 {
		t.Fatalf("collision should be logged once:\n%s", logs)
	}
	if !strings.Contains(logs, "subsys=prop") {
		t.Fatalf("propellant depletion not logged:\n%s", logs)
	}
}
