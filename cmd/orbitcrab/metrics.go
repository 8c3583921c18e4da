package main

import (
	"net/http"

	kitlog "github.com/go-kit/kit/log"
	"github.com/orbitcrab/gnc"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	stepsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orbitcrab_steps_total",
			Help: "Total number of integration steps.",
		},
		[]string{"satellite"},
	)

	massKg = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "orbitcrab_mass_kg",
			Help: "Current satellite mass in kg.",
		},
		[]string{"satellite"},
	)

	altitudeKm = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "orbitcrab_altitude_km",
			Help: "Current satellite altitude in km.",
		},
		[]string{"satellite"},
	)

	speedKmS = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "orbitcrab_speed_km_s",
			Help: "Current satellite inertial speed in km/s.",
		},
		[]string{"satellite"},
	)
)

func init() {
	prometheus.MustRegister(stepsTotal)
	prometheus.MustRegister(massKg)
	prometheus.MustRegister(altitudeKm)
	prometheus.MustRegister(speedKmS)
}

// observe records the state of a satellite after a step.
func observe(sc *gnc.Satellite) {
	stepsTotal.WithLabelValues(sc.Name).Inc()
	massKg.WithLabelValues(sc.Name).Set(sc.Mass())
	altitudeKm.WithLabelValues(sc.Name).Set(sc.Altitude())
	speedKmS.WithLabelValues(sc.Name).Set(sc.Speed())
}

// serveMetrics exposes the metrics on addr until the process exits.
func serveMetrics(addr string, logger kitlog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Log("level", "critical", "subsys", "metrics", "addr", addr, "err", err)
		}
	}()
}
