package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"time"

	kitlog "github.com/go-kit/kit/log"
	"github.com/orbitcrab/gnc"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	scenario string
	verbose  bool
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "orbitcrab: %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "orbitcrab",
		Short:         "Point mass satellite propagation with J2 and thrust",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "really verbose (esp. for configuration)")

	run := &cobra.Command{
		Use:   "run",
		Short: "Propagate the satellites of a scenario",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(cmd.Context())
		},
	}
	run.Flags().StringVar(&scenario, "scenario", "", "scenario TOML file")
	run.MarkFlagRequired("scenario")

	elements := &cobra.Command{
		Use:   "elements x y z vx vy vz",
		Short: "Convert an ECI state (km, km/s) to orbital elements (degrees)",
		Args:  cobra.ExactArgs(6),
		RunE: func(cmd *cobra.Command, args []string) error {
			vals := make([]float64, 6)
			for i, arg := range args {
				val, err := strconv.ParseFloat(arg, 64)
				if err != nil {
					return errors.Wrapf(err, "argument %d", i)
				}
				vals[i] = val
			}
			oe := gnc.ElementsFromState(gnc.VectorFromSlice(vals[:3]), gnc.VectorFromSlice(vals[3:]), gnc.Earth)
			fmt.Fprintln(cmd.OutOrStdout(), oe)
			fmt.Fprintf(cmd.OutOrStdout(), "period=%.3fs\n", oe.Period(gnc.Earth))
			return nil
		},
	}

	root.AddCommand(run, elements)
	return root
}

func runScenario(ctx context.Context) error {
	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))

	s, err := gnc.LoadScenario(scenario)
	if err != nil {
		return err
	}
	if verbose {
		logger.Log("level", "info", "subsys", "conf", "epoch", s.Epoch, "step", s.Step, "duration", s.Duration, "satellites", len(s.Satellites))
	}

	fleet, err := s.Fleet()
	if err != nil {
		return err
	}
	for _, sc := range fleet.Satellites() {
		sc.SetLogger(logger)
		sc.LogStatus()
	}

	if s.MetricsListen != "" {
		serveMetrics(s.MetricsListen, logger)
	}
	fleet.OnStep = observe

	dt := s.Step.Seconds()
	statusEvery := int(s.StatusEvery / s.Step)
	if statusEvery <= 0 {
		statusEvery = 1
	}
	start := time.Now()
	steps := s.Steps()
	for i := 1; i <= steps; i++ {
		if err := fleet.Step(ctx, dt); err != nil {
			logger.Log("level", "warning", "subsys", "astro", "status", "stopped", "step", i, "err", err)
			return err
		}
		if i%statusEvery == 0 {
			for _, sc := range fleet.Satellites() {
				sc.LogStatus()
			}
		}
	}

	elapsed := float64(steps) * dt
	logger.Log("level", "notice", "subsys", "astro", "status", "finished", "steps", steps, "JDE", s.JDE(elapsed), "wall", time.Since(start))
	for _, sc := range fleet.Satellites() {
		sc.LogStatus()
	}
	return nil
}
