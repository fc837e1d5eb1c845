package cmd

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/drt-sim/drt-sim/scenario"
	"github.com/drt-sim/drt-sim/solver"
)

var (
	scenarioPath  string  // Path to the yaml scenario file
	seed          int64   // Seed override for the shared random generator
	horizon       float64 // Horizon override in seconds
	logLevel      string  // Log verbosity level
	validationOut string  // Path for the validation log CSV export
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "drt-sim",
	Short: "Discrete-event simulator for demand-responsive transit fleets",
}

// runCmd executes a simulation from a scenario file
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a fleet simulation",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		f, err := scenario.Load(scenarioPath)
		if err != nil {
			logrus.Fatalf("Unable to load scenario: %v", err)
		}
		if cmd.Flags().Changed("seed") {
			f.Parameters.Seed = seed
		}
		if horizon > 0 {
			f.Parameters.Horizon = horizon
		}

		s, err := scenario.Build(f, solver.NewGreedy())
		if err != nil {
			logrus.Fatalf("Unable to build simulation: %v", err)
		}

		logrus.Infof("Starting simulation: %d stops, %d vehicles, %d customers, horizon=%.0fs, seed=%d",
			len(f.Stops), len(f.Vehicles), len(f.Customers), f.Parameters.Horizon, f.Parameters.Seed)

		start := time.Now()
		s.Bootstrap()
		if err := s.Run(); err != nil {
			logrus.Fatalf("Simulation aborted: %v", err)
		}
		s.Metrics.Print()
		logrus.Infof("Simulation complete in %v.", time.Since(start))

		if validationOut != "" {
			out, err := os.Create(validationOut)
			if err != nil {
				logrus.Fatalf("Unable to create validation log: %v", err)
			}
			defer out.Close()
			if err := s.Audit.WriteCSV(out); err != nil {
				logrus.Fatalf("Unable to write validation log: %v", err)
			}
			logrus.Infof("Validation log written to %s (%d records)", validationOut, s.Audit.Len())
		}
	},
}

func init() {
	runCmd.Flags().StringVar(&scenarioPath, "scenario", "", "Path to yaml scenario file")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "Override the scenario's random seed")
	runCmd.Flags().Float64Var(&horizon, "horizon", 0, "Override the simulation horizon in seconds")
	runCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")
	runCmd.Flags().StringVar(&validationOut, "validation-out", "", "Write the validation log CSV to this path")
	_ = runCmd.MarkFlagRequired("scenario")
	rootCmd.AddCommand(runCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
