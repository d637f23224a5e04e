// SPDX-License-Identifier: MIT

// Command odesolve prints the general solution of a linear, homogeneous,
// constant-coefficient ODE given the coefficients of its characteristic
// polynomial, highest degree first.
//
//	odesolve solve -- 1 -4 4
//	odesolve solve --coeffs=1,0,4 --json
//	odesolve roots --method=durand-kerner -- 1 -6 12 -8
//	odesolve batch equations.yaml --watch
package main

import (
	"fmt"
	"os"

	"github.com/katalvlaran/lvode/config"
	"github.com/katalvlaran/lvode/ode"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// app carries the global flags and the state resolved in PersistentPreRunE.
type app struct {
	configPath string
	verbose    bool
	tol        float64
	method     string
	precision  int

	cfg    *config.Config
	opts   []ode.Option
	logger *zap.Logger
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "odesolve",
		Short: "Closed-form solutions of constant-coefficient linear ODEs",
		Long: `odesolve finds the roots of the characteristic polynomial, groups them into
real and complex-conjugate clusters with their multiplicities, and prints the
general solution, e.g.

  y'' - 4y' + 4y = 0   ->   y(x) = C_1e^(2.0x) + C_2xe^(2.0x)

Coefficients are given highest degree first. Put them after "--" or pass
them with --coeffs so that negative values are not read as flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.resolve(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML configuration file")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	pf.Float64Var(&a.tol, "tol", 0, "classifier tolerance τ (overrides config)")
	pf.StringVar(&a.method, "method", "", "root finder: companion or durand-kerner (overrides config)")
	pf.IntVar(&a.precision, "precision", 0, "decimals in the printed solution (overrides config)")

	root.AddCommand(newSolveCmd(a), newRootsCmd(a), newBatchCmd(a))

	return root
}

// resolve merges config file, environment and flags into ode options and
// builds the logger unless one was injected.
func (a *app) resolve(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("tol") {
		cfg.Classifier.Tolerance = a.tol
	}
	if flags.Changed("method") {
		cfg.Solver.Method = a.method
	}
	if flags.Changed("precision") {
		cfg.Output.Precision = a.precision
	}
	opts, err := cfg.Options()
	if err != nil {
		return err
	}

	if a.logger == nil {
		level := cfg.LogLevel()
		if a.verbose {
			level = zapcore.DebugLevel
		}
		zc := zap.NewProductionConfig()
		zc.Level = zap.NewAtomicLevelAt(level)
		if a.logger, err = zc.Build(); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
	}

	a.cfg = cfg
	a.opts = append(opts, ode.WithLogger(a.logger))
	a.logger.Debug("configuration resolved",
		zap.String("config", a.configPath),
		zap.Float64("tolerance", cfg.Classifier.Tolerance),
		zap.String("method", cfg.Solver.Method),
		zap.Int("precision", cfg.Output.Precision),
	)

	return nil
}

func main() {
	if err := newRootCmd(&app{}).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
