// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/katalvlaran/lvode/ode"
	"github.com/katalvlaran/lvode/synth"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errNoCoefficients = errors.New("no coefficients given (use --coeffs or pass them after --)")

// coefficientFlags is shared by solve and roots.
type coefficientFlags struct {
	coeffs []float64
	json   bool
}

func (f *coefficientFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64SliceVar(&f.coeffs, "coeffs", nil, "coefficients, highest degree first (comma separated)")
	cmd.Flags().BoolVar(&f.json, "json", false, "print JSON instead of text")
}

// collect returns --coeffs followed by the positional arguments.
func (f *coefficientFlags) collect(args []string) ([]float64, error) {
	out := append([]float64(nil), f.coeffs...)
	for _, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, fmt.Errorf("coefficient %q: %w", arg, err)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, errNoCoefficients
	}

	return out, nil
}

func newSolveCmd(a *app) *cobra.Command {
	var (
		f       coefficientFlags
		initial []float64
	)
	cmd := &cobra.Command{
		Use:   "solve [coefficients...]",
		Short: "Print the general solution y(x)",
		Example: `  odesolve solve -- 1 -3 2
  odesolve solve --coeffs=1,0,2,0,1 --json
  odesolve solve --initial=0,1 -- 1 -3 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			coeffs, err := f.collect(args)
			if err != nil {
				return err
			}
			sol, err := ode.Solve(coeffs, a.opts...)
			if err != nil {
				return err
			}
			if len(initial) == 0 {
				if f.json {
					return writeJSON(cmd.OutOrStdout(), sol)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), sol)

				return err
			}

			constants, err := sol.Constants(initial)
			if err != nil {
				return err
			}
			if det, err := sol.Wronskian(); err == nil {
				a.logger.Debug("initial conditions solved",
					zap.Float64("wronskian", det),
					zap.Float64s("constants", constants),
				)
			}
			if f.json {
				return writeJSON(cmd.OutOrStdout(), struct {
					Solution  *ode.Solution `json:"solution"`
					Initial   []float64     `json:"initial"`
					Constants []float64     `json:"constants"`
				}{sol, initial, constants})
			}

			return writeConstants(cmd.OutOrStdout(), sol, constants, a.cfg.Output.Precision)
		},
	}
	f.register(cmd)
	cmd.Flags().Float64SliceVar(&initial, "initial", nil, "y(0), y'(0), ... to solve for the constants")

	return cmd
}

// writeConstants prints the expression followed by one "C_i = v" line per term.
func writeConstants(w io.Writer, sol *ode.Solution, constants []float64, precision int) error {
	if _, err := fmt.Fprintln(w, sol); err != nil {
		return err
	}
	for i, c := range constants {
		if _, err := fmt.Fprintf(w, "C_%d = %s\n", sol.Terms[i].Index, synth.FormatNumber(c, precision)); err != nil {
			return err
		}
	}

	return nil
}

func newRootsCmd(a *app) *cobra.Command {
	var f coefficientFlags
	cmd := &cobra.Command{
		Use:   "roots [coefficients...]",
		Short: "Print the characteristic roots grouped by multiplicity",
		RunE: func(cmd *cobra.Command, args []string) error {
			coeffs, err := f.collect(args)
			if err != nil {
				return err
			}
			sol, err := ode.Solve(coeffs, a.opts...)
			if err != nil {
				return err
			}
			if f.json {
				return writeJSON(cmd.OutOrStdout(), sol.Classification)
			}

			return writeGroups(cmd.OutOrStdout(), sol, a.cfg.Output.Precision)
		},
	}
	f.register(cmd)

	return cmd
}

// writeGroups prints one line per root group:
//
//	real     2.0           x2
//	complex  -1.0 ± 2.0i   x1
func writeGroups(w io.Writer, sol *ode.Solution, precision int) error {
	num := func(v float64) string { return synth.FormatNumber(v, precision) }
	c := sol.Classification
	for _, g := range c.Real {
		if _, err := fmt.Fprintf(w, "real     %-13s x%d\n", num(g.Value), g.Multiplicity); err != nil {
			return err
		}
	}
	for _, g := range c.Complex {
		pair := num(g.Alpha) + " ± " + num(g.Beta) + "i"
		if _, err := fmt.Fprintf(w, "complex  %-13s x%d\n", pair, g.PairMultiplicity()); err != nil {
			return err
		}
	}
	for _, nm := range c.NearMisses {
		if _, err := fmt.Fprintf(w, "warning: groups %v and %v are %.3g apart\n", nm.A, nm.B, nm.Distance); err != nil {
			return err
		}
	}

	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
