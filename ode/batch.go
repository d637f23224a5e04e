// SPDX-License-Identifier: MIT

package ode

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Equation is one named input to SolveBatch.
type Equation struct {
	Name         string    `yaml:"name" json:"name"`
	Coefficients []float64 `yaml:"coefficients" json:"coefficients"`
}

// Result pairs an Equation with its Solution or error.
type Result struct {
	Equation Equation
	Solution *Solution
	Err      error
}

// SolveBatch solves eqs with at most WithConcurrency workers. Results keep the
// input order. A failing equation records its error in Result.Err and does
// not stop the batch; only context cancellation does, in which case the
// partially filled results are returned with ctx's error.
func SolveBatch(ctx context.Context, eqs []Equation, opts ...Option) ([]Result, error) {
	o := gatherOptions(opts...)
	results := make([]Result, len(eqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for i, eq := range eqs {
		if gctx.Err() != nil {
			break
		}
		i, eq := i, eq
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			sol, err := Solve(eq.Coefficients, opts...)
			if err != nil {
				o.logger.Info("equation failed", zap.String("name", eq.Name), zap.Error(err))
			}
			results[i] = Result{Equation: eq, Solution: sol, Err: err}

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}

	return results, nil
}
