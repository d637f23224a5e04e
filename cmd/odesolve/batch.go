// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/katalvlaran/lvode/ode"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// batchEntry is the JSON form of one ode.Result.
type batchEntry struct {
	Name     string        `json:"name"`
	Solution *ode.Solution `json:"solution,omitempty"`
	Error    string        `json:"error,omitempty"`
}

// batchReport is the JSON form of one batch run.
type batchReport struct {
	RunID   string       `json:"run_id"`
	Results []batchEntry `json:"results"`
	Failed  int          `json:"failed"`
}

func newBatchCmd(a *app) *cobra.Command {
	var (
		asJSON bool
		watch  bool
	)
	cmd := &cobra.Command{
		Use:   "batch FILE",
		Short: "Solve every equation listed in a YAML file",
		Long: `batch reads a YAML list of named equations

  - name: critically damped
    coefficients: [1, -4, 4]
  - name: harmonic
    coefficients: [1, 0, 4]

and solves them concurrently (batch.concurrency in the config file). With
--watch the file is solved again every time it is written, until interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			run := func() error { return a.runBatch(ctx, cmd.OutOrStdout(), path, asJSON) }
			if !watch {
				return run()
			}
			if err := run(); err != nil {
				a.logger.Warn("batch run failed", zap.String("file", path), zap.Error(err))
			}

			return watchFile(ctx, path, a.logger, run)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print a JSON report instead of text")
	cmd.Flags().BoolVar(&watch, "watch", false, "re-run whenever FILE is written")

	return cmd
}

// loadEquations parses a YAML list of ode.Equation.
func loadEquations(path string) ([]ode.Equation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var eqs []ode.Equation
	if err := yaml.Unmarshal(data, &eqs); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	for i := range eqs {
		if eqs[i].Name == "" {
			eqs[i].Name = fmt.Sprintf("#%d", i+1)
		}
	}

	return eqs, nil
}

// runBatch solves one snapshot of path. Per-equation failures are reported
// and counted; the returned error is non-nil when any equation failed.
func (a *app) runBatch(ctx context.Context, w io.Writer, path string, asJSON bool) error {
	eqs, err := loadEquations(path)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	log := a.logger.With(zap.String("run_id", runID))
	log.Info("batch started", zap.String("file", path), zap.Int("equations", len(eqs)))

	opts := append(append([]ode.Option(nil), a.opts...), ode.WithLogger(log))
	results, err := ode.SolveBatch(ctx, eqs, opts...)
	if err != nil {
		return err
	}

	report := batchReport{RunID: runID, Results: make([]batchEntry, len(results))}
	for i, r := range results {
		entry := batchEntry{Name: r.Equation.Name, Solution: r.Solution}
		if r.Err != nil {
			entry.Error = r.Err.Error()
			report.Failed++
		}
		report.Results[i] = entry
	}
	log.Info("batch finished", zap.Int("failed", report.Failed))

	if asJSON {
		err = writeJSON(w, report)
	} else {
		err = writeReport(w, report)
	}
	if err != nil {
		return err
	}
	if report.Failed > 0 {
		return fmt.Errorf("%d of %d equations failed", report.Failed, len(results))
	}

	return nil
}

func writeReport(w io.Writer, r batchReport) error {
	for _, e := range r.Results {
		line := "error: " + e.Error
		if e.Solution != nil {
			line = e.Solution.String()
		}
		if _, err := fmt.Fprintf(w, "%s: %s\n", e.Name, line); err != nil {
			return err
		}
	}

	return nil
}

// watchFile calls run after every write to path until ctx is done. The parent
// directory is watched so that editors replacing the file are noticed too.
func watchFile(ctx context.Context, path string, log *zap.Logger, run func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	name := filepath.Base(path)
	log.Info("watching for changes", zap.String("file", path))

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != name || (!ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create)) {
				continue
			}
			log.Debug("file changed", zap.String("op", ev.Op.String()))
			if err := run(); err != nil {
				log.Warn("batch run failed", zap.String("file", path), zap.Error(err))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", zap.Error(err))
		}
	}
}
