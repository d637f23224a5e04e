// SPDX-License-Identifier: MIT
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// execute runs odesolve with args and a silent logger.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd(&app{logger: zap.NewNop()})
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()

	return out.String(), err
}

func TestSolve_Positional(t *testing.T) {
	out, err := execute(t, "solve", "--", "1", "-4", "4")
	require.NoError(t, err)
	assert.Equal(t, "y(x) = C_1e^(2.0x) + C_2xe^(2.0x)\n", out)
}

func TestSolve_CoeffsFlag(t *testing.T) {
	out, err := execute(t, "solve", "--coeffs=1,0,2,0,1")
	require.NoError(t, err)
	assert.Equal(t, "y(x) = C_1cos(1.0x) + C_2sin(1.0x) + C_3xcos(1.0x) + C_4xsin(1.0x)\n", out)
}

func TestSolve_JSON(t *testing.T) {
	out, err := execute(t, "solve", "--json", "--coeffs=1,-3,2")
	require.NoError(t, err)

	var got struct {
		Expression string       `json:"expression"`
		Roots      [][2]float64 `json:"roots"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "y(x) = C_1e^(2.0x) + C_2e^(1.0x)", got.Expression)
	assert.Len(t, got.Roots, 2)
}

func TestSolve_GlobalOverrides(t *testing.T) {
	out, err := execute(t, "solve", "--precision=2", "--method=durand-kerner", "--", "3", "-1")
	require.NoError(t, err)
	assert.Equal(t, "y(x) = C_1e^(0.33x)\n", out)
}

func TestSolve_Errors(t *testing.T) {
	_, err := execute(t, "solve")
	assert.ErrorIs(t, err, errNoCoefficients)

	_, err = execute(t, "solve", "--", "1", "abc")
	assert.ErrorContains(t, err, `coefficient "abc"`)

	_, err = execute(t, "solve", "--", "7")
	assert.ErrorContains(t, err, "degree")

	_, err = execute(t, "solve", "--method=newton", "--", "1", "1")
	assert.Error(t, err)
}

func TestSolve_Initial(t *testing.T) {
	out, err := execute(t, "solve", "--initial=0,1", "--", "1", "-3", "2")
	require.NoError(t, err)
	assert.Equal(t, "y(x) = C_1e^(2.0x) + C_2e^(1.0x)\nC_1 = 1.0\nC_2 = -1.0\n", out)

	_, err = execute(t, "solve", "--initial=1", "--", "1", "-3", "2")
	assert.Error(t, err)
}

func TestRoots_Text(t *testing.T) {
	out, err := execute(t, "roots", "--", "1", "2", "5", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "real     0.0")
	assert.Contains(t, out, "complex  -1.0 ± 2.0i")
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

func TestRoots_JSON(t *testing.T) {
	out, err := execute(t, "roots", "--json", "--", "1", "-4", "4")
	require.NoError(t, err)

	var got struct {
		Real []struct {
			Value        float64 `json:"value"`
			Multiplicity int     `json:"multiplicity"`
		} `json:"real"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Real, 1)
	assert.Equal(t, 2, got.Real[0].Multiplicity)
	assert.InDelta(t, 2, got.Real[0].Value, 1e-6)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lvode.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  precision: 1\n"), 0o644))

	out, err := execute(t, "--config", path, "solve", "--", "3", "-1")
	require.NoError(t, err)
	assert.Equal(t, "y(x) = C_1e^(0.3x)\n", out)

	// flags win over the file
	out, err = execute(t, "--config", path, "--precision", "3", "solve", "--", "3", "-1")
	require.NoError(t, err)
	assert.Equal(t, "y(x) = C_1e^(0.333x)\n", out)
}

func writeEquations(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "equations.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	return path
}

const equationsYAML = `- name: distinct
  coefficients: [1, -3, 2]
- name: harmonic
  coefficients: [1, 0, 4]
- coefficients: [1, -6, 12, -8]
`

func TestBatch_Text(t *testing.T) {
	out, err := execute(t, "batch", writeEquations(t, equationsYAML))
	require.NoError(t, err)
	assert.Equal(t,
		"distinct: y(x) = C_1e^(2.0x) + C_2e^(1.0x)\n"+
			"harmonic: y(x) = C_1cos(2.0x) + C_2sin(2.0x)\n"+
			"#3: y(x) = C_1e^(2.0x) + C_2xe^(2.0x) + C_3x^2e^(2.0x)\n",
		out)
}

func TestBatch_JSONWithFailure(t *testing.T) {
	path := writeEquations(t, equationsYAML+"- name: constant\n  coefficients: [4]\n")
	out, err := execute(t, "batch", "--json", path)
	require.ErrorContains(t, err, "1 of 4 equations failed")

	var report struct {
		RunID   string `json:"run_id"`
		Failed  int    `json:"failed"`
		Results []struct {
			Name  string `json:"name"`
			Error string `json:"error"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Len(t, report.RunID, 36)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Results, 4)
	assert.Equal(t, "constant", report.Results[3].Name)
	assert.Empty(t, report.Results[0].Error)
	assert.Contains(t, out, `"error": "ode: Solve: `)
}

func TestBatch_BadFile(t *testing.T) {
	_, err := execute(t, "batch", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = execute(t, "batch", writeEquations(t, "name: [not a list"))
	assert.Error(t, err)
}

// TestWatchFile rewrites the file until the watcher reacts, then stops it.
func TestWatchFile(t *testing.T) {
	path := writeEquations(t, equationsYAML)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fired := make(chan struct{}, 16)
	done := make(chan error, 1)
	go func() {
		done <- watchFile(ctx, path, zap.NewNop(), func() error {
			fired <- struct{}{}
			return nil
		})
	}()

	deadline := time.After(10 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
wait:
	for {
		select {
		case <-fired:
			break wait
		case <-tick.C:
			require.NoError(t, os.WriteFile(path, []byte(equationsYAML), 0o644))
		case <-deadline:
			t.Fatal("watcher never reported a write")
		}
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}
