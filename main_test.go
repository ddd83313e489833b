package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/agentsociety-tlc/entity/junction/trafficlight"
	"github.com/tsinghua-fib-lab/agentsociety-tlc/runner"
)

const smallConfig = `
scenario:
  vehicles: 6
  caution: 1
`

func writeConfig(t *testing.T, data string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRunSinglePolicy(t *testing.T) {
	path := writeConfig(t, smallConfig)
	for _, m := range trafficlight.Methods() {
		t.Run(m, func(t *testing.T) {
			out, err := execute(t, "-m", m, "-e", "2", "--config", path, "--log.level", "warn")
			require.NoError(t, err)
			assert.Contains(t, out, "Results after 2 episodes")
			assert.Contains(t, out, "Average collisions per episode: 0.00")
		})
	}
}

func TestRunRejectsBadArguments(t *testing.T) {
	_, err := execute(t, "-m", "random", "--log.level", "warn")
	assert.ErrorIs(t, err, trafficlight.ErrUnknownPolicy)

	_, err = execute(t, "-e", "0", "--log.level", "warn")
	assert.Error(t, err)

	_, err = execute(t, "--log.level", "loud")
	assert.Error(t, err)
}

func TestTruncatedRunPrintsNoSummary(t *testing.T) {
	path := writeConfig(t, "control:\n  step:\n    max_time: 5\n")
	out, err := execute(t, "-m", "fc", "--config", path, "--log.level", "warn")
	assert.ErrorIs(t, err, runner.ErrTruncated)
	assert.NotContains(t, out, "Results after")
}

func TestCompare(t *testing.T) {
	path := writeConfig(t, smallConfig)
	out, err := execute(t, "compare", "-e", "1", "--methods", "fc,plqf", "--config", path, "--log.level", "warn")
	require.NoError(t, err)
	assert.Contains(t, out, "fc")
	assert.Contains(t, out, "plqf")

	_, err = execute(t, "compare", "--methods", "fc,nope", "--log.level", "warn")
	assert.ErrorIs(t, err, trafficlight.ErrUnknownPolicy)
}
