package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoldenCanonicalForms(t *testing.T) {
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", "canonical_forms.yaml"))
	require.NoError(t, err)
	require.NoError(t, RunWithGolden(t, scenario))
}

func TestGoldenCUEDefs(t *testing.T) {
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", "cue_defs.yaml"))
	require.NoError(t, err)
	require.NoError(t, RunWithGolden(t, scenario))
}

// The scenarios double as inline-expectation suites; every case must pass
// on its own, not just match the golden bytes.
func TestScenarioExpectationsPass(t *testing.T) {
	scenarios, err := filepath.Glob(filepath.Join("testdata", "scenarios", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, scenarios)

	for _, path := range scenarios {
		t.Run(filepath.Base(path), func(t *testing.T) {
			scenario, err := LoadScenario(path)
			require.NoError(t, err)
			result, err := Run(scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}
