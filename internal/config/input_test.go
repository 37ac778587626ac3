package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cgfgestion/investment-simulator/internal/calculation"
	"github.com/cgfgestion/investment-simulator/internal/domain"
)

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
}

func TestLoadFromFile_Example(t *testing.T) {
	parser := NewInputParser()
	cfg, err := parser.LoadFromFile("../../testdata/example_simulations.yaml")
	require.NoError(t, err)

	assert.Equal(t, "Awa Koné", cfg.Client.Name)
	assert.Equal(t, "awa.kone@example.com", cfg.Client.Email)
	require.Len(t, cfg.Simulations, 4)
	require.Len(t, cfg.Sweeps, 2)

	// aliases are normalized to canonical modes
	assert.Equal(t, string(domain.ModeFutureValue), cfg.Simulations[0].Mode)
	assert.Equal(t, string(domain.ModeMonthlyContribution), cfg.Simulations[1].Mode)
	assert.Equal(t, string(domain.ModeInitialCapital), cfg.Simulations[2].Mode)
	assert.Equal(t, string(domain.ModeHorizon), cfg.Simulations[3].Mode)

	assert.Equal(t, 3.0, cfg.Simulations[0].Parameters.InflationRate)
	assert.Equal(t, []float64{10000, 25000, 50000, 100000}, cfg.Sweeps[1].Values)
}

func TestLoadFromFile_Success(t *testing.T) {
	testConfig := "simulations:\n" +
		"  - name: \"Basic\"\n" +
		"    mode: \"future_value\"\n" +
		"    parameters:\n" +
		"      initial_capital: 1000\n" +
		"      monthly_contribution: 100\n" +
		"      annual_rate: 3\n" +
		"      horizon_years: 5\n"

	path := filepath.Join(t.TempDir(), "sims.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0644))

	cfg, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)
	require.Len(t, cfg.Simulations, 1)
	assert.Equal(t, 1000.0, cfg.Simulations[0].Parameters.InitialCapital)
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := NewInputParser().LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "malformed yaml",
			yaml:    "simulations: [",
			wantErr: "failed to parse YAML",
		},
		{
			name:    "no simulations",
			yaml:    "client:\n  name: x\n",
			wantErr: "no simulations provided",
		},
		{
			name:    "missing name",
			yaml:    "simulations:\n  - mode: fv\n",
			wantErr: "name is required",
		},
		{
			name:    "duplicate name",
			yaml:    "simulations:\n  - name: a\n    mode: fv\n  - name: a\n    mode: fv\n",
			wantErr: "defined more than once",
		},
		{
			name:    "unknown mode",
			yaml:    "simulations:\n  - name: a\n    mode: irr\n",
			wantErr: "unknown calculation mode",
		},
		{
			name:    "negative contribution",
			yaml:    "simulations:\n  - name: a\n    mode: fv\n    parameters:\n      monthly_contribution: -1\n",
			wantErr: "monthly contribution cannot be negative",
		},
		{
			name:    "horizon above ceiling",
			yaml:    "simulations:\n  - name: a\n    mode: pmt\n    parameters:\n      horizon_years: 101\n",
			wantErr: "cannot exceed 100 years",
		},
		{
			name:    "inflation below floor",
			yaml:    "simulations:\n  - name: a\n    mode: fv\n    parameters:\n      inflation_rate: -101\n",
			wantErr: "inflation rate",
		},
		{
			name:    "unsupported country",
			yaml:    "client:\n  country: Atlantis\nsimulations:\n  - name: a\n    mode: fv\n",
			wantErr: "not supported",
		},
		{
			name:    "client email",
			yaml:    "client:\n  email: not-an-address\nsimulations:\n  - name: a\n    mode: fv\n",
			wantErr: "client email",
		},
		{
			name:    "advisor email",
			yaml:    "client:\n  advisor_email: '@nowhere'\nsimulations:\n  - name: a\n    mode: fv\n",
			wantErr: "advisor email",
		},
		{
			name:    "sweep references unknown simulation",
			yaml:    "simulations:\n  - name: a\n    mode: fv\nsweeps:\n  - simulation: b\n    kind: rate\n",
			wantErr: "unknown simulation",
		},
		{
			name:    "sweep kind",
			yaml:    "simulations:\n  - name: a\n    mode: fv\nsweeps:\n  - simulation: a\n    kind: volatility\n",
			wantErr: "kind must be",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewInputParser().Parse([]byte(tc.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestParse_UnknownFieldIsNotValidated(t *testing.T) {
	// the contribution is what this simulation solves for
	yml := "simulations:\n  - name: a\n    mode: pmt\n    parameters:\n      monthly_contribution: -50\n      target_value: 1000\n      horizon_years: 2\n"
	_, err := NewInputParser().Parse([]byte(yml))
	assert.NoError(t, err)
}

func TestParse_ValidationErrorIsTyped(t *testing.T) {
	yml := "simulations:\n  - name: a\n    mode: fv\n    parameters:\n      initial_capital: -10\n"
	_, err := NewInputParser().Parse([]byte(yml))
	assert.ErrorIs(t, err, calculation.ErrValidation)
}

func TestCreateAndSaveExampleConfiguration(t *testing.T) {
	parser := NewInputParser()
	example := parser.CreateExampleConfiguration()
	require.NoError(t, parser.ValidateConfiguration(example))

	path := filepath.Join(t.TempDir(), "example.yaml")
	require.NoError(t, SaveConfiguration(example, path))

	loaded, err := parser.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, example.Client, loaded.Client)
	assert.Len(t, loaded.Simulations, len(example.Simulations))
	assert.Equal(t, DefaultParameters(), loaded.Simulations[0].Parameters)
}
