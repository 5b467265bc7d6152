package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestConfig writes a config file into a temp dir and points the
// global config flag at it for the duration of the test.
func writeTestConfig(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "framelog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	original := cfgFile
	cfgFile = path
	t.Cleanup(func() { cfgFile = original })
}

const validConfigYAML = `
pipelines:
  clean_orders:
    source:
      type: csv
      path: /data/orders.csv
    steps:
      - op: query
        args: ["total > 10"]
      - op: dropna
logging:
  level: error
  format: text
  output: stderr
`

func TestValidateCommandStructure(t *testing.T) {
	assert.NotNil(t, validateCmd)
	assert.Equal(t, "validate", validateCmd.Use)
	assert.NotEmpty(t, validateCmd.Short)
	assert.NotEmpty(t, validateCmd.Long)
	assert.NotNil(t, validateCmd.RunE)
}

func TestValidateIsAddedToRoot(t *testing.T) {
	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "validate" {
			found = true
			break
		}
	}
	assert.True(t, found, "validate command should be added to root command")
}

func TestRunValidateValidConfig(t *testing.T) {
	writeTestConfig(t, validConfigYAML)

	var buf bytes.Buffer
	validateCmd.SetOut(&buf)

	err := runValidate(validateCmd, nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Configuration valid: 1 pipeline(s)")
}

func TestRunValidateUnknownOperation(t *testing.T) {
	writeTestConfig(t, `
pipelines:
  bad:
    source:
      type: csv
      path: /data/x.csv
    steps:
      - op: pivot
`)

	err := runValidate(validateCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown frame operation "pivot"`)
}

func TestRunValidateMissingFile(t *testing.T) {
	original := cfgFile
	cfgFile = "/nonexistent/framelog.yaml"
	defer func() { cfgFile = original }()

	err := runValidate(validateCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}
