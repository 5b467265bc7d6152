package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCommandStructure(t *testing.T) {
	assert.NotNil(t, listCmd)
	assert.Equal(t, "list", listCmd.Use)
	assert.NotEmpty(t, listCmd.Short)
	assert.NotNil(t, listCmd.RunE)
}

func TestRunList(t *testing.T) {
	writeTestConfig(t, `
pipelines:
  clean_orders:
    source:
      type: csv
      path: /data/orders.csv
    steps:
      - op: dropna
  archive_orders:
    source:
      type: mysql
      dsn: user:pass@tcp(localhost:3306)/shop
      table: orders
    steps:
      - op: query
        args: ["total > 0"]
      - op: head
        args: [100]
`)

	var buf bytes.Buffer
	listCmd.SetOut(&buf)

	err := runList(listCmd, nil)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Pipelines (2):")
	assert.Contains(t, out, "archive_orders")
	assert.Contains(t, out, "mysql source, 2 steps")
	assert.Contains(t, out, "clean_orders")
	assert.Contains(t, out, "csv source, 1 steps")
}

func TestRunListEmpty(t *testing.T) {
	writeTestConfig(t, `
logging:
  level: info
`)

	var buf bytes.Buffer
	listCmd.SetOut(&buf)

	err := runList(listCmd, nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No pipelines defined")
}
