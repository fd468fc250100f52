package cmd

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanCommandCSV(t *testing.T) {
	dir := t.TempDir()
	routes := filepath.Join(dir, "routes.csv")
	require.NoError(t, os.WriteFile(routes, []byte("no;name;lab;lba;tab;tba;pab;pba\n1;Centre;10;9;30;28;200;180\n"), 0o644))

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs([]string{"plan", "-r", routes, "-f", "csv", "--start", "06:00", "--end", "09:00", "--max-interlining", "0"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	require.NoError(t, rootCmd.Execute())

	rows, err := csv.NewReader(&out).ReadAll()
	require.NoError(t, err)
	require.Greater(t, len(rows), 2)
	assert.Equal(t, "direction", rows[0][0])
	assert.Equal(t, "AtoB", rows[1][0])
	assert.Equal(t, "06:00", rows[1][2])
}

func TestPlanCommandRequiresRoutes(t *testing.T) {
	rootCmd.SetArgs([]string{"plan", "-r", ""})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	assert.Error(t, rootCmd.Execute())
}
