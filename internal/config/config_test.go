package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ni/delaygraph/internal/config"
)

func writeTOML(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "run.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	return path
}

func TestLoadDefaultsToRunningBothAssigners(t *testing.T) {
	path := writeTOML(t, `dataset_root = "/data"
scorecard_dir = "/out"
`)

	r, err := config.Load(path)
	require.NoError(t, err)
	require.True(t, r.Assigner.RunsBoth())
}

func TestLoadRejectsMissingDatasetRoot(t *testing.T) {
	path := writeTOML(t, `scorecard_dir = "/out"
`)

	_, err := config.Load(path)
	require.ErrorIs(t, err, config.ErrMissingDatasetRoot)
}

func TestLoadHonorsExplicitAssignerAndPeriod(t *testing.T) {
	path := writeTOML(t, `dataset_root = "/data"
assigner = "asap"
target_period_ps = 1500
`)

	r, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, config.AssignerASAP, r.Assigner)
	require.False(t, r.Assigner.RunsBoth())
	require.Equal(t, int64(1500), r.TargetPeriodPS)
}
