package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riwisport/sales-dashboard/internal/config"
)

func setRequiredDB(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "riwi")
	t.Setenv("DB_NAME", "riwi_sales")
}

func TestLoad(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		setRequiredDB(t)

		cfg, err := config.Load()
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, "development", cfg.Env)
		assert.Equal(t, "5432", cfg.DB.Port)
		assert.Equal(t, "disable", cfg.DB.SSLMode)
		assert.False(t, cfg.DB.Migrate)
		assert.Equal(t, 5, cfg.Dashboard.TopN)
		assert.Equal(t, 30, cfg.Dashboard.HistogramBins)
		assert.Equal(t, 5*time.Minute, cfg.Dashboard.SnapshotTTL)
	})

	t.Run("reads overrides from the environment", func(t *testing.T) {
		setRequiredDB(t)
		t.Setenv("PORT", "9090")
		t.Setenv("DB_MIGRATE", "true")
		t.Setenv("DASHBOARD_TOP_N", "10")
		t.Setenv("DASHBOARD_SNAPSHOT_TTL", "90s")

		cfg, err := config.Load()
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.Port)
		assert.True(t, cfg.DB.Migrate)
		assert.Equal(t, 10, cfg.Dashboard.TopN)
		assert.Equal(t, 90*time.Second, cfg.Dashboard.SnapshotTTL)
	})

	t.Run("fails when database parameters are missing", func(t *testing.T) {
		t.Setenv("DB_HOST", "")
		t.Setenv("DB_USER", "")
		t.Setenv("DB_NAME", "")

		_, err := config.Load()
		assert.Error(t, err)
	})

	t.Run("rejects an invalid snapshot TTL", func(t *testing.T) {
		setRequiredDB(t)
		t.Setenv("DASHBOARD_SNAPSHOT_TTL", "never")

		_, err := config.Load()
		assert.Error(t, err)
	})
}
