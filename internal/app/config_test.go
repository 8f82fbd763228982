package app

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/custom-accounting/internal/platform/cache"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("CSRF_SECRET", "c")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "AED", cfg.DefaultCurrency)
	assert.Equal(t, 5*time.Minute, cfg.BalanceCacheTTL)
	assert.Equal(t, "*/15 * * * *", cfg.BalanceRefreshCron)
	assert.Equal(t, 60, cfg.RateLimitPerMinute)
	assert.Equal(t, cache.Options{Addr: "127.0.0.1:6379"}, cfg.Redis())

	start, err := cfg.FiscalYearStart()
	require.NoError(t, err)
	assert.Equal(t, time.January, start.Month)
	assert.Equal(t, 1, start.Day)
}

func TestLoadConfigRejectsBadFiscalYearStart(t *testing.T) {
	t.Setenv("CSRF_SECRET", "c")
	t.Setenv("FISCAL_YEAR_START", "13-40")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigRequiresCSRFSecret(t *testing.T) {
	t.Setenv("CSRF_SECRET", "")
	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
}
