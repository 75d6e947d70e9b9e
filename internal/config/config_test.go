package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"BASE_URL", "MAX_PAGES", "PAGE_DELAY", "CONVERSION_RATE", "SAVE_DB", "METRICS_PORT"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "https://fashion-studio.dicoding.dev", cfg.BaseURL)
	assert.Equal(t, 50, cfg.MaxPages)
	assert.Equal(t, 2*time.Second, cfg.PageDelay)
	assert.InDelta(t, 16000.0, cfg.ConversionRate, 0)
	assert.True(t, cfg.SaveDB)
	assert.Empty(t, cfg.MetricsPort)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("BASE_URL", "http://localhost:8000")
	t.Setenv("MAX_PAGES", "3")
	t.Setenv("PAGE_DELAY", "150ms")
	t.Setenv("CONVERSION_RATE", "15500.5")
	t.Setenv("SAVE_SHEET", "false")
	t.Setenv("REPORT_TTL", "1h")

	cfg := Load()

	assert.Equal(t, "http://localhost:8000", cfg.BaseURL)
	assert.Equal(t, 3, cfg.MaxPages)
	assert.Equal(t, 150*time.Millisecond, cfg.PageDelay)
	assert.InDelta(t, 15500.5, cfg.ConversionRate, 0)
	assert.False(t, cfg.SaveSheet)
	assert.Equal(t, time.Hour, cfg.ReportTTL)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("MAX_PAGES", "many")
	t.Setenv("PAGE_DELAY", "soon")
	t.Setenv("SAVE_CSV", "maybe")

	cfg := Load()

	assert.Equal(t, 50, cfg.MaxPages)
	assert.Equal(t, 2*time.Second, cfg.PageDelay)
	assert.True(t, cfg.SaveCSV)
}
