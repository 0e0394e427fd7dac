package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("PROVIDER_CURRENCY", "")
	t.Setenv("PROVIDER_TIMEOUT", "")
	t.Setenv("DB_MAX_OPEN_CONNS", "")

	cfg := Load()

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "COP", cfg.Provider.Currency)
	assert.Equal(t, 15*time.Second, cfg.Provider.Timeout)
	assert.Equal(t, 2*time.Second, cfg.NotifierGracePeriod)
	assert.Equal(t, 10, cfg.MaxOpenConns)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("PROVIDER_TIMEOUT", "3s")
	t.Setenv("DB_MAX_OPEN_CONNS", "25")
	t.Setenv("PROVIDER_EVENTS_SECRET", "evt")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 3*time.Second, cfg.Provider.Timeout)
	assert.Equal(t, 25, cfg.MaxOpenConns)
	assert.Equal(t, "evt", cfg.Provider.EventsSecret)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("PROVIDER_TIMEOUT", "soon")
	t.Setenv("DB_MAX_OPEN_CONNS", "many")

	cfg := Load()

	assert.Equal(t, 15*time.Second, cfg.Provider.Timeout)
	assert.Equal(t, 10, cfg.MaxOpenConns)
}
