package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "events.db", cfg.Database.DSN)
	assert.Equal(t, 720, cfg.Session.TTLHours)
	assert.Equal(t, float64(720), cfg.Session.TTL().Hours())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("EVENTCAL_HTTP_PORT", "9090")
	t.Setenv("EVENTCAL_DATABASE_DRIVER", "postgres")
	t.Setenv("EVENTCAL_DATABASE_DSN", "host=localhost dbname=eventcal")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTP.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "host=localhost dbname=eventcal", cfg.Database.DSN)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("EVENTCAL_DATABASE_DRIVER", "oracle")

	_, err := Load("")
	assert.Error(t, err)
}
