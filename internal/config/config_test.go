package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(`
[database]
host = "db"
user = "wash"
password = "secret"
dbname = "wash"
`)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "host=db port=5432 user=wash password=secret dbname=wash sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, time.Hour, cfg.Scheduling.CutoffLookAhead())
	assert.Equal(t, 10*time.Second, cfg.Scheduling.LockTTL())
	assert.Equal(t, time.UTC, cfg.Scheduling.Location())
	assert.False(t, cfg.Scheduling.StrictSlotClaim)
	assert.Len(t, cfg.Scheduling.Definitions(), 12)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestParse_Scheduling(t *testing.T) {
	cfg, err := Parse(`
[scheduling]
timezone = "Asia/Manila"
cutoff_minutes = 90
strict_slot_claim = true
slots = [["8:00 AM", "9:00 AM"], ["1:00 PM", "2:30 PM"]]
`)
	require.NoError(t, err)

	defs := cfg.Scheduling.Definitions()
	require.Len(t, defs, 2)
	assert.Equal(t, "1:00 PM - 2:30 PM", defs[1].Label())
	assert.Equal(t, 90*time.Minute, cfg.Scheduling.CutoffLookAhead())
	assert.Equal(t, "Asia/Manila", cfg.Scheduling.Location().String())
	assert.True(t, cfg.Scheduling.StrictSlotClaim)
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"bad timezone": `[scheduling]
timezone = "Mars/Olympus"`,
		"bad slot": `[scheduling]
slots = [["8 AM", "9:00 AM"]]`,
		"negative cutoff": `[scheduling]
cutoff_minutes = -5`,
	}

	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(data)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}

	_, err := Parse("not = [valid")
	assert.ErrorIs(t, err, ErrLoad)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server]\nhttp_port = 9090\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.HTTPPort)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, ErrLoad)
}
