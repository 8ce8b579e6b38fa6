package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VisitScheduler/pkg/types"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
[database]
user = "visits"
dbname = "visits"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 72*time.Hour, cfg.Reservations.DefaultTTL())
	assert.Equal(t, "America/Santiago", cfg.Calendar.Timezone)

	cal, err := cfg.Calendar.ToDomain()
	require.NoError(t, err)
	assert.Len(t, cal.Slots, 8)
	assert.Equal(t, 30, cal.MaxFutureDays)
	assert.Equal(t, 3, cal.MaxActiveVisitsPerClient)
	assert.Equal(t, 2, cal.MaxVisitsPerDay)
	assert.Equal(t, "America/Santiago", cal.Location.String())
}

func TestLoad_CustomCalendar(t *testing.T) {
	path := writeConfig(t, `
[calendar]
slots = ["17:00", "09:30"]
max_future_days = 7
lead_minutes = 60
timezone = "UTC"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	cal, err := cfg.Calendar.ToDomain()
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"09:30", "17:00"}, cal.Slots)
	assert.Equal(t, 7, cal.MaxFutureDays)
	assert.Equal(t, 60, cal.LeadMinutes)
}

func TestLoad_PasswordFromEnv(t *testing.T) {
	t.Setenv("DB_PASSWORD", "from-env")
	path := writeConfig(t, `
[database]
password = "from-file"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Contains(t, cfg.Database.DSN(), "password=from-env")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "bad slot", body: "[calendar]\nslots = [\"9am\"]\n"},
		{name: "bad timezone", body: "[calendar]\ntimezone = \"Mars/Olympus\"\n"},
		{name: "nats without url", body: "[notifications.nats]\nenabled = true\n"},
		{name: "default page above max", body: "[calendar]\ndefault_agenda_days = 20\nmax_agenda_days = 10\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.ErrorIs(t, err, ErrReadConfig)
}
