package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Weekday
		wantErr bool
	}{
		{in: "sunday", want: time.Sunday},
		{in: " Saturday ", want: time.Saturday},
		{in: "MON", want: time.Monday},
		{in: "wed", want: time.Wednesday},
		{in: "", wantErr: true},
		{in: "lol", wantErr: true},
		{in: "sundays", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseWeekday(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseWeekday() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestNewConfig(t *testing.T) {
	dir := t.TempDir()
	dotEnv := "TEST_DATABASE_PATH=/tmp/roll.db\nTEST_ATTENDANCE_CLOSEDWEEKDAY=saturday\nTEST_MARKS_STRICT=true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.test"), []byte(dotEnv), 0o600))

	t.Setenv("ENV", "test")
	t.Setenv("CONFIG_DIR", dir)
	t.Setenv("TEST_SAMPLES_MAX", "7")
	t.Setenv("TEST_ATTENDANCE_TIMEZONE", "UTC")
	// loaded by godotenv; unset them afterwards
	t.Setenv("TEST_DATABASE_PATH", "")
	t.Setenv("TEST_ATTENDANCE_CLOSEDWEEKDAY", "")
	t.Setenv("TEST_MARKS_STRICT", "")
	for _, k := range []string{"TEST_DATABASE_PATH", "TEST_ATTENDANCE_CLOSEDWEEKDAY", "TEST_MARKS_STRICT"} {
		require.NoError(t, os.Unsetenv(k))
	}

	conf, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "TEST", conf.Env)
	assert.True(t, conf.TestMode)
	assert.Equal(t, EngineSQLite, conf.Database.Engine)
	assert.Equal(t, "/tmp/roll.db", conf.Database.Path)
	assert.Equal(t, time.Saturday, conf.Attendance.ClosedWeekday)
	assert.Equal(t, time.UTC, conf.Attendance.Location)
	assert.True(t, conf.Marks.Strict)
	assert.Equal(t, 5, conf.Samples.Default)
	assert.Equal(t, 7, conf.Samples.Max)
	assert.Equal(t, ":5000", conf.Server.Address)
	assert.Equal(t, 5*time.Second, conf.Server.ShutdownTimeout)
}

func TestNewConfig_invalid(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("CONFIG_DIR", t.TempDir())

	t.Run("engine", func(t *testing.T) {
		t.Setenv("TEST_DATABASE_ENGINE", "mysql")
		_, err := NewConfig()
		assert.Error(t, err)
	})
	t.Run("weekday", func(t *testing.T) {
		t.Setenv("TEST_ATTENDANCE_CLOSEDWEEKDAY", "someday")
		_, err := NewConfig()
		assert.Error(t, err)
	})
	t.Run("timezone", func(t *testing.T) {
		t.Setenv("TEST_ATTENDANCE_TIMEZONE", "Mars/Olympus")
		_, err := NewConfig()
		assert.Error(t, err)
	})
}
