package core

import (
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Database engines
const (
	EnginePostgres = "postgres"
	EngineSQLite   = "sqlite3"
)

type (
	Config struct {
		Env          string
		AppName      string
		Build        string
		Debug        bool
		TestMode     bool
		RollbarToken string

		Server     ServerConfig
		Database   DatabaseConfig
		Attendance AttendanceConfig
		Marks      MarksConfig
		Samples    SamplesConfig
	}

	ServerConfig struct {
		Host            string
		Address         string
		DebugHost       string
		ShutdownTimeout time.Duration
		DisableReqLogs  bool
	}

	DatabaseConfig struct {
		Engine     string
		Path       string // sqlite3 only
		Host       string
		Port       int
		Name       string
		User       string
		Password   string
		DisableTLS bool
	}

	AttendanceConfig struct {
		Location      *time.Location
		ClosedWeekday time.Weekday
	}

	MarksConfig struct {
		// Strict rejects unparsable marks instead of storing 0.
		Strict bool
	}

	SamplesConfig struct {
		Default int
		Max     int
	}
)

// Address returns the "host:port" of the database server.
func (db DatabaseConfig) Address() string {
	return net.JoinHostPort(db.Host, strconv.Itoa(db.Port))
}

// NewConfig loads the configuration of the current environment (ENV: DEV (default), TEST, QA, PROD).
// Values are looked up in this order: env vars prefixed with the environment (eg. DEV_DATABASE_ENGINE),
// the optional dotenv file `$CONFIG_DIR/.env.<env>`, then defaults.
func NewConfig() (*Config, error) {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("appName", "Roll Call")
	v.SetDefault("build", "develop")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.address", ":5000")
	v.SetDefault("server.debugHost", ":5001")
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("server.disableReqLogs", false)
	v.SetDefault("database.engine", EngineSQLite)
	v.SetDefault("database.path", "attendance.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "attendance")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.disableTLS", true)
	v.SetDefault("attendance.timezone", "Local")
	v.SetDefault("attendance.closedWeekday", "sunday")
	v.SetDefault("marks.strict", false)
	v.SetDefault("samples.default", 5)
	v.SetDefault("samples.max", 10)

	env := strings.ToUpper(os.Getenv("ENV"))
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	confDir := os.Getenv("CONFIG_DIR")
	if confDir == "" {
		confDir = "config"
	}
	dotEnvPath := filepath.Join(confDir, ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "stat %s", dotEnvPath)
	}
	v.AutomaticEnv()

	loc, err := time.LoadLocation(v.GetString("attendance.timezone"))
	if err != nil {
		return nil, errors.Wrap(err, "loading attendance timezone")
	}
	closedDay, err := ParseWeekday(v.GetString("attendance.closedWeekday"))
	if err != nil {
		return nil, err
	}

	engine := strings.ToLower(v.GetString("database.engine"))
	if engine != EnginePostgres && engine != EngineSQLite {
		return nil, errors.Errorf("unsupported database engine %q", engine)
	}

	return &Config{
		Env:          env,
		AppName:      v.GetString("appName"),
		Build:        v.GetString("build"),
		Debug:        v.GetBool("debug"),
		TestMode:     v.GetBool("testMode"),
		RollbarToken: v.GetString("rollbarToken"),
		Server: ServerConfig{
			Host:            v.GetString("server.host"),
			Address:         v.GetString("server.address"),
			DebugHost:       v.GetString("server.debugHost"),
			ShutdownTimeout: v.GetDuration("server.shutdownTimeout"),
			DisableReqLogs:  v.GetBool("server.disableReqLogs"),
		},
		Database: DatabaseConfig{
			Engine:     engine,
			Path:       v.GetString("database.path"),
			Host:       v.GetString("database.host"),
			Port:       v.GetInt("database.port"),
			Name:       v.GetString("database.name"),
			User:       v.GetString("database.user"),
			Password:   v.GetString("database.password"),
			DisableTLS: v.GetBool("database.disableTLS"),
		},
		Attendance: AttendanceConfig{
			Location:      loc,
			ClosedWeekday: closedDay,
		},
		Marks: MarksConfig{
			Strict: v.GetBool("marks.strict"),
		},
		Samples: SamplesConfig{
			Default: v.GetInt("samples.default"),
			Max:     v.GetInt("samples.max"),
		},
	}, nil
}

// ParseWeekday parses an english weekday name ("sunday", "Mon"...).
func ParseWeekday(s string) (time.Weekday, error) {
	s = CleanString(s, true /* lower */)
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || (len(s) == 3 && strings.HasPrefix(name, s)) {
			return d, nil
		}
	}
	return time.Sunday, errors.Errorf("invalid weekday %q", s)
}
