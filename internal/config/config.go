// Package config loads server settings from defaults, an optional config
// file and CV_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/evcraddock/clinic-visits/internal/db"
	"github.com/evcraddock/clinic-visits/internal/visit"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Addr            string
	DevMode         bool
	LogLevel        string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	DatabaseDriver    string
	SQLitePath        string
	DatabaseURL       string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	DBConnMaxIdleTime time.Duration

	Doctors []string
}

// Load reads configuration. An empty configFile looks for cv.yaml in the
// working directory; a missing default file is not an error.
func Load(configFile string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", ":5000")
	v.SetDefault("server.dev", false)
	v.SetDefault("server.request_timeout", "10s")
	v.SetDefault("shutdown.timeout", "10s")
	v.SetDefault("log.level", "info")
	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.path", defaultSQLitePath())
	v.SetDefault("database.url", "postgres://cv:cv@127.0.0.1:5432/cv?sslmode=disable")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("database.conn_max_idle_time", "5m")
	v.SetDefault("doctors", visit.DefaultRoster)

	_ = v.BindEnv("server.addr", "CV_SERVER_ADDR", "CV_ADDR")
	_ = v.BindEnv("database.url", "CV_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("log.level", "CV_LOG_LEVEL", "LOG_LEVEL")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("cv")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	requestTimeout, err := time.ParseDuration(v.GetString("server.request_timeout"))
	if err != nil {
		return Config{}, fmt.Errorf("server.request_timeout: %w", err)
	}
	shutdownTimeout, err := time.ParseDuration(v.GetString("shutdown.timeout"))
	if err != nil {
		return Config{}, fmt.Errorf("shutdown.timeout: %w", err)
	}
	connMaxLifetime, err := time.ParseDuration(v.GetString("database.conn_max_lifetime"))
	if err != nil {
		return Config{}, fmt.Errorf("database.conn_max_lifetime: %w", err)
	}
	connMaxIdleTime, err := time.ParseDuration(v.GetString("database.conn_max_idle_time"))
	if err != nil {
		return Config{}, fmt.Errorf("database.conn_max_idle_time: %w", err)
	}

	driver := strings.ToLower(strings.TrimSpace(v.GetString("database.driver")))
	if driver != DriverSQLite && driver != DriverPostgres {
		return Config{}, fmt.Errorf("database.driver: unsupported driver %q", driver)
	}

	doctors := roster(v.Get("doctors"))
	if len(doctors) == 0 {
		doctors = visit.DefaultRoster
	}

	return Config{
		Addr:              strings.TrimSpace(v.GetString("server.addr")),
		DevMode:           v.GetBool("server.dev"),
		LogLevel:          v.GetString("log.level"),
		RequestTimeout:    requestTimeout,
		ShutdownTimeout:   shutdownTimeout,
		DatabaseDriver:    driver,
		SQLitePath:        v.GetString("database.path"),
		DatabaseURL:       v.GetString("database.url"),
		DBMaxOpenConns:    v.GetInt("database.max_open_conns"),
		DBMaxIdleConns:    v.GetInt("database.max_idle_conns"),
		DBConnMaxLifetime: connMaxLifetime,
		DBConnMaxIdleTime: connMaxIdleTime,
		Doctors:           doctors,
	}, nil
}

func defaultSQLitePath() string {
	path, err := db.DefaultPath()
	if err != nil {
		return "visits.db"
	}
	return path
}

// roster reads the doctors key. Environment values arrive as a single
// string and are split on commas so names keep their spaces.
func roster(raw any) []string {
	s, ok := raw.(string)
	if !ok {
		return cast.ToStringSlice(raw)
	}
	var names []string
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}
