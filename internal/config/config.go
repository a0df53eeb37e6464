package config

import (
	"strings"
	"time"
	_ "time/tzdata"

	"sukuyo/internal/errors"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Ephemeris strategy names
const (
	EphemerisMeeus  = "meeus"
	EphemerisLinear = "linear"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Astro     AstroConfig
	Catalog   CatalogConfig
	Profiling ProfilingConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port        string   `env:"PORT" envDefault:"8080"`
	GinMode     string   `env:"GIN_MODE" envDefault:"release"`
	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level       string `env:"LOG_LEVEL" envDefault:"info"`
	Development bool   `env:"LOG_DEVELOPMENT" envDefault:"false"`
}

// AstroConfig selects how a birth date becomes a longitude
type AstroConfig struct {
	Ephemeris     string `env:"EPHEMERIS" envDefault:"meeus"`
	BirthTimezone string `env:"BIRTH_TIMEZONE" envDefault:"UTC"`
}

// CatalogConfig points the shuku catalog at a database. An empty DSN
// means the embedded catalog is used.
type CatalogConfig struct {
	Driver string `env:"CATALOG_DRIVER" envDefault:"postgres"`
	DSN    string `env:"CATALOG_DSN"`
}

// ProfilingConfig holds performance profiling settings
type ProfilingConfig struct {
	Port    string `env:"PPROF_PORT" envDefault:"6060"`
	Enabled bool   `env:"PPROF_ENABLED" envDefault:"false"`
}

// Location resolves BirthTimezone. Validate has already checked it.
func (c AstroConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.BirthTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// LoadDotEnv loads a .env file if one exists. It reports whether a file was found.
func LoadDotEnv(files ...string) bool {
	return godotenv.Load(files...) == nil
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, errors.Wrap(errors.ConfigInvalid(err.Error()), "failed to parse environment")
	}

	config.Astro.Ephemeris = strings.ToLower(strings.TrimSpace(config.Astro.Ephemeris))

	if err := Validate(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

// Validate checks field values that the env tags cannot express
func Validate(config *Config) error {
	switch config.Astro.Ephemeris {
	case EphemerisMeeus, EphemerisLinear:
	default:
		return errors.ConfigInvalid("EPHEMERIS must be one of meeus, linear; got " + config.Astro.Ephemeris)
	}

	if _, err := time.LoadLocation(config.Astro.BirthTimezone); err != nil {
		return errors.ConfigInvalid("BIRTH_TIMEZONE is not a known location: " + config.Astro.BirthTimezone)
	}

	if config.Catalog.DSN != "" {
		switch config.Catalog.Driver {
		case "postgres", "sqlite3":
		default:
			return errors.ConfigInvalid("CATALOG_DRIVER must be postgres or sqlite3; got " + config.Catalog.Driver)
		}
	}

	switch config.Server.GinMode {
	case "debug", "release", "test":
	default:
		return errors.ConfigInvalid("GIN_MODE must be debug, release or test; got " + config.Server.GinMode)
	}

	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT is required")
	}
	return nil
}
