package config

import (
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// Store drivers understood by database.Open.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Config holds everything the process reads at startup.
type Config struct {
	Port             string
	Store            StoreConfig
	RabbitMQURL      string
	CORSAllowOrigins string
	SeedSampleData   bool
	ShutdownTimeout  time.Duration
}

// StoreConfig selects and locates the lesson/order store.
type StoreConfig struct {
	Driver        string
	DSN           string // postgres DSN or sqlite file
	MongoURI      string
	MongoDatabase string
}

// Addr returns the listen address for fiber.
func (c Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// Load reads configuration from the environment and an optional .env file.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		return Config{}, errors.Wrap(err, "failed to read .env file")
	}
	return FromViper(v)
}

// FromViper applies defaults and environment lookups to v and builds a Config.
func FromViper(v *viper.Viper) (Config, error) {
	v.SetDefault("PORT", "3000")
	v.SetDefault("STORE_DRIVER", DriverMongo)
	v.SetDefault("MONGODB_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGODB_DATABASE", "lessondb")
	v.SetDefault("DATABASE_DSN", "lessons.db")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("CORS_ALLOW_ORIGINS", "*")
	v.SetDefault("SEED_SAMPLE_DATA", true)
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.AutomaticEnv()

	cfg := Config{
		Port: v.GetString("PORT"),
		Store: StoreConfig{
			Driver:        strings.ToLower(v.GetString("STORE_DRIVER")),
			DSN:           v.GetString("DATABASE_DSN"),
			MongoURI:      v.GetString("MONGODB_URI"),
			MongoDatabase: v.GetString("MONGODB_DATABASE"),
		},
		RabbitMQURL:      v.GetString("RABBITMQ_URL"),
		CORSAllowOrigins: v.GetString("CORS_ALLOW_ORIGINS"),
		SeedSampleData:   v.GetBool("SEED_SAMPLE_DATA"),
		ShutdownTimeout:  v.GetDuration("SHUTDOWN_TIMEOUT"),
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Port == "" {
		return errors.New("PORT must not be empty")
	}
	switch c.Store.Driver {
	case DriverMongo:
		if c.Store.MongoURI == "" {
			return errors.New("MONGODB_URI must not be empty for the mongo driver")
		}
	case DriverPostgres, DriverSQLite:
		if c.Store.DSN == "" {
			return errors.Newf("DATABASE_DSN must not be empty for the %s driver", c.Store.Driver)
		}
	case DriverMemory:
	default:
		return errors.Newf("unknown STORE_DRIVER %q", c.Store.Driver)
	}
	return nil
}
