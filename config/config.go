// Package config loads runtime settings from the environment (and an
// optional .env file).
package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"5000"`
	Environment string `envconfig:"APP_ENV" default:"development"`

	// DatabaseDriver selects the store: "mongo" or "memory".
	DatabaseDriver string `envconfig:"DATABASE_DRIVER" default:"mongo"`

	Server   ServerConfig   `envconfig:"SERVER"`
	Mongo    MongoConfig    `envconfig:"MONGODB"`
	JWT      JWTConfig      `envconfig:"JWT"`
	Redis    RedisConfig    `envconfig:"REDIS"`
	Admin    AdminConfig    `envconfig:"ADMIN"`
	CORS     CORSConfig     `envconfig:"CORS"`
	Log      LogConfig      `envconfig:"LOG"`
	Bcrypt   BcryptConfig   `envconfig:"BCRYPT"`
	Register RegisterConfig `envconfig:"REGISTER"`
}

type ServerConfig struct {
	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" default:"30s"`
	IdleTimeout     time.Duration `envconfig:"IDLE_TIMEOUT" default:"120s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

type MongoConfig struct {
	URI             string        `envconfig:"URI" default:"mongodb://localhost:27017"`
	Database        string        `envconfig:"DATABASE" default:"stream-nexus"`
	ConnectAttempts uint          `envconfig:"CONNECT_ATTEMPTS" default:"5"`
	ConnectTimeout  time.Duration `envconfig:"CONNECT_TIMEOUT" default:"10s"`
}

type JWTConfig struct {
	Secret string        `envconfig:"SECRET"`
	TTL    time.Duration `envconfig:"TTL" default:"24h"`
}

// RedisConfig points at the revocation store. An empty Address keeps
// revocations in process memory.
type RedisConfig struct {
	Address  string `envconfig:"ADDRESS"`
	Password string `envconfig:"PASSWORD"`
	DB       int    `envconfig:"DB" default:"0"`
}

type AdminConfig struct {
	Username string `envconfig:"USERNAME" default:"admin"`
	Password string `envconfig:"PASSWORD" default:"admin123"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

type LogConfig struct {
	Level      string `envconfig:"LEVEL" default:"info"`
	Format     string `envconfig:"FORMAT" default:"json"`
	File       string `envconfig:"FILE"`
	MaxSizeMB  int    `envconfig:"MAX_SIZE_MB" default:"50"`
	MaxBackups int    `envconfig:"MAX_BACKUPS" default:"5"`
	MaxAgeDays int    `envconfig:"MAX_AGE_DAYS" default:"28"`
}

type BcryptConfig struct {
	Cost int `envconfig:"COST" default:"10"`
}

// RegisterConfig.AsAdmin restores the legacy behavior where every
// self-registered account could edit the catalog.
type RegisterConfig struct {
	AsAdmin bool `envconfig:"AS_ADMIN" default:"false"`
}

// Load reads .env when present, then decodes the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	return FromEnv()
}

// LoadTooling is Load for the operator tools, which never sign tokens and
// so do not require JWT_SECRET.
func LoadTooling() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	cfg, err := decode()
	if err != nil {
		return nil, err
	}
	if err := cfg.validateStorage(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv decodes the environment without touching .env.
func FromEnv() (*Config, error) {
	cfg, err := decode()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	cfg.CORS.AllowedOrigins = cleanList(cfg.CORS.AllowedOrigins)
	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWT.Secret) == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.JWT.TTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive")
	}
	return c.validateStorage()
}

func (c *Config) validateStorage() error {
	switch c.DatabaseDriver {
	case DriverMongo, DriverMemory:
		return nil
	default:
		return fmt.Errorf("unknown DATABASE_DRIVER %q", c.DatabaseDriver)
	}
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
