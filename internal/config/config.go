package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	StoreDriver     string
	DatabaseURL     string
	DBMaxConns      int
	DBAutoSchema    bool
	LogLevel        string
	Debug           bool
	ServiceName     string
	Environment     string
	Host            string
	Port            string
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

// LoadConfig reads the configuration from the environment. Variables found in
// a .env file in the working directory are loaded first and never override
// ones already set.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	storeDriver := os.Getenv("STORE_DRIVER")
	if storeDriver == "" {
		storeDriver = "postgres"
	}
	if storeDriver != "postgres" && storeDriver != "memory" {
		return nil, fmt.Errorf("STORE_DRIVER must be postgres or memory, got %q", storeDriver)
	}

	databaseUrl := os.Getenv("DATABASE_URL")
	if databaseUrl == "" && storeDriver == "postgres" {
		return nil, errors.New("DATABASE_URL is required")
	}

	dbMaxConns := 4 // default value
	if mc := os.Getenv("DB_MAX_CONNS"); mc != "" {
		parsed, err := strconv.Atoi(mc)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("DB_MAX_CONNS must be a positive integer, got %q", mc)
		}
		dbMaxConns = parsed
	}

	autoSchema := os.Getenv("DB_AUTO_SCHEMA") == "true"

	host := os.Getenv("HOST")
	if host == "" {
		host = "0.0.0.0"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	allowedOrigins := []string{"*"}
	if ao := os.Getenv("ALLOWED_ORIGINS"); ao != "" {
		allowedOrigins = []string{}
		for _, origin := range strings.Split(ao, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				allowedOrigins = append(allowedOrigins, origin)
			}
		}
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	debug := os.Getenv("DEBUG")
	if debug == "" {
		debug = "false"
	}

	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = "carteira-api"
	}

	environment := os.Getenv("ENVIRONMENT")
	if environment == "" {
		environment = "development"
	}

	shutdownTimeout := 5 * time.Second
	if st := os.Getenv("SHUTDOWN_TIMEOUT"); st != "" {
		parsed, err := time.ParseDuration(st)
		if err != nil {
			return nil, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
		}
		shutdownTimeout = parsed
	}

	return &Config{
		StoreDriver:     storeDriver,
		DatabaseURL:     databaseUrl,
		DBMaxConns:      dbMaxConns,
		DBAutoSchema:    autoSchema,
		LogLevel:        logLevel,
		Debug:           debug == "true",
		ServiceName:     serviceName,
		Environment:     environment,
		Host:            host,
		Port:            port,
		AllowedOrigins:  allowedOrigins,
		ShutdownTimeout: shutdownTimeout,
	}, nil
}
