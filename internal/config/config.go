package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	Port          string
	StorageDriver string

	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string

	JWTSecret string
	JWTIssuer string
	TokenTTL  time.Duration

	RedisAddress  string
	RedisPassword string
	RedisDB       int

	OperatorWorkers    int
	CORSAllowedOrigins []string
	LogLevel           string

	BootstrapAdminEmail    string
	BootstrapAdminPassword string
}

// PostgresURL builds the lib/pq connection string.
func (c *Config) PostgresURL() string {
	return "postgres://" + c.PostgresUsername + ":" +
		c.PostgresPassword + "@" + c.PostgresAddress + ":" +
		c.PostgresPort + "/" + c.PostgresDB + "?sslmode=disable"
}

func ProcessEnvironmentVariables() (*Config, error) {
	// A missing .env is fine, the process environment still applies.
	_ = godotenv.Load()

	// In all cases the default behavior should be for the docker compose setup
	env := Config{
		Port:               "9446",
		StorageDriver:      StorageDriverPostgres,
		PostgresAddress:    "localhost",
		PostgresPort:       "5433",
		PostgresDB:         "postgres",
		PostgresUsername:   "postgres",
		PostgresPassword:   "testpassword",
		JWTSecret:          "dev-secret-change-me",
		JWTIssuer:          "payments-portal",
		TokenTTL:           time.Hour,
		OperatorWorkers:    4,
		CORSAllowedOrigins: []string{"http://localhost:3000"},
		LogLevel:           "info",
	}

	setString(&env.Port, "PORT")
	setString(&env.StorageDriver, "STORAGE_DRIVER")
	setString(&env.PostgresAddress, "POSTGRES_ADDRESS")
	setString(&env.PostgresPort, "POSTGRES_PORT")
	setString(&env.PostgresDB, "POSTGRES_DB")
	setString(&env.PostgresUsername, "POSTGRES_USERNAME")
	setString(&env.PostgresPassword, "POSTGRES_PASSWORD")
	setString(&env.JWTSecret, "JWT_SECRET")
	setString(&env.JWTIssuer, "JWT_ISSUER")
	setString(&env.RedisAddress, "REDIS_ADDRESS")
	setString(&env.RedisPassword, "REDIS_PASSWORD")
	setString(&env.LogLevel, "LOG_LEVEL")
	setString(&env.BootstrapAdminEmail, "BOOTSTRAP_ADMIN_EMAIL")
	setString(&env.BootstrapAdminPassword, "BOOTSTRAP_ADMIN_PASSWORD")

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); len(origins) != 0 {
		env.CORSAllowedOrigins = splitCSV(origins)
	}

	if ttl := os.Getenv("TOKEN_TTL"); len(ttl) != 0 {
		parsed, err := time.ParseDuration(ttl)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("TOKEN_TTL %q: must be a positive duration", ttl)
		}
		env.TokenTTL = parsed
	}

	if err := setInt(&env.RedisDB, "REDIS_DB"); err != nil {
		return nil, err
	}
	if err := setInt(&env.OperatorWorkers, "OPERATOR_WORKERS"); err != nil {
		return nil, err
	}

	switch env.StorageDriver {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		return nil, fmt.Errorf("STORAGE_DRIVER %q: expected %s or %s", env.StorageDriver, StorageDriverPostgres, StorageDriverMemory)
	}

	if (env.BootstrapAdminEmail == "") != (env.BootstrapAdminPassword == "") {
		return nil, fmt.Errorf("BOOTSTRAP_ADMIN_EMAIL and BOOTSTRAP_ADMIN_PASSWORD must be set together")
	}

	return &env, nil
}

func setString(target *string, key string) {
	if value := os.Getenv(key); len(value) != 0 {
		*target = value
	}
}

func setInt(target *int, key string) error {
	value := os.Getenv(key)
	if len(value) == 0 {
		return nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%s %q: %w", key, value, err)
	}
	*target = parsed
	return nil
}

func splitCSV(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
