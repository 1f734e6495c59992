package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	Env        string `envconfig:"APP_ENV" default:"development"`
	ServerPort string `envconfig:"SERVER_PORT" default:"8080"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`

	MySQLDSN          string        `envconfig:"MYSQL_DSN" default:"user:password@tcp(localhost:3306)/razzrel?charset=utf8mb4&parseTime=True&loc=Local"`
	DBMaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
	DBMaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"10"`
	DBConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"1h"`
	DBConnectRetries  int           `envconfig:"DB_CONNECT_RETRIES" default:"5"`
	DBRetryBackoff    time.Duration `envconfig:"DB_RETRY_BACKOFF" default:"2s"`
	ResetDB           bool          `envconfig:"RESET_DB" default:"false"`

	RedisAddr string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisDB   int    `envconfig:"REDIS_DB" default:"0"`
	RedisPass string `envconfig:"REDIS_PASSWORD"`

	JWTSecret        string        `envconfig:"JWT_SECRET" required:"true"`
	TokenTTL         time.Duration `envconfig:"TOKEN_TTL" default:"24h"`
	RecheckAdminRole bool          `envconfig:"RECHECK_ADMIN_ROLE" default:"true"`
	RoleCacheTTL     time.Duration `envconfig:"ROLE_CACHE_TTL" default:"1m"`

	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:5173"`

	RabbitURL       string `envconfig:"RABBIT_URL"`
	BookingExchange string `envconfig:"BOOKING_EXCHANGE" default:"booking.exchange"`

	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	SwaggerHost  string `envconfig:"SWAGGER_HOST"`
}

// Load builds Config from the environment, reading a local .env file first when present.
func Load() (*Config, error) {
	// .env is optional; real deployments inject the environment directly.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

// IsProduction reports whether internal error detail must be withheld from clients.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
