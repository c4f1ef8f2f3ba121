package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	RateLimit    RateLimitConfig
	Catalog      CatalogConfig
	Cron         CronConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"MOTORDESK_APP_ENV" required:"true"`
	Port         string `envconfig:"MOTORDESK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"MOTORDESK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MOTORDESK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"MOTORDESK_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"MOTORDESK_DB_DSN"`
	Driver string `envconfig:"MOTORDESK_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"MOTORDESK_DB_HOST"`
	LegacyPort     int    `envconfig:"MOTORDESK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"MOTORDESK_DB_USER"`
	LegacyPassword string `envconfig:"MOTORDESK_DB_PASSWORD"`
	LegacyName     string `envconfig:"MOTORDESK_DB_NAME"`
	LegacySSLMode  string `envconfig:"MOTORDESK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"MOTORDESK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MOTORDESK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"MOTORDESK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MOTORDESK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"MOTORDESK_REDIS_URL" required:"true"`
	Address      string        `envconfig:"MOTORDESK_REDIS_ADDR"`
	Password     string        `envconfig:"MOTORDESK_REDIS_PASSWORD"`
	DB           int           `envconfig:"MOTORDESK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MOTORDESK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MOTORDESK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MOTORDESK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MOTORDESK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MOTORDESK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"MOTORDESK_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"MOTORDESK_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"MOTORDESK_JWT_EXPIRATION_MINUTES" default:"60"`
}

// AccessTokenTTL returns the access token lifetime configured in minutes.
func (j JWTConfig) AccessTokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type RateLimitConfig struct {
	InquiryWindow  time.Duration `envconfig:"MOTORDESK_RATE_LIMIT_INQUIRY_WINDOW" default:"1m"`
	InquiryIPLimit int           `envconfig:"MOTORDESK_RATE_LIMIT_INQUIRY_IP_LIMIT" default:"10"`
}

type CatalogConfig struct {
	SnapshotTTL time.Duration `envconfig:"MOTORDESK_CATALOG_SNAPSHOT_TTL" default:"5m"`
}

type CronConfig struct {
	Interval time.Duration `envconfig:"MOTORDESK_CRON_INTERVAL" default:"15m"`
	LockTTL  time.Duration `envconfig:"MOTORDESK_CRON_LOCK_TTL" default:"20m"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"MOTORDESK_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
