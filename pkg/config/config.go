package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "MAMMAMIA_DB_DSN"
	EnvDBHost = "MAMMAMIA_DB_HOST"
	EnvDBUser = "MAMMAMIA_DB_USER"
	EnvDBName = "MAMMAMIA_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Orders       OrdersConfig
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
	Env          string `envconfig:"MAMMAMIA_APP_ENV" required:"true"`
	Port         string `envconfig:"MAMMAMIA_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"MAMMAMIA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MAMMAMIA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"MAMMAMIA_DB_DSN"`
	Driver string `envconfig:"MAMMAMIA_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"MAMMAMIA_DB_HOST"`
	LegacyPort     int    `envconfig:"MAMMAMIA_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"MAMMAMIA_DB_USER"`
	LegacyPassword string `envconfig:"MAMMAMIA_DB_PASSWORD"`
	LegacyName     string `envconfig:"MAMMAMIA_DB_NAME"`
	LegacySSLMode  string `envconfig:"MAMMAMIA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"MAMMAMIA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MAMMAMIA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"MAMMAMIA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MAMMAMIA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"MAMMAMIA_REDIS_URL"`
	Address      string        `envconfig:"MAMMAMIA_REDIS_ADDR"`
	Password     string        `envconfig:"MAMMAMIA_REDIS_PASSWORD"`
	DB           int           `envconfig:"MAMMAMIA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MAMMAMIA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MAMMAMIA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MAMMAMIA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MAMMAMIA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MAMMAMIA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// OrdersConfig carries the discount and delivery policy knobs.
type OrdersConfig struct {
	LoyaltyThreshold     int           `envconfig:"MAMMAMIA_LOYALTY_THRESHOLD" default:"10"`
	LoyaltyRewardPercent int           `envconfig:"MAMMAMIA_LOYALTY_REWARD_PERCENT" default:"10"`
	CourierBlockMinutes  int           `envconfig:"MAMMAMIA_COURIER_BLOCK_MINUTES" default:"30"`
	PendingOrderTTL      time.Duration `envconfig:"MAMMAMIA_PENDING_ORDER_TTL" default:"24h"`
	IdempotencyTTL       time.Duration `envconfig:"MAMMAMIA_ORDER_IDEMPOTENCY_TTL" default:"168h"`
}

// CourierBlock returns the courier hold window applied on assignment.
func (o OrdersConfig) CourierBlock() time.Duration {
	if o.CourierBlockMinutes <= 0 {
		return 0
	}
	return time.Duration(o.CourierBlockMinutes) * time.Minute
}

type CronConfig struct {
	Interval time.Duration `envconfig:"MAMMAMIA_CRON_INTERVAL" default:"1h"`
	LockKey  string        `envconfig:"MAMMAMIA_CRON_LOCK_KEY" default:"cron_leader"`
	LockTTL  time.Duration `envconfig:"MAMMAMIA_CRON_LOCK_TTL" default:"2h"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"MAMMAMIA_AUTO_MIGRATE" default:"false"`
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
