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
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	FeatureFlags FeatureFlagsConfig
	Pricing      PricingConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(cfg.FeatureFlags.UseSQLite); err != nil {
		return nil, err
	}
	if cfg.Pricing.PriceDigits < 0 || cfg.Pricing.PriceDigits > 8 {
		return nil, fmt.Errorf("%s must be between 0 and 8", EnvPriceDigits)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"MULTIPRICE_APP_ENV" required:"true"`
	Port         string `envconfig:"MULTIPRICE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"MULTIPRICE_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"MULTIPRICE_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"MULTIPRICE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN        string `envconfig:"MULTIPRICE_DB_DSN"`
	SQLitePath string `envconfig:"MULTIPRICE_SQLITE_PATH" default:"multiprice.db"`

	LegacyHost     string `envconfig:"MULTIPRICE_DB_HOST"`
	LegacyPort     int    `envconfig:"MULTIPRICE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"MULTIPRICE_DB_USER"`
	LegacyPassword string `envconfig:"MULTIPRICE_DB_PASSWORD"`
	LegacyName     string `envconfig:"MULTIPRICE_DB_NAME"`
	LegacySSLMode  string `envconfig:"MULTIPRICE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"MULTIPRICE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MULTIPRICE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"MULTIPRICE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MULTIPRICE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"MULTIPRICE_REDIS_URL"`
	Address      string        `envconfig:"MULTIPRICE_REDIS_ADDR"`
	Password     string        `envconfig:"MULTIPRICE_REDIS_PASSWORD"`
	DB           int           `envconfig:"MULTIPRICE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MULTIPRICE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MULTIPRICE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MULTIPRICE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MULTIPRICE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MULTIPRICE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether any redis endpoint was configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type JWTConfig struct {
	Secret            string `envconfig:"MULTIPRICE_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"MULTIPRICE_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"MULTIPRICE_JWT_EXPIRATION_MINUTES" default:"60"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"MULTIPRICE_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"MULTIPRICE_AUTO_MIGRATE" default:"false"`
}

type PricingConfig struct {
	PriceDigits     int           `envconfig:"MULTIPRICE_PRICE_DIGITS" default:"2"`
	CacheTTL        time.Duration `envconfig:"MULTIPRICE_PRICE_CACHE_TTL" default:"10m"`
	ValidateMargins bool          `envconfig:"MULTIPRICE_VALIDATE_MARGINS" default:"true"`
}

func (db *DBConfig) ensureDSN(useSQLite bool) error {
	if useSQLite || db.DSN != "" {
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
