package config

const EnvPrefix = "MULTIPRICE"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv        = "MULTIPRICE_APP_ENV"
	EnvPort          = "MULTIPRICE_APP_PORT"
	EnvLogLevel      = "MULTIPRICE_LOG_LEVEL"
	EnvDBDSN         = "MULTIPRICE_DB_DSN"
	EnvDBHost        = "MULTIPRICE_DB_HOST"
	EnvDBUser        = "MULTIPRICE_DB_USER"
	EnvDBName        = "MULTIPRICE_DB_NAME"
	EnvUseSQLite     = "MULTIPRICE_USE_SQLITE"
	EnvRedisURL      = "MULTIPRICE_REDIS_URL"
	EnvJWTSecret     = "MULTIPRICE_JWT_SECRET"
	EnvJWTIssuer     = "MULTIPRICE_JWT_ISSUER"
	EnvPriceDigits   = "MULTIPRICE_PRICE_DIGITS"
	EnvPriceCacheTTL = "MULTIPRICE_PRICE_CACHE_TTL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
