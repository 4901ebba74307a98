package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	AI        AIConfig        `yaml:"ai"`
	Weather   WeatherConfig   `yaml:"weather"`
	Shop      ShopConfig      `yaml:"shop"`
	RateLimit RateLimitConfig `yaml:"ratelimit"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Profile-Id,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"90s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// Storage drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// StorageConfig selects and configures the profile state backend.
type StorageConfig struct {
	Driver    string         `yaml:"driver"     env:"STORAGE_DRIVER"     env-default:"sqlite"`
	CacheSize int            `yaml:"cache_size" env:"STORAGE_CACHE_SIZE" env-default:"1024"`
	Postgres  PostgresConfig `yaml:"postgres"`
	SQLite    SQLiteConfig   `yaml:"sqlite"`
}

// PostgresConfig holds PostgreSQL connection settings.
type PostgresConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// SQLiteConfig holds the local database file location.
type SQLiteConfig struct {
	Path string `yaml:"path" env:"SQLITE_PATH" env-default:"./nivara.db"`
}

// AI providers.
const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
)

// AIConfig configures the vision and chat model. Keys may be empty; requests
// then fail with a missing-credential error instead of refusing to start.
type AIConfig struct {
	Provider        string        `yaml:"provider"          env:"AI_PROVIDER"          env-default:"gemini"`
	GeminiAPIKey    string        `yaml:"gemini_api_key"    env:"GOOGLE_API_KEY"`
	GeminiModel     string        `yaml:"gemini_model"      env:"GEMINI_MODEL"         env-default:"gemini-2.5-flash"`
	AnthropicAPIKey string        `yaml:"anthropic_api_key" env:"ANTHROPIC_API_KEY"`
	AnthropicModel  string        `yaml:"anthropic_model"   env:"ANTHROPIC_MODEL"      env-default:"claude-sonnet-4-5"`
	MaxTokens       int64         `yaml:"max_tokens"        env:"AI_MAX_TOKENS"        env-default:"2048"`
	RequestTimeout  time.Duration `yaml:"request_timeout"   env:"AI_REQUEST_TIMEOUT"   env-default:"60s"`
	MaxImageBytes   int64         `yaml:"max_image_bytes"   env:"AI_MAX_IMAGE_BYTES"   env-default:"10485760"`
}

// WeatherConfig configures the forecast provider.
type WeatherConfig struct {
	BaseURL          string        `yaml:"base_url"          env:"WEATHER_BASE_URL"          env-default:"https://api.open-meteo.com/v1/forecast"`
	Timeout          time.Duration `yaml:"timeout"           env:"WEATHER_TIMEOUT"           env-default:"10s"`
	DefaultLatitude  float64       `yaml:"default_latitude"  env:"WEATHER_DEFAULT_LATITUDE"  env-default:"28.61"`
	DefaultLongitude float64       `yaml:"default_longitude" env:"WEATHER_DEFAULT_LONGITUDE" env-default:"77.20"`
}

// ShopConfig configures the simulated storefront.
type ShopConfig struct {
	CheckoutDelay time.Duration `yaml:"checkout_delay" env:"SHOP_CHECKOUT_DELAY" env-default:"3s"`
}

// RateLimitConfig bounds calls that reach the model provider.
type RateLimitConfig struct {
	AIRequestsPerMinute int           `yaml:"ai_requests_per_minute" env:"RATELIMIT_AI_PER_MINUTE" env-default:"20"`
	CleanupInterval     time.Duration `yaml:"cleanup_interval"       env:"RATELIMIT_CLEANUP"       env-default:"5m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
