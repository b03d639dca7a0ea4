package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"budgetbuddy-go/pkg/logger"
	"github.com/caarlos0/env/v8"
)

type Config struct {
	HTTPPort           string        `env:"HTTP_PORT" envDefault:"8080"`
	Env                string        `env:"ENV" envDefault:"development"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:8081,http://localhost:19006"`
	DefaultTimezone    string        `env:"DEFAULT_TIMEZONE" envDefault:"UTC"`
	RequestTimeout     time.Duration `env:"HTTP_REQUEST_TIMEOUT" envDefault:"30s"`
	Log                LogConfig
	TopCategories      TopCategoriesConfig
	Currency           CurrencyConfig
	Categories         CategoriesConfig
	DB                 DBConfig
	Supabase           SupabaseConfig
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type TopCategoriesConfig struct {
	Enabled       bool          `env:"TOP_CATEGORIES_ENABLED" envDefault:"true"`
	ResponseCount int           `env:"TOP_CATEGORIES_LIMIT" envDefault:"5"`
	CacheTTL      time.Duration `env:"TOP_CATEGORIES_CACHE_TTL" envDefault:"1m"`
}

type CurrencyConfig struct {
	RatesURL    string        `env:"CURRENCY_RATES_URL" envDefault:"https://open.er-api.com/v6/latest/USD"`
	RatesTTL    time.Duration `env:"CURRENCY_RATES_TTL" envDefault:"1h"`
	HTTPTimeout time.Duration `env:"CURRENCY_HTTP_TIMEOUT" envDefault:"5s"`
}

type CategoriesConfig struct {
	CacheTTL time.Duration `env:"CATEGORIES_CACHE_TTL" envDefault:"5m"`
}

type DBConfig struct {
	DSN             string        `env:"DB_DSN"`
	Host            string        `env:"DB_HOST" envDefault:"localhost"`
	Port            string        `env:"DB_PORT" envDefault:"5432"`
	User            string        `env:"DB_USER" envDefault:"postgres"`
	Password        string        `env:"DB_PASSWORD" envDefault:"postgres"`
	Name            string        `env:"DB_NAME" envDefault:"budgetbuddy"`
	SSLMode         string        `env:"DB_SSLMODE" envDefault:"disable"`
	TimeZone        string        `env:"DB_TIMEZONE" envDefault:"UTC"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`
	SlowQuery       time.Duration `env:"DB_SLOW_QUERY_THRESHOLD" envDefault:"200ms"`
	ConnectRetries  int           `env:"DB_CONNECT_RETRIES" envDefault:"5"`
}

type SupabaseConfig struct {
	URL            string        `env:"SUPABASE_URL"`
	PublishableKey string        `env:"SUPABASE_PUBLISHABLE_KEY"`
	AuthTimeout    time.Duration `env:"AUTH_TIMEOUT" envDefault:"5s"`
	TokenCacheTTL  time.Duration `env:"AUTH_TOKEN_CACHE_TTL" envDefault:"1m"`
	SkipAuth       bool          `env:"AUTH_SKIP" envDefault:"false"`
	MockUserID     string        `env:"AUTH_MOCK_USER_ID" envDefault:"00000000-0000-0000-0000-000000000001"`
	MockUserEmail  string        `env:"AUTH_MOCK_USER_EMAIL"`
	MockUserName   string        `env:"AUTH_MOCK_USER_NAME"`
	MockUserAvatar string        `env:"AUTH_MOCK_USER_AVATAR_URL"`
}

// Load reads .env (if any) and then the process environment.
func Load(log logger.Logger) (Config, error) {
	if err := loadDotEnv(log); err != nil {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

// Parse reads the configuration from the process environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.HTTPPort) == "" {
		errs = append(errs, errors.New("HTTP_PORT is required"))
	}
	if _, err := time.LoadLocation(c.DefaultTimezone); err != nil {
		errs = append(errs, fmt.Errorf("DEFAULT_TIMEZONE %q: %w", c.DefaultTimezone, err))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("HTTP_REQUEST_TIMEOUT must be positive"))
	}
	if c.TopCategories.ResponseCount <= 0 {
		errs = append(errs, errors.New("TOP_CATEGORIES_LIMIT must be positive"))
	}
	if c.TopCategories.CacheTTL < 0 {
		errs = append(errs, errors.New("TOP_CATEGORIES_CACHE_TTL must not be negative"))
	}
	if c.Categories.CacheTTL < 0 {
		errs = append(errs, errors.New("CATEGORIES_CACHE_TTL must not be negative"))
	}
	if c.Currency.RatesTTL <= 0 {
		errs = append(errs, errors.New("CURRENCY_RATES_TTL must be positive"))
	}
	if c.Currency.HTTPTimeout <= 0 {
		errs = append(errs, errors.New("CURRENCY_HTTP_TIMEOUT must be positive"))
	}
	if c.DB.MaxOpenConns < 0 || c.DB.MaxIdleConns < 0 || c.DB.ConnectRetries < 0 {
		errs = append(errs, errors.New("DB pool sizes and DB_CONNECT_RETRIES must not be negative"))
	}
	if c.Supabase.TokenCacheTTL < 0 {
		errs = append(errs, errors.New("AUTH_TOKEN_CACHE_TTL must not be negative"))
	}
	if c.Supabase.SkipAuth {
		if strings.TrimSpace(c.Supabase.MockUserID) == "" {
			errs = append(errs, errors.New("AUTH_MOCK_USER_ID is required when AUTH_SKIP is set"))
		}
	} else if c.Supabase.URL == "" || c.Supabase.PublishableKey == "" {
		errs = append(errs, errors.New("SUPABASE_URL and SUPABASE_PUBLISHABLE_KEY are required unless AUTH_SKIP is set"))
	}

	return errors.Join(errs...)
}

// Location resolves DefaultTimezone, falling back to UTC.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c DBConfig) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.TimeZone
}

// MigrateURL returns a pgx5:// URL for golang-migrate. A DSN that is already a
// URL only gets its scheme swapped.
func (c DBConfig) MigrateURL() string {
	if c.DSN != "" {
		for _, prefix := range []string{"postgres://", "postgresql://"} {
			if strings.HasPrefix(c.DSN, prefix) {
				return "pgx5://" + strings.TrimPrefix(c.DSN, prefix)
			}
		}
		return c.DSN
	}
	return fmt.Sprintf("pgx5://%s:%s@%s:%s/%s?sslmode=%s", c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}
