package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix scopes every variable the service reads.
	EnvPrefix = "enquiry"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "ENQUIRY_DB_DSN"
	EnvDBHost = "ENQUIRY_DB_HOST"
	EnvDBUser = "ENQUIRY_DB_USER"
	EnvDBName = "ENQUIRY_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DraftAPI     DraftAPIConfig
	Cookie       CookieConfig
	Enquiry      EnquiryConfig
	DB           DBConfig
	Redis        RedisConfig
	Protection   ProtectionConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
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
	Env            string   `envconfig:"ENQUIRY_APP_ENV" required:"true"`
	Port           string   `envconfig:"ENQUIRY_APP_PORT" required:"true"`
	LogLevel       string   `envconfig:"ENQUIRY_LOG_LEVEL" default:"info"`
	LogWarnStack   bool     `envconfig:"ENQUIRY_LOG_WARN_STACK" default:"false"`
	AllowedOrigins []string `envconfig:"ENQUIRY_ALLOWED_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// DraftAPIConfig points at the remote draft-order service that stores enquiry
// contents. The token is per-draft and travels with each request, so the only
// shared settings are the base URL and the per-call deadline.
type DraftAPIConfig struct {
	BaseURL string        `envconfig:"ENQUIRY_DRAFT_API_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"ENQUIRY_DRAFT_API_TIMEOUT" default:"10s"`
}

type CookieConfig struct {
	TTLDays int    `envconfig:"ENQUIRY_COOKIE_TTL_DAYS" default:"7"`
	Domain  string `envconfig:"ENQUIRY_COOKIE_DOMAIN"`
	Secure  bool   `envconfig:"ENQUIRY_COOKIE_SECURE" default:"true"`
}

// TTL returns the cookie lifetime as a duration.
func (c CookieConfig) TTL() time.Duration {
	days := c.TTLDays
	if days <= 0 {
		days = 7
	}
	return time.Duration(days) * 24 * time.Hour
}

type EnquiryConfig struct {
	DebounceWindow time.Duration `envconfig:"ENQUIRY_QUANTITY_DEBOUNCE_WINDOW" default:"1s"`
	CountMirrorTTL time.Duration `envconfig:"ENQUIRY_COUNT_MIRROR_TTL" default:"168h"`
}

type DBConfig struct {
	DSN    string `envconfig:"ENQUIRY_DB_DSN"`
	Driver string `envconfig:"ENQUIRY_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"ENQUIRY_DB_HOST"`
	LegacyPort     int    `envconfig:"ENQUIRY_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"ENQUIRY_DB_USER"`
	LegacyPassword string `envconfig:"ENQUIRY_DB_PASSWORD"`
	LegacyName     string `envconfig:"ENQUIRY_DB_NAME"`
	LegacySSLMode  string `envconfig:"ENQUIRY_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"ENQUIRY_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ENQUIRY_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ENQUIRY_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ENQUIRY_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"ENQUIRY_REDIS_URL" required:"true"`
	Address      string        `envconfig:"ENQUIRY_REDIS_ADDR"`
	Password     string        `envconfig:"ENQUIRY_REDIS_PASSWORD"`
	DB           int           `envconfig:"ENQUIRY_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ENQUIRY_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ENQUIRY_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ENQUIRY_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ENQUIRY_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ENQUIRY_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// ProtectionConfig tunes the shipping-protection line-item heuristic. The
// premium targets RateBps of the cart subtotal; Tiers overrides the built-in
// price ladder with "variantID:price" pairs.
type ProtectionConfig struct {
	RateBps int      `envconfig:"ENQUIRY_PROTECTION_RATE_BPS" default:"300"`
	Tiers   []string `envconfig:"ENQUIRY_PROTECTION_TIERS"`
}

type GCPConfig struct {
	ProjectID string `envconfig:"ENQUIRY_GCP_PROJECT_ID"`
}

type PubSubConfig struct {
	SubmittedTopic string `envconfig:"ENQUIRY_PUBSUB_SUBMITTED_TOPIC"`
}

// Enabled reports whether submit events should be published at all.
func (p PubSubConfig) Enabled() bool {
	return strings.TrimSpace(p.SubmittedTopic) != ""
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"ENQUIRY_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"ENQUIRY_AUTO_MIGRATE" default:"false"`
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
