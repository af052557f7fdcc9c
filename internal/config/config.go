package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds every setting the API reads from the environment.
// Variable names match the ones the dashboard deployment already uses.
type Config struct {
	Port     string `envconfig:"PORT" default:"8080"`
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// --- Generative model ---
	GeminiAPIKey string `envconfig:"GEMINI_API_KEY"`
	GeminiModel  string `envconfig:"GEMINI_MODEL" default:"gemini-2.0-flash"`

	// --- Video collaborators ---
	YouTubeAPIKey  string `envconfig:"YOUTUBE_API_KEY"`
	TranscriptLang string `envconfig:"TRANSCRIPT_LANG" default:"en"`

	// --- Identity provider ---
	// SupabaseJWTSecret enables local token verification. Without it,
	// tokens are resolved remotely against SupabaseURL.
	SupabaseURL       string `envconfig:"SUPABASE_URL"`
	ServiceRoleKey    string `envconfig:"SERVICE_ROLE_KEY"`
	SupabaseJWTSecret string `envconfig:"SUPABASE_JWT_SECRET"`

	// --- Datastore ---
	DBDriver string `envconfig:"DB_DRIVER" default:"mysql"`
	DBDSN    string `envconfig:"DB_DSN"`

	// --- Billing ---
	StartingCoins int  `envconfig:"STARTING_COINS" default:"50"`
	StrictDebit   bool `envconfig:"STRICT_DEBIT" default:"false"`

	// --- Timeouts per collaborator ---
	AuthTimeout  time.Duration `envconfig:"AUTH_TIMEOUT" default:"10s"`
	DBTimeout    time.Duration `envconfig:"DB_TIMEOUT" default:"10s"`
	VideoTimeout time.Duration `envconfig:"VIDEO_TIMEOUT" default:"10s"`
	AITimeout    time.Duration `envconfig:"AI_TIMEOUT" default:"60s"`

	CORSAllowOrigin string `envconfig:"CORS_ALLOW_ORIGIN" default:"*"`
}

var (
	ErrMissingGeminiKey = errors.New("GEMINI_API_KEY is not set")
	ErrMissingIdentity  = errors.New("neither SUPABASE_JWT_SECRET nor SUPABASE_URL/SERVICE_ROLE_KEY is set")
	ErrMissingDSN       = errors.New("DB_DSN is not set")
)

// Load parses the process environment into a Config.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.DBDriver != "mysql" && cfg.DBDriver != "sqlite" {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (want mysql or sqlite)", cfg.DBDriver)
	}
	if cfg.StartingCoins <= 0 {
		return nil, fmt.Errorf("STARTING_COINS must be positive, got %d", cfg.StartingCoins)
	}
	return &cfg, nil
}

// Problems lists the collaborators that cannot be initialized with this
// configuration. The server still starts; affected requests answer 503.
func (c *Config) Problems() []error {
	var problems []error
	if c.GeminiAPIKey == "" {
		problems = append(problems, ErrMissingGeminiKey)
	}
	if !c.UseLocalJWT() && (c.SupabaseURL == "" || c.ServiceRoleKey == "") {
		problems = append(problems, ErrMissingIdentity)
	}
	if c.DBDSN == "" {
		problems = append(problems, ErrMissingDSN)
	}
	return problems
}

// UseLocalJWT reports whether bearer tokens are verified in-process.
func (c *Config) UseLocalJWT() bool {
	return c.SupabaseJWTSecret != ""
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
