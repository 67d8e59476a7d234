package evalcheck

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Environment variable consulted when a settings file omits the API key.
const apiKeyEnv = "EVALCHECK_API_KEY"

// Default settings values.
const (
	defaultHTTPTimeout = 90 * time.Second

	defaultRetryMaxAttempts     = 3
	defaultRetryInitialInterval = 500 * time.Millisecond
	defaultRetryMaxInterval     = 10 * time.Second
	defaultRetryMultiplier      = 2.0

	defaultCacheTTL = 1 * time.Hour
)

// validate is the package-level validator instance used for struct validation.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Settings is the runtime configuration operators bind to. It carries
// everything needed to construct a remote scoring client: the service
// endpoint and credentials plus the transport knobs (timeout, retry, cache).
//
// A zero Settings value is not usable; start from DefaultSettings or
// LoadSettings and override fields as needed. Settings is treated as
// read-only once handed to Bind.
type Settings struct {
	// Endpoint is the base URL of the remote scoring service.
	Endpoint string `yaml:"endpoint" json:"endpoint" validate:"required,url"`

	// APIKey authenticates requests to the scoring service.
	// Sensitive, never serialized.
	APIKey string `yaml:"-" json:"-"`

	// HTTPTimeout bounds each evaluation request, covering the full
	// request/response exchange for one record batch.
	HTTPTimeout time.Duration `yaml:"http_timeout" json:"http_timeout" validate:"min=0"`

	// Retry controls transient-failure retry behavior inside the remote
	// client. Operators themselves never retry.
	Retry RetrySettings `yaml:"retry" json:"retry"`

	// Cache controls the Redis-backed response cache inside the remote
	// client. Disabled by default.
	Cache CacheSettings `yaml:"cache" json:"cache"`

	// Logger receives structured request/response logs. Defaults to
	// slog.Default when nil.
	Logger *slog.Logger `yaml:"-" json:"-"`
}

// RetrySettings controls retry behavior for failed evaluation requests.
// Exponential backoff with optional full jitter, in the same shape the
// transport layer consumes.
type RetrySettings struct {
	// MaxAttempts is the total number of attempts (1 = no retries).
	MaxAttempts int `yaml:"max_attempts" json:"max_attempts" validate:"min=1,max=10"`

	// InitialInterval is the starting backoff duration.
	InitialInterval time.Duration `yaml:"initial_interval" json:"initial_interval" validate:"min=0"`

	// MaxInterval caps the backoff duration.
	MaxInterval time.Duration `yaml:"max_interval" json:"max_interval" validate:"min=0"`

	// Multiplier is the exponential backoff multiplier.
	Multiplier float64 `yaml:"multiplier" json:"multiplier" validate:"min=1"`

	// UseJitter enables full jitter randomization of backoff intervals.
	UseJitter bool `yaml:"use_jitter" json:"use_jitter"`
}

// CacheSettings controls Redis-based caching of successful evaluation
// responses. Caching is best-effort: an unreachable Redis degrades to
// pass-through, it never fails a request.
type CacheSettings struct {
	Enabled  bool          `yaml:"enabled" json:"enabled"`
	TTL      time.Duration `yaml:"ttl" json:"ttl" validate:"min=0"`
	Addr     string        `yaml:"addr" json:"addr"`
	Password string        `yaml:"-" json:"-"` // Sensitive, never serialized.
	DB       int           `yaml:"db" json:"db" validate:"min=0"`
}

// DefaultSettings returns settings with production defaults for everything
// except Endpoint and APIKey, which have no sensible default and must be
// provided by the caller.
func DefaultSettings() *Settings {
	return &Settings{
		HTTPTimeout: defaultHTTPTimeout,
		Retry: RetrySettings{
			MaxAttempts:     defaultRetryMaxAttempts,
			InitialInterval: defaultRetryInitialInterval,
			MaxInterval:     defaultRetryMaxInterval,
			Multiplier:      defaultRetryMultiplier,
			UseJitter:       true,
		},
		Cache: CacheSettings{
			TTL: defaultCacheTTL,
		},
	}
}

// LoadSettings reads a YAML settings file layered over DefaultSettings.
// The API key is taken from the EVALCHECK_API_KEY environment variable;
// it is never read from the file. The returned settings are validated.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings file: %w", err)
	}

	s := DefaultSettings()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse settings file %s: %w", path, err)
	}

	s.APIKey = os.Getenv(apiKeyEnv)

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks that the settings meet all constraints.
// Returns nil if valid, or a validation error describing the first violation.
func (s *Settings) Validate() error {
	return validate.Struct(s)
}
