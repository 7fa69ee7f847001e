// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file when
// present), loads them into structured Go types and validates them so the
// rest of the application receives one immutable *Config built at start-up.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Honour the plain variable names older deployments export
//     (PORT, OFFICIAL_EMAIL, GEMINI_API_KEY).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad config.
//   - Provide defaults for everything that may be left unset.
package config

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists it is loaded into the
	// process environment before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

/*
	Env vars are read using the prefix BFHL_. Keys are lowercased, the prefix
	is removed, and "." is the nesting delimiter:

	    BFHL_SERVER.PORT                  -> server.port
	    BFHL_IDENTITY.OFFICIAL_EMAIL      -> identity.official_email
	    BFHL_INTEGRATION.GEMINI_API_KEY   -> integration.gemini_api_key

	The plain names PORT, OFFICIAL_EMAIL and GEMINI_API_KEY are mapped onto
	the same keys first, so a prefixed variable always wins.
*/

// EnvPrefix is the prefix every namespaced variable must carry.
const EnvPrefix = "BFHL_"

// legacyKeys maps the plain variables older deployments export
// onto koanf keys.
var legacyKeys = map[string]string{
	"PORT":           "server.port",
	"OFFICIAL_EMAIL": "identity.official_email",
	"GEMINI_API_KEY": "integration.gemini_api_key",
}

// Config is the root configuration object for the application.
//
// The `koanf:"..."` tags specify where koanf maps values from.
// The `validate:"..."` tags are enforced by go-playground/validator.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Identity      IdentityConfig       `koanf:"identity" validate:"required"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Compute       ComputeConfig        `koanf:"compute" validate:"required"`
	RateLimit     RateLimitConfig      `koanf:"rate_limit"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
//
// Timeouts are whole seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required,numeric"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required,min=1"`

	// BodyLimit uses echo's size notation, e.g. "1M" or "512K".
	BodyLimit string `koanf:"body_limit" validate:"required"`
}

// IdentityConfig carries the fixed identity attached to every response.
//
// OfficialEmail is echoed verbatim; any non-empty string is accepted.
type IdentityConfig struct {
	OfficialEmail string `koanf:"official_email" validate:"required"`
}

// IntegrationConfig stores settings for third-party services.
//
// An empty GeminiAPIKey is allowed: the AI operation then fails at call
// time instead of preventing start-up.
type IntegrationConfig struct {
	GeminiAPIKey     string        `koanf:"gemini_api_key"`
	GeminiModel      string        `koanf:"gemini_model" validate:"required"`
	GeminiBaseURL    string        `koanf:"gemini_base_url" validate:"omitempty,url"`
	GeminiAPIVersion string        `koanf:"gemini_api_version"`
	GeminiTimeout    time.Duration `koanf:"gemini_timeout" validate:"min=1s"`
}

// ComputeConfig bounds the size of inputs accepted by the numeric kernels.
type ComputeConfig struct {
	MaxFibonacciTerms int `koanf:"max_fibonacci_terms" validate:"min=1"`
	MaxArrayLength    int `koanf:"max_array_length" validate:"min=1"`
}

// RateLimitConfig controls the per-IP token bucket in front of the API.
type RateLimitConfig struct {
	Enabled bool `koanf:"enabled"`

	// RequestsPerSecond is the steady refill rate of each bucket.
	RequestsPerSecond float64 `koanf:"requests_per_second" validate:"gte=0"`

	// Burst is the bucket size.
	Burst int `koanf:"burst" validate:"gte=0"`

	// ExpiresIn evicts idle visitors from the in-memory store.
	ExpiresIn time.Duration `koanf:"expires_in"`
}

// DefaultConfig returns the configuration used for every key the
// environment leaves unset.
func DefaultConfig() *Config {
	return &Config{
		Primary: Primary{Env: "development"},
		Server: ServerConfig{
			Port:               "3000",
			ReadTimeout:        10,
			WriteTimeout:       10,
			IdleTimeout:        60,
			CORSAllowedOrigins: []string{"*"},
			BodyLimit:          "1M",
		},
		Identity: IdentityConfig{
			OfficialEmail: "your_email@chitkara.edu.in",
		},
		Integration: IntegrationConfig{
			GeminiModel:   "gemini-2.5-flash",
			GeminiTimeout: 30 * time.Second,
		},
		Compute: ComputeConfig{
			MaxFibonacciTerms: 1000,
			MaxArrayLength:    10000,
		},
		RateLimit: RateLimitConfig{
			Enabled:           false,
			RequestsPerSecond: 20,
			Burst:             40,
			ExpiresIn:         3 * time.Minute,
		},
		Observability: DefaultObservabilityConfig(),
	}
}

// HasGeminiKey reports whether the remote answer service is usable.
func (c *Config) HasGeminiKey() bool {
	return strings.TrimSpace(c.Integration.GeminiAPIKey) != ""
}

// LoadConfig loads configuration from environment variables, unmarshals it
// over DefaultConfig, validates it and returns the result.
//
// Unlike a fatal-on-error loader, every failure is returned so the caller
// (cmd/bfhl) decides how to report it.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	// Legacy names first: returning "" for the key tells the provider to
	// skip the variable. Blank values are skipped too so that an exported
	// but empty variable does not wipe out a default.
	err := k.Load(env.ProviderWithValue("", ".", func(key, value string) (string, interface{}) {
		if strings.TrimSpace(value) == "" {
			return "", nil
		}
		return legacyKeys[key], value
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, "could not load legacy env variables")
	}

	err = k.Load(env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		if strings.TrimSpace(value) == "" {
			return "", nil
		}
		return strings.ToLower(strings.TrimPrefix(key, EnvPrefix)), value
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, "could not load env variables")
	}

	// Unmarshal only overwrites the keys present in koanf, so defaults
	// survive for everything left unset.
	mainConfig := DefaultConfig()
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, errors.Wrap(err, "could not unmarshal main config")
	}

	// A comma separated BFHL_SERVER.CORS_ALLOWED_ORIGINS arrives as one
	// element; split it.
	mainConfig.Server.CORSAllowedOrigins = splitList(mainConfig.Server.CORSAllowedOrigins)

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	// An explicit empty observability block still gets defaults.
	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name is fixed; environment always follows primary.env.
	mainConfig.Observability.ServiceName = "bfhl"
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid observability config")
	}

	return mainConfig, nil
}

func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
