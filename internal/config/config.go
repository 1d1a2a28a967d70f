package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultVapiBaseURL   = "https://api.vapi.ai"
	DefaultRetellBaseURL = "https://api.retellai.com"
)

// Load reads the .env file specified by VOXBRIDGE_ENV (or .env by default),
// then loads the corresponding .secret file if it exists.
// Values already present in the process environment are never overridden,
// so a key the .env file sets, even to an empty value, shadows the .secret
// file.
func Load() error {
	envFile := os.Getenv("VOXBRIDGE_ENV")
	if envFile == "" {
		envFile = ".env"
	}

	// Missing files are fine; the environment may be set directly.
	_ = godotenv.Load(envFile)
	_ = godotenv.Load(envFile + ".secret")

	return nil
}

// ProviderConfig holds what a single provider client needs.
type ProviderConfig struct {
	APIKey  string
	BaseURL string
}

// Providers is the explicit provider configuration handed to the registry.
type Providers struct {
	Vapi   ProviderConfig
	Retell ProviderConfig
}

// MissingKeyError reports a required setting that is not set.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("%s environment variable is not set", e.Key)
}

// LoadProviders builds the provider configuration from the environment.
// Every provider credential is required.
func LoadProviders() (Providers, error) {
	p := Providers{
		Vapi: ProviderConfig{
			APIKey:  os.Getenv("VAPI_API_PRIVATE_KEY"),
			BaseURL: envOr("VAPI_BASE_URL", DefaultVapiBaseURL),
		},
		Retell: ProviderConfig{
			APIKey:  os.Getenv("RETELL_API_KEY"),
			BaseURL: envOr("RETELL_BASE_URL", DefaultRetellBaseURL),
		},
	}
	if err := p.Validate(); err != nil {
		return Providers{}, err
	}
	return p, nil
}

// Validate returns an error for the first missing credential.
func (p Providers) Validate() error {
	if p.Vapi.APIKey == "" {
		return &MissingKeyError{Key: "VAPI_API_PRIVATE_KEY"}
	}
	if p.Retell.APIKey == "" {
		return &MissingKeyError{Key: "RETELL_API_KEY"}
	}
	return nil
}

func ServerPort() int {
	port, err := strconv.Atoi(os.Getenv("SERVER_PORT"))
	if err != nil {
		return 8000
	}
	return port
}

func ServerAddr() string {
	return fmt.Sprintf(":%d", ServerPort())
}

// DatabaseURL enables the LLM resource ledger when set.
func DatabaseURL() string {
	return os.Getenv("DATABASE_URL")
}

// CORSAllowedOrigins returns the comma separated CORS_ALLOWED_ORIGINS list.
// Defaults to allowing every origin.
func CORSAllowedOrigins() []string {
	raw := os.Getenv("CORS_ALLOWED_ORIGINS")
	if raw == "" {
		return []string{"*"}
	}
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// RateLimitRPS returns requests per second limit.
// Defaults to 100 if not set.
func RateLimitRPS() float64 {
	rps, err := strconv.ParseFloat(os.Getenv("RATE_LIMIT_RPS"), 64)
	if err != nil || rps <= 0 {
		return 100
	}
	return rps
}

// RateLimitBurst returns the burst size for rate limiting.
// Defaults to 20 if not set.
func RateLimitBurst() int {
	burst, err := strconv.Atoi(os.Getenv("RATE_LIMIT_BURST"))
	if err != nil || burst <= 0 {
		return 20
	}
	return burst
}

// LogLevel returns the log level (debug, info, warn, error).
// Defaults to "info" if not set.
func LogLevel() string {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		return "info"
	}
	return level
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return strings.TrimRight(v, "/")
	}
	return fallback
}
