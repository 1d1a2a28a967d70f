package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetenv clears key for the duration of the test.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

var loadedKeys = []string{
	"VAPI_API_PRIVATE_KEY", "RETELL_API_KEY", "VAPI_BASE_URL", "RETELL_BASE_URL",
	"SERVER_PORT", "LOG_LEVEL", "DATABASE_URL", "CORS_ALLOWED_ORIGINS",
	"RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
}

func writeEnvFiles(t *testing.T, env, secret string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte(env), 0o600))
	require.NoError(t, os.WriteFile(path+".secret", []byte(secret), 0o600))
	return path
}

func TestLoad_SecretFileSuppliesCredentials(t *testing.T) {
	for _, key := range loadedKeys {
		unsetenv(t, key)
	}

	example, err := os.ReadFile(filepath.Join("..", "..", ".env.example"))
	require.NoError(t, err)

	path := writeEnvFiles(t, string(example),
		"VAPI_API_PRIVATE_KEY=real-vapi\nRETELL_API_KEY=real-retell\n")
	t.Setenv("VOXBRIDGE_ENV", path)

	require.NoError(t, Load())

	p, err := LoadProviders()
	require.NoError(t, err)
	assert.Equal(t, "real-vapi", p.Vapi.APIKey)
	assert.Equal(t, "real-retell", p.Retell.APIKey)
	assert.Equal(t, DefaultRetellBaseURL, p.Retell.BaseURL)
	assert.Equal(t, 8000, ServerPort())
}

func TestLoad_EnvironmentWins(t *testing.T) {
	for _, key := range loadedKeys {
		unsetenv(t, key)
	}
	t.Setenv("VAPI_API_PRIVATE_KEY", "from-env")

	path := writeEnvFiles(t, "RETELL_API_KEY=from-dotenv\n",
		"VAPI_API_PRIVATE_KEY=from-secret\nRETELL_API_KEY=from-secret\n")
	t.Setenv("VOXBRIDGE_ENV", path)

	require.NoError(t, Load())

	p, err := LoadProviders()
	require.NoError(t, err)
	assert.Equal(t, "from-env", p.Vapi.APIKey)
	assert.Equal(t, "from-dotenv", p.Retell.APIKey)
}

func TestLoad_MissingFiles(t *testing.T) {
	t.Setenv("VOXBRIDGE_ENV", filepath.Join(t.TempDir(), "absent.env"))
	assert.NoError(t, Load())
}

func TestLoadProviders(t *testing.T) {
	t.Setenv("VAPI_API_PRIVATE_KEY", "vapi-key")
	t.Setenv("RETELL_API_KEY", "retell-key")
	t.Setenv("VAPI_BASE_URL", "")
	t.Setenv("RETELL_BASE_URL", "https://retell.test/")

	p, err := LoadProviders()
	require.NoError(t, err)

	assert.Equal(t, "vapi-key", p.Vapi.APIKey)
	assert.Equal(t, DefaultVapiBaseURL, p.Vapi.BaseURL)
	assert.Equal(t, "retell-key", p.Retell.APIKey)
	assert.Equal(t, "https://retell.test", p.Retell.BaseURL)
}

func TestLoadProviders_MissingCredential(t *testing.T) {
	tests := []struct {
		name    string
		vapi    string
		retell  string
		missing string
	}{
		{"no vapi key", "", "retell-key", "VAPI_API_PRIVATE_KEY"},
		{"no retell key", "vapi-key", "", "RETELL_API_KEY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("VAPI_API_PRIVATE_KEY", tt.vapi)
			t.Setenv("RETELL_API_KEY", tt.retell)

			_, err := LoadProviders()
			require.Error(t, err)

			var mk *MissingKeyError
			require.True(t, errors.As(err, &mk))
			assert.Equal(t, tt.missing, mk.Key)
		})
	}
}

func TestCORSAllowedOrigins(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	assert.Equal(t, []string{"*"}, CORSAllowedOrigins())

	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, CORSAllowedOrigins())
}

func TestRateLimitDefaults(t *testing.T) {
	t.Setenv("RATE_LIMIT_RPS", "nope")
	t.Setenv("RATE_LIMIT_BURST", "-3")

	assert.Equal(t, float64(100), RateLimitRPS())
	assert.Equal(t, 20, RateLimitBurst())
}
