package bootstrap

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadConfigFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
service:
  id: gatehouse-test
  environment: production
  http_port: 8181
dependencies:
  postgres_url: postgres://localhost/test
  redis_url: redis://localhost:6379/1
auth:
  session_ttl_hours: 12
  failed_login_threshold: 3
  lockout_minutes: 30
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "gatehouse-test", cfg.ServiceID)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, 8181, cfg.HTTPPort)
	assert.Equal(t, 9090, cfg.GRPCPort)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 3, cfg.FailedThreshold)
	assert.Equal(t, 30*time.Minute, cfg.LockoutDuration)
	assert.Equal(t, 12, cfg.BcryptCost)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
dependencies:
  postgres_url: postgres://localhost/test
  redis_url: redis://localhost:6379/1
`)

	t.Setenv("APP_ENV", "staging")
	t.Setenv("HTTP_PORT", "9999")
	t.Setenv("SESSION_TTL_HOURS", "48")
	t.Setenv("FAILED_LOGIN_THRESHOLD", "bogus")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, 9999, cfg.HTTPPort)
	assert.Equal(t, 48*time.Hour, cfg.SessionTTL)
	// Unparseable env values fall back instead of failing startup.
	assert.Equal(t, 5, cfg.FailedThreshold)
}

func TestLoadConfigRequiresBackends(t *testing.T) {
	path := writeConfig(t, `
service:
  id: gatehouse-test
`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigRejectsBadBcryptCost(t *testing.T) {
	path := writeConfig(t, `
dependencies:
  postgres_url: postgres://localhost/test
  redis_url: redis://localhost:6379/1
auth:
  bcrypt_cost: 4
`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
