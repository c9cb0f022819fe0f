package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"auth": map[string]any{
			"bcryptCost": 10,
			"tokenTtl":   "15m",
		},
		"redis": map[string]any{
			"profileTtl": "5m",
		},
		"secretKey": map[string]any{
			"access": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "AUTH_BCRYPTCOST", want: "auth.bcryptCost"},
		{envKey: "AUTH_TOKENTTL", want: "auth.tokenTtl"},
		{envKey: "REDIS_PROFILETTL", want: "redis.profileTtl"},
		{envKey: "SECRETKEY_ACCESS", want: "secretKey.access"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			assert.Equal(t, tt.want, canonicalizeEnvKey(tt.envKey, existing))
		})
	}
}

func TestLoadWithEnv_EnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	yamlBody := []byte("storage:\n  driver: memory\nauth:\n  bcryptCost: 10\n  tokenTtl: 15m\nsecretKey:\n  access: from-yaml\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test.yaml"), yamlBody, 0o600))

	t.Chdir(dir)
	t.Setenv("AUTH_BCRYPTCOST", "6")
	t.Setenv("SECRETKEY_ACCESS", "from-env")

	cfg, err := LoadWithEnv[Config]("test")
	require.NoError(t, err)
	require.NotNil(t, cfg.Auth)
	assert.Equal(t, 6, cfg.Auth.BcryptCost)
	assert.Equal(t, 15*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, "from-env", cfg.SecretKey.Access)
	assert.Equal(t, StorageDriverMemory, cfg.Storage.Driver)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("absent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file absent.yaml not found")
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.Storage.Driver = StorageDriverMemory
	cfg.Redis = &RedisConfig{Enabled: true}

	require.NoError(t, cfg.applyDefaults())
	assert.Equal(t, defaultBcryptCost, cfg.Auth.BcryptCost)
	assert.Equal(t, defaultTokenTTL, cfg.Auth.TokenTTL)
	assert.Equal(t, defaultProfileTTL, cfg.Redis.ProfileTTL)
	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestApplyDefaults_RejectsBadStorage(t *testing.T) {
	cfg := &Config{}
	cfg.Storage.Driver = "mongo"
	assert.Error(t, cfg.applyDefaults())

	cfg = &Config{}
	assert.Error(t, cfg.applyDefaults(), "postgres driver without postgres config must fail")
}
