package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		ClientID:     "app-id",
		ClientSecret: "app-secret",
		TenantID:     "tenant",
		DriveUser:    "alice@contoso.onmicrosoft.com",
		Store: StoreConfig{
			Bucket:      "foldersense-state",
			Region:      "us-east-1",
			TokenKey:    DefaultTokenKey,
			CachePrefix: DefaultCachePrefix,
		},
		AI: AIConfig{
			APIKey:          "sk-ant-test",
			Model:           DefaultModel,
			MaxRetries:      DefaultMaxRetries,
			RequestDelay:    DefaultRequestDelay,
			MaxContentBytes: DefaultMaxContentBytes,
		},
		DescriptionFilename: DefaultDescriptionFilename,
		Interval:            DefaultInterval,
		HTTPAddr:            DefaultHTTPAddr,
	}
}

func TestConfigValidate_Valid(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestConfigValidate_MissingGraphCredentials(t *testing.T) {
	cfg := validConfig()
	cfg.ClientID = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "client_id")

	cfg = validConfig()
	cfg.ClientSecret = ""
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "client_secret")

	cfg = validConfig()
	cfg.TenantID = ""
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tenant_id")

	cfg = validConfig()
	cfg.DriveUser = ""
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "drive_user")
}

func TestConfigValidate_MissingBucket(t *testing.T) {
	cfg := validConfig()
	cfg.Store.Bucket = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "s3_bucket")
}

func TestConfigValidate_MissingAPIKey(t *testing.T) {
	cfg := validConfig()
	cfg.AI.APIKey = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "anthropic_api_key")
}

func TestConfigValidate_BadInterval(t *testing.T) {
	cfg := validConfig()
	cfg.Interval = 0
	require.Error(t, cfg.Validate())
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SF_CLIENT_ID", "app-id")
	t.Setenv("SF_CLIENT_SECRET", "app-secret")
	t.Setenv("SF_TENANT_ID", "tenant")
	t.Setenv("SF_DRIVE_USER", "alice@contoso.onmicrosoft.com")
	t.Setenv("SF_S3_BUCKET", "foldersense-state")
	t.Setenv("SF_ANTHROPIC_API_KEY", "sk-ant-test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultDescriptionFilename, cfg.DescriptionFilename)
	assert.Equal(t, DefaultTokenKey, cfg.Store.TokenKey)
	assert.Equal(t, DefaultCachePrefix, cfg.Store.CachePrefix)
	assert.Equal(t, DefaultModel, cfg.AI.Model)
	assert.Equal(t, 5*time.Minute, cfg.Interval)
	assert.Equal(t, "us-east-1", cfg.Store.Region)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SF_CLIENT_ID", "app-id")
	t.Setenv("SF_CLIENT_SECRET", "app-secret")
	t.Setenv("SF_TENANT_ID", "tenant")
	t.Setenv("SF_DRIVE_USER", "alice@contoso.onmicrosoft.com")
	t.Setenv("SF_S3_BUCKET", "foldersense-state")
	t.Setenv("SF_ANTHROPIC_API_KEY", "sk-ant-test")
	t.Setenv("SF_DESCRIPTION_FILENAME", "_about_this_folder.md")
	t.Setenv("SF_INTERVAL", "30s")
	t.Setenv("SF_MAX_CONTENT_BYTES", "1024")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "_about_this_folder.md", cfg.DescriptionFilename)
	assert.Equal(t, 30*time.Second, cfg.Interval)
	assert.Equal(t, 1024, cfg.AI.MaxContentBytes)
}
