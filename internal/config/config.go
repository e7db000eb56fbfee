package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultDescriptionFilename = "folder_description.md"
	DefaultTokenKey            = "delta-token/current.txt"
	DefaultCachePrefix         = "summary-cache/"
	DefaultModel               = "claude-haiku-4-5-20251001"
	DefaultMaxContentBytes     = 8192
	DefaultMaxRetries          = 3
	DefaultRequestDelay        = time.Second
	DefaultInterval            = 5 * time.Minute
	DefaultHTTPAddr            = ":8402"
)

// StoreConfig holds the S3-compatible object store settings used for
// cursor persistence and the summary cache.
type StoreConfig struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string

	TokenKey    string
	CachePrefix string
}

// AIConfig holds the Anthropic API settings for summarization.
type AIConfig struct {
	APIKey          string
	Model           string
	MaxRetries      int
	RequestDelay    time.Duration
	MaxContentBytes int
}

// Config is the full application configuration, loaded from SF_* environment
// variables (optionally via a .env file in development).
type Config struct {
	// Microsoft Graph app registration (client credentials flow)
	ClientID     string
	ClientSecret string
	TenantID     string
	DriveUser    string

	Store StoreConfig
	AI    AIConfig

	// Name of the description file this service writes into each folder.
	// Also drives loop prevention.
	DescriptionFilename string

	// Daemon settings
	Interval time.Duration
	HTTPAddr string
	LockPath string
}

// Load reads configuration from the environment via viper.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SF")
	v.AutomaticEnv()

	v.SetDefault("description_filename", DefaultDescriptionFilename)
	v.SetDefault("token_key", DefaultTokenKey)
	v.SetDefault("cache_prefix", DefaultCachePrefix)
	v.SetDefault("anthropic_model", DefaultModel)
	v.SetDefault("anthropic_max_retries", DefaultMaxRetries)
	v.SetDefault("anthropic_request_delay", DefaultRequestDelay)
	v.SetDefault("max_content_bytes", DefaultMaxContentBytes)
	v.SetDefault("interval", DefaultInterval)
	v.SetDefault("http_addr", DefaultHTTPAddr)
	v.SetDefault("s3_region", "us-east-1")
	v.SetDefault("lock_path", "")

	cfg := &Config{
		ClientID:     v.GetString("client_id"),
		ClientSecret: v.GetString("client_secret"),
		TenantID:     v.GetString("tenant_id"),
		DriveUser:    v.GetString("drive_user"),
		Store: StoreConfig{
			Bucket:      v.GetString("s3_bucket"),
			Region:      v.GetString("s3_region"),
			Endpoint:    v.GetString("s3_endpoint"),
			AccessKey:   v.GetString("s3_access_key"),
			SecretKey:   v.GetString("s3_secret_key"),
			TokenKey:    v.GetString("token_key"),
			CachePrefix: v.GetString("cache_prefix"),
		},
		AI: AIConfig{
			APIKey:          v.GetString("anthropic_api_key"),
			Model:           v.GetString("anthropic_model"),
			MaxRetries:      v.GetInt("anthropic_max_retries"),
			RequestDelay:    v.GetDuration("anthropic_request_delay"),
			MaxContentBytes: v.GetInt("max_content_bytes"),
		},
		DescriptionFilename: v.GetString("description_filename"),
		Interval:            v.GetDuration("interval"),
		HTTPAddr:            v.GetString("http_addr"),
		LockPath:            v.GetString("lock_path"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that all required settings are present.
func (c *Config) Validate() error {
	if c.ClientID == "" {
		return fmt.Errorf("config: missing client_id (SF_CLIENT_ID)")
	}
	if c.ClientSecret == "" {
		return fmt.Errorf("config: missing client_secret (SF_CLIENT_SECRET)")
	}
	if c.TenantID == "" {
		return fmt.Errorf("config: missing tenant_id (SF_TENANT_ID)")
	}
	if c.DriveUser == "" {
		return fmt.Errorf("config: missing drive_user (SF_DRIVE_USER)")
	}
	if c.Store.Bucket == "" {
		return fmt.Errorf("config: missing s3_bucket (SF_S3_BUCKET)")
	}
	if c.AI.APIKey == "" {
		return fmt.Errorf("config: missing anthropic_api_key (SF_ANTHROPIC_API_KEY)")
	}
	if c.DescriptionFilename == "" {
		return fmt.Errorf("config: missing description_filename")
	}
	if c.Interval <= 0 {
		return fmt.Errorf("config: interval must be positive")
	}
	if c.AI.MaxContentBytes <= 0 {
		return fmt.Errorf("config: max_content_bytes must be positive")
	}
	return nil
}
