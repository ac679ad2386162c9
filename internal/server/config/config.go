// Package config handles configuration for the server component,
// including defaults, JSON overlay, environment variables, and
// command-line flags.
package config

import (
	"errors"
	"time"
)

// Backend names accepted by FileStoreBackend.
const (
	FileStoreDisk = "disk"
	FileStoreS3   = "s3"
)

// Config holds runtime settings for the ANSAPRA server.
//
// Fields:
//   - EndpointAddr: bind address for the HTTP endpoint.
//   - DatabaseDSN: PostgreSQL DSN (pgx); empty selects the in-memory store.
//   - SecretKey: HMAC secret for signing session JWTs (HS256). Mandatory,
//     no default; startup fails when unset.
//   - TokenValidityDuration: session token (and cookie) lifetime.
//   - UploadDir / MaxUploadBytes: local upload folder and size cap.
//   - FileStoreBackend: "disk" or "s3".
//   - Completion*: DeepSeek-compatible chat-completion provider settings.
//   - Search*: Springer Open Access search provider settings.
//   - S3*: credentials and location for the S3-compatible backend.
type Config struct {
	EndpointAddr          string
	DatabaseDSN           string
	SecretKey             string
	TokenValidityDuration time.Duration

	UploadDir        string
	MaxUploadBytes   int64
	FileStoreBackend string

	CompletionAPIKey      string
	CompletionBaseURL     string
	CompletionModel       string
	CompletionTemperature float32
	CompletionTimeout     time.Duration

	SearchAPIKey  string
	SearchBaseURL string
	SearchTimeout time.Duration

	S3RootUser     string
	S3RootPassword string
	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
}

// LoadDefaults populates Config with development defaults. The JWT secret
// deliberately has none.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":10000"
	c.DatabaseDSN = ""
	c.TokenValidityDuration = 24 * time.Hour
	c.UploadDir = "uploads"
	c.MaxUploadBytes = 16 << 20
	c.FileStoreBackend = FileStoreDisk
	c.CompletionBaseURL = "https://api.deepseek.com/v1"
	c.CompletionModel = "deepseek-chat"
	c.CompletionTemperature = 0.7
	c.CompletionTimeout = 60 * time.Second
	c.SearchBaseURL = "https://api.springernature.com/openaccess/json"
	c.SearchTimeout = 30 * time.Second
	c.S3Bucket = "uploads"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
}

// Validate checks settings that must be supplied externally.
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return errors.New("config: JWT secret key is not set")
	}
	if c.FileStoreBackend != FileStoreDisk && c.FileStoreBackend != FileStoreS3 {
		return errors.New("config: unknown file store backend: " + c.FileStoreBackend)
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, environment variables, and finally
// command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
