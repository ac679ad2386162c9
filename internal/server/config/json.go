package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/ansapra/ansapra/internal/flagx"
	"github.com/ansapra/ansapra/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for interval fields, which allows
// parsing both string values such as "24h" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON
// configuration files. After unmarshalling, its fields are copied into the
// runtime Config struct which uses time.Duration.
type JsonConfig struct {
	EndpointAddr          string         `json:"endpoint_addr"`
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	UploadDir             string         `json:"upload_dir"`
	MaxUploadBytes        int64          `json:"max_upload_bytes"`
	FileStoreBackend      string         `json:"file_store_backend"`
	CompletionAPIKey      string         `json:"completion_api_key"`
	CompletionBaseURL     string         `json:"completion_base_url"`
	CompletionModel       string         `json:"completion_model"`
	CompletionTemperature float64        `json:"completion_temperature"`
	CompletionTimeout     timex.Duration `json:"completion_timeout"`
	SearchAPIKey          string         `json:"search_api_key"`
	SearchBaseURL         string         `json:"search_base_url"`
	SearchTimeout         timex.Duration `json:"search_timeout"`
	S3RootUser            string         `json:"s3_root_user"`
	S3RootPassword        string         `json:"s3_root_password"`
	S3Bucket              string         `json:"s3_bucket"`
	S3Region              string         `json:"s3_region"`
	S3BaseEndpoint        string         `json:"s3_base_endpoint"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The file path comes from the -c or -config command-line flags; when
// neither is set, no JSON file is loaded. Only keys present in the file
// override the current values. If the file cannot be read or contains
// invalid JSON, the function panics.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.TokenValidityDuration.Duration != 0 {
		config.TokenValidityDuration = time.Duration(c.TokenValidityDuration.Duration)
	}
	if c.UploadDir != "" {
		config.UploadDir = c.UploadDir
	}
	if c.MaxUploadBytes != 0 {
		config.MaxUploadBytes = c.MaxUploadBytes
	}
	if c.FileStoreBackend != "" {
		config.FileStoreBackend = c.FileStoreBackend
	}
	if c.CompletionAPIKey != "" {
		config.CompletionAPIKey = c.CompletionAPIKey
	}
	if c.CompletionBaseURL != "" {
		config.CompletionBaseURL = c.CompletionBaseURL
	}
	if c.CompletionModel != "" {
		config.CompletionModel = c.CompletionModel
	}
	if c.CompletionTemperature != 0 {
		config.CompletionTemperature = float32(c.CompletionTemperature)
	}
	if c.CompletionTimeout.Duration != 0 {
		config.CompletionTimeout = time.Duration(c.CompletionTimeout.Duration)
	}
	if c.SearchAPIKey != "" {
		config.SearchAPIKey = c.SearchAPIKey
	}
	if c.SearchBaseURL != "" {
		config.SearchBaseURL = c.SearchBaseURL
	}
	if c.SearchTimeout.Duration != 0 {
		config.SearchTimeout = time.Duration(c.SearchTimeout.Duration)
	}
	if c.S3RootUser != "" {
		config.S3RootUser = c.S3RootUser
	}
	if c.S3RootPassword != "" {
		config.S3RootPassword = c.S3RootPassword
	}
	if c.S3Bucket != "" {
		config.S3Bucket = c.S3Bucket
	}
	if c.S3Region != "" {
		config.S3Region = c.S3Region
	}
	if c.S3BaseEndpoint != "" {
		config.S3BaseEndpoint = c.S3BaseEndpoint
	}
}
