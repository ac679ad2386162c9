package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays configuration values from environment variables. The
// deployment platform is expected to supply the secrets this way
// (JWT_SECRET, DEEPSEEK_API_KEY, SPRINGER_API_KEY).
//
// Unset variables leave the current values untouched. Malformed numeric or
// duration values panic, mirroring the JSON layer.
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("ADDRESS"); ok {
		config.EndpointAddr = v
	}
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("JWT_SECRET"); ok {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv("TOKEN_VALIDITY"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		config.TokenValidityDuration = d
	}
	if v, ok := os.LookupEnv("UPLOAD_DIR"); ok {
		config.UploadDir = v
	}
	if v, ok := os.LookupEnv("MAX_UPLOAD_BYTES"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			panic(err)
		}
		config.MaxUploadBytes = n
	}
	if v, ok := os.LookupEnv("FILE_STORE"); ok {
		config.FileStoreBackend = v
	}
	if v, ok := os.LookupEnv("DEEPSEEK_API_KEY"); ok {
		config.CompletionAPIKey = v
	}
	if v, ok := os.LookupEnv("DEEPSEEK_BASE_URL"); ok {
		config.CompletionBaseURL = v
	}
	if v, ok := os.LookupEnv("DEEPSEEK_MODEL"); ok {
		config.CompletionModel = v
	}
	if v, ok := os.LookupEnv("DEEPSEEK_TEMPERATURE"); ok {
		f, err := strconv.ParseFloat(v, 32)
		if err != nil {
			panic(err)
		}
		config.CompletionTemperature = float32(f)
	}
	if v, ok := os.LookupEnv("SPRINGER_API_KEY"); ok {
		config.SearchAPIKey = v
	}
	if v, ok := os.LookupEnv("SPRINGER_BASE_URL"); ok {
		config.SearchBaseURL = v
	}
	if v, ok := os.LookupEnv("S3_ROOT_USER"); ok {
		config.S3RootUser = v
	}
	if v, ok := os.LookupEnv("S3_ROOT_PASSWORD"); ok {
		config.S3RootPassword = v
	}
	if v, ok := os.LookupEnv("S3_BUCKET"); ok {
		config.S3Bucket = v
	}
	if v, ok := os.LookupEnv("S3_REGION"); ok {
		config.S3Region = v
	}
	if v, ok := os.LookupEnv("S3_BASE_ENDPOINT"); ok {
		config.S3BaseEndpoint = v
	}
}
