package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":10000", c.EndpointAddr)
	assert.Equal(t, "", c.DatabaseDSN)
	assert.Equal(t, "", c.SecretKey, "secret must have no default")
	assert.Equal(t, 24*time.Hour, c.TokenValidityDuration)
	assert.Equal(t, "uploads", c.UploadDir)
	assert.Equal(t, int64(16<<20), c.MaxUploadBytes)
	assert.Equal(t, FileStoreDisk, c.FileStoreBackend)
	assert.Equal(t, "https://api.deepseek.com/v1", c.CompletionBaseURL)
	assert.Equal(t, "deepseek-chat", c.CompletionModel)
	assert.Equal(t, float32(0.7), c.CompletionTemperature)
	assert.Equal(t, 60*time.Second, c.CompletionTimeout)
	assert.Equal(t, "https://api.springernature.com/openaccess/json", c.SearchBaseURL)
	assert.Equal(t, 30*time.Second, c.SearchTimeout)
	assert.Equal(t, "us-east-1", c.S3Region)
}

func TestValidate_RequiresSecret(t *testing.T) {
	var c Config
	c.LoadDefaults()

	require.Error(t, c.Validate(), "empty secret must fail validation")

	c.SecretKey = "k"
	require.NoError(t, c.Validate())
}

func TestValidate_RejectsUnknownFileStore(t *testing.T) {
	var c Config
	c.LoadDefaults()
	c.SecretKey = "k"
	c.FileStoreBackend = "ftp"

	require.Error(t, c.Validate())
}
