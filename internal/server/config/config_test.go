package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envVars = []string{
	"PORT", "HTTP_ADDR", "LOG_FORMAT", "LOG_LEVEL", "METADATA_BACKEND", "DB_DSN",
	"SESSION_BACKEND", "REDIS_ADDRS", "REDIS_PASSWORD", "BADGER_PATH", "BLOB_BACKEND",
	"FOLDER_PATH", "S3_ROOT_USER", "S3_ROOT_PASSWORD", "S3_BUCKET", "S3_REGION",
	"S3_BASE_ENDPOINT", "S3_PREFIX", "QUEUE_BACKEND", "EMBEDDED_WORKER",
	"PASSWORD_HASHER", "MAX_UPLOAD_BYTES", "CORS_ORIGINS",
}

// clearEnv unsets every recognised variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envVars {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	os.Args = append([]string{"testbin"}, args...)
	t.Cleanup(func() { os.Args = orig })
}

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, ":5000", c.HTTPAddr)
	assert.Equal(t, BackendMemory, c.MetadataBackend)
	assert.Equal(t, BackendMemory, c.SessionBackend)
	assert.Equal(t, BackendLocal, c.BlobBackend)
	assert.Equal(t, "/tmp/files_manager", c.FolderPath)
	assert.Equal(t, 24*time.Hour, c.SessionTTL)
	assert.True(t, c.EmbeddedWorker)
	assert.NoError(t, c.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"unknown log format", func(c *Config) { c.LogFormat = "xml" }, "Config.LogFormat: oneof"},
		{"postgres needs dsn", func(c *Config) { c.MetadataBackend = BackendPostgres; c.DatabaseDSN = "" }, "Config.DatabaseDSN: required_if"},
		{"sql queue needs dsn", func(c *Config) { c.QueueBackend = BackendPostgres; c.DatabaseDSN = "" }, "Config.DatabaseDSN"},
		{"redis needs addrs", func(c *Config) { c.SessionBackend = BackendRedis; c.RedisAddrs = nil }, "Config.RedisAddrs: required_if"},
		{"s3 needs bucket", func(c *Config) { c.BlobBackend = BackendS3; c.S3Bucket = "" }, "Config.S3Bucket: required_if"},
		{"local needs folder", func(c *Config) { c.FolderPath = "" }, "Config.FolderPath"},
		{"unknown hasher", func(c *Config) { c.PasswordHasher = "md5" }, "Config.PasswordHasher: oneof"},
		{"zero ttl", func(c *Config) { c.SessionTTL = 0 }, "Config.SessionTTL: gt=0"},
		{"negative upload limit", func(c *Config) { c.MaxUploadBytes = -1 }, "Config.MaxUploadBytes: gte=0"},
		{"redis without s3 bucket is fine", func(c *Config) { c.SessionBackend = BackendRedis; c.S3Bucket = "" }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := defaults()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadConfig_Precedence(t *testing.T) {
	clearEnv(t)
	path := writeTempJSON(t, "", "", map[string]any{
		"http_addr":       ":7000",
		"log_level":       "debug",
		"folder_path":     "/from/json",
		"session_backend": "badger",
		"session_ttl":     "1h",
	})
	t.Setenv("FOLDER_PATH", "/from/env")
	t.Setenv("LOG_LEVEL", "warn")
	withArgs(t, "-config", path, "-l", "error")

	c := LoadConfig()

	want := defaults()
	want.HTTPAddr = ":7000"
	want.LogLevel = "error"
	want.FolderPath = "/from/env"
	want.SessionBackend = BackendBadger
	want.SessionTTL = time.Hour
	assert.Empty(t, cmp.Diff(want, c))
}

func TestLoadConfig_PanicsOnInvalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("METADATA_BACKEND", "mongo")
	withArgs(t)

	require.Panics(t, func() { LoadConfig() })
}
