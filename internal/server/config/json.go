package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/filesmanager/internal/flagx"
	"github.com/dmitrijs2005/filesmanager/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations use
// timex.Duration so both "24h" and integer nanoseconds are accepted.
type JsonConfig struct {
	HTTPAddr        string         `json:"http_addr"`
	LogFormat       string         `json:"log_format"`
	LogLevel        string         `json:"log_level"`
	MetadataBackend string         `json:"metadata_backend"`
	DatabaseDSN     string         `json:"database_dsn"`
	SessionBackend  string         `json:"session_backend"`
	RedisAddrs      []string       `json:"redis_addrs"`
	RedisPassword   string         `json:"redis_password"`
	BadgerPath      string         `json:"badger_path"`
	BlobBackend     string         `json:"blob_backend"`
	FolderPath      string         `json:"folder_path"`
	S3RootUser      string         `json:"s3_root_user"`
	S3RootPassword  string         `json:"s3_root_password"`
	S3Bucket        string         `json:"s3_bucket"`
	S3Region        string         `json:"s3_region"`
	S3BaseEndpoint  string         `json:"s3_base_endpoint"`
	S3Prefix        string         `json:"s3_prefix"`
	QueueBackend    string         `json:"queue_backend"`
	EmbeddedWorker  bool           `json:"embedded_worker"`
	PasswordHasher  string         `json:"password_hasher"`
	MaxUploadBytes  int64          `json:"max_upload_bytes"`
	SessionTTL      timex.Duration `json:"session_ttl"`
	CORSOrigins     []string       `json:"cors_origins"`
}

// parseJson overlays values from the file named by -c / -config. Keys absent
// from the file keep their current values. An unreadable or malformed file
// panics.
func parseJson(config *Config) {
	path := flagx.ConfigFilePath(os.Args[1:])
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := toJson(config)
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}
	c.apply(config)
}

func toJson(cfg *Config) *JsonConfig {
	return &JsonConfig{
		HTTPAddr:        cfg.HTTPAddr,
		LogFormat:       cfg.LogFormat,
		LogLevel:        cfg.LogLevel,
		MetadataBackend: cfg.MetadataBackend,
		DatabaseDSN:     cfg.DatabaseDSN,
		SessionBackend:  cfg.SessionBackend,
		RedisAddrs:      cfg.RedisAddrs,
		RedisPassword:   cfg.RedisPassword,
		BadgerPath:      cfg.BadgerPath,
		BlobBackend:     cfg.BlobBackend,
		FolderPath:      cfg.FolderPath,
		S3RootUser:      cfg.S3RootUser,
		S3RootPassword:  cfg.S3RootPassword,
		S3Bucket:        cfg.S3Bucket,
		S3Region:        cfg.S3Region,
		S3BaseEndpoint:  cfg.S3BaseEndpoint,
		S3Prefix:        cfg.S3Prefix,
		QueueBackend:    cfg.QueueBackend,
		EmbeddedWorker:  cfg.EmbeddedWorker,
		PasswordHasher:  cfg.PasswordHasher,
		MaxUploadBytes:  cfg.MaxUploadBytes,
		SessionTTL:      timex.Duration{Duration: cfg.SessionTTL},
		CORSOrigins:     cfg.CORSOrigins,
	}
}

func (c *JsonConfig) apply(cfg *Config) {
	cfg.HTTPAddr = c.HTTPAddr
	cfg.LogFormat = c.LogFormat
	cfg.LogLevel = c.LogLevel
	cfg.MetadataBackend = c.MetadataBackend
	cfg.DatabaseDSN = c.DatabaseDSN
	cfg.SessionBackend = c.SessionBackend
	cfg.RedisAddrs = c.RedisAddrs
	cfg.RedisPassword = c.RedisPassword
	cfg.BadgerPath = c.BadgerPath
	cfg.BlobBackend = c.BlobBackend
	cfg.FolderPath = c.FolderPath
	cfg.S3RootUser = c.S3RootUser
	cfg.S3RootPassword = c.S3RootPassword
	cfg.S3Bucket = c.S3Bucket
	cfg.S3Region = c.S3Region
	cfg.S3BaseEndpoint = c.S3BaseEndpoint
	cfg.S3Prefix = c.S3Prefix
	cfg.QueueBackend = c.QueueBackend
	cfg.EmbeddedWorker = c.EmbeddedWorker
	cfg.PasswordHasher = c.PasswordHasher
	cfg.MaxUploadBytes = c.MaxUploadBytes
	cfg.SessionTTL = c.SessionTTL.Duration
	cfg.CORSOrigins = c.CORSOrigins
}
