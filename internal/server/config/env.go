package config

import (
	"os"
	"strings"

	env "github.com/Netflix/go-env"
	"github.com/joho/godotenv"
)

// envConfig lists the recognised environment variables. Unset variables
// leave the current value in place.
type envConfig struct {
	Port            string `env:"PORT"`
	HTTPAddr        string `env:"HTTP_ADDR"`
	LogFormat       string `env:"LOG_FORMAT"`
	LogLevel        string `env:"LOG_LEVEL"`
	MetadataBackend string `env:"METADATA_BACKEND"`
	DatabaseDSN     string `env:"DB_DSN"`
	SessionBackend  string `env:"SESSION_BACKEND"`
	RedisAddrs      string `env:"REDIS_ADDRS"`
	RedisPassword   string `env:"REDIS_PASSWORD"`
	BadgerPath      string `env:"BADGER_PATH"`
	BlobBackend     string `env:"BLOB_BACKEND"`
	FolderPath      string `env:"FOLDER_PATH"`
	S3RootUser      string `env:"S3_ROOT_USER"`
	S3RootPassword  string `env:"S3_ROOT_PASSWORD"`
	S3Bucket        string `env:"S3_BUCKET"`
	S3Region        string `env:"S3_REGION"`
	S3BaseEndpoint  string `env:"S3_BASE_ENDPOINT"`
	S3Prefix        string `env:"S3_PREFIX"`
	QueueBackend    string `env:"QUEUE_BACKEND"`
	EmbeddedWorker  bool   `env:"EMBEDDED_WORKER"`
	PasswordHasher  string `env:"PASSWORD_HASHER"`
	MaxUploadBytes  int64  `env:"MAX_UPLOAD_BYTES"`
	CORSOrigins     string `env:"CORS_ORIGINS"`
}

// parseEnv overlays values from the process environment, after loading a
// .env file from the working directory when one exists. PORT is shorthand
// for HTTP_ADDR=":<port>"; HTTP_ADDR wins when both are set.
func parseEnv(config *Config) {
	_ = godotenv.Load()

	e := envConfig{
		HTTPAddr:        config.HTTPAddr,
		LogFormat:       config.LogFormat,
		LogLevel:        config.LogLevel,
		MetadataBackend: config.MetadataBackend,
		DatabaseDSN:     config.DatabaseDSN,
		SessionBackend:  config.SessionBackend,
		RedisAddrs:      strings.Join(config.RedisAddrs, ","),
		RedisPassword:   config.RedisPassword,
		BadgerPath:      config.BadgerPath,
		BlobBackend:     config.BlobBackend,
		FolderPath:      config.FolderPath,
		S3RootUser:      config.S3RootUser,
		S3RootPassword:  config.S3RootPassword,
		S3Bucket:        config.S3Bucket,
		S3Region:        config.S3Region,
		S3BaseEndpoint:  config.S3BaseEndpoint,
		S3Prefix:        config.S3Prefix,
		QueueBackend:    config.QueueBackend,
		EmbeddedWorker:  config.EmbeddedWorker,
		PasswordHasher:  config.PasswordHasher,
		MaxUploadBytes:  config.MaxUploadBytes,
		CORSOrigins:     strings.Join(config.CORSOrigins, ","),
	}
	_, explicitAddr := os.LookupEnv("HTTP_ADDR")

	if _, err := env.UnmarshalFromEnviron(&e); err != nil {
		panic(err)
	}

	config.HTTPAddr = e.HTTPAddr
	if !explicitAddr && e.Port != "" {
		config.HTTPAddr = ":" + e.Port
	}
	config.LogFormat = e.LogFormat
	config.LogLevel = e.LogLevel
	config.MetadataBackend = e.MetadataBackend
	config.DatabaseDSN = e.DatabaseDSN
	config.SessionBackend = e.SessionBackend
	config.RedisAddrs = splitList(e.RedisAddrs)
	config.RedisPassword = e.RedisPassword
	config.BadgerPath = e.BadgerPath
	config.BlobBackend = e.BlobBackend
	config.FolderPath = e.FolderPath
	config.S3RootUser = e.S3RootUser
	config.S3RootPassword = e.S3RootPassword
	config.S3Bucket = e.S3Bucket
	config.S3Region = e.S3Region
	config.S3BaseEndpoint = e.S3BaseEndpoint
	config.S3Prefix = e.S3Prefix
	config.QueueBackend = e.QueueBackend
	config.EmbeddedWorker = e.EmbeddedWorker
	config.PasswordHasher = e.PasswordHasher
	config.MaxUploadBytes = e.MaxUploadBytes
	config.CORSOrigins = splitList(e.CORSOrigins)
}
