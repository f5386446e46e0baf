package config

import (
	"flag"
	"strings"

	"github.com/dmitrijs2005/filesmanager/internal/flagx"
)

var knownFlags = []string{
	"-a", "-d", "-f", "-l", "-m", "-s", "-r", "-q", "-o", "-w", "-x",
	"-u", "-p", "-b", "-g", "-e",
}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g. ":5000")
//	-d string   PostgreSQL DSN
//	-f string   local blob folder
//	-l string   log level
//	-m string   metadata backend (memory|postgres)
//	-s string   session backend (memory|redis|badger)
//	-r string   comma separated Redis addresses
//	-q string   queue backend (memory|postgres)
//	-o string   blob backend (local|s3)
//	-w bool     run the thumbnail worker in-process
//	-x int      maximum decoded upload size, bytes
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint
//
// args are filtered with flagx.FilterArgs first so -c / -config and flags of
// other components are ignored. A malformed flag panics.
func parseFlags(config *Config, args []string) {
	args = flagx.FilterArgs(args, knownFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.FolderPath, "f", config.FolderPath, "local blob folder")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.MetadataBackend, "m", config.MetadataBackend, "metadata backend")
	fs.StringVar(&config.SessionBackend, "s", config.SessionBackend, "session backend")
	redisAddrs := fs.String("r", strings.Join(config.RedisAddrs, ","), "redis addresses")
	fs.StringVar(&config.QueueBackend, "q", config.QueueBackend, "queue backend")
	fs.StringVar(&config.BlobBackend, "o", config.BlobBackend, "blob backend")
	fs.BoolVar(&config.EmbeddedWorker, "w", config.EmbeddedWorker, "run embedded thumbnail worker")
	fs.Int64Var(&config.MaxUploadBytes, "x", config.MaxUploadBytes, "max upload size, bytes")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 root bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 root region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.RedisAddrs = splitList(*redisAddrs)
}
