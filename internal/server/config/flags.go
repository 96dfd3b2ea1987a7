package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/murillocortez/olhar-autoral/internal/flagx"
)

var knownFlags = []string{"-a", "-g", "-d", "-s", "-b", "-e", "-u", "-l"}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-g string   gRPC bind address (e.g., ":50051")
//	-d string   PostgreSQL DSN
//	-s string   admin JWT secret
//	-b string   storage bucket
//	-e string   storage endpoint
//	-u string   public base URL of the bucket
//	-l string   log level
func parseFlags(config *Config) error {
	return parseArgs(config, os.Args[1:])
}

func parseArgs(config *Config, args []string) error {
	// only the flags handled here
	args = flagx.FilterArgs(args, knownFlags)

	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	fs.StringVar(&config.HTTP.Addr, "a", config.HTTP.Addr, "address and port to serve HTTP on")
	fs.StringVar(&config.GRPC.Addr, "g", config.GRPC.Addr, "address and port to serve gRPC health on")
	fs.StringVar(&config.DB.DSN, "d", config.DB.DSN, "database DSN")
	fs.StringVar(&config.Admin.Secret, "s", config.Admin.Secret, "admin token secret")
	fs.StringVar(&config.Storage.Bucket, "b", config.Storage.Bucket, "storage bucket")
	fs.StringVar(&config.Storage.Endpoint, "e", config.Storage.Endpoint, "storage endpoint")
	fs.StringVar(&config.Storage.PublicBaseURL, "u", config.Storage.PublicBaseURL, "public base URL of the bucket")
	fs.StringVar(&config.Log.Level, "l", config.Log.Level, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}
