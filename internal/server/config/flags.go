package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/daybook/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-w string   HTTP bind address (e.g., ":8080")
//	-d string   database DSN
//	-s string   access key HMAC secret
//	-u string   S3 root user
//	-p string   S3 root password
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-i string   image bucket
//	-v string   video bucket
//	-f string   prompts file
//	-x int      presign expiry, minutes
//	-m int      max day
//	-l string   log level
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-w", "-d", "-s", "-u", "-p", "-g", "-e", "-i", "-v", "-f", "-x", "-m", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "gRPC address and port")
	fs.StringVar(&config.EndpointAddrHTTP, "w", config.EndpointAddrHTTP, "HTTP address and port")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.ImageBucket, "i", config.ImageBucket, "image bucket")
	fs.StringVar(&config.VideoBucket, "v", config.VideoBucket, "video bucket")
	fs.StringVar(&config.PromptsFile, "f", config.PromptsFile, "prompts file")
	presignExpiry := fs.Int("x", int(config.PresignExpiry.Minutes()), "presign expiry (in minutes)")
	fs.IntVar(&config.MaxDay, "m", config.MaxDay, "max day")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.PresignExpiry = time.Duration(*presignExpiry) * time.Minute
}
