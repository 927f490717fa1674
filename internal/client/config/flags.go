package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/daybook/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string      address and port of the gRPC endpoint
//	-u string      service base URL
//	-k string      access key
//	-i string      image bucket
//	-v string      video bucket
//	-diary string  diary id
//	-m int         max day
//	-p string      prompts URL or file
//	-t string      default entry title
//	-o int         request timeout (in seconds)
//	-l string      log level
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-u", "-k", "-i", "-v", "-diary", "-m", "-p", "-t", "-o", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	fs.StringVar(&cfg.ServiceURL, "u", cfg.ServiceURL, "service base URL")
	fs.StringVar(&cfg.AccessKey, "k", cfg.AccessKey, "access key")
	fs.StringVar(&cfg.ImageBucket, "i", cfg.ImageBucket, "image bucket")
	fs.StringVar(&cfg.VideoBucket, "v", cfg.VideoBucket, "video bucket")
	fs.StringVar(&cfg.DiaryID, "diary", cfg.DiaryID, "diary id")
	fs.IntVar(&cfg.MaxDay, "m", cfg.MaxDay, "max day")
	fs.StringVar(&cfg.PromptsSource, "p", cfg.PromptsSource, "prompts URL or file")
	fs.StringVar(&cfg.DefaultTitle, "t", cfg.DefaultTitle, "default entry title")
	timeout := fs.Int("o", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
