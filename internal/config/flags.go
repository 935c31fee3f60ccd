package config

import (
	"flag"
	"os"
	"time"

	"github.com/avolkov/backoffice/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   root URL of the backend (default from Config)
//	-d string   path to the credentials database (default from Config)
//	-t string   request timeout as a Go duration, e.g. "3s"
//
// os.Args is filtered through flagx.FilterArgs so flags owned by other
// components do not trip the FlagSet.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "root URL of the backend")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the credentials database")
	timeout := fs.String("t", "", "request timeout (Go duration)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	if *timeout != "" {
		d, err := time.ParseDuration(*timeout)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
}
