package config

import (
	"flag"
	"os"

	"github.com/voyageapp/voyage-client/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-u string   base URL of the backend API
//	-s string   S3-compatible storage endpoint
//	-d string   path to the local draft database
//	-l string   UI locale (BCP-47 tag)
//
// The function filters os.Args to only the flags it owns, using
// flagx.FilterArgs, so it does not interfere with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-u", "-s", "-d", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "u", cfg.APIBaseURL, "base URL of the backend API")
	fs.StringVar(&cfg.StorageEndpoint, "s", cfg.StorageEndpoint, "storage endpoint override")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local database")
	fs.StringVar(&cfg.Locale, "l", cfg.Locale, "UI locale")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
