package config

import (
	"flag"
	"os"

	"github.com/plannly/guestsync/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   address and port to bind the HTTP API
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-m          serve from memory instead of Postgres
//
// The function filters os.Args to only the flags it knows about, using
// flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-m"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	fs.StringVar(&cfg.EndpointAddr, "a", cfg.EndpointAddr, "address and port to run server")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "secret key")
	fs.BoolVar(&cfg.InMemory, "m", cfg.InMemory, "use the in-memory store")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
