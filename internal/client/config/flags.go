package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/placementportal/internal/flagx"
)

// parseFlags applies the client flags present in os.Args. Flags that are
// absent leave the current value alone. A malformed value panics.
//
//	-a URL    API base URL
//	-f path   session database file
//	-i sec    online check interval
//	-t sec    request timeout
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-f", "-i", "-t"})

	fs := flag.NewFlagSet("portalctl", flag.ContinueOnError)
	serverURL := fs.String("a", "", "API base URL")
	sessionDB := fs.String("f", "", "session database file")
	interval := fs.Int("i", 0, "online check interval in seconds")
	timeout := fs.Int("t", 0, "request timeout in seconds")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "a":
			cfg.ServerURL = *serverURL
		case "f":
			cfg.SessionDB = *sessionDB
		case "i":
			cfg.OnlineCheckInterval = time.Duration(*interval) * time.Second
		case "t":
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
}
