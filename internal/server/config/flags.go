package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/placementportal/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   REST bind address (e.g., ":5000")
//	-g string   gRPC health bind address (e.g., ":50051")
//	-t string   database driver: pgx or sqlite
//	-d string   database DSN
//	-s string   JWT HMAC secret key
//	-b int      bcrypt cost
//	-x bool     strict status transitions (use -x=false to disable)
//	-o string   comma-separated CORS origins
//	-r int      auth requests per minute per IP (0 disables)
//	-i int      health check interval, seconds
//	-l string   log level
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with the -c/-config flag.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-t", "-d", "-s", "-b", "-x", "-o", "-r", "-i", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run REST server")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "address and port to run gRPC health server")
	fs.StringVar(&config.DatabaseDriver, "t", config.DatabaseDriver, "database driver (pgx or sqlite)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.IntVar(&config.BcryptCost, "b", config.BcryptCost, "bcrypt cost")
	fs.BoolVar(&config.StrictStatusTransitions, "x", config.StrictStatusTransitions, "enforce application status order")
	fs.StringVar(&config.AllowedOrigins, "o", config.AllowedOrigins, "CORS allowed origins")
	fs.IntVar(&config.AuthRateLimit, "r", config.AuthRateLimit, "auth requests per minute per IP")

	healthCheckInterval := fs.Int("i", int(config.HealthCheckInterval.Seconds()), "health check interval (in seconds)")

	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// only an explicit -i replaces the interval, so sub-second values from
	// JSON or the environment survive
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "i" {
			config.HealthCheckInterval = time.Duration(*healthCheckInterval) * time.Second
		}
	})
}
