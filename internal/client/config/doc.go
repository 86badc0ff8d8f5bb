// Package config builds the portalctl configuration.
//
// Values come from built-in defaults, then an optional JSON file given
// with -c or -config, then the flags -a, -f, -i and -t. A later source
// wins. Example file:
//
//	{
//	  "server_url": "https://portal.example.edu",
//	  "online_check_interval": "10s",
//	  "request_timeout": "5s",
//	  "session_db": "/home/me/.portalctl/session.db"
//	}
//
// Durations accept Go duration strings or integer nanoseconds.
package config
