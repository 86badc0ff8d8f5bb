// Package cli provides the interactive placement portal command-line client.
//
// It wires configuration, the local session store, the API client and an
// interactive REPL. On start the stored session is verified with the server;
// a background watcher keeps the online/offline indicator current.
//
// Commands:
//   - register: create an account (password read without echo)
//   - login / logout
//   - whoami: verify the stored token and print the account
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli
