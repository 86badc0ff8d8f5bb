// Package client contains client-side building blocks for the placement
// portal CLI.
//
// # Overview
//
// The package provides:
//  1. A transport contract (see the Client interface) for the portal REST
//     API: Signup, Login, Verify and Ping.
//  2. A concrete HTTP implementation (see HTTPClient) that speaks the JSON
//     envelope used by the server and maps response codes to errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite session database and applying embedded goose migrations.
//
// # Error Handling
//
// Transport failures are reported as ErrUnavailable. Non-2xx responses are
// returned as *APIError, which unwraps to ErrUnauthorized, ErrConflict or
// ErrThrottled where the status code has that meaning.
package client
