// Package client talks to the RentKeeper property store.
//
// GRPCClient owns the connection and the session tokens. Every call carries
// the access token in metadata; when the store answers "token expired" the
// client rotates the refresh token once and retries the call. Concurrent
// callers that hit expiry together share a single refresh.
//
// gRPC status codes are mapped to the sentinel errors in errors.go so that
// callers can match them with errors.Is.
//
// InitDatabase opens the local SQLite database and applies the embedded
// goose migrations.
package client
