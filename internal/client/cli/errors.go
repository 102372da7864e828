package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/rentkeeper/internal/client/client"
	"github.com/dmitrijs2005/rentkeeper/internal/client/lifecycle"
	"github.com/dmitrijs2005/rentkeeper/internal/client/repositories/properties"
)

var storeNotices = map[string]string{
	"unauthorized":  "your session is no longer valid, please log in again",
	"unavailable":   "the property store is unreachable, try again later",
	"not_found":     "the property no longer exists on the store, run 'refresh'",
	"invalid_input": "the property store rejected the data",
	"conflict":      "that name is already taken",
	"rpc":           "the property store reported an error",
}

// storeKind classifies err as a store failure. ok is false for local errors.
func storeKind(err error) (string, bool) {
	var se *properties.StoreError
	if errors.As(err, &se) {
		return se.Kind(), true
	}
	switch {
	case errors.Is(err, client.ErrUnauthorized), errors.Is(err, client.ErrNoSession):
		return "unauthorized", true
	case errors.Is(err, client.ErrUnavailable):
		return "unavailable", true
	case errors.Is(err, client.ErrNotFound):
		return "not_found", true
	case errors.Is(err, client.ErrInvalidInput):
		return "invalid_input", true
	case errors.Is(err, client.ErrConflict):
		return "conflict", true
	}
	return "", false
}

// reportFailure logs err and prints a short notice. Store failures never
// end the session; the user can retry.
func (a *App) reportFailure(ctx context.Context, op string, err error) {
	if kind, ok := storeKind(err); ok {
		a.logger.Error(ctx, "store call failed", "op", op, "kind", kind, "error", err)
		notice := storeNotices[kind]
		if op == "login" && (kind == "unauthorized" || kind == "not_found") {
			notice = "wrong username or password"
		}
		fmt.Fprintf(a.out, "Could not %s: %s.\n", op, notice)
		return
	}

	switch {
	case errors.Is(err, lifecycle.ErrUnknownProperty):
		fmt.Fprintln(a.out, "No property with that id, use 'list' to see ids.")
	case errors.Is(err, lifecycle.ErrAlreadyPaid):
		fmt.Fprintln(a.out, "That property is already paid this month.")
	case errors.Is(err, errNotLoggedIn):
		fmt.Fprintln(a.out, "Not logged in, use 'login' or 'register' first.")
	default:
		a.logger.Debug(ctx, "command failed", "op", op, "error", err)
		fmt.Fprintf(a.out, "Error: %v\n", err)
	}
}

func errUnknownID(id string) error {
	return fmt.Errorf("%w: %s", lifecycle.ErrUnknownProperty, id)
}
