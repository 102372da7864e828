package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/rentkeeper/internal/common"
)

// getSimpleText and getPassword are swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errNotLoggedIn = errors.New("not logged in, use 'login' or 'register' first")

func (a *App) readCredentials() (string, []byte, error) {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return "", nil, err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return userName, password, nil
}

// Register creates an account. It does not log in.
func (a *App) Register(ctx context.Context) error {
	userName, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Register(ctx, userName, password); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Account created, you can log in now.")
	return nil
}

// Login authenticates and opens a session, replacing any current one.
func (a *App) Login(ctx context.Context) error {
	userName, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	id, err := a.auth.Login(ctx, userName, password)
	if err != nil {
		return err
	}

	a.beginSession(ctx, id)
	fmt.Fprintf(a.out, "Logged in as %s.\n", id.Username)
	return nil
}

// Logout stops the session locally and revokes it on the store.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	a.endSession()

	if err := a.auth.Logout(ctx); err != nil {
		a.logger.Warn(ctx, "remote logout failed", "error", err)
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) resume(ctx context.Context) {
	id, err := a.auth.Resume(ctx)
	if err != nil {
		a.reportFailure(ctx, "resume session", err)
		return
	}
	if id == nil {
		fmt.Fprintln(a.out, "No saved session, please log in.")
		return
	}
	a.beginSession(ctx, id)
	fmt.Fprintf(a.out, "Welcome back, %s.\n", id.Username)
}
