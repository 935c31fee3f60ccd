package cli

import (
	"context"
	"errors"
	"os"

	"github.com/avolkov/backoffice/internal/api"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for an email, display name and password and attempts to
// create a new account. A successful registration leaves the user logged in.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	name, err := getSimpleText(a.reader, "Enter display name", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.session.Register(ctx, email, password, name); err != nil {
		a.reportAuthError(err)
		return err
	}

	printlnFn("Success!")
	return nil
}

// Login prompts for credentials and authenticates against the backend. On
// success the token is persisted locally so the next run resumes the session.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.session.Login(ctx, email, password); err != nil {
		a.reportAuthError(err)
		return err
	}

	printlnFn("Success!")
	return nil
}

// Logout drops the session locally and tells the backend. The local state is
// cleared even when the backend cannot be reached.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		printlnFn("Logged out locally; server not notified:", err.Error())
		return err
	}
	printlnFn("Logged out")
	return nil
}

func (a *App) reportAuthError(err error) {
	if errors.Is(err, api.ErrUnavailable) {
		printlnFn("Server unavailable, try again later")
		return
	}
	if msg := a.session.Snapshot().Err; msg != "" {
		printlnFn("Failed:", msg)
		return
	}
	printlnFn("Failed:", err.Error())
}
