package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/pitchpoa/internal/client/api"
	"github.com/dmitrijs2005/pitchpoa/internal/common"
)

func (a *App) credentials() (string, string, error) {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return "", "", err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return "", "", err
	}
	defer common.WipeByteArray(password)
	return email, string(password), nil
}

// Register prompts for an email and password and creates an account.
// A successful registration also starts a session.
func (a *App) Register(ctx context.Context) error {
	email, password, err := a.credentials()
	if err != nil {
		return err
	}
	return a.startSession(ctx, a.client.Register, email, password, "Registered")
}

// Login prompts for credentials and authenticates.
func (a *App) Login(ctx context.Context) error {
	email, password, err := a.credentials()
	if err != nil {
		return err
	}
	return a.startSession(ctx, a.client.Login, email, password, "Logged in")
}

type authFunc func(ctx context.Context, email, password string) (*api.AuthResponse, error)

func (a *App) startSession(ctx context.Context, fn authFunc, email, password, verb string) error {
	res, err := fn(ctx, email, password)
	if err != nil {
		return err
	}
	a.user = res.User
	fmt.Fprintf(a.out, "%s as %s\n", verb, res.User.Email)
	return nil
}

// Me prints the account behind the current session.
func (a *App) Me(ctx context.Context) error {
	u, err := a.client.Me(ctx)
	if err != nil {
		return err
	}
	a.user = u
	fmt.Fprintf(a.out, "%s (id %s, since %s)\n", u.Email, u.ID, u.CreatedAt.Format("2006-01-02"))
	return nil
}

// Logout forgets the session token.
func (a *App) Logout(context.Context) error {
	a.forget()
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
