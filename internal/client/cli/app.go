package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/dmitrijs2005/pitchpoa/internal/client/api"
	"github.com/dmitrijs2005/pitchpoa/internal/client/config"
	"github.com/dmitrijs2005/pitchpoa/internal/logging"
	"github.com/dmitrijs2005/pitchpoa/internal/server/models"
)

type App struct {
	config *config.Config
	client *api.Client
	logger logging.Logger
	user   *models.User
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c *config.Config) *App {
	return &App{
		config: c,
		client: api.NewClient(c.ServerURL, c.RequestTimeout),
		logger: logging.New(c.LogLevel, "text", os.Stderr),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

// Run starts the REPL on standard input and blocks until the user leaves.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to PitchPoa CLI (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader, a.out)
}

func (a *App) isLoggedIn() bool {
	return a.client.Token() != ""
}

func (a *App) status() string {
	if a.user == nil {
		return "(guest)"
	}
	return fmt.Sprintf("(%s)", a.user.Email)
}

// report prints err for the user. A 401 on a protected call means the
// token is no longer accepted, so the session is dropped.
func (a *App) report(ctx context.Context, err error) {
	var apiErr *api.Error
	switch {
	case errors.As(err, &apiErr):
		fmt.Fprintln(a.out, "Error:", apiErr.Message)
		if apiErr.Status == http.StatusUnauthorized && a.isLoggedIn() {
			a.forget()
			fmt.Fprintln(a.out, "Session ended, please log in again")
		}
	case errors.Is(err, api.ErrNotLoggedIn):
		fmt.Fprintln(a.out, "Please log in first")
	default:
		fmt.Fprintln(a.out, "Error:", err)
	}
	a.logger.Debug(ctx, "Command failed", "error", err)
}

func (a *App) forget() {
	a.client.SetToken("")
	a.user = nil
}
