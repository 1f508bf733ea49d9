package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

type insightFunc func(ctx context.Context) (json.RawMessage, error)

func (a *App) insight(ctx context.Context, fn insightFunc) error {
	fmt.Fprintln(a.out, "Asking the assistant, this can take a while...")
	out, err := fn(ctx)
	if err != nil {
		return err
	}
	printJSON(a.out, out)
	return nil
}

func (a *App) Optimize(ctx context.Context) error { return a.insight(ctx, a.client.Optimize) }
func (a *App) Orders(ctx context.Context) error   { return a.insight(ctx, a.client.Orders) }
func (a *App) Insights(ctx context.Context) error { return a.insight(ctx, a.client.FinanceInsights) }

// Pitch uploads a recording for analysis: pitch <file> [title...]
func (a *App) Pitch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: pitch <file> [title]")
		return nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	title := strings.Join(args[1:], " ")
	return a.insight(ctx, func(ctx context.Context) (json.RawMessage, error) {
		return a.client.AnalyzePitch(ctx, title, args[0], f)
	})
}
