package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/pitchpoa/internal/filex"
)

// Report downloads a PDF report: report <kind> [file]. Without a file the
// server's suggested name is used inside the configured report directory.
func (a *App) Report(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: report <sales|inventory|low-stock> [file]")
		return nil
	}
	rep, err := a.client.Report(ctx, args[0])
	if err != nil {
		return err
	}

	path := filepath.Join(a.config.ReportDir, rep.Filename)
	if len(args) > 1 {
		path = args[1]
	}
	saved, err := filex.Save(path, rep.Data)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Saved %s (%d bytes)\n", saved, len(rep.Data))
	return nil
}
