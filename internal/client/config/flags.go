package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/pitchpoa/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-a string     server base URL
//	-t duration   per-request timeout
//	-o string     directory for downloaded reports
//	-l string     log level
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-t", "-o", "-l"})

	fs := flag.NewFlagSet("cli", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "server base URL")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "request timeout")
	fs.StringVar(&cfg.ReportDir, "o", cfg.ReportDir, "report output directory")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	return fs.Parse(args)
}
