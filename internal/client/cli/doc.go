// Package cli provides the interactive PitchPoa command-line client.
//
// It wires configuration, the HTTP API client and a REPL. Typical flow:
// register or log in, then browse inventory, suppliers and sales, ask for
// AI insights, upload a pitch recording or download PDF reports.
//
// The session token lives only in memory; logging out or leaving the
// program forgets it.
package cli
