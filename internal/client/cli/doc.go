// Package cli provides the interactive daybook diary client.
//
// It wires configuration, the backend gateway, the prompt table and the
// diary workflows into a read-eval-print loop. The loop has two browsing
// modes: "prompt" walks day numbers and shows the prompt for each day,
// "entries" walks the entries already written. New entries are written
// for the day under the cursor, which starts at the next free day.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
