package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Show(ctx context.Context) error
	Prev(ctx context.Context) error
	Next(ctx context.Context) error
	Jump(ctx context.Context, arg string) error
	SetMode(ctx context.Context, arg string) error
	Add(ctx context.Context) error
	Delete(ctx context.Context, arg string) error
	Recent(ctx context.Context) error
	Video(ctx context.Context) error
	Reload(ctx context.Context) error
}

const helpText = `Available commands:
  show | s             show the current day or entry
  prev | p             previous day or entry
  next | n             next day or entry
  jump | j <n>         go to day n (prompt mode) or entry n (entries mode)
  mode <prompt|entries>
  add | a              write an entry for the current day
  delete | d [id]      delete the current entry, or the entry with id
  recent | r           the ten newest entries
  video | v            link to the newest video
  reload               reload prompts and entries
  exit | quit`

// runREPL starts the read-eval-print loop of the diary client.
//
// It reads a line from reader, parses the first token as the command and
// the rest as its argument, and dispatches to methods on a. The loop exits
// on EOF or when the user types "exit" or "quit". Command errors are printed
// and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("daybook %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		arg := strings.Join(parts[1:], " ")

		var cmdErr error
		switch cmd {
		case "help", "h", "?":
			printlnFn(helpText)

		case "show", "s":
			cmdErr = a.Show(ctx)

		case "prev", "p":
			cmdErr = a.Prev(ctx)

		case "next", "n":
			cmdErr = a.Next(ctx)

		case "jump", "j":
			if arg == "" {
				printlnFn("Usage: jump <n>")
				continue
			}
			cmdErr = a.Jump(ctx, arg)

		case "mode", "m":
			cmdErr = a.SetMode(ctx, arg)

		case "add", "a":
			cmdErr = a.Add(ctx)

		case "delete", "d":
			cmdErr = a.Delete(ctx, arg)

		case "recent", "r":
			cmdErr = a.Recent(ctx)

		case "video", "v":
			cmdErr = a.Video(ctx)

		case "reload":
			cmdErr = a.Reload(ctx)

		case "exit", "quit", "q":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
		if err != nil {
			return
		}
	}
}
