package cli

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	List(ctx context.Context) error
	Reload(ctx context.Context) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, id int64) error
	Favorite(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, query string) error
}

const helpText = `Available commands:
  (l)ist            show the notes
  add               write a new note
  edit <id>         change a note's title, text or color
  fav <id>          toggle the favorite star
  delete|rm <id>    remove a note
  search [text]     filter the notes, no text clears the filter
  reload            fetch the list again
  exit|quit         leave`

// runREPL starts a simple read–eval–print loop for the notes CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. The loop exits on EOF or when the user types
// "exit" or "quit". Errors returned by handlers are ignored here; remote
// failures already show up in the rendered view.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("notes> %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn(helpText)

		case "l", "list":
			_ = a.List(ctx)

		case "reload":
			_ = a.Reload(ctx)

		case "add":
			_ = a.Add(ctx)

		case "edit", "fav", "delete", "rm":
			id, ok := parseID(args)
			if !ok {
				printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
				continue
			}
			switch cmd {
			case "edit":
				_ = a.Edit(ctx, id)
			case "fav":
				_ = a.Favorite(ctx, id)
			default:
				_ = a.Delete(ctx, id)
			}

		case "search":
			_ = a.Search(ctx, strings.Join(args, " "))

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func parseID(args []string) (int64, bool) {
	if len(args) != 1 {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(args[0], "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
