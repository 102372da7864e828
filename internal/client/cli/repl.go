package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/shlex"
)

// runREPL reads one command per line and executes it through a fresh cobra
// tree. It returns on EOF, "exit" or "quit", or when ctx is cancelled.
// Arguments may be quoted. Command errors are reported and never end the loop.
//
// Lines are read from a.reader directly so that prompts issued by a command
// consume the lines that follow it.
func runREPL(ctx context.Context, a *App) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(a.out, "rentkeeper %s> ", a.status())
		line, err := a.reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			fmt.Fprintln(a.out)
			return
		}
		parts, err := shlex.Split(line)
		if err != nil {
			fmt.Fprintf(a.out, "Error: %v\n", err)
			continue
		}
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return
		}

		a.execute(ctx, parts)
	}
}

func (a *App) execute(ctx context.Context, args []string) {
	root := a.rootCmd()
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		a.reportFailure(ctx, args[0], err)
	}
}
