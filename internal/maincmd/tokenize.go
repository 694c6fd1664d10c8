package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/mna/wisp/lang/scanner"
	"github.com/mna/wisp/lang/token"
)

// Tokenize prints the scanner's token stream for each file, one token per
// line, stopping at and including EOF.
func (c *Cmd) Tokenize(_ context.Context, stdio mainer.Stdio, args []string) error {
	for _, path := range args {
		src, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			return &ioError{err: err}
		}

		var sc scanner.Scanner
		sc.Init(src)
		for {
			tv := sc.Scan()
			line, col := tv.Pos.LineCol()
			fmt.Fprintf(stdio.Stdout, "%d:%d: %s", line, col, tv.Token)
			if tv.Lit != "" && tv.Token != token.ILLEGAL {
				fmt.Fprintf(stdio.Stdout, " %q", tv.Lit)
			}
			fmt.Fprintln(stdio.Stdout)
			if tv.Token == token.EOF {
				break
			}
			if tv.Token == token.ILLEGAL {
				fmt.Fprintln(stdio.Stderr, tv.Lit)
			}
		}
	}
	return nil
}
