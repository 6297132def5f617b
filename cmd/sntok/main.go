// Command sntok reads a Shastina source file and prints one line per token,
// stopping at the final |; token.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/jacoelho/shastina"
	snerrors "github.com/jacoelho/shastina/errors"
)

func main() {
	os.Exit(run())
}

func run() int {
	return runWithArgs(os.Args[1:], os.Stdout, os.Stderr)
}

func runWithArgs(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("sntok", flag.ContinueOnError)
	fs.SetOutput(stderr)
	maxToken := fs.Int("max-token", 0, "maximum token buffer capacity in bytes")
	maxString := fs.Int("max-string", 0, "maximum string buffer capacity in bytes")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [flags] [source.sn]\n\n", os.Args[0])
		fmt.Fprintln(stderr, "Prints the tokens of a Shastina source file; - or no argument reads stdin.")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Flags:")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	remaining := fs.Args()
	if len(remaining) > 1 {
		fmt.Fprintln(stderr, "error: at most one source file argument is allowed")
		fs.Usage()
		return 2
	}

	in := os.Stdin
	if len(remaining) == 1 && remaining[0] != "-" {
		f, err := os.Open(remaining[0])
		if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
		defer f.Close()
		in = f
	}

	var opts []shastina.Option
	if *maxToken > 0 {
		opts = append(opts, shastina.MaxTokenSize(*maxToken))
	}
	if *maxString > 0 {
		opts = append(opts, shastina.MaxStringSize(*maxString))
	}
	reader, err := shastina.NewReader(bufio.NewReader(in), opts...)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}
	if err := dump(reader, stdout); err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}
	return 0
}

func dump(reader *shastina.Reader, stdout io.Writer) error {
	for {
		tok, err := reader.Next()
		if err != nil {
			code, line := reader.Status()
			if line == snerrors.UnknownLine {
				return fmt.Errorf("error %d (%v) at unknown line", int(code), code)
			}
			return fmt.Errorf("error %d (%v) at line %d", int(code), code, line)
		}
		switch tok.Kind {
		case shastina.Simple:
			fmt.Fprintf(stdout, "@%d: %s\n", tok.Line, tok.Prefix)
		case shastina.String:
			switch tok.String {
			case shastina.Curly:
				fmt.Fprintf(stdout, "@%d: (%s) {%s}\n", tok.Line, tok.Prefix, tok.Text)
			case shastina.Apostrophe:
				fmt.Fprintf(stdout, "@%d: (%s) '%s'\n", tok.Line, tok.Prefix, tok.Text)
			default:
				fmt.Fprintf(stdout, "@%d: (%s) %q\n", tok.Line, tok.Prefix, tok.Text)
			}
		case shastina.Embed:
			fmt.Fprintf(stdout, "@%d: (%s) <<EMBED>>\n", tok.Line, tok.Prefix)
		case shastina.Final:
			fmt.Fprintf(stdout, "@%d: |;\n", tok.Line)
			return nil
		}
	}
}
