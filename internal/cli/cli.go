package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"

	qcli "github.com/codalotl/colordiff/internal/q/cli"
	"github.com/codalotl/colordiff/internal/simplelogger"
)

// Version is the colordiff version. It is a var so builds can override it (ex: `-ldflags "-X .../internal/cli.Version=1.2.3"`).
var Version = "0.1.0"

// RunOptions override standard I/O. If nil, os.Stdin/os.Stdout/os.Stderr are used. Overriding is useful for testing.
type RunOptions struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Run runs the CLI with args (typically os.Args).
//
// It returns a recommended exit code (0, 1, or 2) and an error, if any:
//   - 0 -> err == nil
//   - 1 -> err != nil, but the structure of args is sound (a file couldn't be read, bad configuration, etc).
//   - 2 -> err != nil, args parse error or misuse of flags, etc.
//
// In case of errors, Run has already displayed an error message to opts.Err || Stderr. Callers may use os.Exit with the exit code.
func Run(args []string, opts *RunOptions) (int, error) {
	argv := args
	if len(argv) > 0 {
		argv = argv[1:]
	}
	defer simplelogger.Close()

	var in io.Reader = os.Stdin
	var out io.Writer = os.Stdout
	var errW io.Writer = os.Stderr
	if opts != nil {
		if opts.In != nil {
			in = opts.In
		}
		if opts.Out != nil {
			out = opts.Out
		}
		if opts.Err != nil {
			errW = opts.Err
		}
	}

	// internal/q/cli only returns an exit code, so stderr is teed to produce an error. Stdout is passed as is: it must stay an *os.File for terminal detection.
	var stderrBuf bytes.Buffer
	exitCode := qcli.Run(context.Background(), newRootCommand(), qcli.Options{
		Args: argv,
		In:   in,
		Out:  out,
		Err:  io.MultiWriter(errW, &stderrBuf),
	})
	if exitCode == qcli.ExitOK {
		return 0, nil
	}

	msg := strings.TrimSpace(stderrBuf.String())
	if msg == "" {
		msg = "command failed"
	}
	simplelogger.Log("exit %d: %s", exitCode, msg)
	return exitCode, errors.New(msg)
}
