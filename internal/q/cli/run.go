package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Options are the process inputs for Run.
type Options struct {
	// Args is argv without the program name (typically os.Args[1:]).
	Args []string

	// In/Out/Err override standard I/O. If nil, os.Stdin/os.Stdout/os.Stderr are used.
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Context is passed to a command handler. Flag values are read through the pointers returned when the flags were defined.
type Context struct {
	context.Context

	Command *Command
	Args    []string

	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// FlagChanged reports whether the flag name, local or inherited, was set on the command line.
func (c *Context) FlagChanged(name string) bool {
	def := c.Command.activeFlags().byLong[name]
	return def != nil && def.changed
}

// Run parses opts.Args against the command tree under root, runs the selected command, and returns a process exit code:
//   - ExitOK on success, and after printing help for -h/--help
//   - ExitUsage for unknown flags or commands, bad flag values, and args rejected by the command's ArgsFunc (the message and help go to Err)
//   - the error's ExitCode if the handler's error is an ExitCoder, else ExitError (the message goes to Err)
func Run(ctx context.Context, root *Command, opts Options) int {
	if root == nil || root.Name == "" {
		panic("cli: Run called without a named root")
	}

	in, out, errOut := opts.In, opts.Out, opts.Err
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}

	selected, args, err := parseArgv(root, opts.Args)
	if errors.Is(err, errHelpRequested) {
		writeHelp(out, root, selected)
		return ExitOK
	}
	if err == nil && selected.Run == nil {
		if len(args) == 0 {
			err = usageErrorf("missing required subcommand")
		} else {
			err = usageErrorf("unknown subcommand: %s", args[0])
		}
	}
	if err == nil && selected.Args != nil {
		err = selected.Args(args)
		if err != nil && exitCodeFor(err, ExitUsage) != ExitUsage {
			return report(errOut, err, exitCodeFor(err, ExitUsage))
		}
	}
	if err != nil {
		printUsageError(errOut, root, selected, err)
		return ExitUsage
	}

	err = selected.Run(&Context{Context: ctx, Command: selected, Args: args, In: in, Out: out, Err: errOut})
	if err == nil {
		return ExitOK
	}
	code := exitCodeFor(err, ExitError)
	if code == ExitUsage {
		printUsageError(errOut, root, selected, err)
		return ExitUsage
	}
	return report(errOut, err, code)
}

// report prints err (unless the code is ExitOK or the message is empty) and returns code.
func report(errOut io.Writer, err error, code int) int {
	if code != ExitOK {
		if msg := err.Error(); msg != "" {
			fmt.Fprintln(errOut, msg)
		}
	}
	return code
}

var errHelpRequested = errors.New("help requested")

// parseArgv selects the deepest command named by the leading non-flag tokens and sets flags found anywhere before "--". The remaining tokens are positional args.
func parseArgv(root *Command, argv []string) (*Command, []string, error) {
	selected := root
	selecting := true
	var positional []string

	for i := 0; i < len(argv); i++ {
		token := argv[i]
		switch {
		case token == "--":
			return selected, append(positional, argv[i+1:]...), nil
		case token == "-h" || token == "--help":
			return selected, nil, errHelpRequested
		case strings.HasPrefix(token, "-") && token != "-": // "-" is a positional arg (stdin)
			consumed, err := parseFlag(selected.activeFlags(), argv, i)
			if err != nil {
				return selected, nil, err
			}
			i += consumed
		default:
			if selecting {
				if child := selected.child(token); child != nil {
					selected = child
					continue
				}
				selecting = false
			}
			positional = append(positional, token)
		}
	}
	return selected, positional, nil
}

// parseFlag sets the flag at argv[i], which may be "--name", "--name=value", "-n", "-n=value", "-name" or "-name=value". It returns how many following tokens were
// consumed as the flag's value.
func parseFlag(active activeFlags, argv []string, i int) (int, error) {
	token := argv[i]

	var name string
	var shorthand rune
	body := strings.TrimPrefix(strings.TrimPrefix(token, "-"), "-")
	value, hasValue := "", false
	if j := strings.IndexByte(body, '='); j >= 0 {
		body, value, hasValue = body[:j], body[j+1:], true
	}
	if !strings.HasPrefix(token, "--") && len([]rune(body)) == 1 {
		shorthand = []rune(body)[0]
	} else {
		name = body
	}

	def := active.lookup(name, shorthand)
	if def == nil {
		return 0, usageErrorf("unknown flag: %s", token)
	}

	consumed := 0
	if !hasValue {
		next, hasNext := "", i+1 < len(argv)
		if hasNext {
			next = argv[i+1]
		}
		switch {
		case def.kind == flagBool:
			value = "true"
			if _, err := strconv.ParseBool(next); hasNext && err == nil {
				value, consumed = next, 1
			}
		case !hasNext:
			return 0, usageErrorf("flag needs a value: %s", token)
		case next == "--":
			return 0, usageErrorf("flag needs a value before --: %s", token)
		default:
			value, consumed = next, 1
		}
	}

	if err := def.set(value); err != nil {
		return 0, usageErrorf("invalid value for %s: %v", def.display(), err)
	}
	return consumed, nil
}

func printUsageError(errOut io.Writer, root, cmd *Command, err error) {
	var ue UsageError
	msg := err.Error()
	if errors.As(err, &ue) {
		msg = ue.Message
	}
	if msg != "" {
		fmt.Fprintln(errOut, msg)
		fmt.Fprintln(errOut)
	}
	writeHelp(errOut, root, cmd)
}
