package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
)

func writeHelp(w io.Writer, root, cmd *Command) {
	name := displayName(cmd)
	if cmd.Short != "" {
		fmt.Fprintf(w, "%s - %s\n", name, cmd.Short)
	} else {
		fmt.Fprintln(w, name)
	}
	if cmd.Long != "" {
		fmt.Fprintf(w, "\n%s\n", strings.TrimRight(cmd.Long, "\n"))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %s\n", usageLine(cmd))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if len(cmd.children) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "Commands:")
		children := cmd.Commands()
		sort.Slice(children, func(i, j int) bool { return children[i].Name < children[j].Name })
		for _, child := range children {
			fmt.Fprintf(tw, "  %s\t%s\n", child.Name, child.Short)
		}
	}

	if flags := cmd.activeFlags().sorted(); len(flags) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "Flags:")
		for _, def := range flags {
			fmt.Fprintln(tw, flagHelpLine(def))
		}
	}
	tw.Flush()

	if cmd.Example != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Example:")
		for _, line := range strings.Split(strings.TrimRight(cmd.Example, "\n"), "\n") {
			if line == "" {
				fmt.Fprintln(w)
				continue
			}
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
}

// displayName is the command's full invocation, ex: "colordiff config".
func displayName(cmd *Command) string {
	var parts []string
	for _, node := range cmd.path() {
		parts = append(parts, node.Name)
	}
	return strings.Join(parts, " ")
}

func usageLine(cmd *Command) string {
	segments := []string{displayName(cmd)}
	if len(cmd.activeFlags().byLong) > 0 {
		segments = append(segments, "[flags]")
	}
	if len(cmd.children) > 0 {
		if cmd.Run == nil {
			segments = append(segments, "<command>")
		} else {
			segments = append(segments, "[command]")
		}
	}
	if cmd.Run != nil {
		if cmd.ArgsUsage != "" {
			segments = append(segments, cmd.ArgsUsage)
		} else if cmd.Args == nil {
			segments = append(segments, "[args]")
		}
	}
	return strings.Join(segments, " ")
}

func flagHelpLine(def *flagDef) string {
	names := "    --" + def.name
	if def.shorthand != 0 {
		names = fmt.Sprintf("-%c, --%s", def.shorthand, def.name)
	}
	if v := def.valueName(); v != "" {
		names += " " + v
	}

	usage := strings.TrimSpace(def.usage)
	if def.kind != flagBool && def.defValue != "" {
		usage = strings.TrimSpace(fmt.Sprintf("%s (default %s)", usage, def.defValue))
	}
	return fmt.Sprintf("  %s\t%s", names, usage)
}
