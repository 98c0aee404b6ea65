package cmdutil

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// PositionalArgs returns args with "--" inserted before the first positional
// argument of cmd, so that positionals such as "-5" are never read as
// shorthand flags. Flags must precede positionals.
func PositionalArgs(cmd *cobra.Command, args []string) []string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			return args
		}
		if !isFlag(a) {
			out := make([]string, 0, len(args)+1)
			out = append(out, args[:i]...)
			out = append(out, "--")
			return append(out, args[i:]...)
		}
		if !strings.Contains(a, "=") && takesValue(cmd, a) {
			i++
		}
	}
	return args
}

func isFlag(a string) bool {
	if len(a) < 2 || a[0] != '-' {
		return false
	}
	// Negative numbers are positionals.
	if a[1] >= '0' && a[1] <= '9' {
		return false
	}
	return true
}

// takesValue reports whether flag a consumes the next argument as its value.
func takesValue(cmd *cobra.Command, a string) bool {
	var f *pflag.Flag
	switch {
	case strings.HasPrefix(a, "--"):
		f = lookup(cmd, a[2:], false)
	case len(a) == 2:
		f = lookup(cmd, a[1:], true)
	}
	return f != nil && f.NoOptDefVal == ""
}

func lookup(cmd *cobra.Command, name string, shorthand bool) *pflag.Flag {
	for _, fs := range []*pflag.FlagSet{cmd.Flags(), cmd.PersistentFlags()} {
		var f *pflag.Flag
		if shorthand {
			f = fs.ShorthandLookup(name)
		} else {
			f = fs.Lookup(name)
		}
		if f != nil {
			return f
		}
	}
	return nil
}
