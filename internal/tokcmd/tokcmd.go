// Package tokcmd wires the CLI flag parsing to the driver package, in the
// same shape as the teacher's internal/maincmd: a mainer.Cmd implementation
// parsed by mainer.Parser, mapping the outcome to a mainer.ExitCode.
package tokcmd

import (
	"fmt"

	"github.com/mna/mainer"

	"github.com/jyotindersingh/goctok/internal/driver"
)

const binName = "tok"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] [<path>]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] [<path>]
       %[1]s -h|--help
       %[1]s -v|--version

Compiler and virtual machine for the Tok scripting language.

With no <path>, %[1]s opens a line-oriented REPL reading from standard
input. With a <path>, %[1]s compiles and executes that file.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
`, binName)
)

// Cmd is the tok CLI entry point, parsed by mainer.Parser.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	args []string
}

func (c *Cmd) SetArgs(args []string)          { c.args = args }
func (c *Cmd) SetFlags(flags map[string]bool) {}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}
	if len(c.args) > 1 {
		return fmt.Errorf("at most one source file may be given")
	}
	return nil
}

// Main parses args and dispatches to either the REPL or a single-file run,
// mapping the driver.Result to the process exit code documented in §6.
func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{EnvVars: false}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.ExitCode(64)
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success
	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	d := driver.New()
	d.Stdout = stdio.Stdout
	d.Stderr = stdio.Stderr

	if len(c.args) == 0 {
		d.RunPrompt(stdio.Stdin, stdio.Stdout)
		return mainer.Success
	}

	res := d.RunFile(c.args[0])
	return mainer.ExitCode(res.ExitCode())
}
