// Package driver implements the out-of-core REPL/file-execution orchestrator
// that wires the scanner-driven compiler to the VM: it owns the GC
// collector and the long-lived VM instance, compiles one chunk of source at
// a time, and maps compile/runtime outcomes to the host's exit codes (§6).
package driver

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/jyotindersingh/goctok/lang/compiler"
	"github.com/jyotindersingh/goctok/lang/gc"
	"github.com/jyotindersingh/goctok/lang/vm"
)

// Result classifies how one Run attempt ended, so callers (the CLI) can map
// it to the documented process exit code without re-deriving it from error
// text.
type Result int

const (
	// ResultOK means the source compiled and ran without error.
	ResultOK Result = iota
	// ResultCompileError means compilation failed; exit code 65.
	ResultCompileError
	// ResultRuntimeError means compilation succeeded but execution raised a
	// runtime error; exit code 70.
	ResultRuntimeError
	// ResultIOError means the source file could not be read; exit code 74.
	ResultIOError
)

// ExitCode maps a Result to the process exit status documented in §6.
func (r Result) ExitCode() int {
	switch r {
	case ResultCompileError:
		return 65
	case ResultRuntimeError:
		return 70
	case ResultIOError:
		return 74
	default:
		return 0
	}
}

// Driver holds the long-lived interpreter state shared across every source
// chunk it runs: one GC collector and one VM, exactly as a REPL session
// needs variables and function definitions to persist across lines.
type Driver struct {
	Stdout io.Writer
	Stderr io.Writer

	collector *gc.Collector
	machine   *vm.VM
}

// New returns a Driver with a fresh collector and VM, writing program output
// to stdout and diagnostics to stderr by default.
func New() *Driver {
	collector := gc.New()
	return &Driver{
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		collector: collector,
		machine:   vm.New(collector),
	}
}

// Run compiles and executes one chunk of source against the Driver's
// persistent VM and collector.
func (d *Driver) Run(source string) Result {
	d.machine.Stdout = d.Stdout
	fn, err := compiler.Compile(source, d.collector)
	if err != nil {
		fmt.Fprintln(d.Stderr, err)
		return ResultCompileError
	}
	if err := d.machine.Interpret(fn); err != nil {
		fmt.Fprintln(d.Stderr, err)
		return ResultRuntimeError
	}
	return ResultOK
}

// RunFile reads path and runs it as a single program, mapping an unreadable
// file to ResultIOError.
func (d *Driver) RunFile(path string) Result {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(d.Stderr, err)
		return ResultIOError
	}
	return d.Run(string(src))
}

// RunPrompt runs a line-oriented REPL: each line is compiled and executed as
// its own chunk against the same persistent VM/collector, so declarations
// made on one line are visible on the next (globals only — locals don't
// escape a single compilation the way top-level `var` does).
func (d *Driver) RunPrompt(in io.Reader, out io.Writer) {
	d.Stdout = out
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return
		}
		d.Run(scanner.Text())
	}
}
