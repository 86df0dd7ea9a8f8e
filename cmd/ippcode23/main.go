// Command ippcode23 runs a single IPPcode23 program: it loads an XML
// document from --source (or standard input), executes it against
// --input (or standard input), and exits with the interpreter's fixed
// exit-code contract.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ipp23/ippcode23/internal/config"
	"github.com/ipp23/ippcode23/internal/engine"
	"github.com/ipp23/ippcode23/internal/ioline"
	"github.com/ipp23/ippcode23/internal/ipperr"
	"github.com/ipp23/ippcode23/internal/ipplog"
	"github.com/ipp23/ippcode23/internal/loader"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run parses flags with cobra, interprets the requested program, and
// returns the process exit code — the one place in this command that
// knows about os.Exit values, so every other package can stay
// ignorant of the CLI surface.
func run(args []string) int {
	var (
		sourcePath string
		inputPath  string
		verbose    bool
		exitCode   int
	)

	root := &cobra.Command{
		Use:           "ippcode23",
		Short:         "Interpret an IPPcode23 XML program",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			code, err := interpret(sourcePath, inputPath, verbose)
			exitCode = code
			return err
		},
	}
	root.Flags().StringVar(&sourcePath, "source", "", "path to the IPPcode23 XML program (default: stdin)")
	root.Flags().StringVar(&inputPath, "input", "", "path to the program's input stream (default: stdin)")
	root.Flags().BoolVar(&verbose, "verbose", false, "enable diagnostic tracing on stderr")
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		return exitCodeFor(err)
	}
	return exitCode
}

func interpret(sourcePath, inputPath string, verbose bool) (int, error) {
	cfg, err := config.Resolve(sourcePath, inputPath, verbose)
	if err != nil {
		return 0, err
	}
	ipplog.SetVerbose(cfg.Verbose)

	prog, err := loader.LoadFile(cfg.SourcePath)
	if err != nil {
		return 0, err
	}

	in, err := ioline.OpenReader(cfg.InputPath)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out := ioline.NewWriter(os.Stdout)
	eng := engine.New(prog, in, out)

	code, runErr := eng.Run()
	if flushErr := out.Flush(); flushErr != nil && runErr == nil {
		return 0, ipperr.Wrap(ipperr.InvalidFile, flushErr, "failed to flush output")
	}
	if runErr != nil {
		return 0, runErr
	}
	return code, nil
}

// exitCodeFor recovers the process exit code spec §6 fixes for each
// ipperr.Kind. Anything else reaching here is an interpreter defect,
// not a program-under-interpretation error, so it is reported on
// stderr and given a code outside the documented 0/10/11/31-58 range.
func exitCodeFor(err error) int {
	if kind, ok := ipperr.KindOf(err); ok {
		code := kind.ExitCode()
		ipplog.Log().WithField("kind", kind.String()).WithField("exitCode", code).Error(err.Error())
		return code
	}
	fmt.Fprintln(os.Stderr, err)
	return 1
}
