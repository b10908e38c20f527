// Command lighty renders and validates lighty templates.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/itsatony/go-lighty"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// exitError carries the exit code a failed subcommand wants the process to use
type exitError struct {
	code  int
	msg   string
	cause error
}

func (e *exitError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return e.msg + ": " + e.cause.Error()
}

func (e *exitError) Unwrap() error {
	return e.cause
}

func newExitError(code int, msg string, cause error) error {
	return &exitError{code: code, msg: msg, cause: cause}
}

// run executes the CLI and returns the exit code
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(context.Background())
	if err == nil {
		return ExitCodeSuccess
	}

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		if exitErr.cause != nil {
			fmt.Fprintf(stderr, FmtErrorWithCause, exitErr.msg, exitErr.cause)
		} else {
			fmt.Fprintf(stderr, FmtError, exitErr.msg)
		}
		return exitErr.code
	}

	// Errors cobra raises itself: unknown commands and bad flags
	fmt.Fprintf(stderr, FmtError, err)
	return ExitCodeUsageError
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           CLIName,
		Short:         HelpRootShort,
		Long:          HelpRootLong,
		Version:       lighty.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.PrintErr(cmd.UsageString())
			return newExitError(ExitCodeUsageError, ErrMsgNoCommand, nil)
		},
	}

	cmd.AddCommand(newRenderCmd())
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}
