package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/itsatony/go-cuserr"
	"github.com/spf13/cobra"

	"github.com/itsatony/go-lighty"
)

// validateConfig holds parsed validate command configuration
type validateConfig struct {
	loaderFlags
	format string
}

// validationOutput represents JSON output for validation
type validationOutput struct {
	Valid     bool                    `json:"valid"`
	Templates int                     `json:"templates"`
	Issues    []validationIssueOutput `json:"issues,omitempty"`
}

type validationIssueOutput struct {
	Template string `json:"template"`
	Code     string `json:"code,omitempty"`
	Message  string `json:"message"`
	Line     string `json:"line,omitempty"`
	Column   string `json:"column,omitempty"`
}

func newValidateCmd() *cobra.Command {
	cfg := &validateConfig{}
	cmd := &cobra.Command{
		Use:     CmdNameValidate,
		Short:   HelpValidateShort,
		Example: HelpValidateExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd, cfg)
		},
	}

	cfg.loaderFlags.register(cmd)
	cmd.Flags().StringVarP(&cfg.format, FlagFormat, FlagFormatShort, FlagDefaultFormat, HelpFlagFormat)
	return cmd
}

func runValidate(cmd *cobra.Command, cfg *validateConfig) error {
	if cfg.format != OutputFormatText && cfg.format != OutputFormatJSON {
		return newExitError(ExitCodeUsageError, ErrMsgInvalidFormat, nil)
	}
	if len(cfg.roots) == 0 && cfg.configPath == "" {
		return newExitError(ExitCodeUsageError, ErrMsgMissingRoot, nil)
	}

	// Preload would stop at the first failure
	loader, err := cfg.load(lighty.WithPreload(false))
	if err != nil {
		return err
	}

	issues := collectIssues(loader.Validate())
	output := validationOutput{
		Valid:     len(issues) == 0,
		Templates: loader.Count(),
		Issues:    issues,
	}

	stdout := cmd.OutOrStdout()
	if cfg.format == OutputFormatJSON {
		if err := outputValidationJSON(output, stdout); err != nil {
			return err
		}
	} else {
		outputValidationText(output, stdout)
	}

	if !output.Valid {
		return newExitError(ExitCodeValidationError, ErrMsgValidationFailed, nil)
	}
	return nil
}

func collectIssues(failures map[string]error) []validationIssueOutput {
	names := make([]string, 0, len(failures))
	for name := range failures {
		names = append(names, name)
	}
	sort.Strings(names)

	issues := make([]validationIssueOutput, 0, len(names))
	for _, name := range names {
		err := failures[name]
		issues = append(issues, validationIssueOutput{
			Template: name,
			Code:     lighty.Code(err),
			Message:  err.Error(),
			Line:     errorMetadata(err, lighty.MetaKeyLine),
			Column:   errorMetadata(err, lighty.MetaKeyColumn),
		})
	}
	return issues
}

func errorMetadata(err error, key string) string {
	var customErr *cuserr.CustomError
	if !errors.As(err, &customErr) {
		return ""
	}
	value, _ := customErr.GetMetadata(key)
	return value
}

func outputValidationText(output validationOutput, stdout io.Writer) {
	if output.Valid {
		fmt.Fprintf(stdout, ValidationTextSuccess+FmtNewline, output.Templates)
		return
	}

	fmt.Fprintln(stdout, ValidationTextIssueHeader)
	for _, issue := range output.Issues {
		if issue.Line != "" {
			fmt.Fprintf(stdout, ValidationTextIssueAt+FmtNewline, issue.Template, issue.Message, issue.Line, issue.Column)
			continue
		}
		fmt.Fprintf(stdout, ValidationTextIssue+FmtNewline, issue.Template, issue.Message)
	}
	fmt.Fprintf(stdout, ValidationTextSummary+FmtNewline, len(output.Issues), output.Templates)
}

func outputValidationJSON(output validationOutput, stdout io.Writer) error {
	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return newExitError(ExitCodeError, ErrMsgMarshalFailed, err)
	}
	fmt.Fprintln(stdout, string(jsonBytes))
	return nil
}
