package main

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/itsatony/go-lighty"
)

// versionOutput represents structured output for version
type versionOutput struct {
	Version   string `json:"version" yaml:"version"`
	GoVersion string `json:"go_version" yaml:"go_version"`
}

func newVersionCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   CmdNameVersion,
		Short: HelpVersionShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVersion(format, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&format, FlagFormat, FlagFormatShort, FlagDefaultFormat, HelpFlagVerFormat)
	return cmd
}

func runVersion(format string, stdout io.Writer) error {
	v := versionOutput{
		Version:   lighty.Version,
		GoVersion: runtime.Version(),
	}

	switch format {
	case OutputFormatText:
		fmt.Fprintf(stdout, VersionTextTemplate+FmtNewline, v.Version, v.GoVersion)
	case OutputFormatJSON:
		jsonBytes, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return newExitError(ExitCodeError, ErrMsgMarshalFailed, err)
		}
		fmt.Fprintln(stdout, string(jsonBytes))
	case OutputFormatYAML:
		yamlBytes, err := yaml.Marshal(v)
		if err != nil {
			return newExitError(ExitCodeError, ErrMsgMarshalFailed, err)
		}
		fmt.Fprint(stdout, string(yamlBytes))
	default:
		return newExitError(ExitCodeUsageError, ErrMsgInvalidFormat, nil)
	}
	return nil
}
