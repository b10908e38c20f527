package main

import (
	"github.com/spf13/cobra"

	"github.com/itsatony/go-lighty"
)

// renderConfig holds parsed render command configuration
type renderConfig struct {
	loaderFlags
	template     string
	dataJSON     string
	dataFilePath string
	outputPath   string
}

func newRenderCmd() *cobra.Command {
	cfg := &renderConfig{}
	cmd := &cobra.Command{
		Use:     CmdNameRender,
		Short:   HelpRenderShort,
		Example: HelpRenderExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd, cfg)
		},
	}

	cfg.loaderFlags.register(cmd)
	flags := cmd.Flags()
	flags.StringVarP(&cfg.template, FlagTemplate, FlagTemplateShort, "", HelpFlagTemplate)
	flags.StringVarP(&cfg.dataJSON, FlagData, FlagDataShort, "", HelpFlagData)
	flags.StringVarP(&cfg.dataFilePath, FlagDataFile, FlagDataFileShort, "", HelpFlagDataFile)
	flags.StringVarP(&cfg.outputPath, FlagOutput, FlagOutputShort, FlagDefaultOutput, HelpFlagOutput)
	return cmd
}

func runRender(cmd *cobra.Command, cfg *renderConfig) error {
	if cfg.template == "" {
		return newExitError(ExitCodeUsageError, ErrMsgMissingTemplate, nil)
	}

	data, err := loadData(cfg.dataJSON, cfg.dataFilePath)
	if err != nil {
		return err
	}

	loader, err := cfg.load()
	if err != nil {
		return err
	}

	tmpl, err := resolveTemplate(cmd, loader, cfg.template)
	if err != nil {
		return err
	}

	result, err := tmpl.Execute(cmd.Context(), data)
	if err != nil {
		return newExitError(ExitCodeError, ErrMsgExecuteFailed, err)
	}

	if err := writeOutput(cfg.outputPath, []byte(result), cmd.OutOrStdout()); err != nil {
		return newExitError(ExitCodeError, ErrMsgWriteOutputFailed, err)
	}
	return nil
}

// resolveTemplate returns the named template, or parses stdin when the name is "-".
// A stdin template can extend and include templates from the roots.
func resolveTemplate(cmd *cobra.Command, loader *lighty.Loader, name string) (*lighty.Template, error) {
	if name == InputSourceStdin {
		source, err := readInput(name, cmd.InOrStdin())
		if err != nil {
			return nil, newExitError(ExitCodeInputError, ErrMsgReadStdinFailed, err)
		}
		tmpl, err := loader.Parse(lighty.DefaultTemplateName, string(source))
		if err != nil {
			return nil, newExitError(ExitCodeError, ErrMsgParseFailed, err)
		}
		return tmpl, nil
	}

	if !loader.Has(name) {
		_, err := loader.GetTemplate(name)
		return nil, newExitError(ExitCodeInputError, ErrMsgLoadRootsFailed, err)
	}
	tmpl, err := loader.GetTemplate(name)
	if err != nil {
		return nil, newExitError(ExitCodeError, ErrMsgParseFailed, err)
	}
	return tmpl, nil
}
