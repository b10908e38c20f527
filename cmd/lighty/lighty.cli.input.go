package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/itsatony/go-lighty"
)

// loaderFlags are the template source flags shared by render and validate
type loaderFlags struct {
	roots      []string
	extensions []string
	configPath string
}

func (lf *loaderFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringSliceVarP(&lf.roots, FlagRoot, FlagRootShort, nil, HelpFlagRoot)
	flags.StringSliceVar(&lf.extensions, FlagExtension, nil, HelpFlagExtension)
	flags.StringVarP(&lf.configPath, FlagConfig, FlagConfigShort, "", HelpFlagConfig)
}

// engineOptions merges the config file with the command line flags.
// Flag roots and extensions are added to those of the config file.
func (lf *loaderFlags) engineOptions() ([]lighty.Option, error) {
	var opts []lighty.Option
	if lf.configPath != "" {
		cfg, err := lighty.LoadConfig(lf.configPath)
		if err != nil {
			return nil, newExitError(ExitCodeInputError, ErrMsgLoadConfigFailed, err)
		}
		cfgOpts, err := cfg.Options()
		if err != nil {
			return nil, newExitError(ExitCodeInputError, ErrMsgLoadConfigFailed, err)
		}
		opts = append(opts, cfgOpts...)
	}
	if len(lf.roots) > 0 {
		opts = append(opts, lighty.WithRoots(lf.roots...))
	}
	if len(lf.extensions) > 0 {
		opts = append(opts, lighty.WithExtensions(lf.extensions...))
	}
	return opts, nil
}

// load builds the engine and registers every template below its roots.
// extra options apply after the config file and the flags.
func (lf *loaderFlags) load(extra ...lighty.Option) (*lighty.Loader, error) {
	opts, err := lf.engineOptions()
	if err != nil {
		return nil, err
	}
	opts = append(opts, extra...)
	engine, err := lighty.New(opts...)
	if err != nil {
		return nil, newExitError(ExitCodeError, ErrMsgEngineFailed, err)
	}
	loader, err := engine.Load()
	if err != nil {
		if lighty.Code(err) == lighty.ErrCodeParse {
			return nil, newExitError(ExitCodeError, ErrMsgParseFailed, err)
		}
		return nil, newExitError(ExitCodeInputError, ErrMsgLoadRootsFailed, err)
	}
	return loader, nil
}

// readInput reads content from a file or stdin
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == InputSourceStdin {
		return io.ReadAll(stdin)
	}

	return os.ReadFile(path)
}

// loadData decodes the render context from an inline JSON string or a data file
func loadData(inline, file string) (map[string]any, error) {
	switch {
	case inline != "" && file != "":
		return nil, newExitError(ExitCodeUsageError, ErrMsgDataConflict, nil)
	case inline != "":
		var data map[string]any
		if err := json.Unmarshal([]byte(inline), &data); err != nil {
			return nil, newExitError(ExitCodeInputError, ErrMsgInvalidJSON, err)
		}
		return data, nil
	case file != "":
		data, err := lighty.LoadData(file)
		if err != nil {
			return nil, newExitError(ExitCodeInputError, ErrMsgLoadDataFailed, err)
		}
		return data, nil
	default:
		return map[string]any{}, nil
	}
}

// writeOutput writes content to a file or stdout
func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == FlagDefaultOutput {
		_, err := stdout.Write(data)
		return err
	}

	return os.WriteFile(path, data, FilePermissions)
}
