package main

// Command names
const (
	CmdNameRender   = "render"
	CmdNameValidate = "validate"
	CmdNameVersion  = "version"
)

// Flag names - long form
const (
	FlagTemplate  = "template"
	FlagData      = "data"
	FlagDataFile  = "data-file"
	FlagOutput    = "output"
	FlagFormat    = "format"
	FlagRoot      = "root"
	FlagExtension = "ext"
	FlagConfig    = "config"
)

// Flag names - short form
const (
	FlagTemplateShort = "t"
	FlagDataShort     = "d"
	FlagDataFileShort = "f"
	FlagOutputShort   = "o"
	FlagFormatShort   = "F"
	FlagRootShort     = "r"
	FlagConfigShort   = "c"
)

// Flag default values
const (
	FlagDefaultOutput = "-" // stdout
	FlagDefaultFormat = "text"
)

// Output formats
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"
)

// Exit codes
const (
	ExitCodeSuccess         = 0
	ExitCodeError           = 1
	ExitCodeUsageError      = 2
	ExitCodeValidationError = 3
	ExitCodeInputError      = 4
)

// Input source indicators
const (
	InputSourceStdin = "-"
)

// Error messages - ALL must be constants
const (
	ErrMsgNoCommand         = "no command specified"
	ErrMsgMissingTemplate   = "template name required"
	ErrMsgMissingRoot       = "at least one template root required"
	ErrMsgDataConflict      = "--data and --data-file are mutually exclusive"
	ErrMsgInvalidJSON       = "invalid JSON data"
	ErrMsgReadStdinFailed   = "failed to read from stdin"
	ErrMsgWriteOutputFailed = "failed to write output"
	ErrMsgLoadConfigFailed  = "failed to load config"
	ErrMsgLoadDataFailed    = "failed to load data file"
	ErrMsgLoadRootsFailed   = "failed to load templates"
	ErrMsgEngineFailed      = "failed to create engine"
	ErrMsgParseFailed       = "template parsing failed"
	ErrMsgExecuteFailed     = "template execution failed"
	ErrMsgInvalidFormat     = "invalid output format"
	ErrMsgValidationFailed  = "template validation failed"
	ErrMsgMarshalFailed     = "failed to marshal output"
)

// Help text
const (
	HelpRootShort = "Django-flavoured text templates with block inheritance"
	HelpRootLong  = `lighty renders and validates text templates.

Templates use {{ var|filter }} substitutions and {% tag %} blocks,
and can inherit from each other through {% extend %} and {% block %}.`

	HelpRenderShort   = "Render a template with data"
	HelpRenderExample = `  lighty render -r templates -t page.html -f data.yaml
  lighty render -c lighty.yaml -t page.html -d '{"title": "Hi"}'
  echo '{{ name|upper }}' | lighty render -t - -d '{"name": "bob"}'
  lighty render -r templates -t page.html -f data.toml -o page.out`

	HelpValidateShort   = "Parse every template below the roots and report failures"
	HelpValidateExample = `  lighty validate -r templates
  lighty validate -c lighty.yaml --ext .html -F json`

	HelpVersionShort = "Show version information"

	HelpFlagTemplate  = `template name relative to a root ("-" reads the source from stdin)`
	HelpFlagData      = "JSON data string"
	HelpFlagDataFile  = "data file (.json, .yaml, .yml or .toml)"
	HelpFlagOutput    = "output file (default: stdout)"
	HelpFlagRoot      = "template root directory (repeatable)"
	HelpFlagExtension = "only load templates with this extension (repeatable)"
	HelpFlagConfig    = "YAML config file"
	HelpFlagFormat    = "output format: text, json"
	HelpFlagVerFormat = "output format: text, json, yaml"
)

// Version output format templates
const (
	VersionTextTemplate = "go-lighty version %s\nGo: %s"
)

// Validation output format templates
const (
	ValidationTextSuccess     = "%d template(s) valid"
	ValidationTextIssueHeader = "Validation issues:"
	ValidationTextIssue       = "  [%s] %s"
	ValidationTextIssueAt     = "  [%s] %s at line %s, column %s"
	ValidationTextSummary     = "%d of %d template(s) failed"
)

// CLI metadata
const (
	CLIName = "lighty"
)

// File permission constant
const (
	FilePermissions = 0644
)

// Format string constants
const (
	FmtError          = "%s\n"
	FmtErrorWithCause = "%s: %v\n"
	FmtNewline        = "\n"
)
