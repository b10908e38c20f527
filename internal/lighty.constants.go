package internal

// Scanner state constants
const (
	StateText ScanState = iota
	StateToken
	StateEcho
	StateFilter
	StateTag
	StateClose
)

// Scanner state names for debugging
const (
	StateNameText   = "TEXT"
	StateNameToken  = "TOKEN"
	StateNameEcho   = "ECHO"
	StateNameFilter = "FILTER"
	StateNameTag    = "TAG"
	StateNameClose  = "CLOSE"
)

// Segment kind names for debugging
const (
	SegmentNameText   = "TEXT"
	SegmentNameEcho   = "ECHO"
	SegmentNameFilter = "FILTER"
	SegmentNameTag    = "TAG"
)

// Character constants
const (
	CharOpenBrace   = '{'
	CharCloseBrace  = '}'
	CharPercent     = '%'
	CharPipe        = '|'
	CharColon       = ':'
	CharDoubleQuote = '"'
	CharSingleQuote = '\''
	CharNewline     = '\n'
	CharSpace       = ' '
)

// String constants
const (
	StringValueEmpty = ""
	StringValueTrue  = "true"
	StringValueFalse = "false"
	StringValueNil   = "nil"
	PathSeparator    = "."
	FilterSeparator  = "|"
	ArgSeparator     = ":"
	EndTagPrefix     = "end"
)

// Number formatting constants
const (
	IntBase10          = 10
	FloatFormatFlag    = 'f'
	FloatPrecisionAll  = -1
	FloatBitSize64     = 64
	MaxAvailableKeys   = 5
	DefaultFloatDigits = "0"
)

// "Did you mean" constants
const (
	MaxSuggestions        = 3
	MinSuggestionDistance = 2
	SuggestionPrefix      = ". Did you mean "
	SuggestionSuffix      = "?"
	SuggestionLastSep     = " or "
	SuggestionSep         = ", "
)

// Log message constants
const (
	LogMsgScannerCreated = "scanner created"
	LogMsgScanStart      = "starting scan"
	LogMsgScanEnd        = "scan complete"
)

// Log field names
const (
	LogFieldSource   = "source_length"
	LogFieldSegments = "segment_count"
)

// Scanner error messages
const (
	ErrMsgUnterminatedTag     = "unterminated tag"
	ErrMsgUnexpectedChar      = "unexpected character"
	ErrMsgEmptyExpression     = "empty expression"
	ErrMsgEmptyTag            = "empty tag"
	ErrMsgUnterminatedQuote   = "unterminated quoted sentence"
	ErrMsgExpectedCloseBrace  = "expected '}'"
	ErrFmtUnexpectedCharFound = "%s: %s, found %q"
)
