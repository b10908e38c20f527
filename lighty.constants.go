package lighty

// Version is the library version reported by the CLI
const Version = "0.3.0"

// DefaultTemplateName names templates parsed through Engine.Parse and Engine.Execute
const DefaultTemplateName = "unnamed"

// Built-in tag names
const (
	TagNameIf        = "if"
	TagNameFor       = "for"
	TagNameWith      = "with"
	TagNameSpaceless = "spaceless"
	TagNameBlock     = "block"
	TagNameExtend    = "extend"
	TagNameInclude   = "include"
)

// Tag keywords
const (
	KeywordIn = "in"
	KeywordAs = "as"
)

// EndTagPrefix marks a closing tag: {% endfor %} closes {% for %}
const EndTagPrefix = "end"

// LoopVarName is the variable a for loop exposes its LoopState under
const LoopVarName = "forloop"

// DefaultMaxIncludeDepth bounds nested include rendering
const DefaultMaxIncludeDepth = 32

// PathSeparator splits dotted variable paths
const PathSeparator = "."

// Delimiters inside echo expressions
const (
	FilterSeparator = '|'
	ArgSeparator    = ':'
)

// Error metadata keys
const (
	MetaKeyCode        = "code"
	MetaKeyLine        = "line"
	MetaKeyColumn      = "column"
	MetaKeyOffset      = "offset"
	MetaKeyTemplate    = "template"
	MetaKeyTag         = "tag"
	MetaKeyFilter      = "filter"
	MetaKeyToken       = "token"
	MetaKeyExpression  = "expression"
	MetaKeyPath        = "path"
	MetaKeySegment     = "segment"
	MetaKeyExpected    = "expected"
	MetaKeyActual      = "actual"
	MetaKeyValueType   = "value_type"
	MetaKeyChain       = "chain"
	MetaKeyArgCount    = "arg_count"
	MetaKeyMinArgs     = "min_args"
	MetaKeyMaxArgs     = "max_args"
	MetaKeyArgIndex    = "arg_index"
	MetaKeyReason      = "reason"
	MetaKeyMaxDepth    = "max_depth"
	MetaKeyFile        = "file"
	MetaKeyFormat      = "format"
	MetaKeySuggestions = "suggestions"
)

// Resource names for not-found errors
const (
	ResourceTag      = "tag"
	ResourceFilter   = "filter"
	ResourceVariable = "variable"
	ResourceTemplate = "template"
)

// Chain separator for circular extend errors
const ChainSeparator = " -> "

// Log message constants
const (
	LogMsgEngineCreated      = "engine created"
	LogMsgLoaderCreated      = "loader created"
	LogMsgTemplateRegistered = "template registered"
	LogMsgTemplateLazy       = "lazy template registered"
	LogMsgParseStart         = "parsing template"
	LogMsgParseEnd           = "template parsed"
	LogMsgParseFailed        = "template parse failed"
	LogMsgTagRegistered      = "tag registered"
	LogMsgTagOverwritten     = "tag registration overwrote existing tag"
	LogMsgFilterRegistered   = "filter registered"
	LogMsgFilterOverwritten  = "filter registration overwrote existing filter"
	LogMsgBlockDefined       = "block defined"
	LogMsgBlockOverridden    = "block overridden"
	LogMsgTemplateExtended   = "template extends parent"
	LogMsgDirScanned         = "template directory scanned"
	LogMsgPreloadStart       = "preloading templates"
)

// Log field names
const (
	LogFieldTemplate = "template"
	LogFieldParent   = "parent"
	LogFieldBlock    = "block"
	LogFieldTag      = "tag"
	LogFieldFilter   = "filter"
	LogFieldSegments = "segment_count"
	LogFieldCommands = "command_count"
	LogFieldRoot     = "root"
	LogFieldCount    = "count"
	LogFieldError    = "error"
)

// Data file formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// Data file extensions
const (
	ExtJSON = ".json"
	ExtYAML = ".yaml"
	ExtYML  = ".yml"
	ExtTOML = ".toml"
)
