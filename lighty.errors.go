package lighty

import (
	"errors"
	"strconv"
	"strings"

	"github.com/itsatony/go-cuserr"
	"github.com/itsatony/go-lighty/internal"
)

// Error message constants
const (
	// Parse errors
	ErrMsgParseFailed          = "template parsing failed"
	ErrMsgMismatchedTag        = "mismatched closing tag"
	ErrMsgUnexpectedCloseTag   = "closing tag without an open block tag"
	ErrMsgUnclosedTag          = "unclosed block tag"
	ErrMsgEmptyExpression      = "empty expression"
	ErrMsgEmptyFilterName      = "empty filter name"
	ErrMsgMalformedLiteral     = "malformed quoted literal"
	ErrMsgInvalidTagArgs       = "invalid tag arguments"
	ErrMsgNestedExtend         = "extend cannot be nested inside a block tag"
	ErrMsgMultipleExtend       = "template extends more than one parent"
	ErrMsgCircularExtend       = "circular template inheritance"
	ErrMsgFilterArgCount       = "wrong number of filter arguments"
	ErrMsgUnsupportedTagResult = "tag returned an unsupported value"

	// Lookup errors
	ErrMsgUnknownTag        = "unknown tag"
	ErrMsgUnknownFilter     = "unknown filter"
	ErrMsgVariableNotFound  = "variable not found"
	ErrMsgTemplateNotFound  = "template not found"
	ErrMsgEmptyTemplateName = "template name cannot be empty"

	// Type errors
	ErrMsgNotIterable    = "value is not iterable"
	ErrMsgFilterArgument = "invalid filter argument"

	// Execution errors
	ErrMsgTagFailed      = "tag execution failed"
	ErrMsgFilterFailed   = "filter execution failed"
	ErrMsgIncludeDepth   = "maximum include depth exceeded"
	ErrMsgNilTemplate    = "template cannot be nil"
	ErrMsgLoadDirFailed  = "failed to load template directory"
	ErrMsgReadFailed     = "failed to read file"
	ErrMsgUnknownFormat  = "unsupported data file format"
	ErrMsgDecodeFailed   = "failed to decode data file"
	ErrMsgInvalidConfig  = "invalid configuration"
	ErrMsgInvalidLogLvl  = "invalid log level"
	ErrMsgEmptyRoot      = "template root cannot be empty"
	ErrMsgLoggerFailed   = "failed to build logger"
	ErrMsgPreloadFailed  = "template preload failed"

	// Registry errors
	ErrMsgEmptyTagName       = "tag name cannot be empty"
	ErrMsgNilTagHandler      = "tag handler cannot be nil"
	ErrMsgReservedTagName    = "tag name cannot start with \"end\""
	ErrMsgEagerNeedsContext  = "eager tags run at parse time and cannot require a context"
	ErrMsgEmptyFilterNameReg = "filter name cannot be empty"
	ErrMsgNilFilterFunc      = "filter function cannot be nil"
	ErrMsgInvalidArgRange    = "filter MaxArgs is below MinArgs"
)

// Error code constants for categorization
const (
	ErrCodeParse    = "LIGHTY_PARSE"
	ErrCodeLookup   = "LIGHTY_LOOKUP"
	ErrCodeType     = "LIGHTY_TYPE"
	ErrCodeRegistry = "LIGHTY_REGISTRY"
	ErrCodeExec     = "LIGHTY_EXEC"
	ErrCodeConfig   = "LIGHTY_CONFIG"
)

// Position represents a location in the source template
type Position = internal.Position

// Code returns the lighty error code carried by err, or an empty string
func Code(err error) string {
	var customErr *cuserr.CustomError
	if !errors.As(err, &customErr) {
		return ""
	}
	code, _ := customErr.GetMetadata(MetaKeyCode)
	return code
}

func withPosition(err *cuserr.CustomError, pos Position) *cuserr.CustomError {
	return err.
		WithMetadata(MetaKeyLine, strconv.Itoa(pos.Line)).
		WithMetadata(MetaKeyColumn, strconv.Itoa(pos.Column)).
		WithMetadata(MetaKeyOffset, strconv.Itoa(pos.Offset))
}

// NewParseError creates a parse error with template and position context
func NewParseError(template, msg string, pos Position, cause error) error {
	var err *cuserr.CustomError
	if cause != nil {
		err = cuserr.WrapStdError(cause, ErrCodeParse, msg)
	} else {
		err = cuserr.NewValidationError(ErrCodeParse, msg)
	}
	return withPosition(err, pos).
		WithMetadata(MetaKeyCode, ErrCodeParse).
		WithMetadata(MetaKeyTemplate, template)
}

// newScanError wraps a scanner failure with the position of the offending character
func newScanError(template string, scanErr *internal.ScanError) error {
	return NewParseError(template, ErrMsgParseFailed, scanErr.Position, scanErr)
}

// NewMismatchedTagError creates an error for a closing tag that does not match the open tag
func NewMismatchedTagError(template, expected, actual string, pos Position) error {
	return withPosition(cuserr.NewValidationError(ErrCodeParse, ErrMsgMismatchedTag), pos).
		WithMetadata(MetaKeyCode, ErrCodeParse).
		WithMetadata(MetaKeyTemplate, template).
		WithMetadata(MetaKeyExpected, EndTagPrefix+expected).
		WithMetadata(MetaKeyActual, actual)
}

// NewUnexpectedCloseTagError creates an error for a closing tag with no open block
func NewUnexpectedCloseTagError(template, tag string, pos Position) error {
	return withPosition(cuserr.NewValidationError(ErrCodeParse, ErrMsgUnexpectedCloseTag), pos).
		WithMetadata(MetaKeyCode, ErrCodeParse).
		WithMetadata(MetaKeyTemplate, template).
		WithMetadata(MetaKeyTag, tag)
}

// NewUnclosedTagError creates an error for a block tag still open at end of input
func NewUnclosedTagError(template, tag string, pos Position) error {
	return withPosition(cuserr.NewValidationError(ErrCodeParse, ErrMsgUnclosedTag), pos).
		WithMetadata(MetaKeyCode, ErrCodeParse).
		WithMetadata(MetaKeyTemplate, template).
		WithMetadata(MetaKeyTag, tag).
		WithMetadata(MetaKeyExpected, EndTagPrefix+tag)
}

// NewExpressionError creates an error for a malformed echo expression
func NewExpressionError(template, msg, expr string, pos Position) error {
	return withPosition(cuserr.NewValidationError(ErrCodeParse, msg), pos).
		WithMetadata(MetaKeyCode, ErrCodeParse).
		WithMetadata(MetaKeyTemplate, template).
		WithMetadata(MetaKeyExpression, expr)
}

// NewTagSyntaxError creates an error for tag arguments a tag cannot accept
func NewTagSyntaxError(template, tag, token string, pos Position, cause error) error {
	var err *cuserr.CustomError
	if cause != nil {
		err = cuserr.WrapStdError(cause, ErrCodeParse, ErrMsgInvalidTagArgs)
	} else {
		err = cuserr.NewValidationError(ErrCodeParse, ErrMsgInvalidTagArgs)
	}
	return withPosition(err, pos).
		WithMetadata(MetaKeyCode, ErrCodeParse).
		WithMetadata(MetaKeyTemplate, template).
		WithMetadata(MetaKeyTag, tag).
		WithMetadata(MetaKeyToken, token)
}

// NewNestedExtendError creates an error for extend placed inside a block tag
func NewNestedExtendError(template string) error {
	return cuserr.NewValidationError(ErrCodeParse, ErrMsgNestedExtend).
		WithMetadata(MetaKeyCode, ErrCodeParse).
		WithMetadata(MetaKeyTemplate, template)
}

// NewMultipleExtendError creates an error for a second extend in one template
func NewMultipleExtendError(template, parent string) error {
	return cuserr.NewValidationError(ErrCodeParse, ErrMsgMultipleExtend).
		WithMetadata(MetaKeyCode, ErrCodeParse).
		WithMetadata(MetaKeyTemplate, template).
		WithMetadata(MetaKeyActual, parent)
}

// NewCircularExtendError creates an error for an extend chain that loops
func NewCircularExtendError(chain []string) error {
	return cuserr.NewValidationError(ErrCodeParse, ErrMsgCircularExtend+": "+strings.Join(chain, ChainSeparator)).
		WithMetadata(MetaKeyCode, ErrCodeParse).
		WithMetadata(MetaKeyChain, strings.Join(chain, ChainSeparator))
}

// NewFilterArgCountError creates an error for a filter applied with the wrong argument count
func NewFilterArgCountError(template, filter string, got, minArgs, maxArgs int, pos Position) error {
	return withPosition(cuserr.NewValidationError(ErrCodeParse, ErrMsgFilterArgCount), pos).
		WithMetadata(MetaKeyCode, ErrCodeParse).
		WithMetadata(MetaKeyTemplate, template).
		WithMetadata(MetaKeyFilter, filter).
		WithMetadata(MetaKeyArgCount, strconv.Itoa(got)).
		WithMetadata(MetaKeyMinArgs, strconv.Itoa(minArgs)).
		WithMetadata(MetaKeyMaxArgs, strconv.Itoa(maxArgs))
}

// NewUnknownTagError creates an unknown tag error with suggestions
func NewUnknownTagError(template, tag string, pos Position, candidates []string) error {
	return withPosition(cuserr.NewNotFoundError(ResourceTag, ErrMsgUnknownTag+" '"+tag+"'"+internal.Suggest(tag, candidates)), pos).
		WithMetadata(MetaKeyCode, ErrCodeLookup).
		WithMetadata(MetaKeyTemplate, template).
		WithMetadata(MetaKeyTag, tag)
}

// NewUnknownFilterError creates an unknown filter error with suggestions
func NewUnknownFilterError(template, filter string, pos Position, candidates []string) error {
	return withPosition(cuserr.NewNotFoundError(ResourceFilter, ErrMsgUnknownFilter+" '"+filter+"'"+internal.Suggest(filter, candidates)), pos).
		WithMetadata(MetaKeyCode, ErrCodeLookup).
		WithMetadata(MetaKeyTemplate, template).
		WithMetadata(MetaKeyFilter, filter)
}

// NewVariableNotFoundError creates a variable not found error. segment is the
// part of the path that failed to resolve.
func NewVariableNotFoundError(path, segment string, candidates []string) error {
	return cuserr.NewNotFoundError(ResourceVariable, ErrMsgVariableNotFound+" '"+path+"'"+internal.Suggest(segment, candidates)).
		WithMetadata(MetaKeyCode, ErrCodeLookup).
		WithMetadata(MetaKeyPath, path).
		WithMetadata(MetaKeySegment, segment)
}

// NewTemplateNotFoundError creates an unknown template error with suggestions
func NewTemplateNotFoundError(name string, candidates []string) error {
	return cuserr.NewNotFoundError(ResourceTemplate, ErrMsgTemplateNotFound+" '"+name+"'"+internal.Suggest(name, candidates)).
		WithMetadata(MetaKeyCode, ErrCodeLookup).
		WithMetadata(MetaKeyTemplate, name)
}

// NewNotIterableError creates a type error for a non-iterable loop source
func NewNotIterableError(expr string, value any) error {
	return cuserr.NewValidationError(ErrCodeType, ErrMsgNotIterable+": "+expr+" ("+internal.TypeName(value)+")").
		WithMetadata(MetaKeyCode, ErrCodeType).
		WithMetadata(MetaKeyExpression, expr).
		WithMetadata(MetaKeyValueType, internal.TypeName(value))
}

// NewFilterError wraps a failing filter. Argument and type failures reported
// by the built-in filters become type errors; anything else is an execution error.
func NewFilterError(filter string, cause error) error {
	var filterErr *internal.FilterError
	if errors.As(cause, &filterErr) {
		return cuserr.WrapStdError(cause, ErrCodeType, ErrMsgFilterArgument+": "+filterErr.Error()).
			WithMetadata(MetaKeyCode, ErrCodeType).
			WithMetadata(MetaKeyFilter, filter).
			WithMetadata(MetaKeyArgIndex, strconv.Itoa(filterErr.ArgIndex))
	}
	return cuserr.WrapStdError(cause, ErrCodeExec, ErrMsgFilterFailed).
		WithMetadata(MetaKeyCode, ErrCodeExec).
		WithMetadata(MetaKeyFilter, filter)
}

// NewTagError wraps a failing tag handler. Errors that already carry a lighty
// code pass through unchanged so their category survives nesting.
func NewTagError(tag string, cause error) error {
	if Code(cause) != "" {
		return cause
	}
	return cuserr.WrapStdError(cause, ErrCodeExec, ErrMsgTagFailed).
		WithMetadata(MetaKeyCode, ErrCodeExec).
		WithMetadata(MetaKeyTag, tag)
}

// NewUnsupportedTagResultError creates an error for a handler result that is not a string or Command
func NewUnsupportedTagResultError(tag string, value any) error {
	return cuserr.NewValidationError(ErrCodeExec, ErrMsgUnsupportedTagResult).
		WithMetadata(MetaKeyCode, ErrCodeExec).
		WithMetadata(MetaKeyTag, tag).
		WithMetadata(MetaKeyValueType, internal.TypeName(value))
}

// NewIncludeDepthError creates an error for include recursion beyond the limit
func NewIncludeDepthError(template string, maxDepth int) error {
	return cuserr.NewValidationError(ErrCodeExec, ErrMsgIncludeDepth).
		WithMetadata(MetaKeyCode, ErrCodeExec).
		WithMetadata(MetaKeyTemplate, template).
		WithMetadata(MetaKeyMaxDepth, strconv.Itoa(maxDepth))
}

// NewRegistryError creates an invalid registration error
func NewRegistryError(msg, name string) error {
	return cuserr.NewValidationError(ErrCodeRegistry, msg).
		WithMetadata(MetaKeyCode, ErrCodeRegistry).
		WithMetadata(MetaKeyTag, name)
}

// NewTemplateLoadError wraps a failure while reading templates from disk
func NewTemplateLoadError(msg, file string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeConfig, msg).
		WithMetadata(MetaKeyCode, ErrCodeConfig).
		WithMetadata(MetaKeyFile, file)
}

// NewPreloadError wraps the first template that failed to parse during preload
func NewPreloadError(template string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeParse, ErrMsgPreloadFailed+" '"+template+"'").
		WithMetadata(MetaKeyCode, ErrCodeParse).
		WithMetadata(MetaKeyTemplate, template)
}

// NewConfigError creates a configuration error
func NewConfigError(msg, reason string, cause error) error {
	var err *cuserr.CustomError
	if cause != nil {
		err = cuserr.WrapStdError(cause, ErrCodeConfig, msg)
	} else {
		err = cuserr.NewValidationError(ErrCodeConfig, msg)
	}
	return err.
		WithMetadata(MetaKeyCode, ErrCodeConfig).
		WithMetadata(MetaKeyReason, reason)
}

// NewDataFormatError creates an error for a data file with an unknown extension
func NewDataFormatError(file, format string) error {
	return cuserr.NewValidationError(ErrCodeConfig, ErrMsgUnknownFormat).
		WithMetadata(MetaKeyCode, ErrCodeConfig).
		WithMetadata(MetaKeyFile, file).
		WithMetadata(MetaKeyFormat, format)
}
