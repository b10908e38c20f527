package internal

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ScanState is the scanner's current state
type ScanState int

// String returns the state name
func (s ScanState) String() string {
	switch s {
	case StateToken:
		return StateNameToken
	case StateEcho:
		return StateNameEcho
	case StateFilter:
		return StateNameFilter
	case StateTag:
		return StateNameTag
	case StateClose:
		return StateNameClose
	default:
		return StateNameText
	}
}

// SegmentKind identifies what a segment holds
type SegmentKind int

// Segment kinds
const (
	SegmentText SegmentKind = iota
	SegmentEcho
	SegmentFilter
	SegmentTag
)

// String returns the kind name
func (k SegmentKind) String() string {
	switch k {
	case SegmentEcho:
		return SegmentNameEcho
	case SegmentFilter:
		return SegmentNameFilter
	case SegmentTag:
		return SegmentNameTag
	default:
		return SegmentNameText
	}
}

// Position represents a location in the source template
type Position struct {
	Offset int // Byte offset from start
	Line   int // 1-indexed line number
	Column int // 1-indexed column number
}

// String returns a human-readable position string
func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// Segment is one unit of scanned source: literal text, an echo expression
// ({{ a }}), a filtered expression ({{ a|f }}) or the inner text of a tag ({% t x %}).
type Segment struct {
	Kind     SegmentKind
	Value    string
	Position Position
}

// Scanner turns template source into segments with a character-driven state machine.
type Scanner struct {
	source string
	logger *zap.Logger

	state    ScanState
	buf      strings.Builder
	segments []Segment

	pos      Position // position of the character being consumed
	start    Position // start of the pending segment
	tagStart Position // position of the '{' that opened the current echo/tag
}

// NewScanner creates a scanner over source
func NewScanner(source string, logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgScannerCreated, zap.Int(LogFieldSource, len(source)))
	return &Scanner{
		source: source,
		logger: logger,
		pos:    Position{Offset: 0, Line: 1, Column: 1},
		start:  Position{Offset: 0, Line: 1, Column: 1},
	}
}

// Scan runs the state machine over the whole source.
// Leftover literal text is flushed as a trailing text segment.
func (s *Scanner) Scan() ([]Segment, error) {
	s.logger.Debug(LogMsgScanStart)

	for i, ch := range s.source {
		s.pos.Offset = i
		if err := s.step(ch); err != nil {
			return nil, err
		}
		s.advance(ch)
	}

	switch s.state {
	case StateText:
	case StateToken:
		// A lone '{' at the very end is literal text
		s.buf.WriteByte(CharOpenBrace)
		s.start = s.tagStart
	default:
		return nil, s.errorAt(ErrMsgUnterminatedTag, s.tagStart)
	}
	s.flushText()

	s.logger.Debug(LogMsgScanEnd, zap.Int(LogFieldSegments, len(s.segments)))
	return s.segments, nil
}

// step consumes one character in the current state
func (s *Scanner) step(ch rune) error {
	switch s.state {
	case StateText:
		if ch == CharOpenBrace {
			s.flushText()
			s.tagStart = s.pos
			s.state = StateToken
			return nil
		}
		if s.buf.Len() == 0 {
			s.start = s.pos
		}
		s.buf.WriteRune(ch)

	case StateToken:
		switch ch {
		case CharOpenBrace:
			s.state = StateEcho
		case CharPercent:
			s.state = StateTag
		default:
			// Not a delimiter: the brace and this character are literal text
			s.state = StateText
			s.start = s.tagStart
			s.buf.WriteByte(CharOpenBrace)
			s.buf.WriteRune(ch)
		}

	case StateEcho, StateFilter:
		switch ch {
		case CharCloseBrace:
			if err := s.emitExpression(); err != nil {
				return err
			}
			s.state = StateClose
		case CharPipe:
			s.state = StateFilter
			s.buf.WriteRune(ch)
		default:
			s.buf.WriteRune(ch)
		}

	case StateTag:
		if ch == CharPercent {
			if err := s.emitTag(); err != nil {
				return err
			}
			s.state = StateClose
			return nil
		}
		s.buf.WriteRune(ch)

	case StateClose:
		if ch != CharCloseBrace {
			return s.errorAt(fmt.Sprintf(ErrFmtUnexpectedCharFound, ErrMsgUnexpectedChar, ErrMsgExpectedCloseBrace, ch), s.pos)
		}
		s.state = StateText
	}
	return nil
}

// emitExpression closes an echo or filter expression
func (s *Scanner) emitExpression() error {
	value := strings.TrimSpace(s.buf.String())
	s.buf.Reset()
	if value == StringValueEmpty {
		return s.errorAt(ErrMsgEmptyExpression, s.tagStart)
	}
	kind := SegmentEcho
	if s.state == StateFilter {
		kind = SegmentFilter
	}
	s.segments = append(s.segments, Segment{Kind: kind, Value: value, Position: s.tagStart})
	return nil
}

// emitTag closes a tag
func (s *Scanner) emitTag() error {
	value := strings.TrimSpace(s.buf.String())
	s.buf.Reset()
	if value == StringValueEmpty {
		return s.errorAt(ErrMsgEmptyTag, s.tagStart)
	}
	s.segments = append(s.segments, Segment{Kind: SegmentTag, Value: value, Position: s.tagStart})
	return nil
}

// flushText emits pending literal text, merging with a preceding text segment
func (s *Scanner) flushText() {
	if s.buf.Len() == 0 {
		return
	}
	text := s.buf.String()
	s.buf.Reset()
	if n := len(s.segments); n > 0 && s.segments[n-1].Kind == SegmentText {
		s.segments[n-1].Value += text
		return
	}
	s.segments = append(s.segments, Segment{Kind: SegmentText, Value: text, Position: s.start})
}

// advance moves the line/column cursor past ch
func (s *Scanner) advance(ch rune) {
	if ch == CharNewline {
		s.pos.Line++
		s.pos.Column = 1
		return
	}
	s.pos.Column++
}

func (s *Scanner) errorAt(msg string, pos Position) error {
	return &ScanError{
		Message:  msg,
		Position: pos,
		State:    s.state,
	}
}

// ScanError represents a scanner error with position
type ScanError struct {
	Message  string
	Position Position
	State    ScanState
}

func (e *ScanError) Error() string {
	return e.Message + " at " + e.Position.String()
}
