package internal

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// kinds strips positions so segment lists compare by content only
func kinds(segments []Segment) []Segment {
	out := make([]Segment, len(segments))
	for i, s := range segments {
		out[i] = Segment{Kind: s.Kind, Value: s.Value}
	}
	return out
}

func TestScanner_PlainText(t *testing.T) {
	segments, err := NewScanner("Hello, World!", nil).Scan()
	require.NoError(t, err)
	require.Len(t, segments, 1)
	assert.Equal(t, SegmentText, segments[0].Kind)
	assert.Equal(t, "Hello, World!", segments[0].Value)
	assert.Equal(t, Position{Offset: 0, Line: 1, Column: 1}, segments[0].Position)
}

func TestScanner_EmptySource(t *testing.T) {
	segments, err := NewScanner("", nil).Scan()
	require.NoError(t, err)
	assert.Empty(t, segments)
}

func TestScanner_Segments(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		expected []Segment
	}{
		{
			name:   "echo",
			source: "Hi {{ name }}!",
			expected: []Segment{
				{Kind: SegmentText, Value: "Hi "},
				{Kind: SegmentEcho, Value: "name"},
				{Kind: SegmentText, Value: "!"},
			},
		},
		{
			name:   "filter keeps the whole pipeline",
			source: `{{ name|upper|argument_filter:"world" }}`,
			expected: []Segment{
				{Kind: SegmentFilter, Value: `name|upper|argument_filter:"world"`},
			},
		},
		{
			name:   "tag",
			source: "{% if a %}Foo{% endif %}",
			expected: []Segment{
				{Kind: SegmentTag, Value: "if a"},
				{Kind: SegmentText, Value: "Foo"},
				{Kind: SegmentTag, Value: "endif"},
			},
		},
		{
			name:   "literal braces stay text",
			source: "a {b} c {x{{ y }}",
			expected: []Segment{
				{Kind: SegmentText, Value: "a {b} c {x"},
				{Kind: SegmentEcho, Value: "y"},
			},
		},
		{
			name:   "css block",
			source: "p { color: red; }",
			expected: []Segment{
				{Kind: SegmentText, Value: "p { color: red; }"},
			},
		},
		{
			name:   "trailing brace",
			source: "end {",
			expected: []Segment{
				{Kind: SegmentText, Value: "end {"},
			},
		},
		{
			name:   "adjacent tags",
			source: "{{a}}{{b}}",
			expected: []Segment{
				{Kind: SegmentEcho, Value: "a"},
				{Kind: SegmentEcho, Value: "b"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segments, err := NewScanner(tt.source, nil).Scan()
			require.NoError(t, err)
			if diff := cmp.Diff(tt.expected, kinds(segments)); diff != "" {
				t.Errorf("segments mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScanner_Positions(t *testing.T) {
	segments, err := NewScanner("line one\n  {{ name }}\n{% tag %}", nil).Scan()
	require.NoError(t, err)
	require.Len(t, segments, 4)

	assert.Equal(t, Position{Offset: 11, Line: 2, Column: 3}, segments[1].Position)
	assert.Equal(t, Position{Offset: 22, Line: 3, Column: 1}, segments[3].Position)
}

func TestScanner_Errors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		message string
	}{
		{"unterminated echo", "Hello {{ name", ErrMsgUnterminatedTag},
		{"unterminated tag", "{% if a", ErrMsgUnterminatedTag},
		{"single close brace", "{{ name }", ErrMsgUnterminatedTag},
		{"wrong close after echo", "{{ name }x", ErrMsgUnexpectedChar},
		{"wrong close after tag", "{% if a %x", ErrMsgUnexpectedChar},
		{"empty echo", "{{ }}", ErrMsgEmptyExpression},
		{"empty tag", "{%  %}", ErrMsgEmptyTag},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewScanner(tt.source, nil).Scan()
			require.Error(t, err)

			var scanErr *ScanError
			require.True(t, errors.As(err, &scanErr))
			assert.Contains(t, scanErr.Message, tt.message)
		})
	}
}

func TestScanner_ErrorPosition(t *testing.T) {
	_, err := NewScanner("ok\nok {{ name", nil).Scan()
	require.Error(t, err)

	var scanErr *ScanError
	require.True(t, errors.As(err, &scanErr))
	assert.Equal(t, 2, scanErr.Position.Line)
	assert.Equal(t, 4, scanErr.Position.Column)
	assert.Contains(t, err.Error(), "line 2, column 4")
}

func TestScanState_String(t *testing.T) {
	assert.Equal(t, StateNameText, StateText.String())
	assert.Equal(t, StateNameFilter, StateFilter.String())
	assert.Equal(t, StateNameClose, StateClose.String())
	assert.Equal(t, SegmentNameTag, SegmentTag.String())
}
