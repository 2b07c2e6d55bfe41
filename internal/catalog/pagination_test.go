package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDirective(t *testing.T) {
	tests := []struct {
		name      string
		cursor    string
		direction string
		want      Directive
		wantVars  map[string]any
	}{
		{
			name:     "no cursor no direction",
			want:     Directive{Mode: FirstFromStart, PageSize: 10},
			wantVars: map[string]any{"first": 10},
		},
		{
			name:      "no cursor ignores previous",
			direction: "previous",
			want:      Directive{Mode: FirstFromStart, PageSize: 10},
			wantVars:  map[string]any{"first": 10},
		},
		{
			name:      "cursor and next",
			cursor:    "abc",
			direction: "next",
			want:      Directive{Mode: FirstAfter, Cursor: "abc", PageSize: 10},
			wantVars:  map[string]any{"first": 10, "after": "abc"},
		},
		{
			name:     "cursor defaults to next",
			cursor:   "abc",
			want:     Directive{Mode: FirstAfter, Cursor: "abc", PageSize: 10},
			wantVars: map[string]any{"first": 10, "after": "abc"},
		},
		{
			name:      "cursor and previous",
			cursor:    "xyz",
			direction: "previous",
			want:      Directive{Mode: LastBefore, Cursor: "xyz", PageSize: 10},
			wantVars:  map[string]any{"last": 10, "before": "xyz"},
		},
		{
			name:      "unknown direction means next",
			cursor:    "abc",
			direction: "sideways",
			want:      Directive{Mode: FirstAfter, Cursor: "abc", PageSize: 10},
			wantVars:  map[string]any{"first": 10, "after": "abc"},
		},
		{
			name:      "cursor with quotes stays a variable",
			cursor:    `a"b){}`,
			direction: "next",
			want:      Directive{Mode: FirstAfter, Cursor: `a"b){}`, PageSize: 10},
			wantVars:  map[string]any{"first": 10, "after": `a"b){}`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewDirective(tt.cursor, tt.direction)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantVars, got.Variables())
		})
	}
}

func TestParseDirection(t *testing.T) {
	assert.Equal(t, DirectionPrevious, ParseDirection("previous"))
	assert.Equal(t, DirectionPrevious, ParseDirection(" Previous "))
	assert.Equal(t, DirectionNext, ParseDirection("next"))
	assert.Equal(t, DirectionNext, ParseDirection(""))
}

func TestDirective_ZeroPageSizeFallsBack(t *testing.T) {
	d := Directive{Mode: FirstFromStart}
	assert.Equal(t, map[string]any{"first": PageSize}, d.Variables())
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "first-from-start", FirstFromStart.String())
	assert.Equal(t, "first-after", FirstAfter.String())
	assert.Equal(t, "last-before", LastBefore.String())
}
