package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitDescription(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"foo bar hello    ", []string{"bar", "foo", "hello"}},
		{"   foo   bar hello", []string{"bar", "foo", "hello"}},
		{"foo, bar, baz", []string{"bar", "baz", "foo"}},
		{"foo, bar, & http://example.com?q=x", []string{"bar", "foo", "http://example.com?q=x"}},
		{"fiddle la-la device", []string{"device", "fiddle", "la", "la"}},
		{"fiddle /thing/ device!", []string{"device", "fiddle", "thing"}},
		{"see https://b.example/x and git+ssh://a.example/y", []string{"and", "see", "https://b.example/x", "git+ssh://a.example/y"}},
		{"Zeta alpha Beta", []string{"Beta", "Zeta", "alpha"}},
		{"café über_ding", []string{"café", "über_ding"}},
		{"", nil},
		{"   \t ", nil},
		{"-- & !!", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitDescription(tt.input))
		})
	}
}

func TestSplitDescriptionDeterministic(t *testing.T) {
	input := "write report http://x.example/a, review http://x.example/a again"
	first := SplitDescription(input)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, SplitDescription(input))
	}
	assert.Equal(t, []string{"again", "report", "review", "write", "http://x.example/a,", "http://x.example/a"}, first)
}
