package repository

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTags(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "empty", raw: "", want: []string{}},
		{name: "only whitespace", raw: "  \t ", want: []string{}},
		{name: "only commas", raw: ",, ,", want: []string{}},
		{name: "single", raw: "beach", want: []string{"beach"}},
		{name: "duplicates removed", raw: "beach, sunset, beach", want: []string{"beach", "sunset"}},
		{name: "surrounding whitespace", raw: "  beach ,\tsunset\n", want: []string{"beach", "sunset"}},
		{name: "inner whitespace kept", raw: "new   york, new york,a\tb", want: []string{"new   york", "new york", "a\tb"}},
		{name: "case sensitive", raw: "Beach,beach", want: []string{"Beach", "beach"}},
		{name: "empty tokens dropped", raw: "a,,b, ,c", want: []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTags(tt.raw))
		})
	}
}

func TestNormalizeTags(t *testing.T) {
	assert.Equal(t, []string{}, NormalizeTags(nil))
	assert.Equal(t, []string{"cat", "dog"}, NormalizeTags([]string{" cat", "dog ", "", "cat"}))
}

func TestTagsFit(t *testing.T) {
	assert.True(t, TagsFit(nil))
	assert.True(t, TagsFit([]string{"beach", strings.Repeat("ü", MaxTagLength)}))
	assert.False(t, TagsFit([]string{"beach", strings.Repeat("x", MaxTagLength+1)}))
}
