// Copyright (c) 2026 Pressroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/pressroom/pkg/slug"
)

/*
TestFrom covers the transformation pipeline end to end.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple_title", "About Us", "about-us"},
		{"already_slug", "about-us", "about-us"},
		{"accents", "Café à Paris", "cafe-a-paris"},
		{"punctuation", "Hello, World!", "hello-world"},
		{"multiple_spaces", "too   many   spaces", "too-many-spaces"},
		{"leading_trailing", "  trimmed  ", "trimmed"},
		{"digits", "Top 10 Releases 2026", "top-10-releases-2026"},
		{"symbols_collapse", "a -- b __ c", "a-b-c"},
		{"empty", "", ""},
		{"only_symbols", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, slug.From(tt.input))
		})
	}
}
