package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		raw      string
		expected []string
	}{
		{"", nil},
		{"stun.l.google.com:19302", []string{"stun.l.google.com:19302"}},
		{"a:1, b:2,,c:3 ", []string{"a:1", "b:2", "c:3"}},
	}

	for _, test := range tests {
		t.Run(test.raw, func(t *testing.T) {
			assert.Equal(t, test.expected, splitList(test.raw))
		})
	}
}
