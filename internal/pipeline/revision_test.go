package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRevision_BumpInvalidatesCapturedToken(t *testing.T) {
	r := NewRevision()
	tok := r.capture()
	assert.True(t, tok.ok())

	r.Bump()
	assert.False(t, tok.ok())
}

func TestRevision_StartsAtOne(t *testing.T) {
	r := NewRevision()
	assert.Equal(t, uint64(1), r.Current())
}

func TestStripQuotes(t *testing.T) {
	cases := map[string]string{
		`"hello"`:  "hello",
		"'hello'":  "hello",
		"`hello`":  "hello",
		"noquotes": "noquotes",
		`""`:       "",
	}
	for in, want := range cases {
		assert.Equal(t, want, stripQuotes(in), "input %q", in)
	}
}
