package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanguageForPath(t *testing.T) {
	cases := map[string]Language{
		".go":  LangGo,
		".py":  LangPython,
		".js":  LangJavaScript,
		".tsx": LangTypeScript,
		".cs":  LangCSharp,
		".php": LangPHP,
		".rs":  LangRust,
		".cpp": LangCPP,
	}
	for ext, want := range cases {
		got, ok := LanguageForPath(ext)
		require.True(t, ok, "extension %q should be recognized", ext)
		assert.Equal(t, want, got)
	}
}

func TestLanguageForPath_Unrecognized(t *testing.T) {
	_, ok := LanguageForPath(".rb")
	assert.False(t, ok)
}

func TestLanguageSet_ParserIsCached(t *testing.T) {
	ls := NewLanguageSet()

	p1, err := ls.Parser(LangGo)
	require.NoError(t, err)
	p2, err := ls.Parser(LangGo)
	require.NoError(t, err)

	assert.Same(t, p1, p2)
}
