package symbollinker

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSymbolLinkerEngine_GetAllSymbolNames verifies every indexed file's
// symbols are returned regardless of which file declared them.
func TestSymbolLinkerEngine_GetAllSymbolNames(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "linker_names_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	engine := NewSymbolLinkerEngine(tempDir)
	require.NoError(t, engine.IndexFile(tempDir+"/a.go", []byte(`package main

func Alpha() {}
`)))
	require.NoError(t, engine.IndexFile(tempDir+"/b.go", []byte(`package main

func Beta() {}
`)))

	names := engine.GetAllSymbolNames()
	var seen []string
	for _, n := range names {
		seen = append(seen, n.Name)
	}
	assert.Contains(t, seen, "Alpha")
	assert.Contains(t, seen, "Beta")
}

// TestSymbolLinkerEngine_UnresolvedReferences_ResetsPerLink verifies the
// unresolved list is cleared at the start of each LinkSymbols call rather
// than accumulating across repeated links.
func TestSymbolLinkerEngine_UnresolvedReferences_ResetsPerLink(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "linker_unresolved_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	engine := NewSymbolLinkerEngine(tempDir)
	require.NoError(t, engine.IndexFile(tempDir+"/a.go", []byte(`package main

func Alpha() {}
`)))

	require.NoError(t, engine.LinkSymbols())
	first := engine.UnresolvedReferences()

	require.NoError(t, engine.LinkSymbols())
	second := engine.UnresolvedReferences()

	assert.Equal(t, len(first), len(second))
}
