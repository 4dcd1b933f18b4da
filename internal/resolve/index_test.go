package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/chorus/internal/types"
)

const helperSrc = `package main

func Helper() int {
	return 42
}

func main() {
	_ = Helper()
}
`

func TestIndex_IndexFile_RegistersDeclarationHashes(t *testing.T) {
	idx := New(t.TempDir())
	err := idx.IndexFile("helper.go", []byte(helperSrc), nil)
	require.NoError(t, err)
	require.NoError(t, idx.Link())
}

func TestIndex_NeedsResolve_TrueWhenNeverSeen(t *testing.T) {
	idx := New(t.TempDir())
	ref := types.NewCompositeSymbolID(1, 0)
	assert.True(t, idx.NeedsResolve(ref, DeclHashes{SignatureHash: 1, BodyHash: 2}))
}

func TestIndex_NeedsResolve_FalseWhenHashUnchanged(t *testing.T) {
	idx := New(t.TempDir())
	ref := types.NewCompositeSymbolID(1, 0)
	hashes := DeclHashes{SignatureHash: 7, BodyHash: 9}

	idx.mu.Lock()
	idx.declHash[ref] = hashes
	idx.mu.Unlock()

	assert.False(t, idx.NeedsResolve(ref, hashes))
	assert.True(t, idx.NeedsResolve(ref, DeclHashes{SignatureHash: 7, BodyHash: 10}))
}

func TestIndex_Resolve_MissingReturnsFalse(t *testing.T) {
	idx := New(t.TempDir())
	_, ok := idx.Resolve(types.NewCompositeSymbolID(99, 0))
	assert.False(t, ok)
}

func TestIndex_Record_FirstStrategyWins(t *testing.T) {
	idx := New(t.TempDir())
	ref := types.NewCompositeSymbolID(1, 0)
	first := types.NewCompositeSymbolID(2, 0)
	second := types.NewCompositeSymbolID(3, 0)

	idx.record(ref, first, StrategySameFile, 1.0)
	idx.record(ref, second, StrategyFuzzy, 0.9)

	entry, ok := idx.Resolve(ref)
	require.True(t, ok)
	assert.Equal(t, first, entry.Target)
	assert.Equal(t, StrategySameFile, entry.Strategy)
}

func TestIndex_RunFuzzyFallback_SkipsWhenFewerThanTwoNames(t *testing.T) {
	idx := New(t.TempDir())
	require.NoError(t, idx.IndexFile("solo.go", []byte(`package main

func Solo() {}
`), nil))

	// A single known symbol has nothing to fuzzy-match against; Link must
	// not panic and must leave entries empty.
	require.NoError(t, idx.Link())
	assert.Empty(t, idx.entries)
}
