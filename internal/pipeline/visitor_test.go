package pipeline

import (
	"testing"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisitorSet_DispatchesByNodeKind(t *testing.T) {
	ls := NewLanguageSet()
	parser, err := ls.Parser(LangGo)
	require.NoError(t, err)

	tree := parser.Parse([]byte(goSample), nil)
	require.NotNil(t, tree)

	vs := NewVisitorSet()
	var entered, exited int
	vs.Register(&Handler{
		Kinds: []string{"function_declaration"},
		OnEnter: func(node *tree_sitter.Node, ctx *VisitContext) {
			entered++
		},
		OnExit: func(node *tree_sitter.Node, ctx *VisitContext) {
			exited++
		},
	})

	ok := vs.Walk(tree, []byte(goSample), func() bool { return true })
	assert.True(t, ok)
	assert.Equal(t, 1, entered)
	assert.Equal(t, 1, exited)
}

func TestVisitorSet_AbortsOnCancellation(t *testing.T) {
	ls := NewLanguageSet()
	parser, err := ls.Parser(LangGo)
	require.NoError(t, err)
	tree := parser.Parse([]byte(goSample), nil)

	vs := NewVisitorSet()
	ok := vs.Walk(tree, []byte(goSample), func() bool { return false })
	assert.False(t, ok)
}

func TestVisitorSet_FileHandlerRunsAfterTraversal(t *testing.T) {
	ls := NewLanguageSet()
	parser, err := ls.Parser(LangGo)
	require.NoError(t, err)
	tree := parser.Parse([]byte(goSample), nil)

	vs := NewVisitorSet()
	var ran bool
	vs.RegisterFileHandler(func(tree *tree_sitter.Tree, content []byte) {
		ran = true
	})

	vs.Walk(tree, []byte(goSample), func() bool { return true })
	assert.True(t, ran)
}
