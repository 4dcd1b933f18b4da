package pipeline

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// VisitContext tracks ancestry during one depth-first traversal, sparing
// handlers from walking parent chains themselves.
type VisitContext struct {
	parentStack []string
	depth       int
}

// NewVisitContext returns an empty traversal context.
func NewVisitContext() *VisitContext {
	return &VisitContext{parentStack: make([]string, 0, 16)}
}

func (c *VisitContext) pushParent(kind string) { c.parentStack = append(c.parentStack, kind); c.depth++ }
func (c *VisitContext) popParent()             { c.parentStack = c.parentStack[:len(c.parentStack)-1]; c.depth-- }

// Parent returns the immediate parent node kind, or "" at the root.
func (c *VisitContext) Parent() string {
	if len(c.parentStack) == 0 {
		return ""
	}
	return c.parentStack[len(c.parentStack)-1]
}

// Depth returns the current traversal depth.
func (c *VisitContext) Depth() int { return c.depth }

// Handler is a normalized-AST visitor registered for a set of node kinds.
// OnEnter/OnExit are called for every node whose kind is in Kinds; either
// may be nil.
type Handler struct {
	Kinds   []string
	OnEnter func(node *tree_sitter.Node, ctx *VisitContext)
	OnExit  func(node *tree_sitter.Node, ctx *VisitContext)
}

// FileHandler receives the whole tree once, after the depth-first traversal
// completes, for detectors that need whole-file context instead of a
// node-kind callback.
type FileHandler func(tree *tree_sitter.Tree, content []byte)

// VisitorSet indexes handlers by node kind at registration time so dispatch
// during traversal is O(handlers for this kind), not O(all handlers).
type VisitorSet struct {
	byKind       map[string][]*Handler
	fileHandlers []FileHandler
}

// NewVisitorSet returns an empty set.
func NewVisitorSet() *VisitorSet {
	return &VisitorSet{byKind: make(map[string][]*Handler)}
}

// Register adds h, indexing it under every kind it declares interest in.
func (vs *VisitorSet) Register(h *Handler) {
	for _, kind := range h.Kinds {
		vs.byKind[kind] = append(vs.byKind[kind], h)
	}
}

// RegisterFileHandler adds a whole-tree handler run after traversal.
func (vs *VisitorSet) RegisterFileHandler(fh FileHandler) {
	vs.fileHandlers = append(vs.fileHandlers, fh)
}

// Walk runs a single depth-first traversal of tree, dispatching to every
// registered handler interested in each node's kind, then invokes the
// file-level handlers. checkCancelled is polled between recursive
// descents and aborts the walk (returning false) on a revision change.
func (vs *VisitorSet) Walk(tree *tree_sitter.Tree, content []byte, checkCancelled func() bool) bool {
	ctx := NewVisitContext()
	if !vs.walkNode(tree.RootNode(), ctx, checkCancelled) {
		return false
	}

	for _, fh := range vs.fileHandlers {
		fh(tree, content)
	}
	return true
}

func (vs *VisitorSet) walkNode(node *tree_sitter.Node, ctx *VisitContext, checkCancelled func() bool) bool {
	if checkCancelled != nil && !checkCancelled() {
		return false
	}

	kind := node.Kind()
	for _, h := range vs.byKind[kind] {
		if h.OnEnter != nil {
			h.OnEnter(node, ctx)
		}
	}

	ctx.pushParent(kind)
	count := int(node.ChildCount())
	for i := 0; i < count; i++ {
		child := node.Child(uint(i))
		if child == nil {
			continue
		}
		if !vs.walkNode(child, ctx, checkCancelled) {
			ctx.popParent()
			return false
		}
	}
	ctx.popParent()

	for _, h := range vs.byKind[kind] {
		if h.OnExit != nil {
			h.OnExit(node, ctx)
		}
	}

	return true
}
