package pipeline

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/standardbeagle/chorus/internal/errors"
	"github.com/standardbeagle/chorus/internal/intern"
	"github.com/standardbeagle/chorus/internal/types"
)

// Revision is a process-wide monotonic counter bumped whenever any input to
// the pipeline changes (a file edit, a config reload). Every phase boundary
// and every traversal step captures-and-compares it; a mismatch aborts the
// in-flight operation with a cancellation error rather than returning stale
// results.
type Revision struct {
	counter atomic.Uint64
}

// NewRevision starts a revision counter at 1 (0 is never a valid observed
// revision, matching the reserved-zero convention the FileID/Handle types
// use elsewhere in this codebase).
func NewRevision() *Revision {
	r := &Revision{}
	r.counter.Store(1)
	return r
}

// Bump invalidates every operation that captured an earlier value.
func (r *Revision) Bump() uint64 { return r.counter.Add(1) }

// Current returns the counter's present value.
func (r *Revision) Current() uint64 { return r.counter.Load() }

// token is a captured revision value an in-flight operation checks against.
type token struct {
	rev      *Revision
	captured uint64
}

func (r *Revision) capture() token { return token{rev: r, captured: r.Current()} }

// ok reports whether the revision is unchanged since capture.
func (t token) ok() bool { return t.rev.Current() == t.captured }

// Engine runs the 4-phase per-file protocol: structural queries, normalized
// AST visitor, string extraction, string-pattern matching.
type Engine struct {
	languages *LanguageSet
	visitors  *VisitorSet
	interner  *intern.Writer
	revision  *Revision

	enableNormalizedAST bool
	workerCount         int

	// structuralQueries maps a language to the pre-compiled queries the
	// registry produced for it (set via SetStructuralQueries).
	mu                sync.RWMutex
	structuralQueries map[Language][]CompiledQuery

	rules patternRuleSet
}

// CompiledQuery is a registry-produced tree-sitter query ready for the
// structural-query phase, plus the capture names the query declared (index
// i of Captures names the query's i-th capture).
type CompiledQuery struct {
	PatternID string
	Query     *tree_sitter.Query
	Captures  []string
}

// Options configures one Engine.
type Options struct {
	EnableNormalizedAST bool
	WorkerCount         int
}

// NewEngine returns an Engine sharing interner and revision with the rest of
// one analysis run.
func NewEngine(languages *LanguageSet, interner *intern.Writer, revision *Revision, opts Options) *Engine {
	workers := opts.WorkerCount
	if workers <= 0 {
		workers = 1
	}
	return &Engine{
		languages:           languages,
		visitors:            NewVisitorSet(),
		interner:            interner,
		revision:            revision,
		enableNormalizedAST: opts.EnableNormalizedAST,
		workerCount:         workers,
		structuralQueries:   make(map[Language][]CompiledQuery),
		rules:               defaultPatternRuleSet(),
	}
}

// RegisterHandler adds a normalized-AST handler, active only when
// EnableNormalizedAST is set.
func (e *Engine) RegisterHandler(h *Handler) { e.visitors.Register(h) }

// RegisterFileHandler adds a whole-tree handler.
func (e *Engine) RegisterFileHandler(fh FileHandler) { e.visitors.RegisterFileHandler(fh) }

// SetStructuralQueries installs the registry's compiled tree queries for a
// language, keyed by the pattern identifier that produced them.
func (e *Engine) SetStructuralQueries(lang Language, queries []CompiledQuery) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.structuralQueries[lang] = queries
}

// Task is one unit of scheduled work.
type Task struct {
	FileID      types.FileID
	Path        string
	Content     []byte
	ContentHash [32]byte
}

// AnalyzeBatch runs ParseFile over every task using a bounded worker pool.
// It polls the revision between files, abandoning any task not yet started
// once the revision changes mid-batch. Ordering of returned results is not
// guaranteed; callers that need source order must sort by Path themselves.
func (e *Engine) AnalyzeBatch(ctx context.Context, tasks []Task) ([]*ParseResult, error) {
	t := e.revision.capture()
	sem := semaphore.NewWeighted(int64(e.workerCount))
	g, gctx := errgroup.WithContext(ctx)

	results := make([]*ParseResult, len(tasks))
	for i, task := range tasks {
		i, task := i, task
		if err := sem.Acquire(gctx, 1); err != nil {
			break
		}
		g.Go(func() error {
			defer sem.Release(1)

			if !t.ok() {
				return errors.NewCancellationError("pipeline.AnalyzeBatch", t.captured, e.revision.Current())
			}

			result, err := e.ParseFile(task)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ParseFile runs all four phases over one file.
func (e *Engine) ParseFile(task Task) (*ParseResult, error) {
	result := &ParseResult{
		FileID:      task.FileID,
		Path:        task.Path,
		ContentHash: task.ContentHash,
	}

	lang, supported := LanguageForPath(filepath.Ext(task.Path))
	result.Language = lang

	if supported {
		parser, err := e.languages.Parser(lang)
		if err != nil {
			return nil, err
		}
		tree := parser.Parse(task.Content, nil)
		result.Tree = tree

		// Phase 1: structural queries.
		e.runStructuralQueries(result, tree, task.Content, lang)

		// Phase 2: normalized-AST visitor pass (opt-in).
		if e.enableNormalizedAST {
			t := e.revision.capture()
			e.visitors.Walk(tree, task.Content, func() bool { return t.ok() })
		}
	}

	// Phase 3: string extraction.
	literals := extractStringLiterals(task.Content, result.Tree, task.FileID)
	result.Literals = literals

	// Phase 4: string-pattern matching.
	result.Patterns = e.rules.match(literals)

	return result, nil
}

func (e *Engine) runStructuralQueries(result *ParseResult, tree *tree_sitter.Tree, content []byte, lang Language) {
	e.mu.RLock()
	queries := e.structuralQueries[lang]
	e.mu.RUnlock()

	for _, cq := range queries {
		qc := tree_sitter.NewQueryCursor()
		matches := qc.Matches(cq.Query, tree.RootNode(), content)
		for {
			m := matches.Next()
			if m == nil {
				break
			}
			for _, c := range m.Captures {
				name := ""
				if int(c.Index) < len(cq.Captures) {
					name = cq.Captures[c.Index]
				}
				result.Structural = append(result.Structural, StructuralMatch{
					PatternID: cq.PatternID,
					Capture:   name,
					Text:      string(content[c.Node.StartByte():c.Node.EndByte()]),
					Line:      int(c.Node.StartPosition().Row) + 1,
					Column:    int(c.Node.StartPosition().Column),
					Node:      &c.Node,
				})
			}
		}
		qc.Close()
	}
}
