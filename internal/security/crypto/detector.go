package crypto

import (
	"crypto/sha256"
	"fmt"

	"github.com/cespare/xxhash/v2"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/chorus/internal/model"
	"github.com/standardbeagle/chorus/internal/pipeline"
	"github.com/standardbeagle/chorus/internal/symbollinker"
	"github.com/standardbeagle/chorus/internal/types"
)

// callExpressionKinds lists the tree-sitter node kind every grammar this
// engine covers uses for a function/method call — Go, Python and
// JS/TS share "call_expression"/"call", Java and C# use
// "method_invocation"/"invocation_expression". Matched generically rather
// than via per-grammar field accessors: a later, precise per-language
// extractor can replace this without changing Rule or ArgCheck shapes.
var callExpressionKinds = []string{
	"call_expression",
	"call",
	"method_invocation",
	"invocation_expression",
	"object_creation_expression",
}

// argumentListKinds are the node kinds holding a call's argument nodes,
// paired positionally with callExpressionKinds.
var argumentListKinds = map[string]bool{
	"argument_list": true,
	"arguments":     true,
	"argument":      true,
}

// skipArgKinds are punctuation/structural children inside an argument list
// that aren't themselves arguments.
var skipArgKinds = map[string]bool{
	"(": true, ")": true, ",": true, "argument_list": true,
}

// Detector runs the crypto engine's rule table against one file's call
// sites during the pipeline's normalized-AST visitor pass (spec §4.2 phase
// 2), grounded on internal/symbollinker's GetNodeText/FindChildByType
// helpers for node-to-source-text extraction.
type Detector struct {
	rules []Rule
}

// NewDetector builds a Detector from rules.
func NewDetector(rules []Rule) *Detector {
	return &Detector{rules: rules}
}

// HandlerContext carries the per-file signals the crypto engine's
// confidence blend and severity adjustment need beyond the call site
// itself: the file's path (test/vendor/generated checks), its resolved
// import names (import-confirmation), and the test-path patterns a
// project configures (spec §4.7 Confidence/Severity adjustment).
type HandlerContext struct {
	Path         string
	Imports      []string
	TestPatterns []string
}

// Handler returns the pipeline.Handler the engine registers against every
// call-expression-shaped node kind. lang is the pipeline.Language string
// recorded on each resulting Finding.
func (d *Detector) Handler(content []byte, fileID types.FileID, lang string, hctx HandlerContext, sink func(Finding)) *pipeline.Handler {
	downgraded := IsTestPath(hctx.Path, hctx.TestPatterns) || isVendorOrGenerated(hctx.Path)

	return &pipeline.Handler{
		Kinds: callExpressionKinds,
		OnEnter: func(node *tree_sitter.Node, ctx *pipeline.VisitContext) {
			site, ok := d.buildCallSite(node, content, lang)
			if !ok {
				return
			}
			for _, r := range d.rulesFor(site.Callee) {
				if r.Language != "*" && r.Language != lang {
					continue
				}
				matched, evidence := true, site.Callee
				argValidated := false
				if r.Check != nil {
					matched, evidence = r.Check(site)
					argValidated = matched
				}
				if !matched {
					continue
				}
				loc := model.Location{
					File:        fileID,
					StartLine:   int(node.StartPosition().Row) + 1,
					StartColumn: int(node.StartPosition().Column) + 1,
					EndLine:     int(node.EndPosition().Row) + 1,
					EndColumn:   int(node.EndPosition().Column) + 1,
				}
				securityContext := securityContextFor(site, hctx.Path)
				suppressed := suppressedNear(content, loc.StartLine)
				confidence := Confidence(ConfidenceFactors{
					Base:            0.6,
					ImportConfirmed: importConfirmed(r.Library, hctx.Imports),
					ArgValidated:    argValidated,
					SecurityContext: securityContext,
				})
				severity := AdjustSeverity(r.Severity, downgraded, securityContext, suppressed)
				sink(Finding{
					Category:        r.Category,
					Severity:        severity,
					Confidence:      confidence,
					Weakness:        r.Weakness,
					Location:        loc,
					Evidence:        evidence,
					Algorithm:       r.Algorithm,
					Remediation:     r.Remediation,
					RemediationCode: r.RemediationCode,
					Language:        lang,
					Library:         r.Library,
					PatternID:       r.ID,
					SecurityContext: securityContext,
					ContentHash:     sha256.Sum256([]byte(site.Callee + evidence)),
				})
			}
		},
	}
}

// importConfirmed reports whether library (a Rule's dotted/bare library
// name, e.g. "hashlib", "crypto") matches one of the file's resolved
// import names exactly or as a dotted suffix, the same matching
// Rule.matchesCallee uses for callee names.
func importConfirmed(library string, imports []string) bool {
	if library == "" {
		return false
	}
	for _, imp := range imports {
		if imp == library || hasSuffixDotted(imp, library) || hasSuffixDotted(library, imp) {
			return true
		}
	}
	return false
}

func (d *Detector) rulesFor(callee string) []Rule {
	var out []Rule
	for _, r := range d.rules {
		if r.matchesCallee(callee) {
			out = append(out, r)
		}
	}
	return out
}

// buildCallSite extracts a CallSite from a call-expression-shaped node: the
// callee is everything before the trailing argument list, the args are
// that list's non-punctuation children rendered back to source text.
func (d *Detector) buildCallSite(node *tree_sitter.Node, content []byte, lang string) (CallSite, bool) {
	count := int(node.ChildCount())
	if count == 0 {
		return CallSite{}, false
	}
	var argList *tree_sitter.Node
	var calleeEnd uint
	found := false
	for i := 0; i < count; i++ {
		child := node.Child(uint(i))
		if child == nil {
			continue
		}
		if argumentListKinds[child.Kind()] {
			argList = child
			found = true
			break
		}
		calleeEnd = child.EndByte()
	}
	if !found {
		return CallSite{}, false
	}

	start := node.StartByte()
	if calleeEnd == 0 || calleeEnd > uint(len(content)) || start > calleeEnd {
		return CallSite{}, false
	}
	callee := string(content[start:calleeEnd])
	if callee == "" {
		return CallSite{}, false
	}

	var args []string
	argCount := int(argList.ChildCount())
	for i := 0; i < argCount; i++ {
		child := argList.Child(uint(i))
		if child == nil || skipArgKinds[child.Kind()] {
			continue
		}
		args = append(args, symbollinker.GetNodeText(child, content))
	}

	return CallSite{Callee: callee, Args: args, Lang: lang}, true
}

// ToDetection adapts a crypto Finding into the shared model.Detection shape
// so the aggregator can dedup and roll it up alongside convention
// violations and convention-free pattern detections (spec §4.8 store
// schema keeps crypto findings in their own table, but the aggregate
// in-memory result merges everything under one Category axis).
func (f Finding) ToDetection() model.Detection {
	h := xxhash.New()
	fmt.Fprintf(h, "%s|%d|%d|%d|%d|%d", f.PatternID, f.Location.File, f.Location.StartLine, f.Location.StartColumn, f.Location.EndLine, f.Location.EndColumn)
	return model.Detection{
		ID:             fmt.Sprintf("%016x", h.Sum64()),
		Category:       model.CategorySecurity,
		PatternID:      f.PatternID,
		Method:         model.MethodVisitorBased,
		Location:       f.Location,
		MatchedText:    f.Evidence,
		BaseConfidence: f.Confidence,
		WeaknessIDs:    append([]int{f.Weakness}, f.AdditionalWeak...),
		SuggestedFix:   f.Remediation,
	}
}
