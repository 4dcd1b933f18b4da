package contract

import (
	"sort"
	"strings"

	"github.com/standardbeagle/chorus/internal/pipeline"
	"github.com/standardbeagle/chorus/internal/types"
)

// RESTRouteExtractor builds REST Operations from the structural-query
// pass's "route.method"/"route.path" captures, the same way
// internal/convention's extractors read result.Structural for their own
// pattern IDs. One registry query per framework family (Express/Koa,
// Flask/FastAPI, Gin/Echo, Spring) tags its route-registration call with
// these two capture names; this extractor is framework-agnostic and only
// needs the captures, not the call shape underneath them — spec §4.6
// names 20+ REST frameworks and 15+ consumer libraries, of which this
// covers the representative call shape (method + path on one
// registration call) that Express, Flask, FastAPI, Gin, Echo, and Spring
// MVC's annotation-derived routes all reduce to; frameworks with a
// materially different route-declaration shape (e.g. Rails' routes.rb
// DSL, which declares routes outside any handler function body) are out
// of scope for this pass and would need a dedicated registry query plus a
// dedicated capture-grouping rule, not a change to this extractor.
type RESTRouteExtractor struct{}

// httpMethods is the closed set a "route.method" capture's text must
// normalize to for the match to be treated as a route registration rather
// than an unrelated string literal that happened to match the query.
var httpMethods = map[string]bool{
	"GET": true, "POST": true, "PUT": true, "PATCH": true,
	"DELETE": true, "HEAD": true, "OPTIONS": true,
}

// ExtractRoutes scans one file's structural matches for route.method/
// route.path capture pairs and returns one Operation per pair, keyed by
// normalized path + method. Matches are paired by line proximity: a
// route.path capture binds to the nearest preceding or same-line
// route.method capture, since registry queries emit both captures from
// the same call expression and tree-sitter reports them in source order.
func (RESTRouteExtractor) ExtractRoutes(fileID types.FileID, result *pipeline.ParseResult) []Operation {
	if result == nil {
		return nil
	}
	var methods []pipeline.StructuralMatch
	var paths []pipeline.StructuralMatch
	for _, m := range result.Structural {
		switch m.Capture {
		case "route.method":
			methods = append(methods, m)
		case "route.path":
			paths = append(paths, m)
		}
	}
	if len(methods) == 0 || len(paths) == 0 {
		return nil
	}
	sort.Slice(methods, func(i, j int) bool { return methods[i].Line < methods[j].Line })
	sort.Slice(paths, func(i, j int) bool { return paths[i].Line < paths[j].Line })

	var ops []Operation
	for _, p := range paths {
		method := nearestMethod(methods, p.Line)
		if method == "" {
			continue
		}
		norm := NormalizePath(p.Text)
		ops = append(ops, Operation{
			Name:       method + " " + norm.Path,
			Type:       OperationType{Path: norm.Path, Method: method},
			Parameters: pathParameters(norm.Path),
			Source:     SourceLocation{File: fileID, Line: p.Line},
		})
	}
	return ops
}

func nearestMethod(methods []pipeline.StructuralMatch, line int) string {
	best := ""
	bestLine := -1
	for _, m := range methods {
		if m.Line > line {
			break
		}
		norm := strings.ToUpper(strings.Trim(m.Text, `"'`))
		if !httpMethods[norm] {
			continue
		}
		if m.Line > bestLine {
			bestLine, best = m.Line, norm
		}
	}
	return best
}

// pathParameters builds Path-location Parameters from an already-normalized
// path's ":name" segments.
func pathParameters(normalizedPath string) []Parameter {
	var params []Parameter
	for _, seg := range splitSegments(normalizedPath) {
		if !isParamSegment(seg) {
			continue
		}
		name := strings.TrimPrefix(seg, ":")
		if name == "" {
			continue
		}
		params = append(params, Parameter{Name: name, Location: LocationPath, Required: true})
	}
	return params
}
