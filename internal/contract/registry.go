package contract

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/standardbeagle/chorus/internal/pipeline"
	"github.com/standardbeagle/chorus/internal/types"
)

// SchemaParser parses one schema-first definition format (OpenAPI,
// AsyncAPI, GraphQL SDL, Protocol Buffers) into a Contract.
type SchemaParser func(data []byte, filename string) (*Contract, error)

// CodeExtractor builds Contract Operations from one file's structural-
// query matches, the code-first counterpart to a SchemaParser.
type CodeExtractor interface {
	ExtractRoutes(fileID types.FileID, result *pipeline.ParseResult) []Operation
}

// ParserRegistry is the named-adapter registry the contract engine
// dispatches schema-first parsing and code-first extraction through, one
// entry per file extension/paradigm. Grounded on
// internal/parser/community_parser.go's CommunityParserAdapter registry
// (Register/GetAdapterForExtension/ListAdapters), adapted here to hold
// two adapter kinds — schema parsers keyed by extension, code extractors
// keyed by paradigm — instead of one tree-sitter-grammar adapter per
// language.
type ParserRegistry struct {
	schemaByExt  map[string]schemaAdapter
	schemaByName map[string]SchemaParser
	extractors   map[Paradigm]CodeExtractor
}

type schemaAdapter struct {
	name  string
	parse SchemaParser
}

// NewParserRegistry returns a registry pre-populated with chorus's
// built-in schema parsers (OpenAPI/Swagger, AsyncAPI, GraphQL SDL,
// Protocol Buffers) and code extractors (REST).
func NewParserRegistry() *ParserRegistry {
	r := &ParserRegistry{
		schemaByExt:  make(map[string]schemaAdapter),
		schemaByName: make(map[string]SchemaParser),
		extractors:   make(map[Paradigm]CodeExtractor),
	}
	r.RegisterSchemaParser("openapi", []string{".yaml", ".yml", ".json"}, func(data []byte, _ string) (*Contract, error) {
		return ParseOpenAPI(data)
	})
	r.RegisterSchemaParser("asyncapi", []string{".yaml", ".yml"}, func(data []byte, _ string) (*Contract, error) {
		return ParseAsyncAPI(data)
	})
	r.RegisterSchemaParser("graphql", []string{".graphql", ".graphqls", ".gql"}, func(data []byte, filename string) (*Contract, error) {
		return ParseGraphQLSDL(string(data), filename)
	})
	r.RegisterSchemaParser("proto", []string{".proto"}, func(data []byte, _ string) (*Contract, error) {
		return ParseProto(string(data))
	})
	r.RegisterExtractor(ParadigmREST, RESTRouteExtractor{})
	return r
}

// RegisterSchemaParser binds name to every extension it handles. A later
// registration for an already-bound extension overrides the earlier one,
// the same override-by-key behavior internal/registry.Registry uses for
// pattern IDs.
func (r *ParserRegistry) RegisterSchemaParser(name string, extensions []string, parse SchemaParser) {
	for _, ext := range extensions {
		r.schemaByExt[ext] = schemaAdapter{name: name, parse: parse}
	}
	r.schemaByName[name] = parse
}

// ParseSchemaFileAs dispatches by spec type name ("openapi", "asyncapi",
// "graphql", "proto") rather than by file extension — the disambiguator
// DiscoverSpecFiles' filename heuristic already resolved, needed because
// OpenAPI and AsyncAPI share the .yaml/.yml extension and would otherwise
// shadow one another in schemaByExt.
func (r *ParserRegistry) ParseSchemaFileAs(specType string, data []byte, filename string) (*Contract, error) {
	parse, ok := r.schemaByName[specType]
	if !ok {
		return nil, fmt.Errorf("contract: no schema parser registered for spec type %q", specType)
	}
	return parse(data, filename)
}

// RegisterExtractor binds a CodeExtractor to the paradigm it produces
// Operations for.
func (r *ParserRegistry) RegisterExtractor(paradigm Paradigm, extractor CodeExtractor) {
	r.extractors[paradigm] = extractor
}

// ParseSchemaFile dispatches data to the schema parser registered for
// path's extension. Both OpenAPI and AsyncAPI share the .yaml/.yml
// extension; when both are registered for an extension the most recent
// registration wins, so callers that need to support both must
// disambiguate by content (e.g. probing for an "asyncapi:" key) before
// calling in, the same way ParseOpenAPI vs ParseAsyncAPI would otherwise
// both accept the same bytes.
func (r *ParserRegistry) ParseSchemaFile(path string, data []byte) (*Contract, error) {
	ext := strings.ToLower(filepath.Ext(path))
	adapter, ok := r.schemaByExt[ext]
	if !ok {
		return nil, fmt.Errorf("contract: no schema parser registered for extension %q", ext)
	}
	return adapter.parse(data, path)
}

// ExtractorFor returns the CodeExtractor registered for paradigm, or nil
// if none is registered.
func (r *ParserRegistry) ExtractorFor(paradigm Paradigm) CodeExtractor {
	return r.extractors[paradigm]
}

// ListSchemaParsers returns the distinct adapter names registered, sorted,
// for diagnostics (spec §4.6's "what formats can chorus read").
func (r *ParserRegistry) ListSchemaParsers() []string {
	seen := make(map[string]bool)
	var names []string
	for _, a := range r.schemaByExt {
		if !seen[a.name] {
			seen[a.name] = true
			names = append(names, a.name)
		}
	}
	sort.Strings(names)
	return names
}
