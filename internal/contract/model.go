// Package contract implements the multi-paradigm contract engine (spec §3,
// §4.6): schema-first parsing of OpenAPI/Swagger, GraphQL SDL, Protocol
// Buffer, and AsyncAPI definitions; code-first extraction of REST routes
// from parsed source; path normalization and similarity-based endpoint
// matching; recursive field comparison; paradigm-aware breaking-change
// classification; and seven-signal contract confidence.
//
// Grounded on internal/parser/community_parser.go's named-adapter registry
// (reused here for both schema parsers and code-first extractors) and
// internal/search/requirements_analyzer.go's additive weighted-factor
// scoring shape (reused for path similarity and contract confidence).
package contract

import (
	"time"

	"github.com/standardbeagle/chorus/internal/model"
	"github.com/standardbeagle/chorus/internal/types"
)

// Paradigm is the closed set of contract paradigms spec §3 names.
type Paradigm string

const (
	ParadigmREST           Paradigm = "REST"
	ParadigmGraphQL        Paradigm = "GraphQL"
	ParadigmGRPC           Paradigm = "gRPC"
	ParadigmWebSocket      Paradigm = "WebSocket"
	ParadigmEventDriven    Paradigm = "EventDriven"
	ParadigmTypedProcedure Paradigm = "TypedProcedure"
)

// Status is a Contract's lifecycle state.
type Status string

const (
	StatusDiscovered Status = "Discovered"
	StatusVerified   Status = "Verified"
	StatusMismatch   Status = "Mismatch"
	StatusIgnored    Status = "Ignored"
	StatusDeprecated Status = "Deprecated"
)

// ParamLocation is where a Parameter is carried on the wire.
type ParamLocation string

const (
	LocationPath   ParamLocation = "Path"
	LocationQuery  ParamLocation = "Query"
	LocationHeader ParamLocation = "Header"
	LocationCookie ParamLocation = "Cookie"
	LocationBody   ParamLocation = "Body"
)

// Scalar is the canonical scalar set every language/framework-specific
// type name normalizes to before comparison (spec §4.6 recursive field
// comparison).
type Scalar string

const (
	ScalarString   Scalar = "String"
	ScalarInteger  Scalar = "Integer"
	ScalarFloat    Scalar = "Float"
	ScalarBoolean  Scalar = "Boolean"
	ScalarDateTime Scalar = "DateTime"
	ScalarBinary   Scalar = "Binary"
	ScalarNull     Scalar = "Null"
	ScalarAny      Scalar = "Any"
)

// TypeKind is the closed set of shapes a ContractType can take (spec §3).
type TypeKind string

const (
	KindObject    TypeKind = "Object"
	KindEnum      TypeKind = "Enum"
	KindUnion     TypeKind = "Union"
	KindArray     TypeKind = "Array"
	KindMap       TypeKind = "Map"
	KindScalar    TypeKind = "Scalar"
	KindReference TypeKind = "Reference"
)

// Constraints carries a field's validation rules, spec §3's "constraints
// (length/range/pattern/enum/format/uniqueness/size)".
type Constraints struct {
	MinLength, MaxLength int
	HasLength            bool
	Minimum, Maximum     float64
	HasRange             bool
	Pattern              string
	EnumValues           []string
	Format               string
	Unique               bool
	MinSize, MaxSize     int
	HasSize              bool
}

// Field is one member of an Object ContractType.
type Field struct {
	Name        string
	Type        *ContractType
	Required    bool
	Nullable    bool
	Default     string
	Description string
	Deprecated  bool
	Constraints Constraints
	SourceLine  int
}

// ContractType is the recursive type shape spec §3 describes: Object
// (named Fields), Enum (Values), Union (Variants), Array (Element), Map
// (Key/Value), Scalar (one of the eight canonical scalars), or Reference
// (a named forward/external reference resolved against Contract.Types).
type ContractType struct {
	Kind     TypeKind
	Name     string
	Fields   []Field         // Kind == Object
	Values   []string        // Kind == Enum
	Variants []*ContractType // Kind == Union
	Element  *ContractType   // Kind == Array
	Key      *ContractType   // Kind == Map
	Value    *ContractType   // Kind == Map
	Scalar   Scalar          // Kind == Scalar
	Ref      string          // Kind == Reference
}

// Parameter is one operation input, carried at a specific wire location.
type Parameter struct {
	Name     string
	Location ParamLocation
	Type     *ContractType
	Required bool
	Default  string
}

// OperationType carries the paradigm-specific variant spec §3 names: a
// REST path+method, a GraphQL field, a gRPC service+method, a WebSocket/
// EventDriven channel+event, or a TypedProcedure procedure name. Only the
// fields relevant to Paradigm are populated; the rest stay zero.
type OperationType struct {
	Path    string // REST
	Method  string // REST
	Field   string // GraphQL
	Service string // gRPC
	RPC     string // gRPC
	Channel string // WebSocket / EventDriven
	Event   string // WebSocket / EventDriven
}

// SourceLocation anchors an Operation to the file/line it was extracted or
// declared at.
type SourceLocation struct {
	File      types.FileID
	Line      int
	Framework string
}

// Operation is one Contract entry point (spec §3 Contract operation).
type Operation struct {
	Name            string
	Type            OperationType
	Input           *ContractType
	Output          *ContractType
	Parameters      []Parameter
	AuthRequired    bool
	AuthScheme      string
	Deprecated      bool
	DeprecationNote string
	Source          SourceLocation
}

// ProvenanceKind distinguishes how a Contract was discovered.
type ProvenanceKind string

const (
	ProvenanceCode         ProvenanceKind = "Code"
	ProvenanceSpec         ProvenanceKind = "Spec"
	ProvenanceContractTest ProvenanceKind = "ContractTest"
	ProvenanceBoth         ProvenanceKind = "Both"
)

// Provenance records where a Contract's definition came from.
type Provenance struct {
	Kind        ProvenanceKind
	File        types.FileID
	Line        int
	Framework   string
	SpecType    string // "OpenAPI2", "OpenAPI3", "AsyncAPI", "GraphQLSDL", "Proto"
	SpecVersion string
}

// Consumer is one caller of a Contract discovered elsewhere in the
// codebase (or a different service, recorded by name only).
type Consumer struct {
	Name       string
	File       types.FileID
	Line       int
	LastSeen   time.Time
	Verified   bool
}

// Contract is the top-level entity spec §3 describes: one API surface,
// identified by a generated ID, with its operations, types, provenance,
// consumers, and the mismatches/breaking-changes accumulated against it.
type Contract struct {
	ID              string
	Paradigm        Paradigm
	Service         string
	Operations      []Operation
	Types           []*ContractType
	Provenance      []Provenance
	Status          Status
	Confidence      float64
	Consumers       []Consumer
	Mismatches      []Mismatch
	BreakingChanges []BreakingChange
	LastVerified    time.Time
	NeverVerified   bool
}

// Severity reuses model.Severity so contract findings slot into the same
// aggregation axis as convention violations.
type Severity = model.Severity
