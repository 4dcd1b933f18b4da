package contract

import (
	"math"
	"testing"

	"github.com/standardbeagle/chorus/internal/model"
)

func TestNormalizePathSyntaxes(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"colon", "/users/:id", "/users/:id"},
		{"curly", "/users/{id}", "/users/:id"},
		{"angle", "/users/<id>", "/users/:id"},
		{"typed-bracket", "/users/[int:id]", "/users/:id"},
		{"template-literal", "/users/${id}", "/users/:id"},
		{"trailing-slash", "/users/", "/users"},
		{"empty", "", "/"},
		{"no-leading-slash", "users/:id", "/users/:id"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := NormalizePath(c.in)
			if got.Path != c.want {
				t.Fatalf("NormalizePath(%q) = %q, want %q", c.in, got.Path, c.want)
			}
		})
	}
}

func TestNormalizePathExtractsVersion(t *testing.T) {
	got := NormalizePath("/v2/users/:id")
	if got.Version != "v2" {
		t.Fatalf("expected version v2, got %q", got.Version)
	}
	if got.Path != "/users/:id" {
		t.Fatalf("expected version segment stripped, got %q", got.Path)
	}
}

func TestPathSimilarityExactMatch(t *testing.T) {
	w := DefaultSimilarityWeights()
	if s := PathSimilarity("/users/:id", "/users/:id", w); s != 1.0 {
		t.Fatalf("expected exact match score 1.0, got %v", s)
	}
}

func TestPathSimilarityWeightedFactors(t *testing.T) {
	w := DefaultSimilarityWeights()
	s := PathSimilarity("/users/:id", "/users/:userId", w)
	if s < 0.9 {
		t.Fatalf("expected two paths differing only in param name to score highly, got %v", s)
	}

	s2 := PathSimilarity("/users/:id", "/orders/:id", w)
	if s2 >= s {
		t.Fatalf("expected /orders/:id to score lower than /users/:userId against /users/:id, got %v >= %v", s2, s)
	}
}

func TestPathSimilarityUnrelatedPaths(t *testing.T) {
	w := DefaultSimilarityWeights()
	s := PathSimilarity("/users/:id", "/billing/invoices/:invoiceId/lines", w)
	if s > 0.4 {
		t.Fatalf("expected unrelated paths to score low, got %v", s)
	}
}

func TestCanonicalScalar(t *testing.T) {
	cases := map[string]Scalar{
		"string": ScalarString, "str": ScalarString,
		"int64": ScalarInteger, "long": ScalarInteger,
		"double": ScalarFloat, "number": ScalarFloat,
		"bool": ScalarBoolean,
		"time.Time": ScalarAny, // unrecognized exact spelling falls back to Any
		"timestamp": ScalarDateTime,
		"[]byte":    ScalarBinary,
		"unknownxyz": ScalarAny,
	}
	for in, want := range cases {
		if got := CanonicalScalar(in); got != want {
			t.Errorf("CanonicalScalar(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestCompareFieldsMismatchTable(t *testing.T) {
	provider := []Field{
		{Name: "id", Type: &ContractType{Kind: KindScalar, Scalar: ScalarInteger}, Required: true},
		{Name: "email", Type: &ContractType{Kind: KindScalar, Scalar: ScalarString}, Required: true},
		{Name: "legacy_field", Type: &ContractType{Kind: KindScalar, Scalar: ScalarString}},
	}
	consumer := []Field{
		{Name: "id", Type: &ContractType{Kind: KindScalar, Scalar: ScalarString}, Required: false},
		{Name: "new_field", Type: &ContractType{Kind: KindScalar, Scalar: ScalarString}},
	}

	mismatches := CompareFields("", provider, consumer)

	byType := make(map[MismatchType][]Mismatch)
	for _, m := range mismatches {
		byType[m.Type] = append(byType[m.Type], m)
	}

	if len(byType[MismatchTypeMismatch]) != 1 {
		t.Fatalf("expected 1 type mismatch (id int vs string), got %d", len(byType[MismatchTypeMismatch]))
	}
	if byType[MismatchTypeMismatch][0].Severity != model.SeverityError {
		t.Fatalf("expected TypeMismatch severity Error, got %v", byType[MismatchTypeMismatch][0].Severity)
	}

	if len(byType[MismatchOptionalityMismatch]) != 1 {
		t.Fatalf("expected 1 optionality mismatch (id required differs), got %d", len(byType[MismatchOptionalityMismatch]))
	}

	if len(byType[MismatchMissingInConsumer]) != 1 || byType[MismatchMissingInConsumer][0].FieldPath != "email" {
		t.Fatalf("expected email missing-in-consumer, got %+v", byType[MismatchMissingInConsumer])
	}

	if len(byType[MismatchMissingInProvider]) != 1 || byType[MismatchMissingInProvider][0].FieldPath != "new_field" {
		t.Fatalf("expected new_field missing-in-provider, got %+v", byType[MismatchMissingInProvider])
	}

	// legacy_field present in both provider lists implicitly: absent from
	// consumer entirely, so it should also be flagged missing-in-consumer.
	foundLegacy := false
	for _, m := range byType[MismatchMissingInConsumer] {
		if m.FieldPath == "legacy_field" {
			foundLegacy = true
		}
	}
	if !foundLegacy {
		t.Fatal("expected legacy_field flagged missing-in-consumer")
	}
}

func TestClassifyOperationChangeRESTRequiredFieldAdded(t *testing.T) {
	before := &Operation{
		Name:   "GetUser",
		Output: &ContractType{Kind: KindObject, Fields: []Field{{Name: "id", Type: &ContractType{Kind: KindScalar, Scalar: ScalarInteger}}}},
	}
	after := &Operation{
		Name: "GetUser",
		Output: &ContractType{Kind: KindObject, Fields: []Field{
			{Name: "id", Type: &ContractType{Kind: KindScalar, Scalar: ScalarInteger}},
			{Name: "tenantId", Type: &ContractType{Kind: KindScalar, Scalar: ScalarString}, Required: true},
		}},
	}
	changes := ClassifyOperationChange(ParadigmREST, "GetUser", before, after)

	found := false
	for _, c := range changes {
		if c.Type == ChangeRequiredFieldAdded && c.Severity == SeverityBreaking {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a breaking RequiredFieldAdded change, got %+v", changes)
	}
}

func TestClassifyOperationChangeGraphQLFieldRemovalAlwaysBreaking(t *testing.T) {
	before := &Operation{
		Name:   "user",
		Output: &ContractType{Kind: KindObject, Fields: []Field{{Name: "nickname", Type: &ContractType{Kind: KindScalar, Scalar: ScalarString}}}},
	}
	after := &Operation{
		Name:   "user",
		Output: &ContractType{Kind: KindObject},
	}
	changes := ClassifyOperationChange(ParadigmGraphQL, "user", before, after)

	if len(changes) != 1 || changes[0].Type != ChangeFieldRemoved || changes[0].Severity != SeverityBreaking {
		t.Fatalf("expected exactly one Breaking FieldRemoved change for GraphQL, got %+v", changes)
	}
}

func TestClassifyOperationChangeGRPCFieldRemovalConditional(t *testing.T) {
	before := &Operation{
		Name:   "GetUser",
		Output: &ContractType{Kind: KindObject, Fields: []Field{{Name: "legacy", Type: &ContractType{Kind: KindScalar, Scalar: ScalarString}, Required: true}}},
	}
	after := &Operation{
		Name:   "GetUser",
		Output: &ContractType{Kind: KindObject},
	}
	changes := ClassifyOperationChange(ParadigmGRPC, "GetUser", before, after)

	if len(changes) != 1 || changes[0].Severity != SeverityConditional {
		t.Fatalf("expected Conditional severity for gRPC field removal, got %+v", changes)
	}
}

func TestClassifyProtoFieldNumberChangeAlwaysBreaking(t *testing.T) {
	c := ClassifyProtoFieldNumberChange("GetUser", "user_id", 3, 7, true)
	if c.Severity != SeverityBreaking || c.Type != ChangeProtoFieldNumberReused {
		t.Fatalf("expected Breaking ProtoFieldNumberReused, got %+v", c)
	}
}

func TestOperationRemovedIsBreaking(t *testing.T) {
	before := &Operation{Name: "DeleteAccount"}
	changes := ClassifyOperationChange(ParadigmREST, "DeleteAccount", before, nil)
	if len(changes) != 1 || changes[0].Type != ChangeOperationRemoved || changes[0].Severity != SeverityBreaking {
		t.Fatalf("expected one Breaking OperationRemoved change, got %+v", changes)
	}
}

func TestConfidenceBlendAndDecay(t *testing.T) {
	signals := ConfidenceSignals{
		MatchConfidence: 1.0, ExtractionConfidence: 1.0, SourceQuality: 1.0,
		TestCoverage: 1.0, HistoricalStability: 1.0, UsageFrequency: 1.0, CrossValidation: 1.0,
	}
	fresh := Confidence(signals, 0, false)
	if math.Abs(fresh-1.0) > 1e-9 {
		t.Fatalf("expected perfect signals with no decay to score 1.0, got %v", fresh)
	}

	decayed := Confidence(signals, 100, false)
	if decayed >= fresh {
		t.Fatalf("expected decay to lower confidence, got decayed=%v fresh=%v", decayed, fresh)
	}

	neverVerified := Confidence(signals, 0, true)
	if math.Abs(neverVerified-0.95) > 1e-9 {
		t.Fatalf("expected never-verified flat 5%% penalty (0.95), got %v", neverVerified)
	}
}

func TestConfidenceClampedToUnitRange(t *testing.T) {
	zero := ConfidenceSignals{}
	if c := Confidence(zero, 0, false); c != 0 {
		t.Fatalf("expected zero signals to score 0, got %v", c)
	}
}

func TestSourceQualityOrdering(t *testing.T) {
	if SourceQualityFor(ProvenanceBoth) <= SourceQualityFor(ProvenanceSpec) {
		t.Fatal("expected Both to outscore Spec-only")
	}
	if SourceQualityFor(ProvenanceSpec) <= SourceQualityFor(ProvenanceCode) {
		t.Fatal("expected Spec to outscore Code-only")
	}
	if SourceQualityFor(ProvenanceCode) <= SourceQualityFor(ProvenanceKind("unknown")) {
		t.Fatal("expected Code to outscore an unrecognized provenance kind")
	}
}

func TestParseOpenAPIBuildsOperationsAndTypes(t *testing.T) {
	doc := []byte(`
openapi: "3.0.0"
info:
  version: "1.0"
paths:
  /users/{id}:
    get:
      operationId: getUser
      parameters:
        - name: id
          in: path
          required: true
          schema:
            type: string
      responses:
        "200":
          content:
            application/json:
              schema:
                $ref: "#/components/schemas/User"
components:
  schemas:
    User:
      type: object
      required: [id, email]
      properties:
        id:
          type: string
        email:
          type: string
`)
	c, err := ParseOpenAPI(doc)
	if err != nil {
		t.Fatalf("ParseOpenAPI returned error: %v", err)
	}
	if c.Paradigm != ParadigmREST {
		t.Fatalf("expected REST paradigm, got %v", c.Paradigm)
	}
	if len(c.Operations) != 1 {
		t.Fatalf("expected 1 operation, got %d", len(c.Operations))
	}
	op := c.Operations[0]
	if op.Type.Method != "GET" || op.Type.Path != "/users/:id" {
		t.Fatalf("unexpected operation shape: %+v", op.Type)
	}
	if len(op.Parameters) != 1 || op.Parameters[0].Location != LocationPath {
		t.Fatalf("expected 1 path parameter, got %+v", op.Parameters)
	}

	var userType *ContractType
	for _, ty := range c.Types {
		if ty.Name == "User" {
			userType = ty
		}
	}
	if userType == nil {
		t.Fatal("expected a User type to be built from components.schemas")
	}
	if len(userType.Fields) != 2 {
		t.Fatalf("expected 2 fields on User, got %d", len(userType.Fields))
	}
}

func TestParseProtoMessagesAndRPCs(t *testing.T) {
	src := `
syntax = "proto3";
package users.v1;

message GetUserRequest {
  string user_id = 1;
}

message GetUserResponse {
  string user_id = 1;
  string email = 2;
  repeated string roles = 3;
}

service UserService {
  rpc GetUser (GetUserRequest) returns (GetUserResponse);
}
`
	c, err := ParseProto(src)
	if err != nil {
		t.Fatalf("ParseProto returned error: %v", err)
	}
	if c.Paradigm != ParadigmGRPC {
		t.Fatalf("expected gRPC paradigm, got %v", c.Paradigm)
	}
	if c.Service != "users.v1" {
		t.Fatalf("expected package users.v1, got %q", c.Service)
	}
	if len(c.Operations) != 1 {
		t.Fatalf("expected 1 RPC operation, got %d", len(c.Operations))
	}
	if c.Operations[0].Name != "UserService.GetUser" {
		t.Fatalf("unexpected operation name %q", c.Operations[0].Name)
	}

	var resp *ContractType
	for _, ty := range c.Types {
		if ty.Name == "GetUserResponse" {
			resp = ty
		}
	}
	if resp == nil || len(resp.Fields) != 3 {
		t.Fatalf("expected GetUserResponse with 3 fields, got %+v", resp)
	}
	for _, f := range resp.Fields {
		if f.Name == "roles" && f.Type.Kind != KindArray {
			t.Fatalf("expected repeated field roles to be KindArray, got %v", f.Type.Kind)
		}
	}
}

func TestParseGraphQLSDLBuildsOperationsAndTypes(t *testing.T) {
	sdl := `
type User {
  id: ID!
  email: String!
  nickname: String
}

type Query {
  user(id: ID!): User
}
`
	c, err := ParseGraphQLSDL(sdl, "schema.graphql")
	if err != nil {
		t.Fatalf("ParseGraphQLSDL returned error: %v", err)
	}
	if c.Paradigm != ParadigmGraphQL {
		t.Fatalf("expected GraphQL paradigm, got %v", c.Paradigm)
	}
	if len(c.Operations) != 1 || c.Operations[0].Name != "user" {
		t.Fatalf("expected 1 operation named user, got %+v", c.Operations)
	}
	if len(c.Operations[0].Parameters) != 1 || !c.Operations[0].Parameters[0].Required {
		t.Fatalf("expected required id argument, got %+v", c.Operations[0].Parameters)
	}

	var userType *ContractType
	for _, ty := range c.Types {
		if ty.Name == "User" {
			userType = ty
		}
	}
	if userType == nil || len(userType.Fields) != 3 {
		t.Fatalf("expected User object type with 3 fields, got %+v", userType)
	}
}

func TestParserRegistryDispatchesByExtension(t *testing.T) {
	r := NewParserRegistry()
	names := r.ListSchemaParsers()
	if len(names) == 0 {
		t.Fatal("expected at least one registered schema parser")
	}

	_, err := r.ParseSchemaFile("unsupported.xml", []byte("<x/>"))
	if err == nil {
		t.Fatal("expected an error for an unregistered extension")
	}

	if r.ExtractorFor(ParadigmREST) == nil {
		t.Fatal("expected a REST code extractor to be registered")
	}
}
