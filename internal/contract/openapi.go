package contract

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// openAPIDoc is the subset of an OpenAPI 2 (Swagger) or OpenAPI 3 document
// this parser reads. Both versions share enough shape (paths, a
// definitions/components.schemas map) that one loosely-typed struct covers
// both; ParseOpenAPI branches on the "swagger" vs "openapi" version key to
// decide how to resolve $ref targets.
type openAPIInfo struct {
	Version string `yaml:"version"`
}

type openAPIComponents struct {
	Schemas         map[string]openAPISchema `yaml:"schemas"`
	SecuritySchemes map[string]any           `yaml:"securitySchemes"`
}

type openAPIDoc struct {
	Swagger     string                                 `yaml:"swagger"`
	OpenAPI     string                                 `yaml:"openapi"`
	Info        openAPIInfo                            `yaml:"info"`
	Paths       map[string]map[string]openAPIOperation `yaml:"paths"`
	Definitions map[string]openAPISchema               `yaml:"definitions"` // Swagger 2
	Components  openAPIComponents                      `yaml:"components"`  // OpenAPI 3
}

type openAPIOperation struct {
	OperationID string                     `yaml:"operationId"`
	Summary     string                     `yaml:"summary"`
	Deprecated  bool                       `yaml:"deprecated"`
	Parameters  []openAPIParameter         `yaml:"parameters"`
	Security    []map[string][]string      `yaml:"security"`
	RequestBody *openAPIRequestBody        `yaml:"requestBody"` // OpenAPI 3
	Responses   map[string]openAPIResponse `yaml:"responses"`
}

type openAPIParameter struct {
	Name     string         `yaml:"name"`
	In       string         `yaml:"in"`
	Required bool           `yaml:"required"`
	Schema   *openAPISchema `yaml:"schema"`
	Type     string         `yaml:"type"` // Swagger 2 inlines the type on the parameter itself
	Default  any            `yaml:"default"`
}

type openAPIMediaType struct {
	Schema openAPISchema `yaml:"schema"`
}

type openAPIRequestBody struct {
	Content map[string]openAPIMediaType `yaml:"content"`
}

type openAPIResponse struct {
	Description string                      `yaml:"description"`
	Schema      *openAPISchema              `yaml:"schema"`  // Swagger 2
	Content     map[string]openAPIMediaType `yaml:"content"` // OpenAPI 3
}

// openAPISchema mirrors the JSON-Schema vocabulary OpenAPI embeds. chorus
// converts a resolved ContractType to github.com/google/jsonschema-go's
// Schema type at the boundary where a type is handed to an external
// caller (see TypeToJSONSchema in jsonschema.go); internally, parsing
// stays on this lighter YAML-tag-annotated struct since yaml.v3 cannot
// unmarshal directly into jsonschema.Schema's json-tagged fields.
type openAPISchema struct {
	Ref        string                   `yaml:"$ref"`
	Type       string                   `yaml:"type"`
	Format     string                   `yaml:"format"`
	Properties map[string]openAPISchema `yaml:"properties"`
	Items      *openAPISchema           `yaml:"items"`
	Required   []string                 `yaml:"required"`
	Enum       []string                 `yaml:"enum"`
	Nullable   bool                     `yaml:"nullable"`
	Default    any                      `yaml:"default"`
	Pattern    string                   `yaml:"pattern"`
	MinLength  int                      `yaml:"minLength"`
	MaxLength  int                      `yaml:"maxLength"`
	Minimum    float64                  `yaml:"minimum"`
	Maximum    float64                  `yaml:"maximum"`
}

// ParseOpenAPI parses an OpenAPI 2 (Swagger) or OpenAPI 3 YAML/JSON
// document (both are valid YAML) into a Contract with one Operation per
// path+method and one ContractType per named schema.
func ParseOpenAPI(data []byte) (*Contract, error) {
	var doc openAPIDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("contract: parse openapi: %w", err)
	}

	specType, version := "OpenAPI3", doc.OpenAPI
	if doc.Swagger != "" {
		specType, version = "OpenAPI2", doc.Swagger
	}

	schemas := doc.Definitions
	if len(doc.Components.Schemas) > 0 {
		schemas = doc.Components.Schemas
	}
	types := make(map[string]*ContractType, len(schemas))
	for name, s := range schemas {
		types[name] = schemaToType(name, s, schemas)
	}

	c := &Contract{
		Paradigm: ParadigmREST,
		Status:   StatusDiscovered,
		Provenance: []Provenance{{
			Kind: ProvenanceSpec, SpecType: specType, SpecVersion: version,
		}},
	}
	for _, t := range types {
		c.Types = append(c.Types, t)
	}

	var paths []string
	for p := range doc.Paths {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, rawPath := range paths {
		methods := doc.Paths[rawPath]
		norm := NormalizePath(rawPath)
		var methodNames []string
		for m := range methods {
			methodNames = append(methodNames, m)
		}
		sort.Strings(methodNames)
		for _, method := range methodNames {
			op := methods[method]
			c.Operations = append(c.Operations, buildOpenAPIOperation(norm.Path, method, op, schemas))
		}
	}
	return c, nil
}

func buildOpenAPIOperation(path, method string, op openAPIOperation, schemas map[string]openAPISchema) Operation {
	name := op.OperationID
	if name == "" {
		name = strings.ToUpper(method) + " " + path
	}

	var params []Parameter
	for _, p := range op.Parameters {
		loc := ParamLocation(strings.Title(strings.ToLower(p.In)))
		if p.In == "body" {
			loc = LocationBody
		}
		var t *ContractType
		if p.Schema != nil {
			t = schemaToType(p.Name, *p.Schema, schemas)
		} else if p.Type != "" {
			t = &ContractType{Kind: KindScalar, Scalar: CanonicalScalar(p.Type)}
		}
		params = append(params, Parameter{Name: p.Name, Location: loc, Type: t, Required: p.Required})
	}

	var input *ContractType
	if op.RequestBody != nil {
		for _, content := range op.RequestBody.Content {
			input = schemaToType(name+"Request", content.Schema, schemas)
			break
		}
	}

	var output *ContractType
	if resp, ok := op.Responses["200"]; ok {
		output = responseType(name, resp, schemas)
	} else if resp, ok := op.Responses["201"]; ok {
		output = responseType(name, resp, schemas)
	}

	return Operation{
		Name:         name,
		Type:         OperationType{Path: path, Method: strings.ToUpper(method)},
		Input:        input,
		Output:       output,
		Parameters:   params,
		AuthRequired: len(op.Security) > 0,
		Deprecated:   op.Deprecated,
	}
}

func responseType(opName string, resp openAPIResponse, schemas map[string]openAPISchema) *ContractType {
	if resp.Schema != nil {
		return schemaToType(opName+"Response", *resp.Schema, schemas)
	}
	for _, content := range resp.Content {
		return schemaToType(opName+"Response", content.Schema, schemas)
	}
	return nil
}

// schemaToType converts one openAPISchema node into a ContractType,
// recursing into object properties and array items and resolving local
// $ref pointers against schemas.
func schemaToType(name string, s openAPISchema, schemas map[string]openAPISchema) *ContractType {
	if s.Ref != "" {
		refName := s.Ref[strings.LastIndex(s.Ref, "/")+1:]
		return &ContractType{Kind: KindReference, Name: refName, Ref: refName}
	}
	if len(s.Enum) > 0 {
		return &ContractType{Kind: KindEnum, Name: name, Values: s.Enum}
	}
	switch s.Type {
	case "array":
		var elem *ContractType
		if s.Items != nil {
			elem = schemaToType(name+"Item", *s.Items, schemas)
		}
		return &ContractType{Kind: KindArray, Name: name, Element: elem}
	case "object", "":
		if len(s.Properties) == 0 {
			return &ContractType{Kind: KindScalar, Name: name, Scalar: ScalarAny}
		}
		required := make(map[string]bool, len(s.Required))
		for _, r := range s.Required {
			required[r] = true
		}
		var propNames []string
		for p := range s.Properties {
			propNames = append(propNames, p)
		}
		sort.Strings(propNames)
		var fields []Field
		for _, p := range propNames {
			prop := s.Properties[p]
			fields = append(fields, Field{
				Name:       p,
				Type:       schemaToType(name+"."+p, prop, schemas),
				Required:   required[p],
				Nullable:   prop.Nullable,
				Constraints: constraintsFromSchema(prop),
			})
		}
		return &ContractType{Kind: KindObject, Name: name, Fields: fields}
	default:
		return &ContractType{Kind: KindScalar, Name: name, Scalar: CanonicalScalar(s.Type)}
	}
}

func constraintsFromSchema(s openAPISchema) Constraints {
	c := Constraints{Pattern: s.Pattern, Format: s.Format}
	if s.MinLength != 0 || s.MaxLength != 0 {
		c.HasLength = true
		c.MinLength, c.MaxLength = s.MinLength, s.MaxLength
	}
	if s.Minimum != 0 || s.Maximum != 0 {
		c.HasRange = true
		c.Minimum, c.Maximum = s.Minimum, s.Maximum
	}
	return c
}
