package contract

import (
	"fmt"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

// ParseGraphQLSDL parses a GraphQL schema-definition-language document into
// a Contract: one Operation per Query/Mutation/Subscription field, one
// ContractType per named type definition.
func ParseGraphQLSDL(source, filename string) (*Contract, error) {
	schema, err := gqlparser.LoadSchema(&ast.Source{Name: filename, Input: source})
	if err != nil {
		return nil, fmt.Errorf("contract: parse graphql sdl: %w", err)
	}

	c := &Contract{
		Paradigm: ParadigmGraphQL,
		Status:   StatusDiscovered,
		Provenance: []Provenance{{
			Kind: ProvenanceSpec, SpecType: "GraphQLSDL",
		}},
	}

	for name, def := range schema.Types {
		if isBuiltinGraphQLType(name) {
			continue
		}
		c.Types = append(c.Types, graphqlDefinitionToType(def))
	}

	for _, root := range []*ast.Definition{schema.Query, schema.Mutation, schema.Subscription} {
		if root == nil {
			continue
		}
		for _, field := range root.Fields {
			c.Operations = append(c.Operations, graphqlFieldToOperation(field))
		}
	}
	return c, nil
}

func isBuiltinGraphQLType(name string) bool {
	switch name {
	case "Query", "Mutation", "Subscription",
		"String", "Int", "Float", "Boolean", "ID",
		"__Schema", "__Type", "__Field", "__InputValue", "__EnumValue", "__Directive", "__TypeKind", "__DirectiveLocation":
		return true
	}
	return len(name) > 2 && name[:2] == "__"
}

func graphqlFieldToOperation(field *ast.FieldDefinition) Operation {
	var params []Parameter
	for _, arg := range field.Arguments {
		params = append(params, Parameter{
			Name:     arg.Name,
			Location: LocationBody,
			Type:     graphqlTypeRefToType(arg.Type),
			Required: arg.Type.NonNull,
		})
	}
	return Operation{
		Name:       field.Name,
		Type:       OperationType{Field: field.Name},
		Output:     graphqlTypeRefToType(field.Type),
		Parameters: params,
		Deprecated: graphqlIsDeprecated(field.Directives),
	}
}

func graphqlIsDeprecated(directives ast.DirectiveList) bool {
	for _, d := range directives {
		if d.Name == "deprecated" {
			return true
		}
	}
	return false
}

// graphqlTypeRefToType converts an *ast.Type (which may be a list, a
// non-null wrapper, or a bare named type) into a ContractType. List/
// non-null wrapping becomes an Array element or is dropped into
// Field.Nullable by the caller — GraphQL's nullability lives on the type
// reference, not a separate flag, so callers that need it read
// ast.Type.NonNull directly rather than through this helper.
func graphqlTypeRefToType(t *ast.Type) *ContractType {
	if t == nil {
		return nil
	}
	if t.Elem != nil {
		return &ContractType{Kind: KindArray, Element: graphqlTypeRefToType(t.Elem)}
	}
	name := t.NamedType
	switch name {
	case "String", "ID":
		return &ContractType{Kind: KindScalar, Scalar: ScalarString}
	case "Int":
		return &ContractType{Kind: KindScalar, Scalar: ScalarInteger}
	case "Float":
		return &ContractType{Kind: KindScalar, Scalar: ScalarFloat}
	case "Boolean":
		return &ContractType{Kind: KindScalar, Scalar: ScalarBoolean}
	default:
		return &ContractType{Kind: KindReference, Name: name, Ref: name}
	}
}

func graphqlDefinitionToType(def *ast.Definition) *ContractType {
	switch def.Kind {
	case ast.Enum:
		var values []string
		for _, v := range def.EnumValues {
			values = append(values, v.Name)
		}
		return &ContractType{Kind: KindEnum, Name: def.Name, Values: values}
	case ast.Union:
		var variants []*ContractType
		for _, t := range def.Types {
			variants = append(variants, &ContractType{Kind: KindReference, Name: t, Ref: t})
		}
		return &ContractType{Kind: KindUnion, Name: def.Name, Variants: variants}
	case ast.Scalar:
		return &ContractType{Kind: KindScalar, Name: def.Name, Scalar: ScalarAny}
	default: // Object, Interface, InputObject
		var fields []Field
		for _, f := range def.Fields {
			fields = append(fields, Field{
				Name:       f.Name,
				Type:       graphqlTypeRefToType(f.Type),
				Required:   f.Type.NonNull,
				Nullable:   !f.Type.NonNull,
				Deprecated: graphqlIsDeprecated(f.Directives),
			})
		}
		return &ContractType{Kind: KindObject, Name: def.Name, Fields: fields}
	}
}
