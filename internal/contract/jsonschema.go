package contract

import "github.com/google/jsonschema-go/jsonschema"

// TypeToJSONSchema converts a ContractType into a github.com/google/
// jsonschema-go Schema, the shape external callers (editors, dashboards)
// expect when a contract type crosses the process boundary (spec §6's
// external-interface surface). This is the one place chorus's internal
// ContractType meets the ecosystem's JSON-Schema representation; parsing
// in the other direction stays on the lighter openAPISchema struct (see
// schemaToType) since yaml.v3 cannot unmarshal directly into
// jsonschema.Schema's json-tagged fields.
func TypeToJSONSchema(t *ContractType) *jsonschema.Schema {
	if t == nil {
		return nil
	}
	switch t.Kind {
	case KindObject:
		props := make(map[string]*jsonschema.Schema, len(t.Fields))
		var required []string
		for _, f := range t.Fields {
			props[f.Name] = fieldToJSONSchema(f)
			if f.Required {
				required = append(required, f.Name)
			}
		}
		return &jsonschema.Schema{Type: "object", Properties: props, Required: required}
	case KindEnum:
		return &jsonschema.Schema{Type: "string", Description: "one of: " + joinValues(t.Values)}
	case KindArray:
		return &jsonschema.Schema{Type: "array", Items: TypeToJSONSchema(t.Element)}
	case KindMap:
		return &jsonschema.Schema{Type: "object"}
	case KindUnion:
		if len(t.Variants) > 0 {
			return TypeToJSONSchema(t.Variants[0])
		}
		return &jsonschema.Schema{}
	case KindReference:
		return &jsonschema.Schema{Type: "object", Description: "reference: " + t.Ref}
	case KindScalar:
		return &jsonschema.Schema{Type: scalarToJSONType(t.Scalar)}
	default:
		return &jsonschema.Schema{}
	}
}

func fieldToJSONSchema(f Field) *jsonschema.Schema {
	s := TypeToJSONSchema(f.Type)
	if s == nil {
		s = &jsonschema.Schema{}
	}
	s.Description = f.Description
	return s
}

func joinValues(values []string) string {
	out := ""
	for i, v := range values {
		if i > 0 {
			out += ", "
		}
		out += v
	}
	return out
}

func scalarToJSONType(s Scalar) string {
	switch s {
	case ScalarString, ScalarDateTime, ScalarBinary:
		return "string"
	case ScalarInteger:
		return "integer"
	case ScalarFloat:
		return "number"
	case ScalarBoolean:
		return "boolean"
	case ScalarNull:
		return "null"
	default:
		return ""
	}
}
