package contract

import (
	"fmt"

	"github.com/standardbeagle/chorus/internal/model"
)

// MismatchType is the closed set of field-comparison outcomes spec §3
// names.
type MismatchType string

const (
	MismatchMissingInConsumer   MismatchType = "MissingInConsumer"
	MismatchMissingInProvider   MismatchType = "MissingInProvider"
	MismatchTypeMismatch        MismatchType = "TypeMismatch"
	MismatchOptionalityMismatch MismatchType = "OptionalityMismatch"
	MismatchNullabilityMismatch MismatchType = "NullabilityMismatch"
	MismatchEnumMismatch        MismatchType = "EnumMismatch"
	MismatchConstraintMismatch  MismatchType = "ConstraintMismatch"
)

// mismatchSeverity is spec §4.6's fixed severity table:
// MissingInProvider/TypeMismatch=Error, MissingInConsumer/
// OptionalityMismatch/NullabilityMismatch/EnumMismatch=Warning,
// ConstraintMismatch=Info.
var mismatchSeverity = map[MismatchType]Severity{
	MismatchMissingInProvider:   model.SeverityError,
	MismatchTypeMismatch:        model.SeverityError,
	MismatchMissingInConsumer:   model.SeverityWarning,
	MismatchOptionalityMismatch: model.SeverityWarning,
	MismatchNullabilityMismatch: model.SeverityWarning,
	MismatchEnumMismatch:        model.SeverityWarning,
	MismatchConstraintMismatch:  model.SeverityInfo,
}

// Mismatch is one field-level disagreement between a provider and a
// consumer's view of a contract (spec §3 Contract mismatch).
type Mismatch struct {
	FieldPath     string // dot notation
	Type          MismatchType
	Severity      Severity
	Description   string
	ProviderValue string
	ConsumerValue string
}

// canonicalTypeNames maps common language-specific type spellings onto the
// eight canonical scalars spec §4.6 compares against, covering Go, Python,
// TypeScript/JS, Java, and JSON-Schema vocabulary.
var canonicalTypeNames = map[string]Scalar{
	"string": ScalarString, "str": ScalarString, "text": ScalarString, "varchar": ScalarString,
	"int": ScalarInteger, "integer": ScalarInteger, "int32": ScalarInteger, "int64": ScalarInteger,
	"long": ScalarInteger, "short": ScalarInteger, "bigint": ScalarInteger,
	"float": ScalarFloat, "float32": ScalarFloat, "float64": ScalarFloat, "double": ScalarFloat, "number": ScalarFloat, "decimal": ScalarFloat,
	"bool": ScalarBoolean, "boolean": ScalarBoolean,
	"datetime": ScalarDateTime, "date": ScalarDateTime, "timestamp": ScalarDateTime, "time.time": ScalarDateTime,
	"bytes": ScalarBinary, "binary": ScalarBinary, "blob": ScalarBinary, "[]byte": ScalarBinary,
	"null": ScalarNull, "nil": ScalarNull, "none": ScalarNull, "void": ScalarNull,
	"any": ScalarAny, "object": ScalarAny, "interface{}": ScalarAny, "unknown": ScalarAny,
}

// CanonicalScalar normalizes a language-specific type name to chorus's
// canonical scalar set, defaulting to ScalarAny for anything unrecognized
// (an unrecognized type name is a weak signal, not proof of a mismatch).
func CanonicalScalar(name string) Scalar {
	if s, ok := canonicalTypeNames[lower(name)]; ok {
		return s
	}
	return ScalarAny
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// CompareFields performs spec §4.6's recursive field comparison: provider
// and consumer field lists are matched by name, then for each matched pair
// normalized types, required flags, nullable flags, and enum value sets
// are compared and the comparison recurses into nested Object fields.
// prefix is the dot-notation path accumulated so far.
func CompareFields(prefix string, provider, consumer []Field) []Mismatch {
	var mismatches []Mismatch
	byName := make(map[string]Field, len(consumer))
	for _, f := range consumer {
		byName[f.Name] = f
	}
	seen := make(map[string]bool, len(provider))

	for _, pf := range provider {
		seen[pf.Name] = true
		path := joinPath(prefix, pf.Name)
		cf, ok := byName[pf.Name]
		if !ok {
			mismatches = append(mismatches, newMismatch(path, MismatchMissingInConsumer, "field present in provider but not in consumer", typeLabel(pf.Type), ""))
			continue
		}
		mismatches = append(mismatches, compareOneField(path, pf, cf)...)
	}
	for _, cf := range consumer {
		if !seen[cf.Name] {
			path := joinPath(prefix, cf.Name)
			mismatches = append(mismatches, newMismatch(path, MismatchMissingInProvider, "field present in consumer but not in provider", "", typeLabel(cf.Type)))
		}
	}
	return mismatches
}

func compareOneField(path string, pf, cf Field) []Mismatch {
	var out []Mismatch

	pScalar, cScalar := scalarOf(pf.Type), scalarOf(cf.Type)
	if pScalar != cScalar && pScalar != ScalarAny && cScalar != ScalarAny {
		out = append(out, newMismatch(path, MismatchTypeMismatch,
			fmt.Sprintf("type changed from %s to %s", pScalar, cScalar), string(pScalar), string(cScalar)))
	}

	if pf.Required != cf.Required {
		out = append(out, newMismatch(path, MismatchOptionalityMismatch,
			"required flag differs", boolLabel(pf.Required), boolLabel(cf.Required)))
	}

	if pf.Nullable != cf.Nullable {
		out = append(out, newMismatch(path, MismatchNullabilityMismatch,
			"nullable flag differs", boolLabel(pf.Nullable), boolLabel(cf.Nullable)))
	}

	if pf.Type != nil && cf.Type != nil && pf.Type.Kind == KindEnum && cf.Type.Kind == KindEnum {
		if added, removed := diffStringSets(pf.Type.Values, cf.Type.Values); len(added) > 0 || len(removed) > 0 {
			out = append(out, newMismatch(path, MismatchEnumMismatch,
				"enum value set differs", join(pf.Type.Values), join(cf.Type.Values)))
		}
	}

	if c := compareConstraints(pf.Constraints, cf.Constraints); c != "" {
		out = append(out, newMismatch(path, MismatchConstraintMismatch, c, "", ""))
	}

	if pf.Type != nil && cf.Type != nil && pf.Type.Kind == KindObject && cf.Type.Kind == KindObject {
		out = append(out, CompareFields(path, pf.Type.Fields, cf.Type.Fields)...)
	}

	return out
}

func compareConstraints(p, c Constraints) string {
	switch {
	case p.HasLength != c.HasLength || p.MinLength != c.MinLength || p.MaxLength != c.MaxLength:
		return "length constraint differs"
	case p.HasRange != c.HasRange || p.Minimum != c.Minimum || p.Maximum != c.Maximum:
		return "range constraint differs"
	case p.Pattern != c.Pattern:
		return "pattern constraint differs"
	case p.Format != c.Format:
		return "format constraint differs"
	case p.Unique != c.Unique:
		return "uniqueness constraint differs"
	case p.HasSize != c.HasSize || p.MinSize != c.MinSize || p.MaxSize != c.MaxSize:
		return "size constraint differs"
	default:
		return ""
	}
}

func scalarOf(t *ContractType) Scalar {
	if t == nil {
		return ScalarAny
	}
	if t.Kind == KindScalar {
		return t.Scalar
	}
	return ScalarAny
}

func typeLabel(t *ContractType) string {
	if t == nil {
		return ""
	}
	if t.Kind == KindScalar {
		return string(t.Scalar)
	}
	return string(t.Kind)
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func diffStringSets(a, b []string) (added, removed []string) {
	setA := make(map[string]bool, len(a))
	for _, s := range a {
		setA[s] = true
	}
	setB := make(map[string]bool, len(b))
	for _, s := range b {
		setB[s] = true
	}
	for _, s := range b {
		if !setA[s] {
			added = append(added, s)
		}
	}
	for _, s := range a {
		if !setB[s] {
			removed = append(removed, s)
		}
	}
	return added, removed
}

func join(values []string) string {
	out := ""
	for i, v := range values {
		if i > 0 {
			out += ","
		}
		out += v
	}
	return out
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

func newMismatch(path string, t MismatchType, desc, providerVal, consumerVal string) Mismatch {
	return Mismatch{
		FieldPath:     path,
		Type:          t,
		Severity:      mismatchSeverity[t],
		Description:   desc,
		ProviderValue: providerVal,
		ConsumerValue: consumerVal,
	}
}
