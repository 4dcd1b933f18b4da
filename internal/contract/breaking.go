package contract

import "strconv"

// ChangeType is the closed set of breaking-change kinds spec §3 names.
type ChangeType string

const (
	ChangeOperationRemoved        ChangeType = "OperationRemoved"
	ChangeOperationAdded          ChangeType = "OperationAdded"
	ChangeOperationRenamed        ChangeType = "OperationRenamed"
	ChangeRequiredFieldAdded      ChangeType = "RequiredFieldAdded"
	ChangeOptionalFieldAdded      ChangeType = "OptionalFieldAdded"
	ChangeFieldRemoved            ChangeType = "FieldRemoved"
	ChangeFieldTypeChanged        ChangeType = "FieldTypeChanged"
	ChangeFieldRequirednessChanged ChangeType = "FieldRequirednessChanged"
	ChangeFieldNullabilityChanged ChangeType = "FieldNullabilityChanged"
	ChangeEnumValueAdded          ChangeType = "EnumValueAdded"
	ChangeEnumValueRemoved        ChangeType = "EnumValueRemoved"
	ChangeTypeRemoved             ChangeType = "TypeRemoved"
	ChangeTypeRenamed             ChangeType = "TypeRenamed"
	ChangeAuthRequirementAdded    ChangeType = "AuthRequirementAdded"
	ChangeAuthRequirementRemoved  ChangeType = "AuthRequirementRemoved"
	ChangeProtoFieldNumberReused  ChangeType = "ProtoFieldNumberReused"
	ChangeProtoFieldNumberChanged ChangeType = "ProtoFieldNumberChanged"
	ChangeGraphQLArgumentAdded    ChangeType = "GraphQLArgumentAdded"
	ChangeGraphQLNullabilityTightened ChangeType = "GraphQLNullabilityTightened"
)

// ChangeSeverity is the closed severity scale a BreakingChange carries —
// distinct from Mismatch's Severity because "breaking" is a different axis
// than "error/warning/info".
type ChangeSeverity string

const (
	SeverityBreaking    ChangeSeverity = "Breaking"
	SeverityConditional ChangeSeverity = "Conditional"
	SeverityNonBreaking ChangeSeverity = "NonBreaking"
	SeverityDeprecation ChangeSeverity = "Deprecation"
)

// BreakingChange is one record from comparing successive scans of the same
// Contract (spec §3 Breaking change).
type BreakingChange struct {
	Type          ChangeType
	Severity      ChangeSeverity
	Paradigm      Paradigm
	Operation     string
	FieldPath     string
	Description   string
	Before, After string
	MigrationHint string
}

// ClassifyOperationChange compares an operation present in `before` but
// missing, renamed, or altered in `after` and returns the paradigm-specific
// breaking-change records spec §4.6 describes. before/after are keyed by
// operation Name.
func ClassifyOperationChange(paradigm Paradigm, name string, before, after *Operation) []BreakingChange {
	switch {
	case before != nil && after == nil:
		return []BreakingChange{{
			Type: ChangeOperationRemoved, Severity: SeverityBreaking, Paradigm: paradigm,
			Operation: name, Description: "operation removed", Before: name,
			MigrationHint: "consumers must stop calling this operation or migrate to its replacement",
		}}
	case before == nil && after != nil:
		sev := SeverityNonBreaking
		return []BreakingChange{{
			Type: ChangeOperationAdded, Severity: sev, Paradigm: paradigm,
			Operation: name, Description: "operation added", After: name,
		}}
	case before != nil && after != nil:
		var changes []BreakingChange
		if before.AuthRequired != after.AuthRequired {
			if after.AuthRequired {
				changes = append(changes, BreakingChange{
					Type: ChangeAuthRequirementAdded, Severity: SeverityBreaking, Paradigm: paradigm,
					Operation: name, Description: "authentication now required",
					MigrationHint: "consumers must supply credentials (" + after.AuthScheme + ")",
				})
			} else {
				changes = append(changes, BreakingChange{
					Type: ChangeAuthRequirementRemoved, Severity: SeverityNonBreaking, Paradigm: paradigm,
					Operation: name, Description: "authentication no longer required",
				})
			}
		}
		if after.Deprecated && !before.Deprecated {
			changes = append(changes, BreakingChange{
				Type: ChangeOperationRenamed, Severity: SeverityDeprecation, Paradigm: paradigm,
				Operation: name, Description: "operation deprecated: " + after.DeprecationNote,
			})
		}
		changes = append(changes, classifyParameterChanges(paradigm, name, before.Parameters, after.Parameters)...)
		if before.Output != nil && after.Output != nil {
			changes = append(changes, classifyFieldChanges(paradigm, name, "", before.Output.Fields, after.Output.Fields)...)
		}
		return changes
	}
	return nil
}

func classifyParameterChanges(paradigm Paradigm, op string, before, after []Parameter) []BreakingChange {
	var changes []BreakingChange
	beforeByName := make(map[string]Parameter, len(before))
	for _, p := range before {
		beforeByName[p.Name] = p
	}
	for _, p := range after {
		if _, ok := beforeByName[p.Name]; !ok && p.Required {
			changes = append(changes, BreakingChange{
				Type: ChangeRequiredFieldAdded, Severity: SeverityBreaking, Paradigm: paradigm,
				Operation: op, FieldPath: p.Name, Description: "new required parameter " + p.Name,
				After: p.Name, MigrationHint: "existing consumers must start supplying " + p.Name,
			})
		}
	}
	return changes
}

// classifyFieldChanges walks a before/after field list pair and emits
// paradigm-specific breaking-change records for additions, removals, type
// changes, and (REST/GraphQL) enum widening/narrowing.
func classifyFieldChanges(paradigm Paradigm, op, prefix string, before, after []Field) []BreakingChange {
	var changes []BreakingChange
	beforeByName := make(map[string]Field, len(before))
	for _, f := range before {
		beforeByName[f.Name] = f
	}
	afterByName := make(map[string]Field, len(after))
	for _, f := range after {
		afterByName[f.Name] = f
	}

	for _, bf := range before {
		path := joinPath(prefix, bf.Name)
		af, ok := afterByName[bf.Name]
		if !ok {
			sev := fieldRemovalSeverity(paradigm, bf)
			changes = append(changes, BreakingChange{
				Type: ChangeFieldRemoved, Severity: sev, Paradigm: paradigm,
				Operation: op, FieldPath: path, Description: "field removed", Before: bf.Name,
			})
			continue
		}
		changes = append(changes, classifyOneFieldChange(paradigm, op, path, bf, af)...)
	}
	for _, af := range after {
		if _, ok := beforeByName[af.Name]; ok {
			continue
		}
		path := joinPath(prefix, af.Name)
		sev := SeverityNonBreaking
		t := ChangeOptionalFieldAdded
		if af.Required {
			sev = SeverityBreaking
			t = ChangeRequiredFieldAdded
		}
		changes = append(changes, BreakingChange{
			Type: t, Severity: sev, Paradigm: paradigm,
			Operation: op, FieldPath: path, Description: "field added", After: af.Name,
		})
	}
	return changes
}

func classifyOneFieldChange(paradigm Paradigm, op, path string, before, after Field) []BreakingChange {
	var changes []BreakingChange

	if scalarOf(before.Type) != scalarOf(after.Type) && scalarOf(before.Type) != ScalarAny && scalarOf(after.Type) != ScalarAny {
		changes = append(changes, BreakingChange{
			Type: ChangeFieldTypeChanged, Severity: SeverityBreaking, Paradigm: paradigm,
			Operation: op, FieldPath: path, Description: "field type changed",
			Before: string(scalarOf(before.Type)), After: string(scalarOf(after.Type)),
			MigrationHint: "update consumer deserialization for this field",
		})
	}

	if before.Required != after.Required {
		sev := SeverityConditional
		if after.Required && !before.Required {
			sev = SeverityBreaking
		}
		changes = append(changes, BreakingChange{
			Type: ChangeFieldRequirednessChanged, Severity: sev, Paradigm: paradigm,
			Operation: op, FieldPath: path, Description: "requiredness changed",
			Before: boolLabel(before.Required), After: boolLabel(after.Required),
		})
	}

	if before.Nullable != after.Nullable {
		sev := SeverityConditional
		if paradigm == ParadigmGraphQL && before.Nullable && !after.Nullable {
			sev = SeverityBreaking
			changes = append(changes, BreakingChange{
				Type: ChangeGraphQLNullabilityTightened, Severity: sev, Paradigm: paradigm,
				Operation: op, FieldPath: path, Description: "nullability tightened",
				MigrationHint: "consumers relying on null for this field must be updated first",
			})
		} else {
			changes = append(changes, BreakingChange{
				Type: ChangeFieldNullabilityChanged, Severity: sev, Paradigm: paradigm,
				Operation: op, FieldPath: path, Description: "nullability changed",
				Before: boolLabel(before.Nullable), After: boolLabel(after.Nullable),
			})
		}
	}

	if before.Type != nil && after.Type != nil && before.Type.Kind == KindEnum && after.Type.Kind == KindEnum {
		added, removed := diffStringSets(before.Type.Values, after.Type.Values)
		if len(added) > 0 {
			sev := SeverityNonBreaking
			if paradigm == ParadigmGRPC {
				sev = SeverityConditional
			}
			changes = append(changes, BreakingChange{
				Type: ChangeEnumValueAdded, Severity: sev, Paradigm: paradigm,
				Operation: op, FieldPath: path, Description: "enum widened", After: join(added),
			})
		}
		if len(removed) > 0 {
			changes = append(changes, BreakingChange{
				Type: ChangeEnumValueRemoved, Severity: SeverityBreaking, Paradigm: paradigm,
				Operation: op, FieldPath: path, Description: "enum narrowed", Before: join(removed),
			})
		}
	}

	if before.Type != nil && after.Type != nil && before.Type.Kind == KindObject && after.Type.Kind == KindObject {
		changes = append(changes, classifyFieldChanges(paradigm, op, path, before.Type.Fields, after.Type.Fields)...)
	}

	return changes
}

// fieldRemovalSeverity implements spec §4.6's paradigm rules: REST removing
// a required field is Breaking (optional field removal is Conditional,
// since some consumers may not read it); GraphQL removing any field is
// Breaking; gRPC field removal (proto field number retirement, not
// reassignment) is Conditional unless the number is reused, which is
// handled separately by ClassifyProtoFieldNumberChange.
func fieldRemovalSeverity(paradigm Paradigm, f Field) ChangeSeverity {
	switch paradigm {
	case ParadigmGraphQL:
		return SeverityBreaking
	case ParadigmGRPC:
		return SeverityConditional
	default:
		if f.Required {
			return SeverityBreaking
		}
		return SeverityConditional
	}
}

// ClassifyProtoFieldNumberChange implements spec §4.6's gRPC rule: reusing
// or renumbering a proto field number is always Breaking, since it risks
// silent wire-format corruption between old and new consumers.
func ClassifyProtoFieldNumberChange(op, fieldName string, beforeNumber, afterNumber int, reused bool) BreakingChange {
	t := ChangeProtoFieldNumberChanged
	desc := "field number changed"
	if reused {
		t = ChangeProtoFieldNumberReused
		desc = "field number reused for a different field"
	}
	return BreakingChange{
		Type: t, Severity: SeverityBreaking, Paradigm: ParadigmGRPC,
		Operation: op, FieldPath: fieldName, Description: desc,
		Before:        strconv.Itoa(beforeNumber),
		After:         strconv.Itoa(afterNumber),
		MigrationHint: "never reuse or renumber a wire field number; deprecate and reserve it instead",
	}
}

// ClassifyGraphQLArgumentAdded implements spec §4.6's GraphQL rule: adding
// a required argument to an existing field is Breaking.
func ClassifyGraphQLArgumentAdded(op, argName string, required bool) BreakingChange {
	sev := SeverityNonBreaking
	if required {
		sev = SeverityBreaking
	}
	return BreakingChange{
		Type: ChangeGraphQLArgumentAdded, Severity: sev, Paradigm: ParadigmGraphQL,
		Operation: op, FieldPath: argName, Description: "argument added", After: argName,
	}
}
