package contract

import (
	"bufio"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// No dependency in the example pack parses Protocol Buffer IDL; this
// scanner reads the subset spec §4.6's gRPC paradigm needs (messages,
// fields with their wire numbers, enums, service RPCs) with regexp/bufio
// line scanning rather than a full grammar, mirroring the line-oriented
// scanning internal/parser's regex-based extractors already use for
// structural matches the tree-sitter grammar doesn't expose directly.
var (
	protoMessageStart = regexp.MustCompile(`^\s*message\s+(\w+)\s*\{`)
	protoEnumStart    = regexp.MustCompile(`^\s*enum\s+(\w+)\s*\{`)
	protoServiceStart = regexp.MustCompile(`^\s*service\s+(\w+)\s*\{`)
	protoBlockEnd     = regexp.MustCompile(`^\s*\}`)
	protoField        = regexp.MustCompile(`^\s*(repeated\s+|optional\s+)?([\w.]+)\s+(\w+)\s*=\s*(\d+)\s*(\[[^\]]*\])?\s*;`)
	protoEnumValue    = regexp.MustCompile(`^\s*(\w+)\s*=\s*(-?\d+)\s*;`)
	protoRPC          = regexp.MustCompile(`^\s*rpc\s+(\w+)\s*\(\s*(stream\s+)?([\w.]+)\s*\)\s*returns\s*\(\s*(stream\s+)?([\w.]+)\s*\)`)
	protoPackage      = regexp.MustCompile(`^\s*package\s+([\w.]+)\s*;`)
)

type protoFieldDecl struct {
	Name     string
	TypeName string
	Number   int
	Repeated bool
	Optional bool
}

type protoMessageDecl struct {
	Name   string
	Fields []protoFieldDecl
}

type protoEnumDecl struct {
	Name   string
	Values []string
}

type protoRPCDecl struct {
	Name         string
	RequestType  string
	ResponseType string
	ClientStream bool
	ServerStream bool
}

type protoServiceDecl struct {
	Name string
	RPCs []protoRPCDecl
}

// ParseProto scans .proto source text and returns a Contract with one
// Operation per service RPC and one ContractType per message/enum. It does
// not resolve imports; cross-file $ref-style message references stay as
// KindReference types, resolved the same way OpenAPI $ref is.
func ParseProto(source string) (*Contract, error) {
	scanner := bufio.NewScanner(strings.NewReader(source))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var pkg string
	var messages []protoMessageDecl
	var enums []protoEnumDecl
	var services []protoServiceDecl

	for scanner.Scan() {
		line := stripProtoComment(scanner.Text())
		switch {
		case protoPackage.MatchString(line):
			pkg = protoPackage.FindStringSubmatch(line)[1]
		case protoMessageStart.MatchString(line):
			name := protoMessageStart.FindStringSubmatch(line)[1]
			messages = append(messages, scanProtoMessage(scanner, name))
		case protoEnumStart.MatchString(line):
			name := protoEnumStart.FindStringSubmatch(line)[1]
			enums = append(enums, scanProtoEnum(scanner, name))
		case protoServiceStart.MatchString(line):
			name := protoServiceStart.FindStringSubmatch(line)[1]
			services = append(services, scanProtoService(scanner, name))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	enumNames := make(map[string]bool, len(enums))
	for _, e := range enums {
		enumNames[e.Name] = true
	}

	types := make(map[string]*ContractType, len(messages)+len(enums))
	for _, e := range enums {
		types[e.Name] = &ContractType{Kind: KindEnum, Name: e.Name, Values: e.Values}
	}
	for _, m := range messages {
		types[m.Name] = protoMessageToType(m, enumNames)
	}

	c := &Contract{
		Paradigm: ParadigmGRPC,
		Service:  pkg,
		Status:   StatusDiscovered,
		Provenance: []Provenance{{
			Kind: ProvenanceSpec, SpecType: "Proto",
		}},
	}
	for _, t := range types {
		c.Types = append(c.Types, t)
	}

	for _, svc := range services {
		for _, rpc := range svc.RPCs {
			c.Operations = append(c.Operations, protoRPCToOperation(svc.Name, rpc, types))
		}
	}
	sort.Slice(c.Operations, func(i, j int) bool { return c.Operations[i].Name < c.Operations[j].Name })
	return c, nil
}

func stripProtoComment(line string) string {
	if i := strings.Index(line, "//"); i >= 0 {
		return line[:i]
	}
	return line
}

func scanProtoMessage(scanner *bufio.Scanner, name string) protoMessageDecl {
	decl := protoMessageDecl{Name: name}
	depth := 1
	for depth > 0 && scanner.Scan() {
		line := stripProtoComment(scanner.Text())
		switch {
		case protoMessageStart.MatchString(line), protoEnumStart.MatchString(line):
			depth++
		case protoBlockEnd.MatchString(line):
			depth--
		case protoField.MatchString(line):
			m := protoField.FindStringSubmatch(line)
			num, _ := strconv.Atoi(m[4])
			decl.Fields = append(decl.Fields, protoFieldDecl{
				Repeated: strings.TrimSpace(m[1]) == "repeated",
				Optional: strings.TrimSpace(m[1]) == "optional",
				TypeName: m[2],
				Name:     m[3],
				Number:   num,
			})
		}
	}
	return decl
}

func scanProtoEnum(scanner *bufio.Scanner, name string) protoEnumDecl {
	decl := protoEnumDecl{Name: name}
	depth := 1
	for depth > 0 && scanner.Scan() {
		line := stripProtoComment(scanner.Text())
		switch {
		case protoBlockEnd.MatchString(line):
			depth--
		case protoEnumValue.MatchString(line):
			decl.Values = append(decl.Values, protoEnumValue.FindStringSubmatch(line)[1])
		}
	}
	return decl
}

func scanProtoService(scanner *bufio.Scanner, name string) protoServiceDecl {
	decl := protoServiceDecl{Name: name}
	depth := 1
	for depth > 0 && scanner.Scan() {
		line := stripProtoComment(scanner.Text())
		switch {
		case protoBlockEnd.MatchString(line):
			depth--
		case protoRPC.MatchString(line):
			m := protoRPC.FindStringSubmatch(line)
			decl.RPCs = append(decl.RPCs, protoRPCDecl{
				Name:         m[1],
				ClientStream: strings.TrimSpace(m[2]) == "stream",
				RequestType:  m[3],
				ServerStream: strings.TrimSpace(m[4]) == "stream",
				ResponseType: m[5],
			})
		}
	}
	return decl
}

var protoScalarTypes = map[string]Scalar{
	"string": ScalarString, "bytes": ScalarBinary,
	"int32": ScalarInteger, "int64": ScalarInteger, "uint32": ScalarInteger, "uint64": ScalarInteger,
	"sint32": ScalarInteger, "sint64": ScalarInteger, "fixed32": ScalarInteger, "fixed64": ScalarInteger,
	"sfixed32": ScalarInteger, "sfixed64": ScalarInteger,
	"float": ScalarFloat, "double": ScalarFloat,
	"bool": ScalarBoolean,
}

func protoFieldType(typeName string, enumNames map[string]bool) *ContractType {
	if s, ok := protoScalarTypes[typeName]; ok {
		return &ContractType{Kind: KindScalar, Scalar: s}
	}
	if enumNames[typeName] {
		return &ContractType{Kind: KindReference, Name: typeName, Ref: typeName}
	}
	return &ContractType{Kind: KindReference, Name: typeName, Ref: typeName}
}

func protoMessageToType(m protoMessageDecl, enumNames map[string]bool) *ContractType {
	var fields []Field
	for _, f := range m.Fields {
		t := protoFieldType(f.TypeName, enumNames)
		if f.Repeated {
			t = &ContractType{Kind: KindArray, Element: t}
		}
		fields = append(fields, Field{
			Name:       f.Name,
			Type:       t,
			Required:   !f.Optional,
			Nullable:   f.Optional,
			SourceLine: f.Number,
		})
	}
	return &ContractType{Kind: KindObject, Name: m.Name, Fields: fields}
}

func protoRPCToOperation(service string, rpc protoRPCDecl, types map[string]*ContractType) Operation {
	return Operation{
		Name:   service + "." + rpc.Name,
		Type:   OperationType{Service: service, RPC: rpc.Name},
		Input:  &ContractType{Kind: KindReference, Name: rpc.RequestType, Ref: rpc.RequestType},
		Output: &ContractType{Kind: KindReference, Name: rpc.ResponseType, Ref: rpc.ResponseType},
	}
}
