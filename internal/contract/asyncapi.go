package contract

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// asyncAPIDoc is the subset of an AsyncAPI document this parser reads.
// AsyncAPI channels map onto chorus's EventDriven paradigm: a channel with
// a "publish" operation is an Operation a producer emits, "subscribe" is
// one a consumer receives.
type asyncAPIDoc struct {
	AsyncAPI   string                     `yaml:"asyncapi"`
	Info       openAPIInfo                `yaml:"info"`
	Channels   map[string]asyncAPIChannel `yaml:"channels"`
	Components asyncAPIComponents         `yaml:"components"`
}

type asyncAPIComponents struct {
	Schemas map[string]openAPISchema `yaml:"schemas"`
}

type asyncAPIChannel struct {
	Description string             `yaml:"description"`
	Publish     *asyncAPIOperation `yaml:"publish"`
	Subscribe   *asyncAPIOperation `yaml:"subscribe"`
}

type asyncAPIOperation struct {
	OperationID string           `yaml:"operationId"`
	Summary     string           `yaml:"summary"`
	Deprecated  bool             `yaml:"deprecated"`
	Message     *asyncAPIMessage `yaml:"message"`
}

type asyncAPIMessage struct {
	Name    string         `yaml:"name"`
	Payload *openAPISchema `yaml:"payload"`
}

// ParseAsyncAPI parses an AsyncAPI YAML document into a Contract with one
// Operation per channel+direction (publish/subscribe) and one ContractType
// per named component schema.
func ParseAsyncAPI(data []byte) (*Contract, error) {
	var doc asyncAPIDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("contract: parse asyncapi: %w", err)
	}

	types := make(map[string]*ContractType, len(doc.Components.Schemas))
	for name, s := range doc.Components.Schemas {
		types[name] = schemaToType(name, s, doc.Components.Schemas)
	}

	c := &Contract{
		Paradigm: ParadigmEventDriven,
		Status:   StatusDiscovered,
		Provenance: []Provenance{{
			Kind: ProvenanceSpec, SpecType: "AsyncAPI", SpecVersion: doc.AsyncAPI,
		}},
	}
	for _, t := range types {
		c.Types = append(c.Types, t)
	}

	var channels []string
	for name := range doc.Channels {
		channels = append(channels, name)
	}
	sort.Strings(channels)

	for _, name := range channels {
		ch := doc.Channels[name]
		if ch.Publish != nil {
			c.Operations = append(c.Operations, asyncAPIOperationToOperation(name, "publish", *ch.Publish, doc.Components.Schemas))
		}
		if ch.Subscribe != nil {
			c.Operations = append(c.Operations, asyncAPIOperationToOperation(name, "subscribe", *ch.Subscribe, doc.Components.Schemas))
		}
	}
	return c, nil
}

func asyncAPIOperationToOperation(channel, direction string, op asyncAPIOperation, schemas map[string]openAPISchema) Operation {
	name := op.OperationID
	if name == "" {
		name = direction + " " + channel
	}
	var payload *ContractType
	if op.Message != nil && op.Message.Payload != nil {
		payload = schemaToType(name+"Payload", *op.Message.Payload, schemas)
	}
	operation := Operation{
		Name:       name,
		Type:       OperationType{Channel: channel, Event: direction},
		Deprecated: op.Deprecated,
	}
	if direction == "publish" {
		operation.Input = payload
	} else {
		operation.Output = payload
	}
	return operation
}
