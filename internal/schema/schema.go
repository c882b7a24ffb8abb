// Package schema generates and validates the JSON Schema document for
// the create command's YAML config file.
package schema

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Document is a JSON Schema document expressed as a plain map, mirroring
// how the rest of the ecosystem builds schemas by hand rather than via
// struct reflection.
type Document map[string]any

// Generate builds the JSON Schema document describing the create
// command's YAML config file (internal/config.CreateConfig).
func Generate() Document {
	sshProperties := Document{
		"username": Document{
			"type":        "string",
			"description": "SSH user created on the provisioned instance",
		},
		"private_key_path": Document{
			"type":        "string",
			"description": "Path to the private key used to connect over SSH",
		},
		"public_key_path": Document{
			"type":        "string",
			"description": "Path to the public key installed on the instance",
		},
		"port": Document{
			"type":        "integer",
			"minimum":     1,
			"maximum":     65535,
			"description": "SSH port exposed by the instance",
		},
	}

	return Document{
		"$schema":     "https://json-schema.org/draft/2020-12/schema",
		"$id":         "https://torrust.github.io/tracker-deployer/schemas/create-config.json",
		"title":       "CreateConfig",
		"description": "Configuration accepted by \"create --config\"",
		"type":        "object",
		"properties": Document{
			"name": Document{
				"type":        "string",
				"pattern":     "^[a-z0-9-]+$",
				"description": "Environment name, lowercase alphanumeric and dashes",
			},
			"ssh": Document{
				"type":                 "object",
				"properties":           sshProperties,
				"required":             []string{"username", "private_key_path", "public_key_path", "port"},
				"additionalProperties": false,
			},
		},
		"required":             []string{"name", "ssh"},
		"additionalProperties": false,
	}
}

// ToJSON renders the document as pretty-printed JSON.
func (d Document) ToJSON() ([]byte, error) {
	out, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "schema: marshaling document")
	}
	return out, nil
}

// Compile compiles the generated document into a validator. Compilation
// failure here indicates a bug in Generate, not bad user input.
func Compile(doc Document) (*jsonschema.Schema, error) {
	raw, err := doc.ToJSON()
	if err != nil {
		return nil, err
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	const resourceURL = "schema://create-config.json"
	if err := compiler.AddResource(resourceURL, strings.NewReader(string(raw))); err != nil {
		return nil, errors.Wrap(err, "schema: adding compiled resource")
	}

	compiled, err := compiler.Compile(resourceURL)
	if err != nil {
		return nil, errors.Wrap(err, "schema: compiling document")
	}
	return compiled, nil
}

// ValidateConfig validates a parsed config value (typically the result
// of unmarshalling YAML into map[string]any via yaml.v3, which produces
// JSON-compatible types) against the generated schema.
func ValidateConfig(value any) error {
	compiled, err := Compile(Generate())
	if err != nil {
		return err
	}
	if err := compiled.Validate(value); err != nil {
		return errors.Wrap(err, "schema: config failed validation")
	}
	return nil
}
