package schema_test

import (
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/torrust/tracker-deployer/internal/schema"
)

func TestGenerateProducesValidJSONSchema(t *testing.T) {
	doc := schema.Generate()
	if _, err := schema.Compile(doc); err != nil {
		t.Fatalf("Compile: %v", err)
	}
}

func TestValidateConfigAcceptsWellFormedConfig(t *testing.T) {
	raw := []byte(`
name: e2e-dev
ssh:
  username: torrust
  private_key_path: /keys/id_rsa
  public_key_path: /keys/id_rsa.pub
  port: 22
`)
	var value any
	if err := yaml.Unmarshal(raw, &value); err != nil {
		t.Fatalf("yaml.Unmarshal: %v", err)
	}

	if err := schema.ValidateConfig(jsonify(value)); err != nil {
		t.Fatalf("ValidateConfig: %v", err)
	}
}

func TestValidateConfigRejectsMissingRequiredField(t *testing.T) {
	raw := []byte(`
name: e2e-dev
ssh:
  username: torrust
`)
	var value any
	if err := yaml.Unmarshal(raw, &value); err != nil {
		t.Fatalf("yaml.Unmarshal: %v", err)
	}

	if err := schema.ValidateConfig(jsonify(value)); err == nil {
		t.Fatalf("expected missing required fields to fail validation")
	}
}

func TestValidateConfigRejectsUnknownProperty(t *testing.T) {
	raw := []byte(`
name: e2e-dev
ssh:
  username: torrust
  private_key_path: /keys/id_rsa
  public_key_path: /keys/id_rsa.pub
  port: 22
extra: not-allowed
`)
	var value any
	if err := yaml.Unmarshal(raw, &value); err != nil {
		t.Fatalf("yaml.Unmarshal: %v", err)
	}

	if err := schema.ValidateConfig(jsonify(value)); err == nil {
		t.Fatalf("expected unknown top-level property to fail validation")
	}
}

// jsonify converts yaml.v3's map[string]any output (which yaml.v3 already
// produces as map[string]any, unlike yaml.v2's map[interface{}]interface{})
// into the form jsonschema/v5 expects: plain Go values with int ports
// represented as float64, matching what encoding/json would decode.
func jsonify(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = jsonify(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = jsonify(item)
		}
		return out
	case int:
		return float64(val)
	default:
		return val
	}
}
