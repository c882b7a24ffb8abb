// Package valueobject holds the domain's validated primitives: names,
// ports, usernames, public keys and trace identifiers. Validated types
// have a fallible constructor; the derived instance/profile names and
// TraceID are built infallibly. EnvironmentName, Username,
// SSHPublicKey, IPAddress and TraceID serialize as their canonical
// string and Port as a JSON number; DomainName, InstanceName and
// ProfileName define no JSON encoding.
package valueobject

import (
	"encoding/json"
	"regexp"

	"github.com/pkg/errors"
)

var environmentNamePattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// EnvironmentName is a validated environment identifier: non-empty,
// lowercase alphanumeric with dashes. It is used verbatim as a
// filesystem path segment under data/ and build/.
type EnvironmentName struct {
	value string
}

// NewEnvironmentName validates and wraps name. Construction is total
// and idempotent: calling it again on an already-valid name succeeds.
func NewEnvironmentName(name string) (EnvironmentName, error) {
	if name == "" {
		return EnvironmentName{}, errors.New("environment name must not be empty")
	}
	if !environmentNamePattern.MatchString(name) {
		return EnvironmentName{}, errors.Errorf("environment name %q must be lowercase alphanumeric with dashes only", name)
	}
	return EnvironmentName{value: name}, nil
}

// String returns the canonical string form.
func (n EnvironmentName) String() string {
	return n.value
}

// MarshalJSON renders the name as its canonical string.
func (n EnvironmentName) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.value)
}

// UnmarshalJSON parses and validates the name.
func (n *EnvironmentName) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := NewEnvironmentName(raw)
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}
