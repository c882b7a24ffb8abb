package valueobject

import (
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
)

// Port is a validated 1..=65535 network port, formatted as a decimal
// string when used as a template token.
type Port struct {
	value uint16
}

// NewPort validates n is in range 1..=65535.
func NewPort(n int) (Port, error) {
	if n < 1 || n > 65535 {
		return Port{}, errors.Errorf("port %d must be between 1 and 65535", n)
	}
	return Port{value: uint16(n)}, nil
}

// Value returns the underlying port number.
func (p Port) Value() int {
	return int(p.value)
}

// String renders the port as a decimal string.
func (p Port) String() string {
	return strconv.Itoa(int(p.value))
}

// MarshalJSON renders the port as a JSON number.
func (p Port) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.value)
}

// UnmarshalJSON parses and validates the port.
func (p *Port) UnmarshalJSON(data []byte) error {
	var raw int
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := NewPort(raw)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
