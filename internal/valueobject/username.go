package valueobject

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Username is a validated POSIX username: non-empty, no control
// characters.
type Username struct {
	value string
}

// NewUsername validates and wraps name.
func NewUsername(name string) (Username, error) {
	if name == "" {
		return Username{}, errors.New("username must not be empty")
	}
	for _, r := range name {
		if r < 0x20 || r == 0x7f {
			return Username{}, errors.Errorf("username %q must not contain control characters", name)
		}
	}
	return Username{value: name}, nil
}

// String returns the canonical string form.
func (u Username) String() string {
	return u.value
}

// MarshalJSON renders the username as its canonical string.
func (u Username) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.value)
}

// UnmarshalJSON parses and validates the username.
func (u *Username) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := NewUsername(raw)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
