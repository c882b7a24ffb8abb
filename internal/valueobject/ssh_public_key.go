package valueobject

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// sshPublicKeyPrefixes mirrors the allow-list of OpenSSH / X.509 / PGP
// key type tokens that may begin an authorized-keys-style line.
var sshPublicKeyPrefixes = []string{
	"ssh-rsa",
	"ssh-ed25519",
	"ssh-ed448",
	"rsa-sha2-256",
	"rsa-sha2-512",
	"ecdsa-sha2-",
	"ssh-dss",
	"x509v3-",
	"spki-sign-",
	"pgp-sign-",
	"null",
}

// ErrEmptyPublicKey is returned when the supplied key string is empty.
var ErrEmptyPublicKey = errors.New("ssh public key must not be empty")

// ErrInvalidPublicKeyFormat is returned when the key does not start
// with a recognized key-type token, or lacks a second token.
var ErrInvalidPublicKeyFormat = errors.New("ssh public key has an invalid format")

// SSHPublicKey is a validated SSH authorized-keys-style public key
// string.
type SSHPublicKey struct {
	value string
}

// NewSSHPublicKey validates raw against the key-type allow-list and the
// "at least two whitespace-separated tokens" rule.
func NewSSHPublicKey(raw string) (SSHPublicKey, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return SSHPublicKey{}, ErrEmptyPublicKey
	}

	fields := strings.Fields(trimmed)
	if len(fields) < 2 {
		return SSHPublicKey{}, ErrInvalidPublicKeyFormat
	}

	if !hasAllowedPrefix(fields[0]) {
		return SSHPublicKey{}, ErrInvalidPublicKeyFormat
	}

	return SSHPublicKey{value: trimmed}, nil
}

func hasAllowedPrefix(keyType string) bool {
	for _, prefix := range sshPublicKeyPrefixes {
		if strings.HasPrefix(keyType, prefix) {
			return true
		}
	}
	return false
}

// String returns the canonical string form.
func (k SSHPublicKey) String() string {
	return k.value
}

// MarshalJSON renders the key as its canonical string.
func (k SSHPublicKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.value)
}

// UnmarshalJSON parses and validates the key.
func (k *SSHPublicKey) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := NewSSHPublicKey(raw)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
