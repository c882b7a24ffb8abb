package valueobject

import (
	"encoding/json"
	"net"
	"regexp"

	"github.com/pkg/errors"
)

// IPAddress is a validated IPv4 or IPv6 address.
type IPAddress struct {
	value string
}

// NewIPAddress validates raw as a parseable IP address.
func NewIPAddress(raw string) (IPAddress, error) {
	if net.ParseIP(raw) == nil {
		return IPAddress{}, errors.Errorf("%q is not a valid IP address", raw)
	}
	return IPAddress{value: raw}, nil
}

// String returns the canonical string form.
func (ip IPAddress) String() string {
	return ip.value
}

// MarshalJSON renders the address as its canonical string.
func (ip IPAddress) MarshalJSON() ([]byte, error) {
	return json.Marshal(ip.value)
}

// UnmarshalJSON parses and validates the address.
func (ip *IPAddress) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := NewIPAddress(raw)
	if err != nil {
		return err
	}
	*ip = parsed
	return nil
}

var domainNamePattern = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(\.[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)

// DomainName is a validated RFC 1123-style hostname.
type DomainName struct {
	value string
}

// NewDomainName validates raw as a hostname.
func NewDomainName(raw string) (DomainName, error) {
	if raw == "" || len(raw) > 253 || !domainNamePattern.MatchString(raw) {
		return DomainName{}, errors.Errorf("%q is not a valid domain name", raw)
	}
	return DomainName{value: raw}, nil
}

// String returns the canonical string form.
func (d DomainName) String() string {
	return d.value
}

// IsLocal reports whether the domain uses the reserved .local suffix,
// used to decide whether self-signed certs should be accepted and
// whether the name must be resolved locally instead of via DNS.
func (d DomainName) IsLocal() bool {
	return len(d.value) > len(".local") && d.value[len(d.value)-len(".local"):] == ".local"
}
