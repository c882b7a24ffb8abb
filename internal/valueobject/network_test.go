package valueobject

import "testing"

func TestNewIPAddressValid(t *testing.T) {
	for _, raw := range []string{"10.0.0.42", "::1", "192.168.1.1"} {
		if _, err := NewIPAddress(raw); err != nil {
			t.Errorf("expected %q to be valid, got error: %s", raw, err)
		}
	}
}

func TestNewIPAddressInvalid(t *testing.T) {
	for _, raw := range []string{"", "not-an-ip", "999.999.999.999"} {
		if _, err := NewIPAddress(raw); err == nil {
			t.Errorf("expected %q to be rejected", raw)
		}
	}
}

func TestDomainNameIsLocal(t *testing.T) {
	local, err := NewDomainName("tracker.local")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !local.IsLocal() {
		t.Errorf("expected tracker.local to be local")
	}

	remote, err := NewDomainName("tracker.example.com")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if remote.IsLocal() {
		t.Errorf("expected tracker.example.com not to be local")
	}
}
