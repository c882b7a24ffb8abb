package environment

import "github.com/torrust/tracker-deployer/internal/valueobject"

// SSHCredentials bundles the value objects needed to construct a new
// environment. Immutable once an environment is created.
type SSHCredentials struct {
	Username       valueobject.Username
	PrivateKeyPath string
	PublicKeyPath  string
}
