// Package environment implements the compile-time half of the
// environment's dual-represented lifecycle: each of the thirteen
// lifecycle positions is a distinct Go type, and transition methods
// are defined only on the type that may legally perform them, so an
// illegal transition is a compile error. internal/environment/state
// holds the runtime tagged union used for persistence and collections;
// ToAny/TryIntoX bridge the two with total fallible conversions.
package environment

import (
	"path/filepath"

	"github.com/go-logr/logr"

	"github.com/torrust/tracker-deployer/internal/environment/state"
	"github.com/torrust/tracker-deployer/internal/valueobject"
)

// NewCreated builds a brand-new environment in the Created state.
// Derived paths and names are computed once, here, as a pure function
// of name; no later transition may recompute or override them.
func NewCreated(name valueobject.EnvironmentName, creds SSHCredentials, sshPort valueobject.Port) Created {
	instanceName := valueobject.NewInstanceNameForEnvironment(name)
	profileName := valueobject.NewProfileNameForEnvironment(name)

	return Created{
		EnvironmentFields: state.EnvironmentFields{
			Name:         name.String(),
			InstanceName: instanceName.String(),
			ProfileName:  profileName.String(),
			SSHCredentials: state.SSHCredentials{
				Username:       creds.Username.String(),
				PrivateKeyPath: creds.PrivateKeyPath,
				PublicKeyPath:  creds.PublicKeyPath,
			},
			SSHPort:  sshPort.Value(),
			DataDir:  filepath.Join("data", name.String()),
			BuildDir: filepath.Join("build", name.String()),
		},
	}
}

func logTransition(logger logr.Logger, f state.EnvironmentFields, from, to state.Name) {
	logger.Info("environment state transition",
		"name", f.Name,
		"instance_name", f.InstanceName,
		"from_state", string(from),
		"to_state", string(to),
	)
}
