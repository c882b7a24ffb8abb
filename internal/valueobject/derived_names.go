package valueobject

import "fmt"

// InstanceName is the deterministic name given to the provisioned
// virtual machine instance.
type InstanceName struct {
	value string
}

// NewInstanceNameForEnvironment derives the instance name from env.
// This is a pure function of the environment name; it is never set
// independently.
func NewInstanceNameForEnvironment(env EnvironmentName) InstanceName {
	return InstanceName{value: fmt.Sprintf("torrust-tracker-vm-%s", env.String())}
}

// String returns the canonical string form.
func (n InstanceName) String() string {
	return n.value
}

// ProfileName is the deterministic name given to the infrastructure
// engine's connection profile for an environment.
type ProfileName struct {
	value string
}

// NewProfileNameForEnvironment derives the profile name from env.
func NewProfileNameForEnvironment(env EnvironmentName) ProfileName {
	return ProfileName{value: fmt.Sprintf("torrust-profile-%s", env.String())}
}

// String returns the canonical string form.
func (n ProfileName) String() string {
	return n.value
}
