package environment

import "github.com/torrust/tracker-deployer/internal/environment/state"

// Created is the state produced by the create command.
type Created struct{ state.EnvironmentFields }

// Provisioning is entered while the infrastructure engine builds the
// instance.
type Provisioning struct{ state.EnvironmentFields }

// Provisioned is entered once the instance exists and is reachable.
type Provisioned struct{ state.EnvironmentFields }

// Configuring is entered while the configuration engine runs its
// playbooks.
type Configuring struct{ state.EnvironmentFields }

// Configured is entered once configuration succeeds.
type Configured struct{ state.EnvironmentFields }

// Releasing is entered while release artifacts are assembled.
type Releasing struct{ state.EnvironmentFields }

// Released is entered once release artifacts are in place.
type Released struct{ state.EnvironmentFields }

// Running is entered once the tracker service is confirmed up.
type Running struct{ state.EnvironmentFields }

// Destroyed is the terminal state after teardown.
type Destroyed struct{ state.EnvironmentFields }

// ProvisionFailed is entered when any provisioning step fails.
type ProvisionFailed struct {
	state.EnvironmentFields
	Failure state.FailureContext
}

// ConfigureFailed is entered when any configuration step fails.
type ConfigureFailed struct {
	state.EnvironmentFields
	Failure state.FailureContext
}

// ReleaseFailed is entered when any release step fails.
type ReleaseFailed struct {
	state.EnvironmentFields
	Failure state.FailureContext
}

// RunFailed is entered when any run step fails.
type RunFailed struct {
	state.EnvironmentFields
	Failure state.FailureContext
}

func (s Created) ToAny() state.AnyEnvironmentState {
	return state.AnyEnvironmentState{State: state.NameCreated, Fields: s.EnvironmentFields}
}
func (s Provisioning) ToAny() state.AnyEnvironmentState {
	return state.AnyEnvironmentState{State: state.NameProvisioning, Fields: s.EnvironmentFields}
}
func (s Provisioned) ToAny() state.AnyEnvironmentState {
	return state.AnyEnvironmentState{State: state.NameProvisioned, Fields: s.EnvironmentFields}
}
func (s Configuring) ToAny() state.AnyEnvironmentState {
	return state.AnyEnvironmentState{State: state.NameConfiguring, Fields: s.EnvironmentFields}
}
func (s Configured) ToAny() state.AnyEnvironmentState {
	return state.AnyEnvironmentState{State: state.NameConfigured, Fields: s.EnvironmentFields}
}
func (s Releasing) ToAny() state.AnyEnvironmentState {
	return state.AnyEnvironmentState{State: state.NameReleasing, Fields: s.EnvironmentFields}
}
func (s Released) ToAny() state.AnyEnvironmentState {
	return state.AnyEnvironmentState{State: state.NameReleased, Fields: s.EnvironmentFields}
}
func (s Running) ToAny() state.AnyEnvironmentState {
	return state.AnyEnvironmentState{State: state.NameRunning, Fields: s.EnvironmentFields}
}
func (s Destroyed) ToAny() state.AnyEnvironmentState {
	return state.AnyEnvironmentState{State: state.NameDestroyed, Fields: s.EnvironmentFields}
}
func (s ProvisionFailed) ToAny() state.AnyEnvironmentState {
	f := s.Failure
	return state.AnyEnvironmentState{State: state.NameProvisionFailed, Fields: s.EnvironmentFields, Failure: &f}
}
func (s ConfigureFailed) ToAny() state.AnyEnvironmentState {
	f := s.Failure
	return state.AnyEnvironmentState{State: state.NameConfigureFailed, Fields: s.EnvironmentFields, Failure: &f}
}
func (s ReleaseFailed) ToAny() state.AnyEnvironmentState {
	f := s.Failure
	return state.AnyEnvironmentState{State: state.NameReleaseFailed, Fields: s.EnvironmentFields, Failure: &f}
}
func (s RunFailed) ToAny() state.AnyEnvironmentState {
	f := s.Failure
	return state.AnyEnvironmentState{State: state.NameRunFailed, Fields: s.EnvironmentFields, Failure: &f}
}
