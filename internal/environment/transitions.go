package environment

import (
	"github.com/go-logr/logr"

	"github.com/torrust/tracker-deployer/internal/environment/state"
	"github.com/torrust/tracker-deployer/internal/valueobject"
)

// StartProvisioning begins the provision command: Created -> Provisioning.
func (c Created) StartProvisioning(logger logr.Logger) Provisioning {
	logTransition(logger, c.EnvironmentFields, state.NameCreated, state.NameProvisioning)
	return Provisioning{EnvironmentFields: c.EnvironmentFields}
}

// WithInstanceIP records the instance IP discovered after the
// infrastructure engine reports instance info. InstanceIP is monotone:
// this is the only place it is ever set, and it is preserved by every
// subsequent transition because each new typed state is built from the
// same EnvironmentFields value.
func (p Provisioning) WithInstanceIP(ip valueobject.IPAddress) Provisioning {
	fields := p.EnvironmentFields
	value := ip.String()
	fields.InstanceIP = &value
	return Provisioning{EnvironmentFields: fields}
}

// Provisioned completes the provision command: Provisioning -> Provisioned.
func (p Provisioning) Provisioned(logger logr.Logger) Provisioned {
	logTransition(logger, p.EnvironmentFields, state.NameProvisioning, state.NameProvisioned)
	return Provisioned{EnvironmentFields: p.EnvironmentFields}
}

// Fail transitions Provisioning -> ProvisionFailed. base is built by the
// command handler's shared failure-context helper before this call.
func (p Provisioning) Fail(logger logr.Logger, failedStep string, base state.BaseFailureContext) ProvisionFailed {
	logTransition(logger, p.EnvironmentFields, state.NameProvisioning, state.NameProvisionFailed)
	return ProvisionFailed{
		EnvironmentFields: p.EnvironmentFields,
		Failure:           state.FailureContext{BaseFailureContext: base, FailedStep: failedStep},
	}
}

// StartConfiguring begins the configure command: Provisioned -> Configuring.
func (p Provisioned) StartConfiguring(logger logr.Logger) Configuring {
	logTransition(logger, p.EnvironmentFields, state.NameProvisioned, state.NameConfiguring)
	return Configuring{EnvironmentFields: p.EnvironmentFields}
}

// Configured completes the configure command: Configuring -> Configured.
func (c Configuring) Configured(logger logr.Logger) Configured {
	logTransition(logger, c.EnvironmentFields, state.NameConfiguring, state.NameConfigured)
	return Configured{EnvironmentFields: c.EnvironmentFields}
}

// Fail transitions Configuring -> ConfigureFailed.
func (c Configuring) Fail(logger logr.Logger, failedStep string, base state.BaseFailureContext) ConfigureFailed {
	logTransition(logger, c.EnvironmentFields, state.NameConfiguring, state.NameConfigureFailed)
	return ConfigureFailed{
		EnvironmentFields: c.EnvironmentFields,
		Failure:           state.FailureContext{BaseFailureContext: base, FailedStep: failedStep},
	}
}

// StartReleasing begins the release command: Configured -> Releasing.
func (c Configured) StartReleasing(logger logr.Logger) Releasing {
	logTransition(logger, c.EnvironmentFields, state.NameConfigured, state.NameReleasing)
	return Releasing{EnvironmentFields: c.EnvironmentFields}
}

// Released completes the release command: Releasing -> Released.
func (r Releasing) Released(logger logr.Logger) Released {
	logTransition(logger, r.EnvironmentFields, state.NameReleasing, state.NameReleased)
	return Released{EnvironmentFields: r.EnvironmentFields}
}

// Fail transitions Releasing -> ReleaseFailed.
func (r Releasing) Fail(logger logr.Logger, failedStep string, base state.BaseFailureContext) ReleaseFailed {
	logTransition(logger, r.EnvironmentFields, state.NameReleasing, state.NameReleaseFailed)
	return ReleaseFailed{
		EnvironmentFields: r.EnvironmentFields,
		Failure:           state.FailureContext{BaseFailureContext: base, FailedStep: failedStep},
	}
}

// StartRunning begins the run command: Released -> Running.
func (r Released) StartRunning(logger logr.Logger) Running {
	logTransition(logger, r.EnvironmentFields, state.NameReleased, state.NameRunning)
	return Running{EnvironmentFields: r.EnvironmentFields}
}

// Fail transitions Running -> RunFailed.
func (r Running) Fail(logger logr.Logger, failedStep string, base state.BaseFailureContext) RunFailed {
	logTransition(logger, r.EnvironmentFields, state.NameRunning, state.NameRunFailed)
	return RunFailed{
		EnvironmentFields: r.EnvironmentFields,
		Failure:           state.FailureContext{BaseFailureContext: base, FailedStep: failedStep},
	}
}

// Destroy is legal from any variant, so it operates on the type-erased
// union rather than a specific typed state: Any -> Destroyed.
func Destroy(logger logr.Logger, a state.AnyEnvironmentState) Destroyed {
	logTransition(logger, a.Fields, a.State, state.NameDestroyed)
	return Destroyed{EnvironmentFields: a.Fields}
}
