package environment

import "github.com/torrust/tracker-deployer/internal/environment/state"

// TryIntoCreated is the identity conversion when a holds Created, and
// an UnexpectedStateError otherwise.
func TryIntoCreated(a state.AnyEnvironmentState) (Created, error) {
	if a.State != state.NameCreated {
		return Created{}, &state.UnexpectedStateError{Expected: state.NameCreated, Actual: a.State}
	}
	return Created{EnvironmentFields: a.Fields}, nil
}

func TryIntoProvisioning(a state.AnyEnvironmentState) (Provisioning, error) {
	if a.State != state.NameProvisioning {
		return Provisioning{}, &state.UnexpectedStateError{Expected: state.NameProvisioning, Actual: a.State}
	}
	return Provisioning{EnvironmentFields: a.Fields}, nil
}

func TryIntoProvisioned(a state.AnyEnvironmentState) (Provisioned, error) {
	if a.State != state.NameProvisioned {
		return Provisioned{}, &state.UnexpectedStateError{Expected: state.NameProvisioned, Actual: a.State}
	}
	return Provisioned{EnvironmentFields: a.Fields}, nil
}

func TryIntoConfiguring(a state.AnyEnvironmentState) (Configuring, error) {
	if a.State != state.NameConfiguring {
		return Configuring{}, &state.UnexpectedStateError{Expected: state.NameConfiguring, Actual: a.State}
	}
	return Configuring{EnvironmentFields: a.Fields}, nil
}

func TryIntoConfigured(a state.AnyEnvironmentState) (Configured, error) {
	if a.State != state.NameConfigured {
		return Configured{}, &state.UnexpectedStateError{Expected: state.NameConfigured, Actual: a.State}
	}
	return Configured{EnvironmentFields: a.Fields}, nil
}

func TryIntoReleasing(a state.AnyEnvironmentState) (Releasing, error) {
	if a.State != state.NameReleasing {
		return Releasing{}, &state.UnexpectedStateError{Expected: state.NameReleasing, Actual: a.State}
	}
	return Releasing{EnvironmentFields: a.Fields}, nil
}

func TryIntoReleased(a state.AnyEnvironmentState) (Released, error) {
	if a.State != state.NameReleased {
		return Released{}, &state.UnexpectedStateError{Expected: state.NameReleased, Actual: a.State}
	}
	return Released{EnvironmentFields: a.Fields}, nil
}

func TryIntoRunning(a state.AnyEnvironmentState) (Running, error) {
	if a.State != state.NameRunning {
		return Running{}, &state.UnexpectedStateError{Expected: state.NameRunning, Actual: a.State}
	}
	return Running{EnvironmentFields: a.Fields}, nil
}

func TryIntoDestroyed(a state.AnyEnvironmentState) (Destroyed, error) {
	if a.State != state.NameDestroyed {
		return Destroyed{}, &state.UnexpectedStateError{Expected: state.NameDestroyed, Actual: a.State}
	}
	return Destroyed{EnvironmentFields: a.Fields}, nil
}

func TryIntoProvisionFailed(a state.AnyEnvironmentState) (ProvisionFailed, error) {
	if a.State != state.NameProvisionFailed {
		return ProvisionFailed{}, &state.UnexpectedStateError{Expected: state.NameProvisionFailed, Actual: a.State}
	}
	return ProvisionFailed{EnvironmentFields: a.Fields, Failure: *a.Failure}, nil
}

func TryIntoConfigureFailed(a state.AnyEnvironmentState) (ConfigureFailed, error) {
	if a.State != state.NameConfigureFailed {
		return ConfigureFailed{}, &state.UnexpectedStateError{Expected: state.NameConfigureFailed, Actual: a.State}
	}
	return ConfigureFailed{EnvironmentFields: a.Fields, Failure: *a.Failure}, nil
}

func TryIntoReleaseFailed(a state.AnyEnvironmentState) (ReleaseFailed, error) {
	if a.State != state.NameReleaseFailed {
		return ReleaseFailed{}, &state.UnexpectedStateError{Expected: state.NameReleaseFailed, Actual: a.State}
	}
	return ReleaseFailed{EnvironmentFields: a.Fields, Failure: *a.Failure}, nil
}

func TryIntoRunFailed(a state.AnyEnvironmentState) (RunFailed, error) {
	if a.State != state.NameRunFailed {
		return RunFailed{}, &state.UnexpectedStateError{Expected: state.NameRunFailed, Actual: a.State}
	}
	return RunFailed{EnvironmentFields: a.Fields, Failure: *a.Failure}, nil
}
