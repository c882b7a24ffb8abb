package step

import (
	"context"

	"github.com/go-logr/logr"

	"github.com/torrust/tracker-deployer/internal/remoteaction"
)

// ValidateCloudInit runs CloudInitValidator against the instance.
type ValidateCloudInit struct {
	Action remoteaction.RemoteAction
}

func (s ValidateCloudInit) Run(ctx context.Context, logger logr.Logger, ip string) error {
	return runValidator(ctx, logger, "validate_cloud_init", s.Action, ip)
}

// ValidateContainerRuntime runs ContainerRuntimeValidator against the
// instance.
type ValidateContainerRuntime struct {
	Action remoteaction.RemoteAction
}

func (s ValidateContainerRuntime) Run(ctx context.Context, logger logr.Logger, ip string) error {
	return runValidator(ctx, logger, "validate_container_runtime", s.Action, ip)
}

// ValidateContainerOrchestrator runs ContainerOrchestratorValidator
// against the instance.
type ValidateContainerOrchestrator struct {
	Action remoteaction.RemoteAction
}

func (s ValidateContainerOrchestrator) Run(ctx context.Context, logger logr.Logger, ip string) error {
	return runValidator(ctx, logger, "validate_container_orchestrator", s.Action, ip)
}

// ValidateRunningServices runs one or more RunningServicesValidator
// flavors (internal and/or external) against the instance.
type ValidateRunningServices struct {
	Actions []remoteaction.RemoteAction
}

func (s ValidateRunningServices) Run(ctx context.Context, logger logr.Logger, ip string) error {
	logEnter(logger, "validate_running_services", "ip", ip)
	for _, action := range s.Actions {
		if err := action.Execute(ctx, ip); err != nil {
			return err
		}
	}
	logExit(logger, "validate_running_services")
	return nil
}

func runValidator(ctx context.Context, logger logr.Logger, name string, action remoteaction.RemoteAction, ip string) error {
	logEnter(logger, name, "ip", ip)
	if err := action.Execute(ctx, ip); err != nil {
		return err
	}
	logExit(logger, name)
	return nil
}
