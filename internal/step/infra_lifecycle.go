package step

import (
	"github.com/go-logr/logr"

	"github.com/torrust/tracker-deployer/internal/externaltool/tofu"
)

// InitInfra runs "tofu init" in the rendered module directory.
type InitInfra struct {
	Client *tofu.Client
}

func (s InitInfra) Run(logger logr.Logger) error {
	logEnter(logger, "initialize_infrastructure")
	if err := s.Client.Init(); err != nil {
		return err
	}
	logExit(logger, "initialize_infrastructure")
	return nil
}

// ValidateInfra runs "tofu validate".
type ValidateInfra struct {
	Client *tofu.Client
}

func (s ValidateInfra) Run(logger logr.Logger) error {
	logEnter(logger, "validate_infrastructure")
	if err := s.Client.Validate(); err != nil {
		return err
	}
	logExit(logger, "validate_infrastructure")
	return nil
}

// PlanInfra runs "tofu plan".
type PlanInfra struct {
	Client *tofu.Client
}

func (s PlanInfra) Run(logger logr.Logger, args []string) error {
	logEnter(logger, "plan_infrastructure")
	if err := s.Client.Plan(args); err != nil {
		return err
	}
	logExit(logger, "plan_infrastructure")
	return nil
}

// ApplyInfra runs "tofu apply".
type ApplyInfra struct {
	Client *tofu.Client
}

func (s ApplyInfra) Run(logger logr.Logger, autoApprove bool, args []string) error {
	logEnter(logger, "apply_infrastructure", "auto_approve", autoApprove)
	if err := s.Client.Apply(autoApprove, args); err != nil {
		return err
	}
	logExit(logger, "apply_infrastructure")
	return nil
}

// DestroyInfra runs "tofu destroy".
type DestroyInfra struct {
	Client *tofu.Client
}

func (s DestroyInfra) Run(logger logr.Logger, autoApprove bool, args []string) error {
	logEnter(logger, "destroy_infrastructure", "auto_approve", autoApprove)
	if err := s.Client.Destroy(autoApprove, args); err != nil {
		return err
	}
	logExit(logger, "destroy_infrastructure")
	return nil
}

// GetInstanceInfo runs "tofu output -json" and returns the discovered
// instance info.
type GetInstanceInfo struct {
	Client *tofu.Client
}

func (s GetInstanceInfo) Run(logger logr.Logger) (tofu.InstanceInfo, error) {
	logEnter(logger, "get_instance_info")
	info, err := s.Client.Output()
	if err != nil {
		return tofu.InstanceInfo{}, err
	}
	logExit(logger, "get_instance_info", "instance_ip", info.IPAddress)
	return info, nil
}
