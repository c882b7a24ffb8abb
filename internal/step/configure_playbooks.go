package step

import (
	"github.com/go-logr/logr"

	"github.com/torrust/tracker-deployer/internal/externaltool/ansible"
)

// RunPlaybook runs a single named Ansible playbook against the
// rendered inventory, used for every configure-command playbook:
// container-runtime install, orchestrator install, security updates,
// and firewall configuration.
type RunPlaybook struct {
	Client    *ansible.Client
	Playbook  string
	Inventory string
}

func (s RunPlaybook) Run(logger logr.Logger) error {
	logEnter(logger, "run_playbook", "playbook", s.Playbook)
	if err := s.Client.RunPlaybook(s.Playbook, s.Inventory); err != nil {
		return err
	}
	logExit(logger, "run_playbook", "playbook", s.Playbook)
	return nil
}
