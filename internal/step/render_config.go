package step

import (
	"github.com/go-logr/logr"

	"github.com/torrust/tracker-deployer/internal/template/ansible"
)

// RenderConfigTemplates writes the Ansible inventory and firewall
// playbook and copies the rest of the static playbook tree into
// build_dir/ansible. Run only after the instance IP is known, since
// the inventory names it as the SSH target.
type RenderConfigTemplates struct {
	TemplatesDir string
	BuildDir     string
}

func (s RenderConfigTemplates) Run(logger logr.Logger, inventory ansible.InventoryContext, firewall ansible.FirewallPlaybookContext) error {
	logEnter(logger, "render_ansible_templates", "build_dir", s.BuildDir, "host", inventory.Host)
	if err := ansible.Render(s.TemplatesDir, s.BuildDir, inventory, firewall); err != nil {
		return err
	}
	logExit(logger, "render_ansible_templates")
	return nil
}
