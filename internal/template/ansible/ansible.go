// Package ansible renders the inventory and firewall playbook for an
// environment's configuration run and copies the rest of the static
// playbook tree verbatim.
package ansible

import (
	"path/filepath"

	"github.com/torrust/tracker-deployer/internal/template"
)

// InventoryContext is the data passed to inventory.yml.tera.
type InventoryContext struct {
	Host              string
	SSHPort           int
	SSHPrivateKeyPath string
	AnsibleUser       string
}

// FirewallPlaybookContext is the data passed to
// configure-firewall.yml.tera.
type FirewallPlaybookContext struct {
	SSHPort int
}

// StaticPlaybooks lists the playbook files copied verbatim, with no
// template tokens to resolve.
var StaticPlaybooks = []string{
	"install-docker.yml",
	"install-docker-compose.yml",
	"wait-cloud-init.yml",
	"configure-security-updates.yml",
	"update-apt-cache.yml",
}

// Render writes inventory.yml and configure-firewall.yml to
// {buildDir}/ansible from their .tera templates under
// {templatesDir}/ansible, then copies the static playbooks into the
// same directory.
func Render(templatesDir, buildDir string, inventory InventoryContext, firewall FirewallPlaybookContext) error {
	ansibleBuildDir := filepath.Join(buildDir, "ansible")

	if err := template.RenderToFile(
		"inventory.yml",
		filepath.Join(templatesDir, "ansible", "inventory.yml.tera"),
		filepath.Join(ansibleBuildDir, "inventory.yml"),
		inventory,
	); err != nil {
		return err
	}

	if err := template.RenderToFile(
		"configure-firewall.yml",
		filepath.Join(templatesDir, "ansible", "configure-firewall.yml.tera"),
		filepath.Join(ansibleBuildDir, "configure-firewall.yml"),
		firewall,
	); err != nil {
		return err
	}

	for _, name := range StaticPlaybooks {
		if err := template.CopyFile(filepath.Join(templatesDir, "ansible", name), filepath.Join(ansibleBuildDir, name)); err != nil {
			return err
		}
	}

	return nil
}
