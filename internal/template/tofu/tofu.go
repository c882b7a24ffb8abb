// Package tofu renders the OpenTofu variable file for an environment's
// infrastructure module and copies the rest of the static tree
// verbatim.
package tofu

import (
	"path/filepath"

	"github.com/torrust/tracker-deployer/internal/template"
)

// VariablesContext is the data passed to variables.tfvars.tera.
type VariablesContext struct {
	SSHPublicKey string
	InstanceName string
	ProfileName  string
	SSHPort      int
}

// StaticFiles lists the OpenTofu module files copied verbatim, with
// no template tokens to resolve.
var StaticFiles = []string{
	"main.tf",
	"variables.tf",
	"outputs.tf",
	"lxd.tf",
}

// Render writes variables.tfvars to {buildDir}/tofu/variables.tfvars
// from the template at {templatesDir}/tofu/variables.tfvars.tera, then
// copies the static module files into the same directory.
func Render(templatesDir, buildDir string, ctx VariablesContext) error {
	tofuBuildDir := filepath.Join(buildDir, "tofu")

	src := filepath.Join(templatesDir, "tofu", "variables.tfvars.tera")
	target := filepath.Join(tofuBuildDir, "variables.tfvars")
	if err := template.RenderToFile("variables.tfvars", src, target, ctx); err != nil {
		return err
	}

	for _, name := range StaticFiles {
		if err := template.CopyFile(filepath.Join(templatesDir, "tofu", name), filepath.Join(tofuBuildDir, name)); err != nil {
			return err
		}
	}

	return nil
}
