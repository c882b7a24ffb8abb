package step

import (
	"github.com/go-logr/logr"

	"github.com/torrust/tracker-deployer/internal/template/tofu"
)

// RenderInfraTemplates writes the OpenTofu variable file and copies
// the rest of the infrastructure module into build_dir/tofu.
type RenderInfraTemplates struct {
	TemplatesDir string
	BuildDir     string
}

func (s RenderInfraTemplates) Run(logger logr.Logger, ctx tofu.VariablesContext) error {
	logEnter(logger, "render_opentofu_templates", "build_dir", s.BuildDir)
	if err := tofu.Render(s.TemplatesDir, s.BuildDir, ctx); err != nil {
		return err
	}
	logExit(logger, "render_opentofu_templates")
	return nil
}
