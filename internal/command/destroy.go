package command

import (
	"os"
	"path/filepath"

	"github.com/go-logr/logr"
	"github.com/pkg/errors"

	"github.com/torrust/tracker-deployer/internal/environment"
	"github.com/torrust/tracker-deployer/internal/environment/repository"
	"github.com/torrust/tracker-deployer/internal/externaltool/tofu"
	"github.com/torrust/tracker-deployer/internal/step"
	"github.com/torrust/tracker-deployer/internal/valueobject"
)

// DestroyHandler runs the destroy command: legal from any state,
// including the failed variants (recovery = destroy + recreate). When a
// {build_dir}/tofu directory exists it releases the infrastructure
// resources with "tofu destroy", then removes the environment from the
// repository whatever state it was in. If "tofu destroy" fails, the
// error is returned and the persisted state is left in place.
type DestroyHandler struct {
	Repo   *repository.Repository
	Logger logr.Logger
}

// Run destroys the named environment. A missing environment is treated
// as already destroyed and returns no error.
func (h *DestroyHandler) Run(name valueobject.EnvironmentName) error {
	loaded, err := h.Repo.Load(name)
	if err != nil {
		var notFound *repository.NotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}

	tofuBuildDir := filepath.Join(loaded.Fields.BuildDir, "tofu")
	if _, statErr := os.Stat(tofuBuildDir); statErr == nil {
		destroyStep := step.DestroyInfra{Client: tofu.New(tofuBuildDir)}
		if err := destroyStep.Run(h.Logger, true, nil); err != nil {
			return err
		}
	}

	_ = environment.Destroy(h.Logger, loaded)
	return h.Repo.Delete(name)
}
