package command

import (
	"github.com/go-logr/logr"

	"github.com/torrust/tracker-deployer/internal/clock"
	"github.com/torrust/tracker-deployer/internal/config"
	"github.com/torrust/tracker-deployer/internal/environment"
	"github.com/torrust/tracker-deployer/internal/environment/repository"
	"github.com/torrust/tracker-deployer/internal/valueobject"
)

// CreateHandler runs the create command: validates the supplied
// config, derives an environment's value objects and paths, and
// persists it in the Created state.
type CreateHandler struct {
	Repo   *repository.Repository
	Clock  clock.Clock
	Logger logr.Logger
}

// Run validates cfg and creates a brand-new environment from it.
func (h *CreateHandler) Run(cfg config.CreateConfig) (environment.Created, error) {
	if err := cfg.Validate(); err != nil {
		return environment.Created{}, err
	}

	name, err := valueobject.NewEnvironmentName(cfg.Name)
	if err != nil {
		return environment.Created{}, err
	}
	username, err := valueobject.NewUsername(cfg.SSH.Username)
	if err != nil {
		return environment.Created{}, err
	}
	port, err := valueobject.NewPort(cfg.SSH.Port)
	if err != nil {
		return environment.Created{}, err
	}

	creds := environment.SSHCredentials{
		Username:       username,
		PrivateKeyPath: cfg.SSH.PrivateKeyPath,
		PublicKeyPath:  cfg.SSH.PublicKeyPath,
	}

	created := environment.NewCreated(name, creds, port)
	if err := h.Repo.Save(name, created.ToAny()); err != nil {
		return environment.Created{}, err
	}

	h.Logger.Info("environment created", "name", name.String())
	return created, nil
}
