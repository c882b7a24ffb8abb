package step

import (
	"fmt"

	"github.com/go-logr/logr"

	"github.com/torrust/tracker-deployer/internal/sshtransport"
)

// StartServices runs "docker compose up -d" in the release's deploy
// directory.
type StartServices struct {
	SSH       sshtransport.Client
	DeployDir string
}

func (s StartServices) Run(logger logr.Logger) error {
	logEnter(logger, "start_services", "deploy_dir", s.DeployDir)
	if _, err := s.SSH.Execute(fmt.Sprintf("cd %s && docker compose up -d", s.DeployDir)); err != nil {
		return err
	}
	logExit(logger, "start_services")
	return nil
}
