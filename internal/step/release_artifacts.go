package step

import (
	"fmt"
	"sort"

	"github.com/go-logr/logr"

	"github.com/torrust/tracker-deployer/internal/sshtransport"
)

// ReleaseComposeArtifacts writes the release's compose files to the
// instance over the existing SSH connection: the transport contract
// exposes only Execute/CheckCommand/WaitForConnectivity (§4.7), so
// each file is written with a heredoc rather than a separate upload
// channel.
type ReleaseComposeArtifacts struct {
	SSH       sshtransport.Client
	DeployDir string
	// Artifacts maps each release file's name (e.g. "docker-compose.yml")
	// to its rendered content.
	Artifacts map[string]string
}

// heredocMarker must not collide with any artifact's own content.
const heredocMarker = "TORRUST_DEPLOYER_EOF"

func (s ReleaseComposeArtifacts) Run(logger logr.Logger) error {
	logEnter(logger, "release_compose_artifacts", "deploy_dir", s.DeployDir, "files", len(s.Artifacts))

	if _, err := s.SSH.Execute(fmt.Sprintf("mkdir -p %s", s.DeployDir)); err != nil {
		return err
	}

	names := make([]string, 0, len(s.Artifacts))
	for name := range s.Artifacts {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		path := s.DeployDir + "/" + name
		cmd := fmt.Sprintf("cat > %s <<'%s'\n%s\n%s", path, heredocMarker, s.Artifacts[name], heredocMarker)
		if _, err := s.SSH.Execute(cmd); err != nil {
			return err
		}
	}

	logExit(logger, "release_compose_artifacts")
	return nil
}
