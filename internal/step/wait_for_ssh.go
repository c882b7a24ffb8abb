package step

import (
	"context"
	"time"

	"github.com/go-logr/logr"

	"github.com/torrust/tracker-deployer/internal/sshtransport"
)

// WaitForSSH polls the instance until it accepts SSH connections or
// the timeout elapses.
type WaitForSSH struct {
	Client sshtransport.Client
}

func (s WaitForSSH) Run(ctx context.Context, logger logr.Logger, timeout time.Duration) error {
	logEnter(logger, "wait_ssh_connectivity", "timeout", timeout)
	if err := s.Client.WaitForConnectivity(ctx, timeout); err != nil {
		return err
	}
	logExit(logger, "wait_ssh_connectivity")
	return nil
}
