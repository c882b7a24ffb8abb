package sshtransport

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	gossh "golang.org/x/crypto/ssh"
)

// Client is the capability steps and remote actions depend on. The
// real implementation is Transport; tests depend on this interface and
// substitute a MockClient.
type Client interface {
	Execute(cmd string) (stdout string, err error)
	CheckCommand(cmd string) bool
	WaitForConnectivity(ctx context.Context, timeout time.Duration) error
}

// Transport is the real Client, backed by golang.org/x/crypto/ssh.
// Host key checking is intentionally disabled: environments are
// short-lived instances whose host key is never pinned in advance,
// matching the ansible inventory's StrictHostKeyChecking=no.
type Transport struct {
	Host           string
	Port           int
	User           string
	PrivateKeyPath string

	dialTimeout time.Duration
}

// NewTransport builds a Transport for the given host, using the
// private key at privateKeyPath for authentication.
func NewTransport(host string, port int, user, privateKeyPath string) *Transport {
	return &Transport{Host: host, Port: port, User: user, PrivateKeyPath: privateKeyPath, dialTimeout: 10 * time.Second}
}

func (t *Transport) clientConfig() (*gossh.ClientConfig, error) {
	keyBytes, err := os.ReadFile(t.PrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("reading private key %s: %w", t.PrivateKeyPath, err)
	}
	signer, err := gossh.ParsePrivateKey(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("parsing private key %s: %w", t.PrivateKeyPath, err)
	}
	return &gossh.ClientConfig{
		User:            t.User,
		Auth:            []gossh.AuthMethod{gossh.PublicKeys(signer)},
		HostKeyCallback: gossh.InsecureIgnoreHostKey(),
		Timeout:         t.dialTimeout,
	}, nil
}

func (t *Transport) addr() string {
	return fmt.Sprintf("%s:%d", t.Host, t.Port)
}

// Execute opens a fresh SSH session, runs cmd, and returns its
// stdout. A non-zero exit status is returned as a
// *CommandError carrying the captured stdout/stderr.
func (t *Transport) Execute(cmd string) (string, error) {
	config, err := t.clientConfig()
	if err != nil {
		return "", err
	}

	conn, err := gossh.Dial("tcp", t.addr(), config)
	if err != nil {
		return "", &CommandError{Command: cmd, Cause: err}
	}
	defer conn.Close()

	session, err := conn.NewSession()
	if err != nil {
		return "", &CommandError{Command: cmd, Cause: err}
	}
	defer session.Close()

	var stdout, stderr bytes.Buffer
	session.Stdout = &stdout
	session.Stderr = &stderr

	if err := session.Run(cmd); err != nil {
		exitCode := -1
		if exitErr, ok := err.(*gossh.ExitError); ok {
			exitCode = exitErr.ExitStatus()
		}
		return stdout.String(), &CommandError{
			Command:  cmd,
			Stdout:   stdout.String(),
			Stderr:   stderr.String(),
			ExitCode: exitCode,
			Cause:    err,
		}
	}

	return stdout.String(), nil
}

// CheckCommand runs cmd and reports whether it exited successfully,
// swallowing the error. Used by validators that only care about a
// command's exit status, e.g. "docker info".
func (t *Transport) CheckCommand(cmd string) bool {
	_, err := t.Execute(cmd)
	return err == nil
}

// WaitForConnectivity polls Execute("true") at a fixed interval until
// it succeeds or the context/timeout elapses.
func (t *Transport) WaitForConnectivity(ctx context.Context, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	const pollInterval = 2 * time.Second

	var lastErr error
	for time.Now().Before(deadline) {
		if _, err := t.Execute("true"); err == nil {
			return nil
		} else {
			lastErr = err
		}

		select {
		case <-ctx.Done():
			return &ConnectivityTimeoutError{Host: t.Host, Port: t.Port, Cause: ctx.Err()}
		case <-time.After(pollInterval):
		}
	}

	return &ConnectivityTimeoutError{Host: t.Host, Port: t.Port, Cause: lastErr}
}
