package sshtransport

import (
	"context"
	"time"
)

// MockClient is a test double for Client: each method defers to an
// optional function field, so a test only wires up the behavior it
// needs.
type MockClient struct {
	MockExecute             func(cmd string) (string, error)
	MockCheckCommand        func(cmd string) bool
	MockWaitForConnectivity func(ctx context.Context, timeout time.Duration) error
}

func (m *MockClient) Execute(cmd string) (string, error) {
	if m.MockExecute != nil {
		return m.MockExecute(cmd)
	}
	return "", nil
}

func (m *MockClient) CheckCommand(cmd string) bool {
	if m.MockCheckCommand != nil {
		return m.MockCheckCommand(cmd)
	}
	return true
}

func (m *MockClient) WaitForConnectivity(ctx context.Context, timeout time.Duration) error {
	if m.MockWaitForConnectivity != nil {
		return m.MockWaitForConnectivity(ctx, timeout)
	}
	return nil
}
