//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/releaseflow/internal/domain/commands"
	"github.com/rios0rios0/releaseflow/internal/domain/entities"
)

// StubGateCommand is a stub implementation of commands.Gate.
type StubGateCommand struct {
	ExecuteCallCount int
	Result           *commands.GateResult
	ExecuteErr       error
	LastTaskIDs      []string
}

var _ commands.Gate = (*StubGateCommand)(nil)

func (s *StubGateCommand) Execute(
	_ context.Context,
	_ *entities.Settings,
	taskIDs []string,
) (*commands.GateResult, error) {
	s.ExecuteCallCount++
	s.LastTaskIDs = taskIDs
	return s.Result, s.ExecuteErr
}
