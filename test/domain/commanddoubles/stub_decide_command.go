//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/releaseflow/internal/domain/commands"
	"github.com/rios0rios0/releaseflow/internal/domain/entities"
)

// StubDecideCommand is a stub implementation of commands.Decide.
type StubDecideCommand struct {
	ExecuteCallCount int
	Result           *commands.DecideResult
	ExecuteErr       error
	LastSettings     *entities.Settings
}

var _ commands.Decide = (*StubDecideCommand)(nil)

func (s *StubDecideCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
) (*commands.DecideResult, error) {
	s.ExecuteCallCount++
	s.LastSettings = settings
	return s.Result, s.ExecuteErr
}
