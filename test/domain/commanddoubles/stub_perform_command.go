//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/releaseflow/internal/domain/commands"
	"github.com/rios0rios0/releaseflow/internal/domain/entities"
)

// StubPerformCommand is a stub implementation of commands.Perform.
type StubPerformCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	LastSettings     *entities.Settings
	LastOpts         commands.PerformOptions
}

var _ commands.Perform = (*StubPerformCommand)(nil)

func (s *StubPerformCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	opts commands.PerformOptions,
) error {
	s.ExecuteCallCount++
	s.LastSettings = settings
	s.LastOpts = opts
	return s.ExecuteErr
}
