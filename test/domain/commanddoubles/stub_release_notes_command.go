//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/releaseflow/internal/domain/commands"
	"github.com/rios0rios0/releaseflow/internal/domain/entities"
)

// StubReleaseNotesCommand is a stub implementation of commands.ReleaseNotes.
type StubReleaseNotesCommand struct {
	ExecuteCallCount int
	Notes            string
	ExecuteErr       error
	LastOpts         commands.ReleaseNotesOptions
}

var _ commands.ReleaseNotes = (*StubReleaseNotesCommand)(nil)

func (s *StubReleaseNotesCommand) Execute(
	_ context.Context,
	_ *entities.Settings,
	opts commands.ReleaseNotesOptions,
) (string, error) {
	s.ExecuteCallCount++
	s.LastOpts = opts
	return s.Notes, s.ExecuteErr
}
