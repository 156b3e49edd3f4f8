package commands

import (
	"context"

	"github.com/rios0rios0/releaseflow/internal/domain/entities"
	infraRepos "github.com/rios0rios0/releaseflow/internal/infrastructure/repositories"
)

// ReleaseNotes is the interface for the release notes command.
type ReleaseNotes interface {
	Execute(ctx context.Context, settings *entities.Settings, opts ReleaseNotesOptions) (string, error)
}

// ReleaseNotesOptions overrides the configured filter and stop marker when set.
type ReleaseNotesOptions struct {
	Filter     string
	StopMarker string
}

// ReleaseNotesCommand collects the commits since the last version bump.
type ReleaseNotesCommand struct {
	vcsRegistry *infraRepos.VCSRegistry
}

// NewReleaseNotesCommand creates a new ReleaseNotesCommand.
func NewReleaseNotesCommand(vcsRegistry *infraRepos.VCSRegistry) *ReleaseNotesCommand {
	return &ReleaseNotesCommand{vcsRegistry: vcsRegistry}
}

// Execute returns the release notes excerpt, empty when no commit matches.
func (it *ReleaseNotesCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts ReleaseNotesOptions,
) (string, error) {
	vcs, err := openRepository(it.vcsRegistry, settings)
	if err != nil {
		return "", err
	}

	filter := settings.ReleaseNotes.Filter
	if opts.Filter != "" {
		filter = opts.Filter
	}
	stopMarker := settings.ReleaseNotes.StopMarker
	if opts.StopMarker != "" {
		stopMarker = opts.StopMarker
	}

	reader := NewVersionHistoryReader(vcs, settings.History.PageSize)
	return reader.ReleaseNotesSince(ctx, filter, stopMarker)
}
