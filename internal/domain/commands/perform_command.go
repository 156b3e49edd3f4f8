package commands

import (
	"context"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/releaseflow/internal/domain/entities"
	infraRepos "github.com/rios0rios0/releaseflow/internal/infrastructure/repositories"
)

// Perform is the interface for the perform command.
type Perform interface {
	Execute(ctx context.Context, settings *entities.Settings, opts PerformOptions) error
}

// PerformOptions holds runtime options for a single perform invocation.
type PerformOptions struct {
	DryRun bool
}

// PerformCommand decides the workflow action for the current branch and carries it out:
// read history -> decide -> execute the VCS steps.
type PerformCommand struct {
	vcsRegistry *infraRepos.VCSRegistry
}

// NewPerformCommand creates a new PerformCommand with the given backend registry.
func NewPerformCommand(vcsRegistry *infraRepos.VCSRegistry) *PerformCommand {
	return &PerformCommand{vcsRegistry: vcsRegistry}
}

// Execute runs the full workflow action.
func (it *PerformCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts PerformOptions,
) error {
	vcs, err := openRepository(it.vcsRegistry, settings)
	if err != nil {
		return err
	}

	engine, err := resolveWorkflow(ctx, vcs, settings)
	if err != nil {
		return err
	}

	decision, err := engine.Decide()
	if err != nil {
		return err
	}
	logger.Infof("Workflow action %s will: %s", decision.Action, decision.Description)

	if opts.DryRun {
		logger.Infof("[DRY RUN] Would run %s producing version %s", decision.Action, decision.TargetVersion)
		return nil
	}

	executor := NewReleaseActionExecutor(
		vcs,
		settings.BranchConfig(),
		settings.VCS.Remote,
		settings.History.Marker,
		CommitAuthor{Name: settings.Commit.AuthorName, Email: settings.Commit.AuthorEmail},
	)
	return executor.Execute(ctx, decision)
}
