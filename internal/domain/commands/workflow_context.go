package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/releaseflow/internal/domain/entities"
	"github.com/rios0rios0/releaseflow/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/releaseflow/internal/infrastructure/repositories"
)

// openRepository opens the configured VCS backend on the configured working copy.
func openRepository(
	registry *infraRepos.VCSRegistry,
	settings *entities.Settings,
) (repositories.VCSRepository, error) {
	repoDir := settings.RepoDir
	if repoDir == "" {
		repoDir = "."
	}
	vcs, err := registry.Get(settings.VCS.Backend, repoDir, settings.VCS)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}
	return vcs, nil
}

// resolveWorkflow determines the current branch and the last recorded version
// and builds the engine deciding on them.
func resolveWorkflow(
	ctx context.Context,
	vcs repositories.VCSRepository,
	settings *entities.Settings,
) (*entities.WorkflowEngine, error) {
	branch := settings.BranchOverride
	if branch == "" {
		detected, err := vcs.CurrentBranch(ctx, "HEAD")
		if err != nil {
			return nil, fmt.Errorf("%w: detect current branch: %w", entities.ErrVCSOperation, err)
		}
		branch = detected
	}
	logger.Infof("Current branch is: %s", branch)

	reader := NewVersionHistoryReader(vcs, settings.History.PageSize)
	lastVersionText, err := reader.FindLastVersion(ctx, settings.History.Marker)
	if err != nil {
		return nil, err
	}

	lastVersion, err := entities.ParseVersionNumberWithCaps(lastVersionText, settings.Version)
	if err != nil {
		return nil, err
	}
	logger.Infof("Last version string: '%s' -> semantic version: '%s'", lastVersionText, lastVersion)

	return entities.NewWorkflowEngine(settings.BranchConfig(), branch, lastVersion), nil
}
