package commands

import (
	"context"

	"github.com/rios0rios0/releaseflow/internal/domain/entities"
	infraRepos "github.com/rios0rios0/releaseflow/internal/infrastructure/repositories"
)

// Decide is the interface for the side-effect-free decision query.
type Decide interface {
	Execute(ctx context.Context, settings *entities.Settings) (*DecideResult, error)
}

// DecideResult is what a perform run would do on the current branch.
type DecideResult struct {
	Branch      string
	LastVersion entities.VersionNumber
	Decision    entities.WorkflowDecision
	VersionName string
	VersionCode int
}

// DecideCommand reports the workflow decision without touching the repository.
type DecideCommand struct {
	vcsRegistry *infraRepos.VCSRegistry
}

// NewDecideCommand creates a new DecideCommand.
func NewDecideCommand(vcsRegistry *infraRepos.VCSRegistry) *DecideCommand {
	return &DecideCommand{vcsRegistry: vcsRegistry}
}

// Execute resolves the branch and last version and returns the decision.
func (it *DecideCommand) Execute(ctx context.Context, settings *entities.Settings) (*DecideResult, error) {
	vcs, err := openRepository(it.vcsRegistry, settings)
	if err != nil {
		return nil, err
	}

	engine, err := resolveWorkflow(ctx, vcs, settings)
	if err != nil {
		return nil, err
	}

	decision, err := engine.Decide()
	if err != nil {
		return nil, err
	}

	return &DecideResult{
		Branch:      engine.Branch(),
		LastVersion: engine.LastVersion(),
		Decision:    decision,
		VersionName: engine.VersionName(),
		VersionCode: engine.VersionCode(),
	}, nil
}
