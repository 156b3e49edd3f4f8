package commands

import (
	"context"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/releaseflow/internal/domain/entities"
	infraRepos "github.com/rios0rios0/releaseflow/internal/infrastructure/repositories"
)

// Gate is the interface for the task gating query used by build tools.
type Gate interface {
	Execute(ctx context.Context, settings *entities.Settings, taskIDs []string) (*GateResult, error)
}

// GateResult lists the declared tasks the workflow action must wait for.
type GateResult struct {
	Branch       string
	Action       entities.Action
	Dependencies []string
}

// GateCommand feeds declared build-tool tasks through the TaskGate of the current branch.
type GateCommand struct {
	vcsRegistry *infraRepos.VCSRegistry
}

// NewGateCommand creates a new GateCommand.
func NewGateCommand(vcsRegistry *infraRepos.VCSRegistry) *GateCommand {
	return &GateCommand{vcsRegistry: vcsRegistry}
}

// Execute registers each task identifier in declaration order.
func (it *GateCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	taskIDs []string,
) (*GateResult, error) {
	vcs, err := openRepository(it.vcsRegistry, settings)
	if err != nil {
		return nil, err
	}

	engine, err := resolveWorkflow(ctx, vcs, settings)
	if err != nil {
		return nil, err
	}

	gate := engine.TaskGate()
	for _, id := range taskIDs {
		if gate.Register(id) {
			logger.Infof("Set workflow action dependent upon %s", id)
		}
	}

	return &GateResult{
		Branch:       engine.Branch(),
		Action:       engine.Action(),
		Dependencies: gate.Dependencies(),
	}, nil
}
