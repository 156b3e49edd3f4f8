package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/mod/semver"

	"github.com/rios0rios0/releaseflow/internal/domain/entities"
	"github.com/rios0rios0/releaseflow/internal/domain/repositories"
)

const (
	skipCIPrefix       = "[skip ci] "
	tempBranchPrefix   = "tmp-"
	userNameConfigKey  = "user.name"
	userEmailConfigKey = "user.email"
)

// CommitAuthor identifies who records version bump commits. Empty fields are
// read from the VCS configuration.
type CommitAuthor struct {
	Name  string
	Email string
}

// ReleaseActionExecutor runs the VCS steps of a WorkflowDecision strictly in order.
// The first failing step aborts the sequence; completed steps are not rolled back.
type ReleaseActionExecutor struct {
	vcs    repositories.VCSRepository
	config entities.BranchConfig
	remote string
	marker string
	author CommitAuthor
}

// NewReleaseActionExecutor creates an executor pushing to remote. Bump commits
// carry marker so the history reader finds them again.
func NewReleaseActionExecutor(
	vcs repositories.VCSRepository,
	config entities.BranchConfig,
	remote, marker string,
	author CommitAuthor,
) *ReleaseActionExecutor {
	if remote == "" {
		remote = entities.DefaultRemote
	}
	if marker == "" {
		marker = entities.DefaultVersionMarker
	}
	return &ReleaseActionExecutor{
		vcs:    vcs,
		config: config,
		remote: remote,
		marker: marker,
		author: author,
	}
}

// VersionBumpSubject is the subject of the empty commit recording version.
func VersionBumpSubject(marker string, version entities.VersionNumber) string {
	return skipCIPrefix + marker + " " + version.Name()
}

// Execute performs the side effects of decision.
func (it *ReleaseActionExecutor) Execute(ctx context.Context, decision entities.WorkflowDecision) error {
	var err error
	switch decision.Action {
	case entities.DevelopBump:
		err = it.bumpDevelopVersion(ctx, decision.TargetVersion)
	case entities.CutRelease:
		err = it.createReleaseTag(ctx, decision.TagName())
	case entities.StartNextCycle:
		err = it.startNextCycle(ctx, decision.TargetVersion)
	default:
		logger.Info(decision.Description)
		return nil
	}
	if err != nil {
		return err
	}

	logger.Info("Workflow action completed")
	return nil
}

func (it *ReleaseActionExecutor) bumpDevelopVersion(ctx context.Context, next entities.VersionNumber) error {
	branch := it.config.DevelopBranch
	tmpBranch := tempBranchPrefix + next.Name()

	return runSteps([]vcsStep{
		{
			"creating temporary branch: " + tmpBranch,
			func() (string, error) { return it.vcs.CreateLocalBranch(ctx, tmpBranch) },
		},
		it.deleteLocalStep(ctx, branch),
		it.checkoutRemoteStep(ctx, branch),
		{
			"deleting temporary branch: " + tmpBranch,
			func() (string, error) { return it.vcs.DeleteLocalBranch(ctx, tmpBranch) },
		},
		it.commitStep(ctx, next),
		it.pushStep(ctx, branch),
	})
}

func (it *ReleaseActionExecutor) createReleaseTag(ctx context.Context, tagName string) error {
	if !semver.IsValid(tagName) {
		return fmt.Errorf("%w: %q is not a valid release tag", entities.ErrInvalidVersionFormat, tagName)
	}

	return runSteps([]vcsStep{
		{
			"creating tag: " + tagName,
			func() (string, error) { return it.vcs.Tag(ctx, tagName) },
		},
		it.pushStep(ctx, tagName),
	})
}

func (it *ReleaseActionExecutor) startNextCycle(ctx context.Context, next entities.VersionNumber) error {
	branch := it.config.DevelopBranch

	return runSteps([]vcsStep{
		it.deleteLocalStep(ctx, branch),
		it.checkoutRemoteStep(ctx, branch),
		it.commitStep(ctx, next),
		it.pushStep(ctx, branch),
	})
}

func (it *ReleaseActionExecutor) deleteLocalStep(ctx context.Context, branch string) vcsStep {
	return vcsStep{
		fmt.Sprintf("ensuring %s is up-to-date: deleting local branch %s", branch, branch),
		func() (string, error) { return it.vcs.DeleteLocalBranch(ctx, branch) },
	}
}

func (it *ReleaseActionExecutor) checkoutRemoteStep(ctx context.Context, branch string) vcsStep {
	return vcsStep{
		fmt.Sprintf("ensuring %s is up-to-date: checking out remote branch %s", branch, branch),
		func() (string, error) { return it.vcs.Checkout(ctx, branch) },
	}
}

func (it *ReleaseActionExecutor) commitStep(ctx context.Context, version entities.VersionNumber) vcsStep {
	return vcsStep{
		"committing version bump: " + version.Name(),
		func() (string, error) { return it.commitVersionBump(ctx, version) },
	}
}

func (it *ReleaseActionExecutor) pushStep(ctx context.Context, refName string) vcsStep {
	return vcsStep{
		fmt.Sprintf("pushing %s to %s", refName, it.remote),
		func() (string, error) { return it.vcs.Push(ctx, it.remote, refName) },
	}
}

func (it *ReleaseActionExecutor) commitVersionBump(ctx context.Context, version entities.VersionNumber) (string, error) {
	name, err := it.authorField(ctx, it.author.Name, userNameConfigKey)
	if err != nil {
		return "", err
	}
	email, err := it.authorField(ctx, it.author.Email, userEmailConfigKey)
	if err != nil {
		return "", err
	}
	return it.vcs.CreateEmptyCommit(ctx, VersionBumpSubject(it.marker, version), name, email)
}

func (it *ReleaseActionExecutor) authorField(ctx context.Context, configured, key string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	value, err := it.vcs.GlobalConfig(ctx, key)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", key, err)
	}
	return value, nil
}

// vcsStep is one blocking VCS call together with the progress line logged before it.
type vcsStep struct {
	description string
	run         func() (string, error)
}

func runSteps(steps []vcsStep) error {
	for _, step := range steps {
		logger.Info(step.description)
		output, err := step.run()
		if err != nil {
			return fmt.Errorf("%w: %s: %w", entities.ErrVCSOperation, step.description, err)
		}
		if output != "" {
			logger.Debug(output)
		}
	}
	return nil
}
