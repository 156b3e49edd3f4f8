//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/releaseflow/internal/domain/commands"
	"github.com/rios0rios0/releaseflow/internal/domain/entities"
	"github.com/rios0rios0/releaseflow/test/infrastructure/repositorydoubles"
)

func decisionFor(t *testing.T, branch string, last entities.VersionNumber) entities.WorkflowDecision {
	t.Helper()
	decision, err := entities.NewWorkflowEngine(entities.DefaultBranchConfig(), branch, last).Decide()
	require.NoError(t, err)
	return decision
}

func TestReleaseActionExecutor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		branch      string
		lastVersion entities.VersionNumber
		wantCalls   []string
	}{
		{
			name:        "should bump develop through a temporary branch",
			branch:      "develop",
			lastVersion: entities.NewVersionNumber(1, 0, 1),
			wantCalls: []string{
				"CreateLocalBranch tmp-1.0.3",
				"DeleteLocalBranch develop",
				"Checkout develop",
				"DeleteLocalBranch tmp-1.0.3",
				"Commit [skip ci] bump version to 1.0.3",
				"Push origin develop",
			},
		},
		{
			name:        "should tag and push the release",
			branch:      "release",
			lastVersion: entities.NewVersionNumber(1, 0, 1),
			wantCalls: []string{
				"Tag v1.0.2",
				"Push origin v1.0.2",
			},
		},
		{
			name:        "should record the next cycle on develop",
			branch:      "master",
			lastVersion: entities.NewVersionNumber(1, 0, 1),
			wantCalls: []string{
				"DeleteLocalBranch develop",
				"Checkout develop",
				"Commit [skip ci] bump version to 1.1.1",
				"Push origin develop",
			},
		},
		{
			name:        "should touch nothing for other branches",
			branch:      "feature/x",
			lastVersion: entities.NewVersionNumber(1, 0, 1),
			wantCalls:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// given
			vcs := repositorydoubles.NewSpyVCSRepository(tt.branch, "bump version to "+tt.lastVersion.Name())
			executor := commands.NewReleaseActionExecutor(
				vcs, entities.DefaultBranchConfig(), "", "", commands.CommitAuthor{Name: "CI/CD", Email: "ci@example.com"},
			)

			// when
			err := executor.Execute(context.Background(), decisionFor(t, tt.branch, tt.lastVersion))

			// then
			require.NoError(t, err)
			assert.Equal(t, tt.wantCalls, vcs.Calls)
		})
	}

	t.Run("should abort at the first failing step", func(t *testing.T) {
		t.Parallel()

		// given
		vcs := repositorydoubles.NewSpyVCSRepository("develop")
		vcs.FailOn = "Checkout"
		vcs.FailErr = errors.New("remote branch not found")
		executor := commands.NewReleaseActionExecutor(
			vcs, entities.DefaultBranchConfig(), "origin", "", commands.CommitAuthor{Name: "CI/CD", Email: "ci@example.com"},
		)

		// when
		err := executor.Execute(context.Background(), decisionFor(t, "develop", entities.NewVersionNumber(1, 0, 1)))

		// then
		require.ErrorIs(t, err, entities.ErrVCSOperation)
		require.ErrorIs(t, err, vcs.FailErr)
		assert.Equal(t, []string{
			"CreateLocalBranch tmp-1.0.3",
			"DeleteLocalBranch develop",
			"Checkout develop",
		}, vcs.Calls)
	})

	t.Run("should not push a tag that failed to be created", func(t *testing.T) {
		t.Parallel()

		// given
		vcs := repositorydoubles.NewSpyVCSRepository("release")
		vcs.FailOn = "Tag"
		executor := commands.NewReleaseActionExecutor(vcs, entities.DefaultBranchConfig(), "origin", "", commands.CommitAuthor{})

		// when
		err := executor.Execute(context.Background(), decisionFor(t, "release", entities.NewVersionNumber(2, 0, 3)))

		// then
		require.ErrorIs(t, err, entities.ErrVCSOperation)
		assert.Equal(t, []string{"Tag v2.0.4"}, vcs.Calls)
	})

	t.Run("should push to the configured remote", func(t *testing.T) {
		t.Parallel()

		// given
		vcs := repositorydoubles.NewSpyVCSRepository("release")
		executor := commands.NewReleaseActionExecutor(vcs, entities.DefaultBranchConfig(), "upstream", "", commands.CommitAuthor{})

		// when
		err := executor.Execute(context.Background(), decisionFor(t, "release", entities.NewVersionNumber(1, 0, 2)))

		// then
		require.NoError(t, err)
		assert.Contains(t, vcs.Calls, "Push upstream v1.0.2")
	})

	t.Run("should fall back to git config for a missing author", func(t *testing.T) {
		t.Parallel()

		// given
		vcs := repositorydoubles.NewSpyVCSRepository("master")
		vcs.Config["user.name"] = "Jordan"
		vcs.Config["user.email"] = "jordan@example.com"
		executor := commands.NewReleaseActionExecutor(
			vcs, entities.DefaultBranchConfig(), "origin", "", commands.CommitAuthor{Name: "CI/CD"},
		)

		// when
		err := executor.Execute(context.Background(), decisionFor(t, "master", entities.NewVersionNumber(1, 0, 1)))

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"CI/CD"}, vcs.AuthorNames)
		assert.Equal(t, []string{"jordan@example.com"}, vcs.AuthorEmails)
	})

	t.Run("should record the bump so the next lookup sees it", func(t *testing.T) {
		t.Parallel()

		// given
		vcs := repositorydoubles.NewSpyVCSRepository("develop", "bump version to 1.0.1")
		executor := commands.NewReleaseActionExecutor(
			vcs, entities.DefaultBranchConfig(), "origin", "", commands.CommitAuthor{Name: "CI/CD", Email: "ci@example.com"},
		)
		require.NoError(t, executor.Execute(
			context.Background(), decisionFor(t, "develop", entities.NewVersionNumber(1, 0, 1)),
		))

		// when
		version, err := commands.NewVersionHistoryReader(vcs, 10).
			FindLastVersion(context.Background(), entities.DefaultVersionMarker)

		// then
		require.NoError(t, err)
		assert.Equal(t, "1.0.3", version)
	})
}

func TestVersionBumpSubject(t *testing.T) {
	t.Parallel()

	t.Run("should skip CI and carry the version marker", func(t *testing.T) {
		t.Parallel()

		// when
		subject := commands.VersionBumpSubject(entities.DefaultVersionMarker, entities.NewVersionNumber(1, 4, 1))

		// then
		assert.Equal(t, "[skip ci] bump version to 1.4.1", subject)
	})
}

func TestReleaseActionExecutorMarker(t *testing.T) {
	t.Parallel()

	t.Run("should record bumps with the configured marker", func(t *testing.T) {
		t.Parallel()

		// given
		marker := "set release version"
		vcs := repositorydoubles.NewSpyVCSRepository("develop", "set release version 2.0.1")
		executor := commands.NewReleaseActionExecutor(
			vcs, entities.DefaultBranchConfig(), "origin", marker, commands.CommitAuthor{Name: "CI/CD", Email: "ci@example.com"},
		)

		// when
		err := executor.Execute(context.Background(), decisionFor(t, "develop", entities.NewVersionNumber(2, 0, 1)))

		// then
		require.NoError(t, err)
		assert.Contains(t, vcs.Calls, "Commit [skip ci] set release version 2.0.3")
		version, findErr := commands.NewVersionHistoryReader(vcs, 10).FindLastVersion(context.Background(), marker)
		require.NoError(t, findErr)
		assert.Equal(t, "2.0.3", version)
	})
}
