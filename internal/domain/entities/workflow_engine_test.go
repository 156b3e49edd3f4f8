//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/releaseflow/internal/domain/entities"
)

func TestWorkflowEngineDecide(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		branch      string
		lastVersion entities.VersionNumber
		action      entities.Action
		target      string
	}{
		{
			name:        "should bump odd develop version by two",
			branch:      "develop",
			lastVersion: entities.NewVersionNumber(1, 0, 1),
			action:      entities.DevelopBump,
			target:      "1.0.3",
		},
		{
			name:        "should round odd version up when cutting a release",
			branch:      "release",
			lastVersion: entities.NewVersionNumber(1, 0, 1),
			action:      entities.CutRelease,
			target:      "1.0.2",
		},
		{
			name:        "should keep even version when cutting a release",
			branch:      "release",
			lastVersion: entities.NewVersionNumber(1, 0, 2),
			action:      entities.CutRelease,
			target:      "1.0.2",
		},
		{
			name:        "should start the next minor cycle on the launch branch",
			branch:      "master",
			lastVersion: entities.NewVersionNumber(1, 0, 1),
			action:      entities.StartNextCycle,
			target:      "1.1.1",
		},
		{
			name:        "should do nothing on an unrecognized branch",
			branch:      "feature/login",
			lastVersion: entities.NewVersionNumber(1, 0, 2),
			action:      entities.NoOp,
			target:      "1.0.2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// given
			engine := entities.NewWorkflowEngine(entities.DefaultBranchConfig(), tt.branch, tt.lastVersion)

			// when
			decision, err := engine.Decide()

			// then
			require.NoError(t, err)
			assert.Equal(t, tt.action, decision.Action)
			assert.Equal(t, tt.target, decision.TargetVersion.Name())
			assert.NotEmpty(t, decision.Description)
		})
	}

	t.Run("should fail on develop when the last build code is even", func(t *testing.T) {
		t.Parallel()

		// given
		engine := entities.NewWorkflowEngine(
			entities.DefaultBranchConfig(), "develop", entities.NewVersionNumber(1, 0, 2),
		)

		// when
		_, err := engine.Decide()

		// then
		require.ErrorIs(t, err, entities.ErrUnexpectedVersionParity)
	})

	t.Run("should match custom branch names", func(t *testing.T) {
		t.Parallel()

		// given
		config := entities.BranchConfig{DevelopBranch: "dev", ReleaseBranch: "stable", LaunchBranch: "main"}
		engine := entities.NewWorkflowEngine(config, "main", entities.NewVersionNumber(2, 3, 9))

		// when
		decision, err := engine.Decide()

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.StartNextCycle, decision.Action)
		assert.Equal(t, "2.4.1", decision.TargetVersion.Name())
		assert.Equal(t, "Create next dev/release branches for version: 2.4.1", decision.Description)
	})

	t.Run("should use configured descriptions", func(t *testing.T) {
		t.Parallel()

		// given
		config := entities.DefaultBranchConfig()
		config.ReleaseTaskDescription = "Publish to the store"
		engine := entities.NewWorkflowEngine(config, "release", entities.NewVersionNumber(1, 0, 1))

		// when
		decision, err := engine.Decide()

		// then
		require.NoError(t, err)
		assert.Equal(t, "Publish to the store", decision.Description)
		assert.Equal(t, "v1.0.2", decision.TagName())
	})

	t.Run("should describe the branch when nothing happens", func(t *testing.T) {
		t.Parallel()

		// given
		engine := entities.NewWorkflowEngine(
			entities.DefaultBranchConfig(), "hotfix", entities.NewVersionNumber(1, 0, 1),
		)

		// when
		decision, err := engine.Decide()

		// then
		require.NoError(t, err)
		assert.Equal(t, "Do nothing because the branch has no special behavior triggers: hotfix", decision.Description)
	})
}

func TestWorkflowEngineVersionProperties(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		branch      string
		lastVersion entities.VersionNumber
		versionName string
		versionCode int
	}{
		{
			name:        "release branch rounds odd code up",
			branch:      "release",
			lastVersion: entities.NewVersionNumber(1, 0, 1),
			versionName: "1.0.2",
			versionCode: 100002,
		},
		{
			name:        "release branch keeps even code",
			branch:      "release",
			lastVersion: entities.NewVersionNumber(1, 0, 4),
			versionName: "1.0.4",
			versionCode: 100004,
		},
		{
			name:        "develop branch reports the last version",
			branch:      "develop",
			lastVersion: entities.NewVersionNumber(1, 0, 1),
			versionName: "1.0.1",
			versionCode: 100001,
		},
		{
			name:        "develop branch with even code does not fail the query",
			branch:      "develop",
			lastVersion: entities.NewVersionNumber(1, 0, 2),
			versionName: "1.0.2",
			versionCode: 100002,
		},
		{
			name:        "other branch reports the last version",
			branch:      "feature/x",
			lastVersion: entities.NewVersionNumber(3, 2, 7),
			versionName: "3.2.7",
			versionCode: 302007,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// given
			engine := entities.NewWorkflowEngine(entities.DefaultBranchConfig(), tt.branch, tt.lastVersion)

			// when / then
			assert.Equal(t, tt.versionName, engine.VersionName())
			assert.Equal(t, tt.versionCode, engine.VersionCode())
		})
	}
}

func TestParityPredicates(t *testing.T) {
	t.Parallel()

	t.Run("should accept odd and reject even build codes for development", func(t *testing.T) {
		t.Parallel()

		// when / then
		require.NoError(t, entities.RequireDebugBuild(entities.NewVersionNumber(1, 0, 1)))
		require.ErrorIs(t,
			entities.RequireDebugBuild(entities.NewVersionNumber(1, 0, 2)),
			entities.ErrUnexpectedVersionParity,
		)
	})

	t.Run("should always produce an even release version", func(t *testing.T) {
		t.Parallel()

		for patch := range 20 {
			// given
			version := entities.NewVersionNumber(1, 3, patch)

			// when
			release := entities.ReleaseVersionOf(version)

			// then
			assert.True(t, release.IsRelease(), version.Name())
			assert.LessOrEqual(t, release.Patch()-version.Patch(), 1)
		}
	})
}

func TestWorkflowEngineTaskGate(t *testing.T) {
	t.Parallel()

	config := entities.DefaultBranchConfig()
	config.DevelopTaskDependencies = []string{":app:assembleDebug"}
	config.ReleaseTaskDependencies = []string{":app:assembleRelease", ":app:bundleRelease"}

	tests := []struct {
		name   string
		branch string
		gating []string
		other  string
	}{
		{name: "develop uses develop tasks", branch: "develop", gating: []string{":app:assembleDebug"}, other: ":app:assembleRelease"},
		{name: "release uses release tasks", branch: "release", gating: config.ReleaseTaskDependencies, other: ":app:assembleDebug"},
		{name: "launch has no gating tasks", branch: "master", gating: nil, other: ":app:assembleDebug"},
		{name: "other branches have no gating tasks", branch: "feature/x", gating: nil, other: ":app:assembleRelease"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// given
			engine := entities.NewWorkflowEngine(config, tt.branch, entities.NewVersionNumber(1, 0, 1))

			// when
			gate := engine.TaskGate()

			// then
			for _, id := range tt.gating {
				assert.True(t, gate.IsGating(id), id)
			}
			assert.False(t, gate.IsGating(tt.other))
		})
	}
}
