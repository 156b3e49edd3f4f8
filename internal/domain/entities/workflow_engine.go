package entities

import "fmt"

const (
	developPatchIncrement = 2
	nextCyclePatch        = 1
)

// WorkflowEngine maps the current branch and the last recorded version to a WorkflowDecision.
// It performs no I/O.
type WorkflowEngine struct {
	config      BranchConfig
	branch      string
	lastVersion VersionNumber
}

// NewWorkflowEngine creates an engine for one invocation.
func NewWorkflowEngine(config BranchConfig, branch string, lastVersion VersionNumber) *WorkflowEngine {
	return &WorkflowEngine{
		config:      config,
		branch:      branch,
		lastVersion: lastVersion,
	}
}

func (it *WorkflowEngine) Branch() string             { return it.branch }
func (it *WorkflowEngine) LastVersion() VersionNumber { return it.lastVersion }

// Action selects the action from the branch name alone.
func (it *WorkflowEngine) Action() Action {
	switch it.branch {
	case it.config.DevelopBranch:
		return DevelopBump
	case it.config.ReleaseBranch:
		return CutRelease
	case it.config.LaunchBranch:
		return StartNextCycle
	default:
		return NoOp
	}
}

// Decide returns the action for the branch together with the version it produces.
func (it *WorkflowEngine) Decide() (WorkflowDecision, error) {
	action := it.Action()

	var target VersionNumber
	switch action {
	case DevelopBump:
		if err := RequireDebugBuild(it.lastVersion); err != nil {
			return WorkflowDecision{}, err
		}
		target = it.lastVersion.NextPatch(developPatchIncrement)
	case CutRelease:
		target = ReleaseVersionOf(it.lastVersion)
	case StartNextCycle:
		target = it.lastVersion.NextMinor(1, nextCyclePatch)
	case NoOp:
		target = it.lastVersion
	}

	return WorkflowDecision{
		Action:        action,
		TargetVersion: target,
		Description:   it.describe(action, target),
	}, nil
}

// VersionName is the version name a build of the current branch carries.
// Only the release branch rounds an odd build code up to the next even patch.
func (it *WorkflowEngine) VersionName() string {
	return it.currentVersion().Name()
}

// VersionCode is the build code matching VersionName.
func (it *WorkflowEngine) VersionCode() int {
	return it.currentVersion().BuildCode()
}

// TaskGate returns the gate for the current branch. Only the development and
// release branches carry gating tasks.
func (it *WorkflowEngine) TaskGate() *TaskGate {
	switch it.Action() {
	case DevelopBump:
		return NewTaskGate(it.config.DevelopTaskDependencies)
	case CutRelease:
		return NewTaskGate(it.config.ReleaseTaskDependencies)
	default:
		return NewTaskGate(nil)
	}
}

func (it *WorkflowEngine) currentVersion() VersionNumber {
	if it.Action() == CutRelease {
		return ReleaseVersionOf(it.lastVersion)
	}
	return it.lastVersion
}

func (it *WorkflowEngine) describe(action Action, target VersionNumber) string {
	switch action {
	case DevelopBump:
		if it.config.DevelopTaskDescription != "" {
			return it.config.DevelopTaskDescription
		}
		return "Bump development version to: " + target.Name()
	case CutRelease:
		if it.config.ReleaseTaskDescription != "" {
			return it.config.ReleaseTaskDescription
		}
		return "Create release tag: v" + target.Name()
	case StartNextCycle:
		return "Create next dev/release branches for version: " + target.Name()
	default:
		return "Do nothing because the branch has no special behavior triggers: " + it.branch
	}
}

// RequireDebugBuild fails when version carries an even build code. An even code on
// the development branch means a release was built from the wrong commit.
func RequireDebugBuild(version VersionNumber) error {
	if version.IsRelease() {
		return fmt.Errorf("%w: expected odd build code on the development branch but was %d",
			ErrUnexpectedVersionParity, version.BuildCode())
	}
	return nil
}

// ReleaseVersionOf rounds an odd build code up to the next even patch so release
// tags always carry even codes. History is not changed.
func ReleaseVersionOf(version VersionNumber) VersionNumber {
	if version.IsRelease() {
		return version
	}
	return version.NextPatch(1)
}
