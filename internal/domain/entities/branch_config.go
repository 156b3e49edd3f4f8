package entities

const (
	DefaultDevelopBranch = "develop"
	DefaultReleaseBranch = "release"
	DefaultLaunchBranch  = "master"
)

// BranchConfig names the branches that trigger a workflow action and the
// build-tool tasks that gate the action on the development and release branches.
type BranchConfig struct {
	DevelopBranch string
	ReleaseBranch string
	LaunchBranch  string

	DevelopTaskDependencies []string
	ReleaseTaskDependencies []string

	// Optional descriptions shown for the development and release actions.
	DevelopTaskDescription string
	ReleaseTaskDescription string
}

// DefaultBranchConfig returns the conventional develop/release/master naming with no gating tasks.
func DefaultBranchConfig() BranchConfig {
	return BranchConfig{
		DevelopBranch: DefaultDevelopBranch,
		ReleaseBranch: DefaultReleaseBranch,
		LaunchBranch:  DefaultLaunchBranch,
	}
}
