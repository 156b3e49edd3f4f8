package entities

// Action is the release step selected for the current branch.
type Action int

const (
	NoOp Action = iota
	DevelopBump
	CutRelease
	StartNextCycle
)

func (a Action) String() string {
	switch a {
	case DevelopBump:
		return "DevelopBump"
	case CutRelease:
		return "CutRelease"
	case StartNextCycle:
		return "StartNextCycle"
	default:
		return "NoOp"
	}
}

// WorkflowDecision is what WorkflowEngine chose and what ReleaseActionExecutor carries out.
type WorkflowDecision struct {
	Action        Action
	TargetVersion VersionNumber
	Description   string
}

// TagName is the release tag written for a CutRelease decision.
func (d WorkflowDecision) TagName() string {
	return "v" + d.TargetVersion.Name()
}
