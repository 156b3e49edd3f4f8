package entities

// TaskGate holds the build-tool task identifiers that must finish before the
// workflow action may run. Identifiers are registered up front; the build tool
// then reports each task it declares and gets back whether a dependency edge applies.
type TaskGate struct {
	gating       map[string]struct{}
	dependencies []string
	registered   map[string]struct{}
}

// NewTaskGate creates a gate for the given identifiers.
func NewTaskGate(identifiers []string) *TaskGate {
	gating := make(map[string]struct{}, len(identifiers))
	for _, id := range identifiers {
		gating[id] = struct{}{}
	}
	return &TaskGate{
		gating:     gating,
		registered: make(map[string]struct{}),
	}
}

// IsGating reports whether the identifier belongs to the gating set.
func (g *TaskGate) IsGating(identifier string) bool {
	_, ok := g.gating[identifier]
	return ok
}

// Register records a newly declared task and returns true when the workflow
// action now depends on it. Repeated registrations add no second edge.
func (g *TaskGate) Register(identifier string) bool {
	if !g.IsGating(identifier) {
		return false
	}
	if _, seen := g.registered[identifier]; seen {
		return true
	}
	g.registered[identifier] = struct{}{}
	g.dependencies = append(g.dependencies, identifier)
	return true
}

// Dependencies lists the registered gating tasks in registration order.
func (g *TaskGate) Dependencies() []string {
	result := make([]string, len(g.dependencies))
	copy(result, g.dependencies)
	return result
}
