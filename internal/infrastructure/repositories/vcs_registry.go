package repositories

import (
	"fmt"
	"sort"

	"github.com/rios0rios0/releaseflow/internal/domain/entities"
	domainRepos "github.com/rios0rios0/releaseflow/internal/domain/repositories"
)

// VCSFactory opens a VCSRepository on the working copy at repoDir.
type VCSFactory func(repoDir string, settings entities.VCSSettings) (domainRepos.VCSRepository, error)

// VCSRegistry manages all registered version-control backends.
type VCSRegistry struct {
	backends map[string]VCSFactory
}

// NewVCSRegistry creates an empty backend registry.
func NewVCSRegistry() *VCSRegistry {
	return &VCSRegistry{
		backends: make(map[string]VCSFactory),
	}
}

// Register adds a backend factory under the given name (e.g. "gogit").
func (r *VCSRegistry) Register(name string, factory VCSFactory) {
	r.backends[name] = factory
}

// Get opens the named backend on repoDir.
func (r *VCSRegistry) Get(
	name, repoDir string,
	settings entities.VCSSettings,
) (domainRepos.VCSRepository, error) {
	factory, ok := r.backends[name]
	if !ok {
		return nil, fmt.Errorf("unknown vcs backend: %q (available: %v)", name, r.Names())
	}
	return factory(repoDir, settings)
}

// Names returns the sorted list of registered backend names.
func (r *VCSRegistry) Names() []string {
	names := make([]string, 0, len(r.backends))
	for name := range r.backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
