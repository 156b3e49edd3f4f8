package repositories

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/releaseflow/internal/infrastructure/repositories/gitcli"
	"github.com/rios0rios0/releaseflow/internal/infrastructure/repositories/gogit"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register VCS registry with all backend factories
	return container.Provide(func() *VCSRegistry {
		reg := NewVCSRegistry()
		reg.Register("gogit", gogit.NewVCSRepository)
		reg.Register("cli", gitcli.NewVCSRepository)
		return reg
	})
}
