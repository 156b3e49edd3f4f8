package commands

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all command providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register command constructors
	constructors := []interface{}{
		NewPerformCommand,
		NewDecideCommand,
		NewReleaseNotesCommand,
		NewGateCommand,
	}
	for _, constructor := range constructors {
		if err := container.Provide(constructor); err != nil {
			return err
		}
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *PerformCommand) Perform {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *DecideCommand) Decide {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *ReleaseNotesCommand) ReleaseNotes {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *GateCommand) Gate {
		return impl
	}); err != nil {
		return err
	}

	return nil
}
