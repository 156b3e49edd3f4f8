package controllers

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/releaseflow/internal/domain/entities"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register controller constructors
	if err := container.Provide(NewPerformController); err != nil {
		return err
	}
	if err := container.Provide(NewDecideController); err != nil {
		return err
	}
	if err := container.Provide(NewReleaseNotesController); err != nil {
		return err
	}
	if err := container.Provide(NewGateController); err != nil {
		return err
	}
	if err := container.Provide(NewControllers); err != nil {
		return err
	}

	return nil
}

// NewControllers aggregates all controllers into a slice for the AppInternal.
func NewControllers(
	performController *PerformController,
	decideController *DecideController,
	releaseNotesController *ReleaseNotesController,
	gateController *GateController,
) *[]entities.Controller {
	return &[]entities.Controller{
		performController,
		decideController,
		releaseNotesController,
		gateController,
	}
}
