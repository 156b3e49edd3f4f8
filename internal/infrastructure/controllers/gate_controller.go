package controllers

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/releaseflow/internal/domain/commands"
	"github.com/rios0rios0/releaseflow/internal/domain/entities"
)

// GateController handles the "gate" subcommand.
type GateController struct {
	command commands.Gate
}

// NewGateController creates a new GateController.
func NewGateController(command commands.Gate) *GateController {
	return &GateController{command: command}
}

// GetBind returns the Cobra command metadata for the gate controller.
func (it *GateController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "gate [task-id...]",
		Short: "List the declared tasks the workflow action depends on",
		Long: `Feed the build tool's declared task identifiers, in declaration order, to the
gate of the current branch and print, one per line, those the workflow action
must wait for. Only the develop and release branches have gating tasks.`,
	}
}

// AddFlags adds no gate-specific flags.
func (it *GateController) AddFlags(_ *cobra.Command) {}

// Execute prints the gating dependencies.
func (it *GateController) Execute(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	result, err := it.command.Execute(context.Background(), settings, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, dependency := range result.Dependencies {
		fmt.Fprintln(out, dependency)
	}
	return nil
}
