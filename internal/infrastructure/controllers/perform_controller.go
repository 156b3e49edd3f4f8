package controllers

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/releaseflow/internal/domain/commands"
	"github.com/rios0rios0/releaseflow/internal/domain/entities"
)

// PerformController handles the "perform" subcommand.
type PerformController struct {
	command commands.Perform
}

// NewPerformController creates a new PerformController.
func NewPerformController(command commands.Perform) *PerformController {
	return &PerformController{command: command}
}

// GetBind returns the Cobra command metadata for the perform controller.
func (it *PerformController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "perform",
		Short: "Perform the workflow action for the current branch",
		Long: `Read the last recorded version from commit history and run the action
bound to the current branch:

  develop branch  bump the development version and push it
  release branch  tag the release version and push the tag
  launch branch   start the next release cycle on the develop branch
  other branches  do nothing`,
	}
}

// AddFlags adds the perform-specific flags to the given Cobra command.
func (it *PerformController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("dry-run", false, "Show what would be done without making changes")
}

// Execute runs the workflow action.
func (it *PerformController) Execute(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	return it.command.Execute(context.Background(), settings, commands.PerformOptions{DryRun: dryRun})
}
