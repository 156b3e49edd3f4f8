package controllers

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/releaseflow/internal/domain/commands"
	"github.com/rios0rios0/releaseflow/internal/domain/entities"
)

// ReleaseNotesController handles the "release-notes" subcommand.
type ReleaseNotesController struct {
	command commands.ReleaseNotes
}

// NewReleaseNotesController creates a new ReleaseNotesController.
func NewReleaseNotesController(command commands.ReleaseNotes) *ReleaseNotesController {
	return &ReleaseNotesController{command: command}
}

// GetBind returns the Cobra command metadata for the release notes controller.
func (it *ReleaseNotesController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "release-notes",
		Short: "Print the release notes since the last version bump",
		Long: `Walk commit history from HEAD and print every commit mentioning the filter
text, stopping at the last version bump commit.`,
	}
}

// AddFlags adds the release notes flags to the given Cobra command.
func (it *ReleaseNotesController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("filter", "", "Only include commits containing this text (default from config)")
	cmd.Flags().String("until", "", "Stop at the first commit containing this text (default from config)")
}

// Execute prints the release notes to standard output.
func (it *ReleaseNotesController) Execute(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	filter, _ := cmd.Flags().GetString("filter")
	until, _ := cmd.Flags().GetString("until")

	notes, err := it.command.Execute(context.Background(), settings, commands.ReleaseNotesOptions{
		Filter:     filter,
		StopMarker: until,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, headerStyle.Render("Release Notes:"))
	fmt.Fprintln(out, notes)
	return nil
}
