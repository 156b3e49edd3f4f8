package controllers

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rios0rios0/releaseflow/internal/domain/commands"
	"github.com/rios0rios0/releaseflow/internal/domain/entities"
)

const (
	outputText = "text"
	outputYAML = "yaml"
)

// decisionView is the serialized form of a DecideResult.
type decisionView struct {
	Branch        string `yaml:"branch"`
	LastVersion   string `yaml:"last_version"`
	Action        string `yaml:"action"`
	TargetVersion string `yaml:"target_version"`
	Description   string `yaml:"description"`
	VersionName   string `yaml:"version_name"`
	VersionCode   int    `yaml:"version_code"`
}

// DecideController handles the "decide" subcommand.
type DecideController struct {
	command commands.Decide
}

// NewDecideController creates a new DecideController.
func NewDecideController(command commands.Decide) *DecideController {
	return &DecideController{command: command}
}

// GetBind returns the Cobra command metadata for the decide controller.
func (it *DecideController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "decide",
		Short: "Show the workflow decision without making changes",
		Long: `Resolve the current branch and the last recorded version and print the
action "perform" would take, the version it would produce, and the
version name and code a build of this branch carries.`,
	}
}

// AddFlags adds the decide-specific flags to the given Cobra command.
func (it *DecideController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", outputText, "Output format (text, yaml)")
}

// Execute prints the decision.
func (it *DecideController) Execute(cmd *cobra.Command, _ []string) error {
	output, _ := cmd.Flags().GetString("output")
	if output != outputText && output != outputYAML {
		return fmt.Errorf("unsupported output format: %q", output)
	}

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	result, err := it.command.Execute(context.Background(), settings)
	if err != nil {
		return err
	}

	return writeDecision(cmd.OutOrStdout(), output, newDecisionView(result))
}

func newDecisionView(result *commands.DecideResult) decisionView {
	return decisionView{
		Branch:        result.Branch,
		LastVersion:   result.LastVersion.Name(),
		Action:        result.Decision.Action.String(),
		TargetVersion: result.Decision.TargetVersion.Name(),
		Description:   result.Decision.Description,
		VersionName:   result.VersionName,
		VersionCode:   result.VersionCode,
	}
}

func writeDecision(out io.Writer, format string, view decisionView) error {
	if format == outputYAML {
		encoder := yaml.NewEncoder(out)
		if err := encoder.Encode(view); err != nil {
			return fmt.Errorf("failed to encode decision: %w", err)
		}
		return encoder.Close()
	}

	fmt.Fprintln(out, headerStyle.Render("Workflow decision:"))
	fmt.Fprintf(out, "  branch:         %s\n", view.Branch)
	fmt.Fprintf(out, "  last version:   %s\n", view.LastVersion)
	fmt.Fprintf(out, "  action:         %s\n", view.Action)
	fmt.Fprintf(out, "  target version: %s\n", view.TargetVersion)
	fmt.Fprintf(out, "  description:    %s\n", view.Description)
	fmt.Fprintf(out, "  version name:   %s\n", view.VersionName)
	fmt.Fprintf(out, "  version code:   %d\n", view.VersionCode)
	return nil
}
