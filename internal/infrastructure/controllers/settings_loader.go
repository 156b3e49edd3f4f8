package controllers

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/releaseflow/internal/domain/entities"
)

//nolint:gochecknoglobals // shared terminal style
var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

// loadSettings reads the configuration and applies the global flag overrides.
func loadSettings(cmd *cobra.Command) (*entities.Settings, error) {
	configPath, _ := cmd.Flags().GetString("config")
	branch, _ := cmd.Flags().GetString("branch")
	repoDir, _ := cmd.Flags().GetString("repo")
	backend, _ := cmd.Flags().GetString("backend")
	verbose, _ := cmd.Flags().GetBool("verbose")

	if verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	settings, err := entities.NewSettings(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if branch != "" {
		settings.BranchOverride = branch
	}
	if repoDir != "" {
		settings.RepoDir = repoDir
	}
	if backend != "" {
		settings.VCS.Backend = backend
	}
	return settings, nil
}
