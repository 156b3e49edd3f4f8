package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	envPrefix = "RELEASEFLOW"

	DefaultRemote          = "origin"
	DefaultBackend         = "gogit"
	DefaultAuthorName      = "CI/CD"
	DefaultVersionMarker   = "bump version to"
	DefaultPageSize        = 10
	DefaultNotesFilter     = "Related work items"
	DefaultNotesStopMarker = "bump version to"
)

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// Settings is the configuration read once at startup.
type Settings struct {
	Branches       BranchSettings       `mapstructure:"branches"`
	Tasks          TaskSettings         `mapstructure:"tasks"`
	Descriptions   DescriptionSettings  `mapstructure:"descriptions"`
	BranchOverride string               `mapstructure:"branch_override"`
	RepoDir        string               `mapstructure:"repo_dir"`
	VCS            VCSSettings          `mapstructure:"vcs"`
	Commit         CommitSettings       `mapstructure:"commit"`
	History        HistorySettings      `mapstructure:"history"`
	ReleaseNotes   ReleaseNotesSettings `mapstructure:"release_notes"`
	Version        VersionCaps          `mapstructure:"version"`
}

// BranchSettings names the workflow branches.
type BranchSettings struct {
	Develop string `mapstructure:"develop"`
	Release string `mapstructure:"release"`
	Launch  string `mapstructure:"launch"`
}

// TaskSettings lists the gating task identifiers per branch.
type TaskSettings struct {
	Develop []string `mapstructure:"develop"`
	Release []string `mapstructure:"release"`
}

// DescriptionSettings overrides the action descriptions per branch.
type DescriptionSettings struct {
	Develop string `mapstructure:"develop"`
	Release string `mapstructure:"release"`
}

// VCSSettings selects the backend and the remote to push to.
type VCSSettings struct {
	Backend  string `mapstructure:"backend"`  // "gogit" or "cli"
	Remote   string `mapstructure:"remote"`   // push target
	Username string `mapstructure:"username"` // HTTP basic auth user for the gogit backend
	Token    string `mapstructure:"token"`    // Inline, ${ENV_VAR}, or file path
}

// CommitSettings is the author of version bump commits. An empty email is read from git config.
type CommitSettings struct {
	AuthorName  string `mapstructure:"author_name"`
	AuthorEmail string `mapstructure:"author_email"`
}

// HistorySettings controls the last-version lookup.
type HistorySettings struct {
	Marker   string `mapstructure:"marker"`
	PageSize int    `mapstructure:"page_size"`
}

// ReleaseNotesSettings controls the release notes excerpt.
type ReleaseNotesSettings struct {
	Filter     string `mapstructure:"filter"`
	StopMarker string `mapstructure:"stop_marker"`
}

// NewSettings loads the configuration file at path, or the first file found by
// FindConfigFile when path is empty, applies RELEASEFLOW_* environment overrides and validates.
// Running without any configuration file is allowed.
func NewSettings(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		if found, err := FindConfigFile(); err == nil {
			path = found
		} else {
			logger.Debugf("No config file found, using defaults: %v", err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
		}
		logger.Debugf("Using config file: %s", path)
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	settings.VCS.Token = ResolveToken(settings.VCS.Token)

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &settings, nil
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() *Settings {
	return &Settings{
		Branches: BranchSettings{
			Develop: DefaultDevelopBranch,
			Release: DefaultReleaseBranch,
			Launch:  DefaultLaunchBranch,
		},
		RepoDir: ".",
		VCS: VCSSettings{
			Backend: DefaultBackend,
			Remote:  DefaultRemote,
		},
		Commit: CommitSettings{
			AuthorName: DefaultAuthorName,
		},
		History: HistorySettings{
			Marker:   DefaultVersionMarker,
			PageSize: DefaultPageSize,
		},
		ReleaseNotes: ReleaseNotesSettings{
			Filter:     DefaultNotesFilter,
			StopMarker: DefaultNotesStopMarker,
		},
		Version: DefaultVersionCaps(),
	}
}

func setDefaults(v *viper.Viper) {
	defaults := DefaultSettings()
	v.SetDefault("branches.develop", defaults.Branches.Develop)
	v.SetDefault("branches.release", defaults.Branches.Release)
	v.SetDefault("branches.launch", defaults.Branches.Launch)
	v.SetDefault("tasks.develop", []string{})
	v.SetDefault("tasks.release", []string{})
	v.SetDefault("descriptions.develop", "")
	v.SetDefault("descriptions.release", "")
	v.SetDefault("branch_override", "")
	v.SetDefault("repo_dir", defaults.RepoDir)
	v.SetDefault("vcs.backend", defaults.VCS.Backend)
	v.SetDefault("vcs.remote", defaults.VCS.Remote)
	v.SetDefault("vcs.username", "")
	v.SetDefault("vcs.token", "")
	v.SetDefault("commit.author_name", defaults.Commit.AuthorName)
	v.SetDefault("commit.author_email", "")
	v.SetDefault("history.marker", defaults.History.Marker)
	v.SetDefault("history.page_size", defaults.History.PageSize)
	v.SetDefault("release_notes.filter", defaults.ReleaseNotes.Filter)
	v.SetDefault("release_notes.stop_marker", defaults.ReleaseNotes.StopMarker)
	v.SetDefault("version.max_major", defaults.Version.MaxMajor)
	v.SetDefault("version.max_minor", defaults.Version.MaxMinor)
	v.SetDefault("version.max_patch", defaults.Version.MaxPatch)
}

// BranchConfig projects the settings onto the workflow engine's configuration.
func (s *Settings) BranchConfig() BranchConfig {
	return BranchConfig{
		DevelopBranch:           s.Branches.Develop,
		ReleaseBranch:           s.Branches.Release,
		LaunchBranch:            s.Branches.Launch,
		DevelopTaskDependencies: s.Tasks.Develop,
		ReleaseTaskDependencies: s.Tasks.Release,
		DevelopTaskDescription:  s.Descriptions.Develop,
		ReleaseTaskDescription:  s.Descriptions.Release,
	}
}

// Validate checks for required configuration values.
func (s *Settings) Validate() error {
	names := map[string]string{
		"branches.develop": s.Branches.Develop,
		"branches.release": s.Branches.Release,
		"branches.launch":  s.Branches.Launch,
	}
	for key, name := range names {
		if name == "" {
			return fmt.Errorf("%s is required", key)
		}
	}
	if s.Branches.Develop == s.Branches.Release ||
		s.Branches.Develop == s.Branches.Launch ||
		s.Branches.Release == s.Branches.Launch {
		return fmt.Errorf(
			"branch names must be distinct: develop=%q release=%q launch=%q",
			s.Branches.Develop, s.Branches.Release, s.Branches.Launch,
		)
	}
	if s.History.Marker == "" {
		return errors.New("history.marker is required")
	}
	if s.History.PageSize <= 0 {
		return fmt.Errorf("history.page_size must be positive, got %d", s.History.PageSize)
	}
	if s.Version.MaxMajor <= 0 || s.Version.MaxMinor <= 0 || s.Version.MaxPatch <= 0 {
		return errors.New("version caps must be positive")
	}
	return nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".releaseflow.yaml",
		".releaseflow.yml",
		"releaseflow.yaml",
		"releaseflow.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// ResolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from the file.
func ResolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	if resolved == "" {
		return resolved
	}

	if _, statErr := os.Stat(resolved); statErr == nil {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Infof("Read token from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}
