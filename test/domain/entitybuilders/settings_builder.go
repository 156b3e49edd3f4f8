//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/releaseflow/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// SettingsBuilder helps create test settings with a fluent interface.
type SettingsBuilder struct {
	*testkit.BaseBuilder
	settings entities.Settings
}

// NewSettingsBuilder creates a new settings builder starting from the defaults.
func NewSettingsBuilder() *SettingsBuilder {
	return &SettingsBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		settings:    *entities.DefaultSettings(),
	}
}

// WithBranchOverride sets the branch used instead of the detected one.
func (b *SettingsBuilder) WithBranchOverride(branch string) *SettingsBuilder {
	b.settings.BranchOverride = branch
	return b
}

// WithBranches sets the develop, release and launch branch names.
func (b *SettingsBuilder) WithBranches(develop, release, launch string) *SettingsBuilder {
	b.settings.Branches = entities.BranchSettings{Develop: develop, Release: release, Launch: launch}
	return b
}

// WithDevelopTasks sets the gating tasks of the develop branch.
func (b *SettingsBuilder) WithDevelopTasks(tasks ...string) *SettingsBuilder {
	b.settings.Tasks.Develop = tasks
	return b
}

// WithReleaseTasks sets the gating tasks of the release branch.
func (b *SettingsBuilder) WithReleaseTasks(tasks ...string) *SettingsBuilder {
	b.settings.Tasks.Release = tasks
	return b
}

// WithBackend sets the VCS backend name.
func (b *SettingsBuilder) WithBackend(backend string) *SettingsBuilder {
	b.settings.VCS.Backend = backend
	return b
}

// WithRemote sets the push remote.
func (b *SettingsBuilder) WithRemote(remote string) *SettingsBuilder {
	b.settings.VCS.Remote = remote
	return b
}

// WithAuthor sets the version bump commit author.
func (b *SettingsBuilder) WithAuthor(name, email string) *SettingsBuilder {
	b.settings.Commit = entities.CommitSettings{AuthorName: name, AuthorEmail: email}
	return b
}

// WithPageSize sets the history page size.
func (b *SettingsBuilder) WithPageSize(size int) *SettingsBuilder {
	b.settings.History.PageSize = size
	return b
}

// WithVersionMarker sets the text that identifies version bump commits.
func (b *SettingsBuilder) WithVersionMarker(marker string) *SettingsBuilder {
	b.settings.History.Marker = marker
	return b
}

// WithReleaseNotes sets the release notes filter and stop marker.
func (b *SettingsBuilder) WithReleaseNotes(filter, stopMarker string) *SettingsBuilder {
	b.settings.ReleaseNotes = entities.ReleaseNotesSettings{Filter: filter, StopMarker: stopMarker}
	return b
}

// Build creates the settings (satisfies testkit.Builder interface).
func (b *SettingsBuilder) Build() interface{} {
	return b.BuildSettings()
}

// BuildSettings creates the settings with a concrete return type.
func (b *SettingsBuilder) BuildSettings() *entities.Settings {
	settings := b.settings
	return &settings
}

// Reset clears the builder state, allowing it to be reused.
func (b *SettingsBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.settings = *entities.DefaultSettings()
	return b
}

// Clone creates a copy of the SettingsBuilder.
func (b *SettingsBuilder) Clone() testkit.Builder {
	return &SettingsBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		settings:    b.settings,
	}
}
