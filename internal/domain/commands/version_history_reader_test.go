//go:build unit

package commands_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/releaseflow/internal/domain/commands"
	"github.com/rios0rios0/releaseflow/internal/domain/entities"
	"github.com/rios0rios0/releaseflow/test/infrastructure/repositorydoubles"
)

func TestExtractVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		summary string
		want    string
	}{
		{summary: "abc1234 [skip ci] bump version to 1.0.3", want: "1.0.3"},
		{summary: "abc1234 bump version to v2.1.7-rc", want: "2.1.7"},
		{summary: "abc1234 bump version to 1.0.3.", want: "1.0.3."},
		{summary: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.summary, func(t *testing.T) {
			t.Parallel()

			// when
			got := commands.ExtractVersion(tt.summary)

			// then
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVersionHistoryReaderFindLastVersion(t *testing.T) {
	t.Parallel()

	t.Run("should return the newest marker commit", func(t *testing.T) {
		t.Parallel()

		// given
		vcs := repositorydoubles.NewSpyVCSRepository("develop",
			"Fix login",
			"[skip ci] bump version to 1.0.5",
			"Add settings",
			"[skip ci] bump version to 1.0.3",
		)
		reader := commands.NewVersionHistoryReader(vcs, 10)

		// when
		version, err := reader.FindLastVersion(context.Background(), entities.DefaultVersionMarker)

		// then
		require.NoError(t, err)
		assert.Equal(t, "1.0.5", version)
	})

	t.Run("should give the same answer for every page size", func(t *testing.T) {
		t.Parallel()

		// given
		subjects := make([]string, 0, 25)
		for i := range 24 {
			subjects = append(subjects, fmt.Sprintf("Change %d", i))
		}
		subjects = append(subjects, "bump version to 4.2.1")

		for _, pageSize := range []int{1, 2, 3, 7, 10, 24, 25, 100} {
			vcs := repositorydoubles.NewSpyVCSRepository("develop", subjects...)
			reader := commands.NewVersionHistoryReader(vcs, pageSize)

			// when
			version, err := reader.FindLastVersion(context.Background(), entities.DefaultVersionMarker)

			// then
			require.NoError(t, err, "page size %d", pageSize)
			assert.Equal(t, "4.2.1", version, "page size %d", pageSize)
		}
	})

	t.Run("should stop paging once the marker is found", func(t *testing.T) {
		t.Parallel()

		// given
		subjects := []string{"a", "bump version to 1.0.1", "c", "d", "e", "f", "g"}
		vcs := repositorydoubles.NewSpyVCSRepository("develop", subjects...)
		reader := commands.NewVersionHistoryReader(vcs, 2)

		// when
		_, err := reader.FindLastVersion(context.Background(), entities.DefaultVersionMarker)

		// then
		require.NoError(t, err)
		assert.Equal(t, 1, vcs.PageCalls)
	})

	t.Run("should fail when no commit carries the marker", func(t *testing.T) {
		t.Parallel()

		// given
		vcs := repositorydoubles.NewSpyVCSRepository("develop", "Initial commit", "Add readme")
		reader := commands.NewVersionHistoryReader(vcs, 1)

		// when
		_, err := reader.FindLastVersion(context.Background(), entities.DefaultVersionMarker)

		// then
		require.ErrorIs(t, err, entities.ErrNoVersionMarkerFound)
	})

	t.Run("should fail on an empty history", func(t *testing.T) {
		t.Parallel()

		// given
		vcs := repositorydoubles.NewSpyVCSRepository("develop")
		reader := commands.NewVersionHistoryReader(vcs, 10)

		// when
		_, err := reader.FindLastVersion(context.Background(), entities.DefaultVersionMarker)

		// then
		require.ErrorIs(t, err, entities.ErrNoVersionMarkerFound)
	})

	t.Run("should surface VCS failures", func(t *testing.T) {
		t.Parallel()

		// given
		vcs := repositorydoubles.NewSpyVCSRepository("develop", "bump version to 1.0.1")
		vcs.FailOn = "CommitsPage"
		vcs.FailErr = errors.New("broken pipe")
		reader := commands.NewVersionHistoryReader(vcs, 10)

		// when
		_, err := reader.FindLastVersion(context.Background(), entities.DefaultVersionMarker)

		// then
		require.ErrorIs(t, err, entities.ErrVCSOperation)
		require.ErrorIs(t, err, vcs.FailErr)
	})
}

func TestVersionHistoryReaderCommitSummaries(t *testing.T) {
	t.Parallel()

	t.Run("should restart from HEAD on each range", func(t *testing.T) {
		t.Parallel()

		// given
		vcs := repositorydoubles.NewSpyVCSRepository("develop", "c", "b", "a")
		reader := commands.NewVersionHistoryReader(vcs, 2)
		summaries := reader.CommitSummaries(context.Background())

		// when
		var first, second []string
		for summary, err := range summaries {
			require.NoError(t, err)
			first = append(first, summary)
		}
		for summary, err := range summaries {
			require.NoError(t, err)
			second = append(second, summary)
		}

		// then
		assert.Len(t, first, 3)
		assert.Equal(t, first, second)
		assert.Contains(t, first[0], "c")
	})
}

func TestVersionHistoryReaderReleaseNotesSince(t *testing.T) {
	t.Parallel()

	newHistory := func() *repositorydoubles.SpyVCSRepository {
		vcs := repositorydoubles.NewSpyVCSRepository("release",
			"Merge PR 12",
			"Tweak build",
			"Merge PR 11",
			"[skip ci] bump version to 1.0.3",
			"Merge PR 10",
		)
		vcs.Commits[0].Body = "Related work items: #12"
		vcs.Commits[2].Body = "Related work items: #11"
		vcs.Commits[4].Body = "Related work items: #10"
		return vcs
	}

	t.Run("should join matching commits newest first until the stop marker", func(t *testing.T) {
		t.Parallel()

		// given
		vcs := newHistory()
		reader := commands.NewVersionHistoryReader(vcs, 10)

		// when
		notes, err := reader.ReleaseNotesSince(context.Background(), "Related work items", "bump version to")

		// then
		require.NoError(t, err)
		want := "commit 0000005\n\n    Merge PR 12\n\n    Related work items: #12" +
			"\n-------\n" +
			"commit 0000003\n\n    Merge PR 11\n\n    Related work items: #11"
		assert.Equal(t, want, notes)
		assert.NotContains(t, notes, "#10")
		assert.Equal(t, 4, vcs.FullTextCalls)
	})

	t.Run("should scan the whole history without a stop marker", func(t *testing.T) {
		t.Parallel()

		// given
		vcs := newHistory()
		reader := commands.NewVersionHistoryReader(vcs, 10)

		// when
		notes, err := reader.ReleaseNotesSince(context.Background(), "Related work items", "")

		// then
		require.NoError(t, err)
		assert.Contains(t, notes, "#10")
	})

	t.Run("should return an empty string when nothing matches", func(t *testing.T) {
		t.Parallel()

		// given
		vcs := newHistory()
		reader := commands.NewVersionHistoryReader(vcs, 10)

		// when
		notes, err := reader.ReleaseNotesSince(context.Background(), "Reviewed-by", "bump version to")

		// then
		require.NoError(t, err)
		assert.Empty(t, notes)
	})

	t.Run("should return an empty string when HEAD is the stop commit", func(t *testing.T) {
		t.Parallel()

		// given
		vcs := repositorydoubles.NewSpyVCSRepository("release", "bump version to 1.0.3 Related work items")
		reader := commands.NewVersionHistoryReader(vcs, 10)

		// when
		notes, err := reader.ReleaseNotesSince(context.Background(), "Related work items", "bump version to")

		// then
		require.NoError(t, err)
		assert.Empty(t, notes)
	})
}
