package commands

import (
	"context"
	"fmt"
	"iter"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/releaseflow/internal/domain/entities"
	"github.com/rios0rios0/releaseflow/internal/domain/repositories"
)

const releaseNotesDivider = "\n-------\n"

// VersionHistoryReader recovers the last recorded version and release notes from commit history.
type VersionHistoryReader struct {
	vcs      repositories.VCSRepository
	pageSize int
}

// NewVersionHistoryReader creates a reader that scans history pageSize commits at a time.
func NewVersionHistoryReader(vcs repositories.VCSRepository, pageSize int) *VersionHistoryReader {
	if pageSize <= 0 {
		pageSize = entities.DefaultPageSize
	}
	return &VersionHistoryReader{vcs: vcs, pageSize: pageSize}
}

// CommitSummaries lazily yields one-line commit summaries from HEAD toward the root.
// Each range over the sequence starts again from HEAD. A VCS failure is yielded once
// and ends the sequence.
func (it *VersionHistoryReader) CommitSummaries(ctx context.Context) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		total, err := it.vcs.CommitCount(ctx)
		if err != nil {
			yield("", fmt.Errorf("%w: count commits: %w", entities.ErrVCSOperation, err))
			return
		}

		for offset := 0; offset < total; offset += it.pageSize {
			page, pageErr := it.vcs.CommitsPage(ctx, offset, it.pageSize)
			if pageErr != nil {
				yield("", fmt.Errorf("%w: read commits at offset %d: %w", entities.ErrVCSOperation, offset, pageErr))
				return
			}
			if len(page) == 0 {
				return
			}
			for _, summary := range page {
				if !yield(summary, nil) {
					return
				}
			}
		}
	}
}

// FindLastVersion returns the version string recorded by the newest commit whose
// subject contains marker: the subject's last whitespace-delimited token with
// every character other than digits and dots removed.
func (it *VersionHistoryReader) FindLastVersion(ctx context.Context, marker string) (string, error) {
	for summary, err := range it.CommitSummaries(ctx) {
		if err != nil {
			return "", err
		}
		if !strings.Contains(summary, marker) {
			continue
		}
		logger.Debugf("Found version marker commit: %s", summary)
		return extractVersion(summary), nil
	}
	return "", fmt.Errorf("%w: no commit with text %q found", entities.ErrNoVersionMarkerFound, marker)
}

// ReleaseNotesSince collects the full text of every commit containing inclusionFilter,
// newest first, stopping before the first commit containing untilMatches.
// An empty untilMatches scans the whole history.
func (it *VersionHistoryReader) ReleaseNotesSince(
	ctx context.Context,
	inclusionFilter, untilMatches string,
) (string, error) {
	total, err := it.vcs.CommitCount(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: count commits: %w", entities.ErrVCSOperation, err)
	}

	var entries []string
	for offset := range total {
		commit, textErr := it.vcs.CommitFullText(ctx, offset)
		if textErr != nil {
			return "", fmt.Errorf("%w: read commit at offset %d: %w", entities.ErrVCSOperation, offset, textErr)
		}
		if untilMatches != "" && strings.Contains(commit, untilMatches) {
			break
		}
		if strings.Contains(commit, inclusionFilter) {
			entries = append(entries, commit)
		}
	}

	return strings.Join(entries, releaseNotesDivider), nil
}

func extractVersion(summary string) string {
	fields := strings.Fields(summary)
	if len(fields) == 0 {
		return ""
	}
	return strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, fields[len(fields)-1])
}
