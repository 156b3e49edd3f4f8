//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"
	"strings"

	"github.com/rios0rios0/releaseflow/internal/domain/repositories"
)

// FakeCommit is one commit of the in-memory history.
type FakeCommit struct {
	Hash    string
	Subject string
	Body    string
}

// SpyVCSRepository implements repositories.VCSRepository over an in-memory history.
// Commits are stored newest-first. Mutating calls are recorded in Calls as
// "Operation arg..." and can be made to fail through FailOn.
type SpyVCSRepository struct {
	// --- state ---
	Branch  string
	Commits []FakeCommit
	Config  map[string]string

	// --- failure injection ---
	FailOn  string // operation name, e.g. "Push"
	FailErr error

	// --- call tracking ---
	Calls         []string
	PageCalls     int
	FullTextCalls int
	AuthorNames   []string
	AuthorEmails  []string
}

var _ repositories.VCSRepository = (*SpyVCSRepository)(nil)

// NewSpyVCSRepository creates a spy on branch with the given subjects, newest first.
func NewSpyVCSRepository(branch string, subjects ...string) *SpyVCSRepository {
	commits := make([]FakeCommit, 0, len(subjects))
	for i, subject := range subjects {
		commits = append(commits, FakeCommit{
			Hash:    fmt.Sprintf("%07x", len(subjects)-i),
			Subject: subject,
		})
	}
	return &SpyVCSRepository{
		Branch:  branch,
		Commits: commits,
		Config:  map[string]string{},
	}
}

func (s *SpyVCSRepository) fail(operation string) error {
	if s.FailOn != operation {
		return nil
	}
	if s.FailErr != nil {
		return s.FailErr
	}
	return fmt.Errorf("%s failed", operation)
}

func (s *SpyVCSRepository) record(operation string, args ...string) error {
	s.Calls = append(s.Calls, strings.TrimSpace(operation+" "+strings.Join(args, " ")))
	return s.fail(operation)
}

func (s *SpyVCSRepository) CurrentBranch(_ context.Context, _ string) (string, error) {
	if err := s.fail("CurrentBranch"); err != nil {
		return "", err
	}
	return s.Branch, nil
}

func (s *SpyVCSRepository) CommitCount(_ context.Context) (int, error) {
	if err := s.fail("CommitCount"); err != nil {
		return 0, err
	}
	return len(s.Commits), nil
}

func (s *SpyVCSRepository) CommitsPage(_ context.Context, offset, count int) ([]string, error) {
	s.PageCalls++
	if err := s.fail("CommitsPage"); err != nil {
		return nil, err
	}
	var page []string
	for i := offset; i < len(s.Commits) && i < offset+count; i++ {
		page = append(page, s.Commits[i].Hash+" "+s.Commits[i].Subject)
	}
	return page, nil
}

func (s *SpyVCSRepository) CommitFullText(_ context.Context, offset int) (string, error) {
	s.FullTextCalls++
	if err := s.fail("CommitFullText"); err != nil {
		return "", err
	}
	if offset >= len(s.Commits) {
		return "", fmt.Errorf("no commit at offset %d", offset)
	}
	commit := s.Commits[offset]
	text := fmt.Sprintf("commit %s\n\n    %s", commit.Hash, commit.Subject)
	if commit.Body != "" {
		text += "\n\n    " + commit.Body
	}
	return text, nil
}

func (s *SpyVCSRepository) CreateEmptyCommit(
	ctx context.Context,
	subject, authorName, authorEmail string,
) (string, error) {
	return s.Commit(ctx, true, subject, authorName, authorEmail)
}

func (s *SpyVCSRepository) Commit(
	_ context.Context,
	allowEmpty bool,
	subject, authorName, authorEmail string,
) (string, error) {
	if err := s.record("Commit", subject); err != nil {
		return "", err
	}
	if !allowEmpty {
		return "", fmt.Errorf("nothing to commit")
	}
	s.AuthorNames = append(s.AuthorNames, authorName)
	s.AuthorEmails = append(s.AuthorEmails, authorEmail)
	s.Commits = append([]FakeCommit{{Hash: fmt.Sprintf("%07x", len(s.Commits)+1), Subject: subject}}, s.Commits...)
	return "committed " + subject, nil
}

func (s *SpyVCSRepository) Push(_ context.Context, remote, refName string) (string, error) {
	return "", s.record("Push", remote, refName)
}

func (s *SpyVCSRepository) CreateLocalBranch(_ context.Context, name string) (string, error) {
	if err := s.record("CreateLocalBranch", name); err != nil {
		return "", err
	}
	s.Branch = name
	return "", nil
}

func (s *SpyVCSRepository) Checkout(_ context.Context, refName string) (string, error) {
	if err := s.record("Checkout", refName); err != nil {
		return "", err
	}
	s.Branch = refName
	return "", nil
}

func (s *SpyVCSRepository) DeleteLocalBranch(_ context.Context, name string) (string, error) {
	return "", s.record("DeleteLocalBranch", name)
}

func (s *SpyVCSRepository) Tag(_ context.Context, name string) (string, error) {
	return "", s.record("Tag", name)
}

func (s *SpyVCSRepository) GlobalConfig(_ context.Context, key string) (string, error) {
	if err := s.fail("GlobalConfig"); err != nil {
		return "", err
	}
	return s.Config[key], nil
}
