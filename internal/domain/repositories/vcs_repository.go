package repositories

import "context"

// VCSRepository abstracts the version-control operations the release workflow needs.
// Commits are indexed newest-first from HEAD: offset 0 is HEAD itself.
// Every mutating operation returns the backend's diagnostic output.
type VCSRepository interface {
	// CurrentBranch returns the abbreviated name of ref ("HEAD" when detached).
	CurrentBranch(ctx context.Context, ref string) (string, error)

	// CommitCount returns the number of commits reachable from HEAD.
	CommitCount(ctx context.Context) (int, error)

	// CommitsPage returns up to count one-line summaries ("<abbrev-hash> <subject>")
	// starting at offset. The order is stable for an unchanged repository.
	CommitsPage(ctx context.Context, offset, count int) ([]string, error)

	// CommitFullText returns the full header and message of the commit at offset.
	CommitFullText(ctx context.Context, offset int) (string, error)

	// CreateEmptyCommit records a commit with no tree changes. Staged changes are
	// committed too when present.
	CreateEmptyCommit(ctx context.Context, subject, authorName, authorEmail string) (string, error)

	// Commit records a commit, optionally allowing it to be empty.
	Commit(ctx context.Context, allowEmpty bool, subject, authorName, authorEmail string) (string, error)

	// Push sends refName (a branch or a tag) to remote.
	Push(ctx context.Context, remote, refName string) (string, error)

	// CreateLocalBranch creates a branch at HEAD and checks it out.
	CreateLocalBranch(ctx context.Context, name string) (string, error)

	// Checkout switches to refName, creating a tracking branch from the remote when
	// no local branch exists.
	Checkout(ctx context.Context, refName string) (string, error)

	// DeleteLocalBranch removes a local branch regardless of its merge status.
	DeleteLocalBranch(ctx context.Context, name string) (string, error)

	// Tag creates a lightweight tag at HEAD.
	Tag(ctx context.Context, name string) (string, error)

	// GlobalConfig reads a configuration value such as "user.email".
	GlobalConfig(ctx context.Context, key string) (string, error)
}
