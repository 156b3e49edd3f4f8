package gogit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/releaseflow/internal/domain/entities"
	domainRepos "github.com/rios0rios0/releaseflow/internal/domain/repositories"
)

const (
	abbrevLength    = 7
	defaultUsername = "x-access-token"
	headRef         = "HEAD"
)

// VCSRepository implements the VCS port in pure Go on top of go-git.
type VCSRepository struct {
	repo *git.Repository
	auth transport.AuthMethod

	// history caches the commits reachable from historyHead, newest first.
	history     []*object.Commit
	historyHead plumbing.Hash
}

var _ domainRepos.VCSRepository = (*VCSRepository)(nil)

// NewVCSRepository opens the repository containing repoDir.
func NewVCSRepository(repoDir string, settings entities.VCSSettings) (domainRepos.VCSRepository, error) {
	//nolint:exhaustruct // Minimal PlainOpenOptions initialization with required fields only
	repo, err := git.PlainOpenWithOptions(repoDir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository at %q: %w", repoDir, err)
	}
	return NewVCSRepositoryFrom(repo, settings), nil
}

// NewVCSRepositoryFrom wraps an already opened repository.
func NewVCSRepositoryFrom(repo *git.Repository, settings entities.VCSSettings) *VCSRepository {
	return &VCSRepository{
		repo: repo,
		auth: buildAuth(settings),
	}
}

func buildAuth(settings entities.VCSSettings) transport.AuthMethod {
	if settings.Token == "" {
		return nil
	}
	username := settings.Username
	if username == "" {
		username = defaultUsername
	}
	return &http.BasicAuth{Username: username, Password: settings.Token}
}

func (it *VCSRepository) CurrentBranch(_ context.Context, ref string) (string, error) {
	if ref == "" || ref == headRef {
		head, err := it.repo.Head()
		if err != nil {
			return "", fmt.Errorf("resolve HEAD: %w", err)
		}
		if head.Name().IsBranch() {
			return head.Name().Short(), nil
		}
		return headRef, nil
	}

	reference, err := it.repo.Reference(plumbing.NewBranchReferenceName(ref), true)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", ref, err)
	}
	return reference.Name().Short(), nil
}

func (it *VCSRepository) CommitCount(ctx context.Context) (int, error) {
	commits, err := it.commits(ctx)
	return len(commits), err
}

func (it *VCSRepository) CommitsPage(ctx context.Context, offset, count int) ([]string, error) {
	commits, err := it.commits(ctx)
	if err != nil {
		return nil, err
	}

	var page []string
	for index := offset; index < len(commits) && index < offset+count; index++ {
		commit := commits[index]
		page = append(page, commit.Hash.String()[:abbrevLength]+" "+subjectOf(commit.Message))
	}
	return page, nil
}

func (it *VCSRepository) CommitFullText(ctx context.Context, offset int) (string, error) {
	commits, err := it.commits(ctx)
	if err != nil {
		return "", err
	}
	if offset < 0 || offset >= len(commits) {
		return "", fmt.Errorf("no commit at offset %d", offset)
	}
	return formatFull(commits[offset]), nil
}

func (it *VCSRepository) CreateEmptyCommit(
	ctx context.Context,
	subject, authorName, authorEmail string,
) (string, error) {
	return it.Commit(ctx, true, subject, authorName, authorEmail)
}

func (it *VCSRepository) Commit(
	_ context.Context,
	allowEmpty bool,
	subject, authorName, authorEmail string,
) (string, error) {
	worktree, err := it.repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("open worktree: %w", err)
	}

	//nolint:exhaustruct // Committer defaults to the author
	hash, err := worktree.Commit(subject, &git.CommitOptions{
		AllowEmptyCommits: allowEmpty,
		Author: &object.Signature{
			Name:  authorName,
			Email: authorEmail,
			When:  time.Now(),
		},
	})
	if err != nil {
		return "", fmt.Errorf("commit %q: %w", subject, err)
	}
	return fmt.Sprintf("[%s] %s", hash.String()[:abbrevLength], subject), nil
}

func (it *VCSRepository) Push(ctx context.Context, remote, refName string) (string, error) {
	refSpec := it.refSpecFor(refName)
	logger.Debugf("Pushing %s to %s", refSpec, remote)

	//nolint:exhaustruct // Minimal PushOptions initialization with required fields only
	err := it.repo.PushContext(ctx, &git.PushOptions{
		RemoteName: remote,
		RefSpecs:   []config.RefSpec{refSpec},
		Auth:       it.auth,
	})
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		return "Everything up-to-date", nil
	}
	if err != nil {
		return "", fmt.Errorf("push %s to %s: %w", refName, remote, err)
	}
	return fmt.Sprintf("%s -> %s", refName, remote), nil
}

func (it *VCSRepository) CreateLocalBranch(_ context.Context, name string) (string, error) {
	branch := plumbing.NewBranchReferenceName(name)
	if _, err := it.repo.Reference(branch, false); err == nil {
		return "", fmt.Errorf("a branch named %q already exists", name)
	}

	head, err := it.repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}
	if setErr := it.repo.Storer.SetReference(plumbing.NewHashReference(branch, head.Hash())); setErr != nil {
		return "", fmt.Errorf("create branch %q: %w", name, setErr)
	}
	if setErr := it.repo.Storer.SetReference(plumbing.NewSymbolicReference(plumbing.HEAD, branch)); setErr != nil {
		return "", fmt.Errorf("switch to branch %q: %w", name, setErr)
	}
	return fmt.Sprintf("Switched to a new branch '%s'", name), nil
}

func (it *VCSRepository) Checkout(_ context.Context, refName string) (string, error) {
	worktree, err := it.repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("open worktree: %w", err)
	}

	branch := plumbing.NewBranchReferenceName(refName)
	if _, refErr := it.repo.Reference(branch, false); refErr == nil {
		//nolint:exhaustruct // Minimal CheckoutOptions initialization with required fields only
		if checkoutErr := worktree.Checkout(&git.CheckoutOptions{Branch: branch}); checkoutErr != nil {
			return "", fmt.Errorf("checkout %q: %w", refName, checkoutErr)
		}
		return fmt.Sprintf("Switched to branch '%s'", refName), nil
	}

	remoteName, remoteRef, err := it.findRemoteBranch(refName)
	if err != nil {
		return "", err
	}

	//nolint:exhaustruct // Minimal CheckoutOptions initialization with required fields only
	if checkoutErr := worktree.Checkout(&git.CheckoutOptions{
		Branch: branch,
		Hash:   remoteRef.Hash(),
		Create: true,
	}); checkoutErr != nil {
		return "", fmt.Errorf("checkout %q from %s: %w", refName, remoteName, checkoutErr)
	}

	trackErr := it.repo.CreateBranch(&config.Branch{
		Name:   refName,
		Remote: remoteName,
		Merge:  branch,
	})
	if trackErr != nil && !errors.Is(trackErr, git.ErrBranchExists) {
		return "", fmt.Errorf("track %s/%s: %w", remoteName, refName, trackErr)
	}

	return fmt.Sprintf(
		"branch '%s' set up to track '%s/%s'.\nSwitched to a new branch '%s'",
		refName, remoteName, refName, refName,
	), nil
}

func (it *VCSRepository) DeleteLocalBranch(_ context.Context, name string) (string, error) {
	branch := plumbing.NewBranchReferenceName(name)
	reference, err := it.repo.Reference(branch, false)
	if err != nil {
		return "", fmt.Errorf("branch %q not found: %w", name, err)
	}

	head, err := it.repo.Reference(plumbing.HEAD, false)
	if err == nil && head.Type() == plumbing.SymbolicReference && head.Target() == branch {
		return "", fmt.Errorf("cannot delete branch %q checked out", name)
	}

	if removeErr := it.repo.Storer.RemoveReference(branch); removeErr != nil {
		return "", fmt.Errorf("delete branch %q: %w", name, removeErr)
	}
	if cfgErr := it.repo.DeleteBranch(name); cfgErr != nil && !errors.Is(cfgErr, git.ErrBranchNotFound) {
		return "", fmt.Errorf("delete branch %q config: %w", name, cfgErr)
	}
	return fmt.Sprintf("Deleted branch %s (was %s).", name, reference.Hash().String()[:abbrevLength]), nil
}

func (it *VCSRepository) Tag(_ context.Context, name string) (string, error) {
	head, err := it.repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}
	if _, tagErr := it.repo.CreateTag(name, head.Hash(), nil); tagErr != nil {
		return "", fmt.Errorf("tag %q: %w", name, tagErr)
	}
	return "", nil
}

// GlobalConfig reads key from the merged system, global and local configuration.
// An unset key yields an empty string.
func (it *VCSRepository) GlobalConfig(_ context.Context, key string) (string, error) {
	cfg, err := it.repo.ConfigScoped(config.SystemScope)
	if err != nil {
		return "", fmt.Errorf("load git config: %w", err)
	}

	switch key {
	case "user.name":
		return cfg.User.Name, nil
	case "user.email":
		return cfg.User.Email, nil
	}

	parts := strings.Split(key, ".")
	if len(parts) < 2 { //nolint:mnd // section.option
		return "", fmt.Errorf("invalid config key %q", key)
	}
	section := cfg.Raw.Section(parts[0])
	option := parts[len(parts)-1]
	if len(parts) > 2 { //nolint:mnd // section.subsection.option
		subsection := strings.Join(parts[1:len(parts)-1], ".")
		return section.Subsection(subsection).Option(option), nil
	}
	return section.Option(option), nil
}

// commits returns the history reachable from HEAD, newest first, walking it only
// when HEAD moved since the previous call. An unborn HEAD has no history.
func (it *VCSRepository) commits(ctx context.Context) ([]*object.Commit, error) {
	head, err := it.repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve HEAD: %w", err)
	}
	if it.history != nil && it.historyHead == head.Hash() {
		return it.history, nil
	}

	history, err := it.walk(ctx, head.Hash())
	if err != nil {
		return nil, err
	}
	it.history = history
	it.historyHead = head.Hash()
	return history, nil
}

// walk lists the commits reachable from from in committer-time order, like
// `git log`. On a shallow clone it stops at the shallow boundary instead of
// reaching for parents that were never fetched.
func (it *VCSRepository) walk(ctx context.Context, from plumbing.Hash) ([]*object.Commit, error) {
	start, err := it.repo.CommitObject(from)
	if err != nil {
		return nil, fmt.Errorf("read commit %s: %w", from, err)
	}

	boundary, err := it.shallowBoundary()
	if err != nil {
		return nil, err
	}

	commits := object.NewCommitIterCTime(start, boundary, nil)
	defer commits.Close()

	history := []*object.Commit{}
	err = commits.ForEach(func(commit *object.Commit) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		history = append(history, commit)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	return history, nil
}

// shallowBoundary returns the parents of the shallow commits, which a shallow
// clone does not store.
func (it *VCSRepository) shallowBoundary() (map[plumbing.Hash]bool, error) {
	shallow, err := it.repo.Storer.Shallow()
	if err != nil {
		return nil, fmt.Errorf("read shallow commits: %w", err)
	}

	boundary := make(map[plumbing.Hash]bool)
	for _, hash := range shallow {
		commit, commitErr := it.repo.CommitObject(hash)
		if commitErr != nil {
			logger.Debugf("Skipping shallow commit %s: %v", hash, commitErr)
			continue
		}
		for _, parent := range commit.ParentHashes {
			boundary[parent] = true
		}
	}
	return boundary, nil
}

func (it *VCSRepository) refSpecFor(refName string) config.RefSpec {
	ref := plumbing.NewBranchReferenceName(refName)
	if _, err := it.repo.Reference(plumbing.NewTagReferenceName(refName), false); err == nil {
		ref = plumbing.NewTagReferenceName(refName)
	}
	return config.RefSpec(fmt.Sprintf("%s:%s", ref, ref))
}

func (it *VCSRepository) findRemoteBranch(name string) (string, *plumbing.Reference, error) {
	remotes, err := it.repo.Remotes()
	if err != nil {
		return "", nil, fmt.Errorf("list remotes: %w", err)
	}
	for _, remote := range remotes {
		remoteName := remote.Config().Name
		reference, refErr := it.repo.Reference(plumbing.NewRemoteReferenceName(remoteName, name), true)
		if refErr == nil {
			return remoteName, reference, nil
		}
	}
	return "", nil, fmt.Errorf("pathspec %q did not match any local or remote branch", name)
}

func subjectOf(message string) string {
	subject, _, _ := strings.Cut(strings.TrimSpace(message), "\n")
	return strings.TrimSpace(subject)
}

// formatFull renders a commit like `git log --pretty=full`.
func formatFull(commit *object.Commit) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "commit %s\n", commit.Hash)
	fmt.Fprintf(&builder, "Author: %s <%s>\n", commit.Author.Name, commit.Author.Email)
	fmt.Fprintf(&builder, "Commit: %s <%s>\n\n", commit.Committer.Name, commit.Committer.Email)

	lines := strings.Split(strings.TrimRight(commit.Message, "\n"), "\n")
	for i, line := range lines {
		if i > 0 {
			builder.WriteString("\n")
		}
		if line != "" {
			builder.WriteString("    " + line)
		}
	}
	return builder.String()
}
