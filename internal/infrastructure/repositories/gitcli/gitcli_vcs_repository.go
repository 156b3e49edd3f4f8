package gitcli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/releaseflow/internal/domain/entities"
	domainRepos "github.com/rios0rios0/releaseflow/internal/domain/repositories"
)

// configKeyUnsetExitCode is what `git config <key>` returns when the key is not set.
const configKeyUnsetExitCode = 1

// Runner executes git with the given arguments in a directory and returns trimmed stdout.
type Runner func(ctx context.Context, dir string, args ...string) (string, error)

// VCSRepository implements the VCS port by running the git binary.
// Authentication is left to the user's credential helpers.
type VCSRepository struct {
	dir string
	run Runner
}

var _ domainRepos.VCSRepository = (*VCSRepository)(nil)

// NewVCSRepository creates a backend running git inside repoDir.
func NewVCSRepository(repoDir string, settings entities.VCSSettings) (domainRepos.VCSRepository, error) {
	if _, err := exec.LookPath("git"); err != nil {
		return nil, fmt.Errorf("git binary not found: %w", err)
	}
	if settings.Token != "" {
		logger.Debug("The cli backend ignores vcs.token, relying on git credential helpers")
	}
	return NewVCSRepositoryWithRunner(repoDir, RunGit), nil
}

// NewVCSRepositoryWithRunner creates a backend with a custom runner.
func NewVCSRepositoryWithRunner(repoDir string, run Runner) *VCSRepository {
	return &VCSRepository{dir: repoDir, run: run}
}

// RunGit runs `git args...` in dir.
func RunGit(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(string(output)), nil
}

func (it *VCSRepository) CurrentBranch(ctx context.Context, ref string) (string, error) {
	if ref == "" {
		ref = "HEAD"
	}
	return it.run(ctx, it.dir, "rev-parse", "--abbrev-ref", ref)
}

func (it *VCSRepository) CommitCount(ctx context.Context) (int, error) {
	output, err := it.run(ctx, it.dir, "rev-list", "--count", "HEAD")
	if err != nil {
		return 0, err
	}
	count, err := strconv.Atoi(output)
	if err != nil {
		return 0, fmt.Errorf("unexpected commit count %q: %w", output, err)
	}
	return count, nil
}

func (it *VCSRepository) CommitsPage(ctx context.Context, offset, count int) ([]string, error) {
	output, err := it.run(ctx, it.dir,
		"log",
		"--abbrev-commit",
		"--pretty=oneline",
		"--skip="+strconv.Itoa(offset),
		"--max-count="+strconv.Itoa(count),
	)
	if err != nil {
		return nil, err
	}
	if output == "" {
		return nil, nil
	}
	return strings.Split(output, "\n"), nil
}

func (it *VCSRepository) CommitFullText(ctx context.Context, offset int) (string, error) {
	return it.run(ctx, it.dir, "log", "--skip="+strconv.Itoa(offset), "--max-count=1", "--pretty=full")
}

func (it *VCSRepository) CreateEmptyCommit(
	ctx context.Context,
	subject, authorName, authorEmail string,
) (string, error) {
	return it.Commit(ctx, true, subject, authorName, authorEmail)
}

func (it *VCSRepository) Commit(
	ctx context.Context,
	allowEmpty bool,
	subject, authorName, authorEmail string,
) (string, error) {
	args := []string{"commit"}
	if allowEmpty {
		args = append(args, "--allow-empty")
	}
	args = append(args, fmt.Sprintf("--author=%s <%s>", authorName, authorEmail), "-m", subject)
	return it.run(ctx, it.dir, args...)
}

func (it *VCSRepository) Push(ctx context.Context, remote, refName string) (string, error) {
	return it.run(ctx, it.dir, "push", remote, refName)
}

func (it *VCSRepository) CreateLocalBranch(ctx context.Context, name string) (string, error) {
	return it.run(ctx, it.dir, "checkout", "-b", name)
}

func (it *VCSRepository) Checkout(ctx context.Context, refName string) (string, error) {
	return it.run(ctx, it.dir, "checkout", refName)
}

func (it *VCSRepository) DeleteLocalBranch(ctx context.Context, name string) (string, error) {
	return it.run(ctx, it.dir, "branch", "-D", name)
}

func (it *VCSRepository) Tag(ctx context.Context, name string) (string, error) {
	return it.run(ctx, it.dir, "tag", name)
}

// GlobalConfig returns an empty string for an unset key.
func (it *VCSRepository) GlobalConfig(ctx context.Context, key string) (string, error) {
	output, err := it.run(ctx, it.dir, "config", key)
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == configKeyUnsetExitCode {
		return "", nil
	}
	return output, err
}
