package gateway

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
)

// Commit identity used for every generated commit.
const (
	botName  = "lottery-bot"
	botEmail = "lottery-bot@users.noreply.github.com"
)

// Publisher defines the behavior of a gateway that publishes the refreshed
// history file. Publish reports whether anything was actually published:
// when the file is unchanged it is a no-op and returns false.
type Publisher interface {
	Publish(ctx context.Context, now time.Time) (bool, error)
}

// GitPublisher commits history.json and force-pushes the resulting commit
// onto a publishing branch. It is the concrete implementation of the
// Publisher interface.
type GitPublisher struct {
	repoPath string // repository containing the history file
	filePath string // history file path relative to the repository root
	remote   string
	branch   string // target branch on the remote, overwritten on every push
	auth     transport.AuthMethod
	logger   *log.Logger
}

// NewGitPublisher is a constructor that creates a new instance of GitPublisher.
// token may be empty for unauthenticated remotes (e.g. local paths in tests).
func NewGitPublisher(repoPath, filePath, remote, branch, token string, logger *log.Logger) (Publisher, error) {
	if repoPath == "" {
		return nil, fmt.Errorf("repository path cannot be empty")
	}
	if filePath == "" {
		return nil, fmt.Errorf("history file path cannot be empty")
	}
	if branch == "" {
		return nil, fmt.Errorf("target branch cannot be empty")
	}

	var auth transport.AuthMethod
	if token != "" {
		// GitHub accepts any username when a personal access token is used.
		auth = &githttp.BasicAuth{Username: "git", Password: token}
	}

	return &GitPublisher{
		repoPath: repoPath,
		filePath: filePath,
		remote:   remote,
		branch:   branch,
		auth:     auth,
		logger:   logger,
	}, nil
}

// Publish checks whether the history file differs from the committed version
// and, if so, stages that one file, commits it with a timestamped message,
// and force-pushes HEAD onto the target branch.
func (p *GitPublisher) Publish(ctx context.Context, now time.Time) (bool, error) {
	repo, err := git.PlainOpen(p.repoPath)
	if err != nil {
		return false, fmt.Errorf("failed to open repository at %s: %w", p.repoPath, err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("failed to get worktree: %w", err)
	}

	status, err := worktree.Status()
	if err != nil {
		return false, fmt.Errorf("failed to get worktree status: %w", err)
	}
	// A clean tracked file has no entry in the status map at all.
	fileStatus, changed := status[p.filePath]
	if !changed || (fileStatus.Worktree == git.Unmodified && fileStatus.Staging == git.Unmodified) {
		p.logger.Printf("%s is unchanged, nothing to publish.", p.filePath)
		return false, nil
	}

	if _, err := worktree.Add(p.filePath); err != nil {
		return false, fmt.Errorf("failed to stage %s: %w", p.filePath, err)
	}

	// The message mirrors what "date -u" prints, e.g.
	// "Update lottery history Mon Jun 2 14:00:00 UTC 2025".
	message := fmt.Sprintf("Update lottery history %s", now.UTC().Format("Mon Jan 2 15:04:05 MST 2006"))
	commit, err := worktree.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  botName,
			Email: botEmail,
			When:  now,
		},
	})
	if err != nil {
		return false, fmt.Errorf("failed to commit %s: %w", p.filePath, err)
	}
	p.logger.Printf("Committed %s as %s.", p.filePath, commit)

	head, err := repo.Head()
	if err != nil {
		return false, fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	// Leading "+" makes the refspec a forced update, replacing the remote
	// branch's tip regardless of its history.
	refSpec := config.RefSpec(fmt.Sprintf("+%s:refs/heads/%s", head.Name(), p.branch))
	err = repo.PushContext(ctx, &git.PushOptions{
		RemoteName: p.remote,
		RefSpecs:   []config.RefSpec{refSpec},
		Auth:       p.auth,
		Force:      true,
	})
	if err != nil && err != git.NoErrAlreadyUpToDate {
		return false, fmt.Errorf("failed to push to %s/%s: %w", p.remote, p.branch, err)
	}
	p.logger.Printf("Pushed %s to %s/%s.", commit, p.remote, p.branch)
	return true, nil
}
