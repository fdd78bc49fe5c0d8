package githubapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// CreateRepositoryOptions are the optional settings for CreateRepository
type CreateRepositoryOptions struct {
	Description string
	Private     bool
	AutoInit    bool
}

// ListRepositories lists repositories for the authenticated user, most
// relevant first according to sort ("created", "updated", "pushed",
// "full_name"). One page per call; perPage must be in 1..100.
func (c *Client) ListRepositories(ctx context.Context, perPage int, sort string) ([]Repository, error) {
	if perPage < 1 || perPage > 100 {
		return nil, fmt.Errorf("per_page must be between 1 and 100, got %d", perPage)
	}
	if sort == "" {
		sort = "updated"
	}
	path := fmt.Sprintf("/user/repos?per_page=%d&sort=%s", perPage, url.QueryEscape(sort))

	var repos []Repository
	if err := c.getJSON(ctx, path, &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

// GetRepository retrieves a repository by owner and name
func (c *Client) GetRepository(ctx context.Context, owner, repo string) (*Repository, error) {
	owner, err := c.resolveOwner(owner)
	if err != nil {
		return nil, err
	}
	var r Repository
	if err := c.getJSON(ctx, fmt.Sprintf("/repos/%s/%s", owner, repo), &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// CreateRepository creates a repository for the authenticated user.
// The server responds 422 when the name collides.
func (c *Client) CreateRepository(ctx context.Context, name string, opts CreateRepositoryOptions) (*Repository, error) {
	if name == "" {
		return nil, fmt.Errorf("repository name is required")
	}
	body := map[string]any{
		"name":        name,
		"description": opts.Description,
		"private":     opts.Private,
		"auto_init":   opts.AutoInit,
	}
	var r Repository
	if err := c.sendJSON(ctx, http.MethodPost, "/user/repos", body, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// ForkRepository forks a repository into the authenticated user's account.
// The server accepts the fork asynchronously (202); the returned repository
// may not be fully populated yet.
func (c *Client) ForkRepository(ctx context.Context, owner, repo string) (*Repository, error) {
	owner, err := c.resolveOwner(owner)
	if err != nil {
		return nil, err
	}
	var r Repository
	if err := c.sendJSON(ctx, http.MethodPost, fmt.Sprintf("/repos/%s/%s/forks", owner, repo), nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// ListBranches lists branches for a repository, one page per call
func (c *Client) ListBranches(ctx context.Context, owner, repo string) ([]Branch, error) {
	owner, err := c.resolveOwner(owner)
	if err != nil {
		return nil, err
	}
	var branches []Branch
	if err := c.getJSON(ctx, fmt.Sprintf("/repos/%s/%s/branches", owner, repo), &branches); err != nil {
		return nil, err
	}
	return branches, nil
}

// CreateBranch creates a branch pointing at the head of fromRef, which
// defaults to "main". The source ref's SHA is resolved first, then the new
// ref is created.
func (c *Client) CreateBranch(ctx context.Context, owner, repo, branch, fromRef string) (*Reference, error) {
	owner, err := c.resolveOwner(owner)
	if err != nil {
		return nil, err
	}
	if fromRef == "" {
		fromRef = DefaultBranch
	}

	var source Reference
	if err := c.getJSON(ctx, fmt.Sprintf("/repos/%s/%s/git/ref/heads/%s", owner, repo, fromRef), &source); err != nil {
		return nil, err
	}

	body := map[string]string{
		"ref": "refs/heads/" + branch,
		"sha": source.Object.SHA,
	}
	var ref Reference
	if err := c.sendJSON(ctx, http.MethodPost, fmt.Sprintf("/repos/%s/%s/git/refs", owner, repo), body, &ref); err != nil {
		return nil, err
	}
	return &ref, nil
}

// ListCommits lists commits on a repository's default branch, one page per
// call. perPage of zero uses the server default.
func (c *Client) ListCommits(ctx context.Context, owner, repo string, perPage int) ([]Commit, error) {
	owner, err := c.resolveOwner(owner)
	if err != nil {
		return nil, err
	}
	path := fmt.Sprintf("/repos/%s/%s/commits", owner, repo)
	if perPage > 0 {
		path += fmt.Sprintf("?per_page=%d", perPage)
	}
	var commits []Commit
	if err := c.getJSON(ctx, path, &commits); err != nil {
		return nil, err
	}
	return commits, nil
}

// GetCommit retrieves a single commit by SHA
func (c *Client) GetCommit(ctx context.Context, owner, repo, sha string) (*Commit, error) {
	owner, err := c.resolveOwner(owner)
	if err != nil {
		return nil, err
	}
	var commit Commit
	if err := c.getJSON(ctx, fmt.Sprintf("/repos/%s/%s/commits/%s", owner, repo, sha), &commit); err != nil {
		return nil, err
	}
	return &commit, nil
}

// CloneURL builds the HTTPS clone address for a repository. Pure string
// construction; no network call.
func (c *Client) CloneURL(owner, repo string) string {
	if owner == "" {
		owner = c.defaultOwner
	}
	return fmt.Sprintf("https://github.com/%s/%s.git", owner, repo)
}

// RawContentURL builds the raw-content address for a file at a branch.
// Pure string construction; no network call.
func (c *Client) RawContentURL(owner, repo, branch, path string) string {
	if owner == "" {
		owner = c.defaultOwner
	}
	if branch == "" {
		branch = DefaultBranch
	}
	return fmt.Sprintf("https://raw.githubusercontent.com/%s/%s/%s/%s", owner, repo, branch, path)
}
