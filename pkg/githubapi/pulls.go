package githubapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// CreatePullRequest opens a pull request from head into base. Base defaults
// to "main". The server responds 422 when there is no diff between the two.
func (c *Client) CreatePullRequest(ctx context.Context, owner, repo string, pr NewPullRequest) (*PullRequest, error) {
	owner, err := c.resolveOwner(owner)
	if err != nil {
		return nil, err
	}
	if pr.Title == "" {
		return nil, fmt.Errorf("pull request title is required")
	}
	if pr.Head == "" {
		return nil, fmt.Errorf("pull request head branch is required")
	}
	if pr.Base == "" {
		pr.Base = DefaultBranch
	}

	var result PullRequest
	if err := c.sendJSON(ctx, http.MethodPost, fmt.Sprintf("/repos/%s/%s/pulls", owner, repo), pr, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// MergePullRequest merges a pull request. Method is one of "merge",
// "squash", or "rebase", defaulting to "squash".
func (c *Client) MergePullRequest(ctx context.Context, owner, repo string, number int, method string) (*MergeResult, error) {
	owner, err := c.resolveOwner(owner)
	if err != nil {
		return nil, err
	}
	if method == "" {
		method = "squash"
	}
	body := map[string]string{"merge_method": method}

	var result MergeResult
	if err := c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/repos/%s/%s/pulls/%d/merge", owner, repo, number), body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListIssues lists issues for a repository filtered by state ("open",
// "closed", "all"), one page per call
func (c *Client) ListIssues(ctx context.Context, owner, repo, state string) ([]Issue, error) {
	owner, err := c.resolveOwner(owner)
	if err != nil {
		return nil, err
	}
	if state == "" {
		state = "open"
	}
	path := fmt.Sprintf("/repos/%s/%s/issues?state=%s", owner, repo, url.QueryEscape(state))

	var issues []Issue
	if err := c.getJSON(ctx, path, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

// CreateIssue opens an issue on a repository
func (c *Client) CreateIssue(ctx context.Context, owner, repo string, issue NewIssue) (*Issue, error) {
	owner, err := c.resolveOwner(owner)
	if err != nil {
		return nil, err
	}
	if issue.Title == "" {
		return nil, fmt.Errorf("issue title is required")
	}

	var result Issue
	if err := c.sendJSON(ctx, http.MethodPost, fmt.Sprintf("/repos/%s/%s/issues", owner, repo), issue, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
