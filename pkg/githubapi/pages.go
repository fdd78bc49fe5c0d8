package githubapi

import (
	"context"
	"fmt"
	"net/http"
)

// EnablePages turns on GitHub Pages for a repository, serving from the given
// branch and path ("/" or "/docs"). Branch defaults to "main" and path to "/".
func (c *Client) EnablePages(ctx context.Context, owner, repo, branch, path string) (*PagesInfo, error) {
	owner, err := c.resolveOwner(owner)
	if err != nil {
		return nil, err
	}
	if branch == "" {
		branch = DefaultBranch
	}
	if path == "" {
		path = "/"
	}
	body := map[string]any{
		"source": map[string]string{"branch": branch, "path": path},
	}

	var info PagesInfo
	if err := c.sendJSON(ctx, http.MethodPost, fmt.Sprintf("/repos/%s/%s/pages", owner, repo), body, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// GetPagesInfo retrieves the Pages configuration for a repository.
// The server responds 404 when Pages is not enabled.
func (c *Client) GetPagesInfo(ctx context.Context, owner, repo string) (*PagesInfo, error) {
	owner, err := c.resolveOwner(owner)
	if err != nil {
		return nil, err
	}
	var info PagesInfo
	if err := c.getJSON(ctx, fmt.Sprintf("/repos/%s/%s/pages", owner, repo), &info); err != nil {
		return nil, err
	}
	return &info, nil
}
