package githubapi

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// SearchRepositories searches public repositories. Sort may be "stars",
// "forks", "updated", or empty for best-match ordering.
func (c *Client) SearchRepositories(ctx context.Context, query string, perPage int, sort string) (*RepositorySearchResult, error) {
	if query == "" {
		return nil, fmt.Errorf("search query is required")
	}
	v := url.Values{}
	v.Set("q", query)
	if perPage > 0 {
		v.Set("per_page", fmt.Sprintf("%d", perPage))
	}
	if sort != "" {
		v.Set("sort", sort)
	}

	var result RepositorySearchResult
	if err := c.getJSON(ctx, "/search/repositories?"+v.Encode(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// TrendingRepositories lists repositories created in the last week, most
// starred first. Language of "" matches all languages.
func (c *Client) TrendingRepositories(ctx context.Context, language string, perPage int) (*RepositorySearchResult, error) {
	weekAgo := time.Now().AddDate(0, 0, -7).Format("2006-01-02")
	query := "created:>" + weekAgo
	if language != "" {
		query += " language:" + language
	}
	return c.SearchRepositories(ctx, query, perPage, "stars")
}

// SearchCode searches file contents across repositories
func (c *Client) SearchCode(ctx context.Context, query string, perPage int) (*CodeSearchResult, error) {
	if query == "" {
		return nil, fmt.Errorf("search query is required")
	}
	v := url.Values{}
	v.Set("q", query)
	if perPage > 0 {
		v.Set("per_page", fmt.Sprintf("%d", perPage))
	}

	var result CodeSearchResult
	if err := c.getJSON(ctx, "/search/code?"+v.Encode(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}
