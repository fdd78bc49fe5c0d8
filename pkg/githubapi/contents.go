package githubapi

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

func contentsPath(owner, repo, path, ref string) string {
	p := fmt.Sprintf("/repos/%s/%s/contents/%s", owner, repo, strings.TrimPrefix(path, "/"))
	if ref != "" {
		p += "?ref=" + url.QueryEscape(ref)
	}
	return p
}

// GetRepositoryContents lists the entries at a path, which may be empty for
// the repository root. A file path yields a single-entry slice. ref of ""
// reads the repository's default branch.
func (c *Client) GetRepositoryContents(ctx context.Context, owner, repo, path, ref string) ([]ContentEntry, error) {
	owner, err := c.resolveOwner(owner)
	if err != nil {
		return nil, err
	}
	raw, err := c.Do(ctx, contentsPath(owner, repo, path, ref), RequestOptions{Method: http.MethodGet})
	if err != nil {
		return nil, err
	}

	// The API returns an array for directories and a bare object for files.
	var entries []ContentEntry
	if err := json.Unmarshal(raw, &entries); err == nil {
		return entries, nil
	}
	var single ContentEntry
	if err := json.Unmarshal(raw, &single); err != nil {
		return nil, fmt.Errorf("decode contents response: %w", err)
	}
	return []ContentEntry{single}, nil
}

// fileMeta fetches the content metadata for a single path. Directory paths
// return an error since directories carry no SHA usable for writes.
func (c *Client) fileMeta(ctx context.Context, owner, repo, path, ref string) (*ContentEntry, error) {
	raw, err := c.Do(ctx, contentsPath(owner, repo, path, ref), RequestOptions{Method: http.MethodGet})
	if err != nil {
		return nil, err
	}
	var entry ContentEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("path %q is not a single file", path)
	}
	return &entry, nil
}

// GetFileContent retrieves and decodes the text content of a file. When the
// response carries no content field (directory path, or a file above the
// API's inline-content size limit) the result has Present false and empty
// Text instead of an error.
func (c *Client) GetFileContent(ctx context.Context, owner, repo, path, ref string) (FileContent, error) {
	owner, err := c.resolveOwner(owner)
	if err != nil {
		return FileContent{}, err
	}
	raw, err := c.Do(ctx, contentsPath(owner, repo, path, ref), RequestOptions{Method: http.MethodGet})
	if err != nil {
		return FileContent{}, err
	}

	// Content is a pointer so an empty file (content "") stays
	// distinguishable from a response with no content field at all.
	var payload struct {
		Content *string `json:"content"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		// Directory listings decode as arrays, not objects.
		return FileContent{}, nil
	}
	if payload.Content == nil {
		return FileContent{}, nil
	}

	// The API base64-encodes content with embedded newlines.
	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(*payload.Content, "\n", ""))
	if err != nil {
		return FileContent{}, fmt.Errorf("decode file content for %q: %w", path, err)
	}
	return FileContent{Text: string(decoded), Present: true}, nil
}

// CreateOrUpdateFile writes a file's content in a single commit. Content is
// base64-encoded for transport. An update of an existing path must carry its
// current SHA in w.SHA; a stale or missing SHA is rejected by the server with
// a conflict, which propagates unchanged.
func (c *Client) CreateOrUpdateFile(ctx context.Context, w FileWrite) (*CommitResult, error) {
	owner, err := c.resolveOwner(w.Owner)
	if err != nil {
		return nil, err
	}
	branch := w.Branch
	if branch == "" {
		branch = DefaultBranch
	}

	body := map[string]any{
		"message": w.Message,
		"content": base64.StdEncoding.EncodeToString([]byte(w.Content)),
		"branch":  branch,
	}
	if w.SHA != "" {
		body["sha"] = w.SHA
	}
	if c.username != "" && c.email != "" {
		body["committer"] = map[string]string{"name": c.username, "email": c.email}
	}

	var result CommitResult
	if err := c.sendJSON(ctx, http.MethodPut, contentsPath(owner, w.Repo, w.Path, ""), body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CommitChanges writes a file using the read-then-write commit protocol:
// fetch the existing content SHA at the target branch, then write with that
// SHA, or with none when the path is confirmed absent (404). Any other
// lookup failure aborts the commit — proceeding would risk an unintended
// create over a file that does exist. The read-then-write is racy against
// concurrent writers; a conflict from the write propagates to the caller,
// who must re-fetch and retry. Any SHA already set on w is ignored.
func (c *Client) CommitChanges(ctx context.Context, w FileWrite) (*CommitResult, error) {
	owner, err := c.resolveOwner(w.Owner)
	if err != nil {
		return nil, err
	}
	w.Owner = owner
	if w.Branch == "" {
		w.Branch = DefaultBranch
	}
	w.SHA = ""

	existing, err := c.fileMeta(ctx, owner, w.Repo, w.Path, w.Branch)
	switch {
	case err == nil:
		w.SHA = existing.SHA
	case IsNotFound(err):
		// Confirmed absent: write proceeds as a create.
	default:
		return nil, fmt.Errorf("lookup existing content at %s: %w", w.Path, err)
	}

	return c.CreateOrUpdateFile(ctx, w)
}
