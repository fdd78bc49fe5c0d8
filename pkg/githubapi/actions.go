package githubapi

import (
	"context"
	"fmt"
	"net/http"
)

// ListWorkflows lists the Actions workflows configured for a repository
func (c *Client) ListWorkflows(ctx context.Context, owner, repo string) (*WorkflowList, error) {
	owner, err := c.resolveOwner(owner)
	if err != nil {
		return nil, err
	}
	var list WorkflowList
	if err := c.getJSON(ctx, fmt.Sprintf("/repos/%s/%s/actions/workflows", owner, repo), &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// TriggerWorkflow dispatches a workflow run on the given ref. workflowID is
// the numeric workflow ID or the workflow file name. The server responds 204
// with no body on success.
func (c *Client) TriggerWorkflow(ctx context.Context, owner, repo, workflowID, ref string, inputs map[string]any) error {
	owner, err := c.resolveOwner(owner)
	if err != nil {
		return err
	}
	if ref == "" {
		ref = DefaultBranch
	}
	body := map[string]any{"ref": ref}
	if len(inputs) > 0 {
		body["inputs"] = inputs
	}
	path := fmt.Sprintf("/repos/%s/%s/actions/workflows/%s/dispatches", owner, repo, workflowID)
	return c.sendJSON(ctx, http.MethodPost, path, body, nil)
}

// GetWorkflowRuns lists recent runs of a workflow, one page per call.
// perPage of zero uses the server default.
func (c *Client) GetWorkflowRuns(ctx context.Context, owner, repo, workflowID string, perPage int) (*WorkflowRunList, error) {
	owner, err := c.resolveOwner(owner)
	if err != nil {
		return nil, err
	}
	path := fmt.Sprintf("/repos/%s/%s/actions/workflows/%s/runs", owner, repo, workflowID)
	if perPage > 0 {
		path += fmt.Sprintf("?per_page=%d", perPage)
	}
	var list WorkflowRunList
	if err := c.getJSON(ctx, path, &list); err != nil {
		return nil, err
	}
	return &list, nil
}
