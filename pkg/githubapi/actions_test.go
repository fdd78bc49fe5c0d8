package githubapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListWorkflows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/octo/repo1/actions/workflows", r.URL.Path)
		_, _ = w.Write([]byte(`{"total_count":1,"workflows":[{"id":42,"name":"CI","path":".github/workflows/ci.yml","state":"active"}]}`))
	}))
	defer server.Close()

	client := newTestClient(server, Options{Token: "t"})
	list, err := client.ListWorkflows(context.Background(), "octo", "repo1")
	require.NoError(t, err)
	require.Len(t, list.Workflows, 1)
	assert.Equal(t, int64(42), list.Workflows[0].ID)
}

func TestTriggerWorkflow(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/repos/octo/repo1/actions/workflows/ci.yml/dispatches", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := newTestClient(server, Options{Token: "t"})
	err := client.TriggerWorkflow(context.Background(), "octo", "repo1", "ci.yml", "", map[string]any{"env": "prod"})
	require.NoError(t, err, "a 204 response with no body is success")

	assert.Equal(t, "main", gotBody["ref"])
	inputs, ok := gotBody["inputs"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "prod", inputs["env"])
}

func TestGetWorkflowRuns(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/octo/repo1/actions/workflows/42/runs", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("per_page"))
		_, _ = w.Write([]byte(`{"total_count":1,"workflow_runs":[{"id":100,"status":"completed","conclusion":"success","head_branch":"main"}]}`))
	}))
	defer server.Close()

	client := newTestClient(server, Options{Token: "t"})
	list, err := client.GetWorkflowRuns(context.Background(), "octo", "repo1", "42", 3)
	require.NoError(t, err)
	require.Len(t, list.WorkflowRuns, 1)
	assert.Equal(t, "success", list.WorkflowRuns[0].Conclusion)
}

func TestSearchRepositories(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/repositories", r.URL.Path)
		assert.Equal(t, "language:go cli", r.URL.Query().Get("q"))
		assert.Equal(t, "stars", r.URL.Query().Get("sort"))
		_, _ = w.Write([]byte(`{"total_count":2,"items":[{"full_name":"a/b","stargazers_count":10},{"full_name":"c/d"}]}`))
	}))
	defer server.Close()

	client := newTestClient(server, Options{})
	result, err := client.SearchRepositories(context.Background(), "language:go cli", 10, "stars")
	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalCount)
	assert.Equal(t, 10, result.Items[0].Stargazers)
}

func TestSearchCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/code", r.URL.Path)
		assert.Equal(t, "func main repo:octo/repo1", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`{"total_count":1,"items":[{"name":"main.go","path":"cmd/main.go","repository":{"full_name":"octo/repo1"}}]}`))
	}))
	defer server.Close()

	client := newTestClient(server, Options{Token: "t"})
	result, err := client.SearchCode(context.Background(), "func main repo:octo/repo1", 10)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "cmd/main.go", result.Items[0].Path)
}

func TestTrendingRepositories(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/repositories", r.URL.Path)
		gotQuery = r.URL.Query().Get("q")
		assert.Equal(t, "stars", r.URL.Query().Get("sort"))
		assert.Equal(t, "5", r.URL.Query().Get("per_page"))
		_, _ = w.Write([]byte(`{"total_count":1,"items":[{"full_name":"new/hot","stargazers_count":500}]}`))
	}))
	defer server.Close()

	client := newTestClient(server, Options{})
	result, err := client.TrendingRepositories(context.Background(), "go", 5)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)

	weekAgo := time.Now().AddDate(0, 0, -7).Format("2006-01-02")
	assert.Equal(t, "created:>"+weekAgo+" language:go", gotQuery)
}

func TestTrendingRepositories_AllLanguages(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		_, _ = w.Write([]byte(`{"total_count":0,"items":[]}`))
	}))
	defer server.Close()

	client := newTestClient(server, Options{})
	_, err := client.TrendingRepositories(context.Background(), "", 10)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(gotQuery, "created:>"))
	assert.NotContains(t, gotQuery, "language:")
}

func TestSearch_EmptyQuery(t *testing.T) {
	client := New(Options{})

	_, err := client.SearchRepositories(context.Background(), "", 10, "")
	assert.Error(t, err)

	_, err = client.SearchCode(context.Background(), "", 10)
	assert.Error(t, err)
}

func TestEnablePages(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/repos/octo/repo1/pages", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"url":"https://api.github.com/repos/octo/repo1/pages","status":"building","source":{"branch":"main","path":"/docs"}}`))
	}))
	defer server.Close()

	client := newTestClient(server, Options{Token: "t"})
	info, err := client.EnablePages(context.Background(), "octo", "repo1", "", "/docs")
	require.NoError(t, err)

	source, ok := gotBody["source"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "main", source["branch"])
	assert.Equal(t, "/docs", source["path"])
	assert.Equal(t, "building", info.Status)
}

func TestGetPagesInfo_NotEnabled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "Not Found"}`))
	}))
	defer server.Close()

	client := newTestClient(server, Options{Token: "t"})
	_, err := client.GetPagesInfo(context.Background(), "octo", "repo1")
	assert.True(t, IsNotFound(err))
}

func TestCreatePullRequest(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/repos/octo/repo1/pulls", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"number":12,"state":"open","title":"Add feature","html_url":"https://github.com/octo/repo1/pull/12"}`))
	}))
	defer server.Close()

	client := newTestClient(server, Options{Token: "t"})
	pr, err := client.CreatePullRequest(context.Background(), "octo", "repo1", NewPullRequest{
		Title: "Add feature",
		Head:  "feature",
	})
	require.NoError(t, err)

	assert.Equal(t, "main", gotBody["base"], "base defaults to main")
	assert.Equal(t, 12, pr.Number)
}

func TestCreatePullRequest_RequiredFields(t *testing.T) {
	client := New(Options{Token: "t", DefaultOwner: "octo"})
	ctx := context.Background()

	_, err := client.CreatePullRequest(ctx, "", "repo1", NewPullRequest{Head: "feature"})
	assert.Error(t, err, "missing title must be rejected")

	_, err = client.CreatePullRequest(ctx, "", "repo1", NewPullRequest{Title: "x"})
	assert.Error(t, err, "missing head must be rejected")
}

func TestCreatePullRequest_NoDiff(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message": "No commits between main and feature"}`))
	}))
	defer server.Close()

	client := newTestClient(server, Options{Token: "t"})
	_, err := client.CreatePullRequest(context.Background(), "octo", "repo1", NewPullRequest{
		Title: "x", Head: "feature",
	})
	require.Error(t, err)
	assert.True(t, IsConflict(err))
}

func TestMergePullRequest(t *testing.T) {
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/repos/octo/repo1/pulls/12/merge", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"sha":"mergesha","merged":true,"message":"Pull Request successfully merged"}`))
	}))
	defer server.Close()

	client := newTestClient(server, Options{Token: "t"})
	result, err := client.MergePullRequest(context.Background(), "octo", "repo1", 12, "")
	require.NoError(t, err)

	assert.Equal(t, "squash", gotBody["merge_method"])
	assert.True(t, result.Merged)
}

func TestListIssues(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/octo/repo1/issues", r.URL.Path)
		assert.Equal(t, "closed", r.URL.Query().Get("state"))
		_, _ = w.Write([]byte(`[{"number":3,"state":"closed","title":"bug"}]`))
	}))
	defer server.Close()

	client := newTestClient(server, Options{Token: "t"})
	issues, err := client.ListIssues(context.Background(), "octo", "repo1", "closed")
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "bug", issues[0].Title)
}

func TestCreateIssue(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"number":4,"state":"open","title":"feature request"}`))
	}))
	defer server.Close()

	client := newTestClient(server, Options{Token: "t"})
	issue, err := client.CreateIssue(context.Background(), "octo", "repo1", NewIssue{
		Title:  "feature request",
		Labels: []string{"enhancement"},
	})
	require.NoError(t, err)

	labels, ok := gotBody["labels"].([]any)
	require.True(t, ok)
	assert.Equal(t, "enhancement", labels[0])
	assert.Equal(t, 4, issue.Number)
}
