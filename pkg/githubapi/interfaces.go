package githubapi

import "context"

// APIClient defines the interface for GitHub API operations. Client is the
// canonical implementation; callers that want to stub the API in tests can
// depend on this instead.
type APIClient interface {
	// Authentication
	GetUser(ctx context.Context) (*User, error)
	GetAuthStatus(ctx context.Context) AuthStatus
	IsConnected() bool
	SetToken(token string)

	// Repository operations
	ListRepositories(ctx context.Context, perPage int, sort string) ([]Repository, error)
	GetRepository(ctx context.Context, owner, repo string) (*Repository, error)
	CreateRepository(ctx context.Context, name string, opts CreateRepositoryOptions) (*Repository, error)
	ForkRepository(ctx context.Context, owner, repo string) (*Repository, error)

	// Content operations
	GetRepositoryContents(ctx context.Context, owner, repo, path, ref string) ([]ContentEntry, error)
	GetFileContent(ctx context.Context, owner, repo, path, ref string) (FileContent, error)
	CreateOrUpdateFile(ctx context.Context, w FileWrite) (*CommitResult, error)
	CommitChanges(ctx context.Context, w FileWrite) (*CommitResult, error)

	// Branch and commit operations
	ListBranches(ctx context.Context, owner, repo string) ([]Branch, error)
	CreateBranch(ctx context.Context, owner, repo, branch, fromRef string) (*Reference, error)
	ListCommits(ctx context.Context, owner, repo string, perPage int) ([]Commit, error)
	GetCommit(ctx context.Context, owner, repo, sha string) (*Commit, error)

	// Pull request and issue operations
	CreatePullRequest(ctx context.Context, owner, repo string, pr NewPullRequest) (*PullRequest, error)
	MergePullRequest(ctx context.Context, owner, repo string, number int, method string) (*MergeResult, error)
	ListIssues(ctx context.Context, owner, repo, state string) ([]Issue, error)
	CreateIssue(ctx context.Context, owner, repo string, issue NewIssue) (*Issue, error)

	// Workflow operations
	ListWorkflows(ctx context.Context, owner, repo string) (*WorkflowList, error)
	TriggerWorkflow(ctx context.Context, owner, repo, workflowID, ref string, inputs map[string]any) error
	GetWorkflowRuns(ctx context.Context, owner, repo, workflowID string, perPage int) (*WorkflowRunList, error)

	// Search and metadata
	SearchRepositories(ctx context.Context, query string, perPage int, sort string) (*RepositorySearchResult, error)
	SearchCode(ctx context.Context, query string, perPage int) (*CodeSearchResult, error)
	TrendingRepositories(ctx context.Context, language string, perPage int) (*RepositorySearchResult, error)
	GetRateLimit(ctx context.Context) (*RateLimit, error)

	// Pages operations
	EnablePages(ctx context.Context, owner, repo, branch, path string) (*PagesInfo, error)
	GetPagesInfo(ctx context.Context, owner, repo string) (*PagesInfo, error)

	// URL builders (no network)
	CloneURL(owner, repo string) string
	RawContentURL(owner, repo, branch, path string) string
}

var _ APIClient = (*Client)(nil)
