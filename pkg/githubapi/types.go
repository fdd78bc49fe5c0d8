package githubapi

import "time"

// User represents a GitHub user account
type User struct {
	Login       string `json:"login"`
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	AvatarURL   string `json:"avatar_url"`
	HTMLURL     string `json:"html_url"`
	PublicRepos int    `json:"public_repos"`
}

// Repository represents a GitHub repository
type Repository struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	FullName      string    `json:"full_name"`
	Owner         User      `json:"owner"`
	Description   string    `json:"description"`
	Private       bool      `json:"private"`
	Fork          bool      `json:"fork"`
	DefaultBranch string    `json:"default_branch"`
	Language      string    `json:"language"`
	Stargazers    int       `json:"stargazers_count"`
	HTMLURL       string    `json:"html_url"`
	CloneURL      string    `json:"clone_url"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ContentEntry is a file or directory returned by a contents listing.
// Content and Encoding are populated only for single-file responses.
type ContentEntry struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	SHA         string `json:"sha"`
	Size        int    `json:"size"`
	Type        string `json:"type"` // "file", "dir", "symlink", "submodule"
	Content     string `json:"content"`
	Encoding    string `json:"encoding"`
	DownloadURL string `json:"download_url"`
	HTMLURL     string `json:"html_url"`
}

// FileContent is the decoded body of a file. Present is false when the API
// response carried no inline content (directory path, or file above the
// inline-content size limit), so callers can tell an empty file from an
// unavailable body.
type FileContent struct {
	Text    string
	Present bool
}

// FileWrite describes a pending content write. SHA must be the current blob
// SHA when updating an existing path; leave it empty only when the path is
// known not to exist. Branch defaults to "main".
type FileWrite struct {
	Owner   string
	Repo    string
	Path    string
	Content string
	Message string
	Branch  string
	SHA     string
}

// CommitResult is the response to a content write
type CommitResult struct {
	Content *ContentEntry `json:"content"`
	Commit  CommitInfo    `json:"commit"`
}

// CommitInfo identifies a created commit
type CommitInfo struct {
	SHA     string `json:"sha"`
	HTMLURL string `json:"html_url"`
	Message string `json:"message"`
}

// Branch represents a repository branch
type Branch struct {
	Name      string `json:"name"`
	Protected bool   `json:"protected"`
	Commit    struct {
		SHA string `json:"sha"`
	} `json:"commit"`
}

// Reference represents a git reference
type Reference struct {
	Ref    string `json:"ref"`
	Object struct {
		SHA  string `json:"sha"`
		Type string `json:"type"`
	} `json:"object"`
}

// NewPullRequest describes a pull request to create
type NewPullRequest struct {
	Title string `json:"title"`
	Body  string `json:"body,omitempty"`
	Head  string `json:"head"`
	Base  string `json:"base"`
}

// PullRequest represents a pull request
type PullRequest struct {
	Number  int    `json:"number"`
	State   string `json:"state"`
	Title   string `json:"title"`
	Body    string `json:"body"`
	HTMLURL string `json:"html_url"`
	Head    struct {
		Ref string `json:"ref"`
		SHA string `json:"sha"`
	} `json:"head"`
	Base struct {
		Ref string `json:"ref"`
		SHA string `json:"sha"`
	} `json:"base"`
}

// MergeResult is the response to merging a pull request
type MergeResult struct {
	SHA     string `json:"sha"`
	Merged  bool   `json:"merged"`
	Message string `json:"message"`
}

// NewIssue describes an issue to create
type NewIssue struct {
	Title  string   `json:"title"`
	Body   string   `json:"body,omitempty"`
	Labels []string `json:"labels,omitempty"`
}

// Issue represents an issue
type Issue struct {
	Number  int    `json:"number"`
	State   string `json:"state"`
	Title   string `json:"title"`
	Body    string `json:"body"`
	HTMLURL string `json:"html_url"`
	User    User   `json:"user"`
}

// Commit represents a commit in a repository listing
type Commit struct {
	SHA     string `json:"sha"`
	HTMLURL string `json:"html_url"`
	Commit  struct {
		Message string       `json:"message"`
		Author  CommitAuthor `json:"author"`
	} `json:"commit"`
	Author User `json:"author"`
}

// CommitAuthor is the git-level author of a commit
type CommitAuthor struct {
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Date  time.Time `json:"date"`
}

// Workflow represents a GitHub Actions workflow
type Workflow struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Path  string `json:"path"`
	State string `json:"state"`
}

// WorkflowList is a page of workflows
type WorkflowList struct {
	TotalCount int        `json:"total_count"`
	Workflows  []Workflow `json:"workflows"`
}

// WorkflowRun represents a single run of a workflow
type WorkflowRun struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	HeadBranch string    `json:"head_branch"`
	Status     string    `json:"status"`
	Conclusion string    `json:"conclusion"`
	HTMLURL    string    `json:"html_url"`
	CreatedAt  time.Time `json:"created_at"`
}

// WorkflowRunList is a page of workflow runs
type WorkflowRunList struct {
	TotalCount   int           `json:"total_count"`
	WorkflowRuns []WorkflowRun `json:"workflow_runs"`
}

// RepositorySearchResult is a page of repository search matches
type RepositorySearchResult struct {
	TotalCount        int          `json:"total_count"`
	IncompleteResults bool         `json:"incomplete_results"`
	Items             []Repository `json:"items"`
}

// CodeSearchResult is a page of code search matches
type CodeSearchResult struct {
	TotalCount        int        `json:"total_count"`
	IncompleteResults bool       `json:"incomplete_results"`
	Items             []CodeItem `json:"items"`
}

// CodeItem is a single code search match
type CodeItem struct {
	Name       string     `json:"name"`
	Path       string     `json:"path"`
	SHA        string     `json:"sha"`
	HTMLURL    string     `json:"html_url"`
	Repository Repository `json:"repository"`
}

// Rate describes one rate-limit bucket
type Rate struct {
	Limit     int   `json:"limit"`
	Remaining int   `json:"remaining"`
	Reset     int64 `json:"reset"`
}

// RateLimit is the authenticated caller's current rate-limit state
type RateLimit struct {
	Resources struct {
		Core   Rate `json:"core"`
		Search Rate `json:"search"`
	} `json:"resources"`
	Rate Rate `json:"rate"`
}

// PagesInfo describes a repository's GitHub Pages site
type PagesInfo struct {
	URL    string `json:"url"`
	Status string `json:"status"`
	CNAME  string `json:"cname"`
	Source struct {
		Branch string `json:"branch"`
		Path   string `json:"path"`
	} `json:"source"`
	HTMLURL string `json:"html_url"`
}

// AuthStatus is the result of a live token check. It is a value, not an
// error: a failed check reports Connected false with a message.
type AuthStatus struct {
	Connected bool   `json:"connected"`
	Login     string `json:"login,omitempty"`
	Message   string `json:"message"`
}
