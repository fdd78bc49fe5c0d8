// Package githubapi provides a typed client for the GitHub REST API.
// It covers repository, content, branch, commit, issue, pull request,
// workflow, search, and Pages operations with bearer-token authentication.
//
// The package includes:
// - Client with a single request dispatch path shared by all operations
// - APIError taxonomy for classifying HTTP and transport failures
// - CommitChanges, a read-then-write file commit helper with optimistic
//   concurrency via content SHAs
// - Pure URL builders for clone and raw-content addresses
package githubapi
