package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	actionsRepo string

	workflowRef     string
	workflowPerPage int

	searchPerPage  int
	searchSort     string
	searchLanguage string

	pagesBranch string
	pagesPath   string
)

var workflowCmd = &cobra.Command{
	Use:   "workflow",
	Short: "GitHub Actions workflow commands",
}

var workflowListCmd = &cobra.Command{
	Use:   "list",
	Short: "List workflows",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}
		owner, name, err := splitRepo(actionsRepo)
		if err != nil {
			return err
		}
		list, err := client.ListWorkflows(cmd.Context(), owner, name)
		if err != nil {
			return fmt.Errorf("failed to list workflows: %w", err)
		}
		for _, w := range list.Workflows {
			fmt.Printf("%-10d %-8s %-30s %s\n", w.ID, w.State, w.Name, w.Path)
		}
		return nil
	},
}

var workflowRunCmd = &cobra.Command{
	Use:   "run WORKFLOW",
	Short: "Dispatch a workflow by ID or file name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}
		owner, name, err := splitRepo(actionsRepo)
		if err != nil {
			return err
		}
		if err := client.TriggerWorkflow(cmd.Context(), owner, name, args[0], workflowRef, nil); err != nil {
			return fmt.Errorf("failed to trigger workflow: %w", err)
		}
		fmt.Printf("✅ Dispatched %s\n", args[0])
		return nil
	},
}

var workflowRunsCmd = &cobra.Command{
	Use:   "runs WORKFLOW",
	Short: "Show recent runs of a workflow",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}
		owner, name, err := splitRepo(actionsRepo)
		if err != nil {
			return err
		}
		list, err := client.GetWorkflowRuns(cmd.Context(), owner, name, args[0], workflowPerPage)
		if err != nil {
			return fmt.Errorf("failed to get workflow runs: %w", err)
		}
		for _, run := range list.WorkflowRuns {
			conclusion := run.Conclusion
			if conclusion == "" {
				conclusion = run.Status
			}
			fmt.Printf("%-10d %-10s %-12s %s\n", run.ID, run.HeadBranch, conclusion, run.CreatedAt.Format(time.RFC3339))
		}
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search GitHub",
}

var searchReposCmd = &cobra.Command{
	Use:   "repos QUERY",
	Short: "Search repositories",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}
		result, err := client.SearchRepositories(cmd.Context(), args[0], searchPerPage, searchSort)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		fmt.Printf("%d matches\n", result.TotalCount)
		for _, r := range result.Items {
			fmt.Printf("%-40s ★%-6d %s\n", r.FullName, r.Stargazers, r.Description)
		}
		return nil
	},
}

var searchCodeCmd = &cobra.Command{
	Use:   "code QUERY",
	Short: "Search code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}
		result, err := client.SearchCode(cmd.Context(), args[0], searchPerPage)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		fmt.Printf("%d matches\n", result.TotalCount)
		for _, item := range result.Items {
			fmt.Printf("%-40s %s\n", item.Repository.FullName, item.Path)
		}
		return nil
	},
}

var searchTrendingCmd = &cobra.Command{
	Use:   "trending",
	Short: "Show repositories trending over the last week",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}
		result, err := client.TrendingRepositories(cmd.Context(), searchLanguage, searchPerPage)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		for _, r := range result.Items {
			fmt.Printf("%-40s ★%-6d %s\n", r.FullName, r.Stargazers, r.Description)
		}
		return nil
	},
}

var rateLimitCmd = &cobra.Command{
	Use:   "rate-limit",
	Short: "Show API rate-limit state",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}
		rl, err := client.GetRateLimit(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get rate limit: %w", err)
		}
		core := rl.Resources.Core
		reset := time.Unix(core.Reset, 0)
		fmt.Printf("core: %d/%d remaining, resets %s\n", core.Remaining, core.Limit, reset.Format(time.RFC3339))
		search := rl.Resources.Search
		fmt.Printf("search: %d/%d remaining\n", search.Remaining, search.Limit)
		return nil
	},
}

var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "GitHub Pages commands",
}

var pagesInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show Pages configuration",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}
		owner, name, err := splitRepo(actionsRepo)
		if err != nil {
			return err
		}
		info, err := client.GetPagesInfo(cmd.Context(), owner, name)
		if err != nil {
			return fmt.Errorf("failed to get Pages info: %w", err)
		}
		fmt.Printf("url: %s\nstatus: %s\nsource: %s %s\n", info.HTMLURL, info.Status, info.Source.Branch, info.Source.Path)
		return nil
	},
}

var pagesEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Enable Pages for a repository",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}
		owner, name, err := splitRepo(actionsRepo)
		if err != nil {
			return err
		}
		info, err := client.EnablePages(cmd.Context(), owner, name, pagesBranch, pagesPath)
		if err != nil {
			return fmt.Errorf("failed to enable Pages: %w", err)
		}
		fmt.Printf("✅ Pages enabled, status: %s\n", info.Status)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{workflowListCmd, workflowRunCmd, workflowRunsCmd, pagesInfoCmd, pagesEnableCmd} {
		c.Flags().StringVar(&actionsRepo, "repo", "", "Repository as owner/name or name")
		_ = c.MarkFlagRequired("repo")
	}

	workflowRunCmd.Flags().StringVar(&workflowRef, "ref", "", "Git ref to run on (default \"main\")")
	workflowRunsCmd.Flags().IntVar(&workflowPerPage, "per-page", 10, "Results per page")

	searchReposCmd.Flags().IntVar(&searchPerPage, "per-page", 10, "Results per page")
	searchReposCmd.Flags().StringVar(&searchSort, "sort", "", "Sort order: stars, forks, updated")
	searchCodeCmd.Flags().IntVar(&searchPerPage, "per-page", 10, "Results per page")
	searchTrendingCmd.Flags().IntVar(&searchPerPage, "per-page", 10, "Results per page")
	searchTrendingCmd.Flags().StringVar(&searchLanguage, "language", "", "Restrict to a language")

	pagesEnableCmd.Flags().StringVar(&pagesBranch, "branch", "", "Source branch (default \"main\")")
	pagesEnableCmd.Flags().StringVar(&pagesPath, "path", "", "Source path, \"/\" or \"/docs\"")

	workflowCmd.AddCommand(workflowListCmd)
	workflowCmd.AddCommand(workflowRunCmd)
	workflowCmd.AddCommand(workflowRunsCmd)
	searchCmd.AddCommand(searchReposCmd)
	searchCmd.AddCommand(searchCodeCmd)
	searchCmd.AddCommand(searchTrendingCmd)
	pagesCmd.AddCommand(pagesInfoCmd)
	pagesCmd.AddCommand(pagesEnableCmd)

	githubCmd.AddCommand(workflowCmd)
	githubCmd.AddCommand(searchCmd)
	githubCmd.AddCommand(rateLimitCmd)
	githubCmd.AddCommand(pagesCmd)
}
