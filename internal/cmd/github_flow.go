package cmd

import (
	"fmt"
	"strconv"

	"omnicoder/pkg/githubapi"

	"github.com/spf13/cobra"
)

var (
	flowRepo string

	branchFrom string

	prTitle string
	prBody  string
	prHead  string
	prBase  string

	prMergeMethod string

	issueState string
	issueTitle string
	issueBody  string
)

var branchCmd = &cobra.Command{
	Use:   "branch",
	Short: "Branch commands",
}

var branchListCmd = &cobra.Command{
	Use:   "list",
	Short: "List branches",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}
		owner, name, err := splitRepo(flowRepo)
		if err != nil {
			return err
		}
		branches, err := client.ListBranches(cmd.Context(), owner, name)
		if err != nil {
			return fmt.Errorf("failed to list branches: %w", err)
		}
		for _, b := range branches {
			marker := " "
			if b.Protected {
				marker = "*"
			}
			fmt.Printf("%s %-30s %s\n", marker, b.Name, b.Commit.SHA)
		}
		return nil
	},
}

var branchCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a branch from an existing ref",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}
		owner, name, err := splitRepo(flowRepo)
		if err != nil {
			return err
		}
		ref, err := client.CreateBranch(cmd.Context(), owner, name, args[0], branchFrom)
		if err != nil {
			return fmt.Errorf("failed to create branch: %w", err)
		}
		fmt.Printf("✅ Created %s at %s\n", ref.Ref, ref.Object.SHA)
		return nil
	},
}

var prCmd = &cobra.Command{
	Use:   "pr",
	Short: "Pull request commands",
}

var prCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Open a pull request",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}
		owner, name, err := splitRepo(flowRepo)
		if err != nil {
			return err
		}
		pr, err := client.CreatePullRequest(cmd.Context(), owner, name, githubapi.NewPullRequest{
			Title: prTitle,
			Body:  prBody,
			Head:  prHead,
			Base:  prBase,
		})
		if err != nil {
			return fmt.Errorf("failed to create pull request: %w", err)
		}
		fmt.Printf("✅ Opened #%d: %s\n", pr.Number, pr.HTMLURL)
		return nil
	},
}

var prMergeCmd = &cobra.Command{
	Use:   "merge NUMBER",
	Short: "Merge a pull request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}
		owner, name, err := splitRepo(flowRepo)
		if err != nil {
			return err
		}
		number, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid pull request number %q", args[0])
		}
		result, err := client.MergePullRequest(cmd.Context(), owner, name, number, prMergeMethod)
		if err != nil {
			return fmt.Errorf("failed to merge pull request: %w", err)
		}
		if !result.Merged {
			return fmt.Errorf("pull request not merged: %s", result.Message)
		}
		fmt.Printf("✅ Merged #%d (%s)\n", number, result.SHA)
		return nil
	},
}

var issueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Issue commands",
}

var issueListCmd = &cobra.Command{
	Use:   "list",
	Short: "List issues",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}
		owner, name, err := splitRepo(flowRepo)
		if err != nil {
			return err
		}
		issues, err := client.ListIssues(cmd.Context(), owner, name, issueState)
		if err != nil {
			return fmt.Errorf("failed to list issues: %w", err)
		}
		for _, issue := range issues {
			fmt.Printf("#%-5d %-8s %s\n", issue.Number, issue.State, issue.Title)
		}
		return nil
	},
}

var issueCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Open an issue",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}
		owner, name, err := splitRepo(flowRepo)
		if err != nil {
			return err
		}
		issue, err := client.CreateIssue(cmd.Context(), owner, name, githubapi.NewIssue{
			Title: issueTitle,
			Body:  issueBody,
		})
		if err != nil {
			return fmt.Errorf("failed to create issue: %w", err)
		}
		fmt.Printf("✅ Opened #%d: %s\n", issue.Number, issue.HTMLURL)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{branchListCmd, branchCreateCmd, prCreateCmd, prMergeCmd, issueListCmd, issueCreateCmd} {
		c.Flags().StringVar(&flowRepo, "repo", "", "Repository as owner/name or name")
		_ = c.MarkFlagRequired("repo")
	}

	branchCreateCmd.Flags().StringVar(&branchFrom, "from", "", "Source ref (default \"main\")")

	prCreateCmd.Flags().StringVar(&prTitle, "title", "", "Pull request title")
	prCreateCmd.Flags().StringVar(&prBody, "body", "", "Pull request body")
	prCreateCmd.Flags().StringVar(&prHead, "head", "", "Head branch")
	prCreateCmd.Flags().StringVar(&prBase, "base", "", "Base branch (default \"main\")")
	_ = prCreateCmd.MarkFlagRequired("title")
	_ = prCreateCmd.MarkFlagRequired("head")

	prMergeCmd.Flags().StringVar(&prMergeMethod, "method", "squash", "Merge method: merge, squash, rebase")

	issueListCmd.Flags().StringVar(&issueState, "state", "open", "Issue state: open, closed, all")
	issueCreateCmd.Flags().StringVar(&issueTitle, "title", "", "Issue title")
	issueCreateCmd.Flags().StringVar(&issueBody, "body", "", "Issue body")
	_ = issueCreateCmd.MarkFlagRequired("title")

	branchCmd.AddCommand(branchListCmd)
	branchCmd.AddCommand(branchCreateCmd)
	prCmd.AddCommand(prCreateCmd)
	prCmd.AddCommand(prMergeCmd)
	issueCmd.AddCommand(issueListCmd)
	issueCmd.AddCommand(issueCreateCmd)

	githubCmd.AddCommand(branchCmd)
	githubCmd.AddCommand(prCmd)
	githubCmd.AddCommand(issueCmd)
}
