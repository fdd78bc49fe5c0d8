package cmd

import (
	"fmt"
	"os"

	"omnicoder/pkg/githubapi"

	"github.com/spf13/cobra"
)

var (
	contentRepo string
	contentRef  string

	commitMessage string
	commitBranch  string
	commitFile    string
	commitContent string
)

var lsCmd = &cobra.Command{
	Use:   "ls [PATH]",
	Short: "List repository contents at a path",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}
		owner, name, err := splitRepo(contentRepo)
		if err != nil {
			return err
		}
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		entries, err := client.GetRepositoryContents(cmd.Context(), owner, name, path, contentRef)
		if err != nil {
			return fmt.Errorf("failed to list contents: %w", err)
		}
		for _, e := range entries {
			fmt.Printf("%-4s %8d  %s\n", e.Type, e.Size, e.Path)
		}
		return nil
	},
}

var catCmd = &cobra.Command{
	Use:   "cat PATH",
	Short: "Print the decoded content of a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}
		owner, name, err := splitRepo(contentRepo)
		if err != nil {
			return err
		}
		fc, err := client.GetFileContent(cmd.Context(), owner, name, args[0], contentRef)
		if err != nil {
			return fmt.Errorf("failed to get file content: %w", err)
		}
		if !fc.Present {
			return fmt.Errorf("no inline content for %s: path is a directory or the file is too large", args[0])
		}
		fmt.Print(fc.Text)
		return nil
	},
}

var commitCmd = &cobra.Command{
	Use:   "commit PATH",
	Short: "Create or update a file in a single commit",
	Long: `Commit content to a file. The current SHA of the file is fetched first so
an existing file is updated in place; a missing file is created. A concurrent
change between fetch and write surfaces as a conflict error.`,
	Args: cobra.ExactArgs(1),
	RunE: runCommit,
}

func runCommit(cmd *cobra.Command, args []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}
	owner, name, err := splitRepo(contentRepo)
	if err != nil {
		return err
	}
	if commitMessage == "" {
		return fmt.Errorf("commit message is required")
	}

	content := commitContent
	if commitFile != "" {
		data, err := os.ReadFile(commitFile)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", commitFile, err)
		}
		content = string(data)
	}
	if content == "" && commitFile == "" {
		return fmt.Errorf("content is required: pass --content or --file")
	}

	result, err := client.CommitChanges(cmd.Context(), githubapi.FileWrite{
		Owner:   owner,
		Repo:    name,
		Path:    args[0],
		Content: content,
		Message: commitMessage,
		Branch:  commitBranch,
	})
	if err != nil {
		if githubapi.IsConflict(err) {
			return fmt.Errorf("commit conflicted with a concurrent change, re-run to retry: %w", err)
		}
		return fmt.Errorf("failed to commit: %w", err)
	}
	fmt.Printf("✅ Committed %s (%s)\n", args[0], result.Commit.SHA)
	return nil
}

func init() {
	for _, c := range []*cobra.Command{lsCmd, catCmd, commitCmd} {
		c.Flags().StringVar(&contentRepo, "repo", "", "Repository as owner/name or name")
		c.Flags().StringVar(&contentRef, "ref", "", "Branch, tag, or commit SHA (default branch when empty)")
		_ = c.MarkFlagRequired("repo")
	}

	commitCmd.Flags().StringVarP(&commitMessage, "message", "m", "", "Commit message")
	commitCmd.Flags().StringVar(&commitBranch, "branch", "", "Target branch (default \"main\")")
	commitCmd.Flags().StringVar(&commitFile, "file", "", "Read content from a local file")
	commitCmd.Flags().StringVar(&commitContent, "content", "", "Literal content to commit")

	githubCmd.AddCommand(lsCmd)
	githubCmd.AddCommand(catCmd)
	githubCmd.AddCommand(commitCmd)
}
