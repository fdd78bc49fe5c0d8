package cmd

import (
	"fmt"

	"omnicoder/pkg/githubapi"

	"github.com/spf13/cobra"
)

var (
	reposPerPage int
	reposSort    string

	repoCreateDescription string
	repoCreatePrivate     bool
	repoCreateAutoInit    bool
)

var reposCmd = &cobra.Command{
	Use:   "repos",
	Short: "List repositories for the authenticated user",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}
		repos, err := client.ListRepositories(cmd.Context(), reposPerPage, reposSort)
		if err != nil {
			return fmt.Errorf("failed to list repositories: %w", err)
		}
		for _, r := range repos {
			visibility := "public"
			if r.Private {
				visibility = "private"
			}
			fmt.Printf("%-40s %-8s %s\n", r.FullName, visibility, r.Description)
		}
		return nil
	},
}

var repoCmd = &cobra.Command{
	Use:   "repo",
	Short: "Repository management commands",
}

var repoGetCmd = &cobra.Command{
	Use:   "get OWNER/NAME",
	Short: "Show repository details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}
		owner, name, err := splitRepo(args[0])
		if err != nil {
			return err
		}
		r, err := client.GetRepository(cmd.Context(), owner, name)
		if err != nil {
			return fmt.Errorf("failed to get repository: %w", err)
		}
		fmt.Printf("%s\n", r.FullName)
		if r.Description != "" {
			fmt.Printf("  %s\n", r.Description)
		}
		fmt.Printf("  default branch: %s\n", r.DefaultBranch)
		fmt.Printf("  stars: %d  language: %s  private: %t\n", r.Stargazers, r.Language, r.Private)
		fmt.Printf("  clone: %s\n", client.CloneURL(r.Owner.Login, r.Name))
		return nil
	},
}

var repoCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a repository",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}
		r, err := client.CreateRepository(cmd.Context(), args[0], githubapi.CreateRepositoryOptions{
			Description: repoCreateDescription,
			Private:     repoCreatePrivate,
			AutoInit:    repoCreateAutoInit,
		})
		if err != nil {
			return fmt.Errorf("failed to create repository: %w", err)
		}
		fmt.Printf("✅ Created %s (%s)\n", r.FullName, r.HTMLURL)
		return nil
	},
}

var repoForkCmd = &cobra.Command{
	Use:   "fork OWNER/NAME",
	Short: "Fork a repository into your account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}
		owner, name, err := splitRepo(args[0])
		if err != nil {
			return err
		}
		r, err := client.ForkRepository(cmd.Context(), owner, name)
		if err != nil {
			return fmt.Errorf("failed to fork repository: %w", err)
		}
		fmt.Printf("✅ Fork started: %s\n", r.FullName)
		return nil
	},
}

func init() {
	reposCmd.Flags().IntVar(&reposPerPage, "per-page", 30, "Results per page (1-100)")
	reposCmd.Flags().StringVar(&reposSort, "sort", "updated", "Sort order: created, updated, pushed, full_name")

	repoCreateCmd.Flags().StringVar(&repoCreateDescription, "description", "", "Repository description")
	repoCreateCmd.Flags().BoolVar(&repoCreatePrivate, "private", false, "Create a private repository")
	repoCreateCmd.Flags().BoolVar(&repoCreateAutoInit, "auto-init", true, "Initialize with an empty commit")

	repoCmd.AddCommand(repoGetCmd)
	repoCmd.AddCommand(repoCreateCmd)
	repoCmd.AddCommand(repoForkCmd)

	githubCmd.AddCommand(reposCmd)
	githubCmd.AddCommand(repoCmd)
}
