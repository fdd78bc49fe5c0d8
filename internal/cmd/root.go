package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "omnicoder",
	Short: "A CLI for automating GitHub repository workflows",
	Long: `Omnicoder is a command-line tool for working with GitHub repositories:
listing and creating repositories, reading and committing files, managing
branches, pull requests, issues, workflows, and Pages.

Authentication uses a personal access token supplied through the GITHUB_TOKEN
environment variable or the configuration file.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(githubCmd)
}
