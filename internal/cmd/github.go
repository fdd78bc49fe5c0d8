package cmd

import (
	"fmt"
	"strings"

	"omnicoder/pkg/config"
	"omnicoder/pkg/githubapi"

	"github.com/spf13/cobra"
)

var githubCmd = &cobra.Command{
	Use:   "github",
	Short: "GitHub operations",
	Long: `Commands for working with GitHub repositories.

Available command groups:
  login, status          - authentication
  repos, repo            - repository listing and management
  ls, cat, commit        - repository contents
  branch, pr, issue      - branches, pull requests, issues
  workflow               - GitHub Actions workflows
  search, rate-limit     - search and API metadata
  pages                  - GitHub Pages`,
}

// newClient builds a client from the merged configuration. Operations that
// require authentication fail server-side with 401 when no token is present.
func newClient() (*githubapi.Client, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	client := githubapi.New(githubapi.Options{
		Token:             cfg.GitHub.Token,
		BaseURL:           cfg.GitHub.BaseURL,
		DefaultOwner:      cfg.GitHub.Owner,
		Username:          cfg.GitHub.Username,
		Email:             cfg.GitHub.Email,
		Timeout:           cfg.HTTP.Timeout,
		RequestsPerMinute: cfg.HTTP.RateLimitPerMin,
	})
	return client, cfg, nil
}

// splitRepo parses "owner/name" into its parts; a bare "name" leaves owner
// empty so the client's default owner applies
func splitRepo(s string) (owner, repo string, err error) {
	if s == "" {
		return "", "", fmt.Errorf("repository is required")
	}
	parts := strings.SplitN(s, "/", 2)
	if len(parts) == 1 {
		return "", parts[0], nil
	}
	if parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository %q: expected owner/name", s)
	}
	return parts[0], parts[1], nil
}

func init() {
	githubCmd.AddCommand(loginCmd)
	githubCmd.AddCommand(statusCmd)
}

var loginToken string
var loginSave bool

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Verify a GitHub token and optionally save it",
	RunE:  runLogin,
}

func runLogin(cmd *cobra.Command, _ []string) error {
	client, cfg, err := newClient()
	if err != nil {
		return err
	}
	if loginToken != "" {
		client.SetToken(loginToken)
	}
	if !client.IsConnected() {
		token, err := config.ResolveToken(cfg)
		if err != nil {
			return err
		}
		client.SetToken(token)
	}

	status := client.GetAuthStatus(cmd.Context())
	if !status.Connected {
		return fmt.Errorf("authentication failed: %s", status.Message)
	}
	fmt.Printf("✅ Authenticated as %s\n", status.Login)

	if loginSave && loginToken != "" {
		cfg.GitHub.Token = loginToken
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to save token: %w", err)
		}
		fmt.Println("📝 Token saved to configuration file.")
	}
	return nil
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show GitHub connection status",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}
		status := client.GetAuthStatus(cmd.Context())
		if status.Connected {
			fmt.Printf("✅ Connected as %s\n", status.Login)
		} else {
			fmt.Printf("❌ Not connected: %s\n", status.Message)
		}
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginToken, "token", "", "GitHub personal access token")
	loginCmd.Flags().BoolVar(&loginSave, "save", false, "Save the token to the configuration file")
}
