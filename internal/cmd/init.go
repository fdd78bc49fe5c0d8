package cmd

import (
	"fmt"
	"os"
	"time"

	"omnicoder/pkg/config"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize omnicoder configuration",
	Long:  "Create a default configuration file for omnicoder",
	RunE:  runInit,
}

func runInit(_ *cobra.Command, _ []string) error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf("⚠️  Configuration file already exists at: %s\n", configPath)
		fmt.Print("Do you want to overwrite it? (y/N): ")
		var response string
		_, _ = fmt.Scanln(&response) // Ignore error for user input
		if response != "y" && response != "Y" {
			fmt.Println("Configuration initialization cancelled.")
			return nil
		}
	}

	// Token deliberately left out of the generated file; it belongs in the
	// GITHUB_TOKEN environment variable.
	defaultConfig := &config.Config{
		GitHub: config.GitHubConfig{
			Username: "your-github-username",
			Email:    "you@example.com",
			Owner:    "your-github-username",
		},
		HTTP: config.HTTPConfig{
			Timeout: 30 * time.Second,
		},
	}

	if err := defaultConfig.SaveToPath(configPath); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Printf("✅ Configuration file created at: %s\n", configPath)
	fmt.Println("📝 Edit the file to set your GitHub identity, and export GITHUB_TOKEN for authentication.")

	return nil
}
