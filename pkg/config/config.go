package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config holds omnicoder configuration, merged from the yaml file and the
// environment. Environment values always win over the file.
type Config struct {
	GitHub GitHubConfig `yaml:"github"`
	HTTP   HTTPConfig   `yaml:"http"`
}

// GitHubConfig holds GitHub connection settings. Token should normally come
// from the GITHUB_TOKEN environment variable rather than the file.
type GitHubConfig struct {
	Token    string `yaml:"token,omitempty"`
	Username string `yaml:"username"`
	Email    string `yaml:"email" validate:"omitempty,email"`
	Owner    string `yaml:"owner"`
	BaseURL  string `yaml:"base_url,omitempty" validate:"omitempty,url"`
}

// HTTPConfig holds transport tuning
type HTTPConfig struct {
	Timeout         time.Duration `yaml:"timeout" validate:"gte=0"`
	RateLimitPerMin int           `yaml:"rate_limit_per_min" validate:"gte=0"`
}

// envOverrides is the environment surface, processed with the OMNICODER
// prefix (e.g. OMNICODER_GITHUB_OWNER, OMNICODER_HTTP_TIMEOUT)
type envOverrides struct {
	GithubToken    string        `split_words:"true"`
	GithubUsername string        `split_words:"true"`
	GithubEmail    string        `split_words:"true"`
	GithubOwner    string        `split_words:"true"`
	GithubBaseURL  string        `envconfig:"GITHUB_BASE_URL"`
	HTTPTimeout    time.Duration `envconfig:"HTTP_TIMEOUT"`
	HTTPRateLimit  int           `envconfig:"HTTP_RATE_LIMIT_PER_MIN"`
}

// Load reads configuration from the default location merged with the
// environment
func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads configuration from a specific yaml file merged with the
// environment. A missing file is not an error; the environment alone may
// carry everything needed.
func LoadFromPath(path string) (*Config, error) {
	// Optional .env in the working directory, for local development.
	_ = godotenv.Load()

	cfg := &Config{
		HTTP: HTTPConfig{Timeout: 30 * time.Second},
	}

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var env envOverrides
	if err := envconfig.Process("omnicoder", &env); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}
	cfg.applyEnv(env)

	// Bare GITHUB_TOKEN always wins; it is the conventional injection point.
	if token := strings.TrimSpace(os.Getenv("GITHUB_TOKEN")); token != "" {
		cfg.GitHub.Token = token
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(env envOverrides) {
	if env.GithubToken != "" {
		c.GitHub.Token = env.GithubToken
	}
	if env.GithubUsername != "" {
		c.GitHub.Username = env.GithubUsername
	}
	if env.GithubEmail != "" {
		c.GitHub.Email = env.GithubEmail
	}
	if env.GithubOwner != "" {
		c.GitHub.Owner = env.GithubOwner
	}
	if env.GithubBaseURL != "" {
		c.GitHub.BaseURL = env.GithubBaseURL
	}
	if env.HTTPTimeout > 0 {
		c.HTTP.Timeout = env.HTTPTimeout
	}
	if env.HTTPRateLimit > 0 {
		c.HTTP.RateLimitPerMin = env.HTTPRateLimit
	}
}

// Validate checks the merged configuration
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// SaveToPath writes the configuration to a specific yaml file
func (c *Config) SaveToPath(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Save writes the configuration to the default location
func (c *Config) Save() error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	return c.SaveToPath(path)
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".omnicoder", "config.yaml"), nil
}

// ResolveToken returns the token to use, preferring the environment over the
// config file
func ResolveToken(cfg *Config) (string, error) {
	if token := strings.TrimSpace(os.Getenv("GITHUB_TOKEN")); token != "" {
		return token, nil
	}
	if cfg != nil && cfg.GitHub.Token != "" {
		return strings.TrimSpace(cfg.GitHub.Token), nil
	}
	return "", fmt.Errorf("no GitHub token found: set GITHUB_TOKEN environment variable or configure token in ~/.omnicoder/config.yaml")
}
