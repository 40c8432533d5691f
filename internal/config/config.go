package config

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// applyDefaults seeds Viper with defaults defined in GetConfigOptions.
// This centralizes default values and descriptions in one place.
func applyDefaults(v *viper.Viper) {
	for _, o := range GetConfigOptions() {
		v.SetDefault(o.Key, o.Default)
	}
}

// Load resolves configuration with precedence: defaults < file < env.
// The provided Viper instance is mutated with defaults, file contents, and env.
func Load(ctx context.Context, v *viper.Viper) error {
	// Configure Viper search paths. If SetConfigFile was provided upstream,
	// it takes precedence; these paths are harmless fallbacks.
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("config")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "folio"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "folio"))
		}
		v.AddConfigPath(".")
	}

	// Apply centralized defaults (lowest precedence)
	applyDefaults(v)

	// Read config file if present (overrides defaults)
	_ = v.ReadInConfig()

	// Environment variables: FOLIO_* (highest among these sources)
	v.SetEnvPrefix("folio")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Normalize dependent values post-merge
	if strings.TrimSpace(v.GetString("source")) == "" {
		v.Set("source", "projects.json")
	}
	if strings.TrimSpace(v.GetString("output_dir")) == "" {
		v.Set("output_dir", "public")
	}
	return nil
}

// DefaultConfigPath resolves the standard config.toml location.
func DefaultConfigPath() string {
	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		home, _ := os.UserHomeDir()
		xdg = filepath.Join(home, ".config")
	}
	return filepath.Join(xdg, "folio", "config.toml")
}

type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// GetConfigOptions returns the default configuration options and their meanings.
// This is the single source of truth for default values and generator output.
func GetConfigOptions() []ConfigOption {
	return []ConfigOption{
		// Core paths and conventions
		{Key: "source", Default: "projects.json", Comment: "Catalog location: file path or http(s) URL"},
		{Key: "output_dir", Default: "public", Comment: "Directory the static build writes into"},
		{Key: "http_addr", Default: ":8080", Comment: "HTTP listen address for folio serve"},

		{Key: "site.title", Default: "Portfolio", Comment: "Site and feed title"},
		{Key: "site.description", Default: "", Comment: "Site and feed description"},
		{Key: "site.base_url", Default: "", Comment: "Absolute base URL used in feeds and project links"},
		{Key: "site.language", Default: "en", Comment: "Feed language code"},
		{Key: "site.author", Default: "", Comment: "Author name shown in page footers"},

		{Key: "fetch.timeout", Default: "10s", Comment: "Timeout for the catalog HTTP fetch"},
		{Key: "feed.max_items", Default: 50, Comment: "Maximum number of items in generated feeds"},

		{Key: "show.drafts", Default: false, Comment: "Include draft projects by default"},
		{Key: "show.archived", Default: false, Comment: "Include archived projects by default"},
		{Key: "show.private", Default: false, Comment: "Include private projects by default"},

		{Key: "pretty.style", Default: "dracula", Comment: "Glamour style for pretty terminal output"},
		{Key: "pretty.width", Default: 80, Comment: "Word-wrap width for pretty output when not a TTY"},
	}
}

// Site is the feed/page metadata block resolved from config.
type Site struct {
	Title       string
	Description string
	BaseURL     string
	Language    string
	Author      string
}

// SiteFromViper extracts the site metadata keys.
func SiteFromViper(v *viper.Viper) Site {
	return Site{
		Title:       v.GetString("site.title"),
		Description: v.GetString("site.description"),
		BaseURL:     strings.TrimRight(strings.TrimSpace(v.GetString("site.base_url")), "/"),
		Language:    v.GetString("site.language"),
		Author:      v.GetString("site.author"),
	}
}

// FetchTimeout parses fetch.timeout, falling back to 10s.
func FetchTimeout(v *viper.Viper) time.Duration {
	d, err := time.ParseDuration(v.GetString("fetch.timeout"))
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// CheckConfigValidity reports every problem found in the resolved config.
func CheckConfigValidity(v *viper.Viper) error {
	var problems []string

	if strings.TrimSpace(v.GetString("source")) == "" {
		problems = append(problems, "source is required")
	}
	if strings.TrimSpace(v.GetString("output_dir")) == "" {
		problems = append(problems, "output_dir is required")
	}
	if v.GetInt("feed.max_items") <= 0 {
		problems = append(problems, "feed.max_items must be greater than 0")
	}
	if v.GetInt("pretty.width") <= 0 {
		problems = append(problems, "pretty.width must be greater than 0")
	}
	if _, err := time.ParseDuration(v.GetString("fetch.timeout")); err != nil {
		problems = append(problems, "fetch.timeout must be a duration")
	}
	if base := strings.TrimSpace(v.GetString("site.base_url")); base != "" {
		u, err := url.Parse(base)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			problems = append(problems, "site.base_url must be an absolute http(s) URL")
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}
