// Package config resolves the per-run configuration: the site settings that
// describe the documentation repository layout and the date window the
// report covers. All state is carried in explicit values; nothing in this
// package is process-global.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Site describes the repository layout and public URL scheme of the
// documentation site being tracked.
type Site struct {
	// BaseURL is the public documentation origin, without a trailing slash.
	BaseURL string `yaml:"base_url"`
	// DocsRoot is the repository-relative directory holding documentation
	// content, one subdirectory per product.
	DocsRoot string `yaml:"docs_root"`
	// ChangelogRoot is the repository-relative directory holding changelog
	// entries, one subdirectory per changelog category.
	ChangelogRoot string `yaml:"changelog_root"`
	// Products adds tracked products on top of the built-in table,
	// directory key to display name. An empty display name is derived
	// from the key.
	Products map[string]string `yaml:"products,omitempty"`
	// Aliases adds changelog-directory aliases on top of the built-in table.
	Aliases map[string]string `yaml:"aliases,omitempty"`
}

// DefaultSite returns the site settings for developers.cloudflare.com, the
// layout the built-in classification tables describe.
func DefaultSite() Site {
	return Site{
		BaseURL:       "https://developers.cloudflare.com",
		DocsRoot:      "src/content/docs",
		ChangelogRoot: "src/content/changelog",
	}
}

// LoadSite loads site settings from a YAML file, falling back to defaults
// for any field left unset. An empty path yields the defaults unchanged.
//
// A .env/.env.local file in the working directory is loaded first (without
// overriding the process environment) and environment references in the
// YAML content are expanded before parsing.
func LoadSite(configPath string) (Site, error) {
	loadEnvFiles()

	site := DefaultSite()
	if configPath == "" {
		return site, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return Site{}, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), &site); err != nil {
		return Site{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	site.BaseURL = strings.TrimRight(site.BaseURL, "/")
	site.DocsRoot = strings.Trim(site.DocsRoot, "/")
	site.ChangelogRoot = strings.Trim(site.ChangelogRoot, "/")

	defaults := DefaultSite()
	if site.BaseURL == "" {
		site.BaseURL = defaults.BaseURL
	}
	if site.DocsRoot == "" {
		site.DocsRoot = defaults.DocsRoot
	}
	if site.ChangelogRoot == "" {
		site.ChangelogRoot = defaults.ChangelogRoot
	}

	return site, nil
}

// loadEnvFiles loads the first .env file found. Missing files are fine;
// existing process environment variables are never overwritten.
func loadEnvFiles() {
	for _, envPath := range []string{".env", ".env.local"} {
		if err := godotenv.Load(envPath); err == nil {
			return
		}
	}
}

// ExpandHome expands a leading ~ in a path to the user's home directory.
func ExpandHome(path string) string {
	if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return path
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
