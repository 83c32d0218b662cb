// Package config loads lazyclones configuration from YAML, git config and
// command-line overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/chmouel/lazyclones/internal/theme"
	"gopkg.in/yaml.v3"
)

// AppConfig defines the global lazyclones configuration options.
type AppConfig struct {
	RootDir        string        // Directory whose immediate subdirectories are listed
	Theme          string        // Theme name: see AvailableThemes in internal/theme
	ShowIcons      bool          // Render Nerd Font icons in the tree view (default: false)
	Fetch          bool          // Run git fetch before classifying (default: true)
	FetchTimeout   time.Duration // Bound on each fetch; zero means no bound
	MaxConcurrency int           // Concurrent repository checks
	AutoRefresh    bool          // Watch the root directory and reload on changes
	DebugLog       string
}

// DefaultConfig returns the default configuration values.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Theme:          theme.DraculaName,
		ShowIcons:      false,
		Fetch:          true,
		FetchTimeout:   0,
		MaxConcurrency: defaultConcurrency(),
		AutoRefresh:    true,
	}
}

func defaultConcurrency() int {
	limit := runtime.NumCPU()
	if limit < 2 {
		limit = 2
	}
	if limit > 16 {
		limit = 16
	}
	return limit
}

func coerceBool(value any, defaultVal bool) bool {
	if value == nil {
		return defaultVal
	}

	switch v := value.(type) {
	case bool:
		return v
	case int:
		return v != 0
	case string:
		text := strings.ToLower(strings.TrimSpace(v))
		switch text {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return defaultVal
}

func coerceInt(value any, defaultVal int) int {
	if value == nil {
		return defaultVal
	}

	switch v := value.(type) {
	case bool:
		return defaultVal
	case int:
		return v
	case float64:
		return int(v)
	case string:
		text := strings.TrimSpace(v)
		if text == "" {
			return defaultVal
		}
		if i, err := strconv.Atoi(text); err == nil {
			return i
		}
	}
	return defaultVal
}

// coerceDuration accepts plain seconds or a Go duration string ("90s", "2m").
func coerceDuration(value any, defaultVal time.Duration) time.Duration {
	if value == nil {
		return defaultVal
	}
	if text, ok := value.(string); ok {
		text = strings.TrimSpace(text)
		if d, err := time.ParseDuration(text); err == nil {
			return d
		}
	}
	seconds := coerceInt(value, -1)
	if seconds < 0 {
		return defaultVal
	}
	return time.Duration(seconds) * time.Second
}

// applyConfigData overlays the keys present in data onto cfg.
func applyConfigData(cfg *AppConfig, data map[string]any) {
	if rootDir, ok := data["root_dir"].(string); ok {
		rootDir = strings.TrimSpace(rootDir)
		if rootDir != "" {
			cfg.RootDir = rootDir
		}
	}

	if debugLog, ok := data["debug_log"].(string); ok {
		debugLog = strings.TrimSpace(debugLog)
		if debugLog != "" {
			cfg.DebugLog = debugLog
		}
	}

	if themeName, ok := data["theme"].(string); ok {
		if normalized := NormalizeThemeName(themeName); normalized != "" {
			cfg.Theme = normalized
		}
	}

	cfg.ShowIcons = coerceBool(data["show_icons"], cfg.ShowIcons)
	cfg.Fetch = coerceBool(data["fetch"], cfg.Fetch)
	cfg.AutoRefresh = coerceBool(data["auto_refresh"], cfg.AutoRefresh)
	cfg.FetchTimeout = coerceDuration(data["fetch_timeout"], cfg.FetchTimeout)
	cfg.MaxConcurrency = coerceInt(data["max_concurrency"], cfg.MaxConcurrency)

	if cfg.MaxConcurrency < 1 {
		cfg.MaxConcurrency = 1
	}
	if cfg.FetchTimeout < 0 {
		cfg.FetchTimeout = 0
	}
}

func parseConfig(data map[string]any) *AppConfig {
	cfg := DefaultConfig()
	applyConfigData(cfg, data)
	return cfg
}

func getConfigDir() string {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return xdgConfigHome
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}

// LoadConfig reads the application configuration from a YAML file and the
// global git config. A missing file is not an error.
func LoadConfig(configPath string) (*AppConfig, error) {
	configBase := filepath.Join(getConfigDir(), "lazyclones")
	configBase = filepath.Clean(configBase)

	var paths []string

	if configPath != "" {
		expanded, err := ExpandPath(configPath)
		if err != nil {
			return DefaultConfig(), err
		}
		absPath, err := filepath.Abs(expanded)
		if err != nil {
			return DefaultConfig(), err
		}
		if !isPathWithin(configBase, absPath) {
			return DefaultConfig(), fmt.Errorf("config path must reside inside %s", configBase)
		}
		paths = []string{absPath}
	} else {
		paths = []string{
			filepath.Join(configBase, "config.yaml"),
			filepath.Join(configBase, "config.yml"),
		}
	}

	cfg := DefaultConfig()

	for _, path := range paths {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		// #nosec G304 -- path is constrained to the config directory after validation
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		var yamlData map[string]any
		if err := yaml.Unmarshal(data, &yamlData); err != nil {
			return DefaultConfig(), fmt.Errorf("failed to parse %s: %w", path, err)
		}

		applyConfigData(cfg, yamlData)
		break
	}

	gitData, err := loadGitConfig()
	if err == nil {
		applyConfigData(cfg, gitData)
	}

	return cfg, nil
}

// ResolveRootDir expands and absolutizes the root directory. An empty root
// falls back to the current working directory.
func (c *AppConfig) ResolveRootDir() error {
	root := c.RootDir
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		c.RootDir = wd
		return nil
	}
	expanded, err := ExpandPath(root)
	if err != nil {
		return fmt.Errorf("error expanding root dir: %w", err)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return fmt.Errorf("error resolving root dir: %w", err)
	}
	c.RootDir = abs
	return nil
}

// ExpandPath expands a leading ~ and environment variables.
func ExpandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[1:])
	}
	return os.ExpandEnv(path), nil
}

func isPathWithin(base, target string) bool {
	base = filepath.Clean(base)
	target = filepath.Clean(target)

	rel, err := filepath.Rel(base, target)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return false
	}
	return true
}

// NormalizeThemeName returns the canonical theme name if it is supported.
func NormalizeThemeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, available := range theme.AvailableThemes() {
		if name == available {
			return name
		}
	}
	return ""
}
