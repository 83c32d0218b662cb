package config

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

const gitConfigPrefix = "lc."

// gitConfigMock allows tests to mock git config output.
var gitConfigMock func(args []string) (string, error)

// runGitConfig executes git config command and returns raw output.
func runGitConfig(args []string) (string, error) {
	if gitConfigMock != nil {
		return gitConfigMock(args)
	}

	output, err := exec.Command("git", args...).Output()
	if err != nil {
		// git config returns exit code 1 when key not found (not an error)
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return "", nil
		}
		return "", err
	}
	return string(output), nil
}

// parseGitConfigOutput parses git config output into a multi-value map.
// Input format: "lc.root_dir /path/to/dir\nlc.fetch false\n"
func parseGitConfigOutput(output string) map[string][]string {
	configMap := make(map[string][]string)
	if strings.TrimSpace(output) == "" {
		return configMap
	}

	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if line == "" {
			continue
		}

		// values may contain spaces
		parts := strings.SplitN(line, " ", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimPrefix(parts[0], gitConfigPrefix)
		configMap[key] = append(configMap[key], parts[1])
	}

	return configMap
}

// convertGitConfig keeps the last value of each key, git's own precedence.
func convertGitConfig(gitCfg map[string][]string) map[string]any {
	result := make(map[string]any, len(gitCfg))
	for key, values := range gitCfg {
		if len(values) == 0 {
			continue
		}
		result[key] = values[len(values)-1]
	}
	return result
}

// loadGitConfig reads global lc.* git config values.
func loadGitConfig() (map[string]any, error) {
	output, err := runGitConfig([]string{"config", "--global", "--get-regexp", `^lc\.`})
	if err != nil {
		return nil, err
	}
	return convertGitConfig(parseGitConfigOutput(output)), nil
}

// parseCLIConfigOverrides parses --config=lc.key=value entries.
func parseCLIConfigOverrides(overrides []string) (map[string]any, error) {
	result := make(map[string]any)

	for _, override := range overrides {
		parts := strings.SplitN(override, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid config override: %q, expected format: lc.key=value (note: use = not space)", override)
		}

		fullKey := parts[0]
		if !strings.HasPrefix(fullKey, gitConfigPrefix) {
			return nil, fmt.Errorf("config override key must start with %q: %q", gitConfigPrefix, fullKey)
		}

		key := strings.TrimPrefix(fullKey, gitConfigPrefix)
		if key == "" {
			return nil, fmt.Errorf("empty config key in override: %q", override)
		}
		result[key] = parts[1]
	}

	return result, nil
}

// ApplyCLIOverrides applies --config overrides on top of the loaded config.
func (c *AppConfig) ApplyCLIOverrides(overrides []string) error {
	data, err := parseCLIConfigOverrides(overrides)
	if err != nil {
		return err
	}
	applyConfigData(c, data)
	return nil
}
