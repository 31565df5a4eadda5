package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"
)

// defaultConfigFiles are tried in order when no --config path is given.
var defaultConfigFiles = []string{"config.yaml", "config.yml"}

// fileConfig mirrors the YAML config file. Pointer fields distinguish
// "absent" from a zero value so flag defaults are not shadowed.
type fileConfig struct {
	Repos     []string           `yaml:"repos"`
	StateFile *string            `yaml:"state_file"`
	SkipDraft *bool              `yaml:"skip_draft"`
	Timezone  *string            `yaml:"timezone"`
	Webhook   *webhookFileConfig `yaml:"webhook"`
}

type webhookFileConfig struct {
	URL     string            `yaml:"url"`
	Content string            `yaml:"content"`
	Data    map[string]string `yaml:"data"`
	Headers map[string]string `yaml:"headers"`
}

// loadFileConfig reads the YAML config file. An explicitly given path must
// exist; the default candidates are optional.
func loadFileConfig(path string) (*fileConfig, error) {
	if path != "" {
		return parseFileConfig(path)
	}

	for _, candidate := range defaultConfigFiles {
		if _, err := os.Stat(candidate); err == nil {
			return parseFileConfig(candidate)
		}
	}
	return &fileConfig{}, nil
}

func parseFileConfig(path string) (*fileConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to parse config file", goerr.V("path", path))
	}
	return &cfg, nil
}

// applySecrets overlays values from a secrets directory onto the file
// config. Each regular file holds one value and is named by its config
// key, nested keys joined with "__" (e.g. webhook__url). Unknown keys are
// ignored so unrelated mounts do not break startup.
func (c *fileConfig) applySecrets(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return goerr.Wrap(err, "secrets directory does not exist", goerr.V("dir", dir))
		}
		return goerr.Wrap(err, "failed to read secrets directory", goerr.V("dir", dir))
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return goerr.Wrap(err, "failed to read secret file", goerr.V("file", entry.Name()))
		}
		value := strings.TrimSpace(string(raw))

		switch strings.ToLower(entry.Name()) {
		case "repos":
			c.Repos = splitRepos(value)
		case "state_file":
			c.StateFile = &value
		case "skip_draft":
			skip, err := strconv.ParseBool(value)
			if err != nil {
				return goerr.Wrap(err, "invalid skip_draft secret", goerr.V("value", value))
			}
			c.SkipDraft = &skip
		case "timezone":
			c.Timezone = &value
		case "webhook__url":
			c.ensureWebhook().URL = value
		case "webhook__content":
			c.ensureWebhook().Content = value
		}
	}

	return nil
}

func (c *fileConfig) ensureWebhook() *webhookFileConfig {
	if c.Webhook == nil {
		c.Webhook = &webhookFileConfig{}
	}
	return c.Webhook
}

func splitRepos(s string) []string {
	var repos []string
	for _, r := range strings.Split(s, ",") {
		if r = strings.TrimSpace(r); r != "" {
			repos = append(repos, r)
		}
	}
	return repos
}
