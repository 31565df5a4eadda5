package config

import (
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relwatch/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

// Settings holds the watch-pass configuration before resolution. Values
// arrive from CLI flags, environment variables (RELWATCH_ prefix, nested
// keys joined with "__"), a secrets directory and a YAML config file;
// Resolve folds them into a single immutable model.Settings.
type Settings struct {
	Repos          []string
	StateFile      string
	SkipDraft      bool
	Timezone       string
	WebhookURL     string
	WebhookContent string
	WebhookData    []string
	WebhookHeaders []string
	WebhookTimeout time.Duration
	ConfigFile     string
	SecretsDir     string
}

// Flags returns CLI flags for watch-pass configuration
func (c *Settings) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:        "repos",
			Usage:       "Repositories to watch as owner/name (repeatable or comma-separated)",
			Destination: &c.Repos,
			Sources:     cli.EnvVars("RELWATCH_REPOS"),
		},
		&cli.StringFlag{
			Name:        "state-file",
			Usage:       "Path of the YAML state file",
			Value:       "state.yaml",
			Destination: &c.StateFile,
			Sources:     cli.EnvVars("RELWATCH_STATE_FILE"),
		},
		&cli.BoolFlag{
			Name:        "skip-draft",
			Usage:       "Skip draft releases without recording them",
			Value:       true,
			Destination: &c.SkipDraft,
			Sources:     cli.EnvVars("RELWATCH_SKIP_DRAFT"),
		},
		&cli.StringFlag{
			Name:        "timezone",
			Usage:       "Display timezone for rendered timestamps",
			Value:       "UTC",
			Destination: &c.Timezone,
			Sources:     cli.EnvVars("RELWATCH_TIMEZONE"),
		},
		&cli.StringFlag{
			Name:        "webhook-url",
			Usage:       "Webhook URL to notify on new releases",
			Destination: &c.WebhookURL,
			Sources:     cli.EnvVars("RELWATCH_WEBHOOK__URL"),
		},
		&cli.StringFlag{
			Name:        "webhook-content",
			Usage:       "Webhook body template ($repo_name, $id, $html_url, $tag_name, $name, $published_at, $body)",
			Destination: &c.WebhookContent,
			Sources:     cli.EnvVars("RELWATCH_WEBHOOK__CONTENT"),
		},
		&cli.StringSliceFlag{
			Name:        "webhook-data",
			Usage:       "Static form field as key=value, sent when no content template is set (repeatable)",
			Destination: &c.WebhookData,
			Sources:     cli.EnvVars("RELWATCH_WEBHOOK__DATA"),
		},
		&cli.StringSliceFlag{
			Name:        "webhook-header",
			Usage:       "Static request header as 'Key: Value' (repeatable)",
			Destination: &c.WebhookHeaders,
			Sources:     cli.EnvVars("RELWATCH_WEBHOOK__HEADERS"),
		},
		&cli.DurationFlag{
			Name:        "webhook-timeout",
			Usage:       "Timeout per webhook delivery (0 = no timeout)",
			Value:       0,
			Destination: &c.WebhookTimeout,
			Sources:     cli.EnvVars("RELWATCH_WEBHOOK_TIMEOUT"),
		},
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Path of the YAML config file (default: config.yaml, then config.yml)",
			Destination: &c.ConfigFile,
			Sources:     cli.EnvVars("RELWATCH_CONFIG"),
		},
		&cli.StringFlag{
			Name:        "secrets-dir",
			Usage:       "Directory holding one config value per file, named by key",
			Destination: &c.SecretsDir,
			Sources:     cli.EnvVars("RELWATCH_SECRETS_DIR"),
		},
	}
}

// Resolve assembles the effective settings. CLI flags and environment
// (already folded together by the flag parser) beat the secrets directory,
// which beats the config file. Flag defaults apply only when no layer
// provides a value.
func (c *Settings) Resolve(cmd *cli.Command) (*model.Settings, error) {
	fileCfg, err := loadFileConfig(c.ConfigFile)
	if err != nil {
		return nil, err
	}
	if c.SecretsDir != "" {
		if err := fileCfg.applySecrets(c.SecretsDir); err != nil {
			return nil, err
		}
	}

	resolved := &model.Settings{
		Repos:     c.Repos,
		StateFile: c.StateFile,
		SkipDraft: c.SkipDraft,
	}

	if !cmd.IsSet("repos") && len(fileCfg.Repos) > 0 {
		resolved.Repos = fileCfg.Repos
	}
	if !cmd.IsSet("state-file") && fileCfg.StateFile != nil {
		resolved.StateFile = *fileCfg.StateFile
	}
	if !cmd.IsSet("skip-draft") && fileCfg.SkipDraft != nil {
		resolved.SkipDraft = *fileCfg.SkipDraft
	}

	tzName := c.Timezone
	if !cmd.IsSet("timezone") && fileCfg.Timezone != nil {
		tzName = *fileCfg.Timezone
	}
	tz, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid timezone", goerr.V("timezone", tzName))
	}
	resolved.Timezone = tz

	sink, err := c.resolveWebhook(cmd, fileCfg.Webhook)
	if err != nil {
		return nil, err
	}
	resolved.Webhook = sink

	if len(resolved.Repos) == 0 {
		return nil, goerr.New("no repositories configured")
	}

	return resolved, nil
}

func (c *Settings) resolveWebhook(cmd *cli.Command, file *webhookFileConfig) (*model.WebhookSink, error) {
	var sink *model.WebhookSink
	if file != nil {
		sink = &model.WebhookSink{
			URL:     file.URL,
			Content: file.Content,
			Data:    file.Data,
			Headers: file.Headers,
		}
	}

	ensure := func() *model.WebhookSink {
		if sink == nil {
			sink = &model.WebhookSink{}
		}
		return sink
	}

	if cmd.IsSet("webhook-url") {
		ensure().URL = c.WebhookURL
	}
	if cmd.IsSet("webhook-content") {
		ensure().Content = c.WebhookContent
	}
	if len(c.WebhookData) > 0 {
		data := make(map[string]string, len(c.WebhookData))
		for _, kv := range c.WebhookData {
			k, v, ok := strings.Cut(kv, "=")
			if !ok || strings.TrimSpace(k) == "" {
				return nil, goerr.New("invalid webhook data, expected key=value", goerr.V("data", kv))
			}
			data[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
		ensure().Data = data
	}
	if len(c.WebhookHeaders) > 0 {
		headers := make(map[string]string, len(c.WebhookHeaders))
		for _, h := range c.WebhookHeaders {
			k, v, ok := strings.Cut(h, ":")
			if !ok || strings.TrimSpace(k) == "" {
				return nil, goerr.New("invalid webhook header, expected 'Key: Value'", goerr.V("header", h))
			}
			headers[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
		ensure().Headers = headers
	}

	if sink != nil && sink.URL == "" {
		return nil, goerr.New("webhook URL is required when a webhook is configured")
	}

	return sink, nil
}
