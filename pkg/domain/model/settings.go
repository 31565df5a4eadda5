package model

import "time"

// WebhookSink is the single outbound notification target for a run.
type WebhookSink struct {
	URL     string            `yaml:"url"`
	Content string            `yaml:"content,omitempty"`
	Data    map[string]string `yaml:"data,omitempty"`
	Headers map[string]string `yaml:"headers,omitempty"`
}

// Settings is the resolved, immutable configuration consumed by the core.
// It is assembled once at startup; nothing mutates it afterwards.
type Settings struct {
	Repos     []string       // Repositories to watch, in processing order
	StateFile string         // Path of the YAML state file
	SkipDraft bool           // Skip draft releases without touching state
	Timezone  *time.Location // Display timezone for rendered timestamps
	Webhook   *WebhookSink   // nil when no sink is configured
}
