package config

import "github.com/urfave/cli/v3"

// GitHub holds release-source configuration. Anonymous access is the
// default; a token raises the API rate limit and reaches private repos.
type GitHub struct {
	Token   string
	BaseURL string
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub API token (optional)",
			Destination: &c.Token,
			Sources:     cli.EnvVars("RELWATCH_GITHUB_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "github-base-url",
			Usage:       "GitHub API base URL for GitHub Enterprise Server (optional)",
			Destination: &c.BaseURL,
			Sources:     cli.EnvVars("RELWATCH_GITHUB_BASE_URL"),
		},
	}
}
