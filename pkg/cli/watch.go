package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relwatch/pkg/cli/config"
	githubinfra "github.com/m-mizutani/relwatch/pkg/infra/github"
	"github.com/m-mizutani/relwatch/pkg/infra/state"
	"github.com/m-mizutani/relwatch/pkg/infra/webhook"
	"github.com/m-mizutani/relwatch/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdWatch() *cli.Command {
	var (
		watchCfg  config.Settings
		githubCfg config.GitHub
	)

	flags := append(watchCfg.Flags(), githubCfg.Flags()...)

	return &cli.Command{
		Name:    "watch",
		Aliases: []string{"w"},
		Usage:   "Run one pass over the watched repositories",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			settings, err := watchCfg.Resolve(c)
			if err != nil {
				return goerr.Wrap(err, "failed to resolve settings")
			}

			logger.Info("Starting watch pass",
				slog.Int("repos", len(settings.Repos)),
				slog.String("state_file", settings.StateFile),
				slog.Bool("webhook", settings.Webhook != nil),
			)

			source, err := githubinfra.NewClient(githubCfg.Token, githubCfg.BaseURL)
			if err != nil {
				return goerr.Wrap(err, "failed to create GitHub client")
			}

			watcher := usecase.NewWatch(
				settings,
				source,
				state.New(settings.StateFile),
				webhook.New(webhook.WithTimeout(watchCfg.WebhookTimeout)),
			)

			if err := watcher.Run(ctx); err != nil {
				return goerr.Wrap(err, "watch pass failed")
			}

			logger.Info("Watch pass complete")
			return nil
		},
	}
}
