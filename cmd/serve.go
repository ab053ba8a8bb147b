package cmd

import (
	"context"
	"fmt"

	"github.com/amouradore/mouradloader/internal/config"
	"github.com/amouradore/mouradloader/internal/controller"
	"github.com/urfave/cli/v3"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the download server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "download-dir",
				Usage:   "Directory downloaded files are written to",
				Sources: cli.EnvVars("ML_DOWNLOADS_DIR"),
			},
			&cli.IntFlag{
				Name:    "port",
				Usage:   "HTTP listen port",
				Sources: cli.EnvVars("ML_SERVER_PORT"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := config.Load(cmd.String("config"))
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			if v := cmd.String("download-dir"); v != "" {
				cfg.Downloads.Dir = v
			}
			if v := cmd.Int("port"); v != 0 {
				cfg.Server.Port = int(v)
			}
			if v := cmd.String("log-level"); v != "" {
				cfg.Logging.Level = v
			}

			return controller.Run(ctx, cfg)
		},
	}
}
