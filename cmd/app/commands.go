package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/agentvault/agentvault/cmd/app/commands"
)

// getCommands assembles all CLI commands for the application.
func getCommands() []*cli.Command {
	cmds := []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP server",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "migrate",
			Usage: "Run database migrations",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunMigrations()
			},
		},
	}

	cmds = append(cmds, getAuthCommands()...)
	return cmds
}
