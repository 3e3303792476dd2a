package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/agentvault/agentvault/cmd/app/commands"
	"github.com/agentvault/agentvault/internal/app"
	"github.com/agentvault/agentvault/internal/config"
)

func getAuthCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-principal",
			Usage: "Create a new principal and print its bearer token",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Human-readable principal name",
				},
				&cli.BoolFlag{
					Name:    "admin",
					Aliases: []string{"a"},
					Value:   false,
					Usage:   "Add the principal to the admin allow-list",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				principalUseCase, err := container.PrincipalUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreatePrincipal(
					ctx,
					principalUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("name"),
					cmd.Bool("admin"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "set-admin",
			Usage: "Add or remove a principal from the admin allow-list",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "id",
					Aliases:  []string{"i"},
					Required: true,
					Usage:    "Principal ID",
				},
				&cli.BoolFlag{
					Name:    "admin",
					Aliases: []string{"a"},
					Value:   true,
					Usage:   "Whether the principal should be an admin",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				principalUseCase, err := container.PrincipalUseCase()
				if err != nil {
					return err
				}

				return commands.RunSetAdmin(
					ctx,
					principalUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("id"),
					cmd.Bool("admin"),
				)
			},
		},
	}
}
