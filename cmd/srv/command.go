package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "socialnet"
	app.Usage = ""
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "Path of the configuration file",
		},
	}
	app.Before = func(cctx *cli.Context) error {
		return s.loadContext(cctx.String("config"))
	}
	app.Commands = []*cli.Command{
		{
			Action:      server.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Flags:       []cli.Flag{},
			Category:    "Api",
			Description: `Used for start service api, it main service included all apis.`,
		},
		{
			Action:      server.startMigrate,
			Name:        "migrate",
			Usage:       "Migrate database",
			Flags:       []cli.Flag{},
			Category:    "Database",
			Description: `Apply all pending database migrations.`,
		},
		{
			Action:   server.startSeed,
			Name:     "seed",
			Usage:    "Seed database with demo data",
			Flags:    []cli.Flag{},
			Category: "Database",
			Description: `Fill the database with a demo data set of users, communities,
posts and chats. Intended for local development.`,
		},
		{
			Action: server.startCleanupUsers,
			Name:   "cleanup-users",
			Usage:  "Deactivate users who have not been seen for a long time",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "days",
					Usage: "Inactivity threshold in days",
					Value: 365,
				},
				&cli.BoolFlag{
					Name:  "dry-run",
					Usage: "Only report the users that would be deactivated",
				},
			},
			Category:    "Maintenance",
			Description: `Deactivates accounts with no activity since the threshold. Staff accounts are never touched.`,
		},
	}

	s.app = app
}
