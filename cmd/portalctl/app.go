package main

import (
	"os"
	"path/filepath"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/carson-networks/payments-portal/internal/client"
)

type appState struct {
	api    *client.API
	logger *logrus.Logger
	debug  bool
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".portalctl-session.json"
	}
	return filepath.Join(dir, "portalctl", "session.json")
}

func newApp() *cli.App {
	state := &appState{}

	return &cli.App{
		Name:  "portalctl",
		Usage: "command line client for the payments portal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "url",
				Value:   "http://localhost:9446",
				EnvVars: []string{"PORTAL_URL"},
				Usage:   "portal server base URL",
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Value:   client.DefaultTimeout,
				EnvVars: []string{"PORTAL_TIMEOUT"},
				Usage:   "per request timeout",
			},
			&cli.StringFlag{
				Name:    "session-file",
				Value:   defaultSessionFile(),
				EnvVars: []string{"PORTAL_SESSION_FILE"},
				Usage:   "where the login session is kept",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "log requests and dump decoded responses",
			},
		},
		Before: func(c *cli.Context) error {
			logger := logrus.New()
			logger.SetOutput(c.App.ErrWriter)
			logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
			if c.Bool("debug") {
				logger.SetLevel(logrus.DebugLevel)
			}

			session := &client.Session{}
			if err := session.Init(client.NewFileStore(c.String("session-file"))); err != nil {
				return err
			}

			state.logger = logger
			state.debug = c.Bool("debug")
			state.api = client.NewAPI(c.String("url"), c.Duration("timeout"), session, client.WithLogger(logger))
			return nil
		},
		Commands: commands(state),
	}
}

func (s *appState) dump(c *cli.Context, v any) {
	if s.debug {
		spew.Fdump(c.App.ErrWriter, v)
	}
}
