// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the parley CLI command tree: the root
// command runs the interactive session (or a single command with
// --command), plus logout and version subcommands.
package commands

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/parley-im/parley/backend"
	"github.com/parley-im/parley/cmd/parley/cli"
	replcommands "github.com/parley-im/parley/commands"
	"github.com/parley-im/parley/config"
	"github.com/parley-im/parley/messaging"
	"github.com/parley-im/parley/repl"
	"github.com/parley-im/parley/session"
)

// version is set at build time via -ldflags.
var version = "dev"

// rootParams holds the root command's flag values.
type rootParams struct {
	configPath   string
	backendURL   string
	passwordFile string
	command      string
	verbose      bool
}

// Root builds and returns the parley command tree.
func Root() *cli.Command {
	var params rootParams

	return &cli.Command{
		Name:    "parley",
		Summary: "Interactive messaging client",
		Description: `Parley: a command-driven messaging client.

Start an interactive session with "parley <username>" — the first run
prompts for a password and saves the session locally, so later runs
need no credentials at all. Inside the session, type "help" for the
available commands.`,
		Usage: "parley [username] [flags]",
		Examples: []cli.Example{
			{
				Description: "Start an interactive session (prompts for password on first run)",
				Command:     "parley dana",
			},
			{
				Description: "Reuse the saved session",
				Command:     "parley",
			},
			{
				Description: "Run one command and exit",
				Command:     `parley --command 'm "Bob Smith" running late'`,
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("parley", pflag.ContinueOnError)
			flagSet.StringVar(&params.configPath, "config", "", "config file path (default: $PARLEY_CONFIG)")
			flagSet.StringVar(&params.backendURL, "backend", "", "backend base URL (overrides config)")
			flagSet.StringVar(&params.passwordFile, "password-file", "", "path to file containing password, or - to prompt interactively (default: prompt)")
			flagSet.StringVar(&params.command, "command", "", "run one command and exit instead of starting the REPL")
			flagSet.BoolVarP(&params.verbose, "verbose", "v", false, "enable debug logging")
			return flagSet
		},
		Run: func(args []string) error {
			return runSession(params, args)
		},
		Subcommands: []*cli.Command{
			logoutCommand(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(args []string) error {
					fmt.Printf("parley %s\n", version)
					return nil
				},
			},
		},
	}
}

func runSession(params rootParams, args []string) error {
	logger := cli.NewLogger(params.verbose)

	cfg, err := loadConfig(params.configPath)
	if err != nil {
		return err
	}
	if params.backendURL != "" {
		cfg.Backend.URL = params.backendURL
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	var username string
	if len(args) > 0 {
		username = args[0]
		if len(args) > 1 {
			return fmt.Errorf("unexpected argument: %s", args[1])
		}
	}

	client, err := messaging.NewClient(messaging.ClientConfig{
		BackendURL: cfg.Backend.URL,
		HTTPClient: http.DefaultClient,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	// A saved session skips the password prompt entirely. Tokens are
	// only reused against the backend that issued them.
	var token *backend.Token
	if saved, err := cli.LoadSessionFrom(cfg.SessionFile()); err == nil {
		if saved.BackendURL == cfg.Backend.URL {
			token = &backend.Token{UserID: saved.UserID, AccessToken: saved.AccessToken}
		} else {
			logger.Warn("saved session is for a different backend, ignoring",
				"saved", saved.BackendURL, "configured", cfg.Backend.URL)
		}
	}

	if token == nil && username == "" {
		return fmt.Errorf("no saved session — run \"parley <username>\" to log in")
	}

	var password string
	if token == nil {
		password, err = cli.ReadLoginPassword(params.passwordFile)
		if err != nil {
			return err
		}
	}

	remote, err := backend.New(backend.Config{
		Client:   client,
		Token:    token,
		Username: username,
		Password: password,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	s, err := session.New(session.Config{
		Backend:        remote,
		Registry:       replcommands.NewRegistry(),
		Logger:         logger,
		RefreshLimit:   cfg.Session.RefreshLimit,
		RefreshFolders: cfg.Session.Folders,
	})
	if err != nil {
		return err
	}

	if params.command != "" {
		return runSingle(s, remote, cfg, params.command)
	}
	return runInteractive(s, remote, cfg)
}

func runSingle(s *session.Session, remote *backend.Remote, cfg *config.Config, line string) error {
	ctx, cancel := loginContext(cfg)
	defer cancel()

	output, err := s.StartSingle(ctx, line)
	if err != nil {
		return err
	}
	persistSession(s, remote, cfg)
	if output != "" {
		fmt.Println(output)
	}
	return nil
}

func runInteractive(s *session.Session, remote *backend.Remote, cfg *config.Config) error {
	// The event stream and the REPL live until logout; only the login
	// phase gets a deadline.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := s.Start(ctx); err != nil {
		return err
	}
	persistSession(s, remote, cfg)

	if err := repl.Run(s, repl.Options{
		TitleNotifications:   cfg.TitleNotifications(),
		PreviewNotifications: cfg.PreviewNotifications(),
	}); err != nil {
		return err
	}

	// A logout invalidated the token on the backend; drop the local
	// copy too. An interrupted session keeps it for next time.
	if s.State() == session.Terminated {
		if err := cli.RemoveSessionAt(cfg.SessionFile()); err != nil {
			s.Logger().Warn("removing saved session", "error", err)
		}
	}
	return nil
}

// persistSession saves the access token so the next run skips the
// password prompt. Failure is logged, not fatal — the session works
// either way.
func persistSession(s *session.Session, remote *backend.Remote, cfg *config.Config) {
	userID, accessToken := remote.Credentials()
	if accessToken == "" {
		return
	}
	saved := &cli.SavedSession{
		UserID:      userID,
		AccessToken: accessToken,
		BackendURL:  cfg.Backend.URL,
	}
	if err := cli.SaveSessionTo(saved, cfg.SessionFile()); err != nil {
		s.Logger().Warn("saving session", "error", err)
	}
}

func loginContext(cfg *config.Config) (context.Context, context.CancelFunc) {
	timeout, err := cfg.Timeout()
	if err != nil {
		timeout = 30 * time.Second
	}
	return context.WithTimeout(context.Background(), timeout)
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

func logoutCommand() *cli.Command {
	return &cli.Command{
		Name:    "logout",
		Summary: "Invalidate the saved session",
		Description: `Invalidate the saved session on the backend and remove the local file.

Without a saved session this is a no-op. The next "parley <username>"
prompts for a password again.`,
		Usage: "parley logout",
		Run: func(args []string) error {
			logger := cli.NewLogger(false)

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			sessionPath := cfg.SessionFile()

			saved, err := cli.LoadSessionFrom(sessionPath)
			if err != nil {
				if os.IsNotExist(errUnwrapAll(err)) {
					fmt.Fprintln(os.Stderr, "no saved session")
					return nil
				}
				return err
			}

			// Best-effort backend invalidation: a dead backend must not
			// stop the local file from being removed.
			client, err := messaging.NewClient(messaging.ClientConfig{
				BackendURL: saved.BackendURL,
				Logger:     logger,
			})
			if err == nil {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if direct, err := client.SessionFromToken(saved.UserID, saved.AccessToken); err == nil {
					if err := direct.Logout(ctx); err != nil {
						logger.Warn("backend logout failed", "error", err)
					}
				}
			}

			if err := cli.RemoveSessionAt(sessionPath); err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, "logged out")
			return nil
		},
	}
}

func errUnwrapAll(err error) error {
	for {
		unwrapped, ok := err.(interface{ Unwrap() error })
		if !ok {
			return err
		}
		err = unwrapped.Unwrap()
	}
}
