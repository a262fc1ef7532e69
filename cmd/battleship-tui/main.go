// Command battleship-tui runs a hot-seat match in the terminal. Both players
// share one keyboard and the boards are hidden between turns. Matches are
// stored in the same sessions directory as the server, so a match can be
// resumed from either side.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"sort"

	"github.com/urfave/cli/v3"
	"github.com/wricardo/battleship/game/config"
	"github.com/wricardo/battleship/game/service"
	"github.com/wricardo/battleship/game/session"
)

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "battleship-tui",
		Usage: "play battleship on one terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "directory containing match configuration files",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.StringFlag{
				Name:    "sessions-dir",
				Value:   "sessions",
				Usage:   "directory where matches are saved",
				Sources: cli.EnvVars("SESSIONS_DIR"),
			},
			&cli.StringFlag{
				Name:  "config",
				Value: "classic",
				Usage: "configuration for a new match",
			},
			&cli.StringFlag{
				Name:  "session",
				Usage: "resume a saved match instead of starting a new one",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			svc, _, err := openService(cmd.String("config-dir"), cmd.String("sessions-dir"))
			if err != nil {
				return err
			}
			sessionID, err := pickSession(ctx, svc, cmd.String("session"), cmd.String("config"))
			if err != nil {
				return err
			}
			h, err := newHotSeat(ctx, svc, sessionID)
			if err != nil {
				return err
			}
			return runScreen(ctx, h)
		},
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list saved matches",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					svc, _, err := openService(cmd.String("config-dir"), cmd.String("sessions-dir"))
					if err != nil {
						return err
					}
					return listSessions(ctx, svc, os.Stdout)
				},
			},
		},
	}
}

// openService wires the game service to the on-disk configs and sessions
func openService(configDir, sessionsDir string) (service.GameService, *session.Manager, error) {
	configManager, err := config.NewManager(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create config manager: %w", err)
	}
	persistence, err := session.NewFilePersistence(sessionsDir, configManager)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create session persistence: %w", err)
	}
	sessions := session.NewManagerWithPersistence(persistence)
	if err := sessions.LoadPersistedSessions(); err != nil {
		log.Printf("Warning: Failed to load persisted sessions: %v", err)
	}
	return service.NewGameService(sessions, configManager), sessions, nil
}

func pickSession(ctx context.Context, svc service.GameService, sessionID, configName string) (string, error) {
	if sessionID != "" {
		info, err := svc.GetSession(ctx, sessionID)
		if err != nil {
			return "", err
		}
		return info.ID, nil
	}
	info, err := svc.CreateSession(ctx, configName)
	if err != nil {
		return "", err
	}
	return info.ID, nil
}

func listSessions(ctx context.Context, svc service.GameService, w io.Writer) error {
	sessions, err := svc.ListSessions(ctx)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Fprintln(w, "No saved matches.")
		return nil
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].LastAccessedAt.After(sessions[j].LastAccessedAt)
	})
	for _, s := range sessions {
		state := string(s.Match.Phase)
		if s.Match.Winner != nil {
			state += ", won by " + s.Match.Winner.DisplayName()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", s.ID, s.ConfigName, state)
	}
	return nil
}
