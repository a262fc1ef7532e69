// Command autoplay plays battleship matches against a running server. Both
// players are driven by a hunt strategy, which makes it useful for smoke
// testing a deployment and for watching matches live over the WebSocket feed.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/urfave/cli/v3"
	"github.com/wricardo/battleship/game/engine"
	"github.com/wricardo/battleship/game/view"
)

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "autoplay",
		Usage: "play battleship matches against a server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "url",
				Value:   "http://localhost:8080",
				Usage:   "game server URL",
				Sources: cli.EnvVars("BATTLESHIP_URL"),
			},
			&cli.StringFlag{Name: "config", Usage: "configuration for a new session (classic, compact, open_sea)"},
			&cli.StringFlag{Name: "continue", Usage: "play in an existing session by ID"},
			&cli.IntFlag{Name: "games", Value: 1, Usage: "number of matches to play"},
			&cli.IntFlag{Name: "seed", Value: 1, Usage: "seed for shot selection"},
			&cli.DurationFlag{Name: "delay", Usage: "pause between shots"},
			&cli.BoolFlag{Name: "v", Usage: "log every shot"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log.Printf("Connecting to game server at %s", cmd.String("url"))
			client := NewClient(cmd.String("url"))

			if id := cmd.String("continue"); id != "" {
				if _, err := client.Resume(id); err != nil {
					return fmt.Errorf("failed to resume session %s: %w", id, err)
				}
				log.Printf("Resuming session: %s", id)
			} else {
				info, err := client.CreateSession(cmd.String("config"))
				if err != nil {
					return fmt.Errorf("failed to create session: %w", err)
				}
				log.Printf("Session created: %s (%s)", info.ID, info.ConfigName)
			}

			p := &player{
				client:  client,
				seed:    uint64(cmd.Int("seed")),
				delay:   cmd.Duration("delay"),
				verbose: cmd.Bool("v"),
			}
			for game := 1; game <= int(cmd.Int("games")); game++ {
				log.Printf("=== Match %d/%d ===", game, cmd.Int("games"))
				summary, err := p.playMatch(ctx)
				if err != nil {
					return err
				}
				log.Print(summary)
			}
			log.Printf("Session: %s", client.sessionID)
			return nil
		},
	}
}

// player runs matches in one session, alternating strategies by turn
type player struct {
	client  *Client
	seed    uint64
	delay   time.Duration
	verbose bool
	played  int
}

// playMatch restarts the session when needed, deploys both fleets at random
// and fires until someone wins. It returns a one-line summary.
func (p *player) playMatch(ctx context.Context) (string, error) {
	match, err := p.client.State()
	if err != nil {
		return "", err
	}
	if match.Phase != engine.PhaseLobby {
		if match, err = p.client.Restart(); err != nil {
			return "", fmt.Errorf("restart: %w", err)
		}
	}
	if _, err := p.client.Randomize(); err != nil {
		return "", fmt.Errorf("randomize: %w", err)
	}
	if match, err = p.client.Start(); err != nil {
		return "", fmt.Errorf("start: %w", err)
	}

	p.played++
	strategies := map[engine.Player]*HuntStrategy{
		engine.PlayerOne: NewHuntStrategy(p.seed + uint64(p.played)*2),
		engine.PlayerTwo: NewHuntStrategy(p.seed + uint64(p.played)*2 + 1),
	}

	shots := 0
	for match.Winner == nil {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		board, ok := targetBoard(match)
		if !ok {
			return "", errors.New("no board to fire at")
		}
		target, ok := strategies[match.ActivePlayer].NextShot(board)
		if !ok {
			return "", fmt.Errorf("%s has no cells left to shoot", match.ActiveName)
		}

		result, err := p.client.Fire(target)
		if err != nil {
			return "", fmt.Errorf("fire at %s: %w", view.CoordinateLabel(target), err)
		}
		shots++
		if p.verbose {
			log.Printf("%s fired at %s: %s", match.ActiveName, view.CoordinateLabel(target), result.Shot.Outcome.Result)
		}
		match = result.Match

		if p.delay > 0 {
			time.Sleep(p.delay)
		}
	}

	return fmt.Sprintf("%s won after %d shots", match.Winner.DisplayName(), shots), nil
}

func targetBoard(match *view.MatchView) (view.BoardView, bool) {
	for _, b := range match.Boards {
		if b.Targetable {
			return b, true
		}
	}
	return view.BoardView{}, false
}
