package view

import (
	"fmt"
	"strings"

	"github.com/wricardo/battleship/game/engine"
)

// Notification is a titled message shown to players after an action
type Notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// GameStarted announces the first turn
func GameStarted(messages engine.Messages, first engine.Player) Notification {
	return Notification{
		Title: "The game has started",
		Body:  fmt.Sprintf(messages.GameStarted, first.DisplayName()),
	}
}

// Notify builds the notification for a fire result using the configured texts
func Notify(messages engine.Messages, r *engine.FireResult) Notification {
	if r.Winner != nil {
		name := r.Winner.DisplayName()
		return Notification{
			Title: name + " has won!",
			Body:  fmt.Sprintf(messages.Victory, name),
		}
	}

	next := r.NextTurn.DisplayName()
	switch r.Outcome.Result {
	case engine.ShotHit:
		body := fmt.Sprintf(messages.Hit, next)
		if r.Outcome.Sunk() {
			body = afterFirstSentence(body, fmt.Sprintf(messages.Sunk, r.Outcome.SunkKind.DisplayName()))
		}
		return Notification{Title: "Shot hit!", Body: body}
	case engine.ShotMiss:
		return Notification{Title: "Shot missed!", Body: fmt.Sprintf(messages.Miss, next)}
	default:
		return Notification{Title: "Cell has already been shot at.", Body: messages.AlreadyShot}
	}
}

// afterFirstSentence inserts extra between the first sentence of body and
// the rest, so a sunk ship is announced before the turn passes.
func afterFirstSentence(body, extra string) string {
	for i := 0; i+1 < len(body); i++ {
		if strings.IndexByte(".!?", body[i]) >= 0 && body[i+1] == ' ' {
			return body[:i+1] + " " + extra + body[i+1:]
		}
	}
	return body + " " + extra
}

// PlayerSummary is one line of the end-of-game statistics
type PlayerSummary struct {
	Player     engine.Player `json:"player"`
	Name       string        `json:"name"`
	ShotsFired int           `json:"shots_fired"`
	ShipsSunk  int           `json:"ships_sunk"`
}

// Summary returns per-player shot and sink counts. Shots fired by a player
// are the shots resolved on the opponent's board.
func Summary(e *engine.GameEngine) []PlayerSummary {
	stats := e.Stats()
	out := make([]PlayerSummary, 0, len(stats))
	for _, s := range stats {
		out = append(out, PlayerSummary{
			Player:     s.Player,
			Name:       s.Player.DisplayName(),
			ShotsFired: s.ShotsFired,
			ShipsSunk:  s.ShipsSunk,
		})
	}
	return out
}
