package main

import (
	"context"
	"fmt"

	"github.com/wricardo/battleship/game/engine"
	"github.com/wricardo/battleship/game/service"
	"github.com/wricardo/battleship/game/view"
)

// action is a key press translated into what the player asked for
type action int

const (
	actionNone action = iota
	actionUp
	actionDown
	actionLeft
	actionRight
	actionFire
	actionPlaceLine
	actionPlaceBox
	actionPlaceLShape
	actionRandomize
	actionStart
	actionRestart
	actionQuit
)

// hotSeat drives one match for two players sharing a terminal. While
// handoff is set the boards are hidden until the next player takes over.
type hotSeat struct {
	svc       service.GameService
	sessionID string

	match   *view.MatchView
	cursor  engine.Coordinate
	status  string
	detail  string
	handoff bool
}

func newHotSeat(ctx context.Context, svc service.GameService, sessionID string) (*hotSeat, error) {
	h := &hotSeat{svc: svc, sessionID: sessionID}
	if err := h.refresh(ctx); err != nil {
		return nil, err
	}
	h.status = "Session " + sessionID
	h.detail = h.hint()
	return h, nil
}

func (h *hotSeat) refresh(ctx context.Context) error {
	match, err := h.svc.GetMatchView(ctx, h.sessionID)
	if err != nil {
		return err
	}
	h.match = match
	return nil
}

// placingPlayer is the first player whose fleet is still incomplete
func (h *hotSeat) placingPlayer() (engine.Player, bool) {
	for _, b := range h.match.Boards {
		if !b.FleetComplete {
			return b.Owner, true
		}
	}
	return "", false
}

// cursorBoard is the board the cursor moves on: the target during play and
// the board being filled in the lobby.
func (h *hotSeat) cursorBoard() (view.BoardView, bool) {
	switch h.match.Phase {
	case engine.PhasePlaying:
		for _, b := range h.match.Boards {
			if b.Targetable {
				return b, true
			}
		}
	case engine.PhaseLobby:
		if player, ok := h.placingPlayer(); ok {
			for _, b := range h.match.Boards {
				if b.Owner == player {
					return b, true
				}
			}
		}
	}
	return view.BoardView{}, false
}

func (h *hotSeat) hint() string {
	switch h.match.Phase {
	case engine.PhaseLobby:
		if player, ok := h.placingPlayer(); ok {
			return fmt.Sprintf("%s: arrows move, 1 line, 2 box, 3 L ship, r random fleet, s start", player.DisplayName())
		}
		return "Fleets complete: press s to start"
	case engine.PhasePlaying:
		return fmt.Sprintf("%s: arrows aim, space fires", h.match.ActiveName)
	default:
		return "n starts a new match, q quits"
	}
}

func (h *hotSeat) moveCursor(dRow, dCol int) {
	board, ok := h.cursorBoard()
	if !ok {
		return
	}
	row, col := h.cursor.Row+dRow, h.cursor.Col+dCol
	if row >= 0 && row < board.Height {
		h.cursor.Row = row
	}
	if col >= 0 && col < board.Width {
		h.cursor.Col = col
	}
}

func (h *hotSeat) report(err error) {
	h.status = "Error"
	h.detail = err.Error()
}

func (h *hotSeat) notify(n *view.Notification) {
	if n == nil {
		return
	}
	h.status = n.Title
	h.detail = n.Body
}

// handle applies one action and reports whether the program should exit
func (h *hotSeat) handle(ctx context.Context, a action) bool {
	if h.handoff {
		// any key reveals the boards to the next player
		h.handoff = false
		h.detail = h.hint()
		return a == actionQuit
	}

	switch a {
	case actionQuit:
		return true
	case actionUp:
		h.moveCursor(-1, 0)
	case actionDown:
		h.moveCursor(1, 0)
	case actionLeft:
		h.moveCursor(0, -1)
	case actionRight:
		h.moveCursor(0, 1)
	case actionPlaceLine:
		h.place(ctx, engine.Line)
	case actionPlaceBox:
		h.place(ctx, engine.Box)
	case actionPlaceLShape:
		h.place(ctx, engine.LShape)
	case actionRandomize:
		h.apply(h.svc.RandomizeFleet(ctx, h.sessionID))
	case actionStart:
		result, err := h.svc.StartMatch(ctx, h.sessionID)
		h.apply(result, err)
		if err == nil {
			h.cursor = engine.Coordinate{}
		}
	case actionRestart:
		h.apply(h.svc.RestartMatch(ctx, h.sessionID))
		h.cursor = engine.Coordinate{}
	case actionFire:
		h.fire(ctx)
	}
	return false
}

func (h *hotSeat) apply(result *service.ActionResult, err error) {
	if err != nil {
		h.report(err)
		return
	}
	h.match = result.Match
	h.notify(result.Notification)
	if result.Notification == nil {
		h.status = h.match.ActiveName
		if len(result.Events) > 0 {
			h.status = result.Events[len(result.Events)-1].Message
		}
		h.detail = h.hint()
	}
}

func (h *hotSeat) place(ctx context.Context, kind engine.ShipKind) {
	player, ok := h.placingPlayer()
	if !ok || h.match.Phase != engine.PhaseLobby {
		h.status = "Cannot place ships now"
		h.detail = h.hint()
		return
	}
	h.apply(h.svc.PlaceShip(ctx, h.sessionID, player, kind, h.cursor))
	if next, ok := h.placingPlayer(); ok && next != player {
		h.cursor = engine.Coordinate{}
		h.handoff = true
	}
}

func (h *hotSeat) fire(ctx context.Context) {
	result, err := h.svc.Fire(ctx, h.sessionID, h.cursor)
	if err != nil {
		h.report(err)
		return
	}
	h.match = result.Match
	h.notify(&result.Notification)
	if result.Shot.Winner != nil {
		for _, s := range result.Summary {
			h.detail += fmt.Sprintf("  %s: %d shots, %d sunk.", s.Name, s.ShotsFired, s.ShipsSunk)
		}
		return
	}
	if result.Shot.TurnChanged() {
		h.cursor = engine.Coordinate{}
		h.handoff = true
	}
}
