package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wricardo/battleship/game/engine"
)

// Style is the visual class of a rendered cell
type Style string

const (
	StyleNeutral Style = "empty"
	StyleShip    Style = "ship"
	StyleHit     Style = "hit"
	StyleMiss    Style = "miss"
)

// CellStyle maps a cell state to its style. Ship cells on a visible board
// render as neutral so the shooter never sees the fleet they are hunting.
func CellStyle(state engine.CellState, visible bool) Style {
	switch state {
	case engine.Miss:
		return StyleMiss
	case engine.Hit:
		return StyleHit
	case engine.ShipPresent:
		if visible {
			return StyleNeutral
		}
		return StyleShip
	default:
		return StyleNeutral
	}
}

// Glyph returns the single character drawn for a style
func Glyph(s Style) rune {
	switch s {
	case StyleShip:
		return 'S'
	case StyleHit:
		return 'X'
	case StyleMiss:
		return 'o'
	default:
		return '.'
	}
}

// ColumnLabel returns the letter heading for a zero-based column
func ColumnLabel(col int) string {
	return string(rune('A' + col))
}

// CoordinateLabel formats c as a board heading pair such as "C4"
func CoordinateLabel(c engine.Coordinate) string {
	return ColumnLabel(c.Col) + strconv.Itoa(c.Row+1)
}

// ParseCoordinateLabel parses labels such as "C4" or "c4" into a zero-based
// coordinate. Bounds are left to the board.
func ParseCoordinateLabel(label string) (engine.Coordinate, error) {
	label = strings.ToUpper(strings.TrimSpace(label))
	if len(label) < 2 || label[0] < 'A' || label[0] > 'Z' {
		return engine.Coordinate{}, fmt.Errorf("invalid cell label %q: want a column letter followed by a row number", label)
	}
	row, err := strconv.Atoi(label[1:])
	if err != nil || row < 1 {
		return engine.Coordinate{}, fmt.Errorf("invalid cell label %q: bad row number", label)
	}
	return engine.Coordinate{Row: row - 1, Col: int(label[0] - 'A')}, nil
}

// RenderBoard draws the board as text rows: a header of column letters
// followed by one numbered line per row.
func RenderBoard(b *engine.Board) []string {
	lines := make([]string, 0, b.Height()+1)

	var header strings.Builder
	header.WriteString("   ")
	for col := 0; col < b.Width(); col++ {
		header.WriteString(" " + ColumnLabel(col))
	}
	lines = append(lines, header.String())

	for row := 0; row < b.Height(); row++ {
		var line strings.Builder
		fmt.Fprintf(&line, "%3d", row+1)
		for col := 0; col < b.Width(); col++ {
			state, _ := b.Cell(engine.Coordinate{Row: row, Col: col})
			line.WriteByte(' ')
			line.WriteRune(Glyph(CellStyle(state, b.IsVisible())))
		}
		lines = append(lines, line.String())
	}
	return lines
}

// BoardView is the JSON form of one player's board as it should be drawn
type BoardView struct {
	Owner         engine.Player `json:"owner"`
	OwnerName     string        `json:"owner_name"`
	Height        int           `json:"height"`
	Width         int           `json:"width"`
	Visible       bool          `json:"visible"`
	Targetable    bool          `json:"targetable"`
	Cells         [][]Style     `json:"cells"`
	Rows          []string      `json:"rows"`
	ShipsPlaced   int           `json:"ships_placed"`
	ShipsSunk     int           `json:"ships_sunk"`
	ShotsReceived int           `json:"shots_received"`
	FleetComplete bool          `json:"fleet_complete"`
}

// NewBoardView builds the drawable view of owner's board. Targetable marks
// the board the active player may fire at.
func NewBoardView(owner engine.Player, b *engine.Board, targetable bool) BoardView {
	cells := make([][]Style, b.Height())
	for row := range cells {
		cells[row] = make([]Style, b.Width())
		for col := range cells[row] {
			state, _ := b.Cell(engine.Coordinate{Row: row, Col: col})
			cells[row][col] = CellStyle(state, b.IsVisible())
		}
	}

	placed := len(b.Ships())
	return BoardView{
		Owner:         owner,
		OwnerName:     owner.DisplayName(),
		Height:        b.Height(),
		Width:         b.Width(),
		Visible:       b.IsVisible(),
		Targetable:    targetable,
		Cells:         cells,
		Rows:          RenderBoard(b),
		ShipsPlaced:   placed,
		ShipsSunk:     b.CountShipsSunk(),
		ShotsReceived: b.CountShots(),
		FleetComplete: b.FleetComplete(),
	}
}

// MatchView is the JSON form of a whole match as players see it
type MatchView struct {
	Phase        engine.GamePhase     `json:"phase"`
	ActivePlayer engine.Player        `json:"active_player"`
	ActiveName   string               `json:"active_name"`
	Winner       *engine.Player       `json:"winner,omitempty"`
	Boards       []BoardView          `json:"boards"`
	Stats        []engine.PlayerStats `json:"stats"`
}

// NewMatchView builds the view for both boards of a match
func NewMatchView(e *engine.GameEngine) *MatchView {
	active := e.ActivePlayer()
	playing := e.Phase() == engine.PhasePlaying

	v := &MatchView{
		Phase:        e.Phase(),
		ActivePlayer: active,
		ActiveName:   active.DisplayName(),
		Stats:        e.Stats(),
	}
	for _, p := range []engine.Player{engine.PlayerOne, engine.PlayerTwo} {
		board := e.Board(p)
		// Fire is allowed only on the visible board of the inactive player
		targetable := playing && p != active && board.IsVisible()
		v.Boards = append(v.Boards, NewBoardView(p, board, targetable))
	}
	if winner, ok := e.Winner(); ok {
		v.Winner = &winner
	}
	return v
}

// FormatMatch renders a match as plain text with both boards and a status line
func FormatMatch(v *MatchView) string {
	var b strings.Builder

	switch v.Phase {
	case engine.PhaseLobby:
		b.WriteString("Phase: lobby | Place ships, then start the match\n\n")
	case engine.PhasePlaying:
		fmt.Fprintf(&b, "Phase: playing | Turn: %s\n\n", v.ActiveName)
	case engine.PhaseEnded:
		if v.Winner != nil {
			fmt.Fprintf(&b, "Phase: ended | Winner: %s\n\n", v.Winner.DisplayName())
		} else {
			b.WriteString("Phase: ended\n\n")
		}
	}

	for i, board := range v.Boards {
		status := "hidden"
		if board.Targetable {
			status = "target"
		} else if board.Visible {
			status = "visible"
		}
		fmt.Fprintf(&b, "%s board (%s) | ships %d/%d sunk | shots received %d\n",
			board.OwnerName, status, board.ShipsSunk, board.ShipsPlaced, board.ShotsReceived)
		for _, row := range board.Rows {
			b.WriteString(row)
			b.WriteByte('\n')
		}
		if i < len(v.Boards)-1 {
			b.WriteByte('\n')
		}
	}

	return b.String()
}
