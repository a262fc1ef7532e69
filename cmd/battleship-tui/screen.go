package main

import (
	"context"
	"fmt"

	"github.com/nsf/termbox-go"
	"github.com/wricardo/battleship/game/engine"
	"github.com/wricardo/battleship/game/view"
)

const (
	boardTop  = 2
	boardLeft = 2
	cellWidth = 2
	boardGap  = 6
)

// keyAction maps a termbox key event to an action
func keyAction(ev termbox.Event) action {
	switch ev.Key {
	case termbox.KeyArrowUp:
		return actionUp
	case termbox.KeyArrowDown:
		return actionDown
	case termbox.KeyArrowLeft:
		return actionLeft
	case termbox.KeyArrowRight:
		return actionRight
	case termbox.KeySpace, termbox.KeyEnter:
		return actionFire
	case termbox.KeyEsc, termbox.KeyCtrlC:
		return actionQuit
	}
	switch ev.Ch {
	case 'w', 'k':
		return actionUp
	case 's':
		return actionStart
	case 'a', 'h':
		return actionLeft
	case 'd', 'l':
		return actionRight
	case 'j':
		return actionDown
	case 'f':
		return actionFire
	case '1':
		return actionPlaceLine
	case '2':
		return actionPlaceBox
	case '3':
		return actionPlaceLShape
	case 'r':
		return actionRandomize
	case 'n':
		return actionRestart
	case 'q':
		return actionQuit
	}
	return actionNone
}

func styleColor(s view.Style) termbox.Attribute {
	switch s {
	case view.StyleShip:
		return termbox.ColorBlue
	case view.StyleHit:
		return termbox.ColorRed
	case view.StyleMiss:
		return termbox.ColorWhite
	default:
		return termbox.ColorDefault
	}
}

func printText(x, y int, fg, bg termbox.Attribute, text string) {
	for _, r := range text {
		termbox.SetCell(x, y, r, fg, bg)
		x++
	}
}

func drawBoard(x, y int, b view.BoardView, cursor *engine.Coordinate) {
	title := b.OwnerName
	if b.Targetable {
		title += " (target)"
	}
	printText(x, y, termbox.ColorDefault|termbox.AttrBold, termbox.ColorDefault, title)

	for col := 0; col < b.Width; col++ {
		printText(x+3+col*cellWidth, y+1, termbox.ColorYellow, termbox.ColorDefault, view.ColumnLabel(col))
	}
	for row := 0; row < b.Height; row++ {
		printText(x, y+2+row, termbox.ColorYellow, termbox.ColorDefault, fmt.Sprintf("%2d", row+1))
		for col := 0; col < b.Width; col++ {
			style := b.Cells[row][col]
			bg := termbox.ColorDefault
			if cursor != nil && cursor.Row == row && cursor.Col == col {
				bg = termbox.ColorGreen
			}
			termbox.SetCell(x+3+col*cellWidth, y+2+row, view.Glyph(style), styleColor(style), bg)
		}
	}
}

func draw(h *hotSeat) {
	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	defer termbox.Flush()

	printText(boardLeft, 0, termbox.ColorDefault|termbox.AttrBold, termbox.ColorDefault,
		fmt.Sprintf("Battleship | session %s | %s", h.sessionID, h.match.Phase))

	if h.handoff {
		printText(boardLeft, boardTop, termbox.ColorYellow, termbox.ColorDefault,
			fmt.Sprintf("%s  %s", h.status, h.detail))
		printText(boardLeft, boardTop+2, termbox.ColorDefault, termbox.ColorDefault,
			"Pass the keyboard to the next player and press any key.")
		return
	}

	cursorBoard, hasCursor := h.cursorBoard()
	x := boardLeft
	height := 0
	for _, b := range h.match.Boards {
		var cursor *engine.Coordinate
		if hasCursor && b.Owner == cursorBoard.Owner {
			cursor = &h.cursor
		}
		drawBoard(x, boardTop, b, cursor)
		x += 3 + b.Width*cellWidth + boardGap
		if b.Height > height {
			height = b.Height
		}
	}

	y := boardTop + height + 3
	printText(boardLeft, y, termbox.ColorDefault|termbox.AttrBold, termbox.ColorDefault, h.status)
	printText(boardLeft, y+1, termbox.ColorDefault, termbox.ColorDefault, h.detail)
	if h.match.Phase != engine.PhaseLobby {
		printText(boardLeft, y+2, termbox.ColorDefault, termbox.ColorDefault,
			"Cursor: "+view.CoordinateLabel(h.cursor))
	}
	printText(boardLeft, y+4, termbox.ColorDefault, termbox.ColorDefault, "q quits, n restarts")
}

// runScreen owns the terminal until the players quit
func runScreen(ctx context.Context, h *hotSeat) error {
	if err := termbox.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer termbox.Close()
	termbox.HideCursor()

	for {
		draw(h)
		ev := termbox.PollEvent()
		switch ev.Type {
		case termbox.EventError:
			return ev.Err
		case termbox.EventKey:
			if h.handle(ctx, keyAction(ev)) {
				return nil
			}
		}
	}
}
