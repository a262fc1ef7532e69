// Package view turns engine state into what players see.
//
// It covers the two outward adapters of a match:
//   - Presentation: per-cell styles that respect board visibility, text
//     rendering with lettered columns and numbered rows, and JSON views
//   - Notification: titled messages for every fire outcome and the
//     end-of-game summary
//
// Visibility:
//
// The board a player shoots at is visible and never reveals ship cells. The
// shooter's own board is hidden from the opponent, so its ships are drawn
// for the shooter. Once a match ends both boards are hidden and every ship
// is shown.
package view
