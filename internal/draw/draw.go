// Package draw renders the decoration viewer to a terminal using half-block
// characters, with a rune overlay for cloth item glyphs.
package draw

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Point represents a 2D coordinate in logical space.
type Point struct {
	X, Y float64
}

// Block characters for half-block rendering.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")
}

// MoveCursor moves cursor to a specific position (1-based).
func MoveCursor(w io.Writer, x, y int) {
	fmt.Fprintf(w, "\033[%d;%dH", y, x)
}

// TerminalSize returns the terminal width and height in cells.
func TerminalSize() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
