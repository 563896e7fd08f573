// Package board implements the 6x7 gravity-drop grid: disc placement and
// removal, move legality, and terminal detection.
package board

import (
	"errors"
	"strings"
)

const (
	// Rows and Cols are fixed; row 0 is the top of the grid.
	Rows = 6
	Cols = 7
	// NumCells is the total board capacity.
	NumCells = Rows * Cols
)

// Cell is the contents of one grid square.
type Cell uint8

const (
	Empty Cell = iota
	Player1
	Player2
)

func (c Cell) String() string {
	switch c {
	case Player1:
		return "●"
	case Player2:
		return "○"
	}
	return " "
}

// Opponent returns the other player's symbol.
func Opponent(c Cell) Cell {
	if c == Player1 {
		return Player2
	}
	return Player1
}

// WinKind is the direction of a detected four-in-a-row.
type WinKind uint8

const (
	Horizontal WinKind = iota
	Vertical
	DiagonalUp
	DiagonalDown
)

func (w WinKind) String() string {
	switch w {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	case DiagonalUp:
		return "diagonal-up"
	case DiagonalDown:
		return "diagonal-down"
	}
	return "unknown"
}

var (
	ErrColumnOutOfRange = errors.New("column out of range")
	ErrColumnFull       = errors.New("column is full")
)

// Board is a fixed 6x7 grid of cells. It is owned exclusively by one game
// session and must only be mutated through PlaceDisc/RemoveDisc.
type Board struct {
	cells [Rows][Cols]Cell
}

// NewBoard creates an empty board.
func NewBoard() *Board {
	return &Board{}
}

// At returns the cell at (row, col).
func (b *Board) At(row, col int) Cell {
	return b.cells[row][col]
}

// Copy returns a deep copy of the board.
func (b *Board) Copy() *Board {
	nb := *b
	return &nb
}

// Equals reports cell-wise equality.
func (b *Board) Equals(o *Board) bool {
	return b.cells == o.cells
}

// IsValidMove returns true iff col is in range and its top cell is empty.
func (b *Board) IsValidMove(col int) bool {
	if col < 0 || col >= Cols {
		return false
	}
	return b.cells[0][col] == Empty
}

// PlaceDisc drops a disc into col, occupying the lowest empty cell, and
// returns the row it landed in.
func (b *Board) PlaceDisc(col int, c Cell) (int, error) {
	if col < 0 || col >= Cols {
		return 0, ErrColumnOutOfRange
	}
	for row := Rows - 1; row >= 0; row-- {
		if b.cells[row][col] == Empty {
			b.cells[row][col] = c
			return row, nil
		}
	}
	return 0, ErrColumnFull
}

// RemoveDisc clears the cell at (row, col). It exists to undo a placement the
// caller just made; it is not general erasure.
func (b *Board) RemoveDisc(row, col int) {
	b.cells[row][col] = Empty
}

// CheckWinner scans all length-4 windows for a four-in-a-row of c. The scan
// order is fixed (horizontal, vertical, diagonal-up, diagonal-down) so that
// the reported WinKind is reproducible.
func (b *Board) CheckWinner(c Cell) (WinKind, bool) {
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols-3; col++ {
			if b.cells[row][col] == c && b.cells[row][col+1] == c &&
				b.cells[row][col+2] == c && b.cells[row][col+3] == c {
				return Horizontal, true
			}
		}
	}
	for col := 0; col < Cols; col++ {
		for row := 0; row < Rows-3; row++ {
			if b.cells[row][col] == c && b.cells[row+1][col] == c &&
				b.cells[row+2][col] == c && b.cells[row+3][col] == c {
				return Vertical, true
			}
		}
	}
	// bottom-left to top-right
	for row := 3; row < Rows; row++ {
		for col := 0; col < Cols-3; col++ {
			if b.cells[row][col] == c && b.cells[row-1][col+1] == c &&
				b.cells[row-2][col+2] == c && b.cells[row-3][col+3] == c {
				return DiagonalUp, true
			}
		}
	}
	// bottom-right to top-left
	for row := 3; row < Rows; row++ {
		for col := 3; col < Cols; col++ {
			if b.cells[row][col] == c && b.cells[row-1][col-1] == c &&
				b.cells[row-2][col-2] == c && b.cells[row-3][col-3] == c {
				return DiagonalDown, true
			}
		}
	}
	return 0, false
}

// IsFull returns true iff no column can accept another disc.
func (b *Board) IsFull() bool {
	for col := 0; col < Cols; col++ {
		if b.cells[0][col] == Empty {
			return false
		}
	}
	return true
}

// FlattenInto writes the 42-cell feature vector into dst (reallocating if it
// is too small) and returns it. Cells are visited in row-major order and
// mapped to +1 for Player1, -1 for Player2, and 0 for empty; the mapping is
// fixed regardless of which side is to move.
func (b *Board) FlattenInto(dst []float32) []float32 {
	if cap(dst) < NumCells {
		dst = make([]float32, NumCells)
	} else {
		dst = dst[:NumCells]
	}
	i := 0
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			switch b.cells[row][col] {
			case Player1:
				dst[i] = 1
			case Player2:
				dst[i] = -1
			default:
				dst[i] = 0
			}
			i++
		}
	}
	return dst
}

// String returns a text rendering of the board for display.
func (b *Board) String() string {
	var sb strings.Builder
	for row := 0; row < Rows; row++ {
		sb.WriteByte('|')
		for col := 0; col < Cols; col++ {
			sb.WriteString(b.cells[row][col].String())
			sb.WriteByte('|')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString(" 0 1 2 3 4 5 6\n")
	return sb.String()
}
