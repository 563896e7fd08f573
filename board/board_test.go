package board

import (
	"testing"

	"github.com/matryer/is"
)

func TestPlaceObeysGravity(t *testing.T) {
	is := is.New(t)
	b := NewBoard()

	row, err := b.PlaceDisc(3, Player1)
	is.NoErr(err)
	is.Equal(row, Rows-1)

	row, err = b.PlaceDisc(3, Player2)
	is.NoErr(err)
	is.Equal(row, Rows-2)

	is.Equal(b.At(Rows-1, 3), Player1)
	is.Equal(b.At(Rows-2, 3), Player2)
}

func TestPlaceColumnFull(t *testing.T) {
	is := is.New(t)
	b := NewBoard()
	for i := 0; i < Rows; i++ {
		_, err := b.PlaceDisc(0, Player1)
		is.NoErr(err)
	}
	is.True(!b.IsValidMove(0))
	_, err := b.PlaceDisc(0, Player2)
	is.Equal(err, ErrColumnFull)
}

func TestPlaceOutOfRange(t *testing.T) {
	is := is.New(t)
	b := NewBoard()
	_, err := b.PlaceDisc(-1, Player1)
	is.Equal(err, ErrColumnOutOfRange)
	_, err = b.PlaceDisc(Cols, Player1)
	is.Equal(err, ErrColumnOutOfRange)
	is.True(!b.IsValidMove(-1))
	is.True(!b.IsValidMove(Cols))
}

func TestPlaceRemoveRestores(t *testing.T) {
	is := is.New(t)
	b := NewBoard()
	b.PlaceDisc(2, Player1)
	b.PlaceDisc(4, Player2)
	before := b.Copy()

	row, err := b.PlaceDisc(4, Player1)
	is.NoErr(err)
	b.RemoveDisc(row, 4)
	is.True(b.Equals(before))
}

func TestCheckWinnerHorizontal(t *testing.T) {
	is := is.New(t)
	b := NewBoard()
	for col := 1; col <= 4; col++ {
		b.PlaceDisc(col, Player1)
	}
	kind, won := b.CheckWinner(Player1)
	is.True(won)
	is.Equal(kind, Horizontal)
	_, won = b.CheckWinner(Player2)
	is.True(!won)
}

func TestCheckWinnerVertical(t *testing.T) {
	is := is.New(t)
	b := NewBoard()
	for i := 0; i < 4; i++ {
		b.PlaceDisc(6, Player2)
	}
	kind, won := b.CheckWinner(Player2)
	is.True(won)
	is.Equal(kind, Vertical)
}

func TestCheckWinnerDiagonalUp(t *testing.T) {
	is := is.New(t)
	b := NewBoard()
	// Stairs: col 0 height 1, col 1 height 2, etc., topped with Player1.
	for col := 0; col < 4; col++ {
		for i := 0; i < col; i++ {
			b.PlaceDisc(col, Player2)
		}
		b.PlaceDisc(col, Player1)
	}
	kind, won := b.CheckWinner(Player1)
	is.True(won)
	is.Equal(kind, DiagonalUp)
}

func TestCheckWinnerDiagonalDown(t *testing.T) {
	is := is.New(t)
	b := NewBoard()
	for col := 0; col < 4; col++ {
		for i := 0; i < 3-col; i++ {
			b.PlaceDisc(col, Player2)
		}
		b.PlaceDisc(col, Player1)
	}
	kind, won := b.CheckWinner(Player1)
	is.True(won)
	is.Equal(kind, DiagonalDown)
}

func TestCheckWinnerScanOrder(t *testing.T) {
	is := is.New(t)
	// Both a horizontal and a vertical run exist; horizontal is reported
	// because it is scanned first.
	b := NewBoard()
	for col := 0; col < 4; col++ {
		b.PlaceDisc(col, Player1)
	}
	for i := 0; i < 3; i++ {
		b.PlaceDisc(0, Player1)
	}
	kind, won := b.CheckWinner(Player1)
	is.True(won)
	is.Equal(kind, Horizontal)
}

func TestIsFull(t *testing.T) {
	is := is.New(t)
	b := NewBoard()
	is.True(!b.IsFull())
	for col := 0; col < Cols; col++ {
		for i := 0; i < Rows; i++ {
			// Alternate fill to avoid constructing wins by accident; a full
			// board is full regardless of who won.
			c := Player1
			if (col+i)%2 == 0 {
				c = Player2
			}
			_, err := b.PlaceDisc(col, c)
			is.NoErr(err)
		}
	}
	is.True(b.IsFull())
	for col := 0; col < Cols; col++ {
		is.True(!b.IsValidMove(col))
	}
}

func TestFlattenInto(t *testing.T) {
	is := is.New(t)
	b := NewBoard()
	b.PlaceDisc(0, Player1)
	b.PlaceDisc(6, Player2)

	vec := b.FlattenInto(nil)
	is.Equal(len(vec), NumCells)
	// Row-major: bottom row is the last Cols entries.
	is.Equal(vec[(Rows-1)*Cols], float32(1))
	is.Equal(vec[(Rows-1)*Cols+6], float32(-1))
	sum := float32(0)
	for _, v := range vec {
		sum += v
	}
	is.Equal(sum, float32(0))

	// Reuses the destination buffer when it is large enough.
	buf := make([]float32, NumCells)
	out := b.FlattenInto(buf)
	is.Equal(&out[0], &buf[0])
}
