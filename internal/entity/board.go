package entity

import "fmt"

// BoardSize - side length of the warehouse board.
const BoardSize = 9

// CellKind - kind of a board cell.
type CellKind string

const (
	Storage CellKind = "storage"
	Road    CellKind = "road"
)

// Position - a board coordinate, X is the column and Y is the row.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (that Position) String() string {
	return fmt.Sprintf("(%d, %d)", that.X, that.Y)
}

// Board - immutable grid of cells indexed as [row][col].
type Board [][]CellKind

var diagonals = [4]Position{
	{X: -1, Y: -1},
	{X: 1, Y: -1},
	{X: -1, Y: 1},
	{X: 1, Y: 1},
}

// GenerateBoard - builds the checkerboard warehouse: even rows alternate storage and road
// starting with storage, odd rows are road only.
func GenerateBoard(size int) Board {
	board := make(Board, size)

	for row := 0; row < size; row++ {
		board[row] = make([]CellKind, size)

		for col := 0; col < size; col++ {
			if row%2 == 0 && col%2 == 0 {
				board[row][col] = Storage
			} else {
				board[row][col] = Road
			}
		}
	}

	return board
}

func (that Board) Size() int {
	return len(that)
}

func (that Board) InBounds(pos Position) bool {
	return pos.Y >= 0 && pos.Y < len(that) && pos.X >= 0 && pos.X < len(that[pos.Y])
}

// KindAt - returns the kind of the cell at pos. Callers check bounds first.
func (that Board) KindAt(pos Position) CellKind {
	return that[pos.Y][pos.X]
}

func (that Board) IsStorage(pos Position) bool {
	return that.InBounds(pos) && that.KindAt(pos) == Storage
}

// IsIntersection - true for a road cell whose four diagonal neighbours exist and are storage.
func (that Board) IsIntersection(pos Position) bool {
	if !that.InBounds(pos) || that.KindAt(pos) != Road {
		return false
	}

	for _, d := range diagonals {
		if !that.IsStorage(Position{X: pos.X + d.X, Y: pos.Y + d.Y}) {
			return false
		}
	}

	return true
}

// Clone - returns a deep copy so callers can't alias the game board.
func (that Board) Clone() Board {
	board := make(Board, len(that))
	for row := range that {
		board[row] = append([]CellKind(nil), that[row]...)
	}

	return board
}

// isOrthogonalHop - exactly two cells along one axis.
func isOrthogonalHop(from, to Position) bool {
	dx, dy := abs(from.X-to.X), abs(from.Y-to.Y)
	return (dx == 2 && dy == 0) || (dx == 0 && dy == 2)
}

// isDiagonalNeighbour - exactly one cell along both axes.
func isDiagonalNeighbour(from, to Position) bool {
	return abs(from.X-to.X) == 1 && abs(from.Y-to.Y) == 1
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
