// Package core provides fundamental types and utilities for the invaders platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Position is a cell on the playfield grid.
// Row grows downward from the top-left origin.
type Position struct {
	Row int
	Col int
}

// Pos is shorthand for Position{Row: row, Col: col}.
func Pos(row, col int) Position {
	return Position{Row: row, Col: col}
}

// Direction is one of the eight discrete moves on the grid.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
	DirLeftUp
	DirRightUp
	DirLeftDown
	DirRightDown
)

// Directions lists every direction in declaration order.
var Directions = []Direction{
	DirUp, DirDown, DirLeft, DirRight,
	DirLeftUp, DirRightUp, DirLeftDown, DirRightDown,
}

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	case DirRight:
		return "Right"
	case DirLeftUp:
		return "LeftUp"
	case DirRightUp:
		return "RightUp"
	case DirLeftDown:
		return "LeftDown"
	case DirRightDown:
		return "RightDown"
	default:
		return "Unknown"
	}
}

// Delta returns the row and column change for one step in this direction.
func (d Direction) Delta() (dRow, dCol int) {
	switch d {
	case DirUp:
		return -1, 0
	case DirDown:
		return 1, 0
	case DirLeft:
		return 0, -1
	case DirRight:
		return 0, 1
	case DirLeftUp:
		return -1, -1
	case DirRightUp:
		return -1, 1
	case DirLeftDown:
		return 1, -1
	case DirRightDown:
		return 1, 1
	default:
		return 0, 0
	}
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	case DirLeftUp:
		return DirRightDown
	case DirRightDown:
		return DirLeftUp
	case DirRightUp:
		return DirLeftDown
	case DirLeftDown:
		return DirRightUp
	default:
		return d
	}
}

// MirrorVertical flips the vertical component (Up <-> Down).
func (d Direction) MirrorVertical() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeftUp:
		return DirLeftDown
	case DirLeftDown:
		return DirLeftUp
	case DirRightUp:
		return DirRightDown
	case DirRightDown:
		return DirRightUp
	default:
		return d
	}
}

// MirrorHorizontal flips the horizontal component (Left <-> Right).
func (d Direction) MirrorHorizontal() Direction {
	switch d {
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	case DirLeftUp:
		return DirRightUp
	case DirRightUp:
		return DirLeftUp
	case DirLeftDown:
		return DirRightDown
	case DirRightDown:
		return DirLeftDown
	default:
		return d
	}
}

// IsLateral reports whether the direction is purely Left or Right.
func (d Direction) IsLateral() bool {
	return d == DirLeft || d == DirRight
}

// Advance returns the position one cell away in the given direction.
func Advance(p Position, d Direction) Position {
	dr, dc := d.Delta()
	return Position{Row: p.Row + dr, Col: p.Col + dc}
}

// Field is the fixed-size playfield.
// Row 0 and the last row/column are walls; row 1 carries the HUD.
type Field struct {
	Height int
	Width  int
}

// OutOfBounds reports whether p lies on or outside the playable area.
func (f Field) OutOfBounds(p Position) bool {
	return p.Row <= 1 || p.Col <= 0 || p.Row >= f.Height-1 || p.Col >= f.Width-1
}

// RowOutOfBounds reports whether the row alone leaves the playable area.
func (f Field) RowOutOfBounds(row int) bool {
	return row <= 1 || row >= f.Height-1
}

// ColOutOfBounds reports whether the column alone leaves the playable area.
func (f Field) ColOutOfBounds(col int) bool {
	return col <= 0 || col >= f.Width-1
}

// LeftCol is the left-most playable column.
func (f Field) LeftCol() int { return 1 }

// RightCol is the right-most playable column.
func (f Field) RightCol() int { return f.Width - 2 }

// TopRow is the first playable row below the HUD.
func (f Field) TopRow() int { return 2 }

// BottomRow is the last playable row.
func (f Field) BottomRow() int { return f.Height - 2 }

// Rect represents an axis-aligned box of cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Around returns the square of the given radius centered on p.
func Around(p Position, radius int) Rect {
	return NewRect(p.Col-radius, p.Row-radius, 2*radius+1, 2*radius+1)
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// ContainsPos is Contains for a grid position.
func (r Rect) ContainsPos(p Position) bool {
	return r.Contains(p.Col, p.Row)
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
