package invaders

import "github.com/vovakirdan/tui-invaders/internal/core"

// Formation is the shared direction state of the enemy grid.
//
// The formation sweeps Left or Right until an extremal enemy touches the
// side boundary, takes a single Down step, then sweeps the other way.
// Yield overrides the state with Up for a fixed number of ticks.
type Formation struct {
	Dir        core.Direction // Left, Right, Down, or Up while yielding
	Lateral    core.Direction // Sweep that triggered the last Down step
	YieldTicks int            // Remaining Up ticks
	YieldPrev  core.Direction // Direction restored when Yield ends
}

// NewFormation returns a formation sweeping right.
func NewFormation() Formation {
	return Formation{Dir: core.DirRight, Lateral: core.DirRight}
}

// Yield pushes the formation up for ticks steps.
func (f *Formation) Yield(ticks int) {
	if ticks <= 0 {
		return
	}
	if f.Dir != core.DirUp {
		f.YieldPrev = f.Dir
	}
	f.Dir = core.DirUp
	f.YieldTicks = ticks
}

// Yielding reports whether Yield is overriding the direction.
func (f *Formation) Yielding() bool {
	return f.YieldTicks > 0
}

// Next decides the direction for this tick from the column extremities of
// the movable enemies and returns it.
func (f *Formation) Next(leftmost, rightmost int, field core.Field) core.Direction {
	if f.YieldTicks > 0 {
		f.YieldTicks--
		dir := f.Dir
		if f.YieldTicks == 0 {
			f.Dir = f.YieldPrev
		}
		return dir
	}

	switch {
	case f.Dir == core.DirRight && rightmost >= field.RightCol():
		f.Lateral = core.DirRight
		f.Dir = core.DirDown
	case f.Dir == core.DirLeft && leftmost <= field.LeftCol():
		f.Lateral = core.DirLeft
		f.Dir = core.DirDown
	case f.Dir == core.DirDown:
		f.Dir = f.Lateral.Opposite()
		f.Lateral = f.Dir
	}
	return f.Dir
}

// extremities scans the enemies that follow the formation and returns the
// left-most and right-most columns. ok is false when none can move.
func extremities(enemies []*Shooter) (leftmost, rightmost int, ok bool) {
	for _, e := range enemies {
		if e.Numb {
			continue
		}
		if !ok {
			leftmost, rightmost, ok = e.Pos.Col, e.Pos.Col, true
			continue
		}
		leftmost = min(leftmost, e.Pos.Col)
		rightmost = max(rightmost, e.Pos.Col)
	}
	return leftmost, rightmost, ok
}

// fits reports whether every movable enemy stays in bounds after one step.
func fits(enemies []*Shooter, dir core.Direction, field core.Field) bool {
	for _, e := range enemies {
		if !e.Numb && field.OutOfBounds(core.Advance(e.Pos, dir)) {
			return false
		}
	}
	return true
}

// bottomRow returns the lowest row held by a hostile enemy, or -1.
func bottomRow(enemies []*Shooter) int {
	bottom := -1
	for _, e := range enemies {
		if !e.Controlled {
			bottom = max(bottom, e.Pos.Row)
		}
	}
	return bottom
}
