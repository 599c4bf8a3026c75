package game

import (
	"math/rand/v2"

	"github.com/naveenspark/reflex/internal/config"
)

// Shape of the target.
type Shape int

const (
	ShapeSquare Shape = iota
	ShapeCircle
)

func (s Shape) String() string {
	if s == ShapeCircle {
		return "circle"
	}
	return "square"
}

// Target is the clickable shape for one round, positioned in arena cells.
// Size is the height in rows; the width is twice that so the shape looks
// square in a terminal.
type Target struct {
	Shape Shape
	Size  int
	X     int // left column
	Y     int // top row
}

// Width is the target width in columns.
func (t Target) Width() int {
	return 2 * t.Size
}

// Contains reports whether the arena cell (x, y) is part of the target.
// Circles are hit-tested as the ellipse inscribed in the bounding box, using
// cell centers.
func (t Target) Contains(x, y int) bool {
	w, h := t.Width(), t.Size
	if x < t.X || x >= t.X+w || y < t.Y || y >= t.Y+h {
		return false
	}
	if t.Shape == ShapeSquare {
		return true
	}
	rx, ry := float64(w)/2, float64(h)/2
	dx := (float64(x-t.X) + 0.5 - rx) / rx
	dy := (float64(y-t.Y) + 0.5 - ry) / ry
	return dx*dx+dy*dy <= 1
}

// randomTarget picks a size, position and shape that keep the target inside
// the arena.
func randomTarget(rng *rand.Rand, arena config.Arena, bounds config.Target) Target {
	size := bounds.MinSize + rng.IntN(bounds.MaxSize-bounds.MinSize+1)
	t := Target{
		Size: size,
		X:    rng.IntN(arena.Width - 2*size + 1),
		Y:    rng.IntN(arena.Height - size + 1),
	}
	if rng.IntN(2) == 1 {
		t.Shape = ShapeCircle
	}
	return t
}
