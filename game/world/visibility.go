package world

import "github.com/cavebound/delved/game/ai"

// Visibility is the field-of-view oracle consumed by aggro checks and the
// wandering spawner. The real shadowcasting FOV lives outside this core;
// LineOfSight below is the default oracle for headless runs and tests.
type Visibility interface {
	CanSee(l *Level, from, to ai.Point) bool
	// Visible returns the set of tiles visible from origin within radius
	// (Chebyshev disc).
	Visible(l *Level, origin ai.Point, radius int) map[ai.Point]struct{}
}

// LineOfSight is a Bresenham-based oracle: a tile is visible when the line
// to it crosses no opaque tile. Symmetric enough for aggro purposes.
type LineOfSight struct{}

func (LineOfSight) CanSee(l *Level, from, to ai.Point) bool {
	if from == to {
		return true
	}
	dx := to.X - from.X
	dy := to.Y - from.Y
	steps := abs(dx)
	if abs(dy) > steps {
		steps = abs(dy)
	}
	x, y := from.X, from.Y
	// Step along the dominant axis; intermediate tiles must be transparent,
	// the endpoints themselves never block.
	errX, errY := 0, 0
	sx, sy := sign(dx), sign(dy)
	adx, ady := abs(dx), abs(dy)
	for i := 0; i < steps-1; i++ {
		if adx >= ady {
			x += sx
			errY += ady
			if 2*errY >= adx {
				y += sy
				errY -= adx
			}
		} else {
			y += sy
			errX += adx
			if 2*errX >= ady {
				x += sx
				errX -= ady
			}
		}
		if l.Opaque(x, y) {
			return false
		}
	}
	return true
}

func (v LineOfSight) Visible(l *Level, origin ai.Point, radius int) map[ai.Point]struct{} {
	out := make(map[ai.Point]struct{})
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			p := ai.Point{X: origin.X + dx, Y: origin.Y + dy}
			if !l.InBounds(p.X, p.Y) {
				continue
			}
			if v.CanSee(l, origin, p) {
				out[p] = struct{}{}
			}
		}
	}
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
