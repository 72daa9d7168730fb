package ai

// PathCache is a monster-local cached A* path. Each monster owns its cache
// exclusively; there is no shared path table. The cache is invalidated by the
// replanning policy in Stale and cleared outright on death, retarget or
// forced state changes.
type PathCache struct {
	Waypoints []Point
	Index     int
	Goal      Point // goal position when the path was computed
}

// Next returns the upcoming waypoint, or false when the path is spent.
func (c *PathCache) Next() (Point, bool) {
	if c == nil || c.Index >= len(c.Waypoints) {
		return Point{}, false
	}
	return c.Waypoints[c.Index], true
}

// Advance moves past the current waypoint after a successful step.
func (c *PathCache) Advance() {
	if c != nil && c.Index < len(c.Waypoints) {
		c.Index++
	}
}

// Stale reports whether the cache must be recomputed:
//   - no cached path remains,
//   - the goal drifted more than tolerance tiles from the planned goal,
//   - the next waypoint is no longer enterable.
func (c *PathCache) Stale(v PathView, goal Point, tolerance int, monstersBlock bool) bool {
	next, ok := c.Next()
	if !ok {
		return true
	}
	if Chebyshev(goal, c.Goal) > tolerance {
		return true
	}
	if !v.InBounds(next.X, next.Y) || !v.Walkable(next.X, next.Y) {
		return true
	}
	if monstersBlock && v.Occupied(next.X, next.Y) {
		return true
	}
	return false
}

// Clone returns an independent copy, used by pure intent queries.
func (c *PathCache) Clone() *PathCache {
	if c == nil {
		return nil
	}
	cp := *c
	cp.Waypoints = append([]Point(nil), c.Waypoints...)
	return &cp
}
