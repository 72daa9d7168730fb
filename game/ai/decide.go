package ai

import "math/rand"

// IntentKind classifies what a monster wants to do this action.
type IntentKind int

const (
	IntentWait IntentKind = iota
	IntentMove
	IntentAttack
	IntentSteal
)

func (k IntentKind) String() string {
	switch k {
	case IntentWait:
		return "wait"
	case IntentMove:
		return "move"
	case IntentAttack:
		return "attack"
	case IntentSteal:
		return "steal"
	}
	return "unknown"
}

// Intent is the resolved decision for one monster action. Attack and steal
// intents are handed to the external combat/item resolver; this layer never
// computes damage or loot.
type Intent struct {
	Kind IntentKind
	To   Point // destination for moves, target tile for attack/steal
	// Erratic marks a move chosen by the erratic roll rather than the
	// goal-directed policy. Recorded in telemetry.
	Erratic bool
}

// DecideIntent runs the state machine and the per-tag movement policy for
// one monster action. It mutates the mob's own state and path cache and
// nothing else. All randomness comes from the threaded rng so replays are
// bit-exact.
func DecideIntent(m *Mob, v View, rules Rules, rng *rand.Rand) Intent {
	UpdateState(m, v, rules)

	switch m.State {
	case StateSleeping:
		return Intent{Kind: IntentWait}
	case StateWandering:
		return wanderStep(m, v, rng)
	case StateFleeing:
		return fleeStep(m, v)
	}
	return huntStep(m, v, rules, rng)
}

// huntStep is the single exhaustive dispatch over behavior tags.
func huntStep(m *Mob, v View, rules Rules, rng *rand.Rand) Intent {
	p := v.Player()
	pp := Point{p.X, p.Y}

	switch m.Tag {
	case TagSmart:
		return smartStep(m, v, pp, rules)
	case TagSimple, TagCoward:
		return approach(m, v, pp, IntentAttack)
	case TagGreedy:
		return greedyStep(m, v, pp, rules)
	case TagErratic:
		if rng.Float64() < m.ErraticChance {
			return randomStep(m, v, rng, true)
		}
		return approach(m, v, pp, IntentAttack)
	case TagThief:
		return approach(m, v, pp, IntentSteal)
	case TagStationary:
		if Adjacent(m.Pos(), pp) {
			return Intent{Kind: IntentAttack, To: pp}
		}
		return Intent{Kind: IntentWait}
	}
	return Intent{Kind: IntentWait}
}

// approach is the SIMPLE policy: when adjacent, act on the player; otherwise
// take the one greedy step that minimizes Chebyshev distance. No obstacle
// awareness — a blocked step stalls.
func approach(m *Mob, v View, pp Point, onAdjacent IntentKind) Intent {
	if Adjacent(m.Pos(), pp) {
		return Intent{Kind: onAdjacent, To: pp}
	}
	return greedyToward(m, v, pp)
}

func greedyToward(m *Mob, v View, goal Point) Intent {
	to := Point{m.X + sign(goal.X-m.X), m.Y + sign(goal.Y-m.Y)}
	if to == m.Pos() || !enterable(v, to) {
		return Intent{Kind: IntentWait}
	}
	return Intent{Kind: IntentMove, To: to}
}

// smartStep follows a cached A* path toward the player, replanning when the
// cache goes stale. When no path is found within the expansion budget, the
// monster degrades to greedy movement instead of erroring.
func smartStep(m *Mob, v View, pp Point, rules Rules) Intent {
	if Adjacent(m.Pos(), pp) {
		m.ClearPath()
		return Intent{Kind: IntentAttack, To: pp}
	}

	if m.Path.Stale(v, pp, rules.PathReplanTolerance, rules.Path.MonstersBlock) {
		m.ClearPath()
		if wps := FindPath(v, m.Pos(), pp, rules.Path); wps != nil {
			m.Path = &PathCache{Waypoints: wps, Goal: pp}
		}
	}

	next, ok := m.Path.Next()
	if !ok {
		return greedyToward(m, v, pp) // unreachable: degraded movement
	}
	m.Path.Advance()
	return Intent{Kind: IntentMove, To: next}
}

// greedyStep targets the nearest reachable gold pile with SIMPLE-style
// movement; with no gold in reach it falls back to SIMPLE toward the player.
func greedyStep(m *Mob, v View, pp Point, rules Rules) Intent {
	if Adjacent(m.Pos(), pp) {
		return Intent{Kind: IntentAttack, To: pp}
	}
	if g, ok := nearestReachableGold(m, v, rules); ok {
		if g == m.Pos() {
			return Intent{Kind: IntentWait} // standing on it; pickup is the world's job
		}
		return greedyToward(m, v, g)
	}
	return greedyToward(m, v, pp)
}

func nearestReachableGold(m *Mob, v View, rules Rules) (Point, bool) {
	best := Point{}
	bestDist := -1
	for _, g := range v.GoldPiles() {
		d := Chebyshev(m.Pos(), g)
		if bestDist >= 0 && d >= bestDist {
			continue
		}
		if g != m.Pos() && FindPath(v, m.Pos(), g, rules.Path) == nil {
			continue
		}
		best, bestDist = g, d
	}
	return best, bestDist >= 0
}

// fleeStep maximizes distance from the player: among the enterable neighbor
// tiles (current tile included), pick the one with the greatest Chebyshev
// distance. Ties resolve in fixed neighbor order, keeping flight paths
// deterministic.
func fleeStep(m *Mob, v View) Intent {
	p := v.Player()
	pp := Point{p.X, p.Y}

	best := m.Pos()
	bestDist := Chebyshev(best, pp)
	for _, d := range neighborDirs {
		to := Point{m.X + d.X, m.Y + d.Y}
		if !enterable(v, to) {
			continue
		}
		if dist := Chebyshev(to, pp); dist > bestDist {
			best, bestDist = to, dist
		}
	}
	if best == m.Pos() {
		return Intent{Kind: IntentWait} // cornered
	}
	return Intent{Kind: IntentMove, To: best}
}

// wanderStep is undirected local movement: step to a uniformly random
// enterable neighbor, or idle when boxed in.
func wanderStep(m *Mob, v View, rng *rand.Rand) Intent {
	return randomStep(m, v, rng, false)
}

func randomStep(m *Mob, v View, rng *rand.Rand, erratic bool) Intent {
	var open []Point
	for _, d := range neighborDirs {
		to := Point{m.X + d.X, m.Y + d.Y}
		if enterable(v, to) {
			open = append(open, to)
		}
	}
	if len(open) == 0 {
		return Intent{Kind: IntentWait, Erratic: erratic}
	}
	return Intent{Kind: IntentMove, To: open[rng.Intn(len(open))], Erratic: erratic}
}

// enterable reports whether a monster may step onto the tile. The player's
// tile is never a movement destination — reaching the player is an attack or
// steal intent, not a move.
func enterable(v View, p Point) bool {
	if pl := v.Player(); (Point{pl.X, pl.Y}) == p {
		return false
	}
	return v.InBounds(p.X, p.Y) && v.Walkable(p.X, p.Y) && !v.Occupied(p.X, p.Y)
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
