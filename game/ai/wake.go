package ai

// PlayerInfo is the minimal player data the AI needs.
type PlayerInfo struct {
	X, Y    int
	Running bool
}

// View is what a deciding monster can observe of its level. Implemented by
// *world.Level through a per-monster adapter — declared here as an interface
// to keep the AI layer free of world imports.
type View interface {
	PathView
	Player() PlayerInfo
	// GoldPiles lists uncollected gold positions, in a stable order.
	GoldPiles() []Point
	// CanSee is the visibility oracle: line of sight between two tiles.
	CanSee(from, to Point) bool
}

// CheckAggro decides whether a sleeping or wandering monster notices the
// player. Effective range is AggroRange, widened by RunAggroMultiplier when
// the player is running; the check passes only when the player is inside
// that range AND the visibility oracle reports line of sight.
func CheckAggro(m *Mob, v View, rules Rules) bool {
	p := v.Player()
	r := float64(m.AggroRange)
	if p.Running {
		r *= rules.RunAggroMultiplier
	}
	pp := Point{p.X, p.Y}
	if float64(Chebyshev(m.Pos(), pp)) > r {
		return false
	}
	return v.CanSee(m.Pos(), pp)
}

// WakeByNoise wakes a sleeping monster without any line-of-sight check.
// Used by door-slam propagation: noise carries where sight does not.
func WakeByNoise(m *Mob) {
	if m.State == StateSleeping {
		m.State = StateHunting
	}
}
