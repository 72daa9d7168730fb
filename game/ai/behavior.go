package ai

import "fmt"

// BehaviorTag is the closed set of per-type movement policies. Dispatch is a
// single exhaustive switch in DecideIntent; there is no behavior hierarchy.
type BehaviorTag int

const (
	TagSmart BehaviorTag = iota
	TagSimple
	TagGreedy
	TagErratic
	TagThief
	TagStationary
	TagCoward
)

var tagNames = map[BehaviorTag]string{
	TagSmart:      "SMART",
	TagSimple:     "SIMPLE",
	TagGreedy:     "GREEDY",
	TagErratic:    "ERRATIC",
	TagThief:      "THIEF",
	TagStationary: "STATIONARY",
	TagCoward:     "COWARD",
}

func (t BehaviorTag) String() string {
	if s, ok := tagNames[t]; ok {
		return s
	}
	return fmt.Sprintf("BehaviorTag(%d)", int(t))
}

// ParseBehaviorTag maps a bestiary behavior column to its tag.
func ParseBehaviorTag(s string) (BehaviorTag, error) {
	for t, name := range tagNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown behavior tag %q", s)
}

// MonsterState enumerates the high-level AI states of a monster.
type MonsterState int

const (
	StateSleeping MonsterState = iota
	StateWandering
	StateHunting
	StateFleeing
)

func (s MonsterState) String() string {
	switch s {
	case StateSleeping:
		return "SLEEPING"
	case StateWandering:
		return "WANDERING"
	case StateHunting:
		return "HUNTING"
	case StateFleeing:
		return "FLEEING"
	}
	return fmt.Sprintf("MonsterState(%d)", int(s))
}

// Rules holds the level-wide AI tuning knobs, sourced from config.
type Rules struct {
	// RunAggroMultiplier widens the effective aggro range while the player
	// is running (noisier).
	RunAggroMultiplier float64
	// FleeHysteresis is the HP-fraction margin above FleeThreshold a fleeing
	// monster must recover before it calms down.
	FleeHysteresis float64
	// FleeCalmTurns is how many consecutive turns the player must stay out
	// of aggro range before a fleeing monster gives up.
	FleeCalmTurns int
	// PathReplanTolerance is how far (tiles) the goal may drift from a
	// cached path's terminal goal before a replan.
	PathReplanTolerance int
	Path                PathOptions
}

// Mob is the AI-visible slice of a monster's runtime state. The world layer
// embeds it in its monster runtime; DecideIntent mutates it in place.
type Mob struct {
	X, Y          int
	HP, MaxHP     int
	State         MonsterState
	Tag           BehaviorTag
	AggroRange    int
	FleeThreshold float64
	ErraticChance float64
	Intelligence  int

	Path *PathCache

	// ForcedFlee is set after a thief's steal: the monster flees
	// unconditionally, regardless of HP, until it calms down.
	ForcedFlee bool
	// CalmStreak counts consecutive fleeing turns with the player out of
	// aggro range.
	CalmStreak int
}

func (m *Mob) Pos() Point { return Point{m.X, m.Y} }

// HPFraction returns hp/maxHp, the quantity flee thresholds are tested on.
func (m *Mob) HPFraction() float64 {
	if m.MaxHP <= 0 {
		return 0
	}
	return float64(m.HP) / float64(m.MaxHP)
}

// ClearPath drops the cached path. Called on death, retarget beyond
// tolerance, obstruction and every state change away from hunting.
func (m *Mob) ClearPath() { m.Path = nil }

// Clone returns an independent copy for pure intent queries.
func (m *Mob) Clone() *Mob {
	cp := *m
	cp.Path = m.Path.Clone()
	return &cp
}

// shouldFlee reports whether the flee override kicks in. The flee threshold
// acts as a modifier on any underlying tag, not only TagCoward: a profile
// with a zero threshold simply never triggers it.
func (m *Mob) shouldFlee() bool {
	if m.ForcedFlee {
		return true
	}
	return m.FleeThreshold > 0 && m.HPFraction() < m.FleeThreshold
}

// UpdateState runs the per-tick transition machine. Transitions are checked
// in wake → flee → calm order so that a monster woken this tick still passes
// through the hunting checks before it may start fleeing.
func UpdateState(m *Mob, v View, rules Rules) {
	switch m.State {
	case StateSleeping, StateWandering:
		if CheckAggro(m, v, rules) {
			m.State = StateHunting
		}
	}

	if m.State == StateHunting && m.shouldFlee() {
		m.State = StateFleeing
		m.ClearPath()
	}

	if m.State == StateFleeing {
		if playerOutOfRange(m, v, rules) {
			m.CalmStreak++
		} else {
			m.CalmStreak = 0
		}
		recovered := !m.ForcedFlee && m.HPFraction() > m.FleeThreshold+rules.FleeHysteresis
		if recovered || m.CalmStreak >= rules.FleeCalmTurns {
			m.ForcedFlee = false
			m.CalmStreak = 0
			if CheckAggro(m, v, rules) {
				m.State = StateHunting
			} else {
				m.State = StateWandering
			}
		}
	}
}

func playerOutOfRange(m *Mob, v View, rules Rules) bool {
	p := v.Player()
	r := float64(m.AggroRange)
	if p.Running {
		r *= rules.RunAggroMultiplier
	}
	return float64(Chebyshev(m.Pos(), Point{p.X, p.Y})) > r
}
