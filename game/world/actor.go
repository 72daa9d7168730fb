package world

import (
	"github.com/cavebound/delved/game/ai"
	"github.com/cavebound/delved/resource"
)

// Status names consumed through the status query boundary. Effects are
// applied by external systems; this core only reads them.
const (
	StatusHasted = "hasted"
)

// StatusSet is the set of named statuses active on an actor.
type StatusSet map[string]struct{}

func (s StatusSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

func (s StatusSet) Add(name string)    { s[name] = struct{}{} }
func (s StatusSet) Remove(name string) { delete(s, name) }

// Player is the player's runtime state. The player persists across levels;
// position and energy are per-level concerns reset on entry.
type Player struct {
	X, Y      int
	Speed     int
	Energy    int
	HP, MaxHP int
	Gold      int
	// Running widens monster aggro ranges while set (running is loud).
	Running  bool
	Statuses StatusSet
}

// NewPlayer creates a player with the default stats at the given tile.
func NewPlayer(x, y int) *Player {
	return &Player{
		X:        x,
		Y:        y,
		Speed:    10,
		HP:       20,
		MaxHP:    20,
		Statuses: make(StatusSet),
	}
}

func (p *Player) Pos() ai.Point { return ai.Point{X: p.X, Y: p.Y} }

// Monster is the runtime state of one live monster. The embedded ai.Mob is
// the slice of state the decision engine reads and writes; everything else
// is scheduling and bookkeeping.
type Monster struct {
	ai.Mob

	InstID   int64
	Name     string
	Glyph    rune
	Speed    int
	Energy   int
	Statuses StatusSet

	// Wanderer marks monsters injected by the wandering spawner, counted
	// against the per-level wander cap.
	Wanderer bool
	Dead     bool
}

// NewMonster instantiates a template at a position. Mean monsters start
// awake and hunting; everything else starts asleep.
func NewMonster(tpl *resource.MonsterTemplate, x, y int) *Monster {
	state := ai.StateSleeping
	if tpl.Mean {
		state = ai.StateHunting
	}
	return &Monster{
		Mob: ai.Mob{
			X:             x,
			Y:             y,
			HP:            tpl.MaxHP,
			MaxHP:         tpl.MaxHP,
			State:         state,
			Tag:           tpl.Tag(),
			AggroRange:    tpl.AggroRange,
			FleeThreshold: tpl.FleeThreshold,
			ErraticChance: tpl.ErraticChance,
			Intelligence:  tpl.Intelligence,
		},
		Name:     tpl.Name,
		Glyph:    tpl.GlyphRune(),
		Speed:    tpl.Speed,
		Statuses: make(StatusSet),
	}
}

// Kill marks the monster dead. The path cache dies with it; the scheduler
// sweeps the corpse out of the list at end of tick.
func (m *Monster) Kill() {
	m.Dead = true
	m.HP = 0
	m.ClearPath()
}
