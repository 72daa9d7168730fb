package world

import (
	"math/rand"

	"github.com/cavebound/delved/game/ai"
	"github.com/cavebound/delved/resource"
	"go.uber.org/zap"
)

// WanderConfig tunes wandering-monster injection.
type WanderConfig struct {
	// Chance is the fixed per-tick spawn probability, independent of aggro.
	Chance float64
	// Cap is the maximum number of concurrently-alive wander-spawned
	// monsters on one level.
	Cap int
	// VisRadius is the player sight radius used to keep spawn positions
	// out of view.
	VisRadius int
}

// Spawner injects wandering monsters during play, distinct from the
// monsters placed at level build time.
type Spawner struct {
	lvl      *Level
	bestiary *resource.Bestiary
	vis      Visibility
	cfg      WanderConfig
	logger   *zap.Logger
}

// NewSpawner creates a Spawner for a level.
func NewSpawner(lvl *Level, bestiary *resource.Bestiary, vis Visibility, cfg WanderConfig, logger *zap.Logger) *Spawner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Spawner{lvl: lvl, bestiary: bestiary, vis: vis, cfg: cfg, logger: logger}
}

// liveWanderers counts wander-spawned monsters still alive.
func (sp *Spawner) liveWanderers() int {
	n := 0
	for _, m := range sp.lvl.Monsters {
		if m.Wanderer && !m.Dead {
			n++
		}
	}
	return n
}

// Tick rolls the per-tick wandering spawn. On success a new monster is
// placed on a walkable, unoccupied tile outside the player's current
// visibility and added to the level. Returns the spawned monster or nil.
//
// The cap is checked before the roll so a full level consumes no
// randomness — the RNG stream stays stable across replays either way
// because the roll itself is the first draw.
func (sp *Spawner) Tick(rng *rand.Rand) *Monster {
	if sp.cfg.Cap > 0 && sp.liveWanderers() >= sp.cfg.Cap {
		return nil
	}
	if rng.Float64() >= sp.cfg.Chance {
		return nil
	}

	tpl := sp.bestiary.PickForDepth(sp.lvl.Depth, rng)
	if tpl == nil {
		return nil
	}
	pos, ok := sp.pickSpot(rng)
	if !ok {
		sp.logger.Debug("wander spawn skipped: no hidden tile free")
		return nil
	}

	m := NewMonster(tpl, pos.X, pos.Y)
	m.Wanderer = true
	// Wanderers are on the move by definition; mean ones come in hunting.
	if m.State == ai.StateSleeping {
		m.State = ai.StateWandering
	}
	sp.lvl.AddMonster(m)
	sp.logger.Debug("wandering monster spawned",
		zap.String("name", m.Name), zap.Int("x", pos.X), zap.Int("y", pos.Y))
	return m
}

// pickSpot selects a uniform random walkable, unoccupied tile the player
// cannot currently see. Candidates are collected in row-major order so the
// choice depends only on the RNG draw.
func (sp *Spawner) pickSpot(rng *rand.Rand) (ai.Point, bool) {
	visible := sp.vis.Visible(sp.lvl, sp.lvl.Player.Pos(), sp.cfg.VisRadius)
	var candidates []ai.Point
	for y := 0; y < sp.lvl.Height; y++ {
		for x := 0; x < sp.lvl.Width; x++ {
			p := ai.Point{X: x, Y: y}
			if !sp.lvl.Walkable(x, y) || sp.lvl.Occupied(x, y) {
				continue
			}
			if p == sp.lvl.Player.Pos() {
				continue
			}
			if _, seen := visible[p]; seen {
				continue
			}
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return ai.Point{}, false
	}
	return candidates[rng.Intn(len(candidates))], true
}
