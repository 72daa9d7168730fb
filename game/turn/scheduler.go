package turn

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/cavebound/delved/game/ai"
	"github.com/cavebound/delved/game/world"
	"go.uber.org/zap"
)

// ActionCost is the fixed energy price of one action. An actor may act only
// while its energy is at least this much; per-tick grant equals its speed.
const ActionCost = 100

// Options wires an Engine.
type Options struct {
	Rules ai.Rules
	Seed  int64
}

// TickReport summarizes one scheduling tick.
type TickReport struct {
	Tick           int64
	Grants         int    // energy-grant phases run before the player could act
	MonsterActions int    // total monster actions taken this tick
	ErraticMoves   int    // moves chosen by the erratic roll
	Spawned        string // name of the wandering monster injected, if any
}

// Engine is the turn driver: an energy-based scheduler interleaving the
// player and every monster by speed. Execution is single-threaded and
// strictly turn-sequential; AdvanceTick is a plain synchronous step
// function. The mutex only shields debug-API snapshot reads.
type Engine struct {
	mu sync.RWMutex

	lvl     *world.Level
	vis     world.Visibility
	combat  CombatResolver
	status  StatusQuery
	spawner *world.Spawner

	rules ai.Rules
	rng   *rand.Rand
	seed  int64
	tick  int64

	logger *zap.Logger
}

// NewEngine builds an Engine over a level. Actor speeds are re-checked here:
// a non-positive speed would stall or spin the grant loop, so it is rejected
// before the first tick, never tolerated at runtime.
func NewEngine(
	lvl *world.Level,
	vis world.Visibility,
	combat CombatResolver,
	status StatusQuery,
	spawner *world.Spawner,
	opts Options,
	logger *zap.Logger,
) (*Engine, error) {
	if lvl.Player == nil {
		return nil, fmt.Errorf("engine: level has no player")
	}
	if lvl.Player.Speed <= 0 {
		return nil, fmt.Errorf("engine: player speed must be > 0, got %d", lvl.Player.Speed)
	}
	for _, m := range lvl.Monsters {
		if m.Speed <= 0 {
			return nil, fmt.Errorf("engine: monster %s speed must be > 0, got %d", m.Name, m.Speed)
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		lvl:     lvl,
		vis:     vis,
		combat:  combat,
		status:  status,
		spawner: spawner,
		rules:   opts.Rules,
		rng:     rand.New(rand.NewSource(opts.Seed)),
		seed:    opts.Seed,
		logger:  logger,
	}, nil
}

// Tick returns the current tick counter.
func (e *Engine) Tick() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.tick
}

// Level exposes the underlying level. Single-writer-per-tick: only the
// goroutine calling AdvanceTick may mutate it.
func (e *Engine) Level() *world.Level { return e.lvl }

// AdvanceTick runs one full scheduling tick:
//
//  1. Grant phases: energy += speed for the player AND every monster,
//     simultaneously, repeated until the player can act. No actor class is
//     ever excluded from a grant phase — monsters bank energy at exactly
//     the same rate as the player.
//  2. The submitted player action is applied and its cost consumed.
//  3. Wandering-monster injection rolls once.
//  4. Monsters are processed in level-list order (spawn order, stable);
//     each spends all the energy it has banked, so fast monsters act
//     several times per tick. Later monsters observe earlier monsters'
//     updated positions — sequential visibility is the contract, not an
//     accident.
func (e *Engine) AdvanceTick(action PlayerAction) TickReport {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.tick++
	report := TickReport{Tick: e.tick}
	p := e.lvl.Player
	p.Running = action.Running

	for p.Energy < ActionCost {
		e.grantEnergyAll()
		report.Grants++
		if report.Grants > ActionCost {
			// Unreachable with validated speeds; a stall here is a defect.
			panic(fmt.Sprintf("grant loop stalled: player speed %d", p.Speed))
		}
	}

	e.applyPlayerAction(p, action)
	consumeEnergy("player", &p.Energy, ActionCost)

	if e.spawner != nil {
		if m := e.spawner.Tick(e.rng); m != nil {
			report.Spawned = m.Name
		}
	}

	// Monster phase. The slice is fixed for the tick: spawns above enter
	// with zero energy and act no earlier than the next tick.
	monsters := e.lvl.Monsters
	for _, m := range monsters {
		if m.Dead || m.HP <= 0 {
			continue // removed mid-tick by an external system: skip silently
		}
		for m.Energy >= ActionCost {
			intent := ai.DecideIntent(&m.Mob, e.lvl.ViewFor(m, e.vis), e.rules, e.rng)
			e.applyIntent(m, intent)
			consumeEnergy(m.Name, &m.Energy, ActionCost)
			report.MonsterActions++
			if intent.Erratic {
				report.ErraticMoves++
			}
			if m.Dead {
				break
			}
		}
	}

	e.lvl.SweepDead()
	return report
}

// grantEnergyAll is the fairness phase: one uniform grant to every actor on
// the level in the same pass. Haste doubles the gain, never touches the
// cost. This function is deliberately the only place energy is added.
func (e *Engine) grantEnergyAll() {
	p := e.lvl.Player
	gain := p.Speed
	if e.status.PlayerHas(p, world.StatusHasted) {
		gain *= 2
	}
	p.Energy += gain

	for _, m := range e.lvl.Monsters {
		if m.Dead {
			continue
		}
		gain := m.Speed
		if e.status.MonsterHas(m, world.StatusHasted) {
			gain *= 2
		}
		m.Energy += gain
	}
}

// consumeEnergy deducts an action's cost. Underflow is an internal defect —
// the scheduler only schedules actors that banked enough — so it panics
// rather than corrupting the energy invariant.
func consumeEnergy(who string, energy *int, cost int) {
	if *energy < cost {
		panic(fmt.Sprintf("energy underflow: %s has %d, needs %d", who, *energy, cost))
	}
	*energy -= cost
}

func (e *Engine) applyPlayerAction(p *world.Player, action PlayerAction) {
	tx, ty := p.X+action.DX, p.Y+action.DY
	switch action.Kind {
	case ActMove:
		if m := e.lvl.MonsterAt(tx, ty); m != nil {
			e.combat.PlayerAttack(p, m)
			return
		}
		if !e.lvl.Walkable(tx, ty) {
			return // bumped a wall: the turn is still spent
		}
		p.X, p.Y = tx, ty
		if amount := e.lvl.TakeGold(tx, ty); amount > 0 {
			p.Gold += amount
		}
	case ActOpenDoor:
		e.lvl.OpenDoor(tx, ty)
	case ActCloseDoor:
		e.lvl.CloseDoor(tx, ty)
	case ActSlamDoor:
		if woken := e.lvl.SlamDoor(tx, ty); woken > 0 {
			e.logger.Debug("door slam", zap.Int("woken", woken))
		}
	}
}

// applyIntent realizes one monster intent against the level. Invalid moves
// (the tile was taken by an earlier monster this tick) degrade to a wait.
func (e *Engine) applyIntent(m *world.Monster, intent ai.Intent) {
	switch intent.Kind {
	case ai.IntentMove:
		to := intent.To
		if !e.lvl.Walkable(to.X, to.Y) || e.lvl.Occupied(to.X, to.Y) || to == e.lvl.Player.Pos() {
			m.ClearPath() // obstruction invalidates any cached path
			return
		}
		m.X, m.Y = to.X, to.Y
		if m.Tag == ai.TagGreedy {
			if amount := e.lvl.TakeGold(to.X, to.Y); amount > 0 {
				e.logger.Debug("monster pockets gold",
					zap.String("name", m.Name), zap.Int("amount", amount))
			}
		}
	case ai.IntentAttack:
		e.combat.MonsterAttack(m, e.lvl.Player)
	case ai.IntentSteal:
		e.combat.Steal(m, e.lvl.Player)
		// A thief always bolts after the attempt, regardless of HP or
		// whether the grab succeeded.
		m.ForcedFlee = true
		m.State = ai.StateFleeing
		m.ClearPath()
	}
}

// MonsterIntent is the pure decision query: what would this monster do right
// now? It works on copies and a derived RNG stream, so neither the monster
// nor the engine's replay state changes.
func (e *Engine) MonsterIntent(m *world.Monster) ai.Intent {
	e.mu.RLock()
	defer e.mu.RUnlock()
	mob := m.Mob.Clone()
	rng := rand.New(rand.NewSource(e.seed ^ (e.tick << 17) ^ m.InstID))
	return ai.DecideIntent(mob, e.lvl.ViewFor(m, e.vis), e.rules, rng)
}
