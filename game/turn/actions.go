package turn

import (
	"github.com/cavebound/delved/game/world"
	"go.uber.org/zap"
)

// PlayerActionKind enumerates the actions the outer game layer may submit
// for the player's turn.
type PlayerActionKind int

const (
	ActWait PlayerActionKind = iota
	ActMove
	ActOpenDoor
	ActCloseDoor
	// ActSlamDoor closes an adjacent open door loudly, waking every
	// sleeping monster in the connected room.
	ActSlamDoor
)

// PlayerAction is one chosen player action. DX/DY point at the target tile
// for moves and door actions. Running feeds the aggro-range multiplier.
type PlayerAction struct {
	Kind    PlayerActionKind
	DX, DY  int
	Running bool
}

// CombatResolver receives attack and steal intents. Damage and loot
// resolution live outside this core; the scheduler only reports what the
// actors decided to do.
type CombatResolver interface {
	MonsterAttack(m *world.Monster, p *world.Player)
	PlayerAttack(p *world.Player, m *world.Monster)
	// Steal reports whether anything was taken. The thief flees afterwards
	// either way.
	Steal(m *world.Monster, p *world.Player) bool
}

// StatusQuery answers status-effect questions. The only status this core
// consumes is "hasted", which doubles the energy grant.
type StatusQuery interface {
	PlayerHas(p *world.Player, status string) bool
	MonsterHas(m *world.Monster, status string) bool
}

// ActorStatuses is the default StatusQuery: it reads the status sets the
// external effect systems maintain on the actors themselves.
type ActorStatuses struct{}

func (ActorStatuses) PlayerHas(p *world.Player, status string) bool {
	return p.Statuses.Has(status)
}

func (ActorStatuses) MonsterHas(m *world.Monster, status string) bool {
	return m.Statuses.Has(status)
}

// LogResolver is the headless-run CombatResolver: it logs intents and
// resolves nothing. Real damage rules plug in from outside.
type LogResolver struct {
	Logger *zap.Logger
}

func (r LogResolver) MonsterAttack(m *world.Monster, p *world.Player) {
	r.Logger.Debug("monster attacks player", zap.String("name", m.Name), zap.Int64("inst_id", m.InstID))
}

func (r LogResolver) PlayerAttack(p *world.Player, m *world.Monster) {
	r.Logger.Debug("player attacks monster", zap.String("name", m.Name), zap.Int64("inst_id", m.InstID))
}

func (r LogResolver) Steal(m *world.Monster, p *world.Player) bool {
	r.Logger.Debug("monster steals from player", zap.String("name", m.Name))
	return p.Gold > 0
}
