package turn

// Snapshot is a read-only copy of the engine state for the debug API.
type Snapshot struct {
	Tick  int64  `json:"tick"`
	Level string `json:"level"`
	Depth int    `json:"depth"`

	Player   PlayerSnapshot    `json:"player"`
	Monsters []MonsterSnapshot `json:"monsters"`
	Gold     int               `json:"gold_piles"`
}

type PlayerSnapshot struct {
	X       int  `json:"x"`
	Y       int  `json:"y"`
	HP      int  `json:"hp"`
	MaxHP   int  `json:"max_hp"`
	Energy  int  `json:"energy"`
	Speed   int  `json:"speed"`
	Gold    int  `json:"gold"`
	Running bool `json:"running"`
}

type MonsterSnapshot struct {
	InstID   int64  `json:"inst_id"`
	Name     string `json:"name"`
	Glyph    string `json:"glyph"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	HP       int    `json:"hp"`
	MaxHP    int    `json:"max_hp"`
	Energy   int    `json:"energy"`
	Speed    int    `json:"speed"`
	State    string `json:"state"`
	Behavior string `json:"behavior"`
	Wanderer bool   `json:"wanderer"`
}

// Snapshot captures the current state under the read lock.
func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()

	p := e.lvl.Player
	snap := Snapshot{
		Tick:  e.tick,
		Level: e.lvl.Name,
		Depth: e.lvl.Depth,
		Player: PlayerSnapshot{
			X: p.X, Y: p.Y,
			HP: p.HP, MaxHP: p.MaxHP,
			Energy: p.Energy, Speed: p.Speed,
			Gold: p.Gold, Running: p.Running,
		},
		Gold: len(e.lvl.Gold),
	}
	for _, m := range e.lvl.Monsters {
		if m.Dead {
			continue
		}
		snap.Monsters = append(snap.Monsters, MonsterSnapshot{
			InstID: m.InstID,
			Name:   m.Name,
			Glyph:  string(m.Glyph),
			X:      m.X, Y: m.Y,
			HP: m.HP, MaxHP: m.MaxHP,
			Energy: m.Energy, Speed: m.Speed,
			State:    m.State.String(),
			Behavior: m.Tag.String(),
			Wanderer: m.Wanderer,
		})
	}
	return snap
}
