package world

import (
	"fmt"

	"github.com/cavebound/delved/game/ai"
	"github.com/cavebound/delved/resource"
	"go.uber.org/zap"
)

// TileKind is the static terrain of one tile.
type TileKind uint8

const (
	TileWall TileKind = iota
	TileFloor
	TileDoorClosed
	TileDoorOpen
	// TileDoorSecret is an undiscovered door: impassable and opaque until
	// found, at which point it becomes a closed door.
	TileDoorSecret
)

// GoldPile is loose gold on the floor, the target of GREEDY monsters.
type GoldPile struct {
	X, Y   int
	Amount int
}

// Level is the runtime state of one dungeon level: the tile grid, the gold,
// the player and the monster list. The monster slice order is the scheduling
// order — spawn order, stable for the lifetime of the level.
type Level struct {
	Name   string
	Depth  int
	Width  int
	Height int

	tiles []TileKind

	Gold     []GoldPile
	Player   *Player
	Monsters []*Monster

	nextInstID int64
	logger     *zap.Logger
}

// NewLevel creates an empty all-wall level.
func NewLevel(name string, w, h int, logger *zap.Logger) *Level {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Level{
		Name:   name,
		Width:  w,
		Height: h,
		tiles:  make([]TileKind, w*h),
		logger: logger,
	}
}

// BuildLevel realizes a parsed map into a runtime level, resolving monster
// glyphs against the bestiary. Fails on glyphs without a template.
func BuildLevel(lm *resource.LevelMap, bestiary *resource.Bestiary, logger *zap.Logger) (*Level, error) {
	lvl := NewLevel(lm.Name, lm.Width, lm.Height, logger)
	lvl.Depth = lm.Depth

	playerPlaced := false
	for y, row := range lm.Rows {
		for x, ch := range []rune(row) {
			switch ch {
			case resource.GlyphWall, resource.GlyphVoid:
				lvl.SetTile(x, y, TileWall)
			case resource.GlyphFloor:
				lvl.SetTile(x, y, TileFloor)
			case resource.GlyphDoorClosed:
				lvl.SetTile(x, y, TileDoorClosed)
			case resource.GlyphDoorOpen:
				lvl.SetTile(x, y, TileDoorOpen)
			case resource.GlyphDoorSecret:
				lvl.SetTile(x, y, TileDoorSecret)
			case resource.GlyphGold:
				lvl.SetTile(x, y, TileFloor)
				lvl.Gold = append(lvl.Gold, GoldPile{X: x, Y: y, Amount: resource.DefaultGoldPile})
			case resource.GlyphPlayer:
				lvl.SetTile(x, y, TileFloor)
				lvl.Player = NewPlayer(x, y)
				playerPlaced = true
			default:
				tpl := bestiary.ByGlyph(ch)
				if tpl == nil {
					return nil, fmt.Errorf("map %s: no bestiary entry for glyph %q at (%d,%d)", lm.Name, ch, x, y)
				}
				lvl.SetTile(x, y, TileFloor)
				lvl.AddMonster(NewMonster(tpl, x, y))
			}
		}
	}
	if !playerPlaced {
		return nil, fmt.Errorf("map %s: no player start (%q)", lm.Name, resource.GlyphPlayer)
	}
	return lvl, nil
}

func (l *Level) idx(x, y int) int { return y*l.Width + x }

// InBounds reports whether (x, y) is inside the grid.
func (l *Level) InBounds(x, y int) bool {
	return x >= 0 && x < l.Width && y >= 0 && y < l.Height
}

// TileAt returns the tile kind, TileWall when out of bounds.
func (l *Level) TileAt(x, y int) TileKind {
	if !l.InBounds(x, y) {
		return TileWall
	}
	return l.tiles[l.idx(x, y)]
}

// SetTile overwrites a tile. Out-of-bounds writes are dropped.
func (l *Level) SetTile(x, y int, k TileKind) {
	if l.InBounds(x, y) {
		l.tiles[l.idx(x, y)] = k
	}
}

// Walkable reports whether an actor can stand on the tile: floors and open
// doors. Closed and secret doors are not walkable.
func (l *Level) Walkable(x, y int) bool {
	switch l.TileAt(x, y) {
	case TileFloor, TileDoorOpen:
		return true
	}
	return false
}

// Opaque reports whether the tile blocks line of sight.
func (l *Level) Opaque(x, y int) bool {
	switch l.TileAt(x, y) {
	case TileWall, TileDoorClosed, TileDoorSecret:
		return true
	}
	return false
}

// Occupied reports whether a live monster stands on the tile.
func (l *Level) Occupied(x, y int) bool {
	return l.MonsterAt(x, y) != nil
}

// MonsterAt returns the live monster on the tile, or nil.
func (l *Level) MonsterAt(x, y int) *Monster {
	for _, m := range l.Monsters {
		if !m.Dead && m.X == x && m.Y == y {
			return m
		}
	}
	return nil
}

// AddMonster appends a monster to the scheduling list and assigns its
// instance ID. IDs are sequential per level, so runs replay identically.
func (l *Level) AddMonster(m *Monster) {
	l.nextInstID++
	m.InstID = l.nextInstID
	l.Monsters = append(l.Monsters, m)
}

// SweepDead removes dead monsters from the scheduling list, preserving the
// relative order of the survivors.
func (l *Level) SweepDead() {
	alive := l.Monsters[:0]
	for _, m := range l.Monsters {
		if m.Dead {
			m.ClearPath()
			continue
		}
		alive = append(alive, m)
	}
	l.Monsters = alive
}

// GoldAt returns the index of the pile on (x, y), or -1.
func (l *Level) GoldAt(x, y int) int {
	for i, g := range l.Gold {
		if g.X == x && g.Y == y {
			return i
		}
	}
	return -1
}

// TakeGold removes and returns the pile on (x, y); amount 0 when none.
func (l *Level) TakeGold(x, y int) int {
	i := l.GoldAt(x, y)
	if i < 0 {
		return 0
	}
	amount := l.Gold[i].Amount
	l.Gold = append(l.Gold[:i], l.Gold[i+1:]...)
	return amount
}

// OpenDoor opens a closed door. Secret doors must be discovered first.
func (l *Level) OpenDoor(x, y int) bool {
	if l.TileAt(x, y) != TileDoorClosed {
		return false
	}
	l.SetTile(x, y, TileDoorOpen)
	return true
}

// CloseDoor closes an open door; fails when an actor stands in the doorway.
func (l *Level) CloseDoor(x, y int) bool {
	if l.TileAt(x, y) != TileDoorOpen {
		return false
	}
	if l.Occupied(x, y) || (l.Player != nil && l.Player.X == x && l.Player.Y == y) {
		return false
	}
	l.SetTile(x, y, TileDoorClosed)
	return true
}

// SlamDoor closes an open door violently. The slam is a noise event: every
// sleeping monster whose room is reachable from the door without crossing
// another closed door wakes up. Returns how many monsters woke.
func (l *Level) SlamDoor(x, y int) int {
	if !l.CloseDoor(x, y) {
		return 0
	}
	region := l.noiseRegion(ai.Point{X: x, Y: y})
	woken := 0
	for _, m := range l.Monsters {
		if m.Dead || m.State != ai.StateSleeping {
			continue
		}
		if _, ok := region[m.Pos()]; ok {
			ai.WakeByNoise(&m.Mob)
			woken++
		}
	}
	if woken > 0 {
		l.logger.Debug("door slam woke monsters",
			zap.Int("x", x), zap.Int("y", y), zap.Int("woken", woken))
	}
	return woken
}

// noiseRegion flood-fills from the slammed door through walkable tiles,
// stopping at walls and other closed doors. 4-directional spread: noise
// does not cut wall corners.
func (l *Level) noiseRegion(origin ai.Point) map[ai.Point]struct{} {
	region := make(map[ai.Point]struct{})
	queue := []ai.Point{origin}
	region[origin] = struct{}{}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range [4]ai.Point{{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}} {
			np := ai.Point{X: cur.X + d.X, Y: cur.Y + d.Y}
			if _, seen := region[np]; seen {
				continue
			}
			if !l.Walkable(np.X, np.Y) {
				continue
			}
			region[np] = struct{}{}
			queue = append(queue, np)
		}
	}
	return region
}

// levelView adapts a Level to ai.View for one deciding monster: the monster
// never counts itself as an obstacle.
type levelView struct {
	lvl  *Level
	self *Monster
	vis  Visibility
}

// ViewFor returns the ai.View a monster decides against.
func (l *Level) ViewFor(m *Monster, vis Visibility) ai.View {
	return levelView{lvl: l, self: m, vis: vis}
}

func (v levelView) InBounds(x, y int) bool { return v.lvl.InBounds(x, y) }
func (v levelView) Walkable(x, y int) bool { return v.lvl.Walkable(x, y) }

func (v levelView) Occupied(x, y int) bool {
	m := v.lvl.MonsterAt(x, y)
	return m != nil && m != v.self
}

func (v levelView) Player() ai.PlayerInfo {
	p := v.lvl.Player
	return ai.PlayerInfo{X: p.X, Y: p.Y, Running: p.Running}
}

func (v levelView) GoldPiles() []ai.Point {
	pts := make([]ai.Point, len(v.lvl.Gold))
	for i, g := range v.lvl.Gold {
		pts[i] = ai.Point{X: g.X, Y: g.Y}
	}
	return pts
}

func (v levelView) CanSee(from, to ai.Point) bool {
	return v.vis.CanSee(v.lvl, from, to)
}
