package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gridView is a test View over an ASCII grid:
// '#' wall, '.' floor, 'M' floor with a monster, '$' floor with gold,
// '@' floor with the player.
type gridView struct {
	rows   []string
	player PlayerInfo
	gold   []Point
	seeAll bool
}

func parseGrid(s string, running bool) *gridView {
	v := &gridView{seeAll: true}
	for y, row := range strings.Split(strings.TrimSpace(s), "\n") {
		row = strings.TrimSpace(row)
		v.rows = append(v.rows, row)
		for x, ch := range row {
			switch ch {
			case '@':
				v.player = PlayerInfo{X: x, Y: y, Running: running}
			case '$':
				v.gold = append(v.gold, Point{x, y})
			}
		}
	}
	return v
}

func (v *gridView) InBounds(x, y int) bool {
	return y >= 0 && y < len(v.rows) && x >= 0 && x < len(v.rows[y])
}

func (v *gridView) Walkable(x, y int) bool {
	return v.InBounds(x, y) && v.rows[y][x] != '#'
}

func (v *gridView) Occupied(x, y int) bool {
	return v.InBounds(x, y) && v.rows[y][x] == 'M'
}

func (v *gridView) Player() PlayerInfo { return v.player }
func (v *gridView) GoldPiles() []Point { return v.gold }

func (v *gridView) CanSee(from, to Point) bool { return v.seeAll }

var testOpts = PathOptions{MaxExpansions: 4096, MonstersBlock: true}

func TestFindPath_DiagonalIsShortest(t *testing.T) {
	v := parseGrid(`
		......
		......
		......
		......
		......
		.....@
	`, false)
	path := FindPath(v, Point{0, 0}, Point{5, 5}, testOpts)
	require.NotNil(t, path)
	// Chebyshev distance 5: a pure diagonal walk
	assert.Len(t, path, 5)
	assert.Equal(t, Point{5, 5}, path[len(path)-1])
	assert.NotContains(t, path, Point{0, 0})
}

func TestFindPath_AroundWall(t *testing.T) {
	v := parseGrid(`
		.....
		.###.
		.#.#.
		.###.
		.....
	`, false)
	path := FindPath(v, Point{0, 2}, Point{4, 2}, testOpts)
	require.NotNil(t, path)
	assert.Equal(t, Point{4, 2}, path[len(path)-1])
	for _, p := range path {
		assert.True(t, v.Walkable(p.X, p.Y), "path crosses wall at %v", p)
	}
}

func TestFindPath_WalledOffReturnsNil(t *testing.T) {
	v := parseGrid(`
		..#..
		..#..
		..#..
	`, false)
	assert.Nil(t, FindPath(v, Point{0, 1}, Point{4, 1}, testOpts))
}

func TestFindPath_TrivialAndInvalidGoals(t *testing.T) {
	v := parseGrid(`
		...
		.#.
		...
	`, false)
	assert.Nil(t, FindPath(v, Point{0, 0}, Point{0, 0}, testOpts), "from == to")
	assert.Nil(t, FindPath(v, Point{0, 0}, Point{1, 1}, testOpts), "goal is a wall")
	assert.Nil(t, FindPath(v, Point{0, 0}, Point{9, 9}, testOpts), "goal out of bounds")
}

func TestFindPath_ExpansionBudget(t *testing.T) {
	v := parseGrid(`
		..........
		..........
		..........
		..........
		..........
	`, false)
	opts := testOpts
	opts.MaxExpansions = 2
	assert.Nil(t, FindPath(v, Point{0, 0}, Point{9, 4}, opts))
}

func TestFindPath_OccupiedBlocksExceptDestination(t *testing.T) {
	v := parseGrid(`
		###
		.M.
		###
	`, false)
	// Corridor blocked by a monster: no way through
	assert.Nil(t, FindPath(v, Point{0, 1}, Point{2, 1}, testOpts))
	// But the occupied tile itself is a legal destination
	path := FindPath(v, Point{0, 1}, Point{1, 1}, testOpts)
	require.NotNil(t, path)
	assert.Equal(t, []Point{{1, 1}}, path)
}

func TestFindPath_Deterministic(t *testing.T) {
	v := parseGrid(`
		........
		..##....
		..##....
		........
		........
	`, false)
	first := FindPath(v, Point{0, 0}, Point{7, 4}, testOpts)
	require.NotNil(t, first)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, FindPath(v, Point{0, 0}, Point{7, 4}, testOpts))
	}
}

func TestPathCache_NextAdvance(t *testing.T) {
	pc := &PathCache{Waypoints: []Point{{1, 1}, {2, 2}}, Goal: Point{2, 2}}
	next, ok := pc.Next()
	require.True(t, ok)
	assert.Equal(t, Point{1, 1}, next)
	pc.Advance()
	next, ok = pc.Next()
	require.True(t, ok)
	assert.Equal(t, Point{2, 2}, next)
	pc.Advance()
	_, ok = pc.Next()
	assert.False(t, ok)
}

func TestPathCache_Stale(t *testing.T) {
	v := parseGrid(`
		....
		....
	`, false)
	pc := &PathCache{Waypoints: []Point{{1, 0}, {2, 0}}, Goal: Point{2, 0}}

	assert.False(t, pc.Stale(v, Point{2, 0}, 2, true), "fresh path, same goal")
	assert.False(t, pc.Stale(v, Point{3, 0}, 2, true), "goal drift within tolerance")
	assert.True(t, pc.Stale(v, Point{3, 1}, 0, true), "goal drift beyond tolerance")

	var nilPC *PathCache
	assert.True(t, nilPC.Stale(v, Point{2, 0}, 2, true), "nil cache is stale")

	spent := &PathCache{Waypoints: []Point{{1, 0}}, Index: 1, Goal: Point{1, 0}}
	assert.True(t, spent.Stale(v, Point{1, 0}, 2, true), "spent path is stale")

	blocked := parseGrid(`
		.M..
		....
	`, false)
	assert.True(t, pc.Stale(blocked, Point{2, 0}, 2, true), "next waypoint occupied")
}

func TestChebyshevAndAdjacent(t *testing.T) {
	assert.Equal(t, 5, Chebyshev(Point{0, 0}, Point{5, 3}))
	assert.Equal(t, 5, Chebyshev(Point{0, 0}, Point{5, 5}))
	assert.True(t, Adjacent(Point{2, 2}, Point{3, 3}))
	assert.False(t, Adjacent(Point{2, 2}, Point{2, 2}))
	assert.False(t, Adjacent(Point{2, 2}, Point{4, 2}))
}
