package world

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cavebound/delved/game/ai"
)

const spawnerMap = `############
#@.........#
#..........#
#..........#
############`

func newTestSpawner(t *testing.T, cfg WanderConfig) (*Spawner, *Level) {
	t.Helper()
	lvl := buildTestLevel(t, spawnerMap)
	sp := NewSpawner(lvl, testBestiary(t), LineOfSight{}, cfg, zap.NewNop())
	return sp, lvl
}

func TestSpawner_RespectsCapOverManyTicks(t *testing.T) {
	sp, lvl := newTestSpawner(t, WanderConfig{Chance: 0.5, Cap: 3, VisRadius: 2})
	rng := rand.New(rand.NewSource(11))

	for i := 0; i < 1000; i++ {
		sp.Tick(rng)
	}
	wanderers := 0
	for _, m := range lvl.Monsters {
		if m.Wanderer {
			wanderers++
		}
	}
	assert.Equal(t, 3, wanderers)
}

func TestSpawner_CapFreesUpOnDeath(t *testing.T) {
	sp, lvl := newTestSpawner(t, WanderConfig{Chance: 1.0, Cap: 1, VisRadius: 2})
	rng := rand.New(rand.NewSource(5))

	first := sp.Tick(rng)
	require.NotNil(t, first)
	assert.Nil(t, sp.Tick(rng), "cap reached")

	first.Kill()
	lvl.SweepDead()
	assert.NotNil(t, sp.Tick(rng), "slot freed by death")
}

func TestSpawner_SpawnsOutsidePlayerVisibility(t *testing.T) {
	sp, lvl := newTestSpawner(t, WanderConfig{Chance: 1.0, Cap: 50, VisRadius: 3})
	rng := rand.New(rand.NewSource(23))
	visible := LineOfSight{}.Visible(lvl, lvl.Player.Pos(), 3)

	for i := 0; i < 20; i++ {
		m := sp.Tick(rng)
		if m == nil {
			continue
		}
		assert.NotContains(t, visible, m.Pos(), "spawned in view")
		assert.True(t, lvl.Walkable(m.X, m.Y))
	}
}

func TestSpawner_WandererNeverSpawnsAsleep(t *testing.T) {
	sp, _ := newTestSpawner(t, WanderConfig{Chance: 1.0, Cap: 50, VisRadius: 2})
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 10; i++ {
		m := sp.Tick(rng)
		if m == nil {
			continue
		}
		assert.True(t, m.Wanderer)
		assert.NotEqual(t, ai.StateSleeping, m.State,
			"wanderers come in wandering or hunting, never asleep")
	}
}

func TestSpawner_ZeroChanceNeverSpawns(t *testing.T) {
	sp, lvl := newTestSpawner(t, WanderConfig{Chance: 0, Cap: 5, VisRadius: 2})
	rng := rand.New(rand.NewSource(3))
	before := len(lvl.Monsters)
	for i := 0; i < 200; i++ {
		assert.Nil(t, sp.Tick(rng))
	}
	assert.Equal(t, before, len(lvl.Monsters))
}

func TestSpawner_Deterministic(t *testing.T) {
	run := func() []ai.Point {
		lvl := buildTestLevel(t, spawnerMap)
		sp := NewSpawner(lvl, testBestiary(t), LineOfSight{}, WanderConfig{Chance: 0.3, Cap: 10, VisRadius: 2}, zap.NewNop())
		rng := rand.New(rand.NewSource(77))
		var got []ai.Point
		for i := 0; i < 100; i++ {
			if m := sp.Tick(rng); m != nil {
				got = append(got, m.Pos())
			}
		}
		return got
	}
	assert.Equal(t, run(), run())
}
