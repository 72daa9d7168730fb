package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "server:\n  admin_key: k\n"))
	require.NoError(t, err)

	assert.Equal(t, 8090, cfg.Server.Port)
	assert.Equal(t, int64(1), cfg.Game.Seed)
	assert.Equal(t, "crypt", cfg.Game.Map)
	assert.Equal(t, 1.5, cfg.AI.RunAggroMultiplier)
	assert.Equal(t, 0.10, cfg.AI.FleeHysteresis)
	assert.Equal(t, 5, cfg.AI.FleeCalmTurns)
	assert.Equal(t, 4096, cfg.AI.AStarMaxExpansions)
	assert.True(t, cfg.AI.MonstersBlockPaths)
	assert.Equal(t, 5, cfg.Spawn.WanderCap)
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
game:
  seed: 42
  map: warrens
ai:
  run_aggro_multiplier: 2.0
spawn:
  wander_chance: 0.25
`))
	require.NoError(t, err)
	assert.Equal(t, int64(42), cfg.Game.Seed)
	assert.Equal(t, "warrens", cfg.Game.Map)
	assert.Equal(t, 2.0, cfg.AI.RunAggroMultiplier)
	assert.Equal(t, 0.25, cfg.Spawn.WanderChance)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate_Rejects(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"aggro multiplier below 1", "ai:\n  run_aggro_multiplier: 0.5\n"},
		{"negative hysteresis", "ai:\n  flee_hysteresis: -0.1\n"},
		{"zero calm turns", "ai:\n  flee_calm_turns: 0\n"},
		{"zero expansions", "ai:\n  astar_max_expansions: 0\n"},
		{"wander chance above 1", "spawn:\n  wander_chance: 1.5\n"},
		{"negative cap", "spawn:\n  wander_cap: -1\n"},
		{"zero tick", "game:\n  tick_ms: 0\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.body))
			assert.Error(t, err)
		})
	}
}
