package resource

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cavebound/delved/game/ai"
)

func validRow() *MonsterTemplate {
	return &MonsterTemplate{
		Name: "kobold", Glyph: "k", Speed: 10, MaxHP: 6,
		AggroRange: 7, Behavior: "SIMPLE", Intelligence: 2, Mean: true,
	}
}

func TestNewBestiary_Valid(t *testing.T) {
	b, err := NewBestiary([]*MonsterTemplate{validRow()})
	require.NoError(t, err)
	require.Equal(t, 1, b.Len())

	tpl := b.ByName("kobold")
	require.NotNil(t, tpl)
	assert.Equal(t, ai.TagSimple, tpl.Tag())
	assert.Equal(t, 'k', tpl.GlyphRune())
	assert.Same(t, tpl, b.ByGlyph('k'))
}

func TestNewBestiary_RejectsBadRows(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*MonsterTemplate)
	}{
		{"empty name", func(m *MonsterTemplate) { m.Name = "" }},
		{"multi-rune glyph", func(m *MonsterTemplate) { m.Glyph = "ko" }},
		{"zero speed", func(m *MonsterTemplate) { m.Speed = 0 }},
		{"negative speed", func(m *MonsterTemplate) { m.Speed = -3 }},
		{"zero max hp", func(m *MonsterTemplate) { m.MaxHP = 0 }},
		{"negative aggro", func(m *MonsterTemplate) { m.AggroRange = -1 }},
		{"flee threshold above 1", func(m *MonsterTemplate) { m.FleeThreshold = 1.5 }},
		{"erratic chance below 0", func(m *MonsterTemplate) { m.ErraticChance = -0.1 }},
		{"unknown behavior", func(m *MonsterTemplate) { m.Behavior = "SNEAKY" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			row := validRow()
			tc.mutate(row)
			_, err := NewBestiary([]*MonsterTemplate{row})
			assert.Error(t, err)
		})
	}
}

func TestNewBestiary_RejectsDuplicates(t *testing.T) {
	a, b := validRow(), validRow()
	b.Glyph = "x"
	_, err := NewBestiary([]*MonsterTemplate{a, b})
	assert.Error(t, err, "duplicate name")

	c, d := validRow(), validRow()
	d.Name = "other"
	_, err = NewBestiary([]*MonsterTemplate{c, d})
	assert.Error(t, err, "duplicate glyph")
}

func TestLoadBestiary_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bestiary.csv")
	csv := `name,glyph,speed,max_hp,aggro_range,behavior,flee_threshold,erratic_chance,intelligence,mean
bat,b,15,3,6,ERRATIC,0,0.5,1,false
kobold,k,10,6,7,SIMPLE,0,0,2,true
`
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	b, err := LoadBestiary(path)
	require.NoError(t, err)
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, 0.5, b.ByName("bat").ErraticChance)
	assert.True(t, b.ByName("kobold").Mean)
}

func TestLoadBestiary_BadRowFailsLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bestiary.csv")
	csv := `name,glyph,speed,max_hp,aggro_range,behavior,flee_threshold,erratic_chance,intelligence,mean
broken,x,0,3,6,SIMPLE,0,0,1,false
`
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))
	_, err := LoadBestiary(path)
	assert.Error(t, err)
}

func TestPickForDepth_WindowGrowsWithDepth(t *testing.T) {
	rows := []*MonsterTemplate{}
	names := []string{"a", "b", "c", "d", "e", "f"}
	for i, n := range names {
		r := validRow()
		r.Name = n
		r.Glyph = string(rune('a' + i))
		r.Intelligence = i
		rows = append(rows, r)
	}
	b, err := NewBestiary(rows)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	// Depth 1 window is the 4 dimmest templates
	seen := map[string]bool{}
	for i := 0; i < 500; i++ {
		seen[b.PickForDepth(1, rng).Name] = true
	}
	assert.False(t, seen["e"] || seen["f"], "deep templates must not spawn shallow")
	assert.True(t, seen["a"] && seen["d"])

	// Deep levels draw from the whole table
	seen = map[string]bool{}
	for i := 0; i < 500; i++ {
		seen[b.PickForDepth(10, rng).Name] = true
	}
	assert.True(t, seen["f"])
}
