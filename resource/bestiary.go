package resource

import (
	"fmt"
	"math/rand"
	"os"
	"sort"

	"github.com/cavebound/delved/game/ai"
	"github.com/gocarina/gocsv"
)

// MonsterTemplate is one bestiary row: the immutable behavior profile for a
// monster type. Runtime monsters copy their defaults from here.
type MonsterTemplate struct {
	Name          string  `csv:"name"`
	Glyph         string  `csv:"glyph"`
	Speed         int     `csv:"speed"`
	MaxHP         int     `csv:"max_hp"`
	AggroRange    int     `csv:"aggro_range"`
	Behavior      string  `csv:"behavior"`
	FleeThreshold float64 `csv:"flee_threshold"`
	ErraticChance float64 `csv:"erratic_chance"`
	// Intelligence orders templates for depth-based wandering spawns:
	// smarter, meaner types appear deeper.
	Intelligence int  `csv:"intelligence"`
	Mean         bool `csv:"mean"`

	tag ai.BehaviorTag // parsed from Behavior during validation
}

// Tag returns the parsed behavior tag.
func (t *MonsterTemplate) Tag() ai.BehaviorTag { return t.tag }

// GlyphRune returns the single-rune map glyph.
func (t *MonsterTemplate) GlyphRune() rune {
	for _, r := range t.Glyph {
		return r
	}
	return '?'
}

// Bestiary is the loaded, validated behavior-profile table, immutable after
// load. Lookup is by name or map glyph.
type Bestiary struct {
	templates []*MonsterTemplate
	byName    map[string]*MonsterTemplate
	byGlyph   map[rune]*MonsterTemplate
}

// LoadBestiary reads and validates a bestiary CSV. Any malformed row is a
// load-time error — bad profiles never reach the scheduler.
func LoadBestiary(path string) (*Bestiary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("bestiary: %w", err)
	}
	defer f.Close()

	var rows []*MonsterTemplate
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("bestiary %s: %w", path, err)
	}
	return NewBestiary(rows)
}

// NewBestiary validates templates and builds the lookup tables.
func NewBestiary(rows []*MonsterTemplate) (*Bestiary, error) {
	b := &Bestiary{
		templates: rows,
		byName:    make(map[string]*MonsterTemplate, len(rows)),
		byGlyph:   make(map[rune]*MonsterTemplate, len(rows)),
	}
	for i, t := range rows {
		if err := validateTemplate(t); err != nil {
			return nil, fmt.Errorf("bestiary row %d (%s): %w", i+1, t.Name, err)
		}
		if _, dup := b.byName[t.Name]; dup {
			return nil, fmt.Errorf("bestiary row %d: duplicate name %q", i+1, t.Name)
		}
		if _, dup := b.byGlyph[t.GlyphRune()]; dup {
			return nil, fmt.Errorf("bestiary row %d: duplicate glyph %q", i+1, t.Glyph)
		}
		b.byName[t.Name] = t
		b.byGlyph[t.GlyphRune()] = t
	}
	// Stable depth ordering for wandering spawns.
	sort.SliceStable(b.templates, func(i, j int) bool {
		return b.templates[i].Intelligence < b.templates[j].Intelligence
	})
	return b, nil
}

func validateTemplate(t *MonsterTemplate) error {
	if t.Name == "" {
		return fmt.Errorf("empty name")
	}
	if len([]rune(t.Glyph)) != 1 {
		return fmt.Errorf("glyph must be a single rune, got %q", t.Glyph)
	}
	// A non-positive speed would either never act or act unboundedly.
	if t.Speed <= 0 {
		return fmt.Errorf("speed must be > 0, got %d", t.Speed)
	}
	if t.MaxHP <= 0 {
		return fmt.Errorf("max_hp must be > 0, got %d", t.MaxHP)
	}
	if t.AggroRange < 0 {
		return fmt.Errorf("aggro_range must be >= 0, got %d", t.AggroRange)
	}
	if t.FleeThreshold < 0 || t.FleeThreshold > 1 {
		return fmt.Errorf("flee_threshold must be in [0,1], got %g", t.FleeThreshold)
	}
	if t.ErraticChance < 0 || t.ErraticChance > 1 {
		return fmt.Errorf("erratic_chance must be in [0,1], got %g", t.ErraticChance)
	}
	tag, err := ai.ParseBehaviorTag(t.Behavior)
	if err != nil {
		return err
	}
	t.tag = tag
	return nil
}

// ByName returns the template with the given name, or nil.
func (b *Bestiary) ByName(name string) *MonsterTemplate { return b.byName[name] }

// ByGlyph returns the template with the given map glyph, or nil.
func (b *Bestiary) ByGlyph(glyph rune) *MonsterTemplate { return b.byGlyph[glyph] }

// Len returns the number of templates.
func (b *Bestiary) Len() int { return len(b.templates) }

// PickForDepth selects a template for a wandering spawn at the given depth:
// a uniform draw from the templates whose intelligence rank fits the depth
// window (shallow levels see only the dimmer half of the table).
func (b *Bestiary) PickForDepth(depth int, rng *rand.Rand) *MonsterTemplate {
	if len(b.templates) == 0 {
		return nil
	}
	hi := depth + 3
	if hi > len(b.templates) {
		hi = len(b.templates)
	}
	if hi < 1 {
		hi = 1
	}
	return b.templates[rng.Intn(hi)]
}
