package resource

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Loader loads all static game data from a data directory:
//
//	<dir>/bestiary.csv   — behavior profile table
//	<dir>/maps/*.map     — level layouts, depth taken from lexical order
//
// Loading is strict: malformed profiles or maps fail the whole load.
type Loader struct {
	dataDir string
	logger  *zap.Logger

	Bestiary *Bestiary
	Maps     map[string]*LevelMap
	mapNames []string
}

// NewLoader creates a Loader rooted at dataDir.
func NewLoader(dataDir string, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{dataDir: dataDir, logger: logger, Maps: make(map[string]*LevelMap)}
}

// Load reads the bestiary and every map.
func (ld *Loader) Load() error {
	b, err := LoadBestiary(filepath.Join(ld.dataDir, "bestiary.csv"))
	if err != nil {
		return err
	}
	ld.Bestiary = b
	ld.logger.Info("bestiary loaded", zap.Int("templates", b.Len()))

	pattern := filepath.Join(ld.dataDir, "maps", "*.map")
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("maps: %w", err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("maps: no files match %s", pattern)
	}
	for depth, path := range paths { // Glob returns sorted paths
		name := strings.TrimSuffix(filepath.Base(path), ".map")
		lm, err := LoadLevelMap(path, name, depth+1)
		if err != nil {
			return err
		}
		if err := ld.checkGlyphs(lm); err != nil {
			return err
		}
		ld.Maps[name] = lm
		ld.mapNames = append(ld.mapNames, name)
	}
	ld.logger.Info("maps loaded", zap.Strings("names", ld.mapNames))
	return nil
}

// MapNames returns map names in depth order.
func (ld *Loader) MapNames() []string { return ld.mapNames }

// checkGlyphs verifies every monster glyph on a map has a bestiary entry,
// so level build cannot fail later at runtime.
func (ld *Loader) checkGlyphs(lm *LevelMap) error {
	for y, row := range lm.Rows {
		for x, ch := range []rune(row) {
			switch ch {
			case GlyphWall, GlyphFloor, GlyphDoorClosed, GlyphDoorOpen,
				GlyphDoorSecret, GlyphGold, GlyphPlayer, GlyphVoid:
				continue
			}
			if ld.Bestiary.ByGlyph(ch) == nil {
				return fmt.Errorf("map %s: unknown glyph %q at (%d,%d)", lm.Name, ch, x, y)
			}
		}
	}
	return nil
}

// MustExist is a startup convenience: verifies the data directory exists.
func (ld *Loader) MustExist() error {
	if _, err := os.Stat(ld.dataDir); err != nil {
		return fmt.Errorf("data dir: %w", err)
	}
	return nil
}
