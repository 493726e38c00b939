// Package shapes loads block shape sets for Blast.
// This package depends on core but core does not depend on shapes.
package shapes

import (
	"embed"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-blast/internal/games/blast/core"
	"github.com/vovakirdan/tui-blast/internal/games/blast/shapes/formats"
)

//go:embed sets/*.yaml
var builtinFS embed.FS

// DefaultSetID is the set used when nothing else is configured.
const DefaultSetID = "standard"

// Set is a loaded shape set.
type Set struct {
	ID       string
	Name     string
	Shapes   []core.Shape
	Weights  []int
	FilePath string // Empty for built-in sets
}

// Picker returns a weighted random picker over the set.
func (s Set) Picker(rng *rand.Rand) *core.WeightedPicker {
	return core.NewWeightedPicker(rng, s.Shapes, s.Weights)
}

// Shape returns the shape with the given ID.
func (s Set) Shape(id string) (core.Shape, bool) {
	for _, sh := range s.Shapes {
		if sh.ID() == id {
			return sh, true
		}
	}
	return core.Shape{}, false
}

// Loader handles loading shape sets from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new shape-set loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all shape-set files.
// Returns sets sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Set, error) {
	var sets []Set

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !isSupportedExtension(strings.ToLower(filepath.Ext(path))) {
			return nil
		}

		set, err := l.LoadFile(path)
		if err != nil {
			// Skip invalid files
			return nil
		}
		sets = append(sets, set)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(sets, func(i, j int) bool {
		return sets[i].ID < sets[j].ID
	})
	return sets, nil
}

// LoadFile loads a single shape-set file.
func (l *Loader) LoadFile(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Set{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	set, err := parseByExtension(data, strings.ToLower(filepath.Ext(path)))
	if err != nil {
		return Set{}, fmt.Errorf("parsing file %s: %w", path, err)
	}
	s := fromParsed(set)
	s.FilePath = path
	return s, nil
}

// LoadByID loads a specific set by ID.
func (l *Loader) LoadByID(id string) (Set, error) {
	sets, err := l.LoadAll()
	if err != nil {
		return Set{}, err
	}
	for _, s := range sets {
		if s.ID == id {
			return s, nil
		}
	}
	return Set{}, fmt.Errorf("shape set not found: %s", id)
}

// ListIDs returns all set IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	sets, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(sets))
	for i, s := range sets {
		ids[i] = s.ID
	}
	return ids, nil
}

// Builtin returns an embedded shape set by ID.
func Builtin(id string) (Set, error) {
	data, err := builtinFS.ReadFile("sets/" + id + ".yaml")
	if err != nil {
		return Set{}, fmt.Errorf("shape set not found: %s", id)
	}
	parsed, err := formats.ParseYAML(data)
	if err != nil {
		return Set{}, fmt.Errorf("builtin set %s: %w", id, err)
	}
	return fromParsed(parsed), nil
}

// BuiltinIDs lists the embedded set IDs in sorted order.
func BuiltinIDs() []string {
	entries, err := builtinFS.ReadDir("sets")
	if err != nil {
		return nil
	}
	var ids []string
	for _, e := range entries {
		ids = append(ids, strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
	}
	sort.Strings(ids)
	return ids
}

// Default returns the standard built-in set. It panics if the embedded
// content is broken, which tests guard against.
func Default() Set {
	s, err := Builtin(DefaultSetID)
	if err != nil {
		panic(err)
	}
	return s
}

// Resolve loads a set from an explicit file or directory path when given,
// otherwise from the embedded sets.
func Resolve(id, path string) (Set, error) {
	if path == "" {
		if id == "" {
			id = DefaultSetID
		}
		return Builtin(id)
	}

	info, err := os.Stat(path)
	if err != nil {
		return Set{}, fmt.Errorf("shape path %s: %w", path, err)
	}
	if !info.IsDir() {
		return NewLoader(filepath.Dir(path)).LoadFile(path)
	}
	if id == "" {
		id = DefaultSetID
	}
	return NewLoader(path).LoadByID(id)
}

func fromParsed(p formats.ShapeSet) Set {
	return Set{
		ID:      p.ID,
		Name:    p.Name,
		Shapes:  p.Shapes,
		Weights: p.Weights,
	}
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.ShapeSet, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.ShapeSet{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
