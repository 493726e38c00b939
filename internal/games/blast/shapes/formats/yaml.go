// Package formats provides shape-set file format parsers.
package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-blast/internal/games/blast/core"
)

// YAMLSet represents the YAML structure for a shape-set file.
type YAMLSet struct {
	ID     string      `yaml:"id"`
	Name   string      `yaml:"name"`
	Shapes []YAMLShape `yaml:"shapes"`
}

// YAMLShape is one shape entry. Exactly one of Cells or Rows is set.
type YAMLShape struct {
	ID     string   `yaml:"id"`
	Name   string   `yaml:"name,omitempty"`
	Color  string   `yaml:"color,omitempty"`
	Weight int      `yaml:"weight,omitempty"`
	Cells  [][2]int `yaml:"cells,omitempty"` // [[x, y], ...]
	Rows   []string `yaml:"rows,omitempty"`  // "#" filled, "." or " " empty; y grows downward
}

// ShapeSet is a parsed and validated set of shapes.
type ShapeSet struct {
	ID      string
	Name    string
	Shapes  []core.Shape
	Weights []int
}

// ParseYAML parses and validates a YAML shape set.
func ParseYAML(data []byte) (ShapeSet, error) {
	var ys YAMLSet
	if err := yaml.Unmarshal(data, &ys); err != nil {
		return ShapeSet{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if ys.ID == "" {
		return ShapeSet{}, fmt.Errorf("shape set has no id")
	}
	if len(ys.Shapes) == 0 {
		return ShapeSet{}, fmt.Errorf("shape set %q has no shapes", ys.ID)
	}

	set := ShapeSet{
		ID:   ys.ID,
		Name: ys.Name,
	}
	if set.Name == "" {
		set.Name = ys.ID
	}

	seen := make(map[string]bool, len(ys.Shapes))
	for i, y := range ys.Shapes {
		id := y.ID
		if id == "" {
			id = fmt.Sprintf("%s-%d", ys.ID, i+1)
		}
		if seen[id] {
			return ShapeSet{}, fmt.Errorf("shape %q: duplicate id", id)
		}
		seen[id] = true

		s, err := y.toShape(id)
		if err != nil {
			return ShapeSet{}, fmt.Errorf("shape %q: %w", id, err)
		}

		weight := y.Weight
		if weight <= 0 {
			weight = 1
		}
		set.Shapes = append(set.Shapes, s)
		set.Weights = append(set.Weights, weight)
	}

	return set, nil
}

func (y YAMLShape) toShape(id string) (core.Shape, error) {
	color, ok := core.ParseColor(y.Color)
	if !ok {
		return core.Shape{}, fmt.Errorf("unknown color %q", y.Color)
	}

	var cells []core.Coord
	switch {
	case len(y.Cells) > 0 && len(y.Rows) > 0:
		return core.Shape{}, fmt.Errorf("both cells and rows given")
	case len(y.Rows) > 0:
		cells, ok = cellsFromRows(y.Rows)
		if !ok {
			return core.Shape{}, fmt.Errorf("rows may only contain '#', '.' or ' '")
		}
	default:
		for _, c := range y.Cells {
			cells = append(cells, core.C(c[0], c[1]))
		}
	}

	s, err := core.NewShape(id, color, cells...)
	if err != nil {
		return core.Shape{}, err
	}
	return s.WithName(y.Name), nil
}

// cellsFromRows converts row art into offsets.
func cellsFromRows(rows []string) ([]core.Coord, bool) {
	var cells []core.Coord
	for y, row := range rows {
		for x, ch := range row {
			switch ch {
			case '#':
				cells = append(cells, core.C(x, y))
			case '.', ' ':
			default:
				return nil, false
			}
		}
	}
	return cells, true
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
