package grid

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Position of a cell as (row, col), row 0 at the top.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) Hash() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}

// UnmarshalYAML reads a position from a [row, col] pair.
func (p *Position) UnmarshalYAML(value *yaml.Node) error {
	var pair [2]int
	if err := value.Decode(&pair); err != nil {
		return err
	}
	p.Row = pair[0]
	p.Col = pair[1]
	return nil
}

// Level fixes the mission map: grid size, fire cells and the two victim
// classes. The exit is always the top-left corner and the robot starts at
// the bottom-right.
type Level struct {
	Name string     `yaml:"name"`
	Size int        `yaml:"grid-size"`
	Fire []Position `yaml:"fire"`
	// Victims in immediate danger, worth the higher reward
	Critical []Position `yaml:"critical"`
	// Victims in a safe spot, worth the lower reward
	Stable []Position `yaml:"stable"`
}

func EasyLevel() Level {
	return Level{
		Name:     "easy",
		Size:     4,
		Fire:     []Position{{0, 2}, {0, 3}, {1, 0}, {3, 2}},
		Critical: []Position{{2, 2}},
		Stable:   []Position{{1, 1}},
	}
}

func HardLevel() Level {
	return Level{
		Name: "hard",
		Size: 6,
		Fire: []Position{
			{0, 4}, {0, 5}, {1, 5}, {2, 0}, {2, 2}, {3, 0},
			{3, 4}, {3, 5}, {4, 0}, {4, 3}, {5, 0},
		},
		Critical: []Position{{3, 2}, {1, 3}},
		Stable:   []Position{{5, 2}, {0, 2}},
	}
}

// LevelFor resolves a builtin level name or loads a YAML level file.
func LevelFor(name string) (Level, error) {
	switch name {
	case "easy":
		return EasyLevel(), nil
	case "hard":
		return HardLevel(), nil
	}
	return LoadLevel(name)
}

// LoadLevel reads a custom level from a YAML file.
func LoadLevel(path string) (Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("error reading level file: %s", err)
	}
	level := Level{}
	if err := yaml.Unmarshal(data, &level); err != nil {
		return Level{}, fmt.Errorf("error parsing level file: %s", err)
	}
	if err := level.Validate(); err != nil {
		return Level{}, err
	}
	if level.Name == "" {
		base := filepath.Base(path)
		level.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return level, nil
}

func (l Level) Exit() Position {
	return Position{0, 0}
}

func (l Level) Start() Position {
	return Position{l.Size - 1, l.Size - 1}
}

// Victims counts the victims of the level, the score needed for a
// successful mission.
func (l Level) Victims() int {
	return len(l.Critical) + len(l.Stable)
}

// StateHashes lists the keys of every cell of the grid.
func (l Level) StateHashes() []string {
	hashes := make([]string, 0, l.Size*l.Size)
	for r := 0; r < l.Size; r++ {
		for c := 0; c < l.Size; c++ {
			hashes = append(hashes, Position{r, c}.Hash())
		}
	}
	return hashes
}

func (l Level) Validate() error {
	if l.Size < 2 {
		return fmt.Errorf("grid size %d too small", l.Size)
	}
	cells := [][]Position{l.Fire, l.Critical, l.Stable}
	for _, set := range cells {
		for _, p := range set {
			if p.Row < 0 || p.Row >= l.Size || p.Col < 0 || p.Col >= l.Size {
				return fmt.Errorf("position %s outside the %dx%d grid", p.Hash(), l.Size, l.Size)
			}
			if p == l.Exit() || p == l.Start() {
				return fmt.Errorf("position %s overlaps the exit or start", p.Hash())
			}
		}
	}
	return nil
}
