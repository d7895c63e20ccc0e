package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/stemarcade/internal/problemgen"
	"github.com/abhisek/stemarcade/internal/session"
)

//go:embed games.yaml
var defaultPresets []byte

// ErrUnknownGame is returned by Presets.Find for a name with no preset.
var ErrUnknownGame = errors.New("unknown game")

// Preset describes one game: which kinds it mixes and its session settings.
type Preset struct {
	Name        string   `yaml:"name"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Kinds       []string `yaml:"kinds"`
	Difficulty  string   `yaml:"difficulty"`
	Questions   int      `yaml:"questions"`
	Duration    int      `yaml:"duration"`
	BaseScore   int      `yaml:"base_score"`
	StreakBonus int      `yaml:"streak_bonus"`
}

// Presets is the ordered list of games.
type Presets []Preset

type presetFile struct {
	Games Presets `yaml:"games"`
}

// LoadPresets reads presets from path, or the built-in set when path is empty.
func LoadPresets(path string) (Presets, error) {
	data := defaultPresets
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read presets: %w", err)
		}
	}
	return ParsePresets(data)
}

// ParsePresets decodes and validates a presets document.
func ParsePresets(data []byte) (Presets, error) {
	var f presetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse presets: %w", err)
	}
	if len(f.Games) == 0 {
		return nil, fmt.Errorf("parse presets: no games defined")
	}
	seen := make(map[string]bool, len(f.Games))
	for _, p := range f.Games {
		if seen[p.Name] {
			return nil, fmt.Errorf("parse presets: duplicate game %q", p.Name)
		}
		seen[p.Name] = true
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("parse presets: %w", err)
		}
	}
	return f.Games, nil
}

// Validate checks a single preset.
func (p Preset) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("game without a name")
	}
	if len(p.Kinds) == 0 {
		return fmt.Errorf("game %q: no kinds", p.Name)
	}
	for _, k := range p.Kinds {
		if _, err := problemgen.ParseKind(k); err != nil {
			return fmt.Errorf("game %q: %w", p.Name, err)
		}
	}
	if _, err := problemgen.ParseDifficulty(p.Difficulty); err != nil {
		return fmt.Errorf("game %q: %w", p.Name, err)
	}
	if p.Questions < 1 {
		return fmt.Errorf("game %q: questions must be positive", p.Name)
	}
	if p.Duration < 1 {
		return fmt.Errorf("game %q: duration must be at least one second", p.Name)
	}
	if p.BaseScore < 0 || p.StreakBonus < 0 {
		return fmt.Errorf("game %q: scores must not be negative", p.Name)
	}
	return nil
}

// Find returns the preset with the given name.
func (ps Presets) Find(name string) (Preset, error) {
	for _, p := range ps {
		if p.Name == name {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: %q", ErrUnknownGame, name)
}

// Names returns the game names in file order.
func (ps Presets) Names() []string {
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.Name
	}
	return names
}

// SessionConfig converts a validated preset into a session config.
func (p Preset) SessionConfig() session.Config {
	kinds := make([]problemgen.Kind, len(p.Kinds))
	for i, k := range p.Kinds {
		kinds[i] = problemgen.Kind(k)
	}
	d, _ := problemgen.ParseDifficulty(p.Difficulty)
	return session.Config{
		Game:          p.Name,
		QuestionCount: p.Questions,
		Duration:      p.Duration,
		BaseScore:     p.BaseScore,
		StreakBonus:   p.StreakBonus,
		Difficulty:    d,
		Kinds:         kinds,
	}
}
