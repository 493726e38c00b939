package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SourceEmbedded is the source reported when no config file was found.
const SourceEmbedded = "embedded"

// LoadBlast loads Blast configuration.
// Search order: customPath -> ~/.blast/configs/blast.yaml -> ./configs/blast.yaml -> embedded default.
// Fields missing from a file keep their default values.
func LoadBlast(customPath string) (BlastConfig, error) {
	cfg, _, err := LoadBlastFrom(customPath)
	return cfg, err
}

// LoadBlastFrom is LoadBlast that also reports which file was used, or
// SourceEmbedded. An explicit customPath must load; files on the search
// path that fail to parse are skipped.
func LoadBlastFrom(customPath string) (BlastConfig, string, error) {
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return BlastConfig{}, "", err
		}
		return cfg, customPath, nil
	}

	for _, path := range SearchPaths() {
		if cfg, err := loadFile(path); err == nil {
			return cfg, path, nil
		}
	}

	cfg, err := parseBlast(defaultBlastYAML)
	if err != nil {
		return DefaultBlastConfig(), SourceEmbedded, nil
	}
	return cfg, SourceEmbedded, nil
}

// SearchPaths lists, in order, the files tried when no path is given.
func SearchPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".blast", "configs", "blast.yaml"))
	}
	return append(paths, filepath.Join("configs", "blast.yaml"))
}

func loadFile(path string) (BlastConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return BlastConfig{}, fmt.Errorf("config: cannot read %s: %w", path, err)
	}
	cfg, err := parseBlast(data)
	if err != nil {
		return BlastConfig{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// parseBlast decodes data over the defaults and validates the result.
// Unknown keys are rejected so typos do not pass silently.
func parseBlast(data []byte) (BlastConfig, error) {
	cfg := DefaultBlastConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return BlastConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return BlastConfig{}, err
	}
	return cfg, nil
}

// ApplyBlastPreset modifies the config based on a difficulty preset.
func ApplyBlastPreset(cfg *BlastConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Board.Width, cfg.Board.Height = 10, 10
		cfg.Tray.Slots = 3
		cfg.Tray.RandomRotation = false
	case DifficultyNormal:
		cfg.Board.Width, cfg.Board.Height = 8, 8
	case DifficultyHard:
		cfg.Board.Width, cfg.Board.Height = 8, 8
		cfg.Tray.RandomRotation = true
	}
}
