package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"tags2puml/internal/puml"
)

// An optional tags2puml.toml can retitle the diagrams, replace the skinparam
// lines and rename the output files. Without one, the defaults reproduce the
// stock output exactly; the profile never affects tag parsing.
const profileFileName = "tags2puml.toml"

type styleProfile struct {
	Path   string
	Root   string
	Config profileConfig
}

type profileConfig struct {
	Diagram diagramConfig `toml:"diagram"`
	Output  outputConfig  `toml:"output"`
}

type diagramConfig struct {
	Title     string   `toml:"title"`
	Skinparam []string `toml:"skinparam"`
}

type outputConfig struct {
	Functions string `toml:"functions"`
	Classes   string `toml:"classes"`
}

func (c diagramConfig) style() puml.Style {
	return puml.Style{Title: c.Title, Skinparam: c.Skinparam}
}

func findStyleProfile(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, profileFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadStyleProfile(startDir string) (*styleProfile, bool, error) {
	profilePath, ok, err := findStyleProfile(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadProfileConfig(profilePath)
	if err != nil {
		return nil, true, err
	}
	return &styleProfile{
		Path:   profilePath,
		Root:   filepath.Dir(profilePath),
		Config: cfg,
	}, true, nil
}

func loadProfileConfig(path string) (profileConfig, error) {
	var cfg profileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return profileConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return cfg, nil
}
