package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/greenhouse/internal/state"
)

// View selects how the plant sections are drawn.
type View string

const (
	ViewList  View = "list"
	ViewTable View = "table"
)

// Plant seeds one record at startup.
type Plant struct {
	Name     string `toml:"name"`
	Favorite bool   `toml:"favorite"`
}

// Config holds Greenhouse's startup settings.
type Config struct {
	LogFile  string
	LogDebug bool
	View     View
	Theme    string
	Sidebar  []Plant
	Grouped  []Plant
}

const (
	defaultConfigPath = "~/.config/greenhouse/config.toml"
	defaultLogFile    = "~/.local/state/greenhouse/greenhouse.log"
)

// DefaultPlants is the record source used when the config names none.
func DefaultPlants() []Plant {
	return []Plant{
		{Name: "Asparagus Fern"},
		{Name: "False Shamrock Plant"},
		{Name: "English Ivy"},
	}
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		LogFile: mustExpand(defaultLogFile),
		View:    ViewList,
		Sidebar: DefaultPlants(),
		Grouped: DefaultPlants(),
	}
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		LogFile  string  `toml:"log_file"`
		LogDebug bool    `toml:"log_debug"`
		View     string  `toml:"view"`
		Theme    string  `toml:"theme"`
		Sidebar  []Plant `toml:"sidebar"`
		Grouped  []Plant `toml:"grouped"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}
	cfg.LogDebug = raw.LogDebug

	view, err := ParseView(raw.View)
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.View = view
	cfg.Theme = strings.TrimSpace(raw.Theme)

	if raw.Sidebar != nil {
		cfg.Sidebar = cleanPlants(raw.Sidebar)
	}
	if raw.Grouped != nil {
		cfg.Grouped = cleanPlants(raw.Grouped)
	}
	return cfg, nil
}

// ParseView accepts "list" or "table"; blank means list.
func ParseView(value string) (View, error) {
	switch View(strings.ToLower(strings.TrimSpace(value))) {
	case "", ViewList:
		return ViewList, nil
	case ViewTable:
		return ViewTable, nil
	}
	return "", fmt.Errorf("unknown view %q", value)
}

// Records converts the configured plants for section into store records.
func (c Config) Records(section state.Section) []state.Record {
	plants := c.Sidebar
	if section == state.Grouped {
		plants = c.Grouped
	}
	out := make([]state.Record, 0, len(plants))
	for _, p := range plants {
		out = append(out, state.NewRecord(p.Name, p.Favorite))
	}
	return out
}

func cleanPlants(plants []Plant) []Plant {
	out := make([]Plant, 0, len(plants))
	for _, p := range plants {
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
