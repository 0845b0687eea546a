package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the optional tracker settings read from a YAML file
type Config struct {
	Village    string      `yaml:"village"`
	Builders   int         `yaml:"builders"`
	WallLimits map[int]int `yaml:"wall_limits"`
	Categories []string    `yaml:"categories"`
}

// LoadConfig reads and validates a YAML config file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML config bytes
func ParseConfig(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid config yaml: %w", err)
	}
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ValidateConfig checks that every configured value is usable
func ValidateConfig(c *Config) error {
	if _, ok := ParseVillage(c.Village); !ok {
		return fmt.Errorf("unknown village: %q", c.Village)
	}
	if c.Builders < 0 {
		return fmt.Errorf("builders must not be negative, got %d", c.Builders)
	}
	for level, limit := range c.WallLimits {
		if level <= 0 {
			return fmt.Errorf("wall limit level must be positive, got %d", level)
		}
		if limit < 0 {
			return fmt.Errorf("wall limit for level %d must not be negative, got %d", level, limit)
		}
	}
	for _, name := range c.Categories {
		if _, ok := ParseProgressCategory(name); !ok {
			return fmt.Errorf("unknown category: %q", name)
		}
	}
	return nil
}

// VillageOrDefault returns the configured village, Home when unset
func (c *Config) VillageOrDefault() Village {
	if c == nil {
		return Home
	}
	v, ok := ParseVillage(c.Village)
	if !ok {
		return Home
	}
	return v
}

// ProgressCategories returns the configured dashboard filter, or nil for all
func (c *Config) ProgressCategories() []ProgressCategory {
	if c == nil || len(c.Categories) == 0 {
		return nil
	}
	out := make([]ProgressCategory, 0, len(c.Categories))
	for _, name := range c.Categories {
		if pc, ok := ParseProgressCategory(name); ok {
			out = append(out, pc)
		}
	}
	return out
}
