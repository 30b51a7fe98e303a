package docsift

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Profile is a reusable label-set definition loaded from a YAML or JSON
// file: the labels to classify against, an optional threshold override,
// and optional keyword-scorer cue words.
type Profile struct {
	Name      string              `json:"name,omitempty" yaml:"name,omitempty"`
	Labels    []string            `json:"labels" yaml:"labels"`
	Threshold *float64            `json:"threshold,omitempty" yaml:"threshold,omitempty"`
	Lexicon   map[string][]string `json:"lexicon,omitempty" yaml:"lexicon,omitempty"`
}

// LoadProfile reads a profile from a .yaml/.yml or .json file.
func LoadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("read profile: %w", err)
	}

	var p Profile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &p); err != nil {
			return Profile{}, fmt.Errorf("parse YAML profile: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &p); err != nil {
			return Profile{}, fmt.Errorf("parse JSON profile: %w", err)
		}
	default:
		return Profile{}, fmt.Errorf("unsupported profile format: %q (use .yaml or .json)", filepath.Ext(path))
	}

	if len(p.Labels) == 0 {
		return Profile{}, fmt.Errorf("profile %s defines no labels", path)
	}
	return p, nil
}

// Apply folds the profile into a config: labels and lexicon always, the
// threshold only when the profile sets one.
func (p Profile) Apply(c *Config) {
	c.Labels = append([]string(nil), p.Labels...)
	if p.Threshold != nil {
		c.Threshold = *p.Threshold
	}
	if len(p.Lexicon) > 0 {
		c.Lexicon = p.Lexicon
	}
}
