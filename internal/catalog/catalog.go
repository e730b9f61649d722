// Package catalog loads the seed list of activities the registry starts with.
package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/mergington/activities/internal/domain/activity"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultCatalog []byte

type file struct {
	Activities []entry `yaml:"activities"`
}

type entry struct {
	Name            string   `yaml:"name"`
	Description     string   `yaml:"description"`
	Schedule        string   `yaml:"schedule"`
	MaxParticipants int      `yaml:"max_participants"`
	Participants    []string `yaml:"participants"`
}

// Default returns the built-in catalog.
func Default() ([]activity.Activity, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog from path, or returns the built-in catalog when path is empty.
func Load(path string) ([]activity.Activity, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog. Entries are returned in file order and are
// not validated; the store validates them when it is built.
func Parse(data []byte) ([]activity.Activity, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(f.Activities) == 0 {
		return nil, fmt.Errorf("parse catalog: no activities defined")
	}

	out := make([]activity.Activity, 0, len(f.Activities))
	for _, e := range f.Activities {
		out = append(out, activity.Activity{
			Name:            e.Name,
			Description:     e.Description,
			Schedule:        e.Schedule,
			MaxParticipants: e.MaxParticipants,
			Participants:    e.Participants,
		})
	}
	return out, nil
}
