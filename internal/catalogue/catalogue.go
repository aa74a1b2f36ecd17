package catalogue

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/yukimura/cfp-tracker/internal/conference"
)

// Catalogue is the persisted conference collection.
type Catalogue struct {
	Conferences []*conference.Conference `json:"conferences"`
	Themes      []string                 `json:"themes"`
	LastUpdated string                   `json:"last_updated,omitempty"`
}

// Load reads a catalogue JSON file from disk.
func Load(path string) (*Catalogue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalogue: %w", err)
	}

	var cat Catalogue
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parsing catalogue: %w", err)
	}

	// Ensure every information map is usable
	for _, conf := range cat.Conferences {
		if conf.Information == nil {
			conf.Information = make(map[int]conference.YearRecord)
		}
	}

	return &cat, nil
}

// Save writes the catalogue to disk as indented JSON and stamps
// LastUpdated.
func (c *Catalogue) Save(path string) error {
	c.LastUpdated = time.Now().Format("2006-01-02 15:04:05")

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding catalogue: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing catalogue: %w", err)
	}

	return nil
}
