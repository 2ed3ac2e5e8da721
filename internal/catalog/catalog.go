// Package catalog loads predefined card specs from YAML files so callers
// can mint by name instead of shipping a full stat block per request.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/peterkuimelis/mintarena/internal/engine"
)

// File represents the top-level YAML structure.
type File struct {
	Cards []engine.CardSpec `yaml:"cards"`
}

// Catalog is a name-indexed set of card specs.
type Catalog struct {
	names []string
	specs map[string]engine.CardSpec
}

// Load parses a YAML catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse builds a catalog from YAML bytes.
func Parse(data []byte) (*Catalog, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog YAML: %w", err)
	}

	c := &Catalog{specs: make(map[string]engine.CardSpec)}
	for _, spec := range f.Cards {
		if spec.Name == "" {
			return nil, fmt.Errorf("catalog card with empty name")
		}
		if _, dup := c.specs[spec.Name]; dup {
			return nil, fmt.Errorf("duplicate catalog card %q", spec.Name)
		}
		c.specs[spec.Name] = spec
		c.names = append(c.names, spec.Name)
	}
	return c, nil
}

// Lookup returns the spec for a card name.
func (c *Catalog) Lookup(name string) (engine.CardSpec, bool) {
	spec, ok := c.specs[name]
	return spec, ok
}

// Names returns all card names in file order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.names...)
}

// Len returns the number of cards in the catalog.
func (c *Catalog) Len() int {
	return len(c.specs)
}
