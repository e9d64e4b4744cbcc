package scenario

import (
	"context"
	"sort"

	"github.com/viant/afs"
)

// Catalog holds the scenarios the service can run: the presets plus any read from a
// scenario file. A file entry replaces the preset of the same name.
type Catalog struct {
	scenarios []Scenario
}

func NewCatalog(extra ...Scenario) *Catalog {
	byName := make(map[string]Scenario, len(builtin)+len(extra))
	for _, name := range Names() {
		s, _ := Builtin(name)
		byName[name] = *s
	}
	for _, s := range extra {
		byName[s.Name] = s
	}

	c := &Catalog{scenarios: make([]Scenario, 0, len(byName))}
	for _, s := range byName {
		c.scenarios = append(c.scenarios, s)
	}
	sort.Slice(c.scenarios, func(i, j int) bool {
		return c.scenarios[i].Name < c.scenarios[j].Name
	})
	return c
}

// LoadCatalog merges the scenario file at URL into the presets. An empty URL yields the
// presets alone.
func LoadCatalog(ctx context.Context, fs afs.Service, URL string) (*Catalog, error) {
	if URL == "" {
		return NewCatalog(), nil
	}
	scenarios, err := Load(ctx, fs, URL)
	if err != nil {
		return nil, err
	}
	return NewCatalog(scenarios...), nil
}

func (c *Catalog) Names() []string {
	names := make([]string, len(c.scenarios))
	for i, s := range c.scenarios {
		names[i] = s.Name
	}
	return names
}

// Get returns a copy of the named scenario.
func (c *Catalog) Get(name string) (*Scenario, error) {
	s, err := Find(c.scenarios, name)
	if err != nil {
		return nil, err
	}
	return s.clone(), nil
}
