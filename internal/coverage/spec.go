package coverage

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// entitySelectorKeys is the closed set of selector names a zone may declare.
var entitySelectorKeys = map[string]struct{}{
	"amounts":      {},
	"durations":    {},
	"law":          {},
	"jurisdiction": {},
}

// SpecCache loads the zone specification once and serves it read-only.
// Reload is explicit: Invalidate then Load. A failed load means "coverage
// tracking disabled for this run", never a fatal error for analysis.
type SpecCache struct {
	path string

	mu   sync.Mutex
	spec *Spec
}

func NewSpecCache(path string) *SpecCache {
	return &SpecCache{path: path}
}

// Load returns the cached specification, reading and validating it on first
// call. Validation failures are returned as errors with no spec cached, so a
// later Load after fixing the file can succeed.
func (c *SpecCache) Load() (*Spec, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.spec != nil {
		return c.spec, nil
	}
	if c.path == "" {
		return nil, fmt.Errorf("no coverage specification configured")
	}

	raw, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("read coverage spec: %w", err)
	}
	var spec Spec
	if err := yaml.Unmarshal(raw, &spec); err != nil {
		return nil, fmt.Errorf("parse coverage spec: %w", err)
	}
	if err := validateSpec(&spec); err != nil {
		return nil, fmt.Errorf("validate coverage spec: %w", err)
	}

	c.spec = &spec
	return c.spec, nil
}

// Invalidate drops the cached specification so the next Load re-reads it.
func (c *SpecCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.spec = nil
}

// validateSpec is the schema-level gate: duplicate zone ids, unknown entity
// selector keys, and a missing or non-positive version are load errors.
func validateSpec(spec *Spec) error {
	if spec.Version <= 0 {
		return fmt.Errorf("version must be positive, got %d", spec.Version)
	}
	seen := make(map[string]struct{}, len(spec.Zones))
	for _, zone := range spec.Zones {
		if zone.ID == "" {
			return fmt.Errorf("zone %q has no zone_id", zone.Name)
		}
		if _, dup := seen[zone.ID]; dup {
			return fmt.Errorf("duplicate zone_id %q", zone.ID)
		}
		seen[zone.ID] = struct{}{}
		for key := range zone.EntitySelectors {
			if _, ok := entitySelectorKeys[key]; !ok {
				return fmt.Errorf("zone %q: unknown entity selector %q", zone.ID, key)
			}
		}
	}
	return nil
}
