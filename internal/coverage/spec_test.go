package coverage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSpecFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "zones.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const validZonesYAML = `version: 1
zones:
  - zone_id: gov-law
    zone_name: Governing law
    label_any:
      - governing law
      - choice of law
    entity_selectors:
      law: true
    rule_ids:
      - governing_law
    required: true
  - zone_id: payment-terms
    zone_name: Payment terms
    label_any:
      - payment
    entity_selectors:
      amounts: true
      durations: true
    rule_ids:
      - payment
`

func TestSpecCacheLoad(t *testing.T) {
	cache := NewSpecCache(writeSpecFile(t, validZonesYAML))

	spec, err := cache.Load()
	require.NoError(t, err)
	require.Len(t, spec.Zones, 2)
	assert.Equal(t, 1, spec.Version)
	assert.Equal(t, "gov-law", spec.Zones[0].ID)
	assert.True(t, spec.Zones[0].Required)
	assert.True(t, spec.Zones[1].EntitySelectors["amounts"])

	// Second load serves the cached spec.
	again, err := cache.Load()
	require.NoError(t, err)
	assert.Same(t, spec, again)
}

func TestSpecCacheInvalidate(t *testing.T) {
	path := writeSpecFile(t, validZonesYAML)
	cache := NewSpecCache(path)

	first, err := cache.Load()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("version: 2\nzones: []\n"), 0o600))
	cache.Invalidate()

	second, err := cache.Load()
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Equal(t, 2, second.Version)
}

func TestSpecCacheNoPath(t *testing.T) {
	_, err := NewSpecCache("").Load()
	assert.Error(t, err)
}

func TestSpecCacheMissingFile(t *testing.T) {
	_, err := NewSpecCache(filepath.Join(t.TempDir(), "absent.yaml")).Load()
	assert.Error(t, err)
}

func TestValidateSpecRejections(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			"missing version",
			"zones:\n  - zone_id: a\n",
			"version",
		},
		{
			"duplicate zone id",
			"version: 1\nzones:\n  - zone_id: a\n  - zone_id: a\n",
			"duplicate zone_id",
		},
		{
			"empty zone id",
			"version: 1\nzones:\n  - zone_name: unnamed\n",
			"zone_id",
		},
		{
			"unknown entity selector",
			"version: 1\nzones:\n  - zone_id: a\n    entity_selectors:\n      emails: true\n",
			"unknown entity selector",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := NewSpecCache(writeSpecFile(t, tt.yaml))
			_, err := cache.Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSpecCacheRecoversAfterFix(t *testing.T) {
	path := writeSpecFile(t, "version: 0\nzones: []\n")
	cache := NewSpecCache(path)

	_, err := cache.Load()
	require.Error(t, err)

	// Fix the file; a failed load cached nothing, so no Invalidate is needed.
	require.NoError(t, os.WriteFile(path, []byte(validZonesYAML), 0o600))
	spec, err := cache.Load()
	require.NoError(t, err)
	assert.Equal(t, 1, spec.Version)
}
