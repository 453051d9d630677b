package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveID(t *testing.T) {
	ids := []string{"aaa111", "aab222", "bbb333"}
	names := []string{"Bar Shift", "Kitchen", "Delivery"}

	t.Run("exact name case-insensitive", func(t *testing.T) {
		id, err := resolveID("work type", "bar shift", ids, names)
		require.NoError(t, err)
		assert.Equal(t, "aaa111", id)
	})

	t.Run("exact id", func(t *testing.T) {
		id, err := resolveID("work type", "bbb333", ids, names)
		require.NoError(t, err)
		assert.Equal(t, "bbb333", id)
	})

	t.Run("unique prefix", func(t *testing.T) {
		id, err := resolveID("work type", "bb", ids, names)
		require.NoError(t, err)
		assert.Equal(t, "bbb333", id)
	})

	t.Run("ambiguous prefix", func(t *testing.T) {
		_, err := resolveID("work type", "aa", ids, names)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ambiguous")
	})

	t.Run("not found", func(t *testing.T) {
		_, err := resolveID("work type", "zzz", ids, names)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := resolveID("work type", "", ids, names)
		require.Error(t, err)
	})
}

func TestParseItemSpec(t *testing.T) {
	t.Run("task only gets defaults", func(t *testing.T) {
		item, err := parseItemSpec("sweep floor")
		require.NoError(t, err)
		assert.Equal(t, "sweep floor", item.Task)
		assert.Equal(t, "execution", string(item.Category))
		assert.Equal(t, 10, item.EstimatedMin)
		assert.False(t, item.Mandatory)
	})

	t.Run("full spec with mandatory marker", func(t *testing.T) {
		item, err := parseItemSpec("!lock safe:safety:5")
		require.NoError(t, err)
		assert.Equal(t, "lock safe", item.Task)
		assert.Equal(t, "safety", string(item.Category))
		assert.Equal(t, 5, item.EstimatedMin)
		assert.True(t, item.Mandatory)
	})

	t.Run("unknown category rejected", func(t *testing.T) {
		_, err := parseItemSpec("sweep:bogus")
		require.Error(t, err)
	})

	t.Run("bad minutes rejected", func(t *testing.T) {
		_, err := parseItemSpec("sweep:execution:zero")
		require.Error(t, err)
	})
}
