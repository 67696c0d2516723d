package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiffTagIDs(t *testing.T) {
	t.Run("plain replacement", func(t *testing.T) {
		add, remove := DiffTagIDs([]uint{1, 2, 3}, []uint{2, 3, 4})
		assert.Equal(t, []uint{4}, add)
		assert.Equal(t, []uint{1}, remove)
	})

	t.Run("identical sets change nothing", func(t *testing.T) {
		add, remove := DiffTagIDs([]uint{1, 2}, []uint{1, 2})
		assert.Empty(t, add)
		assert.Empty(t, remove)
	})

	t.Run("empty desired removes everything", func(t *testing.T) {
		add, remove := DiffTagIDs([]uint{1, 2}, nil)
		assert.Empty(t, add)
		assert.ElementsMatch(t, []uint{1, 2}, remove)
	})

	t.Run("empty current adds everything", func(t *testing.T) {
		add, remove := DiffTagIDs(nil, []uint{7, 8})
		assert.ElementsMatch(t, []uint{7, 8}, add)
		assert.Empty(t, remove)
	})

	t.Run("duplicate desired ids are applied once", func(t *testing.T) {
		add, remove := DiffTagIDs([]uint{1}, []uint{2, 2, 1})
		assert.Equal(t, []uint{2}, add)
		assert.Empty(t, remove)
	})

	t.Run("applying the diff is idempotent", func(t *testing.T) {
		current := []uint{1, 2, 3}
		desired := []uint{3, 4}

		add, remove := DiffTagIDs(current, desired)
		next := applyDiff(current, add, remove)
		assert.ElementsMatch(t, desired, next)

		add, remove = DiffTagIDs(next, desired)
		assert.Empty(t, add)
		assert.Empty(t, remove)
	})
}

func applyDiff(current, add, remove []uint) []uint {
	removed := make(map[uint]bool, len(remove))
	for _, id := range remove {
		removed[id] = true
	}
	var out []uint
	for _, id := range current {
		if !removed[id] {
			out = append(out, id)
		}
	}
	return append(out, add...)
}
