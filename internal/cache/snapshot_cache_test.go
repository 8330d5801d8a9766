package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSnapshotKey(t *testing.T) {
	c := NewSnapshotCache(nil, time.Minute)

	t.Run("selection order does not change the key", func(t *testing.T) {
		a := c.key(1, []string{"Antioquia", "Cundinamarca"})
		b := c.key(1, []string{"Cundinamarca", "Antioquia"})
		assert.Equal(t, a, b)
	})

	t.Run("generation rolls the key over", func(t *testing.T) {
		a := c.key(1, []string{"Antioquia"})
		b := c.key(2, []string{"Antioquia"})
		assert.NotEqual(t, a, b)
	})

	t.Run("different selections get different keys", func(t *testing.T) {
		a := c.key(1, []string{"Antioquia"})
		b := c.key(1, []string{"Cundinamarca"})
		assert.NotEqual(t, a, b)
	})

	t.Run("key does not mutate the selection", func(t *testing.T) {
		selection := []string{"Cundinamarca", "Antioquia"}
		_ = c.key(1, selection)
		assert.Equal(t, []string{"Cundinamarca", "Antioquia"}, selection)
	})
}
