package catalog

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_RoundRobinWraps(t *testing.T) {
	records := []Record{
		rec("Shows", "a.jpg"),
		rec("Shows", "b.jpg"),
		rec("Shows", "c.jpg"),
		rec("retratos", "r.jpg"),
	}
	pool := NewPool(records, seeded())

	var got []string
	for i := 0; i < 4; i++ {
		url, ok := pool.Next("shows")
		require.True(t, ok)
		got = append(got, url)
	}

	// one full pass covers every image once
	firstPass := slices.Clone(got[:3])
	slices.Sort(firstPass)
	assert.Equal(t, []string{records[0].PublicURL, records[1].PublicURL, records[2].PublicURL}, firstPass)

	// request N+1 repeats request 1
	assert.Equal(t, got[0], got[3])
}

func TestPool_BucketsAreIndependent(t *testing.T) {
	records := []Record{rec("Shows", "a.jpg"), rec("retratos", "r.jpg")}
	pool := NewPool(records, seeded())

	url, ok := pool.Next("retratos")
	require.True(t, ok)
	assert.Equal(t, records[1].PublicURL, url)

	url, ok = pool.Next("Shows")
	require.True(t, ok)
	assert.Equal(t, records[0].PublicURL, url)

	_, ok = pool.Next("gastronomia")
	assert.False(t, ok)
}

func TestPool_ImageFallbackChain(t *testing.T) {
	pool := NewPool(nil, seeded())
	assert.Equal(t, "/placeholder.jpg", pool.Image("retratos", "/placeholder.jpg"))
	assert.Empty(t, pool.Image("retratos", ""))

	records := []Record{rec("retratos", "r.jpg")}
	pool = NewPool(records, seeded())
	assert.Equal(t, records[0].PublicURL, pool.Image("Retratos", "/placeholder.jpg"))
}

func TestPool_IgnoresRecordsWithoutURL(t *testing.T) {
	records := []Record{{Name: "Shows/a.jpg", Category: "Shows"}}
	pool := NewPool(records, seeded())

	_, ok := pool.Next("Shows")
	assert.False(t, ok)
	assert.Equal(t, "fallback", pool.Image("Shows", "fallback"))
}
