package querycache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridwanfathin/invoice-document-service/internal/domain"
)

func TestKey(t *testing.T) {
	assert.Equal(t, `{"invoice":"04-021832","date":""}`, Key(domain.DocumentFilter{Invoice: "04-021832"}))
	assert.Equal(t, Key(domain.DocumentFilter{Date: "2024-01-31"}), Key(domain.DocumentFilter{Date: "2024-01-31"}))
	assert.NotEqual(t, Key(domain.DocumentFilter{Invoice: "1"}), Key(domain.DocumentFilter{Date: "1"}))
}

func TestCache_GetSet(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := New(10 * time.Second)
	c.SetClock(func() time.Time { return now })

	key := Key(domain.DocumentFilter{Invoice: "04-021832"})
	_, ok := c.Get(key)
	assert.False(t, ok)

	docs := []domain.InvoiceRecord{{Key: "04-021832", IssueDate: "2024-01-31"}}
	c.Set(key, docs)

	got, ok := c.Get(key)
	require.True(t, ok)
	assert.Equal(t, docs, got)

	now = now.Add(9 * time.Second)
	_, ok = c.Get(key)
	assert.True(t, ok)

	now = now.Add(time.Second)
	_, ok = c.Get(key)
	assert.False(t, ok, "entries expire once their age reaches the TTL")

	replacement := []domain.InvoiceRecord{}
	c.Set(key, replacement)
	got, ok = c.Get(key)
	require.True(t, ok)
	assert.Empty(t, got)
	assert.Equal(t, 1, c.Len())
}

func TestCache_SweepsExpiredEntries(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := New(time.Second)
	c.SetClock(func() time.Time { return now })

	for i := 0; i < sweepThreshold; i++ {
		c.Set(Key(domain.DocumentFilter{Invoice: time.Duration(i).String()}), nil)
	}
	require.Equal(t, sweepThreshold, c.Len())

	now = now.Add(2 * time.Second)
	c.Set("fresh", nil)
	assert.Equal(t, 1, c.Len())
}

func TestCache_NonPositiveTTLDisablesCaching(t *testing.T) {
	for _, ttl := range []time.Duration{0, -time.Second} {
		c := New(ttl)
		assert.False(t, c.Enabled())

		key := Key(domain.DocumentFilter{Invoice: "04-021832"})
		c.Set(key, []domain.InvoiceRecord{{Key: "04-021832"}})

		_, ok := c.Get(key)
		assert.False(t, ok)
		assert.Zero(t, c.Len())
	}
	assert.True(t, New(DefaultTTL).Enabled())
}
