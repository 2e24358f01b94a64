package aggregator

import (
	"sort"

	"github.com/Trippy3/pr-comments-fetcher/internal/domain"
)

// counter counts occurrences while remembering the order in which keys
// first appeared. Go maps iterate in random order, so the ranking needs
// that side list to break ties the same way every time.
type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

// Add increments the count for a key
func (c *counter) Add(key string) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

// Top returns the n highest-counted entries, descending. Ties keep
// first-seen order.
func (c *counter) Top(n int) []domain.RankedEntry {
	entries := make([]domain.RankedEntry, 0, len(c.order))
	for _, key := range c.order {
		entries = append(entries, domain.RankedEntry{Name: key, Count: c.counts[key]})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
