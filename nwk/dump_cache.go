package nwk

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru"
)

// dump_cache.go maintains a bounded trace-summary cache keyed by
// (protocol discriminator, message type): Record returns the full
// summary the first time a given message shape is seen and a hit-count
// line for further occurrences, for the caller to log. Neither the
// parse/build path nor the trans Dispatcher records into a DumpCache; it
// never influences parse/build results.
const dumpCacheSize = 256

// MessageKey identifies one traced message shape.
type MessageKey struct {
	Protocol    uint8
	MessageType uint8
}

// DumpCache is a bounded LRU of message trace summaries.
type DumpCache struct {
	mu    sync.Mutex
	cache *lru.Cache
}

type dumpEntry struct {
	summary string
	hits    int
}

// NewDumpCache builds a DumpCache with the standard entry budget.
func NewDumpCache() *DumpCache {
	c, err := lru.New(dumpCacheSize)
	if err != nil {
		// lru.New only errors for a non-positive size; dumpCacheSize is a
		// positive constant, so this is unreachable in practice.
		panic(err)
	}
	return &DumpCache{cache: c}
}

// Record notes one occurrence of key with the given full trace summary,
// returning the text a logger should emit: the summary itself on first
// sight, or a terse hit-count line on repeats.
func (d *DumpCache) Record(key MessageKey, summary string) string {
	d.mu.Lock()
	defer d.mu.Unlock()

	if v, ok := d.cache.Get(key); ok {
		e := v.(*dumpEntry)
		e.hits++
		return fmt.Sprintf("protocol=%d type=%d (repeat #%d, see earlier trace)", key.Protocol, key.MessageType, e.hits)
	}
	d.cache.Add(key, &dumpEntry{summary: summary, hits: 1})
	return summary
}
