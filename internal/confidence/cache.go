package confidence

import (
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// defaultCacheTTL bounds how long a memoized score is trusted before a
// fresh computation is required, the same lazy-expiry idiom the teacher's
// metrics cache uses rather than a background sweep.
const defaultCacheTTL = 2 * time.Hour

// scoreCacheEntry is one memoized Score, keyed by pattern identity and the
// posterior/factor values that produced it.
type scoreCacheEntry struct {
	score    Score
	cachedAt int64 // UnixNano, read/written atomically
}

// scoreCache memoizes Score computations so repeated scoring of an
// unchanged pattern (same content hash, same posterior) is a lookup
// instead of a beta-inverse-CDF recomputation. Lock-free via sync.Map,
// mirroring the teacher's MetricsCache shape.
type scoreCache struct {
	entries sync.Map // map[string]*scoreCacheEntry
	ttl     int64    // nanoseconds

	hits   int64
	misses int64
}

func newScoreCache(ttl time.Duration) *scoreCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &scoreCache{ttl: ttl.Nanoseconds()}
}

// scoreCacheKey identifies a score by pattern and the exact posterior and
// factor inputs that would produce it — the Bayesian analog of the
// teacher's content-hash key, since here it's the posterior (not file
// bytes) that changes between scans.
func scoreCacheKey(patternID string, posterior Posterior, factors Factors) string {
	var b strings.Builder
	b.Grow(len(patternID) + 64)
	b.WriteString(patternID)
	b.WriteByte(':')
	b.WriteString(strconv.FormatFloat(posterior.Alpha, 'g', 6, 64))
	b.WriteByte(':')
	b.WriteString(strconv.FormatFloat(posterior.Beta, 'g', 6, 64))
	b.WriteByte(':')
	b.WriteString(strconv.FormatFloat(factors.Momentum, 'g', 6, 64))
	return b.String()
}

func (c *scoreCache) get(patternID string, posterior Posterior, factors Factors) (Score, bool) {
	key := scoreCacheKey(patternID, posterior, factors)
	val, ok := c.entries.Load(key)
	if !ok {
		atomic.AddInt64(&c.misses, 1)
		return Score{}, false
	}

	entry := val.(*scoreCacheEntry)
	if time.Now().UnixNano()-atomic.LoadInt64(&entry.cachedAt) > c.ttl {
		c.entries.Delete(key)
		atomic.AddInt64(&c.misses, 1)
		return Score{}, false
	}

	atomic.AddInt64(&c.hits, 1)
	return entry.score, true
}

func (c *scoreCache) put(patternID string, posterior Posterior, factors Factors, score Score) {
	key := scoreCacheKey(patternID, posterior, factors)
	c.entries.Store(key, &scoreCacheEntry{score: score, cachedAt: time.Now().UnixNano()})
}
