// Package lunarcache memoizes solar→lunar conversions behind a bounded LRU.
package lunarcache

import (
	"context"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"

	"github.com/guttosm/amlich/internal/logger"
	"github.com/guttosm/amlich/internal/lunar"
)

// maxPrefetchWorkers bounds concurrent month warm-ups.
const maxPrefetchWorkers = 4

type key struct {
	day, month, year int
	tz               float64
}

// Stats is a snapshot of cache effectiveness.
type Stats struct {
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
	Size   int    `json:"size"`
}

// Cache wraps a lunar.Converter and remembers its results.
// It is safe for concurrent use.
type Cache struct {
	next   lunar.Converter
	lru    *lru.Cache[key, lunar.LunarDate]
	hits   atomic.Uint64
	misses atomic.Uint64
}

// New returns a Cache of the given capacity in front of next.
func New(next lunar.Converter, size int) (*Cache, error) {
	l, err := lru.New[key, lunar.LunarDate](size)
	if err != nil {
		return nil, err
	}
	return &Cache{next: next, lru: l}, nil
}

// SolarToLunar implements lunar.Converter.
func (c *Cache) SolarToLunar(d lunar.SolarDate, tz float64) lunar.LunarDate {
	k := key{day: d.Day, month: d.Month, year: d.Year, tz: tz}
	if v, ok := c.lru.Get(k); ok {
		c.hits.Add(1)
		return v
	}
	c.misses.Add(1)
	v := c.next.SolarToLunar(d, tz)
	c.lru.Add(k, v)
	return v
}

// Stats returns hit/miss counters and the current entry count.
func (c *Cache) Stats() Stats {
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load(), Size: c.lru.Len()}
}

// Purge drops every cached entry. Counters are kept.
func (c *Cache) Purge() { c.lru.Purge() }

// PrefetchAround converts every day of the solar months within span of
// (year, month), excluding the month itself, so neighbouring month views hit the cache.
func (c *Cache) PrefetchAround(ctx context.Context, year, month, span int, tz float64) error {
	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxPrefetchWorkers)

	for off := -span; off <= span; off++ {
		if off == 0 {
			continue
		}
		y, m := shiftMonth(year, month, off)
		g.Go(func() error {
			return c.warmMonth(ctx, y, m, tz)
		})
	}

	err := g.Wait()
	logger.L().Debug().
		Int("year", year).
		Int("month", month).
		Int("span", span).
		Dur("took", time.Since(start)).
		Err(err).
		Msg("lunar cache prefetch finished")
	return err
}

func (c *Cache) warmMonth(ctx context.Context, year, month int, tz float64) error {
	for d := 1; d <= DaysInMonth(year, month); d++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.SolarToLunar(lunar.SolarDate{Day: d, Month: month, Year: year}, tz)
	}
	return nil
}

func shiftMonth(year, month, off int) (int, int) {
	idx := year*12 + (month - 1) + off
	return idx / 12, idx%12 + 1
}

// DaysInMonth returns the length of a proleptic Gregorian month.
func DaysInMonth(year, month int) int {
	y, m := shiftMonth(year, month, 1)
	return lunar.JulianDayNumber(1, m, y) - lunar.JulianDayNumber(1, month, year)
}
