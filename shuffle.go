package timetable

import "math/rand"

// shufflePool permutes the pool in place with a Fisher-Yates shuffle.
// The rng is owned by the caller so a fixed seed reproduces the order.
func shufflePool(pool []string, rng *rand.Rand) {
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
}

// drawer hands out subjects for each weekday from the shared pool.
// The cursor persists across days and wraps around the pool.
type drawer struct {
	pool   []string
	cursor int
}

// draw picks up to n subjects for one day. A draw that would give a subject
// its third session of the day is rejected; after DrawRetryBudget draws the
// pool is scanned once for an eligible subject, preferring subjects not yet
// used today. Only when none exists is an over-cap repeat accepted, and
// overflow reports that it happened.
func (d *drawer) draw(n int) (picks []string, overflow bool) {
	if len(d.pool) == 0 || n <= 0 {
		return nil, false
	}
	counts := make(map[string]int, n)
	take := func(s string) {
		picks = append(picks, s)
		counts[s]++
	}

	for attempts := 0; len(picks) < n && attempts < DrawRetryBudget; attempts++ {
		s := d.pool[d.cursor%len(d.pool)]
		d.cursor++
		if counts[s] < SameDayRepeatCap {
			take(s)
		}
	}

	for len(picks) < n {
		if s, ok := d.eligible(counts); ok {
			take(s)
			continue
		}
		s := d.pool[d.cursor%len(d.pool)]
		d.cursor++
		take(s)
		overflow = true
	}
	return picks, overflow
}

// eligible scans the pool from the cursor for a subject unused today, then
// for one still under the repeat cap.
func (d *drawer) eligible(counts map[string]int) (string, bool) {
	for limit := 1; limit <= SameDayRepeatCap; limit++ {
		for i := 0; i < len(d.pool); i++ {
			s := d.pool[(d.cursor+i)%len(d.pool)]
			if counts[s] < limit {
				return s, true
			}
		}
	}
	return "", false
}
