package wave

import "sync"

// Config describes the geometry of a wave, as supplied by the host at
// create or resize time (spec §3, §6).
type Config struct {
	N      int64   `json:"n"`      // window size, > 0
	Eps    float64 `json:"eps"`    // relative error target, 0 < eps < 1
	R      int64   `json:"r"`      // value bound, > 0; <= 0 means maxIncrement(N)
	Expire bool    `json:"expire"`
}

// Validate checks Config against the clamping rules in spec §6 and
// returns a *Error with CodeSyntax on the first violation. Hosts other
// than internal/store can reuse this before calling New or Resize.
func (c Config) Validate() error {
	if c.N <= 0 {
		return errSyntax("N must be > 0, got %d", c.N)
	}
	if c.Eps <= 0 || c.Eps >= 1 {
		return errSyntax("eps must be in (0,1), got %v", c.Eps)
	}
	if c.R < -1 {
		return errSyntax("R must be >= -1, got %d", c.R)
	}
	return nil
}

func (c Config) resolvedR() int64 {
	if c.R <= 0 {
		return maxIncrement(c.N)
	}
	return c.R
}

// Wave is the owning root described in spec §3: counters, config, the
// chronological list L, and the per-level queues, guarded by a mutex so
// every exported call is atomic with respect to every other call on the
// same wave (spec §5).
type Wave struct {
	mu sync.Mutex

	cfg Config
	m   int64 // modulus M
	cap int   // per-level queue capacity

	start int64
	last  int64
	pos   int64
	total int64
	z     int64

	chron  *chronList
	levels []*levelQueue
}

// New creates a wave with the given config, anchored at ts (spec §3
// "Lifecycle", §4.5 implicitly: a fresh wave starts exactly like a reset
// one).
func New(cfg Config, ts int64) (*Wave, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w := &Wave{}
	w.initGeometry(cfg)
	w.resetCounters(ts)
	return w, nil
}

// initGeometry (re)computes M, level count, and level-queue capacity
// from cfg, and allocates fresh, empty level queues. Shared by New and
// Resize.
func (w *Wave) initGeometry(cfg Config) {
	w.cfg = cfg
	r := cfg.resolvedR()
	w.m = modulus(cfg.N, r)
	levels := numLevels(cfg.N, cfg.Eps, r)
	w.cap = levelCap(cfg.Eps)
	w.levels = make([]*levelQueue, levels)
	for i := range w.levels {
		w.levels[i] = newLevelQueue(w.cap)
	}
}

// resetCounters purges L, every level queue, and zeroes the running
// counters, anchoring start/last at now. Shared by New and Reset.
func (w *Wave) resetCounters(now int64) {
	w.chron = newChronList()
	for _, lv := range w.levels {
		*lv = *newLevelQueue(w.cap)
	}
	w.start = now
	w.last = now
	w.pos = 0
	w.total = 0
	w.z = 0
}

// mask reduces x into [0, M).
func (w *Wave) mask(x int64) int64 {
	return x & (w.m - 1)
}

// numLevels returns the configured level count (for debug/tests).
func (w *Wave) numLevels() int {
	return len(w.levels)
}
