package wave

import "fmt"

// Reset purges L and every level queue and zeroes the counters, keeping
// (N, eps, R, expire) (spec §4.5).
func (w *Wave) Reset(now int64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.resetCounters(now)
}

// Resize overwrites (N, eps, R, expire) and purges all state (spec
// §4.5: callers are expected to treat resize as a semantic reset).
func (w *Wave) Resize(cfg Config, now int64) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.initGeometry(cfg)
	w.resetCounters(now)
	return nil
}

// SetExpire updates only the expire flag (spec §6: "if expire is
// explicit at argc=4, the wave's expire field is updated"), without
// touching geometry or purging state — unlike Resize, this is not a
// semantic reset.
func (w *Wave) SetExpire(expire bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cfg.Expire = expire
}

// Config returns a copy of the wave's current geometry.
func (w *Wave) Config() Config {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cfg
}

// Total returns the raw running total, mod M (wv.total in spec §6).
func (w *Wave) Total() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.total
}

// Stats is a read-only snapshot of wave counters, grounded on the
// teacher's WorkerPool.Stats() accessor shape (SPEC_FULL.md supplement).
type Stats struct {
	TriplesLive    int     `json:"triples_live"`
	LevelOccupancy []int   `json:"level_occupancy"`
	Pos            int64   `json:"pos"`
	Total          int64   `json:"total"`
	Z              int64   `json:"z"`
}

// Stats reports live counters for introspection and for tests asserting
// invariant I5 (no level queue exceeds its capacity).
func (w *Wave) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	occ := make([]int, len(w.levels))
	live := 0
	for i, lv := range w.levels {
		occ[i] = lv.len()
		live += occ[i]
	}
	return Stats{
		TriplesLive:    live,
		LevelOccupancy: occ,
		Pos:            w.pos,
		Total:          w.total,
		Z:              w.z,
	}
}

// DebugReport is the SPEC_FULL.md machine-readable counterpart to
// DebugLines (spec §4.6 only mandates human-readable text).
type DebugReport struct {
	Config Config     `json:"config"`
	M      int64      `json:"m"`
	Cap    int        `json:"cap"`
	Start  int64      `json:"start"`
	Last   int64      `json:"last"`
	Stats  Stats      `json:"stats"`
	Levels [][]Triple `json:"levels,omitempty"`
	Chron  []Triple   `json:"chron,omitempty"`
}

// Triple is the exported, read-only view of an internal triple, used
// only for debug output.
type Triple struct {
	Pos int64 `json:"pos"`
	V   int64 `json:"v"`
	Z   int64 `json:"z"`
}

// DebugReport builds a structured dump of this wave's state. Level and
// chron contents are populated only when showLists is true (spec §4.6).
func (w *Wave) DebugReport(showLists bool) DebugReport {
	w.mu.Lock()
	defer w.mu.Unlock()

	rep := DebugReport{
		Config: w.cfg,
		M:      w.m,
		Cap:    w.cap,
		Start:  w.start,
		Last:   w.last,
		Stats:  w.statsLocked(),
	}
	if !showLists {
		return rep
	}
	rep.Levels = make([][]Triple, len(w.levels))
	for i, lv := range w.levels {
		for e := lv.l.Front(); e != nil; e = e.Next() {
			t := e.Value.(*triple)
			rep.Levels[i] = append(rep.Levels[i], Triple{t.pos, t.v, t.z})
		}
	}
	w.chron.walk(func(t *triple) bool {
		rep.Chron = append(rep.Chron, Triple{t.pos, t.v, t.z})
		return true
	})
	return rep
}

func (w *Wave) statsLocked() Stats {
	occ := make([]int, len(w.levels))
	live := 0
	for i, lv := range w.levels {
		occ[i] = lv.len()
		live += occ[i]
	}
	return Stats{
		TriplesLive:    live,
		LevelOccupancy: occ,
		Pos:            w.pos,
		Total:          w.total,
		Z:              w.z,
	}
}

// DebugLines renders the human-readable dump spec §4.6 asks for: wave
// configuration, and — if showLists — each level queue and L.
func (w *Wave) DebugLines(showLists bool) []string {
	rep := w.DebugReport(showLists)

	lines := []string{
		fmt.Sprintf("N=%d eps=%v R=%d expire=%v", rep.Config.N, rep.Config.Eps, rep.Config.resolvedR(), rep.Config.Expire),
		fmt.Sprintf("M=%d levels=%d cap=%d", rep.M, len(rep.Stats.LevelOccupancy), rep.Cap),
		fmt.Sprintf("start=%d last=%d pos=%d total=%d z=%d", rep.Start, rep.Last, rep.Stats.Pos, rep.Stats.Total, rep.Stats.Z),
		fmt.Sprintf("triples-live=%d occupancy=%v", rep.Stats.TriplesLive, rep.Stats.LevelOccupancy),
	}
	if !showLists {
		return lines
	}
	for i, lv := range rep.Levels {
		lines = append(lines, fmt.Sprintf("l[%d]: %v", i, lv))
	}
	lines = append(lines, fmt.Sprintf("L: %v", rep.Chron))
	return lines
}
