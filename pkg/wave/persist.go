package wave

import (
	"bytes"
	"encoding/gob"
	"os"
)

// frozenTriple is the wire shape of a triple for gob encoding. level,
// lElem, and qElem are derived, not persisted: Restore recomputes the
// level from (z, v) via the same levelSelector used at insertion time,
// and rebuilds both list handles from scratch.
type frozenTriple struct {
	Pos int64
	V   int64
	Z   int64
}

// Snapshot is the gob-serializable shape of a wave: config, counters,
// and L in chronological order (every level queue is implied by L plus
// the deterministic level-selection formula, so it isn't stored
// separately).
type Snapshot struct {
	Cfg     Config
	Start   int64
	Last    int64
	Pos     int64
	Total   int64
	Z       int64
	Triples []frozenTriple
}

func init() {
	gob.Register(Snapshot{})
	gob.Register(frozenTriple{})
}

// Snapshot captures w's full externally-visible state.
func (w *Wave) Snapshot() *Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := &Snapshot{
		Cfg:   w.cfg,
		Start: w.start,
		Last:  w.last,
		Pos:   w.pos,
		Total: w.total,
		Z:     w.z,
	}
	w.chron.walk(func(t *triple) bool {
		s.Triples = append(s.Triples, frozenTriple{Pos: t.pos, V: t.v, Z: t.z})
		return true
	})
	return s
}

// Restore reconstructs a wave from a Snapshot. Triples are replayed in
// chronological order; each one's level is recomputed from the total
// immediately before it landed (t.z - t.v), which levelSelector maps
// back onto the exact level it originally chose, so the rebuilt wave
// answers Get identically to the one that produced the snapshot.
func Restore(s *Snapshot) (*Wave, error) {
	if err := s.Cfg.Validate(); err != nil {
		return nil, err
	}
	w := &Wave{}
	w.initGeometry(s.Cfg)
	w.chron = newChronList()
	w.start = s.Start
	w.last = s.Last
	w.pos = s.Pos
	w.total = s.Total
	w.z = s.Z

	for _, ft := range s.Triples {
		totalBefore := w.mask(ft.Z - ft.V)
		j := levelSelector(totalBefore, ft.V, len(w.levels))
		t := &triple{pos: ft.Pos, v: ft.V, z: ft.Z, level: j}
		w.levels[j].pushFront(t)
		w.chron.pushBack(t)
		if w.levels[j].full() {
			return nil, errInternal("restored snapshot violates level %d capacity", j)
		}
	}
	return w, nil
}

// Encode gob-encodes a snapshot of w.
func (w *Wave) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(w.Snapshot()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reconstructs a wave from gob-encoded bytes produced by Encode.
func Decode(data []byte) (*Wave, error) {
	var s Snapshot
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&s); err != nil {
		return nil, err
	}
	return Restore(&s)
}

// SaveFile gob-encodes w's snapshot to path, grounded on the teacher's
// SaveCheckpoint.
func (w *Wave) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewEncoder(f).Encode(w.Snapshot())
}

// LoadFile reconstructs a wave from a file written by SaveFile,
// grounded on the teacher's LoadCheckpoint.
func LoadFile(path string) (*Wave, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var s Snapshot
	if err := gob.NewDecoder(f).Decode(&s); err != nil {
		return nil, err
	}
	return Restore(&s)
}
