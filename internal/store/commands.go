package store

import (
	"sync"
	"sync/atomic"

	"github.com/golang/glog"

	"github.com/fooinha/wave/pkg/wave"
)

// ExpireArg models the tri-state "expire" flag from spec.md §6: whether
// the caller explicitly asked for auto-expire, explicitly turned it off,
// or left it unspecified (keep whatever the wave already has, or the
// default on create).
type ExpireArg int

const (
	ExpireUnset ExpireArg = iota
	ExpireYes
	ExpireNo
)

// These sentinels mean "the caller did not pass this argument"; the
// matching default is applied, or the existing wave's value is kept on
// resize comparison. Grounded on spec.md §6's "N<0 other than -1", "R<-1"
// clamping rules, which treat -1 as the documented not-given marker for
// both N and R.
const (
	Unset      int64   = -1
	UnsetEps   float64 = 0
	DefaultN   int64   = 60
	DefaultEps float64 = 0.05
)

// IncrArgs is the host-facing argument set for wv.incrby (spec.md §6).
type IncrArgs struct {
	Key    string
	Incr   int64 // 0 => no increment, only the get
	Ts     int64 // 0 => now
	Expire ExpireArg
	N      int64   // Unset => default/keep
	Eps    float64 // UnsetEps => default/keep
	R      int64   // Unset => default/keep
}

// Incrby implements wv.incrby: create-on-first-use, resize-on-geometry-
// change, then incr, then answer with get(ts, fast=false) (spec.md §6).
func (s *Store) Incrby(a IncrArgs, now int64) (int64, error) {
	if a.N < -1 {
		return 0, errSyntax("N must be >= -1")
	}
	if a.R < -1 {
		return 0, errSyntax("R must be >= -1")
	}
	if a.Eps != UnsetEps && (a.Eps <= 0 || a.Eps >= 1) {
		return 0, errSyntax("eps must be in (0,1)")
	}
	if a.Ts < 0 {
		return 0, errSyntax("ts must be >= 0")
	}
	if a.Incr < 0 {
		return 0, errSyntax("incr must be >= 0")
	}

	ts := a.Ts
	if ts == 0 {
		ts = now
	}

	s.mu.Lock()
	e := s.lookup(a.Key)
	if e == nil {
		cfg := wave.Config{
			N:      orDefault(a.N, DefaultN),
			Eps:    orDefaultEps(a.Eps, DefaultEps),
			R:      orDefault(a.R, Unset),
			Expire: a.Expire == ExpireYes,
		}
		w, err := wave.New(cfg, ts)
		if err != nil {
			s.mu.Unlock()
			return 0, err
		}
		e = &entry{w: w}
		s.waves[a.Key] = e
		glog.Infof("store: created wave %q N=%d eps=%v R=%d", a.Key, cfg.N, cfg.Eps, cfg.R)
	} else {
		cur := e.w.Config()
		want := cur
		resize := false
		if a.N != Unset && a.N != cur.N {
			want.N = a.N
			resize = true
		}
		if a.Eps != UnsetEps && a.Eps != cur.Eps {
			want.Eps = a.Eps
			resize = true
		}
		if a.R != Unset && a.R != cur.R {
			want.R = a.R
			resize = true
		}
		if a.Expire != ExpireUnset {
			want.Expire = a.Expire == ExpireYes
		}
		if resize {
			if err := e.w.Resize(want, ts); err != nil {
				s.mu.Unlock()
				return 0, err
			}
			glog.Infof("store: resized wave %q to N=%d eps=%v R=%d", a.Key, want.N, want.Eps, want.R)
		} else if a.Expire != ExpireUnset && want.Expire != cur.Expire {
			e.w.SetExpire(want.Expire)
		}
	}
	w := e.w
	s.mu.Unlock()

	if a.Incr > 0 {
		if err := w.Incr(a.Incr, ts); err != nil {
			return 0, err
		}
	}

	result := w.Get(ts, false)

	if w.Config().Expire {
		last := w.DebugReport(false).Last
		s.mu.Lock()
		e.expireAtMs = (last + w.Config().N + 1) * 1000
		s.mu.Unlock()
		glog.Infof("store: armed expiry for %q at %dms", a.Key, e.expireAtMs)
	}

	return result, nil
}

// Get implements wv.get.
func (s *Store) Get(key string, ts int64, fast bool, now int64) (int64, error) {
	s.mu.Lock()
	e := s.lookup(key)
	s.mu.Unlock()
	if e == nil {
		return 0, errNoKey(key)
	}
	if ts == 0 {
		ts = now
	}
	return e.w.Get(ts, fast), nil
}

// Total implements wv.total.
func (s *Store) Total(key string) (int64, error) {
	s.mu.Lock()
	e := s.lookup(key)
	s.mu.Unlock()
	if e == nil {
		return 0, errNoKey(key)
	}
	return e.w.Total(), nil
}

// Reset implements wv.reset over one or more keys, fanning the work out
// across goroutines the way the teacher's pkg/search.WorkerPool fans
// tasks across workers — spec.md §5 explicitly allows a host to
// parallelize independent waves. Missing keys are silently skipped, as
// spec.md's wv.reset carries no NoKey error in its table.
func (s *Store) Reset(keys []string, now int64) int {
	var (
		wg    sync.WaitGroup
		count int32
	)
	for _, k := range keys {
		s.mu.Lock()
		e := s.lookup(k)
		s.mu.Unlock()
		if e == nil {
			continue
		}
		wg.Add(1)
		go func(e *entry, k string) {
			defer wg.Done()
			e.w.Reset(now)
			s.mu.Lock()
			e.expireAtMs = 0
			s.mu.Unlock()
			atomic.AddInt32(&count, 1)
			glog.Infof("store: reset wave %q", k)
		}(e, k)
	}
	wg.Wait()
	return int(count)
}

// Debug implements wv.debug.
func (s *Store) Debug(key string, showLists bool) ([]string, error) {
	s.mu.Lock()
	e := s.lookup(key)
	s.mu.Unlock()
	if e == nil {
		return nil, errNoKey(key)
	}
	return e.w.DebugLines(showLists), nil
}

func orDefault(v, deflt int64) int64 {
	if v == Unset {
		return deflt
	}
	return v
}

func orDefaultEps(v, deflt float64) float64 {
	if v == UnsetEps {
		return deflt
	}
	return v
}
