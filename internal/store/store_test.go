package store

import (
	"strings"
	"testing"

	"github.com/fooinha/wave/pkg/wave"
)

func TestIncrbyCreatesOnFirstUse(t *testing.T) {
	s := New()
	total, err := s.Incrby(IncrArgs{Key: "k", Incr: 5, Ts: 1000, N: Unset, Eps: UnsetEps, R: Unset}, 1000)
	if err != nil {
		t.Fatalf("Incrby: %v", err)
	}
	if total != 5 {
		t.Fatalf("total = %d, want 5", total)
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
}

func TestIncrbyAccumulatesWithoutGeometryChange(t *testing.T) {
	s := New()
	a := IncrArgs{Key: "k", Incr: 3, N: Unset, Eps: UnsetEps, R: Unset}
	if _, err := s.Incrby(a, 1000); err != nil {
		t.Fatalf("Incrby #1: %v", err)
	}
	a.Ts = 1001
	total, err := s.Incrby(a, 1001)
	if err != nil {
		t.Fatalf("Incrby #2: %v", err)
	}
	if total != 6 {
		t.Fatalf("total = %d, want 6", total)
	}
}

func TestIncrbyGeometryChangeTriggersResize(t *testing.T) {
	s := New()
	a := IncrArgs{Key: "k", Incr: 3, Ts: 1000, N: 60, Eps: UnsetEps, R: Unset}
	if _, err := s.Incrby(a, 1000); err != nil {
		t.Fatalf("Incrby #1: %v", err)
	}

	a.N = 120
	a.Incr = 0
	if _, err := s.Incrby(a, 1001); err != nil {
		t.Fatalf("Incrby #2: %v", err)
	}

	s.mu.Lock()
	e := s.lookup("k")
	s.mu.Unlock()
	if e.w.Config().N != 120 {
		t.Fatalf("N = %d, want 120 after resize", e.w.Config().N)
	}
	if e.w.Total() != 0 {
		t.Fatalf("total = %d, want 0: resize must purge state", e.w.Total())
	}
}

func TestIncrbyExpireOnlyChangeDoesNotPurge(t *testing.T) {
	s := New()
	a := IncrArgs{Key: "k", Incr: 7, Ts: 1000, N: 60, Eps: UnsetEps, R: Unset}
	if _, err := s.Incrby(a, 1000); err != nil {
		t.Fatalf("Incrby #1: %v", err)
	}

	a.Incr = 0
	a.Expire = ExpireYes
	if _, err := s.Incrby(a, 1001); err != nil {
		t.Fatalf("Incrby #2: %v", err)
	}

	s.mu.Lock()
	e := s.lookup("k")
	s.mu.Unlock()
	if !e.w.Config().Expire {
		t.Fatalf("Expire flag not set")
	}
	if e.w.Total() != 7 {
		t.Fatalf("total = %d, want 7: expire-only change must not purge state", e.w.Total())
	}
}

func TestIncrbyArmsExpireDeadline(t *testing.T) {
	s := New()
	a := IncrArgs{Key: "k", Incr: 1, Ts: 1000, Expire: ExpireYes, N: 60, Eps: UnsetEps, R: Unset}
	if _, err := s.Incrby(a, 1000); err != nil {
		t.Fatalf("Incrby: %v", err)
	}
	want := (int64(1000) + 60 + 1) * 1000
	if got := s.ExpireDeadline("k"); got != want {
		t.Fatalf("ExpireDeadline = %d, want %d", got, want)
	}
}

func TestIncrbyRejectsBadArgs(t *testing.T) {
	s := New()
	cases := []IncrArgs{
		{Key: "k", N: -2, Eps: UnsetEps, R: Unset},
		{Key: "k", N: Unset, Eps: UnsetEps, R: -2},
		{Key: "k", N: Unset, Eps: 1.5, R: Unset},
		{Key: "k", N: Unset, Eps: UnsetEps, R: Unset, Ts: -1},
		{Key: "k", N: Unset, Eps: UnsetEps, R: Unset, Incr: -1},
	}
	for i, a := range cases {
		if _, err := s.Incrby(a, 1000); err == nil {
			t.Errorf("case %d: want error, got nil", i)
		}
	}
}

func TestGetUnknownKey(t *testing.T) {
	s := New()
	if _, err := s.Get("missing", 0, false, 1000); err == nil {
		t.Fatal("want error for unknown key")
	} else if werr, ok := err.(*wave.Error); !ok || werr.Code != wave.CodeNoKey {
		t.Fatalf("err = %v, want CodeNoKey", err)
	}
}

func TestTotalUnknownKey(t *testing.T) {
	s := New()
	if _, err := s.Total("missing"); err == nil {
		t.Fatal("want error for unknown key")
	}
}

func TestResetPurgesMultipleKeysConcurrently(t *testing.T) {
	s := New()
	keys := []string{"a", "b", "c"}
	for _, k := range keys {
		if _, err := s.Incrby(IncrArgs{Key: k, Incr: 9, Ts: 1000, N: Unset, Eps: UnsetEps, R: Unset}, 1000); err != nil {
			t.Fatalf("Incrby(%q): %v", k, err)
		}
	}
	keys = append(keys, "missing")

	n := s.Reset(keys, 2000)
	if n != 3 {
		t.Fatalf("Reset returned %d, want 3", n)
	}
	for _, k := range keys[:3] {
		total, err := s.Total(k)
		if err != nil {
			t.Fatalf("Total(%q): %v", k, err)
		}
		if total != 0 {
			t.Fatalf("Total(%q) = %d, want 0 after reset", k, total)
		}
	}
}

func TestDebugUnknownKey(t *testing.T) {
	s := New()
	if _, err := s.Debug("missing", false); err == nil {
		t.Fatal("want error for unknown key")
	}
}

func TestDebugReportsConfiguredGeometry(t *testing.T) {
	s := New()
	if _, err := s.Incrby(IncrArgs{Key: "k", Incr: 4, Ts: 1000, N: 30, Eps: UnsetEps, R: Unset}, 1000); err != nil {
		t.Fatalf("Incrby: %v", err)
	}
	lines, err := s.Debug("k", true)
	if err != nil {
		t.Fatalf("Debug: %v", err)
	}
	if len(lines) == 0 {
		t.Fatal("Debug returned no lines")
	}
	if !strings.HasPrefix(lines[0], "N=30 ") {
		t.Fatalf("first Debug line = %q, want it to start with the configured N=30", lines[0])
	}
}

func TestOrDefaultHelpers(t *testing.T) {
	if v := orDefault(Unset, 60); v != 60 {
		t.Fatalf("orDefault(Unset, 60) = %d, want 60", v)
	}
	if v := orDefault(30, 60); v != 30 {
		t.Fatalf("orDefault(30, 60) = %d, want 30", v)
	}
	if v := orDefaultEps(UnsetEps, 0.05); v != 0.05 {
		t.Fatalf("orDefaultEps(UnsetEps, 0.05) = %v, want 0.05", v)
	}
	if v := orDefaultEps(0.1, 0.05); v != 0.1 {
		t.Fatalf("orDefaultEps(0.1, 0.05) = %v, want 0.1", v)
	}
}
