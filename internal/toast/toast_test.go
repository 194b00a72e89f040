package toast

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within %v", timeout)
}

func TestAddAppliesDefaults(t *testing.T) {
	m := NewManager()
	t.Cleanup(m.Close)

	id := m.Add(Spec{Message: "hello"})
	if id == "" {
		t.Fatalf("Add returned empty id")
	}
	active := m.Active()
	if len(active) != 1 {
		t.Fatalf("Active() len = %d, want 1", len(active))
	}
	got := active[0]
	if got.ID != id || got.Kind != KindInfo || got.Duration != DefaultDuration || got.Message != "hello" {
		t.Fatalf("toast = %#v, want info with default duration", got)
	}
}

func TestAddThenRemove(t *testing.T) {
	m := NewManager()
	t.Cleanup(m.Close)

	id := m.Success("saved", "Done")
	m.Remove(id)
	if m.Len() != 0 {
		t.Fatalf("Len() = %d after Remove, want 0", m.Len())
	}
}

func TestRemoveUnknownIsNoop(t *testing.T) {
	m := NewManager()
	t.Cleanup(m.Close)

	keep := m.Info("still here", "")
	m.Remove("does-not-exist")
	m.Remove("")

	active := m.Active()
	if len(active) != 1 || active[0].ID != keep {
		t.Fatalf("Active() = %#v, want only %q", active, keep)
	}
}

func TestRemoveTwiceIsNoop(t *testing.T) {
	m := NewManager()
	t.Cleanup(m.Close)

	id := m.Warning("careful", "")
	m.Remove(id)
	m.Remove(id)
	if m.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", m.Len())
	}
}

func TestInsertionOrderAndUniqueIDs(t *testing.T) {
	m := NewManager()
	t.Cleanup(m.Close)

	seen := make(map[string]bool)
	var ids []string
	for i := 0; i < 50; i++ {
		id := m.Add(Spec{Kind: KindError, Message: "x"})
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
		ids = append(ids, id)
	}
	active := m.Active()
	for i, toast := range active {
		if toast.ID != ids[i] {
			t.Fatalf("Active()[%d] = %q, want %q", i, toast.ID, ids[i])
		}
	}
}

func TestToastExpiresAfterDuration(t *testing.T) {
	m := NewManager()
	t.Cleanup(m.Close)

	m.Add(Spec{Message: "short", Duration: 20 * time.Millisecond})
	long := m.Add(Spec{Message: "long", Duration: time.Hour})

	waitFor(t, time.Second, func() bool { return m.Len() == 1 })
	if active := m.Active(); active[0].ID != long {
		t.Fatalf("remaining toast = %q, want %q", active[0].ID, long)
	}
}

func TestExpiryAfterManualRemoveIsNoop(t *testing.T) {
	var changes atomic.Int32
	m := NewManager(WithOnChange(func() { changes.Add(1) }))
	t.Cleanup(m.Close)

	id := m.Add(Spec{Message: "x", Duration: 10 * time.Millisecond})
	m.Remove(id)
	time.Sleep(40 * time.Millisecond)

	// One change for Add, one for Remove; the timer must not report again.
	if got := changes.Load(); got != 2 {
		t.Fatalf("onChange calls = %d, want 2", got)
	}
}

func TestConcurrentAddRemove(t *testing.T) {
	m := NewManager()
	t.Cleanup(m.Close)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := m.Add(Spec{Message: "x", Duration: time.Millisecond})
			m.Remove(id)
			m.Remove(id)
		}()
	}
	wg.Wait()
	waitFor(t, time.Second, func() bool { return m.Len() == 0 })
}

func TestProgress(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	toast := Toast{CreatedAt: start, Duration: 4 * time.Second}

	cases := []struct {
		at   time.Duration
		want float64
	}{
		{-time.Second, 0},
		{0, 0},
		{time.Second, 0.25},
		{2 * time.Second, 0.5},
		{10 * time.Second, 1},
	}
	for _, tc := range cases {
		if got := toast.Progress(start.Add(tc.at)); got != tc.want {
			t.Fatalf("Progress(+%v) = %v, want %v", tc.at, got, tc.want)
		}
	}
	if got := toast.Remaining(start.Add(time.Second)); got != 0.75 {
		t.Fatalf("Remaining = %v, want 0.75", got)
	}
	if got := (Toast{}).Progress(start); got != 1 {
		t.Fatalf("zero-duration Progress = %v, want 1", got)
	}
}

func TestWithClock(t *testing.T) {
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m := NewManager(WithClock(func() time.Time { return fixed }))
	t.Cleanup(m.Close)

	m.Info("x", "")
	if got := m.Active()[0].CreatedAt; !got.Equal(fixed) {
		t.Fatalf("CreatedAt = %v, want %v", got, fixed)
	}
}

func TestCloseDropsToastsAndIgnoresLaterAdds(t *testing.T) {
	m := NewManager()
	m.Info("a", "")
	m.Close()
	if m.Len() != 0 {
		t.Fatalf("Len() after Close = %d, want 0", m.Len())
	}
	if id := m.Info("b", ""); id == "" {
		t.Fatalf("Add after Close returned empty id")
	}
	if m.Len() != 0 {
		t.Fatalf("Len() after Close+Add = %d, want 0", m.Len())
	}
}

func TestConvenienceKinds(t *testing.T) {
	m := NewManager()
	t.Cleanup(m.Close)

	m.Success("s", "S")
	m.Error("e", "E")
	m.Warning("w", "W")
	m.Info("i", "I")

	want := []Kind{KindSuccess, KindError, KindWarning, KindInfo}
	for i, toast := range m.Active() {
		if toast.Kind != want[i] {
			t.Fatalf("toast %d kind = %q, want %q", i, toast.Kind, want[i])
		}
	}
}
