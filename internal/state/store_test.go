package state

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/five82/shopper/internal/backend"
)

func TestStore_UpdateAndSnapshotClone(t *testing.T) {
	var s Store

	before := time.Now()
	s.Update(backend.HealthStatus{"status": "ok", "model": "gemini"}, nil)

	snap := s.Snapshot()
	if !snap.HasHealth || snap.Health.Status() != "ok" {
		t.Fatalf("snapshot health = %#v, want status ok", snap.Health)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Health["status"] = "mutated"
	snap2 := s.Snapshot()
	if snap2.Health.Status() != "ok" {
		t.Fatalf("Snapshot should clone health; got %q want ok", snap2.Health.Status())
	}
}

func TestStore_UpdateErrorKeepsPreviousData(t *testing.T) {
	var s Store

	s.Update(backend.HealthStatus{"status": "ok"}, nil)
	prev := s.Snapshot()

	before := time.Now()
	origErr := errors.New("boom")
	s.Update(nil, origErr)

	snap := s.Snapshot()
	if snap.HasHealth != prev.HasHealth || snap.Health.Status() != prev.Health.Status() {
		t.Fatalf("health changed on error: got %#v want %#v", snap.Health, prev.Health)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
	if snap.Label() != "degraded" {
		t.Fatalf("Label = %q, want degraded", snap.Label())
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store

	snap := s.Snapshot()
	if snap.ConsecutiveFailures != 0 || snap.IsOffline() {
		t.Fatalf("fresh store: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}
	if snap.Label() != "checking" {
		t.Fatalf("Label = %q, want checking", snap.Label())
	}

	s.Update(nil, errors.New("fail 1"))
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 1 || snap.IsOffline() {
		t.Fatalf("after 1 failure: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}

	s.Update(nil, errors.New("fail 2"))
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 2 || !snap.IsOffline() {
		t.Fatalf("after 2 failures: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}
	if snap.Label() != "offline" {
		t.Fatalf("Label = %q, want offline", snap.Label())
	}

	// Success resets counter
	s.Update(backend.HealthStatus{}, nil)
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 0 || snap.IsOffline() {
		t.Fatalf("after success: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}
	if snap.Label() != "online" {
		t.Fatalf("Label = %q, want online for a payload without status", snap.Label())
	}
}
