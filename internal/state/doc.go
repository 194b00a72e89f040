// Package state provides thread-safe sharing of backend health between the
// background poller and the UI.
//
// # Overview
//
// The poller calls Store.Update after every /health request; the UI reads
// Store.Snapshot when it redraws the header. Neither side blocks the other
// for longer than a map copy.
//
//	Producer (poller):             Consumer (UI):
//	┌────────────────┐            ┌────────────────┐
//	│ CheckHealth()  │            │                │
//	│      ↓         │            │                │
//	│ store.Update() │───────────→│ store.Snapshot()│
//	│      ↓         │  (mutex)   │      ↓         │
//	│  backoff...    │            │  render header │
//	└────────────────┘            └────────────────┘
//
// # Update Semantics
//
//	// Success: replace payload, reset failures
//	store.Update(health, nil)
//
//	// Error: keep the last payload, record the error, count the failure
//	store.Update(nil, err)
//
// Two or more consecutive failures mark the backend offline. Label turns a
// snapshot into the short word shown in the header: checking, online (or the
// payload's own status), degraded or offline.
//
// # Copying
//
// Snapshot clones the health map and wraps the error so callers can hold a
// snapshot across redraws without sharing state with the poller.
//
// The zero Store is ready to use.
package state
