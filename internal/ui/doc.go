// Package ui provides the terminal user interface for shopper.
//
// The interface is a Bubble Tea program. The left column holds two input
// flows selected by tabs: a video link with a platform preview, and a local
// file upload with a drop zone. The right column shows the detected products
// as cards with confidence meters. A similar-items dialog opens for the
// focused card and searches the store catalog or the web through the
// backend.
//
// Notifications come from a toast.Manager shared with the flow controllers.
// The manager expires toasts on its own timers and nudges the program
// through its change callback, so the toast stack redraws without polling.
//
// Backend health is read from a state.Store that a background poller keeps
// current; the header shows the latest snapshot.
package ui
