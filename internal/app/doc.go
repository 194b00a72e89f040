// Package app provides the orchestration layer for shopper.
//
// # Overview
//
// This package wires together configuration, logging, health polling and the
// UI. It is the composition root where every dependency is built, connected
// and torn down.
//
// # Startup
//
//  1. Load .env into the environment (existing variables win)
//  2. Read ~/.config/shopper/config.toml and apply SHOPPER_API_BASE_URL
//  3. Open the log file; the terminal belongs to the TUI
//  4. Build the backend client and the shared state.Store
//  5. Load theme preferences, probing the terminal when none are stored
//  6. Start the health poller and run the TUI until the user quits
//
// # Polling Behavior
//
// The poller checks /health right away and then every interval (default two
// seconds). Consecutive failures double the wait up to thirty seconds; the
// first success resets it. The UI reads snapshots from the store on its own
// tick, so a slow backend never blocks rendering.
//
// # Error Handling
//
// Only configuration, logging and client setup errors are returned from Run.
// Everything after startup surfaces as a toast or a header status and is
// written to the log file.
package app
