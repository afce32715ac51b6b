// Package cli is the interactive trustvote client.
//
// App wires configuration, the local SQLite cache, the remote store (gRPC,
// or an in-memory seeded store when offline), the enrichment gateway and the
// client services, then serves a line-oriented REPL. A background watcher
// pings the server and flips the prompt between online and offline.
//
// Typical session: login, vote through the queue with y/n or "swipe <dx>",
// check the leaderboard, render a passport and share it.
package cli
