// Package client contains the voting client's building blocks for talking to
// the remote store and bootstrapping the local cache.
//
// # Overview
//
//  1. Client: the remote Identity Store and Vote Ledger plus Ping and
//     passport presigning.
//  2. GRPCClient: the gRPC implementation. It stamps every call with the
//     device fingerprint and a request id, applies a per-call timeout and
//     maps gRPC status codes back onto sentinel errors.
//  3. InitDatabase and RunMigrations: open the SQLite cache and apply the
//     embedded goose migrations.
//
// # Error Handling
//
// Store constraint errors come back as the common sentinels
// (common.ErrHandleTaken, common.ErrIDTaken, common.ErrorNotFound,
// common.ErrorValidation). Transport failures surface as ErrUnavailable.
package client
