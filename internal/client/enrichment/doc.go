// Package enrichment is the client for the best-effort text generation
// service. Every request goes through the same contract: cache lookup, one
// remote call, one retry after a fixed delay, then a deterministic local
// fallback. Callers always get usable text.
package enrichment
