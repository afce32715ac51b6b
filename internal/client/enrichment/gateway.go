package enrichment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/trustvote/internal/logging"
	"github.com/sethvargo/go-retry"
)

// DefaultRetryDelay is the pause before the single retry.
const DefaultRetryDelay = time.Second

// Profile is the result of profile parsing.
type Profile struct {
	Name   string `json:"name"`
	Handle string `json:"handle"`
}

type Gateway struct {
	gen        Generator
	cache      Cache
	retryDelay time.Duration
	logger     logging.Logger
}

// NewGateway builds a gateway. gen and cache may be nil: without a
// generator every call falls back, without a cache nothing is memoized.
func NewGateway(gen Generator, cache Cache, retryDelay time.Duration, logger logging.Logger) *Gateway {
	if retryDelay <= 0 {
		retryDelay = DefaultRetryDelay
	}
	return &Gateway{gen: gen, cache: cache, retryDelay: retryDelay, logger: logger.With("module", "enrichment")}
}

// ClearCache forgets every generated response so the next lookups hit the
// provider again.
func (g *Gateway) ClearCache(ctx context.Context) (int, error) {
	if g.cache == nil {
		return 0, nil
	}
	n, err := g.cache.Clear(ctx)
	if err != nil {
		return 0, fmt.Errorf("clear cache: %w", err)
	}
	g.logger.Info(ctx, "enrichment cache cleared", "entries", n)
	return n, nil
}

// Call returns cached text for key, or generates it with one retry and
// caches non-empty results. It fails only when both attempts fail.
func (g *Gateway) Call(ctx context.Context, prompt, key string, jsonMode bool) (string, error) {
	if g.cache != nil && key != "" {
		if v, ok, err := g.cache.Get(ctx, key); err != nil {
			g.logger.Warn(ctx, "cache read failed", "key", key, "error", err)
		} else if ok {
			return v, nil
		}
	}

	if g.gen == nil {
		return "", ErrMissingAPIKey
	}

	var text string
	backoff := retry.WithMaxRetries(1, retry.NewConstant(g.retryDelay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		out, err := g.gen.Generate(ctx, prompt, jsonMode)
		if err != nil {
			if errors.Is(err, ErrMissingAPIKey) {
				return err
			}
			g.logger.Debug(ctx, "generate failed", "key", key, "error", err)
			return retry.RetryableError(err)
		}
		text = out
		return nil
	})
	if err != nil {
		return "", err
	}

	if g.cache != nil && key != "" && text != "" {
		if err := g.cache.Set(ctx, key, text); err != nil {
			g.logger.Warn(ctx, "cache write failed", "key", key, "error", err)
		}
	}
	return text, nil
}

// ParseProfile asks for the display name behind a profile URL. The second
// result reports whether the name came from the provider rather than the
// fallback.
func (g *Gateway) ParseProfile(ctx context.Context, profileURL string) (Profile, bool) {
	part := profileHandlePart(profileURL)
	prompt := fmt.Sprintf(`Extract real name and handle from: %s. Return JSON: {"name": "Name", "handle": "@user"}.`, profileURL)

	text, err := g.Call(ctx, prompt, "parse_"+part, true)
	if err != nil {
		g.logger.Warn(ctx, "profile enrichment failed", "url", profileURL, "error", err)
		return FallbackProfile(profileURL), false
	}

	var p Profile
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &p); err != nil || strings.TrimSpace(p.Name) == "" {
		g.logger.Warn(ctx, "profile enrichment unusable", "url", profileURL, "error", err)
		return FallbackProfile(profileURL), false
	}
	p.Name = strings.TrimSpace(p.Name)
	return p, true
}

// Insight returns a one-line blurb for a candidate card.
func (g *Gateway) Insight(ctx context.Context, name string) string {
	prompt := fmt.Sprintf(`Write 1 short high-tech social insight for "%s" in a Web3 context.`, name)
	text, err := g.Call(ctx, prompt, "insight_"+sanitizeKey(name), false)
	if err != nil || strings.TrimSpace(text) == "" {
		return FallbackInsight(name)
	}
	return strings.TrimSpace(text)
}

// Fingerprint returns the passport narrative for handle.
func (g *Gateway) Fingerprint(ctx context.Context, handle string, trustPoints int64) string {
	prompt := fmt.Sprintf(`Create a 2-sentence professional "Social Fingerprint" for node %s who has %d trust points. Use graph theory terms.`, handle, trustPoints)
	text, err := g.Call(ctx, prompt, "fingerprint_"+sanitizeKey(handle), false)
	if err != nil || strings.TrimSpace(text) == "" {
		return FallbackFingerprint(handle, trustPoints)
	}
	return strings.TrimSpace(text)
}
