// Package passport renders the identity passport card, rasterizes it to PNG
// and builds the share intent link.
package passport

import (
	"bytes"
	"html/template"
	"io"
	"time"

	"github.com/dmitrijs2005/trustvote/internal/models"
)

// DefaultAnalysis is shown when the fingerprint narrative comes back empty.
const DefaultAnalysis = "Identity mapped in the bulk recognition graph."

// FallbackAnalysis is used when no narrator is configured.
const FallbackAnalysis = "Identity verified within the recognition shard."

// ShardLevel is printed on every card.
const ShardLevel = "ALPHA"

// Card is the data shown on a passport.
type Card struct {
	Name       string
	Handle     string
	TrustScore int64
	FirstSeen  time.Time
	Analysis   string
	Device     string
	ImageURL   string
	ProfileURL string
	ShardLevel string
	IssuedAt   time.Time
}

// NewCard fills a card from an identity.
func NewCard(ident models.Identity, analysis, device string, now time.Time) Card {
	if analysis == "" {
		analysis = DefaultAnalysis
	}
	return Card{
		Name:       ident.Name,
		Handle:     ident.Handle,
		TrustScore: ident.TrustScore,
		FirstSeen:  ident.FirstSeen,
		Analysis:   analysis,
		Device:     device,
		ImageURL:   ident.ProfileImageURL(),
		ProfileURL: ident.ProfileURL(),
		ShardLevel: ShardLevel,
		IssuedAt:   now.UTC(),
	}
}

var cardTemplate = template.Must(template.New("passport").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Handle}} passport</title>
<style>
body { margin: 0; background: #05060a; font-family: Helvetica, Arial, sans-serif; color: #fff; }
.passport { width: 760px; height: 440px; box-sizing: border-box; padding: 40px; border-radius: 32px;
  background: linear-gradient(135deg, #0b0f1a, #111827); border: 1px solid rgba(0,242,255,.25); }
.top { display: flex; gap: 28px; align-items: center; }
.top img { width: 120px; height: 120px; border-radius: 24px; border: 2px solid #00f2ff; }
.name { font-size: 38px; font-weight: 900; font-style: italic; text-transform: uppercase; }
.handle { color: #00f2ff; font-size: 18px; letter-spacing: .2em; }
.stats { display: flex; gap: 40px; margin-top: 30px; }
.label { font-size: 10px; letter-spacing: .4em; color: rgba(255,255,255,.4); text-transform: uppercase; }
.value { font-size: 28px; font-weight: 900; }
.analysis { margin-top: 28px; font-size: 14px; line-height: 1.6; color: rgba(255,255,255,.75); }
.footer { margin-top: 20px; font-size: 10px; letter-spacing: .3em; color: rgba(255,255,255,.3); }
</style>
</head>
<body>
<div class="passport">
  <div class="top">
    <img src="{{.ImageURL}}" alt="{{.Handle}}">
    <div>
      <div class="name">{{.Name}}</div>
      <div class="handle">{{.Handle}}</div>
    </div>
  </div>
  <div class="stats">
    <div><div class="label">Trust Weight</div><div class="value">{{.TrustScore}}</div></div>
    <div><div class="label">Shard</div><div class="value">{{.ShardLevel}}</div></div>
    <div><div class="label">First Seen</div><div class="value">{{.FirstSeen.Format "2006-01-02"}}</div></div>
  </div>
  <div class="analysis">{{.Analysis}}</div>
  <div class="footer">{{if .Device}}{{.Device}} &middot; {{end}}{{.IssuedAt.Format "2006-01-02 15:04 UTC"}} &middot; {{.ProfileURL}}</div>
</div>
</body>
</html>
`))

// Render writes the card as a standalone HTML document.
func Render(w io.Writer, c Card) error {
	return cardTemplate.Execute(w, c)
}

// RenderString is Render into a string.
func RenderString(c Card) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, c); err != nil {
		return "", err
	}
	return buf.String(), nil
}
