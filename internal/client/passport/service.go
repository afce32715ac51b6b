package passport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/trustvote/internal/client/client"
	"github.com/dmitrijs2005/trustvote/internal/filex"
	"github.com/dmitrijs2005/trustvote/internal/logging"
	"github.com/dmitrijs2005/trustvote/internal/models"
	"github.com/dmitrijs2005/trustvote/internal/netx"
)

// Narrator writes the fingerprint narrative for a handle.
type Narrator interface {
	Fingerprint(ctx context.Context, handle string, trustPoints int64) string
}

// Presigner issues upload slots for passport images.
type Presigner interface {
	PresignPassport(ctx context.Context, handle, contentType string) (*client.PassportSlot, error)
}

// Result describes a created passport.
type Result struct {
	Path        string
	Format      string
	Analysis    string
	Key         string
	DownloadURL string
}

// Service creates passports. The rasterizer and presigner are optional:
// without a rasterizer the HTML card is saved, without a presigner nothing
// is uploaded.
type Service struct {
	narrator   Narrator
	rasterizer Rasterizer
	presigner  Presigner
	dir        string
	device     string
	logger     logging.Logger
	now        func() time.Time
	upload     func(ctx context.Context, url, contentType string, body []byte) error
	download   func(ctx context.Context, url string) ([]byte, error)
}

func NewService(narrator Narrator, rasterizer Rasterizer, presigner Presigner, dir, device string, logger logging.Logger) *Service {
	return &Service{
		narrator:   narrator,
		rasterizer: rasterizer,
		presigner:  presigner,
		dir:        dir,
		device:     device,
		logger:     logger.With("module", "passport"),
		now:        time.Now,
		upload:     netx.UploadToPresignedURL,
		download:   netx.DownloadFromPresignedURL,
	}
}

// Create renders the passport for ident, saves it under the output
// directory and, when possible, uploads the PNG for sharing. Rasterization
// and upload failures degrade the result instead of failing it.
func (s *Service) Create(ctx context.Context, ident models.Identity) (*Result, error) {
	analysis := FallbackAnalysis
	if s.narrator != nil {
		analysis = s.narrator.Fingerprint(ctx, ident.Handle, ident.TrustScore)
	}
	card := NewCard(ident, analysis, s.device, s.now())

	var html bytes.Buffer
	if err := Render(&html, card); err != nil {
		return nil, fmt.Errorf("render passport: %w", err)
	}

	res := &Result{Analysis: card.Analysis, Format: "html"}
	data := html.Bytes()

	if s.rasterizer != nil {
		png, err := s.rasterizer.Rasterize(ctx, html.String())
		switch {
		case err == nil:
			data = png
			res.Format = "png"
		case errors.Is(err, ErrRasterizerUnavailable):
			s.logger.Info(ctx, "rasterizer unavailable, saving html", "handle", ident.Handle)
		default:
			s.logger.Warn(ctx, "rasterize failed, saving html", "handle", ident.Handle, "error", err)
		}
	}

	name := fmt.Sprintf("passport-%s-%s.%s", models.BareHandle(ident.Handle), s.now().UTC().Format("20060102150405"), res.Format)
	path, err := filex.WriteFile(s.dir, name, data)
	if err != nil {
		return nil, fmt.Errorf("save passport: %w", err)
	}
	res.Path = path

	if s.presigner != nil && res.Format == "png" {
		s.share(ctx, ident.Handle, data, res)
	}
	return res, nil
}

func (s *Service) share(ctx context.Context, handle string, png []byte, res *Result) {
	slot, err := s.presigner.PresignPassport(ctx, handle, "image/png")
	if err != nil {
		s.logger.Warn(ctx, "presign failed", "handle", handle, "error", err)
		return
	}
	if err := s.upload(ctx, slot.UploadURL, "image/png", png); err != nil {
		s.logger.Warn(ctx, "passport upload failed", "handle", handle, "key", slot.Key, "error", err)
		return
	}
	// The share link is only handed out once it serves the uploaded image.
	got, err := s.download(ctx, slot.DownloadURL)
	if err != nil {
		s.logger.Warn(ctx, "passport download check failed", "handle", handle, "key", slot.Key, "error", err)
		return
	}
	if !bytes.Equal(got, png) {
		s.logger.Warn(ctx, "passport download mismatch", "handle", handle, "key", slot.Key, "size", len(got), "want", len(png))
		return
	}
	res.Key = slot.Key
	res.DownloadURL = slot.DownloadURL
}
