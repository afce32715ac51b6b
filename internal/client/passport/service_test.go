package passport

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/trustvote/internal/client/client"
	"github.com/dmitrijs2005/trustvote/internal/logging"
	"github.com/dmitrijs2005/trustvote/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedNarrator string

func (n fixedNarrator) Fingerprint(ctx context.Context, handle string, trust int64) string {
	return string(n)
}

type fakeRasterizer struct {
	png []byte
	err error
}

func (f fakeRasterizer) Rasterize(ctx context.Context, html string) ([]byte, error) {
	return f.png, f.err
}

type fakePresigner struct {
	err   error
	calls int
}

func (f *fakePresigner) PresignPassport(ctx context.Context, handle, contentType string) (*client.PassportSlot, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &client.PassportSlot{Key: "passports/" + handle, UploadURL: "http://put", DownloadURL: "http://get"}, nil
}

var testIdentity = models.Identity{ID: 8, Handle: "@hannah_yield", Name: "Hannah DeFi", TrustScore: 140,
	FirstSeen: time.Date(2024, 5, 8, 0, 0, 0, 0, time.UTC)}

func newTestService(t *testing.T, r Rasterizer, p Presigner) (*Service, *[]string) {
	t.Helper()
	s := NewService(fixedNarrator("Central node."), r, p, t.TempDir(), "node-t", logging.Nop{})
	s.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	var uploads []string
	var stored []byte
	s.upload = func(ctx context.Context, url, ct string, body []byte) error {
		uploads = append(uploads, url+"|"+ct+"|"+string(body))
		stored = append([]byte(nil), body...)
		return nil
	}
	s.download = func(ctx context.Context, url string) ([]byte, error) {
		if url != "http://get" {
			return nil, errors.New("unexpected url " + url)
		}
		return stored, nil
	}
	return s, &uploads
}

func TestCreate_PNGAndUpload(t *testing.T) {
	p := &fakePresigner{}
	s, uploads := newTestService(t, fakeRasterizer{png: []byte("PNG")}, p)

	res, err := s.Create(context.Background(), testIdentity)
	require.NoError(t, err)

	assert.Equal(t, "png", res.Format)
	assert.True(t, strings.HasSuffix(res.Path, "passport-hannah_yield-20250601120000.png"))
	assert.Equal(t, "Central node.", res.Analysis)
	assert.Equal(t, "http://get", res.DownloadURL)
	assert.Equal(t, "passports/@hannah_yield", res.Key)
	assert.Equal(t, []string{"http://put|image/png|PNG"}, *uploads)

	b, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, "PNG", string(b))
}

func TestCreate_RasterizerUnavailableSavesHTML(t *testing.T) {
	p := &fakePresigner{}
	s, uploads := newTestService(t, fakeRasterizer{err: ErrRasterizerUnavailable}, p)

	res, err := s.Create(context.Background(), testIdentity)
	require.NoError(t, err)

	assert.Equal(t, "html", res.Format)
	assert.Zero(t, p.calls)
	assert.Empty(t, *uploads)

	b, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "Hannah DeFi")
}

func TestCreate_UploadFailureKeepsFile(t *testing.T) {
	p := &fakePresigner{err: errors.New("offline")}
	s, _ := newTestService(t, fakeRasterizer{png: []byte("PNG")}, p)

	res, err := s.Create(context.Background(), testIdentity)
	require.NoError(t, err)
	assert.Equal(t, "png", res.Format)
	assert.Empty(t, res.DownloadURL)
	assert.FileExists(t, res.Path)
}

func TestCreate_DownloadMismatchWithholdsLink(t *testing.T) {
	s, uploads := newTestService(t, fakeRasterizer{png: []byte("PNG")}, &fakePresigner{})
	s.download = func(ctx context.Context, url string) ([]byte, error) {
		return []byte("PN"), nil
	}

	res, err := s.Create(context.Background(), testIdentity)
	require.NoError(t, err)
	assert.Len(t, *uploads, 1)
	assert.Empty(t, res.DownloadURL)
	assert.Empty(t, res.Key)
	assert.FileExists(t, res.Path)
}

func TestCreate_DownloadErrorWithholdsLink(t *testing.T) {
	s, _ := newTestService(t, fakeRasterizer{png: []byte("PNG")}, &fakePresigner{})
	s.download = func(ctx context.Context, url string) ([]byte, error) {
		return nil, errors.New("403 Forbidden")
	}

	res, err := s.Create(context.Background(), testIdentity)
	require.NoError(t, err)
	assert.Equal(t, "png", res.Format)
	assert.Empty(t, res.DownloadURL)
}

func TestCreate_NoNarrator(t *testing.T) {
	s := NewService(nil, nil, nil, t.TempDir(), "", logging.Nop{})
	res, err := s.Create(context.Background(), testIdentity)
	require.NoError(t, err)
	assert.Equal(t, FallbackAnalysis, res.Analysis)
	assert.Equal(t, "html", res.Format)
}

func TestChromeRasterizer_Unavailable(t *testing.T) {
	r := NewChromeRasterizer()
	r.lookPath = func(string) (string, error) { return "", errors.New("not found") }

	assert.False(t, r.Available())
	_, err := r.Rasterize(context.Background(), "<html></html>")
	assert.ErrorIs(t, err, ErrRasterizerUnavailable)
}

func TestDataURL(t *testing.T) {
	u := dataURL("<p>a b#c</p>")
	assert.True(t, strings.HasPrefix(u, "data:text/html;charset=utf-8,"))
	assert.NotContains(t, u, " ")
	assert.NotContains(t, u, "#")
}
