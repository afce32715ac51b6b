package client

import (
	"context"

	"github.com/dmitrijs2005/trustvote/internal/store"
)

// PassportSlot is a server-issued pair of presigned URLs for one image.
type PassportSlot struct {
	Key         string
	UploadURL   string
	DownloadURL string
}

// Client is the remote store as seen by the voting client.
type Client interface {
	store.Store
	Close() error
	Ping(ctx context.Context) error
	PresignPassport(ctx context.Context, handle, contentType string) (*PassportSlot, error)
}
