package client

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/trustvote/internal/common"
	"github.com/dmitrijs2005/trustvote/internal/models"
	"github.com/dmitrijs2005/trustvote/internal/transport"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// DefaultCallTimeout bounds every unary call when no timeout is configured.
const DefaultCallTimeout = 12 * time.Second

// storeAPI is the typed stub surface GRPCClient depends on.
type storeAPI interface {
	ListIdentities(ctx context.Context, in *transport.ListIdentitiesRequest, opts ...grpc.CallOption) (*transport.ListIdentitiesResponse, error)
	FindByHandle(ctx context.Context, in *transport.FindByHandleRequest, opts ...grpc.CallOption) (*transport.FindByHandleResponse, error)
	InsertIdentity(ctx context.Context, in *transport.InsertIdentityRequest, opts ...grpc.CallOption) (*transport.InsertIdentityResponse, error)
	UpdateIdentity(ctx context.Context, in *transport.UpdateIdentityRequest, opts ...grpc.CallOption) (*transport.Empty, error)
	IncrementTrust(ctx context.Context, in *transport.IncrementTrustRequest, opts ...grpc.CallOption) (*transport.IncrementTrustResponse, error)
	ListVotesByVoter(ctx context.Context, in *transport.ListVotesRequest, opts ...grpc.CallOption) (*transport.ListVotesResponse, error)
	InsertVote(ctx context.Context, in *transport.InsertVoteRequest, opts ...grpc.CallOption) (*transport.Empty, error)
	Ping(ctx context.Context, in *transport.PingRequest, opts ...grpc.CallOption) (*transport.PingResponse, error)
	PresignPassport(ctx context.Context, in *transport.PresignPassportRequest, opts ...grpc.CallOption) (*transport.PresignPassportResponse, error)
}

type GRPCClient struct {
	endpointURL string
	device      string
	timeout     time.Duration
	conn        *grpc.ClientConn
	client      storeAPI
}

// deviceInterceptor stamps outgoing calls with the device fingerprint and a
// fresh request id.
func (s *GRPCClient) deviceInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	pairs := []string{common.RequestIDHeaderName, uuid.NewString()}
	if s.device != "" {
		pairs = append(pairs, common.DeviceHeaderName, s.device)
	}
	ctx = metadata.AppendToOutgoingContext(ctx, pairs...)
	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewTrustStoreClient dials endpointURL lazily; the first call connects.
func NewTrustStoreClient(endpointURL, device string, timeout time.Duration) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, device: device, timeout: timeout}
	if c.timeout <= 0 {
		c.timeout = DefaultCallTimeout
	}
	if err := c.InitGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient(extra ...grpc.DialOption) error {
	opts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.deviceInterceptor),
	}, extra...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = transport.NewTrustStoreClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

func (s *GRPCClient) ListIdentities(ctx context.Context) ([]models.Identity, error) {
	ctx, cancel := s.callCtx(ctx)
	defer cancel()

	resp, err := s.client.ListIdentities(ctx, &transport.ListIdentitiesRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	out := make([]models.Identity, 0, len(resp.Identities))
	for _, i := range resp.Identities {
		out = append(out, i.Sanitize())
	}
	return out, nil
}

func (s *GRPCClient) FindByHandle(ctx context.Context, handle string) (*models.Identity, error) {
	ctx, cancel := s.callCtx(ctx)
	defer cancel()

	resp, err := s.client.FindByHandle(ctx, &transport.FindByHandleRequest{Handle: handle})
	if err != nil {
		return nil, s.mapError(err)
	}
	i := resp.Identity.Sanitize()
	return &i, nil
}

func (s *GRPCClient) InsertIdentity(ctx context.Context, in models.IdentityInsert) (int64, error) {
	ctx, cancel := s.callCtx(ctx)
	defer cancel()

	if in.Fingerprint == "" {
		in.Fingerprint = s.device
	}
	resp, err := s.client.InsertIdentity(ctx, &transport.InsertIdentityRequest{Identity: in})
	if err != nil {
		return 0, s.mapError(err)
	}
	return resp.ID, nil
}

func (s *GRPCClient) UpdateIdentity(ctx context.Context, id int64, up models.IdentityUpdate) error {
	ctx, cancel := s.callCtx(ctx)
	defer cancel()

	_, err := s.client.UpdateIdentity(ctx, &transport.UpdateIdentityRequest{ID: id, Update: up})
	return s.mapError(err)
}

func (s *GRPCClient) IncrementTrust(ctx context.Context, id int64, delta int64) (int64, error) {
	ctx, cancel := s.callCtx(ctx)
	defer cancel()

	resp, err := s.client.IncrementTrust(ctx, &transport.IncrementTrustRequest{ID: id, Delta: delta})
	if err != nil {
		return 0, s.mapError(err)
	}
	return resp.TrustScore, nil
}

func (s *GRPCClient) ListVotesByVoter(ctx context.Context, voterHandle string) ([]models.Vote, error) {
	ctx, cancel := s.callCtx(ctx)
	defer cancel()

	resp, err := s.client.ListVotesByVoter(ctx, &transport.ListVotesRequest{VoterHandle: voterHandle})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Votes, nil
}

func (s *GRPCClient) InsertVote(ctx context.Context, v models.Vote) error {
	ctx, cancel := s.callCtx(ctx)
	defer cancel()

	_, err := s.client.InsertVote(ctx, &transport.InsertVoteRequest{Vote: v})
	return s.mapError(err)
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	ctx, cancel := s.callCtx(ctx)
	defer cancel()

	resp, err := s.client.Ping(ctx, &transport.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) PresignPassport(ctx context.Context, handle, contentType string) (*PassportSlot, error) {
	ctx, cancel := s.callCtx(ctx)
	defer cancel()

	resp, err := s.client.PresignPassport(ctx, &transport.PresignPassportRequest{Handle: handle, ContentType: contentType})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &PassportSlot{Key: resp.Key, UploadURL: resp.UploadURL, DownloadURL: resp.DownloadURL}, nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	switch status.Code(err) {
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.AlreadyExists, codes.NotFound, codes.InvalidArgument:
		return transport.FromStatus(err)
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
