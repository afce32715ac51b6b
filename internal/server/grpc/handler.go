package grpc

import (
	"context"

	"github.com/dmitrijs2005/trustvote/internal/transport"
)

func (s *GRPCServer) ListIdentities(ctx context.Context, req *transport.ListIdentitiesRequest) (*transport.ListIdentitiesResponse, error) {
	list, err := s.store.ListIdentities(ctx)
	if err != nil {
		return nil, s.fail(ctx, "list identities", err)
	}
	return &transport.ListIdentitiesResponse{Identities: list}, nil
}

func (s *GRPCServer) FindByHandle(ctx context.Context, req *transport.FindByHandleRequest) (*transport.FindByHandleResponse, error) {
	i, err := s.store.FindByHandle(ctx, req.Handle)
	if err != nil {
		return nil, s.fail(ctx, "find by handle", err)
	}
	return &transport.FindByHandleResponse{Identity: *i}, nil
}

func (s *GRPCServer) InsertIdentity(ctx context.Context, req *transport.InsertIdentityRequest) (*transport.InsertIdentityResponse, error) {
	if req.Identity.Fingerprint == "" {
		req.Identity.Fingerprint = deviceFromContext(ctx)
	}
	id, err := s.store.InsertIdentity(ctx, req.Identity)
	if err != nil {
		return nil, s.fail(ctx, "insert identity", err)
	}
	return &transport.InsertIdentityResponse{ID: id}, nil
}

func (s *GRPCServer) UpdateIdentity(ctx context.Context, req *transport.UpdateIdentityRequest) (*transport.Empty, error) {
	if err := s.store.UpdateIdentity(ctx, req.ID, req.Update); err != nil {
		return nil, s.fail(ctx, "update identity", err)
	}
	return &transport.Empty{}, nil
}

func (s *GRPCServer) IncrementTrust(ctx context.Context, req *transport.IncrementTrustRequest) (*transport.IncrementTrustResponse, error) {
	score, err := s.store.IncrementTrust(ctx, req.ID, req.Delta)
	if err != nil {
		return nil, s.fail(ctx, "increment trust", err)
	}
	return &transport.IncrementTrustResponse{TrustScore: score}, nil
}

func (s *GRPCServer) ListVotesByVoter(ctx context.Context, req *transport.ListVotesRequest) (*transport.ListVotesResponse, error) {
	votes, err := s.store.ListVotesByVoter(ctx, req.VoterHandle)
	if err != nil {
		return nil, s.fail(ctx, "list votes", err)
	}
	return &transport.ListVotesResponse{Votes: votes}, nil
}

func (s *GRPCServer) InsertVote(ctx context.Context, req *transport.InsertVoteRequest) (*transport.Empty, error) {
	if err := s.store.InsertVote(ctx, req.Vote); err != nil {
		return nil, s.fail(ctx, "insert vote", err)
	}
	return &transport.Empty{}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *transport.PingRequest) (*transport.PingResponse, error) {
	return &transport.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) PresignPassport(ctx context.Context, req *transport.PresignPassportRequest) (*transport.PresignPassportResponse, error) {
	up, err := s.passports.Presign(ctx, req.Handle, req.ContentType)
	if err != nil {
		return nil, s.fail(ctx, "presign passport", err)
	}
	return &transport.PresignPassportResponse{Key: up.Key, UploadURL: up.UploadURL, DownloadURL: up.DownloadURL}, nil
}

// fail logs err and converts it to a gRPC status.
func (s *GRPCServer) fail(ctx context.Context, op string, err error) error {
	s.logger.Warn(ctx, op+" failed", "error", err)
	return transport.ToStatus(err)
}
