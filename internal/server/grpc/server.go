package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/trustvote/internal/logging"
	"github.com/dmitrijs2005/trustvote/internal/server/services"
	"github.com/dmitrijs2005/trustvote/internal/store"
	"github.com/dmitrijs2005/trustvote/internal/transport"
	"google.golang.org/grpc"
)

// passportSvc is the subset of services.PassportService used by the handlers.
type passportSvc interface {
	Presign(ctx context.Context, handle, contentType string) (*services.PassportUpload, error)
}

// GRPCServer exposes the identity store, vote ledger and passport presigning
// over the TrustStore service.
type GRPCServer struct {
	address   string
	store     store.Store
	passports passportSvc
	logger    logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, st store.Store, ps passportSvc) (*GRPCServer, error) {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		store:     st,
		passports: ps,
	}, nil
}

// newGRPC builds the grpc.Server with interceptors and the service registered.
func (s *GRPCServer) newGRPC() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.requestIDInterceptor, s.loggingInterceptor))
	transport.RegisterTrustStoreServer(srv, s)
	return srv
}

// Run serves until ctx is cancelled, then stops gracefully.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve is Run over an existing listener.
func (s *GRPCServer) Serve(ctx context.Context, listen net.Listener) error {
	srv := s.newGRPC()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	return srv.Serve(listen)
}
