// Package transport defines the gRPC contract between the voting client and
// the remote store: message types, a JSON codec, the service descriptor and a
// typed client.
package transport

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "trustvote.TrustStore"

// Method names of the TrustStore service.
const (
	MethodListIdentities  = "ListIdentities"
	MethodFindByHandle    = "FindByHandle"
	MethodInsertIdentity  = "InsertIdentity"
	MethodUpdateIdentity  = "UpdateIdentity"
	MethodIncrementTrust  = "IncrementTrust"
	MethodListVotes       = "ListVotesByVoter"
	MethodInsertVote      = "InsertVote"
	MethodPing            = "Ping"
	MethodPresignPassport = "PresignPassport"
)

// FullMethod returns the "/service/method" path used on the wire.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// TrustStoreServer is implemented by the remote store.
type TrustStoreServer interface {
	ListIdentities(context.Context, *ListIdentitiesRequest) (*ListIdentitiesResponse, error)
	FindByHandle(context.Context, *FindByHandleRequest) (*FindByHandleResponse, error)
	InsertIdentity(context.Context, *InsertIdentityRequest) (*InsertIdentityResponse, error)
	UpdateIdentity(context.Context, *UpdateIdentityRequest) (*Empty, error)
	IncrementTrust(context.Context, *IncrementTrustRequest) (*IncrementTrustResponse, error)
	ListVotesByVoter(context.Context, *ListVotesRequest) (*ListVotesResponse, error)
	InsertVote(context.Context, *InsertVoteRequest) (*Empty, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	PresignPassport(context.Context, *PresignPassportRequest) (*PresignPassportResponse, error)
}

// unaryHandler adapts a typed server method to grpc.MethodHandler, running
// it through the server's interceptor chain when one is installed.
func unaryHandler[Req, Resp any](method string, call func(TrustStoreServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(TrustStoreServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(method)}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(TrustStoreServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TrustStoreServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: MethodListIdentities, Handler: unaryHandler(MethodListIdentities, TrustStoreServer.ListIdentities)},
		{MethodName: MethodFindByHandle, Handler: unaryHandler(MethodFindByHandle, TrustStoreServer.FindByHandle)},
		{MethodName: MethodInsertIdentity, Handler: unaryHandler(MethodInsertIdentity, TrustStoreServer.InsertIdentity)},
		{MethodName: MethodUpdateIdentity, Handler: unaryHandler(MethodUpdateIdentity, TrustStoreServer.UpdateIdentity)},
		{MethodName: MethodIncrementTrust, Handler: unaryHandler(MethodIncrementTrust, TrustStoreServer.IncrementTrust)},
		{MethodName: MethodListVotes, Handler: unaryHandler(MethodListVotes, TrustStoreServer.ListVotesByVoter)},
		{MethodName: MethodInsertVote, Handler: unaryHandler(MethodInsertVote, TrustStoreServer.InsertVote)},
		{MethodName: MethodPing, Handler: unaryHandler(MethodPing, TrustStoreServer.Ping)},
		{MethodName: MethodPresignPassport, Handler: unaryHandler(MethodPresignPassport, TrustStoreServer.PresignPassport)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "trustvote/transport",
}

func RegisterTrustStoreServer(s grpc.ServiceRegistrar, srv TrustStoreServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// TrustStoreClient is the typed client side of ServiceDesc.
type TrustStoreClient struct {
	cc grpc.ClientConnInterface
}

func NewTrustStoreClient(cc grpc.ClientConnInterface) *TrustStoreClient {
	return &TrustStoreClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *TrustStoreClient) ListIdentities(ctx context.Context, in *ListIdentitiesRequest, opts ...grpc.CallOption) (*ListIdentitiesResponse, error) {
	return invoke[ListIdentitiesResponse](ctx, c.cc, MethodListIdentities, in, opts)
}

func (c *TrustStoreClient) FindByHandle(ctx context.Context, in *FindByHandleRequest, opts ...grpc.CallOption) (*FindByHandleResponse, error) {
	return invoke[FindByHandleResponse](ctx, c.cc, MethodFindByHandle, in, opts)
}

func (c *TrustStoreClient) InsertIdentity(ctx context.Context, in *InsertIdentityRequest, opts ...grpc.CallOption) (*InsertIdentityResponse, error) {
	return invoke[InsertIdentityResponse](ctx, c.cc, MethodInsertIdentity, in, opts)
}

func (c *TrustStoreClient) UpdateIdentity(ctx context.Context, in *UpdateIdentityRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, MethodUpdateIdentity, in, opts)
}

func (c *TrustStoreClient) IncrementTrust(ctx context.Context, in *IncrementTrustRequest, opts ...grpc.CallOption) (*IncrementTrustResponse, error) {
	return invoke[IncrementTrustResponse](ctx, c.cc, MethodIncrementTrust, in, opts)
}

func (c *TrustStoreClient) ListVotesByVoter(ctx context.Context, in *ListVotesRequest, opts ...grpc.CallOption) (*ListVotesResponse, error) {
	return invoke[ListVotesResponse](ctx, c.cc, MethodListVotes, in, opts)
}

func (c *TrustStoreClient) InsertVote(ctx context.Context, in *InsertVoteRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, MethodInsertVote, in, opts)
}

func (c *TrustStoreClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MethodPing, in, opts)
}

func (c *TrustStoreClient) PresignPassport(ctx context.Context, in *PresignPassportRequest, opts ...grpc.CallOption) (*PresignPassportResponse, error) {
	return invoke[PresignPassportResponse](ctx, c.cc, MethodPresignPassport, in, opts)
}
