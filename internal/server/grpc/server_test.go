package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/dmitrijs2005/trustvote/internal/logging"
	"github.com/dmitrijs2005/trustvote/internal/models"
	"github.com/dmitrijs2005/trustvote/internal/store"
	"github.com/dmitrijs2005/trustvote/internal/transport"
)

func TestServe_TCPRoundTripAndGracefulStop(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv, err := NewGRPCServer(lis.Addr().String(), logging.Nop{}, store.NewMemoryStore(models.SeedIdentities()...), &fakePassports{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, lis) }()

	conn, err := grpc.NewClient(lis.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	c := transport.NewTrustStoreClient(conn)

	callCtx, callCancel := context.WithTimeout(ctx, 2*time.Second)
	defer callCancel()

	pong, err := c.Ping(callCtx, &transport.PingRequest{})
	require.NoError(t, err)
	assert.Equal(t, "OK", pong.Status)

	list, err := c.ListIdentities(callCtx, &transport.ListIdentitiesRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Identities, len(models.SeedIdentities()))

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop after context cancel")
	}
}

func TestRun_BadAddress(t *testing.T) {
	srv, err := NewGRPCServer("127.0.0.1:99999", logging.Nop{}, store.NewMemoryStore(), &fakePassports{})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.Error(t, srv.Run(ctx))
}
