package services

import (
	"context"
	"sync"
	"testing"

	"github.com/dmitrijs2005/trustvote/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_LocalRunsBeforeReturn(t *testing.T) {
	d := NewDispatcher(logging.Nop{}, 8)
	defer d.Close()

	applied := false
	block := make(chan struct{})
	d.Dispatch(context.Background(), Command{
		Name:   "x",
		Local:  func() { applied = true },
		Remote: func(ctx context.Context) error { <-block; return nil },
	})
	assert.True(t, applied)
	close(block)
	d.Wait()
}

func TestDispatcher_RemoteInOrder(t *testing.T) {
	d := NewDispatcher(logging.Nop{}, 64)
	defer d.Close()

	var mu sync.Mutex
	var order []int
	for n := 0; n < 20; n++ {
		d.Dispatch(context.Background(), Command{
			Name: "step",
			Remote: func(ctx context.Context) error {
				mu.Lock()
				order = append(order, n)
				mu.Unlock()
				return nil
			},
		})
	}
	d.Wait()

	require.Len(t, order, 20)
	for n := range order {
		assert.Equal(t, n, order[n])
	}
}

func TestDispatcher_FailureReportedNotRolledBack(t *testing.T) {
	d := NewDispatcher(logging.Nop{}, 8)
	defer d.Close()

	local := 0
	var reconciled error
	d.Dispatch(context.Background(), Command{
		Name:      "vote",
		Local:     func() { local++ },
		Remote:    func(ctx context.Context) error { return errBoom },
		Reconcile: func(ctx context.Context, err error) { reconciled = err },
	})
	d.Wait()

	assert.Equal(t, 1, local)
	assert.ErrorIs(t, reconciled, errBoom)

	res := <-d.Results()
	assert.Equal(t, "vote", res.Name)
	assert.ErrorIs(t, res.Err, errBoom)
	assert.NotEmpty(t, res.ID)
}

func TestDispatcher_IgnoresCallerCancellation(t *testing.T) {
	d := NewDispatcher(logging.Nop{}, 8)
	defer d.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var seen error
	d.Dispatch(ctx, Command{
		Name:     "detached",
		Detached: true,
		Remote:   func(ctx context.Context) error { seen = ctx.Err(); return nil },
	})
	d.Wait()
	assert.NoError(t, seen)
}

func TestDispatcher_ClosedDropsRemote(t *testing.T) {
	d := NewDispatcher(logging.Nop{}, 8)
	d.Close()

	local, remote := false, false
	d.Dispatch(context.Background(), Command{
		Local:  func() { local = true },
		Remote: func(ctx context.Context) error { remote = true; return nil },
	})
	d.Wait()

	assert.True(t, local)
	assert.False(t, remote)
	d.Close()
}
