package services

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/trustvote/internal/logging"
	"github.com/google/uuid"
)

// Command is an optimistic action. Local runs synchronously inside Dispatch.
// Remote runs later in the background; its failure never undoes Local.
// Reconcile, when set, runs after Remote with Remote's error.
//
// Remote effects of ordinary commands run one at a time in dispatch order.
// Detached commands get their own goroutine so a slow remote effect does
// not hold up the queue.
type Command struct {
	Name      string
	Local     func()
	Remote    func(ctx context.Context) error
	Reconcile func(ctx context.Context, err error)
	Detached  bool
}

// Result reports how a command's remote effect ended. It is telemetry only.
type Result struct {
	ID       string
	Name     string
	Err      error
	Duration time.Duration
}

type queued struct {
	id  string
	ctx context.Context
	cmd Command
}

// Dispatcher runs the remote effects of commands without blocking callers.
type Dispatcher struct {
	logger  logging.Logger
	results chan Result

	mu      sync.Mutex
	pending []queued
	wake    chan struct{}
	closed  bool

	inflight sync.WaitGroup
	done     chan struct{}
}

// NewDispatcher starts the background worker. buffer sizes the results
// channel; results that do not fit are dropped.
func NewDispatcher(logger logging.Logger, buffer int) *Dispatcher {
	d := &Dispatcher{
		logger:  logger.With("module", "dispatcher"),
		results: make(chan Result, buffer),
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go d.worker()
	return d
}

// Dispatch applies cmd.Local and schedules cmd.Remote. The remote effect
// runs under a context that ignores ctx's cancellation. It returns the
// command id.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd Command) string {
	id := uuid.NewString()
	if cmd.Local != nil {
		cmd.Local()
	}
	if cmd.Remote == nil {
		return id
	}

	q := queued{id: id, ctx: context.WithoutCancel(ctx), cmd: cmd}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		d.logger.Warn(ctx, "dispatcher closed, remote effect dropped", "command", cmd.Name)
		return id
	}
	d.inflight.Add(1)
	if cmd.Detached {
		d.mu.Unlock()
		go d.run(q)
		return id
	}
	d.pending = append(d.pending, q)
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
	return id
}

// Results delivers outcomes of remote effects.
func (d *Dispatcher) Results() <-chan Result {
	return d.results
}

// Wait blocks until every dispatched remote effect has finished.
func (d *Dispatcher) Wait() {
	d.inflight.Wait()
}

// Close waits for outstanding work and stops the worker. Later Dispatch
// calls only apply local effects.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	d.mu.Unlock()

	d.inflight.Wait()
	close(d.done)
}

func (d *Dispatcher) worker() {
	for {
		select {
		case <-d.done:
			return
		case <-d.wake:
		}
		for {
			d.mu.Lock()
			if len(d.pending) == 0 {
				d.mu.Unlock()
				break
			}
			q := d.pending[0]
			d.pending = d.pending[1:]
			d.mu.Unlock()
			d.run(q)
		}
	}
}

func (d *Dispatcher) run(q queued) {
	defer d.inflight.Done()

	start := time.Now()
	err := q.cmd.Remote(q.ctx)
	if err != nil {
		d.logger.Warn(q.ctx, "remote effect failed", "command", q.cmd.Name, "id", q.id, "error", err)
	}
	if q.cmd.Reconcile != nil {
		q.cmd.Reconcile(q.ctx, err)
	}

	select {
	case d.results <- Result{ID: q.id, Name: q.cmd.Name, Err: err, Duration: time.Since(start)}:
	default:
		d.logger.Debug(q.ctx, "result dropped", "command", q.cmd.Name, "id", q.id)
	}
}
