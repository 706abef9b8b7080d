// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package actor

import (
	"context"
	"errors"
	"sync"

	gods "github.com/Workiva/go-datastructures/queue"
	"go.uber.org/atomic"

	gerrors "github.com/tochemey/stage/errors"
	"github.com/tochemey/stage/log"
)

// mailbox is a bounded MPSC queue of envelopes backed by a ring buffer.
//
// Enqueue never blocks: it fails with ErrMailboxFull when capacity envelopes are
// waiting and with ErrActorStopped once the mailbox is closed. Dequeue blocks the
// single consumer until an envelope arrives or its context is done.
//
// The ring buffer rounds its size up to a power of two and spins in Get, so the
// exact capacity and the readiness of stored items are tracked with counters on top of it.
// Producers hold the read lock while enqueuing and close takes the write lock,
// which guarantees that every envelope accepted before close is seen by the drain.
type mailbox[A any] struct {
	underlying *gods.RingBuffer
	capacity   int64
	// reserved slots, including envelopes still being written
	size *atomic.Int64
	// envelopes fully written and not yet dequeued
	ready  *atomic.Int64
	signal chan struct{}

	mu     sync.RWMutex
	closed *atomic.Bool
	logger log.Logger
}

func newMailbox[A any](capacity int, logger log.Logger) *mailbox[A] {
	return &mailbox[A]{
		underlying: gods.NewRingBuffer(uint64(capacity)),
		capacity:   int64(capacity),
		size:       atomic.NewInt64(0),
		ready:      atomic.NewInt64(0),
		signal:     make(chan struct{}, 1),
		closed:     atomic.NewBool(false),
		logger:     logger,
	}
}

// enqueue stores the envelope without blocking
func (x *mailbox[A]) enqueue(env envelope[A]) error {
	x.mu.RLock()
	defer x.mu.RUnlock()

	if x.closed.Load() {
		return gerrors.ErrActorStopped
	}

	if x.size.Inc() > x.capacity {
		x.size.Dec()
		return gerrors.ErrMailboxFull
	}

	// a slot is reserved so Put only waits on concurrent producers
	if err := x.underlying.Put(env); err != nil {
		x.size.Dec()
		if errors.Is(err, gods.ErrDisposed) {
			return gerrors.ErrActorStopped
		}
		x.logger.Warnf("failed to enqueue %s: %v", env.name(), err)
		return gerrors.NewErrUnknown(err)
	}

	x.ready.Inc()
	select {
	case x.signal <- struct{}{}:
	default:
	}
	return nil
}

// dequeue blocks until an envelope is available or ctx is done
func (x *mailbox[A]) dequeue(ctx context.Context) (envelope[A], error) {
	for {
		if env, ok := x.tryDequeue(); ok {
			return env, nil
		}

		select {
		case <-x.signal:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// tryDequeue returns the next envelope when one is ready
func (x *mailbox[A]) tryDequeue() (envelope[A], bool) {
	for x.ready.Load() > 0 {
		item, err := x.underlying.Get()
		if err != nil {
			return nil, false
		}

		x.ready.Dec()
		x.size.Dec()
		if env, ok := item.(envelope[A]); ok {
			return env, true
		}
	}
	return nil, false
}

// close refuses every later enqueue. It returns false when the mailbox was already closed.
func (x *mailbox[A]) close() bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.closed.CompareAndSwap(false, true)
}

func (x *mailbox[A]) isClosed() bool {
	return x.closed.Load()
}

// len returns a snapshot of the number of envelopes waiting
func (x *mailbox[A]) len() int64 {
	return x.ready.Load()
}

// dispose releases the ring buffer. The mailbox must be closed and drained first.
func (x *mailbox[A]) dispose() {
	x.underlying.Dispose()
}
