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
	"runtime"

	"go.uber.org/atomic"

	gerrors "github.com/tochemey/stage/errors"
	"github.com/tochemey/stage/future"
	"github.com/tochemey/stage/log"
)

// Proxy is a strong handle to a stage running an actor of type A.
//
// A Proxy is safe for concurrent use. Every Proxy, including the ones returned by Clone,
// keeps the stage alive and must be given up with Release once the holder is done with it.
// When the last proxy held outside the stage is released, the stage drains its mailbox
// and stops. A Proxy that becomes unreachable without being released is released by the
// garbage collector, but the timing of that is not predictable.
type Proxy[A any] struct {
	ref     *proxyRef[A]
	cleanup runtime.Cleanup
}

// proxyRef is the part of a proxy the cleanup needs. It must never point back to the Proxy.
type proxyRef[A any] struct {
	stageID  string
	mailbox  *mailbox[A]
	handles  *handles
	state    *stateCell
	logger   log.Logger
	released *atomic.Bool
}

// newProxy wraps a reference whose handle has already been counted
func newProxy[A any](stageID string, mbox *mailbox[A], counter *handles, state *stateCell, logger log.Logger) *Proxy[A] {
	ref := &proxyRef[A]{
		stageID:  stageID,
		mailbox:  mbox,
		handles:  counter,
		state:    state,
		logger:   logger,
		released: atomic.NewBool(false),
	}
	proxy := &Proxy[A]{ref: ref}
	proxy.cleanup = runtime.AddCleanup(proxy, func(ref *proxyRef[A]) { ref.release() }, ref)
	return proxy
}

// ID returns the identifier of the stage this proxy points at
func (x *Proxy[A]) ID() string {
	return x.ref.stageID
}

// SendMessage enqueues a fire-and-forget message without blocking.
//
// It returns ErrMailboxFull when the mailbox has no room left and ErrActorStopped
// once the stage is stopping or stopped, or once this proxy was released.
func (x *Proxy[A]) SendMessage(message Message[A]) error {
	return x.ref.send(&messageEnvelope[A]{message: message})
}

// Clone returns a new proxy to the same stage.
// Cloning a released proxy panics.
func (x *Proxy[A]) Clone() *Proxy[A] {
	if x.ref.released.Load() {
		panic("actor: clone of a released proxy")
	}
	x.ref.handles.acquire()
	return newProxy(x.ref.stageID, x.ref.mailbox, x.ref.handles, x.ref.state, x.ref.logger)
}

// Release gives up this proxy. Calling Release more than once has no effect.
func (x *Proxy[A]) Release() {
	x.cleanup.Stop()
	x.ref.release()
}

// count returns the number of live strong proxies
func (x *Proxy[A]) count() int64 {
	return x.ref.handles.load()
}

// downgrade returns a weak proxy that does not keep the stage alive
func (x *Proxy[A]) downgrade() *weakProxy[A] {
	return &weakProxy[A]{
		stageID: x.ref.stageID,
		mailbox: x.ref.mailbox,
		handles: x.ref.handles,
		state:   x.ref.state,
		logger:  x.ref.logger,
	}
}

// send refuses work once this proxy was released or the stage is stopping
func (x *proxyRef[A]) send(env envelope[A]) error {
	if x.released.Load() || !x.state.isAcceptingWork() {
		return gerrors.ErrActorStopped
	}
	return x.mailbox.enqueue(env)
}

// release decrements the live count before notifying the stage.
// The notification is best effort: a full or closed mailbox is fine since
// the stage re-checks the count after every envelope anyway.
func (x *proxyRef[A]) release() {
	if !x.released.CompareAndSwap(false, true) {
		return
	}
	x.handles.release()
	_ = x.mailbox.enqueue(&handleDropped[A]{})
}

// SendRequest enqueues a request without blocking and returns the future of its result.
//
// The future resolves to the handler's value or error, or to ErrActorStopped when the
// stage stops before handling the request. Dropping the future is harmless.
func SendRequest[A, R any](proxy *Proxy[A], request Request[A, R]) (*future.Future[R], error) {
	promise := future.NewPromise[R]()
	if err := proxy.ref.send(&requestEnvelope[A, R]{request: request, promise: promise}); err != nil {
		return nil, err
	}
	return promise.Future(), nil
}

// Ask sends a request and waits for its result until ctx is done
func Ask[A, R any](ctx context.Context, proxy *Proxy[A], request Request[A, R]) (R, error) {
	result, err := SendRequest(proxy, request)
	if err != nil {
		var zero R
		return zero, err
	}
	return result.Await(ctx)
}
