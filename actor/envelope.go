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
	"fmt"

	"github.com/tochemey/stage/future"
)

// envelope is the type-erased unit of work stored in a mailbox.
// It lets operations with different result types share a single queue.
type envelope[A any] interface {
	// handle executes the operation against the actor.
	// The returned error is the handler error that has no caller to go to.
	handle(ctx context.Context, actor A) error
	// fail completes a pending response with err. It is a no-op for envelopes without one.
	fail(err error)
	// name describes the operation for logging
	name() string
}

type messageEnvelope[A any] struct {
	message Message[A]
}

var _ envelope[any] = (*messageEnvelope[any])(nil)

func (x *messageEnvelope[A]) handle(ctx context.Context, actor A) error {
	return x.message.Handle(ctx, actor)
}

func (x *messageEnvelope[A]) fail(error) {}

func (x *messageEnvelope[A]) name() string {
	return fmt.Sprintf("%T", x.message)
}

type requestEnvelope[A, R any] struct {
	request Request[A, R]
	promise *future.Promise[R]
}

var _ envelope[any] = (*requestEnvelope[any, any])(nil)

// handle completes the promise with the handler outcome.
// Completion never blocks, so the result of an abandoned future is discarded.
func (x *requestEnvelope[A, R]) handle(ctx context.Context, actor A) error {
	value, err := x.request.Handle(ctx, actor)
	if err != nil {
		x.promise.Failure(err)
		return nil
	}
	x.promise.Success(value)
	return nil
}

func (x *requestEnvelope[A, R]) fail(err error) {
	x.promise.Failure(err)
}

func (x *requestEnvelope[A, R]) name() string {
	return fmt.Sprintf("%T", x.request)
}

// handleDropped tells the stage a proxy went away so it re-checks the live count
type handleDropped[A any] struct{}

var _ envelope[any] = (*handleDropped[any])(nil)

func (x *handleDropped[A]) handle(context.Context, A) error { return nil }
func (x *handleDropped[A]) fail(error)                      {}
func (x *handleDropped[A]) name() string                    { return "handleDropped" }

// stopRequested wakes up an idle stage after Remote.Stop
type stopRequested[A any] struct{}

var _ envelope[any] = (*stopRequested[any])(nil)

func (x *stopRequested[A]) handle(context.Context, A) error { return nil }
func (x *stopRequested[A]) fail(error)                      {}
func (x *stopRequested[A]) name() string                    { return "stopRequested" }
