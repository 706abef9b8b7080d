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

import "context"

// Message is a fire-and-forget operation bound to the actor type A.
//
// Handle runs on the stage goroutine with exclusive access to the actor.
// A returned error is logged by the stage since there is nobody to deliver it to.
// Handlers may block: the stage does not start the next envelope until Handle returns.
type Message[A any] interface {
	Handle(ctx context.Context, actor A) error
}

// Request is an operation bound to the actor type A that produces a value of type R.
//
// Handle runs on the stage goroutine with exclusive access to the actor.
// The returned value or error completes the caller's future.
type Request[A, R any] interface {
	Handle(ctx context.Context, actor A) (R, error)
}

// MessageFunc adapts an ordinary function to the Message interface
type MessageFunc[A any] func(ctx context.Context, actor A) error

// Handle calls f(ctx, actor)
func (f MessageFunc[A]) Handle(ctx context.Context, actor A) error {
	return f(ctx, actor)
}

// RequestFunc adapts an ordinary function to the Request interface
type RequestFunc[A, R any] func(ctx context.Context, actor A) (R, error)

// Handle calls f(ctx, actor)
func (f RequestFunc[A, R]) Handle(ctx context.Context, actor A) (R, error) {
	return f(ctx, actor)
}
