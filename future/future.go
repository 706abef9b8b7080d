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

package future

import (
	"context"
	"sync"
)

// Future represents a value which may or may not currently be available,
// but will be available at some point in the future, or an error if that value
// could not be made available.
//
// A Future is the receiving end of a one-shot response sink. The writing end is
// the Promise that created it. Completing a Promise never blocks, so a Future
// that nobody awaits simply keeps the value until it is garbage collected.
//
// Example usage:
//
//	promise := future.NewPromise[int]()
//	go func() { promise.Success(42) }()
//
//	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
//	defer cancel()
//
//	value, err := promise.Future().Await(ctx)
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Await blocks until the Future is completed or the context is canceled and
// returns either the result or an error. When ctx is done first, ctx.Err() is returned
// and the Future can be awaited again later.
func (x *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-x.done:
		return x.value, x.err
	default:
	}

	select {
	case <-x.done:
		return x.value, x.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done returns a channel that is closed once the Future is completed.
func (x *Future[T]) Done() <-chan struct{} {
	return x.done
}

// IsCompleted returns true when the Future holds a result
func (x *Future[T]) IsCompleted() bool {
	select {
	case <-x.done:
		return true
	default:
		return false
	}
}

// Promise is a writable, single-assignment container which completes a Future.
// Only the first call to Success or Failure has an effect.
type Promise[T any] struct {
	once   sync.Once
	future *Future[T]
}

// NewPromise creates a Promise with its pending Future.
func NewPromise[T any]() *Promise[T] {
	return &Promise[T]{
		future: &Future[T]{done: make(chan struct{})},
	}
}

// Success completes the underlying Future with a value.
// It returns false when the Future was already completed.
func (p *Promise[T]) Success(value T) bool {
	return p.complete(value, nil)
}

// Failure fails the underlying Future with an error.
// It returns false when the Future was already completed.
func (p *Promise[T]) Failure(err error) bool {
	var zero T
	return p.complete(zero, err)
}

// Future returns the underlying Future.
func (p *Promise[T]) Future() *Future[T] {
	return p.future
}

func (p *Promise[T]) complete(value T, err error) bool {
	completed := false
	p.once.Do(func() {
		p.future.value = value
		p.future.err = err
		close(p.future.done)
		completed = true
	})
	return completed
}
