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

// Package actor runs a single actor on its own goroutine and lets other
// goroutines talk to it through cloneable proxies.
//
// An actor is any value whose state is only ever touched by its stage. Operations are
// described by small descriptor types implementing Message (fire-and-forget) or Request
// (with a result), usually produced by the stagegen tool:
//
//	proxy, err := actor.Spawn(ctx, &Counter{})
//	if err != nil {
//		return err
//	}
//	defer proxy.Release()
//
//	value, err := actor.Ask[*Counter, int](ctx, proxy, &counterAdd{value: 1})
//
// Sends never block: a full mailbox yields errors.ErrMailboxFull and a stopping or
// stopped stage yields errors.ErrActorStopped. This is what keeps two actors holding
// proxies to each other from deadlocking when one calls back into the other.
//
// A stage stops when the last proxy held outside of it is released, when its Remote
// asks it to, when the context it runs with is done, or when a handler panics under
// StopDirective. Envelopes accepted before that are still handled.
package actor
