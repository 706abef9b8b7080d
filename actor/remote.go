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

// Remote controls the lifecycle of a stage without keeping it alive.
// It is typically handed to the actor itself so it can obtain proxies to itself
// or stop its own stage.
type Remote[A any] struct {
	state *stateCell
	weak  *weakProxy[A]
}

func newRemote[A any](state *stateCell, weak *weakProxy[A]) *Remote[A] {
	return &Remote[A]{state: state, weak: weak}
}

// Proxy returns a new strong proxy to the stage.
// It panics when every strong proxy is gone, which means the stage has stopped.
func (x *Remote[A]) Proxy() *Proxy[A] {
	proxy, ok := x.weak.upgrade()
	if !ok {
		panic("actor: remote proxy requested after the actor was dropped")
	}
	return proxy
}

// TryProxy is like Proxy but reports false instead of panicking
func (x *Remote[A]) TryProxy() (*Proxy[A], bool) {
	return x.weak.upgrade()
}

// Stop asks a running stage to stop once the current envelope is handled.
//
// Stopping an already stopping or stopped stage is a no-op. Stopping a stage that
// has not started yet returns a *errors.StopError.
func (x *Remote[A]) Stop() error {
	transitioned, err := x.state.requestStop()
	if err != nil {
		return err
	}
	if transitioned {
		x.weak.wake()
	}
	return nil
}

// State returns the current stage state
func (x *Remote[A]) State() ActorState {
	return x.state.load()
}
