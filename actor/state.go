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
	"go.uber.org/atomic"

	gerrors "github.com/tochemey/stage/errors"
)

// ActorState is the lifecycle state of a stage.
// States only ever move forward: Building → Built → Running → Stopping → Stopped.
type ActorState uint32

const (
	// Building means the stage builder exists but the actor has not been handed over yet
	Building ActorState = iota
	// Built means the stage is assembled and waiting for Run
	Built
	// Running means the receive loop is processing envelopes
	Running
	// Stopping means the stage refuses new work and is draining its mailbox
	Stopping
	// Stopped means the receive loop has exited
	Stopped
)

// String returns the state name
func (s ActorState) String() string {
	switch s {
	case Building:
		return "Building"
	case Built:
		return "Built"
	case Running:
		return "Running"
	case Stopping:
		return "Stopping"
	case Stopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// stateCell is the state shared by the stage, its proxies and its remote
type stateCell struct {
	value *atomic.Uint32
}

func newStateCell() *stateCell {
	return &stateCell{value: atomic.NewUint32(uint32(Building))}
}

func (x *stateCell) load() ActorState {
	return ActorState(x.value.Load())
}

func (x *stateCell) store(state ActorState) {
	x.value.Store(uint32(state))
}

func (x *stateCell) compareAndSwap(old, next ActorState) bool {
	return x.value.CompareAndSwap(uint32(old), uint32(next))
}

// isAcceptingWork reports whether proxies may still enqueue envelopes
func (x *stateCell) isAcceptingWork() bool {
	return x.load() < Stopping
}

// requestStop moves a running stage to Stopping.
// It returns true only when this call performed the transition. A stage that is
// already stopping or stopped is left alone, and a stage that never ran yields a StopError.
func (x *stateCell) requestStop() (bool, error) {
	for {
		current := x.load()
		switch current {
		case Running:
			if x.compareAndSwap(Running, Stopping) {
				return true, nil
			}
		case Stopping, Stopped:
			return false, nil
		default:
			return false, gerrors.NewStopError(current)
		}
	}
}
