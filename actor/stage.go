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
	"fmt"
	"runtime"
	"time"

	"go.opentelemetry.io/otel/metric"

	gerrors "github.com/tochemey/stage/errors"
	imetric "github.com/tochemey/stage/internal/metric"
	"github.com/tochemey/stage/log"
)

// Stage owns an actor and drives it from its mailbox, one envelope at a time.
type Stage[A any] struct {
	id        string
	actor     A
	mailbox   *mailbox[A]
	state     *stateCell
	proxy     *Proxy[A]
	directive Directive
	logger    log.Logger
	metric    *imetric.StageMetric
	done      chan struct{}
}

// ID returns the stage identifier
func (x *Stage[A]) ID() string {
	return x.id
}

// Proxy returns a new strong proxy to the stage.
// It panics once the stage has stopped.
func (x *Stage[A]) Proxy() *Proxy[A] {
	return x.proxy.Clone()
}

// State returns the current stage state
func (x *Stage[A]) State() ActorState {
	return x.state.load()
}

// Done returns a channel that is closed once the stage has stopped
func (x *Stage[A]) Done() <-chan struct{} {
	return x.done
}

// Run drives the actor until the stage stops and returns once the mailbox is drained.
//
// The stage stops when its remote asks it to, when every proxy held outside the stage
// has been released, when ctx is done, or when a handler panics under StopDirective.
// In the last case Run returns the *errors.PanicError. Run can only be called once.
func (x *Stage[A]) Run(ctx context.Context) error {
	if !x.state.compareAndSwap(Built, Running) {
		return gerrors.ErrStageAlreadyStarted
	}

	x.logger.Debugf("stage %s started", x.id)

	registration, err := x.metric.ObserveMailbox(x.mailbox.len)
	if err != nil {
		x.logger.Warnf("stage %s failed to observe its mailbox: %v", x.id, err)
	}

	var fault *gerrors.PanicError
	for {
		env, err := x.mailbox.dequeue(ctx)
		if err != nil {
			x.logger.Debugf("stage %s context done: %v", x.id, err)
			_, _ = x.state.requestStop()
			break
		}

		if fault = x.dispatch(ctx, env); fault != nil {
			_, _ = x.state.requestStop()
			break
		}

		if x.checkpoint() {
			break
		}
	}

	fault = x.shutdown(context.WithoutCancel(ctx), fault, registration)
	if fault != nil {
		return fault
	}
	return nil
}

// checkpoint reports whether the loop must exit.
// The stage exits when a stop was requested or when its own proxy is the only one left.
func (x *Stage[A]) checkpoint() bool {
	if x.state.load() == Stopping {
		return true
	}
	if x.proxy.count() == 1 {
		_, _ = x.state.requestStop()
		x.logger.Debugf("stage %s has no more proxies", x.id)
		return true
	}
	return false
}

// dispatch handles one envelope and returns a fault that must stop the stage
func (x *Stage[A]) dispatch(ctx context.Context, env envelope[A]) *gerrors.PanicError {
	switch env.(type) {
	case *handleDropped[A]:
		return nil
	case *stopRequested[A]:
		_, _ = x.state.requestStop()
		return nil
	}

	start := time.Now()
	panicErr, err := x.invoke(ctx, env)
	x.metric.RecordProcessed(ctx, time.Since(start))

	if panicErr != nil {
		x.metric.RecordPanic(ctx)
		x.logger.Errorf("stage %s recovered from panic in %s: %v", x.id, env.name(), panicErr)
		if x.directive == ResumeDirective {
			env.fail(panicErr)
			return nil
		}
		env.fail(errors.Join(gerrors.ErrActorStopped, panicErr))
		return panicErr
	}

	if err != nil {
		x.logger.Errorf("stage %s failed to handle %s: %v", x.id, env.name(), err)
	}
	return nil
}

// invoke runs the envelope handler and turns a panic into a PanicError
func (x *Stage[A]) invoke(ctx context.Context, env envelope[A]) (panicErr *gerrors.PanicError, err error) {
	defer func() {
		if r := recover(); r != nil {
			switch rerr, ok := r.(error); {
			case ok:
				var pe *gerrors.PanicError
				if errors.As(rerr, &pe) {
					panicErr = pe
					return
				}

				// this is a normal error just wrap it with some stack trace
				// for rich logging purpose
				pc, fn, line, _ := runtime.Caller(2)
				panicErr = gerrors.NewPanicError(
					fmt.Errorf("%w at %s[%s:%d]", rerr, runtime.FuncForPC(pc).Name(), fn, line),
				)

			default:
				// we have no idea what panic it is. Enrich it with some stack trace for rich
				// logging purpose
				pc, fn, line, _ := runtime.Caller(2)
				panicErr = gerrors.NewPanicError(
					fmt.Errorf("%#v at %s[%s:%d]", r, runtime.FuncForPC(pc).Name(), fn, line),
				)
			}
		}
	}()

	return nil, env.handle(ctx, x.actor)
}

// shutdown closes the mailbox and drains it.
// Without a fault, buffered envelopes are handled as usual. After a fault,
// buffered requests fail with ErrActorStopped and buffered messages are dropped.
func (x *Stage[A]) shutdown(ctx context.Context, fault *gerrors.PanicError, registration metric.Registration) *gerrors.PanicError {
	x.mailbox.close()

	var dropped int64
	for {
		env, ok := x.mailbox.tryDequeue()
		if !ok {
			break
		}

		if fault != nil {
			if _, isMessage := env.(*messageEnvelope[A]); isMessage {
				dropped++
				x.logger.Warnf("stage %s dropped %s", x.id, env.name())
			}
			env.fail(gerrors.ErrActorStopped)
			continue
		}

		fault = x.dispatch(ctx, env)
	}

	x.metric.RecordDropped(ctx, dropped)
	if registration != nil {
		if err := registration.Unregister(); err != nil {
			x.logger.Warnf("stage %s failed to unregister its mailbox observer: %v", x.id, err)
		}
	}

	x.proxy.Release()
	x.mailbox.dispose()
	x.state.store(Stopped)
	close(x.done)

	x.logger.Debugf("stage %s stopped", x.id)
	return fault
}
