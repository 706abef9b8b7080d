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

	"github.com/google/uuid"
	"go.uber.org/atomic"

	imetric "github.com/tochemey/stage/internal/metric"
	"github.com/tochemey/stage/log"
)

// StageBuilder is the first half of the two-phase stage bootstrap.
//
// The builder creates the mailbox and the proxies before the actor exists, so the
// actor can be constructed with a Remote or a Proxy to itself. Finish then moves
// the actor into the Stage.
type StageBuilder[A any] struct {
	id        string
	mailbox   *mailbox[A]
	state     *stateCell
	proxy     *Proxy[A]
	directive Directive
	scheduler Scheduler
	logger    log.Logger
	metric    *imetric.StageMetric
	finished  *atomic.Bool
}

// NewStageBuilder creates a StageBuilder and the Remote of the stage it builds
func NewStageBuilder[A any](opts ...Option) (*StageBuilder[A], *Remote[A], error) {
	config := newStageConfig(opts...)
	if err := config.Validate(); err != nil {
		return nil, nil, err
	}

	id := uuid.NewString()
	stageMetric, err := imetric.NewStageMetric(imetric.NewProvider(config.meterProvider).Meter(), id)
	if err != nil {
		return nil, nil, err
	}

	logger := config.logger.With("stage", id)
	state := newStateCell()
	mbox := newMailbox[A](config.mailboxCapacity, logger)
	proxy := newProxy(id, mbox, newHandles(), state, logger)

	builder := &StageBuilder[A]{
		id:        id,
		mailbox:   mbox,
		state:     state,
		proxy:     proxy,
		directive: config.directive,
		scheduler: config.scheduler,
		logger:    logger,
		metric:    stageMetric,
		finished:  atomic.NewBool(false),
	}
	return builder, newRemote(state, proxy.downgrade()), nil
}

// ID returns the identifier of the stage being built
func (x *StageBuilder[A]) ID() string {
	return x.id
}

// Proxy returns a new strong proxy to the stage being built.
// Envelopes sent before the stage runs are buffered in its mailbox.
func (x *StageBuilder[A]) Proxy() *Proxy[A] {
	return x.proxy.Clone()
}

// Finish hands the actor over and returns the Stage ready to Run.
// A builder can only be finished once.
func (x *StageBuilder[A]) Finish(actor A) *Stage[A] {
	if !x.finished.CompareAndSwap(false, true) {
		panic("actor: stage builder finished twice")
	}

	x.state.store(Built)
	return &Stage[A]{
		id:        x.id,
		actor:     actor,
		mailbox:   x.mailbox,
		state:     x.state,
		proxy:     x.proxy,
		directive: x.directive,
		logger:    x.logger,
		metric:    x.metric,
		done:      make(chan struct{}),
	}
}

// Spawn finishes the stage and runs it with the configured scheduler.
// The stage stops when ctx is done, so ctx must live as long as the actor should.
func (x *StageBuilder[A]) Spawn(ctx context.Context, actor A) (*Proxy[A], error) {
	stage := x.Finish(actor)
	proxy := stage.Proxy()
	if err := x.scheduler.Schedule(ctx, stage.ID(), stage.Run); err != nil {
		proxy.Release()
		return nil, err
	}
	return proxy, nil
}
