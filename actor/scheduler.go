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
	"slices"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	gerrors "github.com/tochemey/stage/errors"
	"github.com/tochemey/stage/log"
)

// Task is a unit of work handed to a Scheduler, typically a stage receive loop
type Task func(ctx context.Context) error

// Scheduler runs tasks, each on its own goroutine
type Scheduler interface {
	// Schedule starts the task identified by id. It must not block until the task completes.
	Schedule(ctx context.Context, id string, task Task) error
}

// GoScheduler starts every task on a new goroutine and logs the errors they return.
// It is the scheduler stages use unless told otherwise.
type GoScheduler struct {
	logger log.Logger
}

var _ Scheduler = (*GoScheduler)(nil)

// NewGoScheduler creates a GoScheduler
func NewGoScheduler(logger log.Logger) *GoScheduler {
	return &GoScheduler{logger: logger}
}

// Schedule starts the task on a new goroutine
func (x *GoScheduler) Schedule(ctx context.Context, id string, task Task) error {
	go func() {
		if err := task(ctx); err != nil {
			x.logger.Errorf("task %s stopped with error: %v", id, err)
		}
	}()
	return nil
}

// GroupScheduler runs tasks as a group that can be waited on.
// Task errors do not cancel the other tasks, they are collected and returned by Wait.
type GroupScheduler struct {
	group   errgroup.Group
	running mapset.Set[string]

	mu     sync.Mutex
	errors error
}

var _ Scheduler = (*GroupScheduler)(nil)

// NewGroupScheduler creates a GroupScheduler.
// When limit is positive, at most limit tasks run at the same time and
// Schedule fails with ErrSchedulerFull beyond that.
func NewGroupScheduler(limit int) *GroupScheduler {
	scheduler := &GroupScheduler{
		running: mapset.NewSet[string](),
	}
	if limit > 0 {
		scheduler.group.SetLimit(limit)
	}
	return scheduler
}

// Schedule starts the task unless a task with the same id is still running
func (x *GroupScheduler) Schedule(ctx context.Context, id string, task Task) error {
	if !x.running.Add(id) {
		return fmt.Errorf("%w: %s", gerrors.ErrTaskAlreadyScheduled, id)
	}

	started := x.group.TryGo(func() error {
		defer x.running.Remove(id)
		if err := task(ctx); err != nil {
			x.mu.Lock()
			x.errors = multierr.Append(x.errors, fmt.Errorf("task %s: %w", id, err))
			x.mu.Unlock()
		}
		return nil
	})

	if !started {
		x.running.Remove(id)
		return gerrors.ErrSchedulerFull
	}
	return nil
}

// Running returns the sorted identifiers of the tasks still running
func (x *GroupScheduler) Running() []string {
	ids := x.running.ToSlice()
	slices.Sort(ids)
	return ids
}

// Wait blocks until every scheduled task has returned and
// combines the errors they returned
func (x *GroupScheduler) Wait() error {
	_ = x.group.Wait()
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.errors
}
