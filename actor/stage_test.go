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
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	gerrors "github.com/tochemey/stage/errors"
	"github.com/tochemey/stage/log"
)

func TestBackpressure(t *testing.T) {
	const capacity = 4
	actor := &counter{}
	proxy, stage, err := NewStage(actor, quietOptions(WithMailboxCapacity(capacity))...)
	require.NoError(t, err)

	// the stage is not running so nothing is consumed
	for range capacity {
		require.NoError(t, proxy.SendMessage(&counterIncrement{}))
	}
	require.ErrorIs(t, proxy.SendMessage(&counterIncrement{}), gerrors.ErrMailboxFull)
	_, err = SendRequest[*counter, int](proxy, &counterValue{})
	require.ErrorIs(t, err, gerrors.ErrMailboxFull)

	proxy.Release()
	require.NoError(t, awaitRun(t, runStage(context.Background(), stage)))
	assert.Equal(t, Stopped, stage.State())
	assert.Equal(t, capacity, actor.value)
}

func TestShutdownOnAbandonment(t *testing.T) {
	builder, remote, err := NewStageBuilder[*counter](quietOptions()...)
	require.NoError(t, err)

	stage := builder.Finish(&counter{})
	proxy := stage.Proxy()
	result := runStage(context.Background(), stage)

	value, err := Ask[*counter, int](context.Background(), proxy, &counterAdd{value: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, value)

	clone := proxy.Clone()
	proxy.Release()
	proxy.Release()

	// a clone keeps the stage alive
	value, err = Ask[*counter, int](context.Background(), clone, &counterAdd{value: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, value)

	clone.Release()
	require.NoError(t, awaitRun(t, result))

	assert.Equal(t, Stopped, stage.State())
	assert.Equal(t, Stopped, remote.State())
	select {
	case <-stage.Done():
	default:
		t.Fatal("done channel should be closed")
	}

	_, ok := remote.TryProxy()
	assert.False(t, ok)
	assert.Panics(t, func() { remote.Proxy() })
	assert.Panics(t, func() { stage.Proxy() })
	assert.Panics(t, func() { clone.Clone() })
}

func TestConcurrentCallers(t *testing.T) {
	proxy, stage, err := NewStage(&counter{}, quietOptions(WithMailboxCapacity(64))...)
	require.NoError(t, err)
	result := runStage(context.Background(), stage)

	ctx := context.Background()
	group, gctx := errgroup.WithContext(ctx)
	for range 10 {
		caller := proxy.Clone()
		group.Go(func() error {
			defer caller.Release()
			for range 10 {
				if _, err := Ask[*counter, int](gctx, caller, &counterAdd{value: 1}); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, group.Wait())

	value, err := Ask[*counter, int](ctx, proxy, &counterValue{})
	require.NoError(t, err)
	assert.Equal(t, 100, value)

	proxy.Release()
	require.NoError(t, awaitRun(t, result))
}

func TestReentrantCallsDoNotDeadlock(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	scheduler := NewGroupScheduler(0)
	fooBuilder, fooRemote, err := NewStageBuilder[*foo](quietOptions(WithScheduler(scheduler))...)
	require.NoError(t, err)
	barBuilder, barRemote, err := NewStageBuilder[*bar](quietOptions(WithScheduler(scheduler))...)
	require.NoError(t, err)

	const expected = 123
	results := make(chan int, 1)
	fooProxy, err := fooBuilder.Spawn(ctx, &foo{bar: barRemote.Proxy(), result: results})
	require.NoError(t, err)
	barProxy, err := barBuilder.Spawn(ctx, &bar{value: expected, foo: fooRemote.Proxy()})
	require.NoError(t, err)

	require.NoError(t, fooProxy.SendMessage(&fooTellBar{}))

	select {
	case actual := <-results:
		assert.Equal(t, expected, actual)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("actors deadlocked")
	}

	// the actors hold each other alive, so they are stopped through the context
	cancel()
	require.NoError(t, scheduler.Wait())
	assert.Equal(t, Stopped, fooRemote.State())
	assert.Equal(t, Stopped, barRemote.State())
	assert.Empty(t, scheduler.Running())

	fooProxy.Release()
	barProxy.Release()
}

func TestSelfStop(t *testing.T) {
	builder, remote, err := NewStageBuilder[*selfStopper](quietOptions()...)
	require.NoError(t, err)

	stage := builder.Finish(&selfStopper{remote: remote, threshold: 3})
	proxy := stage.Proxy()
	defer proxy.Release()
	result := runStage(context.Background(), stage)

	for i := 1; i <= 3; i++ {
		value, err := Ask[*selfStopper, int](context.Background(), proxy, &selfStopperAdd{value: 1})
		require.NoError(t, err)
		assert.Equal(t, i, value)
	}

	// the stop happened inside the last handler, before its result was delivered
	_, err = SendRequest[*selfStopper, int](proxy, &selfStopperAdd{value: 1})
	require.ErrorIs(t, err, gerrors.ErrActorStopped)
	require.ErrorIs(t, proxy.SendMessage(MessageFunc[*selfStopper](func(context.Context, *selfStopper) error { return nil })), gerrors.ErrActorStopped)

	require.NoError(t, awaitRun(t, result))
	assert.Equal(t, Stopped, stage.State())
	assert.NoError(t, remote.Stop())
}

func TestAbandonedRequest(t *testing.T) {
	proxy, stage, err := NewStage(&counter{}, quietOptions()...)
	require.NoError(t, err)
	result := runStage(context.Background(), stage)

	// nobody awaits this future
	_, err = SendRequest[*counter, int](proxy, &counterAdd{value: 5})
	require.NoError(t, err)

	// the caller gives up waiting
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Ask[*counter, int](ctx, proxy, &counterAdd{value: 5})
	require.ErrorIs(t, err, context.Canceled)

	value, err := Ask[*counter, int](context.Background(), proxy, &counterValue{})
	require.NoError(t, err)
	assert.Equal(t, 10, value)

	proxy.Release()
	require.NoError(t, awaitRun(t, result))
}

func TestHandlerErrors(t *testing.T) {
	buffer := new(logBuffer)
	actor := &counter{}
	proxy, stage, err := NewStage(actor, quietOptions(WithLogger(log.NewZap(log.ErrorLevel, buffer)))...)
	require.NoError(t, err)
	result := runStage(context.Background(), stage)

	_, err = Ask[*counter, int](context.Background(), proxy, &counterFail{})
	require.ErrorIs(t, err, errFixture)

	require.NoError(t, proxy.SendMessage(&counterFailMessage{}))
	require.NoError(t, proxy.SendMessage(&counterIncrement{}))

	value, err := Ask[*counter, int](context.Background(), proxy, &counterValue{})
	require.NoError(t, err)
	assert.Equal(t, 1, value)

	proxy.Release()
	require.NoError(t, awaitRun(t, result))
	assert.Contains(t, buffer.String(), errFixture.Error())
}

func TestStopDirective(t *testing.T) {
	t.Run("With a panicking request", func(t *testing.T) {
		buffer := new(logBuffer)
		actor := &counter{}
		proxy, stage, err := NewStage(actor, quietOptions(WithLogger(log.NewZap(log.WarningLevel, buffer)))...)
		require.NoError(t, err)
		defer proxy.Release()

		faulty, err := SendRequest[*counter, int](proxy, &counterPanic{})
		require.NoError(t, err)
		pending, err := SendRequest[*counter, int](proxy, &counterAdd{value: 1})
		require.NoError(t, err)
		require.NoError(t, proxy.SendMessage(&counterIncrement{}))

		runErr := awaitRun(t, runStage(context.Background(), stage))
		var panicErr *gerrors.PanicError
		require.ErrorAs(t, runErr, &panicErr)

		_, err = await(t, faulty)
		require.ErrorIs(t, err, gerrors.ErrActorStopped)
		require.ErrorAs(t, err, &panicErr)

		_, err = await(t, pending)
		require.ErrorIs(t, err, gerrors.ErrActorStopped)

		assert.Zero(t, actor.value)
		assert.Equal(t, Stopped, stage.State())
		assert.ErrorIs(t, proxy.SendMessage(&counterIncrement{}), gerrors.ErrActorStopped)
		assert.Contains(t, buffer.String(), "dropped")
	})
	t.Run("With a panicking message", func(t *testing.T) {
		proxy, stage, err := NewStage(&counter{}, quietOptions(WithDirective(StopDirective))...)
		require.NoError(t, err)
		defer proxy.Release()

		require.NoError(t, proxy.SendMessage(&counterPanicMessage{}))
		runErr := awaitRun(t, runStage(context.Background(), stage))
		var panicErr *gerrors.PanicError
		require.ErrorAs(t, runErr, &panicErr)
		assert.Contains(t, panicErr.Error(), "boom")
	})
	t.Run("With an error value", func(t *testing.T) {
		proxy, stage, err := NewStage(&counter{}, quietOptions()...)
		require.NoError(t, err)
		defer proxy.Release()

		faulty, err := SendRequest[*counter, int](proxy, &counterPanicError{})
		require.NoError(t, err)

		runErr := awaitRun(t, runStage(context.Background(), stage))
		require.ErrorIs(t, runErr, errFixture)

		_, err = await(t, faulty)
		require.ErrorIs(t, err, errFixture)
		require.True(t, gerrors.IsActorStopped(err))
	})
}

func TestResumeDirective(t *testing.T) {
	proxy, stage, err := NewStage(&counter{}, quietOptions(WithDirective(ResumeDirective))...)
	require.NoError(t, err)
	result := runStage(context.Background(), stage)

	_, err = Ask[*counter, int](context.Background(), proxy, &counterPanic{})
	var panicErr *gerrors.PanicError
	require.ErrorAs(t, err, &panicErr)
	require.False(t, errors.Is(err, gerrors.ErrActorStopped))

	require.NoError(t, proxy.SendMessage(&counterPanicMessage{}))

	value, err := Ask[*counter, int](context.Background(), proxy, &counterAdd{value: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, value)
	assert.Equal(t, Running, stage.State())

	proxy.Release()
	require.NoError(t, awaitRun(t, result))
}

func TestRunTwice(t *testing.T) {
	proxy, stage, err := NewStage(&counter{}, quietOptions()...)
	require.NoError(t, err)

	// releasing the last outside proxy wakes the stage up so it stops right away
	proxy.Release()
	require.NoError(t, awaitRun(t, runStage(context.Background(), stage)))
	require.ErrorIs(t, stage.Run(context.Background()), gerrors.ErrStageAlreadyStarted)
}

func TestContextCancellation(t *testing.T) {
	proxy, stage, err := NewStage(&counter{}, quietOptions()...)
	require.NoError(t, err)
	defer proxy.Release()

	ctx, cancel := context.WithCancel(context.Background())
	result := runStage(ctx, stage)

	value, err := Ask[*counter, int](context.Background(), proxy, &counterAdd{value: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, value)

	cancel()
	require.NoError(t, awaitRun(t, result))
	assert.Equal(t, Stopped, stage.State())
	assert.ErrorIs(t, proxy.SendMessage(&counterIncrement{}), gerrors.ErrActorStopped)
}

func TestGracefulDrain(t *testing.T) {
	builder, remote, err := NewStageBuilder[*counter](quietOptions()...)
	require.NoError(t, err)
	stage := builder.Finish(&counter{})
	proxy := stage.Proxy()
	defer proxy.Release()

	ctx, cancel := context.WithCancel(context.Background())
	result := runStage(ctx, stage)

	block := newCounterBlock()
	require.NoError(t, proxy.SendMessage(block))
	<-block.started

	first, err := SendRequest[*counter, int](proxy, &counterAdd{value: 1})
	require.NoError(t, err)
	second, err := SendRequest[*counter, int](proxy, &counterAdd{value: 2})
	require.NoError(t, err)

	require.NoError(t, remote.Stop())
	assert.Equal(t, Stopping, remote.State())
	require.ErrorIs(t, proxy.SendMessage(&counterIncrement{}), gerrors.ErrActorStopped)

	// buffered work is handled even when the run context is gone
	cancel()
	close(block.release)
	require.NoError(t, awaitRun(t, result))

	value, err := await(t, first)
	require.NoError(t, err)
	assert.Equal(t, 1, value)
	value, err = await(t, second)
	require.NoError(t, err)
	assert.Equal(t, 3, value)
}

func TestStageAccessors(t *testing.T) {
	proxy, stage, err := NewStage(&counter{}, quietOptions()...)
	require.NoError(t, err)

	assert.NotEmpty(t, stage.ID())
	assert.Equal(t, stage.ID(), proxy.ID())
	assert.Equal(t, Built, stage.State())
	assert.EqualValues(t, 2, proxy.count())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		<-stage.Done()
	}()

	proxy.Release()
	require.NoError(t, awaitRun(t, runStage(context.Background(), stage)))
	wg.Wait()
}
