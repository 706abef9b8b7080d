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
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/tochemey/stage/future"
	"github.com/tochemey/stage/log"
)

var errFixture = errors.New("fixture failure")

// counter is the actor most tests drive
type counter struct {
	value int
}

type counterAdd struct {
	value int
}

func (m *counterAdd) Handle(_ context.Context, actor *counter) (int, error) {
	actor.value += m.value
	return actor.value, nil
}

type counterValue struct{}

func (m *counterValue) Handle(_ context.Context, actor *counter) (int, error) {
	return actor.value, nil
}

type counterIncrement struct{}

func (m *counterIncrement) Handle(_ context.Context, actor *counter) error {
	actor.value++
	return nil
}

type counterFail struct{}

func (m *counterFail) Handle(context.Context, *counter) (int, error) {
	return 0, errFixture
}

type counterFailMessage struct{}

func (m *counterFailMessage) Handle(context.Context, *counter) error {
	return errFixture
}

type counterPanic struct{}

func (m *counterPanic) Handle(context.Context, *counter) (int, error) {
	panic("boom")
}

type counterPanicError struct{}

func (m *counterPanicError) Handle(context.Context, *counter) (int, error) {
	panic(errFixture)
}

type counterPanicMessage struct{}

func (m *counterPanicMessage) Handle(context.Context, *counter) error {
	panic("boom")
}

// counterBlock keeps the stage busy until release is closed
type counterBlock struct {
	started chan struct{}
	release chan struct{}
}

func newCounterBlock() *counterBlock {
	return &counterBlock{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (m *counterBlock) Handle(context.Context, *counter) error {
	close(m.started)
	<-m.release
	return nil
}

// selfStopper stops its own stage once its count reaches the threshold
type selfStopper struct {
	remote    *Remote[*selfStopper]
	threshold int
	count     int
}

type selfStopperAdd struct {
	value int
}

func (m *selfStopperAdd) Handle(_ context.Context, actor *selfStopper) (int, error) {
	actor.count += m.value
	if actor.count >= actor.threshold {
		if err := actor.remote.Stop(); err != nil {
			return 0, err
		}
	}
	return actor.count, nil
}

// foo and bar hold proxies to each other
type foo struct {
	bar    *Proxy[*bar]
	result chan int
}

type fooTellBar struct{}

// Handle waits on bar while bar calls back into foo
func (m *fooTellBar) Handle(ctx context.Context, actor *foo) error {
	_, err := Ask[*bar, bool](ctx, actor.bar, &barAddToFoo{})
	return err
}

type fooAdd struct {
	value int
}

func (m *fooAdd) Handle(_ context.Context, actor *foo) error {
	actor.result <- m.value
	return nil
}

type bar struct {
	value int
	foo   *Proxy[*foo]
}

type barAddToFoo struct{}

func (m *barAddToFoo) Handle(_ context.Context, actor *bar) (bool, error) {
	if err := actor.foo.SendMessage(&fooAdd{value: actor.value}); err != nil {
		return false, err
	}
	return true, nil
}

// quietOptions keeps test output clean
func quietOptions(opts ...Option) []Option {
	return append([]Option{
		WithLogger(log.DiscardLogger),
		WithMeterProvider(noop.NewMeterProvider()),
	}, opts...)
}

// runStage runs the stage on its own goroutine and returns the channel receiving Run's result
func runStage[A any](ctx context.Context, stage *Stage[A]) <-chan error {
	result := make(chan error, 1)
	go func() {
		result <- stage.Run(ctx)
	}()
	return result
}

// awaitRun waits for Run to return
func awaitRun(t *testing.T, result <-chan error) error {
	t.Helper()
	select {
	case err := <-result:
		return err
	case <-time.After(5 * time.Second):
		require.FailNow(t, "stage did not stop in time")
		return nil
	}
}

// await waits for a future with a bounded deadline
func await[T any](t *testing.T, result *future.Future[T]) (T, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return result.Await(ctx)
}

// logBuffer collects log output written from stage and scheduler goroutines
type logBuffer struct {
	mu     sync.Mutex
	buffer bytes.Buffer
}

func (x *logBuffer) Write(p []byte) (int, error) {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.buffer.Write(p)
}

func (x *logBuffer) String() string {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.buffer.String()
}
