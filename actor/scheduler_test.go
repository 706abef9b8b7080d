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
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerrors "github.com/tochemey/stage/errors"
	"github.com/tochemey/stage/log"
)

func TestGoScheduler(t *testing.T) {
	buffer := new(logBuffer)
	scheduler := NewGoScheduler(log.NewZap(log.ErrorLevel, buffer))

	done := make(chan struct{})
	require.NoError(t, scheduler.Schedule(context.Background(), "task-1", func(context.Context) error {
		defer close(done)
		return nil
	}))
	<-done

	failed := make(chan struct{})
	require.NoError(t, scheduler.Schedule(context.Background(), "task-2", func(context.Context) error {
		defer close(failed)
		return errFixture
	}))
	<-failed

	// the error is logged right after the task returns
	require.Eventually(t, func() bool {
		return strings.Contains(buffer.String(), "task-2")
	}, time.Second, 5*time.Millisecond)
}

func TestGroupScheduler(t *testing.T) {
	t.Run("With errors collected", func(t *testing.T) {
		scheduler := NewGroupScheduler(0)
		second := errors.New("second failure")

		require.NoError(t, scheduler.Schedule(context.Background(), "a", func(context.Context) error { return errFixture }))
		require.NoError(t, scheduler.Schedule(context.Background(), "b", func(context.Context) error { return second }))
		require.NoError(t, scheduler.Schedule(context.Background(), "c", func(context.Context) error { return nil }))

		err := scheduler.Wait()
		require.ErrorIs(t, err, errFixture)
		require.ErrorIs(t, err, second)
		assert.Empty(t, scheduler.Running())
	})
	t.Run("With duplicate identifiers", func(t *testing.T) {
		scheduler := NewGroupScheduler(0)
		release := make(chan struct{})
		task := func(context.Context) error {
			<-release
			return nil
		}

		require.NoError(t, scheduler.Schedule(context.Background(), "b", task))
		require.NoError(t, scheduler.Schedule(context.Background(), "a", task))
		require.ErrorIs(t, scheduler.Schedule(context.Background(), "a", task), gerrors.ErrTaskAlreadyScheduled)
		assert.Equal(t, []string{"a", "b"}, scheduler.Running())

		close(release)
		require.NoError(t, scheduler.Wait())
		assert.Empty(t, scheduler.Running())

		// an identifier can be reused once its task is done
		require.NoError(t, scheduler.Schedule(context.Background(), "a", func(context.Context) error { return nil }))
		require.NoError(t, scheduler.Wait())
	})
	t.Run("With a limit", func(t *testing.T) {
		scheduler := NewGroupScheduler(2)
		release := make(chan struct{})
		task := func(context.Context) error {
			<-release
			return nil
		}

		require.NoError(t, scheduler.Schedule(context.Background(), "a", task))
		require.NoError(t, scheduler.Schedule(context.Background(), "b", task))
		require.ErrorIs(t, scheduler.Schedule(context.Background(), "c", task), gerrors.ErrSchedulerFull)
		assert.Equal(t, []string{"a", "b"}, scheduler.Running())

		close(release)
		require.NoError(t, scheduler.Wait())
	})
	t.Run("With the task context", func(t *testing.T) {
		scheduler := NewGroupScheduler(0)
		ctx, cancel := context.WithCancel(context.Background())
		require.NoError(t, scheduler.Schedule(ctx, "a", func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		}))
		cancel()
		require.ErrorIs(t, scheduler.Wait(), context.Canceled)
	})
}
