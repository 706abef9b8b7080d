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
	"time"

	"github.com/flowchartsman/retry"

	gerrors "github.com/tochemey/stage/errors"
)

// SendMessageWithRetry sends a message and retries while the mailbox is full.
//
// At most maxAttempts sends are made, waiting between them with an exponential
// backoff that starts at delay and never exceeds maxDelay. Any error other than
// ErrMailboxFull is returned immediately.
func SendMessageWithRetry[A any](ctx context.Context, proxy *Proxy[A], message Message[A], maxAttempts int, delay, maxDelay time.Duration) error {
	var lastErr error
	retrier := retry.NewRetrier(maxAttempts, delay, maxDelay)
	err := retrier.RunContext(ctx, func(context.Context) error {
		lastErr = proxy.SendMessage(message)
		if errors.Is(lastErr, gerrors.ErrMailboxFull) {
			return lastErr
		}
		// any other outcome ends the retries, lastErr carries it
		return nil
	})

	if err == nil {
		return lastErr
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return lastErr
}
