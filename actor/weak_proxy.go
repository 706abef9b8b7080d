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

import "github.com/tochemey/stage/log"

// weakProxy reaches the stage mailbox without keeping the stage alive
type weakProxy[A any] struct {
	stageID string
	mailbox *mailbox[A]
	handles *handles
	state   *stateCell
	logger  log.Logger
}

// upgrade returns a strong proxy while at least one strong proxy is still alive
func (x *weakProxy[A]) upgrade() (*Proxy[A], bool) {
	if !x.handles.tryAcquire() {
		return nil, false
	}
	return newProxy(x.stageID, x.mailbox, x.handles, x.state, x.logger), true
}

// wake enqueues a stop notification, bypassing the state check that refuses
// regular sends once the stage is stopping
func (x *weakProxy[A]) wake() {
	_ = x.mailbox.enqueue(&stopRequested[A]{})
}
