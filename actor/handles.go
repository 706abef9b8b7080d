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

import "go.uber.org/atomic"

// handles counts the live strong proxies of a stage.
// The stage keeps one proxy for itself, so the count stays at least 1 while it runs.
type handles struct {
	count *atomic.Int64
}

func newHandles() *handles {
	return &handles{count: atomic.NewInt64(1)}
}

func (x *handles) acquire() {
	x.count.Inc()
}

func (x *handles) release() int64 {
	return x.count.Dec()
}

// tryAcquire increments the count only when it is still positive.
// Once the count reaches zero nobody can resurrect the stage.
func (x *handles) tryAcquire() bool {
	for {
		current := x.count.Load()
		if current <= 0 {
			return false
		}
		if x.count.CompareAndSwap(current, current+1) {
			return true
		}
	}
}

func (x *handles) load() int64 {
	return x.count.Load()
}
