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

import "context"

// NewStage builds a stage around actor without running it.
// The caller is expected to run the stage, usually on its own goroutine.
func NewStage[A any](actor A, opts ...Option) (*Proxy[A], *Stage[A], error) {
	builder, _, err := NewStageBuilder[A](opts...)
	if err != nil {
		return nil, nil, err
	}
	stage := builder.Finish(actor)
	return stage.Proxy(), stage, nil
}

// Spawn builds a stage around actor and runs it with the configured scheduler
func Spawn[A any](ctx context.Context, actor A, opts ...Option) (*Proxy[A], error) {
	builder, _, err := NewStageBuilder[A](opts...)
	if err != nil {
		return nil, err
	}
	return builder.Spawn(ctx, actor)
}
