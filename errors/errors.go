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

package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrMailboxFull is returned when a non-blocking enqueue finds no room left in the actor mailbox.
	ErrMailboxFull = errors.New("mailbox is full")

	// ErrActorStopped is returned when the actor can no longer receive messages or
	// when a pending request will never be answered.
	ErrActorStopped = errors.New("actor is stopped")

	// ErrUnknown is returned when an enqueue failure cannot be classified.
	// Callers should treat it the same way as ErrActorStopped.
	ErrUnknown = errors.New("unknown mailbox failure")

	// ErrStageAlreadyStarted is returned when a stage is run more than once.
	ErrStageAlreadyStarted = errors.New("stage has already started")

	// ErrInvalidMailboxCapacity is returned when the mailbox capacity is not a positive integer.
	ErrInvalidMailboxCapacity = errors.New("mailbox capacity must be greater than zero")

	// ErrUndefinedLogger is returned when a stage is configured with a nil logger.
	ErrUndefinedLogger = errors.New("logger is not defined")

	// ErrUndefinedScheduler is returned when a stage is configured with a nil scheduler.
	ErrUndefinedScheduler = errors.New("scheduler is not defined")

	// ErrUndefinedMeterProvider is returned when a stage is configured with a nil meter provider.
	ErrUndefinedMeterProvider = errors.New("meter provider is not defined")

	// ErrInvalidDirective is returned when a stage is configured with an unknown fault directive.
	ErrInvalidDirective = errors.New("invalid fault directive")

	// ErrSchedulerFull is returned when a group scheduler already runs its maximum number of tasks.
	ErrSchedulerFull = errors.New("scheduler has reached its task limit")

	// ErrTaskAlreadyScheduled is returned when a task identifier is scheduled twice on the same group.
	ErrTaskAlreadyScheduled = errors.New("task is already scheduled")
)

// IsActorStopped reports whether err means the actor cannot be reached anymore.
// ErrUnknown is conservatively treated as a stopped actor.
func IsActorStopped(err error) bool {
	return errors.Is(err, ErrActorStopped) || errors.Is(err, ErrUnknown)
}

// NewErrUnknown wraps the underlying cause of an unclassified enqueue failure.
func NewErrUnknown(cause error) error {
	return fmt.Errorf("%w: %w", ErrUnknown, cause)
}

// StopError is returned when a stop is requested before the actor is running.
type StopError struct {
	// State is the actor state observed when the stop was attempted
	State fmt.Stringer
}

// enforce compilation error
var _ error = (*StopError)(nil)

// NewStopError creates an instance of StopError
func NewStopError(state fmt.Stringer) *StopError {
	return &StopError{State: state}
}

// Error implements the standard error interface
func (e *StopError) Error() string {
	return fmt.Sprintf("cannot stop actor while %s", e.State)
}

// PanicError defines the panic error
// wrapping the underlying error
type PanicError struct {
	err error
}

// enforce compilation error
var _ error = (*PanicError)(nil)

// NewPanicError creates an instance of PanicError
func NewPanicError(err error) *PanicError {
	return &PanicError{err}
}

// Error implements the standard error interface
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.err)
}

func (e *PanicError) Unwrap() error {
	return e.err
}
