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
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	gerrors "github.com/tochemey/stage/errors"
	"github.com/tochemey/stage/internal/validation"
	"github.com/tochemey/stage/log"
)

// DefaultMailboxCapacity is the number of envelopes a mailbox holds unless configured otherwise
const DefaultMailboxCapacity = 16

// Option is the interface that applies a configuration option.
type Option interface {
	// Apply sets the Option value of a config.
	Apply(config *stageConfig)
}

// enforce compilation error
var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(config *stageConfig)

// Apply applies the stage option
func (f OptionFunc) Apply(config *stageConfig) {
	f(config)
}

// WithMailboxCapacity sets the number of envelopes the mailbox can hold
func WithMailboxCapacity(capacity int) Option {
	return OptionFunc(func(config *stageConfig) {
		config.mailboxCapacity = capacity
	})
}

// WithLogger sets the stage logger
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(config *stageConfig) {
		config.logger = logger
	})
}

// WithDirective sets what the stage does when a handler panics
func WithDirective(directive Directive) Option {
	return OptionFunc(func(config *stageConfig) {
		config.directive = directive
	})
}

// WithMeterProvider sets the meter provider the stage instruments are created with
func WithMeterProvider(provider metric.MeterProvider) Option {
	return OptionFunc(func(config *stageConfig) {
		config.meterProvider = provider
	})
}

// WithScheduler sets the scheduler used to run spawned stages
func WithScheduler(scheduler Scheduler) Option {
	return OptionFunc(func(config *stageConfig) {
		config.scheduler = scheduler
		config.customScheduler = true
	})
}

// stageConfig holds the settings of a stage
type stageConfig struct {
	mailboxCapacity int
	logger          log.Logger
	directive       Directive
	meterProvider   metric.MeterProvider
	scheduler       Scheduler
	customScheduler bool
}

var _ validation.Validator = (*stageConfig)(nil)

func newStageConfig(opts ...Option) *stageConfig {
	config := &stageConfig{
		mailboxCapacity: DefaultMailboxCapacity,
		logger:          log.DefaultLogger,
		directive:       StopDirective,
		meterProvider:   otel.GetMeterProvider(),
	}

	for _, opt := range opts {
		opt.Apply(config)
	}

	if !config.customScheduler {
		config.scheduler = NewGoScheduler(config.logger)
	}
	return config
}

// Validate reports every invalid setting at once
func (x *stageConfig) Validate() error {
	return validation.New(validation.AllErrors()).
		AddValidator(validation.NewPositiveValidator(x.mailboxCapacity, gerrors.ErrInvalidMailboxCapacity)).
		AddValidator(validation.NewNilValidator(x.logger, gerrors.ErrUndefinedLogger)).
		AddValidator(validation.NewNilValidator(x.meterProvider, gerrors.ErrUndefinedMeterProvider)).
		AddValidator(validation.NewNilValidator(x.scheduler, gerrors.ErrUndefinedScheduler)).
		AddAssertion(x.directive.isValid(), gerrors.ErrInvalidDirective).
		Validate()
}
