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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric/noop"

	gerrors "github.com/tochemey/stage/errors"
	"github.com/tochemey/stage/log"
)

func TestOption(t *testing.T) {
	provider := noop.NewMeterProvider()
	scheduler := NewGroupScheduler(0)
	testCases := []struct {
		name     string
		option   Option
		expected stageConfig
	}{
		{
			name:   "WithMailboxCapacity",
			option: WithMailboxCapacity(32),
			expected: stageConfig{
				mailboxCapacity: 32,
			},
		},
		{
			name:   "WithLogger",
			option: WithLogger(log.DiscardLogger),
			expected: stageConfig{
				logger: log.DiscardLogger,
			},
		},
		{
			name:   "WithDirective",
			option: WithDirective(ResumeDirective),
			expected: stageConfig{
				directive: ResumeDirective,
			},
		},
		{
			name:   "WithMeterProvider",
			option: WithMeterProvider(provider),
			expected: stageConfig{
				meterProvider: provider,
			},
		},
		{
			name:   "WithScheduler",
			option: WithScheduler(scheduler),
			expected: stageConfig{
				scheduler:       scheduler,
				customScheduler: true,
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var config stageConfig
			tc.option.Apply(&config)
			assert.Equal(t, tc.expected, config)
		})
	}
}

func TestStageConfigDefaults(t *testing.T) {
	config := newStageConfig()
	assert.Equal(t, DefaultMailboxCapacity, config.mailboxCapacity)
	assert.Equal(t, log.DefaultLogger, config.logger)
	assert.Equal(t, StopDirective, config.directive)
	assert.Equal(t, otel.GetMeterProvider(), config.meterProvider)
	assert.IsType(t, &GoScheduler{}, config.scheduler)
	assert.False(t, config.customScheduler)
	require.NoError(t, config.Validate())

	// the default scheduler logs with the configured logger
	config = newStageConfig(WithLogger(log.DiscardLogger))
	goScheduler, ok := config.scheduler.(*GoScheduler)
	require.True(t, ok)
	assert.Equal(t, log.DiscardLogger, goScheduler.logger)
}

func TestStageConfigValidate(t *testing.T) {
	config := newStageConfig(
		WithMailboxCapacity(-1),
		WithLogger(nil),
		WithMeterProvider(nil),
		WithScheduler(nil),
		WithDirective(Directive(7)),
	)

	err := config.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, gerrors.ErrInvalidMailboxCapacity)
	assert.ErrorIs(t, err, gerrors.ErrUndefinedLogger)
	assert.ErrorIs(t, err, gerrors.ErrUndefinedMeterProvider)
	assert.ErrorIs(t, err, gerrors.ErrUndefinedScheduler)
	assert.ErrorIs(t, err, gerrors.ErrInvalidDirective)
}

func TestDirectiveString(t *testing.T) {
	assert.Equal(t, "Stop", StopDirective.String())
	assert.Equal(t, "Resume", ResumeDirective.String())
	assert.Equal(t, "Unknown", Directive(3).String())
}
