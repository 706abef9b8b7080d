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

package metric

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// stageIDKey is the attribute every stage measurement is tagged with
const stageIDKey = "stage.id"

// StageMetric defines the stage instrumentation
type StageMetric struct {
	meter metric.Meter
	attrs metric.MeasurementOption

	// Specifies the total number of envelopes handled
	processedCount metric.Int64Counter
	// Specifies the total number of handler panics
	panicCount metric.Int64Counter
	// Specifies the total number of messages discarded at shutdown
	droppedCount metric.Int64Counter
	// Specifies the handler duration expressed in milliseconds
	handleDuration metric.Int64Histogram
	// Specifies the number of envelopes waiting in the mailbox
	mailboxSize metric.Int64ObservableGauge
}

// NewStageMetric creates an instance of StageMetric for the stage identified by stageID
func NewStageMetric(meter metric.Meter, stageID string) (*StageMetric, error) {
	stageMetric := &StageMetric{
		meter: meter,
		attrs: metric.WithAttributeSet(attribute.NewSet(attribute.String(stageIDKey, stageID))),
	}

	var err error
	if stageMetric.processedCount, err = meter.Int64Counter(
		"stage_processed_count",
		metric.WithDescription("Total number of envelopes processed"),
	); err != nil {
		return nil, fmt.Errorf("failed to create processedCount instrument, %w", err)
	}

	if stageMetric.panicCount, err = meter.Int64Counter(
		"stage_panic_count",
		metric.WithDescription("Total number of handler panics"),
	); err != nil {
		return nil, fmt.Errorf("failed to create panicCount instrument, %w", err)
	}

	if stageMetric.droppedCount, err = meter.Int64Counter(
		"stage_dropped_count",
		metric.WithDescription("Total number of messages discarded at shutdown"),
	); err != nil {
		return nil, fmt.Errorf("failed to create droppedCount instrument, %w", err)
	}

	if stageMetric.handleDuration, err = meter.Int64Histogram(
		"stage_handle_duration",
		metric.WithDescription("The latency of envelopes processed in milliseconds"),
		metric.WithUnit("ms"),
	); err != nil {
		return nil, fmt.Errorf("failed to create handleDuration instrument, %w", err)
	}

	if stageMetric.mailboxSize, err = meter.Int64ObservableGauge(
		"stage_mailbox_size",
		metric.WithDescription("Number of envelopes waiting in the mailbox"),
	); err != nil {
		return nil, fmt.Errorf("failed to create mailboxSize instrument, %w", err)
	}

	return stageMetric, nil
}

// RecordProcessed records one handled envelope and how long its handler took
func (x *StageMetric) RecordProcessed(ctx context.Context, duration time.Duration) {
	x.processedCount.Add(ctx, 1, x.attrs)
	x.handleDuration.Record(ctx, duration.Milliseconds(), x.attrs)
}

// RecordPanic records a handler panic
func (x *StageMetric) RecordPanic(ctx context.Context) {
	x.panicCount.Add(ctx, 1, x.attrs)
}

// RecordDropped records messages discarded at shutdown
func (x *StageMetric) RecordDropped(ctx context.Context, count int64) {
	if count <= 0 {
		return
	}
	x.droppedCount.Add(ctx, count, x.attrs)
}

// ObserveMailbox registers a callback reporting the mailbox size.
// The returned Registration must be unregistered when the stage stops.
func (x *StageMetric) ObserveMailbox(size func() int64) (metric.Registration, error) {
	return x.meter.RegisterCallback(func(_ context.Context, observer metric.Observer) error {
		observer.ObserveInt64(x.mailboxSize, size(), x.attrs)
		return nil
	}, x.mailboxSize)
}

// ProcessedCount returns the processed envelopes counter
func (x *StageMetric) ProcessedCount() metric.Int64Counter {
	return x.processedCount
}

// PanicCount returns the handler panics counter
func (x *StageMetric) PanicCount() metric.Int64Counter {
	return x.panicCount
}

// DroppedCount returns the dropped messages counter
func (x *StageMetric) DroppedCount() metric.Int64Counter {
	return x.droppedCount
}

// HandleDuration returns the handler latency histogram
func (x *StageMetric) HandleDuration() metric.Int64Histogram {
	return x.handleDuration
}

// MailboxSize returns the mailbox size gauge
func (x *StageMetric) MailboxSize() metric.Int64ObservableGauge {
	return x.mailboxSize
}
