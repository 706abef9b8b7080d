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

package log

import (
	"io"
	golog "log"
	"os"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// DebugLogger writes entries at DebugLevel and above to os.Stdout.
	DebugLogger = NewZap(DebugLevel, os.Stdout)

	// DiscardLogger drops every entry.
	DiscardLogger Logger = discardLogger{}

	// DefaultLogger writes entries at InfoLevel and above to os.Stdout.
	// Stages use it unless configured otherwise.
	DefaultLogger = NewZap(InfoLevel, os.Stdout)
)

// timeLayout is the timestamp layout of every entry
const timeLayout = "2006-01-02T15:04:05.000000Z0700"

// zapLevels maps every valid Level to its zap counterpart
var zapLevels = map[Level]zapcore.Level{
	DebugLevel:   zapcore.DebugLevel,
	InfoLevel:    zapcore.InfoLevel,
	WarningLevel: zapcore.WarnLevel,
	ErrorLevel:   zapcore.ErrorLevel,
	PanicLevel:   zapcore.PanicLevel,
	FatalLevel:   zapcore.FatalLevel,
}

// Zap is the Logger backed by a zap JSON core
type Zap struct {
	base    *zap.Logger
	sugar   *zap.SugaredLogger
	outputs []io.Writer
}

var _ Logger = (*Zap)(nil)

// NewZap creates a Zap writing JSON entries at level and above to every writer.
// An unknown level falls back to DebugLevel.
func NewZap(level Level, writers ...io.Writer) *Zap {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(timeLayout)
	encoderConfig.EncodeDuration = zapcore.StringDurationEncoder

	sinks := make([]zapcore.WriteSyncer, len(writers))
	for i, writer := range writers {
		sinks[i] = zapcore.AddSync(writer)
	}

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zap.CombineWriteSyncers(sinks...), toZapLevel(level))
	return newZap(zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel)), writers)
}

func newZap(base *zap.Logger, outputs []io.Writer) *Zap {
	return &Zap{base: base, sugar: base.Sugar(), outputs: outputs}
}

// Debug logs at debug level
func (z *Zap) Debug(v ...any) { z.sugar.Debug(v...) }

// Debugf logs a formatted entry at debug level
func (z *Zap) Debugf(format string, v ...any) { z.sugar.Debugf(format, v...) }

// Info logs at info level
func (z *Zap) Info(v ...any) { z.sugar.Info(v...) }

// Infof logs a formatted entry at info level
func (z *Zap) Infof(format string, v ...any) { z.sugar.Infof(format, v...) }

// Warn logs at warn level
func (z *Zap) Warn(v ...any) { z.sugar.Warn(v...) }

// Warnf logs a formatted entry at warn level
func (z *Zap) Warnf(format string, v ...any) { z.sugar.Warnf(format, v...) }

// Error logs at error level with a stack trace
func (z *Zap) Error(v ...any) { z.sugar.Error(v...) }

// Errorf logs a formatted entry at error level with a stack trace
func (z *Zap) Errorf(format string, v ...any) { z.sugar.Errorf(format, v...) }

// Panic logs at panic level and then panics
func (z *Zap) Panic(v ...any) { z.sugar.Panic(v...) }

// Panicf logs a formatted entry at panic level and then panics
func (z *Zap) Panicf(format string, v ...any) { z.sugar.Panicf(format, v...) }

// Fatal logs at fatal level and then calls os.Exit(1)
func (z *Zap) Fatal(v ...any) { z.sugar.Fatal(v...) }

// Fatalf logs a formatted entry at fatal level and then calls os.Exit(1)
func (z *Zap) Fatalf(format string, v ...any) { z.sugar.Fatalf(format, v...) }

// Enabled reports whether entries at level are written
func (z *Zap) Enabled(level Level) bool {
	return z.base.Core().Enabled(toZapLevel(level))
}

// With returns a Logger that adds the key-value pairs to every entry.
// Keys must be strings, other keys are skipped together with their value.
// A trailing value without a key is recorded under "_".
func (z *Zap) With(keyValues ...any) Logger {
	fields := make([]zap.Field, 0, (len(keyValues)+1)/2)
	for i := 0; i < len(keyValues); i += 2 {
		if i == len(keyValues)-1 {
			fields = append(fields, zap.Any("_", keyValues[i]))
			break
		}
		if key, ok := keyValues[i].(string); ok {
			fields = append(fields, zap.Any(key, keyValues[i+1]))
		}
	}

	if len(fields) == 0 {
		return z
	}
	return newZap(z.base.With(fields...), z.outputs)
}

// LogLevel returns the minimum level written
func (z *Zap) LogLevel() Level {
	current := z.base.Level()
	for level, zapLevel := range zapLevels {
		if zapLevel == current {
			return level
		}
	}
	return InvalidLevel
}

// LogOutput returns the writers entries go to
func (z *Zap) LogOutput() []io.Writer {
	return z.outputs
}

// Flush syncs the file outputs to disk.
// Standard streams and non-file writers have nothing to sync.
func (z *Zap) Flush() error {
	var err error
	for _, output := range z.outputs {
		if file, ok := output.(*os.File); ok && !isStdStream(file) {
			err = multierr.Append(err, file.Sync())
		}
	}
	return err
}

// StdLogger returns a standard library logger writing through this logger
func (z *Zap) StdLogger() *golog.Logger {
	logger, _ := zap.NewStdLogAt(z.base, z.base.Level())
	return logger
}

func isStdStream(file *os.File) bool {
	return file == os.Stdout || file == os.Stderr ||
		file.Fd() == os.Stdout.Fd() || file.Fd() == os.Stderr.Fd()
}

func toZapLevel(level Level) zapcore.Level {
	if zapLevel, ok := zapLevels[level]; ok {
		return zapLevel
	}
	return zapcore.DebugLevel
}
