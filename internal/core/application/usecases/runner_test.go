package usecases

import (
	"context"
	"errors"
	"testing"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type countingSession struct {
	ports.Session
	closed   *int
	closeErr error
}

func (s countingSession) Close(context.Context) error {
	*s.closed++
	return s.closeErr
}

type countingFactory struct {
	opened   int
	closed   int
	openErr  []error
	closeErr error
}

func (f *countingFactory) Open(context.Context) (ports.Session, error) {
	f.opened++
	if len(f.openErr) > 0 {
		err := f.openErr[0]
		f.openErr = f.openErr[1:]
		if err != nil {
			return nil, err
		}
	}
	return countingSession{closed: &f.closed, closeErr: f.closeErr}, nil
}

func TestRun_SucceedsFirstTime(t *testing.T) {
	factory := &countingFactory{}
	runner := NewSessionRunner(factory, 3, nil)

	got, err := Run(context.Background(), runner, func(context.Context, ports.Session) (string, error) {
		return "done", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "done", got)
	assert.Equal(t, 1, factory.opened)
	assert.Equal(t, 1, factory.closed)
}

func TestRun_RetriesConnectivityWithNewSession(t *testing.T) {
	factory := &countingFactory{}
	runner := NewSessionRunner(factory, 3, nil)
	calls := 0

	got, err := Run(context.Background(), runner, func(context.Context, ports.Session) (int, error) {
		calls++
		if calls < 3 {
			return 0, errs.NewConnectivityError("document store")
		}
		return calls, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, got)
	assert.Equal(t, 3, factory.opened)
	assert.Equal(t, 3, factory.closed)
}

func TestRun_RetriesFailedOpen(t *testing.T) {
	factory := &countingFactory{openErr: []error{errs.NewConnectivityError("head office")}}
	runner := NewSessionRunner(factory, 3, nil)

	_, err := Run(context.Background(), runner, func(context.Context, ports.Session) (bool, error) {
		return true, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, factory.opened)
	assert.Equal(t, 1, factory.closed)
}

func TestRun_GivesUpAfterAttempts(t *testing.T) {
	factory := &countingFactory{}
	runner := NewSessionRunner(factory, 3, nil)

	_, err := Run(context.Background(), runner, func(context.Context, ports.Session) (int, error) {
		return 0, errs.NewConnectivityError("reporting")
	})

	require.ErrorIs(t, err, errs.ErrConnectivity)
	assert.Contains(t, err.Error(), "3 attempts")
	assert.Equal(t, 3, factory.opened)
}

func TestRun_DoesNotRetryDataIntegrity(t *testing.T) {
	factory := &countingFactory{}
	runner := NewSessionRunner(factory, 3, nil)

	_, err := Run(context.Background(), runner, func(context.Context, ports.Session) (int, error) {
		return 0, errs.NewValueIsInvalidError("post code")
	})

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Equal(t, 1, factory.opened)
}

func TestRun_StopsWhenContextIsDone(t *testing.T) {
	factory := &countingFactory{}
	runner := NewSessionRunner(factory, 3, nil)
	ctx, cancel := context.WithCancel(context.Background())

	_, err := Run(ctx, runner, func(context.Context, ports.Session) (int, error) {
		cancel()
		return 0, errs.NewConnectivityErrorWithCause("document store", context.Canceled)
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 1, factory.opened)
}

func TestRun_LogsFailedClose(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	factory := &countingFactory{closeErr: errors.New("connection already closed")}
	runner := NewSessionRunner(factory, 3, zap.New(core))

	got, err := Run(context.Background(), runner, func(context.Context, ports.Session) (int, error) {
		return 7, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 7, got)
	assert.Equal(t, 1, factory.opened)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "closing session failed", entry.Message)
	assert.Equal(t, "connection already closed", entry.ContextMap()["error"])
}

func TestNewSessionRunner_DefaultsAttempts(t *testing.T) {
	runner := NewSessionRunner(&countingFactory{}, 0, nil)

	assert.Equal(t, DefaultAttempts, runner.attempts)
}
