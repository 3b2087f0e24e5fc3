// Package usecases holds what the command and query handlers share at the caller
// boundary: opening a session per attempt and retrying connectivity failures.
package usecases

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/logger"

	"go.uber.org/zap"
)

// DefaultAttempts is how many sessions an operation gets before giving up.
const DefaultAttempts = 3

// SessionRunner runs an operation against a fresh session, retrying with a new
// session when the attempt fails on connectivity. Any other failure is returned at
// once: data integrity problems do not go away by reconnecting.
type SessionRunner struct {
	factory  ports.SessionFactory
	attempts int
	logger   *zap.Logger
}

func NewSessionRunner(factory ports.SessionFactory, attempts int, log *zap.Logger) SessionRunner {
	if attempts < 1 {
		attempts = DefaultAttempts
	}
	return SessionRunner{
		factory:  factory,
		attempts: attempts,
		logger:   logger.Component(log, "session-runner"),
	}
}

// Run calls op with a new session per attempt and closes the session afterwards.
func Run[T any](ctx context.Context, r SessionRunner, op func(context.Context, ports.Session) (T, error)) (T, error) {
	var (
		zero    T
		lastErr error
	)

	for attempt := 1; attempt <= r.attempts; attempt++ {
		result, err := runOnce(ctx, r.factory, r.logger, op)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !errors.Is(err, errs.ErrConnectivity) || ctx.Err() != nil {
			return zero, err
		}

		r.logger.Warn("attempt failed, reconnecting",
			zap.Int("attempt", attempt),
			zap.Int("attempts", r.attempts),
			zap.Error(err))
	}

	return zero, fmt.Errorf("gave up after %d attempts: %w", r.attempts, lastErr)
}

func runOnce[T any](
	ctx context.Context,
	factory ports.SessionFactory,
	log *zap.Logger,
	op func(context.Context, ports.Session) (T, error),
) (result T, err error) {
	session, err := factory.Open(ctx)
	if err != nil {
		return result, err
	}
	defer func() {
		// A failed close after a successful operation does not undo it.
		if closeErr := session.Close(ctx); closeErr != nil {
			log.Warn("closing session failed", zap.Error(closeErr))
		}
	}()

	return op(ctx, session)
}
