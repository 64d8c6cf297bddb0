package main

import (
	"context"
	"errors"
	"time"

	"vending-machine/internal/core/ports"
)

// errSessionHeld means another terminal is already serving this machine.
var errSessionHeld = errors.New("another session is already running against this machine")

// acquireSession takes lock for owner and returns the function that drops it.
func acquireSession(ctx context.Context, lock ports.SessionLock, owner string, ttl time.Duration) (func() error, error) {
	ok, err := lock.Acquire(ctx, owner, ttl)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errSessionHeld
	}
	return func() error {
		// The run context is usually cancelled by now.
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return lock.Release(releaseCtx, owner)
	}, nil
}
