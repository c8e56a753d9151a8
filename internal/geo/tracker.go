package geo

import (
	"context"
	"errors"
	"fmt"

	"github.com/PedroUbine06s/ajuda-ja-app/internal/api"
	"github.com/PedroUbine06s/ajuda-ja-app/internal/session"
	"go.uber.org/zap"
)

var (
	// ErrPermissionDenied is terminal: the user refused location access
	// and no location-dependent call may be issued afterwards.
	ErrPermissionDenied = errors.New("location permission denied")
	// ErrLocationUnavailable means permission was granted but a position
	// could not be resolved.
	ErrLocationUnavailable = errors.New("current location unavailable")
)

// Tracker runs the location protocol a screen performs on activation:
// permission, then a single fix, then a backend push when a session token
// exists. The sequence runs once per call, never retries.
type Tracker struct {
	locator  Locator
	gateway  api.Gateway
	sessions *session.Store
	logger   *zap.SugaredLogger
}

func NewTracker(locator Locator, gateway api.Gateway, sessions *session.Store, logger *zap.SugaredLogger) *Tracker {
	return &Tracker{locator: locator, gateway: gateway, sessions: sessions, logger: logger}
}

// Acquire resolves the device position and pushes it to the backend.
// Permission refusal and fix failure come back as their own terminal
// errors; a failed push surfaces the underlying request error. A missing
// session token skips the push and is not an error.
func (t *Tracker) Acquire(ctx context.Context) (Fix, error) {
	granted, err := t.locator.RequestPermission(ctx)
	if err != nil || !granted {
		t.logger.Warnw("location permission refused", "error", err)
		return Fix{}, ErrPermissionDenied
	}

	fix, err := t.locator.CurrentFix(ctx)
	if err != nil {
		t.logger.Warnw("location fix failed", "error", err)
		return Fix{}, fmt.Errorf("%w: %v", ErrLocationUnavailable, err)
	}

	token := t.sessions.Token()
	if token == "" {
		t.logger.Warnw("no session token, skipping location update")
		return fix, nil
	}

	if err := t.gateway.UpdateUserLocation(ctx, token, fix.Latitude, fix.Longitude); err != nil {
		return Fix{}, err
	}
	t.logger.Infow("location updated", "lat", fix.Latitude, "lng", fix.Longitude)
	return fix, nil
}
