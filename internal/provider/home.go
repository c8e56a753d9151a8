package provider

import (
	"context"

	"github.com/PedroUbine06s/ajuda-ja-app/internal/api"
	"github.com/PedroUbine06s/ajuda-ja-app/internal/geo"
	"github.com/PedroUbine06s/ajuda-ja-app/internal/session"
	"go.uber.org/zap"
)

// Home drives the provider's home screen: publish the current position so
// common users can find this provider, then list the hire requests
// received so far.
type Home struct {
	gateway  api.Gateway
	sessions *session.Store
	tracker  *geo.Tracker
	logger   *zap.SugaredLogger

	requests []api.ReceivedRequest
}

func NewHome(gateway api.Gateway, sessions *session.Store, tracker *geo.Tracker, logger *zap.SugaredLogger) *Home {
	return &Home{gateway: gateway, sessions: sessions, tracker: tracker, logger: logger}
}

// Refresh runs once per screen activation: location protocol first, then
// the received-requests fetch. A missing token skips the fetch (logged).
func (h *Home) Refresh(ctx context.Context) error {
	h.requests = nil

	if _, err := h.tracker.Acquire(ctx); err != nil {
		return err
	}

	token := h.sessions.Token()
	if token == "" {
		h.logger.Warnw("no session token, skipping received-requests fetch")
		return nil
	}

	requests, err := h.gateway.FetchIncomingRequests(ctx, token)
	if err != nil {
		return err
	}
	h.requests = requests
	h.logger.Infow("received requests loaded", "count", len(requests))
	return nil
}

// Requests returns the incoming hire requests from the last Refresh.
func (h *Home) Requests() []api.ReceivedRequest {
	return h.requests
}
