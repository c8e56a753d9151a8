package hire

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/PedroUbine06s/ajuda-ja-app/internal/api"
	"github.com/PedroUbine06s/ajuda-ja-app/internal/session"
	"go.uber.org/zap"
)

var (
	// ErrNoPhone blocks the hire action before any network call when the
	// selected provider has no phone number.
	ErrNoPhone = errors.New("provider has no phone number")
	// ErrExternalAppUnavailable means the messaging deep link could not
	// be opened on this device.
	ErrExternalAppUnavailable = errors.New("messaging app unavailable")
)

// Launcher opens an external URI on the device.
type Launcher interface {
	Open(ctx context.Context, uri string) error
}

// ExecLauncher shells out to the OS opener (xdg-open and friends).
type ExecLauncher struct {
	Command string
}

func (l *ExecLauncher) Open(ctx context.Context, uri string) error {
	return exec.CommandContext(ctx, l.Command, uri).Run()
}

// Flow performs the hire handshake for a selected provider: create the
// service request against the backend, then hand the conversation off to
// the external messaging app.
type Flow struct {
	gateway     api.Gateway
	sessions    *session.Store
	launcher    Launcher
	countryCode string
	logger      *zap.SugaredLogger
}

func NewFlow(gateway api.Gateway, sessions *session.Store, launcher Launcher, countryCode string, logger *zap.SugaredLogger) *Flow {
	return &Flow{gateway: gateway, sessions: sessions, launcher: launcher, countryCode: countryCode, logger: logger}
}

// Hire submits a service request for the provider and opens the WhatsApp
// deep link for its phone. The request creation is fire-and-forget: its
// failure is logged but the messaging handoff still happens (shipped
// behavior, kept as documented).
func (f *Flow) Hire(ctx context.Context, providerID int64, phone string) error {
	if strings.TrimSpace(phone) == "" {
		return ErrNoPhone
	}

	token := f.sessions.Token()
	if token == "" {
		f.logger.Warnw("no session token, skipping service request", "provider_id", providerID)
	} else if err := f.gateway.CreateServiceRequest(ctx, token, providerID); err != nil {
		f.logger.Warnw("service request creation failed, proceeding to handoff anyway",
			"provider_id", providerID, "error", err)
	} else {
		f.logger.Infow("service request created", "provider_id", providerID)
	}

	link := WhatsAppLink(phone, f.countryCode)
	if err := f.launcher.Open(ctx, link); err != nil {
		return fmt.Errorf("%w: %v", ErrExternalAppUnavailable, err)
	}
	f.logger.Infow("messaging handoff opened", "provider_id", providerID, "link", link)
	return nil
}
