package onboarding

import (
	"context"
	"errors"

	"github.com/PedroUbine06s/ajuda-ja-app/internal/api"
	"github.com/PedroUbine06s/ajuda-ja-app/internal/session"
	"go.uber.org/zap"
)

// ErrNoServiceSelected blocks provider registration until at least one
// catalog service is chosen.
var ErrNoServiceSelected = errors.New("selecione pelo menos um serviço")

// ServiceSelection is the provider-only continuation of onboarding: pick
// offered services from the catalog, then finish the registration started
// on the account form.
type ServiceSelection struct {
	gateway  api.Gateway
	sessions *session.Store
	logger   *zap.SugaredLogger

	catalog  []api.Service
	loaded   bool
	selected []string // service names in selection order
}

func NewServiceSelection(gateway api.Gateway, sessions *session.Store, logger *zap.SugaredLogger) *ServiceSelection {
	return &ServiceSelection{gateway: gateway, sessions: sessions, logger: logger}
}

// Load fetches the service catalog. It runs once; later calls are no-ops.
func (s *ServiceSelection) Load(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	catalog, err := s.gateway.FetchServiceCatalog(ctx)
	if err != nil {
		return err
	}
	s.catalog = catalog
	s.loaded = true
	return nil
}

// Catalog returns the fetched catalog entries.
func (s *ServiceSelection) Catalog() []api.Service {
	return s.catalog
}

// Toggle adds the service name to the selection, or removes it when
// already selected. Toggle is its own inverse.
func (s *ServiceSelection) Toggle(name string) {
	for i, n := range s.selected {
		if n == name {
			s.selected = append(s.selected[:i], s.selected[i+1:]...)
			return
		}
	}
	s.selected = append(s.selected, name)
}

// Selected returns the chosen service names in selection order.
func (s *ServiceSelection) Selected() []string {
	return s.selected
}

// Finish maps the selected names back to catalog ids, merges them into
// the payload collected by the account form and registers the provider.
func (s *ServiceSelection) Finish(ctx context.Context, cont Continuation) error {
	if len(s.selected) == 0 {
		return &ValidationError{Fields: []string{"Services"}, Message: ErrNoServiceSelected.Error()}
	}

	chosen := make(map[string]bool, len(s.selected))
	for _, n := range s.selected {
		chosen[n] = true
	}
	var ids []int64
	for _, svc := range s.catalog {
		if chosen[svc.Name] {
			ids = append(ids, svc.ID)
		}
	}

	payload := cont.Payload
	payload.UserType = api.UserTypeProvider
	payload.ServiceIDs = ids

	resp, err := s.gateway.RegisterUser(ctx, payload)
	if err != nil {
		return err
	}
	s.sessions.Set(resp.User, resp.Token)
	s.logger.Infow("provider account created", "user_id", resp.User.ID, "services", len(ids))
	return nil
}
