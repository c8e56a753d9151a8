package mocks

import (
	"context"

	"github.com/PedroUbine06s/ajuda-ja-app/internal/api"
)

// GatewayMock implements api.Gateway for tests. Each method delegates to
// its func field when set and counts how often it was called; unset
// fields succeed with zero values.
type GatewayMock struct {
	FetchServiceCatalogFunc   func(ctx context.Context) ([]api.Service, error)
	RegisterUserFunc          func(ctx context.Context, payload api.RegisterPayload) (*api.AuthResponse, error)
	LoginFunc                 func(ctx context.Context, payload api.LoginPayload) (*api.AuthResponse, error)
	UpdateUserLocationFunc    func(ctx context.Context, token string, latitude, longitude float64) error
	FetchIncomingRequestsFunc func(ctx context.Context, token string) ([]api.ReceivedRequest, error)
	FetchNearbyProvidersFunc  func(ctx context.Context, token string, latitude, longitude, radius float64) ([]api.Provider, error)
	CreateServiceRequestFunc  func(ctx context.Context, token string, providerID int64) error

	FetchServiceCatalogCalls   int
	RegisterUserCalls          int
	LoginCalls                 int
	UpdateUserLocationCalls    int
	FetchIncomingRequestsCalls int
	FetchNearbyProvidersCalls  int
	CreateServiceRequestCalls  int
}

func NewGatewayMock() *GatewayMock { return &GatewayMock{} }

func (m *GatewayMock) FetchServiceCatalog(ctx context.Context) ([]api.Service, error) {
	m.FetchServiceCatalogCalls++
	if m.FetchServiceCatalogFunc != nil {
		return m.FetchServiceCatalogFunc(ctx)
	}
	return nil, nil
}

func (m *GatewayMock) RegisterUser(ctx context.Context, payload api.RegisterPayload) (*api.AuthResponse, error) {
	m.RegisterUserCalls++
	if m.RegisterUserFunc != nil {
		return m.RegisterUserFunc(ctx, payload)
	}
	return &api.AuthResponse{}, nil
}

func (m *GatewayMock) Login(ctx context.Context, payload api.LoginPayload) (*api.AuthResponse, error) {
	m.LoginCalls++
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, payload)
	}
	return &api.AuthResponse{}, nil
}

func (m *GatewayMock) UpdateUserLocation(ctx context.Context, token string, latitude, longitude float64) error {
	m.UpdateUserLocationCalls++
	if m.UpdateUserLocationFunc != nil {
		return m.UpdateUserLocationFunc(ctx, token, latitude, longitude)
	}
	return nil
}

func (m *GatewayMock) FetchIncomingRequests(ctx context.Context, token string) ([]api.ReceivedRequest, error) {
	m.FetchIncomingRequestsCalls++
	if m.FetchIncomingRequestsFunc != nil {
		return m.FetchIncomingRequestsFunc(ctx, token)
	}
	return nil, nil
}

func (m *GatewayMock) FetchNearbyProviders(ctx context.Context, token string, latitude, longitude, radius float64) ([]api.Provider, error) {
	m.FetchNearbyProvidersCalls++
	if m.FetchNearbyProvidersFunc != nil {
		return m.FetchNearbyProvidersFunc(ctx, token, latitude, longitude, radius)
	}
	return nil, nil
}

func (m *GatewayMock) CreateServiceRequest(ctx context.Context, token string, providerID int64) error {
	m.CreateServiceRequestCalls++
	if m.CreateServiceRequestFunc != nil {
		return m.CreateServiceRequestFunc(ctx, token, providerID)
	}
	return nil
}
