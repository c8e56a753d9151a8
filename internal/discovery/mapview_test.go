package discovery

import (
	"context"
	"testing"

	"github.com/PedroUbine06s/ajuda-ja-app/internal/api"
	"github.com/PedroUbine06s/ajuda-ja-app/internal/geo"
	"github.com/PedroUbine06s/ajuda-ja-app/internal/mocks"
	"github.com/PedroUbine06s/ajuda-ja-app/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newView(gw api.Gateway, locator geo.Locator, loggedIn bool) *MapView {
	logger := zap.NewNop().Sugar()
	sessions := session.NewStore(logger)
	if loggedIn {
		sessions.Set(api.User{ID: 1, UserType: api.UserTypeCommon}, "tok-1")
	}
	tracker := geo.NewTracker(locator, gw, sessions, logger)
	return NewMapView(gw, sessions, tracker, 0, logger)
}

func oneProviderMock() *mocks.GatewayMock {
	gw := mocks.NewGatewayMock()
	gw.FetchNearbyProvidersFunc = func(ctx context.Context, token string, latitude, longitude, radius float64) ([]api.Provider, error) {
		return []api.Provider{{
			ID:       1,
			Name:     "Maria Oliveira",
			Phone:    "(11) 98765-4321",
			Location: api.GeoPoint{Coordinates: []float64{-46.6, -23.5}},
			ProviderProfile: api.ProviderProfile{Services: []api.Service{
				{ID: 1, Name: "Eletricista"},
				{ID: 5, Name: "Jardinagem"},
			}},
		}}, nil
	}
	return gw
}

func TestLoadRendersOneMarkerPerProviderPlusSelf(t *testing.T) {
	view := newView(oneProviderMock(), mocks.NewLocatorMock(), true)
	require.NoError(t, view.Load(context.Background()))

	markers := view.Markers()
	require.Len(t, markers, 2)
	assert.True(t, markers[0].Self)

	provider := markers[1]
	assert.Equal(t, int64(1), provider.ProviderID)
	// wire order is [lng, lat]
	assert.Equal(t, -23.5, provider.Latitude)
	assert.Equal(t, -46.6, provider.Longitude)
}

func TestLoadPermissionDeniedSkipsNearbyQuery(t *testing.T) {
	locator := mocks.NewLocatorMock()
	locator.RequestPermissionFunc = func(ctx context.Context) (bool, error) { return false, nil }
	gw := oneProviderMock()

	view := newView(gw, locator, true)
	err := view.Load(context.Background())
	assert.ErrorIs(t, err, geo.ErrPermissionDenied)
	assert.Zero(t, gw.FetchNearbyProvidersCalls)
	assert.Zero(t, gw.UpdateUserLocationCalls)
	assert.Empty(t, view.Markers())
}

func TestLoadWithoutTokenRendersOnlySelf(t *testing.T) {
	gw := oneProviderMock()
	view := newView(gw, mocks.NewLocatorMock(), false)

	require.NoError(t, view.Load(context.Background()))
	assert.Zero(t, gw.FetchNearbyProvidersCalls)
	require.Len(t, view.Markers(), 1)
	assert.True(t, view.Markers()[0].Self)
}

func TestSelectOpensExactlyOneDetail(t *testing.T) {
	view := newView(oneProviderMock(), mocks.NewLocatorMock(), true)
	require.NoError(t, view.Load(context.Background()))

	_, open := view.Selected()
	assert.False(t, open, "no detail view before selecting")

	detail, err := view.Select(1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), detail.ProviderID)
	assert.Equal(t, "Maria Oliveira", detail.Name)
	assert.Equal(t, "Eletricista, Jardinagem", detail.Services)
	assert.Equal(t, "(11) 98765-4321", detail.Phone)

	got, open := view.Selected()
	require.True(t, open)
	assert.Equal(t, detail, got)

	view.Close()
	_, open = view.Selected()
	assert.False(t, open, "closing returns to zero open detail views")
}

func TestSelectUnknownProvider(t *testing.T) {
	view := newView(oneProviderMock(), mocks.NewLocatorMock(), true)
	require.NoError(t, view.Load(context.Background()))

	_, err := view.Select(42)
	assert.ErrorIs(t, err, ErrUnknownMarker)
	_, open := view.Selected()
	assert.False(t, open)
}

func TestFilterMatchesServiceNamesAndKeepsSelf(t *testing.T) {
	gw := mocks.NewGatewayMock()
	gw.FetchNearbyProvidersFunc = func(ctx context.Context, token string, latitude, longitude, radius float64) ([]api.Provider, error) {
		return []api.Provider{
			{ID: 1, Name: "Maria", ProviderProfile: api.ProviderProfile{Services: []api.Service{{ID: 1, Name: "Eletricista"}}}},
			{ID: 2, Name: "Carlos", ProviderProfile: api.ProviderProfile{Services: []api.Service{{ID: 2, Name: "Encanador"}}}},
		}, nil
	}
	view := newView(gw, mocks.NewLocatorMock(), true)
	require.NoError(t, view.Load(context.Background()))

	view.SetFilter("eletri")
	markers := view.Markers()
	require.Len(t, markers, 2)
	assert.True(t, markers[0].Self)
	assert.Equal(t, int64(1), markers[1].ProviderID)

	view.SetFilter("faxina")
	markers = view.Markers()
	require.Len(t, markers, 1)
	assert.True(t, markers[0].Self)

	view.SetFilter("")
	assert.Len(t, view.Markers(), 3)
}

func TestLoadDiscardsPreviousStateOnRefresh(t *testing.T) {
	view := newView(oneProviderMock(), mocks.NewLocatorMock(), true)
	require.NoError(t, view.Load(context.Background()))
	_, err := view.Select(1)
	require.NoError(t, err)

	require.NoError(t, view.Load(context.Background()))
	_, open := view.Selected()
	assert.False(t, open, "reload closes any open detail view")
}
