package geo_test

import (
	"context"
	"errors"
	"testing"

	"github.com/PedroUbine06s/ajuda-ja-app/internal/api"
	"github.com/PedroUbine06s/ajuda-ja-app/internal/geo"
	"github.com/PedroUbine06s/ajuda-ja-app/internal/mocks"
	"github.com/PedroUbine06s/ajuda-ja-app/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTracker(locator geo.Locator, gw api.Gateway, loggedIn bool) *geo.Tracker {
	sessions := session.NewStore(zap.NewNop().Sugar())
	if loggedIn {
		sessions.Set(api.User{ID: 1, UserType: api.UserTypeCommon}, "tok-1")
	}
	return geo.NewTracker(locator, gw, sessions, zap.NewNop().Sugar())
}

func TestAcquirePermissionDeniedIsTerminal(t *testing.T) {
	locator := mocks.NewLocatorMock()
	locator.RequestPermissionFunc = func(ctx context.Context) (bool, error) { return false, nil }
	gw := mocks.NewGatewayMock()

	_, err := newTracker(locator, gw, true).Acquire(context.Background())
	assert.ErrorIs(t, err, geo.ErrPermissionDenied)
	assert.Zero(t, locator.CurrentFixCalls, "no fix attempt after refusal")
	assert.Zero(t, gw.UpdateUserLocationCalls, "no location-dependent call after refusal")
}

func TestAcquirePermissionErrorCountsAsDenied(t *testing.T) {
	locator := mocks.NewLocatorMock()
	locator.RequestPermissionFunc = func(ctx context.Context) (bool, error) { return false, errors.New("prompt crashed") }

	_, err := newTracker(locator, mocks.NewGatewayMock(), true).Acquire(context.Background())
	assert.ErrorIs(t, err, geo.ErrPermissionDenied)
}

func TestAcquireFixFailureIsDistinctFromDenial(t *testing.T) {
	locator := mocks.NewLocatorMock()
	locator.CurrentFixFunc = func(ctx context.Context) (geo.Fix, error) { return geo.Fix{}, errors.New("gps timeout") }
	gw := mocks.NewGatewayMock()

	_, err := newTracker(locator, gw, true).Acquire(context.Background())
	assert.ErrorIs(t, err, geo.ErrLocationUnavailable)
	assert.NotErrorIs(t, err, geo.ErrPermissionDenied)
	assert.Zero(t, gw.UpdateUserLocationCalls)
}

func TestAcquireWithoutTokenSkipsPush(t *testing.T) {
	locator := mocks.NewLocatorMock()
	locator.CurrentFixFunc = func(ctx context.Context) (geo.Fix, error) {
		return geo.Fix{Latitude: -23.5, Longitude: -46.6}, nil
	}
	gw := mocks.NewGatewayMock()

	fix, err := newTracker(locator, gw, false).Acquire(context.Background())
	require.NoError(t, err)
	assert.Equal(t, geo.Fix{Latitude: -23.5, Longitude: -46.6}, fix)
	assert.Zero(t, gw.UpdateUserLocationCalls)
}

func TestAcquirePushesFixWithToken(t *testing.T) {
	locator := mocks.NewLocatorMock()
	locator.CurrentFixFunc = func(ctx context.Context) (geo.Fix, error) {
		return geo.Fix{Latitude: -23.5, Longitude: -46.6}, nil
	}
	gw := mocks.NewGatewayMock()
	var gotToken string
	var gotLat, gotLng float64
	gw.UpdateUserLocationFunc = func(ctx context.Context, token string, latitude, longitude float64) error {
		gotToken, gotLat, gotLng = token, latitude, longitude
		return nil
	}

	_, err := newTracker(locator, gw, true).Acquire(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, gw.UpdateUserLocationCalls)
	assert.Equal(t, "tok-1", gotToken)
	assert.Equal(t, -23.5, gotLat)
	assert.Equal(t, -46.6, gotLng)
}

func TestAcquirePropagatesPushFailure(t *testing.T) {
	locator := mocks.NewLocatorMock()
	gw := mocks.NewGatewayMock()
	pushErr := &api.RequestError{StatusCode: 500, Message: "Falha ao atualizar a localização do usuário."}
	gw.UpdateUserLocationFunc = func(ctx context.Context, token string, latitude, longitude float64) error {
		return pushErr
	}

	_, err := newTracker(locator, gw, true).Acquire(context.Background())
	var reqErr *api.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, 500, reqErr.StatusCode)
}
