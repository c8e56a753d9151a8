package onboarding

import (
	"context"
	"errors"
	"testing"

	"github.com/PedroUbine06s/ajuda-ja-app/internal/api"
	"github.com/PedroUbine06s/ajuda-ja-app/internal/mocks"
	"github.com/PedroUbine06s/ajuda-ja-app/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func validForm(userType api.UserType) Form {
	return Form{
		Name:            "Ana",
		Email:           "ana@x.com",
		DateOfBirth:     "1990-01-01",
		Phone:           "11987654321",
		Address:         "Rua A",
		Password:        "p1",
		ConfirmPassword: "p1",
		UserType:        userType,
	}
}

func newFlow(gw api.Gateway) (*Flow, *session.Store) {
	sessions := session.NewStore(zap.NewNop().Sugar())
	return NewFlow(gw, sessions, zap.NewNop().Sugar()), sessions
}

func TestSubmitValidationNeverCallsAPI(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Form)
		wantFields  []string
		wantMessage string
	}{
		{
			name:        "empty name",
			mutate:      func(f *Form) { f.Name = "" },
			wantFields:  []string{"Name"},
			wantMessage: msgFillAllFields,
		},
		{
			name:        "whitespace only address",
			mutate:      func(f *Form) { f.Address = "   " },
			wantFields:  []string{"Address"},
			wantMessage: msgFillAllFields,
		},
		{
			name:        "password mismatch",
			mutate:      func(f *Form) { f.ConfirmPassword = "p2" },
			wantFields:  []string{"ConfirmPassword"},
			wantMessage: msgPasswordsMismatch,
		},
		{
			name: "everything empty",
			mutate: func(f *Form) {
				*f = Form{UserType: api.UserTypeCommon}
			},
			wantFields: []string{"Name", "Email", "DateOfBirth", "Phone", "Address", "Password", "ConfirmPassword"},
			// all fields missing, mismatch rule not triggered
			wantMessage: msgFillAllFields,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := mocks.NewGatewayMock()
			flow, sessions := newFlow(gw)

			form := validForm(api.UserTypeCommon)
			tt.mutate(&form)

			cont, err := flow.Submit(context.Background(), form)
			assert.Nil(t, cont)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.ElementsMatch(t, tt.wantFields, verr.Fields)
			assert.Equal(t, tt.wantMessage, verr.Message)
			assert.Equal(t, StateFailed, flow.State())

			assert.Zero(t, gw.RegisterUserCalls, "registration API must not be called")
			_, ok := sessions.Current()
			assert.False(t, ok)
		})
	}
}

func TestSubmitCommonRegistersOnce(t *testing.T) {
	gw := mocks.NewGatewayMock()
	var got api.RegisterPayload
	gw.RegisterUserFunc = func(ctx context.Context, payload api.RegisterPayload) (*api.AuthResponse, error) {
		got = payload
		return &api.AuthResponse{
			User:  api.User{ID: 1, Name: payload.Name, UserType: payload.UserType},
			Token: "tok-1",
		}, nil
	}
	flow, sessions := newFlow(gw)

	cont, err := flow.Submit(context.Background(), validForm(api.UserTypeCommon))
	require.NoError(t, err)
	assert.Nil(t, cont)
	assert.Equal(t, StateSuccess, flow.State())

	assert.Equal(t, 1, gw.RegisterUserCalls)
	assert.Equal(t, api.RegisterPayload{
		Name:        "Ana",
		Email:       "ana@x.com",
		DateOfBirth: "1990-01-01",
		Phone:       "11987654321",
		Address:     "Rua A",
		Password:    "p1",
		UserType:    api.UserTypeCommon,
	}, got)

	current, ok := sessions.Current()
	require.True(t, ok)
	assert.Equal(t, "tok-1", current.Token)
}

func TestSubmitProviderRedirectsWithoutRegistering(t *testing.T) {
	gw := mocks.NewGatewayMock()
	flow, _ := newFlow(gw)

	cont, err := flow.Submit(context.Background(), validForm(api.UserTypeProvider))
	require.NoError(t, err)
	require.NotNil(t, cont)
	assert.Equal(t, StateRedirect, flow.State())
	assert.Zero(t, gw.RegisterUserCalls)

	assert.Equal(t, api.UserTypeProvider, cont.Payload.UserType)
	assert.Equal(t, "ana@x.com", cont.Payload.Email)
	assert.Empty(t, cont.Payload.ServiceIDs)
}

func TestSubmitTrimsFieldsBeforeSending(t *testing.T) {
	gw := mocks.NewGatewayMock()
	var got api.RegisterPayload
	gw.RegisterUserFunc = func(ctx context.Context, payload api.RegisterPayload) (*api.AuthResponse, error) {
		got = payload
		return &api.AuthResponse{}, nil
	}
	flow, _ := newFlow(gw)

	form := validForm(api.UserTypeCommon)
	form.Name = "  Ana  "
	form.Email = " ana@x.com "
	_, err := flow.Submit(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)
	assert.Equal(t, "ana@x.com", got.Email)
}

func TestSubmitBackendFailureReturnsToEditing(t *testing.T) {
	gw := mocks.NewGatewayMock()
	backendErr := errors.New("request failed")
	gw.RegisterUserFunc = func(ctx context.Context, payload api.RegisterPayload) (*api.AuthResponse, error) {
		return nil, backendErr
	}
	flow, sessions := newFlow(gw)

	_, err := flow.Submit(context.Background(), validForm(api.UserTypeCommon))
	assert.ErrorIs(t, err, backendErr)
	assert.Equal(t, StateEditing, flow.State())
	_, ok := sessions.Current()
	assert.False(t, ok)
}

func TestLoginEmptyCredentialsSkipNetwork(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		fields   []string
	}{
		{name: "empty password", email: "ana@x.com", password: "", fields: []string{"Password"}},
		{name: "empty email", email: "", password: "p1", fields: []string{"Email"}},
		{name: "both blank", email: " ", password: "\t", fields: []string{"Email", "Password"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := mocks.NewGatewayMock()
			flow, _ := newFlow(gw)

			_, err := flow.Login(context.Background(), tt.email, tt.password)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.ElementsMatch(t, tt.fields, verr.Fields)
			assert.Zero(t, gw.LoginCalls)
		})
	}
}

func TestLoginSetsSessionAndReportsUserType(t *testing.T) {
	gw := mocks.NewGatewayMock()
	gw.LoginFunc = func(ctx context.Context, payload api.LoginPayload) (*api.AuthResponse, error) {
		return &api.AuthResponse{
			User:  api.User{ID: 3, UserType: api.UserTypeProvider},
			Token: "tok-3",
		}, nil
	}
	flow, sessions := newFlow(gw)

	userType, err := flow.Login(context.Background(), "p@x.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, api.UserTypeProvider, userType)
	assert.Equal(t, "tok-3", sessions.Token())
}
