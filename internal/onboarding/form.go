package onboarding

import (
	"context"
	"errors"
	"strings"

	"github.com/PedroUbine06s/ajuda-ja-app/internal/api"
	"github.com/PedroUbine06s/ajuda-ja-app/internal/session"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// State tracks where the onboarding flow is in its lifecycle.
type State string

const (
	StateEditing    State = "EDITING"
	StateValidating State = "VALIDATING"
	StateSubmitting State = "SUBMITTING"
	StateRedirect   State = "REDIRECT"
	StateSuccess    State = "SUCCESS"
	StateFailed     State = "FAILED"
)

// Form holds the raw field values as typed by the user. Validation trims
// each value; required rules apply to the trimmed form.
type Form struct {
	Name            string `validate:"required"`
	Email           string `validate:"required"`
	DateOfBirth     string `validate:"required"`
	Phone           string `validate:"required"`
	Address         string `validate:"required"`
	Password        string `validate:"required"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
	UserType        api.UserType
}

// ValidationError is a local, pre-submit failure. The registration API is
// never called when one is raised.
type ValidationError struct {
	Fields  []string // names of the offending fields
	Message string   // blocking user-facing message
}

func (e *ValidationError) Error() string { return e.Message }

const (
	msgFillAllFields     = "Por favor, preencha todos os campos corretamente."
	msgPasswordsMismatch = "As senhas não coincidem."
	msgFillCredentials   = "Por favor, preencha o email e a senha."
)

// Continuation carries the collected payload from the provider branch to
// the service-selection step, which performs the actual registration.
type Continuation struct {
	Payload api.RegisterPayload
}

// Flow is the account onboarding state machine, also covering login since
// both produce the session pair.
type Flow struct {
	gateway  api.Gateway
	sessions *session.Store
	validate *validator.Validate
	logger   *zap.SugaredLogger
	state    State
}

func NewFlow(gateway api.Gateway, sessions *session.Store, logger *zap.SugaredLogger) *Flow {
	return &Flow{
		gateway:  gateway,
		sessions: sessions,
		validate: validator.New(),
		logger:   logger,
		state:    StateEditing,
	}
}

func (f *Flow) State() State { return f.state }

// Edit returns the flow to the editing state after a failure.
func (f *Flow) Edit() { f.state = StateEditing }

// Submit validates the form and either registers a common user or hands
// the payload over to service selection for providers. The returned
// Continuation is non-nil only on the provider branch.
func (f *Flow) Submit(ctx context.Context, form Form) (*Continuation, error) {
	f.state = StateValidating

	trimmed := Form{
		Name:            strings.TrimSpace(form.Name),
		Email:           strings.TrimSpace(form.Email),
		DateOfBirth:     strings.TrimSpace(form.DateOfBirth),
		Phone:           strings.TrimSpace(form.Phone),
		Address:         strings.TrimSpace(form.Address),
		Password:        strings.TrimSpace(form.Password),
		ConfirmPassword: strings.TrimSpace(form.ConfirmPassword),
		UserType:        form.UserType,
	}

	if verr := f.check(trimmed); verr != nil {
		f.state = StateFailed
		f.logger.Warnw("onboarding validation failed", "fields", verr.Fields)
		return nil, verr
	}

	payload := api.RegisterPayload{
		Name:        trimmed.Name,
		Email:       trimmed.Email,
		DateOfBirth: trimmed.DateOfBirth,
		Phone:       trimmed.Phone,
		Address:     trimmed.Address,
		Password:    trimmed.Password,
		UserType:    trimmed.UserType,
	}

	if trimmed.UserType == api.UserTypeProvider {
		f.state = StateRedirect
		return &Continuation{Payload: payload}, nil
	}

	f.state = StateSubmitting
	resp, err := f.gateway.RegisterUser(ctx, payload)
	if err != nil {
		f.state = StateEditing
		return nil, err
	}
	f.sessions.Set(resp.User, resp.Token)
	f.state = StateSuccess
	f.logger.Infow("account created", "user_id", resp.User.ID, "user_type", resp.User.UserType)
	return nil, nil
}

// Login produces a session from credentials and reports the user type so
// navigation can branch to the right home screen. Empty credentials fail
// locally with no network call.
func (f *Flow) Login(ctx context.Context, email, password string) (api.UserType, error) {
	var fields []string
	if strings.TrimSpace(email) == "" {
		fields = append(fields, "Email")
	}
	if strings.TrimSpace(password) == "" {
		fields = append(fields, "Password")
	}
	if len(fields) > 0 {
		return "", &ValidationError{Fields: fields, Message: msgFillCredentials}
	}

	resp, err := f.gateway.Login(ctx, api.LoginPayload{Email: email, Password: password})
	if err != nil {
		return "", err
	}
	f.sessions.Set(resp.User, resp.Token)
	return resp.User.UserType, nil
}

func (f *Flow) check(form Form) *ValidationError {
	err := f.validate.Struct(form)
	if err == nil {
		return nil
	}

	verr := &ValidationError{Message: msgFillAllFields}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return verr
	}
	mismatch := false
	for _, fe := range ve {
		verr.Fields = append(verr.Fields, fe.Field())
		if fe.Field() == "ConfirmPassword" && fe.Tag() == "eqfield" {
			mismatch = true
		}
	}
	if mismatch {
		verr.Message = msgPasswordsMismatch
	}
	return verr
}
