package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Fallback messages surfaced when an error response carries no "message"
// field. Kept in Portuguese, matching what the app shows its users.
const (
	msgCatalogFailed  = "Não foi possível carregar a lista de serviços. Tente novamente."
	msgRegisterFailed = "Houve um erro ao criar o usuário."
	msgLoginFailed    = "Houve um erro ao fazer o login."
	msgLocationFailed = "Falha ao atualizar a localização do usuário."
	msgRequestsFailed = "Falha ao obter as solicitações de serviço."
	msgNearbyFailed   = "Falha ao obter provedores próximos."
	msgHireFailed     = "Falha ao criar solicitação de serviço."
)

// Gateway is the typed surface of the backend REST API. Flows depend on
// this interface; tests substitute it with a mock.
type Gateway interface {
	FetchServiceCatalog(ctx context.Context) ([]Service, error)
	RegisterUser(ctx context.Context, payload RegisterPayload) (*AuthResponse, error)
	Login(ctx context.Context, payload LoginPayload) (*AuthResponse, error)
	UpdateUserLocation(ctx context.Context, token string, latitude, longitude float64) error
	FetchIncomingRequests(ctx context.Context, token string) ([]ReceivedRequest, error)
	FetchNearbyProviders(ctx context.Context, token string, latitude, longitude, radius float64) ([]Provider, error)
	CreateServiceRequest(ctx context.Context, token string, providerID int64) error
}

// Client implements Gateway over plain HTTP. It performs no caching and no
// retries; each method is a single request-response exchange.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.SugaredLogger
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.SugaredLogger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

func (c *Client) FetchServiceCatalog(ctx context.Context) ([]Service, error) {
	var out []Service
	if err := c.do(ctx, http.MethodGet, "/services", "", nil, &out, msgCatalogFailed); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) RegisterUser(ctx context.Context, payload RegisterPayload) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", "", payload, &out, msgRegisterFailed); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, payload LoginPayload) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", payload, &out, msgLoginFailed); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateUserLocation(ctx context.Context, token string, latitude, longitude float64) error {
	body := map[string]float64{"latitude": latitude, "longitude": longitude}
	return c.do(ctx, http.MethodPatch, "/users/me/location", token, body, nil, msgLocationFailed)
}

func (c *Client) FetchIncomingRequests(ctx context.Context, token string) ([]ReceivedRequest, error) {
	var out []ReceivedRequest
	if err := c.do(ctx, http.MethodGet, "/service-requests/my-received-requests", token, nil, &out, msgRequestsFailed); err != nil {
		return nil, err
	}
	return out, nil
}

// FetchNearbyProviders queries providers around the given fix. A zero
// radius omits the parameter so the backend default applies.
func (c *Client) FetchNearbyProviders(ctx context.Context, token string, latitude, longitude, radius float64) ([]Provider, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(latitude, 'f', -1, 64))
	params.Set("lng", strconv.FormatFloat(longitude, 'f', -1, 64))
	if radius > 0 {
		params.Set("radius", strconv.FormatFloat(radius, 'f', -1, 64))
	}
	var out []Provider
	path := "/users/nearby-providers?" + params.Encode()
	if err := c.do(ctx, http.MethodGet, path, token, nil, &out, msgNearbyFailed); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateServiceRequest(ctx context.Context, token string, providerID int64) error {
	body := map[string]int64{"serviceProviderId": providerID}
	return c.do(ctx, http.MethodPost, "/service-requests", token, body, nil, msgHireFailed)
}

// do runs one exchange against the backend. Any failure, HTTP or
// transport, comes back as a *RequestError carrying fallback as its
// message unless the server supplied one.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any, fallback string) error {
	requestID := uuid.NewString()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return &RequestError{Message: fallback, cause: err}
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &RequestError{Message: fallback, cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.Debugw("calling backend", "method", method, "path", path, "request_id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warnw("backend unreachable", "method", method, "path", path, "request_id", requestID, "error", err)
		return &RequestError{Message: fallback, cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := fallback
		var eb errorBody
		if decodeErr := json.NewDecoder(resp.Body).Decode(&eb); decodeErr == nil && eb.Message != "" {
			msg = eb.Message
		}
		c.logger.Warnw("backend returned error", "method", method, "path", path,
			"request_id", requestID, "status", resp.StatusCode, "message", msg)
		return &RequestError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &RequestError{StatusCode: resp.StatusCode, Message: fallback, cause: fmt.Errorf("decoding response: %w", err)}
		}
	}
	return nil
}
