// Package stubapi is an in-memory double of the AjudaJá backend for local
// development and end-to-end tests. It implements the REST contract the
// client consumes; nothing in the product code imports it.
package stubapi

import (
	"math"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/PedroUbine06s/ajuda-ja-app/internal/api"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const defaultRadiusMeters = 10000

type account struct {
	user         api.User
	passwordHash []byte
	serviceIDs   []int64
}

type serviceRequest struct {
	id          int64
	providerID  int64
	requesterID int64
}

// Server holds the fake backend state behind a fiber app.
type Server struct {
	app    *fiber.App
	logger *zap.SugaredLogger
	secret []byte

	mu            sync.Mutex
	nextUserID    int64
	nextRequestID int64
	users         map[int64]*account
	services      []api.Service
	requests      []serviceRequest
}

func New(logger *zap.SugaredLogger) *Server {
	s := &Server{
		logger:     logger,
		secret:     []byte("ajuda-ja-stub-secret"),
		nextUserID: 1,
		users:      map[int64]*account{},
		services: []api.Service{
			{ID: 1, Name: "Eletricista"},
			{ID: 2, Name: "Encanador"},
			{ID: 3, Name: "Carpinteira"},
			{ID: 4, Name: "Diarista"},
			{ID: 5, Name: "Jardinagem"},
			{ID: 6, Name: "Pintura"},
		},
		nextRequestID: 1,
	}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		logger.Infow("stub request",
			"method", c.Method(), "path", c.Path(),
			"status", c.Response().StatusCode(), "latency", time.Since(start))
		return err
	})

	app.Get("/services", s.handleServices)
	app.Post("/auth/register", s.handleRegister)
	app.Post("/auth/login", s.handleLogin)
	app.Patch("/users/me/location", s.handleLocation)
	app.Get("/service-requests/my-received-requests", s.handleReceivedRequests)
	app.Get("/users/nearby-providers", s.handleNearbyProviders)
	app.Post("/service-requests", s.handleCreateRequest)

	s.app = app
	return s
}

func (s *Server) App() *fiber.App { return s.app }

func (s *Server) Listen(addr string) error { return s.app.Listen(addr) }

// Listener serves on an existing listener; tests use it with a loopback
// port picked by the OS.
func (s *Server) Listener(ln net.Listener) error { return s.app.Listener(ln) }

func (s *Server) Shutdown() error { return s.app.Shutdown() }

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"message": message})
}

func (s *Server) handleServices(c *fiber.Ctx) error {
	return c.JSON(s.services)
}

func (s *Server) handleRegister(c *fiber.Ctx) error {
	var payload api.RegisterPayload
	if err := c.BodyParser(&payload); err != nil {
		return fail(c, fiber.StatusBadRequest, "Corpo da requisição inválido.")
	}

	for _, field := range []string{payload.Name, payload.Email, payload.DateOfBirth, payload.Phone, payload.Address, payload.Password} {
		if strings.TrimSpace(field) == "" {
			return fail(c, fiber.StatusBadRequest, "Campos obrigatórios ausentes.")
		}
	}
	if payload.UserType != api.UserTypeCommon && payload.UserType != api.UserTypeProvider {
		return fail(c, fiber.StatusBadRequest, "Tipo de usuário inválido.")
	}
	if payload.UserType == api.UserTypeProvider && len(payload.ServiceIDs) == 0 {
		return fail(c, fiber.StatusBadRequest, "Prestadores precisam informar serviços.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.MinCost)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Houve um erro ao criar o usuário.")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, acc := range s.users {
		if acc.user.Email == payload.Email {
			return fail(c, fiber.StatusConflict, "Email já cadastrado.")
		}
	}

	id := s.nextUserID
	s.nextUserID++
	acc := &account{
		user: api.User{
			ID:          id,
			Name:        payload.Name,
			Email:       payload.Email,
			UserType:    payload.UserType,
			DateOfBirth: payload.DateOfBirth,
			Phone:       payload.Phone,
			Address:     payload.Address,
		},
		passwordHash: hash,
		serviceIDs:   payload.ServiceIDs,
	}
	s.users[id] = acc

	token, err := s.mintToken(id)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Houve um erro ao criar o usuário.")
	}
	return c.Status(fiber.StatusCreated).JSON(api.AuthResponse{User: acc.user, Token: token})
}

func (s *Server) handleLogin(c *fiber.Ctx) error {
	var payload api.LoginPayload
	if err := c.BodyParser(&payload); err != nil {
		return fail(c, fiber.StatusBadRequest, "Corpo da requisição inválido.")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, acc := range s.users {
		if acc.user.Email != payload.Email {
			continue
		}
		if bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(payload.Password)) != nil {
			break
		}
		token, err := s.mintToken(acc.user.ID)
		if err != nil {
			return fail(c, fiber.StatusInternalServerError, "Houve um erro ao fazer o login.")
		}
		return c.JSON(api.AuthResponse{User: acc.user, Token: token})
	}
	return fail(c, fiber.StatusUnauthorized, "Credenciais inválidas.")
}

func (s *Server) handleLocation(c *fiber.Ctx) error {
	acc, err := s.authenticate(c)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "Token inválido.")
	}

	var body struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fail(c, fiber.StatusBadRequest, "Corpo da requisição inválido.")
	}

	s.mu.Lock()
	acc.user.Location = &api.GeoPoint{Type: "Point", Coordinates: []float64{body.Longitude, body.Latitude}}
	s.mu.Unlock()
	return c.JSON(fiber.Map{"location": acc.user.Location})
}

func (s *Server) handleNearbyProviders(c *fiber.Ctx) error {
	acc, err := s.authenticate(c)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "Token inválido.")
	}

	lat := c.QueryFloat("lat")
	lng := c.QueryFloat("lng")
	radius := c.QueryFloat("radius", defaultRadiusMeters)

	s.mu.Lock()
	defer s.mu.Unlock()
	out := []api.Provider{}
	for _, other := range s.users {
		if other.user.ID == acc.user.ID || other.user.UserType != api.UserTypeProvider || other.user.Location == nil {
			continue
		}
		d := haversineMeters(lat, lng, other.user.Location.Latitude(), other.user.Location.Longitude())
		if d > radius {
			continue
		}
		out = append(out, api.Provider{
			ID:              other.user.ID,
			Name:            other.user.Name,
			Phone:           other.user.Phone,
			Location:        *other.user.Location,
			ProviderProfile: api.ProviderProfile{Services: s.resolveServices(other.serviceIDs)},
		})
	}
	return c.JSON(out)
}

func (s *Server) handleCreateRequest(c *fiber.Ctx) error {
	acc, err := s.authenticate(c)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "Token inválido.")
	}

	var body struct {
		ServiceProviderID int64 `json:"serviceProviderId"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fail(c, fiber.StatusBadRequest, "Corpo da requisição inválido.")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	target, ok := s.users[body.ServiceProviderID]
	if !ok || target.user.UserType != api.UserTypeProvider {
		return fail(c, fiber.StatusNotFound, "Prestador não encontrado.")
	}

	id := s.nextRequestID
	s.nextRequestID++
	s.requests = append(s.requests, serviceRequest{id: id, providerID: target.user.ID, requesterID: acc.user.ID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

func (s *Server) handleReceivedRequests(c *fiber.Ctx) error {
	acc, err := s.authenticate(c)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "Token inválido.")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	out := []api.ReceivedRequest{}
	for _, r := range s.requests {
		if r.providerID != acc.user.ID {
			continue
		}
		requester, ok := s.users[r.requesterID]
		if !ok {
			continue
		}
		out = append(out, api.ReceivedRequest{
			ID:         r.id,
			CommonUser: api.Requester{Name: requester.user.Name, Phone: requester.user.Phone},
		})
	}
	return c.JSON(out)
}

func (s *Server) resolveServices(ids []int64) []api.Service {
	var out []api.Service
	for _, id := range ids {
		for _, svc := range s.services {
			if svc.ID == id {
				out = append(out, svc)
			}
		}
	}
	return out
}

func haversineMeters(lat1, lng1, lat2, lng2 float64) float64 {
	const earthRadius = 6371000.0
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadius * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
