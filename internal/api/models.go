package api

// UserType distinguishes people looking for services from people offering them.
type UserType string

const (
	UserTypeCommon   UserType = "COMMON"
	UserTypeProvider UserType = "PROVIDER"
)

// GeoPoint is the GeoJSON point shape the backend uses for user locations.
// Coordinates are ordered [longitude, latitude].
type GeoPoint struct {
	Type        string    `json:"type,omitempty"`
	Coordinates []float64 `json:"coordinates"`
}

func (p GeoPoint) Longitude() float64 {
	if len(p.Coordinates) < 2 {
		return 0
	}
	return p.Coordinates[0]
}

func (p GeoPoint) Latitude() float64 {
	if len(p.Coordinates) < 2 {
		return 0
	}
	return p.Coordinates[1]
}

// User is the identity record created server-side on registration.
type User struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	UserType    UserType  `json:"userType"`
	DateOfBirth string    `json:"dateOfBirth"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	Location    *GeoPoint `json:"location,omitempty"`
}

// AuthResponse is what /auth/register and /auth/login return.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// Service is one entry of the service catalog.
type Service struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ProviderProfile struct {
	Services []Service `json:"services"`
}

// Provider is the read-only projection returned by the nearby query.
type Provider struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Phone           string          `json:"phone"`
	Location        GeoPoint        `json:"location"`
	ProviderProfile ProviderProfile `json:"providerProfile"`
}

// RegisterPayload carries everything collected by the onboarding form.
// ServiceIDs is only set on the provider branch, after service selection.
type RegisterPayload struct {
	Name              string   `json:"name"`
	Email             string   `json:"email"`
	DateOfBirth       string   `json:"dateOfBirth"`
	Phone             string   `json:"phone"`
	Address           string   `json:"address"`
	Password          string   `json:"password"`
	UserType          UserType `json:"userType"`
	ServiceIDs        []int64  `json:"serviceIds,omitempty"`
	ProfilePictureURL string   `json:"profilePictureUrl,omitempty"`
}

type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Requester is the common-user slice a provider sees on a received request.
type Requester struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// ReceivedRequest is one entry of a provider's incoming-request list.
type ReceivedRequest struct {
	ID         int64     `json:"id"`
	CommonUser Requester `json:"commonUser"`
}
