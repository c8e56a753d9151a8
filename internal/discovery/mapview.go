package discovery

import (
	"context"
	"errors"
	"strings"

	"github.com/PedroUbine06s/ajuda-ja-app/internal/api"
	"github.com/PedroUbine06s/ajuda-ja-app/internal/geo"
	"github.com/PedroUbine06s/ajuda-ja-app/internal/session"
	"go.uber.org/zap"
)

// ErrUnknownMarker is returned when a selection targets a provider id that
// is not on the map.
var ErrUnknownMarker = errors.New("no such marker on the map")

// Marker is one pin on the map: either the user's own position (Self) or
// a nearby provider.
type Marker struct {
	ProviderID int64
	Name       string
	Latitude   float64
	Longitude  float64
	Services   []string
	Phone      string
	Self       bool
}

// Detail is the view opened by selecting a provider marker.
type Detail struct {
	ProviderID int64
	Name       string
	Services   string // catalog names joined by comma
	Phone      string
}

// MapView drives the common user's home screen: acquire a fix, query
// nearby providers, render markers, handle selection. Results are
// re-fetched on every Load, never cached.
type MapView struct {
	gateway  api.Gateway
	sessions *session.Store
	tracker  *geo.Tracker
	logger   *zap.SugaredLogger
	radius   float64

	markers  []Marker
	filter   string
	selected *Detail
}

func NewMapView(gateway api.Gateway, sessions *session.Store, tracker *geo.Tracker, radius float64, logger *zap.SugaredLogger) *MapView {
	return &MapView{gateway: gateway, sessions: sessions, tracker: tracker, radius: radius, logger: logger}
}

// Load runs the discovery pass: location protocol first, then the nearby
// query with the fix's coordinates. Any open detail view is discarded.
// Without a session token the query is skipped and only the self marker
// is rendered.
func (m *MapView) Load(ctx context.Context) error {
	m.markers = nil
	m.selected = nil

	fix, err := m.tracker.Acquire(ctx)
	if err != nil {
		return err
	}

	self := Marker{Name: "Você", Latitude: fix.Latitude, Longitude: fix.Longitude, Self: true}

	token := m.sessions.Token()
	if token == "" {
		m.logger.Warnw("no session token, skipping nearby query")
		m.markers = []Marker{self}
		return nil
	}

	providers, err := m.gateway.FetchNearbyProviders(ctx, token, fix.Latitude, fix.Longitude, m.radius)
	if err != nil {
		return err
	}

	markers := make([]Marker, 0, len(providers)+1)
	markers = append(markers, self)
	for _, p := range providers {
		names := make([]string, 0, len(p.ProviderProfile.Services))
		for _, s := range p.ProviderProfile.Services {
			names = append(names, s.Name)
		}
		markers = append(markers, Marker{
			ProviderID: p.ID,
			Name:       p.Name,
			Latitude:   p.Location.Latitude(),
			Longitude:  p.Location.Longitude(),
			Services:   names,
			Phone:      p.Phone,
		})
	}
	m.markers = markers
	m.logger.Infow("nearby providers rendered", "count", len(providers))
	return nil
}

// SetFilter narrows the rendered markers to providers offering a service
// whose name contains the query, case-insensitively. The self marker is
// always kept.
func (m *MapView) SetFilter(query string) {
	m.filter = strings.ToLower(strings.TrimSpace(query))
}

// Markers returns the pins currently visible under the active filter.
func (m *MapView) Markers() []Marker {
	if m.filter == "" {
		return m.markers
	}
	out := make([]Marker, 0, len(m.markers))
	for _, mk := range m.markers {
		if mk.Self || matchesFilter(mk.Services, m.filter) {
			out = append(out, mk)
		}
	}
	return out
}

func matchesFilter(services []string, filter string) bool {
	for _, s := range services {
		if strings.Contains(strings.ToLower(s), filter) {
			return true
		}
	}
	return false
}

// Select opens the detail view for the given provider marker. At most one
// detail view is open at a time; selecting replaces the previous one.
func (m *MapView) Select(providerID int64) (Detail, error) {
	for _, mk := range m.markers {
		if !mk.Self && mk.ProviderID == providerID {
			d := Detail{
				ProviderID: mk.ProviderID,
				Name:       mk.Name,
				Services:   strings.Join(mk.Services, ", "),
				Phone:      mk.Phone,
			}
			m.selected = &d
			return d, nil
		}
	}
	return Detail{}, ErrUnknownMarker
}

// Selected returns the open detail view, if any.
func (m *MapView) Selected() (Detail, bool) {
	if m.selected == nil {
		return Detail{}, false
	}
	return *m.selected, true
}

// Close dismisses the open detail view.
func (m *MapView) Close() {
	m.selected = nil
}
