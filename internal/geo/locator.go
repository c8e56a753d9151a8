package geo

import "context"

// Fix is a single resolved device location reading.
type Fix struct {
	Latitude  float64
	Longitude float64
}

// Locator abstracts the device's location services: one permission prompt
// and one position read. Implementations must not track continuously.
type Locator interface {
	// RequestPermission asks for foreground location access. A false
	// result with a nil error means the user refused.
	RequestPermission(ctx context.Context) (bool, error)
	// CurrentFix resolves a single position. Only valid after a granted
	// permission request.
	CurrentFix(ctx context.Context) (Fix, error)
}

// StaticLocator is the terminal client's stand-in for GPS hardware: a
// fixed coordinate pair and a configured permission answer.
type StaticLocator struct {
	Granted  bool
	Position Fix
}

func (l *StaticLocator) RequestPermission(ctx context.Context) (bool, error) {
	return l.Granted, nil
}

func (l *StaticLocator) CurrentFix(ctx context.Context) (Fix, error) {
	return l.Position, nil
}
