package mocks

import (
	"context"

	"github.com/PedroUbine06s/ajuda-ja-app/internal/geo"
)

// LocatorMock implements geo.Locator for tests. Defaults: permission
// granted, fix at the origin.
type LocatorMock struct {
	RequestPermissionFunc func(ctx context.Context) (bool, error)
	CurrentFixFunc        func(ctx context.Context) (geo.Fix, error)

	RequestPermissionCalls int
	CurrentFixCalls        int
}

func NewLocatorMock() *LocatorMock { return &LocatorMock{} }

func (m *LocatorMock) RequestPermission(ctx context.Context) (bool, error) {
	m.RequestPermissionCalls++
	if m.RequestPermissionFunc != nil {
		return m.RequestPermissionFunc(ctx)
	}
	return true, nil
}

func (m *LocatorMock) CurrentFix(ctx context.Context) (geo.Fix, error) {
	m.CurrentFixCalls++
	if m.CurrentFixFunc != nil {
		return m.CurrentFixFunc(ctx)
	}
	return geo.Fix{}, nil
}

// LauncherMock implements hire.Launcher for tests and records the URIs it
// was asked to open.
type LauncherMock struct {
	OpenFunc func(ctx context.Context, uri string) error

	OpenCalls int
	Opened    []string
}

func NewLauncherMock() *LauncherMock { return &LauncherMock{} }

func (m *LauncherMock) Open(ctx context.Context, uri string) error {
	m.OpenCalls++
	m.Opened = append(m.Opened, uri)
	if m.OpenFunc != nil {
		return m.OpenFunc(ctx, uri)
	}
	return nil
}
