package testutil

import (
	"context"
	"sync"

	"timechat/timeapi"
)

// MockService implements model.TimeService for testing
type MockService struct {
	// Configurable responses
	PingFunc   func(ctx context.Context) error
	LookupFunc func(ctx context.Context, location string) (*timeapi.LookupResponse, error)

	mu        sync.Mutex
	pings     int
	locations []string
}

// NewMockService creates a mock service that is reachable and answers every
// lookup with TokyoResponse-style fields for the requested location.
func NewMockService() *MockService {
	mock := &MockService{}
	mock.PingFunc = mock.defaultPing
	mock.LookupFunc = mock.defaultLookup
	return mock
}

func (m *MockService) defaultPing(ctx context.Context) error {
	return nil
}

func (m *MockService) defaultLookup(ctx context.Context, location string) (*timeapi.LookupResponse, error) {
	resp := TokyoResponse()
	resp.Location = location
	return resp, nil
}

func (m *MockService) Ping(ctx context.Context) error {
	m.mu.Lock()
	m.pings++
	m.mu.Unlock()
	return m.PingFunc(ctx)
}

func (m *MockService) Lookup(ctx context.Context, location string) (*timeapi.LookupResponse, error) {
	m.mu.Lock()
	m.locations = append(m.locations, location)
	m.mu.Unlock()
	return m.LookupFunc(ctx, location)
}

// PingCount returns how many health checks were issued.
func (m *MockService) PingCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pings
}

// Lookups returns the locations passed to Lookup, in call order.
func (m *MockService) Lookups() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.locations...)
}

// TokyoResponse is the field-style body the service returns for "Tokyo".
func TokyoResponse() *timeapi.LookupResponse {
	return &timeapi.LookupResponse{
		Location: "Tokyo",
		Time:     "08:00",
		Date:     "2024-01-01",
		Day:      "Monday",
		Timezone: "JST",
	}
}

// TokyoMessage is TokyoResponse rendered for display.
const TokyoMessage = "Current time in Tokyo:\n🕒 Time: 08:00\n📅 Date: 2024-01-01\n📆 Day: Monday\n🌍 Timezone: JST"
