package oracle

import (
	"context"
	"strings"
	"sync"

	"github.com/chrishsmith/sourcify-sub003/internal/service"
)

// MockOracle is a deterministic service.Oracle for tests. Responses are
// keyed by a substring of the request description; unmatched requests
// get the Default response or the configured error.
type MockOracle struct {
	// Responses maps a description substring to a canned response.
	Responses map[string]service.OracleResponse
	// Default is returned when no substring matches.
	Default service.OracleResponse
	// Err, when set, is returned for every call.
	Err error

	mu    sync.Mutex
	calls []service.OracleRequest
}

// Classify implements service.Oracle.
func (m *MockOracle) Classify(_ context.Context, req service.OracleRequest) (service.OracleResponse, error) {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	m.mu.Unlock()

	if m.Err != nil {
		return service.OracleResponse{}, m.Err
	}

	for substring, resp := range m.Responses {
		if strings.Contains(strings.ToLower(req.Description), strings.ToLower(substring)) {
			return resp, nil
		}
	}
	return m.Default, nil
}

// Calls returns a copy of the requests seen so far.
func (m *MockOracle) Calls() []service.OracleRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]service.OracleRequest, len(m.calls))
	copy(out, m.calls)
	return out
}
