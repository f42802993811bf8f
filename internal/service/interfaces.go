// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/chrishsmith/sourcify-sub003/internal/model"
)

// SearchFilter narrows a full-text search over the hierarchy.
type SearchFilter struct {
	// Chapter restricts matches to a 2-digit chapter when non-empty.
	Chapter string
	// Level restricts matches to a single hierarchy level when non-empty.
	Level model.Level
	// Limit caps the number of results; 0 means the store default.
	Limit int
}

// HierarchyStore is the read-only contract for the tariff-code tree.
// Implementations must be safe for concurrent reads; this subsystem
// never writes published codes.
type HierarchyStore interface {
	// GetNode returns the node for a code, or (nil, nil) when the code
	// is not in the hierarchy.
	GetNode(ctx context.Context, code string) (*model.HtsNode, error)
	// GetChildren returns the immediate children of a code, ordered by code.
	GetChildren(ctx context.Context, code string) ([]model.HtsNode, error)
	// Search performs a full-text search over node descriptions.
	Search(ctx context.Context, term string, filter SearchFilter) ([]model.HtsNode, error)
}

// OracleRequest is the input contract for the classification oracle.
type OracleRequest struct {
	Description string
	Material    string
	Use         string
	ProductType string
}

// OracleCode is one level of the oracle's answer. Confidence is the
// oracle's self-reported estimate in [0,1], not independently derived.
type OracleCode struct {
	Code       string
	Name       string
	Confidence float64
}

// OracleResponse is the oracle's candidate chapter and heading.
type OracleResponse struct {
	Chapter OracleCode
	Heading OracleCode
}

// Oracle is the narrow interface to the external classification service.
// Implementations live behind network calls; tests substitute a
// deterministic stub.
type Oracle interface {
	Classify(ctx context.Context, req OracleRequest) (OracleResponse, error)
}

// RetryOptions configures retry behavior for network-bound operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
