package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chrishsmith/sourcify-sub003/internal/model"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
	ErrEmptySlice   = errors.New("slice cannot be empty")
	ErrInvalidNode  = errors.New("invalid hierarchy node")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateNodes validates a slice of hierarchy nodes.
func validateNodes(nodes []model.HtsNode) error {
	if nodes == nil {
		return fmt.Errorf("%w: nodes", ErrNilParameter)
	}
	if len(nodes) == 0 {
		return fmt.Errorf("%w: nodes", ErrEmptySlice)
	}

	for i := range nodes {
		if err := nodes[i].Validate(); err != nil {
			return fmt.Errorf("%w: node at index %d: %v", ErrInvalidNode, i, err)
		}
	}
	return nil
}
