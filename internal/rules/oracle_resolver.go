package rules

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chrishsmith/sourcify-sub003/internal/common"
	"github.com/chrishsmith/sourcify-sub003/internal/model"
	"github.com/chrishsmith/sourcify-sub003/internal/service"
)

// OracleResolver consults the external classification oracle when the
// deterministic resolvers have no route. The oracle's answer is trusted
// only after both returned codes are validated against the hierarchy
// store; a validation failure is fatal for the request and is never
// retried with different input.
type OracleResolver struct {
	oracle  service.Oracle
	store   service.HierarchyStore
	logger  *slog.Logger
	timeout time.Duration
}

// NewOracleResolver creates the oracle-backed resolver. A zero timeout
// defaults to 30 seconds.
func NewOracleResolver(oracle service.Oracle, store service.HierarchyStore, timeout time.Duration, logger *slog.Logger) *OracleResolver {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &OracleResolver{
		oracle:  oracle,
		store:   store,
		logger:  logger,
		timeout: timeout,
	}
}

// Name implements HeadingResolver.
func (r *OracleResolver) Name() string { return "oracle" }

// Resolve implements HeadingResolver. It is invoked at most once per
// request, bounded by the configured timeout.
func (r *OracleResolver) Resolve(ctx context.Context, u *model.ProductUnderstanding) (*HeadingRoute, error) {
	if r.oracle == nil {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	resp, err := r.oracle.Classify(ctx, service.OracleRequest{
		Description: u.Description,
		Material:    u.Material,
		Use:         u.UseContext,
		ProductType: u.ProductType,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrOracleUnavailable, err)
	}

	if err := r.validate(ctx, resp); err != nil {
		return nil, err
	}

	r.logger.Info("oracle resolved heading",
		"chapter", resp.Chapter.Code,
		"heading", resp.Heading.Code,
		"chapter_confidence", resp.Chapter.Confidence,
		"heading_confidence", resp.Heading.Confidence)

	return &HeadingRoute{
		Chapter:       resp.Chapter.Code,
		Heading:       resp.Heading.Code,
		Justification: fmt.Sprintf("Oracle classified the product under %s (%s).", resp.Heading.Code, resp.Heading.Name),
		Source:        "oracle",
		Confidence:    resp.Heading.Confidence,
	}, nil
}

// validate checks the oracle's codes against the hierarchy store. The
// self-reported confidences must also be sane before they feed into the
// aggregate.
func (r *OracleResolver) validate(ctx context.Context, resp service.OracleResponse) error {
	if resp.Chapter.Confidence < 0 || resp.Chapter.Confidence > 1 ||
		resp.Heading.Confidence < 0 || resp.Heading.Confidence > 1 {
		return fmt.Errorf("%w: confidence out of range", common.ErrOracleMalformed)
	}

	chapter, err := r.store.GetNode(ctx, resp.Chapter.Code)
	if err != nil {
		return fmt.Errorf("failed to validate oracle chapter: %w", err)
	}
	if chapter == nil {
		return fmt.Errorf("%w: chapter %s", common.ErrInvalidOracleCode, resp.Chapter.Code)
	}

	heading, err := r.store.GetNode(ctx, resp.Heading.Code)
	if err != nil {
		return fmt.Errorf("failed to validate oracle heading: %w", err)
	}
	if heading == nil {
		return fmt.Errorf("%w: heading %s", common.ErrInvalidOracleCode, resp.Heading.Code)
	}
	if heading.ParentCode != chapter.Code {
		return fmt.Errorf("%w: heading %s is not within chapter %s", common.ErrInvalidOracleCode, resp.Heading.Code, resp.Chapter.Code)
	}

	return nil
}
