package rules

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/chrishsmith/sourcify-sub003/internal/model"
)

//go:embed tables/materials.yaml
var materialsTable []byte

// materialRoute is one row of the routing table.
type materialRoute struct {
	Material string `yaml:"material"`
	Context  string `yaml:"context,omitempty"`
	Chapter  string `yaml:"chapter"`
	Heading  string `yaml:"heading"`
	Note     string `yaml:"note,omitempty"`
}

// routingTable is the decoded materials.yaml document.
type routingTable struct {
	Version string          `yaml:"version"`
	Routes  []materialRoute `yaml:"routes"`
}

// MaterialRouter maps a normalized material token to a chapter/heading
// pair, used when the product's classifying characteristic is its
// material. Lookup is exact-match; a miss returns nil so the chain
// consults the oracle.
type MaterialRouter struct {
	logger *slog.Logger
	// byKey indexes routes by "material" and "material|context".
	byKey   map[string]materialRoute
	version string
}

// NewMaterialRouter loads the embedded routing table.
func NewMaterialRouter(logger *slog.Logger) (*MaterialRouter, error) {
	return newMaterialRouterFromYAML(materialsTable, logger)
}

func newMaterialRouterFromYAML(data []byte, logger *slog.Logger) (*MaterialRouter, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var table routingTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse material routing table: %w", err)
	}
	if table.Version == "" {
		return nil, fmt.Errorf("material routing table missing version")
	}

	byKey := make(map[string]materialRoute, len(table.Routes))
	for i, route := range table.Routes {
		if route.Material == "" || route.Chapter == "" || route.Heading == "" {
			return nil, fmt.Errorf("material route %d is incomplete", i)
		}
		if !strings.HasPrefix(route.Heading, route.Chapter) {
			return nil, fmt.Errorf("material route %d: heading %s not within chapter %s", i, route.Heading, route.Chapter)
		}
		key := routeKey(route.Material, route.Context)
		if _, dup := byKey[key]; dup {
			return nil, fmt.Errorf("duplicate material route for %q", key)
		}
		byKey[key] = route
	}

	logger.Debug("loaded material routing table",
		"version", table.Version,
		"routes", len(table.Routes))

	return &MaterialRouter{
		logger:  logger,
		byKey:   byKey,
		version: table.Version,
	}, nil
}

// Version returns the routing table's data version.
func (r *MaterialRouter) Version() string { return r.version }

// Name implements HeadingResolver.
func (r *MaterialRouter) Name() string { return "material-router" }

// Resolve implements HeadingResolver. Unknown material never routes:
// that is a trigger for the oracle or a clarifying question, not a guess.
func (r *MaterialRouter) Resolve(_ context.Context, u *model.ProductUnderstanding) (*HeadingRoute, error) {
	material := normalizeMaterial(u.Material)
	if material == "" || material == model.MaterialUnknown {
		return nil, nil
	}

	// Context-qualified routes take precedence over the bare material.
	route, ok := r.byKey[routeKey(material, u.UseContext)]
	if !ok {
		route, ok = r.byKey[routeKey(material, "")]
	}
	if !ok {
		return nil, nil
	}

	justification := fmt.Sprintf("Material %q routes to heading %s.", material, route.Heading)
	if route.Note != "" {
		justification = route.Note
	}

	return &HeadingRoute{
		Chapter:       route.Chapter,
		Heading:       route.Heading,
		Justification: justification,
		Source:        "material-router",
		Confidence:    0.85,
	}, nil
}

func routeKey(material, context string) string {
	if context == "" {
		return material
	}
	return material + "|" + context
}

func normalizeMaterial(material string) string {
	return strings.ToLower(strings.TrimSpace(material))
}
