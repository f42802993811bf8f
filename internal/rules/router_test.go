package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrishsmith/sourcify-sub003/internal/model"
)

func TestMaterialRouterLoadsEmbeddedTable(t *testing.T) {
	r, err := NewMaterialRouter(nil)
	require.NoError(t, err)
	assert.NotEmpty(t, r.Version())
}

func TestMaterialRouterResolve(t *testing.T) {
	r, err := NewMaterialRouter(nil)
	require.NoError(t, err)
	ctx := context.Background()

	tests := []struct {
		name        string
		material    string
		wantChapter string
		wantHeading string
	}{
		{"ceramic", "ceramic", "69", "6912"},
		{"porcelain", "porcelain", "69", "6911"},
		{"glass", "glass", "70", "7013"},
		{"plastic", "plastic", "39", "3924"},
		{"wood", "wood", "44", "4419"},
		{"steel", "steel", "73", "7323"},
		{"case is normalized", "  Ceramic ", "69", "6912"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			route, resolveErr := r.Resolve(ctx, &model.ProductUnderstanding{Material: tt.material})
			require.NoError(t, resolveErr)
			require.NotNil(t, route)
			assert.Equal(t, tt.wantChapter, route.Chapter)
			assert.Equal(t, tt.wantHeading, route.Heading)
			assert.InDelta(t, 0.85, route.Confidence, 0.0001)
		})
	}
}

func TestMaterialRouterUnknownNeverRoutes(t *testing.T) {
	r, err := NewMaterialRouter(nil)
	require.NoError(t, err)

	for _, material := range []string{"", model.MaterialUnknown, "unobtainium"} {
		route, resolveErr := r.Resolve(context.Background(), &model.ProductUnderstanding{Material: material})
		require.NoError(t, resolveErr)
		assert.Nil(t, route, "material %q must not route", material)
	}
}

func TestMaterialRouterTableValidation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "missing version",
			yaml:    "routes:\n  - material: ceramic\n    chapter: \"69\"\n    heading: \"6912\"\n",
			wantErr: "missing version",
		},
		{
			name:    "incomplete route",
			yaml:    "version: test\nroutes:\n  - material: ceramic\n    chapter: \"69\"\n",
			wantErr: "incomplete",
		},
		{
			name:    "heading outside chapter",
			yaml:    "version: test\nroutes:\n  - material: ceramic\n    chapter: \"69\"\n    heading: \"7013\"\n",
			wantErr: "not within chapter",
		},
		{
			name: "duplicate route",
			yaml: "version: test\nroutes:\n" +
				"  - material: ceramic\n    chapter: \"69\"\n    heading: \"6912\"\n" +
				"  - material: ceramic\n    chapter: \"69\"\n    heading: \"6911\"\n",
			wantErr: "duplicate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newMaterialRouterFromYAML([]byte(tt.yaml), nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestChainFirstResolverWins(t *testing.T) {
	router, err := NewMaterialRouter(nil)
	require.NoError(t, err)
	chain := NewChain(NewOverrideResolver(nil), router)

	// A ceramic carrying case: the legal override outranks the material
	// route to chapter 69.
	route, err := chain.Resolve(context.Background(), &model.ProductUnderstanding{
		Material:      "ceramic",
		IsForCarrying: true,
	})
	require.NoError(t, err)
	require.NotNil(t, route)
	assert.Equal(t, "4202", route.Heading)

	// Without the carrying flag the material route applies.
	route, err = chain.Resolve(context.Background(), &model.ProductUnderstanding{Material: "ceramic"})
	require.NoError(t, err)
	require.NotNil(t, route)
	assert.Equal(t, "6912", route.Heading)
}

func TestChainExhausted(t *testing.T) {
	router, err := NewMaterialRouter(nil)
	require.NoError(t, err)
	chain := NewChain(NewOverrideResolver(nil), router)

	route, err := chain.Resolve(context.Background(), &model.ProductUnderstanding{Material: model.MaterialUnknown})
	require.NoError(t, err)
	assert.Nil(t, route)
}
