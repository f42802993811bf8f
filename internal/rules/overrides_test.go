package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrishsmith/sourcify-sub003/internal/model"
)

func TestOverrideResolver(t *testing.T) {
	r := NewOverrideResolver(nil)
	ctx := context.Background()

	tests := []struct {
		name        string
		u           *model.ProductUnderstanding
		wantHeading string
		wantChapter string
	}{
		{
			name:        "carrying articles go to 4202 regardless of material",
			u:           &model.ProductUnderstanding{Material: "canvas", IsForCarrying: true},
			wantChapter: "42",
			wantHeading: "4202",
		},
		{
			name:        "toys go to 9503",
			u:           &model.ProductUnderstanding{Material: "plastic", IsToy: true},
			wantChapter: "95",
			wantHeading: "9503",
		},
		{
			name:        "imitation jewelry goes to 7117",
			u:           &model.ProductUnderstanding{Material: "glass", IsJewelry: true},
			wantChapter: "71",
			wantHeading: "7117",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			route, err := r.Resolve(ctx, tt.u)
			require.NoError(t, err)
			require.NotNil(t, route)
			assert.Equal(t, tt.wantChapter, route.Chapter)
			assert.Equal(t, tt.wantHeading, route.Heading)
			assert.InDelta(t, 0.95, route.Confidence, 0.0001)
			assert.NotEmpty(t, route.Justification)
		})
	}
}

func TestOverrideResolverNoMatch(t *testing.T) {
	r := NewOverrideResolver(nil)
	route, err := r.Resolve(context.Background(), &model.ProductUnderstanding{Material: "ceramic"})
	require.NoError(t, err)
	assert.Nil(t, route)
}

func TestOverrideBeatsCarryingPrecedence(t *testing.T) {
	// A product that is both a carrying article and a toy resolves by
	// rule order: carrying first.
	r := NewOverrideResolver(nil)
	route, err := r.Resolve(context.Background(), &model.ProductUnderstanding{IsForCarrying: true, IsToy: true})
	require.NoError(t, err)
	require.NotNil(t, route)
	assert.Equal(t, "4202", route.Heading)
}
