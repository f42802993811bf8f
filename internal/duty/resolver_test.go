package duty

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrishsmith/sourcify-sub003/internal/model"
	"github.com/chrishsmith/sourcify-sub003/internal/service"
)

type fakeStore struct {
	nodes map[string]model.HtsNode
}

func (s *fakeStore) GetNode(_ context.Context, code string) (*model.HtsNode, error) {
	if n, ok := s.nodes[code]; ok {
		return &n, nil
	}
	return nil, nil
}

func (s *fakeStore) GetChildren(_ context.Context, _ string) ([]model.HtsNode, error) {
	return nil, nil
}

func (s *fakeStore) Search(_ context.Context, _ string, _ service.SearchFilter) ([]model.HtsNode, error) {
	return nil, nil
}

func storeWith(nodes ...model.HtsNode) *fakeStore {
	s := &fakeStore{nodes: make(map[string]model.HtsNode)}
	for _, n := range nodes {
		s.nodes[n.Code] = n
	}
	return s
}

func TestResolveOwnRate(t *testing.T) {
	r := NewResolver(storeWith(), nil)

	node := &model.HtsNode{Code: "69120048", Level: model.LevelTariffLine, GeneralRate: "9.8%"}
	rate, err := r.Resolve(context.Background(), node)
	require.NoError(t, err)
	assert.Equal(t, "9.8%", rate.Rate)
	assert.Equal(t, "9.8%", rate.Normalized)
	assert.Empty(t, rate.InheritedFrom)
}

// The stored base rate survives alongside its normalized form.
func TestResolveKeepsBaseRate(t *testing.T) {
	r := NewResolver(storeWith(), nil)

	node := &model.HtsNode{Code: "69120048", Level: model.LevelTariffLine, GeneralRate: "9.8"}
	rate, err := r.Resolve(context.Background(), node)
	require.NoError(t, err)
	assert.Equal(t, "9.8", rate.Rate)
	assert.Equal(t, "9.8%", rate.Normalized)
}

func TestResolveInheritsFromTariffLine(t *testing.T) {
	store := storeWith(
		model.HtsNode{Code: "69120048", Level: model.LevelTariffLine, GeneralRate: "9.8%", ParentCode: "691200"},
	)
	r := NewResolver(store, nil)

	node := &model.HtsNode{Code: "6912004810", Level: model.LevelStatistical, ParentCode: "69120048"}
	rate, err := r.Resolve(context.Background(), node)
	require.NoError(t, err)
	assert.Equal(t, "9.8%", rate.Rate)
	assert.Equal(t, "9.8%", rate.Normalized)
	assert.Equal(t, "69120048", rate.InheritedFrom)
}

func TestResolveInheritsFromSubheading(t *testing.T) {
	// The tariff line exists but carries no rate; the subheading does.
	store := storeWith(
		model.HtsNode{Code: "69120048", Level: model.LevelTariffLine, ParentCode: "691200"},
		model.HtsNode{Code: "691200", Level: model.LevelSubheading, GeneralRate: "2", ParentCode: "6912"},
	)
	r := NewResolver(store, nil)

	node := &model.HtsNode{Code: "6912004810", Level: model.LevelStatistical, ParentCode: "69120048"}
	rate, err := r.Resolve(context.Background(), node)
	require.NoError(t, err)
	assert.Equal(t, "2", rate.Rate)
	assert.Equal(t, "2%", rate.Normalized)
	assert.Equal(t, "691200", rate.InheritedFrom)
}

func TestResolveDefaultsToFree(t *testing.T) {
	r := NewResolver(storeWith(), nil)

	node := &model.HtsNode{Code: "6912004810", Level: model.LevelStatistical, ParentCode: "69120048"}
	rate, err := r.Resolve(context.Background(), node)
	require.NoError(t, err)
	assert.Equal(t, "Free", rate.Normalized)
	assert.Empty(t, rate.Rate)
	assert.Empty(t, rate.InheritedFrom)
}

func TestResolveNilNode(t *testing.T) {
	r := NewResolver(storeWith(), nil)
	_, err := r.Resolve(context.Background(), nil)
	require.Error(t, err)
}

func TestNormalizeRate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"  ", ""},
		{"Free", "Free"},
		{"free", "Free"},
		{"0", "Free"},
		{"0%", "Free"},
		{"0.0%", "Free"},
		{"9.8", "9.8%"},
		{"9.8%", "9.8%"},
		{"20", "20%"},
		{"4.5 cents/kg", "4.5 cents/kg"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeRate(tt.in))
		})
	}
}
