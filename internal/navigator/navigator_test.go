package navigator

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrishsmith/sourcify-sub003/internal/model"
	"github.com/chrishsmith/sourcify-sub003/internal/scoring"
	"github.com/chrishsmith/sourcify-sub003/internal/service"
)

type fakeStore struct {
	nodes map[string]model.HtsNode
}

func newFakeStore(nodes ...model.HtsNode) *fakeStore {
	s := &fakeStore{nodes: make(map[string]model.HtsNode)}
	for _, n := range nodes {
		s.nodes[n.Code] = n
	}
	return s
}

func (s *fakeStore) GetNode(_ context.Context, code string) (*model.HtsNode, error) {
	if n, ok := s.nodes[code]; ok {
		return &n, nil
	}
	return nil, nil
}

func (s *fakeStore) GetChildren(_ context.Context, code string) ([]model.HtsNode, error) {
	var children []model.HtsNode
	for _, n := range s.nodes {
		if n.ParentCode == code {
			children = append(children, n)
		}
	}
	sort.Slice(children, func(i, j int) bool { return children[i].Code < children[j].Code })
	return children, nil
}

func (s *fakeStore) Search(_ context.Context, term string, _ service.SearchFilter) ([]model.HtsNode, error) {
	var out []model.HtsNode
	for _, n := range s.nodes {
		if strings.Contains(strings.ToLower(n.Description), strings.ToLower(term)) {
			out = append(out, n)
		}
	}
	return out, nil
}

func ceramicTree() *fakeStore {
	return newFakeStore(
		model.HtsNode{Code: "69", Level: model.LevelChapter, Description: "Ceramic products"},
		model.HtsNode{Code: "6912", Level: model.LevelHeading, Description: "Ceramic tableware, kitchenware, other household articles", ParentCode: "69"},
		model.HtsNode{Code: "691200", Level: model.LevelSubheading, Description: "Ceramic tableware and kitchenware", ParentCode: "6912"},
		model.HtsNode{Code: "69120048", Level: model.LevelTariffLine, Description: "Other ceramic tableware and kitchenware", ParentCode: "691200", GeneralRate: "9.8"},
		model.HtsNode{Code: "6912004810", Level: model.LevelStatistical, Description: "Mugs and steins", ParentCode: "69120048"},
		model.HtsNode{Code: "6912004820", Level: model.LevelStatistical, Description: "Plates and platters", ParentCode: "69120048"},
	)
}

func mugUnderstanding() *model.ProductUnderstanding {
	return &model.ProductUnderstanding{
		Description:       "ceramic coffee mug",
		ProductType:       "mug",
		CoreTerm:          "mug",
		Material:          "ceramic",
		IsHousehold:       true,
		IsFinished:        true,
		Keywords:          []string{"ceramic", "coffee", "mug"},
		SuggestedChapters: []string{"69"},
	}
}

func newNavigator(store service.HierarchyStore) *Navigator {
	return New(store, scoring.NewScorer(store, scoring.DefaultWeights(), nil), nil)
}

func TestNavigateToStatisticalLeaf(t *testing.T) {
	store := ceramicTree()
	n := newNavigator(store)

	path, err := n.Navigate(context.Background(), "6912", 0.85, mugUnderstanding())
	require.NoError(t, err)
	require.NotNil(t, path)

	assert.True(t, path.Complete)
	assert.Equal(t, "6912004810", path.FinalCode)
	require.NoError(t, path.Validate())
	require.Len(t, path.Steps, 4)
	assert.Equal(t, model.LevelHeading, path.Steps[0].Level)
	assert.Equal(t, model.LevelStatistical, path.Steps[3].Level)
	assert.InDelta(t, path.MeanConfidence(), path.Confidence, 0.0001)
}

func TestNavigateMaterialShortCircuit(t *testing.T) {
	store := newFakeStore(
		model.HtsNode{Code: "4419", Level: model.LevelHeading, Description: "Tableware and kitchenware, of wood", ParentCode: "44"},
		model.HtsNode{Code: "441911", Level: model.LevelSubheading, Description: "Of bamboo: bread boards and chopping boards", ParentCode: "4419"},
		model.HtsNode{Code: "441919", Level: model.LevelSubheading, Description: "Of wood, other", ParentCode: "4419"},
	)
	n := newNavigator(store)

	u := &model.ProductUnderstanding{Material: "bamboo", CoreTerm: "board", Keywords: []string{"bamboo", "board"}}
	path, err := n.Navigate(context.Background(), "4419", 0.85, u)
	require.NoError(t, err)

	// "of bamboo" matches the material pattern directly, bypassing the
	// scorer with high confidence.
	require.Len(t, path.Steps, 2)
	assert.Equal(t, "441911", path.Steps[1].Code)
	assert.InDelta(t, 0.95, path.Steps[1].Confidence, 0.0001)
}

func TestNavigateSingleChild(t *testing.T) {
	store := newFakeStore(
		model.HtsNode{Code: "6911", Level: model.LevelHeading, Description: "Tableware of porcelain or china", ParentCode: "69"},
		model.HtsNode{Code: "691110", Level: model.LevelSubheading, Description: "Tableware and kitchenware", ParentCode: "6911"},
	)
	n := newNavigator(store)

	u := &model.ProductUnderstanding{Material: "stoneware", CoreTerm: "dish", Keywords: []string{"dish"}}
	path, err := n.Navigate(context.Background(), "6911", 0.8, u)
	require.NoError(t, err)

	require.Len(t, path.Steps, 2)
	assert.InDelta(t, 0.9, path.Steps[1].Confidence, 0.0001)
}

func TestNavigateDeadEndAtStart(t *testing.T) {
	store := newFakeStore(
		model.HtsNode{Code: "6914", Level: model.LevelHeading, Description: "Other ceramic articles", ParentCode: "69"},
	)
	n := newNavigator(store)

	path, err := n.Navigate(context.Background(), "6914", 0.85, mugUnderstanding())
	require.NoError(t, err)

	assert.False(t, path.Complete)
	assert.Equal(t, "6914", path.FinalCode)
	assert.LessOrEqual(t, path.Confidence, 0.5)
}

func TestNavigateUnknownStart(t *testing.T) {
	n := newNavigator(ceramicTree())

	_, err := n.Navigate(context.Background(), "9999", 0.85, mugUnderstanding())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not in hierarchy")
}

func TestNavigateMarginConfidenceBounds(t *testing.T) {
	store := ceramicTree()
	n := newNavigator(store)

	path, err := n.Navigate(context.Background(), "6912", 0.85, mugUnderstanding())
	require.NoError(t, err)

	for _, step := range path.Steps {
		assert.GreaterOrEqual(t, step.Confidence, 0.5, "step %s", step.Code)
		assert.LessOrEqual(t, step.Confidence, 0.95, "step %s", step.Code)
	}
}
