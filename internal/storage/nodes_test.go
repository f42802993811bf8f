package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrishsmith/sourcify-sub003/internal/model"
	"github.com/chrishsmith/sourcify-sub003/internal/service"
	"github.com/chrishsmith/sourcify-sub003/internal/testutil"
)

func TestGetNode(t *testing.T) {
	db := testutil.SetupTestStore(t, testutil.CeramicsFixture())
	ctx := context.Background()

	node, err := db.Storage.GetNode(ctx, "6912")
	require.NoError(t, err)
	require.NotNil(t, node)
	assert.Equal(t, model.LevelHeading, node.Level)
	assert.Equal(t, "69", node.ParentCode)

	// Unknown codes are (nil, nil), not an error.
	node, err = db.Storage.GetNode(ctx, "9999")
	require.NoError(t, err)
	assert.Nil(t, node)
}

func TestGetNodeValidation(t *testing.T) {
	db := testutil.SetupTestStore(t, nil)

	_, err := db.Storage.GetNode(context.Background(), "")
	require.Error(t, err)

	//nolint:staticcheck // explicit nil context is the case under test
	_, err = db.Storage.GetNode(nil, "69")
	require.Error(t, err)
}

func TestGetChildrenOrdered(t *testing.T) {
	db := testutil.SetupTestStore(t, testutil.CeramicsFixture())
	ctx := context.Background()

	children, err := db.Storage.GetChildren(ctx, "69120048")
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, "6912004810", children[0].Code)
	assert.Equal(t, "6912004820", children[1].Code)

	children, err = db.Storage.GetChildren(ctx, "6912004810")
	require.NoError(t, err)
	assert.Empty(t, children)
}

func TestSearch(t *testing.T) {
	db := testutil.SetupTestStore(t, testutil.FullFixture())
	ctx := context.Background()

	t.Run("case insensitive", func(t *testing.T) {
		nodes, err := db.Storage.Search(ctx, "MUGS", service.SearchFilter{})
		require.NoError(t, err)
		require.Len(t, nodes, 1)
		assert.Equal(t, "6912004810", nodes[0].Code)
	})

	t.Run("chapter filter", func(t *testing.T) {
		nodes, err := db.Storage.Search(ctx, "drinking", service.SearchFilter{Chapter: "70"})
		require.NoError(t, err)
		require.NotEmpty(t, nodes)
		for _, n := range nodes {
			assert.Equal(t, "70", n.Code[:2])
		}
	})

	t.Run("level filter", func(t *testing.T) {
		nodes, err := db.Storage.Search(ctx, "tableware", service.SearchFilter{Level: model.LevelHeading})
		require.NoError(t, err)
		for _, n := range nodes {
			assert.Equal(t, model.LevelHeading, n.Level)
		}
		require.NotEmpty(t, nodes)
	})

	t.Run("limit", func(t *testing.T) {
		nodes, err := db.Storage.Search(ctx, "a", service.SearchFilter{Limit: 3})
		require.NoError(t, err)
		assert.LessOrEqual(t, len(nodes), 3)
	})

	t.Run("blank term", func(t *testing.T) {
		nodes, err := db.Storage.Search(ctx, "   ", service.SearchFilter{})
		require.NoError(t, err)
		assert.Empty(t, nodes)
	})
}

// LIKE wildcards in a search term match literally, not as patterns.
func TestSearchEscapesWildcards(t *testing.T) {
	db := testutil.SetupTestStore(t, testutil.CeramicsFixture())
	ctx := context.Background()

	// An unescaped "_" would match any character, turning "mug_" into
	// a hit on "mugs and steins".
	nodes, err := db.Storage.Search(ctx, "mug_", service.SearchFilter{})
	require.NoError(t, err)
	assert.Empty(t, nodes)

	// An unescaped "%" would match every row.
	nodes, err = db.Storage.Search(ctx, "%", service.SearchFilter{})
	require.NoError(t, err)
	assert.Empty(t, nodes)

	nodes, err = db.Storage.Search(ctx, "mugs", service.SearchFilter{})
	require.NoError(t, err)
	assert.NotEmpty(t, nodes)
}

func TestSaveNodesReplaces(t *testing.T) {
	db := testutil.SetupTestStore(t, testutil.CeramicsFixture())
	ctx := context.Background()

	update := []model.HtsNode{
		testutil.Node("6912004810", "Mugs and steins, revised", ""),
	}
	require.NoError(t, db.Storage.SaveNodes(ctx, update))

	node, err := db.Storage.GetNode(ctx, "6912004810")
	require.NoError(t, err)
	require.NotNil(t, node)
	assert.Equal(t, "Mugs and steins, revised", node.Description)

	count, err := db.Storage.CountNodes(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(testutil.CeramicsFixture()), count)
}

func TestSaveNodesRejectsInvalid(t *testing.T) {
	db := testutil.SetupTestStore(t, nil)

	bad := []model.HtsNode{{Code: "69.12", Level: model.LevelHeading, ParentCode: "69"}}
	err := db.Storage.SaveNodes(context.Background(), bad)
	require.Error(t, err)
}
