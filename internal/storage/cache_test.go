package storage

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrishsmith/sourcify-sub003/internal/model"
	"github.com/chrishsmith/sourcify-sub003/internal/service"
)

// countingStore tracks how many calls reach the underlying store.
type countingStore struct {
	mu       sync.Mutex
	getCalls int
	node     *model.HtsNode
}

func (s *countingStore) GetNode(_ context.Context, _ string) (*model.HtsNode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getCalls++
	return s.node, nil
}

func (s *countingStore) GetChildren(_ context.Context, _ string) ([]model.HtsNode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getCalls++
	if s.node == nil {
		return nil, nil
	}
	return []model.HtsNode{*s.node}, nil
}

func (s *countingStore) Search(_ context.Context, _ string, _ service.SearchFilter) ([]model.HtsNode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getCalls++
	return nil, nil
}

func (s *countingStore) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getCalls
}

func TestCachedStoreGetNode(t *testing.T) {
	inner := &countingStore{node: &model.HtsNode{Code: "6912", Level: model.LevelHeading}}
	cache := NewCachedStore(inner, time.Minute)
	defer cache.Close()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		node, err := cache.GetNode(ctx, "6912")
		require.NoError(t, err)
		require.NotNil(t, node)
	}
	assert.Equal(t, 1, inner.calls())
}

func TestCachedStoreCachesAbsence(t *testing.T) {
	inner := &countingStore{node: nil}
	cache := NewCachedStore(inner, time.Minute)
	defer cache.Close()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		node, err := cache.GetNode(ctx, "9999")
		require.NoError(t, err)
		assert.Nil(t, node)
	}
	assert.Equal(t, 1, inner.calls())
}

func TestCachedStoreExpiry(t *testing.T) {
	inner := &countingStore{node: &model.HtsNode{Code: "6912", Level: model.LevelHeading}}
	cache := NewCachedStore(inner, 20*time.Millisecond)
	defer cache.Close()
	ctx := context.Background()

	_, err := cache.GetNode(ctx, "6912")
	require.NoError(t, err)
	time.Sleep(30 * time.Millisecond)
	_, err = cache.GetNode(ctx, "6912")
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls())
}

func TestCachedStoreInvalidate(t *testing.T) {
	inner := &countingStore{node: &model.HtsNode{Code: "6912", Level: model.LevelHeading}}
	cache := NewCachedStore(inner, time.Minute)
	defer cache.Close()
	ctx := context.Background()

	_, err := cache.GetNode(ctx, "6912")
	require.NoError(t, err)
	cache.Invalidate()
	_, err = cache.GetNode(ctx, "6912")
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls())
}

func TestCachedStoreCloseStopsCleanup(t *testing.T) {
	cache := NewCachedStore(&countingStore{}, time.Minute)
	cache.Close()

	select {
	case <-cache.stopCh:
	default:
		t.Fatal("cleanup goroutine not signalled to stop")
	}
}

func TestCachedStoreSearchBypassesCache(t *testing.T) {
	inner := &countingStore{}
	cache := NewCachedStore(inner, time.Minute)
	defer cache.Close()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := cache.Search(ctx, "mug", service.SearchFilter{})
		require.NoError(t, err)
	}
	assert.Equal(t, 3, inner.calls())
}
