package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"penhub-service/internal/domain"
)

type stubWorkRepo struct {
	listFn func(ctx context.Context, scope domain.ListScope) ([]*domain.Work, int64, error)
}

func (s *stubWorkRepo) List(ctx context.Context, scope domain.ListScope) ([]*domain.Work, int64, error) {
	if s.listFn != nil {
		return s.listFn(ctx, scope)
	}

	return nil, 0, nil
}

func (s *stubWorkRepo) GetByID(context.Context, int64) (*domain.Work, error) { return nil, nil }

func (s *stubWorkRepo) GetVisible(context.Context, int64, string) (*domain.Work, error) {
	return nil, nil
}

func (s *stubWorkRepo) ListTrash(context.Context, string) ([]*domain.Work, error) {
	return nil, nil
}

func (s *stubWorkRepo) DistinctTags(context.Context, string) ([]string, error) { return nil, nil }
func (s *stubWorkRepo) Create(context.Context, *domain.Work, []string) error   { return nil }
func (s *stubWorkRepo) Update(context.Context, *domain.Work, []string) error   { return nil }

func (s *stubWorkRepo) SetTrash(context.Context, int64, bool) (*domain.Work, error) {
	return nil, nil
}

func (s *stubWorkRepo) SoftDelete(context.Context, int64) error     { return nil }
func (s *stubWorkRepo) IncrementViews(context.Context, int64) error { return nil }

func (s *stubWorkRepo) SweepTrash(context.Context, time.Time) (int64, error) { return 0, nil }

type stubCache struct {
	data    map[string][]byte
	deleted []string
}

func newStubCache() *stubCache {
	return &stubCache{data: map[string][]byte{}}
}

func (c *stubCache) Get(_ context.Context, key string) ([]byte, error) {
	return c.data[key], nil
}

func (c *stubCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.data[key] = value

	return nil
}

func (c *stubCache) Delete(_ context.Context, key string) error {
	c.deleted = append(c.deleted, key)
	delete(c.data, key)

	return nil
}

func TestTrending_ServesCachedPage(t *testing.T) {
	params := domain.DefaultListParams()
	cached := domain.NewListResult([]*domain.Work{{ID: 7, Title: "cached"}}, 1, params)
	data, err := json.Marshal(cached)
	require.NoError(t, err)

	cache := newStubCache()
	cache.data["trending:p1:l4"] = data

	repo := &stubWorkRepo{
		listFn: func(context.Context, domain.ListScope) ([]*domain.Work, int64, error) {
			t.Fatal("repository queried despite a cached page")

			return nil, 0, nil
		},
	}
	svc := NewListingService(repo, &stubEngagementRepo{}, cache, time.Minute, zap.NewNop())

	result, err := svc.Trending(context.Background(), params)

	require.NoError(t, err)
	require.Len(t, result.Results, 1)
	assert.Equal(t, "cached", result.Results[0].Title)
}

func TestTrending_EvictsUndecodableCacheEntry(t *testing.T) {
	cache := newStubCache()
	cache.data["trending:p1:l4"] = []byte(`{"results":`)

	repo := &stubWorkRepo{
		listFn: func(context.Context, domain.ListScope) ([]*domain.Work, int64, error) {
			return []*domain.Work{{ID: 3, Title: "fresh"}}, 1, nil
		},
	}
	svc := NewListingService(repo, &stubEngagementRepo{}, cache, time.Minute, zap.NewNop())

	result, err := svc.Trending(context.Background(), domain.DefaultListParams())

	require.NoError(t, err)
	require.Len(t, result.Results, 1)
	assert.Equal(t, "fresh", result.Results[0].Title)
	assert.Equal(t, []string{"trending:p1:l4"}, cache.deleted)

	var repopulated domain.ListResult
	require.NoError(t, json.Unmarshal(cache.data["trending:p1:l4"], &repopulated))
	assert.Equal(t, int64(1), repopulated.Total)
}
