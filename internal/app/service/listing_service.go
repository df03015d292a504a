// Package service provides application use cases.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"penhub-service/internal/domain"
)

// ListingService runs the listing use cases: public search, trending,
// the following feed and the owner's my-works view. All of them share
// the same repository query path; they differ only in scope.
type ListingService struct {
	works      domain.WorkRepository
	engagement domain.EngagementRepository
	cache      domain.Cache // nil when caching is disabled
	cacheTTL   time.Duration
	logger     *zap.Logger
}

// NewListingService creates a new ListingService. cache may be nil.
func NewListingService(
	works domain.WorkRepository,
	engagement domain.EngagementRepository,
	cache domain.Cache,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *ListingService {
	return &ListingService{
		works:      works,
		engagement: engagement,
		cache:      cache,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

// Search lists publicly visible works matching the keyword and tag
// filters.
func (s *ListingService) Search(ctx context.Context, params domain.ListParams) (*domain.ListResult, error) {
	params.Normalize()

	s.logger.Debug("searching works",
		zap.String("query", params.Query),
		zap.String("tag", params.Tag),
		zap.Int("page", params.Page),
		zap.Int("limit", params.Limit),
	)

	works, total, err := s.works.List(ctx, domain.ListScope{Params: params})
	if err != nil {
		s.logger.Error("search failed", zap.Error(err))
		return nil, err
	}

	return domain.NewListResult(works, total, params), nil
}

// Trending lists publicly visible works ranked by popularity score.
// Results are cached briefly when a cache is configured; the feed is
// read-heavy and a short staleness window is acceptable.
func (s *ListingService) Trending(ctx context.Context, params domain.ListParams) (*domain.ListResult, error) {
	params.Normalize()
	params.Sort = domain.SortPopular
	params.Order = domain.SortOrderDesc

	cacheKey := fmt.Sprintf("trending:p%d:l%d", params.Page, params.Limit)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil && data != nil {
			var cached domain.ListResult
			if jsonErr := json.Unmarshal(data, &cached); jsonErr == nil {
				return &cached, nil
			}

			// An entry that no longer decodes would be retried on
			// every request until its TTL expires. Evict it.
			s.logger.Warn("evicting undecodable trending cache entry",
				zap.String("key", cacheKey),
			)
			if delErr := s.cache.Delete(ctx, cacheKey); delErr != nil {
				s.logger.Warn("trending cache eviction failed", zap.Error(delErr))
			}
		}
	}

	works, total, err := s.works.List(ctx, domain.ListScope{Params: params})
	if err != nil {
		s.logger.Error("trending query failed", zap.Error(err))
		return nil, err
	}

	result := domain.NewListResult(works, total, params)

	if s.cache != nil {
		if data, err := json.Marshal(result); err == nil {
			if err := s.cache.Set(ctx, cacheKey, data, s.cacheTTL); err != nil {
				s.logger.Warn("caching trending page failed", zap.Error(err))
			}
		}
	}

	return result, nil
}

// FollowingFeed lists publicly visible works authored by accounts the
// requester follows. An empty follow set short-circuits to an empty
// envelope without touching the works table.
func (s *ListingService) FollowingFeed(ctx context.Context, userID string, params domain.ListParams) (*domain.ListResult, error) {
	params.Normalize()

	followed, err := s.engagement.FollowedIDs(ctx, userID)
	if err != nil {
		s.logger.Error("resolving follow set failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	if len(followed) == 0 {
		return domain.EmptyListResult(params), nil
	}

	works, total, err := s.works.List(ctx, domain.ListScope{
		Params:    params,
		AuthorIDs: followed,
	})
	if err != nil {
		s.logger.Error("following feed query failed", zap.Error(err))
		return nil, err
	}

	return domain.NewListResult(works, total, params), nil
}

// MyWorks lists the owner's own works, private ones included, with
// the privacy/tag/keyword filters and sort keys of the my-works view.
func (s *ListingService) MyWorks(ctx context.Context, userID string, params domain.ListParams) (*domain.ListResult, error) {
	params.Normalize()

	works, total, err := s.works.List(ctx, domain.ListScope{
		Params:  params,
		OwnerID: userID,
	})
	if err != nil {
		s.logger.Error("my works query failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	return domain.NewListResult(works, total, params), nil
}

// MyTags returns the deduplicated tag names used across the owner's
// works, for the my-works filter dropdown.
func (s *ListingService) MyTags(ctx context.Context, userID string) ([]string, error) {
	tags, err := s.works.DistinctTags(ctx, userID)
	if err != nil {
		s.logger.Error("listing user tags failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	if tags == nil {
		tags = []string{}
	}

	return tags, nil
}
