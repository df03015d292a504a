package domain

import (
	"testing"
	"time"
)

func TestTrendingScore(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name     string
		work     *Work
		expected int
	}{
		{
			name:     "zero counters, old work",
			work:     &Work{CreatedAt: now.AddDate(0, 0, -30)},
			expected: 0,
		},
		{
			name:     "zero counters, fresh work gets recency bonus",
			work:     &Work{CreatedAt: now},
			expected: 10,
		},
		{
			name: "weighted counters, old work",
			work: &Work{
				ViewsCount:     10,
				FavoritesCount: 1,
				CommentsCount:  0,
				CreatedAt:      now.AddDate(0, 0, -10),
			},
			expected: 13, // 10*1 + 1*3
		},
		{
			name: "weighted counters plus recency",
			work: &Work{
				ViewsCount:     5,
				FavoritesCount: 2,
				CommentsCount:  1,
				CreatedAt:      now.AddDate(0, 0, -2),
			},
			expected: 26, // 5*1 + 2*3 + 1*5 + 10
		},
		{
			name: "just outside the recency window",
			work: &Work{
				ViewsCount: 7,
				CreatedAt:  now.Add(-RecencyWindow - time.Minute),
			},
			expected: 7,
		},
		{
			name:     "nil work",
			work:     nil,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrendingScore(tt.work, now); got != tt.expected {
				t.Errorf("TrendingScore() = %d, want %d", got, tt.expected)
			}
		})
	}
}

// Each counter must move the score by exactly its weight, all else equal.
func TestTrendingScore_Monotonic(t *testing.T) {
	now := time.Now().UTC()
	base := &Work{
		ViewsCount:     100,
		FavoritesCount: 20,
		CommentsCount:  3,
		CreatedAt:      now.AddDate(0, 0, -30),
	}
	baseScore := TrendingScore(base, now)

	plusFav := *base
	plusFav.FavoritesCount++
	if diff := TrendingScore(&plusFav, now) - baseScore; diff != FavoriteWeight {
		t.Errorf("favorite increment moved score by %d, want %d", diff, FavoriteWeight)
	}

	plusView := *base
	plusView.ViewsCount++
	if diff := TrendingScore(&plusView, now) - baseScore; diff != ViewWeight {
		t.Errorf("view increment moved score by %d, want %d", diff, ViewWeight)
	}

	plusComment := *base
	plusComment.CommentsCount++
	if diff := TrendingScore(&plusComment, now) - baseScore; diff != CommentWeight {
		t.Errorf("comment increment moved score by %d, want %d", diff, CommentWeight)
	}

	fresh := *base
	fresh.CreatedAt = now.AddDate(0, 0, -1)
	if diff := TrendingScore(&fresh, now) - baseScore; diff != RecencyBonus {
		t.Errorf("recent creation moved score by %d, want %d", diff, RecencyBonus)
	}
}
