// Package domain contains the core business logic and entities.
package domain

import "time"

// Trending score weights. A favorite signals more intent than a view,
// a comment more than a favorite; the flat recency bonus keeps new
// works competitive against older high-count works for a short window
// so the ranking never ossifies.
const (
	ViewWeight     = 1
	FavoriteWeight = 3
	CommentWeight  = 5

	RecencyBonus  = 10
	RecencyWindow = 3 * 24 * time.Hour
)

// TrendingScore computes the popularity score of a work at the given
// instant:
//
//	score = views*1 + favorites*3 + comments*5 + (10 if created within 3 days)
//
// The listing path evaluates the same formula in SQL per row; this
// pure form exists for ranking outside the database and for tests.
// Ties are broken by creation time descending (newest first) so that
// pagination over equal scores stays stable.
func TrendingScore(w *Work, now time.Time) int {
	if w == nil {
		return 0
	}

	score := w.ViewsCount*ViewWeight +
		w.FavoritesCount*FavoriteWeight +
		w.CommentsCount*CommentWeight

	if now.Sub(w.CreatedAt) < RecencyWindow {
		score += RecencyBonus
	}

	return score
}
