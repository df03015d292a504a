package postgres

import (
	"gorm.io/gorm"

	"penhub-service/internal/domain"
)

// predicate is one parameterized WHERE fragment.
type predicate struct {
	expr string
	args []any
}

// filterSet is the predicate list of one listing request. It is built
// exactly once per request and applied to both the row query and the
// count query, joins included, so the two can never disagree on which
// rows match.
type filterSet struct {
	preds    []predicate
	joinTags bool
}

func (f *filterSet) where(expr string, args ...any) {
	f.preds = append(f.preds, predicate{expr: expr, args: args})
}

// newListingFilters translates a listing scope into the filter set.
//
// Public scope applies the baseline visibility triple; owner scope
// intentionally bypasses the privacy restriction but still excludes
// deleted and trashed works; the following feed adds the author-set
// membership predicate on top of the public baseline.
func newListingFilters(scope domain.ListScope) *filterSet {
	f := &filterSet{}
	p := scope.Params

	if scope.OwnerID != "" {
		f.where("works.user_id = ?", scope.OwnerID)
		f.where("works.is_deleted = ?", false)
		f.where("works.is_trash = ?", false)

		switch p.Privacy {
		case domain.PrivacyPublic:
			f.where("works.is_private = ?", false)
		case domain.PrivacyPrivate:
			f.where("works.is_private = ?", true)
		}
	} else {
		f.where("works.is_private = ?", false)
		f.where("works.is_deleted = ?", false)
		f.where("works.is_trash = ?", false)

		if len(scope.AuthorIDs) > 0 {
			f.where("works.user_id IN ?", scope.AuthorIDs)
		}
	}

	// Conjunctive keyword filter: every token must match the title,
	// the description or the author name somewhere.
	for _, kw := range p.Keywords() {
		like := "%" + kw + "%"
		f.where(
			"(works.title ILIKE ? OR works.description ILIKE ? OR users.username ILIKE ?)",
			like, like, like,
		)
	}

	if p.Tag != "" {
		f.joinTags = true
		f.where("tags.name = ?", p.Tag)
	}

	return f
}

// apply attaches the joins and predicates to a query rooted at works.
// The users join is always present: listings project author fields and
// keyword predicates reference the author name. It joins on the
// primary key, so it never changes row multiplicity; the tag join
// matches at most one tag row per work for a given name (tag names
// are unique), so COUNT(*) stays correct.
func (f *filterSet) apply(db *gorm.DB) *gorm.DB {
	db = db.Joins("LEFT JOIN users ON users.id = works.user_id")

	if f.joinTags {
		db = db.
			Joins("LEFT JOIN work_tags ON work_tags.work_id = works.id").
			Joins("LEFT JOIN tags ON tags.id = work_tags.tag_id")
	}

	for _, p := range f.preds {
		db = db.Where(p.expr, p.args...)
	}

	return db
}
