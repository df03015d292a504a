package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"penhub-service/internal/domain"
)

// listColumns is the listing projection: all work columns plus the
// joined author fields scanned into workRow.
const listColumns = "works.*, users.username AS username, " +
	"users.display_name AS display_name, users.avatar_url AS avatar_url, " +
	"users.is_pro AS is_pro"

// Repository implements domain.WorkRepository using PostgreSQL.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new PostgreSQL work repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List runs the listing query and its companion count query. Both are
// derived from one filterSet, so the reported total always agrees with
// the rows the pagination walks over.
func (r *Repository) List(ctx context.Context, scope domain.ListScope) ([]*domain.Work, int64, error) {
	scope.Params.Normalize()
	filters := newListingFilters(scope)

	var total int64
	countQuery := filters.apply(r.db.WithContext(ctx).Model(&WorkModel{}))
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting works: %w", err)
	}

	rowQuery := filters.apply(r.db.WithContext(ctx).Model(&WorkModel{})).
		Select(listColumns).
		Offset(scope.Params.Offset()).
		Limit(scope.Params.Limit)
	rowQuery = applyOrdering(rowQuery, scope.Params)

	var rows []workRow
	if err := rowQuery.Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("listing works: %w", err)
	}

	works := make([]*domain.Work, len(rows))
	for i := range rows {
		works[i] = rows[i].ToDomain()
	}

	return works, total, nil
}

// trendingScoreExpr is the per-row popularity score evaluated by the
// database. The recency cutoff is bound as a parameter.
func trendingScoreExpr() string {
	return fmt.Sprintf(
		"(works.views_count * %d + works.favorites_count * %d + works.comments_count * %d"+
			" + CASE WHEN works.created_at >= ? THEN %d ELSE 0 END)",
		domain.ViewWeight, domain.FavoriteWeight, domain.CommentWeight, domain.RecencyBonus,
	)
}

// applyOrdering resolves the sort key into an ORDER BY clause. Every
// ordering ends with the work id as a deterministic final key so that
// rows sharing a sort value keep a stable position across pages.
func applyOrdering(query *gorm.DB, p domain.ListParams) *gorm.DB {
	dir := "DESC"
	if p.Order == domain.SortOrderAsc {
		dir = "ASC"
	}

	switch {
	case p.Sort.ByPopularity():
		cutoff := time.Now().UTC().Add(-domain.RecencyWindow)
		expr := gorm.Expr(
			trendingScoreExpr()+" "+dir+", works.created_at "+dir+", works.id "+dir,
			cutoff,
		)

		return query.Clauses(clause.OrderBy{Expression: expr})

	case p.Sort == domain.SortUpdated:
		return query.Order("works.updated_at " + dir).Order("works.id " + dir)

	default:
		// recent, created and anything unrecognized
		return query.Order("works.created_at " + dir).Order("works.id " + dir)
	}
}

// GetByID retrieves a work by id with no visibility filtering.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Work, error) {
	var model WorkModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("getting work by id: %w", err)
	}

	return model.ToDomain(), nil
}

// GetVisible retrieves a work as seen by viewerID, with tags and the
// most recent favoriting users attached.
func (r *Repository) GetVisible(ctx context.Context, id int64, viewerID string) (*domain.Work, error) {
	var row workRow
	err := r.db.WithContext(ctx).Model(&WorkModel{}).
		Select(listColumns).
		Joins("INNER JOIN users ON users.id = works.user_id").
		Where("works.id = ?", id).
		Where("works.is_trash = ? AND works.is_deleted = ?", false, false).
		Where("users.is_deleted = ?", false).
		Where("(works.is_private = ? OR works.user_id = ?)", false, viewerID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("getting visible work: %w", err)
	}

	work := row.ToDomain()

	if err := r.db.WithContext(ctx).Model(&TagModel{}).
		Joins("INNER JOIN work_tags ON work_tags.tag_id = tags.id").
		Where("work_tags.work_id = ?", id).
		Pluck("tags.name", &work.Tags).Error; err != nil {
		return nil, fmt.Errorf("loading work tags: %w", err)
	}

	var badges []domain.UserBadge
	if err := r.db.WithContext(ctx).Model(&FavoriteModel{}).
		Select("users.username, users.display_name, users.avatar_url AS avatar_url").
		Joins("INNER JOIN users ON users.id = favorites.user_id").
		Where("favorites.work_id = ?", id).
		Order("favorites.created_at DESC").
		Limit(12).
		Scan(&badges).Error; err != nil {
		return nil, fmt.Errorf("loading favoriting users: %w", err)
	}
	work.Favorites = badges

	return work, nil
}

// ListTrash returns the owner's trashed, not yet deleted works.
func (r *Repository) ListTrash(ctx context.Context, ownerID string) ([]*domain.Work, error) {
	var rows []workRow
	err := r.db.WithContext(ctx).Model(&WorkModel{}).
		Select(listColumns).
		Joins("INNER JOIN users ON users.id = works.user_id").
		Where("works.user_id = ?", ownerID).
		Where("works.is_trash = ? AND works.is_deleted = ?", true, false).
		Order("works.deleted_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("listing trashed works: %w", err)
	}

	works := make([]*domain.Work, len(rows))
	for i := range rows {
		works[i] = rows[i].ToDomain()
	}

	return works, nil
}

// DistinctTags returns the deduplicated tag names across the owner's
// non-deleted works.
func (r *Repository) DistinctTags(ctx context.Context, ownerID string) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).Model(&TagModel{}).
		Distinct("tags.name").
		Joins("INNER JOIN work_tags ON work_tags.tag_id = tags.id").
		Joins("INNER JOIN works ON works.id = work_tags.work_id").
		Where("works.user_id = ? AND works.is_deleted = ?", ownerID, false).
		Order("tags.name").
		Pluck("tags.name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("listing distinct tags: %w", err)
	}

	return names, nil
}

// Create inserts a work and its tag associations in one transaction.
func (r *Repository) Create(ctx context.Context, w *domain.Work, tags []string) error {
	model := FromDomain(w)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			return err
		}

		return attachTags(tx, model.ID, tags)
	})
	if err != nil {
		return fmt.Errorf("creating work: %w", err)
	}

	w.ID = model.ID
	w.CreatedAt = model.CreatedAt
	w.UpdatedAt = model.UpdatedAt

	return nil
}

// Update persists owner edits and replaces the tag associations.
func (r *Repository) Update(ctx context.Context, w *domain.Work, tags []string) error {
	model := FromDomain(w)
	model.UpdatedAt = time.Now().UTC()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&WorkModel{}).Where("id = ?", model.ID).Updates(map[string]any{
			"title":         model.Title,
			"description":   model.Description,
			"html_code":     model.HTMLCode,
			"css_code":      model.CSSCode,
			"js_code":       model.JSCode,
			"resources_css": model.ResourcesCSS,
			"resources_js":  model.ResourcesJS,
			"is_private":    model.IsPrivate,
			"updated_at":    model.UpdatedAt,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		// Replace associations wholesale, matching the edit form.
		if err := tx.Where("work_id = ?", model.ID).Delete(&WorkTagModel{}).Error; err != nil {
			return err
		}

		return attachTags(tx, model.ID, tags)
	})
	if err != nil {
		return fmt.Errorf("updating work: %w", err)
	}

	w.UpdatedAt = model.UpdatedAt

	return nil
}

// attachTags creates missing tags on demand and links them to the
// work. Blank names are skipped; duplicate links are ignored.
func attachTags(tx *gorm.DB, workID int64, tags []string) error {
	for _, name := range tags {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		tag := TagModel{Name: name}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&tag).Error; err != nil {
			return err
		}
		if tag.ID == 0 {
			// Conflict path: the tag already existed, fetch its id.
			if err := tx.Where("name = ?", name).First(&tag).Error; err != nil {
				return err
			}
		}

		link := WorkTagModel{WorkID: workID, TagID: tag.ID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
			return err
		}
	}

	return nil
}

// SetTrash moves a work into or out of the trash.
func (r *Repository) SetTrash(ctx context.Context, id int64, trashed bool) (*domain.Work, error) {
	values := map[string]any{"is_trash": trashed}
	if trashed {
		values["deleted_at"] = time.Now().UTC()
	} else {
		values["deleted_at"] = nil
	}

	res := r.db.WithContext(ctx).Model(&WorkModel{}).Where("id = ?", id).Updates(values)
	if res.Error != nil {
		return nil, fmt.Errorf("updating trash state: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}

	return r.GetByID(ctx, id)
}

// SoftDelete marks a work deleted. Rows are never removed physically.
func (r *Repository) SoftDelete(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Model(&WorkModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"is_deleted": true,
			"deleted_at": time.Now().UTC(),
		}).Error
	if err != nil {
		return fmt.Errorf("soft deleting work: %w", err)
	}

	return nil
}

// IncrementViews bumps the view counter by one. The dedup decision is
// made upstream; this is an unconditional atomic increment.
func (r *Repository) IncrementViews(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Model(&WorkModel{}).
		Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + 1")).Error
	if err != nil {
		return fmt.Errorf("incrementing view count: %w", err)
	}

	return nil
}

// SweepTrash soft-deletes works trashed before cutoff.
func (r *Repository) SweepTrash(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&WorkModel{}).
		Where("is_trash = ? AND is_deleted = ?", true, false).
		Where("deleted_at IS NOT NULL AND deleted_at < ?", cutoff).
		Update("is_deleted", true)
	if res.Error != nil {
		return 0, fmt.Errorf("sweeping trash: %w", res.Error)
	}

	return res.RowsAffected, nil
}
