package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"penhub-service/internal/domain"
)

// WorkService handles the lifecycle of a single work: CRUD, trash
// transitions and deduplicated view registration.
type WorkService struct {
	works  domain.WorkRepository
	dedup  domain.ViewDeduper
	logger *zap.Logger
}

// NewWorkService creates a new WorkService.
func NewWorkService(works domain.WorkRepository, dedup domain.ViewDeduper, logger *zap.Logger) *WorkService {
	return &WorkService{
		works:  works,
		dedup:  dedup,
		logger: logger,
	}
}

// Get fetches a work as seen by viewerID.
func (s *WorkService) Get(ctx context.Context, id int64, viewerID string) (*domain.Work, error) {
	work, err := s.works.GetVisible(ctx, id, viewerID)
	if err != nil {
		s.logger.Error("get work failed", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	if work == nil {
		return nil, domain.ErrNotFound
	}

	return work, nil
}

// Create stores a new work owned by ownerID with the given tag names.
func (s *WorkService) Create(ctx context.Context, ownerID string, w *domain.Work, tags []string) (*domain.Work, error) {
	work := domain.NewWork(ownerID, w.Title)
	work.Description = w.Description
	work.HTMLCode = w.HTMLCode
	work.CSSCode = w.CSSCode
	work.JSCode = w.JSCode
	work.IsPrivate = w.IsPrivate
	if w.ResourcesCSS != nil {
		work.ResourcesCSS = w.ResourcesCSS
	}
	if w.ResourcesJS != nil {
		work.ResourcesJS = w.ResourcesJS
	}

	if err := s.works.Create(ctx, work, tags); err != nil {
		s.logger.Error("create work failed", zap.String("owner", ownerID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("work created",
		zap.Int64("id", work.ID),
		zap.String("owner", ownerID),
	)

	return work, nil
}

// Update applies owner edits. Only the owner may edit; trashed works
// must be restored first and deleted works behave as missing.
func (s *WorkService) Update(ctx context.Context, ownerID string, id int64, edits *domain.Work, tags []string) (*domain.Work, error) {
	current, err := s.loadOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if current.IsTrash {
		return nil, domain.ErrWorkTrashed
	}

	current.Title = edits.Title
	current.Description = edits.Description
	current.HTMLCode = edits.HTMLCode
	current.CSSCode = edits.CSSCode
	current.JSCode = edits.JSCode
	current.IsPrivate = edits.IsPrivate
	if edits.ResourcesCSS != nil {
		current.ResourcesCSS = edits.ResourcesCSS
	}
	if edits.ResourcesJS != nil {
		current.ResourcesJS = edits.ResourcesJS
	}

	if err := s.works.Update(ctx, current, tags); err != nil {
		s.logger.Error("update work failed", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	return current, nil
}

// MoveToTrash puts the owner's work into the trash. It stays
// recoverable for the retention window before the sweep deletes it.
func (s *WorkService) MoveToTrash(ctx context.Context, ownerID string, id int64) (*domain.Work, error) {
	if _, err := s.loadOwned(ctx, ownerID, id); err != nil {
		return nil, err
	}

	work, err := s.works.SetTrash(ctx, id, true)
	if err != nil {
		s.logger.Error("trash work failed", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	if work == nil {
		return nil, domain.ErrNotFound
	}

	return work, nil
}

// Restore brings the owner's work back from the trash.
func (s *WorkService) Restore(ctx context.Context, ownerID string, id int64) (*domain.Work, error) {
	if _, err := s.loadOwned(ctx, ownerID, id); err != nil {
		return nil, err
	}

	work, err := s.works.SetTrash(ctx, id, false)
	if err != nil {
		s.logger.Error("restore work failed", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	if work == nil {
		return nil, domain.ErrNotFound
	}

	return work, nil
}

// Delete soft-deletes the owner's work immediately.
func (s *WorkService) Delete(ctx context.Context, ownerID string, id int64) error {
	if _, err := s.loadOwned(ctx, ownerID, id); err != nil {
		return err
	}

	if err := s.works.SoftDelete(ctx, id); err != nil {
		s.logger.Error("delete work failed", zap.Int64("id", id), zap.Error(err))
		return err
	}

	s.logger.Info("work soft-deleted", zap.Int64("id", id), zap.String("owner", ownerID))

	return nil
}

// Trash lists the owner's trashed works.
func (s *WorkService) Trash(ctx context.Context, ownerID string) ([]*domain.Work, error) {
	works, err := s.works.ListTrash(ctx, ownerID)
	if err != nil {
		s.logger.Error("listing trash failed", zap.String("owner", ownerID), zap.Error(err))
		return nil, err
	}

	return works, nil
}

// RegisterView counts one view of workID for the viewer identified by
// viewerKey (user id when authenticated, client IP otherwise), at most
// once per dedup window. A dedup store outage degrades to counting the
// view rather than dropping it.
func (s *WorkService) RegisterView(ctx context.Context, workID int64, viewerKey string) error {
	key := fmt.Sprintf("%d_%s", workID, viewerKey)

	first, err := s.dedup.FirstView(ctx, key)
	if err != nil {
		s.logger.Warn("view dedup unavailable, counting view", zap.Error(err))
		first = true
	}
	if !first {
		return nil
	}

	if err := s.works.IncrementViews(ctx, workID); err != nil {
		s.logger.Error("incrementing views failed", zap.Int64("id", workID), zap.Error(err))
		return err
	}

	return nil
}

// loadOwned fetches the raw work and enforces existence + ownership.
func (s *WorkService) loadOwned(ctx context.Context, ownerID string, id int64) (*domain.Work, error) {
	work, err := s.works.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("loading work failed", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	if work == nil || work.IsDeleted {
		return nil, domain.ErrNotFound
	}
	if work.UserID != ownerID {
		return nil, domain.ErrForbidden
	}

	return work, nil
}
