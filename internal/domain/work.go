// Package domain contains the core business logic and entities.
// This package has no external dependencies (only stdlib).
package domain

import (
	"time"
)

// Privacy restricts an owner-scoped listing to a subset of their works.
type Privacy string

const (
	PrivacyAll     Privacy = "all"
	PrivacyPublic  Privacy = "public"
	PrivacyPrivate Privacy = "private"
)

// TrashRetention is how long a trashed work survives before the sweep
// job soft-deletes it.
const TrashRetention = 3 * 24 * time.Hour

// Work is a user-authored playground item: markup, style and script
// bodies plus engagement counters and soft lifecycle flags.
//
// Counters are adjusted only by the actions that affect them (a comment
// insert bumps CommentsCount, a favorite delete decrements
// FavoritesCount) and are never recomputed in the listing path.
type Work struct {
	ID          int64  `json:"id"`
	UserID      string `json:"user_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	// Code bodies
	HTMLCode string `json:"html_code,omitempty"`
	CSSCode  string `json:"css_code,omitempty"`
	JSCode   string `json:"js_code,omitempty"`

	// External resource URLs, order preserved
	ResourcesCSS []string `json:"resources_css"`
	ResourcesJS  []string `json:"resources_js"`

	// Engagement counters (server maintained, non-negative)
	ViewsCount     int `json:"views_count"`
	FavoritesCount int `json:"favorites_count"`
	CommentsCount  int `json:"comments_count"`

	// Lifecycle flags
	IsPrivate bool `json:"is_private"`
	IsTrash   bool `json:"is_trash"`
	IsDeleted bool `json:"is_deleted"`

	// Author projection, populated by listing queries
	Username          string `json:"username,omitempty"`
	AuthorDisplayName string `json:"author_display_name,omitempty"`
	AuthorAvatarURL   string `json:"author_avatar_url,omitempty"`
	AuthorIsPro       bool   `json:"author_is_pro,omitempty"`

	// Populated on single-work fetches
	Tags      []string    `json:"tags,omitempty"`
	Favorites []UserBadge `json:"favorites,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// NewWork creates a Work owned by userID with timestamps set.
func NewWork(userID, title string) *Work {
	now := time.Now().UTC()
	if title == "" {
		title = "untitled"
	}

	return &Work{
		UserID:       userID,
		Title:        title,
		ResourcesCSS: []string{},
		ResourcesJS:  []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// PubliclyVisible reports whether the work may appear in a public
// listing: not private, not trashed, not soft-deleted.
func (w *Work) PubliclyVisible() bool {
	return !w.IsPrivate && !w.IsTrash && !w.IsDeleted
}

// VisibleTo reports whether viewerID may fetch this work directly.
// Owners see their own private works; trashed and deleted works are
// hidden from everyone on the fetch path.
func (w *Work) VisibleTo(viewerID string) bool {
	if w.IsTrash || w.IsDeleted {
		return false
	}

	return !w.IsPrivate || w.UserID == viewerID
}

// UserBadge is the compact author/favoriter projection used in
// single-work responses.
type UserBadge struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

// Comment is a user remark on a work.
type Comment struct {
	ID        int64     `json:"id"`
	WorkID    int64     `json:"work_id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	Username  string    `json:"username,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
