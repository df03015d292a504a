package postgres

import (
	"time"

	"penhub-service/internal/domain"

	"github.com/lib/pq"
)

// UserModel is the GORM model for the users table. Ids come from the
// external identity provider, so they are strings, not serials.
type UserModel struct {
	ID          string `gorm:"type:varchar(128);primaryKey"`
	Email       string `gorm:"type:varchar(255);not null;uniqueIndex"`
	Username    string `gorm:"type:varchar(50);not null;uniqueIndex"`
	DisplayName string `gorm:"type:varchar(100)"`
	AvatarURL   string `gorm:"type:text"`
	Bio         string `gorm:"type:text"`
	IsPro       bool   `gorm:"default:false"`
	IsDeleted   bool   `gorm:"default:false"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (UserModel) TableName() string { return "users" }

// WorkModel is the GORM model for the works table.
type WorkModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	UserID      string `gorm:"type:varchar(128);not null;index"`
	Title       string `gorm:"type:varchar(100);default:untitled"`
	Description string `gorm:"type:varchar(500)"`

	HTMLCode string `gorm:"type:text"`
	CSSCode  string `gorm:"type:text"`
	JSCode   string `gorm:"type:text"`

	ResourcesCSS pq.StringArray `gorm:"type:text[]"`
	ResourcesJS  pq.StringArray `gorm:"type:text[]"`

	ViewsCount     int `gorm:"default:0"`
	FavoritesCount int `gorm:"default:0"`
	CommentsCount  int `gorm:"default:0"`

	IsPrivate bool `gorm:"default:false;index"`
	IsTrash   bool `gorm:"default:false"`
	IsDeleted bool `gorm:"default:false"`

	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
	DeletedAt *time.Time
}

func (WorkModel) TableName() string { return "works" }

// workRow is the listing projection: work columns plus joined author
// fields. GORM scans the flat column set of the users join into the
// embedded model plus the extra fields.
type workRow struct {
	WorkModel
	Username    string
	DisplayName string
	AvatarURL   string
	IsPro       bool
}

// TagModel is the GORM model for the tags table. Tags are created on
// demand when first referenced and never deleted here.
type TagModel struct {
	ID   int64  `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"type:varchar(50);not null;uniqueIndex"`
}

func (TagModel) TableName() string { return "tags" }

// WorkTagModel is the works-to-tags association table.
type WorkTagModel struct {
	WorkID int64 `gorm:"primaryKey"`
	TagID  int64 `gorm:"primaryKey"`
}

func (WorkTagModel) TableName() string { return "work_tags" }

// FavoriteModel records one user's favorite of one work.
type FavoriteModel struct {
	UserID    string    `gorm:"type:varchar(128);primaryKey"`
	WorkID    int64     `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (FavoriteModel) TableName() string { return "favorites" }

// CommentModel is the GORM model for the comments table.
type CommentModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	WorkID    int64     `gorm:"not null;index"`
	UserID    string    `gorm:"type:varchar(128);not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (CommentModel) TableName() string { return "comments" }

// FollowModel is a directed follower -> followed edge. The composite
// primary key enforces at most one edge per ordered pair.
type FollowModel struct {
	FollowerID string    `gorm:"type:varchar(128);primaryKey"`
	FollowedID string    `gorm:"type:varchar(128);primaryKey;index"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (FollowModel) TableName() string { return "follows" }

// ToDomain converts a listing row to domain.Work.
func (r *workRow) ToDomain() *domain.Work {
	w := r.WorkModel.ToDomain()
	w.Username = r.Username
	w.AuthorDisplayName = r.DisplayName
	w.AuthorAvatarURL = r.AvatarURL
	w.AuthorIsPro = r.IsPro

	return w
}

// ToDomain converts WorkModel to domain.Work.
func (m *WorkModel) ToDomain() *domain.Work {
	return &domain.Work{
		ID:             m.ID,
		UserID:         m.UserID,
		Title:          m.Title,
		Description:    m.Description,
		HTMLCode:       m.HTMLCode,
		CSSCode:        m.CSSCode,
		JSCode:         m.JSCode,
		ResourcesCSS:   m.ResourcesCSS,
		ResourcesJS:    m.ResourcesJS,
		ViewsCount:     m.ViewsCount,
		FavoritesCount: m.FavoritesCount,
		CommentsCount:  m.CommentsCount,
		IsPrivate:      m.IsPrivate,
		IsTrash:        m.IsTrash,
		IsDeleted:      m.IsDeleted,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
		DeletedAt:      m.DeletedAt,
	}
}

// FromDomain creates a WorkModel from domain.Work.
func FromDomain(w *domain.Work) *WorkModel {
	return &WorkModel{
		ID:             w.ID,
		UserID:         w.UserID,
		Title:          w.Title,
		Description:    w.Description,
		HTMLCode:       w.HTMLCode,
		CSSCode:        w.CSSCode,
		JSCode:         w.JSCode,
		ResourcesCSS:   w.ResourcesCSS,
		ResourcesJS:    w.ResourcesJS,
		ViewsCount:     w.ViewsCount,
		FavoritesCount: w.FavoritesCount,
		CommentsCount:  w.CommentsCount,
		IsPrivate:      w.IsPrivate,
		IsTrash:        w.IsTrash,
		IsDeleted:      w.IsDeleted,
		CreatedAt:      w.CreatedAt,
		UpdatedAt:      w.UpdatedAt,
		DeletedAt:      w.DeletedAt,
	}
}

// ToDomain converts CommentModel to domain.Comment.
func (m *CommentModel) ToDomain() *domain.Comment {
	return &domain.Comment{
		ID:        m.ID,
		WorkID:    m.WorkID,
		UserID:    m.UserID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}
