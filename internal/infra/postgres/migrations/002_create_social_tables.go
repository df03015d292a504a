package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// createSocialTables creates tags, work_tags, favorites, comments and
// follows. Composite primary keys enforce the uniqueness invariants
// (one favorite per user/work pair, one follow edge per ordered pair).
func createSocialTables() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "002_create_social_tables",
		Migrate: func(tx *gorm.DB) error {
			statements := []string{
				`CREATE TABLE IF NOT EXISTS tags (
					id BIGSERIAL PRIMARY KEY,
					name VARCHAR(50) NOT NULL UNIQUE
				);`,
				`CREATE TABLE IF NOT EXISTS work_tags (
					work_id BIGINT NOT NULL REFERENCES works(id) ON DELETE CASCADE,
					tag_id BIGINT NOT NULL REFERENCES tags(id),
					PRIMARY KEY (work_id, tag_id)
				);`,
				`CREATE TABLE IF NOT EXISTS favorites (
					user_id VARCHAR(128) NOT NULL REFERENCES users(id),
					work_id BIGINT NOT NULL REFERENCES works(id),
					created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
					PRIMARY KEY (user_id, work_id)
				);`,
				`CREATE TABLE IF NOT EXISTS comments (
					id BIGSERIAL PRIMARY KEY,
					work_id BIGINT NOT NULL REFERENCES works(id),
					user_id VARCHAR(128) NOT NULL REFERENCES users(id),
					content TEXT NOT NULL,
					created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
				);`,
				`CREATE INDEX IF NOT EXISTS idx_comments_work_id ON comments(work_id);`,
				`CREATE TABLE IF NOT EXISTS follows (
					follower_id VARCHAR(128) NOT NULL REFERENCES users(id),
					followed_id VARCHAR(128) NOT NULL REFERENCES users(id),
					created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
					PRIMARY KEY (follower_id, followed_id)
				);`,
				`CREATE INDEX IF NOT EXISTS idx_follows_followed_id ON follows(followed_id);`,
				`CREATE INDEX IF NOT EXISTS idx_work_tags_tag_id ON work_tags(tag_id);`,
			}

			for _, stmt := range statements {
				if err := tx.Exec(stmt).Error; err != nil {
					return err
				}
			}

			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			tables := []string{"follows", "comments", "favorites", "work_tags", "tags"}
			for _, t := range tables {
				if err := tx.Exec("DROP TABLE IF EXISTS " + t + ";").Error; err != nil {
					return err
				}
			}

			return nil
		},
	}
}
