package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// createUsersAndWorks creates the users and works tables with the
// indexes the listing queries depend on.
func createUsersAndWorks() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "001_create_users_works",
		Migrate: func(tx *gorm.DB) error {
			err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS users (
					id VARCHAR(128) PRIMARY KEY,
					email VARCHAR(255) NOT NULL UNIQUE,
					username VARCHAR(50) NOT NULL UNIQUE,
					display_name VARCHAR(100),
					avatar_url TEXT,
					bio TEXT,
					is_pro BOOLEAN DEFAULT FALSE,
					is_deleted BOOLEAN DEFAULT FALSE,
					created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
				);
			`).Error
			if err != nil {
				return err
			}

			err = tx.Exec(`
				CREATE TABLE IF NOT EXISTS works (
					id BIGINT PRIMARY KEY GENERATED ALWAYS AS IDENTITY,
					user_id VARCHAR(128) NOT NULL REFERENCES users(id),
					title VARCHAR(100) DEFAULT 'untitled',
					description VARCHAR(500),
					html_code TEXT,
					css_code TEXT,
					js_code TEXT,
					resources_css TEXT[] NOT NULL DEFAULT '{}'::text[],
					resources_js TEXT[] NOT NULL DEFAULT '{}'::text[],

					-- Engagement counters
					views_count INTEGER DEFAULT 0,
					favorites_count INTEGER DEFAULT 0,
					comments_count INTEGER DEFAULT 0,

					-- Lifecycle flags
					is_private BOOLEAN DEFAULT FALSE,
					is_trash BOOLEAN DEFAULT FALSE,
					is_deleted BOOLEAN DEFAULT FALSE,

					created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
					deleted_at TIMESTAMPTZ
				);
			`).Error
			if err != nil {
				return err
			}

			indexes := []string{
				"CREATE INDEX IF NOT EXISTS idx_works_user_id ON works(user_id);",
				"CREATE INDEX IF NOT EXISTS idx_works_created_at ON works(created_at DESC);",
				"CREATE INDEX IF NOT EXISTS idx_works_updated_at ON works(updated_at DESC);",
				"CREATE INDEX IF NOT EXISTS idx_works_visibility ON works(is_private, is_deleted, is_trash);",
			}
			for _, idx := range indexes {
				if err := tx.Exec(idx).Error; err != nil {
					return err
				}
			}

			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			if err := tx.Exec("DROP TABLE IF EXISTS works;").Error; err != nil {
				return err
			}

			return tx.Exec("DROP TABLE IF EXISTS users;").Error
		},
	}
}
