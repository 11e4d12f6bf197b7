package entity

import (
	"database/sql"
	"time"
)

// Like targets exactly one of a post or a comment. Rows are deleted for real
// on unlike, so the unique indexes never block a re-like. The indexes allow
// repeated null targets, so the post index does not collide with comment
// likes and vice versa.
type Like struct {
	ID        string `gorm:"primarykey"`
	CreatedAt time.Time

	UserID string `gorm:"uniqueIndex:idx_likes_user_post;uniqueIndex:idx_likes_user_comment"`
	User   User   `gorm:"foreignKey:UserID"`

	PostID sql.NullString `gorm:"uniqueIndex:idx_likes_user_post"`
	Post   Post           `gorm:"foreignKey:PostID"`

	CommentID sql.NullString `gorm:"uniqueIndex:idx_likes_user_comment"`
	Comment   Comment        `gorm:"foreignKey:CommentID"`
}
