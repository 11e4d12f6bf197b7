package entity

import "database/sql"

type Comment struct {
	Base
	PostID string
	Post   Post `gorm:"foreignKey:PostID"`

	AuthorID string
	Author   User `gorm:"foreignKey:AuthorID"`

	// ParentID links a reply to another comment of the same post.
	ParentID sql.NullString
	Parent   *Comment `gorm:"foreignKey:ParentID"`

	Content string `gorm:"type:text"`

	CreatedBy     sql.NullString
	CreatedByUser User `gorm:"foreignKey:CreatedBy"`
	UpdatedBy     sql.NullString
	UpdatedByUser User `gorm:"foreignKey:UpdatedBy"`
}
