package entity

import "database/sql"

type Post struct {
	Base
	AuthorID string
	Author   User `gorm:"foreignKey:AuthorID"`

	CommunityID sql.NullString
	Community   Community `gorm:"foreignKey:CommunityID"`

	Content string `gorm:"type:text"`

	// ViewsCount is incremented without any read guard, matching the original
	// page-view behavior. Concurrent views may drop increments.
	ViewsCount  int
	IsPublished bool `gorm:"default:true"`

	CreatedBy     sql.NullString
	CreatedByUser User `gorm:"foreignKey:CreatedBy"`
	UpdatedBy     sql.NullString
	UpdatedByUser User `gorm:"foreignKey:UpdatedBy"`
}
