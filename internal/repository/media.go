package repository

import (
	"context"

	"github.com/socialnet-labs/backend/internal/entity"
	"github.com/socialnet-labs/backend/pkg/xcontext"
)

type GetListMediaFilter struct {
	OwnerID   string
	PostID    string
	MessageID int64
}

type MediaRepository interface {
	Create(ctx context.Context, media *entity.Media) error
	GetByID(ctx context.Context, id string) (*entity.Media, error)
	GetList(ctx context.Context, filter GetListMediaFilter) ([]entity.Media, error)
}

type mediaRepository struct{}

func NewMediaRepository() *mediaRepository {
	return &mediaRepository{}
}

func (r *mediaRepository) Create(ctx context.Context, media *entity.Media) error {
	return xcontext.DB(ctx).Create(media).Error
}

func (r *mediaRepository) GetByID(ctx context.Context, id string) (*entity.Media, error) {
	var record entity.Media
	if err := xcontext.DB(ctx).Take(&record, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *mediaRepository) GetList(ctx context.Context, filter GetListMediaFilter) ([]entity.Media, error) {
	tx := xcontext.DB(ctx).Order("created_at DESC")

	if filter.OwnerID != "" {
		tx = tx.Where("owner_id=?", filter.OwnerID)
	}

	if filter.PostID != "" {
		tx = tx.Where("post_id=?", filter.PostID)
	}

	if filter.MessageID != 0 {
		tx = tx.Where("message_id=?", filter.MessageID)
	}

	var records []entity.Media
	if err := tx.Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}
