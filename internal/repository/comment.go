package repository

import (
	"context"

	"github.com/socialnet-labs/backend/internal/entity"
	"github.com/socialnet-labs/backend/pkg/xcontext"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	GetByID(ctx context.Context, id string) (*entity.Comment, error)
	GetListByPostID(ctx context.Context, postID string) ([]entity.Comment, error)
	CountByPostID(ctx context.Context, postID string) (int64, error)
}

type commentRepository struct{}

func NewCommentRepository() *commentRepository {
	return &commentRepository{}
}

func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	return xcontext.DB(ctx).Create(comment).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*entity.Comment, error) {
	var record entity.Comment
	err := xcontext.DB(ctx).
		Preload("Author").
		Take(&record, "id=?", id).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *commentRepository) GetListByPostID(ctx context.Context, postID string) ([]entity.Comment, error) {
	var records []entity.Comment
	err := xcontext.DB(ctx).
		Preload("Author").
		Where("post_id=?", postID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *commentRepository) CountByPostID(ctx context.Context, postID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.Comment{}).
		Where("post_id=?", postID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
