package repository

import (
	"context"

	"github.com/socialnet-labs/backend/internal/entity"
	"github.com/socialnet-labs/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LikeRepository interface {
	// Create inserts the like unless one already exists for the same user and
	// target. It reports whether a row was actually inserted.
	Create(ctx context.Context, like *entity.Like) (bool, error)
	DeleteByUserPost(ctx context.Context, userID, postID string) error
	DeleteByUserComment(ctx context.Context, userID, commentID string) error
	CountByPostID(ctx context.Context, postID string) (int64, error)
	CountByCommentID(ctx context.Context, commentID string) (int64, error)
}

type likeRepository struct{}

func NewLikeRepository() *likeRepository {
	return &likeRepository{}
}

func (r *likeRepository) Create(ctx context.Context, like *entity.Like) (bool, error) {
	tx := xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(like)

	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected == 1, nil
}

func (r *likeRepository) DeleteByUserPost(ctx context.Context, userID, postID string) error {
	tx := xcontext.DB(ctx).
		Where("user_id=? AND post_id=?", userID, postID).
		Delete(&entity.Like{})

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *likeRepository) DeleteByUserComment(ctx context.Context, userID, commentID string) error {
	tx := xcontext.DB(ctx).
		Where("user_id=? AND comment_id=?", userID, commentID).
		Delete(&entity.Like{})

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *likeRepository) CountByPostID(ctx context.Context, postID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.Like{}).
		Where("post_id=?", postID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *likeRepository) CountByCommentID(ctx context.Context, commentID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.Like{}).
		Where("comment_id=?", commentID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
