package domain

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/socialnet-labs/backend/internal/common"
	"github.com/socialnet-labs/backend/internal/entity"
	"github.com/socialnet-labs/backend/internal/model"
	"github.com/socialnet-labs/backend/internal/repository"
	"github.com/socialnet-labs/backend/pkg/errorx"
	"github.com/socialnet-labs/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type CommentDomain interface {
	Add(ctx context.Context, req *model.AddCommentRequest) (*model.AddCommentResponse, error)
	GetList(ctx context.Context, req *model.GetCommentsRequest) (*model.GetCommentsResponse, error)
	Like(ctx context.Context, req *model.LikeCommentRequest) (*model.LikeCommentResponse, error)
}

type commentDomain struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	likeRepo    repository.LikeRepository
}

func NewCommentDomain(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	likeRepo repository.LikeRepository,
) *commentDomain {
	return &commentDomain{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		likeRepo:    likeRepo,
	}
}

func (d *commentDomain) Add(ctx context.Context, req *model.AddCommentRequest) (*model.AddCommentResponse, error) {
	if err := common.ValidateCommentContent(req.Content); err != nil {
		return nil, err
	}

	post, err := d.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	userID := xcontext.RequestUserID(ctx)
	comment := &entity.Comment{
		Base:      entity.Base{ID: uuid.NewString()},
		PostID:    post.ID,
		AuthorID:  userID,
		Content:   req.Content,
		CreatedBy: sql.NullString{Valid: true, String: userID},
	}

	if req.ParentID != "" {
		parent, err := d.commentRepo.GetByID(ctx, req.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.NotFound, "Not found parent comment")
			}

			xcontext.Logger(ctx).Errorf("Cannot get parent comment: %v", err)
			return nil, errorx.Unknown
		}

		if parent.PostID != post.ID {
			return nil, errorx.New(errorx.BadRequest, "Parent comment belongs to another post")
		}

		comment.ParentID = sql.NullString{Valid: true, String: parent.ID}
	}

	if err := d.commentRepo.Create(ctx, comment); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create comment: %v", err)
		return nil, errorx.Unknown
	}

	created, err := d.commentRepo.GetByID(ctx, comment.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get created comment: %v", err)
		return nil, errorx.Unknown
	}

	return &model.AddCommentResponse{Comment: model.ConvertComment(created)}, nil
}

func (d *commentDomain) GetList(ctx context.Context, req *model.GetCommentsRequest) (*model.GetCommentsResponse, error) {
	if _, err := d.postRepo.GetByID(ctx, req.PostID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	comments, err := d.commentRepo.GetListByPostID(ctx, req.PostID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get comment list: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Comment{}
	for i := range comments {
		result = append(result, model.ConvertComment(&comments[i]))
	}

	return &model.GetCommentsResponse{Comments: result}, nil
}

func (d *commentDomain) Like(ctx context.Context, req *model.LikeCommentRequest) (*model.LikeCommentResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	comment, err := d.commentRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found comment")
		}

		xcontext.Logger(ctx).Errorf("Cannot get comment: %v", err)
		return nil, errorx.Unknown
	}

	like := &entity.Like{
		ID:        uuid.NewString(),
		UserID:    userID,
		CommentID: sql.NullString{Valid: true, String: comment.ID},
	}

	inserted, err := d.likeRepo.Create(ctx, like)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create like: %v", err)
		return nil, errorx.Unknown
	}

	if !inserted {
		if err := d.likeRepo.DeleteByUserComment(ctx, userID, comment.ID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot delete like: %v", err)
			return nil, errorx.Unknown
		}
	}

	count, err := d.likeRepo.CountByCommentID(ctx, comment.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count likes of comment: %v", err)
		return nil, errorx.Unknown
	}

	return &model.LikeCommentResponse{Liked: inserted, LikesCount: count}, nil
}
