package domain

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/socialnet-labs/backend/internal/common"
	"github.com/socialnet-labs/backend/internal/entity"
	"github.com/socialnet-labs/backend/internal/model"
	"github.com/socialnet-labs/backend/internal/repository"
	"github.com/socialnet-labs/backend/pkg/errorx"
	"github.com/socialnet-labs/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type PostDomain interface {
	Create(ctx context.Context, req *model.CreatePostRequest) (*model.CreatePostResponse, error)
	Get(ctx context.Context, req *model.GetPostRequest) (*model.GetPostResponse, error)
	GetList(ctx context.Context, req *model.GetPostsRequest) (*model.GetPostsResponse, error)
	Publish(ctx context.Context, req *model.PublishPostRequest) (*model.PublishPostResponse, error)
	Unpublish(ctx context.Context, req *model.UnpublishPostRequest) (*model.UnpublishPostResponse, error)
	IncrementViews(ctx context.Context, req *model.IncrementPostViewsRequest) (*model.IncrementPostViewsResponse, error)
	Like(ctx context.Context, req *model.LikePostRequest) (*model.LikePostResponse, error)
	GetPopular(ctx context.Context, req *model.GetPopularPostsRequest) (*model.GetPopularPostsResponse, error)
	GetTrending(ctx context.Context, req *model.GetTrendingPostsRequest) (*model.GetTrendingPostsResponse, error)
	AdvancedSearch(ctx context.Context, req *model.AdvancedSearchPostsRequest) (*model.AdvancedSearchPostsResponse, error)
}

type postDomain struct {
	postRepo          repository.PostRepository
	communityRepo     repository.CommunityRepository
	userCommunityRepo repository.UserCommunityRepository
	likeRepo          repository.LikeRepository
	commentRepo       repository.CommentRepository
}

func NewPostDomain(
	postRepo repository.PostRepository,
	communityRepo repository.CommunityRepository,
	userCommunityRepo repository.UserCommunityRepository,
	likeRepo repository.LikeRepository,
	commentRepo repository.CommentRepository,
) *postDomain {
	return &postDomain{
		postRepo:          postRepo,
		communityRepo:     communityRepo,
		userCommunityRepo: userCommunityRepo,
		likeRepo:          likeRepo,
		commentRepo:       commentRepo,
	}
}

func convertPosts(
	ctx context.Context,
	likeRepo repository.LikeRepository,
	commentRepo repository.CommentRepository,
	posts []entity.Post,
) ([]model.Post, error) {
	result := []model.Post{}
	for i := range posts {
		likes, err := likeRepo.CountByPostID(ctx, posts[i].ID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot count likes of post: %v", err)
			return nil, errorx.Unknown
		}

		comments, err := commentRepo.CountByPostID(ctx, posts[i].ID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot count comments of post: %v", err)
			return nil, errorx.Unknown
		}

		result = append(result, model.ConvertPost(&posts[i], likes, comments))
	}

	return result, nil
}

func (d *postDomain) Create(ctx context.Context, req *model.CreatePostRequest) (*model.CreatePostResponse, error) {
	if err := common.ValidatePostContent(req.Content); err != nil {
		return nil, err
	}

	userID := xcontext.RequestUserID(ctx)
	post := &entity.Post{
		Base:        entity.Base{ID: uuid.NewString()},
		AuthorID:    userID,
		Content:     req.Content,
		IsPublished: true,
		CreatedBy:   sql.NullString{Valid: true, String: userID},
	}

	if req.IsPublished != nil {
		post.IsPublished = *req.IsPublished
	}

	if req.CommunityID != "" {
		community, err := d.communityRepo.GetByID(ctx, req.CommunityID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.NotFound, "Not found community")
			}

			xcontext.Logger(ctx).Errorf("Cannot get community: %v", err)
			return nil, errorx.Unknown
		}

		canPost, err := common.CanPost(ctx, d.userCommunityRepo, community, userID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot check posting rights: %v", err)
			return nil, errorx.Unknown
		}

		if !canPost {
			return nil, errorx.New(errorx.PermissionDenied,
				"You must be a member of this community to post in it")
		}

		post.CommunityID = sql.NullString{Valid: true, String: community.ID}
	}

	if err := d.postRepo.Create(ctx, post); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create post: %v", err)
		return nil, errorx.Unknown
	}

	created, err := d.postRepo.GetByID(ctx, post.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get created post: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreatePostResponse{Post: model.ConvertPost(created, 0, 0)}, nil
}

func (d *postDomain) Get(ctx context.Context, req *model.GetPostRequest) (*model.GetPostResponse, error) {
	post, err := d.postRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	if !post.IsPublished && post.AuthorID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.NotFound, "Not found post")
	}

	likes, err := d.likeRepo.CountByPostID(ctx, post.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count likes of post: %v", err)
		return nil, errorx.Unknown
	}

	comments, err := d.commentRepo.CountByPostID(ctx, post.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count comments of post: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetPostResponse{Post: model.ConvertPost(post, likes, comments)}, nil
}

func (d *postDomain) GetList(ctx context.Context, req *model.GetPostsRequest) (*model.GetPostsResponse, error) {
	apiCfg := xcontext.Configs(ctx).ApiServer
	if req.Limit == 0 {
		req.Limit = apiCfg.DefaultLimit
	}

	if req.Limit < 0 {
		return nil, errorx.New(errorx.BadRequest, "Limit must be positive")
	}

	if req.Limit > apiCfg.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceed the maximum of limit (%d)", apiCfg.MaxLimit)
	}

	posts, err := d.postRepo.GetList(ctx, repository.GetListPostFilter{
		Q:           req.Q,
		AuthorID:    req.AuthorID,
		CommunityID: req.CommunityID,
		Offset:      req.Offset,
		Limit:       req.Limit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get post list: %v", err)
		return nil, errorx.Unknown
	}

	result, err := convertPosts(ctx, d.likeRepo, d.commentRepo, posts)
	if err != nil {
		return nil, err
	}

	return &model.GetPostsResponse{Posts: result}, nil
}

func (d *postDomain) Publish(ctx context.Context, req *model.PublishPostRequest) (*model.PublishPostResponse, error) {
	post, err := d.setPublished(ctx, req.ID, true)
	if err != nil {
		return nil, err
	}

	return &model.PublishPostResponse{Post: model.ConvertPost(post, 0, 0)}, nil
}

func (d *postDomain) Unpublish(ctx context.Context, req *model.UnpublishPostRequest) (*model.UnpublishPostResponse, error) {
	post, err := d.setPublished(ctx, req.ID, false)
	if err != nil {
		return nil, err
	}

	return &model.UnpublishPostResponse{Post: model.ConvertPost(post, 0, 0)}, nil
}

func (d *postDomain) setPublished(ctx context.Context, id string, published bool) (*entity.Post, error) {
	post, err := d.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	if post.AuthorID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Only the author can change the publish state")
	}

	if err := d.postRepo.SetPublished(ctx, id, published); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update publish state: %v", err)
		return nil, errorx.Unknown
	}

	post.IsPublished = published
	return post, nil
}

func (d *postDomain) IncrementViews(
	ctx context.Context, req *model.IncrementPostViewsRequest,
) (*model.IncrementPostViewsResponse, error) {
	if err := d.postRepo.IncreaseViewsCount(ctx, req.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot increase views count: %v", err)
		return nil, errorx.Unknown
	}

	post, err := d.postRepo.GetByID(ctx, req.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get post after view: %v", err)
		return nil, errorx.Unknown
	}

	return &model.IncrementPostViewsResponse{ViewsCount: post.ViewsCount}, nil
}

func (d *postDomain) Like(ctx context.Context, req *model.LikePostRequest) (*model.LikePostResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	post, err := d.postRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	like := &entity.Like{
		ID:     uuid.NewString(),
		UserID: userID,
		PostID: sql.NullString{Valid: true, String: post.ID},
	}

	// The unique index makes this race free: concurrent double clicks insert
	// at most one row, the loser falls through to the delete branch.
	inserted, err := d.likeRepo.Create(ctx, like)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create like: %v", err)
		return nil, errorx.Unknown
	}

	if !inserted {
		if err := d.likeRepo.DeleteByUserPost(ctx, userID, post.ID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot delete like: %v", err)
			return nil, errorx.Unknown
		}
	}

	count, err := d.likeRepo.CountByPostID(ctx, post.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count likes of post: %v", err)
		return nil, errorx.Unknown
	}

	return &model.LikePostResponse{Liked: inserted, LikesCount: count}, nil
}

func (d *postDomain) GetPopular(
	ctx context.Context, req *model.GetPopularPostsRequest,
) (*model.GetPopularPostsResponse, error) {
	posts, err := d.postRepo.GetPopular(ctx, xcontext.Configs(ctx).Feed.PopularLimit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get popular posts: %v", err)
		return nil, errorx.Unknown
	}

	result, err := convertPosts(ctx, d.likeRepo, d.commentRepo, posts)
	if err != nil {
		return nil, err
	}

	return &model.GetPopularPostsResponse{Posts: result}, nil
}

func (d *postDomain) GetTrending(
	ctx context.Context, req *model.GetTrendingPostsRequest,
) (*model.GetTrendingPostsResponse, error) {
	feedCfg := xcontext.Configs(ctx).Feed
	posts, err := d.postRepo.GetTrending(ctx,
		time.Now().Add(-feedCfg.TrendingWindow), feedCfg.TrendingLimit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get trending posts: %v", err)
		return nil, errorx.Unknown
	}

	result, err := convertPosts(ctx, d.likeRepo, d.commentRepo, posts)
	if err != nil {
		return nil, err
	}

	return &model.GetTrendingPostsResponse{Posts: result}, nil
}

func (d *postDomain) AdvancedSearch(
	ctx context.Context, req *model.AdvancedSearchPostsRequest,
) (*model.AdvancedSearchPostsResponse, error) {
	feedCfg := xcontext.Configs(ctx).Feed
	minViews := req.MinViews
	if minViews == 0 {
		minViews = feedCfg.DefaultMinViews
	}

	posts, err := d.postRepo.AdvancedSearch(ctx,
		time.Now().Add(-feedCfg.TrendingWindow), minViews, feedCfg.AdvancedSearchLimit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot run advanced search: %v", err)
		return nil, errorx.Unknown
	}

	result, err := convertPosts(ctx, d.likeRepo, d.commentRepo, posts)
	if err != nil {
		return nil, err
	}

	return &model.AdvancedSearchPostsResponse{Posts: result}, nil
}
