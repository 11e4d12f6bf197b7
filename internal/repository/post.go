package repository

import (
	"context"
	"errors"
	"time"

	"github.com/socialnet-labs/backend/internal/entity"
	"github.com/socialnet-labs/backend/internal/search"
	"github.com/socialnet-labs/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type GetListPostFilter struct {
	Q           string
	AuthorID    string
	CommunityID string
	Offset      int
	Limit       int
}

type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.Post, error)
	GetList(ctx context.Context, filter GetListPostFilter) ([]entity.Post, error)
	SetPublished(ctx context.Context, id string, published bool) error
	IncreaseViewsCount(ctx context.Context, id string) error
	GetPopular(ctx context.Context, limit int) ([]entity.Post, error)
	GetTrending(ctx context.Context, createdAfter time.Time, limit int) ([]entity.Post, error)
	AdvancedSearch(ctx context.Context, createdAfter time.Time, minViews, limit int) ([]entity.Post, error)
}

type postRepository struct {
	searcher search.Searcher
}

func NewPostRepository(searcher search.Searcher) *postRepository {
	return &postRepository{searcher: searcher}
}

const postEngagementColumns = "posts.*, " +
	"(SELECT COUNT(*) FROM likes WHERE likes.post_id=posts.id) AS total_likes, " +
	"(SELECT COUNT(*) FROM comments WHERE comments.post_id=posts.id) AS total_comments"

func (r *postRepository) Create(ctx context.Context, post *entity.Post) error {
	if err := xcontext.DB(ctx).Create(post).Error; err != nil {
		return err
	}

	return r.searcher.Index(search.PostDoc, post.ID, search.PostData{
		Content: post.Content,
	})
}

func (r *postRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.Post, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var records []entity.Post
	err := xcontext.DB(ctx).
		Preload("Author").
		Preload("Community").
		Where("is_published=true").
		Find(&records, "id IN (?)", ids).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	var record entity.Post
	err := xcontext.DB(ctx).
		Preload("Author").
		Preload("Community").
		Take(&record, "id=?", id).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *postRepository) GetList(ctx context.Context, filter GetListPostFilter) ([]entity.Post, error) {
	if filter.Q != "" {
		ids, err := r.searcher.Search(search.PostDoc, filter.Q, filter.Offset, filter.Limit)
		if err != nil {
			return nil, err
		}

		posts, err := r.GetByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}

		postSet := map[string]entity.Post{}
		for _, p := range posts {
			postSet[p.ID] = p
		}

		orderedPosts := []entity.Post{}
		for _, id := range ids {
			if p, ok := postSet[id]; ok {
				orderedPosts = append(orderedPosts, p)
			}
		}

		return orderedPosts, nil
	}

	tx := xcontext.DB(ctx).
		Preload("Author").
		Preload("Community").
		Where("is_published=true").
		Order("created_at DESC").
		Offset(filter.Offset).Limit(filter.Limit)

	if filter.AuthorID != "" {
		tx = tx.Where("author_id=?", filter.AuthorID)
	}

	if filter.CommunityID != "" {
		tx = tx.Where("community_id=?", filter.CommunityID)
	}

	var records []entity.Post
	if err := tx.Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *postRepository) SetPublished(ctx context.Context, id string, published bool) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Post{}).
		Where("id=?", id).
		Update("is_published", published)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of affected rows is invalid")
	}

	return nil
}

// IncreaseViewsCount is a single UPDATE, so it cannot lose increments the way
// a read-modify-write would. The counter is still best effort: nothing ties
// it to a unique viewer.
func (r *postRepository) IncreaseViewsCount(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Post{}).
		Where("id=?", id).
		Update("views_count", gorm.Expr("views_count+1"))

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *postRepository) GetPopular(ctx context.Context, limit int) ([]entity.Post, error) {
	var records []entity.Post
	err := xcontext.DB(ctx).
		Model(&entity.Post{}).
		Preload("Author").
		Preload("Community").
		Select(postEngagementColumns).
		Where("is_published=true").
		Order("total_likes DESC, total_comments DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

// GetTrending ranks by likes + comments + a 0/1 contribution of views_count
// (counted as a non-null column, not summed). This matches the original
// ranking exactly, surprising as it is.
func (r *postRepository) GetTrending(ctx context.Context, createdAfter time.Time, limit int) ([]entity.Post, error) {
	var records []entity.Post
	err := xcontext.DB(ctx).
		Model(&entity.Post{}).
		Preload("Author").
		Preload("Community").
		Select(postEngagementColumns + ", " +
			"(CASE WHEN posts.views_count IS NOT NULL THEN 1 ELSE 0 END) AS views_flag").
		Where("is_published=true").
		Where("posts.created_at > ?", createdAfter).
		Order("(total_likes + total_comments + views_flag) DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *postRepository) AdvancedSearch(
	ctx context.Context, createdAfter time.Time, minViews, limit int,
) ([]entity.Post, error) {
	var records []entity.Post
	err := xcontext.DB(ctx).
		Model(&entity.Post{}).
		Preload("Author").
		Preload("Community").
		Select(postEngagementColumns).
		Where("is_published=true").
		Where("community_id IS NOT NULL").
		Where("posts.created_at > ?", createdAfter).
		Where("views_count >= ? OR "+
			"EXISTS (SELECT 1 FROM likes WHERE likes.post_id=posts.id)", minViews).
		Order("posts.created_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}
