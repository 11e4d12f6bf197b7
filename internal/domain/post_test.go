package domain

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/socialnet-labs/backend/internal/entity"
	"github.com/socialnet-labs/backend/internal/model"
	"github.com/socialnet-labs/backend/internal/repository"
	"github.com/socialnet-labs/backend/pkg/errorx"
	"github.com/socialnet-labs/backend/pkg/testutil"
	"github.com/socialnet-labs/backend/pkg/xcontext"

	"github.com/stretchr/testify/require"
)

func newPostDomainForTest() *postDomain {
	return NewPostDomain(
		repository.NewPostRepository(&testutil.MockSearcher{}),
		repository.NewCommunityRepository(&testutil.MockSearcher{}, &testutil.MockRedisClient{}),
		repository.NewUserCommunityRepository(),
		repository.NewLikeRepository(),
		repository.NewCommentRepository(),
	)
}

func Test_postDomain_Create(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newPostDomainForTest()

	// User2 is a member of Community1.
	resp, err := domain.Create(ctx, &model.CreatePostRequest{
		Content:     "A long enough post about nothing in particular.",
		CommunityID: testutil.Community1.ID,
	})
	require.NoError(t, err)
	require.True(t, resp.Post.IsPublished)
	require.Equal(t, testutil.User2.ID, resp.Post.Author.ID)

	var result entity.Post
	tx := xcontext.DB(ctx).Model(&entity.Post{}).Take(&result, "id", resp.Post.ID)
	require.NoError(t, tx.Error)
	require.Equal(t, testutil.Community1.ID, result.CommunityID.String)
}

func Test_postDomain_Create_requiresMembership(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User3.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newPostDomainForTest()

	// User3 has no membership in Community1.
	_, err := domain.Create(ctx, &model.CreatePostRequest{
		Content:     "A long enough post about nothing in particular.",
		CommunityID: testutil.Community1.ID,
	})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)

	// The owner posts without a membership row.
	ownerCtx := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	_, err = domain.Create(ownerCtx, &model.CreatePostRequest{
		Content:     "A long enough post about nothing in particular.",
		CommunityID: testutil.Community1.ID,
	})
	require.NoError(t, err)
}

func Test_postDomain_Create_contentValidation(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newPostDomainForTest()

	var errx errorx.Error
	_, err := domain.Create(ctx, &model.CreatePostRequest{Content: "short"})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)

	_, err = domain.Create(ctx, &model.CreatePostRequest{
		Content: "Buy now, this is definitely not an advertisement at all.",
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)
}

func Test_postDomain_Like_toggles(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newPostDomainForTest()

	resp, err := domain.Like(ctx, &model.LikePostRequest{ID: testutil.Post1.ID})
	require.NoError(t, err)
	require.True(t, resp.Liked)
	require.EqualValues(t, 1, resp.LikesCount)

	// The same user likes again, which removes the like.
	resp, err = domain.Like(ctx, &model.LikePostRequest{ID: testutil.Post1.ID})
	require.NoError(t, err)
	require.False(t, resp.Liked)
	require.EqualValues(t, 0, resp.LikesCount)

	// And a third time brings it back.
	resp, err = domain.Like(ctx, &model.LikePostRequest{ID: testutil.Post1.ID})
	require.NoError(t, err)
	require.True(t, resp.Liked)
	require.EqualValues(t, 1, resp.LikesCount)
}

func Test_postDomain_IncrementViews(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newPostDomainForTest()

	resp, err := domain.IncrementViews(ctx, &model.IncrementPostViewsRequest{ID: testutil.Post1.ID})
	require.NoError(t, err)
	require.Equal(t, 1, resp.ViewsCount)

	resp, err = domain.IncrementViews(ctx, &model.IncrementPostViewsRequest{ID: testutil.Post1.ID})
	require.NoError(t, err)
	require.Equal(t, 2, resp.ViewsCount)

	_, err = domain.IncrementViews(ctx, &model.IncrementPostViewsRequest{ID: "no-such-post"})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)
}

func Test_postDomain_Publish_authorOnly(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newPostDomainForTest()

	_, err := domain.Unpublish(ctx, &model.UnpublishPostRequest{ID: testutil.Post1.ID})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)

	authorCtx := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	resp, err := domain.Unpublish(authorCtx, &model.UnpublishPostRequest{ID: testutil.Post1.ID})
	require.NoError(t, err)
	require.False(t, resp.Post.IsPublished)

	// Unpublished posts are hidden from everyone but the author.
	_, err = domain.Get(ctx, &model.GetPostRequest{ID: testutil.Post1.ID})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)

	getResp, err := domain.Get(authorCtx, &model.GetPostRequest{ID: testutil.Post1.ID})
	require.NoError(t, err)
	require.False(t, getResp.Post.IsPublished)

	pubResp, err := domain.Publish(authorCtx, &model.PublishPostRequest{ID: testutil.Post1.ID})
	require.NoError(t, err)
	require.True(t, pubResp.Post.IsPublished)
}

func Test_postDomain_GetTrending_viewsCountAsBoolean(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newPostDomainForTest()

	postRepo := repository.NewPostRepository(&testutil.MockSearcher{})
	likeRepo := repository.NewLikeRepository()

	// viral has a huge view count but no engagement. Views contribute at most
	// one point to the trending score, so two likes on the fixture post must
	// outrank a million views.
	viral := &entity.Post{
		Base:        entity.Base{ID: uuid.NewString()},
		AuthorID:    testutil.User1.ID,
		Content:     "A post that everyone saw and nobody liked.",
		ViewsCount:  1000000,
		IsPublished: true,
	}
	require.NoError(t, postRepo.Create(ctx, viral))

	for _, userID := range []string{testutil.User2.ID, testutil.User3.ID} {
		_, err := likeRepo.Create(ctx, &entity.Like{
			ID:     uuid.NewString(),
			UserID: userID,
			PostID: sql.NullString{Valid: true, String: testutil.Post1.ID},
		})
		require.NoError(t, err)
	}

	resp, err := domain.GetTrending(ctx, &model.GetTrendingPostsRequest{})
	require.NoError(t, err)
	require.True(t, len(resp.Posts) >= 2)
	require.Equal(t, testutil.Post1.ID, resp.Posts[0].ID)
	require.Equal(t, viral.ID, resp.Posts[1].ID)
}

func Test_postDomain_GetPopular(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newPostDomainForTest()

	likeRepo := repository.NewLikeRepository()
	_, err := likeRepo.Create(ctx, &entity.Like{
		ID:     uuid.NewString(),
		UserID: testutil.User2.ID,
		PostID: sql.NullString{Valid: true, String: testutil.Post1.ID},
	})
	require.NoError(t, err)

	resp, err := domain.GetPopular(ctx, &model.GetPopularPostsRequest{})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Posts)
	require.Equal(t, testutil.Post1.ID, resp.Posts[0].ID)
	require.EqualValues(t, 1, resp.Posts[0].LikesCount)
	require.EqualValues(t, 1, resp.Posts[0].CommentsCount)
}

func Test_postDomain_AdvancedSearch(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newPostDomainForTest()

	// Post1 has no likes and no views, so it misses the default threshold.
	resp, err := domain.AdvancedSearch(ctx, &model.AdvancedSearchPostsRequest{})
	require.NoError(t, err)
	require.Empty(t, resp.Posts)

	// A single like qualifies it regardless of views.
	likeRepo := repository.NewLikeRepository()
	_, err = likeRepo.Create(ctx, &entity.Like{
		ID:     uuid.NewString(),
		UserID: testutil.User2.ID,
		PostID: sql.NullString{Valid: true, String: testutil.Post1.ID},
	})
	require.NoError(t, err)

	resp, err = domain.AdvancedSearch(ctx, &model.AdvancedSearchPostsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Posts, 1)
	require.Equal(t, testutil.Post1.ID, resp.Posts[0].ID)
}

func Test_postDomain_GetList_fullTextSearch(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	indexed := map[string]string{}
	searcher := &testutil.MockSearcher{
		IndexFunc: func(document, id string, data any) error {
			indexed[id] = document
			return nil
		},
		SearchFunc: func(document, query string, offset, limit int) ([]string, error) {
			return []string{testutil.Post1.ID}, nil
		},
	}

	domain := NewPostDomain(
		repository.NewPostRepository(searcher),
		repository.NewCommunityRepository(&testutil.MockSearcher{}, &testutil.MockRedisClient{}),
		repository.NewUserCommunityRepository(),
		repository.NewLikeRepository(),
		repository.NewCommentRepository(),
	)

	createResp, err := domain.Create(ctx, &model.CreatePostRequest{
		Content:     "Another long enough post to pass validation.",
		CommunityID: testutil.Community1.ID,
	})
	require.NoError(t, err)
	require.Equal(t, "post", indexed[createResp.Post.ID])

	resp, err := domain.GetList(ctx, &model.GetPostsRequest{Q: "fixture"})
	require.NoError(t, err)
	require.Len(t, resp.Posts, 1)
	require.Equal(t, testutil.Post1.ID, resp.Posts[0].ID)
}

func Test_postDomain_GetList_limitValidation(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newPostDomainForTest()

	_, err := domain.GetList(ctx, &model.GetPostsRequest{Limit: -1})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)

	maxLimit := xcontext.Configs(ctx).ApiServer.MaxLimit
	_, err = domain.GetList(ctx, &model.GetPostsRequest{Limit: maxLimit + 1})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)
}
