package domain

import (
	"testing"

	"github.com/socialnet-labs/backend/internal/model"
	"github.com/socialnet-labs/backend/internal/repository"
	"github.com/socialnet-labs/backend/pkg/errorx"
	"github.com/socialnet-labs/backend/pkg/testutil"

	"github.com/stretchr/testify/require"
)

func newCommentDomainForTest() *commentDomain {
	return NewCommentDomain(
		repository.NewCommentRepository(),
		repository.NewPostRepository(&testutil.MockSearcher{}),
		repository.NewLikeRepository(),
	)
}

func Test_commentDomain_Add(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newCommentDomainForTest()

	resp, err := domain.Add(ctx, &model.AddCommentRequest{
		PostID:  testutil.Post1.ID,
		Content: "Count me in.",
	})
	require.NoError(t, err)
	require.Equal(t, testutil.User2.ID, resp.Comment.Author.ID)
	require.Equal(t, testutil.Post1.ID, resp.Comment.PostID)

	// A reply to the fixture comment.
	reply, err := domain.Add(ctx, &model.AddCommentRequest{
		PostID:   testutil.Post1.ID,
		Content:  "Me too.",
		ParentID: testutil.Comment1.ID,
	})
	require.NoError(t, err)
	require.Equal(t, testutil.Comment1.ID, reply.Comment.ParentID)
}

func Test_commentDomain_Add_invalid(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newCommentDomainForTest()

	var errx errorx.Error
	_, err := domain.Add(ctx, &model.AddCommentRequest{
		PostID:  testutil.Post1.ID,
		Content: " ",
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)

	_, err = domain.Add(ctx, &model.AddCommentRequest{
		PostID:  "no-such-post",
		Content: "A proper comment",
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)
}

func Test_commentDomain_Add_parentOfAnotherPost(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newCommentDomainForTest()
	postDomain := newPostDomainForTest()

	other, err := postDomain.Create(ctx, &model.CreatePostRequest{
		Content: "Another post to host a mismatched reply.",
	})
	require.NoError(t, err)

	_, err = domain.Add(ctx, &model.AddCommentRequest{
		PostID:   other.Post.ID,
		Content:  "This reply points at a comment of a different post.",
		ParentID: testutil.Comment1.ID,
	})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)
}

func Test_commentDomain_GetList(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newCommentDomainForTest()

	resp, err := domain.GetList(ctx, &model.GetCommentsRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)
	require.Len(t, resp.Comments, 1)
	require.Equal(t, testutil.Comment1.ID, resp.Comments[0].ID)
}

func Test_commentDomain_Like_toggles(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newCommentDomainForTest()

	resp, err := domain.Like(ctx, &model.LikeCommentRequest{ID: testutil.Comment1.ID})
	require.NoError(t, err)
	require.True(t, resp.Liked)
	require.EqualValues(t, 1, resp.LikesCount)

	resp, err = domain.Like(ctx, &model.LikeCommentRequest{ID: testutil.Comment1.ID})
	require.NoError(t, err)
	require.False(t, resp.Liked)
	require.EqualValues(t, 0, resp.LikesCount)
}
