package domain

import (
	"testing"

	"github.com/socialnet-labs/backend/internal/entity"
	"github.com/socialnet-labs/backend/internal/model"
	"github.com/socialnet-labs/backend/internal/repository"
	"github.com/socialnet-labs/backend/pkg/errorx"
	"github.com/socialnet-labs/backend/pkg/testutil"
	"github.com/socialnet-labs/backend/pkg/xcontext"

	"github.com/stretchr/testify/require"
)

func newChatDomainForTest() *chatDomain {
	return NewChatDomain(
		repository.NewChatRepository(),
		repository.NewMessageRepository(),
		repository.NewUserRepository(),
	)
}

func Test_chatDomain_Create_privateChatIsDeduplicated(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newChatDomainForTest()

	// A private chat between User1 and User2 already exists in the fixture.
	resp, err := domain.Create(ctx, &model.CreateChatRequest{
		Type:           "private",
		ParticipantIDs: []string{testutil.User2.ID},
	})
	require.NoError(t, err)
	require.Equal(t, testutil.Chat1.ID, resp.Chat.ID)

	// A different pair gets a new chat.
	resp, err = domain.Create(ctx, &model.CreateChatRequest{
		Type:           "private",
		ParticipantIDs: []string{testutil.User3.ID},
	})
	require.NoError(t, err)
	require.NotEqual(t, testutil.Chat1.ID, resp.Chat.ID)
	require.Len(t, resp.Chat.Participants, 2)
}

func Test_chatDomain_Create_validation(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newChatDomainForTest()

	var errx errorx.Error
	_, err := domain.Create(ctx, &model.CreateChatRequest{
		Type:           "private",
		ParticipantIDs: []string{testutil.User2.ID, testutil.User3.ID},
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)

	_, err = domain.Create(ctx, &model.CreateChatRequest{
		Type:           "group",
		ParticipantIDs: []string{testutil.User2.ID, testutil.User3.ID},
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)

	_, err = domain.Create(ctx, &model.CreateChatRequest{
		Type:           "private",
		ParticipantIDs: []string{"no-such-user"},
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)
}

func Test_chatDomain_Create_groupChat(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newChatDomainForTest()

	resp, err := domain.Create(ctx, &model.CreateChatRequest{
		Type:           "group",
		Name:           "Weekend plans",
		ParticipantIDs: []string{testutil.User2.ID, testutil.User3.ID},
	})
	require.NoError(t, err)
	require.Equal(t, "Weekend plans", resp.Chat.Name)
	require.Len(t, resp.Chat.Participants, 3)
}

func Test_chatDomain_SendMessage(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newChatDomainForTest()

	resp, err := domain.SendMessage(ctx, &model.SendMessageRequest{
		ChatID:  testutil.Chat1.ID,
		Content: "Hello there",
	})
	require.NoError(t, err)
	require.Equal(t, testutil.User1.ID, resp.Message.Sender.ID)
	require.Equal(t, string(entity.MessageSent), resp.Message.Status)

	// A reply within the same chat.
	reply, err := domain.SendMessage(ctx, &model.SendMessageRequest{
		ChatID:    testutil.Chat1.ID,
		Content:   "Replying to myself",
		ReplyToID: resp.Message.ID,
	})
	require.NoError(t, err)
	require.Equal(t, resp.Message.ID, reply.Message.ReplyToID)

	// Outsiders cannot send.
	outsiderCtx := xcontext.WithRequestUserID(ctx, testutil.User3.ID)
	_, err = domain.SendMessage(outsiderCtx, &model.SendMessageRequest{
		ChatID:  testutil.Chat1.ID,
		Content: "Let me in",
	})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)
}

func Test_chatDomain_GetMessages_newestFirst(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newChatDomainForTest()

	for _, content := range []string{"first", "second", "third"} {
		_, err := domain.SendMessage(ctx, &model.SendMessageRequest{
			ChatID:  testutil.Chat1.ID,
			Content: content,
		})
		require.NoError(t, err)
	}

	resp, err := domain.GetMessages(ctx, &model.GetMessagesRequest{ChatID: testutil.Chat1.ID})
	require.NoError(t, err)
	require.Len(t, resp.Messages, 3)
	require.Equal(t, "third", resp.Messages[0].Content)
	require.Equal(t, "first", resp.Messages[2].Content)

	// Paging by the id of the oldest already seen message.
	resp, err = domain.GetMessages(ctx, &model.GetMessagesRequest{
		ChatID: testutil.Chat1.ID,
		Before: resp.Messages[1].ID,
		Limit:  10,
	})
	require.NoError(t, err)
	require.Len(t, resp.Messages, 1)
	require.Equal(t, "first", resp.Messages[0].Content)
}

func Test_chatDomain_MarkRead(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newChatDomainForTest()

	_, err := domain.MarkRead(ctx, &model.MarkChatReadRequest{ChatID: testutil.Chat1.ID})
	require.NoError(t, err)

	var participant entity.ChatParticipant
	tx := xcontext.DB(ctx).
		Where("chat_id=? AND user_id=?", testutil.Chat1.ID, testutil.User2.ID).
		Take(&participant)
	require.NoError(t, tx.Error)
	require.True(t, participant.LastReadAt.Valid)

	outsiderCtx := xcontext.WithRequestUserID(ctx, testutil.User3.ID)
	_, err = domain.MarkRead(outsiderCtx, &model.MarkChatReadRequest{ChatID: testutil.Chat1.ID})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)
}
