package domain

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/socialnet-labs/backend/internal/entity"
	"github.com/socialnet-labs/backend/internal/model"
	"github.com/socialnet-labs/backend/internal/repository"
	"github.com/socialnet-labs/backend/pkg/enum"
	"github.com/socialnet-labs/backend/pkg/errorx"
	"github.com/socialnet-labs/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type ChatDomain interface {
	Create(ctx context.Context, req *model.CreateChatRequest) (*model.CreateChatResponse, error)
	GetList(ctx context.Context, req *model.GetChatsRequest) (*model.GetChatsResponse, error)
	SendMessage(ctx context.Context, req *model.SendMessageRequest) (*model.SendMessageResponse, error)
	GetMessages(ctx context.Context, req *model.GetMessagesRequest) (*model.GetMessagesResponse, error)
	MarkRead(ctx context.Context, req *model.MarkChatReadRequest) (*model.MarkChatReadResponse, error)
}

type chatDomain struct {
	chatRepo    repository.ChatRepository
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
}

func NewChatDomain(
	chatRepo repository.ChatRepository,
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
) *chatDomain {
	return &chatDomain{
		chatRepo:    chatRepo,
		messageRepo: messageRepo,
		userRepo:    userRepo,
	}
}

func (d *chatDomain) Create(ctx context.Context, req *model.CreateChatRequest) (*model.CreateChatResponse, error) {
	chatType, err := enum.ToEnum[entity.ChatType](req.Type)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid chat type %s", req.Type)
	}

	userID := xcontext.RequestUserID(ctx)

	// The requester is always a participant, listed or not.
	participantIDs := []string{userID}
	for _, id := range req.ParticipantIDs {
		if id != userID {
			participantIDs = append(participantIDs, id)
		}
	}

	if chatType == entity.ChatPrivate {
		if len(participantIDs) != 2 {
			return nil, errorx.New(errorx.BadRequest, "A private chat needs exactly two participants")
		}

		existing, err := d.chatRepo.GetPrivateByParticipants(ctx, participantIDs[0], participantIDs[1])
		if err == nil {
			return d.convertChatResponse(ctx, existing)
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot look up private chat: %v", err)
			return nil, errorx.Unknown
		}
	} else if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "A group chat needs a name")
	}

	users, err := d.userRepo.GetByIDs(ctx, participantIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get participants: %v", err)
		return nil, errorx.Unknown
	}

	if len(users) != len(participantIDs) {
		return nil, errorx.New(errorx.NotFound, "Not found some participants")
	}

	chat := &entity.Chat{
		Base:      entity.Base{ID: uuid.NewString()},
		Type:      chatType,
		Name:      req.Name,
		CreatedBy: sql.NullString{Valid: true, String: userID},
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.chatRepo.Create(ctx, chat); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create chat: %v", err)
		return nil, errorx.Unknown
	}

	now := time.Now()
	for _, id := range participantIDs {
		role := entity.ChatRoleMember
		if id == userID {
			role = entity.ChatRoleAdmin
		}

		err := d.chatRepo.AddParticipant(ctx, &entity.ChatParticipant{
			ChatID:   chat.ID,
			UserID:   id,
			Role:     role,
			JoinedAt: now,
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot add participant: %v", err)
			return nil, errorx.Unknown
		}
	}

	xcontext.WithCommitDBTransaction(ctx)

	return d.convertChatResponse(ctx, chat)
}

func (d *chatDomain) convertChatResponse(ctx context.Context, chat *entity.Chat) (*model.CreateChatResponse, error) {
	participants, err := d.chatRepo.GetParticipants(ctx, chat.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get participants: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateChatResponse{Chat: model.ConvertChat(chat, participants)}, nil
}

func (d *chatDomain) GetList(ctx context.Context, req *model.GetChatsRequest) (*model.GetChatsResponse, error) {
	chats, err := d.chatRepo.GetListByUserID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get chat list: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Chat{}
	for i := range chats {
		participants, err := d.chatRepo.GetParticipants(ctx, chats[i].ID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get participants: %v", err)
			return nil, errorx.Unknown
		}

		result = append(result, model.ConvertChat(&chats[i], participants))
	}

	return &model.GetChatsResponse{Chats: result}, nil
}

func (d *chatDomain) SendMessage(ctx context.Context, req *model.SendMessageRequest) (*model.SendMessageResponse, error) {
	if req.Content == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty message")
	}

	userID := xcontext.RequestUserID(ctx)
	if err := d.requireParticipant(ctx, req.ChatID, userID); err != nil {
		return nil, err
	}

	message := &entity.Message{
		SnowFlakeBase: entity.SnowFlakeBase{ID: xcontext.SnowFlake(ctx).Generate().Int64()},
		ChatID:        req.ChatID,
		SenderID:      userID,
		Content:       req.Content,
		Status:        entity.MessageSent,
	}

	if req.ReplyToID != 0 {
		replyTo, err := d.messageRepo.GetByID(ctx, req.ReplyToID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.NotFound, "Not found replied message")
			}

			xcontext.Logger(ctx).Errorf("Cannot get replied message: %v", err)
			return nil, errorx.Unknown
		}

		if replyTo.ChatID != req.ChatID {
			return nil, errorx.New(errorx.BadRequest, "Replied message belongs to another chat")
		}

		message.ReplyToID = sql.NullInt64{Valid: true, Int64: replyTo.ID}
	}

	if err := d.messageRepo.Create(ctx, message); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create message: %v", err)
		return nil, errorx.Unknown
	}

	created, err := d.messageRepo.GetByID(ctx, message.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get created message: %v", err)
		return nil, errorx.Unknown
	}

	return &model.SendMessageResponse{Message: model.ConvertMessage(created)}, nil
}

func (d *chatDomain) GetMessages(ctx context.Context, req *model.GetMessagesRequest) (*model.GetMessagesResponse, error) {
	apiCfg := xcontext.Configs(ctx).ApiServer
	if req.Limit == 0 {
		req.Limit = apiCfg.DefaultLimit
	}

	if req.Limit > apiCfg.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceed the maximum of limit (%d)", apiCfg.MaxLimit)
	}

	if err := d.requireParticipant(ctx, req.ChatID, xcontext.RequestUserID(ctx)); err != nil {
		return nil, err
	}

	messages, err := d.messageRepo.GetListByChatID(ctx, req.ChatID, req.Before, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get message list: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Message{}
	for i := range messages {
		result = append(result, model.ConvertMessage(&messages[i]))
	}

	return &model.GetMessagesResponse{Messages: result}, nil
}

func (d *chatDomain) MarkRead(ctx context.Context, req *model.MarkChatReadRequest) (*model.MarkChatReadResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if err := d.requireParticipant(ctx, req.ChatID, userID); err != nil {
		return nil, err
	}

	if err := d.chatRepo.UpdateLastReadAt(ctx, req.ChatID, userID, time.Now()); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update last read time: %v", err)
		return nil, errorx.Unknown
	}

	return &model.MarkChatReadResponse{}, nil
}

func (d *chatDomain) requireParticipant(ctx context.Context, chatID, userID string) error {
	if _, err := d.chatRepo.GetByID(ctx, chatID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorx.New(errorx.NotFound, "Not found chat")
		}

		xcontext.Logger(ctx).Errorf("Cannot get chat: %v", err)
		return errorx.Unknown
	}

	if _, err := d.chatRepo.GetParticipant(ctx, chatID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorx.New(errorx.PermissionDenied, "You are not a participant of this chat")
		}

		xcontext.Logger(ctx).Errorf("Cannot get participant: %v", err)
		return errorx.Unknown
	}

	return nil
}
