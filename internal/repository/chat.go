package repository

import (
	"context"
	"time"

	"github.com/socialnet-labs/backend/internal/entity"
	"github.com/socialnet-labs/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type ChatRepository interface {
	Create(ctx context.Context, chat *entity.Chat) error
	GetByID(ctx context.Context, id string) (*entity.Chat, error)
	// GetPrivateByParticipants finds a private chat whose participant set is
	// exactly the two given users.
	GetPrivateByParticipants(ctx context.Context, userID, otherID string) (*entity.Chat, error)
	GetListByUserID(ctx context.Context, userID string) ([]entity.Chat, error)
	AddParticipant(ctx context.Context, participant *entity.ChatParticipant) error
	GetParticipant(ctx context.Context, chatID, userID string) (*entity.ChatParticipant, error)
	GetParticipants(ctx context.Context, chatID string) ([]entity.ChatParticipant, error)
	UpdateLastReadAt(ctx context.Context, chatID, userID string, at time.Time) error
}

type chatRepository struct{}

func NewChatRepository() *chatRepository {
	return &chatRepository{}
}

func (r *chatRepository) Create(ctx context.Context, chat *entity.Chat) error {
	return xcontext.DB(ctx).Create(chat).Error
}

func (r *chatRepository) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	var record entity.Chat
	if err := xcontext.DB(ctx).Take(&record, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *chatRepository) GetPrivateByParticipants(ctx context.Context, userID, otherID string) (*entity.Chat, error) {
	var record entity.Chat
	err := xcontext.DB(ctx).
		Model(&entity.Chat{}).
		Joins("JOIN chat_participants ON chat_participants.chat_id=chats.id").
		Where("chats.type=?", entity.ChatPrivate).
		Group("chats.id").
		Having("COUNT(*) = 2").
		Having("SUM(CASE WHEN chat_participants.user_id IN (?, ?) THEN 1 ELSE 0 END) = 2",
			userID, otherID).
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *chatRepository) GetListByUserID(ctx context.Context, userID string) ([]entity.Chat, error) {
	var records []entity.Chat
	err := xcontext.DB(ctx).
		Model(&entity.Chat{}).
		Joins("JOIN chat_participants ON chat_participants.chat_id=chats.id").
		Where("chat_participants.user_id=?", userID).
		Order("chats.updated_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *chatRepository) AddParticipant(ctx context.Context, participant *entity.ChatParticipant) error {
	return xcontext.DB(ctx).Create(participant).Error
}

func (r *chatRepository) GetParticipant(ctx context.Context, chatID, userID string) (*entity.ChatParticipant, error) {
	var record entity.ChatParticipant
	err := xcontext.DB(ctx).
		Where("chat_id=? AND user_id=?", chatID, userID).
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *chatRepository) GetParticipants(ctx context.Context, chatID string) ([]entity.ChatParticipant, error) {
	var records []entity.ChatParticipant
	err := xcontext.DB(ctx).
		Preload("User").
		Where("chat_id=?", chatID).
		Order("joined_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *chatRepository) UpdateLastReadAt(ctx context.Context, chatID, userID string, at time.Time) error {
	tx := xcontext.DB(ctx).
		Model(&entity.ChatParticipant{}).
		Where("chat_id=? AND user_id=?", chatID, userID).
		Update("last_read_at", at)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
