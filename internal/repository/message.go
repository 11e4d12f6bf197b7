package repository

import (
	"context"

	"github.com/socialnet-labs/backend/internal/entity"
	"github.com/socialnet-labs/backend/pkg/xcontext"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	GetByID(ctx context.Context, id int64) (*entity.Message, error)
	GetListByChatID(ctx context.Context, chatID string, before int64, limit int) ([]entity.Message, error)
}

type messageRepository struct{}

func NewMessageRepository() *messageRepository {
	return &messageRepository{}
}

func (r *messageRepository) Create(ctx context.Context, message *entity.Message) error {
	return xcontext.DB(ctx).Create(message).Error
}

func (r *messageRepository) GetByID(ctx context.Context, id int64) (*entity.Message, error) {
	var record entity.Message
	err := xcontext.DB(ctx).
		Preload("Sender").
		Take(&record, "id=?", id).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

// GetListByChatID pages backwards through a chat. Snowflake ids are time
// ordered, so paging by id is paging by creation time.
func (r *messageRepository) GetListByChatID(
	ctx context.Context, chatID string, before int64, limit int,
) ([]entity.Message, error) {
	tx := xcontext.DB(ctx).
		Preload("Sender").
		Where("chat_id=?", chatID).
		Order("id DESC").
		Limit(limit)

	if before > 0 {
		tx = tx.Where("id < ?", before)
	}

	var records []entity.Message
	if err := tx.Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}
