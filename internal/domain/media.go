package domain

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/socialnet-labs/backend/internal/common"
	"github.com/socialnet-labs/backend/internal/entity"
	"github.com/socialnet-labs/backend/internal/model"
	"github.com/socialnet-labs/backend/internal/repository"
	"github.com/socialnet-labs/backend/pkg/errorx"
	"github.com/socialnet-labs/backend/pkg/storage"
	"github.com/socialnet-labs/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type MediaDomain interface {
	Upload(ctx context.Context, req *model.UploadMediaRequest) (*model.UploadMediaResponse, error)
	GetList(ctx context.Context, req *model.GetMediaRequest) (*model.GetMediaResponse, error)
}

type mediaDomain struct {
	mediaRepo   repository.MediaRepository
	postRepo    repository.PostRepository
	messageRepo repository.MessageRepository
	fileStorage storage.Storage
}

func NewMediaDomain(
	mediaRepo repository.MediaRepository,
	postRepo repository.PostRepository,
	messageRepo repository.MessageRepository,
	fileStorage storage.Storage,
) *mediaDomain {
	return &mediaDomain{
		mediaRepo:   mediaRepo,
		postRepo:    postRepo,
		messageRepo: messageRepo,
		fileStorage: fileStorage,
	}
}

func mediaTypeOf(mime string) entity.MediaType {
	switch {
	case strings.HasPrefix(mime, "image/"):
		return entity.MediaImage
	case strings.HasPrefix(mime, "video/"):
		return entity.MediaVideo
	case strings.HasPrefix(mime, "audio/"):
		return entity.MediaAudio
	default:
		return entity.MediaDocument
	}
}

func (d *mediaDomain) Upload(ctx context.Context, req *model.UploadMediaRequest) (*model.UploadMediaResponse, error) {
	if req.PostID != "" && req.MessageID != 0 {
		return nil, errorx.New(errorx.BadRequest, "Media can link to a post or a message, not both")
	}

	userID := xcontext.RequestUserID(ctx)
	media := &entity.Media{
		Base:    entity.Base{ID: uuid.NewString()},
		OwnerID: userID,
	}

	if req.PostID != "" {
		post, err := d.postRepo.GetByID(ctx, req.PostID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.NotFound, "Not found post")
			}

			xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
			return nil, errorx.Unknown
		}

		if post.AuthorID != userID {
			return nil, errorx.New(errorx.PermissionDenied, "Only the author can attach media to a post")
		}

		media.PostID = sql.NullString{Valid: true, String: post.ID}
	}

	if req.MessageID != 0 {
		message, err := d.messageRepo.GetByID(ctx, req.MessageID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.NotFound, "Not found message")
			}

			xcontext.Logger(ctx).Errorf("Cannot get message: %v", err)
			return nil, errorx.Unknown
		}

		if message.SenderID != userID {
			return nil, errorx.New(errorx.PermissionDenied, "Only the sender can attach media to a message")
		}

		media.MessageID = sql.NullInt64{Valid: true, Int64: message.ID}
	}

	upload, err := common.ProcessUpload(ctx, d.fileStorage, "file")
	if err != nil {
		return nil, err
	}

	media.Type = mediaTypeOf(upload.Mime)
	media.URL = upload.Original.Url
	media.MimeType = upload.Mime
	media.Size = upload.Size
	media.OriginalName = upload.FileName
	if len(upload.Thumbnails) > 0 {
		media.ThumbnailURL = upload.Thumbnails[0].Url
	}

	if err := d.mediaRepo.Create(ctx, media); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create media: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UploadMediaResponse{Media: model.ConvertMedia(media)}, nil
}

func (d *mediaDomain) GetList(ctx context.Context, req *model.GetMediaRequest) (*model.GetMediaResponse, error) {
	media, err := d.mediaRepo.GetList(ctx, repository.GetListMediaFilter{
		OwnerID:   req.OwnerID,
		PostID:    req.PostID,
		MessageID: req.MessageID,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get media list: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Media{}
	for i := range media {
		result = append(result, model.ConvertMedia(&media[i]))
	}

	return &model.GetMediaResponse{Media: result}, nil
}
