package model

type UploadMediaRequest struct {
	PostID    string `form:"post_id" json:"post_id"`
	MessageID int64  `form:"message_id" json:"message_id"`
}

type UploadMediaResponse struct {
	Media Media `json:"media"`
}

type GetMediaRequest struct {
	OwnerID   string `form:"owner_id" json:"owner_id"`
	PostID    string `form:"post_id" json:"post_id"`
	MessageID int64  `form:"message_id" json:"message_id"`
}

type GetMediaResponse struct {
	Media []Media `json:"media"`
}
