package model

type AddCommentRequest struct {
	PostID   string `uri:"id" json:"post_id"`
	Content  string `json:"content"`
	ParentID string `json:"parent_id"`
}

type AddCommentResponse struct {
	Comment Comment `json:"comment"`
}

type GetCommentsRequest struct {
	PostID string `uri:"id" json:"post_id"`
}

type GetCommentsResponse struct {
	Comments []Comment `json:"comments"`
}

type LikeCommentRequest struct {
	ID string `uri:"id" json:"id"`
}

type LikeCommentResponse struct {
	Liked      bool  `json:"liked"`
	LikesCount int64 `json:"likes_count"`
}
