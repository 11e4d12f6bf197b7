package model

type CreatePostRequest struct {
	Content     string `json:"content"`
	CommunityID string `json:"community_id"`
	IsPublished *bool  `json:"is_published"`
}

type CreatePostResponse struct {
	Post Post `json:"post"`
}

type GetPostRequest struct {
	ID string `uri:"id" json:"id"`
}

type GetPostResponse struct {
	Post Post `json:"post"`
}

type GetPostsRequest struct {
	Q           string `form:"q" json:"q"`
	AuthorID    string `form:"author_id" json:"author_id"`
	CommunityID string `form:"community_id" json:"community_id"`
	Offset      int    `form:"offset" json:"offset"`
	Limit       int    `form:"limit" json:"limit"`
}

type GetPostsResponse struct {
	Posts []Post `json:"posts"`
}

type PublishPostRequest struct {
	ID string `uri:"id" json:"id"`
}

type PublishPostResponse struct {
	Post Post `json:"post"`
}

type UnpublishPostRequest struct {
	ID string `uri:"id" json:"id"`
}

type UnpublishPostResponse struct {
	Post Post `json:"post"`
}

type IncrementPostViewsRequest struct {
	ID string `uri:"id" json:"id"`
}

type IncrementPostViewsResponse struct {
	ViewsCount int `json:"views_count"`
}

type LikePostRequest struct {
	ID string `uri:"id" json:"id"`
}

type LikePostResponse struct {
	Liked      bool  `json:"liked"`
	LikesCount int64 `json:"likes_count"`
}

type GetPopularPostsRequest struct{}

type GetPopularPostsResponse struct {
	Posts []Post `json:"posts"`
}

type GetTrendingPostsRequest struct{}

type GetTrendingPostsResponse struct {
	Posts []Post `json:"posts"`
}

type AdvancedSearchPostsRequest struct {
	MinViews int `form:"min_views" json:"min_views"`
}

type AdvancedSearchPostsResponse struct {
	Posts []Post `json:"posts"`
}
