package model

type CreateCommunityRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	AvatarURL   string `json:"avatar_url"`
	CoverURL    string `json:"cover_url"`
	Type        string `json:"type"`
}

type CreateCommunityResponse struct {
	Community Community `json:"community"`
}

type GetCommunityRequest struct {
	ID string `uri:"id" json:"id"`
}

type GetCommunityResponse struct {
	Community Community `json:"community"`
}

type GetCommunitiesRequest struct {
	Q      string `form:"q" json:"q"`
	Offset int    `form:"offset" json:"offset"`
	Limit  int    `form:"limit" json:"limit"`
}

type GetCommunitiesResponse struct {
	Communities []Community `json:"communities"`
}

type JoinCommunityRequest struct {
	ID string `uri:"id" json:"id"`
}

type JoinCommunityResponse struct {
	Member       CommunityMember `json:"member"`
	MembersCount int             `json:"members_count"`
}

type LeaveCommunityRequest struct {
	ID string `uri:"id" json:"id"`
}

type LeaveCommunityResponse struct {
	MembersCount int    `json:"members_count"`
	Message      string `json:"message,omitempty"`
}

type GetCommunityMembersRequest struct {
	ID     string `uri:"id" json:"id"`
	Offset int    `form:"offset" json:"offset"`
	Limit  int    `form:"limit" json:"limit"`
}

type GetCommunityMembersResponse struct {
	Members []CommunityMember `json:"members"`
}

type GetCommunityPostsRequest struct {
	ID     string `uri:"id" json:"id"`
	Offset int    `form:"offset" json:"offset"`
	Limit  int    `form:"limit" json:"limit"`
}

type GetCommunityPostsResponse struct {
	Posts []Post `json:"posts"`
}

type GetPopularCommunitiesRequest struct{}

type GetPopularCommunitiesResponse struct {
	Communities []Community `json:"communities"`
}

type GetRecommendedCommunitiesRequest struct{}

type GetRecommendedCommunitiesResponse struct {
	Communities []Community `json:"communities"`
}
