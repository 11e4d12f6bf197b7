package model

type SendFriendRequestRequest struct {
	FriendID string `json:"friend_id"`
}

type SendFriendRequestResponse struct {
	Friendship Friendship `json:"friendship"`
}

type AcceptFriendRequestRequest struct {
	ID string `uri:"id" json:"id"`
}

type AcceptFriendRequestResponse struct {
	Friendship Friendship `json:"friendship"`
}

type DeclineFriendRequestRequest struct {
	ID string `uri:"id" json:"id"`
}

type DeclineFriendRequestResponse struct {
	Friendship Friendship `json:"friendship"`
}

type CancelFriendRequestRequest struct {
	ID string `uri:"id" json:"id"`
}

type CancelFriendRequestResponse struct{}

type UnfriendRequest struct {
	FriendID string `json:"friend_id"`
}

type UnfriendResponse struct{}

type GetFriendsRequest struct{}

type GetFriendsResponse struct {
	Friends []ShortUser `json:"friends"`
}
