package model

import (
	"time"

	"github.com/socialnet-labs/backend/internal/entity"
)

const DefaultTimeLayout string = time.RFC3339Nano
const DefaultDateLayout string = "2006-01-02"

func ConvertShortUser(user *entity.User) ShortUser {
	if user == nil {
		return ShortUser{}
	}

	return ShortUser{
		ID:        user.ID,
		FullName:  user.FullName(),
		Username:  user.Username.String,
		AvatarURL: user.AvatarURL,
		IsOnline:  user.IsOnline,
	}
}

func ConvertUser(user *entity.User, includeSensitive bool) User {
	if user == nil {
		return User{}
	}

	result := User{
		ShortUser:  ConvertShortUser(user),
		Bio:        user.Bio,
		Gender:     string(user.Gender),
		IsVerified: user.IsVerified,
		IsActive:   user.IsActive,
		CreatedAt:  user.CreatedAt.Format(DefaultTimeLayout),
	}

	if user.CityID.Valid {
		city := ConvertCity(&user.City)
		result.City = &city
	}

	if user.RoleID.Valid {
		role := ConvertRole(&user.Role)
		result.Role = &role
	}

	if user.BirthDate.Valid {
		result.BirthDate = user.BirthDate.Time.Format(DefaultDateLayout)
	}

	if user.LastSeen.Valid {
		result.LastSeen = user.LastSeen.Time.Format(DefaultTimeLayout)
	}

	if includeSensitive {
		result.Email = user.Email
		result.Phone = user.Phone
	}

	return result
}

func ConvertCity(city *entity.City) City {
	if city == nil {
		return City{}
	}

	return City{ID: city.ID, Name: city.Name, Country: city.Country}
}

func ConvertRole(role *entity.Role) Role {
	if role == nil {
		return Role{}
	}

	return Role{ID: role.ID, Name: role.Name, Description: role.Description}
}

func ConvertFriendship(friendship *entity.Friendship) Friendship {
	if friendship == nil {
		return Friendship{}
	}

	return Friendship{
		ID:        friendship.ID,
		User:      ConvertShortUser(&friendship.User),
		Friend:    ConvertShortUser(&friendship.Friend),
		Status:    string(friendship.Status),
		CreatedAt: friendship.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertCommunity(community *entity.Community) Community {
	if community == nil {
		return Community{}
	}

	return Community{
		ID:           community.ID,
		Name:         community.Name,
		Description:  community.Description,
		AvatarURL:    community.AvatarURL,
		CoverURL:     community.CoverURL,
		Type:         string(community.Type),
		Owner:        ConvertShortUser(&community.Owner),
		MembersCount: community.MembersCount,
		IsVerified:   community.IsVerified,
		CreatedAt:    community.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertCommunityMember(member *entity.UserCommunity) CommunityMember {
	if member == nil {
		return CommunityMember{}
	}

	return CommunityMember{
		User:     ConvertShortUser(&member.User),
		Role:     string(member.Role),
		JoinedAt: member.JoinedAt.Format(DefaultTimeLayout),
	}
}

func ConvertPost(post *entity.Post, likesCount, commentsCount int64) Post {
	if post == nil {
		return Post{}
	}

	result := Post{
		ID:            post.ID,
		Author:        ConvertShortUser(&post.Author),
		Content:       post.Content,
		ViewsCount:    post.ViewsCount,
		IsPublished:   post.IsPublished,
		LikesCount:    likesCount,
		CommentsCount: commentsCount,
		CreatedAt:     post.CreatedAt.Format(DefaultTimeLayout),
	}

	if post.CommunityID.Valid {
		community := ConvertCommunity(&post.Community)
		result.Community = &community
	}

	return result
}

func ConvertComment(comment *entity.Comment) Comment {
	if comment == nil {
		return Comment{}
	}

	return Comment{
		ID:        comment.ID,
		PostID:    comment.PostID,
		Author:    ConvertShortUser(&comment.Author),
		ParentID:  comment.ParentID.String,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertChat(chat *entity.Chat, participants []entity.ChatParticipant) Chat {
	if chat == nil {
		return Chat{}
	}

	result := Chat{
		ID:        chat.ID,
		Type:      string(chat.Type),
		Name:      chat.Name,
		AvatarURL: chat.AvatarURL,
		CreatedAt: chat.CreatedAt.Format(DefaultTimeLayout),
	}

	for i := range participants {
		result.Participants = append(result.Participants, ConvertShortUser(&participants[i].User))
	}

	return result
}

func ConvertMessage(message *entity.Message) Message {
	if message == nil {
		return Message{}
	}

	return Message{
		ID:        message.ID,
		ChatID:    message.ChatID,
		Sender:    ConvertShortUser(&message.Sender),
		Content:   message.Content,
		Status:    string(message.Status),
		ReplyToID: message.ReplyToID.Int64,
	}
}

func ConvertMedia(media *entity.Media) Media {
	if media == nil {
		return Media{}
	}

	return Media{
		ID:           media.ID,
		OwnerID:      media.OwnerID,
		Type:         string(media.Type),
		URL:          media.URL,
		ThumbnailURL: media.ThumbnailURL,
		MimeType:     media.MimeType,
		Size:         media.Size,
		OriginalName: media.OriginalName,
		PostID:       media.PostID.String,
		MessageID:    media.MessageID.Int64,
	}
}
