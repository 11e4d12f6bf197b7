package testutil

import (
	"context"
	"database/sql"
	"time"

	"github.com/socialnet-labs/backend/internal/entity"
	"github.com/socialnet-labs/backend/internal/repository"
)

var (
	City1 = &entity.City{
		Base:    entity.Base{ID: "city1"},
		Name:    "Berlin",
		Country: "Germany",
	}

	Role1 = &entity.Role{
		Base: entity.Base{ID: "role1"},
		Name: "user",
	}

	User1 = &entity.User{
		Base:      entity.Base{ID: "user1"},
		Email:     "user1@example.com",
		FirstName: "Alice",
		LastName:  "Nguyen",
		Username:  sql.NullString{Valid: true, String: "user1"},
		IsActive:  true,
	}

	User2 = &entity.User{
		Base:      entity.Base{ID: "user2"},
		Email:     "user2@example.com",
		FirstName: "Bob",
		LastName:  "Keller",
		Username:  sql.NullString{Valid: true, String: "user2"},
		IsActive:  true,
	}

	User3 = &entity.User{
		Base:      entity.Base{ID: "user3"},
		Email:     "user3@example.com",
		FirstName: "Carla",
		LastName:  "Sousa",
		Username:  sql.NullString{Valid: true, String: "user3"},
		IsActive:  true,
	}

	Friendship1 = &entity.Friendship{
		Base:     entity.Base{ID: "friendship1"},
		UserID:   User1.ID,
		FriendID: User2.ID,
		Status:   entity.FriendshipAccepted,
	}

	// Community1 is open and owned by User1. User2 is its only member, so
	// MembersCount starts at 1.
	Community1 = &entity.Community{
		Base:         entity.Base{ID: "community1"},
		Name:         "Gophers of Berlin",
		Description:  "Meetups and talks",
		Type:         entity.CommunityOpen,
		OwnerID:      User1.ID,
		MembersCount: 1,
		IsVerified:   true,
	}

	Community2 = &entity.Community{
		Base:    entity.Base{ID: "community2"},
		Name:    "Night Owls",
		Type:    entity.CommunityClosed,
		OwnerID: User2.ID,
	}

	Membership1 = &entity.UserCommunity{
		UserID:      User2.ID,
		CommunityID: "community1",
		Role:        entity.CommunityRoleMember,
		JoinedAt:    time.Now(),
	}

	Post1 = &entity.Post{
		Base:        entity.Base{ID: "post1"},
		AuthorID:    User1.ID,
		CommunityID: sql.NullString{Valid: true, String: "community1"},
		Content:     "Welcome to the community, introduce yourself below.",
		IsPublished: true,
	}

	Comment1 = &entity.Comment{
		Base:     entity.Base{ID: "comment1"},
		PostID:   "post1",
		AuthorID: User2.ID,
		Content:  "Hi everyone, glad to be here.",
	}

	Chat1 = &entity.Chat{
		Base:      entity.Base{ID: "chat1"},
		Type:      entity.ChatPrivate,
		CreatedBy: sql.NullString{Valid: true, String: User1.ID},
	}
)

func CreateFixtureDb(ctx context.Context) {
	mustCreate := func(err error) {
		if err != nil {
			panic(err)
		}
	}

	cityRepo := repository.NewCityRepository()
	mustCreate(cityRepo.Create(ctx, City1))

	roleRepo := repository.NewRoleRepository()
	mustCreate(roleRepo.Create(ctx, Role1))

	userRepo := repository.NewUserRepository()
	mustCreate(userRepo.Create(ctx, User1))
	mustCreate(userRepo.Create(ctx, User2))
	mustCreate(userRepo.Create(ctx, User3))

	friendshipRepo := repository.NewFriendshipRepository()
	mustCreate(friendshipRepo.Create(ctx, Friendship1))

	communityRepo := repository.NewCommunityRepository(&MockSearcher{}, &MockRedisClient{})
	mustCreate(communityRepo.Create(ctx, Community1))
	mustCreate(communityRepo.Create(ctx, Community2))

	userCommunityRepo := repository.NewUserCommunityRepository()
	_, err := userCommunityRepo.Create(ctx, Membership1)
	mustCreate(err)

	postRepo := repository.NewPostRepository(&MockSearcher{})
	mustCreate(postRepo.Create(ctx, Post1))

	commentRepo := repository.NewCommentRepository()
	mustCreate(commentRepo.Create(ctx, Comment1))

	chatRepo := repository.NewChatRepository()
	mustCreate(chatRepo.Create(ctx, Chat1))
	mustCreate(chatRepo.AddParticipant(ctx, &entity.ChatParticipant{
		ChatID:   Chat1.ID,
		UserID:   User1.ID,
		Role:     entity.ChatRoleAdmin,
		JoinedAt: time.Now(),
	}))
	mustCreate(chatRepo.AddParticipant(ctx, &entity.ChatParticipant{
		ChatID:   Chat1.ID,
		UserID:   User2.ID,
		Role:     entity.ChatRoleMember,
		JoinedAt: time.Now(),
	}))
}
