package main

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/socialnet-labs/backend/internal/entity"
	"github.com/socialnet-labs/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
	"golang.org/x/crypto/bcrypt"
)

// startSeed fills the database with a small demo data set. It is not
// idempotent, run it against an empty database.
func (s *srv) startSeed(*cli.Context) error {
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()
	s.loadRedisClient()
	s.loadSearcher()
	s.loadRepos()

	defer s.searcher.Close()

	logger := xcontext.Logger(s.ctx)

	cities := []*entity.City{
		{Base: entity.Base{ID: uuid.NewString()}, Name: "Berlin", Country: "Germany"},
		{Base: entity.Base{ID: uuid.NewString()}, Name: "Lisbon", Country: "Portugal"},
	}
	for _, city := range cities {
		if err := s.cityRepo.Create(s.ctx, city); err != nil {
			return err
		}
	}

	roles := []*entity.Role{
		{Base: entity.Base{ID: uuid.NewString()}, Name: "user", Description: "Regular user"},
		{Base: entity.Base{ID: uuid.NewString()}, Name: "staff", Description: "Staff member"},
	}
	for _, role := range roles {
		if err := s.roleRepo.Create(s.ctx, role); err != nil {
			return err
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := []*entity.User{}
	names := []struct {
		first string
		last  string
	}{
		{"Alice", "Nguyen"}, {"Bob", "Keller"}, {"Carla", "Sousa"}, {"Dan", "Ivanov"},
	}
	for i, name := range names {
		user := &entity.User{
			Base:           entity.Base{ID: uuid.NewString()},
			Email:          fmt.Sprintf("user%d@example.com", i+1),
			HashedPassword: string(hashed),
			FirstName:      name.first,
			LastName:       name.last,
			Username:       sql.NullString{Valid: true, String: fmt.Sprintf("user%d", i+1)},
			Gender:         entity.GenderOther,
			CityID:         sql.NullString{Valid: true, String: cities[i%len(cities)].ID},
			RoleID:         sql.NullString{Valid: true, String: roles[0].ID},
			IsActive:       true,
			LastSeen:       sql.NullTime{Valid: true, Time: time.Now()},
		}
		if err := s.userRepo.Create(s.ctx, user); err != nil {
			return err
		}
		users = append(users, user)
	}

	friendships := []*entity.Friendship{
		{
			Base:     entity.Base{ID: uuid.NewString()},
			UserID:   users[0].ID,
			FriendID: users[1].ID,
			Status:   entity.FriendshipAccepted,
		},
		{
			Base:     entity.Base{ID: uuid.NewString()},
			UserID:   users[2].ID,
			FriendID: users[0].ID,
			Status:   entity.FriendshipPending,
		},
	}
	for _, friendship := range friendships {
		if err := s.friendshipRepo.Create(s.ctx, friendship); err != nil {
			return err
		}
	}

	communities := []*entity.Community{
		{
			Base:        entity.Base{ID: uuid.NewString()},
			Name:        "Gophers of Berlin",
			Description: "Meetups and talks about backend engineering",
			Type:        entity.CommunityOpen,
			OwnerID:     users[0].ID,
			IsVerified:  true,
		},
		{
			Base:        entity.Base{ID: uuid.NewString()},
			Name:        "Night Owls",
			Description: "Invite only discussion club",
			Type:        entity.CommunityClosed,
			OwnerID:     users[1].ID,
		},
	}
	for _, community := range communities {
		if err := s.communityRepo.Create(s.ctx, community); err != nil {
			return err
		}
	}

	memberships := []*entity.UserCommunity{
		{UserID: users[1].ID, CommunityID: communities[0].ID, Role: entity.CommunityRoleMember, JoinedAt: time.Now()},
		{UserID: users[2].ID, CommunityID: communities[0].ID, Role: entity.CommunityRoleModerator, JoinedAt: time.Now()},
		{UserID: users[2].ID, CommunityID: communities[1].ID, Role: entity.CommunityRoleMember, JoinedAt: time.Now()},
	}
	for _, membership := range memberships {
		inserted, err := s.userCommunityRepo.Create(s.ctx, membership)
		if err != nil {
			return err
		}

		// Keep the cached counter in step with the real rows.
		if inserted {
			if err := s.communityRepo.IncreaseMembersCount(s.ctx, membership.CommunityID); err != nil {
				return err
			}
		}
	}

	posts := []*entity.Post{
		{
			Base:        entity.Base{ID: uuid.NewString()},
			AuthorID:    users[0].ID,
			CommunityID: sql.NullString{Valid: true, String: communities[0].ID},
			Content:     "Welcome to the community, introduce yourself in the comments below.",
			IsPublished: true,
			ViewsCount:  42,
		},
		{
			Base:        entity.Base{ID: uuid.NewString()},
			AuthorID:    users[1].ID,
			Content:     "First post on my own wall, no community attached.",
			IsPublished: true,
		},
	}
	for _, post := range posts {
		if err := s.postRepo.Create(s.ctx, post); err != nil {
			return err
		}
	}

	comment := &entity.Comment{
		Base:     entity.Base{ID: uuid.NewString()},
		PostID:   posts[0].ID,
		AuthorID: users[1].ID,
		Content:  "Hi everyone, glad to be here.",
	}
	if err := s.commentRepo.Create(s.ctx, comment); err != nil {
		return err
	}

	likes := []*entity.Like{
		{ID: uuid.NewString(), UserID: users[1].ID, PostID: sql.NullString{Valid: true, String: posts[0].ID}},
		{ID: uuid.NewString(), UserID: users[2].ID, PostID: sql.NullString{Valid: true, String: posts[0].ID}},
		{ID: uuid.NewString(), UserID: users[0].ID, CommentID: sql.NullString{Valid: true, String: comment.ID}},
	}
	for _, like := range likes {
		if _, err := s.likeRepo.Create(s.ctx, like); err != nil {
			return err
		}
	}

	chat := &entity.Chat{
		Base:      entity.Base{ID: uuid.NewString()},
		Type:      entity.ChatPrivate,
		CreatedBy: sql.NullString{Valid: true, String: users[0].ID},
	}
	if err := s.chatRepo.Create(s.ctx, chat); err != nil {
		return err
	}

	for i, userID := range []string{users[0].ID, users[1].ID} {
		role := entity.ChatRoleMember
		if i == 0 {
			role = entity.ChatRoleAdmin
		}

		err := s.chatRepo.AddParticipant(s.ctx, &entity.ChatParticipant{
			ChatID:   chat.ID,
			UserID:   userID,
			Role:     role,
			JoinedAt: time.Now(),
		})
		if err != nil {
			return err
		}
	}

	node := xcontext.SnowFlake(s.ctx)
	messages := []string{"Hey, are you coming to the meetup?", "Sure, see you there."}
	for i, content := range messages {
		message := &entity.Message{
			SnowFlakeBase: entity.SnowFlakeBase{ID: node.Generate().Int64()},
			ChatID:        chat.ID,
			SenderID:      users[i%2].ID,
			Content:       content,
			Status:        entity.MessageSent,
		}
		if err := s.messageRepo.Create(s.ctx, message); err != nil {
			return err
		}
	}

	logger.Infof("Seeded %d users, %d communities, %d posts", len(users), len(communities), len(posts))
	return nil
}
