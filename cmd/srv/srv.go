package main

import (
	"context"
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/socialnet-labs/backend/config"
	"github.com/socialnet-labs/backend/internal/domain"
	"github.com/socialnet-labs/backend/internal/repository"
	"github.com/socialnet-labs/backend/internal/search"
	"github.com/socialnet-labs/backend/migration"
	"github.com/socialnet-labs/backend/pkg/logger"
	"github.com/socialnet-labs/backend/pkg/router"
	"github.com/socialnet-labs/backend/pkg/storage"
	"github.com/socialnet-labs/backend/pkg/xcontext"
	"github.com/socialnet-labs/backend/pkg/xredis"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App
	ctx context.Context

	userRepo          repository.UserRepository
	cityRepo          repository.CityRepository
	roleRepo          repository.RoleRepository
	friendshipRepo    repository.FriendshipRepository
	communityRepo     repository.CommunityRepository
	userCommunityRepo repository.UserCommunityRepository
	postRepo          repository.PostRepository
	commentRepo       repository.CommentRepository
	likeRepo          repository.LikeRepository
	chatRepo          repository.ChatRepository
	messageRepo       repository.MessageRepository
	mediaRepo         repository.MediaRepository

	authDomain       domain.AuthDomain
	userDomain       domain.UserDomain
	friendshipDomain domain.FriendshipDomain
	communityDomain  domain.CommunityDomain
	postDomain       domain.PostDomain
	commentDomain    domain.CommentDomain
	chatDomain       domain.ChatDomain
	mediaDomain      domain.MediaDomain

	searcher    search.Searcher
	redisClient xredis.Client
	storage     storage.Storage

	router *router.Router
	server *http.Server
}

func (s *srv) loadContext(configPath string) error {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	logLevel := logger.INFO
	if cfg.Env == "local" {
		logLevel = logger.DEBUG
	}

	node, err := snowflake.NewNode(0)
	if err != nil {
		return err
	}

	s.ctx = context.Background()
	s.ctx = xcontext.WithConfigs(s.ctx, cfg)
	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(logLevel))
	s.ctx = xcontext.WithSnowFlake(s.ctx, node)
	return nil
}

func (s *srv) newDatabase() *gorm.DB {
	cfg := xcontext.Configs(s.ctx).Database
	db, err := gorm.Open(mysql.Open(cfg.ConnectionString()), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	return db
}

func (s *srv) migrateDB() {
	if err := migration.Migrate(s.ctx); err != nil {
		panic(err)
	}
}

func (s *srv) loadStorage() {
	s.storage = storage.NewS3Storage(xcontext.Configs(s.ctx).Storage)
}

func (s *srv) loadRedisClient() {
	var err error
	s.redisClient, err = xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadSearcher() {
	s.searcher = search.NewBleveIndex(s.ctx)
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.cityRepo = repository.NewCityRepository()
	s.roleRepo = repository.NewRoleRepository()
	s.friendshipRepo = repository.NewFriendshipRepository()
	s.communityRepo = repository.NewCommunityRepository(s.searcher, s.redisClient)
	s.userCommunityRepo = repository.NewUserCommunityRepository()
	s.postRepo = repository.NewPostRepository(s.searcher)
	s.commentRepo = repository.NewCommentRepository()
	s.likeRepo = repository.NewLikeRepository()
	s.chatRepo = repository.NewChatRepository()
	s.messageRepo = repository.NewMessageRepository()
	s.mediaRepo = repository.NewMediaRepository()
}

func (s *srv) loadDomains() {
	s.authDomain = domain.NewAuthDomain(s.userRepo, s.roleRepo)
	s.userDomain = domain.NewUserDomain(s.userRepo, s.cityRepo)
	s.friendshipDomain = domain.NewFriendshipDomain(s.friendshipRepo, s.userRepo)
	s.communityDomain = domain.NewCommunityDomain(
		s.communityRepo, s.userCommunityRepo, s.postRepo, s.likeRepo, s.commentRepo)
	s.postDomain = domain.NewPostDomain(
		s.postRepo, s.communityRepo, s.userCommunityRepo, s.likeRepo, s.commentRepo)
	s.commentDomain = domain.NewCommentDomain(s.commentRepo, s.postRepo, s.likeRepo)
	s.chatDomain = domain.NewChatDomain(s.chatRepo, s.messageRepo, s.userRepo)
	s.mediaDomain = domain.NewMediaDomain(s.mediaRepo, s.postRepo, s.messageRepo, s.storage)
}
